package graph

import (
	"math"

	"github.com/inodbandara-official/recommendation/internal/domain"
)

// DefaultAlpha is the Jaccard weight in the similarity merge.
const DefaultAlpha = 0.5

// InterestSets builds, per user, the tagged set of attended events and
// followed artists. Tagging by node kind keeps an event and an artist with
// the same raw identifier distinct.
func InterestSets(attends []domain.Attendance, follows []domain.Follow) map[string]map[NodeID]struct{} {
	items := make(map[string]map[NodeID]struct{})
	add := func(user string, n NodeID) {
		if user == "" || n.ID == "" {
			return
		}
		set, ok := items[user]
		if !ok {
			set = make(map[NodeID]struct{})
			items[user] = set
		}
		set[n] = struct{}{}
	}
	for _, a := range attends {
		add(a.UserID, EventNode(a.EventID))
	}
	for _, f := range follows {
		add(f.UserID, ArtistNode(f.ArtistID))
	}
	return items
}

// JaccardSimilarUsers scores every other user against the target by Jaccard
// similarity of their interest sets. Returns an empty map when the target has
// no recorded items. Users whose union with the target is empty are omitted,
// not scored zero: their similarity is undefined.
func JaccardSimilarUsers(attends []domain.Attendance, follows []domain.Follow, target string) map[string]float64 {
	items := InterestSets(attends, follows)
	targetSet := items[target]
	if len(targetSet) == 0 {
		return map[string]float64{}
	}

	sims := make(map[string]float64)
	for user, set := range items {
		if user == target {
			continue
		}
		inter := 0
		for n := range set {
			if _, ok := targetSet[n]; ok {
				inter++
			}
		}
		union := len(targetSet) + len(set) - inter
		if union == 0 {
			continue
		}
		sims[user] = float64(inter) / float64(union)
	}
	return sims
}

// Bipartite builds the undirected user-event graph from attendance edges only.
func Bipartite(attends []domain.Attendance) *Graph {
	g := New()
	for _, a := range attends {
		if a.UserID == "" || a.EventID == "" {
			continue
		}
		g.AddEdge(UserNode(a.UserID), EventNode(a.EventID), 1)
		g.AddEdge(EventNode(a.EventID), UserNode(a.UserID), 1)
	}
	return g
}

// AdamicAdarSimilarUsers scores users reachable from the target through
// shared events: sum over common events of 1/ln(degree(event)). Users with no
// common event are omitted.
func AdamicAdarSimilarUsers(attends []domain.Attendance, target string) map[string]float64 {
	b := Bipartite(attends)
	targetNode := UserNode(target)
	if !b.Has(targetNode) {
		return map[string]float64{}
	}

	sims := make(map[string]float64)
	for event := range b.Neighbors(targetNode) {
		deg := b.Degree(event)
		// A shared event always has degree >= 2; the guard keeps ln(1)=0
		// out of the denominator regardless.
		if deg < 2 {
			continue
		}
		w := 1.0 / math.Log(float64(deg))
		for user := range b.Neighbors(event) {
			if user == targetNode {
				continue
			}
			sims[user.ID] += w
		}
	}
	return sims
}

// MergeSimilarity combines Jaccard and Adamic-Adar scores over the union of
// users appearing in either map: alpha*jaccard + (1-alpha)*adamicAdar, with
// the absent side treated as 0.
func MergeSimilarity(jaccard, adamicAdar map[string]float64, alpha float64) map[string]float64 {
	merged := make(map[string]float64, len(jaccard)+len(adamicAdar))
	for user, j := range jaccard {
		merged[user] = alpha * j
	}
	for user, aa := range adamicAdar {
		merged[user] += (1 - alpha) * aa
	}
	return merged
}
