package graph

import (
	"math"
	"sort"

	"github.com/inodbandara-official/recommendation/internal/domain"
)

const (
	DefaultDamping  = 0.85
	pagerankMaxIter = 100
	pagerankTol     = 1e-9
)

// BuildHetero builds the directed heterogeneous graph over users, events and
// artists: attended, followed and performed-by relations, each with its
// reverse edge so PageRank mass can flow back.
func BuildHetero(attends []domain.Attendance, follows []domain.Follow, events []domain.Event) *Graph {
	g := New()
	for _, a := range attends {
		if a.UserID == "" || a.EventID == "" {
			continue
		}
		g.AddEdge(UserNode(a.UserID), EventNode(a.EventID), 1)
		g.AddEdge(EventNode(a.EventID), UserNode(a.UserID), 1)
	}
	for _, f := range follows {
		if f.UserID == "" || f.ArtistID == "" {
			continue
		}
		g.AddEdge(UserNode(f.UserID), ArtistNode(f.ArtistID), 1)
		g.AddEdge(ArtistNode(f.ArtistID), UserNode(f.UserID), 1)
	}
	for _, e := range events {
		if e.ID == "" {
			continue
		}
		g.AddNode(EventNode(e.ID))
		if e.ArtistID != "" {
			g.AddEdge(EventNode(e.ID), ArtistNode(e.ArtistID), 1)
			g.AddEdge(ArtistNode(e.ArtistID), EventNode(e.ID), 1)
		}
	}
	return g
}

// PersonalizedPageRank runs weighted power iteration restarting at seed.
// Mass stranded on dangling nodes is returned to the seed.
func (g *Graph) PersonalizedPageRank(seed NodeID, damping float64) map[NodeID]float64 {
	if !g.Has(seed) {
		return nil
	}

	outWeight := make(map[NodeID]float64, len(g.adj))
	for n, nbrs := range g.adj {
		for _, w := range nbrs {
			outWeight[n] += w
		}
	}

	rank := map[NodeID]float64{seed: 1}
	for iter := 0; iter < pagerankMaxIter; iter++ {
		next := make(map[NodeID]float64, len(rank))
		dangling := 0.0
		for n, r := range rank {
			out := outWeight[n]
			if out == 0 {
				dangling += r
				continue
			}
			for m, w := range g.adj[n] {
				next[m] += damping * r * w / out
			}
		}
		next[seed] += (1 - damping) + damping*dangling

		delta := 0.0
		for n, r := range next {
			delta += math.Abs(r - rank[n])
		}
		for n, r := range rank {
			if _, ok := next[n]; !ok {
				delta += r
			}
		}
		rank = next
		if delta < pagerankTol {
			break
		}
	}
	return rank
}

// RecommendByPageRank ranks events for the target user by personalized
// PageRank over the heterogeneous graph, excluding already-attended events.
func RecommendByPageRank(attends []domain.Attendance, follows []domain.Follow, events []domain.Event, target string, topN int, damping float64) []domain.GraphScore {
	g := BuildHetero(attends, follows, events)
	seed := UserNode(target)
	if !g.Has(seed) {
		return []domain.GraphScore{}
	}

	rank := g.PersonalizedPageRank(seed, damping)

	attended := make(map[string]struct{})
	for nbr := range g.Neighbors(seed) {
		if nbr.Kind == KindEvent {
			attended[nbr.ID] = struct{}{}
		}
	}

	ranked := make([]domain.GraphScore, 0, len(rank))
	for n, score := range rank {
		if n.Kind != KindEvent {
			continue
		}
		if _, seen := attended[n.ID]; seen {
			continue
		}
		ranked = append(ranked, domain.GraphScore{EventID: n.ID, Score: score})
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].Score != ranked[j].Score {
			return ranked[i].Score > ranked[j].Score
		}
		return ranked[i].EventID < ranked[j].EventID
	})
	if topN > 0 && len(ranked) > topN {
		ranked = ranked[:topN]
	}
	return ranked
}
