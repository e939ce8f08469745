// Package eval computes offline ranking-quality metrics against a held-out
// set of interactions.
package eval

import (
	"math"

	"github.com/inodbandara-official/recommendation/internal/domain"
	"github.com/inodbandara-official/recommendation/internal/tags"
)

// Metrics aggregates ranking quality over all evaluated users.
type Metrics struct {
	PrecisionAtK float64 `json:"precision_at_k"`
	RecallAtK    float64 `json:"recall_at_k"`
	MAP          float64 `json:"map"`
	NDCGAtK      float64 `json:"ndcg_at_k"`
	Coverage     float64 `json:"coverage"`
	Diversity    float64 `json:"diversity"`
	Users        int     `json:"users"`
}

// PrecisionAtK is the fraction of the first k recommendations that are
// relevant. Zero when k <= 0 or nothing was recommended.
func PrecisionAtK(recommended []string, relevant map[string]struct{}, k int) float64 {
	if k <= 0 || len(recommended) == 0 {
		return 0
	}
	if k > len(recommended) {
		k = len(recommended)
	}
	hits := 0
	for _, id := range recommended[:k] {
		if _, ok := relevant[id]; ok {
			hits++
		}
	}
	return float64(hits) / float64(k)
}

// RecallAtK is the fraction of relevant items found in the first k
// recommendations.
func RecallAtK(recommended []string, relevant map[string]struct{}, k int) float64 {
	if k <= 0 || len(relevant) == 0 {
		return 0
	}
	if k > len(recommended) {
		k = len(recommended)
	}
	hits := 0
	for _, id := range recommended[:k] {
		if _, ok := relevant[id]; ok {
			hits++
		}
	}
	return float64(hits) / float64(len(relevant))
}

// AveragePrecision averages precision at each rank within the first k where a
// relevant item appears, normalized by min(|relevant|, k).
func AveragePrecision(recommended []string, relevant map[string]struct{}, k int) float64 {
	if k <= 0 || len(relevant) == 0 {
		return 0
	}
	cut := k
	if cut > len(recommended) {
		cut = len(recommended)
	}
	hits := 0
	sum := 0.0
	for i, id := range recommended[:cut] {
		if _, ok := relevant[id]; ok {
			hits++
			sum += float64(hits) / float64(i+1)
		}
	}
	if hits == 0 {
		return 0
	}
	norm := len(relevant)
	if norm > k {
		norm = k
	}
	return sum / float64(norm)
}

// NDCGAtK computes normalized discounted cumulative gain with binary
// relevance.
func NDCGAtK(recommended []string, relevant map[string]struct{}, k int) float64 {
	if k <= 0 || len(relevant) == 0 {
		return 0
	}
	if k > len(recommended) {
		k = len(recommended)
	}

	dcg := 0.0
	for i, id := range recommended[:k] {
		if _, ok := relevant[id]; ok {
			dcg += 1 / math.Log2(float64(i)+2)
		}
	}

	ideal := len(relevant)
	if ideal > k {
		ideal = k
	}
	idcg := 0.0
	for i := 0; i < ideal; i++ {
		idcg += 1 / math.Log2(float64(i)+2)
	}
	if idcg == 0 {
		return 0
	}
	return dcg / idcg
}

// Coverage is the share of the catalog that appears in at least one user's
// recommendation list.
func Coverage(recommended map[string][]string, catalogSize int) float64 {
	if catalogSize <= 0 {
		return 0
	}
	seen := make(map[string]struct{})
	for _, list := range recommended {
		for _, id := range list {
			seen[id] = struct{}{}
		}
	}
	return float64(len(seen)) / float64(catalogSize)
}

// Diversity is the average pairwise dissimilarity, 1 - Jaccard over the
// events' feature sets (art forms plus genres), across every pair inside each
// recommendation list. Identical feature sets score 0; a pair of events with
// no features at all counts as fully diverse. Lists shorter than two items
// contribute no pairs.
func Diversity(recommended map[string][]string, events map[string]domain.Event) float64 {
	features := make(map[string]map[string]struct{}, len(events))
	featureSet := func(id string) map[string]struct{} {
		if f, ok := features[id]; ok {
			return f
		}
		e, ok := events[id]
		if !ok {
			return nil
		}
		f := tags.Set(e.ArtForms, e.Genres)
		features[id] = f
		return f
	}

	sum := 0.0
	pairs := 0
	for _, list := range recommended {
		for i := 0; i < len(list); i++ {
			fi := featureSet(list[i])
			for j := i + 1; j < len(list); j++ {
				fj := featureSet(list[j])
				pairs++
				if len(fi) == 0 && len(fj) == 0 {
					sum += 1.0
					continue
				}
				inter := 0
				for tok := range fi {
					if _, ok := fj[tok]; ok {
						inter++
					}
				}
				union := len(fi) + len(fj) - inter
				sum += 1.0 - float64(inter)/float64(union)
			}
		}
	}
	if pairs == 0 {
		return 0
	}
	return sum / float64(pairs)
}

// Evaluate averages the per-user metrics over every user with at least one
// held-out interaction.
func Evaluate(recommended map[string][]string, relevant map[string]map[string]struct{}, events map[string]domain.Event, k int) Metrics {
	m := Metrics{}
	for userID, rel := range relevant {
		if len(rel) == 0 {
			continue
		}
		recs := recommended[userID]
		m.PrecisionAtK += PrecisionAtK(recs, rel, k)
		m.RecallAtK += RecallAtK(recs, rel, k)
		m.MAP += AveragePrecision(recs, rel, k)
		m.NDCGAtK += NDCGAtK(recs, rel, k)
		m.Users++
	}
	if m.Users > 0 {
		n := float64(m.Users)
		m.PrecisionAtK /= n
		m.RecallAtK /= n
		m.MAP /= n
		m.NDCGAtK /= n
	}
	m.Coverage = Coverage(recommended, len(events))
	m.Diversity = Diversity(recommended, events)
	return m
}
