// Package hybrid merges the three per-event score columns into one ranked,
// explained output.
package hybrid

import (
	"sort"

	"github.com/inodbandara-official/recommendation/internal/domain"
)

type Ranker struct {
	threshold int
	weights   map[Strategy]WeightScheme
}

// NewRanker builds a ranker with the given cold-start threshold and weight
// table. Zero threshold and nil weights select the defaults. The weight table
// is copied: it stays immutable for the ranker's lifetime.
func NewRanker(threshold int, weights map[Strategy]WeightScheme) *Ranker {
	if threshold <= 0 {
		threshold = DefaultInteractionThreshold
	}
	if weights == nil {
		weights = DefaultWeights()
	}
	own := make(map[Strategy]WeightScheme, len(weights))
	for s, w := range weights {
		own[s] = w
	}
	return &Ranker{threshold: threshold, weights: own}
}

// ChooseStrategy applies a recognized override, otherwise selects cold_start
// below the interaction threshold and active at or above it. Trending is
// never auto-selected.
func (r *Ranker) ChooseStrategy(interactions int, override string) Strategy {
	if s, ok := ParseStrategy(override); ok {
		if _, known := r.weights[s]; known {
			return s
		}
	}
	if interactions < r.threshold {
		return StrategyColdStart
	}
	return StrategyActive
}

// Rank computes FinalScore = alpha*K + beta*G + gamma*T for every candidate
// and returns the topN rows ordered by descending FinalScore, ascending event
// ID on exact ties.
func (r *Ranker) Rank(candidates []domain.CandidateScore, interactions int, override string, topN int) ([]domain.ScoredEvent, Strategy) {
	strategy := r.ChooseStrategy(interactions, override)
	w := r.weights[strategy]

	ranked := make([]domain.ScoredEvent, 0, len(candidates))
	for _, c := range candidates {
		ranked = append(ranked, domain.ScoredEvent{
			EventID:        c.EventID,
			KnowledgeScore: c.KnowledgeScore,
			GraphScore:     c.GraphScore,
			TrendScore:     c.TrendScore,
			FinalScore:     w.Alpha*c.KnowledgeScore + w.Beta*c.GraphScore + w.Gamma*c.TrendScore,
		})
	}

	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].FinalScore != ranked[j].FinalScore {
			return ranked[i].FinalScore > ranked[j].FinalScore
		}
		return ranked[i].EventID < ranked[j].EventID
	})
	if topN > 0 && len(ranked) > topN {
		ranked = ranked[:topN]
	}
	return ranked, strategy
}
