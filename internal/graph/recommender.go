package graph

import (
	"sort"

	"github.com/inodbandara-official/recommendation/internal/domain"
)

const (
	DefaultTopUsers = 20
	DefaultTopN     = 10
)

type rankedUser struct {
	id    string
	score float64
}

// topSimilarUsers ranks the merged similarity map descending by score, ties
// broken by ascending user ID so equal scores order the same way regardless
// of input permutation.
func topSimilarUsers(merged map[string]float64, topUsers int) []rankedUser {
	ranked := make([]rankedUser, 0, len(merged))
	for id, score := range merged {
		ranked = append(ranked, rankedUser{id: id, score: score})
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].score != ranked[j].score {
			return ranked[i].score > ranked[j].score
		}
		return ranked[i].id < ranked[j].id
	})
	if topUsers > 0 && len(ranked) > topUsers {
		ranked = ranked[:topUsers]
	}
	return ranked
}

// RecommendFromSimilarUsers scores candidate events by similarity-weighted
// voting from the target's most similar users.
//
// Every attendance row of a selected similar user votes its full similarity
// weight, so duplicate rows inflate an event's score on purpose: repeat
// attendance is a signal. Events the target already attended never appear.
// Returns an empty slice when there is no similarity signal or no qualifying
// candidate.
func RecommendFromSimilarUsers(attends []domain.Attendance, follows []domain.Follow, target string, topUsers, topN int, alpha float64) []domain.GraphScore {
	jaccard := JaccardSimilarUsers(attends, follows, target)
	adamicAdar := AdamicAdarSimilarUsers(attends, target)
	merged := MergeSimilarity(jaccard, adamicAdar, alpha)
	if len(merged) == 0 {
		return []domain.GraphScore{}
	}

	simByUser := make(map[string]float64, topUsers)
	for _, u := range topSimilarUsers(merged, topUsers) {
		simByUser[u.id] = u.score
	}

	attended := make(map[string]struct{})
	for _, a := range attends {
		if a.UserID == target {
			attended[a.EventID] = struct{}{}
		}
	}

	scores := make(map[string]float64)
	for _, a := range attends {
		sim, ok := simByUser[a.UserID]
		if !ok || a.EventID == "" {
			continue
		}
		if _, seen := attended[a.EventID]; seen {
			continue
		}
		scores[a.EventID] += sim
	}
	if len(scores) == 0 {
		return []domain.GraphScore{}
	}

	ranked := make([]domain.GraphScore, 0, len(scores))
	for id, score := range scores {
		ranked = append(ranked, domain.GraphScore{EventID: id, Score: score})
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
