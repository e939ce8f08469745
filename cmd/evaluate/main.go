// Command evaluate runs an offline evaluation of the hybrid recommender
// against a time-based holdout split of the attendance data.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"os"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/inodbandara-official/recommendation/internal/dataset"
	"github.com/inodbandara-official/recommendation/internal/domain"
	"github.com/inodbandara-official/recommendation/internal/eval"
	"github.com/inodbandara-official/recommendation/internal/graph"
	"github.com/inodbandara-official/recommendation/internal/hybrid"
	"github.com/inodbandara-official/recommendation/internal/knowledge"
	"github.com/inodbandara-official/recommendation/internal/logging"
	"github.com/inodbandara-official/recommendation/internal/trend"
)

func main() {
	dataDir := flag.String("data", "data", "directory holding the CSV tables")
	k := flag.Int("k", 10, "recommendation list length")
	holdoutDays := flag.Int("holdout-days", 14, "most recent days held out as the test set")
	alpha := flag.Float64("alpha", graph.DefaultAlpha, "jaccard/adamic-adar blend weight")
	flag.Parse()

	logging.Setup("info", "text")
	ctx := context.Background()

	store := dataset.NewCSVStore(*dataDir)
	users, err := store.Users(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("load users")
	}
	events, err := store.Events(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("load events")
	}
	attends, err := store.Attendance(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("load attendance")
	}
	artists, err := store.Artists(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("load artists")
	}
	follows, err := store.Follows(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("load follows")
	}

	train, test := splitByTime(attends, *holdoutDays)
	log.Info().
		Int("train_rows", len(train)).
		Int("test_rows", len(test)).
		Int("users", len(users)).
		Int("events", len(events)).
		Int("artists", len(artists)).
		Msg("holdout split")

	if len(test) == 0 {
		log.Fatal().Msg("holdout window contains no interactions; widen -holdout-days")
	}

	relevant := make(map[string]map[string]struct{})
	for _, a := range test {
		if relevant[a.UserID] == nil {
			relevant[a.UserID] = make(map[string]struct{})
		}
		relevant[a.UserID][a.EventID] = struct{}{}
	}

	eventsByID := make(map[string]domain.Event, len(events))
	for _, e := range events {
		eventsByID[e.ID] = e
	}

	matcher := knowledge.NewMatcher(knowledge.DefaultWeights).Fit(users, events)
	ranker := hybrid.NewRanker(0, nil)

	recommended := make(map[string][]string, len(relevant))
	for userID := range relevant {
		recommended[userID] = recommend(matcher, ranker, train, follows, events, userID, *k, *alpha)
	}

	metrics := eval.Evaluate(recommended, relevant, eventsByID, *k)

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(metrics); err != nil {
		log.Fatal().Err(err).Msg("encode report")
	}
}

// splitByTime holds out the attendance rows in the most recent holdoutDays
// before the newest timestamp.
func splitByTime(attends []domain.Attendance, holdoutDays int) (train, test []domain.Attendance) {
	var maxTS time.Time
	for _, a := range attends {
		if a.Timestamp.After(maxTS) {
			maxTS = a.Timestamp
		}
	}
	if maxTS.IsZero() {
		return attends, nil
	}
	cutoff := maxTS.AddDate(0, 0, -holdoutDays)

	for _, a := range attends {
		if a.Timestamp.After(cutoff) {
			test = append(test, a)
		} else {
			train = append(train, a)
		}
	}
	return train, test
}

// recommend mirrors the serving pipeline on the training split only.
func recommend(matcher *knowledge.Matcher, ranker *hybrid.Ranker, train []domain.Attendance, follows []domain.Follow, events []domain.Event, userID string, k int, alpha float64) []string {
	knowledgeScores, err := matcher.Recommend(userID, len(events))
	if err != nil {
		return nil
	}
	graphScores := graph.RecommendFromSimilarUsers(train, follows, userID, graph.DefaultTopUsers, k*3, alpha)

	var trendScores []domain.TrendingEvent
	if len(train) > 0 {
		trendScores, _ = trend.NewRecommender().Fit(train).
			Recommend(k*3, trend.DefaultWindowDays, 0, time.Time{})
	}

	byID := make(map[string]*domain.CandidateScore)
	order := []string{}
	get := func(id string) *domain.CandidateScore {
		if c, ok := byID[id]; ok {
			return c
		}
		c := &domain.CandidateScore{EventID: id}
		byID[id] = c
		order = append(order, id)
		return c
	}
	for _, s := range knowledgeScores {
		get(s.EventID).KnowledgeScore = s.Score
	}
	for _, s := range graphScores {
		get(s.EventID).GraphScore = s.Score
	}
	for _, s := range trendScores {
		get(s.EventID).TrendScore = s.TrendScore
	}

	candidates := make([]domain.CandidateScore, 0, len(order))
	for _, id := range order {
		candidates = append(candidates, *byID[id])
	}

	interactions := 0
	for _, a := range train {
		if a.UserID == userID {
			interactions++
		}
	}

	ranked, _ := ranker.Rank(candidates, interactions, "", k)
	ids := make([]string, 0, len(ranked))
	for _, r := range ranked {
		ids = append(ids, r.EventID)
	}
	return ids
}
