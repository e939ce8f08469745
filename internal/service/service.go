package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/inodbandara-official/recommendation/internal/domain"
	"github.com/inodbandara-official/recommendation/internal/graph"
	"github.com/inodbandara-official/recommendation/internal/hybrid"
	"github.com/inodbandara-official/recommendation/internal/knowledge"
	"github.com/inodbandara-official/recommendation/internal/tags"
	"github.com/inodbandara-official/recommendation/internal/trend"
)

const (
	defaultLimit     = 10
	maxLimit         = 50
	topUsersPool     = 50
	batchConcurrency = 10
	batchRecLimit    = 10
)

// Store supplies the recommendation tables. Implemented by the Postgres
// repository and the CSV store.
type Store interface {
	Users(ctx context.Context) ([]domain.User, error)
	Events(ctx context.Context) ([]domain.Event, error)
	Artists(ctx context.Context) ([]domain.Artist, error)
	Attendance(ctx context.Context) ([]domain.Attendance, error)
	Follows(ctx context.Context) ([]domain.Follow, error)
	UserIDs(ctx context.Context, page, limit int) ([]string, error)
	CountUsers(ctx context.Context) (int, error)
	AddAttendance(ctx context.Context, userID, eventID string, ts time.Time) error
}

// ResultCache stores final ranked responses. May be nil when caching is
// disabled.
type ResultCache interface {
	Get(ctx context.Context, userID string, limit int) ([]domain.ScoredEvent, bool, error)
	Set(ctx context.Context, userID string, limit int, recs []domain.ScoredEvent) error
	ClearUserCache(ctx context.Context, userID string) error
}

// Options carries the model knobs, injected from configuration.
type Options struct {
	SimilarityAlpha      float64
	InteractionThreshold int
	TrendWindowDays      int
	Weights              map[hybrid.Strategy]hybrid.WeightScheme
}

type Service struct {
	store  Store
	cache  ResultCache
	opts   Options
	ranker *hybrid.Ranker
}

func NewService(store Store, cache ResultCache, opts Options) *Service {
	if opts.SimilarityAlpha <= 0 || opts.SimilarityAlpha > 1 {
		opts.SimilarityAlpha = graph.DefaultAlpha
	}
	if opts.TrendWindowDays <= 0 {
		opts.TrendWindowDays = trend.DefaultWindowDays
	}
	return &Service{
		store:  store,
		cache:  cache,
		opts:   opts,
		ranker: hybrid.NewRanker(opts.InteractionThreshold, opts.Weights),
	}
}

// Recommend blends the knowledge, graph and trend signals into one ranked,
// explained list for the user. Each call loads its tables and builds its
// structures fresh; nothing is shared between invocations.
func (s *Service) Recommend(ctx context.Context, userID string, limit int, strategyOverride string) (*domain.RecommendationResult, error) {
	if limit <= 0 {
		limit = defaultLimit
	} else if limit > maxLimit {
		limit = maxLimit
	}

	// Cached responses are keyed by (user, limit) only, so a strategy
	// override always bypasses the cache.
	if s.cache != nil && strategyOverride == "" {
		cached, found, err := s.cache.Get(ctx, userID, limit)
		if err != nil {
			log.Error().Err(err).Str("user_id", userID).Msg("cache get failed")
		}
		if found {
			return &domain.RecommendationResult{Recommendations: cached, CacheHit: true}, nil
		}
	}

	result, err := s.generate(ctx, userID, limit, strategyOverride)
	if err != nil {
		return nil, err
	}

	if s.cache != nil && strategyOverride == "" {
		if err := s.cache.Set(ctx, userID, limit, result.Recommendations); err != nil {
			log.Error().Err(err).Str("user_id", userID).Msg("cache set failed")
		}
	}
	return result, nil
}

func (s *Service) generate(ctx context.Context, userID string, limit int, strategyOverride string) (*domain.RecommendationResult, error) {
	users, err := s.store.Users(ctx)
	if err != nil {
		return nil, fmt.Errorf("load users: %w", err)
	}
	events, err := s.store.Events(ctx)
	if err != nil {
		return nil, fmt.Errorf("load events: %w", err)
	}
	attends, err := s.store.Attendance(ctx)
	if err != nil {
		return nil, fmt.Errorf("load attendance: %w", err)
	}
	follows, err := s.store.Follows(ctx)
	if err != nil {
		return nil, fmt.Errorf("load follows: %w", err)
	}

	// Knowledge scores for the full catalog: every event is a candidate.
	matcher := knowledge.NewMatcher(knowledge.DefaultWeights).Fit(users, events)
	knowledgeScores, err := matcher.Recommend(userID, len(events))
	if err != nil {
		return nil, fmt.Errorf("knowledge scores: %w", err)
	}

	graphScores := graph.RecommendFromSimilarUsers(
		attends, follows, userID, topUsersPool, limit*3, s.opts.SimilarityAlpha)

	var trendScores []domain.TrendingEvent
	if len(attends) > 0 {
		trendScores, err = trend.NewRecommender().Fit(attends).
			Recommend(limit*3, s.opts.TrendWindowDays, 0, time.Time{})
		if err != nil {
			return nil, fmt.Errorf("trend scores: %w", err)
		}
	}

	candidates := joinScores(knowledgeScores, graphScores, trendScores)

	interactions := 0
	for _, a := range attends {
		if a.UserID == userID {
			interactions++
		}
	}

	ranked, strategy := s.ranker.Rank(candidates, interactions, strategyOverride, limit)

	var interests map[string]struct{}
	var region string
	for _, u := range users {
		if u.ID == userID {
			interests = tags.Set(u.ArtInterests)
			region = u.RegionPreference
			break
		}
	}
	eventsByID := make(map[string]domain.Event, len(events))
	for _, e := range events {
		eventsByID[e.ID] = e
	}
	ranked = hybrid.AttachExplanations(ranked, eventsByID, interests, region)

	return &domain.RecommendationResult{
		Recommendations: ranked,
		Strategy:        strategy.String(),
	}, nil
}

// joinScores outer-joins the three score columns on event identity, filling
// missing components with zero. An event only becomes a candidate by
// appearing in at least one sub-model's output.
func joinScores(knowledgeScores []knowledge.ScoredEvent, graphScores []domain.GraphScore, trendScores []domain.TrendingEvent) []domain.CandidateScore {
	byID := make(map[string]*domain.CandidateScore)
	ordered := make([]string, 0, len(knowledgeScores))
	get := func(id string) *domain.CandidateScore {
		if c, ok := byID[id]; ok {
			return c
		}
		c := &domain.CandidateScore{EventID: id}
		byID[id] = c
		ordered = append(ordered, id)
		return c
	}

	for _, k := range knowledgeScores {
		get(k.EventID).KnowledgeScore = k.Score
	}
	for _, g := range graphScores {
		get(g.EventID).GraphScore = g.Score
	}
	for _, t := range trendScores {
		get(t.EventID).TrendScore = t.TrendScore
	}

	candidates := make([]domain.CandidateScore, 0, len(ordered))
	for _, id := range ordered {
		candidates = append(candidates, *byID[id])
	}
	return candidates
}

// RecommendTrending returns the growth-adjusted popularity ranking. No user
// context required.
func (s *Service) RecommendTrending(ctx context.Context, limit, windowDays int) ([]domain.TrendingEvent, error) {
	if limit <= 0 {
		limit = defaultLimit
	}
	if windowDays <= 0 {
		windowDays = s.opts.TrendWindowDays
	}

	attends, err := s.store.Attendance(ctx)
	if err != nil {
		return nil, fmt.Errorf("load attendance: %w", err)
	}
	if len(attends) == 0 {
		return []domain.TrendingEvent{}, nil
	}
	return trend.NewRecommender().Fit(attends).Recommend(limit, windowDays, 0, time.Time{})
}

// RecommendGraph returns the social-signal ranking on its own.
func (s *Service) RecommendGraph(ctx context.Context, userID string, limit int) ([]domain.GraphScore, error) {
	if limit <= 0 {
		limit = defaultLimit
	}

	attends, err := s.store.Attendance(ctx)
	if err != nil {
		return nil, fmt.Errorf("load attendance: %w", err)
	}
	follows, err := s.store.Follows(ctx)
	if err != nil {
		return nil, fmt.Errorf("load follows: %w", err)
	}
	return graph.RecommendFromSimilarUsers(attends, follows, userID, topUsersPool, limit, s.opts.SimilarityAlpha), nil
}

// RecommendPageRank ranks events by personalized PageRank over the
// heterogeneous user/event/artist graph.
func (s *Service) RecommendPageRank(ctx context.Context, userID string, limit int) ([]domain.GraphScore, error) {
	if limit <= 0 {
		limit = defaultLimit
	}

	attends, err := s.store.Attendance(ctx)
	if err != nil {
		return nil, fmt.Errorf("load attendance: %w", err)
	}
	follows, err := s.store.Follows(ctx)
	if err != nil {
		return nil, fmt.Errorf("load follows: %w", err)
	}
	events, err := s.store.Events(ctx)
	if err != nil {
		return nil, fmt.Errorf("load events: %w", err)
	}
	return graph.RecommendByPageRank(attends, follows, events, userID, limit, graph.DefaultDamping), nil
}

// GetBatchRecommendations generates recommendations for a page of users with
// a bounded worker pool.
func (s *Service) GetBatchRecommendations(ctx context.Context, page, limit int) (*domain.BatchResponse, error) {
	start := time.Now()

	userIDs, err := s.store.UserIDs(ctx, page, limit)
	if err != nil {
		return nil, fmt.Errorf("fetch user ids: %w", err)
	}
	totalUsers, err := s.store.CountUsers(ctx)
	if err != nil {
		return nil, fmt.Errorf("count users: %w", err)
	}

	results := make([]domain.BatchUserResult, len(userIDs))
	var wg sync.WaitGroup
	sem := make(chan struct{}, batchConcurrency)

	for i, userID := range userIDs {
		wg.Add(1)
		go func(idx int, uid string) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			results[idx] = s.processUserForBatch(ctx, uid)
		}(i, userID)
	}
	wg.Wait()

	successCount, failedCount := 0, 0
	for _, r := range results {
		if r.Status == domain.StatusSuccess {
			successCount++
		} else {
			failedCount++
		}
	}

	return &domain.BatchResponse{
		Page:       page,
		Limit:      limit,
		TotalUsers: totalUsers,
		Results:    results,
		Summary: domain.BatchSummary{
			SuccessCount:     successCount,
			FailedCount:      failedCount,
			ProcessingTimeMs: time.Since(start).Milliseconds(),
		},
		Metadata: domain.BatchMeta{
			RequestID:   uuid.New().String(),
			GeneratedAt: time.Now().UTC().Format(time.RFC3339),
		},
	}, nil
}

func (s *Service) processUserForBatch(ctx context.Context, userID string) domain.BatchUserResult {
	result, err := s.Recommend(ctx, userID, batchRecLimit, "")
	if err != nil {
		log.Error().Err(err).Str("user_id", userID).Msg("batch recommendation failed")
		code, msg := CategorizeError(err)
		return domain.BatchUserResult{
			UserID:  userID,
			Status:  domain.StatusFailed,
			Error:   code,
			Message: msg,
		}
	}
	return domain.BatchUserResult{
		UserID:          userID,
		Recommendations: result.Recommendations,
		Status:          domain.StatusSuccess,
	}
}

// AddAttendance records an interaction and invalidates the user's cached
// recommendations.
func (s *Service) AddAttendance(ctx context.Context, userID, eventID string) error {
	if err := s.store.AddAttendance(ctx, userID, eventID, time.Now().UTC()); err != nil {
		return err
	}
	if s.cache != nil {
		if err := s.cache.ClearUserCache(ctx, userID); err != nil {
			log.Error().Err(err).Str("user_id", userID).Msg("cache invalidation failed")
		}
	}
	return nil
}

// CategorizeError maps an error to a stable code and a safe message.
func CategorizeError(err error) (string, string) {
	if errors.Is(err, domain.ErrUserNotFound) {
		return "user_not_found", "user not found"
	}
	if domain.IsSchemaError(err) {
		return "schema_error", "input table is missing required columns"
	}
	if errors.Is(err, domain.ErrNotFitted) {
		return "not_fitted", "recommender used before fitting"
	}
	return "internal_error", "an unexpected error occurred"
}
