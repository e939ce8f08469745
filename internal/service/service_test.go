package service

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/inodbandara-official/recommendation/internal/domain"
	"github.com/inodbandara-official/recommendation/internal/hybrid"
)

type stubStore struct {
	users   []domain.User
	events  []domain.Event
	attends []domain.Attendance
	follows []domain.Follow

	added []domain.Attendance
}

func (s *stubStore) Users(ctx context.Context) ([]domain.User, error)   { return s.users, nil }
func (s *stubStore) Events(ctx context.Context) ([]domain.Event, error) { return s.events, nil }
func (s *stubStore) Artists(ctx context.Context) ([]domain.Artist, error) {
	return nil, nil
}
func (s *stubStore) Attendance(ctx context.Context) ([]domain.Attendance, error) {
	return s.attends, nil
}
func (s *stubStore) Follows(ctx context.Context) ([]domain.Follow, error) { return s.follows, nil }

func (s *stubStore) UserIDs(ctx context.Context, page, limit int) ([]string, error) {
	ids := make([]string, 0, len(s.users))
	for _, u := range s.users {
		ids = append(ids, u.ID)
	}
	start := (page - 1) * limit
	if start >= len(ids) {
		return []string{}, nil
	}
	end := start + limit
	if end > len(ids) {
		end = len(ids)
	}
	return ids[start:end], nil
}

func (s *stubStore) CountUsers(ctx context.Context) (int, error) { return len(s.users), nil }

func (s *stubStore) AddAttendance(ctx context.Context, userID, eventID string, ts time.Time) error {
	found := false
	for _, u := range s.users {
		if u.ID == userID {
			found = true
			break
		}
	}
	if !found {
		return domain.ErrUserNotFound
	}
	s.added = append(s.added, domain.Attendance{UserID: userID, EventID: eventID, Timestamp: ts})
	return nil
}

type stubCache struct {
	entries map[string][]domain.ScoredEvent
	cleared []string
}

func newStubCache() *stubCache {
	return &stubCache{entries: map[string][]domain.ScoredEvent{}}
}

func cacheKey(userID string, limit int) string {
	return fmt.Sprintf("%s:%d", userID, limit)
}

func (c *stubCache) Get(ctx context.Context, userID string, limit int) ([]domain.ScoredEvent, bool, error) {
	recs, ok := c.entries[cacheKey(userID, limit)]
	return recs, ok, nil
}

func (c *stubCache) Set(ctx context.Context, userID string, limit int, recs []domain.ScoredEvent) error {
	c.entries[cacheKey(userID, limit)] = recs
	return nil
}

func (c *stubCache) ClearUserCache(ctx context.Context, userID string) error {
	c.cleared = append(c.cleared, userID)
	for k := range c.entries {
		delete(c.entries, k)
	}
	return nil
}

func price(v float64) *float64 { return &v }

func coldStartStore() *stubStore {
	return &stubStore{
		users: []domain.User{
			{ID: "U1", ArtInterests: "music, dance", RegionPreference: "north"},
		},
		events: []domain.Event{
			{ID: "E1", Name: "Spring Concert", ArtForms: "music", Region: "north", TicketPrice: price(10)},
			{ID: "E2", Name: "Winter Play", ArtForms: "theatre", Region: "south", TicketPrice: price(100)},
		},
	}
}

func TestRecommendColdStart(t *testing.T) {
	svc := NewService(coldStartStore(), nil, Options{})

	result, err := svc.Recommend(context.Background(), "U1", 10, "")
	if err != nil {
		t.Fatalf("Recommend: %v", err)
	}

	if result.Strategy != "cold_start" {
		t.Errorf("strategy = %q, want cold_start", result.Strategy)
	}
	if result.CacheHit {
		t.Error("expected cache miss without a cache")
	}
	if len(result.Recommendations) != 2 {
		t.Fatalf("got %d recommendations, want 2", len(result.Recommendations))
	}

	first, second := result.Recommendations[0], result.Recommendations[1]
	if first.EventID != "E1" {
		t.Errorf("top recommendation = %s, want E1", first.EventID)
	}
	if first.KnowledgeScore <= second.KnowledgeScore {
		t.Errorf("knowledge scores: E1=%v should exceed E2=%v", first.KnowledgeScore, second.KnowledgeScore)
	}
	if second.KnowledgeScore != 0 {
		t.Errorf("E2 knowledge score = %v, want 0", second.KnowledgeScore)
	}

	foundInterest := false
	for _, reason := range first.Explanations {
		if reason == hybrid.ReasonInterestMatch {
			foundInterest = true
		}
	}
	if !foundInterest {
		t.Errorf("E1 explanations = %v, want %q present", first.Explanations, hybrid.ReasonInterestMatch)
	}
	if len(second.Explanations) == 0 {
		t.Error("E2 explanations must not be empty")
	}
}

func TestRecommendActiveStrategy(t *testing.T) {
	store := coldStartStore()
	now := time.Now().UTC()
	for i := 0; i < 6; i++ {
		store.attends = append(store.attends, domain.Attendance{
			UserID: "U1", EventID: "E1", Timestamp: now.Add(-time.Duration(i) * time.Hour),
		})
	}

	svc := NewService(store, nil, Options{InteractionThreshold: 5})
	result, err := svc.Recommend(context.Background(), "U1", 10, "")
	if err != nil {
		t.Fatalf("Recommend: %v", err)
	}
	if result.Strategy != "active" {
		t.Errorf("strategy = %q, want active", result.Strategy)
	}
}

func TestRecommendStrategyOverrideBypassesCache(t *testing.T) {
	cache := newStubCache()
	svc := NewService(coldStartStore(), cache, Options{})
	ctx := context.Background()

	if _, err := svc.Recommend(ctx, "U1", 10, ""); err != nil {
		t.Fatalf("first Recommend: %v", err)
	}
	if len(cache.entries) != 1 {
		t.Fatalf("cache entries = %d, want 1", len(cache.entries))
	}

	second, err := svc.Recommend(ctx, "U1", 10, "")
	if err != nil {
		t.Fatalf("second Recommend: %v", err)
	}
	if !second.CacheHit {
		t.Error("second identical request should hit the cache")
	}

	overridden, err := svc.Recommend(ctx, "U1", 10, "trending")
	if err != nil {
		t.Fatalf("override Recommend: %v", err)
	}
	if overridden.CacheHit {
		t.Error("strategy override must bypass the cache")
	}
	if overridden.Strategy != "trending" {
		t.Errorf("strategy = %q, want trending", overridden.Strategy)
	}
}

func TestRecommendNoEvents(t *testing.T) {
	store := &stubStore{users: []domain.User{{ID: "U1"}}}
	svc := NewService(store, nil, Options{})

	result, err := svc.Recommend(context.Background(), "U1", 10, "")
	if err != nil {
		t.Fatalf("Recommend: %v", err)
	}
	if len(result.Recommendations) != 0 {
		t.Errorf("got %d recommendations, want 0", len(result.Recommendations))
	}
}

func TestRecommendTrendingEmptyAttendance(t *testing.T) {
	svc := NewService(coldStartStore(), nil, Options{})

	trending, err := svc.RecommendTrending(context.Background(), 10, 14)
	if err != nil {
		t.Fatalf("RecommendTrending: %v", err)
	}
	if len(trending) != 0 {
		t.Errorf("got %d trending events, want 0", len(trending))
	}
}

func TestRecommendTrendingRanksGrowth(t *testing.T) {
	store := coldStartStore()
	now := time.Now().UTC()
	// E1 grows, E2 declines.
	store.attends = []domain.Attendance{
		{UserID: "U1", EventID: "E1", Timestamp: now.Add(-24 * time.Hour)},
		{UserID: "U1", EventID: "E1", Timestamp: now.Add(-48 * time.Hour)},
		{UserID: "U1", EventID: "E2", Timestamp: now.Add(-24 * time.Hour)},
		{UserID: "U1", EventID: "E2", Timestamp: now.Add(-20 * 24 * time.Hour)},
		{UserID: "U1", EventID: "E2", Timestamp: now.Add(-21 * 24 * time.Hour)},
	}

	svc := NewService(store, nil, Options{})
	trending, err := svc.RecommendTrending(context.Background(), 10, 14)
	if err != nil {
		t.Fatalf("RecommendTrending: %v", err)
	}
	if len(trending) != 2 {
		t.Fatalf("got %d trending events, want 2", len(trending))
	}
	if trending[0].EventID != "E1" {
		t.Errorf("top trending = %s, want E1", trending[0].EventID)
	}
}

func TestRecommendGraphSocialSignal(t *testing.T) {
	store := coldStartStore()
	store.users = append(store.users, domain.User{ID: "U2"})
	ts := time.Now().UTC()
	store.attends = []domain.Attendance{
		{UserID: "U1", EventID: "E1", Timestamp: ts},
		{UserID: "U2", EventID: "E1", Timestamp: ts},
		{UserID: "U2", EventID: "E2", Timestamp: ts},
	}

	svc := NewService(store, nil, Options{})
	scores, err := svc.RecommendGraph(context.Background(), "U1", 10)
	if err != nil {
		t.Fatalf("RecommendGraph: %v", err)
	}
	if len(scores) != 1 || scores[0].EventID != "E2" {
		t.Fatalf("graph scores = %v, want only E2", scores)
	}
}

func TestRecommendPageRankExcludesAttended(t *testing.T) {
	store := coldStartStore()
	store.users = append(store.users, domain.User{ID: "U2"})
	ts := time.Now().UTC()
	store.attends = []domain.Attendance{
		{UserID: "U1", EventID: "E1", Timestamp: ts},
		{UserID: "U2", EventID: "E1", Timestamp: ts},
		{UserID: "U2", EventID: "E2", Timestamp: ts},
	}

	svc := NewService(store, nil, Options{})
	scores, err := svc.RecommendPageRank(context.Background(), "U1", 10)
	if err != nil {
		t.Fatalf("RecommendPageRank: %v", err)
	}
	for _, sc := range scores {
		if sc.EventID == "E1" {
			t.Errorf("attended event E1 must not appear, got %v", scores)
		}
	}
}

func TestGetBatchRecommendations(t *testing.T) {
	store := coldStartStore()
	store.users = append(store.users, domain.User{ID: "U2", ArtInterests: "theatre", RegionPreference: "south"})

	svc := NewService(store, nil, Options{})
	resp, err := svc.GetBatchRecommendations(context.Background(), 1, 10)
	if err != nil {
		t.Fatalf("GetBatchRecommendations: %v", err)
	}

	if resp.TotalUsers != 2 {
		t.Errorf("total users = %d, want 2", resp.TotalUsers)
	}
	if len(resp.Results) != 2 {
		t.Fatalf("got %d results, want 2", len(resp.Results))
	}
	if resp.Summary.SuccessCount != 2 || resp.Summary.FailedCount != 0 {
		t.Errorf("summary = %+v, want 2 successes", resp.Summary)
	}
	if resp.Metadata.RequestID == "" {
		t.Error("request id must be set")
	}
	for _, r := range resp.Results {
		if r.Status != domain.StatusSuccess {
			t.Errorf("user %s status = %s", r.UserID, r.Status)
		}
		if len(r.Recommendations) == 0 {
			t.Errorf("user %s has no recommendations", r.UserID)
		}
	}
}

func TestAddAttendanceInvalidatesCache(t *testing.T) {
	cache := newStubCache()
	store := coldStartStore()
	svc := NewService(store, cache, Options{})
	ctx := context.Background()

	if _, err := svc.Recommend(ctx, "U1", 10, ""); err != nil {
		t.Fatalf("Recommend: %v", err)
	}
	if err := svc.AddAttendance(ctx, "U1", "E2"); err != nil {
		t.Fatalf("AddAttendance: %v", err)
	}

	if len(store.added) != 1 || store.added[0].EventID != "E2" {
		t.Fatalf("stored attendance = %v, want one E2 row", store.added)
	}
	if len(cache.cleared) != 1 || cache.cleared[0] != "U1" {
		t.Errorf("cache cleared for %v, want [U1]", cache.cleared)
	}
}

func TestAddAttendanceUnknownUser(t *testing.T) {
	svc := NewService(coldStartStore(), nil, Options{})
	err := svc.AddAttendance(context.Background(), "ghost", "E1")
	if !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("err = %v, want ErrUserNotFound", err)
	}
}

func TestCategorizeError(t *testing.T) {
	cases := []struct {
		err  error
		code string
	}{
		{domain.ErrUserNotFound, "user_not_found"},
		{domain.ErrNotFitted, "not_fitted"},
		{&domain.SchemaError{Table: "users", Missing: []string{"user_id"}}, "schema_error"},
		{errors.New("boom"), "internal_error"},
	}
	for _, tc := range cases {
		code, _ := CategorizeError(tc.err)
		if code != tc.code {
			t.Errorf("CategorizeError(%v) = %s, want %s", tc.err, code, tc.code)
		}
	}
}
