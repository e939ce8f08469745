package knowledge

import (
	"errors"
	"math"
	"testing"

	"github.com/inodbandara-official/recommendation/internal/domain"
)

func price(v float64) *float64 { return &v }

func fixtureEvents() []domain.Event {
	return []domain.Event{
		{ID: "E1", ArtForms: "music", Region: "north", TicketPrice: price(10)},
		{ID: "E2", ArtForms: "theatre", Region: "south", TicketPrice: price(100)},
		{ID: "E3", ArtForms: "dance", Genres: "folk", Region: "north", TicketPrice: price(50)},
	}
}

func TestRecommendBeforeFit(t *testing.T) {
	_, err := NewMatcher(DefaultWeights).Recommend("U1", 5)
	if !errors.Is(err, domain.ErrNotFitted) {
		t.Errorf("expected ErrNotFitted, got %v", err)
	}
}

func TestCategoryAndRegionWeights(t *testing.T) {
	users := []domain.User{{ID: "U1", ArtInterests: "music,dance", RegionPreference: "north"}}
	m := NewMatcher(DefaultWeights).Fit(users, fixtureEvents())

	recs, err := m.Recommend("U1", 3)
	if err != nil {
		t.Fatalf("recommend: %v", err)
	}

	scores := map[string]float64{}
	for _, r := range recs {
		scores[r.EventID] = r.Score
	}

	// E1: category + region = 0.7; E3 likewise; E2: nothing = 0
	if math.Abs(scores["E1"]-0.7) > 1e-12 {
		t.Errorf("E1 score = %f, want 0.7", scores["E1"])
	}
	if scores["E2"] != 0 {
		t.Errorf("E2 score = %f, want 0", scores["E2"])
	}
	if recs[len(recs)-1].EventID != "E2" {
		t.Errorf("expected E2 ranked last, got %s", recs[len(recs)-1].EventID)
	}
	// E1 and E3 tie on 0.7; cheaper E1 wins
	if recs[0].EventID != "E1" {
		t.Errorf("expected cheaper E1 first on tied score, got %s", recs[0].EventID)
	}
}

func TestBudgetFit(t *testing.T) {
	budget := 60.0
	users := []domain.User{{ID: "U1", ArtInterests: "opera", Budget: &budget}}
	m := NewMatcher(DefaultWeights).Fit(users, fixtureEvents())

	recs, err := m.Recommend("U1", 3)
	if err != nil {
		t.Fatalf("recommend: %v", err)
	}

	scores := map[string]float64{}
	for _, r := range recs {
		scores[r.EventID] = r.Score
	}

	// Only the price component fires: E1 (10) and E3 (50) fit, E2 (100) does not.
	if math.Abs(scores["E1"]-0.3) > 1e-12 || math.Abs(scores["E3"]-0.3) > 1e-12 {
		t.Errorf("expected 0.3 budget score for E1/E3, got %v", scores)
	}
	if scores["E2"] != 0 {
		t.Errorf("expected 0 for over-budget E2, got %f", scores["E2"])
	}
}

func TestUnknownUserFallsBackToCheapest(t *testing.T) {
	m := NewMatcher(DefaultWeights).Fit(nil, fixtureEvents())

	recs, err := m.Recommend("UNKNOWN", 2)
	if err != nil {
		t.Fatalf("unknown user must not be an error, got %v", err)
	}
	if len(recs) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(recs))
	}
	if recs[0].EventID != "E1" || recs[1].EventID != "E3" {
		t.Errorf("expected cheapest-first [E1 E3], got [%s %s]", recs[0].EventID, recs[1].EventID)
	}
	for _, r := range recs {
		if r.Score != 0 {
			t.Errorf("fallback rows must score 0, got %f for %s", r.Score, r.EventID)
		}
	}
}

func TestMaxScoreWithAllComponents(t *testing.T) {
	budget := 20.0
	users := []domain.User{{ID: "U1", ArtInterests: "music", RegionPreference: "north", Budget: &budget}}
	m := NewMatcher(DefaultWeights).Fit(users, fixtureEvents())

	recs, err := m.Recommend("U1", 1)
	if err != nil {
		t.Fatalf("recommend: %v", err)
	}
	if recs[0].EventID != "E1" {
		t.Fatalf("expected E1, got %s", recs[0].EventID)
	}
	if math.Abs(recs[0].Score-1.0) > 1e-12 {
		t.Errorf("expected max score 1.0, got %f", recs[0].Score)
	}
}
