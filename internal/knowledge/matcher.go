// Package knowledge scores events against a user's profile. It needs no
// interaction history, which makes it the cold-start signal.
package knowledge

import (
	"sort"

	"github.com/inodbandara-official/recommendation/internal/domain"
	"github.com/inodbandara-official/recommendation/internal/tags"
)

// Weights for the three match components. With the defaults the maximum
// score is 1.0; any subset of components can fire at once.
type Weights struct {
	Category float64
	Location float64
	Price    float64
}

var DefaultWeights = Weights{Category: 0.4, Location: 0.3, Price: 0.3}

type ScoredEvent struct {
	EventID string
	Score   float64
}

type Matcher struct {
	weights Weights
	users   map[string]domain.User
	events  []domain.Event
	fitted  bool
}

func NewMatcher(weights Weights) *Matcher {
	return &Matcher{weights: weights}
}

// Fit snapshots the user and event tables for the lifetime of the matcher.
func (m *Matcher) Fit(users []domain.User, events []domain.Event) *Matcher {
	m.users = make(map[string]domain.User, len(users))
	for _, u := range users {
		m.users[u.ID] = u
	}
	m.events = events
	m.fitted = true
	return m
}

type candidate struct {
	id       string
	score    float64
	price    float64
	hasPrice bool
}

// Recommend returns the topN events ordered by descending score, ascending
// price on ties. An unknown user is not an error: the fallback is the topN
// cheapest events, all scored zero.
func (m *Matcher) Recommend(userID string, topN int) ([]ScoredEvent, error) {
	if !m.fitted {
		return nil, domain.ErrNotFitted
	}

	user, known := m.users[userID]

	var interests, regions map[string]struct{}
	if known {
		interests = tags.Set(user.ArtInterests)
		regions = tags.Set(user.RegionPreference)
	}

	candidates := make([]candidate, 0, len(m.events))
	for _, e := range m.events {
		c := candidate{id: e.ID}
		if e.TicketPrice != nil {
			c.price = *e.TicketPrice
			c.hasPrice = true
		}
		if known {
			if tags.Intersects(interests, tags.Set(e.ArtForms, e.Genres)) {
				c.score += m.weights.Category
			}
			if tags.Intersects(regions, tags.Set(e.Region)) {
				c.score += m.weights.Location
			}
			if user.Budget != nil && c.hasPrice && c.price <= *user.Budget {
				c.score += m.weights.Price
			}
		}
		candidates = append(candidates, c)
	}

	sort.Slice(candidates, func(i, j int) bool {
		a, b := candidates[i], candidates[j]
		if a.score != b.score {
			return a.score > b.score
		}
		if a.hasPrice != b.hasPrice {
			return a.hasPrice // unknown price sorts last
		}
		if a.hasPrice && a.price != b.price {
			return a.price < b.price
		}
		return a.id < b.id
	})

	if topN > 0 && len(candidates) > topN {
		candidates = candidates[:topN]
	}

	result := make([]ScoredEvent, len(candidates))
	for i, c := range candidates {
		result[i] = ScoredEvent{EventID: c.id, Score: c.score}
	}
	return result, nil
}
