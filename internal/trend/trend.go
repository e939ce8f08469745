// Package trend ranks events by time-windowed attendance counts adjusted for
// growth against the preceding window.
package trend

import (
	"sort"
	"time"

	"github.com/inodbandara-official/recommendation/internal/domain"
)

const DefaultWindowDays = 14

type Recommender struct {
	attends []domain.Attendance
	fitted  bool
}

func NewRecommender() *Recommender {
	return &Recommender{}
}

// Fit keeps attendance rows that carry a timestamp. Rows without one are
// dropped silently; they cannot be placed in a window.
func (r *Recommender) Fit(attends []domain.Attendance) *Recommender {
	kept := make([]domain.Attendance, 0, len(attends))
	for _, a := range attends {
		if a.EventID == "" || a.Timestamp.IsZero() {
			continue
		}
		kept = append(kept, a)
	}
	r.attends = kept
	r.fitted = true
	return r
}

// Recommend scores events by recent-window attendance plus growth rate over
// the preceding window, min-max normalized across the candidates of this call.
//
// prevWindowDays <= 0 defaults to windowDays; a zero now defaults to the
// newest timestamp in the fitted data. The growth denominator treats a zero
// previous count as 1, so a brand-new event gets growth == recent rather than
// a division by zero. When every raw score ties, all candidates score 1.0.
func (r *Recommender) Recommend(topN, windowDays, prevWindowDays int, now time.Time) ([]domain.TrendingEvent, error) {
	if !r.fitted {
		return nil, domain.ErrNotFitted
	}
	if prevWindowDays <= 0 {
		prevWindowDays = windowDays
	}
	if now.IsZero() {
		for _, a := range r.attends {
			if a.Timestamp.After(now) {
				now = a.Timestamp
			}
		}
	}
	if now.IsZero() {
		return []domain.TrendingEvent{}, nil
	}

	recentStart := now.AddDate(0, 0, -windowDays)
	prevStart := recentStart.AddDate(0, 0, -prevWindowDays)

	recent := make(map[string]int)
	prev := make(map[string]int)
	for _, a := range r.attends {
		ts := a.Timestamp
		switch {
		case !ts.Before(recentStart) && !ts.After(now):
			recent[a.EventID]++
		case !ts.Before(prevStart) && ts.Before(recentStart):
			prev[a.EventID]++
		}
	}

	ids := make(map[string]struct{}, len(recent)+len(prev))
	for id := range recent {
		ids[id] = struct{}{}
	}
	for id := range prev {
		ids[id] = struct{}{}
	}
	if len(ids) == 0 {
		return []domain.TrendingEvent{}, nil
	}

	rows := make([]domain.TrendingEvent, 0, len(ids))
	raw := make([]float64, 0, len(ids))
	minRaw, maxRaw := 0.0, 0.0
	first := true
	for id := range ids {
		rc, pc := recent[id], prev[id]
		denom := pc
		if denom == 0 {
			denom = 1
		}
		growth := float64(rc-pc) / float64(denom)
		score := float64(rc) + growth
		rows = append(rows, domain.TrendingEvent{
			EventID:     id,
			RecentCount: rc,
			PrevCount:   pc,
			GrowthRate:  growth,
		})
		raw = append(raw, score)
		if first || score < minRaw {
			minRaw = score
		}
		if first || score > maxRaw {
			maxRaw = score
		}
		first = false
	}

	for i := range rows {
		if maxRaw == minRaw {
			rows[i].TrendScore = 1.0
		} else {
			rows[i].TrendScore = (raw[i] - minRaw) / (maxRaw - minRaw)
		}
	}

	sort.Slice(rows, func(i, j int) bool {
		a, b := rows[i], rows[j]
		if a.TrendScore != b.TrendScore {
			return a.TrendScore > b.TrendScore
		}
		if a.RecentCount != b.RecentCount {
			return a.RecentCount > b.RecentCount
		}
		return a.EventID < b.EventID
	})
	if topN > 0 && len(rows) > topN {
		rows = rows[:topN]
	}
	return rows, nil
}
