package dataset

import (
	"strconv"
	"time"

	"github.com/inodbandara-official/recommendation/internal/domain"
)

// Timestamp layouts seen in the source data.
var timeLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// parseTime returns the zero time for values no layout accepts; the trend
// model drops such rows at fit, everything else ignores timestamps.
func parseTime(val string) time.Time {
	for _, layout := range timeLayouts {
		if ts, err := time.Parse(layout, val); err == nil {
			return ts
		}
	}
	return time.Time{}
}

func DecodeUsers(t *Table) ([]domain.User, error) {
	if err := t.RequireColumns("user_id"); err != nil {
		return nil, err
	}
	users := make([]domain.User, 0, t.Len())
	for i := range t.Rows {
		id := t.Value(i, "user_id")
		if id == "" {
			continue
		}
		u := domain.User{
			ID:               id,
			ArtInterests:     t.Value(i, "art_interests"),
			RegionPreference: t.Value(i, "region_preference"),
		}
		if b, err := strconv.ParseFloat(t.Value(i, "budget"), 64); err == nil {
			u.Budget = &b
		}
		users = append(users, u)
	}
	return users, nil
}

func DecodeEvents(t *Table) ([]domain.Event, error) {
	if err := t.RequireColumns("event_id", "ticket_price"); err != nil {
		return nil, err
	}
	events := make([]domain.Event, 0, t.Len())
	for i := range t.Rows {
		id := t.Value(i, "event_id")
		if id == "" {
			continue
		}
		e := domain.Event{
			ID:       id,
			Name:     t.Value(i, "name"),
			ArtForms: t.Value(i, "art_forms"),
			Genres:   t.Value(i, "genres"),
			Region:   t.Value(i, "region"),
			ArtistID: t.Value(i, "artist_id"),
		}
		if p, err := strconv.ParseFloat(t.Value(i, "ticket_price"), 64); err == nil {
			e.TicketPrice = &p
		}
		events = append(events, e)
	}
	return events, nil
}

func DecodeArtists(t *Table) ([]domain.Artist, error) {
	if err := t.RequireColumns("artist_id"); err != nil {
		return nil, err
	}
	artists := make([]domain.Artist, 0, t.Len())
	for i := range t.Rows {
		id := t.Value(i, "artist_id")
		if id == "" {
			continue
		}
		artists = append(artists, domain.Artist{ID: id, Name: t.Value(i, "name")})
	}
	return artists, nil
}

func DecodeAttendance(t *Table) ([]domain.Attendance, error) {
	if err := t.RequireColumns("user_id", "event_id", "timestamp"); err != nil {
		return nil, err
	}
	attends := make([]domain.Attendance, 0, t.Len())
	for i := range t.Rows {
		userID, eventID := t.Value(i, "user_id"), t.Value(i, "event_id")
		if userID == "" || eventID == "" {
			continue
		}
		attends = append(attends, domain.Attendance{
			UserID:    userID,
			EventID:   eventID,
			Timestamp: parseTime(t.Value(i, "timestamp")),
		})
	}
	return attends, nil
}

func DecodeFollows(t *Table) ([]domain.Follow, error) {
	if err := t.RequireColumns("user_id", "artist_id", "timestamp"); err != nil {
		return nil, err
	}
	follows := make([]domain.Follow, 0, t.Len())
	for i := range t.Rows {
		userID, artistID := t.Value(i, "user_id"), t.Value(i, "artist_id")
		if userID == "" || artistID == "" {
			continue
		}
		follows = append(follows, domain.Follow{
			UserID:    userID,
			ArtistID:  artistID,
			Timestamp: parseTime(t.Value(i, "timestamp")),
		})
	}
	return follows, nil
}
