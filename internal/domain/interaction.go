package domain

import "time"

// Attendance is one user->event interaction row. Rows are not deduplicated:
// repeated attendance of the same event is a signal in its own right.
type Attendance struct {
	UserID    string    `json:"user_id"`
	EventID   string    `json:"event_id"`
	Timestamp time.Time `json:"timestamp"`
}

type Follow struct {
	UserID    string    `json:"user_id"`
	ArtistID  string    `json:"artist_id"`
	Timestamp time.Time `json:"timestamp"`
}
