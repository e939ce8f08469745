package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/inodbandara-official/recommendation/internal/domain"
)

func (r *Repository) Attendance(ctx context.Context) ([]domain.Attendance, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT user_id, event_id, attended_at FROM attends`,
	)
	if err != nil {
		return nil, fmt.Errorf("query attendance: %w", err)
	}
	defer rows.Close()

	var attends []domain.Attendance
	for rows.Next() {
		var a domain.Attendance
		if err := rows.Scan(&a.UserID, &a.EventID, &a.Timestamp); err != nil {
			return nil, fmt.Errorf("scan attendance: %w", err)
		}
		attends = append(attends, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate attendance: %w", err)
	}
	return attends, nil
}

func (r *Repository) Follows(ctx context.Context) ([]domain.Follow, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT user_id, artist_id, followed_at FROM follows`,
	)
	if err != nil {
		return nil, fmt.Errorf("query follows: %w", err)
	}
	defer rows.Close()

	var follows []domain.Follow
	for rows.Next() {
		var f domain.Follow
		if err := rows.Scan(&f.UserID, &f.ArtistID, &f.Timestamp); err != nil {
			return nil, fmt.Errorf("scan follow: %w", err)
		}
		follows = append(follows, f)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate follows: %w", err)
	}
	return follows, nil
}

// AddAttendance records a user attending an event. The user must exist.
func (r *Repository) AddAttendance(ctx context.Context, userID, eventID string, ts time.Time) error {
	var exists bool
	err := r.pool.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM users WHERE user_id = $1)`, userID,
	).Scan(&exists)
	if err != nil {
		return fmt.Errorf("check user %s: %w", userID, err)
	}
	if !exists {
		return domain.ErrUserNotFound
	}

	if _, err := r.pool.Exec(ctx,
		`INSERT INTO attends (user_id, event_id, attended_at) VALUES ($1, $2, $3)`,
		userID, eventID, ts,
	); err != nil {
		return fmt.Errorf("insert attendance for user %s: %w", userID, err)
	}
	return nil
}
