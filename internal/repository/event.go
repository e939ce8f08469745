package repository

import (
	"context"
	"fmt"

	"github.com/inodbandara-official/recommendation/internal/domain"
)

func (r *Repository) Events(ctx context.Context) ([]domain.Event, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT event_id, name, art_forms, genres, region, ticket_price, COALESCE(artist_id, '')
		 FROM events`,
	)
	if err != nil {
		return nil, fmt.Errorf("query events: %w", err)
	}
	defer rows.Close()

	var events []domain.Event
	for rows.Next() {
		var e domain.Event
		if err := rows.Scan(&e.ID, &e.Name, &e.ArtForms, &e.Genres, &e.Region, &e.TicketPrice, &e.ArtistID); err != nil {
			return nil, fmt.Errorf("scan event: %w", err)
		}
		events = append(events, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate events: %w", err)
	}
	return events, nil
}

func (r *Repository) Artists(ctx context.Context) ([]domain.Artist, error) {
	rows, err := r.pool.Query(ctx, `SELECT artist_id, name FROM artists`)
	if err != nil {
		return nil, fmt.Errorf("query artists: %w", err)
	}
	defer rows.Close()

	var artists []domain.Artist
	for rows.Next() {
		var a domain.Artist
		if err := rows.Scan(&a.ID, &a.Name); err != nil {
			return nil, fmt.Errorf("scan artist: %w", err)
		}
		artists = append(artists, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate artists: %w", err)
	}
	return artists, nil
}
