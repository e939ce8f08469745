package seeds

import (
	"context"
	"fmt"
	"math"
	"math/rand"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog/log"
)

const (
	numUsers   = 40
	numArtists = 15
	numEvents  = 60
	numAttends = 400
	numFollows = 120
)

func Setup(ctx context.Context, pool *pgxpool.Pool) error {
	rng := rand.New(rand.NewSource(42))

	// Truncate existing data before insert
	log.Info().Msg("[seed] truncating existing data")
	if _, err := pool.Exec(ctx, `
		TRUNCATE follows, attends, events, artists, users CASCADE
	`); err != nil {
		return fmt.Errorf("truncate: %w", err)
	}

	log.Info().Msg("[seed] inserting users")
	if err := seedUsers(ctx, pool, rng, numUsers); err != nil {
		return fmt.Errorf("seed users: %w", err)
	}

	log.Info().Msg("[seed] inserting artists")
	if err := seedArtists(ctx, pool, rng, numArtists); err != nil {
		return fmt.Errorf("seed artists: %w", err)
	}

	log.Info().Msg("[seed] inserting events")
	if err := seedEvents(ctx, pool, rng, numEvents); err != nil {
		return fmt.Errorf("seed events: %w", err)
	}

	log.Info().Msg("[seed] inserting attendance")
	if err := seedAttends(ctx, pool, rng, numAttends); err != nil {
		return fmt.Errorf("seed attendance: %w", err)
	}

	log.Info().Msg("[seed] inserting follows")
	if err := seedFollows(ctx, pool, rng, numFollows); err != nil {
		return fmt.Errorf("seed follows: %w", err)
	}

	log.Info().Msg("[seed] seeding complete")
	return nil
}

var (
	artForms = []string{"music", "dance", "theatre", "painting", "sculpture", "folk", "photography"}
	regions  = []string{"north", "south", "east", "west", "central"}
)

func seedUsers(ctx context.Context, pool *pgxpool.Pool, rng *rand.Rand, n int) error {
	rows := []string{}
	args := []any{}

	for i := 0; i < n; i++ {
		interests := pickInterests(rng)
		region := regions[rng.Intn(len(regions))]

		var budget any
		// Roughly a quarter of users have no stated budget.
		if rng.Float64() > 0.25 {
			budget = math.Round(rng.Float64()*190+10) // 10..200
		}

		base := len(args)
		rows = append(rows, fmt.Sprintf("($%d, $%d, $%d, $%d)", base+1, base+2, base+3, base+4))
		args = append(args, fmt.Sprintf("U%03d", i+1), interests, region, budget)
	}

	if len(rows) == 0 {
		return nil
	}

	query := "INSERT INTO users (user_id, art_interests, region_preference, budget) VALUES " +
		strings.Join(rows, ", ")

	_, err := pool.Exec(ctx, query, args...)
	return err
}

func seedArtists(ctx context.Context, pool *pgxpool.Pool, rng *rand.Rand, n int) error {
	first := []string{"Asha", "Ravi", "Nilu", "Kamal", "Sithara", "Dinesh", "Maya", "Tharindu"}
	last := []string{"Perera", "Fernando", "Silva", "Jayasinghe", "Bandara", "Wickrama"}

	rows := []string{}
	args := []any{}

	for i := 0; i < n; i++ {
		name := first[rng.Intn(len(first))] + " " + last[rng.Intn(len(last))]

		base := len(args)
		rows = append(rows, fmt.Sprintf("($%d, $%d)", base+1, base+2))
		args = append(args, fmt.Sprintf("A%03d", i+1), name)
	}

	if len(rows) == 0 {
		return nil
	}

	query := "INSERT INTO artists (artist_id, name) VALUES " + strings.Join(rows, ", ")
	_, err := pool.Exec(ctx, query, args...)
	return err
}

func seedEvents(ctx context.Context, pool *pgxpool.Pool, rng *rand.Rand, n int) error {
	venues := []string{"Open Air", "Gallery", "Amphitheatre", "Pavilion", "Hall", "Courtyard"}
	genres := []string{"classical", "contemporary", "traditional", "fusion", "experimental"}

	rows := []string{}
	args := []any{}

	for i := 0; i < n; i++ {
		form := artForms[i%len(artForms)]
		name := fmt.Sprintf("%s %s %d", titleCase(form), venues[rng.Intn(len(venues))], i+1)
		genre := genres[rng.Intn(len(genres))]
		region := regions[rng.Intn(len(regions))]

		var price any
		if rng.Float64() > 0.15 {
			price = math.Round(rng.Float64()*145+5) // 5..150
		}

		var artistID any
		if rng.Float64() > 0.2 {
			artistID = fmt.Sprintf("A%03d", rng.Intn(numArtists)+1)
		}

		base := len(args)
		rows = append(rows, fmt.Sprintf("($%d, $%d, $%d, $%d, $%d, $%d, $%d)",
			base+1, base+2, base+3, base+4, base+5, base+6, base+7))
		args = append(args, fmt.Sprintf("E%03d", i+1), name, form, genre, region, price, artistID)
	}

	if len(rows) == 0 {
		return nil
	}

	query := "INSERT INTO events (event_id, name, art_forms, genres, region, ticket_price, artist_id) VALUES " +
		strings.Join(rows, ", ")

	_, err := pool.Exec(ctx, query, args...)
	return err
}

func seedAttends(ctx context.Context, pool *pgxpool.Pool, rng *rand.Rand, n int) error {
	rows := []string{}
	args := []any{}

	for i := 0; i < n; i++ {
		// Power-law skew: a handful of users and events carry most rows.
		user := powerLawIndex(rng, numUsers, 1.5)
		event := powerLawIndex(rng, numEvents, 1.3)
		attendedAt := time.Now().AddDate(0, 0, -rng.Intn(60))

		base := len(args)
		rows = append(rows, fmt.Sprintf("($%d, $%d, $%d)", base+1, base+2, base+3))
		args = append(args, fmt.Sprintf("U%03d", user), fmt.Sprintf("E%03d", event), attendedAt)
	}

	if len(rows) == 0 {
		return nil
	}

	query := "INSERT INTO attends (user_id, event_id, attended_at) VALUES " + strings.Join(rows, ", ")
	_, err := pool.Exec(ctx, query, args...)
	return err
}

func seedFollows(ctx context.Context, pool *pgxpool.Pool, rng *rand.Rand, n int) error {
	seen := make(map[[2]int]bool)

	rows := []string{}
	args := []any{}

	for i := 0; i < n; i++ {
		user := powerLawIndex(rng, numUsers, 1.5)
		artist := powerLawIndex(rng, numArtists, 1.2)

		key := [2]int{user, artist}
		if seen[key] {
			continue
		}
		seen[key] = true

		followedAt := time.Now().AddDate(0, 0, -rng.Intn(180))

		base := len(args)
		rows = append(rows, fmt.Sprintf("($%d, $%d, $%d)", base+1, base+2, base+3))
		args = append(args, fmt.Sprintf("U%03d", user), fmt.Sprintf("A%03d", artist), followedAt)
	}

	if len(rows) == 0 {
		return nil
	}

	query := "INSERT INTO follows (user_id, artist_id, followed_at) VALUES " + strings.Join(rows, ", ")
	_, err := pool.Exec(ctx, query, args...)
	return err
}

func pickInterests(rng *rand.Rand) string {
	count := rng.Intn(3) + 1
	picked := map[string]bool{}
	out := []string{}
	for len(out) < count {
		form := artForms[rng.Intn(len(artForms))]
		if picked[form] {
			continue
		}
		picked[form] = true
		out = append(out, form)
	}
	return strings.Join(out, ", ")
}

func titleCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

func powerLawIndex(rng *rand.Rand, n int, exponent float64) int {
	idx := int(math.Ceil(math.Pow(rng.Float64(), exponent) * float64(n)))
	return max(1, min(idx, n))
}
