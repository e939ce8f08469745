package dataset

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/inodbandara-official/recommendation/internal/domain"
)

// CSVStore serves the five logical tables from a directory of CSV files,
// applying the preprocessing pass and foreign-key pruning on every load.
// Loads are stateless, so concurrent readers are safe as long as nothing
// writes the files underneath them.
type CSVStore struct {
	dir string
}

func NewCSVStore(dir string) *CSVStore {
	return &CSVStore{dir: dir}
}

func (s *CSVStore) load(name string) (*Table, error) {
	t, err := LoadCSV(s.dir, name)
	if err != nil {
		return nil, err
	}
	return Clean(t), nil
}

func (s *CSVStore) Users(ctx context.Context) ([]domain.User, error) {
	t, err := s.load("users")
	if err != nil {
		return nil, err
	}
	return DecodeUsers(t)
}

func (s *CSVStore) Events(ctx context.Context) ([]domain.Event, error) {
	t, err := s.load("events")
	if err != nil {
		return nil, err
	}
	return DecodeEvents(t)
}

func (s *CSVStore) Artists(ctx context.Context) ([]domain.Artist, error) {
	t, err := s.load("artists")
	if err != nil {
		return nil, err
	}
	return DecodeArtists(t)
}

func (s *CSVStore) Attendance(ctx context.Context) ([]domain.Attendance, error) {
	t, err := s.load("attends")
	if err != nil {
		return nil, err
	}
	attends, err := DecodeAttendance(t)
	if err != nil {
		return nil, err
	}

	users, err := s.idSet(ctx, "users", "user_id")
	if err != nil {
		return nil, err
	}
	events, err := s.idSet(ctx, "events", "event_id")
	if err != nil {
		return nil, err
	}
	return PruneAttendance(attends, users, events), nil
}

func (s *CSVStore) Follows(ctx context.Context) ([]domain.Follow, error) {
	t, err := s.load("follows")
	if err != nil {
		return nil, err
	}
	follows, err := DecodeFollows(t)
	if err != nil {
		return nil, err
	}

	users, err := s.idSet(ctx, "users", "user_id")
	if err != nil {
		return nil, err
	}
	artists, err := s.idSet(ctx, "artists", "artist_id")
	if err != nil {
		return nil, err
	}
	return PruneFollows(follows, users, artists), nil
}

func (s *CSVStore) idSet(ctx context.Context, name, column string) (map[string]struct{}, error) {
	t, err := s.load(name)
	if err != nil {
		return nil, err
	}
	set := make(map[string]struct{}, t.Len())
	for i := range t.Rows {
		if id := t.Value(i, column); id != "" {
			set[id] = struct{}{}
		}
	}
	return set, nil
}

// UserIDs pages through user identifiers in ascending order.
func (s *CSVStore) UserIDs(ctx context.Context, page, limit int) ([]string, error) {
	users, err := s.Users(ctx)
	if err != nil {
		return nil, err
	}
	ids := make([]string, 0, len(users))
	for _, u := range users {
		ids = append(ids, u.ID)
	}
	sort.Strings(ids)

	offset := (page - 1) * limit
	if offset >= len(ids) {
		return []string{}, nil
	}
	end := offset + limit
	if end > len(ids) {
		end = len(ids)
	}
	return ids[offset:end], nil
}

func (s *CSVStore) CountUsers(ctx context.Context) (int, error) {
	users, err := s.Users(ctx)
	if err != nil {
		return 0, err
	}
	return len(users), nil
}

// AddAttendance appends an attendance row to the attends file reads resolve
// to: cleaned_attends.csv when present, attends.csv otherwise. Creating the
// row anywhere else would leave it invisible to every load. The file gets its
// header when absent. The user must exist.
func (s *CSVStore) AddAttendance(ctx context.Context, userID, eventID string, ts time.Time) error {
	users, err := s.idSet(ctx, "users", "user_id")
	if err != nil {
		return err
	}
	if _, ok := users[userID]; !ok {
		return domain.ErrUserNotFound
	}

	path := filepath.Join(s.dir, "cleaned_attends.csv")
	if _, err := os.Stat(path); os.IsNotExist(err) {
		path = filepath.Join(s.dir, "attends.csv")
	}
	_, statErr := os.Stat(path)
	newFile := os.IsNotExist(statErr)

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if newFile {
		if err := w.Write(expectedColumns["attends"]); err != nil {
			return fmt.Errorf("write header: %w", err)
		}
	}
	if err := w.Write([]string{userID, eventID, ts.UTC().Format(time.RFC3339)}); err != nil {
		return fmt.Errorf("append attendance: %w", err)
	}
	w.Flush()
	return w.Error()
}
