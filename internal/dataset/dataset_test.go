package dataset

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/inodbandara-official/recommendation/internal/domain"
)

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestReadTableSchemaError(t *testing.T) {
	_, err := ReadTable("events", strings.NewReader("event_id,art_forms\nE1,music\n"))

	var schemaErr *domain.SchemaError
	if !errors.As(err, &schemaErr) {
		t.Fatalf("expected SchemaError, got %v", err)
	}
	for _, col := range []string{"genres", "region", "ticket_price"} {
		found := false
		for _, m := range schemaErr.Missing {
			if m == col {
				found = true
			}
		}
		if !found {
			t.Errorf("expected %q listed as missing, got %v", col, schemaErr.Missing)
		}
	}
}

func TestLoadCSVMissingTables(t *testing.T) {
	dir := t.TempDir()

	// Missing optional table behaves as empty with the expected columns.
	table, err := LoadCSV(dir, "follows")
	if err != nil {
		t.Fatalf("missing optional table must not error: %v", err)
	}
	if table.Len() != 0 || !table.HasColumn("artist_id") {
		t.Errorf("expected empty follows table with schema, got %+v", table)
	}

	// Missing required table is fatal.
	if _, err := LoadCSV(dir, "users"); err == nil {
		t.Error("expected error for missing required users table")
	}
}

func TestLoadCSVPrefersCleaned(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "users.csv", "user_id,art_interests,region_preference\nU1,music,north\nU2,dance,south\n")
	writeFile(t, dir, "cleaned_users.csv", "user_id,art_interests,region_preference\nU1,music,north\n")

	table, err := LoadCSV(dir, "users")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if table.Len() != 1 {
		t.Errorf("expected the cleaned file's single row, got %d rows", table.Len())
	}
}

func TestCleanDropsDuplicatesAndMissingIDs(t *testing.T) {
	table := NewTable("attends", []string{"user_id", "event_id", "timestamp"})
	table.Rows = [][]string{
		{"U1", "E1", "2026-01-01"},
		{"U1", "E1", "2026-01-01"}, // exact duplicate
		{"U1", "E1", "2026-01-02"}, // same pair, new timestamp: kept
		{"", "E2", "2026-01-03"},   // missing id
	}

	cleaned := Clean(table)
	if cleaned.Len() != 2 {
		t.Errorf("expected 2 rows after cleaning, got %d", cleaned.Len())
	}
}

func TestDecodeUsersAndEvents(t *testing.T) {
	users, err := DecodeUsers(mustTable(t, "users",
		"user_id,art_interests,region_preference,budget\nU1,\"music, dance\",north,150\nU2,theatre,south,\n"))
	if err != nil {
		t.Fatalf("decode users: %v", err)
	}
	if len(users) != 2 {
		t.Fatalf("expected 2 users, got %d", len(users))
	}
	if users[0].Budget == nil || *users[0].Budget != 150 {
		t.Errorf("expected budget 150 for U1, got %v", users[0].Budget)
	}
	if users[1].Budget != nil {
		t.Errorf("expected nil budget for U2, got %v", users[1].Budget)
	}

	events, err := DecodeEvents(mustTable(t, "events",
		"event_id,art_forms,genres,region,ticket_price\nE1,music,folk,north,50\nE2,dance,,south,n/a\n"))
	if err != nil {
		t.Fatalf("decode events: %v", err)
	}
	if events[0].TicketPrice == nil || *events[0].TicketPrice != 50 {
		t.Errorf("expected price 50 for E1, got %v", events[0].TicketPrice)
	}
	if events[1].TicketPrice != nil {
		t.Errorf("unparsable price must decode as unknown, got %v", events[1].TicketPrice)
	}
}

func TestDecodeAttendanceTimestamps(t *testing.T) {
	attends, err := DecodeAttendance(mustTable(t, "attends",
		"user_id,event_id,timestamp\nU1,E1,2026-03-01T10:00:00Z\nU1,E2,2026-03-02\nU1,E3,not-a-time\n"))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(attends) != 3 {
		t.Fatalf("expected 3 rows, got %d", len(attends))
	}
	if attends[0].Timestamp.IsZero() || attends[1].Timestamp.IsZero() {
		t.Error("expected parsed timestamps for RFC3339 and date layouts")
	}
	if !attends[2].Timestamp.IsZero() {
		t.Error("unparsable timestamp must decode as zero time")
	}
}

func TestCSVStoreForeignKeyPruning(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "users.csv", "user_id,art_interests,region_preference\nU1,music,north\n")
	writeFile(t, dir, "events.csv", "event_id,art_forms,genres,region,ticket_price\nE1,music,,north,10\n")
	writeFile(t, dir, "attends.csv",
		"user_id,event_id,timestamp\nU1,E1,2026-03-01\nU1,GHOST,2026-03-01\nGHOST,E1,2026-03-01\n")

	store := NewCSVStore(dir)
	attends, err := store.Attendance(context.Background())
	if err != nil {
		t.Fatalf("attendance: %v", err)
	}
	if len(attends) != 1 {
		t.Fatalf("expected 1 row after pruning, got %d", len(attends))
	}
	if attends[0].UserID != "U1" || attends[0].EventID != "E1" {
		t.Errorf("unexpected surviving row %+v", attends[0])
	}
}

func TestCSVStoreAddAttendance(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "users.csv", "user_id,art_interests,region_preference\nU1,music,north\n")
	writeFile(t, dir, "events.csv", "event_id,art_forms,genres,region,ticket_price\nE1,music,,north,10\n")

	store := NewCSVStore(dir)
	ctx := context.Background()

	if err := store.AddAttendance(ctx, "GHOST", "E1", time.Now()); !errors.Is(err, domain.ErrUserNotFound) {
		t.Errorf("expected ErrUserNotFound, got %v", err)
	}

	if err := store.AddAttendance(ctx, "U1", "E1", time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)); err != nil {
		t.Fatalf("add attendance: %v", err)
	}
	attends, err := store.Attendance(ctx)
	if err != nil {
		t.Fatalf("attendance: %v", err)
	}
	if len(attends) != 1 || attends[0].EventID != "E1" {
		t.Errorf("expected the appended row, got %v", attends)
	}
}

func TestCSVStoreAddAttendanceWithCleanedFile(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "users.csv", "user_id,art_interests,region_preference\nU1,music,north\n")
	writeFile(t, dir, "events.csv", "event_id,art_forms,genres,region,ticket_price\nE1,music,,north,10\nE2,dance,,south,20\n")
	// A cleaned file shadows attends.csv on every read, so the write must
	// land there too.
	writeFile(t, dir, "cleaned_attends.csv", "user_id,event_id,timestamp\nU1,E1,2026-03-01\n")
	writeFile(t, dir, "attends.csv", "user_id,event_id,timestamp\nU1,E1,2026-01-01\n")

	store := NewCSVStore(dir)
	ctx := context.Background()

	if err := store.AddAttendance(ctx, "U1", "E2", time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)); err != nil {
		t.Fatalf("add attendance: %v", err)
	}

	attends, err := store.Attendance(ctx)
	if err != nil {
		t.Fatalf("attendance: %v", err)
	}
	if len(attends) != 2 {
		t.Fatalf("expected the appended row to be readable, got %d rows", len(attends))
	}
	found := false
	for _, a := range attends {
		if a.EventID == "E2" {
			found = true
		}
	}
	if !found {
		t.Error("appended row missing from attendance reads")
	}

	// attends.csv stays untouched; the shadowed file would hide the write.
	raw, err := os.ReadFile(filepath.Join(dir, "attends.csv"))
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(string(raw), "E2") {
		t.Error("write landed in the shadowed attends.csv")
	}
}

func mustTable(t *testing.T, name, content string) *Table {
	t.Helper()
	table, err := ReadTable(name, strings.NewReader(content))
	if err != nil {
		t.Fatal(err)
	}
	return table
}
