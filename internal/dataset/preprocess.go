package dataset

import (
	"strings"

	"github.com/inodbandara-official/recommendation/internal/domain"
)

// Clean removes exact-duplicate rows and rows with a missing value in any
// *_id column. Attendance rows that differ only by timestamp survive: those
// duplicates are meaningful, identical rows are not.
func Clean(t *Table) *Table {
	var idColumns []int
	for i, c := range t.Columns {
		if c == "id" || strings.HasSuffix(c, "_id") {
			idColumns = append(idColumns, i)
		}
	}

	cleaned := NewTable(t.Name, t.Columns)
	seen := make(map[string]struct{}, len(t.Rows))
rows:
	for _, row := range t.Rows {
		for _, idx := range idColumns {
			if idx >= len(row) || strings.TrimSpace(row[idx]) == "" {
				continue rows
			}
		}
		key := strings.Join(row, "\x1f")
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		cleaned.Rows = append(cleaned.Rows, row)
	}
	return cleaned
}

// PruneAttendance drops rows whose user or event is absent from the
// reference sets. An empty reference set means that table was not available,
// so no pruning applies against it.
func PruneAttendance(attends []domain.Attendance, users, events map[string]struct{}) []domain.Attendance {
	kept := make([]domain.Attendance, 0, len(attends))
	for _, a := range attends {
		if len(users) > 0 {
			if _, ok := users[a.UserID]; !ok {
				continue
			}
		}
		if len(events) > 0 {
			if _, ok := events[a.EventID]; !ok {
				continue
			}
		}
		kept = append(kept, a)
	}
	return kept
}

// PruneFollows drops rows whose user or artist is absent from the reference sets.
func PruneFollows(follows []domain.Follow, users, artists map[string]struct{}) []domain.Follow {
	kept := make([]domain.Follow, 0, len(follows))
	for _, f := range follows {
		if len(users) > 0 {
			if _, ok := users[f.UserID]; !ok {
				continue
			}
		}
		if len(artists) > 0 {
			if _, ok := artists[f.ArtistID]; !ok {
				continue
			}
		}
		kept = append(kept, f)
	}
	return kept
}
