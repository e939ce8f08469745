package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// Stable logical schemas of the datasets the engine consumes.
var expectedColumns = map[string][]string{
	"users":   {"user_id", "art_interests", "region_preference"},
	"events":  {"event_id", "art_forms", "genres", "region", "ticket_price"},
	"attends": {"user_id", "event_id", "timestamp"},
	"follows": {"user_id", "artist_id", "timestamp"},
	"artists": {"artist_id"},
}

// users and events are fatal preconditions; interaction tables may be absent
// and behave as empty.
var requiredDatasets = map[string]bool{
	"users":  true,
	"events": true,
}

// LoadCSV reads the named logical dataset from dir, preferring a
// cleaned_<name>.csv left behind by a previous preprocessing run. A missing
// optional dataset yields an empty table with the expected columns; a missing
// required dataset is an error.
func LoadCSV(dir, name string) (*Table, error) {
	expected, ok := expectedColumns[name]
	if !ok {
		return nil, fmt.Errorf("unknown dataset %q", name)
	}

	for _, file := range []string{"cleaned_" + name + ".csv", name + ".csv"} {
		path := filepath.Join(dir, file)
		f, err := os.Open(path)
		if errors.Is(err, os.ErrNotExist) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("open %s: %w", path, err)
		}
		defer f.Close()
		return ReadTable(name, f)
	}

	if requiredDatasets[name] {
		return nil, fmt.Errorf("required dataset %q not found in %s", name, dir)
	}
	return NewTable(name, expected), nil
}

// ReadTable parses CSV content into a Table and validates the dataset's
// expected columns against the header.
func ReadTable(name string, r io.Reader) (*Table, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", name, err)
	}
	if len(records) == 0 {
		return NewTable(name, expectedColumns[name]), nil
	}

	header := make([]string, len(records[0]))
	for i, c := range records[0] {
		header[i] = strings.TrimSpace(c)
	}
	t := NewTable(name, header)
	t.Rows = records[1:]

	if err := t.RequireColumns(expectedColumns[name]...); err != nil {
		return nil, err
	}
	return t, nil
}
