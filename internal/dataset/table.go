// Package dataset is the tabular boundary of the engine: it loads logical
// datasets from CSV files, validates their schemas, applies the preprocessing
// pass and decodes rows into typed records.
package dataset

import (
	"strings"

	"github.com/inodbandara-official/recommendation/internal/domain"
)

// Table holds one logical dataset while it is still tabular. Everything past
// the decode step works on typed records instead.
type Table struct {
	Name    string
	Columns []string
	Rows    [][]string

	index map[string]int
}

func NewTable(name string, columns []string) *Table {
	index := make(map[string]int, len(columns))
	for i, c := range columns {
		index[c] = i
	}
	return &Table{Name: name, Columns: columns, index: index}
}

func (t *Table) Len() int {
	return len(t.Rows)
}

func (t *Table) HasColumn(column string) bool {
	_, ok := t.index[column]
	return ok
}

// Value returns the trimmed cell at (row, column), or "" when the column is
// unknown or the row is ragged.
func (t *Table) Value(row int, column string) string {
	idx, ok := t.index[column]
	if !ok || row >= len(t.Rows) || idx >= len(t.Rows[row]) {
		return ""
	}
	return strings.TrimSpace(t.Rows[row][idx])
}

// RequireColumns returns a SchemaError naming every missing column.
func (t *Table) RequireColumns(columns ...string) error {
	var missing []string
	for _, c := range columns {
		if !t.HasColumn(c) {
			missing = append(missing, c)
		}
	}
	if len(missing) > 0 {
		return &domain.SchemaError{Table: t.Name, Missing: missing}
	}
	return nil
}
