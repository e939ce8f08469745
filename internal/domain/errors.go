package domain

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUserNotFound is returned by write paths that require an existing user.
// Read paths never return it: an unknown user gets a degraded result instead.
var ErrUserNotFound = errors.New("user not found")

// ErrNotFitted signals Recommend called before Fit. Always a defect in the
// calling sequence, never recovered.
var ErrNotFitted = errors.New("recommender not fitted: call Fit before Recommend")

// SchemaError reports required columns absent from an input table.
type SchemaError struct {
	Table   string
	Missing []string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("table %q is missing required columns: %s", e.Table, strings.Join(e.Missing, ", "))
}

func IsSchemaError(err error) bool {
	var target *SchemaError
	return errors.As(err, &target)
}
