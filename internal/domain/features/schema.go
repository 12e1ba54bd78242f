package features

import (
	"fmt"
	"strings"
)

// Schema is the ordered list of feature columns a frozen model was trained on.
type Schema struct {
	columns []string
}

// NewSchema validates columns: at least one, no blanks, no duplicates.
func NewSchema(columns []string) (Schema, error) {
	if len(columns) == 0 {
		return Schema{}, fmt.Errorf("%w: no columns", ErrInvalidSchema)
	}
	seen := make(map[string]struct{}, len(columns))
	for _, c := range columns {
		if strings.TrimSpace(c) == "" {
			return Schema{}, fmt.Errorf("%w: blank column name", ErrInvalidSchema)
		}
		if _, dup := seen[c]; dup {
			return Schema{}, fmt.Errorf("%w: duplicate column %q", ErrInvalidSchema, c)
		}
		seen[c] = struct{}{}
	}
	return Schema{columns: append([]string(nil), columns...)}, nil
}

// Columns returns a copy of the column names in order.
func (s Schema) Columns() []string { return append([]string(nil), s.columns...) }

// Len returns the number of columns.
func (s Schema) Len() int { return len(s.columns) }

// Equal reports whether other names the same columns in the same order.
func (s Schema) Equal(other []string) bool {
	if len(other) != len(s.columns) {
		return false
	}
	for i, c := range s.columns {
		if other[i] != c {
			return false
		}
	}
	return true
}
