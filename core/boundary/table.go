// Package boundary builds and represents the decile boundary table:
// for every category, the normalized-expenditure value at each
// weighted decile cut point, plus an open upper sentinel. The table
// is built once per survey cycle and is immutable reference data for
// all later lookups.
package boundary

import (
	"sort"

	"expenditure-decile/internal/errors"
)

// CutPoints are the quantile cut points of the table, in row order.
// The final 1.0 row is not a true quantile: it is the 0.9 value plus
// one, an open-ended upper bound so every input maps to some bucket.
var CutPoints = [...]float64{0.1, 0.2, 0.3, 0.4, 0.5, 0.6, 0.7, 0.8, 0.9, 1.0}

// Rows is the number of rows in a boundary table.
const Rows = len(CutPoints)

// Table is the decile boundary table.
type Table struct {
	// Codes are the category columns in build order
	Codes []string

	// Values maps category code to its Rows boundary values,
	// indexed in CutPoints order
	Values map[string][]float64
}

// Column returns the boundary values for a category.
func (t *Table) Column(code string) ([]float64, error) {
	col, ok := t.Values[code]
	if !ok {
		return nil, errors.NotFound("category", code)
	}
	return col, nil
}

// Has reports whether the table holds a column for the code.
func (t *Table) Has(code string) bool {
	_, ok := t.Values[code]
	return ok
}

// Bucket returns the decile (1-10) a normalized expenditure falls
// into: the row of the smallest boundary value strictly greater than
// the input. Values below the first boundary clamp to decile 1;
// values at or above the last clamp to decile 10. An input exactly on
// a boundary belongs to the decile below the next boundary, because
// the search excludes values not strictly greater than the input.
func (t *Table) Bucket(code string, normalized float64) (int, error) {
	if normalized < 0 {
		return 0, errors.Inputf("expenditure must be non-negative, got %g", normalized)
	}
	col, err := t.Column(code)
	if err != nil {
		return 0, err
	}

	idx := sort.Search(len(col), func(i int) bool { return col[i] > normalized })
	if idx == len(col) {
		// At or above the open upper sentinel.
		idx = len(col) - 1
	}
	// Row i holds the cut point (i+1)/10, so the decile is i+1.
	return idx + 1, nil
}

// Validate checks the structural invariants of the table: every
// column has exactly Rows values, values are non-decreasing through
// the 0.9 row, and the 1.0 row equals the 0.9 row plus one.
func (t *Table) Validate() error {
	if len(t.Codes) == 0 {
		return errors.New(errors.TypeTable, "boundary table has no categories")
	}
	for _, code := range t.Codes {
		col, ok := t.Values[code]
		if !ok {
			return errors.Newf(errors.TypeTable, "boundary table is missing values for category %s", code)
		}
		if len(col) != Rows {
			return errors.Newf(errors.TypeTable, "category %s has %d rows, want %d", code, len(col), Rows)
		}
		for i := 1; i < Rows-1; i++ {
			if col[i] < col[i-1] {
				return errors.Newf(errors.TypeTable, "category %s boundaries decrease between cut points %g and %g", code, CutPoints[i-1], CutPoints[i])
			}
		}
		if col[Rows-1] != col[Rows-2]+1 {
			return errors.Newf(errors.TypeTable, "category %s sentinel row is %g, want %g", code, col[Rows-1], col[Rows-2]+1)
		}
	}
	return nil
}
