// Package survey models the household expenditure survey extract and
// its ingestion. It is strictly separated from estimation: read →
// validate → hand off to the boundary builder.
package survey

import (
	"expenditure-decile/internal/errors"
)

// Row is one household record from the survey extract.
type Row struct {
	// Expenditures maps category code to raw monthly expenditure
	Expenditures map[string]float64

	// Weight is the sampling weight of the household
	Weight float64

	// Equivalence is the equivalence-scaled household size the raw
	// expenditures are normalized by
	Equivalence float64
}

// Normalized returns the row's normalized expenditure for a category.
func (r *Row) Normalized(code string) (float64, error) {
	amount, ok := r.Expenditures[code]
	if !ok {
		return 0, errors.NotFound("category", code)
	}
	return amount / r.Equivalence, nil
}

// Dataset is a full survey snapshot, the unit the boundary builder
// consumes.
type Dataset struct {
	// Codes is the category set every row must cover
	Codes []string

	// Rows are the household records
	Rows []Row
}

// Validate rejects datasets that would skew the boundaries: empty
// data, non-positive weights, unusable normalization divisors,
// negative expenditures, or rows whose category set diverges from the
// dataset's.
func (d *Dataset) Validate() error {
	if len(d.Rows) == 0 {
		return errors.New(errors.TypeSurvey, "survey dataset has no rows")
	}
	if len(d.Codes) == 0 {
		return errors.New(errors.TypeSurvey, "survey dataset has no categories")
	}

	for i := range d.Rows {
		row := &d.Rows[i]
		if row.Weight <= 0 {
			return errors.Newf(errors.TypeSurvey, "row %d: weight must be positive, got %g", i, row.Weight)
		}
		if row.Equivalence <= 0 {
			return errors.Newf(errors.TypeSurvey, "row %d: equivalence factor must be positive, got %g", i, row.Equivalence)
		}
		if len(row.Expenditures) != len(d.Codes) {
			return errors.Newf(errors.TypeSurvey, "row %d: has %d categories, dataset defines %d", i, len(row.Expenditures), len(d.Codes))
		}
		for _, code := range d.Codes {
			amount, ok := row.Expenditures[code]
			if !ok {
				return errors.Newf(errors.TypeSurvey, "row %d: missing category %s", i, code)
			}
			if amount < 0 {
				return errors.Newf(errors.TypeSurvey, "row %d: category %s expenditure must be non-negative, got %g", i, code, amount)
			}
		}
	}
	return nil
}

// TotalWeight returns the summed sampling weight of the dataset.
func (d *Dataset) TotalWeight() float64 {
	var total float64
	for i := range d.Rows {
		total += d.Rows[i].Weight
	}
	return total
}
