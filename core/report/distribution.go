// Package report - Weight-mass distribution diagnostics
// A freshly built boundary table should spread the survey's weighted
// population roughly evenly: each decile holding about a tenth of the
// total sampling weight. The report re-buckets the survey through the
// table and flags categories that drift.
package report

import (
	"fmt"
	"sort"

	"expenditure-decile/core/boundary"
	"expenditure-decile/core/survey"
)

// DefaultTolerance is how far a decile's weight share may drift from
// the ideal 10% before it is flagged. Discrete expenditure values
// (many zero-spend households in narrow categories) legitimately lump
// weight, so the default is generous.
const DefaultTolerance = 0.05

// CategoryDistribution is the weight-mass breakdown of one category.
type CategoryDistribution struct {
	// Code is the category
	Code string `json:"code"`

	// Shares holds the fraction of total sampling weight per decile,
	// index 0 = decile 1
	Shares [10]float64 `json:"shares"`

	// MaxDrift is the largest absolute deviation from the ideal share
	MaxDrift float64 `json:"max_drift"`
}

// DistributionReport summarizes how evenly the table splits the survey.
type DistributionReport struct {
	// TotalWeight is the summed sampling weight of the survey
	TotalWeight float64 `json:"total_weight"`

	// Categories are the per-category breakdowns, in table order
	Categories []CategoryDistribution `json:"categories"`

	// Warnings lists categories whose decile shares drift beyond the
	// tolerance
	Warnings []string `json:"warnings,omitempty"`
}

// Distribution re-buckets every survey row through the table and
// accumulates the sampling weight landing in each decile per category.
func Distribution(ds *survey.Dataset, table *boundary.Table, tolerance float64) (*DistributionReport, error) {
	if err := ds.Validate(); err != nil {
		return nil, err
	}
	if err := table.Validate(); err != nil {
		return nil, err
	}
	if tolerance <= 0 {
		tolerance = DefaultTolerance
	}

	total := ds.TotalWeight()
	rep := &DistributionReport{TotalWeight: total}

	for _, code := range table.Codes {
		dist := CategoryDistribution{Code: code}

		for i := range ds.Rows {
			row := &ds.Rows[i]
			normalized, err := row.Normalized(code)
			if err != nil {
				return nil, err
			}
			decile, err := table.Bucket(code, normalized)
			if err != nil {
				return nil, err
			}
			dist.Shares[decile-1] += row.Weight
		}

		for d := range dist.Shares {
			dist.Shares[d] /= total
			drift := dist.Shares[d] - 0.1
			if drift < 0 {
				drift = -drift
			}
			if drift > dist.MaxDrift {
				dist.MaxDrift = drift
			}
		}

		if dist.MaxDrift > tolerance {
			rep.Warnings = append(rep.Warnings,
				fmt.Sprintf("category %s: decile weight share drifts up to %.1f%% from the ideal 10%%", code, dist.MaxDrift*100))
		}
		rep.Categories = append(rep.Categories, dist)
	}

	sort.Strings(rep.Warnings)
	return rep, nil
}
