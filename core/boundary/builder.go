package boundary

import (
	"time"

	"github.com/aclements/go-moremath/stats"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"expenditure-decile/core/survey"
	"expenditure-decile/internal/errors"
	"expenditure-decile/internal/logging"
)

// BuildInfo records the provenance of a built table.
type BuildInfo struct {
	// BuildID uniquely identifies the build run
	BuildID string `json:"build_id"`

	// BuiltAt is the build timestamp
	BuiltAt time.Time `json:"built_at"`

	// Households is the number of survey rows consumed
	Households int `json:"households"`

	// TotalWeight is the summed sampling weight
	TotalWeight float64 `json:"total_weight"`

	// Categories is the number of category columns
	Categories int `json:"categories"`

	// Duration is the build wall time
	Duration time.Duration `json:"-"`
}

// Result is the output of a build run.
type Result struct {
	Table *Table
	Info  BuildInfo
}

// Build computes the boundary table from a survey dataset. Per
// category it takes the weighted quantile of the normalized
// expenditures at each cut point (weighted empirical-CDF inverse,
// sampling weight as mass), then appends the open upper sentinel.
// The dataset is validated first; nothing partial is ever produced.
func Build(ds *survey.Dataset) (*Result, error) {
	start := time.Now()

	if err := ds.Validate(); err != nil {
		return nil, err
	}

	table := &Table{
		Codes:  append([]string(nil), ds.Codes...),
		Values: make(map[string][]float64, len(ds.Codes)),
	}

	for _, code := range ds.Codes {
		// Sort reorders Xs and Weights together in place, so each
		// category gets its own copies.
		xs := make([]float64, len(ds.Rows))
		weights := make([]float64, len(ds.Rows))
		for i := range ds.Rows {
			v, err := ds.Rows[i].Normalized(code)
			if err != nil {
				return nil, err
			}
			xs[i] = v
			weights[i] = ds.Rows[i].Weight
		}

		sample := stats.Sample{Xs: xs, Weights: weights}
		sample.Sort()

		col := make([]float64, Rows)
		for i, cut := range CutPoints[:Rows-1] {
			col[i] = sample.Quantile(cut)
		}
		col[Rows-1] = col[Rows-2] + 1
		table.Values[code] = col
	}

	if err := table.Validate(); err != nil {
		return nil, errors.Internal("built table violates its invariants", err)
	}

	info := BuildInfo{
		BuildID:     uuid.NewString(),
		BuiltAt:     start.UTC(),
		Households:  len(ds.Rows),
		TotalWeight: ds.TotalWeight(),
		Categories:  len(ds.Codes),
		Duration:    time.Since(start),
	}
	logging.Info("boundary table built",
		zap.String("build_id", info.BuildID),
		zap.Int("households", info.Households),
		zap.Int("categories", info.Categories),
		zap.Duration("duration", info.Duration))

	return &Result{Table: table, Info: info}, nil
}
