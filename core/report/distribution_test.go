package report

import (
	"math"
	"testing"

	"expenditure-decile/core/boundary"
	"expenditure-decile/core/survey"
)

func evenDataset(n int) *survey.Dataset {
	ds := &survey.Dataset{Codes: []string{"c3"}}
	for i := 0; i < n; i++ {
		ds.Rows = append(ds.Rows, survey.Row{
			Expenditures: map[string]float64{"c3": float64(i + 1)},
			Weight:       1,
			Equivalence:  1,
		})
	}
	return ds
}

func TestDistributionSharesSumToOne(t *testing.T) {
	ds := evenDataset(500)
	result, err := boundary.Build(ds)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	rep, err := Distribution(ds, result.Table, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(rep.Categories) != 1 {
		t.Fatalf("expected 1 category, got %d", len(rep.Categories))
	}
	var sum float64
	for _, share := range rep.Categories[0].Shares {
		if share < 0 {
			t.Errorf("negative share %g", share)
		}
		sum += share
	}
	if math.Abs(sum-1) > 1e-9 {
		t.Errorf("shares sum to %g, want 1", sum)
	}
}

func TestDistributionEvenDataIsBalanced(t *testing.T) {
	ds := evenDataset(1000)
	result, err := boundary.Build(ds)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	rep, err := Distribution(ds, result.Table, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// 1000 distinct uniform values: every decile should hold close to
	// 10% of the weight and the default tolerance must not fire.
	if len(rep.Warnings) != 0 {
		t.Errorf("unexpected warnings: %v", rep.Warnings)
	}
	if rep.Categories[0].MaxDrift > 0.02 {
		t.Errorf("max drift %g too large for uniform data", rep.Categories[0].MaxDrift)
	}
}

func TestDistributionFlagsLumpedWeight(t *testing.T) {
	// Nearly all households report zero: the bottom bucket swallows
	// most of the weight and the report must warn.
	ds := &survey.Dataset{Codes: []string{"c3"}}
	for i := 0; i < 95; i++ {
		ds.Rows = append(ds.Rows, survey.Row{
			Expenditures: map[string]float64{"c3": 0},
			Weight:       1,
			Equivalence:  1,
		})
	}
	for i := 0; i < 5; i++ {
		ds.Rows = append(ds.Rows, survey.Row{
			Expenditures: map[string]float64{"c3": float64(100 * (i + 1))},
			Weight:       1,
			Equivalence:  1,
		})
	}

	result, err := boundary.Build(ds)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	rep, err := Distribution(ds, result.Table, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(rep.Warnings) == 0 {
		t.Error("expected drift warnings for lumped zero-expenditure weight")
	}
}
