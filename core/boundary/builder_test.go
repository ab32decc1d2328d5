package boundary

import (
	"math"
	"testing"

	"expenditure-decile/core/survey"
)

func syntheticDataset(codes []string, equivalence float64, n int) *survey.Dataset {
	ds := &survey.Dataset{Codes: codes}
	for i := 0; i < n; i++ {
		exp := make(map[string]float64, len(codes))
		for j, code := range codes {
			exp[code] = float64((i + 1) * (j + 1) * 100)
		}
		ds.Rows = append(ds.Rows, survey.Row{
			Expenditures: exp,
			Weight:       1,
			Equivalence:  equivalence,
		})
	}
	return ds
}

func TestBuildInvariants(t *testing.T) {
	ds := syntheticDataset([]string{"c3", "c30", "c31"}, 1, 200)

	result, err := Build(ds)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	table := result.Table

	if len(table.Codes) != 3 {
		t.Fatalf("expected 3 categories, got %d", len(table.Codes))
	}
	for _, code := range table.Codes {
		col := table.Values[code]
		if len(col) != Rows {
			t.Fatalf("category %s: expected %d rows, got %d", code, Rows, len(col))
		}
		for i := 1; i < Rows-1; i++ {
			if col[i] < col[i-1] {
				t.Errorf("category %s: boundaries decrease at row %d", code, i)
			}
		}
		if col[Rows-1] != col[Rows-2]+1 {
			t.Errorf("category %s: sentinel is %g, want %g", code, col[Rows-1], col[Rows-2]+1)
		}
	}

	if result.Info.Households != 200 {
		t.Errorf("expected 200 households in build info, got %d", result.Info.Households)
	}
	if result.Info.BuildID == "" {
		t.Error("expected a build ID")
	}
}

func TestBuildBoundariesWithinDataRange(t *testing.T) {
	ds := syntheticDataset([]string{"c3"}, 1, 100)

	result, err := Build(ds)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	col := result.Table.Values["c3"]
	min, max := 100.0, 10000.0
	for i := 0; i < Rows-1; i++ {
		if col[i] < min || col[i] > max {
			t.Errorf("row %d boundary %g outside data range [%g, %g]", i, col[i], min, max)
		}
	}
}

func TestBuildNormalizesByEquivalence(t *testing.T) {
	// Doubling every household's equivalence factor must halve every
	// quantile: the weighted quantile is scale-equivariant.
	base, err := Build(syntheticDataset([]string{"c3"}, 1, 150))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	scaled, err := Build(syntheticDataset([]string{"c3"}, 2, 150))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for i := 0; i < Rows-1; i++ {
		want := base.Table.Values["c3"][i] / 2
		got := scaled.Table.Values["c3"][i]
		if math.Abs(got-want) > 1e-9 {
			t.Errorf("row %d: got %g, want %g", i, got, want)
		}
	}
}

func TestBuildWeightsShiftQuantiles(t *testing.T) {
	// Concentrating almost all sampling weight on the lowest value
	// must drag the low quantiles down to it.
	ds := &survey.Dataset{Codes: []string{"c3"}}
	ds.Rows = append(ds.Rows, survey.Row{
		Expenditures: map[string]float64{"c3": 100},
		Weight:       1000,
		Equivalence:  1,
	})
	for i := 0; i < 9; i++ {
		ds.Rows = append(ds.Rows, survey.Row{
			Expenditures: map[string]float64{"c3": 10000},
			Weight:       1,
			Equivalence:  1,
		})
	}

	result, err := Build(ds)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	col := result.Table.Values["c3"]
	for i, cut := range CutPoints[:Rows-1] {
		if col[i] != 100 {
			t.Errorf("cut %g: got %g, want 100 (weight mass sits on the low value)", cut, col[i])
		}
	}
}

func TestBuildRejectsInvalidDataset(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*survey.Dataset)
	}{
		{"zero weight", func(ds *survey.Dataset) { ds.Rows[3].Weight = 0 }},
		{"negative weight", func(ds *survey.Dataset) { ds.Rows[0].Weight = -2 }},
		{"zero equivalence divisor", func(ds *survey.Dataset) { ds.Rows[5].Equivalence = 0 }},
		{"negative expenditure", func(ds *survey.Dataset) { ds.Rows[1].Expenditures["c3"] = -50 }},
		{"missing category", func(ds *survey.Dataset) { delete(ds.Rows[2].Expenditures, "c30") }},
		{"no rows", func(ds *survey.Dataset) { ds.Rows = nil }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ds := syntheticDataset([]string{"c3", "c30"}, 1, 20)
			tt.mutate(ds)
			if _, err := Build(ds); err == nil {
				t.Error("expected error, got nil")
			}
		})
	}
}
