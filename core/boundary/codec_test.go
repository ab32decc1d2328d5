package boundary

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"
)

func TestExportLoadRoundTrip(t *testing.T) {
	// Build from synthetic data so the values carry real float64
	// noise, then demand a bit-identical reload.
	ds := syntheticDataset([]string{"c3", "c30", "c31"}, 3.2, 173)
	result, err := Build(ds)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var buf bytes.Buffer
	if err := Export(&buf, result.Table); err != nil {
		t.Fatalf("export failed: %v", err)
	}

	loaded, err := Load(&buf)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	if len(loaded.Codes) != len(result.Table.Codes) {
		t.Fatalf("expected %d categories, got %d", len(result.Table.Codes), len(loaded.Codes))
	}
	for _, code := range result.Table.Codes {
		want := result.Table.Values[code]
		got := loaded.Values[code]
		for i := range want {
			if got[i] != want[i] {
				t.Errorf("category %s row %d: got %v, want %v", code, i, got[i], want[i])
			}
		}
	}
}

func TestExportFileLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "limits.csv")
	table := fixtureTable(t)

	if err := ExportFile(path, table); err != nil {
		t.Fatalf("export failed: %v", err)
	}
	loaded, err := LoadFile(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	for i, v := range table.Values["c3"] {
		if loaded.Values["c3"][i] != v {
			t.Errorf("row %d: got %v, want %v", i, loaded.Values["c3"][i], v)
		}
	}
}

func TestLoadRejectsMalformedTables(t *testing.T) {
	tests := []struct {
		name string
		csv  string
	}{
		{
			"missing identifying column",
			"x,c3\n0.1,100\n",
		},
		{
			"too few rows",
			"p,c3\n0.1,100\n0.2,200\n",
		},
		{
			"cut points out of order",
			"p,c3\n0.2,100\n0.1,200\n0.3,300\n0.4,400\n0.5,500\n0.6,600\n0.7,700\n0.8,800\n0.9,900\n1.0,901\n",
		},
		{
			"malformed value",
			"p,c3\n0.1,abc\n0.2,200\n0.3,300\n0.4,400\n0.5,500\n0.6,600\n0.7,700\n0.8,800\n0.9,900\n1.0,901\n",
		},
		{
			"decreasing column",
			"p,c3\n0.1,100\n0.2,90\n0.3,300\n0.4,400\n0.5,500\n0.6,600\n0.7,700\n0.8,800\n0.9,900\n1.0,901\n",
		},
		{
			"broken sentinel",
			"p,c3\n0.1,100\n0.2,200\n0.3,300\n0.4,400\n0.5,500\n0.6,600\n0.7,700\n0.8,800\n0.9,900\n1.0,999\n",
		},
		{
			"no category columns",
			"p\n0.1\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Load(strings.NewReader(tt.csv)); err == nil {
				t.Error("expected error, got nil")
			}
		})
	}
}
