// Package output renders builder and lookup results for humans and
// machines. No decile logic lives here.
package output

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/shopspring/decimal"

	"expenditure-decile/core/boundary"
	"expenditure-decile/core/lookup"
	"expenditure-decile/core/report"
	"expenditure-decile/internal/errors"
)

// Format represents output format type
type Format string

const (
	// FormatTable is a human-readable aligned table
	FormatTable Format = "table"

	// FormatJSON is machine-readable JSON
	FormatJSON Format = "json"
)

// ParseFormat validates a format flag value.
func ParseFormat(s string) (Format, error) {
	switch Format(s) {
	case FormatTable, FormatJSON:
		return Format(s), nil
	default:
		return "", errors.Inputf("unknown output format %q (want table or json)", s)
	}
}

// Options tunes human-readable rendering.
type Options struct {
	// Format selects table or JSON output
	Format Format

	// ShowLabels prints category display labels alongside codes
	ShowLabels bool

	// Precision is the number of decimal places for boundary values
	Precision int
}

// round formats a float through decimal so displayed amounts never
// pick up binary-fraction noise.
func round(v float64, places int) string {
	return decimal.NewFromFloat(v).Round(int32(places)).String()
}

// RenderLookups writes lookup results.
func RenderLookups(w io.Writer, results []lookup.Result, opts Options) error {
	if opts.Format == FormatJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(results)
	}

	fmt.Fprintf(w, "%-8s %-14s %-14s %s\n", "CODE", "AMOUNT", "PER PERSON", "DECILE")
	for _, r := range results {
		fmt.Fprintf(w, "%-8s %-14s %-14s %d\n",
			r.Code,
			round(r.Amount, opts.Precision),
			round(r.Normalized, opts.Precision),
			r.Decile)
		if opts.ShowLabels && r.Label != "" {
			fmt.Fprintf(w, "         %s\n", r.Label)
		}
	}
	return nil
}

// RenderBoundaries writes the boundary table itself.
func RenderBoundaries(w io.Writer, t *boundary.Table, opts Options) error {
	if opts.Format == FormatJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(t.Values)
	}

	fmt.Fprintf(w, "%-6s", "p")
	for _, code := range t.Codes {
		fmt.Fprintf(w, " %14s", code)
	}
	fmt.Fprintln(w)

	for i, cut := range boundary.CutPoints {
		fmt.Fprintf(w, "%-6.1f", cut)
		for _, code := range t.Codes {
			fmt.Fprintf(w, " %14s", round(t.Values[code][i], opts.Precision))
		}
		fmt.Fprintln(w)
	}
	return nil
}

// RenderBuildSummary writes the provenance of a build run.
func RenderBuildSummary(w io.Writer, info boundary.BuildInfo, opts Options) error {
	if opts.Format == FormatJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(info)
	}

	fmt.Fprintf(w, "Build %s\n", info.BuildID)
	fmt.Fprintf(w, "  households:   %d\n", info.Households)
	fmt.Fprintf(w, "  total weight: %s\n", round(info.TotalWeight, opts.Precision))
	fmt.Fprintf(w, "  categories:   %d\n", info.Categories)
	fmt.Fprintf(w, "  duration:     %s\n", info.Duration)
	return nil
}

// RenderDistribution writes the weight-mass distribution report.
func RenderDistribution(w io.Writer, rep *report.DistributionReport, opts Options) error {
	if opts.Format == FormatJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(rep)
	}

	fmt.Fprintf(w, "%-8s", "CODE")
	for d := 1; d <= 10; d++ {
		fmt.Fprintf(w, " %5s%d", "d", d)
	}
	fmt.Fprintln(w)

	for _, cat := range rep.Categories {
		fmt.Fprintf(w, "%-8s", cat.Code)
		for _, share := range cat.Shares {
			fmt.Fprintf(w, " %5.1f%%", share*100)
		}
		fmt.Fprintln(w)
	}

	for _, warning := range rep.Warnings {
		fmt.Fprintf(w, "warning: %s\n", warning)
	}
	return nil
}
