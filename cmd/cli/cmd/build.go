// Package cmd - build command
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"expenditure-decile/core/boundary"
	"expenditure-decile/core/catalog"
	"expenditure-decile/core/output"
	"expenditure-decile/core/report"
	"expenditure-decile/core/survey"
	"expenditure-decile/internal/config"
)

var (
	buildOut        string
	buildFormat     string
	buildReport     bool
	buildTolerance  float64
	buildSizeColumn string
)

// buildCmd represents the build command
var buildCmd = &cobra.Command{
	Use:   "build <survey.csv>",
	Short: "Build the decile boundary table from a survey extract",
	Long: `Read a household expenditure survey extract (CSV, lowercase column
names, one row per household) and export the weighted decile boundary
table.

The extract must carry a 'weight' column and either 'nefeshstandartit'
(equivalence-scaled household size) or 'nefesh' (person count), plus
one column per catalog category.

Examples:
  expenditure-decile build survey.csv
  expenditure-decile build survey.csv --out data/limits.csv --report`,
	Args: cobra.ExactArgs(1),
	RunE: runBuild,
}

func init() {
	buildCmd.Flags().StringVarP(&buildOut, "out", "o", "", "output table path (default from config)")
	buildCmd.Flags().StringVarP(&buildFormat, "format", "f", "", "output format (table, json)")
	buildCmd.Flags().BoolVar(&buildReport, "report", false, "print the weight-mass distribution report")
	buildCmd.Flags().Float64Var(&buildTolerance, "tolerance", report.DefaultTolerance, "decile share drift tolerance for the report")
	buildCmd.Flags().StringVar(&buildSizeColumn, "size-column", "", "override the household-size column name")
}

func runBuild(cmd *cobra.Command, args []string) error {
	cfg := config.Get()
	opts, err := outputOptions(buildFormat)
	if err != nil {
		return err
	}

	cat, err := catalog.LoadOrDefault(cfg.Data.CatalogPath)
	if err != nil {
		return err
	}

	sizeColumn := buildSizeColumn
	if sizeColumn == "" {
		sizeColumn = cfg.Data.HouseholdSizeColumn
	}
	ds, err := survey.ReadFile(args[0], cat, survey.ReaderOptions{EquivalenceColumn: sizeColumn})
	if err != nil {
		return err
	}

	result, err := boundary.Build(ds)
	if err != nil {
		return err
	}

	out := buildOut
	if out == "" {
		out = cfg.Data.TablePath
	}
	if err := boundary.ExportFile(out, result.Table); err != nil {
		return err
	}
	fmt.Printf("Boundary table written to %s\n\n", out)

	if err := output.RenderBuildSummary(os.Stdout, result.Info, opts); err != nil {
		return err
	}

	if buildReport {
		rep, err := report.Distribution(ds, result.Table, buildTolerance)
		if err != nil {
			return err
		}
		fmt.Println()
		if err := output.RenderDistribution(os.Stdout, rep, opts); err != nil {
			return err
		}
	}
	return nil
}

// outputOptions resolves the format flag against the configuration.
func outputOptions(flag string) (output.Options, error) {
	cfg := config.Get()
	raw := flag
	if raw == "" {
		raw = cfg.Output.DefaultFormat
	}
	format, err := output.ParseFormat(raw)
	if err != nil {
		return output.Options{}, err
	}
	return output.Options{
		Format:     format,
		ShowLabels: cfg.Output.ShowLabels,
		Precision:  cfg.Output.Precision,
	}, nil
}
