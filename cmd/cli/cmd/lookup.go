// Package cmd - lookup command
package cmd

import (
	"os"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"expenditure-decile/core/catalog"
	"expenditure-decile/core/lookup"
	"expenditure-decile/core/output"
	"expenditure-decile/internal/config"
	"expenditure-decile/internal/errors"
)

var (
	lookupTable   string
	lookupFormat  string
	lookupPersons int
	lookupTotal   string
	lookupAmounts []string
)

// lookupCmd represents the lookup command
var lookupCmd = &cobra.Command{
	Use:   "lookup",
	Short: "Find the decile a household's expenditure falls into",
	Long: `Normalize a household's reported expenditure by its equivalence-scaled
size and find its decile in a pre-built boundary table.

Amounts are monthly. Repeat --amount to look up several categories at
once.

Examples:
  expenditure-decile lookup --persons 3 --total 9000
  expenditure-decile lookup --persons 2 --amount c30=1200 --amount c36=400
  expenditure-decile lookup --persons 1 --total 4500 --table data/limits.csv`,
	RunE: runLookup,
}

func init() {
	lookupCmd.Flags().StringVarP(&lookupTable, "table", "t", "", "boundary table path (default from config)")
	lookupCmd.Flags().StringVarP(&lookupFormat, "format", "f", "", "output format (table, json)")
	lookupCmd.Flags().IntVarP(&lookupPersons, "persons", "p", 0, "number of persons in the household (required)")
	lookupCmd.Flags().StringVar(&lookupTotal, "total", "", "total monthly expenditure")
	lookupCmd.Flags().StringArrayVarP(&lookupAmounts, "amount", "a", nil, "category amount as code=value")
	_ = lookupCmd.MarkFlagRequired("persons")
}

func runLookup(cmd *cobra.Command, args []string) error {
	cfg := config.Get()
	opts, err := outputOptions(lookupFormat)
	if err != nil {
		return err
	}

	if lookupTotal == "" && len(lookupAmounts) == 0 {
		return errors.Input("provide --total or at least one --amount")
	}

	cat, err := catalog.LoadOrDefault(cfg.Data.CatalogPath)
	if err != nil {
		return err
	}

	tablePath := lookupTable
	if tablePath == "" {
		tablePath = cfg.Data.TablePath
	}
	engine, err := lookup.NewLoader(tablePath, cat).Engine()
	if err != nil {
		return err
	}

	var results []lookup.Result
	if lookupTotal != "" {
		amount, err := parseAmount(lookupTotal)
		if err != nil {
			return err
		}
		r, err := engine.LookupTotal(lookupPersons, amount)
		if err != nil {
			return err
		}
		results = append(results, *r)
	}

	for _, pair := range lookupAmounts {
		code, raw, ok := strings.Cut(pair, "=")
		if !ok {
			return errors.Inputf("malformed --amount %q, want code=value", pair)
		}
		amount, err := parseAmount(raw)
		if err != nil {
			return err
		}
		r, err := engine.Lookup(lookupPersons, amount, code)
		if err != nil {
			return err
		}
		results = append(results, *r)
	}

	return output.RenderLookups(os.Stdout, results, opts)
}

// parseAmount reads a money amount through decimal so CLI input is
// validated the same way the API validates request bodies.
func parseAmount(raw string) (float64, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(raw))
	if err != nil {
		return 0, errors.Inputf("malformed amount %q", raw)
	}
	if d.IsNegative() {
		return 0, errors.Inputf("expenditure must be non-negative, got %s", d)
	}
	return d.InexactFloat64(), nil
}
