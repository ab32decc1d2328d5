// Package cmd - categories command
package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"expenditure-decile/core/catalog"
	"expenditure-decile/internal/config"
)

// categoriesCmd lists the catalog
var categoriesCmd = &cobra.Command{
	Use:   "categories",
	Short: "List the expenditure categories",
	RunE: func(cmd *cobra.Command, args []string) error {
		cat, err := catalog.LoadOrDefault(config.Get().Data.CatalogPath)
		if err != nil {
			return err
		}

		for _, code := range cat.Codes() {
			entry, err := cat.Get(code)
			if err != nil {
				return err
			}
			marker := " "
			if entry.Aggregate {
				marker = "*"
			}
			fmt.Printf("%s %-6s %s\n", marker, entry.Code, entry.Label)
		}
		fmt.Println("\n* aggregate (total expenditure)")
		return nil
	},
}
