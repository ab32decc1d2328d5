// Package cmd provides the CLI commands for expenditure-decile.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"expenditure-decile/internal/config"
	"expenditure-decile/internal/logging"
)

var (
	cfgFile string
	verbose bool
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "expenditure-decile",
	Short: "Household expenditure decile calculator",
	Long: `expenditure-decile computes weighted decile boundaries from a
household expenditure survey and answers which decile a household's
reported expenditure falls into.

Examples:
  expenditure-decile build survey.csv --out limits.csv
  expenditure-decile lookup --persons 3 --total 9000
  expenditure-decile lookup --persons 2 --amount c30=1200 --amount c36=400
  expenditure-decile categories`,
}

// Execute runs the CLI
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.expenditure-decile.json)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")

	rootCmd.AddCommand(buildCmd)
	rootCmd.AddCommand(lookupCmd)
	rootCmd.AddCommand(categoriesCmd)
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(configCmd)
}

func initConfig() {
	if cfgFile != "" {
		cfg, err := config.Load(cfgFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
			os.Exit(1)
		}
		config.Set(cfg)
	}

	cfg := config.Get()
	if verbose {
		cfg.Logging.Level = "debug"
	}
	if err := logging.Initialize(cfg.Logging); err != nil {
		fmt.Fprintf(os.Stderr, "Error initializing logging: %v\n", err)
	}
}

// versionCmd prints version information
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("expenditure-decile version 0.1.0")
	},
}

// configCmd prints the effective configuration
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show the effective configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.Get()
		fmt.Printf("table path:     %s\n", cfg.Data.TablePath)
		if cfg.Data.CatalogPath != "" {
			fmt.Printf("catalog path:   %s\n", cfg.Data.CatalogPath)
		}
		fmt.Printf("default format: %s\n", cfg.Output.DefaultFormat)
		fmt.Printf("server addr:    %s\n", cfg.Server.Addr)
		fmt.Printf("log level:      %s\n", cfg.Logging.Level)
		return nil
	},
}
