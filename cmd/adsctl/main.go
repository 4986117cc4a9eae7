package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"adsplanner/pkg/logger"
	"adsplanner/pkg/metrics"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
)

var (
	// Global flags
	dbPath   string
	logLevel string

	log *logger.Logger
	m   *metrics.Metrics
)

var rootCmd = &cobra.Command{
	Use:   "adsctl",
	Short: "Reconcile, inspect and convert ad account exports",
	Long: `adsctl works on flat ad account exports (csv, tsv, xlsx or json) offline.

It rebuilds the campaign hierarchy, checks keywords against negative
keyword lists and converts between export formats.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Logs go to stderr so stdout stays machine readable
		log = logger.NewWithOutput(logLevel, os.Stderr)
		m = metrics.NewWithRegistry(prometheus.NewRegistry())
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "SQLite database to store results in (default: in memory)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "warn", "Log level")

	rootCmd.AddCommand(importCmd)
	rootCmd.AddCommand(conflictsCmd)
	rootCmd.AddCommand(exportCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}
