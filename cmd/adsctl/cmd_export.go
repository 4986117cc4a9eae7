package main

import (
	"fmt"
	"os"
	"time"

	"adsplanner/internal/domain"
	"adsplanner/internal/infrastructure"

	"github.com/spf13/cobra"
)

var (
	exportFormat string
	exportOut    string
)

var exportCmd = &cobra.Command{
	Use:   "export [file]",
	Short: "Normalize an export and write it in another format",
	Long: `Reconciles the file and writes the resulting workspace in canonical
columns. The output format is csv, tsv, xlsx or json.

Example:
  adsctl export account.xlsx --format csv --out account.csv`,
	Args: cobra.ExactArgs(1),
	RunE: runExport,
}

func init() {
	exportCmd.Flags().StringVar(&exportFormat, "format", "csv", "Output format: csv, tsv, xlsx or json")
	exportCmd.Flags().StringVarP(&exportOut, "out", "o", "", "Output path (default: stdout)")
}

func runExport(cmd *cobra.Command, args []string) error {
	format, err := infrastructure.ParseFormat(exportFormat)
	if err != nil {
		return err
	}

	ws, err := loadWorkspace(cmd.Context(), args[0])
	if err != nil {
		return err
	}

	doc := domain.ExportDocument{
		Campaigns:  ws.Campaigns,
		AdGroups:   ws.AdGroups,
		Keywords:   ws.Keywords,
		Ads:        ws.Ads,
		ExportedAt: time.Now().UTC(),

		NegativeKeywordLists: []domain.NegativeKeywordList{},
	}

	if exportOut == "" {
		return infrastructure.Export(cmd.OutOrStdout(), doc, format)
	}

	f, err := os.Create(exportOut)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", exportOut, err)
	}
	if err := infrastructure.Export(f, doc, format); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to write %s: %w", exportOut, err)
	}

	log.WithField("path", exportOut).Info("Export written")
	return nil
}
