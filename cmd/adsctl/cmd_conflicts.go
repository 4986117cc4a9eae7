package main

import (
	"adsplanner/internal/infrastructure"
	"adsplanner/internal/usecase"

	"github.com/spf13/cobra"
)

var (
	listsFile     string
	groupConflict bool
)

var conflictsCmd = &cobra.Command{
	Use:   "conflicts [file]",
	Short: "List keywords blocked by negative keyword lists",
	Long: `Reconciles the file and checks every keyword against the negative
keyword lists. Without --lists the built-in lists are used.

Example:
  adsctl conflicts account.csv --lists lists.yaml --group`,
	Args: cobra.ExactArgs(1),
	RunE: runConflicts,
}

func init() {
	conflictsCmd.Flags().StringVar(&listsFile, "lists", "", "YAML file with negative keyword lists")
	conflictsCmd.Flags().BoolVar(&groupConflict, "group", false, "Group conflicts per keyword")
}

func runConflicts(cmd *cobra.Command, args []string) error {
	ws, err := loadWorkspace(cmd.Context(), args[0])
	if err != nil {
		return err
	}

	lists, err := infrastructure.LoadNegativeLists(listsFile)
	if err != nil {
		return err
	}

	conflicts := usecase.DetectConflicts(ws.Keywords, lists, ws.AdGroups, ws.Campaigns)
	m.RecordConflictRun(len(conflicts))
	log.WithField("conflicts", len(conflicts)).Info("Conflict detection completed")

	if groupConflict {
		return printJSON(cmd.OutOrStdout(), usecase.GroupByKeyword(conflicts))
	}
	return printJSON(cmd.OutOrStdout(), conflicts)
}
