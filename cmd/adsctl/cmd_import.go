package main

import (
	"context"
	"fmt"

	"adsplanner/internal/domain"
	"adsplanner/internal/infrastructure"
	"adsplanner/internal/usecase"

	"github.com/spf13/cobra"
)

var importCmd = &cobra.Command{
	Use:   "import [file]",
	Short: "Rebuild the campaign hierarchy from an export and print a summary",
	Long: `Decodes the file, reconciles its rows into campaigns, ad groups,
keywords and ads, and prints the entity counts as JSON.

With --db the resulting workspace replaces the one stored in that database.`,
	Args: cobra.ExactArgs(1),
	RunE: runImport,
}

func runImport(cmd *cobra.Command, args []string) error {
	rows, err := infrastructure.DecodeFile(args[0])
	if err != nil {
		return err
	}

	repo, closeRepo, err := openWorkspaceRepo()
	if err != nil {
		return err
	}
	defer closeRepo()

	svc := usecase.NewImportService(repo, nil, log, m)
	summary, err := svc.Import(cmd.Context(), rows, usecase.SourceCLI)
	if err != nil {
		return err
	}

	return printJSON(cmd.OutOrStdout(), summary)
}

func openWorkspaceRepo() (domain.WorkspaceRepository, func(), error) {
	if dbPath == "" {
		return infrastructure.NewMemoryWorkspaceRepository(log), func() {}, nil
	}

	db, err := infrastructure.OpenSQLite(dbPath)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open %s: %w", dbPath, err)
	}
	return infrastructure.NewSQLiteWorkspaceRepository(db, log), func() { db.Close() }, nil
}

// loadWorkspace reconciles a file into a throwaway in-memory workspace
func loadWorkspace(ctx context.Context, path string) (*domain.Workspace, error) {
	rows, err := infrastructure.DecodeFile(path)
	if err != nil {
		return nil, err
	}

	repo := infrastructure.NewMemoryWorkspaceRepository(log)
	if _, err := usecase.NewImportService(repo, nil, log, m).Import(ctx, rows, usecase.SourceCLI); err != nil {
		return nil, err
	}
	return repo.Snapshot(ctx)
}
