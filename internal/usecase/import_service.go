package usecase

import (
	"context"
	"fmt"
	"time"

	"adsplanner/internal/domain"
	"adsplanner/pkg/logger"
	"adsplanner/pkg/metrics"
)

// Import sources used as metric labels
const (
	SourceUpload = "upload"
	SourceJSON   = "json"
	SourceRemote = "remote"
	SourceCLI    = "cli"
)

type ImportService struct {
	workspaceRepo domain.WorkspaceRepository
	remote        domain.RemoteClient
	logger        *logger.Logger
	metrics       *metrics.Metrics
}

// remote may be nil when no provider is configured
func NewImportService(
	workspaceRepo domain.WorkspaceRepository,
	remote domain.RemoteClient,
	logger *logger.Logger,
	metrics *metrics.Metrics,
) *ImportService {
	return &ImportService{
		workspaceRepo: workspaceRepo,
		remote:        remote,
		logger:        logger,
		metrics:       metrics,
	}
}

// Import reconciles rows and replaces the stored workspace with the result
func (s *ImportService) Import(ctx context.Context, rows []domain.Row, source string) (*domain.ImportSummary, error) {
	start := time.Now()
	s.metrics.IncImportJobsInProgress()
	defer s.metrics.DecImportJobsInProgress()

	log := s.logger.WithContext(ctx)
	log.WithFields(map[string]any{
		"rows":   len(rows),
		"source": source,
	}).Info("Starting import")

	// Transform
	result := Reconcile(rows)
	s.recordRows(result)

	log.WithFields(map[string]any{
		"skipped":      result.Skipped,
		"unclassified": result.Unclassified,
	}).Debug("Rows excluded from import")

	// Load
	if err := s.workspaceRepo.Replace(ctx, result.Workspace); err != nil {
		s.metrics.RecordImportJob("failed", source, time.Since(start))
		return nil, fmt.Errorf("failed to store imported workspace: %w", err)
	}

	duration := time.Since(start)
	s.metrics.RecordImportJob("success", source, duration)

	log.WithFields(map[string]any{
		"duration":  duration,
		"campaigns": result.Summary.Campaigns,
		"ad_groups": result.Summary.AdGroups,
		"keywords":  result.Summary.Keywords,
		"ads":       result.Summary.Ads,
	}).Info("Import completed successfully")

	summary := result.Summary
	return &summary, nil
}

// ImportRemote fetches rows from the remote feed and imports them
func (s *ImportService) ImportRemote(ctx context.Context) (*domain.ImportSummary, error) {
	if s.remote == nil {
		return nil, domain.ErrRemoteNotConfigured
	}

	// Extract
	rows, err := s.remote.FetchRows(ctx)
	if err != nil {
		s.metrics.RecordImportJob("failed", SourceRemote, 0)
		return nil, fmt.Errorf("failed to fetch remote rows: %w", err)
	}

	return s.Import(ctx, rows, SourceRemote)
}

func (s *ImportService) recordRows(result *domain.ImportResult) {
	s.metrics.RecordImportRows(kindCampaign.String(), result.Summary.Campaigns)
	s.metrics.RecordImportRows(kindAdGroup.String(), result.Summary.AdGroups)
	s.metrics.RecordImportRows(kindKeyword.String(), result.Summary.Keywords)
	s.metrics.RecordImportRows(kindAd.String(), result.Summary.Ads)
	s.metrics.RecordImportRows("skipped", result.Skipped)
	s.metrics.RecordImportRows(kindUnclassified.String(), result.Unclassified)
}
