package usecase

import (
	"context"
	"fmt"
	"time"

	"adsplanner/internal/domain"
	"adsplanner/pkg/logger"
	"adsplanner/pkg/metrics"
)

// ConflictService runs conflict detection against the stored workspace
type ConflictService struct {
	workspaceRepo domain.WorkspaceRepository
	listRepo      domain.NegativeListRepository
	logger        *logger.Logger
	metrics       *metrics.Metrics
}

func NewConflictService(
	workspaceRepo domain.WorkspaceRepository,
	listRepo domain.NegativeListRepository,
	logger *logger.Logger,
	metrics *metrics.Metrics,
) *ConflictService {
	return &ConflictService{
		workspaceRepo: workspaceRepo,
		listRepo:      listRepo,
		logger:        logger,
		metrics:       metrics,
	}
}

func (s *ConflictService) Detect(ctx context.Context) ([]domain.Conflict, error) {
	start := time.Now()

	ws, err := s.workspaceRepo.Snapshot(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load workspace: %w", err)
	}
	lists, err := s.listRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load negative lists: %w", err)
	}

	conflicts := DetectConflicts(ws.Keywords, lists, ws.AdGroups, ws.Campaigns)
	s.metrics.RecordConflictRun(len(conflicts))

	s.logger.WithContext(ctx).WithFields(map[string]any{
		"keywords":  len(ws.Keywords),
		"lists":     len(lists),
		"conflicts": len(conflicts),
		"duration":  time.Since(start),
	}).Info("Conflict detection completed")

	return conflicts, nil
}

// DetectGrouped returns the conflicts grouped per keyword
func (s *ConflictService) DetectGrouped(ctx context.Context) ([]domain.ConflictGroup, error) {
	conflicts, err := s.Detect(ctx)
	if err != nil {
		return nil, err
	}
	return GroupByKeyword(conflicts), nil
}
