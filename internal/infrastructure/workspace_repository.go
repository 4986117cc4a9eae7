package infrastructure

import (
	"context"
	"sync"

	"adsplanner/internal/domain"
	"adsplanner/pkg/logger"
)

type MemoryWorkspaceRepository struct {
	data   domain.Workspace
	mutex  sync.RWMutex
	logger *logger.Logger
}

func NewMemoryWorkspaceRepository(logger *logger.Logger) *MemoryWorkspaceRepository {
	return &MemoryWorkspaceRepository{
		data:   domain.NewWorkspace(),
		logger: logger,
	}
}

func (r *MemoryWorkspaceRepository) Replace(ctx context.Context, ws domain.Workspace) error {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	r.data = ws.Clone()

	r.logger.WithContext(ctx).WithFields(map[string]any{
		"campaigns": len(ws.Campaigns),
		"ad_groups": len(ws.AdGroups),
		"keywords":  len(ws.Keywords),
		"ads":       len(ws.Ads),
	}).Debug("Replaced workspace in memory")
	return nil
}

func (r *MemoryWorkspaceRepository) Snapshot(ctx context.Context) (*domain.Workspace, error) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	ws := r.data.Clone()
	return &ws, nil
}

func (r *MemoryWorkspaceRepository) Update(ctx context.Context, fn func(ws *domain.Workspace) error) error {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	working := r.data.Clone()
	if err := fn(&working); err != nil {
		return err
	}
	r.data = working
	return nil
}
