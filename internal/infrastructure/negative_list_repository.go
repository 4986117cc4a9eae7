package infrastructure

import (
	"context"
	"fmt"
	"slices"
	"sync"

	"adsplanner/internal/domain"
	"adsplanner/pkg/logger"
)

// MemoryNegativeListRepository keeps lists in insertion order
type MemoryNegativeListRepository struct {
	lists  []domain.NegativeKeywordList
	mutex  sync.RWMutex
	logger *logger.Logger
}

func NewMemoryNegativeListRepository(logger *logger.Logger) *MemoryNegativeListRepository {
	return &MemoryNegativeListRepository{
		lists:  []domain.NegativeKeywordList{},
		logger: logger,
	}
}

func (r *MemoryNegativeListRepository) List(ctx context.Context) ([]domain.NegativeKeywordList, error) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	result := make([]domain.NegativeKeywordList, len(r.lists))
	for i, l := range r.lists {
		result[i] = cloneList(l)
	}
	return result, nil
}

func (r *MemoryNegativeListRepository) Get(ctx context.Context, id string) (*domain.NegativeKeywordList, error) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	i := r.indexOf(id)
	if i < 0 {
		return nil, fmt.Errorf("negative list %s: %w", id, domain.ErrNotFound)
	}
	list := cloneList(r.lists[i])
	return &list, nil
}

func (r *MemoryNegativeListRepository) Save(ctx context.Context, list domain.NegativeKeywordList) error {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	if i := r.indexOf(list.ID); i >= 0 {
		r.lists[i] = cloneList(list)
	} else {
		r.lists = append(r.lists, cloneList(list))
	}

	r.logger.WithContext(ctx).WithField("list_id", list.ID).Debug("Stored negative list in memory")
	return nil
}

func (r *MemoryNegativeListRepository) Insert(ctx context.Context, list domain.NegativeKeywordList) error {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	if r.indexOf(list.ID) >= 0 {
		return fmt.Errorf("%w: negative list %s already exists", domain.ErrInvalidInput, list.ID)
	}
	r.lists = append(r.lists, cloneList(list))
	return nil
}

func (r *MemoryNegativeListRepository) Update(ctx context.Context, id string, fn func(list *domain.NegativeKeywordList) error) (*domain.NegativeKeywordList, error) {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	i := r.indexOf(id)
	if i < 0 {
		return nil, fmt.Errorf("negative list %s: %w", id, domain.ErrNotFound)
	}

	working := cloneList(r.lists[i])
	if err := fn(&working); err != nil {
		return nil, err
	}
	working.ID = id
	r.lists[i] = cloneList(working)

	r.logger.WithContext(ctx).WithField("list_id", id).Debug("Updated negative list in memory")
	return &working, nil
}

func (r *MemoryNegativeListRepository) Delete(ctx context.Context, id string) error {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	i := r.indexOf(id)
	if i < 0 {
		return fmt.Errorf("negative list %s: %w", id, domain.ErrNotFound)
	}
	r.lists = slices.Delete(r.lists, i, i+1)
	return nil
}

// callers must hold the mutex
func (r *MemoryNegativeListRepository) indexOf(id string) int {
	return slices.IndexFunc(r.lists, func(l domain.NegativeKeywordList) bool { return l.ID == id })
}

func cloneList(l domain.NegativeKeywordList) domain.NegativeKeywordList {
	l.Keywords = slices.Clone(l.Keywords)
	l.AppliedCampaignIDs = slices.Clone(l.AppliedCampaignIDs)
	return l
}
