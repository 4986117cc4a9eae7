package usecase

import (
	"context"
	"fmt"
	"slices"

	"adsplanner/internal/domain"
	"adsplanner/pkg/logger"
	"adsplanner/pkg/metrics"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// NegativeListPatch holds the list fields to change; nil means unchanged
type NegativeListPatch struct {
	Name               *string           `json:"name" validate:"omitempty,min=1,max=255"`
	Scope              *domain.ListScope `json:"scope" validate:"omitempty,oneof=universal custom"`
	Keywords           []string          `json:"keywords"`
	AppliedCampaignIDs []string          `json:"applied_campaign_ids"`
}

// NegativeListService manages negative keyword lists
type NegativeListService struct {
	listRepo domain.NegativeListRepository
	validate *validator.Validate
	logger   *logger.Logger
	metrics  *metrics.Metrics
}

func NewNegativeListService(
	listRepo domain.NegativeListRepository,
	logger *logger.Logger,
	metrics *metrics.Metrics,
) *NegativeListService {
	return &NegativeListService{
		listRepo: listRepo,
		validate: newValidator(),
		logger:   logger,
		metrics:  metrics,
	}
}

func (s *NegativeListService) List(ctx context.Context) ([]domain.NegativeKeywordList, error) {
	lists, err := s.listRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list negative lists: %w", err)
	}
	return lists, nil
}

func (s *NegativeListService) Get(ctx context.Context, id string) (*domain.NegativeKeywordList, error) {
	list, err := s.listRepo.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get negative list %s: %w", id, err)
	}
	return list, nil
}

// Create stores a new list. Lists default to custom scope.
func (s *NegativeListService) Create(ctx context.Context, list domain.NegativeKeywordList) (*domain.NegativeKeywordList, error) {
	if list.Scope == "" {
		list.Scope = domain.ScopeCustom
	}
	list.Keywords = domain.CleanKeywords(list.Keywords)
	if list.AppliedCampaignIDs == nil {
		list.AppliedCampaignIDs = []string{}
	}
	if err := validateStruct(s.validate, list); err != nil {
		return nil, err
	}
	if list.ID == "" {
		list.ID = uuid.NewString()
	}

	if err := s.listRepo.Insert(ctx, list); err != nil {
		return nil, fmt.Errorf("failed to save negative list: %w", err)
	}

	s.metrics.RecordWorkspaceOperation("create_negative_list")
	s.logger.WithContext(ctx).WithFields(map[string]any{
		"list_id": list.ID,
		"terms":   len(list.Keywords),
	}).Info("Negative list created")
	return &list, nil
}

func (s *NegativeListService) Update(ctx context.Context, id string, patch NegativeListPatch) (*domain.NegativeKeywordList, error) {
	if err := validateStruct(s.validate, patch); err != nil {
		return nil, err
	}

	list, err := s.listRepo.Update(ctx, id, func(list *domain.NegativeKeywordList) error {
		if patch.Name != nil {
			list.Name = *patch.Name
		}
		if patch.Scope != nil {
			list.Scope = *patch.Scope
		}
		if patch.Keywords != nil {
			list.Keywords = domain.CleanKeywords(patch.Keywords)
		}
		if patch.AppliedCampaignIDs != nil {
			list.AppliedCampaignIDs = slices.Clone(patch.AppliedCampaignIDs)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to update negative list %s: %w", id, err)
	}

	s.metrics.RecordWorkspaceOperation("update_negative_list")
	s.logger.WithContext(ctx).WithField("list_id", id).Info("Negative list updated")
	return list, nil
}

func (s *NegativeListService) Delete(ctx context.Context, id string) error {
	if err := s.listRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete negative list %s: %w", id, err)
	}
	s.metrics.RecordWorkspaceOperation("delete_negative_list")
	s.logger.WithContext(ctx).WithField("list_id", id).Info("Negative list deleted")
	return nil
}

// ToggleCampaign adds the campaign to the list's applied set, or removes it when already present.
func (s *NegativeListService) ToggleCampaign(ctx context.Context, listID, campaignID string) (*domain.NegativeKeywordList, error) {
	if campaignID == "" {
		return nil, fmt.Errorf("%w: campaign id is required", domain.ErrInvalidInput)
	}

	var applied bool
	list, err := s.listRepo.Update(ctx, listID, func(list *domain.NegativeKeywordList) error {
		applied = slices.Contains(list.AppliedCampaignIDs, campaignID)
		if applied {
			list.AppliedCampaignIDs = slices.DeleteFunc(list.AppliedCampaignIDs, func(id string) bool {
				return id == campaignID
			})
		} else {
			list.AppliedCampaignIDs = append(list.AppliedCampaignIDs, campaignID)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to toggle negative list %s: %w", listID, err)
	}

	s.metrics.RecordWorkspaceOperation("toggle_negative_list")
	s.logger.WithContext(ctx).WithFields(map[string]any{
		"list_id":     listID,
		"campaign_id": campaignID,
		"applied":     !applied,
	}).Info("Negative list campaign toggled")
	return list, nil
}

// SeedDefaults stores lists only when the store is empty. Returns how many were added.
func (s *NegativeListService) SeedDefaults(ctx context.Context, lists []domain.NegativeKeywordList) (int, error) {
	existing, err := s.listRepo.List(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to list negative lists: %w", err)
	}
	if len(existing) > 0 {
		return 0, nil
	}

	for _, list := range lists {
		list.Keywords = domain.CleanKeywords(list.Keywords)
		if list.AppliedCampaignIDs == nil {
			list.AppliedCampaignIDs = []string{}
		}
		if list.Scope == "" {
			list.Scope = domain.ScopeCustom
		}
		if list.ID == "" {
			list.ID = uuid.NewString()
		}
		if err := s.listRepo.Save(ctx, list); err != nil {
			return 0, fmt.Errorf("failed to seed negative list %s: %w", list.ID, err)
		}
	}

	s.logger.WithContext(ctx).WithField("lists", len(lists)).Info("Seeded negative keyword lists")
	return len(lists), nil
}
