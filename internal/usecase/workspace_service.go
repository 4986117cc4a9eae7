package usecase

import (
	"context"
	"fmt"
	"slices"
	"time"

	"adsplanner/internal/domain"
	"adsplanner/pkg/logger"
	"adsplanner/pkg/metrics"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// EntityKind names a workspace collection
type EntityKind string

const (
	KindCampaign EntityKind = "campaigns"
	KindAdGroup  EntityKind = "adGroups"
	KindKeyword  EntityKind = "keywords"
	KindAd       EntityKind = "ads"
)

// CampaignPatch holds the fields to change; nil means unchanged
type CampaignPatch struct {
	Name      *string              `json:"name" validate:"omitempty,min=1,max=255"`
	Budget    *float64             `json:"budget" validate:"omitempty,gt=0"`
	Type      *domain.CampaignType `json:"type" validate:"omitempty,oneof=Search Display Video Shopping 'Performance Max'"`
	Status    *domain.Status       `json:"status" validate:"omitempty,oneof=Enabled Paused Removed"`
	Networks  *string              `json:"networks"`
	Languages *string              `json:"languages"`
}

// WorkspaceService manages the ads entities outside of bulk import
type WorkspaceService struct {
	workspaceRepo domain.WorkspaceRepository
	listRepo      domain.NegativeListRepository
	remote        domain.RemoteClient
	validate      *validator.Validate
	logger        *logger.Logger
	metrics       *metrics.Metrics
}

func NewWorkspaceService(
	workspaceRepo domain.WorkspaceRepository,
	listRepo domain.NegativeListRepository,
	remote domain.RemoteClient,
	logger *logger.Logger,
	metrics *metrics.Metrics,
) *WorkspaceService {
	return &WorkspaceService{
		workspaceRepo: workspaceRepo,
		listRepo:      listRepo,
		remote:        remote,
		validate:      newValidator(),
		logger:        logger,
		metrics:       metrics,
	}
}

func (s *WorkspaceService) Snapshot(ctx context.Context) (*domain.Workspace, error) {
	ws, err := s.workspaceRepo.Snapshot(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load workspace: %w", err)
	}
	s.metrics.RecordWorkspaceOperation("snapshot")
	return ws, nil
}

func (s *WorkspaceService) AdGroupsByCampaign(ctx context.Context, campaignID string) ([]domain.AdGroup, error) {
	ws, err := s.Snapshot(ctx)
	if err != nil {
		return nil, err
	}

	result := []domain.AdGroup{}
	for _, ag := range ws.AdGroups {
		if ag.CampaignID == campaignID {
			result = append(result, ag)
		}
	}
	return result, nil
}

func (s *WorkspaceService) KeywordsByAdGroup(ctx context.Context, adGroupID string) ([]domain.Keyword, error) {
	ws, err := s.Snapshot(ctx)
	if err != nil {
		return nil, err
	}

	result := []domain.Keyword{}
	for _, kw := range ws.Keywords {
		if kw.AdGroupID == adGroupID {
			result = append(result, kw)
		}
	}
	return result, nil
}

func (s *WorkspaceService) AdsByAdGroup(ctx context.Context, adGroupID string) ([]domain.Ad, error) {
	ws, err := s.Snapshot(ctx)
	if err != nil {
		return nil, err
	}

	result := []domain.Ad{}
	for _, ad := range ws.Ads {
		if ad.AdGroupID == adGroupID {
			result = append(result, ad)
		}
	}
	return result, nil
}

// CreateCampaign adds a campaign. New campaigns start paused.
func (s *WorkspaceService) CreateCampaign(ctx context.Context, c domain.Campaign) (*domain.Campaign, error) {
	if c.Type == "" {
		c.Type = domain.CampaignTypeSearch
	}
	if c.Status == "" {
		c.Status = domain.StatusPaused
	}
	if c.Languages == "" {
		c.Languages = "en"
	}
	if err := validateStruct(s.validate, c); err != nil {
		return nil, err
	}
	if c.ID == "" {
		c.ID = uuid.NewString()
	}

	err := s.workspaceRepo.Update(ctx, func(ws *domain.Workspace) error {
		if slices.ContainsFunc(ws.Campaigns, func(e domain.Campaign) bool { return e.ID == c.ID }) {
			return fmt.Errorf("%w: campaign %s already exists", domain.ErrInvalidInput, c.ID)
		}
		ws.Campaigns = append(ws.Campaigns, c)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create campaign: %w", err)
	}

	s.metrics.RecordWorkspaceOperation("create_campaign")
	s.logger.WithContext(ctx).WithField("campaign_id", c.ID).Info("Campaign created")
	return &c, nil
}

// UpdateCampaign applies the patch. A rename is propagated to the children's campaign name.
func (s *WorkspaceService) UpdateCampaign(ctx context.Context, id string, patch CampaignPatch) (*domain.Campaign, error) {
	if err := validateStruct(s.validate, patch); err != nil {
		return nil, err
	}

	var updated domain.Campaign
	err := s.workspaceRepo.Update(ctx, func(ws *domain.Workspace) error {
		i := slices.IndexFunc(ws.Campaigns, func(c domain.Campaign) bool { return c.ID == id })
		if i < 0 {
			return fmt.Errorf("campaign %s: %w", id, domain.ErrNotFound)
		}

		c := ws.Campaigns[i]
		if patch.Name != nil {
			c.Name = *patch.Name
		}
		if patch.Budget != nil {
			c.Budget = patch.Budget
		}
		if patch.Type != nil {
			c.Type = *patch.Type
		}
		if patch.Status != nil {
			c.Status = *patch.Status
		}
		if patch.Networks != nil {
			c.Networks = *patch.Networks
		}
		if patch.Languages != nil {
			c.Languages = *patch.Languages
		}
		ws.Campaigns[i] = c
		updated = c

		if patch.Name != nil {
			renameCampaignChildren(ws, id, c.Name)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to update campaign: %w", err)
	}

	s.metrics.RecordWorkspaceOperation("update_campaign")
	s.logger.WithContext(ctx).WithField("campaign_id", id).Info("Campaign updated")
	return &updated, nil
}

func renameCampaignChildren(ws *domain.Workspace, campaignID, name string) {
	for i := range ws.AdGroups {
		if ws.AdGroups[i].CampaignID == campaignID {
			ws.AdGroups[i].CampaignName = name
		}
	}
	for i := range ws.Keywords {
		if ws.Keywords[i].CampaignID == campaignID {
			ws.Keywords[i].CampaignName = name
		}
	}
	for i := range ws.Ads {
		if ws.Ads[i].CampaignID == campaignID {
			ws.Ads[i].CampaignName = name
		}
	}
}

// CreateAdGroup links by CampaignID when given, otherwise by campaign name.
func (s *WorkspaceService) CreateAdGroup(ctx context.Context, ag domain.AdGroup) (*domain.AdGroup, error) {
	if ag.Type == "" {
		ag.Type = domain.DefaultAdGroupType
	}
	if ag.Status == "" {
		ag.Status = domain.StatusEnabled
	}
	if err := validateStruct(s.validate, ag); err != nil {
		return nil, err
	}
	if ag.ID == "" {
		ag.ID = uuid.NewString()
	}

	err := s.workspaceRepo.Update(ctx, func(ws *domain.Workspace) error {
		switch {
		case ag.CampaignID != "":
			i := slices.IndexFunc(ws.Campaigns, func(c domain.Campaign) bool { return c.ID == ag.CampaignID })
			if i < 0 {
				return fmt.Errorf("campaign %s: %w", ag.CampaignID, domain.ErrNotFound)
			}
			ag.CampaignName = ws.Campaigns[i].Name
		case ag.CampaignName != "":
			if i := slices.IndexFunc(ws.Campaigns, func(c domain.Campaign) bool { return c.Name == ag.CampaignName }); i >= 0 {
				ag.CampaignID = ws.Campaigns[i].ID
			}
		}
		ws.AdGroups = append(ws.AdGroups, ag)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create ad group: %w", err)
	}

	s.metrics.RecordWorkspaceOperation("create_ad_group")
	s.logger.WithContext(ctx).WithFields(map[string]any{
		"ad_group_id": ag.ID,
		"campaign_id": ag.CampaignID,
	}).Info("Ad group created")
	return &ag, nil
}

func (s *WorkspaceService) CreateKeyword(ctx context.Context, kw domain.Keyword) (*domain.Keyword, error) {
	if kw.MatchType == "" {
		kw.MatchType = domain.MatchBroad
	}
	if kw.Status == "" {
		kw.Status = domain.StatusEnabled
	}
	if err := validateStruct(s.validate, kw); err != nil {
		return nil, err
	}
	if kw.ID == "" {
		kw.ID = uuid.NewString()
	}

	err := s.workspaceRepo.Update(ctx, func(ws *domain.Workspace) error {
		parent, err := resolveAdGroup(ws, kw.AdGroupID, kw.CampaignName, kw.AdGroupName)
		if err != nil {
			return err
		}
		if parent != nil {
			kw.AdGroupID = parent.ID
			kw.CampaignID = parent.CampaignID
			kw.CampaignName = parent.CampaignName
			kw.AdGroupName = parent.Name
		}
		ws.Keywords = append(ws.Keywords, kw)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create keyword: %w", err)
	}

	s.metrics.RecordWorkspaceOperation("create_keyword")
	s.logger.WithContext(ctx).WithField("keyword_id", kw.ID).Info("Keyword created")
	return &kw, nil
}

func (s *WorkspaceService) CreateAd(ctx context.Context, ad domain.Ad) (*domain.Ad, error) {
	if ad.AdType == "" {
		ad.AdType = domain.DefaultAdType
	}
	if ad.Status == "" {
		ad.Status = domain.StatusEnabled
	}
	if ad.Descriptions == nil {
		ad.Descriptions = []string{}
	}
	if err := validateStruct(s.validate, ad); err != nil {
		return nil, err
	}
	if ad.ID == "" {
		ad.ID = uuid.NewString()
	}

	err := s.workspaceRepo.Update(ctx, func(ws *domain.Workspace) error {
		parent, err := resolveAdGroup(ws, ad.AdGroupID, ad.CampaignName, ad.AdGroupName)
		if err != nil {
			return err
		}
		if parent != nil {
			ad.AdGroupID = parent.ID
			ad.CampaignID = parent.CampaignID
			ad.CampaignName = parent.CampaignName
			ad.AdGroupName = parent.Name
		}
		ws.Ads = append(ws.Ads, ad)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create ad: %w", err)
	}

	s.metrics.RecordWorkspaceOperation("create_ad")
	s.logger.WithContext(ctx).WithField("ad_id", ad.ID).Info("Ad created")
	return &ad, nil
}

// resolveAdGroup finds the parent by id, or by the composite name key.
// An unknown id is an error; an unknown name pair leaves the child unlinked.
func resolveAdGroup(ws *domain.Workspace, id, campaignName, adGroupName string) (*domain.AdGroup, error) {
	if id != "" {
		i := slices.IndexFunc(ws.AdGroups, func(ag domain.AdGroup) bool { return ag.ID == id })
		if i < 0 {
			return nil, fmt.Errorf("ad group %s: %w", id, domain.ErrNotFound)
		}
		return &ws.AdGroups[i], nil
	}
	if adGroupName == "" {
		return nil, nil
	}
	i := slices.IndexFunc(ws.AdGroups, func(ag domain.AdGroup) bool {
		return ag.CampaignName == campaignName && ag.Name == adGroupName
	})
	if i < 0 {
		return nil, nil
	}
	return &ws.AdGroups[i], nil
}

// Delete removes the entities with the given ids. Children are not cascaded.
func (s *WorkspaceService) Delete(ctx context.Context, kind EntityKind, ids []string) (int, error) {
	if len(ids) == 0 {
		return 0, nil
	}

	removed := 0
	err := s.workspaceRepo.Update(ctx, func(ws *domain.Workspace) error {
		switch kind {
		case KindCampaign:
			removed = removeByID(&ws.Campaigns, ids, func(c domain.Campaign) string { return c.ID })
		case KindAdGroup:
			removed = removeByID(&ws.AdGroups, ids, func(ag domain.AdGroup) string { return ag.ID })
		case KindKeyword:
			removed = removeByID(&ws.Keywords, ids, func(kw domain.Keyword) string { return kw.ID })
		case KindAd:
			removed = removeByID(&ws.Ads, ids, func(ad domain.Ad) string { return ad.ID })
		default:
			return fmt.Errorf("%w: unknown entity kind %q", domain.ErrInvalidInput, kind)
		}
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("failed to delete %s: %w", kind, err)
	}

	s.metrics.RecordWorkspaceOperation("delete_" + string(kind))
	s.logger.WithContext(ctx).WithFields(map[string]any{
		"kind":    kind,
		"removed": removed,
	}).Info("Entities deleted")
	return removed, nil
}

func removeByID[T any](items *[]T, ids []string, idOf func(T) string) int {
	before := len(*items)
	*items = slices.DeleteFunc(*items, func(item T) bool {
		return slices.Contains(ids, idOf(item))
	})
	return before - len(*items)
}

// Reset clears every collection
func (s *WorkspaceService) Reset(ctx context.Context) error {
	if err := s.workspaceRepo.Replace(ctx, domain.NewWorkspace()); err != nil {
		return fmt.Errorf("failed to reset workspace: %w", err)
	}
	s.metrics.RecordWorkspaceOperation("reset")
	s.logger.WithContext(ctx).Info("Workspace reset")
	return nil
}

// Export bundles the workspace with the negative lists
func (s *WorkspaceService) Export(ctx context.Context) (*domain.ExportDocument, error) {
	ws, err := s.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	lists, err := s.listRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load negative lists: %w", err)
	}

	return &domain.ExportDocument{
		Campaigns:            ws.Campaigns,
		AdGroups:             ws.AdGroups,
		Keywords:             ws.Keywords,
		Ads:                  ws.Ads,
		NegativeKeywordLists: lists,
		ExportedAt:           time.Now().UTC(),
	}, nil
}

// Summary returns counts, orphans and the number of potential conflicts
func (s *WorkspaceService) Summary(ctx context.Context) (*domain.WorkspaceSummary, error) {
	ws, err := s.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	lists, err := s.listRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load negative lists: %w", err)
	}

	conflicts := DetectConflicts(ws.Keywords, lists, ws.AdGroups, ws.Campaigns)
	summary := domain.Summarize(*ws, lists, len(conflicts))

	s.logger.WithContext(ctx).WithField("conflicts", len(conflicts)).Debug("Workspace summary generated")
	return &summary, nil
}

// Sync pushes the exported workspace to the remote provider
func (s *WorkspaceService) Sync(ctx context.Context) (*domain.ExportDocument, error) {
	if s.remote == nil {
		return nil, domain.ErrRemoteNotConfigured
	}

	doc, err := s.Export(ctx)
	if err != nil {
		return nil, err
	}
	if err := s.remote.PushSnapshot(ctx, *doc); err != nil {
		return nil, fmt.Errorf("failed to push workspace: %w", err)
	}

	s.metrics.RecordWorkspaceOperation("sync")
	s.logger.WithContext(ctx).WithFields(map[string]any{
		"campaigns": len(doc.Campaigns),
		"keywords":  len(doc.Keywords),
	}).Info("Workspace pushed to remote provider")
	return doc, nil
}
