package usecase

import (
	"adsplanner/internal/domain"

	"github.com/google/uuid"
)

type rowKind int

const (
	kindUnclassified rowKind = iota
	kindAd
	kindKeyword
	kindAdGroup
	kindCampaign
)

func (k rowKind) String() string {
	switch k {
	case kindAd:
		return "ad"
	case kindKeyword:
		return "keyword"
	case kindAdGroup:
		return "ad_group"
	case kindCampaign:
		return "campaign"
	}
	return "unclassified"
}

// Reconcile turns a batch of editor rows into linked entity collections.
// It never fails: blank rows are skipped and rows matching no category are dropped.
func Reconcile(rows []domain.Row) *domain.ImportResult {
	return reconcile(rows, uuid.NewString)
}

func reconcile(rows []domain.Row, newID func() string) *domain.ImportResult {
	result := &domain.ImportResult{Workspace: domain.NewWorkspace()}
	ws := &result.Workspace

	// Phase 1: classify and materialize every row
	for _, raw := range rows {
		if !raw.Has(domain.ColCampaign) && !raw.Has(domain.ColCampaignStatus) {
			result.Skipped++
			continue
		}

		row := raw.Clone()
		status := normalizeStatus(row)
		row[domain.ColStatus] = string(status)

		switch classify(row) {
		case kindAd:
			ws.Ads = append(ws.Ads, adFromRow(newID(), row, status))
		case kindKeyword:
			ws.Keywords = append(ws.Keywords, keywordFromRow(newID(), row, status))
		case kindAdGroup:
			ws.AdGroups = append(ws.AdGroups, adGroupFromRow(newID(), row, status))
		case kindCampaign:
			ws.Campaigns = append(ws.Campaigns, campaignFromRow(newID(), row, status))
		default:
			result.Unclassified++
		}
	}

	// Phase 2: resolve name-based parents into ids
	link(ws)

	result.Summary = ws.Summary()
	return result
}

// classify applies the category rules in priority order
func classify(row domain.Row) rowKind {
	switch {
	case row.Has(domain.ColAdType) && row.Has(domain.ColHeadline1):
		return kindAd
	case row.Has(domain.ColKeyword):
		return kindKeyword
	case row.Has(domain.ColAdGroup) && !row.Has(domain.ColKeyword) && !row.Has(domain.ColHeadline1):
		return kindAdGroup
	case row.Has(domain.ColCampaign) && !row.Has(domain.ColAdGroup):
		return kindCampaign
	}
	return kindUnclassified
}

// normalizeStatus: Ad Group Status > Campaign Status > Status > Enabled
func normalizeStatus(row domain.Row) domain.Status {
	for _, field := range []string{domain.ColAdGroupStatus, domain.ColCampaignStatus, domain.ColStatus} {
		if s, ok := row.Get(field); ok {
			return domain.ParseStatus(s)
		}
	}
	return domain.StatusEnabled
}

func link(ws *domain.Workspace) {
	campaignIDs := make(map[string]string, len(ws.Campaigns))
	for _, c := range ws.Campaigns {
		campaignIDs[c.Name] = c.ID
	}

	for i := range ws.AdGroups {
		if id, ok := campaignIDs[ws.AdGroups[i].CampaignName]; ok {
			ws.AdGroups[i].CampaignID = id
		}
	}

	// Ad group names repeat across campaigns, so join on both names
	adGroupIDs := make(map[domain.AdGroupKey]string, len(ws.AdGroups))
	for _, ag := range ws.AdGroups {
		adGroupIDs[domain.AdGroupKey{Campaign: ag.CampaignName, AdGroup: ag.Name}] = ag.ID
	}

	for i := range ws.Keywords {
		kw := &ws.Keywords[i]
		if id, ok := adGroupIDs[domain.AdGroupKey{Campaign: kw.CampaignName, AdGroup: kw.AdGroupName}]; ok {
			kw.AdGroupID = id
		}
		if id, ok := campaignIDs[kw.CampaignName]; ok {
			kw.CampaignID = id
		}
	}

	for i := range ws.Ads {
		ad := &ws.Ads[i]
		if id, ok := adGroupIDs[domain.AdGroupKey{Campaign: ad.CampaignName, AdGroup: ad.AdGroupName}]; ok {
			ad.AdGroupID = id
		}
		if id, ok := campaignIDs[ad.CampaignName]; ok {
			ad.CampaignID = id
		}
	}
}

func campaignFromRow(id string, row domain.Row, status domain.Status) domain.Campaign {
	campaignType := row.String(domain.ColCampaignType)
	if campaignType == "" {
		campaignType = row.String(domain.ColType)
	}

	return domain.Campaign{
		ID:        id,
		Name:      row.String(domain.ColCampaign),
		Budget:    row.Number(domain.ColBudget),
		Type:      domain.ParseCampaignType(campaignType),
		Status:    status,
		Networks:  row.String(domain.ColNetworks),
		Languages: row.String(domain.ColLanguages),
		Fields:    row,
	}
}

func adGroupFromRow(id string, row domain.Row, status domain.Status) domain.AdGroup {
	adGroupType := row.String(domain.ColAdGroupType)
	if adGroupType == "" {
		adGroupType = domain.DefaultAdGroupType
	}

	return domain.AdGroup{
		ID:           id,
		CampaignName: row.String(domain.ColCampaign),
		Name:         row.String(domain.ColAdGroup),
		MaxCPC:       row.Number(domain.ColMaxCPC),
		Type:         adGroupType,
		Status:       status,
		Fields:       row,
	}
}

func keywordFromRow(id string, row domain.Row, status domain.Status) domain.Keyword {
	return domain.Keyword{
		ID:           id,
		CampaignName: row.String(domain.ColCampaign),
		AdGroupName:  row.String(domain.ColAdGroup),
		Text:         row.String(domain.ColKeyword),
		MatchType:    domain.ParseMatchType(row.String(domain.ColCriterionType)),
		Status:       status,
		Fields:       row,
	}
}

func adFromRow(id string, row domain.Row, status domain.Status) domain.Ad {
	ad := domain.Ad{
		ID:           id,
		CampaignName: row.String(domain.ColCampaign),
		AdGroupName:  row.String(domain.ColAdGroup),
		AdType:       row.String(domain.ColAdType),
		Headlines:    []string{},
		Descriptions: []string{},
		FinalURL:     row.String(domain.ColFinalURL),
		Path1:        row.String(domain.ColPath1),
		Path2:        row.String(domain.ColPath2),
		Status:       status,
		Fields:       row,
	}

	for _, col := range []string{domain.ColHeadline1, domain.ColHeadline2, domain.ColHeadline3} {
		if h, ok := row.Get(col); ok {
			ad.Headlines = append(ad.Headlines, h)
		}
	}
	for _, col := range []string{domain.ColDescription1, domain.ColDescription2} {
		if d, ok := row.Get(col); ok {
			ad.Descriptions = append(ad.Descriptions, d)
		}
	}

	return ad
}
