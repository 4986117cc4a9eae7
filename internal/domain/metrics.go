package domain

// represents aggregated workspace statistics
type WorkspaceSummary struct {
	Counts ImportSummary `json:"counts"`

	// Entities whose parent link could not be resolved
	OrphanAdGroups int `json:"orphan_ad_groups"`
	OrphanKeywords int `json:"orphan_keywords"`
	OrphanAds      int `json:"orphan_ads"`

	CampaignsByStatus map[Status]int       `json:"campaigns_by_status"`
	CampaignsByType   map[CampaignType]int `json:"campaigns_by_type"`
	KeywordsByMatch   map[MatchType]int    `json:"keywords_by_match"`
	TotalDailyBudget  float64              `json:"total_daily_budget"`

	NegativeLists int `json:"negative_lists"`
	NegativeTerms int `json:"negative_terms"`
	Conflicts     int `json:"conflicts"`
}

// Summarize computes counts for the workspace and negative lists
func Summarize(ws Workspace, lists []NegativeKeywordList, conflicts int) WorkspaceSummary {
	summary := WorkspaceSummary{
		Counts:            ws.Summary(),
		CampaignsByStatus: make(map[Status]int),
		CampaignsByType:   make(map[CampaignType]int),
		KeywordsByMatch:   make(map[MatchType]int),
		NegativeLists:     len(lists),
		Conflicts:         conflicts,
	}

	for _, c := range ws.Campaigns {
		summary.CampaignsByStatus[c.Status]++
		summary.CampaignsByType[c.Type]++
		if c.Budget != nil && c.Status != StatusRemoved {
			summary.TotalDailyBudget += *c.Budget
		}
	}
	for _, ag := range ws.AdGroups {
		if !ag.Linked() {
			summary.OrphanAdGroups++
		}
	}
	for _, kw := range ws.Keywords {
		summary.KeywordsByMatch[kw.MatchType]++
		if kw.AdGroupID == "" {
			summary.OrphanKeywords++
		}
	}
	for _, ad := range ws.Ads {
		if ad.AdGroupID == "" {
			summary.OrphanAds++
		}
	}
	for _, l := range lists {
		summary.NegativeTerms += len(l.Keywords)
	}

	return summary
}
