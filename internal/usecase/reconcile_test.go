package usecase

import (
	"fmt"
	"testing"

	"adsplanner/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sequentialIDs() func() string {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("id-%d", n)
	}
}

func TestReconcile_EmptyInput(t *testing.T) {
	result := Reconcile(nil)

	assert.Empty(t, result.Workspace.Campaigns)
	assert.Empty(t, result.Workspace.AdGroups)
	assert.Empty(t, result.Workspace.Keywords)
	assert.Empty(t, result.Workspace.Ads)
	assert.Equal(t, domain.ImportSummary{}, result.Summary)
	assert.NotNil(t, result.Workspace.Campaigns)
}

func TestReconcile_Classification(t *testing.T) {
	tests := []struct {
		name string
		row  domain.Row
		want rowKind
	}{
		{
			name: "campaign row",
			row:  domain.Row{"Campaign": "Shoes", "Budget": "10"},
			want: kindCampaign,
		},
		{
			name: "ad group row",
			row:  domain.Row{"Campaign": "Shoes", "Ad Group": "Running"},
			want: kindAdGroup,
		},
		{
			name: "keyword row",
			row:  domain.Row{"Campaign": "Shoes", "Ad Group": "Running", "Keyword": "running shoes"},
			want: kindKeyword,
		},
		{
			name: "ad row",
			row:  domain.Row{"Campaign": "Shoes", "Ad Group": "Running", "Ad type": "Responsive search ad", "Headline 1": "Fast Shoes"},
			want: kindAd,
		},
		{
			name: "ad wins over keyword",
			row:  domain.Row{"Campaign": "Shoes", "Ad Group": "Running", "Keyword": "shoes", "Ad type": "Responsive search ad", "Headline 1": "Fast"},
			want: kindAd,
		},
		{
			name: "headline without ad type is not an ad",
			row:  domain.Row{"Campaign": "Shoes", "Ad Group": "Running", "Headline 1": "Fast"},
			want: kindUnclassified,
		},
		{
			name: "blank keyword counts as absent",
			row:  domain.Row{"Campaign": "Shoes", "Ad Group": "Running", "Keyword": "  "},
			want: kindAdGroup,
		},
		{
			name: "status only row",
			row:  domain.Row{"Campaign Status": "Paused"},
			want: kindUnclassified,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, classify(tt.row))
		})
	}
}

func TestReconcile_AdTakesPriorityOverKeyword(t *testing.T) {
	rows := []domain.Row{
		{"Campaign": "C", "Ad Group": "G", "Keyword": "shoes", "Ad type": "Responsive search ad", "Headline 1": "Buy Shoes"},
	}

	result := reconcile(rows, sequentialIDs())

	assert.Len(t, result.Workspace.Ads, 1)
	assert.Empty(t, result.Workspace.Keywords)
	assert.Equal(t, []string{"Buy Shoes"}, result.Workspace.Ads[0].Headlines)
}

func TestReconcile_StatusPrecedence(t *testing.T) {
	tests := []struct {
		name string
		row  domain.Row
		want domain.Status
	}{
		{"campaign status over status", domain.Row{"Campaign": "C", "Campaign Status": "Paused", "Status": "Enabled"}, domain.StatusPaused},
		{"ad group status over campaign status", domain.Row{"Campaign": "C", "Campaign Status": "Enabled", "Ad Group Status": "Paused"}, domain.StatusPaused},
		{"plain status", domain.Row{"Campaign": "C", "Status": "Removed"}, domain.StatusRemoved},
		{"defaults to enabled", domain.Row{"Campaign": "C"}, domain.StatusEnabled},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, normalizeStatus(tt.row))
		})
	}

	result := reconcile([]domain.Row{{"Campaign": "C", "Campaign Status": "Paused", "Status": "Enabled"}}, sequentialIDs())
	require.Len(t, result.Workspace.Campaigns, 1)
	assert.Equal(t, domain.StatusPaused, result.Workspace.Campaigns[0].Status)
	assert.Equal(t, "Paused", result.Workspace.Campaigns[0].Fields["Status"])
}

func TestReconcile_CompositeKeyLinkage(t *testing.T) {
	rows := []domain.Row{
		{"Campaign": "CampaignA"},
		{"Campaign": "CampaignB"},
		{"Campaign": "CampaignA", "Ad Group": "Brand", "Max CPC": "1.00"},
		{"Campaign": "CampaignB", "Ad Group": "Brand", "Max CPC": "2.50"},
		{"Campaign": "CampaignB", "Ad Group": "Brand", "Keyword": "brand shoes"},
		{"Campaign": "CampaignB", "Ad Group": "Brand", "Ad type": "Responsive search ad", "Headline 1": "Brand"},
	}

	result := reconcile(rows, sequentialIDs())
	ws := result.Workspace

	require.Len(t, ws.Campaigns, 2)
	require.Len(t, ws.AdGroups, 2)
	require.Len(t, ws.Keywords, 1)
	require.Len(t, ws.Ads, 1)

	campaignB := ws.Campaigns[1]
	brandB := ws.AdGroups[1]
	require.NotNil(t, brandB.MaxCPC)
	assert.Equal(t, 2.5, *brandB.MaxCPC)
	assert.Equal(t, campaignB.ID, brandB.CampaignID)
	assert.Equal(t, ws.Campaigns[0].ID, ws.AdGroups[0].CampaignID)

	assert.Equal(t, brandB.ID, ws.Keywords[0].AdGroupID)
	assert.Equal(t, campaignB.ID, ws.Keywords[0].CampaignID)
	assert.Equal(t, brandB.ID, ws.Ads[0].AdGroupID)
}

func TestReconcile_OrphanKeyword(t *testing.T) {
	rows := []domain.Row{
		{"Campaign": "C"},
		{"Campaign": "C", "Ad Group": "Known"},
		{"Campaign": "C", "Ad Group": "Missing", "Keyword": "lost keyword"},
	}

	result := reconcile(rows, sequentialIDs())

	require.Len(t, result.Workspace.Keywords, 1)
	kw := result.Workspace.Keywords[0]
	assert.Empty(t, kw.AdGroupID)
	assert.Equal(t, "lost keyword", kw.Text)

	conflicts := DetectConflicts(result.Workspace.Keywords, []domain.NegativeKeywordList{
		{ID: "l1", Name: "All", Scope: domain.ScopeUniversal, Keywords: []string{"lost"}},
	}, result.Workspace.AdGroups, result.Workspace.Campaigns)
	assert.Empty(t, conflicts)
}

func TestReconcile_OrphanAdGroup(t *testing.T) {
	result := reconcile([]domain.Row{{"Campaign": "Nowhere", "Ad Group": "G"}}, sequentialIDs())

	require.Len(t, result.Workspace.AdGroups, 1)
	assert.False(t, result.Workspace.AdGroups[0].Linked())
	assert.Equal(t, "Nowhere", result.Workspace.AdGroups[0].CampaignName)
}

func TestReconcile_SkipsRowsWithoutCampaign(t *testing.T) {
	rows := []domain.Row{
		{},
		{"Ad Group": "G", "Keyword": "no campaign"},
		{"Campaign": ""},
		{"Campaign": "C"},
	}

	result := reconcile(rows, sequentialIDs())

	assert.Equal(t, 3, result.Skipped)
	assert.Equal(t, 1, result.Summary.Campaigns)
	assert.Empty(t, result.Workspace.Keywords)
}

func TestReconcile_EntityFields(t *testing.T) {
	rows := []domain.Row{
		{"Campaign": "Shoes", "Budget": "$1,250.50", "Campaign Type": "Display", "Networks": "Google search", "Languages": "en", "Labels": "Q3"},
		{"Campaign": "Shoes", "Ad Group": "Running", "Max CPC": 1.2},
		{"Campaign": "Shoes", "Ad Group": "Running", "Keyword": "trail shoes", "Criterion Type": "Exact"},
		{
			"Campaign": "Shoes", "Ad Group": "Running", "Ad type": "Responsive search ad",
			"Headline 1": "H1", "Headline 3": "H3", "Description 1": "D1",
			"Final URL": "https://example.com", "Path 1": "shoes",
		},
	}

	result := reconcile(rows, sequentialIDs())
	ws := result.Workspace

	c := ws.Campaigns[0]
	require.NotNil(t, c.Budget)
	assert.Equal(t, 1250.5, *c.Budget)
	assert.Equal(t, domain.CampaignTypeDisplay, c.Type)
	assert.Equal(t, "Google search", c.Networks)
	assert.Equal(t, "Q3", c.Fields["Labels"])

	ag := ws.AdGroups[0]
	assert.Equal(t, domain.DefaultAdGroupType, ag.Type)
	require.NotNil(t, ag.MaxCPC)
	assert.Equal(t, 1.2, *ag.MaxCPC)

	assert.Equal(t, domain.MatchExact, ws.Keywords[0].MatchType)

	ad := ws.Ads[0]
	assert.Equal(t, []string{"H1", "H3"}, ad.Headlines)
	assert.Equal(t, []string{"D1"}, ad.Descriptions)
	assert.Equal(t, "https://example.com", ad.FinalURL)
	assert.Equal(t, "shoes", ad.Path1)
}

func TestReconcile_DoesNotMutateInput(t *testing.T) {
	row := domain.Row{"Campaign": "C", "Campaign Status": "paused"}

	reconcile([]domain.Row{row}, sequentialIDs())

	_, hasStatus := row["Status"]
	assert.False(t, hasStatus)
}

func TestReconcile_UniqueIDs(t *testing.T) {
	rows := []domain.Row{
		{"Campaign": "A"},
		{"Campaign": "B"},
		{"Campaign": "A", "Ad Group": "G"},
	}

	result := Reconcile(rows)

	ids := map[string]bool{}
	for _, c := range result.Workspace.Campaigns {
		ids[c.ID] = true
	}
	for _, ag := range result.Workspace.AdGroups {
		ids[ag.ID] = true
	}
	assert.Len(t, ids, 3)
}
