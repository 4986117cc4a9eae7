package usecase

import (
	"testing"

	"adsplanner/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func shoeFixture() ([]domain.Keyword, []domain.AdGroup, []domain.Campaign) {
	keywords := []domain.Keyword{
		{ID: "K1", Text: "buy free shoes", AdGroupID: "AG1"},
		{ID: "K2", Text: "luxury shoes", AdGroupID: "AG1"},
	}
	adGroups := []domain.AdGroup{{ID: "AG1", CampaignID: "C1", Name: "Shoes"}}
	campaigns := []domain.Campaign{{ID: "C1", Name: "CampaignA"}}
	return keywords, adGroups, campaigns
}

func TestDetectConflicts_Empty(t *testing.T) {
	keywords, adGroups, campaigns := shoeFixture()
	lists := []domain.NegativeKeywordList{{ID: "L1", Name: "Universal", Keywords: []string{"free"}}}

	noKeywords := DetectConflicts(nil, lists, adGroups, campaigns)
	assert.NotNil(t, noKeywords)
	assert.Empty(t, noKeywords)

	noLists := DetectConflicts(keywords, nil, adGroups, campaigns)
	assert.NotNil(t, noLists)
	assert.Empty(t, noLists)
}

func TestDetectConflicts_BroadSubstringMatch(t *testing.T) {
	keywords, adGroups, campaigns := shoeFixture()
	lists := []domain.NegativeKeywordList{
		{ID: "L1", Name: "Universal", Scope: domain.ScopeUniversal, Keywords: []string{"free"}},
	}

	conflicts := DetectConflicts(keywords, lists, adGroups, campaigns)

	require.Len(t, conflicts, 1)
	c := conflicts[0]
	assert.Equal(t, "K1-L1-free", c.ID)
	assert.Equal(t, "buy free shoes", c.Positive)
	assert.Equal(t, "free", c.Negative)
	assert.Equal(t, "Universal", c.ListName)
	assert.Equal(t, "CampaignA", c.CampaignName)
	assert.Equal(t, "Shoes", c.AdGroupName)
	assert.True(t, c.Active)
}

func TestDetectConflicts_CaseInsensitive(t *testing.T) {
	keywords := []domain.Keyword{{ID: "K1", Text: "Free Shoes", AdGroupID: "AG1"}}
	adGroups := []domain.AdGroup{{ID: "AG1", CampaignID: "C1", Name: "Shoes"}}
	campaigns := []domain.Campaign{{ID: "C1", Name: "CampaignA"}}
	lists := []domain.NegativeKeywordList{{ID: "L1", Name: "Mixed", Keywords: []string{"FREE"}}}

	conflicts := DetectConflicts(keywords, lists, adGroups, campaigns)

	require.Len(t, conflicts, 1)
	assert.Equal(t, "Free Shoes", conflicts[0].Positive)
	assert.Equal(t, "free", conflicts[0].Negative)
}

func TestDetectConflicts_ScopeDoesNotFilter(t *testing.T) {
	keywords, adGroups, campaigns := shoeFixture()
	lists := []domain.NegativeKeywordList{
		{ID: "L2", Name: "Custom", Scope: domain.ScopeCustom, Keywords: []string{"luxury"}, AppliedCampaignIDs: []string{}},
	}

	conflicts := DetectConflicts(keywords, lists, adGroups, campaigns)

	require.Len(t, conflicts, 1)
	assert.Equal(t, "K2", conflicts[0].KeywordID)
	assert.False(t, conflicts[0].Active)

	lists[0].AppliedCampaignIDs = []string{"C1"}
	conflicts = DetectConflicts(keywords, lists, adGroups, campaigns)
	require.Len(t, conflicts, 1)
	assert.True(t, conflicts[0].Active)
}

func TestDetectConflicts_SubstringNotWordBoundary(t *testing.T) {
	keywords := []domain.Keyword{{ID: "K1", Text: "smart watch", AdGroupID: "AG1"}}
	adGroups := []domain.AdGroup{{ID: "AG1", CampaignID: "C1", Name: "Watches"}}
	lists := []domain.NegativeKeywordList{{ID: "L1", Name: "Art", Keywords: []string{"art"}}}

	conflicts := DetectConflicts(keywords, lists, adGroups, nil)

	require.Len(t, conflicts, 1)
	assert.Equal(t, UnknownCampaign, conflicts[0].CampaignName)
	assert.Empty(t, conflicts[0].CampaignID)
}

func TestDetectConflicts_SkipsUnresolvableKeywords(t *testing.T) {
	keywords := []domain.Keyword{
		{ID: "K1", Text: "free stuff"},
		{ID: "K2", Text: "free stuff", AdGroupID: "missing"},
		{ID: "K3", Text: "", AdGroupID: "AG1"},
	}
	adGroups := []domain.AdGroup{{ID: "AG1", Name: "G"}}
	lists := []domain.NegativeKeywordList{{ID: "L1", Name: "L", Keywords: []string{"free", " "}}}

	assert.Empty(t, DetectConflicts(keywords, lists, adGroups, nil))
}

func TestDetectConflicts_BlankTermsMatchNothing(t *testing.T) {
	keywords := []domain.Keyword{{ID: "K1", Text: "running shoes", AdGroupID: "AG1"}}
	adGroups := []domain.AdGroup{{ID: "AG1", Name: "G"}}
	lists := []domain.NegativeKeywordList{{ID: "L1", Name: "L", Keywords: []string{"", " ", "\t", "shoes"}}}

	conflicts := DetectConflicts(keywords, lists, adGroups, nil)
	require.Len(t, conflicts, 1)
	assert.Equal(t, "shoes", conflicts[0].Negative)
}

func TestDetectConflicts_OneConflictPerMatchingTerm(t *testing.T) {
	keywords := []domain.Keyword{{ID: "K1", Text: "free cheap job", AdGroupID: "AG1"}}
	adGroups := []domain.AdGroup{{ID: "AG1", CampaignID: "C1", Name: "G"}}
	campaigns := []domain.Campaign{{ID: "C1", Name: "C"}}

	conflicts := DetectConflicts(keywords, domain.DefaultNegativeLists(), adGroups, campaigns)

	require.Len(t, conflicts, 3)
	assert.Equal(t, "job", conflicts[0].Negative)
	assert.Equal(t, "univ_1", conflicts[0].ListID)
	assert.Equal(t, "free", conflicts[1].Negative)
	assert.Equal(t, "cheap", conflicts[2].Negative)
}

func TestGroupByKeyword(t *testing.T) {
	conflicts := []domain.Conflict{
		{KeywordID: "K2", Positive: "b", Negative: "x"},
		{KeywordID: "K1", Positive: "a", Negative: "y"},
		{KeywordID: "K2", Positive: "b", Negative: "z"},
	}

	groups := GroupByKeyword(conflicts)

	require.Len(t, groups, 2)
	assert.Equal(t, "K2", groups[0].KeywordID)
	assert.Equal(t, "b", groups[0].Keyword)
	assert.Len(t, groups[0].Conflicts, 2)
	assert.Equal(t, "K1", groups[1].KeywordID)
	assert.Empty(t, GroupByKeyword(nil))
}
