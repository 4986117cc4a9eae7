package usecase

import (
	"strings"

	"adsplanner/internal/domain"
)

// UnknownCampaign labels conflicts whose ad group has no resolvable campaign
const UnknownCampaign = "Unknown"

type negativeTerm struct {
	text string
	list *domain.NegativeKeywordList
}

// DetectConflicts reports every keyword whose lower-cased text contains a
// lower-cased negative term. All lists are checked whatever their scope, so the
// result shows what a list would block if it were applied.
func DetectConflicts(
	keywords []domain.Keyword,
	lists []domain.NegativeKeywordList,
	adGroups []domain.AdGroup,
	campaigns []domain.Campaign,
) []domain.Conflict {
	conflicts := []domain.Conflict{}
	if len(keywords) == 0 || len(lists) == 0 {
		return conflicts
	}

	var terms []negativeTerm
	for i := range lists {
		for _, k := range lists[i].Keywords {
			if strings.TrimSpace(k) == "" {
				continue
			}
			terms = append(terms, negativeTerm{text: strings.ToLower(k), list: &lists[i]})
		}
	}
	if len(terms) == 0 {
		return conflicts
	}

	// first occurrence wins on duplicate ids
	adGroupsByID := make(map[string]*domain.AdGroup, len(adGroups))
	for i := range adGroups {
		if _, ok := adGroupsByID[adGroups[i].ID]; !ok {
			adGroupsByID[adGroups[i].ID] = &adGroups[i]
		}
	}
	campaignsByID := make(map[string]*domain.Campaign, len(campaigns))
	for i := range campaigns {
		if _, ok := campaignsByID[campaigns[i].ID]; !ok {
			campaignsByID[campaigns[i].ID] = &campaigns[i]
		}
	}

	for _, kw := range keywords {
		if kw.Text == "" || kw.AdGroupID == "" {
			continue
		}
		adGroup, ok := adGroupsByID[kw.AdGroupID]
		if !ok {
			continue
		}

		campaignID, campaignName := "", UnknownCampaign
		if adGroup.CampaignID != "" {
			if c, ok := campaignsByID[adGroup.CampaignID]; ok {
				campaignID, campaignName = c.ID, c.Name
			}
		}

		positive := strings.ToLower(kw.Text)
		for _, term := range terms {
			if !strings.Contains(positive, term.text) {
				continue
			}
			conflicts = append(conflicts, domain.Conflict{
				ID:           kw.ID + "-" + term.list.ID + "-" + term.text,
				KeywordID:    kw.ID,
				Positive:     kw.Text,
				Negative:     term.text,
				ListID:       term.list.ID,
				ListName:     term.list.Name,
				CampaignID:   campaignID,
				CampaignName: campaignName,
				AdGroupID:    adGroup.ID,
				AdGroupName:  adGroup.Name,
				Active:       term.list.AppliesTo(campaignID),
			})
		}
	}

	return conflicts
}

// GroupByKeyword groups conflicts per keyword in first-appearance order
func GroupByKeyword(conflicts []domain.Conflict) []domain.ConflictGroup {
	groups := []domain.ConflictGroup{}
	index := make(map[string]int)

	for _, c := range conflicts {
		i, ok := index[c.KeywordID]
		if !ok {
			i = len(groups)
			index[c.KeywordID] = i
			groups = append(groups, domain.ConflictGroup{KeywordID: c.KeywordID, Keyword: c.Positive})
		}
		groups[i].Conflicts = append(groups[i].Conflicts, c)
	}

	return groups
}
