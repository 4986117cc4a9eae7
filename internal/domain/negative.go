package domain

import (
	"slices"
	"strings"
)

type ListScope string

const (
	ScopeUniversal ListScope = "universal"
	ScopeCustom    ListScope = "custom"
)

// NegativeKeywordList holds broad-match negative terms
type NegativeKeywordList struct {
	ID                 string    `json:"id" yaml:"id"`
	Name               string    `json:"name" yaml:"name" validate:"required,max=255"`
	Scope              ListScope `json:"scope" yaml:"scope" validate:"omitempty,oneof=universal custom"`
	Keywords           []string  `json:"keywords" yaml:"keywords"`
	AppliedCampaignIDs []string  `json:"applied_campaign_ids" yaml:"applied_campaign_ids"`
}

// AppliesTo reports whether the list is active for the campaign
func (l NegativeKeywordList) AppliesTo(campaignID string) bool {
	if l.Scope == ScopeUniversal {
		return true
	}
	return campaignID != "" && slices.Contains(l.AppliedCampaignIDs, campaignID)
}

// CleanKeywords trims terms and drops blanks, keeping order.
func CleanKeywords(terms []string) []string {
	cleaned := make([]string, 0, len(terms))
	for _, t := range terms {
		if t = strings.TrimSpace(t); t != "" {
			cleaned = append(cleaned, t)
		}
	}
	return cleaned
}

// Conflict is a positive keyword suppressed by a negative term. Not persisted.
type Conflict struct {
	ID           string `json:"id"`
	KeywordID    string `json:"keyword_id"`
	Positive     string `json:"positive"`
	Negative     string `json:"negative"`
	ListID       string `json:"list_id"`
	ListName     string `json:"list"`
	CampaignID   string `json:"campaign_id,omitempty"`
	CampaignName string `json:"campaign"`
	AdGroupID    string `json:"ad_group_id"`
	AdGroupName  string `json:"ad_group"`
	// Active is true when the list currently applies to the keyword's campaign
	Active bool `json:"active"`
}

type ConflictGroup struct {
	KeywordID string     `json:"keyword_id"`
	Keyword   string     `json:"keyword"`
	Conflicts []Conflict `json:"conflicts"`
}

// DefaultNegativeLists are seeded into an empty store
func DefaultNegativeLists() []NegativeKeywordList {
	return []NegativeKeywordList{
		{
			ID:                 "univ_1",
			Name:               "Universal - Job Seekers",
			Scope:              ScopeUniversal,
			Keywords:           []string{"job", "career", "resume", "hiring", "internship", "salary", "recruiter"},
			AppliedCampaignIDs: []string{},
		},
		{
			ID:                 "univ_2",
			Name:               "Universal - Cheapskates",
			Scope:              ScopeUniversal,
			Keywords:           []string{"free", "cheap", "torrent", "crack", "hack", "download free", "serial key"},
			AppliedCampaignIDs: []string{},
		},
	}
}
