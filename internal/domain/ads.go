package domain

import "strings"

type Status string

const (
	StatusEnabled Status = "Enabled"
	StatusPaused  Status = "Paused"
	StatusRemoved Status = "Removed"
)

// ParseStatus maps free text onto a known status, keeping unknown values verbatim.
func ParseStatus(s string) Status {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "":
		return StatusEnabled
	case "enabled", "active":
		return StatusEnabled
	case "paused":
		return StatusPaused
	case "removed", "deleted":
		return StatusRemoved
	}
	return Status(strings.TrimSpace(s))
}

type CampaignType string

const (
	CampaignTypeSearch         CampaignType = "Search"
	CampaignTypeDisplay        CampaignType = "Display"
	CampaignTypeVideo          CampaignType = "Video"
	CampaignTypeShopping       CampaignType = "Shopping"
	CampaignTypePerformanceMax CampaignType = "Performance Max"
)

// ParseCampaignType defaults to Search for empty or unknown values
func ParseCampaignType(s string) CampaignType {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "display":
		return CampaignTypeDisplay
	case "video":
		return CampaignTypeVideo
	case "shopping":
		return CampaignTypeShopping
	case "performance max", "performance_max", "pmax":
		return CampaignTypePerformanceMax
	}
	return CampaignTypeSearch
}

type MatchType string

const (
	MatchBroad  MatchType = "Broad"
	MatchPhrase MatchType = "Phrase"
	MatchExact  MatchType = "Exact"
)

// ParseMatchType defaults to Broad
func ParseMatchType(s string) MatchType {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "phrase", "phrase match":
		return MatchPhrase
	case "exact", "exact match":
		return MatchExact
	}
	return MatchBroad
}

// Campaign is the root of the ads structure. Children join on Name.
type Campaign struct {
	ID        string       `json:"id"`
	Name      string       `json:"name" validate:"required,max=255"`
	Budget    *float64     `json:"budget,omitempty" validate:"omitempty,gt=0"`
	Type      CampaignType `json:"type" validate:"omitempty,oneof=Search Display Video Shopping 'Performance Max'"`
	Status    Status       `json:"status" validate:"omitempty,oneof=Enabled Paused Removed"`
	Networks  string       `json:"networks,omitempty"`
	Languages string       `json:"languages,omitempty"`
	Fields    Row          `json:"fields,omitempty"`
}

// AdGroup names are unique only within their campaign.
type AdGroup struct {
	ID           string   `json:"id"`
	CampaignID   string   `json:"campaign_id,omitempty"`
	CampaignName string   `json:"campaign_name"`
	Name         string   `json:"name" validate:"required,max=255"`
	MaxCPC       *float64 `json:"max_cpc,omitempty" validate:"omitempty,gt=0"`
	Type         string   `json:"type"`
	Status       Status   `json:"status" validate:"omitempty,oneof=Enabled Paused Removed"`
	Fields       Row      `json:"fields,omitempty"`
}

// Linked reports whether the ad group resolved to a campaign
func (ag AdGroup) Linked() bool {
	return ag.CampaignID != ""
}

type Keyword struct {
	ID           string    `json:"id"`
	AdGroupID    string    `json:"ad_group_id,omitempty"`
	CampaignID   string    `json:"campaign_id,omitempty"`
	CampaignName string    `json:"campaign_name"`
	AdGroupName  string    `json:"ad_group_name"`
	Text         string    `json:"text" validate:"required,max=80"`
	MatchType    MatchType `json:"match_type" validate:"omitempty,oneof=Broad Phrase Exact"`
	Status       Status    `json:"status" validate:"omitempty,oneof=Enabled Paused Removed"`
	Fields       Row       `json:"fields,omitempty"`
}

// Ad is a responsive search ad
type Ad struct {
	ID           string   `json:"id"`
	AdGroupID    string   `json:"ad_group_id,omitempty"`
	CampaignID   string   `json:"campaign_id,omitempty"`
	CampaignName string   `json:"campaign_name"`
	AdGroupName  string   `json:"ad_group_name"`
	AdType       string   `json:"ad_type"`
	Headlines    []string `json:"headlines" validate:"min=1,max=3,dive,max=30"`
	Descriptions []string `json:"descriptions" validate:"max=2,dive,max=90"`
	FinalURL     string   `json:"final_url" validate:"omitempty,url"`
	Path1        string   `json:"path1,omitempty" validate:"max=15"`
	Path2        string   `json:"path2,omitempty" validate:"max=15"`
	Status       Status   `json:"status" validate:"omitempty,oneof=Enabled Paused Removed"`
	Fields       Row      `json:"fields,omitempty"`
}

// composite join key for ad groups
type AdGroupKey struct {
	Campaign string
	AdGroup  string
}

// String returns the key in "campaign|adgroup" form
func (k AdGroupKey) String() string {
	return k.Campaign + "|" + k.AdGroup
}
