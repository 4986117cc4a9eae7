package domain

import "time"

// Workspace is the full set of ads entities held by the host application
type Workspace struct {
	Campaigns []Campaign `json:"campaigns"`
	AdGroups  []AdGroup  `json:"adGroups"`
	Keywords  []Keyword  `json:"keywords"`
	Ads       []Ad       `json:"ads"`
}

// NewWorkspace returns a workspace with non-nil empty collections
func NewWorkspace() Workspace {
	return Workspace{
		Campaigns: []Campaign{},
		AdGroups:  []AdGroup{},
		Keywords:  []Keyword{},
		Ads:       []Ad{},
	}
}

// Clone copies the collection slices so the result can be mutated independently.
func (w Workspace) Clone() Workspace {
	return Workspace{
		Campaigns: append(make([]Campaign, 0, len(w.Campaigns)), w.Campaigns...),
		AdGroups:  append(make([]AdGroup, 0, len(w.AdGroups)), w.AdGroups...),
		Keywords:  append(make([]Keyword, 0, len(w.Keywords)), w.Keywords...),
		Ads:       append(make([]Ad, 0, len(w.Ads)), w.Ads...),
	}
}

func (w Workspace) Summary() ImportSummary {
	return ImportSummary{
		Campaigns: len(w.Campaigns),
		AdGroups:  len(w.AdGroups),
		Keywords:  len(w.Keywords),
		Ads:       len(w.Ads),
	}
}

// ImportSummary counts entities per type
type ImportSummary struct {
	Campaigns int `json:"campaigns"`
	AdGroups  int `json:"adGroups"`
	Keywords  int `json:"keywords"`
	Ads       int `json:"ads"`
}

// ImportResult is the output of reconciling one batch of rows
type ImportResult struct {
	Workspace Workspace     `json:"workspace"`
	Summary   ImportSummary `json:"summary"`

	// Rows without campaign name or status
	Skipped int `json:"-"`
	// Rows matching no category
	Unclassified int `json:"-"`
}

// ExportDocument is the JSON export and remote sync payload
type ExportDocument struct {
	Campaigns            []Campaign            `json:"campaigns"`
	AdGroups             []AdGroup             `json:"adGroups"`
	Keywords             []Keyword             `json:"keywords"`
	Ads                  []Ad                  `json:"ads"`
	NegativeKeywordLists []NegativeKeywordList `json:"negativeKeywordLists"`
	ExportedAt           time.Time             `json:"exportedAt"`
}
