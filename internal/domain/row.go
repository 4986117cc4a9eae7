package domain

import (
	"strconv"
	"strings"
)

// Column names used by the ads-editor spreadsheet format
const (
	ColCampaign        = "Campaign"
	ColCampaignStatus  = "Campaign Status"
	ColCampaignType    = "Campaign Type"
	ColType            = "Type"
	ColBudget          = "Budget"
	ColNetworks        = "Networks"
	ColLanguages       = "Languages"
	ColAdGroup         = "Ad Group"
	ColAdGroupStatus   = "Ad Group Status"
	ColMaxCPC          = "Max CPC"
	ColAdGroupType     = "Ad Group Type"
	ColKeyword         = "Keyword"
	ColCriterionType   = "Criterion Type"
	ColStatus          = "Status"
	ColAdType          = "Ad type"
	ColHeadline1       = "Headline 1"
	ColHeadline2       = "Headline 2"
	ColHeadline3       = "Headline 3"
	ColDescription1    = "Description 1"
	ColDescription2    = "Description 2"
	ColFinalURL        = "Final URL"
	ColPath1           = "Path 1"
	ColPath2           = "Path 2"
	ColRowType         = "Row Type"
	DefaultAdType      = "Responsive search ad"
	DefaultAdGroupType = "Standard"
)

// Row is one loosely-typed record of tabular input. Values are strings or numbers.
type Row map[string]any

// Has reports whether the field is present with a non-blank value.
func (r Row) Has(field string) bool {
	_, ok := r.Get(field)
	return ok
}

// Get returns the field rendered as a string. Blank strings count as absent.
func (r Row) Get(field string) (string, bool) {
	v, ok := r[field]
	if !ok || v == nil {
		return "", false
	}

	var s string
	switch val := v.(type) {
	case string:
		s = val
	case float64:
		s = strconv.FormatFloat(val, 'f', -1, 64)
	case float32:
		s = strconv.FormatFloat(float64(val), 'f', -1, 32)
	case int:
		s = strconv.Itoa(val)
	case int64:
		s = strconv.FormatInt(val, 10)
	case bool:
		s = strconv.FormatBool(val)
	default:
		return "", false
	}

	if strings.TrimSpace(s) == "" {
		return "", false
	}
	return s, true
}

// String returns the field or "" when absent.
func (r Row) String(field string) string {
	s, _ := r.Get(field)
	return s
}

// Number parses a numeric field. Currency symbols and thousands separators are tolerated.
func (r Row) Number(field string) *float64 {
	v, ok := r[field]
	if !ok || v == nil {
		return nil
	}

	switch val := v.(type) {
	case float64:
		return &val
	case int:
		f := float64(val)
		return &f
	case int64:
		f := float64(val)
		return &f
	}

	s, ok := r.Get(field)
	if !ok {
		return nil
	}
	s = strings.TrimSpace(strings.NewReplacer(",", "", "$", "", "€", "", "£", "").Replace(s))
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil
	}
	return &f
}

// Clone returns a shallow copy
func (r Row) Clone() Row {
	out := make(Row, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}
