package infrastructure

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"slices"
	"strconv"

	"adsplanner/internal/domain"

	"github.com/xuri/excelize/v2"
)

// Row Type values in combined exports
const (
	RowTypeCampaign = "Campaign"
	RowTypeAdGroup  = "Ad Group"
	RowTypeKeyword  = "Keyword"
	RowTypeAd       = "Ad"
)

var canonicalColumns = []string{
	domain.ColRowType,
	domain.ColCampaign,
	domain.ColCampaignType,
	domain.ColCampaignStatus,
	domain.ColBudget,
	domain.ColNetworks,
	domain.ColLanguages,
	domain.ColAdGroup,
	domain.ColAdGroupStatus,
	domain.ColAdGroupType,
	domain.ColMaxCPC,
	domain.ColKeyword,
	domain.ColCriterionType,
	domain.ColStatus,
	domain.ColAdType,
	domain.ColHeadline1,
	domain.ColHeadline2,
	domain.ColHeadline3,
	domain.ColDescription1,
	domain.ColDescription2,
	domain.ColFinalURL,
	domain.ColPath1,
	domain.ColPath2,
}

// ContentType returns the MIME type of an export format
func ContentType(format Format) string {
	switch format {
	case FormatCSV:
		return "text/csv; charset=utf-8"
	case FormatTSV:
		return "text/tab-separated-values; charset=utf-8"
	case FormatXLSX:
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	}
	return "application/json; charset=utf-8"
}

// Export writes doc in the requested format
func Export(w io.Writer, doc domain.ExportDocument, format Format) error {
	ws := domain.Workspace{
		Campaigns: doc.Campaigns,
		AdGroups:  doc.AdGroups,
		Keywords:  doc.Keywords,
		Ads:       doc.Ads,
	}

	switch format {
	case FormatCSV:
		return WriteDelimited(w, ws, ',')
	case FormatTSV:
		return WriteDelimited(w, ws, '\t')
	case FormatXLSX:
		return WriteXLSX(w, ws)
	case FormatJSON:
		return WriteJSON(w, doc)
	}
	return fmt.Errorf("%w: unsupported export format %q", domain.ErrInvalidInput, format)
}

// ExportRows flattens the workspace into editor rows, one per entity.
// Canonical columns come from the entity; other pass-through fields are kept.
func ExportRows(ws domain.Workspace) []domain.Row {
	rows := make([]domain.Row, 0, len(ws.Campaigns)+len(ws.AdGroups)+len(ws.Keywords)+len(ws.Ads))

	for _, c := range ws.Campaigns {
		row := passThrough(c.Fields)
		row[domain.ColRowType] = RowTypeCampaign
		row[domain.ColCampaign] = c.Name
		row[domain.ColCampaignType] = string(c.Type)
		row[domain.ColCampaignStatus] = string(c.Status)
		setNumber(row, domain.ColBudget, c.Budget)
		setString(row, domain.ColNetworks, c.Networks)
		setString(row, domain.ColLanguages, c.Languages)
		rows = append(rows, row)
	}

	for _, ag := range ws.AdGroups {
		row := passThrough(ag.Fields)
		row[domain.ColRowType] = RowTypeAdGroup
		setString(row, domain.ColCampaign, ag.CampaignName)
		row[domain.ColAdGroup] = ag.Name
		row[domain.ColAdGroupStatus] = string(ag.Status)
		setString(row, domain.ColAdGroupType, ag.Type)
		setNumber(row, domain.ColMaxCPC, ag.MaxCPC)
		rows = append(rows, row)
	}

	for _, kw := range ws.Keywords {
		row := passThrough(kw.Fields)
		row[domain.ColRowType] = RowTypeKeyword
		setString(row, domain.ColCampaign, kw.CampaignName)
		setString(row, domain.ColAdGroup, kw.AdGroupName)
		row[domain.ColKeyword] = kw.Text
		row[domain.ColCriterionType] = string(kw.MatchType)
		row[domain.ColStatus] = string(kw.Status)
		rows = append(rows, row)
	}

	headlines := []string{domain.ColHeadline1, domain.ColHeadline2, domain.ColHeadline3}
	descriptions := []string{domain.ColDescription1, domain.ColDescription2}
	for _, ad := range ws.Ads {
		row := passThrough(ad.Fields)
		row[domain.ColRowType] = RowTypeAd
		setString(row, domain.ColCampaign, ad.CampaignName)
		setString(row, domain.ColAdGroup, ad.AdGroupName)
		row[domain.ColAdType] = ad.AdType
		for i, h := range ad.Headlines {
			if i < len(headlines) {
				row[headlines[i]] = h
			}
		}
		for i, d := range ad.Descriptions {
			if i < len(descriptions) {
				row[descriptions[i]] = d
			}
		}
		setString(row, domain.ColFinalURL, ad.FinalURL)
		setString(row, domain.ColPath1, ad.Path1)
		setString(row, domain.ColPath2, ad.Path2)
		row[domain.ColStatus] = string(ad.Status)
		rows = append(rows, row)
	}

	return rows
}

// ExportColumns returns the canonical columns followed by any extra field names, sorted
func ExportColumns(rows []domain.Row) []string {
	var extra []string
	seen := make(map[string]bool)
	for _, col := range canonicalColumns {
		seen[col] = true
	}
	for _, row := range rows {
		for k := range row {
			if !seen[k] {
				seen[k] = true
				extra = append(extra, k)
			}
		}
	}
	slices.Sort(extra)
	return append(slices.Clone(canonicalColumns), extra...)
}

func WriteDelimited(w io.Writer, ws domain.Workspace, comma rune) error {
	rows := ExportRows(ws)
	columns := ExportColumns(rows)

	writer := csv.NewWriter(w)
	writer.Comma = comma

	if err := writer.Write(columns); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	for _, row := range rows {
		if err := writer.Write(record(row, columns)); err != nil {
			return fmt.Errorf("failed to write row: %w", err)
		}
	}
	writer.Flush()
	return writer.Error()
}

// WriteXLSX writes a combined first sheet followed by one sheet per entity type
func WriteXLSX(w io.Writer, ws domain.Workspace) error {
	xl := excelize.NewFile()
	defer func() { _ = xl.Close() }()

	rows := ExportRows(ws)
	sheets := []struct {
		name    string
		rowType string
	}{
		{"All", ""},
		{"Campaigns", RowTypeCampaign},
		{"Ad Groups", RowTypeAdGroup},
		{"Keywords", RowTypeKeyword},
		{"Ads", RowTypeAd},
	}

	for i, sheet := range sheets {
		if i == 0 {
			if err := xl.SetSheetName(xl.GetSheetName(0), sheet.name); err != nil {
				return fmt.Errorf("failed to rename sheet: %w", err)
			}
		} else if _, err := xl.NewSheet(sheet.name); err != nil {
			return fmt.Errorf("failed to create sheet %s: %w", sheet.name, err)
		}

		selected := rows
		if sheet.rowType != "" {
			selected = slices.DeleteFunc(slices.Clone(rows), func(r domain.Row) bool {
				return r[domain.ColRowType] != sheet.rowType
			})
		}
		if err := writeSheet(xl, sheet.name, selected); err != nil {
			return err
		}
	}

	if err := xl.Write(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}

func writeSheet(xl *excelize.File, name string, rows []domain.Row) error {
	columns := ExportColumns(rows)
	if err := xl.SetSheetRow(name, "A1", &columns); err != nil {
		return fmt.Errorf("failed to write %s header: %w", name, err)
	}

	for i, row := range rows {
		values := record(row, columns)
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := xl.SetSheetRow(name, cell, &values); err != nil {
			return fmt.Errorf("failed to write %s row: %w", name, err)
		}
	}
	return nil
}

func WriteJSON(w io.Writer, doc domain.ExportDocument) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("failed to encode export: %w", err)
	}
	return nil
}

func record(row domain.Row, columns []string) []string {
	values := make([]string, len(columns))
	for i, col := range columns {
		values[i] = row.String(col)
	}
	return values
}

// passThrough copies the non-canonical fields of an imported row
func passThrough(fields domain.Row) domain.Row {
	row := domain.Row{}
	for k, v := range fields {
		if !slices.Contains(canonicalColumns, k) && k != domain.ColType {
			row[k] = v
		}
	}
	return row
}

func setString(row domain.Row, col, value string) {
	if value != "" {
		row[col] = value
	}
}

func setNumber(row domain.Row, col string, value *float64) {
	if value != nil {
		row[col] = strconv.FormatFloat(*value, 'f', -1, 64)
	}
}
