package infrastructure

import (
	"bufio"
	"bytes"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"adsplanner/internal/domain"

	"github.com/xuri/excelize/v2"
)

// Format is a tabular input or export encoding
type Format string

const (
	FormatCSV  Format = "csv"
	FormatTSV  Format = "tsv"
	FormatXLSX Format = "xlsx"
	FormatJSON Format = "json"
)

const utf8BOM = "\ufeff"

// ParseFormat accepts a format name or a file extension
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimPrefix(strings.TrimSpace(s), "."))); f {
	case FormatCSV, FormatTSV, FormatXLSX, FormatJSON:
		return f, nil
	case "txt":
		return FormatCSV, nil
	}
	return "", fmt.Errorf("%w: unsupported format %q", domain.ErrInvalidInput, s)
}

// DetectFormat picks the format from a content type, falling back to the file name
func DetectFormat(filename, contentType string) (Format, error) {
	ct := strings.ToLower(contentType)
	switch {
	case strings.Contains(ct, "tab-separated-values"):
		return FormatTSV, nil
	case strings.Contains(ct, "text/csv"):
		return FormatCSV, nil
	case strings.Contains(ct, "spreadsheetml"):
		return FormatXLSX, nil
	case strings.Contains(ct, "application/json"):
		return FormatJSON, nil
	}

	if ext := filepath.Ext(filename); ext != "" {
		return ParseFormat(ext)
	}
	return "", fmt.Errorf("%w: cannot detect format of %q", domain.ErrInvalidInput, filename)
}

// DecodeFile reads a file, choosing the decoder from its extension
func DecodeFile(path string) ([]domain.Row, error) {
	format, err := ParseFormat(filepath.Ext(path))
	if err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	return DecodeRows(f, format)
}

func DecodeRows(r io.Reader, format Format) ([]domain.Row, error) {
	switch format {
	case FormatCSV, FormatTSV:
		return decodeDelimited(r)
	case FormatXLSX:
		return decodeXLSX(r)
	case FormatJSON:
		return decodeJSON(r)
	}
	return nil, fmt.Errorf("%w: unsupported format %q", domain.ErrInvalidInput, format)
}

// decodeDelimited sniffs tab vs comma from the header line
func decodeDelimited(r io.Reader) ([]domain.Row, error) {
	br := bufio.NewReader(r)
	head, err := br.Peek(4096)
	if err != nil && !errors.Is(err, io.EOF) && !errors.Is(err, bufio.ErrBufferFull) {
		return nil, fmt.Errorf("%w: failed to read input: %v", domain.ErrInvalidInput, err)
	}
	head = bytes.TrimPrefix(head, []byte(utf8BOM))
	if len(bytes.TrimSpace(head)) == 0 {
		return []domain.Row{}, nil
	}

	firstLine := head
	if i := bytes.IndexByte(head, '\n'); i >= 0 {
		firstLine = head[:i]
	}
	delimiter := ','
	if bytes.Count(firstLine, []byte("\t")) > bytes.Count(firstLine, []byte(",")) {
		delimiter = '\t'
	}

	reader := csv.NewReader(br)
	reader.Comma = delimiter
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%w: malformed delimited input: %v", domain.ErrInvalidInput, err)
	}
	if len(records) > 0 && len(records[0]) > 0 {
		records[0][0] = strings.TrimPrefix(records[0][0], utf8BOM)
	}
	return rowsFromRecords(records), nil
}

// decodeXLSX reads the first sheet
func decodeXLSX(r io.Reader) ([]domain.Row, error) {
	xl, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to open workbook: %v", domain.ErrInvalidInput, err)
	}
	defer func() { _ = xl.Close() }()

	sheets := xl.GetSheetList()
	if len(sheets) == 0 {
		return []domain.Row{}, nil
	}

	records, err := xl.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read sheet %q: %v", domain.ErrInvalidInput, sheets[0], err)
	}
	return rowsFromRecords(records), nil
}

func decodeJSON(r io.Reader) ([]domain.Row, error) {
	var raw []map[string]any
	if err := json.NewDecoder(r).Decode(&raw); err != nil {
		return nil, fmt.Errorf("%w: expected a JSON array of objects: %v", domain.ErrInvalidInput, err)
	}
	// null decodes without error but is not a batch
	if raw == nil {
		return nil, fmt.Errorf("%w: expected a JSON array of objects", domain.ErrInvalidInput)
	}

	rows := make([]domain.Row, 0, len(raw))
	for _, obj := range raw {
		if obj == nil {
			continue
		}
		rows = append(rows, domain.Row(obj))
	}
	return rows, nil
}

// rowsFromRecords maps records onto the header. Blank lines are skipped and
// empty cells are left out of the row.
func rowsFromRecords(records [][]string) []domain.Row {
	rows := []domain.Row{}
	if len(records) == 0 {
		return rows
	}

	header := make([]string, len(records[0]))
	for i, h := range records[0] {
		header[i] = strings.TrimSpace(h)
	}

	for _, record := range records[1:] {
		row := domain.Row{}
		for i, cell := range record {
			if i >= len(header) || header[i] == "" {
				continue
			}
			if cell = strings.TrimSpace(cell); cell != "" {
				row[header[i]] = cell
			}
		}
		if len(row) > 0 {
			rows = append(rows, row)
		}
	}
	return rows
}
