// Package tabular reads uploaded CSV and spreadsheet files into a header and
// string records, and writes datasets and rankings back out as workbooks.
package tabular

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	"explorekit/internal/dataset"
)

var ErrUnsupportedFormat = errors.New("unsupported file format (expected .csv or .xlsx)")

// Table is a parsed file before any typing.
type Table struct {
	Header  []string
	Records [][]string
}

// Dataset infers column kinds for the table.
func (t *Table) Dataset() (*dataset.Dataset, error) {
	return dataset.New(t.Header, t.Records)
}

// Read parses r according to the extension of filename. sheet selects a
// worksheet for workbooks and is ignored for CSV.
func Read(r io.Reader, filename, sheet string) (*Table, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".csv", ".txt":
		return readCSV(r)
	case ".xlsx", ".xlsm":
		return readWorkbook(r, sheet)
	}
	return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, filepath.Base(filename))
}

func readCSV(r io.Reader) (*Table, error) {
	// Excel exports start with a UTF-8 BOM; strip it so the first header
	// name is clean.
	reader := csv.NewReader(transform.NewReader(r, unicode.BOMOverride(unicode.UTF8.NewDecoder())))
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read csv: %w", err)
	}
	return newTable(records)
}

func newTable(rows [][]string) (*Table, error) {
	if len(rows) == 0 {
		return nil, fmt.Errorf("file is empty")
	}

	width := 0
	for _, row := range rows {
		width = max(width, len(row))
	}

	body := rows[1:]
	// Trailing blank rows are common in spreadsheets.
	for len(body) > 0 && blank(body[len(body)-1]) {
		body = body[:len(body)-1]
	}
	return &Table{Header: headerNames(rows[0], width), Records: body}, nil
}

// headerNames fills blank header cells with "Unnamed: i" and disambiguates
// repeated names with ".1", ".2" suffixes.
func headerNames(raw []string, width int) []string {
	names := make([]string, width)
	used := make(map[string]bool, width)
	for i := range names {
		name := ""
		if i < len(raw) {
			name = strings.TrimSpace(raw[i])
		}
		if name == "" {
			name = fmt.Sprintf("Unnamed: %d", i)
		}
		candidate := name
		for n := 1; used[candidate]; n++ {
			candidate = fmt.Sprintf("%s.%d", name, n)
		}
		used[candidate] = true
		names[i] = candidate
	}
	return names
}

func blank(row []string) bool {
	for _, v := range row {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}
