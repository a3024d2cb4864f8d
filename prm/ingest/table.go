// Package ingest turns uploaded CSV/XLSX spreadsheets into row maps with
// normalized headers, plus the cell coercions the data routes share.
package ingest

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"
)

// Table is a parsed spreadsheet: normalized column names and one string map
// per row. Excel workbooks concatenate every non-empty sheet.
type Table struct {
	Columns []string
	Rows    []map[string]string
}

// NormHeader lowercases and squashes a header the way uploads name columns:
// "Cost per hour (₹)" -> "cost_per_hour_inr".
func NormHeader(h string) string {
	h = strings.ToLower(strings.TrimSpace(h))
	h = strings.ReplaceAll(h, " ", "_")
	h = strings.ReplaceAll(h, "(", "")
	h = strings.ReplaceAll(h, ")", "")
	h = strings.ReplaceAll(h, "₹", "inr")
	h = strings.ReplaceAll(h, "/", "_")
	return h
}

// ReadTable dispatches on the file extension. CSV is the default.
func ReadTable(filename string, r io.Reader) (*Table, error) {
	if strings.HasSuffix(strings.ToLower(filename), ".xlsx") {
		return ReadXLSX(r)
	}
	return ReadCSV(r)
}

func ReadCSV(r io.Reader) (*Table, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("csv parse: %w", err)
	}
	if len(records) == 0 {
		return &Table{}, nil
	}
	cols := make([]string, len(records[0]))
	for i, h := range records[0] {
		cols[i] = NormHeader(h)
	}
	t := &Table{Columns: cols}
	for _, rec := range records[1:] {
		if emptyRecord(rec) {
			continue
		}
		row := make(map[string]string, len(cols))
		for i, c := range cols {
			if i < len(rec) {
				row[c] = strings.TrimSpace(rec[i])
			}
		}
		t.Rows = append(t.Rows, row)
	}
	return t, nil
}

func ReadXLSX(r io.Reader) (*Table, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("xlsx parse: %w", err)
	}
	defer f.Close()

	t := &Table{}
	for _, sheet := range f.GetSheetList() {
		rows, err := f.GetRows(sheet)
		if err != nil {
			return nil, fmt.Errorf("xlsx sheet %q: %w", sheet, err)
		}
		if len(rows) < 2 {
			continue // header-only or empty sheet
		}
		cols := make([]string, len(rows[0]))
		for i, h := range rows[0] {
			cols[i] = NormHeader(h)
		}
		if len(t.Columns) == 0 {
			t.Columns = cols
		}
		for _, rec := range rows[1:] {
			if emptyRecord(rec) {
				continue
			}
			row := make(map[string]string, len(cols))
			for i, c := range cols {
				if i < len(rec) {
					row[c] = strings.TrimSpace(rec[i])
				}
			}
			t.Rows = append(t.Rows, row)
		}
	}
	return t, nil
}

func emptyRecord(rec []string) bool {
	for _, cell := range rec {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

// ResolveColumns maps logical field names to actual table columns through
// alias lists, and reports which fields could not be resolved.
func ResolveColumns(columns []string, mapping map[string][]string) (map[string]string, []string) {
	have := make(map[string]bool, len(columns))
	for _, c := range columns {
		have[c] = true
	}
	resolved := make(map[string]string)
	var missing []string
	for field, aliases := range mapping {
		for _, a := range aliases {
			if have[a] {
				resolved[field] = a
				break
			}
		}
		if _, ok := resolved[field]; !ok {
			missing = append(missing, field)
		}
	}
	return resolved, missing
}

var dateLayouts = []string{
	"2006-01-02",
	"02-01-2006",
	"02/01/2006",
	"2006/01/02",
	"01/02/2006",
}

// ParseDate tries the upload formats in order; unknown shapes yield nil
// rather than an error, matching how blank cells are treated.
func ParseDate(s string) *time.Time {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return &t
		}
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return &t
	}
	return nil
}

func ParseInt(s string) *int {
	s = strings.ReplaceAll(strings.TrimSpace(s), ",", "")
	if s == "" {
		return nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil
	}
	n := int(f)
	return &n
}

func ParseFloat(s string) *float64 {
	s = strings.ReplaceAll(strings.TrimSpace(s), ",", "")
	if s == "" {
		return nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil
	}
	return &f
}
