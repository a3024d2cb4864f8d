package ingest

import (
	"strings"
	"testing"
	"time"
)

// --- Header normalization ---

func TestNormHeader(t *testing.T) {
	cases := map[string]string{
		"Resource ID":       "resource_id",
		"  Name  ":          "name",
		"Cost per hour (₹)": "cost_per_hour_inr",
		"Capacity hrs/week": "capacity_hrs_week",
		"PROFICIENCY Level": "proficiency_level",
	}
	for in, want := range cases {
		if got := NormHeader(in); got != want {
			t.Errorf("NormHeader(%q) = %q, want %q", in, got, want)
		}
	}
}

// --- CSV parsing ---

func TestReadCSV(t *testing.T) {
	csvData := "Resource ID,Name,Role,Skills\nR-001,Asha,Engineer,\"Go, Postgres\"\n,,,\nR-002,Priya,Designer,Figma\n"
	table, err := ReadCSV(strings.NewReader(csvData))
	if err != nil {
		t.Fatalf("csv parse failed: %v", err)
	}
	if len(table.Columns) != 4 || table.Columns[0] != "resource_id" {
		t.Errorf("unexpected columns: %v", table.Columns)
	}
	if len(table.Rows) != 2 {
		t.Fatalf("expected 2 rows after skipping the blank one, got %d", len(table.Rows))
	}
	if table.Rows[0]["name"] != "Asha" || table.Rows[0]["skills"] != "Go, Postgres" {
		t.Errorf("unexpected first row: %v", table.Rows[0])
	}
	if table.Rows[1]["resource_id"] != "R-002" {
		t.Errorf("unexpected second row: %v", table.Rows[1])
	}
}

func TestReadCSVRaggedRows(t *testing.T) {
	csvData := "id,name,role\nR-1,Asha\n"
	table, err := ReadCSV(strings.NewReader(csvData))
	if err != nil {
		t.Fatalf("csv parse failed: %v", err)
	}
	if len(table.Rows) != 1 {
		t.Fatalf("expected 1 row, got %d", len(table.Rows))
	}
	if _, present := table.Rows[0]["role"]; present {
		t.Errorf("short row should not carry the missing column")
	}
}

func TestReadTableDispatch(t *testing.T) {
	csvData := "id,name\n1,x\n"
	table, err := ReadTable("people.CSV", strings.NewReader(csvData))
	if err != nil {
		t.Fatalf("dispatch failed: %v", err)
	}
	if len(table.Rows) != 1 {
		t.Errorf("expected csv path for .CSV, got %d rows", len(table.Rows))
	}
	if _, err := ReadTable("people.xlsx", strings.NewReader("not an xlsx")); err == nil {
		t.Errorf("expected xlsx parse error for garbage input")
	}
}

// --- Column resolution ---

func TestResolveColumnsAliases(t *testing.T) {
	cols := []string{"id", "full_name", "designation", "skillset", "budget"}
	resolved, missing := ResolveColumns(cols, ResourceMapping)
	if resolved["resource_id"] != "id" {
		t.Errorf("expected id alias, got %q", resolved["resource_id"])
	}
	if resolved["name"] != "full_name" || resolved["role"] != "designation" || resolved["skills"] != "skillset" {
		t.Errorf("alias resolution wrong: %v", resolved)
	}
	hasMissing := func(f string) bool {
		for _, m := range missing {
			if m == f {
				return true
			}
		}
		return false
	}
	if !hasMissing("availability_date") {
		t.Errorf("expected availability_date reported missing, got %v", missing)
	}
	if hasMissing("resource_id") {
		t.Errorf("resolved field reported missing: %v", missing)
	}
}

func TestResolveProjectRequired(t *testing.T) {
	resolved, _ := ResolveColumns([]string{"p_id", "title", "summary"}, ProjectMapping)
	for _, field := range ProjectRequired {
		if _, ok := resolved[field]; !ok {
			t.Errorf("required project field %q not resolved", field)
		}
	}
}

// --- Cell coercions ---

func TestParseDateLayouts(t *testing.T) {
	for _, in := range []string{"2026-03-15", "15-03-2026", "15/03/2026", "2026/03/15"} {
		got := ParseDate(in)
		if got == nil {
			t.Errorf("ParseDate(%q) = nil", in)
			continue
		}
		if got.Year() != 2026 || got.Month() != time.March || got.Day() != 15 {
			t.Errorf("ParseDate(%q) = %v", in, got)
		}
	}
	if ParseDate("not a date") != nil {
		t.Errorf("expected nil for junk date")
	}
	if ParseDate("") != nil {
		t.Errorf("expected nil for empty date")
	}
}

func TestParseNumbers(t *testing.T) {
	if got := ParseInt("40"); got == nil || *got != 40 {
		t.Errorf("ParseInt(40) = %v", got)
	}
	if got := ParseInt("1,200"); got == nil || *got != 1200 {
		t.Errorf("ParseInt with comma = %v", got)
	}
	if ParseInt("forty") != nil {
		t.Errorf("expected nil for junk int")
	}
	if got := ParseFloat("1,250.50"); got == nil || *got != 1250.50 {
		t.Errorf("ParseFloat with comma = %v", got)
	}
	if ParseFloat("") != nil {
		t.Errorf("expected nil for empty float")
	}
}
