package main

import (
	"strings"
	"testing"
)

func TestRenderCounts(t *testing.T) {
	out := renderCounts("Tier", "Resolved", []countRow{
		{"Catalog", 12},
		{"MusicBrainz", 3},
	})
	// Header cells are upper-cased by the table style.
	upper := strings.ToUpper(out)
	for _, want := range []string{"TIER", "RESOLVED", "CATALOG", "12", "MUSICBRAINZ", "3"} {
		if !strings.Contains(upper, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestRenderListPadsShortRows(t *testing.T) {
	out := renderList(
		[]string{"Key", "Name", "Score"},
		[][]string{{"sun ra"}},
		2,
	)
	lines := strings.Split(out, "\n")
	var header, row string
	for _, line := range lines {
		switch {
		case strings.Contains(strings.ToUpper(line), "KEY"):
			header = line
		case strings.Contains(line, "sun ra"):
			row = line
		}
	}
	if header == "" || row == "" {
		t.Fatalf("unexpected table output:\n%s", out)
	}
	if len([]rune(row)) != len([]rune(header)) {
		t.Errorf("short row not padded to header width:\nheader %q\nrow    %q", header, row)
	}
}

func TestPaddedRowFillsMissingCells(t *testing.T) {
	row := paddedRow([]string{"a", "b"}, 4)
	if len(row) != 4 {
		t.Fatalf("row width = %d, want 4", len(row))
	}
	if row[0] != "a" || row[1] != "b" || row[2] != "" || row[3] != "" {
		t.Errorf("row = %v, want [a b  ]", row)
	}
}
