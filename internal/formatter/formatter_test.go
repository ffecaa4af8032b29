package formatter

import (
	"encoding/csv"
	"strings"
	"testing"

	"github.com/desertthunder/airwave/internal/ratings"
)

func sampleSummaries() []ratings.SongSummary {
	return []ratings.SongSummary{
		{
			SongID:    "Boards of Canada - Roygbiv",
			Sentiment: ratings.SentimentSummary{ThumbsUp: 3, ThumbsDown: 1},
			Star:      ratings.StarSummary{Average: 4.5, Total: 2},
		},
		{
			SongID:    "Burial - Archangel",
			Sentiment: ratings.SentimentSummary{ThumbsUp: 1},
			Star:      ratings.StarSummary{Average: 4.0, Total: 1},
		},
	}
}

func TestExportToCSV(t *testing.T) {
	data, err := ExportToCSV(sampleSummaries())
	if err != nil {
		t.Fatalf("export failed: %v", err)
	}

	records, err := csv.NewReader(strings.NewReader(string(data))).ReadAll()
	if err != nil {
		t.Fatalf("output is not valid CSV: %v", err)
	}

	if len(records) != 3 {
		t.Fatalf("expected header plus 2 records, got %d rows", len(records))
	}

	if records[1][0] != "Boards of Canada - Roygbiv" {
		t.Errorf("unexpected first record: %v", records[1])
	}
	if records[1][3] != "4.5" {
		t.Errorf("expected average 4.5, got %q", records[1][3])
	}
	if records[2][3] != "4.0" {
		t.Errorf("expected average 4.0, got %q", records[2][3])
	}
}

func TestExportToMarkdown(t *testing.T) {
	data, err := ExportToMarkdown(sampleSummaries())
	if err != nil {
		t.Fatalf("export failed: %v", err)
	}

	output := string(data)
	if !strings.Contains(output, "# Ratings") {
		t.Error("expected markdown heading")
	}
	if !strings.Contains(output, "| Boards of Canada - Roygbiv | 3 | 1 | 4.5 | 2 |") {
		t.Errorf("expected table row, got:\n%s", output)
	}
}

func TestExportToText(t *testing.T) {
	data, err := ExportToText(sampleSummaries())
	if err != nil {
		t.Fatalf("export failed: %v", err)
	}

	output := string(data)
	if !strings.Contains(output, "Songs rated: 2") {
		t.Error("expected song count")
	}
	if !strings.Contains(output, "up 1 / down 0, 4.0 stars over 1 votes") {
		t.Errorf("expected summary line, got:\n%s", output)
	}
}

func TestExport(t *testing.T) {
	for _, format := range []string{"csv", "markdown", "md", "text", "txt"} {
		if _, err := Export(format, sampleSummaries()); err != nil {
			t.Errorf("format %s failed: %v", format, err)
		}
	}

	if _, err := Export("yaml", sampleSummaries()); err == nil {
		t.Error("expected error for unknown format")
	}
}
