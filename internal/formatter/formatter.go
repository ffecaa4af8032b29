// package formatter provides functions to export rating summaries to various formats (CSV, Markdown, plain text)
package formatter

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"

	"github.com/desertthunder/airwave/internal/ratings"
)

// ExportToCSV converts rating summaries to CSV format with columns:
// Song, Thumbs Up, Thumbs Down, Average Stars, Star Votes
func ExportToCSV(summaries []ratings.SongSummary) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	headers := []string{"Song", "Thumbs Up", "Thumbs Down", "Average Stars", "Star Votes"}
	if err := writer.Write(headers); err != nil {
		return nil, fmt.Errorf("failed to write CSV headers: %w", err)
	}

	for _, summary := range summaries {
		record := []string{
			summary.SongID,
			strconv.Itoa(summary.Sentiment.ThumbsUp),
			strconv.Itoa(summary.Sentiment.ThumbsDown),
			strconv.FormatFloat(summary.Star.Average, 'f', 1, 64),
			strconv.Itoa(summary.Star.Total),
		}
		if err := writer.Write(record); err != nil {
			return nil, fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("CSV writer error: %w", err)
	}

	return buf.Bytes(), nil
}

// ExportToMarkdown converts rating summaries to a Markdown table.
func ExportToMarkdown(summaries []ratings.SongSummary) ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteString("# Ratings\n\n")
	buf.WriteString(fmt.Sprintf("**Songs rated**: %d\n\n", len(summaries)))

	buf.WriteString("| Song | 👍 | 👎 | ★ Average | ★ Votes |\n")
	buf.WriteString("| --- | --- | --- | --- | --- |\n")
	for _, summary := range summaries {
		buf.WriteString(fmt.Sprintf("| %s | %d | %d | %.1f | %d |\n",
			summary.SongID,
			summary.Sentiment.ThumbsUp,
			summary.Sentiment.ThumbsDown,
			summary.Star.Average,
			summary.Star.Total,
		))
	}

	return buf.Bytes(), nil
}

// ExportToText converts rating summaries to plain text format.
func ExportToText(summaries []ratings.SongSummary) ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteString(fmt.Sprintf("Songs rated: %d\n\n", len(summaries)))

	for i, summary := range summaries {
		buf.WriteString(fmt.Sprintf("%d. %s\n", i+1, summary.SongID))
		buf.WriteString(fmt.Sprintf("   up %d / down %d, %.1f stars over %d votes\n",
			summary.Sentiment.ThumbsUp,
			summary.Sentiment.ThumbsDown,
			summary.Star.Average,
			summary.Star.Total,
		))
	}

	return buf.Bytes(), nil
}

// Export renders summaries in the named format: "csv", "markdown", or "text".
func Export(format string, summaries []ratings.SongSummary) ([]byte, error) {
	switch format {
	case "csv":
		return ExportToCSV(summaries)
	case "markdown", "md":
		return ExportToMarkdown(summaries)
	case "text", "txt":
		return ExportToText(summaries)
	default:
		return nil, fmt.Errorf("unknown export format %q", format)
	}
}
