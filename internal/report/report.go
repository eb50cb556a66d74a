package report

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"textmetrics/internal/numconv"
	"textmetrics/internal/numstats"
	"textmetrics/internal/wordcount"
)

// Fixed result file names, one per utility.
const (
	StatisticsFile = "StatisticsResults.txt"
	ConversionFile = "ConversionResults.txt"
	WordCountFile  = "WordCountResults.txt"
)

// StatisticsLines builds the report for the statistics utility.
func StatisticsLines(inputName string, s numstats.Summary, invalid int, elapsed time.Duration) []string {
	table := FormatTable(
		[]string{"Statistic", inputName},
		[][]string{
			{"Count", strconv.Itoa(s.Count)},
			{"Mean", FormatFloat(s.Mean)},
			{"Median", FormatFloat(s.Median)},
			{"Mode", FormatFloat(s.Mode)},
			{"Variance", FormatFloat(s.Variance)},
			{"StdDev", FormatFloat(s.StdDev)},
		},
		map[int]bool{1: true},
	)
	return appendFooter(table, invalid, elapsed)
}

// ConversionLines builds the report for the conversion utility.
func ConversionLines(inputName string, rows []numconv.Conversion, invalid int, elapsed time.Duration) []string {
	tableRows := make([][]string, 0, len(rows))
	for _, row := range rows {
		tableRows = append(tableRows, []string{
			strconv.Itoa(row.Index),
			strconv.FormatInt(row.Value, 10),
			row.Binary,
			row.Hex,
		})
	}
	table := FormatTable(
		[]string{"#", inputName, "Binary", "Hex"},
		tableRows,
		map[int]bool{0: true, 1: true},
	)
	return appendFooter(table, invalid, elapsed)
}

// WordCountLines builds the report for the word count utility.
func WordCountLines(inputName string, rows []wordcount.Row, total, skipped int, elapsed time.Duration) []string {
	tableRows := make([][]string, 0, len(rows)+1)
	for _, row := range rows {
		tableRows = append(tableRows, []string{row.Word, strconv.Itoa(row.Count)})
	}
	tableRows = append(tableRows, []string{"Grand Total", strconv.Itoa(total)})
	table := FormatTable(
		[]string{"Word", "Count of " + inputName},
		tableRows,
		map[int]bool{1: true},
	)
	return appendFooter(table, skipped, elapsed)
}

func appendFooter(lines []string, invalid int, elapsed time.Duration) []string {
	lines = append(lines, "")
	lines = append(lines, fmt.Sprintf("Invalid lines: %d", invalid))
	lines = append(lines, fmt.Sprintf("Elapsed: %s", elapsed.Round(time.Microsecond)))
	return lines
}

// FormatFloat renders a float with minimal digits; NaN prints as "NaN".
func FormatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

// Render writes the report lines to w.
func Render(w io.Writer, lines []string) error {
	for _, line := range lines {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
	}
	return nil
}

// WriteFile writes the report lines to path via a temp file and rename,
// so a failed run never leaves a partial results file behind.
func WriteFile(path string, lines []string) error {
	dir := filepath.Dir(path)
	tmpFile, err := os.CreateTemp(dir, "results-*.txt")
	if err != nil {
		return fmt.Errorf("failed to create temp results file: %w", err)
	}
	tmpPath := tmpFile.Name()
	defer func() {
		_ = tmpFile.Close()
		_ = os.Remove(tmpPath)
	}()

	writer := bufio.NewWriter(tmpFile)
	if err := Render(writer, lines); err != nil {
		return err
	}
	if err := writer.Flush(); err != nil {
		return fmt.Errorf("failed to flush results file: %w", err)
	}
	if err := tmpFile.Close(); err != nil {
		return fmt.Errorf("failed to close results file: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("failed to write results file: %w", err)
	}
	return nil
}
