package history

import (
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"
	"time"

	"golang.org/x/term"

	"textmetrics/internal/model"
	"textmetrics/internal/report"
)

const (
	sparkChars          = " .:-=+*#%@"
	terminalWidthBackup = 80
)

// Render prints the most recent runs as a table plus a duration
// sparkline. A last value <= 0 shows all runs.
func Render(w io.Writer, runs []model.RunRecord, last int) error {
	if len(runs) == 0 {
		_, err := fmt.Fprintln(w, "No runs recorded.")
		return err
	}
	if last > 0 && len(runs) > last {
		runs = runs[len(runs)-last:]
	}

	headers := []string{"ID", "Finished", "Input", "Valid", "Invalid", "Duration"}
	rows := make([][]string, 0, len(runs))
	durations := make([]float64, 0, len(runs))
	for _, run := range runs {
		rows = append(rows, []string{
			strconv.FormatInt(run.ID, 10),
			run.FinishedAt.Local().Format("2006-01-02 15:04:05"),
			run.InputPath,
			strconv.Itoa(run.ValidCount),
			strconv.Itoa(run.InvalidCount),
			(time.Duration(run.DurationMs) * time.Millisecond).String(),
		})
		durations = append(durations, float64(run.DurationMs))
	}
	rightAlign := map[int]bool{0: true, 3: true, 4: true, 5: true}
	for _, line := range report.FormatTable(headers, rows, rightAlign) {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}

	if len(durations) > 1 {
		if _, err := fmt.Fprintf(w, "\nDuration trend: %s\n", Sparkline(capWidth(durations, terminalWidth()-20))); err != nil {
			return err
		}
	}
	return nil
}

// Sparkline renders a single-line ASCII sparkline for the values.
func Sparkline(values []float64) string {
	if len(values) == 0 {
		return ""
	}
	minVal := values[0]
	maxVal := values[0]
	for _, v := range values[1:] {
		if v < minVal {
			minVal = v
		}
		if v > maxVal {
			maxVal = v
		}
	}
	if math.Abs(maxVal-minVal) < 1e-9 {
		return strings.Repeat(string(sparkChars[len(sparkChars)/2]), len(values))
	}
	var b strings.Builder
	for _, v := range values {
		pos := (v - minVal) / (maxVal - minVal)
		idx := int(math.Round(pos * float64(len(sparkChars)-1)))
		if idx < 0 {
			idx = 0
		}
		if idx >= len(sparkChars) {
			idx = len(sparkChars) - 1
		}
		b.WriteByte(sparkChars[idx])
	}
	return b.String()
}

func capWidth(values []float64, width int) []float64 {
	if width < 1 {
		width = 1
	}
	if len(values) <= width {
		return values
	}
	return values[len(values)-width:]
}

func terminalWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		return terminalWidthBackup
	}
	return width
}
