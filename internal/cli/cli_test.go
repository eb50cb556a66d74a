package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"

	"textmetrics/internal/config"
	"textmetrics/internal/history"
)

func setupEnv(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, "config"))
	t.Setenv("XDG_DATA_HOME", filepath.Join(dir, "data"))
	return dir
}

func writeInput(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write input: %v", err)
	}
	return path
}

func execute(t *testing.T, cmd *cobra.Command, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestStatsEndToEnd(t *testing.T) {
	dir := setupEnv(t)
	input := writeInput(t, dir, "numbers.txt", "1\n2\njunk\n3\n4\n")
	output := filepath.Join(dir, "StatisticsResults.txt")

	stdout, err := execute(t, NewStatsCmd(), input, "--output", output)
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	if !strings.Contains(stdout, "Count") || !strings.Contains(stdout, "4") {
		t.Fatalf("stdout missing count: %q", stdout)
	}
	if !strings.Contains(stdout, "Mean") || !strings.Contains(stdout, "2.5") {
		t.Fatalf("stdout missing mean: %q", stdout)
	}
	if !strings.Contains(stdout, "Invalid lines: 1") {
		t.Fatalf("stdout missing invalid count: %q", stdout)
	}
	if !strings.Contains(stdout, "Elapsed:") {
		t.Fatalf("stdout missing elapsed: %q", stdout)
	}

	data, err := os.ReadFile(output)
	if err != nil {
		t.Fatalf("read results: %v", err)
	}
	if string(data) != stdout {
		t.Fatalf("results file differs from stdout:\n%q\n%q", data, stdout)
	}

	st, err := history.Open(config.DefaultHistoryPath())
	if err != nil {
		t.Fatalf("open history: %v", err)
	}
	t.Cleanup(func() {
		_ = st.Close()
	})
	runs, err := st.ListRuns(context.Background(), StatsTool)
	if err != nil {
		t.Fatalf("list runs: %v", err)
	}
	if len(runs) != 1 {
		t.Fatalf("expected 1 recorded run, got %d", len(runs))
	}
	if runs[0].ValidCount != 4 || runs[0].InvalidCount != 1 {
		t.Fatalf("unexpected run record: %+v", runs[0])
	}
}

func TestMissingInputFileIsFatal(t *testing.T) {
	dir := setupEnv(t)
	output := filepath.Join(dir, "StatisticsResults.txt")

	_, err := execute(t, NewStatsCmd(), filepath.Join(dir, "missing.txt"), "--output", output)
	if err == nil {
		t.Fatalf("expected error for missing input file")
	}
	if _, serr := os.Stat(output); !os.IsNotExist(serr) {
		t.Fatalf("no results file must be written on fatal error")
	}
}

func TestConvertEndToEnd(t *testing.T) {
	dir := setupEnv(t)
	input := writeInput(t, dir, "ints.txt", "5\n-1\nnope\n")
	output := filepath.Join(dir, "ConversionResults.txt")

	stdout, err := execute(t, NewConvertCmd(), input, "--output", output, "--bits", "8", "--no-history")
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	if !strings.Contains(stdout, "101") {
		t.Fatalf("stdout missing binary for 5: %q", stdout)
	}
	if !strings.Contains(stdout, "11111111") || !strings.Contains(stdout, "ff") {
		t.Fatalf("stdout missing two's complement for -1: %q", stdout)
	}
	if !strings.Contains(stdout, "Invalid lines: 1") {
		t.Fatalf("stdout missing invalid count: %q", stdout)
	}

	st, err := history.Open(config.DefaultHistoryPath())
	if err != nil {
		t.Fatalf("open history: %v", err)
	}
	t.Cleanup(func() {
		_ = st.Close()
	})
	runs, err := st.ListRuns(context.Background(), ConvertTool)
	if err != nil {
		t.Fatalf("list runs: %v", err)
	}
	if len(runs) != 0 {
		t.Fatalf("--no-history must skip recording, got %d runs", len(runs))
	}
}

func TestWordCountEndToEnd(t *testing.T) {
	dir := setupEnv(t)
	input := writeInput(t, dir, "words.txt", "a a b\n")
	output := filepath.Join(dir, "WordCountResults.txt")

	stdout, err := execute(t, NewWordCountCmd(), input, "--output", output, "--no-history")
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	lines := strings.Split(strings.TrimRight(stdout, "\n"), "\n")
	if len(lines) < 4 {
		t.Fatalf("unexpected output: %q", stdout)
	}
	if !strings.HasPrefix(lines[1], "a") || !strings.HasSuffix(lines[1], "2") {
		t.Fatalf("expected 'a 2' first, got %q", lines[1])
	}
	if !strings.HasPrefix(lines[2], "b") || !strings.HasSuffix(lines[2], "1") {
		t.Fatalf("expected 'b 1' second, got %q", lines[2])
	}
	if !strings.Contains(stdout, "Grand Total") {
		t.Fatalf("missing grand total: %q", stdout)
	}
}

func TestConfigFileOverridesDefaults(t *testing.T) {
	dir := setupEnv(t)
	configDir := filepath.Join(dir, "config", "textmetrics")
	if err := os.MkdirAll(configDir, 0o755); err != nil {
		t.Fatalf("mkdir config: %v", err)
	}
	cfg := "[wordcount]\nlowercase = true\n\n[history]\ndisabled = true\n"
	if err := os.WriteFile(filepath.Join(configDir, "config.toml"), []byte(cfg), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	input := writeInput(t, dir, "words.txt", "Go go\n")
	output := filepath.Join(dir, "WordCountResults.txt")
	stdout, err := execute(t, NewWordCountCmd(), input, "--output", output)
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	if !strings.Contains(stdout, "go") || strings.Contains(stdout, "Go ") {
		t.Fatalf("expected folded words, got %q", stdout)
	}
	if _, err := os.Stat(config.DefaultHistoryPath()); !os.IsNotExist(err) {
		t.Fatalf("history must stay disabled via config")
	}
}

func TestHistoryCommandListsRuns(t *testing.T) {
	dir := setupEnv(t)
	input := writeInput(t, dir, "numbers.txt", "1\n2\n")
	output := filepath.Join(dir, "StatisticsResults.txt")

	if _, err := execute(t, NewStatsCmd(), input, "--output", output); err != nil {
		t.Fatalf("execute run: %v", err)
	}

	stdout, err := execute(t, NewStatsCmd(), "history")
	if err != nil {
		t.Fatalf("execute history: %v", err)
	}
	if !strings.Contains(stdout, "numbers.txt") {
		t.Fatalf("history output missing run: %q", stdout)
	}
}
