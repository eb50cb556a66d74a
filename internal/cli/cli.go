// Package cli builds the cobra command trees for the three utilities.
package cli

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"textmetrics/internal/config"
	"textmetrics/internal/history"
	"textmetrics/internal/historyui"
	"textmetrics/internal/model"
	"textmetrics/internal/numconv"
	"textmetrics/internal/numstats"
	"textmetrics/internal/reader"
	"textmetrics/internal/report"
	"textmetrics/internal/wordcount"
)

// Tool names, used for history records and command wiring.
const (
	StatsTool     = "computestats"
	ConvertTool   = "convertnumbers"
	WordCountTool = "wordcount"
)

const defaultBits = 32

type runOptions struct {
	configPath string
	output     string
	noHistory  bool

	bits      int
	lowercase bool
	keepPunct bool

	// resolved from flags and config during setup
	outputPath string
}

// NewStatsCmd builds the computestats command.
func NewStatsCmd() *cobra.Command {
	opts := &runOptions{}
	cmd := &cobra.Command{
		Use:           StatsTool + " <input_file>",
		Short:         "Compute descriptive statistics over a file of numbers",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStats(cmd, opts, args[0])
		},
	}
	addCommonFlags(cmd, opts)
	cmd.AddCommand(newHistoryCmd(StatsTool))
	cmd.AddCommand(newConfigCmd())
	return cmd
}

// NewConvertCmd builds the convertnumbers command.
func NewConvertCmd() *cobra.Command {
	opts := &runOptions{}
	cmd := &cobra.Command{
		Use:           ConvertTool + " <input_file>",
		Short:         "Convert a file of integers to binary and hexadecimal",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConvert(cmd, opts, args[0])
		},
	}
	addCommonFlags(cmd, opts)
	cmd.Flags().IntVar(&opts.bits, "bits", defaultBits, "two's-complement width for negatives (8, 16, 32 or 64)")
	cmd.AddCommand(newHistoryCmd(ConvertTool))
	cmd.AddCommand(newConfigCmd())
	return cmd
}

// NewWordCountCmd builds the wordcount command.
func NewWordCountCmd() *cobra.Command {
	opts := &runOptions{}
	cmd := &cobra.Command{
		Use:           WordCountTool + " <input_file>",
		Short:         "Count word frequencies in a text file",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWordCount(cmd, opts, args[0])
		},
	}
	addCommonFlags(cmd, opts)
	cmd.Flags().BoolVar(&opts.lowercase, "lowercase", false, "fold words to lower case before counting")
	cmd.Flags().BoolVar(&opts.keepPunct, "keep-punct", false, "keep leading/trailing punctuation on words")
	cmd.AddCommand(newHistoryCmd(WordCountTool))
	cmd.AddCommand(newConfigCmd())
	return cmd
}

func addCommonFlags(cmd *cobra.Command, opts *runOptions) {
	cmd.Flags().StringVar(&opts.configPath, "config", config.DefaultConfigPath(), "path to the TOML config file")
	cmd.Flags().StringVar(&opts.output, "output", "", "results file path (overrides the fixed name)")
	cmd.Flags().BoolVar(&opts.noHistory, "no-history", false, "do not record this run in the history database")
}

// setupRun loads the config file and resolves flag-over-config
// precedence, including the final results file path.
func setupRun(cmd *cobra.Command, opts *runOptions, resultsFile string) error {
	fileCfg, err := config.LoadConfig(opts.configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	applyBoolConfig(cmd, "no-history", &opts.noHistory, fileCfg.History.Disabled)
	applyIntConfig(cmd, "bits", &opts.bits, fileCfg.Convert.Bits)
	applyBoolConfig(cmd, "lowercase", &opts.lowercase, fileCfg.WordCount.Lowercase)
	applyBoolConfig(cmd, "keep-punct", &opts.keepPunct, fileCfg.WordCount.KeepPunct)

	opts.outputPath = resultsFile
	if fileCfg.Output.Dir != nil && *fileCfg.Output.Dir != "" {
		opts.outputPath = filepath.Join(*fileCfg.Output.Dir, resultsFile)
	}
	if opts.output != "" {
		opts.outputPath = opts.output
	}
	return nil
}

func runStats(cmd *cobra.Command, opts *runOptions, inputPath string) error {
	start := time.Now()
	if err := setupRun(cmd, opts, report.StatisticsFile); err != nil {
		return err
	}

	acc := numstats.New()
	if err := reader.EachLine(inputPath, acc.Add); err != nil {
		return err
	}
	lines := report.StatisticsLines(inputStem(inputPath), acc.Summarize(), len(acc.Invalid()), time.Since(start))
	return finishRun(cmd, opts, StatsTool, inputPath, lines, start, acc.Count(), acc.Invalid())
}

func runConvert(cmd *cobra.Command, opts *runOptions, inputPath string) error {
	start := time.Now()
	if err := setupRun(cmd, opts, report.ConversionFile); err != nil {
		return err
	}

	conv, err := numconv.New(model.ConvertOptions{Bits: opts.bits})
	if err != nil {
		return err
	}
	if err := reader.EachLine(inputPath, conv.Add); err != nil {
		return err
	}
	lines := report.ConversionLines(inputStem(inputPath), conv.Rows(), len(conv.Invalid()), time.Since(start))
	return finishRun(cmd, opts, ConvertTool, inputPath, lines, start, conv.Count(), conv.Invalid())
}

func runWordCount(cmd *cobra.Command, opts *runOptions, inputPath string) error {
	start := time.Now()
	if err := setupRun(cmd, opts, report.WordCountFile); err != nil {
		return err
	}

	counter := wordcount.New(model.WordCountOptions{
		Lowercase: opts.lowercase,
		KeepPunct: opts.keepPunct,
	})
	if err := reader.EachLine(inputPath, counter.Add); err != nil {
		return err
	}
	lines := report.WordCountLines(inputStem(inputPath), counter.Rows(), counter.Total(), len(counter.Skipped()), time.Since(start))
	return finishRun(cmd, opts, WordCountTool, inputPath, lines, start, counter.Total(), counter.Skipped())
}

// finishRun prints the report, writes the results file, echoes
// recoverable line errors to stderr and records the run.
func finishRun(cmd *cobra.Command, opts *runOptions, tool, inputPath string, lines []string, start time.Time, valid int, invalid []model.LineError) error {
	if err := report.Render(cmd.OutOrStdout(), lines); err != nil {
		return err
	}
	if err := report.WriteFile(opts.outputPath, lines); err != nil {
		return err
	}
	for _, lineErr := range invalid {
		logErrf("line %d: skipped invalid value %q\n", lineErr.Line, lineErr.Text)
	}

	if !opts.noHistory {
		recordRun(model.RunRecord{
			Tool:         tool,
			InputPath:    inputPath,
			OutputPath:   opts.outputPath,
			StartedAt:    start,
			FinishedAt:   time.Now(),
			ValidCount:   valid,
			InvalidCount: len(invalid),
			DurationMs:   time.Since(start).Milliseconds(),
		})
	}
	return nil
}

// recordRun persists the run summary. History failures are warnings;
// the report has already been produced.
func recordRun(run model.RunRecord) {
	st, err := history.Open(config.DefaultHistoryPath())
	if err != nil {
		logErrf("failed to open history db: %v\n", err)
		return
	}
	defer func() {
		if cerr := st.Close(); cerr != nil {
			logErrf("failed to close history db: %v\n", cerr)
		}
	}()
	if _, err := st.InsertRun(context.Background(), run); err != nil {
		logErrf("failed to record run: %v\n", err)
	}
}

func newHistoryCmd(tool string) *cobra.Command {
	var last int
	var interactive bool
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show previous runs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runHistory(cmd, tool, last, interactive)
		},
	}
	cmd.Flags().IntVar(&last, "last", 0, "limit to last N runs (0 shows all)")
	cmd.Flags().BoolVarP(&interactive, "interactive", "i", false, "browse runs interactively")
	return cmd
}

func runHistory(cmd *cobra.Command, tool string, last int, interactive bool) error {
	st, err := history.Open(config.DefaultHistoryPath())
	if err != nil {
		return fmt.Errorf("failed to open history db: %w", err)
	}
	defer func() {
		if cerr := st.Close(); cerr != nil {
			logErrf("failed to close history db: %v\n", cerr)
		}
	}()

	runs, err := st.ListRuns(context.Background(), tool)
	if err != nil {
		return fmt.Errorf("failed to list runs: %w", err)
	}

	if interactive {
		if last > 0 && len(runs) > last {
			runs = runs[len(runs)-last:]
		}
		program := tea.NewProgram(historyui.NewModel(tool, runs), tea.WithAltScreen())
		if _, err := program.Run(); err != nil {
			return fmt.Errorf("failed to run history browser: %w", err)
		}
		return nil
	}
	return history.Render(cmd.OutOrStdout(), runs, last)
}

func newConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Create/open config file",
		Args:  cobra.NoArgs,
		RunE:  runConfigCmd,
	}
}

func runConfigCmd(_ *cobra.Command, _ []string) error {
	path := config.DefaultConfigPath()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if _, err := os.Stat(path); err != nil {
		if !os.IsNotExist(err) {
			return fmt.Errorf("failed to stat config: %w", err)
		}
		if err := os.WriteFile(path, []byte(defaultConfigTemplate()), 0o644); err != nil {
			return fmt.Errorf("failed to write config: %w", err)
		}
	}

	editor := strings.TrimSpace(os.Getenv("EDITOR"))
	if editor == "" {
		editor = "vi"
	}
	parts := strings.Fields(editor)
	if len(parts) == 0 {
		return fmt.Errorf("editor command is empty")
	}
	cmd := exec.Command(parts[0], append(parts[1:], path)...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("failed to open editor: %w", err)
	}
	return nil
}

func defaultConfigTemplate() string {
	return fmt.Sprintf(`# textmetrics configuration
# Uncomment a value to enable it. CLI flags override config values.

[output]
# dir = "."            # Directory for results files

[history]
# disabled = false     # Skip run recording

[convert]
# bits = %d            # Two's-complement width for negatives

[wordcount]
# lowercase = false    # Fold words to lower case
# keep-punct = false   # Keep leading/trailing punctuation
`, defaultBits)
}

func inputStem(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

func applyIntConfig(cmd *cobra.Command, name string, target, value *int) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyBoolConfig(cmd *cobra.Command, name string, target, value *bool) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func logErrf(format string, args ...any) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}
