package history

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"textmetrics/internal/model"
)

func TestInsertAndListRuns(t *testing.T) {
	dir := t.TempDir()
	st, err := Open(filepath.Join(dir, "history.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() {
		_ = st.Close()
	})

	ctx := context.Background()
	start := time.Unix(0, 0).UTC()
	var ids []int64
	for i := 0; i < 3; i++ {
		run := model.RunRecord{
			Tool:         "computestats",
			InputPath:    "numbers.txt",
			OutputPath:   "StatisticsResults.txt",
			StartedAt:    start.Add(time.Duration(i) * time.Minute),
			FinishedAt:   start.Add(time.Duration(i)*time.Minute + time.Second),
			ValidCount:   10 + i,
			InvalidCount: i,
			DurationMs:   1000,
		}
		id, err := st.InsertRun(ctx, run)
		if err != nil {
			t.Fatalf("insert run %d: %v", i, err)
		}
		ids = append(ids, id)
	}
	if _, err := st.InsertRun(ctx, model.RunRecord{
		Tool:       "wordcount",
		InputPath:  "words.txt",
		OutputPath: "WordCountResults.txt",
		StartedAt:  start,
		FinishedAt: start,
	}); err != nil {
		t.Fatalf("insert other-tool run: %v", err)
	}

	runs, err := st.ListRuns(ctx, "computestats")
	if err != nil {
		t.Fatalf("list runs: %v", err)
	}
	if len(runs) != 3 {
		t.Fatalf("expected 3 runs for tool, got %d", len(runs))
	}
	for i, run := range runs {
		if run.ID != ids[i] {
			t.Fatalf("unexpected order: %+v", runs)
		}
		if run.ValidCount != 10+i || run.InvalidCount != i {
			t.Fatalf("unexpected counts: %+v", run)
		}
	}
	if !runs[0].StartedAt.Equal(start) {
		t.Fatalf("expected started_at %v, got %v", start, runs[0].StartedAt)
	}
}

func TestSparkline(t *testing.T) {
	if got := Sparkline(nil); got != "" {
		t.Fatalf("expected empty sparkline, got %q", got)
	}
	flat := Sparkline([]float64{2, 2, 2})
	if len(flat) != 3 {
		t.Fatalf("expected 3 chars, got %q", flat)
	}
	ramp := Sparkline([]float64{0, 5, 10})
	if len(ramp) != 3 {
		t.Fatalf("expected 3 chars, got %q", ramp)
	}
	if ramp[0] != ' ' || ramp[2] != '@' {
		t.Fatalf("expected full range sparkline, got %q", ramp)
	}
}
