package experiment

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"reflect"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/pdrpinto/gridastar"
	"github.com/pdrpinto/gridastar/scenario"
)

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func demoTrial(t *testing.T) Trial {
	t.Helper()
	sc := scenario.Default()
	trial, err := NewTrial(&sc)
	if err != nil {
		t.Fatalf("NewTrial() error = %v", err)
	}
	return trial
}

func TestRun(t *testing.T) {
	trial := demoTrial(t)
	res, err := Run(context.Background(), trial.Grid, trial.Start, trial.Goal)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if !res.Found || res.PathLength != 13 || len(res.Path) != 13 {
		t.Fatalf("got %+v", res)
	}
	if res.NodesExplored < 1 || res.NodesExplored > trial.Grid.FreeCount() {
		t.Fatalf("NodesExplored = %d", res.NodesExplored)
	}
	if res.Elapsed < 0 || res.Millis() < 0 {
		t.Fatalf("negative elapsed time %v", res.Elapsed)
	}
}

func TestRunUnreachable(t *testing.T) {
	grid, err := gridastar.ParseGrid([]string{
		".#.",
		"#..",
	})
	if err != nil {
		t.Fatal(err)
	}
	res, err := Run(context.Background(), grid, gridastar.Coordinate{Row: 0, Col: 0}, gridastar.Coordinate{Row: 1, Col: 2})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if res.Found || res.Path != nil || res.PathLength != 0 || res.NodesExplored != 1 {
		t.Fatalf("got %+v", res)
	}
}

func TestRunnerLogsAndMetrics(t *testing.T) {
	var logs bytes.Buffer
	reg := prometheus.NewRegistry()
	metrics := NewMetrics(reg)
	runner := NewRunner(
		WithLogger(slog.New(slog.NewTextHandler(&logs, nil))),
		WithMetrics(metrics),
	)

	trial := demoTrial(t)
	if _, err := runner.Run(context.Background(), trial); err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	bad := trial
	bad.Name = "blocked-goal"
	bad.Goal = gridastar.Coordinate{Row: 1, Col: 0}
	_, err := runner.Run(context.Background(), bad)
	if !errors.Is(err, gridastar.ErrGoalBlocked) {
		t.Fatalf("error = %v, want ErrGoalBlocked", err)
	}

	if got := testutil.ToFloat64(metrics.searchTotal.WithLabelValues(outcomeFound)); got != 1 {
		t.Errorf("found searches = %v, want 1", got)
	}
	if got := testutil.ToFloat64(metrics.searchTotal.WithLabelValues(outcomeInvalid)); got != 1 {
		t.Errorf("invalid searches = %v, want 1", got)
	}
	if n, err := testutil.GatherAndCount(reg, "gridastar_search_path_length"); err != nil || n != 1 {
		t.Errorf("path length series = %d, %v", n, err)
	}

	out := logs.String()
	for _, want := range []string{"search_complete", "trial=demo-5x5", "path_length=13", "search_failed", "trial=blocked-goal"} {
		if !strings.Contains(out, want) {
			t.Errorf("log output missing %q:\n%s", want, out)
		}
	}
}

func TestRunnerSearchOptionsApply(t *testing.T) {
	runner := NewRunner(
		WithLogger(quietLogger()),
		WithSearchOptions(gridastar.WithMaxExpansions(2)),
	)
	_, err := runner.Run(context.Background(), demoTrial(t))
	if !errors.Is(err, gridastar.ErrExpansionLimit) {
		t.Fatalf("error = %v, want ErrExpansionLimit", err)
	}
}

func TestRunBatch(t *testing.T) {
	base := demoTrial(t)
	var trials []Trial
	for _, goal := range []gridastar.Coordinate{{Row: 4, Col: 4}, {Row: 0, Col: 4}, {Row: 2, Col: 0}, {Row: 3, Col: 3}, {Row: 0, Col: 0}} {
		trial := base
		trial.Name = goal.String()
		trial.Goal = goal
		trials = append(trials, trial)
	}
	blocked := base
	blocked.Name = "blocked"
	blocked.Start = gridastar.Coordinate{Row: 1, Col: 1}
	trials = append(trials, blocked)

	runner := NewRunner(WithLogger(quietLogger()), WithWorkers(3))
	results := runner.RunBatch(context.Background(), trials)
	if len(results) != len(trials) {
		t.Fatalf("got %d results, want %d", len(results), len(trials))
	}

	for i, trial := range trials {
		got := results[i]
		if got.Name != trial.Name {
			t.Fatalf("results[%d].Name = %q, want %q", i, got.Name, trial.Name)
		}
		want, wantErr := Run(context.Background(), trial.Grid, trial.Start, trial.Goal)
		if (got.Err == nil) != (wantErr == nil) {
			t.Fatalf("%s: error = %v, want %v", trial.Name, got.Err, wantErr)
		}
		if !reflect.DeepEqual(got.Result.Path, want.Path) || got.Result.NodesExplored != want.NodesExplored {
			t.Fatalf("%s: batch result %+v differs from sequential %+v", trial.Name, got.Result, want)
		}
	}
	if !errors.Is(results[len(results)-1].Err, gridastar.ErrStartBlocked) {
		t.Fatalf("blocked trial error = %v", results[len(results)-1].Err)
	}
}

func TestRunBatchCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	trials := []Trial{demoTrial(t), demoTrial(t)}
	results := NewRunner(WithLogger(quietLogger()), WithWorkers(2)).RunBatch(ctx, trials)
	for i, r := range results {
		if !errors.Is(r.Err, context.Canceled) {
			t.Fatalf("results[%d].Err = %v, want context.Canceled", i, r.Err)
		}
	}
}

func TestRunBatchEmpty(t *testing.T) {
	if got := NewRunner(WithLogger(quietLogger())).RunBatch(context.Background(), nil); len(got) != 0 {
		t.Fatalf("got %d results", len(got))
	}
}

func TestRunnerJournal(t *testing.T) {
	journal := NewJournal(nil)
	runner := NewRunner(WithLogger(quietLogger()), WithJournal(journal))
	trial := demoTrial(t)
	for i := 0; i < 2; i++ {
		if _, err := runner.Run(context.Background(), trial); err != nil {
			t.Fatal(err)
		}
	}
	records, err := journal.Records(trial.Name)
	if err != nil {
		t.Fatal(err)
	}
	if len(records) != 2 || records[0].PathLength != 13 {
		t.Fatalf("records = %+v", records)
	}
}
