// Package experiment times grid searches and packages their results.
//
// Run is the bare wrapper around a single search. A Runner adds structured
// logging, Prometheus metrics, a persistent result journal and a worker pool
// for running many independent trials at once.
package experiment

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/pdrpinto/gridastar"
	"github.com/pdrpinto/gridastar/scenario"
)

// Result is the outcome of one timed search.
type Result struct {
	Elapsed       time.Duration
	PathLength    int
	NodesExplored int
	Path          []gridastar.Coordinate
	Found         bool
}

// Millis returns the elapsed time in fractional milliseconds.
func (r Result) Millis() float64 {
	return float64(r.Elapsed) / float64(time.Millisecond)
}

// Run times a single search. Only the search call itself is measured.
func Run(
	ctx context.Context,
	grid *gridastar.Grid,
	start gridastar.Coordinate,
	goal gridastar.Coordinate,
	options ...gridastar.Option,
) (Result, error) {
	began := time.Now()
	res, err := gridastar.Search(ctx, grid, start, goal, options...)
	elapsed := time.Since(began)
	return Result{
		Elapsed:       elapsed,
		PathLength:    res.Length,
		NodesExplored: res.NodesExplored,
		Path:          res.Path,
		Found:         res.Found,
	}, err
}

// Trial is one named search problem.
type Trial struct {
	Name    string
	Grid    *gridastar.Grid
	Start   gridastar.Coordinate
	Goal    gridastar.Coordinate
	Options []gridastar.Option
}

// NewTrial builds a trial from a scenario definition.
func NewTrial(sc *scenario.Scenario) (Trial, error) {
	grid, err := sc.ParseGrid()
	if err != nil {
		return Trial{}, err
	}
	return Trial{
		Name:    sc.Name,
		Grid:    grid,
		Start:   sc.StartCoordinate(),
		Goal:    sc.GoalCoordinate(),
		Options: sc.SearchOptions(),
	}, nil
}

// RunnerOptions defines parameters for a Runner.
type RunnerOptions struct {
	Logger          *slog.Logger
	Metrics         *Metrics
	Journal         *Journal
	NumberOfWorkers int
	SearchOptions   []gridastar.Option
}

// RunnerOption is a function that modifies RunnerOptions.
type RunnerOption func(*RunnerOptions)

func WithLogger(logger *slog.Logger) RunnerOption {
	return func(options *RunnerOptions) { options.Logger = logger }
}

func WithMetrics(metrics *Metrics) RunnerOption {
	return func(options *RunnerOptions) { options.Metrics = metrics }
}

func WithJournal(journal *Journal) RunnerOption {
	return func(options *RunnerOptions) { options.Journal = journal }
}

// WithWorkers specifies how many goroutines RunBatch uses.
func WithWorkers(numberOfWorkers int) RunnerOption {
	return func(options *RunnerOptions) { options.NumberOfWorkers = numberOfWorkers }
}

// WithSearchOptions adds search options applied before each trial's own.
func WithSearchOptions(searchOptions ...gridastar.Option) RunnerOption {
	return func(options *RunnerOptions) {
		options.SearchOptions = append(options.SearchOptions, searchOptions...)
	}
}

// Runner executes trials and reports each outcome to its logger, metrics and
// journal. It is safe for concurrent use.
type Runner struct {
	logger        *slog.Logger
	metrics       *Metrics
	journal       *Journal
	workers       int
	searchOptions []gridastar.Option
}

func NewRunner(options ...RunnerOption) *Runner {
	runnerOptions := RunnerOptions{NumberOfWorkers: defaultWorkers()}
	for _, option := range options {
		option(&runnerOptions)
	}
	if runnerOptions.Logger == nil {
		runnerOptions.Logger = slog.Default().With(slog.String("component", "experiment"))
	}
	if runnerOptions.NumberOfWorkers < 1 {
		runnerOptions.NumberOfWorkers = 1
	}
	return &Runner{
		logger:        runnerOptions.Logger,
		metrics:       runnerOptions.Metrics,
		journal:       runnerOptions.Journal,
		workers:       runnerOptions.NumberOfWorkers,
		searchOptions: runnerOptions.SearchOptions,
	}
}

// Run executes one trial. Journal failures are logged, not returned: the
// search result is still valid.
func (r *Runner) Run(ctx context.Context, trial Trial) (Result, error) {
	options := make([]gridastar.Option, 0, len(r.searchOptions)+len(trial.Options))
	options = append(options, r.searchOptions...)
	options = append(options, trial.Options...)

	res, err := Run(ctx, trial.Grid, trial.Start, trial.Goal, options...)
	r.metrics.observe(res, err)
	if err != nil {
		level := slog.LevelError
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			level = slog.LevelWarn
		}
		r.logger.Log(ctx, level, "search_failed",
			slog.String("trial", trial.Name),
			slog.String("start", trial.Start.String()),
			slog.String("goal", trial.Goal.String()),
			slog.Int("nodes_explored", res.NodesExplored),
			slog.String("error", err.Error()),
		)
		return res, fmt.Errorf("trial %q: %w", trial.Name, err)
	}

	r.logger.Info("search_complete",
		slog.String("trial", trial.Name),
		slog.Bool("found", res.Found),
		slog.Int("path_length", res.PathLength),
		slog.Int("nodes_explored", res.NodesExplored),
		slog.Duration("elapsed", res.Elapsed),
	)
	if r.journal != nil {
		if jerr := r.journal.Append(trial.Name, res); jerr != nil {
			r.logger.Warn("journal_append_failed",
				slog.String("trial", trial.Name),
				slog.String("error", jerr.Error()),
			)
		}
	}
	return res, nil
}
