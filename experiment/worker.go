package experiment

import (
	"context"
	"runtime"
)

func defaultWorkers() int { return runtime.NumCPU() }

// trialTask represents a request from RunBatch to the workers.
type trialTask struct {
	Index int
	Trial Trial
}

// trialOutcome is the worker's report for one task
type trialOutcome struct {
	Index  int
	Result Result
	Err    error
}

// TrialResult pairs a trial name with its outcome.
type TrialResult struct {
	Name   string
	Result Result
	Err    error
}

// RunBatch runs independent trials on the runner's worker pool and returns
// their outcomes in input order. Trials may share a grid; every search owns
// its own state.
func (r *Runner) RunBatch(ctx context.Context, trials []Trial) []TrialResult {
	results := make([]TrialResult, len(trials))
	if len(trials) == 0 {
		return results
	}

	taskChannel := make(chan trialTask)
	outcomeChannel := make(chan trialOutcome)

	numberOfWorkers := min(r.workers, len(trials))
	for i := 0; i < numberOfWorkers; i++ {
		go func() {
			for task := range taskChannel {
				res, err := r.Run(ctx, task.Trial)
				outcomeChannel <- trialOutcome{Index: task.Index, Result: res, Err: err}
			}
		}()
	}

	go func() {
		defer close(taskChannel)
		for i, trial := range trials {
			taskChannel <- trialTask{Index: i, Trial: trial}
		}
	}()

	// Canceled trials still report: Search returns at once on a done context.
	for range trials {
		outcome := <-outcomeChannel
		results[outcome.Index] = TrialResult{
			Name:   trials[outcome.Index].Name,
			Result: outcome.Result,
			Err:    outcome.Err,
		}
	}
	return results
}
