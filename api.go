package gridastar

import "context"

// Result contains the outcome of a search.
// Path is nil and Length is 0 when the goal is unreachable.
type Result struct {
	Path          []Coordinate
	Length        int
	Cost          int
	NodesExplored int
	Found         bool
}

// Options defines parameters for the search.
type Options struct {
	Heuristic     Heuristic
	DecreaseKey   bool
	MaxExpansions int
}

// Option is a function that modifies Options.
type Option func(*Options)

// WithHeuristic replaces the default Manhattan heuristic.
func WithHeuristic(heuristic Heuristic) Option {
	return func(options *Options) { options.Heuristic = heuristic }
}

// WithDecreaseKey re-prioritizes a pending coordinate in place when a cheaper
// path to it is found. By default the coordinate is pushed again and the
// outdated entry is skipped when it surfaces. Paths are optimal either way.
func WithDecreaseKey() Option {
	return func(options *Options) { options.DecreaseKey = true }
}

// WithMaxExpansions stops the search with ErrExpansionLimit after n
// expansions. Zero or less means no limit.
func WithMaxExpansions(n int) Option {
	return func(options *Options) { options.MaxExpansions = n }
}

func applyOptions(options []Option) Options {
	searchOptions := Options{Heuristic: Manhattan}
	for _, option := range options {
		option(&searchOptions)
	}
	if searchOptions.Heuristic == nil {
		searchOptions.Heuristic = Manhattan
	}
	return searchOptions
}

// Search runs A* from startNode to goalNode on grid.
//
// An unreachable goal is not an error: the Result has Found false and a nil
// Path. Errors report invalid input (wrapping ErrInvalidInput), an exhausted
// expansion budget, or context cancellation; the last two come with the
// partial Result.
func Search(
	contextObject context.Context,
	grid *Grid,
	startNode Coordinate,
	goalNode Coordinate,
	options ...Option,
) (Result, error) {
	searchOptions := applyOptions(options)
	if err := grid.Validate(startNode, goalNode); err != nil {
		return Result{}, err
	}

	state := newSearchState(grid, startNode, goalNode, searchOptions)
	for !state.done {
		select {
		case <-contextObject.Done():
			return state.result(), contextObject.Err()
		default:
		}
		if err := state.step(); err != nil {
			return state.result(), err
		}
	}
	return state.result(), nil
}
