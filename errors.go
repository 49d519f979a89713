package gridastar

import "errors"

// ErrInvalidInput is wrapped by every error reporting a violated precondition
// on the grid, the start or the goal.
var ErrInvalidInput = errors.New("invalid input")

var (
	ErrEmptyGrid        = wrapInvalid("grid has no rows or no columns")
	ErrRaggedGrid       = wrapInvalid("grid rows have different lengths")
	ErrBadCell          = wrapInvalid("unknown cell marker")
	ErrStartOutOfBounds = wrapInvalid("start outside grid")
	ErrGoalOutOfBounds  = wrapInvalid("goal outside grid")
	ErrStartBlocked     = wrapInvalid("start on blocked cell")
	ErrGoalBlocked      = wrapInvalid("goal on blocked cell")
)

// ErrExpansionLimit is returned when a search exceeds the budget set with
// WithMaxExpansions.
var ErrExpansionLimit = errors.New("expansion limit reached")

type invalidInputError struct {
	msg string
}

func wrapInvalid(msg string) error { return &invalidInputError{msg: msg} }

func (e *invalidInputError) Error() string { return e.msg }

func (e *invalidInputError) Unwrap() error { return ErrInvalidInput }
