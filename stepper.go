package gridastar

// StepSnapshot exposes the per-iteration state of the search.
// Current is the most recently expanded coordinate and StepIndex counts
// expansions, so a call that only finds the search finished leaves both as
// they were.
type StepSnapshot struct {
	Current       Coordinate
	Open          map[Coordinate]bool
	Closed        map[Coordinate]bool
	CameFrom      map[Coordinate]Coordinate
	Done          bool
	Found         bool
	Path          []Coordinate
	StepIndex     int
	NodesExplored int
}

// Stepper runs the same search as Search one expansion per Step call.
// A Stepper is not safe for concurrent use.
type Stepper struct {
	state     *searchState
	stepCount int
}

// NewStepper validates the input and prepares a search without expanding
// anything.
func NewStepper(
	grid *Grid,
	startNode Coordinate,
	goalNode Coordinate,
	options ...Option,
) (*Stepper, error) {
	searchOptions := applyOptions(options)
	if err := grid.Validate(startNode, goalNode); err != nil {
		return nil, err
	}
	return &Stepper{state: newSearchState(grid, startNode, goalNode, searchOptions)}, nil
}

// Step advances the search by one node expansion and returns a snapshot.
// Once the search is done further calls return the final snapshot again.
func (s *Stepper) Step() (StepSnapshot, error) {
	if s.state.done {
		return s.snapshot(), nil
	}
	explored := s.state.nodesExplored
	err := s.state.step()
	if s.state.nodesExplored > explored {
		s.stepCount++
	}
	return s.snapshot(), err
}

// Done reports whether the search has terminated.
func (s *Stepper) Done() bool { return s.state.done }

// Result returns the outcome so far; it is final once Done reports true.
func (s *Stepper) Result() Result { return s.state.result() }

func (s *Stepper) snapshot() StepSnapshot {
	snap := StepSnapshot{
		Current:       s.state.current,
		Open:          s.openSetToBoolMap(),
		Closed:        copyBoolMap(s.state.closedSet),
		CameFrom:      copyCameFrom(s.state.cameFrom),
		Done:          s.state.done,
		Found:         s.state.found,
		StepIndex:     s.stepCount,
		NodesExplored: s.state.nodesExplored,
	}
	if s.state.found {
		snap.Path = append([]Coordinate(nil), s.state.path...)
	}
	return snap
}

func (s *Stepper) openSetToBoolMap() map[Coordinate]bool {
	m := make(map[Coordinate]bool, len(s.state.openSetMap))
	for k := range s.state.openSetMap {
		m[k] = true
	}
	return m
}

func copyBoolMap[T comparable](m map[T]bool) map[T]bool {
	if m == nil {
		return nil
	}
	c := make(map[T]bool, len(m))
	for k, v := range m {
		c[k] = v
	}
	return c
}

func copyCameFrom[T comparable](m map[T]T) map[T]T {
	if m == nil {
		return nil
	}
	c := make(map[T]T, len(m))
	for k, v := range m {
		c[k] = v
	}
	return c
}
