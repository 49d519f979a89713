// Package scenario loads search scenarios (a grid, a start and a goal) from
// YAML files.
//
// A file holds a suite of scenarios:
//
//	scenarios:
//	  - name: corridor
//	    grid:
//	      - "...#."
//	      - "##.#."
//	    start: [0, 0]
//	    goal: [1, 4]
//	    strategy: decrease-key
//
// Grid rows use '.' for free cells and '#' for blocked ones.
package scenario

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/pdrpinto/gridastar"
)

const (
	StrategyDuplicates  = "duplicates"
	StrategyDecreaseKey = "decrease-key"
)

var (
	ErrNoScenarios     = errors.New("suite has no scenarios")
	ErrDuplicateName   = errors.New("duplicate scenario name")
	ErrUnknownStrategy = errors.New("unknown strategy")
	ErrNegativeLimit   = errors.New("max_expansions must not be negative")
	ErrMissingStart    = errors.New("start is required")
	ErrMissingGoal     = errors.New("goal is required")
)

// Scenario is one search problem.
type Scenario struct {
	Name          string   `yaml:"name"`
	Grid          []string `yaml:"grid"`
	Start         *[2]int  `yaml:"start"`
	Goal          *[2]int  `yaml:"goal"`
	Strategy      string   `yaml:"strategy,omitempty"`
	MaxExpansions int      `yaml:"max_expansions,omitempty"`
}

// Suite is the top level of a scenario file.
type Suite struct {
	Scenarios []Scenario `yaml:"scenarios"`
}

// Default is the 5x5 demo scenario: a wall of blocked cells forces the path
// from the top-left corner around to the bottom-right one.
func Default() Scenario {
	return Scenario{
		Name: "demo-5x5",
		Grid: []string{
			"...#.",
			"##.#.",
			"...#.",
			".##..",
			".....",
		},
		Start:    &[2]int{0, 0},
		Goal:     &[2]int{4, 4},
		Strategy: StrategyDuplicates,
	}
}

// Load reads and validates a suite from a YAML file.
func Load(path string) (*Suite, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file %s: %w", path, err)
	}
	suite, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("scenario file %s: %w", path, err)
	}
	return suite, nil
}

// Parse decodes and validates a suite from YAML.
func Parse(data []byte) (*Suite, error) {
	var suite Suite
	if err := yaml.Unmarshal(data, &suite); err != nil {
		return nil, fmt.Errorf("failed to parse scenario YAML: %w", err)
	}
	applyDefaults(&suite)
	if err := validateSuite(&suite); err != nil {
		return nil, err
	}
	return &suite, nil
}

// Marshal encodes a suite back to YAML.
func Marshal(suite *Suite) ([]byte, error) {
	data, err := yaml.Marshal(suite)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal scenarios: %w", err)
	}
	return data, nil
}

func applyDefaults(suite *Suite) {
	for i := range suite.Scenarios {
		sc := &suite.Scenarios[i]
		if sc.Name == "" {
			sc.Name = fmt.Sprintf("scenario-%d", i+1)
		}
		if sc.Strategy == "" {
			sc.Strategy = StrategyDuplicates
		}
	}
}

func validateSuite(suite *Suite) error {
	if len(suite.Scenarios) == 0 {
		return ErrNoScenarios
	}
	seen := make(map[string]bool, len(suite.Scenarios))
	for i := range suite.Scenarios {
		sc := &suite.Scenarios[i]
		if seen[sc.Name] {
			return fmt.Errorf("%q: %w", sc.Name, ErrDuplicateName)
		}
		seen[sc.Name] = true
		if err := sc.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// Validate checks that the scenario describes a searchable problem: a well
// formed grid with a free start and goal inside it.
func (s *Scenario) Validate() error {
	switch s.Strategy {
	case "", StrategyDuplicates, StrategyDecreaseKey:
	default:
		return fmt.Errorf("scenario %q: %w %q", s.Name, ErrUnknownStrategy, s.Strategy)
	}
	if s.MaxExpansions < 0 {
		return fmt.Errorf("scenario %q: %w", s.Name, ErrNegativeLimit)
	}
	if s.Start == nil {
		return fmt.Errorf("scenario %q: %w", s.Name, ErrMissingStart)
	}
	if s.Goal == nil {
		return fmt.Errorf("scenario %q: %w", s.Name, ErrMissingGoal)
	}
	grid, err := s.ParseGrid()
	if err != nil {
		return err
	}
	if err := grid.Validate(s.StartCoordinate(), s.GoalCoordinate()); err != nil {
		return fmt.Errorf("scenario %q: %w", s.Name, err)
	}
	return nil
}

// ParseGrid builds the scenario grid.
func (s *Scenario) ParseGrid() (*gridastar.Grid, error) {
	grid, err := gridastar.ParseGrid(s.Grid)
	if err != nil {
		return nil, fmt.Errorf("scenario %q: %w", s.Name, err)
	}
	return grid, nil
}

// StartCoordinate and GoalCoordinate expect a validated scenario; an unset
// field yields (0,0).
func (s *Scenario) StartCoordinate() gridastar.Coordinate { return toCoordinate(s.Start) }

func (s *Scenario) GoalCoordinate() gridastar.Coordinate { return toCoordinate(s.Goal) }

func toCoordinate(rc *[2]int) gridastar.Coordinate {
	if rc == nil {
		return gridastar.Coordinate{}
	}
	return gridastar.Coordinate{Row: rc[0], Col: rc[1]}
}

// SearchOptions translates the scenario settings into search options.
func (s *Scenario) SearchOptions() []gridastar.Option {
	var options []gridastar.Option
	if s.Strategy == StrategyDecreaseKey {
		options = append(options, gridastar.WithDecreaseKey())
	}
	if s.MaxExpansions > 0 {
		options = append(options, gridastar.WithMaxExpansions(s.MaxExpansions))
	}
	return options
}
