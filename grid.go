package gridastar

import (
	"fmt"
	"strings"
)

const (
	// FreeCell and BlockedCell are the markers understood by ParseGrid.
	FreeCell    = '.'
	BlockedCell = '#'
)

// Coordinate addresses a grid cell by row and column.
// It is comparable so it can be used as a map key.
type Coordinate struct {
	Row int
	Col int
}

// Less orders coordinates by row, then by column.
func (c Coordinate) Less(other Coordinate) bool {
	if c.Row != other.Row {
		return c.Row < other.Row
	}
	return c.Col < other.Col
}

func (c Coordinate) String() string {
	return fmt.Sprintf("(%d,%d)", c.Row, c.Col)
}

// Grid is an immutable rows x cols traversability mask.
// A Grid is safe for concurrent use once constructed.
type Grid struct {
	rows    int
	cols    int
	blocked []bool
}

// NewGrid builds a grid from a row-major blocked mask. The input is copied.
func NewGrid(blocked [][]bool) (*Grid, error) {
	if len(blocked) == 0 || len(blocked[0]) == 0 {
		return nil, ErrEmptyGrid
	}
	rows, cols := len(blocked), len(blocked[0])
	cells := make([]bool, 0, rows*cols)
	for r, row := range blocked {
		if len(row) != cols {
			return nil, fmt.Errorf("row %d has %d cells, want %d: %w", r, len(row), cols, ErrRaggedGrid)
		}
		cells = append(cells, row...)
	}
	return &Grid{rows: rows, cols: cols, blocked: cells}, nil
}

// ParseGrid builds a grid from text rows where '#' marks a blocked cell and
// '.' a free one.
func ParseGrid(lines []string) (*Grid, error) {
	mask := make([][]bool, 0, len(lines))
	for r, line := range lines {
		row := make([]bool, 0, len(line))
		for c, cell := range line {
			switch cell {
			case FreeCell:
				row = append(row, false)
			case BlockedCell:
				row = append(row, true)
			default:
				return nil, fmt.Errorf("cell (%d,%d) is %q: %w", r, c, cell, ErrBadCell)
			}
		}
		mask = append(mask, row)
	}
	return NewGrid(mask)
}

// Rows returns the number of rows.
func (g *Grid) Rows() int { return g.rows }

// Cols returns the number of columns.
func (g *Grid) Cols() int { return g.cols }

// InBounds reports whether c lies inside the grid.
func (g *Grid) InBounds(c Coordinate) bool {
	return c.Row >= 0 && c.Row < g.rows && c.Col >= 0 && c.Col < g.cols
}

// Free reports whether c is inside the grid and traversable.
func (g *Grid) Free(c Coordinate) bool {
	return g.InBounds(c) && !g.blocked[c.Row*g.cols+c.Col]
}

// FreeCount returns the number of traversable cells.
func (g *Grid) FreeCount() int {
	n := 0
	for _, b := range g.blocked {
		if !b {
			n++
		}
	}
	return n
}

// String renders the grid with the ParseGrid markers, one line per row.
func (g *Grid) String() string {
	var sb strings.Builder
	for r := 0; r < g.rows; r++ {
		if r > 0 {
			sb.WriteByte('\n')
		}
		for c := 0; c < g.cols; c++ {
			if g.blocked[r*g.cols+c] {
				sb.WriteByte(BlockedCell)
			} else {
				sb.WriteByte(FreeCell)
			}
		}
	}
	return sb.String()
}

// Validate checks the search preconditions: a non-empty grid with start and
// goal inside it on free cells.
func (g *Grid) Validate(start, goal Coordinate) error {
	if g == nil || g.rows == 0 || g.cols == 0 {
		return ErrEmptyGrid
	}
	if !g.InBounds(start) {
		return fmt.Errorf("start %v on %dx%d grid: %w", start, g.rows, g.cols, ErrStartOutOfBounds)
	}
	if !g.InBounds(goal) {
		return fmt.Errorf("goal %v on %dx%d grid: %w", goal, g.rows, g.cols, ErrGoalOutOfBounds)
	}
	if !g.Free(start) {
		return fmt.Errorf("start %v: %w", start, ErrStartBlocked)
	}
	if !g.Free(goal) {
		return fmt.Errorf("goal %v: %w", goal, ErrGoalBlocked)
	}
	return nil
}
