package gridastar

// Heuristic returns the estimated cost from a to b.
// It must never overestimate the true remaining cost for paths to stay optimal.
type Heuristic func(from Coordinate, to Coordinate) int

// Manhattan is |a.Row-b.Row| + |a.Col-b.Col|, admissible and consistent for
// 4-directional unit-cost movement.
func Manhattan(a, b Coordinate) int {
	return abs(a.Row-b.Row) + abs(a.Col-b.Col)
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
