package gridastar

// directions is the enumeration order of Neighbors: +col, +row, -col, -row.
// Tie-breaking downstream depends on it.
var directions = [4]Coordinate{
	{Row: 0, Col: 1},
	{Row: 1, Col: 0},
	{Row: 0, Col: -1},
	{Row: -1, Col: 0},
}

// Neighbors returns the free cells axis-adjacent to c.
func Neighbors(g *Grid, c Coordinate) []Coordinate {
	out := make([]Coordinate, 0, len(directions))
	for _, d := range directions {
		next := Coordinate{Row: c.Row + d.Row, Col: c.Col + d.Col}
		if g.Free(next) {
			out = append(out, next)
		}
	}
	return out
}
