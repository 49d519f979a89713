// Package gridastar provides an A* shortest path search over 2D grids with
// blocked cells.
//
// It exposes two main entry points:
//
//   - Search: run the algorithm to completion and get a Result.
//   - Stepper: iterate the search one expansion at a time to drive UIs or debugging tools.
//
// Movement is 4-directional with unit cost and the default heuristic is the
// Manhattan distance, which keeps the returned paths optimal. Ties in the open
// set are broken by coordinate (row, then column) so repeated searches over the
// same input return identical paths.
package gridastar
