// Package core is the OneStroke puzzle engine: level patterns, the stroke
// session with its touch rules, and pattern generation and validation.
// It is UI-agnostic, deterministic and performs no I/O.
package core

import "fmt"

// Coord is a cell position on the grid.
// X increases to the right, Y increases downward.
type Coord struct {
	X int
	Y int
}

// C is a convenience constructor for Coord.
func C(x, y int) Coord {
	return Coord{X: x, Y: y}
}

// String returns a string representation of the coordinate.
func (c Coord) String() string {
	return fmt.Sprintf("(%d,%d)", c.X, c.Y)
}

// Add returns a new Coord offset by (dx, dy).
func (c Coord) Add(dx, dy int) Coord {
	return Coord{X: c.X + dx, Y: c.Y + dy}
}

// Manhattan returns the Manhattan distance to another coordinate.
func (c Coord) Manhattan(other Coord) int {
	dx := c.X - other.X
	dy := c.Y - other.Y
	if dx < 0 {
		dx = -dx
	}
	if dy < 0 {
		dy = -dy
	}
	return dx + dy
}

// Adjacent reports whether two cells share an edge.
// Diagonal neighbours are not adjacent.
func (c Coord) Adjacent(other Coord) bool {
	return c.Manhattan(other) == 1
}

// steps are the four orthogonal moves in a fixed order: up, right, down, left.
var steps = [4][2]int{{0, -1}, {1, 0}, {0, 1}, {-1, 0}}

// Neighbors returns the four orthogonal neighbours, possibly off-grid.
func (c Coord) Neighbors() [4]Coord {
	var out [4]Coord
	for i, s := range steps {
		out[i] = c.Add(s[0], s[1])
	}
	return out
}

// parity is the checkerboard colour of the cell (0 or 1).
func (c Coord) parity() int {
	return (c.X + c.Y) & 1
}
