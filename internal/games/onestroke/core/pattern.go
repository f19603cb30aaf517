package core

import (
	"fmt"
	"strings"
)

// Pattern is an immutable level definition: a square grid, the set of target
// cells that must be painted, and the start cell every stroke begins at.
//
// A Pattern may be inconsistent (no start, start off the target set, no
// single-stroke path). The session accepts such patterns and simply never
// completes; use Validate to reject them when loading or generating levels.
type Pattern struct {
	size     int
	mask     []bool // row-major, index = y*size + x
	targets  int
	start    Coord
	hasStart bool
}

// Row markers used by ParseRows and Rows.
const (
	RuneEmpty  = '.'
	RuneTarget = '#'
	RuneStart  = 'S'
)

// NewPattern builds a pattern of the given size from a list of target cells.
// Targets outside the grid and duplicates are ignored. The start cell is kept
// as given; HasStart reports whether it lies on the grid.
func NewPattern(size int, targets []Coord, start Coord) *Pattern {
	if size < 0 {
		size = 0
	}
	p := &Pattern{
		size: size,
		mask: make([]bool, size*size),
	}
	for _, c := range targets {
		if !p.InBounds(c) {
			continue
		}
		i := p.index(c)
		if !p.mask[i] {
			p.mask[i] = true
			p.targets++
		}
	}
	p.start = start
	p.hasStart = p.InBounds(start)
	return p
}

// ParseRows builds a pattern from ASCII rows: '#' marks a target, 'S' marks
// the start (also a target) and '.' or ' ' an empty cell. Rows must form a
// square. A missing start is allowed here and reported by Validate.
func ParseRows(rows []string) (*Pattern, error) {
	size := len(rows)
	var targets []Coord
	start := C(-1, -1)
	for y, row := range rows {
		runes := []rune(row)
		if len(runes) != size {
			return nil, fmt.Errorf("row %d has %d cells, expected %d", y, len(runes), size)
		}
		for x, r := range runes {
			switch r {
			case RuneEmpty, ' ':
			case RuneTarget:
				targets = append(targets, C(x, y))
			case RuneStart:
				if start.X >= 0 {
					return nil, fmt.Errorf("second start cell at %s, first at %s", C(x, y), start)
				}
				start = C(x, y)
				targets = append(targets, start)
			default:
				return nil, fmt.Errorf("row %d: unknown cell marker %q", y, r)
			}
		}
	}
	return NewPattern(size, targets, start), nil
}

func (p *Pattern) index(c Coord) int {
	return c.Y*p.size + c.X
}

// Size returns the grid dimension N.
func (p *Pattern) Size() int {
	return p.size
}

// InBounds returns true if the coordinate is on the grid.
func (p *Pattern) InBounds(c Coord) bool {
	return c.X >= 0 && c.X < p.size && c.Y >= 0 && c.Y < p.size
}

// IsTarget reports whether the cell must be painted. Off-grid cells are not targets.
func (p *Pattern) IsTarget(c Coord) bool {
	return p.InBounds(c) && p.mask[p.index(c)]
}

// Start returns the designated start cell.
func (p *Pattern) Start() Coord {
	return p.start
}

// HasStart reports whether a start cell on the grid was designated.
func (p *Pattern) HasStart() bool {
	return p.hasStart
}

// TargetCount returns the number of target cells.
func (p *Pattern) TargetCount() int {
	return p.targets
}

// Targets returns all target cells in row-major order.
func (p *Pattern) Targets() []Coord {
	out := make([]Coord, 0, p.targets)
	for y := 0; y < p.size; y++ {
		for x := 0; x < p.size; x++ {
			if p.mask[y*p.size+x] {
				out = append(out, C(x, y))
			}
		}
	}
	return out
}

// Rows renders the pattern in the ParseRows format.
func (p *Pattern) Rows() []string {
	rows := make([]string, p.size)
	var sb strings.Builder
	for y := 0; y < p.size; y++ {
		sb.Reset()
		for x := 0; x < p.size; x++ {
			c := C(x, y)
			switch {
			case p.hasStart && c == p.start:
				sb.WriteRune(RuneStart)
			case p.mask[p.index(c)]:
				sb.WriteRune(RuneTarget)
			default:
				sb.WriteRune(RuneEmpty)
			}
		}
		rows[y] = sb.String()
	}
	return rows
}

// String returns the rows joined by newlines.
func (p *Pattern) String() string {
	return strings.Join(p.Rows(), "\n")
}
