package core

import (
	"errors"
	"fmt"
	"slices"
)

// GenParams configures the pattern generator.
type GenParams struct {
	Size        int     // Grid dimension N
	MinCoverage float64 // Lower bound on the fraction of cells that are targets
	MaxCoverage float64 // Upper bound on the fraction of cells that are targets
	Twist       float64 // Chance of a random turn instead of the tightest one (0-1)
	Seed        uint64  // RNG seed; combined with the level number
	MaxAttempts int     // Walks tried before giving up
}

// DefaultGenParams returns sensible defaults for an 8x8 level.
func DefaultGenParams() GenParams {
	return GenParams{
		Size:        8,
		MinCoverage: 0.45,
		MaxCoverage: 0.75,
		Twist:       0.35,
		Seed:        0,
		MaxAttempts: 20,
	}
}

// ErrGenerationFailed is returned when no playable pattern was produced.
var ErrGenerationFailed = errors.New("pattern generation failed")

// Puzzle is a generated pattern together with one stroke that solves it.
type Puzzle struct {
	Pattern  *Pattern
	Solution []Coord
}

// SimpleRNG is a deterministic pseudo-random number generator (xorshift64).
type SimpleRNG struct {
	state uint64
}

// NewRNG creates a new RNG with the given seed.
func NewRNG(seed uint64) *SimpleRNG {
	if seed == 0 {
		seed = 88172645463325252
	}
	return &SimpleRNG{state: seed}
}

// Next returns the next random uint64.
func (r *SimpleRNG) Next() uint64 {
	r.state ^= r.state << 13
	r.state ^= r.state >> 7
	r.state ^= r.state << 17
	return r.state
}

// Float returns a random float64 in [0, 1).
func (r *SimpleRNG) Float() float64 {
	return float64(r.Next()>>11) / float64(1<<53)
}

// Intn returns a random int in [0, n).
func (r *SimpleRNG) Intn(n int) int {
	if n <= 0 {
		return 0
	}
	return int(r.Next() % uint64(n))
}

// levelSeed mixes the level number into the base seed (splitmix64 finalizer)
// so neighbouring levels get unrelated walks.
func levelSeed(seed uint64, level int) uint64 {
	z := seed + uint64(level+1)*0x9E3779B97F4A7C15
	z = (z ^ (z >> 30)) * 0xBF58476D1CE4E5B9
	z = (z ^ (z >> 27)) * 0x94D049BB133111EB
	return z ^ (z >> 31)
}

// Generate builds the pattern for a level. The same params and level always
// give the same pattern.
//
// The target set is the trace of a self-avoiding walk from a random start,
// so the walk itself is a stroke that solves the level. The walk prefers the
// neighbour with the fewest onward moves, which keeps it from boxing itself
// in, and takes a random turn with probability Twist. A walk that gets stuck
// is still used once it covers MinCoverage. When every walk falls short, the
// targets are cut from a random path over the whole grid, which always has
// room. Every result is checked with ValidateWithSolution before it is
// returned.
func Generate(level int, p GenParams) (Puzzle, error) {
	if p.Size < 2 {
		return Puzzle{}, fmt.Errorf("%w: grid size %d too small", ErrGenerationFailed, p.Size)
	}
	attempts := p.MaxAttempts
	if attempts <= 0 {
		attempts = 1
	}

	rng := NewRNG(levelSeed(p.Seed, level))
	cells := p.Size * p.Size

	lo, hi := p.MinCoverage, p.MaxCoverage
	if hi < lo {
		lo, hi = hi, lo
	}
	coverage := lo + rng.Float()*(hi-lo)
	want := min(max(int(coverage*float64(cells)), 2), cells)
	enough := min(max(int(lo*float64(cells)), 2), want)

	for range attempts {
		walk := randomWalk(p.Size, want, p.Twist, rng)
		if len(walk) < enough {
			continue
		}
		if puzzle, err := newPuzzle(p.Size, walk); err == nil {
			return puzzle, nil
		}
	}

	puzzle, err := newPuzzle(p.Size, pathSegment(p.Size, want, rng))
	if err != nil {
		return Puzzle{}, fmt.Errorf("%w: level %d: %v", ErrGenerationFailed, level, err)
	}
	return puzzle, nil
}

// newPuzzle turns a stroke into a level whose start is the stroke's first cell.
func newPuzzle(size int, stroke []Coord) (Puzzle, error) {
	pattern := NewPattern(size, stroke, stroke[0])
	if err := ValidateWithSolution(pattern, stroke); err != nil {
		return Puzzle{}, err
	}
	return Puzzle{Pattern: pattern, Solution: stroke}, nil
}

// backbiteRounds is the number of backbite moves per grid cell used to
// shuffle the serpentine path in pathSegment.
const backbiteRounds = 20

// pathSegment returns want consecutive cells of a random Hamiltonian path
// over the full grid.
//
// The path starts as a serpentine and is shuffled with backbite moves: an end
// cell links to a grid neighbour further along the path, and the part of the
// path between them is reversed so it stays a single stroke.
func pathSegment(size, want int, rng *SimpleRNG) []Coord {
	cells := size * size
	path := make([]Coord, 0, cells)
	for y := 0; y < size; y++ {
		for i := 0; i < size; i++ {
			x := i
			if y%2 == 1 {
				x = size - 1 - i
			}
			path = append(path, C(x, y))
		}
	}

	pos := make([]int, cells)
	for i, c := range path {
		pos[c.Y*size+c.X] = i
	}
	reverse := func(i, j int) {
		for ; i < j; i, j = i+1, j-1 {
			path[i], path[j] = path[j], path[i]
			pos[path[i].Y*size+path[i].X] = i
			pos[path[j].Y*size+path[j].X] = j
		}
	}

	last := cells - 1
	for range backbiteRounds * cells {
		head := rng.Intn(2) == 0
		end := path[last]
		if head {
			end = path[0]
		}
		nb := end.Neighbors()[rng.Intn(4)]
		if nb.X < 0 || nb.X >= size || nb.Y < 0 || nb.Y >= size {
			continue
		}
		i := pos[nb.Y*size+nb.X]
		switch {
		case head && i > 1:
			reverse(0, i-1)
		case !head && i < last-1:
			reverse(i+1, last)
		}
	}

	from := rng.Intn(cells - want + 1)
	segment := slices.Clone(path[from : from+want])
	if rng.Intn(2) == 0 {
		slices.Reverse(segment)
	}
	return segment
}

// randomWalk grows a self-avoiding walk of up to want cells.
func randomWalk(size, want int, twist float64, rng *SimpleRNG) []Coord {
	visited := make([]bool, size*size)
	in := func(c Coord) bool {
		return c.X >= 0 && c.X < size && c.Y >= 0 && c.Y < size
	}
	open := func(c Coord) bool {
		return in(c) && !visited[c.Y*size+c.X]
	}

	cur := C(rng.Intn(size), rng.Intn(size))
	visited[cur.Y*size+cur.X] = true
	walk := make([]Coord, 0, want)
	walk = append(walk, cur)

	candidates := make([]Coord, 0, 4)
	for len(walk) < want {
		candidates = candidates[:0]
		for _, nb := range cur.Neighbors() {
			if open(nb) {
				candidates = append(candidates, nb)
			}
		}
		if len(candidates) == 0 {
			break
		}

		var next Coord
		if rng.Float() < twist {
			next = candidates[rng.Intn(len(candidates))]
		} else {
			// Fewest onward moves; ties broken at random.
			best := -1
			ties := 0
			for _, c := range candidates {
				onward := 0
				for _, nb := range c.Neighbors() {
					if open(nb) {
						onward++
					}
				}
				switch {
				case best < 0 || onward < best:
					best, ties, next = onward, 1, c
				case onward == best:
					ties++
					if rng.Intn(ties) == 0 {
						next = c
					}
				}
			}
		}

		visited[next.Y*size+next.X] = true
		walk = append(walk, next)
		cur = next
	}
	return walk
}
