package core

import (
	"errors"
	"fmt"
	"sort"
)

var (
	// ErrNoPath means no single stroke covers every target from the given prefix.
	ErrNoPath = errors.New("no single-stroke path covers the pattern")
	// ErrSearchLimit means the search gave up before reaching an answer.
	ErrSearchLimit = errors.New("search node limit reached")
)

// SolveStats reports how much work a search did.
type SolveStats struct {
	Nodes int
}

// solver searches for a Hamiltonian path over the target cells with
// depth-first backtracking. Moves are tried in Warnsdorff order (fewest
// onward moves first) and branches are cut when the unvisited cells are no
// longer connected or more than one of them has become a forced endpoint.
type solver struct {
	p        *Pattern
	targets  []Coord
	visited  []bool
	path     []Coord
	total    int
	maxNodes int
	nodes    int
	limited  bool

	// scratch for the connectivity check
	seen  []int
	epoch int
	queue []Coord
}

// Solve finds a stroke that paints every target cell and begins with prefix.
// An empty prefix starts at the pattern's start cell. maxNodes bounds the
// search; zero or less means unbounded.
func Solve(p *Pattern, prefix []Coord, maxNodes int) ([]Coord, SolveStats, error) {
	if p.targets == 0 {
		return nil, SolveStats{}, ErrNoPath
	}
	if len(prefix) == 0 {
		if !p.hasStart || !p.IsTarget(p.start) {
			return nil, SolveStats{}, ErrNoPath
		}
		prefix = []Coord{p.start}
	}

	sv := &solver{
		p:        p,
		targets:  p.Targets(),
		visited:  make([]bool, p.size*p.size),
		path:     make([]Coord, 0, p.targets),
		total:    p.targets,
		maxNodes: maxNodes,
		seen:     make([]int, p.size*p.size),
	}
	if err := sv.seed(prefix); err != nil {
		return nil, SolveStats{}, err
	}
	if !sv.parityOK() {
		return nil, SolveStats{}, ErrNoPath
	}

	found := sv.dfs()
	stats := SolveStats{Nodes: sv.nodes}
	switch {
	case found:
		out := make([]Coord, len(sv.path))
		copy(out, sv.path)
		return out, stats, nil
	case sv.limited:
		return nil, stats, ErrSearchLimit
	default:
		return nil, stats, ErrNoPath
	}
}

// seed loads a stroke prefix, checking it obeys the same rules as the session.
func (sv *solver) seed(prefix []Coord) error {
	p := sv.p
	if !p.hasStart || prefix[0] != p.start {
		return fmt.Errorf("prefix must begin at start %s", p.start)
	}
	for i, c := range prefix {
		if !p.IsTarget(c) {
			return fmt.Errorf("prefix cell %s is not a target", c)
		}
		if sv.visited[p.index(c)] {
			return fmt.Errorf("prefix visits %s twice", c)
		}
		if i > 0 && !prefix[i-1].Adjacent(c) {
			return fmt.Errorf("prefix cells %s and %s are not adjacent", prefix[i-1], c)
		}
		sv.visited[p.index(c)] = true
		sv.path = append(sv.path, c)
	}
	return nil
}

// parityOK applies the checkerboard argument: a path alternates colours, so
// the cells still to visit (plus the current end) must split evenly, with at
// most one extra cell of the end's colour.
func (sv *solver) parityOK() bool {
	cur := sv.path[len(sv.path)-1]
	same, other := 1, 0
	for _, c := range sv.targets {
		if sv.visited[sv.p.index(c)] {
			continue
		}
		if c.parity() == cur.parity() {
			same++
		} else {
			other++
		}
	}
	return same == other || same == other+1
}

func (sv *solver) free(c Coord) bool {
	return sv.p.IsTarget(c) && !sv.visited[sv.p.index(c)]
}

// freeDegree counts unvisited target neighbours of c, counting the current
// stroke end as well when withEnd is set.
func (sv *solver) freeDegree(c Coord, end Coord, withEnd bool) int {
	n := 0
	for _, nb := range c.Neighbors() {
		if sv.free(nb) || (withEnd && nb == end) {
			n++
		}
	}
	return n
}

func (sv *solver) dfs() bool {
	if len(sv.path) == sv.total {
		return true
	}
	sv.nodes++
	if sv.maxNodes > 0 && sv.nodes > sv.maxNodes {
		sv.limited = true
		return false
	}

	cur := sv.path[len(sv.path)-1]
	if !sv.viable(cur) {
		return false
	}

	type move struct {
		c      Coord
		degree int
	}
	moves := make([]move, 0, 4)
	for _, nb := range cur.Neighbors() {
		if sv.free(nb) {
			moves = append(moves, move{c: nb, degree: sv.freeDegree(nb, cur, false)})
		}
	}
	sort.SliceStable(moves, func(i, j int) bool {
		return moves[i].degree < moves[j].degree
	})

	for _, m := range moves {
		i := sv.p.index(m.c)
		sv.visited[i] = true
		sv.path = append(sv.path, m.c)
		if sv.dfs() {
			return true
		}
		sv.path = sv.path[:len(sv.path)-1]
		sv.visited[i] = false
		if sv.limited {
			return false
		}
	}
	return false
}

// viable prunes states that can no longer be completed from end.
func (sv *solver) viable(end Coord) bool {
	remaining := sv.total - len(sv.path)

	// Every unvisited cell needs two free neighbours to be passed through;
	// a cell with one can only be the final cell of the stroke.
	endpoints := 0
	for _, c := range sv.targets {
		if !sv.free(c) {
			continue
		}
		switch sv.freeDegree(c, end, true) {
		case 0:
			return false
		case 1:
			endpoints++
			if endpoints > 1 {
				return false
			}
		}
	}

	// All unvisited cells must still be reachable from the stroke end.
	sv.epoch++
	sv.queue = append(sv.queue[:0], end)
	reached := 0
	for len(sv.queue) > 0 {
		c := sv.queue[0]
		sv.queue = sv.queue[1:]
		for _, nb := range c.Neighbors() {
			if !sv.free(nb) {
				continue
			}
			i := sv.p.index(nb)
			if sv.seen[i] == sv.epoch {
				continue
			}
			sv.seen[i] = sv.epoch
			reached++
			sv.queue = append(sv.queue, nb)
		}
	}
	return reached == remaining
}
