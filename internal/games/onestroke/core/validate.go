package core

import (
	"errors"
	"fmt"
)

// Validation error codes.
const (
	CodeEmptyPattern   = "EMPTY_PATTERN"
	CodeNoStart        = "NO_START"
	CodeStartNotTarget = "START_NOT_TARGET"
	CodeDisconnected   = "DISCONNECTED"
	CodeParity         = "PARITY"
	CodeNoPath         = "NO_HAMILTONIAN_PATH"
	CodeSearchLimit    = "SEARCH_LIMIT"
	CodeBadWitness     = "INVALID_WITNESS"
)

// ValidationError contains details about validation failure.
type ValidationError struct {
	Code    string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// IsCode reports whether err is a ValidationError with the given code.
func IsCode(err error, code string) bool {
	var ve ValidationError
	return errors.As(err, &ve) && ve.Code == code
}

// Validate checks that a pattern is playable: it has targets, a start on the
// target set, and a single stroke from the start that paints every target.
// maxNodes bounds the path search (zero or less = unbounded); hitting it
// yields SEARCH_LIMIT rather than a verdict.
func Validate(p *Pattern, maxNodes int) error {
	if err := validateStructure(p); err != nil {
		return err
	}

	_, stats, err := Solve(p, nil, maxNodes)
	switch {
	case err == nil:
		return nil
	case errors.Is(err, ErrSearchLimit):
		return ValidationError{
			Code:    CodeSearchLimit,
			Message: fmt.Sprintf("no verdict after %d search nodes", stats.Nodes),
		}
	default:
		return ValidationError{
			Code:    CodeNoPath,
			Message: fmt.Sprintf("no single stroke from %s covers all %d targets", p.start, p.targets),
		}
	}
}

// ValidateWithSolution checks the pattern structure and that solution is a
// stroke covering it, without searching.
func ValidateWithSolution(p *Pattern, solution []Coord) error {
	if err := validateStructure(p); err != nil {
		return err
	}
	return VerifyPath(p, solution)
}

// validateStructure runs the cheap checks that need no search.
func validateStructure(p *Pattern) error {
	if p.targets == 0 {
		return ValidationError{
			Code:    CodeEmptyPattern,
			Message: "pattern has no target cells",
		}
	}
	if !p.hasStart {
		return ValidationError{
			Code:    CodeNoStart,
			Message: "pattern has no start cell on the grid",
		}
	}
	if !p.IsTarget(p.start) {
		return ValidationError{
			Code:    CodeStartNotTarget,
			Message: fmt.Sprintf("start %s is not a target cell", p.start),
		}
	}

	if reached := p.reachableFromStart(); reached != p.targets {
		return ValidationError{
			Code: CodeDisconnected,
			Message: fmt.Sprintf("only %d of %d targets connect to start %s",
				reached, p.targets, p.start),
		}
	}

	same, other := 0, 0
	for _, c := range p.Targets() {
		if c.parity() == p.start.parity() {
			same++
		} else {
			other++
		}
	}
	if same != other && same != other+1 {
		return ValidationError{
			Code: CodeParity,
			Message: fmt.Sprintf("checkerboard split %d/%d cannot alternate from start %s",
				same, other, p.start),
		}
	}

	return nil
}

// reachableFromStart counts targets connected to the start through targets.
func (p *Pattern) reachableFromStart() int {
	seen := make([]bool, p.size*p.size)
	seen[p.index(p.start)] = true
	queue := []Coord{p.start}
	count := 1
	for len(queue) > 0 {
		c := queue[0]
		queue = queue[1:]
		for _, nb := range c.Neighbors() {
			if !p.IsTarget(nb) || seen[p.index(nb)] {
				continue
			}
			seen[p.index(nb)] = true
			count++
			queue = append(queue, nb)
		}
	}
	return count
}

// VerifyPath checks that path is a legal complete stroke for p: it begins at
// the start, moves between adjacent cells, and paints every target once.
func VerifyPath(p *Pattern, path []Coord) error {
	bad := func(format string, args ...any) error {
		return ValidationError{Code: CodeBadWitness, Message: fmt.Sprintf(format, args...)}
	}

	if len(path) != p.targets {
		return bad("path has %d cells, pattern has %d targets", len(path), p.targets)
	}
	if len(path) == 0 || path[0] != p.start {
		return bad("path must begin at start %s", p.start)
	}

	seen := make([]bool, p.size*p.size)
	for i, c := range path {
		if !p.IsTarget(c) {
			return bad("cell %s at step %d is not a target", c, i+1)
		}
		if seen[p.index(c)] {
			return bad("cell %s painted twice", c)
		}
		seen[p.index(c)] = true
		if i > 0 && !path[i-1].Adjacent(c) {
			return bad("step %d jumps from %s to %s", i+1, path[i-1], c)
		}
	}
	return nil
}

// PatternStats summarizes a pattern.
type PatternStats struct {
	Size     int
	Targets  int
	Coverage float64
	Start    Coord
}

// ComputePatternStats analyzes a pattern.
func ComputePatternStats(p *Pattern) PatternStats {
	stats := PatternStats{
		Size:    p.size,
		Targets: p.targets,
		Start:   p.start,
	}
	if p.size > 0 {
		stats.Coverage = float64(p.targets) / float64(p.size*p.size)
	}
	return stats
}
