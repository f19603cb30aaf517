package core

// TouchKind classifies the outcome of touching a cell.
type TouchKind int

const (
	// TouchRejected means the touch was not a legal move; nothing changed.
	TouchRejected TouchKind = iota
	// TouchExtended means the cell was appended to the stroke.
	TouchExtended
	// TouchReverted means the stroke was truncated back to the touched cell.
	TouchReverted
	// TouchCompleted is an extension that painted the last target cell.
	TouchCompleted
)

// String returns the lowercase name of the kind.
func (k TouchKind) String() string {
	switch k {
	case TouchRejected:
		return "rejected"
	case TouchExtended:
		return "extended"
	case TouchReverted:
		return "reverted"
	case TouchCompleted:
		return "completed"
	default:
		return "unknown"
	}
}

// RejectReason names the rule that rejected a touch.
type RejectReason int

const (
	// ReasonNone is set on touches that were not rejected.
	ReasonNone RejectReason = iota
	// ReasonOutOfGrid means the cell lies outside the N×N grid.
	ReasonOutOfGrid
	// ReasonNotTarget means the cell is not part of the pattern.
	ReasonNotTarget
	// ReasonNotStart means the first touch missed the start cell.
	ReasonNotStart
	// ReasonNotAdjacent means the cell is unpainted and not next to the stroke end.
	ReasonNotAdjacent
	// ReasonCompleted means the level is finished; touches wait for a reset.
	ReasonCompleted
)

// String returns a short description of the reason.
func (r RejectReason) String() string {
	switch r {
	case ReasonNone:
		return "none"
	case ReasonOutOfGrid:
		return "outside the grid"
	case ReasonNotTarget:
		return "not part of the pattern"
	case ReasonNotStart:
		return "stroke must begin at the start cell"
	case ReasonNotAdjacent:
		return "not next to the end of the stroke"
	case ReasonCompleted:
		return "level already complete"
	default:
		return "unknown"
	}
}

// Snapshot is a read-only copy of the paint state after a touch.
type Snapshot struct {
	Size      int
	Stroke    []Coord // Stroke[i] has paint order i+1
	Orders    []int   // Row-major paint orders, 0 = unpainted
	Completed bool
}

// Order returns the paint order of a cell in the snapshot, 0 if unpainted or off-grid.
func (s Snapshot) Order(c Coord) int {
	if c.X < 0 || c.X >= s.Size || c.Y < 0 || c.Y >= s.Size {
		return 0
	}
	return s.Orders[c.Y*s.Size+c.X]
}

// TouchResult describes what a touch did.
type TouchResult struct {
	Kind   TouchKind
	Reason RejectReason // Set only when Kind is TouchRejected
	Cell   Coord
	// Order is the paint order of Cell after the touch (0 when rejected).
	Order int
	// Cleared is the number of cells unpainted by a revert.
	Cleared  int
	Snapshot Snapshot
}

// Changed reports whether the touch mutated the stroke.
func (r TouchResult) Changed() bool {
	return r.Kind == TouchExtended || r.Kind == TouchCompleted || r.Cleared > 0
}

// Session is the mutable play state of one level: the pattern being solved,
// the stroke painted so far and a per-cell paint order index kept in sync
// with it. A Session is not safe for concurrent use; every player owns one.
type Session struct {
	pattern   *Pattern
	orders    []int
	stroke    []Coord
	remaining int
	completed bool
}

// NewSession creates a session for the given pattern. A nil pattern behaves
// like an empty 0x0 grid where every touch is rejected.
func NewSession(p *Pattern) *Session {
	s := &Session{}
	s.BeginLevel(p)
	return s
}

// BeginLevel replaces the session wholesale with a fresh one for p.
// Nothing carries over from the previous level.
func (s *Session) BeginLevel(p *Pattern) {
	if p == nil {
		p = NewPattern(0, nil, C(-1, -1))
	}
	s.pattern = p
	s.orders = make([]int, p.size*p.size)
	s.stroke = make([]Coord, 0, p.targets)
	s.remaining = p.targets
	s.completed = false
}

// Reset clears the stroke and paint state, keeping the current pattern.
func (s *Session) Reset() {
	for i := range s.orders {
		s.orders[i] = 0
	}
	s.stroke = s.stroke[:0]
	s.remaining = s.pattern.targets
	s.completed = false
}

// Touch applies a touch on cell c and classifies it. Illegal touches are
// reported as TouchRejected and leave the session unchanged; they are normal
// input, never errors. Once the level is completed every touch is rejected
// until Reset or BeginLevel.
func (s *Session) Touch(c Coord) TouchResult {
	p := s.pattern

	switch {
	case s.completed:
		return s.reject(c, ReasonCompleted)
	case !p.InBounds(c):
		return s.reject(c, ReasonOutOfGrid)
	case !p.IsTarget(c):
		return s.reject(c, ReasonNotTarget)
	}

	if k := s.orders[p.index(c)]; k > 0 {
		return s.revert(c, k)
	}

	if len(s.stroke) == 0 {
		if !p.hasStart || c != p.start {
			return s.reject(c, ReasonNotStart)
		}
	} else if !s.stroke[len(s.stroke)-1].Adjacent(c) {
		return s.reject(c, ReasonNotAdjacent)
	}

	return s.extend(c)
}

func (s *Session) reject(c Coord, reason RejectReason) TouchResult {
	return TouchResult{
		Kind:     TouchRejected,
		Reason:   reason,
		Cell:     c,
		Snapshot: s.Snapshot(),
	}
}

// revert truncates the stroke to its first k cells. Cell k stays painted.
func (s *Session) revert(c Coord, k int) TouchResult {
	cleared := len(s.stroke) - k
	for _, cell := range s.stroke[k:] {
		s.orders[s.pattern.index(cell)] = 0
	}
	s.stroke = s.stroke[:k]
	s.remaining += cleared

	return TouchResult{
		Kind:     TouchReverted,
		Cell:     c,
		Order:    k,
		Cleared:  cleared,
		Snapshot: s.Snapshot(),
	}
}

func (s *Session) extend(c Coord) TouchResult {
	s.stroke = append(s.stroke, c)
	order := len(s.stroke)
	s.orders[s.pattern.index(c)] = order
	s.remaining--

	kind := TouchExtended
	if s.remaining == 0 {
		s.completed = true
		kind = TouchCompleted
	}

	return TouchResult{
		Kind:     kind,
		Cell:     c,
		Order:    order,
		Snapshot: s.Snapshot(),
	}
}

// Pattern returns the pattern being played.
func (s *Session) Pattern() *Pattern {
	return s.pattern
}

// IsCompleted reports whether every target cell has been painted.
func (s *Session) IsCompleted() bool {
	return s.completed
}

// Len returns the number of cells on the stroke.
func (s *Session) Len() int {
	return len(s.stroke)
}

// Remaining returns how many target cells are still unpainted.
func (s *Session) Remaining() int {
	return s.remaining
}

// Order returns the paint order of a cell, 0 if unpainted or off-grid.
func (s *Session) Order(c Coord) int {
	if !s.pattern.InBounds(c) {
		return 0
	}
	return s.orders[s.pattern.index(c)]
}

// Last returns the end of the stroke, if any.
func (s *Session) Last() (Coord, bool) {
	if len(s.stroke) == 0 {
		return Coord{}, false
	}
	return s.stroke[len(s.stroke)-1], true
}

// Stroke returns a copy of the painted path in order.
func (s *Session) Stroke() []Coord {
	out := make([]Coord, len(s.stroke))
	copy(out, s.stroke)
	return out
}

// Snapshot returns a copy of the current paint state.
func (s *Session) Snapshot() Snapshot {
	orders := make([]int, len(s.orders))
	copy(orders, s.orders)
	return Snapshot{
		Size:      s.pattern.size,
		Stroke:    s.Stroke(),
		Orders:    orders,
		Completed: s.completed,
	}
}
