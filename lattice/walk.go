package lattice

import (
	"fmt"
	"slices"
	"strconv"
)

// Walk is a self-avoiding path on the lattice.
//
// The path is kept twice: as an ordered slice whose capacity is bounded by the
// requested length, and as a hash set of occupied cells for O(1) membership
// tests. Both are private so the self-avoidance invariant cannot be broken
// from outside the package.
type Walk struct {
	path     []Position
	occupied map[Position]struct{}
}

// NewWalk returns the single-position walk {Origin} with room for capacity
// positions. capacity < 1 is treated as 1.
// Complexity: O(capacity) memory.
func NewWalk(capacity int) *Walk {
	if capacity < 1 {
		capacity = 1
	}
	w := &Walk{
		path:     make([]Position, 0, capacity),
		occupied: make(map[Position]struct{}, capacity),
	}
	w.push(Origin)
	return w
}

// WalkFrom builds a walk from explicit positions, validating that every
// position is distinct and that consecutive positions are neighbors under c.
// The first position need not be the origin; this is how callers set up
// pre-occupied lattice states (for example a trap around the endpoint).
//
// Errors: ErrEmptyWalk, ErrNotSelfAvoiding, ErrNotConnected (wrapped with the
// offending index).
// Complexity: O(n).
func WalkFrom(c Connectivity, positions ...Position) (*Walk, error) {
	if len(positions) == 0 {
		return nil, ErrEmptyWalk
	}
	w := &Walk{
		path:     make([]Position, 0, len(positions)),
		occupied: make(map[Position]struct{}, len(positions)),
	}
	for i, p := range positions {
		if w.Contains(p) {
			return nil, fmt.Errorf("%w: index %d %v", ErrNotSelfAvoiding, i, p)
		}
		if i > 0 && !positions[i-1].Adjacent(p, c) {
			return nil, fmt.Errorf("%w: index %d %v -> %v", ErrNotConnected, i, positions[i-1], p)
		}
		w.push(p)
	}
	return w, nil
}

// push appends p. Callers guarantee p is free.
func (w *Walk) push(p Position) {
	w.path = append(w.path, p)
	w.occupied[p] = struct{}{}
}

// reserve makes room for n positions in total.
func (w *Walk) reserve(n int) {
	if n > cap(w.path) {
		w.path = slices.Grow(w.path, n-len(w.path))
	}
}

// Len is the number of positions in the walk.
func (w *Walk) Len() int { return len(w.path) }

// Start is the first position.
func (w *Walk) Start() Position { return w.path[0] }

// End is the current endpoint, the cell the walk grows from.
func (w *Walk) End() Position { return w.path[len(w.path)-1] }

// At returns the i-th position.
func (w *Walk) At(i int) Position { return w.path[i] }

// Contains reports whether p is occupied by the walk.
// Complexity: O(1).
func (w *Walk) Contains(p Position) bool {
	_, ok := w.occupied[p]
	return ok
}

// Positions returns a copy of the ordered path.
func (w *Walk) Positions() []Position {
	return slices.Clone(w.path)
}

// Clone returns an independent deep copy of w.
func (w *Walk) Clone() *Walk {
	c := &Walk{
		path:     slices.Clone(w.path),
		occupied: make(map[Position]struct{}, len(w.occupied)),
	}
	for p := range w.occupied {
		c.occupied[p] = struct{}{}
	}
	return c
}

// Key returns a canonical string encoding of the ordered path. Two walks
// have equal keys iff they visit the same cells in the same order.
// Complexity: O(n).
func (w *Walk) Key() string {
	buf := make([]byte, 0, len(w.path)*6)
	for i, p := range w.path {
		if i > 0 {
			buf = append(buf, ';')
		}
		buf = strconv.AppendInt(buf, int64(p.Row), 10)
		buf = append(buf, ',')
		buf = strconv.AppendInt(buf, int64(p.Col), 10)
	}
	return string(buf)
}

// String implements fmt.Stringer.
func (w *Walk) String() string {
	return "[" + w.Key() + "]"
}

// FreeNeighbors appends to buf the neighbors of w.End() that the walk does
// not occupy, in the fixed order of c.Offsets(), and returns the extended
// slice. Pass buf[:0] to reuse storage across steps.
// Complexity: O(d), d = c.Degree().
func FreeNeighbors(w *Walk, c Connectivity, buf []Position) []Position {
	end := w.End()
	for _, d := range c.Offsets() {
		n := end.Add(d)
		if !w.Contains(n) {
			buf = append(buf, n)
		}
	}
	return buf
}
