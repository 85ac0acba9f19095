package lattice_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/lvsis/lattice"
)

// TestWalkFrom_Errors verifies WalkFrom rejects empty, revisiting and
// disconnected inputs.
func TestWalkFrom_Errors(t *testing.T) {
	p := func(r, c int) lattice.Position { return lattice.Position{Row: r, Col: c} }
	cases := []struct {
		name string
		conn lattice.Connectivity
		in   []lattice.Position
		err  error
	}{
		{"Empty", lattice.Conn4, nil, lattice.ErrEmptyWalk},
		{"Revisit", lattice.Conn4, []lattice.Position{p(0, 0), p(0, 1), p(0, 0)}, lattice.ErrNotSelfAvoiding},
		{"Jump", lattice.Conn4, []lattice.Position{p(0, 0), p(0, 2)}, lattice.ErrNotConnected},
		{"DiagonalOnConn4", lattice.Conn4, []lattice.Position{p(0, 0), p(1, 1)}, lattice.ErrNotConnected},
		{"Stay", lattice.Conn8, []lattice.Position{p(0, 0), p(0, 0)}, lattice.ErrNotSelfAvoiding},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := lattice.WalkFrom(tc.conn, tc.in...)
			assert.ErrorIs(t, err, tc.err)
		})
	}

	_, err := lattice.WalkFrom(lattice.Conn8, p(0, 0), p(1, 1))
	assert.NoError(t, err, "diagonal step is valid on Conn8")
}

// TestWalk_Accessors covers the read-only view of a walk.
func TestWalk_Accessors(t *testing.T) {
	w, err := lattice.WalkFrom(lattice.Conn4, trap...)
	require.NoError(t, err)

	assert.Equal(t, len(trap), w.Len())
	assert.Equal(t, trap[0], w.Start())
	assert.Equal(t, trap[len(trap)-1], w.End())
	assert.Equal(t, trap, w.Positions())
	assert.True(t, w.Contains(lattice.Position{Row: -2, Col: 0}))
	assert.False(t, w.Contains(lattice.Position{Row: 5, Col: 5}))
	assert.Equal(t, "0,0;0,1;-1,1;-2,1;-2,0;-2,-1;-1,-1;-1,0", w.Key())

	ps := w.Positions()
	ps[0] = lattice.Position{Row: 9, Col: 9}
	assert.Equal(t, trap[0], w.Start(), "Positions returns a copy")

	c := w.Clone()
	assert.Equal(t, w.Key(), c.Key())
}

// TestNewWalk starts at the origin regardless of capacity.
func TestNewWalk(t *testing.T) {
	for _, c := range []int{-1, 0, 1, 10} {
		w := lattice.NewWalk(c)
		assert.Equal(t, 1, w.Len())
		assert.Equal(t, lattice.Origin, w.End())
	}
}

// TestFreeNeighbors_Order checks the fixed N, E, S, W order at the origin.
func TestFreeNeighbors_Order(t *testing.T) {
	w := lattice.NewWalk(1)
	got := lattice.FreeNeighbors(w, lattice.Conn4, nil)
	want := []lattice.Position{{Row: -1, Col: 0}, {Row: 0, Col: 1}, {Row: 1, Col: 0}, {Row: 0, Col: -1}}
	assert.Equal(t, want, got)
	assert.Len(t, lattice.FreeNeighbors(w, lattice.Conn8, nil), 8)
}

// TestConnectivity_String covers the Stringer.
func TestConnectivity_String(t *testing.T) {
	assert.Equal(t, "conn4", lattice.Conn4.String())
	assert.Equal(t, "conn8", lattice.Conn8.String())
	assert.Equal(t, "unknown", lattice.Connectivity(7).String())
	assert.Equal(t, 4, lattice.Connectivity(7).Degree())
}
