package core

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestArenaAllocZeroesAndReuses(t *testing.T) {
	a := NewArena(16)
	x := a.Alloc(4)
	y := a.Alloc(4)
	require.Equal(t, 0, x)
	require.Equal(t, 4, y)
	require.Equal(t, 8, a.Len())

	copy(a.Slice(x, 4), []byte{1, 2, 3, 4})
	a.Free(x, 4)
	z := a.Alloc(3)
	require.Equal(t, x, z, "first fit reuses the freed span")
	require.Equal(t, []byte{0, 0, 0}, a.Slice(z, 3))
	require.Equal(t, 8, a.Len())
}

func TestArenaCoalescesAndShrinks(t *testing.T) {
	a := NewArena(0)
	x := a.Alloc(2)
	y := a.Alloc(2)
	z := a.Alloc(2)

	a.Free(x, 2)
	a.Free(y, 2)
	require.Equal(t, x, a.Alloc(4), "adjacent free spans merge")

	a.Free(z, 2)
	require.Equal(t, 4, a.Len(), "free tail span shrinks the region")

	a.Free(x, 4)
	require.Zero(t, a.Len())
}

func TestArenaSliceAliasesBytes(t *testing.T) {
	a := NewArena(0)
	off := a.Alloc(3)
	a.Slice(off, 3)[1] = 7
	require.Equal(t, byte(7), a.Bytes()[off+1])
	require.Panics(t, func() { a.Free(10, 5) })
	require.Panics(t, func() { a.Alloc(-1) })
}

func TestMemoryIsProcessWide(t *testing.T) {
	require.Same(t, Memory(), Memory())
}

func TestByteGridRows(t *testing.T) {
	g := NewByteGrid(3, 3)
	g.SetRow(0, []uint8{1, 1, 1, 1})
	g.SetRow(1, []uint8{1})
	g.SetRow(2, []uint8{0, 1, 0})
	require.Equal(t, []uint8{1, 1, 1, 1, 0, 0, 0, 1, 0}, g.Cells())
	require.Equal(t, 7, g.Index(1, 2))

	g.ScrollUp()
	require.Equal(t, []uint8{1, 0, 0, 0, 1, 0, 0, 0, 0}, g.Cells())

	g.Resize(2, 0)
	require.Equal(t, 2, g.W)
	require.Equal(t, 1, g.H)
	require.Len(t, g.Cells(), 2)
}

func TestFixedStep(t *testing.T) {
	now := time.Unix(0, 0)
	fs := NewFixedStep(10)
	fs.now = func() time.Time { return now }

	require.True(t, fs.ShouldStep(), "first tick is due immediately")
	require.False(t, fs.ShouldStep())

	now = now.Add(50 * time.Millisecond)
	require.False(t, fs.ShouldStep())
	now = now.Add(50 * time.Millisecond)
	require.True(t, fs.ShouldStep())
	require.Equal(t, 100*time.Millisecond, fs.Interval())

	fs.SetTPS(0)
	require.Equal(t, time.Second/60, fs.Interval())
}

func TestRNGDeterministic(t *testing.T) {
	a := make([]uint8, 64)
	b := make([]uint8, 64)
	NewRNG(5).FillBinary(a, 0.5)
	NewRNG(5).FillBinary(b, 0.5)
	require.Equal(t, a, b)

	r := NewRNG(1)
	require.False(t, r.Chance(0))
	require.True(t, r.Chance(1))
}

func TestParameterLookup(t *testing.T) {
	snap := ParameterSnapshot{Groups: []ParameterGroup{
		{Name: "A", Params: []Parameter{IntParam("x", "X", 3)}},
		{Name: "B", Params: []Parameter{FloatParam("y", "Y", 0.5), BoolParam("z", "Z", true)}},
	}}
	p, ok := snap.Lookup("y")
	require.True(t, ok)
	require.Equal(t, "0.5", p.Value)
	require.Equal(t, ParamTypeFloat, p.Type)
	_, ok = snap.Lookup("missing")
	require.False(t, ok)
}
