package elementary

import (
	"slices"
	"testing"

	"eca/internal/core"

	"github.com/stretchr/testify/require"
)

// stepReference computes the next generation with a second buffer.
func stepReference(rule Rule, cells []byte) []byte {
	next := make([]byte, len(cells))
	for i := range cells {
		left, right := Dead, Dead
		if i > 0 {
			left = Cell(cells[i-1])
		}
		if i < len(cells)-1 {
			right = Cell(cells[i+1])
		}
		next[i] = byte(rule.Outcome(left, Cell(cells[i]), right))
	}
	return next
}

func cellsOf(s string) []byte {
	out := make([]byte, len(s))
	for i := range s {
		if s[i] == '#' {
			out[i] = 1
		}
	}
	return out
}

func TestNewRowDefaults(t *testing.T) {
	row := NewRow()
	defer row.Release()

	require.Equal(t, DefaultLength, row.Len())
	require.Equal(t, DefaultRule, row.Rule())
	require.Len(t, row.Cells(), DefaultLength)
	require.Equal(t, 1, row.Population())
	require.Equal(t, Alive, row.At(DefaultLength/2))
	require.Same(t, core.Memory(), row.Memory())
}

func TestStepRule30SingleCell(t *testing.T) {
	row := NewRowIn(core.NewArena(0), 5, 30)
	require.Equal(t, "..#..", row.String())

	row.Step()
	require.Equal(t, ".###.", row.String())

	row.Step()
	require.Equal(t, "##..#", row.String())
}

func TestStepMatchesReference(t *testing.T) {
	mem := core.NewArena(0)
	rng := core.NewRNG(7)
	for r := 0; r < 256; r++ {
		rule := Rule(r)
		for _, n := range []int{1, 2, 3, 17, 64} {
			row := NewRowIn(mem, n, rule)
			row.Randomize(rng, 0.5)
			want := row.Snapshot()
			for gen := 0; gen < 8; gen++ {
				want = stepReference(rule, want)
				row.Step()
				require.Truef(t, slices.Equal(want, row.Cells()), "rule %d length %d generation %d", r, n, gen+1)
			}
			row.Release()
		}
	}
	require.Zero(t, mem.Len(), "released rows must return all memory")
}

func TestStepBordersAreDead(t *testing.T) {
	mem := core.NewArena(0)

	// Only 111 survives: a lone cell dies unless the border wraps around.
	row := NewRowIn(mem, 1, 128)
	require.Equal(t, Alive, row.At(0))
	row.Step()
	require.Equal(t, Dead, row.At(0))

	// 100 -> alive: the first cell can only see its real left neighbour.
	row = NewRowIn(mem, 4, 16)
	copy(row.Cells(), cellsOf("...#"))
	row.Step()
	require.Equal(t, "....", row.String(), "rightmost cell must not wrap onto the first")

	// 001 -> alive: symmetric check on the last cell.
	row = NewRowIn(mem, 4, 2)
	copy(row.Cells(), cellsOf("#..."))
	row.Step()
	require.Equal(t, "....", row.String(), "leftmost cell must not wrap onto the last")
}

func TestStepDeterministic(t *testing.T) {
	mem := core.NewArena(0)
	a := NewRowIn(mem, 50, 110)
	b := NewRowIn(mem, 50, 110)
	a.Randomize(core.NewRNG(3), 0.4)
	b.Randomize(core.NewRNG(3), 0.4)
	require.Equal(t, a.Snapshot(), b.Snapshot())

	a.Run(10)
	b.Run(10)
	require.Equal(t, a.Snapshot(), b.Snapshot())
}

func TestStepLeavesRuleTable(t *testing.T) {
	mem := core.NewArena(0)
	row := NewRowIn(mem, 9, 255)
	before := row.RuleTable()
	prefix := append([]byte(nil), mem.Bytes()[row.Offset()-Reserved:row.Offset()]...)

	row.Run(4)

	require.Equal(t, before, row.RuleTable())
	require.Equal(t, prefix, mem.Bytes()[row.Offset()-Reserved:row.Offset()])
}

func TestSetRule(t *testing.T) {
	row := NewRowIn(core.NewArena(0), 8, 30)
	cells := row.Snapshot()

	row.SetRule(90)
	once := row.RuleTable()
	row.SetRule(90)

	require.Equal(t, once, row.RuleTable())
	require.Equal(t, NewRuleTable(90), row.RuleTable())
	require.Equal(t, Rule(90), row.Rule())
	require.Equal(t, cells, row.Snapshot(), "changing the rule must not touch the cells")
}

func TestResize(t *testing.T) {
	mem := core.NewArena(0)
	row := NewRowIn(mem, 10, 73)
	before := row.RuleTable()

	for _, n := range []int{25, 3, 0, 1000} {
		row.Resize(n)
		require.Equal(t, n, row.Len())
		require.Len(t, row.Cells(), n)
		require.Zero(t, row.Population(), "resize restarts with every cell dead")
		require.Equal(t, before, row.RuleTable())
	}
}

func TestEmptyRowStep(t *testing.T) {
	row := NewRowIn(core.NewArena(0), 0, 30)
	require.Empty(t, row.Cells())
	row.Step()
	require.Equal(t, Rule(30), row.Rule())
}

func TestRowsShareArena(t *testing.T) {
	mem := core.NewArena(0)
	a := NewRowIn(mem, 6, 30)
	b := NewRowIn(mem, 6, 90)
	bBefore := b.Snapshot()

	a.Run(3)
	a.Resize(40)
	a.Seed()
	a.Run(3)

	require.Equal(t, bBefore, b.Snapshot())
	require.Equal(t, Rule(90), b.Rule())

	raw := mem.Bytes()
	require.Equal(t, b.Cells(), raw[b.Offset():b.Offset()+b.Len()])
	require.Equal(t, a.Cells(), raw[a.Offset():a.Offset()+a.Len()])
}

func TestViewInvalidatedByMutation(t *testing.T) {
	row := NewRowIn(core.NewArena(0), 5, 30)

	mutations := map[string]func(){
		"step":   row.Step,
		"rule":   func() { row.SetRule(1) },
		"resize": func() { row.Resize(5) },
		"seed":   row.Seed,
		"set":    func() { row.Set(0, Alive) },
	}
	for name, mutate := range mutations {
		v := row.View()
		require.True(t, v.Valid(), name)
		require.Equal(t, row.Len(), v.Len())
		require.Equal(t, row.Cells(), v.Bytes())

		mutate()

		require.False(t, v.Valid(), name)
		require.PanicsWithValue(t, ErrStaleView, func() { v.Bytes() }, name)
		require.PanicsWithValue(t, ErrStaleView, func() { v.At(0) }, name)
	}
}

func TestSetAndAtBounds(t *testing.T) {
	row := NewRowIn(core.NewArena(0), 3, 30)
	row.Set(0, Alive)
	require.Equal(t, "##.", row.String())
	require.Panics(t, func() { row.At(3) })
	require.Panics(t, func() { row.Set(-1, Alive) })
}

func TestRandomizeDensityExtremes(t *testing.T) {
	row := NewRowIn(core.NewArena(0), 30, 30)
	rng := core.NewRNG(1)
	row.Randomize(rng, 0)
	require.Zero(t, row.Population())
	row.Randomize(rng, 1)
	require.Equal(t, 30, row.Population())
	row.Clear()
	require.Zero(t, row.Population())
}
