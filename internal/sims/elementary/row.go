package elementary

import (
	"errors"
	"fmt"

	"eca/internal/core"
)

const (
	// Reserved is the number of bytes in front of the simulated cells that
	// hold the RuleTable in the shared memory layout.
	Reserved = TableSize

	// DefaultLength is the simulated length of a new Row.
	DefaultLength = 100
)

// ErrStaleView is the panic value when a View is read after its Row changed.
var ErrStaleView = errors.New("elementary: cell view used after the row was mutated")

// Row is a one-dimensional automaton with Dead borders.
//
// The row lives in a single span of an Arena laid out as
//
//	[0, Reserved)                   rule table, one byte per entry
//	[Reserved, Reserved+Len())      simulated cells
//
// so hosts addressing the arena by offset can read the rule and the cells
// without holding a reference to the Row. A Row is not safe for concurrent
// use; the owner serialises all calls.
type Row struct {
	mem *core.Arena
	off int
	n   int
	gen uint64
}

// NewRow creates a row of DefaultLength cells in the process-wide arena,
// using DefaultRule and a single Alive cell at the midpoint.
func NewRow() *Row {
	return NewRowIn(core.Memory(), DefaultLength, DefaultRule)
}

// NewRowIn creates a row of n cells in mem with rule r, seeded with a single
// Alive cell at the midpoint.
func NewRowIn(mem *core.Arena, n int, r Rule) *Row {
	if n < 0 {
		panic(fmt.Sprintf("elementary: negative row length %d", n))
	}
	row := &Row{mem: mem, n: n}
	row.off = mem.Alloc(Reserved + n)
	row.writeRule(r)
	row.Seed()
	return row
}

func (r *Row) buf() []byte {
	return r.mem.Slice(r.off, Reserved+r.n)
}

func (r *Row) writeRule(rule Rule) {
	t := NewRuleTable(rule)
	buf := r.buf()
	for i, c := range t {
		buf[i] = byte(c)
	}
}

// Len returns the number of simulated cells.
func (r *Row) Len() int { return r.n }

// Generation counts mutating calls. A View is valid while the count it was
// taken at is current.
func (r *Row) Generation() uint64 { return r.gen }

// Rule returns the rule number currently stored in the table.
func (r *Row) Rule() Rule {
	t := r.RuleTable()
	return t.Number()
}

// RuleTable returns a copy of the rule table.
func (r *Row) RuleTable() RuleTable {
	var t RuleTable
	for i, b := range r.buf()[:Reserved] {
		t[i] = Cell(b)
	}
	return t
}

// SetRule overwrites the rule table. The simulated cells are untouched.
func (r *Row) SetRule(rule Rule) {
	r.writeRule(rule)
	r.gen++
}

// Resize reallocates the row to n cells, keeping the rule. Every simulated
// cell is Dead afterwards; the previous pattern is discarded.
func (r *Row) Resize(n int) {
	if n < 0 {
		panic(fmt.Sprintf("elementary: negative row length %d", n))
	}
	var table [Reserved]byte
	copy(table[:], r.buf())
	r.mem.Free(r.off, Reserved+r.n)
	r.n = n
	r.off = r.mem.Alloc(Reserved + n)
	copy(r.buf(), table[:])
	r.gen++
}

// Release returns the row's storage to its arena. The row must not be used
// afterwards.
func (r *Row) Release() {
	if r.mem == nil {
		return
	}
	r.mem.Free(r.off, Reserved+r.n)
	r.mem = nil
	r.gen++
}

// Step advances the row by one generation in place.
//
// Writes trail reads by one slot: the state computed for cell i is held
// until cell i+1 has read it as its left neighbour, then committed.
func (r *Row) Step() {
	r.gen++
	if r.n == 0 {
		return
	}
	buf := r.buf()
	var table RuleTable
	for i := range table {
		table[i] = Cell(buf[i])
	}

	last := Reserved + r.n - 1
	pending := Dead
	for i := Reserved; i <= last; i++ {
		left := Dead
		if i > Reserved {
			left = Cell(buf[i-1])
		}
		right := Dead
		if i < last {
			right = Cell(buf[i+1])
		}
		next := table.Next(left, Cell(buf[i]), right)
		if i > Reserved {
			buf[i-1] = byte(pending)
		}
		pending = next
	}
	buf[last] = byte(pending)
}

// Run advances the row by n generations.
func (r *Row) Run(n int) {
	for i := 0; i < n; i++ {
		r.Step()
	}
}

// At returns the state of simulated cell i.
func (r *Row) At(i int) Cell {
	if i < 0 || i >= r.n {
		panic(fmt.Sprintf("elementary: cell %d out of range [0,%d)", i, r.n))
	}
	return Cell(r.buf()[Reserved+i])
}

// Set changes simulated cell i.
func (r *Row) Set(i int, c Cell) {
	if i < 0 || i >= r.n {
		panic(fmt.Sprintf("elementary: cell %d out of range [0,%d)", i, r.n))
	}
	r.buf()[Reserved+i] = byte(c & 1)
	r.gen++
}

// Clear kills every simulated cell.
func (r *Row) Clear() {
	clear(r.buf()[Reserved:])
	r.gen++
}

// Seed kills every cell except the one at the midpoint.
func (r *Row) Seed() {
	cells := r.buf()[Reserved:]
	clear(cells)
	if r.n > 0 {
		cells[r.n/2] = byte(Alive)
	}
	r.gen++
}

// Randomize sets each cell Alive with probability density.
func (r *Row) Randomize(rng *core.RNG, density float64) {
	rng.FillBinary(r.buf()[Reserved:], density)
	r.gen++
}

// Population counts Alive cells.
func (r *Row) Population() int {
	alive := 0
	for _, b := range r.buf()[Reserved:] {
		alive += int(b)
	}
	return alive
}

// Cells exposes the simulated cells, one byte each, 0 for Dead and 1 for
// Alive. The slice aliases the row's storage: it must be treated as read
// only and dropped before the next mutating call or arena allocation.
func (r *Row) Cells() []byte {
	return r.buf()[Reserved:]
}

// Snapshot copies the simulated cells.
func (r *Row) Snapshot() []byte {
	return append([]byte(nil), r.Cells()...)
}

// Offset returns the byte offset of the first simulated cell in the arena.
// The rule table occupies the Reserved bytes before it.
func (r *Row) Offset() int { return r.off + Reserved }

// Memory returns the arena holding the row.
func (r *Row) Memory() *core.Arena { return r.mem }

// View returns a checked read-only view of the simulated cells.
func (r *Row) View() View {
	return View{row: r, gen: r.gen}
}

// View is a read-only window onto a Row's cells that knows when it has gone
// stale. Reading a stale view panics with ErrStaleView.
type View struct {
	row *Row
	gen uint64
}

// Valid reports whether the row is unchanged since the view was taken.
func (v View) Valid() bool {
	return v.row != nil && v.row.mem != nil && v.row.gen == v.gen
}

func (v View) check() {
	if !v.Valid() {
		panic(ErrStaleView)
	}
}

// Len returns the number of cells in the view.
func (v View) Len() int {
	v.check()
	return v.row.n
}

// At returns cell i.
func (v View) At(i int) Cell {
	v.check()
	return v.row.At(i)
}

// Bytes returns the aliased cell bytes.
func (v View) Bytes() []byte {
	v.check()
	return v.row.Cells()
}

// String renders the row with '#' for Alive and '.' for Dead.
func (r *Row) String() string {
	cells := r.Cells()
	out := make([]byte, len(cells))
	for i, c := range cells {
		out[i] = '.'
		if c == byte(Alive) {
			out[i] = '#'
		}
	}
	return string(out)
}
