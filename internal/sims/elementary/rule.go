package elementary

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Cell is a binary cell state stored as one byte.
type Cell uint8

const (
	Dead  Cell = 0
	Alive Cell = 1
)

func (c Cell) String() string {
	if c == Alive {
		return "alive"
	}
	return "dead"
}

// Rule is a Wolfram rule number. Bit p holds the outcome for the
// neighbourhood whose (left, center, right) bits spell p.
type Rule uint8

// DefaultRule is the rule a new Row starts with.
const DefaultRule Rule = 30

// ErrRuleRange reports a rule number outside [0, 255].
var ErrRuleRange = errors.New("rule number out of range [0, 255]")

// ParseRule accepts a decimal rule number or a preset name.
func ParseRule(s string) (Rule, error) {
	s = strings.TrimSpace(s)
	if p, ok := LookupPreset(s); ok {
		return p.Rule, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("parse rule %q: %w", s, err)
	}
	if n < 0 || n > 255 {
		return 0, fmt.Errorf("parse rule %q: %w", s, ErrRuleRange)
	}
	return Rule(n), nil
}

// Outcome returns the next state for a neighbourhood.
func (r Rule) Outcome(left, center, right Cell) Cell {
	return Cell(r>>Pattern(left, center, right)) & 1
}

// Mirror returns the rule with left and right swapped.
func (r Rule) Mirror() Rule {
	var m Rule
	for p := 0; p < 8; p++ {
		l, c, rt := (p>>2)&1, (p>>1)&1, p&1
		q := rt<<2 | c<<1 | l
		m |= ((r >> q) & 1) << p
	}
	return m
}

// Complement returns the rule obtained by swapping Alive and Dead in both
// the neighbourhood and the outcome.
func (r Rule) Complement() Rule {
	var m Rule
	for p := 0; p < 8; p++ {
		bit := ((r >> (7 - p)) & 1) ^ 1
		m |= bit << p
	}
	return m
}

// Canonical returns the smallest rule number equivalent to r under mirror
// and complement. There are 88 canonical rules.
func (r Rule) Canonical() Rule {
	best := r
	for _, v := range []Rule{r.Mirror(), r.Complement(), r.Mirror().Complement()} {
		if v < best {
			best = v
		}
	}
	return best
}

// Pattern encodes a neighbourhood as left*4 + center*2 + right.
func Pattern(left, center, right Cell) int {
	return int(left&1)<<2 | int(center&1)<<1 | int(right&1)
}

// TableSize is the number of entries in a RuleTable.
const TableSize = 8

// RuleTable expands a rule number into per-neighbourhood outcomes.
// Entry i belongs to the neighbourhood pattern 7-i, so entry 0 is "111" and
// entry 7 is "000", matching the most-significant-bit-first rule layout.
type RuleTable [TableSize]Cell

// NewRuleTable expands r.
func NewRuleTable(r Rule) RuleTable {
	var t RuleTable
	for i := range t {
		t[i] = Cell((r >> (7 - i)) & 1)
	}
	return t
}

// TableIndex returns the RuleTable index for a neighbourhood.
func TableIndex(left, center, right Cell) int {
	return 7 - Pattern(left, center, right)
}

// Next looks up the outcome for a neighbourhood.
func (t *RuleTable) Next(left, center, right Cell) Cell {
	return t[TableIndex(left, center, right)]
}

// Number folds the table back into its rule number.
func (t *RuleTable) Number() Rule {
	var r Rule
	for i, c := range t {
		if c == Alive {
			r |= 1 << (7 - i)
		}
	}
	return r
}

// Toggle flips the outcome at index i.
func (t *RuleTable) Toggle(i int) {
	t[i] ^= 1
}

// Neighborhood renders the pattern for index i, e.g. "110" for index 1.
func Neighborhood(i int) string {
	p := 7 - i
	return fmt.Sprintf("%03b", p)
}

func (t RuleTable) String() string {
	var b strings.Builder
	for _, c := range t {
		b.WriteByte('0' + byte(c&1))
	}
	return b.String()
}

// Preset names a well-known rule.
type Preset struct {
	Name string
	Rule Rule
	Note string
}

// Presets lists the rules offered by hosts as quick picks.
var Presets = []Preset{
	{Name: "chaos", Rule: 30, Note: "chaotic, used as a random generator"},
	{Name: "ladder", Rule: 45, Note: "chaotic with diagonal structures"},
	{Name: "stripes", Rule: 73, Note: "isolated periodic walls"},
	{Name: "sierpinski", Rule: 90, Note: "XOR of both neighbours"},
	{Name: "universal", Rule: 110, Note: "Turing complete"},
	{Name: "xor3", Rule: 150, Note: "XOR of the whole neighbourhood"},
	{Name: "traffic", Rule: 184, Note: "particles moving right"},
	{Name: "identity", Rule: 204, Note: "every cell keeps its state"},
}

// LookupPreset finds a preset by name, case-insensitively.
func LookupPreset(name string) (Preset, bool) {
	for _, p := range Presets {
		if strings.EqualFold(p.Name, name) {
			return p, true
		}
	}
	return Preset{}, false
}

// PresetFor returns the preset for r, if any.
func PresetFor(r Rule) (Preset, bool) {
	for _, p := range Presets {
		if p.Rule == r {
			return p, true
		}
	}
	return Preset{}, false
}
