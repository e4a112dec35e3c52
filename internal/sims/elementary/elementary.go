package elementary

import (
	"fmt"

	"eca/internal/core"
)

// Elementary drives a Row and records each generation on a canvas, one
// line per generation, top to bottom.
type Elementary struct {
	cfg    Config
	row    *Row
	canvas *core.ByteGrid

	line        int
	generations int
	done        bool
}

// New creates an automaton with the given row length, canvas height and rule.
func New(length, height int, rule Rule) *Elementary {
	cfg := DefaultConfig()
	cfg.Length = length
	cfg.Height = height
	cfg.Rule = rule
	return NewWithConfig(cfg)
}

// NewWithConfig creates an automaton from cfg and resets it.
func NewWithConfig(cfg Config) *Elementary {
	e := &Elementary{
		cfg:    cfg,
		row:    NewRowIn(core.Memory(), cfg.Length, cfg.Rule),
		canvas: core.NewByteGrid(cfg.Length, cfg.Height),
	}
	e.Reset(0)
	return e
}

// Name returns the simulation identifier.
func (e *Elementary) Name() string { return "elementary" }

// Size returns the canvas dimensions.
func (e *Elementary) Size() core.Size { return core.Size{W: e.canvas.W, H: e.canvas.H} }

// Cells exposes the canvas buffer.
func (e *Elementary) Cells() []uint8 { return e.canvas.Cells() }

// Row exposes the underlying automaton row.
func (e *Elementary) Row() *Row { return e.row }

// RuleTable returns the active rule table.
func (e *Elementary) RuleTable() RuleTable { return e.row.RuleTable() }

// Config returns the active configuration.
func (e *Elementary) Config() Config { return e.cfg }

// Generations counts the generations computed since the last reset.
func (e *Elementary) Generations() int { return e.generations }

// Done reports whether a non-scrolling canvas has filled up.
func (e *Elementary) Done() bool { return e.done }

// Reset reseeds the row according to the starting condition and restarts
// the canvas. A zero seed keeps the configured one.
func (e *Elementary) Reset(seed int64) {
	if seed != 0 {
		e.cfg.Seed = seed
	}
	switch e.cfg.Start {
	case StartRandom:
		e.row.Randomize(core.NewRNG(e.cfg.Seed), e.cfg.Density)
	default:
		e.row.Seed()
	}
	e.canvas.Clear()
	e.canvas.SetRow(0, e.row.Cells())
	e.line = 1
	e.generations = 0
	e.done = false
}

// Step advances TicksPerFrame generations, drawing each on the next line.
func (e *Elementary) Step() {
	for i := 0; i < e.cfg.TicksPerFrame; i++ {
		if e.line >= e.canvas.H {
			if !e.cfg.Scroll {
				e.done = true
				return
			}
			e.canvas.ScrollUp()
			e.line = e.canvas.H - 1
		}
		e.row.Step()
		e.canvas.SetRow(e.line, e.row.Cells())
		e.line++
		e.generations++
	}
}

// SetRule switches the rule and restarts from the starting condition.
func (e *Elementary) SetRule(r Rule) {
	e.cfg.Rule = r
	e.row.SetRule(r)
	e.Reset(0)
}

// SetLength resizes the row and the canvas, then restarts.
func (e *Elementary) SetLength(n int) {
	e.cfg.Length = n
	e.row.Resize(n)
	e.canvas.Resize(n, e.cfg.Height)
	e.Reset(0)
}

// SetStart changes the starting condition and restarts.
func (e *Elementary) SetStart(s Start) {
	e.cfg.Start = s
	e.Reset(0)
}

// Parameters reports the current settings for display.
func (e *Elementary) Parameters() core.ParameterSnapshot {
	table := e.row.RuleTable()
	return core.ParameterSnapshot{Groups: []core.ParameterGroup{
		{
			Name: "Rule",
			Params: []core.Parameter{
				core.IntParam("rule", "Rule", int(e.row.Rule())),
				core.StringParam("table", "Table", table.String()),
			},
		},
		{
			Name: "Row",
			Params: []core.Parameter{
				core.IntParam("length", "Length", e.row.Len()),
				core.IntParam("h", "Height", e.canvas.H),
				core.StringParam("start", "Start", string(e.cfg.Start)),
				core.FloatParam("density", "Density", e.cfg.Density),
				core.Int64Param("seed", "Seed", e.cfg.Seed),
			},
		},
		{
			Name: "Playback",
			Params: []core.Parameter{
				core.IntParam("ticks", "Ticks per frame", e.cfg.TicksPerFrame),
				core.BoolParam("scroll", "Scroll", e.cfg.Scroll),
				core.IntParam("generations", "Generations", e.generations),
			},
		},
	}}
}

// ParameterControls lists the HUD-adjustable settings.
func (e *Elementary) ParameterControls() []core.ParameterControl {
	return []core.ParameterControl{
		{Key: "rule", Label: "Rule", Type: core.ParamTypeInt, Step: 1, Min: 0, Max: 255, HasMin: true, HasMax: true},
		{Key: "length", Label: "Length", Type: core.ParamTypeInt, Step: 10, Min: 1, Max: MaxLength, HasMin: true, HasMax: true},
		{Key: "ticks", Label: "Ticks/frame", Type: core.ParamTypeInt, Step: 1, Min: 1, Max: 50, HasMin: true, HasMax: true},
		{Key: "density", Label: "Density", Type: core.ParamTypeFloat, Step: 0.05, Min: 0, Max: 1, HasMin: true, HasMax: true},
	}
}

// SetIntParameter applies an integer setting from the HUD.
func (e *Elementary) SetIntParameter(key string, value int) bool {
	switch key {
	case "rule":
		if value < 0 || value > 255 {
			return false
		}
		e.SetRule(Rule(value))
	case "length":
		if value < 1 || value > MaxLength {
			return false
		}
		e.SetLength(value)
	case "ticks":
		if value < 1 {
			return false
		}
		e.cfg.TicksPerFrame = value
	default:
		return false
	}
	return true
}

// SetFloatParameter applies a floating point setting from the HUD.
func (e *Elementary) SetFloatParameter(key string, value float64) bool {
	if key != "density" || value < 0 || value > 1 {
		return false
	}
	e.cfg.Density = value
	if e.cfg.Start == StartRandom {
		e.Reset(0)
	}
	return true
}

// Status returns short human-readable lines describing the run.
func (e *Elementary) Status() []string {
	rule := e.row.Rule()
	lines := []string{fmt.Sprintf("rule %d  %s", rule, e.row.RuleTable())}
	if p, ok := PresetFor(rule); ok {
		lines = append(lines, p.Name+": "+p.Note)
	}
	lines = append(lines,
		fmt.Sprintf("generation %d", e.generations),
		fmt.Sprintf("alive %d/%d", e.row.Population(), e.row.Len()),
	)
	if e.done {
		lines = append(lines, "canvas full")
	}
	return lines
}

func init() {
	core.Register("elementary", func(cfg map[string]string) core.Sim {
		return NewWithConfig(FromMap(cfg))
	})
}
