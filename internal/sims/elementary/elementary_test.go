package elementary

import (
	"errors"
	"testing"

	"eca/internal/core"

	"github.com/stretchr/testify/require"
)

func smallConfig() Config {
	cfg := DefaultConfig()
	cfg.Length = 11
	cfg.Height = 4
	cfg.Rule = 90
	cfg.TicksPerFrame = 1
	cfg.Scroll = false
	return cfg
}

func TestCanvasFillsTopDown(t *testing.T) {
	sim := NewWithConfig(smallConfig())
	defer sim.Row().Release()

	size := sim.Size()
	require.Equal(t, core.Size{W: 11, H: 4}, size)

	canvas := sim.Cells()
	require.Equal(t, uint8(1), canvas[5], "first line holds the seed")

	reference := NewRowIn(core.NewArena(0), 11, 90)
	for line := 1; line < 4; line++ {
		sim.Step()
		reference.Step()
		require.Equal(t, reference.Cells(), canvas[line*11:(line+1)*11], "line %d", line)
	}
	require.False(t, sim.Done())
	require.Equal(t, 3, sim.Generations())

	sim.Step()
	require.True(t, sim.Done(), "non-scrolling canvas stops when full")
	require.Equal(t, 3, sim.Generations())
}

func TestCanvasScrolls(t *testing.T) {
	cfg := smallConfig()
	cfg.Scroll = true
	cfg.TicksPerFrame = 3
	sim := NewWithConfig(cfg)
	defer sim.Row().Release()

	for i := 0; i < 5; i++ {
		sim.Step()
	}
	require.False(t, sim.Done())
	require.Equal(t, 15, sim.Generations())

	bottom := sim.Cells()[3*11:]
	require.Equal(t, sim.Row().Cells(), bottom, "latest generation sits on the bottom line")
}

func TestResetSeedsAccordingToStart(t *testing.T) {
	cfg := smallConfig()
	cfg.Start = StartRandom
	cfg.Density = 1
	sim := NewWithConfig(cfg)
	defer sim.Row().Release()
	require.Equal(t, 11, sim.Row().Population())

	sim.SetStart(StartSingle)
	require.Equal(t, 1, sim.Row().Population())
	require.Equal(t, Alive, sim.Row().At(5))

	sim.SetStart(StartRandom)
	require.True(t, sim.SetFloatParameter("density", 0))
	require.Zero(t, sim.Row().Population())
}

func TestRandomResetDeterministic(t *testing.T) {
	cfg := smallConfig()
	cfg.Length = 64
	cfg.Start = StartRandom
	sim := NewWithConfig(cfg)
	defer sim.Row().Release()

	sim.Reset(42)
	first := sim.Row().Snapshot()
	sim.Step()
	sim.Reset(42)
	require.Equal(t, first, sim.Row().Snapshot())
	require.Equal(t, int64(42), sim.Config().Seed)
}

func TestParameterSetters(t *testing.T) {
	sim := NewWithConfig(smallConfig())
	defer sim.Row().Release()

	require.True(t, sim.SetIntParameter("rule", 110))
	require.Equal(t, Rule(110), sim.Row().Rule())
	require.Equal(t, NewRuleTable(110), sim.RuleTable())
	require.False(t, sim.SetIntParameter("rule", 256))
	require.False(t, sim.SetIntParameter("rule", -1))
	require.Equal(t, Rule(110), sim.Row().Rule())

	require.True(t, sim.SetIntParameter("length", 21))
	require.Equal(t, 21, sim.Row().Len())
	require.Equal(t, core.Size{W: 21, H: 4}, sim.Size())
	require.Equal(t, Rule(110), sim.Row().Rule(), "resizing keeps the rule")
	require.Equal(t, 1, sim.Row().Population(), "resizing restarts from the seed")
	require.False(t, sim.SetIntParameter("length", MaxLength+1))

	require.True(t, sim.SetIntParameter("ticks", 7))
	require.Equal(t, 7, sim.Config().TicksPerFrame)
	require.False(t, sim.SetIntParameter("unknown", 1))
	require.False(t, sim.SetFloatParameter("density", 1.5))
	require.False(t, sim.SetFloatParameter("rule", 0.5))

	snap := sim.Parameters()
	p, ok := snap.Lookup("rule")
	require.True(t, ok)
	require.Equal(t, "110", p.Value)
	p, ok = snap.Lookup("table")
	require.True(t, ok)
	require.Equal(t, "01101110", p.Value)

	for _, ctrl := range sim.ParameterControls() {
		_, ok := snap.Lookup(ctrl.Key)
		require.True(t, ok, "control %q must have a parameter", ctrl.Key)
	}
}

func TestStatusNamesPreset(t *testing.T) {
	sim := NewWithConfig(smallConfig())
	defer sim.Row().Release()

	status := sim.Status()
	require.Equal(t, "rule 90  01011010", status[0])
	require.Equal(t, "sierpinski: XOR of both neighbours", status[1])
}

func TestFromMap(t *testing.T) {
	cfg := FromMap(map[string]string{
		"length":  "200",
		"h":       "50",
		"rule":    "traffic",
		"start":   "random",
		"density": "0.25",
		"seed":    "9",
		"ticks":   "2",
		"scroll":  "false",
	})
	require.Equal(t, Config{
		Length:        200,
		Height:        50,
		Rule:          184,
		Start:         StartRandom,
		Density:       0.25,
		Seed:          9,
		TicksPerFrame: 2,
		Scroll:        false,
	}, cfg)
	require.NoError(t, cfg.Validate())

	bad := FromMap(map[string]string{
		"length":  "0",
		"rule":    "256",
		"start":   "glider",
		"density": "2",
		"ticks":   "-1",
	})
	require.Equal(t, DefaultConfig(), bad, "invalid entries keep defaults")
	require.Equal(t, DefaultConfig(), FromMap(nil))
}

func TestValidate(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Length = MaxLength + 1
	require.Error(t, cfg.Validate())

	cfg = DefaultConfig()
	cfg.Start = "glider"
	require.True(t, errors.Is(cfg.Validate(), ErrUnknownStart))

	cfg = DefaultConfig()
	cfg.Density = -0.1
	require.Error(t, cfg.Validate())
}

func TestRegistered(t *testing.T) {
	factory, err := core.Lookup("elementary")
	require.NoError(t, err)
	sim := factory(map[string]string{"length": "31", "h": "8"})
	require.Equal(t, "elementary", sim.Name())
	require.Equal(t, core.Size{W: 31, H: 8}, sim.Size())
	sim.(*Elementary).Row().Release()

	_, err = core.Lookup("nope")
	require.Error(t, err)
}
