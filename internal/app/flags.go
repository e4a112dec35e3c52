package app

import (
	"flag"
	"fmt"
	"strconv"

	"eca/internal/sims/elementary"
)

// Config represents the command-line parameters for the application.
type Config struct {
	Sim   string
	Scale int
	TPS   int
	Seed  int64
	HUD   bool

	Rule    string
	Length  int
	Height  int
	Start   string
	Density float64
	Ticks   int
	Scroll  bool
}

// NewConfig returns a Config populated with sensible defaults.
func NewConfig() *Config {
	d := elementary.DefaultConfig()
	return &Config{
		Sim:     "elementary",
		Scale:   4,
		TPS:     60,
		Seed:    d.Seed,
		HUD:     true,
		Rule:    strconv.Itoa(int(d.Rule)),
		Length:  d.Length,
		Height:  d.Height * 2,
		Start:   string(d.Start),
		Density: d.Density,
		Ticks:   d.TicksPerFrame,
		Scroll:  d.Scroll,
	}
}

// Bind attaches the configuration to the provided FlagSet.
func (c *Config) Bind(fs *flag.FlagSet) {
	fs.StringVar(&c.Sim, "sim", c.Sim, "simulation to run")
	fs.IntVar(&c.Scale, "scale", c.Scale, "pixel scale multiplier")
	fs.IntVar(&c.TPS, "tps", c.TPS, "frames per second")
	fs.Int64Var(&c.Seed, "seed", c.Seed, "seed for random starting conditions")
	fs.BoolVar(&c.HUD, "hud", c.HUD, "show the parameter panel")
	fs.StringVar(&c.Rule, "rule", c.Rule, "rule number 0-255 or preset name")
	fs.IntVar(&c.Length, "length", c.Length, "number of cells in the row")
	fs.IntVar(&c.Height, "height", c.Height, "number of generations shown")
	fs.StringVar(&c.Start, "start", c.Start, "starting condition: single or random")
	fs.Float64Var(&c.Density, "density", c.Density, "alive probability for random starts")
	fs.IntVar(&c.Ticks, "ticks", c.Ticks, "generations per frame")
	fs.BoolVar(&c.Scroll, "scroll", c.Scroll, "scroll once the canvas is full instead of stopping")
}

// Elementary converts the flags into an automaton configuration, rejecting
// out-of-range values.
func (c *Config) Elementary() (elementary.Config, error) {
	rule, err := elementary.ParseRule(c.Rule)
	if err != nil {
		return elementary.Config{}, err
	}
	start, err := elementary.ParseStart(c.Start)
	if err != nil {
		return elementary.Config{}, err
	}
	cfg := elementary.Config{
		Length:        c.Length,
		Height:        c.Height,
		Rule:          rule,
		Start:         start,
		Density:       c.Density,
		Seed:          c.Seed,
		TicksPerFrame: c.Ticks,
		Scroll:        c.Scroll,
	}
	if err := cfg.Validate(); err != nil {
		return elementary.Config{}, fmt.Errorf("invalid configuration: %w", err)
	}
	if c.Scale < 1 {
		return elementary.Config{}, fmt.Errorf("invalid configuration: scale %d must be positive", c.Scale)
	}
	return cfg, nil
}

// Map renders the configuration as factory options.
func (c *Config) Map() map[string]string {
	return map[string]string{
		"rule":    c.Rule,
		"length":  strconv.Itoa(c.Length),
		"h":       strconv.Itoa(c.Height),
		"start":   c.Start,
		"density": strconv.FormatFloat(c.Density, 'f', -1, 64),
		"seed":    strconv.FormatInt(c.Seed, 10),
		"ticks":   strconv.Itoa(c.Ticks),
		"scroll":  strconv.FormatBool(c.Scroll),
	}
}
