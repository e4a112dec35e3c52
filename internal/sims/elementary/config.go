package elementary

import (
	"errors"
	"fmt"
	"strconv"
)

// Start selects how a row is seeded on reset.
type Start string

const (
	// StartSingle seeds one Alive cell at the midpoint.
	StartSingle Start = "single"
	// StartRandom sets each cell Alive with probability Config.Density.
	StartRandom Start = "random"
)

// MaxLength bounds the row length hosts accept.
const MaxLength = 1000

// ErrUnknownStart reports an unsupported starting condition.
var ErrUnknownStart = errors.New("unknown starting condition")

// ParseStart validates a starting condition name.
func ParseStart(s string) (Start, error) {
	switch Start(s) {
	case StartSingle, StartRandom:
		return Start(s), nil
	}
	return "", fmt.Errorf("%w %q (want %q or %q)", ErrUnknownStart, s, StartSingle, StartRandom)
}

// Config holds parameters for the elementary cellular automaton host.
type Config struct {
	Length int
	Height int
	Rule   Rule

	Start   Start
	Density float64
	Seed    int64

	// TicksPerFrame is the number of generations computed per Step.
	TicksPerFrame int
	// Scroll keeps the canvas moving once it is full; otherwise stepping
	// stops at the last canvas line.
	Scroll bool
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		Length:        DefaultLength,
		Height:        DefaultLength,
		Rule:          DefaultRule,
		Start:         StartSingle,
		Density:       0.5,
		Seed:          1,
		TicksPerFrame: 5,
		Scroll:        true,
	}
}

// FromMap populates a Config from a string map. Invalid entries keep their
// defaults.
func FromMap(cfg map[string]string) Config {
	c := DefaultConfig()
	if cfg == nil {
		return c
	}
	for _, key := range []string{"w", "length"} {
		if v, ok := cfg[key]; ok {
			if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 && parsed <= MaxLength {
				c.Length = parsed
			}
		}
	}
	if v, ok := cfg["h"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			c.Height = parsed
		}
	}
	if v, ok := cfg["rule"]; ok {
		if parsed, err := ParseRule(v); err == nil {
			c.Rule = parsed
		}
	}
	if v, ok := cfg["start"]; ok {
		if parsed, err := ParseStart(v); err == nil {
			c.Start = parsed
		}
	}
	if v, ok := cfg["density"]; ok {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil && parsed >= 0 && parsed <= 1 {
			c.Density = parsed
		}
	}
	if v, ok := cfg["seed"]; ok {
		if parsed, err := strconv.ParseInt(v, 10, 64); err == nil {
			c.Seed = parsed
		}
	}
	if v, ok := cfg["ticks"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			c.TicksPerFrame = parsed
		}
	}
	if v, ok := cfg["scroll"]; ok {
		if parsed, err := strconv.ParseBool(v); err == nil {
			c.Scroll = parsed
		}
	}
	return c
}

// Validate reports the first out-of-range field.
func (c Config) Validate() error {
	if c.Length < 1 || c.Length > MaxLength {
		return fmt.Errorf("length %d outside [1, %d]", c.Length, MaxLength)
	}
	if c.Height < 1 {
		return fmt.Errorf("height %d must be positive", c.Height)
	}
	if _, err := ParseStart(string(c.Start)); err != nil {
		return err
	}
	if c.Density < 0 || c.Density > 1 {
		return fmt.Errorf("density %g outside [0, 1]", c.Density)
	}
	if c.TicksPerFrame < 1 {
		return fmt.Errorf("ticks per frame %d must be positive", c.TicksPerFrame)
	}
	return nil
}
