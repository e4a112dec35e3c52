package app

import (
	"errors"
	"flag"
	"testing"

	"eca/internal/sims/elementary"

	"github.com/stretchr/testify/require"
)

func parse(t *testing.T, args ...string) *Config {
	t.Helper()
	cfg := NewConfig()
	fs := flag.NewFlagSet("ca", flag.ContinueOnError)
	cfg.Bind(fs)
	require.NoError(t, fs.Parse(args))
	return cfg
}

func TestDefaultsProduceValidConfig(t *testing.T) {
	cfg := parse(t)
	ec, err := cfg.Elementary()
	require.NoError(t, err)
	require.Equal(t, elementary.DefaultRule, ec.Rule)
	require.Equal(t, elementary.DefaultLength, ec.Length)
	require.Equal(t, "elementary", cfg.Sim)
}

func TestFlagsRoundTripThroughFactoryMap(t *testing.T) {
	cfg := parse(t, "-rule", "universal", "-length", "64", "-height", "32",
		"-start", "random", "-density", "0.3", "-seed", "5", "-ticks", "2", "-scroll=false")

	ec, err := cfg.Elementary()
	require.NoError(t, err)
	require.Equal(t, ec, elementary.FromMap(cfg.Map()))
	require.Equal(t, elementary.Rule(110), ec.Rule)
}

func TestRejectsOutOfRangeRule(t *testing.T) {
	cfg := parse(t, "-rule", "300")
	_, err := cfg.Elementary()
	require.True(t, errors.Is(err, elementary.ErrRuleRange), "got %v", err)
}

func TestRejectsBadValues(t *testing.T) {
	for _, args := range [][]string{
		{"-start", "glider"},
		{"-length", "0"},
		{"-length", "1001"},
		{"-density", "1.5"},
		{"-ticks", "0"},
		{"-scale", "0"},
	} {
		_, err := parse(t, args...).Elementary()
		require.Error(t, err, "args %v", args)
	}
}
