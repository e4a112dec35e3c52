package survey

import (
	"context"
	"errors"
	"testing"

	"eca/internal/sims/elementary"

	"github.com/stretchr/testify/require"
)

func testOptions() Options {
	opts := DefaultOptions()
	opts.Length = 31
	opts.Steps = 128
	opts.Workers = 4
	return opts
}

func TestAnalyzeKnownRules(t *testing.T) {
	opts := testOptions()

	cases := []struct {
		rule      elementary.Rule
		class     Class
		period    int
		transient int
	}{
		{rule: 0, class: ClassDead, period: 1, transient: 1},
		{rule: 204, class: ClassFixed, period: 1, transient: 0},
		{rule: 51, class: ClassPeriodic, period: 2, transient: 0},
	}
	for _, tc := range cases {
		res := Analyze(tc.rule, opts)
		require.Equalf(t, tc.class, res.Class, "rule %d", tc.rule)
		require.Equalf(t, tc.period, res.Period, "rule %d", tc.rule)
		require.Equalf(t, tc.transient, res.Transient, "rule %d", tc.rule)
	}

	fixed := Analyze(204, opts)
	require.Equal(t, 1, fixed.Population)
	require.InDelta(t, 1.0/31, fixed.Density, 1e-9)
}

func TestAnalyzeRandomStartDeterministic(t *testing.T) {
	opts := testOptions()
	opts.Start = elementary.StartRandom
	opts.Seed = 11

	a := Analyze(30, opts)
	b := Analyze(30, opts)
	require.Equal(t, a, b)
}

func TestRunIndependentOfWorkers(t *testing.T) {
	opts := testOptions()
	opts.Workers = 1
	serial, err := Run(context.Background(), AllRules(), opts)
	require.NoError(t, err)
	require.Len(t, serial, 256)

	opts.Workers = 8
	parallel, err := Run(context.Background(), AllRules(), opts)
	require.NoError(t, err)
	require.Equal(t, serial, parallel)

	for i, res := range serial {
		require.Equal(t, elementary.Rule(i), res.Rule)
	}
}

func TestEquivalentRulesShareClass(t *testing.T) {
	opts := testOptions()
	// A single seed is mirror symmetric, so mirrored rules behave alike.
	for _, r := range AllRules() {
		a := Analyze(r, opts)
		b := Analyze(r.Mirror(), opts)
		require.Equalf(t, a.Class, b.Class, "rule %d vs mirror %d", r, r.Mirror())
		require.Equal(t, a.Canonical, b.Canonical)
	}
}

func TestRunCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := Run(ctx, AllRules(), testOptions())
	require.True(t, errors.Is(err, context.Canceled), "got %v", err)
}

func TestRunRejectsBadOptions(t *testing.T) {
	opts := testOptions()
	opts.Length = 0
	_, err := Run(context.Background(), AllRules(), opts)
	require.Error(t, err)

	opts = testOptions()
	opts.Steps = 0
	_, err = Run(context.Background(), AllRules(), opts)
	require.Error(t, err)
}

func TestCanonicalRules(t *testing.T) {
	rules := CanonicalRules()
	require.Len(t, rules, 88)
	require.Equal(t, elementary.Rule(0), rules[0])
}

func TestTallyAndSort(t *testing.T) {
	results := []Result{
		{Rule: 30, Class: ClassChaotic},
		{Rule: 51, Class: ClassPeriodic, Period: 2},
		{Rule: 0, Class: ClassDead, Period: 1},
		{Rule: 204, Class: ClassFixed, Period: 1},
		{Rule: 8, Class: ClassDead, Period: 1},
	}
	counts := Tally(results)
	require.Equal(t, 2, counts[ClassDead])
	require.Equal(t, 1, counts[ClassChaotic])

	SortByClass(results)
	got := make([]elementary.Rule, len(results))
	for i, r := range results {
		got[i] = r.Rule
	}
	require.Equal(t, []elementary.Rule{0, 8, 204, 51, 30}, got)
	require.Equal(t, "periodic", ClassPeriodic.String())
}
