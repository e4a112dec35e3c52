// Package survey classifies elementary rules by running each one from a
// fixed starting condition and watching for the first repeated generation.
package survey

import (
	"context"
	"fmt"
	"runtime"
	"sort"

	"eca/internal/core"
	"eca/internal/sims/elementary"

	"golang.org/x/sync/errgroup"
)

// Class is the long-run behaviour observed for a rule.
type Class int

const (
	// ClassDead means every cell died.
	ClassDead Class = iota
	// ClassFixed means the row stopped changing with cells alive.
	ClassFixed
	// ClassPeriodic means the row entered a cycle longer than one generation.
	ClassPeriodic
	// ClassChaotic means no generation repeated within the step budget.
	ClassChaotic
)

func (c Class) String() string {
	switch c {
	case ClassDead:
		return "dead"
	case ClassFixed:
		return "fixed"
	case ClassPeriodic:
		return "periodic"
	case ClassChaotic:
		return "chaotic"
	}
	return fmt.Sprintf("Class(%d)", int(c))
}

// Options controls a survey run.
type Options struct {
	Length  int
	Steps   int
	Workers int

	Start   elementary.Start
	Density float64
	Seed    int64
}

// DefaultOptions returns the settings used by the rule-survey command.
func DefaultOptions() Options {
	return Options{
		Length:  elementary.DefaultLength,
		Steps:   512,
		Workers: runtime.NumCPU(),
		Start:   elementary.StartSingle,
		Density: 0.5,
		Seed:    1,
	}
}

// Result summarises one rule.
type Result struct {
	Rule      elementary.Rule
	Canonical elementary.Rule
	Class     Class

	// Transient is the generation at which the cycle was entered and Period
	// its length. Both are zero for ClassChaotic.
	Transient int
	Period    int

	// Population is the number of Alive cells in the last generation and
	// Density its share of the row.
	Population int
	Density    float64
}

// Analyze runs one rule to completion or to the step budget.
func Analyze(rule elementary.Rule, opts Options) Result {
	mem := core.NewArena(elementary.Reserved + opts.Length)
	row := elementary.NewRowIn(mem, opts.Length, rule)
	defer row.Release()
	if opts.Start == elementary.StartRandom {
		row.Randomize(core.NewRNG(opts.Seed), opts.Density)
	}

	res := Result{Rule: rule, Canonical: rule.Canonical(), Class: ClassChaotic}
	seen := map[string]int{string(row.Cells()): 0}
	for gen := 1; gen <= opts.Steps; gen++ {
		row.Step()
		key := string(row.Cells())
		if first, ok := seen[key]; ok {
			res.Transient = first
			res.Period = gen - first
			res.Class = ClassPeriodic
			if res.Period == 1 {
				res.Class = ClassFixed
			}
			break
		}
		seen[key] = gen
	}

	res.Population = row.Population()
	if opts.Length > 0 {
		res.Density = float64(res.Population) / float64(opts.Length)
	}
	if res.Class == ClassFixed && res.Population == 0 {
		res.Class = ClassDead
	}
	return res
}

// Run analyses rules on a bounded pool of workers. Results come back in
// the order of rules. Cancelling ctx stops the remaining work.
func Run(ctx context.Context, rules []elementary.Rule, opts Options) ([]Result, error) {
	if opts.Length < 1 {
		return nil, fmt.Errorf("survey: length %d must be positive", opts.Length)
	}
	if opts.Steps < 1 {
		return nil, fmt.Errorf("survey: steps %d must be positive", opts.Steps)
	}
	workers := opts.Workers
	if workers <= 0 {
		workers = 1
	}

	results := make([]Result, len(rules))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, rule := range rules {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			results[i] = Analyze(rule, opts)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("survey: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("survey: %w", err)
	}
	return results, nil
}

// AllRules lists rules 0 through 255.
func AllRules() []elementary.Rule {
	rules := make([]elementary.Rule, 256)
	for i := range rules {
		rules[i] = elementary.Rule(i)
	}
	return rules
}

// CanonicalRules lists the 88 rules that are their own canonical form.
func CanonicalRules() []elementary.Rule {
	var rules []elementary.Rule
	for _, r := range AllRules() {
		if r.Canonical() == r {
			rules = append(rules, r)
		}
	}
	return rules
}

// Tally counts results per class.
func Tally(results []Result) map[Class]int {
	counts := map[Class]int{}
	for _, r := range results {
		counts[r.Class]++
	}
	return counts
}

// SortByClass orders results by class, then period, then rule number.
func SortByClass(results []Result) {
	sort.SliceStable(results, func(i, j int) bool {
		a, b := results[i], results[j]
		if a.Class != b.Class {
			return a.Class < b.Class
		}
		if a.Period != b.Period {
			return a.Period < b.Period
		}
		return a.Rule < b.Rule
	})
}
