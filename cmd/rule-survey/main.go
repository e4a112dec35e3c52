package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"runtime"
	"text/tabwriter"
	"time"

	"eca/internal/sims/elementary"
	"eca/internal/survey"
)

func main() {
	log.SetFlags(0)
	log.SetPrefix("rule-survey: ")

	defaults := survey.DefaultOptions()
	length := flag.Int("length", defaults.Length, "number of cells in the row")
	steps := flag.Int("steps", defaults.Steps, "generation budget per rule")
	workers := flag.Int("workers", runtime.NumCPU(), "parallel rule evaluations")
	startFlag := flag.String("start", string(defaults.Start), "starting condition: single or random")
	density := flag.Float64("density", defaults.Density, "alive probability for random starts")
	seed := flag.Int64("seed", defaults.Seed, "seed for random starts")
	canonical := flag.Bool("canonical", false, "only survey the 88 rules that represent their mirror/complement class")
	class := flag.String("class", "", "only print rules of this class (dead, fixed, periodic, chaotic)")
	flag.Parse()

	start, err := elementary.ParseStart(*startFlag)
	if err != nil {
		log.Fatal(err)
	}
	opts := survey.Options{
		Length:  *length,
		Steps:   *steps,
		Workers: *workers,
		Start:   start,
		Density: *density,
		Seed:    *seed,
	}

	rules := survey.AllRules()
	if *canonical {
		rules = survey.CanonicalRules()
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	began := time.Now()
	results, err := survey.Run(ctx, rules, opts)
	if err != nil {
		log.Fatal(err)
	}
	survey.SortByClass(results)

	tw := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "RULE\tCANON\tCLASS\tTRANSIENT\tPERIOD\tALIVE\tDENSITY\tPRESET")
	for _, r := range results {
		if *class != "" && r.Class.String() != *class {
			continue
		}
		name := ""
		if p, ok := elementary.PresetFor(r.Rule); ok {
			name = p.Name
		}
		fmt.Fprintf(tw, "%d\t%d\t%s\t%d\t%d\t%d\t%.3f\t%s\n",
			r.Rule, r.Canonical, r.Class, r.Transient, r.Period, r.Population, r.Density, name)
	}
	if err := tw.Flush(); err != nil {
		log.Fatal(err)
	}

	counts := survey.Tally(results)
	fmt.Printf("\n%d rules in %s: %d dead, %d fixed, %d periodic, %d chaotic\n",
		len(results), time.Since(began).Round(time.Millisecond),
		counts[survey.ClassDead], counts[survey.ClassFixed], counts[survey.ClassPeriodic], counts[survey.ClassChaotic])
}
