package main

import (
	"bufio"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"eca/internal/core"
	"eca/internal/render"
	"eca/internal/sims/elementary"
)

func main() {
	log.SetFlags(0)
	log.SetPrefix("eca: ")

	ruleFlag := flag.String("rule", "30", "rule number 0-255 or preset name")
	length := flag.Int("length", elementary.DefaultLength, "number of cells in the row")
	steps := flag.Int("steps", 50, "generations to compute")
	startFlag := flag.String("start", string(elementary.StartSingle), "starting condition: single or random")
	density := flag.Float64("density", 0.5, "alive probability for random starts")
	seed := flag.Int64("seed", 1, "seed for random starts")
	tps := flag.Int("tps", 0, "generations printed per second, 0 prints as fast as possible")
	out := flag.String("out", "", "also write every generation to an image (.png or .pgm)")
	scale := flag.Int("scale", 4, "pixels per cell in PNG output")
	alive := flag.String("alive", "█", "glyph for alive cells")
	dead := flag.String("dead", " ", "glyph for dead cells")
	quiet := flag.Bool("quiet", false, "do not print generations")
	presets := flag.Bool("presets", false, "list rule presets and exit")
	flag.Parse()

	if *presets {
		for _, p := range elementary.Presets {
			fmt.Printf("%-12s %3d  %s  %s\n", p.Name, p.Rule, elementary.NewRuleTable(p.Rule), p.Note)
		}
		return
	}

	rule, err := elementary.ParseRule(*ruleFlag)
	if err != nil {
		log.Fatal(err)
	}
	start, err := elementary.ParseStart(*startFlag)
	if err != nil {
		log.Fatal(err)
	}
	if *length < 1 || *length > elementary.MaxLength {
		log.Fatalf("length %d outside [1, %d]", *length, elementary.MaxLength)
	}
	if *steps < 0 {
		log.Fatalf("steps %d must not be negative", *steps)
	}
	if *density < 0 || *density > 1 {
		log.Fatalf("density %g outside [0, 1]", *density)
	}
	aliveGlyph, deadGlyph, err := glyphs(*alive, *dead)
	if err != nil {
		log.Fatal(err)
	}

	row := elementary.NewRow()
	defer row.Release()
	row.SetRule(rule)
	row.Resize(*length)
	switch start {
	case elementary.StartRandom:
		row.Randomize(core.NewRNG(*seed), *density)
	default:
		row.Seed()
	}

	canvas := core.NewByteGrid(*length, *steps+1)
	w := bufio.NewWriter(os.Stdout)
	defer w.Flush()

	var pace *core.FixedStep
	if *tps > 0 {
		pace = core.NewFixedStep(*tps)
	}
	for gen := 0; gen <= *steps; gen++ {
		if gen > 0 {
			row.Step()
		}
		cells := hostCells(row)
		canvas.SetRow(gen, cells)
		if *quiet {
			continue
		}
		if pace != nil {
			pace.Wait()
		}
		fmt.Fprintln(w, render.Text(cells, aliveGlyph, deadGlyph))
		if pace != nil {
			w.Flush()
		}
	}

	if *out != "" {
		if err := writeImage(*out, canvas, *scale); err != nil {
			log.Fatal(err)
		}
	}
}

// hostCells reads the current generation the way an external host does:
// by offset into the process-wide memory region.
func hostCells(row *elementary.Row) []uint8 {
	mem := core.Memory().Bytes()
	return mem[row.Offset() : row.Offset()+row.Len()]
}

func glyphs(alive, dead string) (rune, rune, error) {
	a, n := utf8.DecodeRuneInString(alive)
	if a == utf8.RuneError || n != len(alive) {
		return 0, 0, fmt.Errorf("alive glyph %q must be a single character", alive)
	}
	d, n := utf8.DecodeRuneInString(dead)
	if d == utf8.RuneError || n != len(dead) {
		return 0, 0, fmt.Errorf("dead glyph %q must be a single character", dead)
	}
	return a, d, nil
}

func writeImage(path string, canvas *core.ByteGrid, scale int) (err error) {
	ext := strings.ToLower(filepath.Ext(path))
	if ext != ".png" && ext != ".pgm" {
		return fmt.Errorf("unsupported image format %q (want .png or .pgm)", ext)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("close %s: %w", path, cerr)
		}
	}()
	if ext == ".png" {
		return render.WritePNG(f, canvas, scale)
	}
	return render.WritePGM(f, canvas)
}
