//go:build ebiten

package main

import (
	"errors"
	"flag"
	"log"

	"eca/internal/app"
	"eca/internal/core"
	_ "eca/internal/sims/elementary"
	"eca/internal/ui"

	"github.com/hajimehoshi/ebiten/v2"
)

func main() {
	cfg := app.NewConfig()
	cfg.Bind(flag.CommandLine)
	flag.Parse()

	if _, err := cfg.Elementary(); err != nil {
		log.Fatal(err)
	}
	factory, err := core.Lookup(cfg.Sim)
	if err != nil {
		log.Fatal(err)
	}

	sim := factory(cfg.Map())
	game := app.New(sim, cfg)
	size := sim.Size()

	width := size.W * cfg.Scale
	if cfg.HUD {
		width += ui.HUDWidth
	}
	ebiten.SetWindowTitle("eca — " + sim.Name())
	ebiten.SetTPS(cfg.TPS)
	ebiten.SetWindowSize(width, size.H*cfg.Scale)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	if err := ebiten.RunGame(game); err != nil && !errors.Is(err, ebiten.Termination) {
		log.Fatal(err)
	}
}
