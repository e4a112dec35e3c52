//go:build ebiten

package app

import (
	"image/color"
	"time"

	"eca/internal/core"
	"eca/internal/render"
	"eca/internal/sims/elementary"
	"eca/internal/ui"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

type ruleSwitcher interface {
	RuleTable() elementary.RuleTable
	SetRule(elementary.Rule)
}

// Game adapts a core simulation to the ebiten.Game interface.
type Game struct {
	sim     core.Sim
	painter *render.GridPainter
	overlay *ui.Overlay
	hud     *ui.HUD

	onColor  color.Color
	offColor color.Color

	scale    int
	paused   bool
	tickOnce bool
	seed     int64
	preset   int
}

// New constructs a Game for the provided simulation.
func New(sim core.Sim, cfg *Config) *Game {
	size := sim.Size()
	g := &Game{
		sim:      sim,
		painter:  render.NewGridPainter(size.W, size.H),
		overlay:  ui.NewOverlay(sim),
		onColor:  render.AliveColor,
		offColor: render.DeadColor,
		scale:    cfg.Scale,
		seed:     cfg.Seed,
		preset:   -1,
	}
	if cfg.HUD {
		g.hud = ui.NewHUD(sim, ui.HUDWidth)
	}
	return g
}

// Reset reinitializes the simulation state with the provided seed.
func (g *Game) Reset(seed int64) {
	g.seed = seed
	g.sim.Reset(seed)
	g.tickOnce = false
}

// Update handles per-frame logic and advances the simulation.
func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyQ) || inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		g.paused = !g.paused
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEnter) {
		g.paused = false
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyN) {
		g.tickOnce = true
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		g.Reset(g.seed)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyS) {
		g.Reset(time.Now().UnixNano())
	}
	if rs, ok := g.sim.(ruleSwitcher); ok {
		g.handleRuleKeys(rs)
	}

	g.overlay.Update()
	g.hud.Update(g.canvasWidth())

	if !g.paused || g.tickOnce {
		g.sim.Step()
		g.tickOnce = false
	}
	return nil
}

func (g *Game) handleRuleKeys(rs ruleSwitcher) {
	table := rs.RuleTable()
	rule := table.Number()
	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeyArrowUp):
		rs.SetRule(rule + 1)
	case inpututil.IsKeyJustPressed(ebiten.KeyArrowDown):
		rs.SetRule(rule - 1)
	case inpututil.IsKeyJustPressed(ebiten.KeyP):
		g.preset = (g.preset + 1) % len(elementary.Presets)
		rs.SetRule(elementary.Presets[g.preset].Rule)
	}
}

func (g *Game) canvasWidth() int {
	return g.sim.Size().W * g.scale
}

// Draw renders the current simulation state.
func (g *Game) Draw(screen *ebiten.Image) {
	size := g.sim.Size()
	g.painter.Blit(screen, g.sim.Cells(), size.W, size.H, g.onColor, g.offColor, g.scale)
	g.overlay.Draw(screen)
	g.hud.Draw(screen, g.canvasWidth(), g.scale)
}

// Layout returns the logical screen size: the scaled canvas plus the panel.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	s := g.sim.Size()
	return s.W*g.scale + g.hud.Width(), s.H * g.scale
}
