//go:build ebiten

package ui

import (
	"fmt"
	"image"
	"image/color"

	"eca/internal/core"
	"eca/internal/render"
	"eca/internal/sims/elementary"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text"
	"golang.org/x/image/font/basicfont"
)

type ruleEditor interface {
	RuleTable() elementary.RuleTable
	SetRule(elementary.Rule)
}

// Overlay draws the eight neighbourhood tiles of the active rule over the
// canvas. Clicking the outcome cell under a tile flips that bit of the rule.
// T toggles the overlay.
type Overlay struct {
	sim     core.Sim
	editor  ruleEditor
	visible bool

	pixel   *ebiten.Image
	outcome [elementary.TableSize]image.Rectangle
}

// NewOverlay constructs an overlay for sim. Sims without a rule table get
// an overlay that never draws.
func NewOverlay(sim core.Sim) *Overlay {
	o := &Overlay{sim: sim, visible: true}
	if editor, ok := sim.(ruleEditor); ok {
		o.editor = editor
	}
	o.pixel = ebiten.NewImage(1, 1)
	o.pixel.Fill(color.White)
	for i := range o.outcome {
		x := tileMargin + i*(tileWidth+tileGap)
		o.outcome[i] = image.Rect(x+tileCell, tileMargin+tileCell+tileRowGap, x+2*tileCell, tileMargin+2*tileCell+tileRowGap)
	}
	return o
}

// Update toggles visibility and applies tile clicks.
func (o *Overlay) Update() {
	if inpututil.IsKeyJustPressed(ebiten.KeyT) {
		o.visible = !o.visible
	}
	if !o.visible || o.editor == nil {
		return
	}
	if !inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		return
	}
	mx, my := ebiten.CursorPosition()
	for i, rect := range o.outcome {
		if pointInRect(mx, my, rect) {
			table := o.editor.RuleTable()
			table.Toggle(i)
			o.editor.SetRule(table.Number())
			return
		}
	}
}

// Draw renders the tiles onto the provided screen.
func (o *Overlay) Draw(screen *ebiten.Image) {
	if !o.visible || o.editor == nil {
		return
	}
	table := o.editor.RuleTable()
	width := elementary.TableSize*(tileWidth+tileGap) - tileGap + 2*tileMargin
	height := 2*tileCell + tileRowGap + 2*tileMargin + labelHeight
	o.fill(screen, image.Rect(0, 0, width, height), color.RGBA{R: 16, G: 16, B: 20, A: 200})

	for i := range table {
		x := tileMargin + i*(tileWidth+tileGap)
		pattern := elementary.Neighborhood(i)
		for j := 0; j < 3; j++ {
			r := image.Rect(x+j*tileCell, tileMargin, x+(j+1)*tileCell, tileMargin+tileCell)
			o.cell(screen, r, pattern[j] == '1')
		}
		o.cell(screen, o.outcome[i], table[i] == elementary.Alive)
	}

	label := fmt.Sprintf("rule %d  (T hides)", table.Number())
	text.Draw(screen, label, basicfont.Face7x13, tileMargin, height-tileMargin/2, color.RGBA{R: 220, G: 220, B: 230, A: 255})
}

func (o *Overlay) cell(dst *ebiten.Image, r image.Rectangle, alive bool) {
	o.fill(dst, r, color.RGBA{R: 90, G: 90, B: 100, A: 255})
	inner := r.Inset(1)
	if alive {
		o.fill(dst, inner, render.AliveColor)
		return
	}
	o.fill(dst, inner, render.DeadColor)
}

func (o *Overlay) fill(dst *ebiten.Image, r image.Rectangle, c color.RGBA) {
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(float64(r.Dx()), float64(r.Dy()))
	op.GeoM.Translate(float64(r.Min.X), float64(r.Min.Y))
	op.ColorM.Scale(float64(c.R)/255.0, float64(c.G)/255.0, float64(c.B)/255.0, float64(c.A)/255.0)
	dst.DrawImage(o.pixel, op)
}

const (
	tileCell    = 12
	tileWidth   = 3 * tileCell
	tileGap     = 10
	tileRowGap  = 4
	tileMargin  = 8
	labelHeight = 16
)
