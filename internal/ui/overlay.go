//go:build ebiten

package ui

import (
	"image/color"

	"socio-ca/internal/core"
	"socio-ca/internal/render"
	"socio-ca/internal/sims/socio"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

type attributeFieldProvider interface {
	AttributeField(at socio.Attribute) []float32
}

// Overlay draws an optional attribute heat map on top of the status view.
type Overlay struct {
	sim     core.Sim
	scale   int
	painter *render.GridPainter

	active bool
	attr   socio.Attribute
}

// NewOverlay constructs a new overlay instance.
func NewOverlay(sim core.Sim, scale int) *Overlay {
	size := sim.Size()
	return &Overlay{sim: sim, scale: scale, painter: render.NewGridPainter(size.W, size.H)}
}

// Update toggles the heat map: I income, D density, A age. Pressing the
// key of the visible attribute hides it.
func (o *Overlay) Update() {
	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeyI):
		o.toggle(socio.AttrIncome)
	case inpututil.IsKeyJustPressed(ebiten.KeyD):
		o.toggle(socio.AttrDensity)
	case inpututil.IsKeyJustPressed(ebiten.KeyA):
		o.toggle(socio.AttrAge)
	}
}

func (o *Overlay) toggle(at socio.Attribute) {
	if o.active && o.attr == at {
		o.active = false
		return
	}
	o.active = true
	o.attr = at
}

// Draw renders the overlay onto the provided screen.
func (o *Overlay) Draw(screen *ebiten.Image) {
	if !o.active {
		return
	}
	provider, ok := o.sim.(attributeFieldProvider)
	if !ok {
		return
	}
	o.painter.BlitHeat(screen, provider.AttributeField(o.attr), heatTint(o.attr), o.scale)
}

func heatTint(at socio.Attribute) color.RGBA {
	switch at {
	case socio.AttrIncome:
		return color.RGBA{R: 64, G: 164, B: 223}
	case socio.AttrDensity:
		return color.RGBA{R: 255, G: 120, B: 40}
	default:
		return color.RGBA{R: 190, G: 120, B: 230}
	}
}
