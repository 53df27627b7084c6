//go:build ebiten

package ui

import (
	"fmt"
	"image"
	"image/color"
	"strconv"

	"socio-ca/internal/core"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text"
	"golang.org/x/image/font/basicfont"
)

// HUD renders the parameter panel to the right of the simulation view.
type HUD struct {
	sim        core.Sim
	width      int
	panel      *ebiten.Image
	lastHeight int
	snapshot   core.ParameterSnapshot

	controls     []hudControlState
	setter       core.IntParameterSetter
	panelOffsetX int
	title        string

	pixel *ebiten.Image
}

// NewHUD constructs a HUD for the provided simulation and panel width.
func NewHUD(sim core.Sim, width int) *HUD {
	if width < 0 {
		width = 0
	}
	h := &HUD{sim: sim, width: width, title: buildTitle(sim)}
	if width > 0 {
		h.pixel = ebiten.NewImage(1, 1)
		h.pixel.Fill(color.White)
	}
	if provider, ok := sim.(core.ParameterControlsProvider); ok {
		for _, ctrl := range provider.ParameterControls() {
			h.controls = append(h.controls, hudControlState{control: ctrl})
		}
	}
	if setter, ok := sim.(core.IntParameterSetter); ok {
		h.setter = setter
	}
	return h
}

// Width reports the panel width in pixels.
func (h *HUD) Width() int {
	if h == nil {
		return 0
	}
	return h.width
}

// Update refreshes the cached parameter snapshot from the simulation and
// handles clicks on the adjustment buttons.
func (h *HUD) Update(panelOffsetX int) {
	if h == nil {
		return
	}
	h.panelOffsetX = panelOffsetX
	provider, ok := h.sim.(core.ParameterProvider)
	if !ok {
		h.snapshot = core.ParameterSnapshot{}
		return
	}
	h.snapshot = provider.Parameters()
	h.refreshControlValues()
	h.handleInput()
}

// Draw paints the HUD panel anchored to the right edge of the simulation view.
func (h *HUD) Draw(screen *ebiten.Image, offsetX int, scale int) {
	if h == nil || h.width <= 0 {
		return
	}
	if scale <= 0 {
		scale = 1
	}
	height := h.sim.Size().H * scale
	if height < minPanelHeight {
		height = minPanelHeight
	}
	if h.panel == nil || h.lastHeight != height {
		h.panel = ebiten.NewImage(h.width, height)
		h.lastHeight = height
	}
	h.panel.Fill(color.RGBA{R: 16, G: 16, B: 20, A: 255})
	h.drawPanel()
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(float64(offsetX), 0)
	screen.DrawImage(h.panel, op)
}

func buildTitle(sim core.Sim) string {
	if sim == nil || sim.Name() == "" {
		return "Controls"
	}
	return fmt.Sprintf("%s automaton", sim.Name())
}

func (h *HUD) refreshControlValues() {
	for i := range h.controls {
		state := &h.controls[i]
		param, ok := h.snapshot.Lookup(state.control.Key)
		state.hasValue = ok
		if !ok {
			continue
		}
		state.display = param.Value
		parsed, err := strconv.Atoi(param.Value)
		if err != nil {
			state.hasValue = false
			continue
		}
		state.value = parsed
	}
}

func (h *HUD) handleInput() {
	if len(h.controls) == 0 || h.setter == nil {
		return
	}
	if !inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		return
	}
	mx, my := ebiten.CursorPosition()
	if mx < h.panelOffsetX {
		return
	}
	px := mx - h.panelOffsetX
	for i := range h.controls {
		state := &h.controls[i]
		if pointInRect(px, my, state.minusRect) {
			h.applyAdjustment(state, -1)
			return
		}
		if pointInRect(px, my, state.plusRect) {
			h.applyAdjustment(state, 1)
			return
		}
	}
}

func (h *HUD) applyAdjustment(state *hudControlState, direction int) {
	target, ok := h.target(state, direction)
	if !ok {
		return
	}
	if h.setter.SetIntParameter(state.control.Key, target) {
		state.value = target
	}
}

func (h *HUD) target(state *hudControlState, direction int) (int, bool) {
	if state == nil || direction == 0 || h.setter == nil {
		return 0, false
	}
	step := state.control.Step
	if step <= 0 {
		step = 1
	}
	target := state.value + direction*step
	if target < state.control.Min || target > state.control.Max {
		return 0, false
	}
	return target, true
}

func (h *HUD) drawPanel() {
	face := basicfont.Face7x13
	y := panelPadding + headerBaseline
	text.Draw(h.panel, h.title, face, panelPadding, y, titleColor)
	y += infoSpacing / 2
	for _, group := range h.snapshot.Groups {
		y += groupGap
		text.Draw(h.panel, group.Name, face, panelPadding, y, groupColor)
		for _, p := range group.Params {
			y += rowHeight
			text.Draw(h.panel, p.Label, face, panelPadding+indent, y, labelColor)
			bounds := text.BoundString(face, p.Value)
			text.Draw(h.panel, p.Value, face, h.width-panelPadding-bounds.Dx(), y, valueColor)
		}
	}
	y += infoSpacing
	for i := range h.controls {
		state := &h.controls[i]
		top := y + i*lineHeight
		buttonY := top + (lineHeight-buttonSize)/2
		state.plusRect = image.Rect(h.width-panelPadding-buttonSize, buttonY, h.width-panelPadding, buttonY+buttonSize)
		state.minusRect = image.Rect(state.plusRect.Min.X-buttonGap-buttonSize, buttonY, state.plusRect.Min.X-buttonGap, buttonY+buttonSize)
		text.Draw(h.panel, state.control.Label, face, panelPadding, top+labelBaseline, labelColor)
		if state.hasValue {
			bounds := text.BoundString(face, state.display)
			text.Draw(h.panel, state.display, face, state.minusRect.Min.X-buttonGap-bounds.Dx(), top+labelBaseline, valueColor)
		}
		_, canMinus := h.target(state, -1)
		_, canPlus := h.target(state, 1)
		h.drawButton(state.minusRect, "-", state.hasValue && canMinus)
		h.drawButton(state.plusRect, "+", state.hasValue && canPlus)
	}
	if len(h.controls) > 0 {
		y += len(h.controls) * lineHeight
	}
	for _, line := range keyHelp {
		y += rowHeight
		text.Draw(h.panel, line, face, panelPadding, y, helpColor)
	}
}

func (h *HUD) drawButton(rect image.Rectangle, label string, enabled bool) {
	if h.pixel == nil {
		return
	}
	bg := color.RGBA{R: 54, G: 56, B: 64, A: 255}
	fg := color.RGBA{R: 230, G: 230, B: 240, A: 255}
	if !enabled {
		bg = color.RGBA{R: 32, G: 34, B: 40, A: 255}
		fg = color.RGBA{R: 120, G: 120, B: 130, A: 255}
	}
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(float64(rect.Dx()), float64(rect.Dy()))
	op.GeoM.Translate(float64(rect.Min.X), float64(rect.Min.Y))
	op.ColorScale.ScaleWithColor(bg)
	h.panel.DrawImage(h.pixel, op)

	face := basicfont.Face7x13
	bounds := text.BoundString(face, label)
	x := rect.Min.X + (rect.Dx()-bounds.Dx())/2
	y := rect.Min.Y + (rect.Dy()-bounds.Dy())/2 + bounds.Dy()
	text.Draw(h.panel, label, face, x, y, fg)
}

func pointInRect(x, y int, rect image.Rectangle) bool {
	return x >= rect.Min.X && x < rect.Max.X && y >= rect.Min.Y && y < rect.Max.Y
}

type hudControlState struct {
	control  core.ParameterControl
	value    int
	display  string
	hasValue bool

	minusRect image.Rectangle
	plusRect  image.Rectangle
}

var keyHelp = []string{
	"1/2/3  select rule",
	"N      step once",
	"Space  run / pause",
	"I D A  heat overlay",
	"R / S  reset / reseed",
}

var (
	titleColor = color.RGBA{R: 200, G: 200, B: 210, A: 255}
	groupColor = color.RGBA{R: 150, G: 170, B: 200, A: 255}
	labelColor = color.RGBA{R: 220, G: 220, B: 230, A: 255}
	valueColor = color.RGBA{R: 240, G: 240, B: 200, A: 255}
	helpColor  = color.RGBA{R: 140, G: 140, B: 150, A: 255}
)

const (
	panelPadding   = 12
	indent         = 8
	rowHeight      = 16
	groupGap       = 10
	lineHeight     = 36
	buttonSize     = 24
	buttonGap      = 6
	headerBaseline = 18
	labelBaseline  = 24
	infoSpacing    = 36
	minPanelHeight = 520
)
