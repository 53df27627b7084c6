//go:build ebiten

package app

import (
	"image/color"
	"log/slog"
	"time"

	"socio-ca/internal/core"
	"socio-ca/internal/render"
	"socio-ca/internal/ui"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

type palettized interface {
	Palette() []color.RGBA
}

// Game adapts a core simulation to the ebiten.Game interface. It only reads
// the simulation through Cells and steps it; it never edits cells.
type Game struct {
	sim     core.Sim
	painter *render.GridPainter
	hud     *ui.HUD
	overlay *ui.Overlay
	pacer   *core.FixedStep
	palette []color.RGBA
	log     *slog.Logger

	scale    int
	running  bool
	tickOnce bool
	seed     int64
}

// New constructs a Game for the provided simulation.
func New(sim core.Sim, cfg *Config, logger *slog.Logger) *Game {
	size := sim.Size()
	g := &Game{
		sim:     sim,
		painter: render.NewGridPainter(size.W, size.H),
		hud:     ui.NewHUD(sim, cfg.HUDWidth),
		overlay: ui.NewOverlay(sim, cfg.Scale),
		pacer:   core.NewFixedStep(cfg.SPS),
		log:     logger,
		scale:   cfg.Scale,
		seed:    cfg.Seed,
	}
	if p, ok := sim.(palettized); ok {
		g.palette = p.Palette()
	}
	return g
}

// Reset reinitializes the simulation state with the provided seed.
func (g *Game) Reset(seed int64) {
	g.seed = seed
	g.sim.Reset(seed)
	g.tickOnce = false
	g.log.Info("reset", "seed", seed)
}

var ruleKeys = []ebiten.Key{ebiten.KeyDigit1, ebiten.KeyDigit2, ebiten.KeyDigit3}

// Update handles per-frame logic and advances the simulation.
func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyQ) || inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		g.running = !g.running
		g.pacer.Reset()
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
	if setter, ok := g.sim.(core.IntParameterSetter); ok {
		for i, key := range ruleKeys {
			if inpututil.IsKeyJustPressed(key) && setter.SetIntParameter("rule_index", i) {
				g.log.Info("rule selected", "index", i)
			}
		}
	}

	g.overlay.Update()
	g.hud.Update(g.gridWidth())

	if g.tickOnce || (g.running && g.pacer.ShouldStep()) {
		g.tickOnce = false
		if err := g.sim.Step(); err != nil {
			return err
		}
	}
	return nil
}

// Draw renders the current simulation state.
func (g *Game) Draw(screen *ebiten.Image) {
	g.painter.Blit(screen, g.sim.Cells(), g.palette, g.scale)
	g.overlay.Draw(screen)
	g.hud.Draw(screen, g.gridWidth(), g.scale)
}

// Layout returns the logical screen size.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.WindowSize()
}

// WindowSize is the grid view plus the HUD panel.
func (g *Game) WindowSize() (int, int) {
	h := g.sim.Size().H * g.scale
	if g.hud.Width() > 0 && h < 520 {
		h = 520
	}
	return g.gridWidth() + g.hud.Width(), h
}

func (g *Game) gridWidth() int { return g.sim.Size().W * g.scale }
