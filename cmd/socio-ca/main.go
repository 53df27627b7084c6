//go:build ebiten

package main

import (
	"errors"
	"flag"
	"log"
	"os"

	"socio-ca/internal/app"
	"socio-ca/internal/core"
	"socio-ca/internal/logging"
	_ "socio-ca/internal/sims/socio"

	"github.com/hajimehoshi/ebiten/v2"
)

func main() {
	cfg := app.NewConfig()
	cfg.Bind(flag.CommandLine)
	flag.Parse()

	logger := logging.NewLogger(cfg.LogLevel, os.Stderr)

	factory, ok := core.Sims()[cfg.Sim]
	if !ok {
		log.Fatalf("unknown sim %q (available: %v)", cfg.Sim, core.SimNames())
	}

	sim, err := factory(cfg.SimConfig())
	if err != nil {
		log.Fatalf("create %s: %v", cfg.Sim, err)
	}

	game := app.New(sim, cfg, logger)
	w, h := game.WindowSize()

	ebiten.SetWindowTitle("socio-ca — " + sim.Name())
	ebiten.SetTPS(cfg.TPS)
	ebiten.SetWindowSize(w, h)

	if err := ebiten.RunGame(game); err != nil && !errors.Is(err, ebiten.Termination) {
		log.Fatal(err)
	}
}
