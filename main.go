package main

import (
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/ncruces/zenity"
	"go.uber.org/zap"

	"github.com/iburimskiy/particle-field/internal/config"
	"github.com/iburimskiy/particle-field/internal/game"
	"github.com/iburimskiy/particle-field/internal/logging"
)

func main() {
	cfg, err := config.Parse(os.Args[1:])
	if errors.Is(err, flag.ErrHelp) {
		return
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	log, err := logging.New(cfg.LogLevel)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	defer log.Sync()

	ebiten.SetWindowSize(config.CanvasWidth, config.CanvasHeight)
	ebiten.SetWindowTitle("Particle Field - Space: pause, 1-4: point size, Esc/Q: quit")
	ebiten.SetTPS(ebiten.SyncWithFPS)

	g, err := game.New(cfg, log)
	if err != nil {
		fatal(log, err)
	}
	if err := ebiten.RunGame(g); err != nil && !errors.Is(err, ebiten.Termination) {
		g.Close()
		fatal(log, err)
	}
	g.Close()
}

func fatal(log *zap.Logger, err error) {
	log.Error("particle field failed", zap.Error(err))
	_ = log.Sync()
	_ = zenity.Error(err.Error(), zenity.Title("Particle Field"), zenity.ErrorIcon)
	os.Exit(1)
}
