package main

import (
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/1siamBot/iso-tiles/engine/app"
	"github.com/1siamBot/iso-tiles/engine/config"
	"github.com/1siamBot/iso-tiles/engine/logger"
	"github.com/1siamBot/iso-tiles/engine/render"
	"github.com/hajimehoshi/ebiten/v2"
)

func main() {
	cfg, err := config.Parse("isoview", os.Args[1:], os.Getenv, os.Stderr)
	if errors.Is(err, flag.ErrHelp) {
		return
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, "isoview:", err)
		os.Exit(2)
	}
	logger.Init(cfg.LogLevel, cfg.LogFormat)

	// A bad map never opens a window
	m, err := app.LoadMap(cfg.MapPath, render.OpenAtlas)
	if err != nil {
		logger.Log.WithError(err).WithField("map", cfg.MapPath).Fatal("cannot load map")
	}

	ebiten.SetWindowSize(cfg.WindowWidth, cfg.WindowHeight)
	ebiten.SetWindowTitle(cfg.Title)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetVsyncEnabled(true)

	if err := ebiten.RunGame(app.New(cfg, m)); err != nil {
		logger.Log.WithError(err).Fatal("viewer stopped")
	}
}
