package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/1siamBot/iso-tiles/engine/app"
	"github.com/1siamBot/iso-tiles/engine/config"
	"github.com/1siamBot/iso-tiles/engine/logger"
	"github.com/1siamBot/iso-tiles/engine/render"
	"github.com/gdamore/tcell/v2"
)

func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return
		}
		logger.Log.WithError(err).Error("isodump failed")
		os.Exit(1)
	}
}

func run(args []string, stdout io.Writer) error {
	cfg := config.Default()
	format := app.FormatText
	tui := false

	fs := flag.NewFlagSet("isodump", flag.ContinueOnError)
	fs.StringVar(&format, "format", format, "output format (text|json)")
	fs.BoolVar(&tui, "tui", tui, "show a terminal preview instead of printing")
	fs.IntVar(&cfg.Stride, "stride", cfg.Stride, "grid spacing between cells")
	fs.StringVar(&cfg.LogLevel, "log-level", envOr("LOG_LEVEL", cfg.LogLevel), "log level")
	fs.StringVar(&cfg.LogFormat, "log-format", envOr("LOG_FORMAT", cfg.LogFormat), "log format (text|json)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() > 1 {
		return fmt.Errorf("expected at most one map path, got %d", fs.NArg())
	}
	if fs.NArg() == 1 {
		cfg.MapPath = fs.Arg(0)
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	logger.Init(cfg.LogLevel, cfg.LogFormat)
	logger.SetOutput(os.Stderr)
	if tui {
		logger.SetOutput(io.Discard)
	}

	m, err := app.LoadMap(cfg.MapPath, render.OpenAtlasImage)
	if err != nil {
		return err
	}
	f, err := app.New(cfg, m).Frame()
	if err != nil {
		return err
	}

	if !tui {
		return app.WriteCommands(stdout, f, format)
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		return err
	}
	if err := screen.Init(); err != nil {
		return err
	}
	defer screen.Fini()
	app.RunPreview(screen, f, cfg.Stride)
	return nil
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
