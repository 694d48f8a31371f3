// Package config holds viewer settings, read from flags with log settings
// defaulting from LOG_LEVEL and LOG_FORMAT.
package config

import (
	"errors"
	"flag"
	"fmt"
	"image/color"
	"io"
	"strconv"
	"strings"
)

// Config is everything the viewer and dump tools need besides the map itself
type Config struct {
	MapPath      string
	WindowWidth  int
	WindowHeight int
	Title        string
	Stride       int     // logical units between adjacent cells
	CameraX      float64 // camera centre in local space
	CameraY      float64
	Zoom         float64
	Background   color.RGBA
	QuitOnEscape bool
	ShowHover    bool
	LogLevel     string
	LogFormat    string
}

// Default returns the settings of the reference scene
func Default() Config {
	return Config{
		MapPath:      "assets/maps/outside.json",
		WindowWidth:  640,
		WindowHeight: 480,
		Title:        "Isometric Tiles",
		Stride:       32,
		CameraX:      32,
		CameraY:      48,
		Zoom:         1,
		Background:   color.RGBA{196, 207, 161, 255},
		QuitOnEscape: true,
		ShowHover:    true,
		LogLevel:     "info",
		LogFormat:    "text",
	}
}

// Parse builds a Config from command-line args. getenv may be nil.
// A single positional argument overrides -map.
func Parse(name string, args []string, getenv func(string) string, output io.Writer) (Config, error) {
	cfg := Default()
	if getenv != nil {
		if v := getenv("LOG_LEVEL"); v != "" {
			cfg.LogLevel = v
		}
		if v := getenv("LOG_FORMAT"); v != "" {
			cfg.LogFormat = v
		}
	}

	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	if output != nil {
		fs.SetOutput(output)
	}
	bg := FormatColor(cfg.Background)
	fs.StringVar(&cfg.MapPath, "map", cfg.MapPath, "map description (JSON)")
	fs.IntVar(&cfg.WindowWidth, "width", cfg.WindowWidth, "window width")
	fs.IntVar(&cfg.WindowHeight, "height", cfg.WindowHeight, "window height")
	fs.StringVar(&cfg.Title, "title", cfg.Title, "window title")
	fs.IntVar(&cfg.Stride, "stride", cfg.Stride, "grid spacing between cells")
	fs.Float64Var(&cfg.CameraX, "camera-x", cfg.CameraX, "camera x position")
	fs.Float64Var(&cfg.CameraY, "camera-y", cfg.CameraY, "camera y position")
	fs.Float64Var(&cfg.Zoom, "zoom", cfg.Zoom, "initial zoom")
	fs.StringVar(&bg, "background", bg, "clear colour as #rrggbb")
	fs.BoolVar(&cfg.QuitOnEscape, "quit-on-escape", cfg.QuitOnEscape, "exit when Escape is pressed")
	fs.BoolVar(&cfg.ShowHover, "hover", cfg.ShowHover, "outline the cell under the cursor")
	fs.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "log level")
	fs.StringVar(&cfg.LogFormat, "log-format", cfg.LogFormat, "log format (text|json)")

	if err := fs.Parse(args); err != nil {
		return cfg, err
	}
	switch fs.NArg() {
	case 0:
	case 1:
		cfg.MapPath = fs.Arg(0)
	default:
		return cfg, fmt.Errorf("expected at most one map path, got %d", fs.NArg())
	}

	c, err := ParseColor(bg)
	if err != nil {
		return cfg, err
	}
	cfg.Background = c
	return cfg, cfg.Validate()
}

// Validate rejects settings the renderer cannot work with
func (c Config) Validate() error {
	var errs []error
	if c.MapPath == "" {
		errs = append(errs, errors.New("map path is empty"))
	}
	if c.WindowWidth <= 0 || c.WindowHeight <= 0 {
		errs = append(errs, fmt.Errorf("window size %dx%d must be positive", c.WindowWidth, c.WindowHeight))
	}
	if c.Stride <= 0 {
		errs = append(errs, fmt.Errorf("stride %d must be positive", c.Stride))
	}
	if c.Zoom <= 0 {
		errs = append(errs, fmt.Errorf("zoom %v must be positive", c.Zoom))
	}
	return errors.Join(errs...)
}

// ParseColor reads #rrggbb or #rrggbbaa
func ParseColor(s string) (color.RGBA, error) {
	h := strings.TrimPrefix(s, "#")
	if len(h) != 6 && len(h) != 8 {
		return color.RGBA{}, fmt.Errorf("colour %q: want #rrggbb or #rrggbbaa", s)
	}
	if len(h) == 6 {
		h += "ff"
	}
	v, err := strconv.ParseUint(h, 16, 32)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("colour %q: %w", s, err)
	}
	return color.RGBA{uint8(v >> 24), uint8(v >> 16), uint8(v >> 8), uint8(v)}, nil
}

// FormatColor is the inverse of ParseColor for opaque colours
func FormatColor(c color.RGBA) string {
	if c.A == 0xff {
		return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
	}
	return fmt.Sprintf("#%02x%02x%02x%02x", c.R, c.G, c.B, c.A)
}
