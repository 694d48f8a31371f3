package app

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/1siamBot/iso-tiles/engine/render"
	"github.com/gdamore/tcell/v2"
)

// Dump formats
const (
	FormatText = "text"
	FormatJSON = "json"
)

type commandJSON struct {
	Layer  int        `json:"layer"`
	Row    int        `json:"row"`
	Col    int        `json:"col"`
	Code   int        `json:"code"`
	X      float64    `json:"x"`
	Y      float64    `json:"y"`
	Clip   [4]float64 `json:"clip"`
	Origin [2]float64 `json:"origin"`
}

// WriteCommands writes a frame's draw list in paint order
func WriteCommands(w io.Writer, f *render.Frame, format string) error {
	switch format {
	case FormatJSON:
		out := make([]commandJSON, len(f.Commands))
		for i, c := range f.Commands {
			out[i] = commandJSON{
				Layer:  c.Layer,
				Row:    c.Row,
				Col:    c.Col,
				Code:   c.Code,
				X:      c.Position.X,
				Y:      c.Position.Y,
				Clip:   [4]float64{c.Clip.X, c.Clip.Y, c.Clip.Width, c.Clip.Height},
				Origin: [2]float64{c.Origin.X, c.Origin.Y},
			}
		}
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(out)
	case FormatText, "":
		tw := tabwriter.NewWriter(w, 0, 4, 1, ' ', 0)
		fmt.Fprintln(tw, "LAYER\tROW\tCOL\tCODE\tX\tY\tCLIP\tORIGIN")
		for _, c := range f.Commands {
			fmt.Fprintf(tw, "%d\t%d\t%d\t%d\t%g\t%g\t%g,%g %gx%g\t%g,%g\n",
				c.Layer, c.Row, c.Col, c.Code, c.Position.X, c.Position.Y,
				c.Clip.X, c.Clip.Y, c.Clip.Width, c.Clip.Height, c.Origin.X, c.Origin.Y)
		}
		return tw.Flush()
	default:
		return fmt.Errorf("unknown format %q", format)
	}
}

// RunPreview shows f on a terminal until Escape, Ctrl-C or q
func RunPreview(s tcell.Screen, f *render.Frame, stride int) {
	p := render.NewTermPreview(stride)
	p.Plot(s, f)
	for {
		switch ev := s.PollEvent().(type) {
		case nil:
			return
		case *tcell.EventResize:
			s.Sync()
			p.Plot(s, f)
		case *tcell.EventKey:
			if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC ||
				(ev.Key() == tcell.KeyRune && ev.Rune() == 'q') {
				return
			}
		}
	}
}
