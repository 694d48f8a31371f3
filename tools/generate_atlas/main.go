package main

import (
	"flag"
	"image"
	"image/color"
	"image/png"
	"log"
	"math"
	"math/rand"
	"os"
	"path/filepath"

	xdraw "golang.org/x/image/draw"
)

const (
	cell      = 64
	atlasSize = 16 * cell
)

// colorFn shades one pixel of a swatch
type colorFn func(x, y int, rng *rand.Rand) color.RGBA

func grass(x, y int, rng *rand.Rand) color.RGBA {
	v := 150.0 + rng.Float64()*20 - 10 + 4*math.Sin(float64(x)*0.3+float64(y)*0.7)
	return color.RGBA{uint8(v * 0.55), uint8(v), uint8(v * 0.45), 255}
}

func stone(x, y int, rng *rand.Rand) color.RGBA {
	v := 120.0 + rng.Float64()*16 - 8
	if x%16 == 0 || y%8 == 0 {
		v *= 0.8
	}
	return color.RGBA{uint8(v), uint8(v * 0.97), uint8(v * 0.92), 255}
}

func dirt(x, y int, rng *rand.Rand) color.RGBA {
	v := 120.0 + rng.Float64()*20 - 10 + 5*math.Sin(float64(x)*0.8+float64(y)*0.3)
	return color.RGBA{uint8(v * 1.05), uint8(v * 0.82), uint8(v * 0.55), 255}
}

func bark(x, y int, rng *rand.Rand) color.RGBA {
	v := 90.0 + rng.Float64()*10
	if x%4 == 0 {
		v *= 0.8
	}
	return color.RGBA{uint8(v), uint8(v * 0.7), uint8(v * 0.4), 255}
}

func leaves(x, y int, rng *rand.Rand) color.RGBA {
	v := 90.0 + rng.Float64()*40
	return color.RGBA{uint8(v * 0.3), uint8(v), uint8(v * 0.35), 255}
}

// diamond fills the 2:1 ground diamond in the top half of a cell at (cx, cy)
func diamond(dst *image.RGBA, cx, cy int, seed int64, fn colorFn) {
	rng := rand.New(rand.NewSource(seed))
	x0, y0 := cx*cell, cy*cell
	for y := 0; y < cell/2; y++ {
		for x := 0; x < cell; x++ {
			dx := math.Abs(float64(x) + 0.5 - cell/2)
			dy := math.Abs(float64(y) + 0.5 - cell/4)
			if dx/(cell/2)+dy/(cell/4) > 1 {
				continue
			}
			dst.SetRGBA(x0+x, y0+y, fn(x, y, rng))
		}
	}
}

// sprite paints a small swatch and scales it up into a region of the atlas
func sprite(dst *image.RGBA, r image.Rectangle, w, h int, seed int64, shape func(x, y int) colorFn) {
	rng := rand.New(rand.NewSource(seed))
	src := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if fn := shape(x, y); fn != nil {
				src.SetRGBA(x, y, fn(x, y, rng))
			}
		}
	}
	xdraw.NearestNeighbor.Scale(dst, r, src, src.Bounds(), xdraw.Over, nil)
}

func tree(w, h int) func(x, y int) colorFn {
	return func(x, y int) colorFn {
		cx := float64(w) / 2
		trunk := math.Abs(float64(x)+0.5-cx) < float64(w)/10 && y > h/2
		crown := math.Hypot(float64(x)+0.5-cx, float64(y)+0.5-float64(h)/3) < float64(w)*0.4
		switch {
		case crown:
			return leaves
		case trunk:
			return bark
		}
		return nil
	}
}

func logShape(x, y int) colorFn {
	if y >= 10 && y < 14 && x >= 2 && x < 14 {
		return bark
	}
	return nil
}

// generateAtlas lays tiles out at the cells the sample maps reference
func generateAtlas() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, atlasSize, atlasSize))

	diamond(img, 0, 0, 1, grass)
	diamond(img, 1, 0, 2, dirt)
	diamond(img, 7, 3, 3, stone)
	diamond(img, 8, 3, 4, stone)

	// log 64x64, tree 64x128, big tree 192x192
	sprite(img, image.Rect(4*cell, 12*cell, 5*cell, 13*cell), 16, 16, 5, logShape)
	sprite(img, image.Rect(2*cell, 12*cell, 3*cell, 14*cell), 16, 32, 6, tree(16, 32))
	sprite(img, image.Rect(7*cell, 13*cell, 10*cell, 16*cell), 48, 48, 7, tree(48, 48))
	return img
}

func main() {
	out := flag.String("out", filepath.Join("assets", "maps", "iso-64x64-outside.png"), "atlas output path")
	force := flag.Bool("force", false, "overwrite an existing atlas")
	flag.Parse()

	// Don't overwrite real art
	if _, err := os.Stat(*out); err == nil && !*force {
		log.Printf("%s exists, use -force to overwrite", *out)
		return
	}
	if err := os.MkdirAll(filepath.Dir(*out), 0755); err != nil {
		log.Fatal(err)
	}

	f, err := os.Create(*out)
	if err != nil {
		log.Fatal(err)
	}
	if err := png.Encode(f, generateAtlas()); err != nil {
		f.Close()
		log.Fatal(err)
	}
	if err := f.Close(); err != nil {
		log.Fatal(err)
	}
	log.Printf("wrote %s", *out)
}
