package ui

import (
	"bytes"
	"image/color"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/goregular"
)

var (
	regularSource *text.GoTextFaceSource
	boldSource    *text.GoTextFaceSource
	monoSource    *text.GoTextFaceSource
)

func init() {
	var err error
	if regularSource, err = text.NewGoTextFaceSource(bytes.NewReader(goregular.TTF)); err != nil {
		log.Printf("[UI] failed to load regular font: %v", err)
	}
	if boldSource, err = text.NewGoTextFaceSource(bytes.NewReader(gobold.TTF)); err != nil {
		log.Printf("[UI] failed to load bold font: %v", err)
	}
	if monoSource, err = text.NewGoTextFaceSource(bytes.NewReader(gomono.TTF)); err != nil {
		log.Printf("[UI] failed to load mono font: %v", err)
	}
}

// face returns a face of the given size, already scaled for HiDPI.
func face(src *text.GoTextFaceSource, size float64) *text.GoTextFace {
	if src == nil {
		return nil
	}
	return &text.GoTextFace{Source: src, Size: size * UIScale}
}

// drawText draws s with its top-left corner at logical x, y.
func drawText(screen *ebiten.Image, s string, f *text.GoTextFace, x, y float64, c color.Color) {
	if f == nil {
		return
	}
	op := &text.DrawOptions{}
	op.GeoM.Translate(x*UIScale, y*UIScale)
	op.ColorScale.ScaleWithColor(c)
	text.Draw(screen, s, f, op)
}

// drawTextCentered centers s inside the logical box x, y, w, h.
func drawTextCentered(screen *ebiten.Image, s string, f *text.GoTextFace, x, y, w, h float64, c color.Color) {
	if f == nil {
		return
	}
	tw, th := measure(s, f)
	drawText(screen, s, f, x+(w-tw)/2, y+(h-th)/2, c)
}

// measure returns the logical size of s.
func measure(s string, f *text.GoTextFace) (w, h float64) {
	if f == nil {
		return 0, 0
	}
	w, h = text.Measure(s, f, 0)
	return w / UIScale, h / UIScale
}
