package saver

import (
	"errors"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/opentype"
)

// glyphRenderer measures the bundled monospaced face and draws parsed
// frames with it. The ebiten text package caches rendered glyphs per face,
// which stands in for the original per-character surface cache.
type glyphRenderer struct {
	face   font.Face
	cellW  int
	cellH  int
	ascent int
}

func newGlyphRenderer(size int) (*glyphRenderer, error) {
	ft, err := opentype.Parse(gomono.TTF)
	if err != nil {
		return nil, err
	}
	face, err := opentype.NewFace(ft, &opentype.FaceOptions{
		Size:    float64(size),
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, err
	}

	adv, ok := face.GlyphAdvance('M')
	if !ok {
		return nil, errors.New("face has no advance for reference glyph")
	}
	m := face.Metrics()

	r := &glyphRenderer{
		face:   face,
		cellW:  adv.Ceil(),
		cellH:  m.Height.Ceil(),
		ascent: m.Ascent.Ceil(),
	}
	if r.cellW < 1 || r.cellH < 1 {
		return nil, errors.New("degenerate cell metrics for font size")
	}
	return r, nil
}

// cellGrid returns how many whole character cells fit a pixel area.
func (r *glyphRenderer) cellGrid(w, h int) (cols, rows int) {
	cols = w / r.cellW
	rows = h / r.cellH
	if cols < 1 {
		cols = 1
	}
	if rows < 1 {
		rows = 1
	}
	return cols, rows
}
