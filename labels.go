package helm3d

import (
	"bytes"
	"fmt"
	"image/color"

	"github.com/cespare/xxhash/v2"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/gofont/gobold"
)

const (
	labelTextureWidth  = 256
	labelTextureHeight = 64
	labelFontSize      = 24
)

// labelBackground is white at 90% opacity. It is non-premultiplied.
var labelBackground = color.NRGBA{R: 255, G: 255, B: 255, A: 230}

// LabelSource turns label text into textures.
type LabelSource interface {
	Texture(label string) (*ebiten.Image, error)
	Release()
}

// TextLabels renders labels as black bold text on a mostly opaque white card.
// Textures are cached by the hash of their text, so rebuilding the cube on a
// layout change reuses them.
type TextLabels struct {
	face  *text.GoTextFace
	cache map[uint64]*ebiten.Image
}

func NewTextLabels() (*TextLabels, error) {
	src, err := text.NewGoTextFaceSource(bytes.NewReader(gobold.TTF))
	if err != nil {
		return nil, fmt.Errorf("loading label font: %w", err)
	}
	return &TextLabels{
		face:  &text.GoTextFace{Source: src, Size: labelFontSize},
		cache: make(map[uint64]*ebiten.Image),
	}, nil
}

func (l *TextLabels) Texture(label string) (*ebiten.Image, error) {
	key := xxhash.Sum64String(label)
	if img, ok := l.cache[key]; ok {
		return img, nil
	}

	img := ebiten.NewImage(labelTextureWidth, labelTextureHeight)
	img.Fill(labelBackground)

	op := &text.DrawOptions{}
	op.GeoM.Translate(labelTextureWidth/2, labelTextureHeight/2)
	op.ColorScale.ScaleWithColor(color.Black)
	op.PrimaryAlign = text.AlignCenter
	op.SecondaryAlign = text.AlignCenter
	text.Draw(img, label, l.face, op)

	l.cache[key] = img
	return img, nil
}

// Release frees every cached texture.
func (l *TextLabels) Release() {
	for key, img := range l.cache {
		img.Deallocate()
		delete(l.cache, key)
	}
}
