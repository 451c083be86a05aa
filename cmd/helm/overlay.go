package main

import (
	"bytes"
	"fmt"
	"image/color"
	"sync"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/gofont/goregular"
)

const (
	alertDuration = 3 * time.Second
	fieldEmail    = 0
	fieldInsta    = 1
)

var (
	overlayShade  = color.RGBA{A: 150}
	overlayPanel  = color.RGBA{R: 255, G: 255, B: 255, A: 255}
	overlayAccent = color.RGBA{R: 0x22, G: 0xC5, B: 0x5E, A: 255}
	overlayMuted  = color.RGBA{R: 120, G: 120, B: 120, A: 255}
)

// alerts is the Notifier the storefront reports to. Submissions finish on
// their own goroutine, so the message is guarded.
type alerts struct {
	mu    sync.Mutex
	msg   string
	until time.Time
}

func (a *alerts) Alert(msg string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.msg = msg
	a.until = time.Now().Add(alertDuration)
}

func (a *alerts) current() string {
	a.mu.Lock()
	defer a.mu.Unlock()
	if time.Now().After(a.until) {
		return ""
	}
	return a.msg
}

// captureForm is the two field email capture form.
type captureForm struct {
	fields  [2][]rune
	active  int
	chars   []rune
	touches []ebiten.TouchID
}

func (f *captureForm) reset() {
	f.fields[fieldEmail] = f.fields[fieldEmail][:0]
	f.fields[fieldInsta] = f.fields[fieldInsta][:0]
	f.active = fieldEmail
}

func (f *captureForm) email() string     { return string(f.fields[fieldEmail]) }
func (f *captureForm) instagram() string { return string(f.fields[fieldInsta]) }

// update applies this tick's input and reports whether the form was
// submitted or dismissed. A press on the backdrop outside panel dismisses it
// like Esc.
func (f *captureForm) update(panel panelRect) (submit, dismiss bool) {
	f.chars = ebiten.AppendInputChars(f.chars[:0])
	f.fields[f.active] = append(f.fields[f.active], f.chars...)

	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeyEscape), backdropPressed(panel, f):
		return false, true
	case inpututil.IsKeyJustPressed(ebiten.KeyEnter), inpututil.IsKeyJustPressed(ebiten.KeyNumpadEnter):
		return true, false
	case inpututil.IsKeyJustPressed(ebiten.KeyTab):
		f.active = (f.active + 1) % len(f.fields)
	case repeating(ebiten.KeyBackspace):
		if n := len(f.fields[f.active]); n > 0 {
			f.fields[f.active] = f.fields[f.active][:n-1]
		}
	}
	return false, false
}

func backdropPressed(panel panelRect, f *captureForm) bool {
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		x, y := ebiten.CursorPosition()
		if !panel.contains(x, y) {
			return true
		}
	}
	f.touches = inpututil.AppendJustPressedTouchIDs(f.touches[:0])
	for _, id := range f.touches {
		if x, y := ebiten.TouchPosition(id); !panel.contains(x, y) {
			return true
		}
	}
	return false
}

// panelRect is the form's card in screen pixels, centred in the window.
type panelRect struct {
	X, Y, W, H float32
}

func formPanel(width, height int) panelRect {
	w, h := float32(width), float32(height)
	pw := min(w-40, 420)
	ph := float32(230)
	return panelRect{X: (w - pw) / 2, Y: (h - ph) / 2, W: pw, H: ph}
}

func (r panelRect) contains(x, y int) bool {
	fx, fy := float32(x), float32(y)
	return fx >= r.X && fx < r.X+r.W && fy >= r.Y && fy < r.Y+r.H
}

func repeating(key ebiten.Key) bool {
	const (
		delay    = 30
		interval = 3
	)
	d := inpututil.KeyPressDuration(key)
	if d == 1 {
		return true
	}
	return d >= delay && (d-delay)%interval == 0
}

type overlayRenderer struct {
	face  *text.GoTextFace
	small *text.GoTextFace
}

func newOverlayRenderer() (*overlayRenderer, error) {
	src, err := text.NewGoTextFaceSource(bytes.NewReader(goregular.TTF))
	if err != nil {
		return nil, fmt.Errorf("loading overlay font: %w", err)
	}
	return &overlayRenderer{
		face:  &text.GoTextFace{Source: src, Size: 18},
		small: &text.GoTextFace{Source: src, Size: 14},
	}, nil
}

func (r *overlayRenderer) drawText(dst *ebiten.Image, s string, face *text.GoTextFace, x, y float64, clr color.Color, align text.Align) {
	op := &text.DrawOptions{}
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(clr)
	op.PrimaryAlign = align
	text.Draw(dst, s, face, op)
}

func (r *overlayRenderer) drawForm(dst *ebiten.Image, f *captureForm, submitting bool) {
	b := dst.Bounds()
	vector.DrawFilledRect(dst, 0, 0, float32(b.Dx()), float32(b.Dy()), overlayShade, false)

	panel := formPanel(b.Dx(), b.Dy())
	px, py, pw, ph := panel.X, panel.Y, panel.W, panel.H
	vector.DrawFilledRect(dst, px, py, pw, ph, overlayPanel, true)

	cx := float64(px + pw/2)
	r.drawText(dst, "Get notified when Helm is available", r.face, cx, float64(py+20), color.Black, text.AlignCenter)

	labels := [2]string{"Email", "Instagram (optional)"}
	for i, label := range labels {
		fy := py + 60 + float32(i)*60
		r.drawText(dst, label, r.small, float64(px+20), float64(fy), overlayMuted, text.AlignStart)

		border := overlayMuted
		if i == f.active {
			border = overlayAccent
		}
		vector.StrokeRect(dst, px+20, fy+20, pw-40, 28, 1.5, border, true)

		value := string(f.fields[i])
		if i == f.active && !submitting {
			value += "_"
		}
		r.drawText(dst, value, r.face, float64(px+26), float64(fy+24), color.Black, text.AlignStart)
	}

	hint := "Enter to submit · Tab to switch · Esc or click outside to close"
	if submitting {
		hint = "Sending..."
	}
	r.drawText(dst, hint, r.small, cx, float64(py+ph-30), overlayMuted, text.AlignCenter)
}

func (r *overlayRenderer) drawAlert(dst *ebiten.Image, msg string) {
	if msg == "" {
		return
	}
	b := dst.Bounds()
	w := float32(b.Dx())
	vector.DrawFilledRect(dst, 0, 0, w, 40, overlayAccent, false)
	r.drawText(dst, msg, r.face, float64(w/2), 10, color.White, text.AlignCenter)
}
