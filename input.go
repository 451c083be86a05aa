package helm3d

import (
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/smasonuk/helm3d/interaction"
)

// InputPoller turns Ebitengine's polled mouse and touch state into pointer
// events. Only the primary touch is followed; extra fingers are ignored.
type InputPoller struct {
	clock interaction.Clock

	mouseX, mouseY int
	mouseKnown     bool

	touchID     ebiten.TouchID
	touching    bool
	touchX      int
	touchY      int
	justPressed []ebiten.TouchID

	events []interaction.PointerEvent
}

func NewInputPoller(clock interaction.Clock) *InputPoller {
	if clock == nil {
		clock = interaction.SystemClock
	}
	return &InputPoller{clock: clock}
}

// Poll returns the events since the last call. The slice is reused.
func (p *InputPoller) Poll() []interaction.PointerEvent {
	p.events = p.events[:0]
	now := p.clock.Now()

	p.pollTouch(now)
	if !p.touching {
		p.pollMouse(now)
	}
	return p.events
}

func (p *InputPoller) emit(kind interaction.EventKind, x, y int, src interaction.Source, now time.Time) {
	p.events = append(p.events, interaction.PointerEvent{
		Kind:   kind,
		X:      float64(x),
		Y:      float64(y),
		Source: src,
		Time:   now,
	})
}

func (p *InputPoller) pollMouse(now time.Time) {
	mx, my := ebiten.CursorPosition()
	moved := !p.mouseKnown || mx != p.mouseX || my != p.mouseY
	p.mouseX, p.mouseY, p.mouseKnown = mx, my, true

	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		p.emit(interaction.EventDown, mx, my, interaction.SourceMouse, now)
		return
	}
	if moved {
		p.emit(interaction.EventMove, mx, my, interaction.SourceMouse, now)
	}
	if inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft) {
		p.emit(interaction.EventUp, mx, my, interaction.SourceMouse, now)
	}
}

func (p *InputPoller) pollTouch(now time.Time) {
	if p.touching {
		if inpututil.IsTouchJustReleased(p.touchID) {
			p.touching = false
			p.emit(interaction.EventUp, p.touchX, p.touchY, interaction.SourceTouch, now)
		} else {
			tx, ty := ebiten.TouchPosition(p.touchID)
			if tx != p.touchX || ty != p.touchY {
				p.touchX, p.touchY = tx, ty
				p.emit(interaction.EventMove, tx, ty, interaction.SourceTouch, now)
			}
		}
	}

	p.justPressed = inpututil.AppendJustPressedTouchIDs(p.justPressed[:0])
	if p.touching || len(p.justPressed) == 0 {
		return
	}
	p.touchID = p.justPressed[0]
	p.touching = true
	p.touchX, p.touchY = ebiten.TouchPosition(p.touchID)
	p.emit(interaction.EventDown, p.touchX, p.touchY, interaction.SourceTouch, now)
}
