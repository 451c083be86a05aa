package interaction

import (
	"time"

	"go.uber.org/zap"
)

const (
	DefaultActivationDeadline = 150 * time.Millisecond
	DefaultDoubleClickWindow  = 300 * time.Millisecond
	DefaultSensitivity        = 0.01
)

type Mode int

const (
	ModeIdle Mode = iota
	ModeRotating
	ModeMoving
)

func (m Mode) String() string {
	switch m {
	case ModeRotating:
		return "rotating"
	case ModeMoving:
		return "moving"
	}
	return "idle"
}

type State int

const (
	StateIdle State = iota
	StateAwaitingSecondActivation
	StateRotating
	StateMoving
)

func (s State) String() string {
	switch s {
	case StateAwaitingSecondActivation:
		return "awaiting-second-activation"
	case StateRotating:
		return "rotating"
	case StateMoving:
		return "moving"
	}
	return "idle"
}

// Policy decides when a single activation commits to rotating.
type Policy int

const (
	// PolicyDeferred waits out the activation deadline before rotating, so a
	// double activation goes straight to moving.
	PolicyDeferred Policy = iota
	// PolicyImmediate rotates on the first click and switches to moving if a
	// second click lands inside the double-click window.
	PolicyImmediate
)

func (p Policy) String() string {
	if p == PolicyImmediate {
		return "immediate"
	}
	return "deferred"
}

type Options struct {
	ActivationDeadline time.Duration
	DoubleClickWindow  time.Duration
	Sensitivity        float64
	MousePolicy        Policy
}

func DefaultOptions() Options {
	return Options{
		ActivationDeadline: DefaultActivationDeadline,
		DoubleClickWindow:  DefaultDoubleClickWindow,
		Sensitivity:        DefaultSensitivity,
		MousePolicy:        PolicyDeferred,
	}
}

func (o Options) withDefaults() Options {
	if o.ActivationDeadline <= 0 {
		o.ActivationDeadline = DefaultActivationDeadline
	}
	if o.DoubleClickWindow <= 0 {
		o.DoubleClickWindow = DefaultDoubleClickWindow
	}
	if o.Sensitivity == 0 {
		o.Sensitivity = DefaultSensitivity
	}
	return o
}

// Picker is what the interpreter needs from the scene: the viewport to map
// pointer positions into NDC, and a hit test of the camera ray through an NDC
// point against the cube.
type Picker interface {
	Viewport() Viewport
	Pick(ndcX, ndcY float64) bool
}

// TapState counts activations inside the current window.
type TapState struct {
	Count int

	deadline       time.Time
	armed          bool
	commitOnExpiry bool
}

func (t TapState) Armed() bool { return t.armed }

func (t *TapState) arm(deadline time.Time, commit bool) {
	t.deadline = deadline
	t.armed = true
	t.commitOnExpiry = commit
}

func (t *TapState) disarm() {
	t.armed = false
	t.commitOnExpiry = false
	t.deadline = time.Time{}
}

// Interpreter turns pointer events into rotate and move drags on a Pose.
type Interpreter struct {
	opts   Options
	pose   *Pose
	picker Picker
	log    *zap.Logger

	state State
	last  PointerSample
	taps  TapState
}

func NewInterpreter(pose *Pose, picker Picker, opts Options, log *zap.Logger) *Interpreter {
	if log == nil {
		log = zap.NewNop()
	}
	return &Interpreter{
		opts:   opts.withDefaults(),
		pose:   pose,
		picker: picker,
		log:    log,
	}
}

func (in *Interpreter) State() State { return in.state }

func (in *Interpreter) Taps() TapState { return in.taps }

func (in *Interpreter) LastPointer() PointerSample { return in.last }

func (in *Interpreter) Dragging() bool {
	return in.state == StateRotating || in.state == StateMoving
}

func (in *Interpreter) Mode() Mode {
	switch in.state {
	case StateRotating:
		return ModeRotating
	case StateMoving:
		return ModeMoving
	}
	return ModeIdle
}

// Handle dispatches a unified pointer event.
func (in *Interpreter) Handle(ev PointerEvent) {
	switch ev.Kind {
	case EventDown:
		in.PointerDown(ev.Time, ev.X, ev.Y, ev.Source)
	case EventMove:
		in.PointerMove(ev.X, ev.Y)
	case EventUp:
		in.PointerUp()
	case EventCancel:
		in.Cancel()
	}
}

// Tick fires the activation deadline once now has reached it.
func (in *Interpreter) Tick(now time.Time) {
	if !in.taps.armed || now.Before(in.taps.deadline) {
		return
	}
	commit := in.taps.commitOnExpiry
	in.taps.disarm()
	in.taps.Count = 0

	if commit && in.state == StateAwaitingSecondActivation {
		in.state = StateRotating
		in.log.Debug("rotation mode activated")
		return
	}
	if in.state == StateAwaitingSecondActivation {
		in.state = StateIdle
	}
}

func (in *Interpreter) PointerDown(now time.Time, x, y float64, src Source) {
	in.Tick(now)
	in.last = PointerSample{X: x, Y: y}

	if !in.hit(x, y) {
		return
	}

	in.taps.Count++
	in.taps.disarm()

	policy := PolicyDeferred
	if src == SourceMouse {
		policy = in.opts.MousePolicy
	}

	switch in.taps.Count {
	case 1:
		if policy == PolicyImmediate {
			in.state = StateRotating
			in.taps.arm(now.Add(in.opts.DoubleClickWindow), false)
			in.log.Debug("rotation mode activated", zap.Stringer("source", src))
			return
		}
		in.taps.arm(now.Add(in.opts.ActivationDeadline), true)
		if !in.Dragging() {
			in.state = StateAwaitingSecondActivation
		}
	default:
		in.taps.Count = 0
		in.state = StateMoving
		in.log.Debug("movement mode activated", zap.Stringer("source", src))
	}
}

func (in *Interpreter) hit(x, y float64) bool {
	if in.picker == nil {
		return false
	}
	nx, ny, ok := in.picker.Viewport().NDC(x, y)
	if !ok {
		return false
	}
	return in.picker.Pick(nx, ny)
}

func (in *Interpreter) PointerMove(x, y float64) {
	if !in.Dragging() {
		return
	}

	dx := (x - in.last.X) * in.opts.Sensitivity
	dy := (y - in.last.Y) * in.opts.Sensitivity

	switch in.state {
	case StateRotating:
		in.pose.Yaw += dx
		in.pose.Pitch += dy
	case StateMoving:
		in.pose.Position.X += dx
		in.pose.Position.Y -= dy
	}

	in.last = PointerSample{X: x, Y: y}
}

// PointerUp ends any drag. A pending rotate commit is dropped, but the
// activation window stays open so tap, release, tap still counts as a double
// activation.
func (in *Interpreter) PointerUp() {
	if in.Dragging() {
		in.log.Debug("released", zap.Stringer("mode", in.Mode()))
		in.state = StateIdle
	}
	if in.taps.armed {
		in.taps.commitOnExpiry = false
	}
}

// Cancel abandons the gesture when the pointer is taken away from the scene,
// for example by an overlay. Unlike a release it also closes the activation
// window, so nothing commits later and the next activation starts afresh.
func (in *Interpreter) Cancel() {
	in.PointerUp()
	in.taps.disarm()
	in.taps.Count = 0
	in.state = StateIdle
}
