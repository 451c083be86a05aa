package interaction

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubPicker struct {
	vp  Viewport
	hit bool
	// ndc points the picker was asked about
	asked [][2]float64
}

func (p *stubPicker) Viewport() Viewport { return p.vp }

func (p *stubPicker) Pick(ndcX, ndcY float64) bool {
	p.asked = append(p.asked, [2]float64{ndcX, ndcY})
	return p.hit
}

var t0 = time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)

func ms(n int) time.Time {
	return t0.Add(time.Duration(n) * time.Millisecond)
}

func newTestInterpreter(hit bool, opts Options) (*Interpreter, *Pose, *stubPicker) {
	pose := &Pose{}
	picker := &stubPicker{vp: NewViewport(800, 600), hit: hit}
	return NewInterpreter(pose, picker, opts, nil), pose, picker
}

func TestSingleActivationCommitsToRotatingAtDeadline(t *testing.T) {
	in, _, _ := newTestInterpreter(true, DefaultOptions())

	in.PointerDown(ms(0), 400, 300, SourceTouch)
	assert.Equal(t, StateAwaitingSecondActivation, in.State())
	assert.Equal(t, ModeIdle, in.Mode())
	assert.False(t, in.Dragging())

	in.Tick(ms(149))
	assert.Equal(t, StateAwaitingSecondActivation, in.State())

	in.Tick(ms(150))
	assert.Equal(t, StateRotating, in.State())
	assert.Equal(t, ModeRotating, in.Mode())
	assert.Equal(t, 0, in.Taps().Count)
	assert.False(t, in.Taps().Armed())
}

func TestSingleActivationNeverYieldsMoving(t *testing.T) {
	for _, wait := range []int{150, 151, 500, 5000} {
		in, _, _ := newTestInterpreter(true, DefaultOptions())
		in.PointerDown(ms(0), 10, 10, SourceTouch)
		in.Tick(ms(wait))
		assert.Equal(t, ModeRotating, in.Mode(), "wait %dms", wait)
	}
}

func TestDoubleActivationCommitsToMovingImmediately(t *testing.T) {
	for _, second := range []int{1, 40, 80, 149} {
		in, _, _ := newTestInterpreter(true, DefaultOptions())

		in.PointerDown(ms(0), 400, 300, SourceTouch)
		in.PointerDown(ms(second), 400, 300, SourceTouch)

		assert.Equal(t, StateMoving, in.State(), "second at %dms", second)
		assert.False(t, in.Taps().Armed(), "pending rotate must be cancelled")
		assert.Equal(t, 0, in.Taps().Count)

		// the cancelled deadline must not flip the mode later
		in.Tick(ms(150))
		in.Tick(ms(1000))
		assert.Equal(t, StateMoving, in.State())
	}
}

func TestTapReleaseTapStillCountsAsDouble(t *testing.T) {
	in, _, _ := newTestInterpreter(true, DefaultOptions())

	in.PointerDown(ms(0), 400, 300, SourceTouch)
	in.PointerUp()
	in.Tick(ms(40))
	in.PointerDown(ms(80), 400, 300, SourceTouch)

	assert.Equal(t, StateMoving, in.State())
}

func TestQuickTapDoesNotRotateAfterRelease(t *testing.T) {
	in, pose, _ := newTestInterpreter(true, DefaultOptions())

	in.PointerDown(ms(0), 400, 300, SourceTouch)
	in.PointerUp()
	in.Tick(ms(200))

	assert.Equal(t, StateIdle, in.State())
	assert.False(t, in.Taps().Armed())

	in.PointerMove(500, 350)
	assert.Equal(t, Pose{}, *pose)
}

func TestSecondActivationAfterDeadlineStartsOver(t *testing.T) {
	in, _, _ := newTestInterpreter(true, DefaultOptions())

	in.PointerDown(ms(0), 400, 300, SourceTouch)
	in.PointerUp()
	// no Tick in between: the down itself must expire the old window first
	in.PointerDown(ms(300), 400, 300, SourceTouch)

	assert.Equal(t, StateAwaitingSecondActivation, in.State())
	assert.Equal(t, 1, in.Taps().Count)
}

func TestMissedPointerDownIsIgnored(t *testing.T) {
	in, _, picker := newTestInterpreter(false, DefaultOptions())

	in.PointerDown(ms(0), 400, 300, SourceTouch)
	in.PointerDown(ms(10), 400, 300, SourceTouch)
	in.Tick(ms(500))

	assert.Equal(t, StateIdle, in.State())
	assert.Equal(t, 0, in.Taps().Count)
	require.Len(t, picker.asked, 2)
	assert.InDelta(t, 0, picker.asked[0][0], 1e-9)
	assert.InDelta(t, 0, picker.asked[0][1], 1e-9)
	// the sample still follows the pointer
	assert.Equal(t, PointerSample{X: 400, Y: 300}, in.LastPointer())
}

func TestMoveWithoutDragIsNoop(t *testing.T) {
	in, pose, _ := newTestInterpreter(true, DefaultOptions())
	start := *pose

	in.PointerMove(100, 100)
	in.PointerMove(250, -40)
	assert.Equal(t, start, *pose)
	assert.Equal(t, PointerSample{}, in.LastPointer())

	// awaiting the second activation is not a drag either
	in.PointerDown(ms(0), 10, 20, SourceTouch)
	in.PointerMove(50, 60)
	assert.Equal(t, start, *pose)
	assert.Equal(t, PointerSample{X: 10, Y: 20}, in.LastPointer())
}

func TestRotateDelta(t *testing.T) {
	in, pose, _ := newTestInterpreter(true, DefaultOptions())

	in.PointerDown(ms(0), 100, 100, SourceTouch)
	in.Tick(ms(150))
	require.Equal(t, ModeRotating, in.Mode())

	in.PointerMove(110, 95)

	assert.InDelta(t, 0.10, pose.Yaw, 1e-9)
	assert.InDelta(t, -0.05, pose.Pitch, 1e-9)
	assert.Equal(t, Vec3{}, pose.Position)
	assert.Equal(t, PointerSample{X: 110, Y: 95}, in.LastPointer())
}

func TestMoveDeltaInvertsY(t *testing.T) {
	in, pose, _ := newTestInterpreter(true, DefaultOptions())

	in.PointerDown(ms(0), 100, 100, SourceTouch)
	in.PointerDown(ms(80), 100, 100, SourceTouch)
	require.Equal(t, ModeMoving, in.Mode())

	in.PointerMove(110, 95)

	assert.InDelta(t, 0.10, pose.Position.X, 1e-9)
	assert.InDelta(t, 0.05, pose.Position.Y, 1e-9)
	assert.Zero(t, pose.Yaw)
	assert.Zero(t, pose.Pitch)
}

func TestDeltasAccumulateFromLastSample(t *testing.T) {
	in, pose, _ := newTestInterpreter(true, DefaultOptions())

	in.PointerDown(ms(0), 0, 0, SourceTouch)
	in.Tick(ms(150))
	in.PointerMove(10, 0)
	in.PointerMove(30, 0)
	in.PointerMove(25, 0)

	assert.InDelta(t, 0.25, pose.Yaw, 1e-9)
}

func TestPointerUpReturnsToIdleIdempotently(t *testing.T) {
	tests := []struct {
		name  string
		setup func(in *Interpreter)
	}{
		{"from rotating", func(in *Interpreter) {
			in.PointerDown(ms(0), 0, 0, SourceTouch)
			in.Tick(ms(150))
		}},
		{"from moving", func(in *Interpreter) {
			in.PointerDown(ms(0), 0, 0, SourceTouch)
			in.PointerDown(ms(10), 0, 0, SourceTouch)
		}},
		{"from idle", func(in *Interpreter) {}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			in, pose, _ := newTestInterpreter(true, DefaultOptions())
			tc.setup(in)

			in.PointerUp()
			assert.Equal(t, StateIdle, in.State())
			assert.Equal(t, ModeIdle, in.Mode())

			before := *pose
			in.PointerUp()
			in.Cancel()
			assert.Equal(t, StateIdle, in.State())
			assert.Equal(t, before, *pose)
		})
	}
}

func TestCancelAbandonsGesture(t *testing.T) {
	t.Run("after the rotate commit", func(t *testing.T) {
		in, pose, _ := newTestInterpreter(true, DefaultOptions())
		in.PointerDown(ms(0), 100, 100, SourceMouse)
		in.Tick(ms(200))
		require.Equal(t, StateRotating, in.State())

		in.Cancel()
		in.PointerMove(150, 100)
		assert.Equal(t, StateIdle, in.State())
		assert.False(t, in.Dragging())
		assert.Zero(t, pose.Yaw)
	})

	t.Run("before the deadline", func(t *testing.T) {
		in, pose, _ := newTestInterpreter(true, DefaultOptions())
		in.PointerDown(ms(0), 100, 100, SourceMouse)
		in.Cancel()
		assert.False(t, in.Taps().Armed())
		assert.Equal(t, 0, in.Taps().Count)

		in.Tick(ms(200))
		in.PointerMove(150, 100)
		assert.Equal(t, StateIdle, in.State())
		assert.Zero(t, pose.Yaw)

		// the tap before the cancel does not pair with the next one
		in.PointerDown(ms(210), 100, 100, SourceMouse)
		assert.Equal(t, StateAwaitingSecondActivation, in.State())
	})
}

func TestImmediatePolicyForMouse(t *testing.T) {
	opts := DefaultOptions()
	opts.MousePolicy = PolicyImmediate
	in, _, _ := newTestInterpreter(true, opts)

	in.PointerDown(ms(0), 400, 300, SourceMouse)
	assert.Equal(t, StateRotating, in.State())
	in.PointerUp()
	assert.Equal(t, StateIdle, in.State())

	in.PointerDown(ms(250), 400, 300, SourceMouse)
	assert.Equal(t, StateMoving, in.State())
	in.PointerUp()

	// past the window the count resets and the next click rotates again
	in.PointerDown(ms(1000), 400, 300, SourceMouse)
	in.Tick(ms(1400))
	assert.Equal(t, StateRotating, in.State())
}

func TestTouchIgnoresMousePolicy(t *testing.T) {
	opts := DefaultOptions()
	opts.MousePolicy = PolicyImmediate
	in, _, _ := newTestInterpreter(true, opts)

	in.PointerDown(ms(0), 400, 300, SourceTouch)
	assert.Equal(t, StateAwaitingSecondActivation, in.State())
}

func TestHandleDispatches(t *testing.T) {
	in, pose, _ := newTestInterpreter(true, DefaultOptions())

	in.Handle(PointerEvent{Kind: EventDown, X: 0, Y: 0, Source: SourceTouch, Time: ms(0)})
	in.Handle(PointerEvent{Kind: EventDown, X: 0, Y: 0, Source: SourceTouch, Time: ms(50)})
	in.Handle(PointerEvent{Kind: EventMove, X: 20, Y: -10})
	assert.InDelta(t, 0.2, pose.Position.X, 1e-9)
	assert.InDelta(t, 0.1, pose.Position.Y, 1e-9)

	in.Handle(PointerEvent{Kind: EventCancel})
	assert.Equal(t, ModeIdle, in.Mode())
}

func TestDragSuspendsIdleAndResumesWithoutSnap(t *testing.T) {
	in, pose, _ := newTestInterpreter(true, DefaultOptions())
	idle := NewIdleAnimator()
	frame := func() {
		if !in.Dragging() {
			idle.Step(pose)
		}
	}

	for i := 0; i < 30; i++ {
		frame()
	}

	in.PointerDown(ms(0), 0, 0, SourceTouch)
	in.PointerDown(ms(20), 0, 0, SourceTouch)
	require.True(t, in.Dragging())

	held := *pose
	elapsed := idle.Elapsed()
	for i := 0; i < 10; i++ {
		frame()
	}
	assert.Equal(t, held, *pose, "idle motion must pause during a drag")
	assert.Equal(t, elapsed, idle.Elapsed())

	in.PointerMove(50, -30)
	in.PointerUp()
	dragged := *pose

	frame()
	assert.InDelta(t, dragged.Yaw+idleSpinPerFrame, pose.Yaw, 1e-12)
	assert.Less(t, math.Abs(pose.Position.Y-dragged.Position.Y), 0.001)
	assert.Equal(t, dragged.Position.X, pose.Position.X)
}
