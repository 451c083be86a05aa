package interaction

import "math"

const (
	idleSpinPerFrame = 0.005
	idleTimeStep     = 0.01
	idleBobAmplitude = 0.05
	idleBobFrequency = 0.8
)

// IdleAnimator spins the cube about Y and bobs it up and down while nobody is
// dragging it. The bob is applied as a per-frame delta so it carries on from
// wherever a drag left the cube.
type IdleAnimator struct {
	SpinPerFrame float64
	TimeStep     float64
	Amplitude    float64
	Frequency    float64

	t      float64
	offset float64
}

func NewIdleAnimator() *IdleAnimator {
	return &IdleAnimator{
		SpinPerFrame: idleSpinPerFrame,
		TimeStep:     idleTimeStep,
		Amplitude:    idleBobAmplitude,
		Frequency:    idleBobFrequency,
	}
}

// Step advances the idle clock by one frame and applies it to p.
func (a *IdleAnimator) Step(p *Pose) {
	a.t += a.TimeStep
	next := a.Amplitude * math.Sin(a.t*a.Frequency)

	p.Yaw += a.SpinPerFrame
	p.Position.Y += next - a.offset
	a.offset = next
}

// Offset is the bob displacement currently applied on top of the rest height.
func (a *IdleAnimator) Offset() float64 {
	return a.offset
}

func (a *IdleAnimator) Elapsed() float64 {
	return a.t
}

// Reset zeroes the idle clock. Call it after moving the pose to a fresh
// baseline.
func (a *IdleAnimator) Reset() {
	a.t = 0
	a.offset = 0
}
