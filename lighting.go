package helm3d

import (
	"image/color"
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Lights is the fixed light rig: an ambient term, one directional light and
// one point light.
type Lights struct {
	Ambient float64

	Directional          mgl64.Vec3 // position; the light shines from here towards the origin
	DirectionalIntensity float64

	Point          mgl64.Vec3
	PointIntensity float64
}

func DefaultLights() Lights {
	return Lights{
		Ambient:              0.4,
		Directional:          mgl64.Vec3{10, 10, 5},
		DirectionalIntensity: 1.0,
		Point:                mgl64.Vec3{-10, -10, -10},
		PointIntensity:       0.3,
	}
}

// Brightness is the Lambert light falling on a surface at point with the
// given world normal.
func (l Lights) Brightness(point, normal mgl64.Vec3) float64 {
	b := l.Ambient

	if d := l.Directional.Len(); d > 0 {
		b += l.DirectionalIntensity * math.Max(0, normal.Dot(l.Directional.Mul(1/d)))
	}

	toPoint := l.Point.Sub(point)
	if d := toPoint.Len(); d > 0 {
		b += l.PointIntensity * math.Max(0, normal.Dot(toPoint.Mul(1/d)))
	}
	return b
}

// Shade lights base and adds a constant emissive term.
func (l Lights) Shade(base, emissive color.RGBA, emissiveAmount float64, point, normal mgl64.Vec3) color.RGBA {
	b := l.Brightness(point, normal)

	channel := func(c, e uint8) uint8 {
		v := float64(c)*b + float64(e)*emissiveAmount
		return uint8(clamp(int(math.Round(v)), 7, 255))
	}

	return color.RGBA{
		R: channel(base.R, emissive.R),
		G: channel(base.G, emissive.G),
		B: channel(base.B, emissive.B),
		A: base.A,
	}
}

func clamp(value, min, max int) int {
	if value < min {
		return min
	}
	if value > max {
		return max
	}
	return value
}
