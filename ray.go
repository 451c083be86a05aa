package helm3d

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

const epsilon = 1e-6

// Ray is a segment in world space, usually from the camera's near plane to
// its far plane.
type Ray struct {
	Start mgl64.Vec3
	End   mgl64.Vec3
}

// Direction is the unit vector from Start towards End.
func (r Ray) Direction() mgl64.Vec3 {
	return r.End.Sub(r.Start).Normalize()
}

// LineIntersectsPolygon determines if a line segment intersects a planar,
// convex polygon.
func LineIntersectsPolygon(lineStart, lineEnd mgl64.Vec3, polygon []mgl64.Vec3) bool {
	if len(polygon) < 3 {
		return false
	}

	p0 := polygon[0]
	planeNormal := polygon[1].Sub(p0).Cross(polygon[2].Sub(p0))

	lineDir := lineEnd.Sub(lineStart)
	dotNormalDir := planeNormal.Dot(lineDir)
	if math.Abs(dotNormalDir) < epsilon {
		return false // parallel
	}

	t := -planeNormal.Dot(lineStart.Sub(p0)) / dotNormalDir
	if t < 0.0-epsilon || t > 1.0+epsilon {
		return false
	}

	point := lineStart.Add(lineDir.Mul(t))
	return isPointInPolygon(point, polygon, planeNormal)
}

// isPointInPolygon checks a point already on the polygon's plane, projecting
// onto the axis plane that best preserves the polygon's area and ray casting
// in 2D.
func isPointInPolygon(point mgl64.Vec3, polygon []mgl64.Vec3, normal mgl64.Vec3) bool {
	absX := math.Abs(normal.X())
	absY := math.Abs(normal.Y())
	absZ := math.Abs(normal.Z())

	var u, v int
	if absX > absY && absX > absZ {
		u, v = 1, 2
	} else if absY > absX && absY > absZ {
		u, v = 0, 2
	} else {
		u, v = 0, 1
	}

	px, py := point[u], point[v]

	intersections := 0
	n := len(polygon)
	for i := 0; i < n; i++ {
		a := polygon[i]
		b := polygon[(i+1)%n]

		if (a[v] > py) != (b[v] > py) {
			xIntersection := (b[u]-a[u])*(py-a[v])/(b[v]-a[v]) + a[u]
			if px < xIntersection {
				intersections++
			}
		}
	}

	return intersections%2 == 1
}
