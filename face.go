package helm3d

import (
	"image/color"

	"github.com/go-gl/mathgl/mgl64"
)

// Face is a convex polygon over a Mesh, wound counter-clockwise when seen
// from outside.
type Face struct {
	PointIndices []int
	Col          color.RGBA
	normal       mgl64.Vec3
}

func NewFace(mesh *Mesh, col color.RGBA, points ...mgl64.Vec3) *Face {
	f := &Face{
		PointIndices: make([]int, len(points)),
		Col:          col,
	}
	for i, p := range points {
		f.PointIndices[i] = mesh.AddPoint(p)
	}
	f.createNormal(mesh)
	return f
}

func (f *Face) Normal() mgl64.Vec3 {
	return f.normal
}

func (f *Face) createNormal(mesh *Mesh) {
	if len(f.PointIndices) < 3 {
		f.normal = mgl64.Vec3{0, 0, 1}
		return
	}
	p1 := mesh.Points[f.PointIndices[0]]
	p2 := mesh.Points[f.PointIndices[1]]
	p3 := mesh.Points[f.PointIndices[2]]

	n := p2.Sub(p1).Cross(p3.Sub(p2))
	if n.Len() == 0 {
		f.normal = mgl64.Vec3{0, 0, 1}
		return
	}
	f.normal = n.Normalize()
}

// Gather collects the face's points from an already transformed point list.
func (f *Face) Gather(points []mgl64.Vec3, dest []mgl64.Vec3) []mgl64.Vec3 {
	dest = dest[:0]
	for _, idx := range f.PointIndices {
		dest = append(dest, points[idx])
	}
	return dest
}

// GetMidPoint averages the face's points in the given point list.
func (f *Face) GetMidPoint(points []mgl64.Vec3) mgl64.Vec3 {
	var sum mgl64.Vec3
	if len(f.PointIndices) == 0 {
		return sum
	}
	for _, idx := range f.PointIndices {
		sum = sum.Add(points[idx])
	}
	return sum.Mul(1 / float64(len(f.PointIndices)))
}
