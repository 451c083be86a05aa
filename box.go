package helm3d

import (
	"image/color"
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/hajimehoshi/ebiten/v2"
)

var (
	cubeColor     = color.RGBA{R: 0x22, G: 0xC5, B: 0x5E, A: 0xFF}
	emissiveColor = color.RGBA{R: 0x16, G: 0xA3, B: 0x4A, A: 0xFF}
)

const emissiveIntensity = 0.1

// LabelPlacement places one text label relative to the cube centre. Rotation is
// an XYZ Euler triple applied to a plane that faces +Z.
type LabelPlacement struct {
	Text     string
	Position mgl64.Vec3
	Rotation mgl64.Vec3
}

// LabelQuad is a textured plane attached to a Box.
type LabelQuad struct {
	Text    string
	Texture *ebiten.Image
	Corners [4]mgl64.Vec3 // top left, top right, bottom right, bottom left
	Normal  mgl64.Vec3
}

// Box is the cube's geometry in object space. Replace it, never resize it,
// and Dispose the old one first.
type Box struct {
	Size   float64
	Mesh   *Mesh
	Faces  []*Face
	Labels []*LabelQuad

	disposed bool
}

// NewBox builds a cube of edge size centred on the origin.
func NewBox(size float64, col color.RGBA) *Box {
	h := size / 2
	mesh := NewMesh()
	b := &Box{Size: size, Mesh: mesh}

	p := [8]mgl64.Vec3{
		{-h, -h, -h}, {h, -h, -h}, {h, h, -h}, {-h, h, -h},
		{-h, -h, h}, {h, -h, h}, {h, h, h}, {-h, h, h},
	}

	faces := [][4]int{
		{4, 5, 6, 7}, // +Z
		{1, 0, 3, 2}, // -Z
		{5, 1, 2, 6}, // +X
		{0, 4, 7, 3}, // -X
		{7, 6, 2, 3}, // +Y
		{0, 1, 5, 4}, // -Y
	}
	for _, fd := range faces {
		b.Faces = append(b.Faces, NewFace(mesh, col, p[fd[0]], p[fd[1]], p[fd[2]], p[fd[3]]))
	}
	return b
}

// StandardLabels returns the six label placements at distance d from the
// centre, front label first.
func StandardLabels(front string, d float64) []LabelPlacement {
	return []LabelPlacement{
		{Text: front, Position: mgl64.Vec3{0, 0, d}, Rotation: mgl64.Vec3{0, 0, 0}},
		{Text: "PREMIUM", Position: mgl64.Vec3{d, 0, 0}, Rotation: mgl64.Vec3{0, math.Pi / 2, 0}},
		{Text: "COTA", Position: mgl64.Vec3{0, d, 0}, Rotation: mgl64.Vec3{-math.Pi / 2, 0, 0}},
		{Text: "DESIGN", Position: mgl64.Vec3{-d, 0, 0}, Rotation: mgl64.Vec3{0, -math.Pi / 2, 0}},
		{Text: "PILOT", Position: mgl64.Vec3{0, 0, -d}, Rotation: mgl64.Vec3{0, math.Pi, 0}},
		{Text: "PROJECT", Position: mgl64.Vec3{0, -d, 0}, Rotation: mgl64.Vec3{math.Pi / 2, 0, 0}},
	}
}

// AddLabel attaches a width x height plane to the box.
func (b *Box) AddLabel(pl LabelPlacement, width, height float64, texture *ebiten.Image) *LabelQuad {
	rot := mgl64.Rotate3DX(pl.Rotation.X()).
		Mul3(mgl64.Rotate3DY(pl.Rotation.Y())).
		Mul3(mgl64.Rotate3DZ(pl.Rotation.Z()))

	hw, hh := width/2, height/2
	local := [4]mgl64.Vec3{
		{-hw, hh, 0}, {hw, hh, 0}, {hw, -hh, 0}, {-hw, -hh, 0},
	}

	q := &LabelQuad{
		Text:    pl.Text,
		Texture: texture,
		Normal:  rot.Mul3x1(mgl64.Vec3{0, 0, 1}),
	}
	for i, c := range local {
		q.Corners[i] = pl.Position.Add(rot.Mul3x1(c))
	}
	b.Labels = append(b.Labels, q)
	return q
}

// Dispose drops the geometry. Textures belong to the label cache, not the box.
func (b *Box) Dispose() {
	if b.disposed {
		return
	}
	b.disposed = true
	b.Mesh = nil
	b.Faces = nil
	b.Labels = nil
}

func (b *Box) Disposed() bool {
	return b.disposed
}

// Intersects reports whether r hits any face or label of the box once it is
// placed in the world by model.
func (b *Box) Intersects(r Ray, model mgl64.Mat4) bool {
	if b.disposed {
		return false
	}
	world := b.Mesh.Transform(model, nil)
	poly := make([]mgl64.Vec3, 0, 4)
	for _, f := range b.Faces {
		poly = f.Gather(world, poly)
		if LineIntersectsPolygon(r.Start, r.End, poly) {
			return true
		}
	}
	for _, l := range b.Labels {
		poly = poly[:0]
		for _, c := range l.Corners {
			poly = append(poly, mgl64.TransformCoordinate(c, model))
		}
		if LineIntersectsPolygon(r.Start, r.End, poly) {
			return true
		}
	}
	return false
}

// ModelMatrix places an object at pos with pitch about X applied after yaw
// about Y, matching an XYZ Euler order.
func ModelMatrix(pos mgl64.Vec3, pitch, yaw float64) mgl64.Mat4 {
	return mgl64.Translate3D(pos.X(), pos.Y(), pos.Z()).
		Mul4(mgl64.HomogRotate3DX(pitch)).
		Mul4(mgl64.HomogRotate3DY(yaw))
}
