package helm3d

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/smasonuk/helm3d/interaction"
)

const (
	defaultFov  = 50.0
	defaultNear = 0.1
	defaultFar  = 1000.0
)

// Camera is a perspective camera looking down -Z from its position.
type Camera struct {
	fov    float64 // vertical, degrees
	aspect float64
	near   float64
	far    float64

	position mgl64.Vec3
	target   mgl64.Vec3

	projection mgl64.Mat4
	view       mgl64.Mat4
	viewProj   mgl64.Mat4
	inverse    mgl64.Mat4
}

func NewPerspectiveCamera(fov, aspect, near, far float64) *Camera {
	c := &Camera{
		fov:    fov,
		aspect: aspect,
		near:   near,
		far:    far,
		target: mgl64.Vec3{0, 0, 0},
	}
	c.position = mgl64.Vec3{0, 0, 1}
	c.update()
	return c
}

func (c *Camera) SetPosition(x, y, z float64) {
	c.position = mgl64.Vec3{x, y, z}
	c.update()
}

func (c *Camera) GetPosition() mgl64.Vec3 {
	return c.position
}

func (c *Camera) LookAt(x, y, z float64) {
	c.target = mgl64.Vec3{x, y, z}
	c.update()
}

func (c *Camera) SetAspect(aspect float64) {
	if aspect <= 0 {
		return
	}
	c.aspect = aspect
	c.update()
}

func (c *Camera) Aspect() float64 {
	return c.aspect
}

func (c *Camera) update() {
	c.projection = mgl64.Perspective(mgl64.DegToRad(c.fov), c.aspect, c.near, c.far)
	c.view = mgl64.LookAtV(c.position, c.target, mgl64.Vec3{0, 1, 0})
	c.viewProj = c.projection.Mul4(c.view)
	c.inverse = c.viewProj.Inv()
}

// Project maps a world point to screen pixels inside vp. ok is false for
// points behind the camera.
func (c *Camera) Project(p mgl64.Vec3, vp interaction.Viewport) (x, y float64, ok bool) {
	clip := c.viewProj.Mul4x1(p.Vec4(1))
	if clip.W() <= 0 {
		return 0, 0, false
	}
	ndc := clip.Vec3().Mul(1 / clip.W())
	x, y = vp.Screen(ndc.X(), ndc.Y())
	return x, y, true
}

// Ray returns the segment from the near plane to the far plane through an
// NDC point.
func (c *Camera) Ray(ndcX, ndcY float64) Ray {
	start := c.unproject(ndcX, ndcY, -1)
	end := c.unproject(ndcX, ndcY, 1)
	return Ray{Start: start, End: end}
}

func (c *Camera) unproject(x, y, z float64) mgl64.Vec3 {
	v := c.inverse.Mul4x1(mgl64.Vec4{x, y, z, 1})
	if v.W() == 0 {
		return v.Vec3()
	}
	return v.Vec3().Mul(1 / v.W())
}
