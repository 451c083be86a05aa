package interaction

// Viewport is the on-screen rectangle the scene is rendered into.
type Viewport struct {
	X, Y          float64
	Width, Height float64
}

func NewViewport(width, height int) Viewport {
	return Viewport{Width: float64(width), Height: float64(height)}
}

func (v Viewport) Empty() bool {
	return v.Width <= 0 || v.Height <= 0
}

// NDC converts a screen point into normalized device coordinates, x right and
// y up, both in [-1, 1] inside the viewport.
func (v Viewport) NDC(x, y float64) (float64, float64, bool) {
	if v.Empty() {
		return 0, 0, false
	}
	nx := ((x-v.X)/v.Width)*2 - 1
	ny := -((y-v.Y)/v.Height)*2 + 1
	return nx, ny, true
}

// Screen is the inverse of NDC.
func (v Viewport) Screen(ndcX, ndcY float64) (float64, float64) {
	x := (ndcX+1)/2*v.Width + v.X
	y := (1-ndcY)/2*v.Height + v.Y
	return x, y
}
