package interaction

// DefaultBreakpoint is the widest viewport, in pixels, that still gets the
// mobile layout.
const DefaultBreakpoint = 768

type Class int

const (
	ClassDesktop Class = iota
	ClassMobile
)

func (c Class) String() string {
	if c == ClassMobile {
		return "mobile"
	}
	return "desktop"
}

// Layout holds every constant that depends on the viewport width.
type Layout struct {
	Class         Class
	Baseline      Vec3
	CubeSize      float64
	LabelDistance float64
	LabelWidth    float64
	LabelHeight   float64
}

var (
	mobileLayout = Layout{
		Class:         ClassMobile,
		Baseline:      Vec3{X: 0, Y: 0.8, Z: 0},
		CubeSize:      1.0,
		LabelDistance: 0.51,
		LabelWidth:    0.6,
		LabelHeight:   0.15,
	}
	desktopLayout = Layout{
		Class:         ClassDesktop,
		Baseline:      Vec3{X: -1.2, Y: 0, Z: 0},
		CubeSize:      1.5,
		LabelDistance: 0.76,
		LabelWidth:    0.9,
		LabelHeight:   0.225,
	}
)

// LayoutFor picks the layout for a viewport width. A breakpoint <= 0 means
// DefaultBreakpoint.
func LayoutFor(width, breakpoint int) Layout {
	if breakpoint <= 0 {
		breakpoint = DefaultBreakpoint
	}
	if width <= breakpoint {
		return mobileLayout
	}
	return desktopLayout
}

// Responsive tracks the current layout class across resizes.
type Responsive struct {
	breakpoint int
	current    Layout
	known      bool
}

func NewResponsive(breakpoint int) *Responsive {
	return &Responsive{breakpoint: breakpoint}
}

// Update returns the layout for width and whether it differs from the last
// one. The first call always reports a change.
func (r *Responsive) Update(width int) (Layout, bool) {
	next := LayoutFor(width, r.breakpoint)
	if r.known && next.Class == r.current.Class {
		return r.current, false
	}
	r.current = next
	r.known = true
	return next, true
}

func (r *Responsive) Current() Layout {
	return r.current
}
