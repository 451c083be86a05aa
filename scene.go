package helm3d

import (
	"fmt"
	"image/color"
	"strings"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/hajimehoshi/ebiten/v2"
	"go.uber.org/zap"

	"github.com/smasonuk/helm3d/interaction"
)

const DefaultFrontLabel = "HELM"

var edgeColor = color.RGBA{R: 20, G: 80, B: 40, A: 60}

type SceneOptions struct {
	Width, Height int
	Breakpoint    int
	Gesture       interaction.Options

	// FrontLabel is the text on the +Z face. It is upper-cased; empty means
	// DefaultFrontLabel.
	FrontLabel string

	Background color.Color
	Clock      interaction.Clock
	Labels     LabelSource
	Log        *zap.Logger

	// HideEdges turns off the thin outline drawn around each face.
	HideEdges bool
}

// Scene owns the camera, lights, cube geometry, pose and gesture interpreter,
// and advances them once per frame.
type Scene struct {
	log        *zap.Logger
	clock      interaction.Clock
	background color.Color

	camera   *Camera
	viewport interaction.Viewport
	lights   Lights
	painter  *painter
	edges    color.RGBA

	responsive *interaction.Responsive
	layout     interaction.Layout
	frontLabel string
	labels     LabelSource

	box       *Box
	liveBoxes int
	pose      interaction.Pose
	idle      *interaction.IdleAnimator
	gesture   *interaction.Interpreter
	closed    bool

	// scratch buffers reused across frames
	world  []mgl64.Vec3
	poly   []mgl64.Vec3
	xs, ys []float32
}

func NewScene(opts SceneOptions) (*Scene, error) {
	log := opts.Log
	if log == nil {
		log = zap.NewNop()
	}
	viewport := interaction.NewViewport(opts.Width, opts.Height)
	if viewport.Empty() {
		return nil, ErrNoSurface
	}

	labels := opts.Labels
	if labels == nil {
		tl, err := NewTextLabels()
		if err != nil {
			return nil, err
		}
		labels = tl
	}

	clock := opts.Clock
	if clock == nil {
		clock = interaction.SystemClock
	}

	front := strings.ToUpper(strings.TrimSpace(opts.FrontLabel))
	if front == "" {
		front = DefaultFrontLabel
	}

	log.Info("initializing scene", zap.Int("width", opts.Width), zap.Int("height", opts.Height))

	s := &Scene{
		log:        log,
		clock:      clock,
		background: opts.Background,
		viewport:   viewport,
		lights:     DefaultLights(),
		responsive: interaction.NewResponsive(opts.Breakpoint),
		frontLabel: front,
		labels:     labels,
		idle:       interaction.NewIdleAnimator(),
	}
	s.painter = newPainter()
	if !opts.HideEdges {
		s.edges = edgeColor
	}

	s.camera = NewPerspectiveCamera(defaultFov, viewport.Width/viewport.Height, defaultNear, defaultFar)
	s.camera.SetPosition(0, 0, 5)
	s.camera.LookAt(0, 0, 0)

	s.gesture = interaction.NewInterpreter(&s.pose, s, opts.Gesture, log.Named("gesture"))

	layout, _ := s.responsive.Update(opts.Width)
	if err := s.applyLayout(layout); err != nil {
		labels.Release()
		return nil, err
	}

	log.Info("scene initialized", zap.Stringer("layout", layout.Class))
	return s, nil
}

// applyLayout rebuilds the cube for l and puts it on the new baseline.
func (s *Scene) applyLayout(l interaction.Layout) error {
	if s.box != nil {
		s.box.Dispose()
		s.box = nil
		s.liveBoxes--
	}

	box := NewBox(l.CubeSize, cubeColor)
	for _, pl := range StandardLabels(s.frontLabel, l.LabelDistance) {
		tex, err := s.labels.Texture(pl.Text)
		if err != nil {
			return fmt.Errorf("label %q: %w", pl.Text, err)
		}
		box.AddLabel(pl, l.LabelWidth, l.LabelHeight, tex)
	}
	s.box = box
	s.liveBoxes++

	s.layout = l
	s.pose.MoveTo(l.Baseline)
	s.idle.Reset()

	s.log.Debug("geometry rebuilt",
		zap.Stringer("layout", l.Class),
		zap.Float64("size", l.CubeSize),
		zap.Int("points", box.Mesh.PointCount()))
	return nil
}

// Resize follows the window. The camera aspect always updates; the cube is
// only rebuilt when the width crosses the breakpoint.
func (s *Scene) Resize(width, height int) error {
	if s.closed {
		return ErrSceneClosed
	}
	vp := interaction.NewViewport(width, height)
	if vp.Empty() {
		return ErrNoSurface
	}
	if vp == s.viewport {
		return nil
	}
	s.viewport = vp
	s.camera.SetAspect(vp.Width / vp.Height)

	if l, changed := s.responsive.Update(width); changed {
		return s.applyLayout(l)
	}
	return nil
}

// HandlePointer feeds one pointer event to the gesture interpreter.
func (s *Scene) HandlePointer(ev interaction.PointerEvent) {
	if s.closed {
		return
	}
	if ev.Time.IsZero() {
		ev.Time = s.clock.Now()
	}
	s.gesture.Handle(ev)
}

// Update is one animation step.
func (s *Scene) Update() {
	if s.closed {
		return
	}
	s.gesture.Tick(s.clock.Now())
	if !s.gesture.Dragging() {
		s.idle.Step(&s.pose)
	}
}

func (s *Scene) modelMatrix() mgl64.Mat4 {
	p := s.pose.Position
	return ModelMatrix(mgl64.Vec3{p.X, p.Y, p.Z}, s.pose.Pitch, s.pose.Yaw)
}

// Pick casts the camera ray through an NDC point and tests it against the
// cube in its current pose.
func (s *Scene) Pick(ndcX, ndcY float64) bool {
	if s.box == nil {
		return false
	}
	return s.box.Intersects(s.camera.Ray(ndcX, ndcY), s.modelMatrix())
}

func (s *Scene) Viewport() interaction.Viewport { return s.viewport }

func (s *Scene) Camera() *Camera { return s.camera }

func (s *Scene) Pose() interaction.Pose { return s.pose }

func (s *Scene) Mode() interaction.Mode { return s.gesture.Mode() }

func (s *Scene) Gesture() *interaction.Interpreter { return s.gesture }

func (s *Scene) Layout() interaction.Layout { return s.layout }

func (s *Scene) Box() *Box { return s.box }

// LiveGeometries counts boxes built and not yet disposed.
func (s *Scene) LiveGeometries() int { return s.liveBoxes }

// Draw renders the cube: visible faces flat shaded, then their labels.
func (s *Scene) Draw(screen *ebiten.Image) {
	if s.background != nil {
		screen.Fill(s.background)
	} else {
		screen.Clear()
	}
	if s.box == nil {
		return
	}

	model := s.modelMatrix()
	rot := model.Mat3()
	eye := s.camera.GetPosition()
	s.world = s.box.Mesh.Transform(model, s.world)

	for _, f := range s.box.Faces {
		s.poly = f.Gather(s.world, s.poly)
		normal := rot.Mul3x1(f.Normal())
		if normal.Dot(eye.Sub(s.poly[0])) <= 0 {
			continue
		}
		if !s.projectPoly(s.poly) {
			continue
		}
		col := s.lights.Shade(f.Col, emissiveColor, emissiveIntensity, f.GetMidPoint(s.world), normal)
		s.painter.fill(screen, s.xs, s.ys, col)
		s.painter.outline(screen, s.xs, s.ys, 1.0, s.edges)
	}

	for _, l := range s.box.Labels {
		s.poly = s.poly[:0]
		for _, c := range l.Corners {
			s.poly = append(s.poly, mgl64.TransformCoordinate(c, model))
		}
		normal := rot.Mul3x1(l.Normal)
		if normal.Dot(eye.Sub(s.poly[0])) <= 0 {
			continue
		}
		if !s.projectPoly(s.poly) {
			continue
		}
		s.painter.texturedQuad(screen, l.Texture, s.xs, s.ys)
	}
}

func (s *Scene) projectPoly(points []mgl64.Vec3) bool {
	s.xs = s.xs[:0]
	s.ys = s.ys[:0]
	for _, p := range points {
		x, y, ok := s.camera.Project(p, s.viewport)
		if !ok {
			return false
		}
		s.xs = append(s.xs, float32(x))
		s.ys = append(s.ys, float32(y))
	}
	return true
}

// Close releases the geometry and the label textures.
func (s *Scene) Close() {
	if s.closed {
		return
	}
	s.closed = true
	if s.box != nil {
		s.box.Dispose()
		s.box = nil
		s.liveBoxes--
	}
	s.labels.Release()
	s.log.Info("scene closed")
}
