package helm3d

import (
	"image"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

var (
	whiteImage = ebiten.NewImage(3, 3)
	whiteSub   *ebiten.Image
)

func init() {
	whiteImage.Fill(color.White)
	whiteSub = whiteImage.SubImage(image.Rect(1, 1, 2, 2)).(*ebiten.Image)
}

// painter draws the cube's screen-space polygons. The vertex and index
// buffers are reused from frame to frame; a painter belongs to one scene and
// is only used from Draw.
type painter struct {
	vertices []ebiten.Vertex
	indices  []uint16
	path     vector.Path

	fillOp   ebiten.DrawTrianglesOptions
	strokeOp vector.StrokeOptions
	texOp    ebiten.DrawTrianglesOptions
}

func newPainter() *painter {
	p := &painter{}
	p.fillOp.AntiAlias = true
	p.strokeOp.LineJoin = vector.LineJoinRound
	p.texOp.AntiAlias = true
	p.texOp.Filter = ebiten.FilterLinear
	return p
}

func colorScale(clr color.RGBA) (r, g, b, a float32) {
	return float32(clr.R) / 255, float32(clr.G) / 255, float32(clr.B) / 255, float32(clr.A) / 255
}

// fill draws a convex polygon as a triangle fan.
func (p *painter) fill(screen *ebiten.Image, xp, yp []float32, clr color.RGBA) {
	if len(xp) < 3 {
		return
	}
	cr, cg, cb, ca := colorScale(clr)

	p.vertices = p.vertices[:0]
	for i := range xp {
		p.vertices = append(p.vertices, ebiten.Vertex{
			DstX: xp[i], DstY: yp[i],
			SrcX: 1, SrcY: 1,
			ColorR: cr, ColorG: cg, ColorB: cb, ColorA: ca,
		})
	}
	p.indices = p.indices[:0]
	for i := 2; i < len(xp); i++ {
		p.indices = append(p.indices, 0, uint16(i-1), uint16(i))
	}
	screen.DrawTriangles(p.vertices, p.indices, whiteSub, &p.fillOp)
}

// outline strokes the closed polygon. A transparent colour or a zero width
// draws nothing, which is how a scene turns edges off.
func (p *painter) outline(screen *ebiten.Image, xp, yp []float32, width float32, clr color.RGBA) {
	if len(xp) < 2 || width <= 0 || clr.A == 0 {
		return
	}

	p.path = vector.Path{}
	p.path.MoveTo(xp[0], yp[0])
	for i := 1; i < len(xp); i++ {
		p.path.LineTo(xp[i], yp[i])
	}
	p.path.Close()

	p.strokeOp.Width = width
	p.vertices, p.indices = p.path.AppendVerticesAndIndicesForStroke(p.vertices[:0], p.indices[:0], &p.strokeOp)

	cr, cg, cb, ca := colorScale(clr)
	for i := range p.vertices {
		v := &p.vertices[i]
		v.SrcX, v.SrcY = 1, 1
		v.ColorR, v.ColorG, v.ColorB, v.ColorA = cr, cg, cb, ca
	}
	screen.DrawTriangles(p.vertices, p.indices, whiteSub, &p.fillOp)
}

// texturedQuad maps the whole of tex onto the screen quad given in top left,
// top right, bottom right, bottom left order.
func (p *painter) texturedQuad(screen, tex *ebiten.Image, xp, yp []float32) {
	if tex == nil || len(xp) != 4 {
		return
	}
	b := tex.Bounds()
	sx0, sy0 := float32(b.Min.X), float32(b.Min.Y)
	sx1, sy1 := float32(b.Max.X), float32(b.Max.Y)
	src := [4][2]float32{{sx0, sy0}, {sx1, sy0}, {sx1, sy1}, {sx0, sy1}}

	p.vertices = p.vertices[:0]
	for i := range src {
		p.vertices = append(p.vertices, ebiten.Vertex{
			DstX: xp[i], DstY: yp[i],
			SrcX: src[i][0], SrcY: src[i][1],
			ColorR: 1, ColorG: 1, ColorB: 1, ColorA: 1,
		})
	}
	p.indices = append(p.indices[:0], 0, 1, 2, 0, 2, 3)
	screen.DrawTriangles(p.vertices, p.indices, tex, &p.texOp)
}
