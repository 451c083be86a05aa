package helm3d

import "github.com/go-gl/mathgl/mgl64"

// Mesh is a vertex list where identical points share one index.
type Mesh struct {
	Points     []mgl64.Vec3
	pointIndex map[mgl64.Vec3]int
}

func NewMesh() *Mesh {
	return &Mesh{
		Points:     make([]mgl64.Vec3, 0, 8),
		pointIndex: make(map[mgl64.Vec3]int),
	}
}

// AddPoint returns the index of p, adding it if it is new.
func (m *Mesh) AddPoint(p mgl64.Vec3) int {
	if index, found := m.pointIndex[p]; found {
		return index
	}
	m.Points = append(m.Points, p)
	newIndex := len(m.Points) - 1
	m.pointIndex[p] = newIndex
	return newIndex
}

func (m *Mesh) PointCount() int {
	return len(m.Points)
}

// Transform writes every point through mat into dest, growing it if needed.
func (m *Mesh) Transform(mat mgl64.Mat4, dest []mgl64.Vec3) []mgl64.Vec3 {
	if cap(dest) < len(m.Points) {
		dest = make([]mgl64.Vec3, len(m.Points))
	}
	dest = dest[:len(m.Points)]
	for i, p := range m.Points {
		dest[i] = mgl64.TransformCoordinate(p, mat)
	}
	return dest
}
