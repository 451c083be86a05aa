package interaction

type Vec3 struct {
	X, Y, Z float64
}

// Pose is the cube's position and orientation in world space.
// Pitch rotates about X, Yaw about Y. Roll is never touched.
type Pose struct {
	Position Vec3
	Pitch    float64
	Yaw      float64
}

// MoveTo places the pose at v without touching its orientation.
func (p *Pose) MoveTo(v Vec3) {
	p.Position = v
}

type PointerSample struct {
	X, Y float64
}
