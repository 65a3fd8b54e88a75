package interaction

import "github.com/go-gl/mathgl/mgl64"

// Pose is a position combined with an orientation.
// Two poses are equal when both parts are equal component-wise, so == is the
// change-detection rule for six degree of freedom mappings.
type Pose struct {
	Position mgl64.Vec3
	Rotation mgl64.Quat
}

// PoseZeroIdentity is the origin with no rotation.
var PoseZeroIdentity = Pose{Rotation: mgl64.QuatIdent()}

// ApproxEqual compares both parts within mgl64's default epsilon.
func (p Pose) ApproxEqual(o Pose) bool {
	return p.Position.ApproxEqual(o.Position) && p.Rotation.ApproxEqual(o.Rotation)
}
