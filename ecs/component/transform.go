package component

// Transform places an object in world space. Angles are radians; Yaw is the
// rotation about the vertical axis.
type Transform struct {
	X, Y, Z float64
	Pitch   float64
	Yaw     float64
	Roll    float64
	Scale   float64
}

// GetYaw and SetYaw let a Transform act as a rotation target.
func (t *Transform) GetYaw() float64 {
	return t.Yaw
}

func (t *Transform) SetYaw(yaw float64) {
	t.Yaw = yaw
}

var TransformComponent = NewComponent[Transform]()
