package component

// Camera is a pinhole camera looking down -Z from its transform.
type Camera struct {
	FOV  float64
	Near float64
	Far  float64
}

var CameraComponent = NewComponent[Camera]()
