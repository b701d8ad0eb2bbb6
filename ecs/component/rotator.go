package component

import "github.com/milk9111/folio/rotation"

// Rotator binds a user-driven rotation controller to an entity.
type Rotator struct {
	Controller *rotation.Controller
}

var RotatorComponent = NewComponent[Rotator]()

// Spinner rotates an entity at a constant rate while the scene's
// Interaction reports that the user is rotating.
type Spinner struct {
	Spin rotation.Spin
}

var SpinnerComponent = NewComponent[Spinner]()
