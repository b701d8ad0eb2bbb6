package system

import (
	"github.com/milk9111/folio/ecs"
	"github.com/milk9111/folio/ecs/component"
)

// SkySystem spins every Spinner entity while any Interaction in the world
// reports that the user is rotating.
type SkySystem struct {
	dt float64
}

// NewSkySystem returns a system advancing dt seconds per tick.
func NewSkySystem(dt float64) *SkySystem {
	return &SkySystem{dt: dt}
}

func (s *SkySystem) Update(w *ecs.World) {
	if s == nil || w == nil {
		return
	}
	rotating := false
	ecs.ForEach(w, component.InteractionComponent.Kind(), func(_ ecs.Entity, in *component.Interaction) {
		rotating = rotating || in.Rotating
	})

	ecs.ForEach2(w, component.SpinnerComponent.Kind(), component.TransformComponent.Kind(), func(_ ecs.Entity, sp *component.Spinner, t *component.Transform) {
		sp.Spin.Advance(t, rotating, s.dt)
	})
}
