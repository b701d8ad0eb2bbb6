package entity

import (
	"github.com/milk9111/folio/ecs/component"
	"github.com/milk9111/folio/scene"
)

func transformFromPlacement(p scene.Placement) *component.Transform {
	return &component.Transform{
		X:     p.Position.X(),
		Y:     p.Position.Y(),
		Z:     p.Position.Z(),
		Pitch: p.Pitch,
		Yaw:   p.Yaw,
		Scale: p.Scale,
	}
}
