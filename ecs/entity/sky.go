package entity

import (
	"fmt"

	"github.com/milk9111/folio/ecs"
	"github.com/milk9111/folio/ecs/component"
	"github.com/milk9111/folio/prefabs"
	"github.com/milk9111/folio/rotation"
	"github.com/milk9111/folio/scene"
)

func NewSky(w *ecs.World) (ecs.Entity, error) {
	spec, err := prefabs.LoadSkySpec()
	if err != nil {
		return 0, fmt.Errorf("sky: load spec: %w", err)
	}

	sky := ecs.CreateEntity(w)
	if err := ecs.Add(w, sky, component.SkyTagComponent.Kind(), &component.SkyTag{}); err != nil {
		return 0, fmt.Errorf("sky: add sky tag: %w", err)
	}

	placement := scene.SkyPlacement()
	if spec.Transform != (prefabs.TransformSpec{}) {
		placement = spec.Transform.Placement()
	}
	if err := ecs.Add(w, sky, component.TransformComponent.Kind(), transformFromPlacement(placement)); err != nil {
		return 0, fmt.Errorf("sky: add transform: %w", err)
	}
	if err := ecs.Add(w, sky, component.SpinnerComponent.Kind(), &component.Spinner{Spin: rotation.Spin{Rate: spec.SpinRate}}); err != nil {
		return 0, fmt.Errorf("sky: add spinner: %w", err)
	}
	if err := ecs.Add(w, sky, component.MeshComponent.Kind(), &component.Mesh{Mesh: scene.SkyMesh(), Background: true}); err != nil {
		return 0, fmt.Errorf("sky: add mesh: %w", err)
	}

	return sky, nil
}
