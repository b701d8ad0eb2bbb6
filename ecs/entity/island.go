package entity

import (
	"fmt"

	"github.com/milk9111/folio/ecs"
	"github.com/milk9111/folio/ecs/component"
	"github.com/milk9111/folio/prefabs"
	"github.com/milk9111/folio/rotation"
	"github.com/milk9111/folio/scene"
)

// NewIsland builds the rotatable island for a window screenWidth pixels
// wide. The returned controller still has to be attached to an input bus.
func NewIsland(w *ecs.World, screenWidth int) (ecs.Entity, *rotation.Controller, error) {
	spec, err := prefabs.LoadIslandSpec()
	if err != nil {
		return 0, nil, fmt.Errorf("island: load spec: %w", err)
	}
	cfg, err := spec.RotationConfig()
	if err != nil {
		return 0, nil, fmt.Errorf("island: rotation config: %w", err)
	}

	island := ecs.CreateEntity(w)
	if err := ecs.Add(w, island, component.IslandTagComponent.Kind(), &component.IslandTag{}); err != nil {
		return 0, nil, fmt.Errorf("island: add island tag: %w", err)
	}

	transform := transformFromPlacement(spec.Placement(screenWidth))
	if err := ecs.Add(w, island, component.TransformComponent.Kind(), transform); err != nil {
		return 0, nil, fmt.Errorf("island: add transform: %w", err)
	}

	controller := rotation.NewController(transform, cfg)
	if err := ecs.Add(w, island, component.RotatorComponent.Kind(), &component.Rotator{Controller: controller}); err != nil {
		return 0, nil, fmt.Errorf("island: add rotator: %w", err)
	}
	if err := ecs.Add(w, island, component.InteractionComponent.Kind(), &component.Interaction{}); err != nil {
		return 0, nil, fmt.Errorf("island: add interaction: %w", err)
	}
	if err := ecs.Add(w, island, component.MeshComponent.Kind(), &component.Mesh{Mesh: scene.IslandMesh(cfg.Windows)}); err != nil {
		return 0, nil, fmt.Errorf("island: add mesh: %w", err)
	}

	return island, controller, nil
}

// ResizeIsland reapplies the width-dependent scale to an existing island.
func ResizeIsland(w *ecs.World, island ecs.Entity, spec *prefabs.IslandSpec, screenWidth int) {
	transform, ok := ecs.Get(w, island, component.TransformComponent.Kind())
	if !ok || spec == nil {
		return
	}
	transform.Scale = spec.Placement(screenWidth).Scale
}
