package entity

import (
	"fmt"

	"github.com/milk9111/folio/ecs"
	"github.com/milk9111/folio/ecs/component"
	"github.com/milk9111/folio/prefabs"
	"github.com/milk9111/folio/stagescript"
)

// NewStagePopup builds the hidden popup entity and compiles the stage script
// the prefab names, if any.
func NewStagePopup(w *ecs.World) (ecs.Entity, *stagescript.Runtime, error) {
	spec, err := prefabs.LoadStagesSpec()
	if err != nil {
		return 0, nil, fmt.Errorf("stage popup: load spec: %w", err)
	}

	var script *stagescript.Runtime
	if spec.Script != "" {
		script, err = CompileStageScript(spec.Script)
		if err != nil {
			return 0, nil, err
		}
	}

	popup := ecs.CreateEntity(w)
	if err := ecs.Add(w, popup, component.StagePopupComponent.Kind(), &component.StagePopup{Cards: StageCards(spec)}); err != nil {
		return 0, nil, fmt.Errorf("stage popup: add popup: %w", err)
	}
	return popup, script, nil
}

// StageCards indexes a stages spec by stage number.
func StageCards(spec *prefabs.StagesSpec) map[int]component.StageCard {
	cards := make(map[int]component.StageCard, len(spec.Cards))
	for _, c := range spec.Cards {
		cards[c.Stage] = component.StageCard{Title: c.Title, Body: c.Body, Link: c.Link}
	}
	return cards
}

// CompileStageScript loads and compiles a stage script from the prefabs.
func CompileStageScript(path string) (*stagescript.Runtime, error) {
	src, err := prefabs.LoadScript(path)
	if err != nil {
		return nil, fmt.Errorf("stage popup: load script: %w", err)
	}
	rt, err := stagescript.Compile(path, src)
	if err != nil {
		return nil, fmt.Errorf("stage popup: %w", err)
	}
	return rt, nil
}
