package system

import (
	"github.com/milk9111/folio/ecs"
	"github.com/milk9111/folio/ecs/component"
	"github.com/milk9111/folio/stagescript"
	"go.uber.org/zap"
)

// PopupSystem shows the card for the latest stage change and hides it when
// the island leaves every stage window. Cards run through the stage script
// when one is set, and the current card is rebuilt after a prefab reload.
type PopupSystem struct {
	log    *zap.Logger
	script *stagescript.Runtime
}

func NewPopupSystem(log *zap.Logger, script *stagescript.Runtime) *PopupSystem {
	if log == nil {
		log = zap.NewNop()
	}
	return &PopupSystem{log: log, script: script}
}

// SetScript swaps the stage script, e.g. after a hot reload. A nil script
// shows cards unchanged.
func (s *PopupSystem) SetScript(rt *stagescript.Runtime) {
	s.script = rt
}

func (s *PopupSystem) Update(w *ecs.World) {
	if s == nil || w == nil {
		return
	}
	if events := w.Events().Peek(ecs.EventStageChanged); len(events) > 0 {
		last, ok := events[len(events)-1].Data.(ecs.StageChanged)
		if !ok {
			return
		}
		ecs.ForEach(w, component.StagePopupComponent.Kind(), func(_ ecs.Entity, p *component.StagePopup) {
			s.apply(p, last.Stage)
		})
		return
	}

	if len(w.Events().Peek(ecs.EventPrefabsReloaded)) > 0 {
		ecs.ForEach(w, component.StagePopupComponent.Kind(), func(_ ecs.Entity, p *component.StagePopup) {
			s.apply(p, p.Stage)
		})
	}
}

func (s *PopupSystem) apply(p *component.StagePopup, stage int) {
	base, ok := p.Cards[stage]
	if !ok {
		p.Stage = stage
		p.Visible = false
		p.Card = component.StageCard{}
		return
	}

	card := base
	if s.script != nil {
		decorated, err := s.script.Card(stage, base)
		if err != nil {
			s.log.Warn("stage script failed", zap.String("script", s.script.Path()), zap.Int("stage", stage), zap.Error(err))
		} else {
			card = decorated
		}
	}
	p.Stage = stage
	p.Card = card
	p.Visible = true
}
