package system

import (
	"github.com/milk9111/folio/ecs"
	"github.com/milk9111/folio/ecs/component"
	"github.com/milk9111/folio/rotation"
	"go.uber.org/zap"
)

// RotationSystem ticks every rotation controller once per frame and mirrors
// its callbacks into the entity's Interaction and the world event queue.
type RotationSystem struct {
	log   *zap.Logger
	bound map[ecs.Entity]*rotation.Controller
}

func NewRotationSystem(log *zap.Logger) *RotationSystem {
	if log == nil {
		log = zap.NewNop()
	}
	return &RotationSystem{log: log, bound: make(map[ecs.Entity]*rotation.Controller)}
}

func (s *RotationSystem) Update(w *ecs.World) {
	if s == nil || w == nil {
		return
	}
	ecs.ForEach(w, component.RotatorComponent.Kind(), func(e ecs.Entity, r *component.Rotator) {
		if r.Controller == nil {
			return
		}
		if s.bound[e] != r.Controller {
			s.bind(w, e, r.Controller)
		}
		r.Controller.Tick()
	})

	for e := range s.bound {
		if !w.IsAlive(e) {
			delete(s.bound, e)
		}
	}
}

func (s *RotationSystem) bind(w *ecs.World, e ecs.Entity, c *rotation.Controller) {
	s.bound[e] = c
	c.OnRotatingChange(func(rotating bool) {
		if in, ok := ecs.Get(w, e, component.InteractionComponent.Kind()); ok {
			in.Rotating = rotating
		}
		w.Events().Push(ecs.Event{Type: ecs.EventRotatingChanged, Data: ecs.RotatingChanged{Entity: e, Rotating: rotating}})
		s.log.Debug("rotating changed", zap.Stringer("entity", e), zap.Bool("rotating", rotating))
	})
	c.OnStageChange(func(stage rotation.Stage) {
		if in, ok := ecs.Get(w, e, component.InteractionComponent.Kind()); ok {
			in.Stage = int(stage)
		}
		w.Events().Push(ecs.Event{Type: ecs.EventStageChanged, Data: ecs.StageChanged{Entity: e, Stage: int(stage)}})
		s.log.Info("stage changed", zap.Stringer("entity", e), zap.Stringer("stage", stage))
	})
	if in, ok := ecs.Get(w, e, component.InteractionComponent.Kind()); ok {
		in.Rotating = c.Rotating()
	}
}
