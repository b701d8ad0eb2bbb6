package system

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/folio/ecs"
)

// CursorSystem shows a grab cursor over the idle island and a move cursor
// while it is being rotated. It follows RotatingChanged events, so it must
// run after the rotation system in the same tick.
type CursorSystem struct {
	set     func(ebiten.CursorShapeType)
	current ebiten.CursorShapeType
	applied bool
}

// NewCursorSystem returns a system that applies shapes with set. A nil set
// uses ebiten.SetCursorShape.
func NewCursorSystem(set func(ebiten.CursorShapeType)) *CursorSystem {
	if set == nil {
		set = ebiten.SetCursorShape
	}
	return &CursorSystem{set: set, current: ebiten.CursorShapePointer}
}

func (s *CursorSystem) Update(w *ecs.World) {
	if s == nil || w == nil {
		return
	}
	shape := s.current
	for _, evt := range w.Events().Peek(ecs.EventRotatingChanged) {
		changed, ok := evt.Data.(ecs.RotatingChanged)
		if !ok {
			continue
		}
		shape = ebiten.CursorShapePointer
		if changed.Rotating {
			shape = ebiten.CursorShapeMove
		}
	}
	if s.applied && shape == s.current {
		return
	}
	s.current, s.applied = shape, true
	s.set(shape)
}
