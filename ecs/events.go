package ecs

// EventType names an event payload.
type EventType string

const (
	// EventStageChanged carries a StageChanged payload.
	EventStageChanged EventType = "stage_changed"
	// EventRotatingChanged carries a RotatingChanged payload.
	EventRotatingChanged EventType = "rotating_changed"
	// EventPrefabsReloaded is pushed after prefab specs were re-read from disk.
	EventPrefabsReloaded EventType = "prefabs_reloaded"
)

// Event is a generic ECS event payload.
type Event struct {
	Type EventType
	Data any
}

// StageChanged is emitted when an entity's classified stage changes.
type StageChanged struct {
	Entity Entity
	Stage  int
}

// RotatingChanged is emitted when an entity starts or stops being rotated
// by user input.
type RotatingChanged struct {
	Entity   Entity
	Rotating bool
}

// EventQueue is a FIFO queue cleared at the end of each tick.
type EventQueue struct {
	items []Event
}

// Push adds an event.
func (q *EventQueue) Push(evt Event) {
	if q == nil {
		return
	}
	q.items = append(q.items, evt)
}

// Peek returns queued events of the given type without removing them.
func (q *EventQueue) Peek(t EventType) []Event {
	if q == nil {
		return nil
	}
	var out []Event
	for _, evt := range q.items {
		if evt.Type == t {
			out = append(out, evt)
		}
	}
	return out
}

func (q *EventQueue) flush() {
	if q == nil {
		return
	}
	q.items = nil
}
