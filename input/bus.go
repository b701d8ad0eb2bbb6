package input

// Handler receives published events.
type Handler func(Event)

type subscriber struct {
	id uint32
	fn Handler
}

// Bus dispatches events to subscribers by kind. Handlers run synchronously
// on the publishing goroutine in registration order. A Bus is not safe for
// concurrent use; it lives on the game loop.
type Bus struct {
	subs   map[Kind][]subscriber
	nextID uint32
}

// NewBus returns an empty bus.
func NewBus() *Bus {
	return &Bus{subs: make(map[Kind][]subscriber)}
}

// Subscription removes its handler from the bus when closed.
type Subscription struct {
	bus  *Bus
	kind Kind
	id   uint32
}

// Subscribe registers fn for events of kind k.
func (b *Bus) Subscribe(k Kind, fn Handler) Subscription {
	if b == nil || fn == nil {
		return Subscription{}
	}
	if b.subs == nil {
		b.subs = make(map[Kind][]subscriber)
	}
	b.nextID++
	b.subs[k] = append(b.subs[k], subscriber{id: b.nextID, fn: fn})
	return Subscription{bus: b, kind: k, id: b.nextID}
}

// Close unregisters the handler. Closing twice is a no-op.
func (s Subscription) Close() {
	if s.bus == nil || s.id == 0 {
		return
	}
	list := s.bus.subs[s.kind]
	for i := range list {
		if list[i].id == s.id {
			copy(list[i:], list[i+1:])
			list[len(list)-1] = subscriber{}
			s.bus.subs[s.kind] = list[:len(list)-1]
			return
		}
	}
}

// Publish delivers evt to every handler subscribed to its kind.
func (b *Bus) Publish(evt Event) {
	if b == nil {
		return
	}
	list := b.subs[evt.Kind]
	if len(list) == 0 {
		return
	}
	// Handlers may unsubscribe while we iterate.
	snapshot := append([]subscriber(nil), list...)
	for _, s := range snapshot {
		s.fn(evt)
	}
}

// Len returns the number of live subscriptions across all kinds.
func (b *Bus) Len() int {
	if b == nil {
		return 0
	}
	n := 0
	for _, list := range b.subs {
		n += len(list)
	}
	return n
}
