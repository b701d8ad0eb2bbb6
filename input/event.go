// Package input turns host input into discrete events and fans them out to
// subscribers. It has no dependency on the windowing layer so controllers
// can be driven directly in tests.
package input

// Kind identifies an input event.
type Kind uint8

const (
	PointerDown Kind = iota + 1
	PointerMove
	PointerUp
	TouchStart
	TouchMove
	TouchEnd
	KeyDown
	KeyUp
)

func (k Kind) String() string {
	switch k {
	case PointerDown:
		return "pointerdown"
	case PointerMove:
		return "pointermove"
	case PointerUp:
		return "pointerup"
	case TouchStart:
		return "touchstart"
	case TouchMove:
		return "touchmove"
	case TouchEnd:
		return "touchend"
	case KeyDown:
		return "keydown"
	case KeyUp:
		return "keyup"
	default:
		return "unknown"
	}
}

// Key is a keyboard key relevant to the scene.
type Key uint8

const (
	KeyNone Key = iota
	KeyArrowLeft
	KeyArrowRight
)

func (k Key) String() string {
	switch k {
	case KeyArrowLeft:
		return "ArrowLeft"
	case KeyArrowRight:
		return "ArrowRight"
	default:
		return ""
	}
}

// Event is one pointer, touch or key event. X is in screen pixels and Width
// is the viewport width the event was captured against.
type Event struct {
	Kind    Kind
	X       float64
	Width   float64
	Key     Key
	TouchID int
}
