package system

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/milk9111/folio/ecs"
	"github.com/milk9111/folio/input"
)

const (
	// Ticks before a held arrow key starts repeating, and between repeats.
	keyRepeatDelay    = 30
	keyRepeatInterval = 2
)

var arrowKeys = []struct {
	ebiten ebiten.Key
	key    input.Key
}{
	{ebiten.KeyArrowLeft, input.KeyArrowLeft},
	{ebiten.KeyArrowRight, input.KeyArrowRight},
}

// InputSystem polls ebiten once per tick and publishes discrete pointer,
// touch and key events on the bus.
type InputSystem struct {
	bus   *input.Bus
	width float64

	// Captured reports whether the UI owns the point, e.g. a popup button.
	// Presses there never start a drag.
	Captured func(x, y int) bool

	mouseDown  bool
	mouseX     int
	touchID    ebiten.TouchID
	touchDown  bool
	touchX     int
	pressedIDs []ebiten.TouchID
}

func NewInputSystem(bus *input.Bus) *InputSystem {
	return &InputSystem{bus: bus}
}

// SetViewportWidth sets the logical screen width used to normalize drags.
func (i *InputSystem) SetViewportWidth(w float64) {
	i.width = w
}

func (i *InputSystem) Update(w *ecs.World) {
	if i == nil || i.bus == nil {
		return
	}
	i.updateMouse()
	i.updateTouch()
	i.updateKeys()
}

func (i *InputSystem) captured(x, y int) bool {
	return i.Captured != nil && i.Captured(x, y)
}

func (i *InputSystem) updateMouse() {
	x, y := ebiten.CursorPosition()
	if !i.mouseDown && inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) && !i.captured(x, y) {
		i.mouseDown = true
		i.mouseX = x
		i.bus.Publish(input.Event{Kind: input.PointerDown, X: float64(x), Width: i.width})
		return
	}
	if !i.mouseDown {
		return
	}
	if x != i.mouseX {
		i.mouseX = x
		i.bus.Publish(input.Event{Kind: input.PointerMove, X: float64(x), Width: i.width})
	}
	if inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft) {
		i.mouseDown = false
		i.bus.Publish(input.Event{Kind: input.PointerUp, X: float64(x), Width: i.width})
	}
}

// updateTouch follows the first finger only; extra fingers are ignored.
func (i *InputSystem) updateTouch() {
	if !i.touchDown {
		i.pressedIDs = inpututil.AppendJustPressedTouchIDs(i.pressedIDs[:0])
		for _, id := range i.pressedIDs {
			x, y := ebiten.TouchPosition(id)
			if i.captured(x, y) {
				continue
			}
			i.touchID, i.touchDown, i.touchX = id, true, x
			i.bus.Publish(input.Event{Kind: input.TouchStart, X: float64(x), Width: i.width, TouchID: int(id)})
			break
		}
		return
	}

	if inpututil.IsTouchJustReleased(i.touchID) {
		i.touchDown = false
		i.bus.Publish(input.Event{Kind: input.TouchEnd, X: float64(i.touchX), Width: i.width, TouchID: int(i.touchID)})
		return
	}
	x, _ := ebiten.TouchPosition(i.touchID)
	if x != i.touchX {
		i.touchX = x
		i.bus.Publish(input.Event{Kind: input.TouchMove, X: float64(x), Width: i.width, TouchID: int(i.touchID)})
	}
}

func (i *InputSystem) updateKeys() {
	for _, k := range arrowKeys {
		if keyRepeats(inpututil.KeyPressDuration(k.ebiten)) {
			i.bus.Publish(input.Event{Kind: input.KeyDown, Key: k.key})
		}
		if inpututil.IsKeyJustReleased(k.ebiten) {
			i.bus.Publish(input.Event{Kind: input.KeyUp, Key: k.key})
		}
	}
}

// keyRepeats reports whether a key held for d ticks fires a keydown this
// tick, mimicking OS auto-repeat.
func keyRepeats(d int) bool {
	if d == 1 {
		return true
	}
	return d >= keyRepeatDelay && (d-keyRepeatDelay)%keyRepeatInterval == 0
}
