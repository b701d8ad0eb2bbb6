package rotation

import (
	"math"

	"github.com/milk9111/folio/input"
)

// Target is an object whose yaw the controller drives.
type Target interface {
	GetYaw() float64
	SetYaw(float64)
}

// Direction is the arrow key direction of a nudge.
type Direction int

const (
	DirLeft Direction = iota
	DirRight
)

// State is the controller's mutable input state.
type State struct {
	AngularVelocity float64
	LastPointerX    float64
	Dragging        bool
}

// Controller converts drags and arrow keys into yaw changes on a Target,
// applies momentum damping while idle and reports stage changes while the
// user is rotating. All methods must be called from the game loop.
type Controller struct {
	cfg    Config
	target Target
	state  State

	pointerHeld bool
	keysHeld    [2]bool
	stage       Stage

	onStage    func(Stage)
	onRotating func(bool)
}

// NewController returns a controller driving target with cfg.
func NewController(target Target, cfg Config) *Controller {
	return &Controller{cfg: cfg, target: target}
}

// OnStageChange sets the callback invoked with the new stage whenever the
// classification changes during an active drag.
func (c *Controller) OnStageChange(fn func(Stage)) {
	c.onStage = fn
}

// OnRotatingChange sets the callback invoked when dragging starts or ends.
func (c *Controller) OnRotatingChange(fn func(bool)) {
	c.onRotating = fn
}

// SetConfig swaps the tuning without touching yaw, velocity or drag state.
func (c *Controller) SetConfig(cfg Config) {
	c.cfg = cfg
}

func (c *Controller) Config() Config {
	return c.cfg
}

// State returns a copy of the current input state.
func (c *Controller) State() State {
	return c.state
}

// Rotating reports whether user input is currently holding the object.
func (c *Controller) Rotating() bool {
	return c.state.Dragging
}

// Stage returns the last stage reported to the stage callback.
func (c *Controller) Stage() Stage {
	return c.stage
}

// PointerDown starts a drag at screen x.
func (c *Controller) PointerDown(x float64) {
	c.pointerHeld = true
	c.state.LastPointerX = x
	c.setDragging(true)
}

// PointerMove rotates by the horizontal distance since the last pointer
// position, relative to the viewport width. It is ignored unless dragging.
func (c *Controller) PointerMove(x, viewportWidth float64) {
	if !c.state.Dragging || !c.pointerHeld || viewportWidth <= 0 {
		return
	}
	delta := (x - c.state.LastPointerX) / viewportWidth
	step := delta * c.cfg.DragSensitivity * math.Pi
	c.addYaw(step)
	c.state.LastPointerX = x
	c.state.AngularVelocity = step
}

// PointerUp releases the pointer. Velocity is kept for momentum.
func (c *Controller) PointerUp() {
	if !c.pointerHeld {
		return
	}
	c.pointerHeld = false
	c.release()
}

func (c *Controller) TouchStart(x float64) {
	c.PointerDown(x)
}

func (c *Controller) TouchMove(x, viewportWidth float64) {
	c.PointerMove(x, viewportWidth)
}

func (c *Controller) TouchEnd() {
	c.PointerUp()
}

// KeyDown nudges the yaw one step in dir and sets the fixed key velocity,
// replacing whatever momentum was in progress. Left turns positive.
func (c *Controller) KeyDown(dir Direction) {
	if dir != DirLeft && dir != DirRight {
		return
	}
	c.keysHeld[dir] = true
	if !c.state.Dragging {
		c.setDragging(true)
	}
	sign := 1.0
	if dir == DirRight {
		sign = -1
	}
	c.addYaw(sign * c.cfg.KeyNudge * math.Pi)
	c.state.AngularVelocity = sign * c.cfg.KeyVelocity
}

// KeyUp releases an arrow key.
func (c *Controller) KeyUp(dir Direction) {
	if dir != DirLeft && dir != DirRight || !c.keysHeld[dir] {
		return
	}
	c.keysHeld[dir] = false
	c.release()
}

// Tick advances one frame. While idle the velocity is damped and applied;
// while dragging the yaw is classified and stage changes are reported.
func (c *Controller) Tick() {
	if !c.state.Dragging {
		v := c.state.AngularVelocity * c.cfg.Damping
		if math.Abs(v) < c.cfg.RestEpsilon {
			v = 0
		}
		c.state.AngularVelocity = v
		if v != 0 {
			c.addYaw(v)
		}
		return
	}

	stage := Classify(Normalize(c.yaw()), c.cfg.Windows)
	if stage == c.stage {
		return
	}
	c.stage = stage
	if c.onStage != nil {
		c.onStage(stage)
	}
}

// Attach subscribes the controller to every input event it understands and
// returns the single teardown that removes all of those subscriptions.
func (c *Controller) Attach(bus *input.Bus) (detach func()) {
	subs := []input.Subscription{
		bus.Subscribe(input.PointerDown, func(e input.Event) { c.PointerDown(e.X) }),
		bus.Subscribe(input.PointerMove, func(e input.Event) { c.PointerMove(e.X, e.Width) }),
		bus.Subscribe(input.PointerUp, func(input.Event) { c.PointerUp() }),
		bus.Subscribe(input.TouchStart, func(e input.Event) { c.TouchStart(e.X) }),
		bus.Subscribe(input.TouchMove, func(e input.Event) { c.TouchMove(e.X, e.Width) }),
		bus.Subscribe(input.TouchEnd, func(input.Event) { c.TouchEnd() }),
		bus.Subscribe(input.KeyDown, func(e input.Event) {
			if dir, ok := keyDirection(e.Key); ok {
				c.KeyDown(dir)
			}
		}),
		bus.Subscribe(input.KeyUp, func(e input.Event) {
			if dir, ok := keyDirection(e.Key); ok {
				c.KeyUp(dir)
			}
		}),
	}
	return func() {
		for _, s := range subs {
			s.Close()
		}
		subs = nil
	}
}

func keyDirection(k input.Key) (Direction, bool) {
	switch k {
	case input.KeyArrowLeft:
		return DirLeft, true
	case input.KeyArrowRight:
		return DirRight, true
	default:
		return 0, false
	}
}

// release ends the drag once no pointer and no arrow key is held.
func (c *Controller) release() {
	if c.pointerHeld || c.keysHeld[DirLeft] || c.keysHeld[DirRight] {
		return
	}
	c.setDragging(false)
}

func (c *Controller) setDragging(v bool) {
	if c.state.Dragging == v {
		return
	}
	c.state.Dragging = v
	if c.onRotating != nil {
		c.onRotating(v)
	}
}

func (c *Controller) yaw() float64 {
	if c.target == nil {
		return 0
	}
	return c.target.GetYaw()
}

func (c *Controller) addYaw(d float64) {
	if c.target == nil {
		return
	}
	c.target.SetYaw(c.target.GetYaw() + d)
}
