package rotation

import (
	"math"
	"testing"

	"github.com/milk9111/folio/input"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type yawBox struct {
	yaw float64
}

func (b *yawBox) GetYaw() float64  { return b.yaw }
func (b *yawBox) SetYaw(v float64) { b.yaw = v }

func newTestController(yaw float64) (*Controller, *yawBox) {
	box := &yawBox{yaw: yaw}
	return NewController(box, DefaultConfig()), box
}

func TestDragAccumulatesExactly(t *testing.T) {
	const width = 1280.0
	c, box := newTestController(1.0)

	xs := []float64{100, 140, 90, 400, 380, 1000}
	c.PointerDown(xs[0])
	for _, x := range xs[1:] {
		c.PointerMove(x, width)
	}

	d := xs[len(xs)-1] - xs[0]
	want := 1.0 + (d/width)*0.01*math.Pi
	assert.InDelta(t, want, box.yaw, 1e-12)

	last := (xs[len(xs)-1] - xs[len(xs)-2]) / width * 0.01 * math.Pi
	assert.InDelta(t, last, c.State().AngularVelocity, 1e-15)
	assert.Equal(t, xs[len(xs)-1], c.State().LastPointerX)
}

func TestMoveWithoutDragIsIgnored(t *testing.T) {
	c, box := newTestController(2.0)

	c.PointerMove(500, 1000)
	assert.Equal(t, 2.0, box.yaw)
	assert.Zero(t, c.State().AngularVelocity)

	c.PointerDown(0)
	c.PointerMove(100, 0)
	assert.Equal(t, 2.0, box.yaw, "zero viewport width must be ignored")
}

func TestDampingAfterRelease(t *testing.T) {
	c, box := newTestController(0)

	c.PointerDown(0)
	c.PointerMove(600, 100)
	c.PointerUp()
	require.False(t, c.Rotating())

	prev := math.Abs(c.State().AngularVelocity)
	require.Greater(t, prev, 0.001)

	frames := 0
	for c.State().AngularVelocity != 0 {
		before := box.yaw
		c.Tick()
		frames++
		v := math.Abs(c.State().AngularVelocity)
		if v != 0 {
			assert.InDelta(t, prev*0.95, v, 1e-15)
			assert.InDelta(t, before+c.State().AngularVelocity, box.yaw, 1e-15)
		}
		prev = v
		require.Less(t, frames, 200, "velocity never came to rest")
	}

	rest := box.yaw
	for i := 0; i < 10; i++ {
		c.Tick()
	}
	assert.Equal(t, rest, box.yaw)
	assert.Zero(t, c.State().AngularVelocity)
}

func TestNoDampingWhileDragging(t *testing.T) {
	c, _ := newTestController(0)
	c.PointerDown(0)
	c.PointerMove(50, 100)
	v := c.State().AngularVelocity

	c.Tick()
	c.Tick()
	assert.Equal(t, v, c.State().AngularVelocity)
}

func TestArrowKeysOverrideVelocity(t *testing.T) {
	tests := []struct {
		name    string
		dir     Direction
		prior   float64
		wantV   float64
		wantYaw float64
	}{
		{"left from rest", DirLeft, 0, 0.007, 3 + 0.005*math.Pi},
		{"left against momentum", DirLeft, -0.5, 0.007, 3 + 0.005*math.Pi},
		{"right from rest", DirRight, 0, -0.007, 3 - 0.005*math.Pi},
		{"right with momentum", DirRight, 0.2, -0.007, 3 - 0.005*math.Pi},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			c, box := newTestController(3)
			c.state.AngularVelocity = tc.prior

			c.KeyDown(tc.dir)

			assert.True(t, c.Rotating())
			assert.Equal(t, tc.wantV, c.State().AngularVelocity)
			assert.InDelta(t, tc.wantYaw, box.yaw, 1e-12)
		})
	}
}

func TestKeyRepeatKeepsNudging(t *testing.T) {
	c, box := newTestController(0)
	for i := 0; i < 4; i++ {
		c.KeyDown(DirLeft)
	}
	assert.InDelta(t, 4*0.005*math.Pi, box.yaw, 1e-12)

	c.KeyUp(DirLeft)
	assert.False(t, c.Rotating())
	c.Tick()
	assert.InDelta(t, 0.007*0.95, c.State().AngularVelocity, 1e-15)
}

func TestReleaseTransitionsOnce(t *testing.T) {
	c, _ := newTestController(0)
	var transitions []bool
	c.OnRotatingChange(func(v bool) { transitions = append(transitions, v) })

	c.PointerDown(10)
	c.KeyDown(DirRight)
	c.KeyDown(DirLeft)

	c.PointerUp()
	assert.True(t, c.Rotating(), "keys still held")
	c.KeyUp(DirRight)
	assert.True(t, c.Rotating(), "left still held")
	c.KeyUp(DirLeft)
	assert.False(t, c.Rotating())

	c.PointerUp()
	c.KeyUp(DirLeft)
	c.TouchEnd()

	assert.Equal(t, []bool{true, false}, transitions)
}

func TestStageNotifiedOnChangeWhileDragging(t *testing.T) {
	c, box := newTestController(0.5)
	var got []Stage
	c.OnStageChange(func(s Stage) { got = append(got, s) })

	// Idle ticks never classify.
	box.yaw = 0.9
	c.Tick()
	assert.Empty(t, got)

	c.PointerDown(0)
	c.Tick()
	c.Tick()
	box.yaw = 2.5
	c.Tick()
	box.yaw = 3.0
	c.Tick()
	box.yaw = 5.6 - TwoPi
	c.Tick()

	assert.Equal(t, []Stage{Stage3, Stage2, StageNone, Stage4}, got)
	assert.Equal(t, Stage4, c.Stage())
}

func TestSetConfigKeepsMotion(t *testing.T) {
	c, box := newTestController(3.0)
	c.PointerDown(0)
	c.PointerMove(10, 100)
	yaw := box.yaw
	v := c.State().AngularVelocity

	cfg := DefaultConfig()
	cfg.Windows = []Window{{Stage: Stage2, Min: 3.0, Max: 3.2}}
	c.SetConfig(cfg)

	assert.Equal(t, yaw, box.yaw)
	assert.Equal(t, v, c.State().AngularVelocity)
	assert.True(t, c.Rotating())

	c.Tick()
	assert.Equal(t, Stage2, c.Stage())
}

func TestAttachAndDetach(t *testing.T) {
	bus := input.NewBus()
	c, box := newTestController(0)
	detach := c.Attach(bus)
	require.Equal(t, 8, bus.Len())

	bus.Publish(input.Event{Kind: input.TouchStart, X: 0})
	bus.Publish(input.Event{Kind: input.TouchMove, X: 200, Width: 400})
	assert.InDelta(t, 0.5*0.01*math.Pi, box.yaw, 1e-12)

	bus.Publish(input.Event{Kind: input.TouchEnd})
	assert.False(t, c.Rotating())

	bus.Publish(input.Event{Kind: input.KeyDown, Key: input.KeyArrowRight})
	assert.Equal(t, -0.007, c.State().AngularVelocity)
	bus.Publish(input.Event{Kind: input.KeyUp, Key: input.KeyArrowRight})

	detach()
	assert.Zero(t, bus.Len())

	yaw := box.yaw
	bus.Publish(input.Event{Kind: input.PointerDown, X: 0})
	bus.Publish(input.Event{Kind: input.PointerMove, X: 300, Width: 400})
	assert.Equal(t, yaw, box.yaw)
	assert.False(t, c.Rotating())

	detach()
}
