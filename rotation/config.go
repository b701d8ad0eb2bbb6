package rotation

import (
	"errors"
	"fmt"
	"sort"
)

var (
	ErrInvalidWindow      = errors.New("rotation: invalid stage window")
	ErrOverlappingWindows = errors.New("rotation: overlapping stage windows")
	ErrInvalidTuning      = errors.New("rotation: invalid tuning")
)

// Config holds the tuning of a Controller. Sensitivity and nudge values are
// multiples of π.
type Config struct {
	// DragSensitivity scales a viewport-relative drag delta into radians/π.
	DragSensitivity float64
	// KeyNudge is the immediate yaw step per arrow key event, in radians/π.
	KeyNudge float64
	// KeyVelocity is the angular velocity set by an arrow key, radians/tick.
	KeyVelocity float64
	// Damping multiplies the velocity each idle tick.
	Damping float64
	// RestEpsilon is the speed below which the velocity snaps to zero.
	RestEpsilon float64
	Windows     []Window
}

// DefaultConfig returns the stock tuning.
func DefaultConfig() Config {
	return Config{
		DragSensitivity: 0.01,
		KeyNudge:        0.005,
		KeyVelocity:     0.007,
		Damping:         0.95,
		RestEpsilon:     0.001,
		Windows:         DefaultWindows(),
	}
}

// Validate checks the tuning values and that the stage windows are well
// formed and pairwise disjoint.
func (c Config) Validate() error {
	if c.Damping < 0 || c.Damping >= 1 {
		return fmt.Errorf("%w: damping %v must be in [0, 1)", ErrInvalidTuning, c.Damping)
	}
	if c.RestEpsilon < 0 {
		return fmt.Errorf("%w: rest epsilon %v is negative", ErrInvalidTuning, c.RestEpsilon)
	}
	if c.DragSensitivity <= 0 {
		return fmt.Errorf("%w: drag sensitivity %v must be positive", ErrInvalidTuning, c.DragSensitivity)
	}
	for i, w := range c.Windows {
		if w.Stage == StageNone || !w.Stage.Valid() {
			return fmt.Errorf("%w: window %d has stage %d", ErrInvalidWindow, i, int(w.Stage))
		}
		if w.Min > w.Max {
			return fmt.Errorf("%w: window %d min %v > max %v", ErrInvalidWindow, i, w.Min, w.Max)
		}
		if w.Min < 0 || w.Max > TwoPi {
			return fmt.Errorf("%w: window %d [%v, %v] outside [0, 2π]", ErrInvalidWindow, i, w.Min, w.Max)
		}
	}

	sorted := append([]Window(nil), c.Windows...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Min < sorted[j].Min })
	for i := 1; i < len(sorted); i++ {
		prev, cur := sorted[i-1], sorted[i]
		if cur.Min <= prev.Max {
			return fmt.Errorf("%w: %s [%v, %v] and %s [%v, %v]", ErrOverlappingWindows,
				prev.Stage, prev.Min, prev.Max, cur.Stage, cur.Min, cur.Max)
		}
	}
	return nil
}
