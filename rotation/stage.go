// Package rotation implements hand-driven yaw rotation with momentum and the
// classification of the resulting yaw into stages.
package rotation

import (
	"math"
	"strconv"
)

// TwoPi is one full turn in radians.
const TwoPi = 2 * math.Pi

// Stage is a discrete zone of interest derived from a yaw angle.
type Stage int

const (
	StageNone Stage = iota
	Stage1
	Stage2
	Stage3
	Stage4
)

func (s Stage) String() string {
	if s == StageNone {
		return "none"
	}
	return "stage " + strconv.Itoa(int(s))
}

// Valid reports whether s is one of the defined stages, StageNone included.
func (s Stage) Valid() bool {
	return s >= StageNone && s <= Stage4
}

// Window maps an inclusive yaw range in [0, 2π] to a stage.
type Window struct {
	Stage Stage
	Min   float64
	Max   float64
}

// Contains reports whether yaw lies in [Min, Max].
func (w Window) Contains(yaw float64) bool {
	return yaw >= w.Min && yaw <= w.Max
}

// DefaultWindows are tuned to the island mesh shipped with the scene.
func DefaultWindows() []Window {
	return []Window{
		{Stage: Stage4, Min: 5.45, Max: 5.85},
		{Stage: Stage3, Min: 0.85, Max: 1.30},
		{Stage: Stage2, Min: 2.40, Max: 2.60},
		{Stage: Stage1, Min: 4.25, Max: 4.75},
	}
}

// Normalize wraps x into [0, 2π). Non-finite input maps to 0.
func Normalize(x float64) float64 {
	if math.IsNaN(x) || math.IsInf(x, 0) {
		return 0
	}
	r := math.Mod(x, TwoPi)
	if r < 0 {
		r += TwoPi
	}
	// A tiny negative remainder can round up to exactly 2π.
	if r >= TwoPi {
		r = 0
	}
	return r
}

// Classify returns the stage of the first window containing yaw, or
// StageNone. yaw is expected to be normalized already.
func Classify(yaw float64, windows []Window) Stage {
	for _, w := range windows {
		if w.Contains(yaw) {
			return w.Stage
		}
	}
	return StageNone
}
