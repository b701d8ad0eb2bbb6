package scene

import "github.com/go-gl/mathgl/mgl64"

// NarrowScreenWidth is the window width below which the island shrinks.
const NarrowScreenWidth = 768

// IslandPlacement returns the island's resting transform for a window of
// the given width.
func IslandPlacement(screenWidth int) Placement {
	scale := 1.0
	if screenWidth < NarrowScreenWidth {
		scale = 0.9
	}
	return Placement{
		Position: mgl64.Vec3{0, -10, -40},
		Pitch:    0.1,
		Yaw:      5.5,
		Scale:    scale,
	}
}

// SkyPlacement returns the sky dome's transform.
func SkyPlacement() Placement {
	return Placement{Position: mgl64.Vec3{0, 100, 0}, Scale: 1}
}
