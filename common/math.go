package common

// Logical resolution used before the first Layout call.
const (
	BaseWidth  = 1280
	BaseHeight = 720
)

func Lerp(a, b, t float32) float32 {
	return a + t*(b-a)
}

// Approach moves v toward target by factor t and snaps once within eps.
func Approach(v, target, t, eps float32) float32 {
	v = Lerp(v, target, t)
	if d := target - v; d < eps && d > -eps {
		return target
	}
	return v
}
