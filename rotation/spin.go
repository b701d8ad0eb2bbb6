package rotation

// DefaultSpinRate is the sky's rotation speed in radians per second.
const DefaultSpinRate = 0.25

// Spin advances a target's yaw at a constant rate while a rotating flag is
// set. It keeps no state of its own besides the rate.
type Spin struct {
	Rate float64
}

// Advance adds Rate*dt to the target's yaw when rotating is true.
func (s Spin) Advance(target Target, rotating bool, dt float64) {
	if target == nil || !rotating || dt <= 0 {
		return
	}
	target.SetYaw(target.GetYaw() + s.Rate*dt)
}
