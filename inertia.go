package gesture

// inertia continues a pan after release. Each step yields the current
// velocity as the displacement for that frame and then decays it
// geometrically; it stops once the speed drops below the minimum.
type inertia struct {
	velocity Vec2
	active   bool
}

// start activates inertia with velocity v if its magnitude exceeds minVelocity.
func (in *inertia) start(v Vec2, minVelocity float64) bool {
	if v.Len() <= minVelocity {
		in.stop()
		return false
	}
	in.velocity = v
	in.active = true
	return true
}

// step returns the displacement for this frame. ok is false once inertia
// has stopped.
func (in *inertia) step(deceleration, minVelocity float64) (delta Vec2, ok bool) {
	if !in.active {
		return Vec2{}, false
	}
	if in.velocity.Len() < minVelocity {
		in.stop()
		return Vec2{}, false
	}
	delta = in.velocity
	in.velocity = in.velocity.Scale(deceleration)
	return delta, true
}

func (in *inertia) stop() {
	in.velocity = Vec2{}
	in.active = false
}
