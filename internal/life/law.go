package life

// Force maps a configured affinity and a normalized distance to a scalar
// force. Distance 0 always yields 0 so self-pairs and exact overlaps drop out.
func (p Params) Force(mode PhysicsMode, affinity, distance float32) float32 {
	if distance == 0 {
		return 0
	}
	switch mode {
	case Real:
		return p.realForce(affinity, distance)
	case Emergence:
		return p.emergenceForce(affinity, distance)
	}
	return 0
}

func (p Params) realForce(affinity, d float32) float32 {
	if affinity == 0 {
		return 0
	}
	return bounded(affinity/(d*d), -p.MaxAppliedForce, p.MaxAppliedForce)
}

// Inside RepelRadius the force is a pure repulsion that reaches 0 at the
// radius; beyond it the affinity is weighted by a triangle peaking halfway
// between RepelRadius and 1.
func (p Params) emergenceForce(affinity, d float32) float32 {
	r := p.RepelRadius
	switch {
	case d <= r:
		return d/r - 1
	case d < 1:
		return affinity * (1 - abs(2*d-1-r)/(1-r))
	}
	return 0
}

// Acceleration is the pull exerted on target by other, pointing from target
// toward other. Negative forces point away.
func (p Params) Acceleration(target, other *Particle, forces *ForcesTable, mode PhysicsMode) Accel {
	delta := other.Position.Sub(target.Position)
	dist := delta.Len()
	if dist == 0 {
		return Accel{}
	}

	f := p.Force(mode, forces.Get(target.Color, other.Color), dist/p.WorldUnit)
	if f == 0 {
		return Accel{}
	}
	return Some(delta.Mul(f * p.ForceScalar / dist))
}

// ApplyFriction damps a particle's velocity once per emergence tick.
func (p Params) ApplyFriction(pt *Particle) {
	pt.Velocity = pt.Velocity.Mul(p.Friction)
}

func bounded(v, min, max float32) float32 {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}

func abs(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}
