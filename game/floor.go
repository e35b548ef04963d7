package game

// Floor is anything bodies can rest on. A nil Floor disables floor
// collision for the tick.
type Floor interface {
	FloorY() float64
	Friction() float64
}

// FlatFloor is the baseplate: a horizontal plane with friction.
type FlatFloor struct {
	Y    float64
	Grip float64
}

func (f FlatFloor) FloorY() float64   { return f.Y }
func (f FlatFloor) Friction() float64 { return f.Grip }

// FloorAt wraps a bare height in a FlatFloor with the default brick
// friction, for callers that only have a scalar.
func FloorAt(y float64) Floor {
	return FlatFloor{Y: y, Grip: BrickFriction}
}

// collideParticleFloor clamps p onto the floor, zeroes the vertical
// velocity and applies horizontal friction. zeroCreep additionally kills
// all horizontal velocity, which stops grounded NPC particles from
// drifting. Returns whether the particle touched the floor. Idempotent
// for a particle resting exactly on the boundary.
func collideParticleFloor(p *Particle, floor Floor, radius float64, zeroCreep bool) bool {
	if floor == nil {
		return false
	}
	fy := floor.FloorY()
	if p.Pos.Y() <= fy-radius {
		return false
	}
	p.Pos[1] = fy - radius
	vel := p.Vel()
	vel[1] = 0
	fr := floor.Friction()
	if fr < 0 {
		fr = 0
	}
	vel[0] *= fr
	p.Prev = p.Pos.Sub(vel)
	if zeroCreep {
		p.Prev[0] = p.Pos[0]
	}
	return true
}
