package game

import "github.com/go-gl/mathgl/mgl64"

// Particle is a Verlet point mass. Velocity is implicit as Pos-Prev and
// is never stored.
type Particle struct {
	Pos  mgl64.Vec2
	Prev mgl64.Vec2
	Acc  mgl64.Vec2
	Mass float64
}

func NewParticle(pos mgl64.Vec2, mass float64) Particle {
	return Particle{Pos: pos, Prev: pos, Mass: mass}
}

// ApplyForce accumulates f/mass into the acceleration for the next
// Integrate call. Mass is floored at 1e-6.
func (p *Particle) ApplyForce(f mgl64.Vec2) {
	p.Acc = p.Acc.Add(f.Mul(invMass(p.Mass)))
}

// Integrate advances one Verlet step and resets the accumulator.
func (p *Particle) Integrate(dt float64) {
	vel := p.Pos.Sub(p.Prev)
	p.Prev = p.Pos
	p.Pos = p.Pos.Add(vel).Add(p.Acc.Mul(dt * dt))
	p.Acc = mgl64.Vec2{}
}

// Vel returns the implicit per-step displacement.
func (p *Particle) Vel() mgl64.Vec2 { return p.Pos.Sub(p.Prev) }

// SetVel rewrites Prev so the next step reproduces exactly v.
func (p *Particle) SetVel(v mgl64.Vec2) { p.Prev = p.Pos.Sub(v) }

func invMass(m float64) float64 {
	if m < 1e-6 {
		m = 1e-6
	}
	return 1 / m
}
