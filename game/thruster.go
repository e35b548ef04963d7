package game

import "github.com/go-gl/mathgl/mgl64"

// Thruster is a brick-like object that, when jointed to something by
// the welding tool, continuously pushes that something away from
// itself. It never collides with other attachables, only the floor.
type Thruster struct {
	P     Particle
	Size  float64
	Power float64
	weld  WeldNode
}

func NewThruster(pos mgl64.Vec2, size float64) *Thruster {
	if size <= 0 {
		size = ThrusterSize
	}
	return &Thruster{P: NewParticle(pos, 1), Size: size, Power: ThrusterPower}
}

func (t *Thruster) Body() *Particle         { return &t.P }
func (t *Thruster) Extent() float64         { return t.Size }
func (t *Thruster) ApplyForce(f mgl64.Vec2) { t.P.ApplyForce(f) }
func (t *Thruster) weldNode() *WeldNode     { return &t.weld }
func (t *Thruster) Articulated() bool       { return false }

func (t *Thruster) AttachPos(int) (mgl64.Vec2, bool) { return t.P.Pos, true }

func (t *Thruster) Nudge(delta mgl64.Vec2) {
	t.P.Pos = t.P.Pos.Add(delta)
	t.P.Prev = t.P.Prev.Add(delta.Mul(0.5))
}

func (t *Thruster) Step(dt float64, floor Floor, _ []Attachable) {
	t.P.ApplyForce(gravityForce(t.P.Mass))
	t.P.Integrate(dt)
	collideParticleFloor(&t.P, floor, t.Size/2, false)
}

// ApplyThrust pushes every joint partner away along the line between
// the thruster and the partner, with a small recoil on the thruster.
func (t *Thruster) ApplyThrust(tool *WeldingTool) {
	if tool == nil {
		return
	}
	for _, j := range tool.Joints() {
		var other Weldee
		switch {
		case j.A == Weldee(t):
			other = j.B
		case j.B == Weldee(t):
			other = j.A
		default:
			continue
		}
		pos, ok := other.AttachPos(-1)
		if !ok {
			continue
		}
		diff := pos.Sub(t.P.Pos)
		dist := diff.Len()
		if dist == 0 {
			continue
		}
		force := diff.Mul(t.Power / dist)
		other.ApplyForce(force)
		t.P.ApplyForce(force.Mul(-ThrusterReaction))
	}
}
