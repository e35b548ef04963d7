package game

import "github.com/go-gl/mathgl/mgl64"

// Skeleton particle indices. The torso is a four-particle chain from
// neck to waist; arms hang off the chest, legs off the waist.
const (
	PartHead = iota
	PartNeck
	PartChest
	PartBelly
	PartWaist
	PartLeftArm
	PartRightArm
	PartLeftLeg
	PartRightLeg

	npcPartCount
)

// NPC is a blocky ragdoll: nine particles connected by distance
// constraints, with a damage model that cuts particles loose.
type NPC struct {
	Particles   []Particle
	Constraints []Constraint

	// Cut holds particle indices disconnected by damage. Their
	// constraints are stripped and they no longer take part in the
	// standing pose.
	Cut map[int]bool

	HP           float64
	BleedTime    float64
	BleedDPS     float64
	LastHitPos   mgl64.Vec2
	StandEnabled bool
	Facing       float64

	// OnBleed is the external blood-effects collaborator, invoked once
	// per tick while bleeding. May be nil.
	OnBleed func(pos mgl64.Vec2)

	// Riding is set by a vehicle rig while this NPC is mounted.
	Riding Attachable

	restLocal [npcPartCount]mgl64.Vec2
	grounded  [npcPartCount]bool
	dead      bool
}

func NewNPC(x, y float64) *NPC {
	n := &NPC{
		Cut:          make(map[int]bool),
		HP:           NPCStartHP,
		BleedDPS:     NPCBleedDPS,
		StandEnabled: true,
		Facing:       1,
	}
	at := func(dx, dy float64) Particle {
		return NewParticle(mgl64.Vec2{x + dx, y + dy}, 1)
	}
	n.Particles = []Particle{
		at(0, -100),  // head
		at(0, -60),   // neck
		at(0, -20),   // chest
		at(0, 20),    // belly
		at(0, 60),    // waist
		at(-30, -10), // left arm
		at(30, -10),  // right arm
		at(-8, 140),  // left leg
		at(8, 140),   // right leg
	}

	link := func(a, b int, slack float64) {
		n.Constraints = append(n.Constraints, connect(n.Particles, a, b, slack))
	}
	link(PartHead, PartNeck, 0)
	link(PartNeck, PartChest, 0)
	link(PartChest, PartBelly, 0)
	link(PartBelly, PartWaist, 0)
	link(PartChest, PartLeftArm, 0)
	link(PartChest, PartRightArm, 0)
	link(PartWaist, PartLeftLeg, 0)
	link(PartWaist, PartRightLeg, 0)
	// loose diagonals resist torso buckling without rigidifying it
	link(PartNeck, PartBelly, 0.05)
	link(PartChest, PartWaist, 0.05)

	center := n.TorsoCenter()
	for i := range n.Particles {
		n.restLocal[i] = n.Particles[i].Pos.Sub(center)
	}
	return n
}

// TorsoCenter is the mean of the four torso-chain particles.
func (n *NPC) TorsoCenter() mgl64.Vec2 {
	sum := mgl64.Vec2{}
	for i := PartNeck; i <= PartWaist; i++ {
		sum = sum.Add(n.Particles[i].Pos)
	}
	return sum.Mul(1.0 / 4.0)
}

// RestLocal returns the captured construction-time offset of particle i
// from the torso center.
func (n *NPC) RestLocal(i int) mgl64.Vec2 { return n.restLocal[i] }

func (n *NPC) Dead() bool { return n.dead }

// ApplyGlobalForce applies f to every particle.
func (n *NPC) ApplyGlobalForce(f mgl64.Vec2) {
	for i := range n.Particles {
		n.Particles[i].ApplyForce(f)
	}
}

// ApplyForce is the Weldee form of ApplyGlobalForce.
func (n *NPC) ApplyForce(f mgl64.Vec2) { n.ApplyGlobalForce(f) }

func (n *NPC) Articulated() bool { return true }

// AttachPos returns particle idx, or the skeleton centroid for idx < 0.
func (n *NPC) AttachPos(idx int) (mgl64.Vec2, bool) {
	if idx >= 0 && idx < len(n.Particles) {
		return n.Particles[idx].Pos, true
	}
	if len(n.Particles) == 0 {
		return mgl64.Vec2{}, false
	}
	sum := mgl64.Vec2{}
	for i := range n.Particles {
		sum = sum.Add(n.Particles[i].Pos)
	}
	return sum.Mul(1 / float64(len(n.Particles))), true
}

// Nudge translates the whole skeleton, dragging Prev at half rate.
func (n *NPC) Nudge(delta mgl64.Vec2) {
	for i := range n.Particles {
		n.Particles[i].Pos = n.Particles[i].Pos.Add(delta)
		n.Particles[i].Prev = n.Particles[i].Prev.Add(delta.Mul(0.5))
	}
}

// MoveBy hard-translates the skeleton. Prev is untouched, so the delta
// lands in the implicit velocity; drag-follow relies on that to let a
// released body keep its drag momentum.
func (n *NPC) MoveBy(delta mgl64.Vec2) {
	for i := range n.Particles {
		n.Particles[i].Pos = n.Particles[i].Pos.Add(delta)
	}
}

// Update runs one simulation tick: gravity, integration, standing
// spring, constraint relaxation, floor collision and bleed bookkeeping.
func (n *NPC) Update(dt float64, floor Floor) {
	for i := range n.Particles {
		p := &n.Particles[i]
		p.ApplyForce(gravityForce(p.Mass))
		p.Integrate(dt)
	}

	if n.StandEnabled {
		n.applyStandingSpring(dt)
	}

	for pass := 0; pass < NPCConstraintPasses; pass++ {
		Relax(n.Particles, n.Constraints)
	}

	if floor != nil {
		radius := NPCParticleSize / 2
		for i := range n.Particles {
			n.grounded[i] = collideParticleFloor(&n.Particles[i], floor, radius, true)
		}
	}

	if n.BleedTime > 0 {
		n.BleedTime -= dt
		n.HP -= n.BleedDPS * dt
		if n.OnBleed != nil {
			n.OnBleed(n.LastHitPos)
		}
	}
	if n.HP <= 0 {
		n.DropDead()
	}
}

// applyStandingSpring pulls each particle toward its captured rest
// offset from the torso center. Horizontal correction is suppressed for
// grounded particles so feet don't slowly creep across the floor.
func (n *NPC) applyStandingSpring(dt float64) {
	corr := NPCStandStrength * dt
	if corr > 1 {
		corr = 1
	}
	center := n.TorsoCenter()
	for i := range n.Particles {
		if n.Cut[i] {
			continue
		}
		target := center.Add(n.restLocal[i])
		delta := target.Sub(n.Particles[i].Pos)
		if n.grounded[i] {
			delta[0] = 0
		}
		n.Particles[i].Pos = n.Particles[i].Pos.Add(delta.Mul(corr))
	}
}

// ApplyBulletHit applies bullet damage at a world position: the nearest
// particle within range is cut loose, its constraints are stripped for
// good, nearby particles scatter, and a bleed timer starts.
func (n *NPC) ApplyBulletHit(pos mgl64.Vec2) {
	idx, ok := n.NearestParticleIndex(pos, NPCHitSearchRadius)
	if !ok {
		return
	}
	n.Cut[idx] = true

	kept := n.Constraints[:0]
	for _, c := range n.Constraints {
		if c.A != idx && c.B != idx {
			kept = append(kept, c)
		}
	}
	n.Constraints = kept

	hit := n.Particles[idx].Pos
	for i := range n.Particles {
		d := n.Particles[i].Pos.Sub(hit).Len()
		if d > 0 && d < NPCScatterRadius {
			push := n.Particles[i].Pos.Sub(hit).Mul(1 / d)
			mag := NPCScatterRadius / clampMin(d, 4)
			n.Particles[i].Pos = n.Particles[i].Pos.Add(push.Mul(mag))
		}
	}

	n.BleedTime = NPCBleedDuration
	n.LastHitPos = pos
	n.HP -= NPCBulletDamage
}

// DropDead disables the standing pose and slams every particle downward
// so the body visibly collapses. Idempotent.
func (n *NPC) DropDead() {
	if n.dead {
		return
	}
	n.dead = true
	n.StandEnabled = false
	for i := range n.Particles {
		p := &n.Particles[i]
		p.Prev = p.Pos.Sub(mgl64.Vec2{0, NPCDeathImpulse})
		p.Pos[1] += NPCDeathDrop
	}
}

// NearestParticleIndex returns the particle closest to pos, if any lies
// within maxDist.
func (n *NPC) NearestParticleIndex(pos mgl64.Vec2, maxDist float64) (int, bool) {
	best := -1
	bestD := maxDist
	for i := range n.Particles {
		d := n.Particles[i].Pos.Sub(pos).Len()
		if d < bestD {
			bestD = d
			best = i
		}
	}
	if best < 0 {
		return 0, false
	}
	return best, true
}

func clampMin(v, lo float64) float64 {
	if v < lo {
		return lo
	}
	return v
}
