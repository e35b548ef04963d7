package game

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Frame part indices shared by both vehicle rigs. Index 4 is the pedal
// on a bike and the roof on a car.
const (
	partRoot = iota
	partSeat
	partFrontWheel
	partBackWheel
	partAux

	rigPartCount
)

type partSpec struct {
	offset mgl64.Vec2
	mass   float64
}

// rig is the particle frame shared by Bike and Car: a heavy root with
// four satellites held together by constraints, a rest-offset spring
// that keeps the frame upright, a mountable rider slot and a
// velocity-ramped drive model.
type rig struct {
	Parts       []Particle
	Constraints []Constraint
	Size        float64

	Rider *NPC
	owner Attachable // the Bike/Car wrapping this rig

	DriveVel   float64
	DriveAccel float64
	DriveMax   float64

	FrontAngle float64
	BackAngle  float64

	restOffsets [rigPartCount]mgl64.Vec2
	passes      int
	elapsed     float64

	driveDecay float64 // coast deceleration, multiple of DriveAccel
	driveNudge float64 // fraction of drive motion fed to non-root parts
	wheelSpin  float64 // wheel angle per unit drive velocity

	// rider pose parameters
	seatLift  float64 // seat clearance, fraction of Size
	headLift  float64 // head clearance above torso, fraction of Size
	gripIndex int     // part the hands reach toward
	gripX     float64 // grip offset fractions from that part
	gripY     float64
	pedalLegs bool // animate legs around the aux part
}

func (r *rig) build(base mgl64.Vec2, specs [rigPartCount]partSpec) {
	for i, s := range specs {
		r.Parts = append(r.Parts, NewParticle(base.Add(s.offset), s.mass))
		r.restOffsets[i] = s.offset
	}
	link := func(a, b int) {
		r.Constraints = append(r.Constraints, connect(r.Parts, a, b, 0))
	}
	link(partRoot, partSeat)
	link(partRoot, partFrontWheel)
	link(partRoot, partBackWheel)
	link(partRoot, partAux)
	link(partAux, partFrontWheel)
	link(partAux, partBackWheel)
}

func (r *rig) Body() *Particle         { return &r.Parts[partRoot] }
func (r *rig) ApplyForce(f mgl64.Vec2) { r.Parts[partRoot].ApplyForce(f) }
func (r *rig) Articulated() bool       { return false }

func (r *rig) AttachPos(int) (mgl64.Vec2, bool) { return r.Parts[partRoot].Pos, true }

func (r *rig) Nudge(delta mgl64.Vec2) {
	root := &r.Parts[partRoot]
	root.Pos = root.Pos.Add(delta)
	root.Prev = root.Prev.Add(delta.Mul(0.5))
}

// stepFrame integrates and solves the frame, applies the rest-offset
// spring, and collides each part with the floor using a per-part proxy
// radius.
func (r *rig) stepFrame(dt float64, floor Floor, radiusOf func(i int) float64) {
	r.elapsed += dt

	for i := range r.Parts {
		p := &r.Parts[i]
		p.ApplyForce(gravityForce(p.Mass))
		p.Integrate(dt)
	}

	for pass := 0; pass < r.passes; pass++ {
		RelaxWeighted(r.Parts, r.Constraints)
	}

	// spring the satellites back toward their rest offsets so the
	// limited iteration count never lets the frame sag
	corr := RigSpringStrength * dt
	if corr > 1 {
		corr = 1
	}
	root := r.Parts[partRoot].Pos
	for i := 1; i < len(r.Parts); i++ {
		p := &r.Parts[i]
		target := root.Add(r.restOffsets[i])
		p.Pos = p.Pos.Add(target.Sub(p.Pos).Mul(corr))
		p.Prev = p.Pos.Sub(p.Vel().Mul(0.5))
	}

	if floor != nil {
		ground := FlatFloor{Y: floor.FloorY(), Grip: VehicleGroundFriction}
		for i := range r.Parts {
			collideParticleFloor(&r.Parts[i], ground, radiusOf(i), false)
		}
	}
}

// Mount seats an NPC on the rig, disabling its standing spring and
// hard-snapping the skeleton into the riding pose immediately.
func (r *rig) Mount(npc *NPC) {
	if npc == nil {
		return
	}
	r.Rider = npc
	npc.Riding = r.owner
	npc.StandEnabled = false
	if r.Parts[partFrontWheel].Pos.X() >= r.Parts[partBackWheel].Pos.X() {
		npc.Facing = 1
	} else {
		npc.Facing = -1
	}
	r.lockRider()
}

// Unmount releases the rider and restores its standing pose.
func (r *rig) Unmount() {
	if r.Rider != nil {
		r.Rider.StandEnabled = true
		r.Rider.Riding = nil
	}
	r.Rider = nil
}

// lockRider re-snaps the mounted NPC into the seated pose. Called every
// tick while mounted: the lock is instantaneous, never interpolated.
func (r *rig) lockRider() {
	npc := r.Rider
	if npc == nil {
		return
	}
	npc.StandEnabled = false

	pin := func(idx int, pos mgl64.Vec2) {
		p := &npc.Particles[idx]
		p.Pos = pos
		p.Prev = pos
	}

	seat := r.Parts[partSeat].Pos.Add(mgl64.Vec2{0, -math.Max(6, r.Size*r.seatLift)})
	pin(PartChest, seat)
	pin(PartHead, seat.Add(mgl64.Vec2{0, -math.Max(18, r.Size*r.headLift)}))

	facing := npc.Facing
	if facing == 0 {
		facing = 1
	}
	grip := r.Parts[r.gripIndex].Pos.Add(mgl64.Vec2{-r.Size * r.gripX * facing, r.Size * r.gripY})
	armBase := seat.Add(grip.Sub(seat).Mul(0.5))
	spread := math.Max(8, r.Size*0.04)
	pin(PartLeftArm, armBase.Add(mgl64.Vec2{-spread, -6}))
	pin(PartRightArm, armBase.Add(mgl64.Vec2{spread, -6}))

	if r.pedalLegs {
		ang := math.Mod(r.elapsed*8, 2*math.Pi)
		center := r.Parts[partAux].Pos
		lx := math.Max(8, r.Size*0.06)
		ly := math.Max(4, r.Size*0.03)
		pin(PartLeftLeg, center.Add(mgl64.Vec2{math.Cos(ang) * lx, math.Sin(ang) * ly}))
		pin(PartRightLeg, center.Add(mgl64.Vec2{math.Cos(ang+math.Pi) * lx, math.Sin(ang+math.Pi) * ly}))
	}
}

// Drive ramps DriveVel toward the commanded direction, or decays it
// toward zero faster when there is no input, and injects the result
// into the root's Verlet state so the next integration step reproduces
// it exactly. Satellites only get a fractional nudge, leaving the
// constraint solver free to hold the frame's shape.
func (r *rig) Drive(input, dt float64) {
	var target float64
	if math.Abs(input) > 1e-3 {
		if input > 0 {
			target = r.DriveMax
		} else {
			target = -r.DriveMax
		}
	}

	if target != 0 {
		if r.DriveVel < target {
			r.DriveVel += r.DriveAccel * dt
			if r.DriveVel > target {
				r.DriveVel = target
			}
		} else if r.DriveVel > target {
			r.DriveVel -= r.DriveAccel * dt
			if r.DriveVel < target {
				r.DriveVel = target
			}
		}
	} else {
		decay := r.DriveAccel * r.driveDecay * dt
		if r.DriveVel > 0 {
			r.DriveVel -= decay
			if r.DriveVel < 0 {
				r.DriveVel = 0
			}
		} else if r.DriveVel < 0 {
			r.DriveVel += decay
			if r.DriveVel > 0 {
				r.DriveVel = 0
			}
		}
	}

	root := &r.Parts[partRoot]
	root.Prev[0] = root.Pos[0] - r.DriveVel*dt
	for i := 1; i < len(r.Parts); i++ {
		r.Parts[i].Pos[0] += r.DriveVel * dt * r.driveNudge
	}
	r.FrontAngle += r.DriveVel * r.wheelSpin
	r.BackAngle += r.DriveVel * r.wheelSpin
}
