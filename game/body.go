package game

import "github.com/go-gl/mathgl/mgl64"

// Attachable is any single-root object living in the world's object
// list: bricks, thrusters and vehicle rigs. Step receives the full live
// object list so pairwise collision can run inside the object's own
// update, and must tolerate entries appearing or disappearing between
// ticks.
type Attachable interface {
	Body() *Particle
	Extent() float64
	ApplyForce(f mgl64.Vec2)
	Step(dt float64, floor Floor, others []Attachable)
}

// Weldable additionally takes part in the proximity snap tree.
type Weldable interface {
	Attachable
	weldNode() *WeldNode
}

// Weldee is an endpoint of a welding-tool joint. NPCs and all
// attachables implement it.
type Weldee interface {
	// AttachPos resolves an attach point: a particle index for
	// articulated bodies, or the root/centroid when idx < 0. The bool
	// is false when the endpoint has no resolvable position.
	AttachPos(idx int) (mgl64.Vec2, bool)
	// Nudge moves the endpoint by delta, dragging Prev at half rate so
	// the correction bleeds into velocity gently.
	Nudge(delta mgl64.Vec2)
	ApplyForce(f mgl64.Vec2)
	Articulated() bool
}

func gravityForce(mass float64) mgl64.Vec2 {
	return mgl64.Vec2{0, Gravity * mass}
}
