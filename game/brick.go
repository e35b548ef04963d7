package game

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// WeldNode is the per-object slot in the parent/child weld tree formed
// by proximity snapping. The tree is exclusive-ownership: one parent,
// any number of children.
type WeldNode struct {
	parent   Weldable
	offset   mgl64.Vec2
	children []Weldable
}

// Root walks the weld chain to the topmost ancestor. The visited set
// guards traversal against cycles, which must never make Root loop even
// if tree bookkeeping is somehow corrupted.
func Root(w Weldable) Weldable {
	cur := w
	seen := map[Weldable]bool{}
	for {
		n := cur.weldNode()
		if n.parent == nil || seen[cur] {
			return cur
		}
		seen[cur] = true
		cur = n.parent
	}
}

// WeldParent returns the object w is welded to, or nil.
func WeldParent(w Weldable) Weldable {
	return w.weldNode().parent
}

// WeldChildren returns the objects welded onto w.
func WeldChildren(w Weldable) []Weldable {
	return w.weldNode().children
}

// AddWeld attaches child to parent, detaching it from any prior parent
// first. A nil offset captures the current relative position.
func AddWeld(child, parent Weldable, offset *mgl64.Vec2) {
	if child == nil || parent == nil || child == parent {
		return
	}
	RemoveWeld(child)
	n := child.weldNode()
	n.parent = parent
	if offset != nil {
		n.offset = *offset
	} else {
		n.offset = child.Body().Pos.Sub(parent.Body().Pos)
	}
	pn := parent.weldNode()
	for _, c := range pn.children {
		if c == child {
			return
		}
	}
	pn.children = append(pn.children, child)
}

// RemoveWeld detaches child from its parent, if any.
func RemoveWeld(child Weldable) {
	n := child.weldNode()
	if n.parent == nil {
		return
	}
	pn := n.parent.weldNode()
	for i, c := range pn.children {
		if c == child {
			pn.children = append(pn.children[:i], pn.children[i+1:]...)
			break
		}
	}
	n.parent = nil
}

// MoveWeldGroup drags the tree root to pos, keeping a fraction of its
// old velocity, and propagates position and velocity breadth-first to
// every descendant through the stored offsets.
func MoveWeldGroup(root Weldable, pos mgl64.Vec2) {
	rp := root.Body()
	oldVel := rp.Vel()
	rp.Pos = pos
	rp.Prev = rp.Pos.Sub(oldVel.Mul(DragVelKeep))
	rootVel := rp.Vel()

	queue := []Weldable{root}
	seen := map[Weldable]bool{root: true}
	for len(queue) > 0 {
		parent := queue[0]
		queue = queue[1:]
		for _, child := range parent.weldNode().children {
			if seen[child] {
				continue
			}
			seen[child] = true
			cb := child.Body()
			cb.Pos = parent.Body().Pos.Add(child.weldNode().offset)
			cb.Prev = cb.Pos.Sub(rootVel)
			queue = append(queue, child)
		}
	}
}

// Brick is a lego-like square backed by a single Verlet particle.
type Brick struct {
	P    Particle
	Size float64
	weld WeldNode
}

func NewBrick(pos mgl64.Vec2, size float64) *Brick {
	if size <= 0 {
		size = BrickSize
	}
	return &Brick{P: NewParticle(pos, 1), Size: size}
}

func (b *Brick) Body() *Particle         { return &b.P }
func (b *Brick) Extent() float64         { return b.Size }
func (b *Brick) ApplyForce(f mgl64.Vec2) { b.P.ApplyForce(f) }
func (b *Brick) weldNode() *WeldNode     { return &b.weld }
func (b *Brick) Articulated() bool       { return false }

func (b *Brick) AttachPos(int) (mgl64.Vec2, bool) { return b.P.Pos, true }

func (b *Brick) Nudge(delta mgl64.Vec2) {
	b.P.Pos = b.P.Pos.Add(delta)
	b.P.Prev = b.P.Prev.Add(delta.Mul(0.5))
}

// Step runs one tick: weld-follow, gravity, integration, floor clamp
// and pairwise collision against every other attachable.
func (b *Brick) Step(dt float64, floor Floor, others []Attachable) {
	if parent := b.weld.parent; parent != nil {
		if !containsAttachable(others, parent) {
			// parent left the world, the weld breaks
			RemoveWeld(b)
		} else {
			b.P.Pos = parent.Body().Pos.Add(b.weld.offset)
			b.P.SetVel(parent.Body().Vel())
		}
	}

	b.P.ApplyForce(gravityForce(b.P.Mass))
	b.P.Integrate(dt)
	collideParticleFloor(&b.P, floor, b.Size/2, false)

	for _, other := range others {
		if other == Attachable(b) {
			continue
		}
		b.collide(other, dt)
	}
}

// collide separates b from other's circular proxy, applies restitution
// when approaching, and snap-welds when the contact says b landed
// squarely on top of other at low speed.
func (b *Brick) collide(other Attachable, dt float64) {
	if ow, ok := other.(Weldable); ok {
		if Root(b) == Root(ow) {
			return // grouped objects never collide with each other
		}
	}

	op := other.Body()
	diff := b.P.Pos.Sub(op.Pos)
	dist := diff.Len()
	minDist := (b.Size + other.Extent()) / 2
	if dist <= 0 || dist >= minDist {
		return
	}

	norm := diff.Mul(1 / dist)
	overlap := minDist - dist

	// sample contact velocities before the positional correction so the
	// separation offset does not leak into the restitution or snap test
	selfVel := b.P.Vel()
	otherVel := op.Vel()
	rel := selfVel.Sub(otherVel)

	total := b.P.Mass + op.Mass
	if total < 1e-6 {
		total = 1e-6
	}
	b.P.Pos = b.P.Pos.Add(norm.Mul(overlap * (op.Mass / total)))

	vn := rel.Dot(norm)
	if vn < 0 {
		j := -(1 + BrickRestitution) * vn
		j /= invMass(b.P.Mass) + invMass(op.Mass)
		impulse := norm.Mul(j)
		b.P.Prev = b.P.Pos.Sub(selfVel.Add(impulse.Mul(invMass(b.P.Mass))))
		op.Prev = op.Pos.Sub(otherVel.Sub(impulse.Mul(invMass(op.Mass))))
	}

	ow, ok := other.(Weldable)
	if !ok || dt <= 0 {
		return
	}
	relSpeed := rel.Len() / dt
	horizTol := (b.Size + other.Extent()) * SnapHorizontalTol
	if norm.Y() < SnapMinVerticalDot && relSpeed < SnapMaxRelSpeed && math.Abs(diff.X()) < horizTol {
		AddWeld(b, ow, nil)
		b.P.SetVel(op.Vel())
	}
}

func containsAttachable(list []Attachable, obj Attachable) bool {
	for _, o := range list {
		if o == obj {
			return true
		}
	}
	return false
}
