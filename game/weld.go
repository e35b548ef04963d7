package game

import "github.com/go-gl/mathgl/mgl64"

// Joint is a fixed-offset link between two objects, created by the
// welding tool. Distinct from the brick weld tree: joints form an
// undirected edge list with connected-component group ids.
type Joint struct {
	A, B       Weldee
	AIdx, BIdx int // attach particle index, -1 for whole-body endpoints
	Offset     mgl64.Vec2
	Group      int
}

type endpoint struct {
	body Weldee
	idx  int
}

type touch struct {
	body Weldee
	idx  int
	pos  mgl64.Vec2
}

// WeldingTool records joints between objects it touches while held and
// enforces every joint's offset each tick. Joints are grouped into
// connected components; a component is capped at MaxGroupSize members
// and merges that would exceed the cap are rejected wholesale.
type WeldingTool struct {
	Pos          mgl64.Vec2
	Held         bool
	Radius       float64
	MaxGroupSize int

	joints    []*Joint
	groups    map[int]map[Weldee]struct{}
	seen      map[endpoint]bool
	lastTouch *touch
	nextGroup int
}

func NewWeldingTool(pos mgl64.Vec2) *WeldingTool {
	return &WeldingTool{
		Pos:          pos,
		Radius:       WeldRadius,
		MaxGroupSize: MaxWeldGroupSize,
		groups:       make(map[int]map[Weldee]struct{}),
		seen:         make(map[endpoint]bool),
	}
}

func (t *WeldingTool) Joints() []*Joint { return t.joints }

// GroupOf returns the joint-graph group id of body, if it has one.
func (t *WeldingTool) GroupOf(body Weldee) (int, bool) {
	for id, members := range t.groups {
		if _, ok := members[body]; ok {
			return id, true
		}
	}
	return 0, false
}

// GroupSize returns the member count of a group id.
func (t *WeldingTool) GroupSize(id int) int { return len(t.groups[id]) }

// Update follows the cursor while held, records joints between
// newly-touched endpoints, and always enforces the joint list.
func (t *WeldingTool) Update(cursor mgl64.Vec2, npcs []*NPC, objects []Attachable) {
	if t.Held {
		t.Pos = cursor
		fresh := t.collectTouches(npcs, objects)

		if len(fresh) > 1 {
			for i := 0; i < len(fresh); i++ {
				for j := i + 1; j < len(fresh); j++ {
					if fresh[j].pos.Sub(fresh[i].pos).Len() < t.Radius*2 {
						t.addJoint(fresh[i], fresh[j])
					}
				}
			}
			last := fresh[len(fresh)-1]
			t.lastTouch = &last
		} else if len(fresh) == 1 {
			if t.lastTouch != nil && t.lastTouch.body != fresh[0].body {
				t.addJoint(*t.lastTouch, fresh[0])
			}
			first := fresh[0]
			t.lastTouch = &first
		}
	}
	t.EnforceJoints()
}

// collectTouches returns endpoints entering the tool radius for the
// first time: NPC particles individually, attachables by root particle.
func (t *WeldingTool) collectTouches(npcs []*NPC, objects []Attachable) []touch {
	var fresh []touch
	for _, n := range npcs {
		for i := range n.Particles {
			if n.Particles[i].Pos.Sub(t.Pos).Len() >= t.Radius {
				continue
			}
			k := endpoint{n, i}
			if t.seen[k] {
				continue
			}
			t.seen[k] = true
			fresh = append(fresh, touch{n, i, n.Particles[i].Pos})
		}
	}
	for _, obj := range objects {
		w, ok := obj.(Weldee)
		if !ok {
			continue
		}
		if obj.Body().Pos.Sub(t.Pos).Len() >= t.Radius {
			continue
		}
		k := endpoint{w, -1}
		if t.seen[k] {
			continue
		}
		t.seen[k] = true
		fresh = append(fresh, touch{w, -1, obj.Body().Pos})
	}
	return fresh
}

// addJoint records a joint between a and b unless the edge already
// exists, the attach points are too far apart, or the group merge would
// blow the size cap.
func (t *WeldingTool) addJoint(a, b touch) {
	if a.body == b.body {
		return
	}
	for _, j := range t.joints {
		if (j.A == a.body && j.B == b.body) || (j.A == b.body && j.B == a.body) {
			return
		}
	}
	pa, ok := a.body.AttachPos(a.idx)
	if !ok {
		return
	}
	pb, ok := b.body.AttachPos(b.idx)
	if !ok {
		return
	}
	if pb.Sub(pa).Len() >= t.Radius*2 {
		return
	}
	group, ok := t.mergeGroups(a.body, b.body)
	if !ok {
		return // cap exceeded, bodies stay separate
	}
	t.joints = append(t.joints, &Joint{
		A:      a.body,
		B:      b.body,
		AIdx:   a.idx,
		BIdx:   b.idx,
		Offset: pb.Sub(pa),
		Group:  group,
	})
}

// Forget drops every joint and group membership referencing a body that
// left the world, so joints never pin live partners to a ghost.
func (t *WeldingTool) Forget(body Weldee) {
	kept := t.joints[:0]
	for _, j := range t.joints {
		if j.A == body || j.B == body {
			continue
		}
		kept = append(kept, j)
	}
	t.joints = kept

	if id, ok := t.GroupOf(body); ok {
		delete(t.groups[id], body)
		if len(t.groups[id]) < 2 {
			delete(t.groups, id)
		}
	}
	for k := range t.seen {
		if k.body == body {
			delete(t.seen, k)
		}
	}
	if t.lastTouch != nil && t.lastTouch.body == body {
		t.lastTouch = nil
	}
}

// mergeGroups unions the groups of a and b atomically: member sets are
// merged and every joint of the absorbed group is re-tagged. Returns
// false, leaving both groups untouched, when the union would exceed
// MaxGroupSize.
func (t *WeldingTool) mergeGroups(a, b Weldee) (int, bool) {
	ga, aok := t.GroupOf(a)
	gb, bok := t.GroupOf(b)
	switch {
	case !aok && !bok:
		if t.MaxGroupSize < 2 {
			return 0, false
		}
		id := t.nextGroup
		t.nextGroup++
		t.groups[id] = map[Weldee]struct{}{a: {}, b: {}}
		return id, true
	case aok && !bok:
		if len(t.groups[ga])+1 > t.MaxGroupSize {
			return 0, false
		}
		t.groups[ga][b] = struct{}{}
		return ga, true
	case !aok && bok:
		if len(t.groups[gb])+1 > t.MaxGroupSize {
			return 0, false
		}
		t.groups[gb][a] = struct{}{}
		return gb, true
	case ga == gb:
		return ga, true
	default:
		if len(t.groups[ga])+len(t.groups[gb]) > t.MaxGroupSize {
			return 0, false
		}
		for m := range t.groups[gb] {
			t.groups[ga][m] = struct{}{}
		}
		delete(t.groups, gb)
		for _, j := range t.joints {
			if j.Group == gb {
				j.Group = ga
			}
		}
		return ga, true
	}
}

// EnforceJoints corrects every joint's drift sequentially. When exactly
// one endpoint is an articulated body it stays put and the other takes
// the full correction; otherwise the correction splits 50/50. Position
// only, so momentum is not conserved across a joint.
func (t *WeldingTool) EnforceJoints() {
	for _, j := range t.joints {
		pa, aok := j.A.AttachPos(j.AIdx)
		pb, bok := j.B.AttachPos(j.BIdx)
		if !aok || !bok {
			continue
		}
		correction := pa.Add(j.Offset).Sub(pb)
		switch {
		case j.A.Articulated() && !j.B.Articulated():
			j.B.Nudge(correction)
		case j.B.Articulated() && !j.A.Articulated():
			j.A.Nudge(correction.Mul(-1))
		default:
			half := correction.Mul(0.5)
			j.A.Nudge(half.Mul(-1))
			j.B.Nudge(half)
		}
	}
}
