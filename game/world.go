package game

import "github.com/go-gl/mathgl/mgl64"

// World owns the live object lists and drives one simulation tick in a
// fixed order: attachables, brick-vs-NPC collision, NPCs, welding tool,
// thrusters, weapons, drag follow. Creation and removal are deferred to
// the tick boundary so iteration never sees a mutating list.
type World struct {
	Floor   Floor
	NPCs    []*NPC
	Objects []Attachable

	Tool   *WeldingTool
	Pistol *Pistol
	Axe    *Axe

	Tick int

	pendingNPCs    []*NPC
	pendingObjects []Attachable
	removeNPCs     map[*NPC]bool
	removeObjects  map[Attachable]bool

	drag *dragState
}

type dragState struct {
	npc    *NPC
	obj    Attachable
	offset mgl64.Vec2
}

func NewWorld(floor Floor) *World {
	return &World{
		Floor:         floor,
		removeNPCs:    make(map[*NPC]bool),
		removeObjects: make(map[Attachable]bool),
	}
}

// AddNPC queues an NPC for insertion at the next tick boundary.
func (w *World) AddNPC(n *NPC) {
	if n != nil {
		w.pendingNPCs = append(w.pendingNPCs, n)
	}
}

// AddObject queues an attachable for insertion at the next tick boundary.
func (w *World) AddObject(obj Attachable) {
	if obj != nil {
		w.pendingObjects = append(w.pendingObjects, obj)
	}
}

// RemoveObject queues an attachable for removal at the next tick boundary.
func (w *World) RemoveObject(obj Attachable) {
	if obj != nil {
		w.removeObjects[obj] = true
	}
}

// RemoveNPC queues an NPC for removal at the next tick boundary.
func (w *World) RemoveNPC(n *NPC) {
	if n != nil {
		w.removeNPCs[n] = true
	}
}

// Step advances the simulation by dt. cursor is the current pointer
// position in world space, polled by held tools and dragged objects.
// dt must be pre-clamped by the caller.
func (w *World) Step(dt float64, cursor mgl64.Vec2) {
	w.Tick++

	for _, obj := range w.Objects {
		obj.Step(dt, w.Floor, w.Objects)
	}

	for _, n := range w.NPCs {
		objs := w.Objects
		if n.Riding != nil {
			// the seat pin would fight the pushout otherwise
			objs = make([]Attachable, 0, len(w.Objects))
			for _, o := range w.Objects {
				if o != n.Riding {
					objs = append(objs, o)
				}
			}
		}
		CollideParticlesWithBricks(n.Particles, objs, NPCParticleSize/2, 0, NPCObjectFriction, 2)
		n.Update(dt, w.Floor)
	}

	if w.Tool != nil {
		w.Tool.Update(cursor, w.NPCs, w.Objects)
	}

	for _, obj := range w.Objects {
		if th, ok := obj.(*Thruster); ok {
			th.ApplyThrust(w.Tool)
		}
	}

	if w.Pistol != nil {
		w.Pistol.Update(dt, cursor, w.NPCs, w.Floor)
	}
	if w.Axe != nil {
		for _, chopped := range w.Axe.Update(cursor, w.NPCs, w.Objects) {
			w.RemoveObject(chopped)
		}
	}

	w.followDrag(cursor)
	w.flushPending()
}

// PickUp grabs the nearest moveable: attachables by root particle
// within PickUpRadius, falling back to NPC torsos when nothing is
// close. Reports whether anything was grabbed.
func (w *World) PickUp(cursor mgl64.Vec2) bool {
	var bestObj Attachable
	bestD := PickUpRadius
	for _, obj := range w.Objects {
		d := obj.Body().Pos.Sub(cursor).Len()
		if d < bestD {
			bestD = d
			bestObj = obj
		}
	}
	if bestObj != nil {
		w.drag = &dragState{obj: bestObj, offset: bestObj.Body().Pos.Sub(cursor)}
		return true
	}
	if bestD > PickUpRadius*0.5 {
		var bestNPC *NPC
		for _, n := range w.NPCs {
			d := n.Particles[PartChest].Pos.Sub(cursor).Len()
			if d < bestD {
				bestD = d
				bestNPC = n
			}
		}
		if bestNPC != nil {
			w.drag = &dragState{npc: bestNPC, offset: bestNPC.Particles[PartChest].Pos.Sub(cursor)}
			return true
		}
	}
	return false
}

// Drop releases the dragged object. Next tick it simply stops following
// the cursor; no rollback is needed.
func (w *World) Drop() { w.drag = nil }

// Dragging reports whether something is currently held.
func (w *World) Dragging() bool { return w.drag != nil }

func (w *World) followDrag(cursor mgl64.Vec2) {
	if w.drag == nil {
		return
	}
	desired := cursor.Add(w.drag.offset)
	switch {
	case w.drag.npc != nil:
		delta := desired.Sub(w.drag.npc.Particles[PartChest].Pos)
		w.drag.npc.MoveBy(delta)
	case w.drag.obj != nil:
		if wd, ok := w.drag.obj.(Weldable); ok {
			// dragging any member moves the whole welded assembly
			MoveWeldGroup(Root(wd), desired)
		} else {
			b := w.drag.obj.Body()
			oldVel := b.Vel()
			b.Pos = desired
			b.Prev = b.Pos.Sub(oldVel.Mul(DragVelKeep))
		}
	}
}

func (w *World) flushPending() {
	if len(w.removeObjects) > 0 {
		kept := w.Objects[:0]
		for _, obj := range w.Objects {
			if !w.removeObjects[obj] {
				kept = append(kept, obj)
				continue
			}
			if w.drag != nil && w.drag.obj == obj {
				w.drag = nil
			}
			if wd, ok := obj.(Weldee); ok && w.Tool != nil {
				w.Tool.Forget(wd)
			}
		}
		w.Objects = kept
		clear(w.removeObjects)
	}
	if len(w.removeNPCs) > 0 {
		kept := w.NPCs[:0]
		for _, n := range w.NPCs {
			if !w.removeNPCs[n] {
				kept = append(kept, n)
				continue
			}
			if w.drag != nil && w.drag.npc == n {
				w.drag = nil
			}
			if w.Tool != nil {
				w.Tool.Forget(n)
			}
		}
		w.NPCs = kept
		clear(w.removeNPCs)
	}
	w.Objects = append(w.Objects, w.pendingObjects...)
	w.pendingObjects = w.pendingObjects[:0]
	w.NPCs = append(w.NPCs, w.pendingNPCs...)
	w.pendingNPCs = w.pendingNPCs[:0]
}

// ToggleMount mounts the nearest un-ridden vehicle near the cursor with
// the nearest NPC, or unmounts a ridden one. Vehicles out of reach do
// nothing.
func (w *World) ToggleMount(cursor mgl64.Vec2) {
	type mounter interface {
		Mount(*NPC)
		Unmount()
	}
	var best Attachable
	bestD := PickUpRadius * 2
	for _, obj := range w.Objects {
		if _, ok := obj.(mounter); !ok {
			continue
		}
		d := obj.Body().Pos.Sub(cursor).Len()
		if d < bestD {
			bestD = d
			best = obj
		}
	}
	if best == nil {
		return
	}
	v := best.(mounter)
	switch veh := best.(type) {
	case *Bike:
		if veh.Rider != nil {
			v.Unmount()
			return
		}
	case *Car:
		if veh.Rider != nil {
			v.Unmount()
			return
		}
	}
	var rider *NPC
	riderD := PickUpRadius * 2
	for _, n := range w.NPCs {
		if n.Dead() || n.Riding != nil {
			continue
		}
		d := n.Particles[PartChest].Pos.Sub(best.Body().Pos).Len()
		if d < riderD {
			riderD = d
			rider = n
		}
	}
	if rider == nil {
		return
	}
	v.Mount(rider)
}

// DriveRidden forwards a drive command to every mounted vehicle.
func (w *World) DriveRidden(input, dt float64) {
	for _, obj := range w.Objects {
		switch veh := obj.(type) {
		case *Bike:
			if veh.Rider != nil {
				veh.Drive(input, dt)
			}
		case *Car:
			if veh.Rider != nil {
				veh.Drive(input, dt)
			}
		}
	}
}
