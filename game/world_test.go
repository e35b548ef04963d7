package game

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

func testWorld() *World {
	w := NewWorld(FloorAt(400))
	w.Tool = NewWeldingTool(mgl64.Vec2{})
	w.Pistol = NewPistol(mgl64.Vec2{})
	w.Axe = NewAxe(mgl64.Vec2{})
	return w
}

func TestStepAdvancesEveryEntityKind(t *testing.T) {
	w := testWorld()
	w.Objects = []Attachable{
		NewBrick(mgl64.Vec2{0, 0}, 40),
		NewThruster(mgl64.Vec2{200, 0}, 32),
		NewBike(mgl64.Vec2{400, 0}, 0),
		NewCar(mgl64.Vec2{800, 0}, 0),
	}
	w.NPCs = []*NPC{NewNPC(1200, 0)}

	defer func() {
		if r := recover(); r != nil {
			t.Fatalf("Step panicked: %v", r)
		}
	}()
	dt := 1.0 / 60.0
	for i := 0; i < 30; i++ {
		w.Step(dt, mgl64.Vec2{})
	}
	if w.Tick != 30 {
		t.Fatalf("tick = %d, want 30", w.Tick)
	}
}

func TestStepToleratesNilTools(t *testing.T) {
	w := NewWorld(FloorAt(400))
	w.Objects = []Attachable{NewBrick(mgl64.Vec2{0, 0}, 40)}
	w.Step(1.0/60.0, mgl64.Vec2{})
}

func TestRemovalDeferredToTickBoundary(t *testing.T) {
	w := testWorld()
	b := NewBrick(mgl64.Vec2{0, 0}, 40)
	w.Objects = []Attachable{b}

	w.RemoveObject(b)
	if len(w.Objects) != 1 {
		t.Fatalf("removal applied immediately")
	}
	w.Step(1.0/60.0, mgl64.Vec2{})
	if len(w.Objects) != 0 {
		t.Fatalf("removal not applied at tick boundary: %d objects", len(w.Objects))
	}
}

func TestAddDeferredToTickBoundary(t *testing.T) {
	w := testWorld()
	w.AddObject(NewBrick(mgl64.Vec2{0, 0}, 40))
	w.AddNPC(NewNPC(100, 0))
	if len(w.Objects) != 0 || len(w.NPCs) != 0 {
		t.Fatalf("additions applied immediately")
	}
	w.Step(1.0/60.0, mgl64.Vec2{})
	if len(w.Objects) != 1 || len(w.NPCs) != 1 {
		t.Fatalf("additions not flushed: objects=%d npcs=%d", len(w.Objects), len(w.NPCs))
	}
}

func TestAxeChopRemovesObjectSameTick(t *testing.T) {
	w := testWorld()
	b := NewBrick(mgl64.Vec2{0, 0}, 40)
	w.Objects = []Attachable{b}
	w.Axe.Held = true

	w.Step(1.0/60.0, b.P.Pos)

	if len(w.Objects) != 0 {
		t.Fatalf("chopped brick still in world")
	}
}

func TestPickUpDragsBrickToCursor(t *testing.T) {
	w := testWorld()
	b := NewBrick(mgl64.Vec2{10, 0}, 40)
	w.Objects = []Attachable{b}

	if !w.PickUp(mgl64.Vec2{0, 0}) {
		t.Fatalf("pickup failed within radius")
	}
	w.Step(1.0/60.0, mgl64.Vec2{100, 100})

	// the grab offset is preserved while dragging
	if b.P.Pos != (mgl64.Vec2{110, 100}) {
		t.Fatalf("dragged brick at %v, want (110,100)", b.P.Pos)
	}

	w.Drop()
	if w.Dragging() {
		t.Fatalf("still dragging after drop")
	}
}

func TestPickUpDragsWholeWeldGroup(t *testing.T) {
	w := testWorld()
	a := NewBrick(mgl64.Vec2{0, 0}, 40)
	b := NewBrick(mgl64.Vec2{50, 0}, 40)
	AddWeld(b, a, nil)
	w.Objects = []Attachable{a, b}

	w.PickUp(mgl64.Vec2{0, 0})
	w.Step(1.0/60.0, mgl64.Vec2{200, 200})

	if a.P.Pos != (mgl64.Vec2{200, 200}) {
		t.Fatalf("group root at %v, want (200,200)", a.P.Pos)
	}
	if b.P.Pos.Sub(a.P.Pos).X() != 50 {
		t.Fatalf("group child lost its offset: %v", b.P.Pos)
	}
}

func TestPickUpFallsBackToNPC(t *testing.T) {
	w := testWorld()
	n := NewNPC(0, 0)
	w.NPCs = []*NPC{n}

	if !w.PickUp(mgl64.Vec2{0, 0}) {
		t.Fatalf("expected npc torso pickup")
	}
	if !w.Dragging() {
		t.Fatalf("not dragging after npc pickup")
	}
}

func TestPickUpOutOfRangeFails(t *testing.T) {
	w := testWorld()
	w.Objects = []Attachable{NewBrick(mgl64.Vec2{500, 500}, 40)}
	if w.PickUp(mgl64.Vec2{0, 0}) {
		t.Fatalf("picked up an object out of range")
	}
}

func TestRemovingDraggedObjectClearsDrag(t *testing.T) {
	w := testWorld()
	b := NewBrick(mgl64.Vec2{0, 0}, 40)
	w.Objects = []Attachable{b}
	w.PickUp(mgl64.Vec2{0, 0})
	w.RemoveObject(b)

	w.Step(1.0/60.0, mgl64.Vec2{50, 50})

	if w.Dragging() {
		t.Fatalf("drag still targets a removed object")
	}
}

func TestRemovalPrunesToolJoints(t *testing.T) {
	w := testWorld()
	a := NewBrick(mgl64.Vec2{100, 100}, 40)
	b := NewBrick(mgl64.Vec2{120, 100}, 40)
	w.Objects = []Attachable{a, b}

	w.Tool.Held = true
	w.Tool.Update(mgl64.Vec2{110, 100}, nil, w.Objects)
	if len(w.Tool.Joints()) != 1 {
		t.Fatalf("setup: joint count = %d, want 1", len(w.Tool.Joints()))
	}

	w.RemoveObject(a)
	w.flushPending()

	if len(w.Tool.Joints()) != 0 {
		t.Fatalf("removed object left %d joints behind", len(w.Tool.Joints()))
	}
	if _, ok := w.Tool.GroupOf(b); ok {
		t.Fatalf("partner still grouped with a removed object")
	}
}

func TestToggleMountRoundTrip(t *testing.T) {
	w := testWorld()
	b := NewBike(mgl64.Vec2{0, 0}, 0)
	n := NewNPC(0, 0)
	w.Objects = []Attachable{b}
	w.NPCs = []*NPC{n}

	w.ToggleMount(mgl64.Vec2{0, 0})
	if b.Rider != n || n.Riding != Attachable(b) {
		t.Fatalf("mount failed: rider=%v riding=%v", b.Rider, n.Riding)
	}

	w.ToggleMount(mgl64.Vec2{0, 0})
	if b.Rider != nil || n.Riding != nil {
		t.Fatalf("unmount failed: rider=%v riding=%v", b.Rider, n.Riding)
	}
}

func TestDriveRiddenOnlyAffectsMounted(t *testing.T) {
	w := testWorld()
	ridden := NewBike(mgl64.Vec2{0, 0}, 0)
	idle := NewBike(mgl64.Vec2{1000, 0}, 0)
	n := NewNPC(0, 0)
	w.Objects = []Attachable{ridden, idle}
	w.NPCs = []*NPC{n}
	ridden.Mount(n)

	w.DriveRidden(1, 1.0/60.0)

	if ridden.DriveVel <= 0 {
		t.Fatalf("mounted bike did not accelerate")
	}
	if idle.DriveVel != 0 {
		t.Fatalf("riderless bike accelerated")
	}
}
