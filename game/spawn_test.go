package game

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

func TestParseKindFallsBackToBrick(t *testing.T) {
	cases := map[string]Kind{
		"brick":    KindBrick,
		"thruster": KindThruster,
		"bike":     KindBike,
		"car":      KindCar,
		"garbage":  KindBrick,
		"":         KindBrick,
	}
	for in, want := range cases {
		if got := ParseKind(in); got != want {
			t.Fatalf("ParseKind(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestFactoryBuildsEveryKind(t *testing.T) {
	pos := mgl64.Vec2{10, 20}
	for _, k := range []Kind{KindBrick, KindThruster, KindBike, KindCar} {
		obj := NewAttachable(k, pos, 0)
		if obj == nil {
			t.Fatalf("factory returned nil for %q", k)
		}
		if got := KindOf(obj); got != k {
			t.Fatalf("KindOf(%q object) = %q", k, got)
		}
		if obj.Extent() != DefaultSize(k) {
			t.Fatalf("%q default size = %f, want %f", k, obj.Extent(), DefaultSize(k))
		}
	}
}

func TestSnapshotRoundTrip(t *testing.T) {
	rec := WorldRecord{
		FloorY: 350,
		Objects: []ObjectRecord{
			{Type: KindBrick, X: 10, Y: 20, Size: 40},
			{Type: KindThruster, X: 100, Y: 20, Size: 32},
			{Type: KindCar, X: 300, Y: 20, Size: 220},
		},
		NPCs: []NPCRecord{{X: 500, Y: 100}},
	}

	w := LoadWorld(rec)
	if len(w.Objects) != 3 || len(w.NPCs) != 1 {
		t.Fatalf("load produced %d objects and %d npcs", len(w.Objects), len(w.NPCs))
	}

	got := w.Snapshot()
	if got.FloorY != 350 {
		t.Fatalf("floor y = %f, want 350", got.FloorY)
	}
	if len(got.Objects) != 3 {
		t.Fatalf("snapshot object count = %d, want 3", len(got.Objects))
	}
	for i, o := range got.Objects {
		if o.Type != rec.Objects[i].Type {
			t.Fatalf("object %d kind = %q, want %q", i, o.Type, rec.Objects[i].Type)
		}
		if o.X != rec.Objects[i].X || o.Y != rec.Objects[i].Y {
			t.Fatalf("object %d at (%f,%f), want (%f,%f)", i, o.X, o.Y, rec.Objects[i].X, rec.Objects[i].Y)
		}
	}
	if len(got.NPCs) != 1 {
		t.Fatalf("snapshot npc count = %d, want 1", len(got.NPCs))
	}
}

func TestSnapshotStoresNPCTorso(t *testing.T) {
	w := NewWorld(FloorAt(400))
	n := NewNPC(50, 60)
	w.NPCs = []*NPC{n}

	got := w.Snapshot()
	c := n.TorsoCenter()
	if got.NPCs[0].X != c.X() || got.NPCs[0].Y != c.Y() {
		t.Fatalf("npc record (%f,%f), want torso center (%f,%f)",
			got.NPCs[0].X, got.NPCs[0].Y, c.X(), c.Y())
	}
}
