package game

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

func TestThrustPushesJointPartnerAway(t *testing.T) {
	th := NewThruster(mgl64.Vec2{0, 0}, 32)
	b := NewBrick(mgl64.Vec2{60, 0}, 40)
	tool := NewWeldingTool(mgl64.Vec2{})
	tool.addJoint(touchOf(th, -1), touchOf(b, -1))

	th.ApplyThrust(tool)

	if b.P.Acc.X() <= 0 {
		t.Fatalf("expected partner pushed away (+x), got acc=%v", b.P.Acc)
	}
	if th.P.Acc.X() >= 0 {
		t.Fatalf("expected recoil on the thruster (-x), got acc=%v", th.P.Acc)
	}
}

func TestThrustIgnoresUnjointedBodies(t *testing.T) {
	th := NewThruster(mgl64.Vec2{0, 0}, 32)
	b1 := NewBrick(mgl64.Vec2{30, 0}, 40)
	b2 := NewBrick(mgl64.Vec2{60, 0}, 40)
	tool := NewWeldingTool(mgl64.Vec2{})
	tool.addJoint(touchOf(b1, -1), touchOf(b2, -1)) // thruster not involved

	th.ApplyThrust(tool)

	if b1.P.Acc != (mgl64.Vec2{}) || b2.P.Acc != (mgl64.Vec2{}) {
		t.Fatalf("thrust leaked into unrelated joint: %v %v", b1.P.Acc, b2.P.Acc)
	}
}

func TestThrustNilToolIsNoop(t *testing.T) {
	th := NewThruster(mgl64.Vec2{0, 0}, 32)
	th.ApplyThrust(nil)
	if th.P.Acc != (mgl64.Vec2{}) {
		t.Fatalf("nil tool produced thrust: %v", th.P.Acc)
	}
}
