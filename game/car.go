package game

import "github.com/go-gl/mathgl/mgl64"

// Car mirrors the bike rig with a roof instead of a pedal crank:
// heavier, slower to accelerate, more momentum. The rider's legs stay
// inside the cabin, only torso, head and arms are posed.
type Car struct {
	rig
}

func NewCar(pos mgl64.Vec2, size float64) *Car {
	if size <= 0 {
		size = CarSize
	}
	c := &Car{rig{
		Size:       size,
		passes:     CarConstraintPasses,
		DriveAccel: CarDriveAccel,
		DriveMax:   CarDriveMax,
		driveDecay: 1.2,
		driveNudge: 0.12,
		wheelSpin:  0.015,
		seatLift:   0.05,
		headLift:   0.06,
		gripIndex:  partAux, // hands toward the dashboard under the roof
		gripX:      0.06,
		gripY:      -0.02,
	}}
	c.owner = c
	c.build(pos, [rigPartCount]partSpec{
		{mgl64.Vec2{}, 4.0},                          // root
		{mgl64.Vec2{0, -size * 0.06}, 1.2},           // seat
		{mgl64.Vec2{size * 0.42, size * 0.22}, 1.0},  // front wheel
		{mgl64.Vec2{-size * 0.42, size * 0.22}, 1.0}, // back wheel
		{mgl64.Vec2{0, -size * 0.25}, 1.0},           // roof
	})
	return c
}

func (c *Car) Extent() float64 { return c.Size }

func (c *Car) Step(dt float64, floor Floor, _ []Attachable) {
	c.stepFrame(dt, floor, c.partRadius)
	c.lockRider()
}

func (c *Car) partRadius(i int) float64 {
	switch i {
	case partFrontWheel, partBackWheel:
		return c.Size * 0.15
	case partSeat:
		return c.Size * 0.09
	default:
		return c.Size * 0.12
	}
}
