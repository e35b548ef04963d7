package game

import "github.com/go-gl/mathgl/mgl64"

// Bike is a rideable two-wheel rig: root, seat, two wheels and a pedal
// crank. The rider's legs pedal in a phase-offset circle while mounted.
type Bike struct {
	rig
}

func NewBike(pos mgl64.Vec2, size float64) *Bike {
	if size <= 0 {
		size = BikeSize
	}
	b := &Bike{rig{
		Size:       size,
		passes:     BikeConstraintPasses,
		DriveAccel: BikeDriveAccel,
		DriveMax:   BikeDriveMax,
		driveDecay: 1.5,
		driveNudge: 0.15,
		wheelSpin:  0.02,
		seatLift:   0.06,
		headLift:   0.08,
		gripIndex:  partFrontWheel,
		gripX:      0.08,
		gripY:      -0.22,
		pedalLegs:  true,
	}}
	b.owner = b
	b.build(pos, [rigPartCount]partSpec{
		{mgl64.Vec2{}, 2.0},                          // root
		{mgl64.Vec2{0, -size * 0.22}, 1.0},           // seat
		{mgl64.Vec2{size * 0.45, size * 0.30}, 0.8},  // front wheel
		{mgl64.Vec2{-size * 0.45, size * 0.30}, 0.8}, // back wheel
		{mgl64.Vec2{0, size * 0.09}, 0.6},            // pedal crank
	})
	return b
}

func (b *Bike) Extent() float64 { return b.Size }

func (b *Bike) Step(dt float64, floor Floor, _ []Attachable) {
	b.stepFrame(dt, floor, b.partRadius)
	b.lockRider()
	// free rolling also spins the wheels
	b.FrontAngle += b.Parts[partFrontWheel].Vel().X() * 0.02
	b.BackAngle += b.Parts[partBackWheel].Vel().X() * 0.02
}

func (b *Bike) partRadius(i int) float64 {
	switch i {
	case partFrontWheel, partBackWheel:
		return b.Size * 0.28
	case partAux:
		return b.Size * 0.06
	case partSeat:
		return b.Size * 0.08
	default:
		return b.Size * 0.10
	}
}
