package game

const (
	Gravity = 900.0 // world gravity, units/s^2, y grows downward

	// NPC skeleton
	NPCParticleSize     = 14.0
	NPCConstraintPasses = 5
	NPCStandStrength    = 6.0 // postural spring gain, 1/s
	NPCStartHP          = 100.0
	NPCBulletDamage     = 10.0
	NPCBleedDuration    = 2.5 // seconds of bleeding per hit
	NPCBleedDPS         = 20.0
	NPCHitSearchRadius  = 40.0 // bullet hit -> nearest particle search
	NPCScatterRadius    = 60.0 // impact push radius around the hit
	NPCDeathImpulse     = 300.0
	NPCDeathDrop        = 8.0
	NPCObjectFriction   = 0.6 // friction when standing on bricks

	// bricks and the snap-weld rule
	BrickSize          = 40.0
	BrickFriction      = 0.35
	BrickRestitution   = 0.3
	SnapMaxRelSpeed    = 120.0 // units/s, weld only below this
	SnapMinVerticalDot = -0.7  // contact normal must point steeply up
	SnapHorizontalTol  = 0.35  // fraction of combined size

	// welding tool joint graph
	WeldRadius       = 36.0
	MaxWeldGroupSize = 100

	// thruster
	ThrusterSize     = 32.0
	ThrusterPower    = 1200.0
	ThrusterReaction = 0.1

	// vehicle rigs
	RigSpringStrength     = 8.0 // rest-offset spring gain, 1/s
	VehicleGroundFriction = 0.35

	BikeSize             = 140.0
	BikeConstraintPasses = 12
	BikeDriveAccel       = 800.0
	BikeDriveMax         = 480.0

	CarSize             = 220.0
	CarConstraintPasses = 10
	CarDriveAccel       = 900.0
	CarDriveMax         = 360.0

	// weapons
	BulletGravity   = 240.0
	BulletSpeed     = 900.0
	BulletLife      = 3.0
	BulletHitRadius = 24.0
	PistolCooldown  = 0.25
	AxeRadius       = 36.0

	// drag/pick-up
	PickUpRadius = 80.0
	DragVelKeep  = 0.2 // fraction of old velocity kept while dragged
)
