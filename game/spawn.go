package game

import "github.com/go-gl/mathgl/mgl64"

// Kind identifies a spawnable attachable type on the wire and in saved
// world files.
type Kind string

const (
	KindBrick    Kind = "brick"
	KindThruster Kind = "thruster"
	KindBike     Kind = "bike"
	KindCar      Kind = "car"
)

// ParseKind normalizes a wire string. Unknown strings fall back to
// brick rather than failing the whole spawn.
func ParseKind(s string) Kind {
	switch Kind(s) {
	case KindThruster, KindBike, KindCar:
		return Kind(s)
	}
	return KindBrick
}

// KindOf reports the spawn kind of a live attachable.
func KindOf(obj Attachable) Kind {
	switch obj.(type) {
	case *Thruster:
		return KindThruster
	case *Bike:
		return KindBike
	case *Car:
		return KindCar
	default:
		return KindBrick
	}
}

// DefaultSize returns the spawn size used when a record omits one.
func DefaultSize(k Kind) float64 {
	switch k {
	case KindThruster:
		return ThrusterSize
	case KindBike:
		return BikeSize
	case KindCar:
		return CarSize
	default:
		return BrickSize
	}
}

// NewAttachable builds a fresh object of the given kind. size <= 0
// picks the kind's default.
func NewAttachable(k Kind, pos mgl64.Vec2, size float64) Attachable {
	if size <= 0 {
		size = DefaultSize(k)
	}
	switch k {
	case KindThruster:
		return NewThruster(pos, size)
	case KindBike:
		return NewBike(pos, size)
	case KindCar:
		return NewCar(pos, size)
	default:
		return NewBrick(pos, size)
	}
}

// ObjectRecord is the serialized form of one attachable.
type ObjectRecord struct {
	Type Kind    `json:"type"`
	X    float64 `json:"x"`
	Y    float64 `json:"y"`
	Size float64 `json:"size,omitempty"`
}

// NPCRecord stores an NPC by torso position only; the pose is rebuilt
// on load.
type NPCRecord struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// WorldRecord is the persisted snapshot of a world.
type WorldRecord struct {
	FloorY  float64        `json:"floorY"`
	Objects []ObjectRecord `json:"objects"`
	NPCs    []NPCRecord    `json:"npcs"`
}

// Snapshot captures the spawnable state of the world. Welds, joints and
// velocities are not persisted.
func (w *World) Snapshot() WorldRecord {
	rec := WorldRecord{FloorY: w.Floor.FloorY()}
	for _, obj := range w.Objects {
		p := obj.Body().Pos
		rec.Objects = append(rec.Objects, ObjectRecord{
			Type: KindOf(obj),
			X:    p[0],
			Y:    p[1],
			Size: obj.Extent(),
		})
	}
	for _, n := range w.NPCs {
		c := n.TorsoCenter()
		rec.NPCs = append(rec.NPCs, NPCRecord{X: c[0], Y: c[1]})
	}
	return rec
}

// LoadWorld rebuilds a world from a record. Objects and NPCs are
// inserted directly, not queued, so the world is usable immediately.
func LoadWorld(rec WorldRecord) *World {
	w := NewWorld(FloorAt(rec.FloorY))
	for _, o := range rec.Objects {
		w.Objects = append(w.Objects, NewAttachable(ParseKind(string(o.Type)), mgl64.Vec2{o.X, o.Y}, o.Size))
	}
	for _, n := range rec.NPCs {
		w.NPCs = append(w.NPCs, NewNPC(n.X, n.Y))
	}
	return w
}
