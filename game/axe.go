package game

import "github.com/go-gl/mathgl/mgl64"

// Axe is a held chop tool: any attachable whose root enters its radius
// is destroyed, and NPCs are wounded once per continuous touch.
type Axe struct {
	Pos    mgl64.Vec2
	Held   bool
	Radius float64

	touching map[*NPC]bool
}

func NewAxe(pos mgl64.Vec2) *Axe {
	return &Axe{Pos: pos, Radius: AxeRadius, touching: make(map[*NPC]bool)}
}

// Update follows the cursor and returns the attachables chopped this
// tick. The caller owns removal, deferred to the tick boundary.
func (a *Axe) Update(cursor mgl64.Vec2, npcs []*NPC, objects []Attachable) []Attachable {
	if !a.Held {
		clear(a.touching)
		return nil
	}
	a.Pos = cursor

	var chopped []Attachable
	for _, obj := range objects {
		if obj.Body().Pos.Sub(a.Pos).Len() < a.Radius {
			chopped = append(chopped, obj)
		}
	}

	for _, n := range npcs {
		idx, ok := n.NearestParticleIndex(a.Pos, a.Radius)
		if !ok {
			delete(a.touching, n)
			continue
		}
		if a.touching[n] {
			continue
		}
		a.touching[n] = true
		n.ApplyBulletHit(n.Particles[idx].Pos)
	}
	return chopped
}
