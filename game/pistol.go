package game

import "github.com/go-gl/mathgl/mgl64"

// Bullet is a ballistic projectile. It dies on floor contact, on NPC
// contact (applying bullet damage) or when its lifetime runs out.
type Bullet struct {
	Pos   mgl64.Vec2
	Vel   mgl64.Vec2
	Life  float64
	Alive bool
}

func (b *Bullet) Update(dt float64, npcs []*NPC, floor Floor) {
	b.Vel[1] += BulletGravity * dt
	b.Pos = b.Pos.Add(b.Vel.Mul(dt))
	b.Life -= dt
	if b.Life <= 0 {
		b.Alive = false
		return
	}
	if floor != nil && b.Pos.Y() > floor.FloorY() {
		b.Alive = false
		return
	}
	for _, n := range npcs {
		idx, ok := n.NearestParticleIndex(b.Pos, BulletHitRadius)
		if !ok {
			continue
		}
		n.ApplyBulletHit(n.Particles[idx].Pos)
		b.Alive = false
		return
	}
}

// Pistol follows the cursor while held and fires straight-line bullets.
type Pistol struct {
	Pos     mgl64.Vec2
	Held    bool
	Bullets []*Bullet

	cooldown float64
}

func NewPistol(pos mgl64.Vec2) *Pistol {
	return &Pistol{Pos: pos}
}

// Fire spawns a bullet toward dir, rate-limited by the cooldown. A zero
// direction is ignored.
func (g *Pistol) Fire(dir mgl64.Vec2) {
	if g.cooldown > 0 {
		return
	}
	d := dir.Len()
	if d == 0 {
		return
	}
	g.Bullets = append(g.Bullets, &Bullet{
		Pos:   g.Pos,
		Vel:   dir.Mul(BulletSpeed / d),
		Life:  BulletLife,
		Alive: true,
	})
	g.cooldown = PistolCooldown
}

func (g *Pistol) Update(dt float64, cursor mgl64.Vec2, npcs []*NPC, floor Floor) {
	if g.Held {
		g.Pos = cursor
	}
	if g.cooldown > 0 {
		g.cooldown -= dt
	}
	alive := g.Bullets[:0]
	for _, b := range g.Bullets {
		b.Update(dt, npcs, floor)
		if b.Alive {
			alive = append(alive, b)
		}
	}
	g.Bullets = alive
}
