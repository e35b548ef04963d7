package game

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// ResolveParticleAABB pushes a circular particle out of an axis-aligned
// square centered at center and reflects the normal velocity component.
// bounce is restitution along the normal; friction scales the tangential
// x velocity when the contact normal is mostly vertical (grounded-on-
// object contact, as opposed to brushing a wall). Reports whether a
// collision was resolved.
func ResolveParticleAABB(p *Particle, center mgl64.Vec2, size, radius, bounce, friction float64) bool {
	half := size * 0.5
	minX := center.X() - half
	maxX := center.X() + half
	minY := center.Y() - half
	maxY := center.Y() + half

	cx := clamp(p.Pos.X(), minX, maxX)
	cy := clamp(p.Pos.Y(), minY, maxY)

	dx := p.Pos.X() - cx
	dy := p.Pos.Y() - cy
	distSq := dx*dx + dy*dy
	if distSq > radius*radius {
		return false
	}

	var nx, ny, pen float64
	if distSq == 0 {
		// center sits exactly on the closest point, push straight up
		nx, ny = 0, -1
		pen = radius
	} else {
		dist := math.Sqrt(distSq)
		nx = dx / dist
		ny = dy / dist
		pen = radius - dist
	}

	p.Pos[0] += nx * pen
	p.Pos[1] += ny * pen

	vel := p.Vel()
	vn := vel[0]*nx + vel[1]*ny
	if vn < 0 { // approaching
		vel[0] -= vn * nx
		vel[1] -= vn * ny
		vel[0] += -vn * nx * bounce
		vel[1] += -vn * ny * bounce
	}
	if math.Abs(ny) > 0.5 {
		vel[0] *= friction
	}
	p.Prev = p.Pos.Sub(vel)
	return true
}

// CollideParticlesWithBricks resolves every particle against every
// object's square proxy. Extra iterations buy stability when particles
// end up wedged between objects.
func CollideParticlesWithBricks(parts []Particle, objects []Attachable, radius, bounce, friction float64, iterations int) {
	if len(objects) == 0 {
		return
	}
	if iterations < 1 {
		iterations = 1
	}
	for it := 0; it < iterations; it++ {
		for i := range parts {
			for _, obj := range objects {
				ResolveParticleAABB(&parts[i], obj.Body().Pos, obj.Extent(), radius, bounce, friction)
			}
		}
	}
}

// RaycastAABB intersects a ray with a square via the slab method.
// Returns the parametric distance along the ray, the world hit position
// and the surface normal.
func RaycastAABB(origin, dir mgl64.Vec2, maxDist float64, center mgl64.Vec2, size float64) (bool, float64, mgl64.Vec2, mgl64.Vec2) {
	half := size * 0.5
	minX := center.X() - half
	maxX := center.X() + half
	minY := center.Y() - half
	maxY := center.Y() + half

	tmin := math.Inf(-1)
	tmax := math.Inf(1)
	var normal mgl64.Vec2

	if math.Abs(dir.X()) < 1e-8 {
		if origin.X() < minX || origin.X() > maxX {
			return false, 0, mgl64.Vec2{}, mgl64.Vec2{}
		}
	} else {
		t1 := (minX - origin.X()) / dir.X()
		t2 := (maxX - origin.X()) / dir.X()
		if t1 > t2 {
			t1, t2 = t2, t1
		}
		if t1 > tmin {
			tmin = t1
			if dir.X() > 0 {
				normal = mgl64.Vec2{-1, 0}
			} else {
				normal = mgl64.Vec2{1, 0}
			}
		}
		if t2 < tmax {
			tmax = t2
		}
	}

	if math.Abs(dir.Y()) < 1e-8 {
		if origin.Y() < minY || origin.Y() > maxY {
			return false, 0, mgl64.Vec2{}, mgl64.Vec2{}
		}
	} else {
		t1 := (minY - origin.Y()) / dir.Y()
		t2 := (maxY - origin.Y()) / dir.Y()
		if t1 > t2 {
			t1, t2 = t2, t1
		}
		if t1 > tmin {
			tmin = t1
			if dir.Y() > 0 {
				normal = mgl64.Vec2{0, -1}
			} else {
				normal = mgl64.Vec2{0, 1}
			}
		}
		if t2 < tmax {
			tmax = t2
		}
	}

	if tmax < math.Max(tmin, 0) {
		return false, 0, mgl64.Vec2{}, mgl64.Vec2{}
	}
	t := tmin
	if t < 0 {
		t = tmax
	}
	if t < 0 || t > maxDist {
		return false, 0, mgl64.Vec2{}, mgl64.Vec2{}
	}
	hit := origin.Add(dir.Mul(t))
	return true, t, hit, normal
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
