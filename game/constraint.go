package game

// Constraint keeps two particles of the same body a fixed distance
// apart. A and B index into the owning body's particle slice.
type Constraint struct {
	A, B int
	Rest float64
}

// connect captures the current spacing as the rest length, stretched by
// slack for deliberately loose constraints.
func connect(parts []Particle, a, b int, slack float64) Constraint {
	rest := parts[b].Pos.Sub(parts[a].Pos).Len() * (1 + slack)
	return Constraint{A: a, B: b, Rest: rest}
}

// Relax runs one equal-mass Gauss-Seidel pass. Zero-length pairs are
// skipped, the normal is undefined there.
func Relax(parts []Particle, cs []Constraint) {
	for _, c := range cs {
		pa := &parts[c.A]
		pb := &parts[c.B]
		delta := pb.Pos.Sub(pa.Pos)
		d := delta.Len()
		if d == 0 {
			continue
		}
		diff := (d - c.Rest) / d
		corr := delta.Mul(0.5 * diff)
		pa.Pos = pa.Pos.Add(corr)
		pb.Pos = pb.Pos.Sub(corr)
	}
}

// RelaxWeighted splits each correction by inverse mass so a heavy root
// particle drags its frame instead of being dragged by it.
func RelaxWeighted(parts []Particle, cs []Constraint) {
	for _, c := range cs {
		pa := &parts[c.A]
		pb := &parts[c.B]
		delta := pb.Pos.Sub(pa.Pos)
		d := delta.Len()
		if d == 0 {
			continue
		}
		diff := (d - c.Rest) / d
		ma := pa.Mass
		if ma < 1e-6 {
			ma = 1e-6
		}
		mb := pb.Mass
		if mb < 1e-6 {
			mb = 1e-6
		}
		total := ma + mb
		pa.Pos = pa.Pos.Add(delta.Mul(0.5 * diff * (mb / total)))
		pb.Pos = pb.Pos.Sub(delta.Mul(0.5 * diff * (ma / total)))
	}
}
