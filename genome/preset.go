package genome

// Preset returns a deterministic hand-tuned genotype known to produce visibly
// structured behavior, used to seed demo runs. Three types get a cyclic
// chase (each type attracts the next and repels the previous), four types a
// longer cycle with cross repulsions. Other type counts fall back to uniform
// self-repulsion with neutral cross terms.
func Preset(typeCount int) *Genotype {
	g := New(typeCount)

	switch typeCount {
	case 3:
		g.SetForce(0, 1, 1.0)
		g.SetForce(1, 2, 1.0)
		g.SetForce(2, 0, 1.0)
		g.SetForce(1, 0, -0.5)
		g.SetForce(2, 1, -0.5)
		g.SetForce(0, 2, -0.5)
		for t := 0; t < 3; t++ {
			g.SetForce(t, t, -0.3)
		}
		copy(g.FoodForces, []float32{0.8, -0.3, 0.5})
	case 4:
		g.SetForce(0, 1, 1.0)
		g.SetForce(1, 2, 0.8)
		g.SetForce(2, 3, 1.0)
		g.SetForce(3, 0, 0.6)
		g.SetForce(0, 2, -1.0)
		g.SetForce(1, 3, -0.8)
		g.SetForce(2, 0, -0.6)
		g.SetForce(3, 1, -1.0)
		for t := 0; t < 4; t++ {
			g.SetForce(t, t, -0.4)
		}
		copy(g.FoodForces, []float32{0.6, -0.4, 0.8, -0.2})
	default:
		for t := 0; t < typeCount; t++ {
			g.SetForce(t, t, -0.3)
			g.FoodForces[t] = 0.5
		}
	}

	return g
}
