package genome

import (
	"math/rand"
	"testing"
)

func TestNewRandomWithinBounds(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	g := NewRandom(4, rng)

	for i, v := range g.Forces {
		if v < CoefMin || v > CoefMax {
			t.Errorf("force[%d] = %v outside [%v, %v]", i, v, CoefMin, CoefMax)
		}
	}
	for i, v := range g.FoodForces {
		if v < CoefMin || v > CoefMax {
			t.Errorf("food[%d] = %v outside [%v, %v]", i, v, CoefMin, CoefMax)
		}
	}

	// Same-type entries are seeded repulsive.
	for a := 0; a < 4; a++ {
		if g.Force(a, a) >= -0.1 {
			t.Errorf("Force(%d,%d) = %v, want at most -0.1", a, a, g.Force(a, a))
		}
	}
}

func TestForceIndexing(t *testing.T) {
	g := New(3)
	g.SetForce(1, 2, 0.5)
	g.SetForce(2, 1, -0.5)

	if g.Force(1, 2) != 0.5 {
		t.Errorf("Force(1,2) = %v, want 0.5", g.Force(1, 2))
	}
	if g.Force(2, 1) != -0.5 {
		t.Errorf("Force(2,1) = %v, want -0.5", g.Force(2, 1))
	}
	if g.Forces[1*3+2] != 0.5 {
		t.Errorf("flat index 1*3+2 = %v, want 0.5", g.Forces[1*3+2])
	}
}

func TestSetForceClamps(t *testing.T) {
	g := New(2)
	g.SetForce(0, 1, 5)
	g.SetForce(1, 0, -5)

	if g.Force(0, 1) != CoefMax {
		t.Errorf("Force(0,1) = %v, want %v", g.Force(0, 1), CoefMax)
	}
	if g.Force(1, 0) != CoefMin {
		t.Errorf("Force(1,0) = %v, want %v", g.Force(1, 0), CoefMin)
	}
}

func TestCloneIsIndependent(t *testing.T) {
	rng := rand.New(rand.NewSource(2))
	g := NewRandom(3, rng)
	c := g.Clone()

	c.SetForce(0, 0, 1)
	c.FoodForces[0] = 1

	if g.Force(0, 0) == 1 || g.FoodForces[0] == 1 {
		t.Error("mutating the clone changed the original")
	}
}

func TestCrossoverGenesFromParents(t *testing.T) {
	rng := rand.New(rand.NewSource(3))

	a := New(3)
	b := New(3)
	for i := range a.Forces {
		a.Forces[i] = -1
		b.Forces[i] = 1
	}
	for i := range a.FoodForces {
		a.FoodForces[i] = -1
		b.FoodForces[i] = 1
	}

	child := a.Crossover(b, rng)
	for i, v := range child.Forces {
		if v != -1 && v != 1 {
			t.Errorf("force[%d] = %v, not from either parent", i, v)
		}
	}
	for i, v := range child.FoodForces {
		if v != -1 && v != 1 {
			t.Errorf("food[%d] = %v, not from either parent", i, v)
		}
	}
}

func TestMutateClampsToRange(t *testing.T) {
	rng := rand.New(rand.NewSource(4))
	g := NewRandom(3, rng)

	// Rate 1 with an oversized step forces every gene through the clamp.
	g.Mutate(1.0, 10, rng)

	for i, v := range g.Forces {
		if v < CoefMin || v > CoefMax {
			t.Errorf("force[%d] = %v outside [%v, %v] after mutation", i, v, CoefMin, CoefMax)
		}
	}
	for i, v := range g.FoodForces {
		if v < CoefMin || v > CoefMax {
			t.Errorf("food[%d] = %v outside [%v, %v] after mutation", i, v, CoefMin, CoefMax)
		}
	}
}

func TestMutateZeroRateIsIdentity(t *testing.T) {
	rng := rand.New(rand.NewSource(5))
	g := NewRandom(3, rng)
	c := g.Clone()

	c.Mutate(0, 0.2, rng)

	for i := range g.Forces {
		if g.Forces[i] != c.Forces[i] {
			t.Errorf("force[%d] changed with zero mutation rate", i)
		}
	}
}

func TestValidateDimensions(t *testing.T) {
	tests := []struct {
		name    string
		g       *Genotype
		types   int
		wantErr bool
	}{
		{"matching", New(3), 3, false},
		{"wrong type count", New(3), 4, true},
		{"truncated matrix", &Genotype{Forces: make([]float32, 5), FoodForces: make([]float32, 3), TypeCount: 3}, 3, true},
		{"truncated food vector", &Genotype{Forces: make([]float32, 9), FoodForces: make([]float32, 1), TypeCount: 3}, 3, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.g.Validate(tt.types)
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
