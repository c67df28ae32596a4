// Package genome defines the heritable force rules of a particle population
// and the operators the genetic engine applies to them.
package genome

import (
	"fmt"
	"math/rand"
)

// Gene coefficients always stay within [CoefMin, CoefMax].
const (
	CoefMin float32 = -1
	CoefMax float32 = 1
)

// Genotype holds the pairwise force matrix and the per-type food attraction of
// one population. The matrix is flattened row-major: Forces[a*TypeCount+b] is
// the force type a feels toward type b (asymmetric pairs allowed). A genotype
// is immutable once bound to a simulation for an epoch; only the genetic
// engine (or initial seeding) produces new ones.
type Genotype struct {
	Forces     []float32 `json:"force_matrix"`
	FoodForces []float32 `json:"food_forces"`
	TypeCount  int       `json:"type_count"`
}

// New returns a zero genotype for the given number of particle types.
func New(typeCount int) *Genotype {
	return &Genotype{
		Forces:     make([]float32, typeCount*typeCount),
		FoodForces: make([]float32, typeCount),
		TypeCount:  typeCount,
	}
}

// NewRandom returns a random genotype. Same-type coefficients are seeded
// repulsive ([-1, -0.1]) so a fresh population does not immediately collapse
// into a single clump; everything else is uniform in [-1, 1].
func NewRandom(typeCount int, rng *rand.Rand) *Genotype {
	g := New(typeCount)
	for a := 0; a < typeCount; a++ {
		for b := 0; b < typeCount; b++ {
			if a == b {
				g.Forces[a*typeCount+b] = -0.1 - 0.9*rng.Float32()
			} else {
				g.Forces[a*typeCount+b] = rng.Float32()*2 - 1
			}
		}
	}
	for t := range g.FoodForces {
		g.FoodForces[t] = rng.Float32()*2 - 1
	}
	return g
}

// Clone returns a deep copy.
func (g *Genotype) Clone() *Genotype {
	c := New(g.TypeCount)
	copy(c.Forces, g.Forces)
	copy(c.FoodForces, g.FoodForces)
	return c
}

// Force returns the coefficient type a feels toward type b.
func (g *Genotype) Force(a, b int) float32 {
	return g.Forces[a*g.TypeCount+b]
}

// SetForce sets the coefficient type a feels toward type b, clamped to the
// valid gene range.
func (g *Genotype) SetForce(a, b int, v float32) {
	g.Forces[a*g.TypeCount+b] = clampGene(v)
}

// FoodForce returns the food attraction coefficient for a particle type.
func (g *Genotype) FoodForce(t int) float32 {
	return g.FoodForces[t]
}

// Crossover produces a child by an independent uniform coin flip per gene,
// taking each matrix cell and food entry from either parent.
func (g *Genotype) Crossover(other *Genotype, rng *rand.Rand) *Genotype {
	child := New(g.TypeCount)
	for i := range g.Forces {
		if rng.Float32() < 0.5 {
			child.Forces[i] = g.Forces[i]
		} else {
			child.Forces[i] = other.Forces[i]
		}
	}
	for i := range g.FoodForces {
		if rng.Float32() < 0.5 {
			child.FoodForces[i] = g.FoodForces[i]
		} else {
			child.FoodForces[i] = other.FoodForces[i]
		}
	}
	return child
}

// Mutate perturbs each gene with probability rate by a uniform value in
// [-step, step], clamping back into the gene range.
func (g *Genotype) Mutate(rate, step float32, rng *rand.Rand) {
	for i := range g.Forces {
		if rng.Float32() < rate {
			g.Forces[i] = clampGene(g.Forces[i] + (rng.Float32()*2-1)*step)
		}
	}
	for i := range g.FoodForces {
		if rng.Float32() < rate {
			g.FoodForces[i] = clampGene(g.FoodForces[i] + (rng.Float32()*2-1)*step)
		}
	}
}

// Matrix expands the flat force coefficients into a row-indexed matrix, for
// display collaborators.
func (g *Genotype) Matrix() [][]float32 {
	m := make([][]float32, g.TypeCount)
	for a := range m {
		m[a] = make([]float32, g.TypeCount)
		for b := range m[a] {
			m[a][b] = g.Force(a, b)
		}
	}
	return m
}

// Validate checks that the genotype's dimensions agree with the given type
// count. A mismatch is a DimensionError; a mismatched genotype must never be
// bound to a simulation.
func (g *Genotype) Validate(typeCount int) error {
	if g.TypeCount != typeCount ||
		len(g.Forces) != typeCount*typeCount ||
		len(g.FoodForces) != typeCount {
		return &DimensionError{
			WantTypes:  typeCount,
			GotTypes:   g.TypeCount,
			MatrixSize: len(g.Forces),
			VectorSize: len(g.FoodForces),
		}
	}
	return nil
}

// DimensionError reports a genotype whose matrix or food vector does not match
// the configured particle type count.
type DimensionError struct {
	WantTypes  int
	GotTypes   int
	MatrixSize int
	VectorSize int
}

func (e *DimensionError) Error() string {
	return fmt.Sprintf("genotype dimensions mismatch: want %d types, got %d (matrix %d, food vector %d)",
		e.WantTypes, e.GotTypes, e.MatrixSize, e.VectorSize)
}

func clampGene(v float32) float32 {
	if v < CoefMin {
		return CoefMin
	}
	if v > CoefMax {
		return CoefMax
	}
	return v
}
