package sim

import (
	"github.com/pthm-cable/broth/physics"
)

// Snapshot is a read-only copy of an instance's visible state, taken between
// ticks for visualization or inspection collaborators. Mutating a snapshot
// never touches the live instance.
type Snapshot struct {
	Instance int
	Elapsed  float32
	Score    float32

	Pos  []physics.Vec3
	Vel  []physics.Vec3
	Type []uint8

	FoodPos    []physics.Vec3
	FoodActive []bool

	ForceMatrix [][]float32
	FoodForces  []float32
}

// Snapshot copies the instance's particle and food state plus the active
// genotype's coefficients.
func (in *Instance) Snapshot() Snapshot {
	s := Snapshot{
		Instance:   in.id,
		Elapsed:    in.elapsed,
		Score:      in.score,
		Pos:        make([]physics.Vec3, len(in.cur.Pos)),
		Vel:        make([]physics.Vec3, len(in.cur.Vel)),
		Type:       make([]uint8, len(in.cur.Type)),
		FoodPos:    make([]physics.Vec3, len(in.food.Pos)),
		FoodActive: make([]bool, len(in.food.Active)),
	}
	copy(s.Pos, in.cur.Pos)
	copy(s.Vel, in.cur.Vel)
	copy(s.Type, in.cur.Type)
	copy(s.FoodPos, in.food.Pos)
	copy(s.FoodActive, in.food.Active)

	if in.bound != nil {
		s.ForceMatrix = in.bound.Matrix()
		s.FoodForces = make([]float32, len(in.bound.FoodForces))
		copy(s.FoodForces, in.bound.FoodForces)
	}

	return s
}
