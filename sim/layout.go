// Package sim owns one population's simulation: its particle and food
// buffers, its bound genotype, and its running score.
package sim

import (
	"math/rand"

	"github.com/pthm-cable/broth/config"
	"github.com/pthm-cable/broth/physics"
)

// SpawnLayout is one epoch's starting board: particle positions and types,
// plus food positions. Every instance of an epoch is reset from the same
// layout so genomes compete under identical conditions.
type SpawnLayout struct {
	Pos  []physics.Vec3
	Type []uint8
	Food []physics.Vec3
}

// NewSpawnLayout draws a fresh random layout. Types are assigned in equal
// blocks of ParticlesPerType, positions uniform over the world cube.
func NewSpawnLayout(cfg *config.Config, rng *rand.Rand) *SpawnLayout {
	n := cfg.Derived.ActualParticles
	l := &SpawnLayout{
		Pos:  make([]physics.Vec3, 0, n),
		Type: make([]uint8, 0, n),
		Food: make([]physics.Vec3, 0, cfg.Food.Count),
	}

	size := float32(cfg.World.Size)
	for t := 0; t < cfg.Simulation.Types; t++ {
		for k := 0; k < cfg.Derived.ParticlesPerType; k++ {
			l.Pos = append(l.Pos, randomPosition(size, rng))
			l.Type = append(l.Type, uint8(t))
		}
	}

	for k := 0; k < cfg.Food.Count; k++ {
		l.Food = append(l.Food, randomPosition(size, rng))
	}

	return l
}

func randomPosition(size float32, rng *rand.Rand) physics.Vec3 {
	half := size / 2
	return physics.Vec3{
		X: rng.Float32()*size - half,
		Y: rng.Float32()*size - half,
		Z: rng.Float32()*size - half,
	}
}
