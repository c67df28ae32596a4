package physics

import (
	"github.com/pthm-cable/broth/config"
)

// Params holds the kernel's tuning in float32, precomputed once per run so
// the tick loop never touches configuration.
type Params struct {
	NumTypes        int
	WorldSize       float32
	Half            float32
	Boundary        BoundaryMode
	MaxForceRange   float32
	ForceScale      float32
	ParticleRadius  float32
	FoodRadius      float32
	HalfLife        float32
	MaxSpeed        float32
	MaxInteractions int
	MinDistance     float32 // squared-distance gate for coincident pairs
}

// FromConfig converts validated run configuration into kernel parameters.
func FromConfig(cfg *config.Config) (*Params, error) {
	mode, err := ParseBoundaryMode(cfg.World.Boundary)
	if err != nil {
		return nil, err
	}

	return &Params{
		NumTypes:        cfg.Simulation.Types,
		WorldSize:       float32(cfg.World.Size),
		Half:            float32(cfg.Derived.HalfWorld),
		Boundary:        mode,
		MaxForceRange:   float32(cfg.Physics.MaxForceRange),
		ForceScale:      float32(cfg.Physics.ForceScale),
		ParticleRadius:  float32(cfg.Physics.ParticleRadius),
		FoodRadius:      float32(cfg.Physics.FoodRadius),
		HalfLife:        float32(cfg.Physics.VelocityHalfLife),
		MaxSpeed:        float32(cfg.Physics.MaxSpeed),
		MaxInteractions: cfg.Physics.MaxInteractions,
		MinDistance:     float32(cfg.Physics.MinDistance),
	}, nil
}
