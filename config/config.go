// Package config provides configuration loading and access for the evolution runs.
package config

import (
	_ "embed"
	"fmt"
	"math"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Boundary mode names accepted in configuration files.
const (
	BoundaryBounce   = "bounce"
	BoundaryTeleport = "teleport"
)

// Config holds all run configuration parameters.
type Config struct {
	World      WorldConfig      `yaml:"world"`
	Physics    PhysicsConfig    `yaml:"physics"`
	Simulation SimulationConfig `yaml:"simulation"`
	Food       FoodConfig       `yaml:"food"`
	Scoring    ScoringConfig    `yaml:"scoring"`
	Genetics   GeneticsConfig   `yaml:"genetics"`
	Telemetry  TelemetryConfig  `yaml:"telemetry"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-"`
}

// WorldConfig holds the cubic world dimensions and edge behavior.
type WorldConfig struct {
	Size     float64 `yaml:"size" validate:"gt=0"`
	Boundary string  `yaml:"boundary" validate:"oneof=bounce teleport"`
}

// PhysicsConfig holds the force kernel and integration parameters.
type PhysicsConfig struct {
	TickDT           float64 `yaml:"tick_dt" validate:"gt=0"`               // Fixed simulation timestep in seconds
	MaxForceRange    float64 `yaml:"max_force_range" validate:"gt=0"`       // Forces fade to zero at this distance
	VelocityHalfLife float64 `yaml:"velocity_half_life" validate:"gt=0"`    // Exponential damping half-life in seconds
	MaxSpeed         float64 `yaml:"max_speed" validate:"gt=0"`
	ParticleRadius   float64 `yaml:"particle_radius" validate:"gt=0"`
	FoodRadius       float64 `yaml:"food_radius" validate:"gte=0"`
	ForceScale       float64 `yaml:"force_scale" validate:"gt=0"`           // Genome coefficient multiplier
	MaxInteractions  int     `yaml:"max_interactions" validate:"gte=1"`     // Neighbor cap per particle, ascending index
	MinDistance      float64 `yaml:"min_distance" validate:"gte=0"`         // Below this, pairs are skipped as coincident
}

// SimulationConfig holds population layout parameters.
type SimulationConfig struct {
	Count         int     `yaml:"count" validate:"gte=1"`         // Parallel simulations per epoch (N)
	Particles     int     `yaml:"particles" validate:"gte=1"`     // Particles per simulation
	Types         int     `yaml:"types" validate:"gte=1"`         // Particle types
	EpochDuration float64 `yaml:"epoch_duration" validate:"gt=0"` // Simulated seconds per epoch
}

// FoodConfig holds food placement parameters.
type FoodConfig struct {
	Count int     `yaml:"count" validate:"gte=0"`
	Value float64 `yaml:"value" validate:"gte=0"`
}

// ScoringConfig holds the reward weights.
// The survival/collection balance is deliberately configuration, not constants.
type ScoringConfig struct {
	CollectWeight float64 `yaml:"collect_weight" validate:"gte=0"` // Multiplies food value on consumption
	SurviveWeight float64 `yaml:"survive_weight" validate:"gte=0"` // Per alive particle per simulated second
}

// GeneticsConfig holds the evolutionary loop parameters.
type GeneticsConfig struct {
	EliteRatio     float64 `yaml:"elite_ratio" validate:"gte=0,lte=1"`
	MutationRate   float64 `yaml:"mutation_rate" validate:"gte=0,lte=1"`
	CrossoverRate  float64 `yaml:"crossover_rate" validate:"gte=0,lte=1"`
	MutationStep   float64 `yaml:"mutation_step" validate:"gt=0"` // Max absolute perturbation per mutated gene
	TournamentSize int     `yaml:"tournament_size" validate:"gte=1"`
	Adaptive       bool    `yaml:"adaptive"` // Scale mutation rate by diversity and stagnation
}

// TelemetryConfig holds telemetry parameters.
type TelemetryConfig struct {
	LogEpochs bool `yaml:"log_epochs"`
}

// DerivedConfig holds computed values derived from the loaded config.
type DerivedConfig struct {
	ParticlesPerType int     // ceil(Particles / Types)
	ActualParticles  int     // ParticlesPerType * Types (rounded up for an even split)
	EliteCount       int     // max(1, ceil(EliteRatio * Count))
	TicksPerEpoch    int     // round(EpochDuration / TickDT)
	HalfWorld        float64 // World.Size / 2
}

// global holds the loaded configuration.
var global *Config

// Init loads configuration from the given path, or uses embedded defaults if path is empty.
// Must be called before Cfg().
func Init(path string) error {
	cfg, err := Load(path)
	if err != nil {
		return err
	}
	global = cfg
	return nil
}

// MustInit is like Init but panics on error.
func MustInit(path string) {
	if err := Init(path); err != nil {
		panic(fmt.Sprintf("config: failed to initialize: %v", err))
	}
}

// Cfg returns the global configuration. Panics if Init was not called.
func Cfg() *Config {
	if global == nil {
		panic("config: Cfg() called before Init()")
	}
	return global
}

// Load loads configuration from a YAML file, merging with embedded defaults.
// If path is empty, only embedded defaults are used. The result is validated;
// invalid parameters surface as a ConfigurationError before anything runs.
func Load(path string) (*Config, error) {
	// Start with embedded defaults
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	// Load user config if provided
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		// Unmarshal into same struct - only overwrites fields present in file
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	cfg.computeDerived()

	return cfg, nil
}

// computeDerived calculates values derived from loaded config.
func (c *Config) computeDerived() {
	perType := (c.Simulation.Particles + c.Simulation.Types - 1) / c.Simulation.Types
	c.Derived.ParticlesPerType = perType
	c.Derived.ActualParticles = perType * c.Simulation.Types

	elite := int(math.Ceil(c.Genetics.EliteRatio * float64(c.Simulation.Count)))
	if elite < 1 {
		elite = 1
	}
	c.Derived.EliteCount = elite

	c.Derived.TicksPerEpoch = int(math.Round(c.Simulation.EpochDuration / c.Physics.TickDT))
	c.Derived.HalfWorld = c.World.Size / 2
}

// WriteYAML writes the configuration to a YAML file.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}
