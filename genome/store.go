package genome

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/pthm-cable/broth/config"
)

// SavedParams snapshots the run parameters a genotype evolved under, so a
// loaded population can be replayed in a comparable world.
type SavedParams struct {
	ParticleCount    int     `json:"particle_count"`
	ParticleTypes    int     `json:"particle_types"`
	MaxForceRange    float64 `json:"max_force_range"`
	VelocityHalfLife float64 `json:"velocity_half_life"`
	EpochDuration    float64 `json:"epoch_duration"`
	WorldSize        float64 `json:"world_size"`
	BoundaryMode     string  `json:"boundary_mode"`
	FoodCount        int     `json:"food_count"`
	FoodValue        float64 `json:"food_value"`
}

// SavedPopulation is the persisted form of one evolved genotype plus its
// scoring metadata. Field ordering is canonical: the force matrix is the
// row-major flattening a*types+b, the food vector is indexed by type.
type SavedPopulation struct {
	ID          string      `json:"id"`
	Name        string      `json:"name"`
	Timestamp   time.Time   `json:"timestamp"`
	Genotype    *Genotype   `json:"genotype"`
	Score       float32     `json:"score"`
	Epoch       int         `json:"epoch"`
	Params      SavedParams `json:"params"`
	Description string      `json:"description,omitempty"`
}

// NewSavedPopulation wraps a genotype with its score and the current run
// parameters for saving.
func NewSavedPopulation(name string, g *Genotype, score float32, epoch int, cfg *config.Config) *SavedPopulation {
	return &SavedPopulation{
		ID:        uuid.NewString(),
		Name:      name,
		Timestamp: time.Now().UTC(),
		Genotype:  g.Clone(),
		Score:     score,
		Epoch:     epoch,
		Params: SavedParams{
			ParticleCount:    cfg.Derived.ActualParticles,
			ParticleTypes:    cfg.Simulation.Types,
			MaxForceRange:    cfg.Physics.MaxForceRange,
			VelocityHalfLife: cfg.Physics.VelocityHalfLife,
			EpochDuration:    cfg.Simulation.EpochDuration,
			WorldSize:        cfg.World.Size,
			BoundaryMode:     cfg.World.Boundary,
			FoodCount:        cfg.Food.Count,
			FoodValue:        cfg.Food.Value,
		},
	}
}

// Write saves the population as JSON at path.
func (sp *SavedPopulation) Write(path string) error {
	data, err := json.MarshalIndent(sp, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling population: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing population file: %w", err)
	}
	return nil
}

// Save writes the population into dir under a filename derived from its name
// and ID, creating the directory if needed. Returns the written path.
func (sp *SavedPopulation) Save(dir string) (string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("creating population directory: %w", err)
	}
	name := strings.ReplaceAll(strings.ToLower(sp.Name), " ", "_")
	if name == "" {
		name = "population"
	}
	path := filepath.Join(dir, fmt.Sprintf("%s_%s.json", name, sp.ID[:8]))
	if err := sp.Write(path); err != nil {
		return "", err
	}
	return path, nil
}

// LoadPopulation reads a saved population and verifies the genotype's own
// dimensional consistency. The caller still has to check the genotype against
// the active type count (Genotype.Validate) before binding it.
func LoadPopulation(path string) (*SavedPopulation, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading population file: %w", err)
	}

	sp := &SavedPopulation{}
	if err := json.Unmarshal(data, sp); err != nil {
		return nil, fmt.Errorf("parsing population file %s: %w", filepath.Base(path), err)
	}
	if sp.Genotype == nil {
		return nil, fmt.Errorf("population file %s: missing genotype", filepath.Base(path))
	}
	if err := sp.Genotype.Validate(sp.Genotype.TypeCount); err != nil {
		return nil, fmt.Errorf("population file %s: %w", filepath.Base(path), err)
	}
	return sp, nil
}

// LoadDir reads every .json population in dir, skipping unreadable files.
// A missing directory yields an empty list.
func LoadDir(dir string) ([]*SavedPopulation, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading population directory: %w", err)
	}

	var pops []*SavedPopulation
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".json" {
			continue
		}
		sp, err := LoadPopulation(filepath.Join(dir, entry.Name()))
		if err != nil {
			continue
		}
		pops = append(pops, sp)
	}
	return pops, nil
}
