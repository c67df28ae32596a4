package genome

import (
	"math/rand"
	"os"
	"path/filepath"
	"testing"

	"github.com/pthm-cable/broth/config"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg, err := config.Load("")
	if err != nil {
		t.Fatalf("loading defaults: %v", err)
	}
	return cfg
}

func TestSavedPopulationRoundTrip(t *testing.T) {
	cfg := testConfig(t)
	rng := rand.New(rand.NewSource(10))
	g := NewRandom(cfg.Simulation.Types, rng)

	sp := NewSavedPopulation("test run", g, 42.5, 7, cfg)
	path, err := sp.Save(t.TempDir())
	if err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	loaded, err := LoadPopulation(path)
	if err != nil {
		t.Fatalf("LoadPopulation() error = %v", err)
	}

	if loaded.Name != "test run" || loaded.Score != 42.5 || loaded.Epoch != 7 {
		t.Errorf("metadata = %q/%v/%v, want test run/42.5/7", loaded.Name, loaded.Score, loaded.Epoch)
	}
	if loaded.Params.WorldSize != cfg.World.Size {
		t.Errorf("saved world size = %v, want %v", loaded.Params.WorldSize, cfg.World.Size)
	}
	for i := range g.Forces {
		if loaded.Genotype.Forces[i] != g.Forces[i] {
			t.Fatalf("force[%d] = %v, want %v", i, loaded.Genotype.Forces[i], g.Forces[i])
		}
	}
	for i := range g.FoodForces {
		if loaded.Genotype.FoodForces[i] != g.FoodForces[i] {
			t.Fatalf("food[%d] = %v, want %v", i, loaded.Genotype.FoodForces[i], g.FoodForces[i])
		}
	}
}

func TestLoadPopulationRejectsBadGenotype(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name string
		body string
	}{
		{"missing genotype", `{"id":"x","name":"n"}`},
		{"inconsistent dimensions", `{"id":"x","name":"n","genotype":{"force_matrix":[0.1],"food_forces":[0.1,0.2],"type_count":2}}`},
		{"not json", `not json`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(dir, "bad.json")
			if err := os.WriteFile(path, []byte(tt.body), 0644); err != nil {
				t.Fatal(err)
			}
			if _, err := LoadPopulation(path); err == nil {
				t.Error("LoadPopulation() accepted an invalid file")
			}
		})
	}
}

func TestLoadDir(t *testing.T) {
	cfg := testConfig(t)
	rng := rand.New(rand.NewSource(11))
	dir := t.TempDir()

	for i := 0; i < 3; i++ {
		sp := NewSavedPopulation("pop", NewRandom(cfg.Simulation.Types, rng), float32(i), i, cfg)
		if _, err := sp.Save(dir); err != nil {
			t.Fatalf("Save() error = %v", err)
		}
	}
	// An unreadable file is skipped, not fatal.
	if err := os.WriteFile(filepath.Join(dir, "junk.json"), []byte("junk"), 0644); err != nil {
		t.Fatal(err)
	}

	pops, err := LoadDir(dir)
	if err != nil {
		t.Fatalf("LoadDir() error = %v", err)
	}
	if len(pops) != 3 {
		t.Errorf("LoadDir() returned %d populations, want 3", len(pops))
	}
}

func TestLoadDirMissing(t *testing.T) {
	pops, err := LoadDir(filepath.Join(t.TempDir(), "nope"))
	if err != nil {
		t.Fatalf("LoadDir() error = %v", err)
	}
	if pops != nil {
		t.Errorf("LoadDir() = %v, want nil for a missing directory", pops)
	}
}
