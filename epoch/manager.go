package epoch

import (
	"fmt"
	"runtime"

	"github.com/sourcegraph/conc/pool"

	"github.com/pthm-cable/broth/config"
	"github.com/pthm-cable/broth/genome"
	"github.com/pthm-cable/broth/physics"
	"github.com/pthm-cable/broth/sim"
)

// Manager owns the fixed set of simulation instances and fans ticks out
// across them. Instances never share mutable state, so a tick is one
// goroutine per instance with a join at the end.
type Manager struct {
	instances []*sim.Instance
	workers   int
}

// NewManager builds Count instances from the configuration.
func NewManager(cfg *config.Config, params *physics.Params) *Manager {
	m := &Manager{
		instances: make([]*sim.Instance, cfg.Simulation.Count),
		workers:   runtime.NumCPU(),
	}
	for i := range m.instances {
		m.instances[i] = sim.NewInstance(i, cfg, params)
	}
	return m
}

// Count returns the number of managed instances.
func (m *Manager) Count() int { return len(m.instances) }

// Respawn resets every instance from the shared layout, binding genomes by
// slot. genomes must have one entry per instance.
func (m *Manager) Respawn(layout *sim.SpawnLayout, genomes []*genome.Genotype) error {
	if len(genomes) != len(m.instances) {
		return fmt.Errorf("respawn: %d genomes for %d instances", len(genomes), len(m.instances))
	}
	for i, in := range m.instances {
		if err := in.Reset(layout, genomes[i]); err != nil {
			return fmt.Errorf("respawn instance %d: %w", i, err)
		}
	}
	return nil
}

// Tick advances every instance by dt in parallel and returns once all have
// finished. No instance may start tick t+1 before every instance finishes t.
func (m *Manager) Tick(dt float32) {
	p := pool.New().WithMaxGoroutines(m.workers)
	for _, in := range m.instances {
		in := in
		p.Go(func() {
			in.Step(dt)
		})
	}
	p.Wait()
}

// Scores returns every instance's accumulated score, indexed by slot.
func (m *Manager) Scores() []float32 {
	scores := make([]float32, len(m.instances))
	for i, in := range m.instances {
		scores[i] = in.Score()
	}
	return scores
}

// FoodRemaining sums the still-active food across all instances.
func (m *Manager) FoodRemaining() int {
	n := 0
	for _, in := range m.instances {
		n += in.FoodRemaining()
	}
	return n
}

// Snapshots copies every instance's visible state for external consumers.
func (m *Manager) Snapshots() []sim.Snapshot {
	out := make([]sim.Snapshot, len(m.instances))
	for i, in := range m.instances {
		out[i] = in.Snapshot()
	}
	return out
}

// Instance returns the instance at slot i.
func (m *Manager) Instance(i int) *sim.Instance { return m.instances[i] }
