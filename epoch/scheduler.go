package epoch

import (
	"context"
	"fmt"
	"math/rand"

	"github.com/pthm-cable/broth/config"
	"github.com/pthm-cable/broth/evolve"
	"github.com/pthm-cable/broth/genome"
	"github.com/pthm-cable/broth/physics"
	"github.com/pthm-cable/broth/sim"
)

// Scheduler runs the epoch cycle. It owns the single random stream, so a
// fixed seed replays the exact same sequence of layouts and generations:
// layout draws come first each epoch, genetic draws come after scoring, and
// the running phase draws nothing.
type Scheduler struct {
	cfg     *config.Config
	manager *Manager
	engine  *evolve.Engine
	rng     *rand.Rand

	genomes []*genome.Genotype
	phase   Phase
	epoch   int

	onSummary func(epoch int, sum evolve.Summary, scores []float32)
}

// Option configures a Scheduler.
type Option func(*Scheduler)

// WithInitialGenotypes seeds the first generation instead of random genomes.
// Fewer genotypes than instances leaves the remaining slots random; extras
// are ignored.
func WithInitialGenotypes(gs []*genome.Genotype) Option {
	return func(s *Scheduler) {
		for i := 0; i < len(gs) && i < len(s.genomes); i++ {
			s.genomes[i] = gs[i].Clone()
		}
	}
}

// WithSummaryFunc registers a callback invoked after each evolving phase with
// the finished epoch's number, generation summary and per-slot scores.
func WithSummaryFunc(fn func(epoch int, sum evolve.Summary, scores []float32)) Option {
	return func(s *Scheduler) {
		s.onSummary = fn
	}
}

// NewScheduler builds a scheduler with a seeded random stream and a random
// initial generation.
func NewScheduler(cfg *config.Config, seed int64, opts ...Option) (*Scheduler, error) {
	params, err := physics.FromConfig(cfg)
	if err != nil {
		return nil, err
	}
	engine, err := evolve.NewEngine(cfg)
	if err != nil {
		return nil, err
	}

	s := &Scheduler{
		cfg:     cfg,
		manager: NewManager(cfg, params),
		engine:  engine,
		rng:     rand.New(rand.NewSource(seed)),
		genomes: make([]*genome.Genotype, cfg.Simulation.Count),
		phase:   Spawning,
		epoch:   1,
	}
	for i := range s.genomes {
		s.genomes[i] = genome.NewRandom(cfg.Simulation.Types, s.rng)
	}

	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Epoch returns the current epoch number. Counting starts at 1 and increments
// when a full cycle completes.
func (s *Scheduler) Epoch() int { return s.epoch }

// Phase returns the scheduler's current phase.
func (s *Scheduler) Phase() Phase { return s.phase }

// Manager exposes the instance manager for snapshot consumers.
func (s *Scheduler) Manager() *Manager { return s.manager }

// Best returns the current generation's first-slot genotype. After at least
// one full epoch the first slots hold the elites, so slot 0 is the best
// genotype found so far.
func (s *Scheduler) Best() *genome.Genotype { return s.genomes[0].Clone() }

// RunEpoch runs one full cycle: spawn a shared layout, tick every instance
// through the epoch, score, evolve, and advance the epoch counter.
func (s *Scheduler) RunEpoch() (evolve.Summary, error) {
	// Spawning: one layout shared by all instances.
	s.phase = Spawning
	layout := sim.NewSpawnLayout(s.cfg, s.rng)
	if err := s.manager.Respawn(layout, s.genomes); err != nil {
		return evolve.Summary{}, fmt.Errorf("epoch %d: %w", s.epoch, err)
	}

	// Running: fixed tick count, all instances in lockstep.
	s.phase = Running
	dt := float32(s.cfg.Physics.TickDT)
	for t := 0; t < s.cfg.Derived.TicksPerEpoch; t++ {
		s.manager.Tick(dt)
	}

	// Scoring: collect final fitness per slot.
	s.phase = Scoring
	scores := s.manager.Scores()
	pop := make(evolve.Population, len(scores))
	for i, sc := range scores {
		pop[i] = evolve.Individual{
			Genotype: s.manager.Instance(i).Genotype(),
			Fitness:  sc,
		}
	}

	// Evolving: produce the next generation.
	s.phase = Evolving
	next, sum := s.engine.NextGeneration(pop, s.rng)
	s.genomes = next

	if s.onSummary != nil {
		s.onSummary(s.epoch, sum, scores)
	}

	s.epoch++
	s.phase = Spawning
	return sum, nil
}

// Run executes epochs until ctx is cancelled or maxEpochs complete
// (maxEpochs <= 0 runs forever). Cancellation is only observed between
// epochs; an in-flight epoch always finishes.
func (s *Scheduler) Run(ctx context.Context, maxEpochs int) error {
	for n := 0; maxEpochs <= 0 || n < maxEpochs; n++ {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
		if _, err := s.RunEpoch(); err != nil {
			return err
		}
	}
	return nil
}
