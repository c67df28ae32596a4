// Package evolve turns one epoch's scored genotypes into the next
// generation: elitism, tournament selection, crossover and mutation.
package evolve

import (
	"math/rand"
	"sort"

	"gonum.org/v1/gonum/stat"

	"github.com/pthm-cable/broth/config"
	"github.com/pthm-cable/broth/genome"
)

// Individual pairs a genotype with the fitness it earned over an epoch.
type Individual struct {
	Genotype *genome.Genotype
	Fitness  float32
}

// Population is one generation's individuals. Order is meaningless on input;
// NextGeneration ranks it internally.
type Population []Individual

// Adaptive mutation thresholds. Diversity is the fitness standard deviation
// of the ranked population.
const (
	lowDiversity  = 5.0
	highDiversity = 20.0
	maxMutation   = 0.5
)

// Engine produces successive generations from scored populations. It owns no
// randomness; the caller's stream is threaded through so a seeded run is
// reproducible.
type Engine struct {
	eliteCount     int
	mutationRate   float64
	crossoverRate  float64
	mutationStep   float32
	tournamentSize int
	adaptive       bool

	generation int
	lastBest   float64
}

// NewEngine builds an engine from validated configuration.
func NewEngine(cfg *config.Config) (*Engine, error) {
	if cfg.Derived.EliteCount > cfg.Simulation.Count {
		return nil, &config.ConfigurationError{
			Field:  "genetics.elite_ratio",
			Reason: "elite count exceeds population size",
		}
	}
	return &Engine{
		eliteCount:     cfg.Derived.EliteCount,
		mutationRate:   cfg.Genetics.MutationRate,
		crossoverRate:  cfg.Genetics.CrossoverRate,
		mutationStep:   float32(cfg.Genetics.MutationStep),
		tournamentSize: cfg.Genetics.TournamentSize,
		adaptive:       cfg.Genetics.Adaptive,
	}, nil
}

// EliteCount returns how many top genotypes survive unchanged per generation.
func (e *Engine) EliteCount() int { return e.eliteCount }

// Summary describes one generation turnover for logging and telemetry.
type Summary struct {
	Generation   int
	Best         float64
	Worst        float64
	Mean         float64
	Median       float64
	Std          float64
	Improvement  float64 // best minus the previous generation's best
	MutationRate float64 // effective rate after adaptive scaling
	EliteCount   int
}

// NextGeneration ranks the population by fitness and produces its successor:
// the top eliteCount genotypes are cloned unchanged, and the remaining slots
// are filled by tournament-selected parents recombined and mutated. The input
// population is re-ordered in place (rank descending); the returned slice is
// freshly allocated and the same length as the input.
func (e *Engine) NextGeneration(pop Population, rng *rand.Rand) ([]*genome.Genotype, Summary) {
	sort.SliceStable(pop, func(i, j int) bool {
		return pop[i].Fitness > pop[j].Fitness
	})

	sum := e.summarize(pop)
	rate := sum.MutationRate

	next := make([]*genome.Genotype, 0, len(pop))
	for i := 0; i < e.eliteCount && i < len(pop); i++ {
		next = append(next, pop[i].Genotype.Clone())
	}

	for len(next) < len(pop) {
		a := e.selectParent(pop, rng)
		b := e.selectParent(pop, rng)

		var child *genome.Genotype
		if rng.Float64() < e.crossoverRate {
			child = a.Crossover(b, rng)
		} else {
			child = a.Clone()
		}
		child.Mutate(float32(rate), e.mutationStep, rng)
		next = append(next, child)
	}

	e.generation++
	e.lastBest = sum.Best

	return next, sum
}

// selectParent runs one tournament: tournamentSize entrants drawn by
// rank-weighted roulette, best fitness wins.
func (e *Engine) selectParent(pop Population, rng *rand.Rand) *genome.Genotype {
	best := e.weightedPick(pop, rng)
	for k := 1; k < e.tournamentSize; k++ {
		c := e.weightedPick(pop, rng)
		if pop[c].Fitness > pop[best].Fitness {
			best = c
		}
	}
	return pop[best].Genotype
}

// weightedPick draws one index from the ranked population with weight
// 1/(1+0.1*rank), favoring higher ranks without starving the tail.
func (e *Engine) weightedPick(pop Population, rng *rand.Rand) int {
	total := 0.0
	for rank := range pop {
		total += 1.0 / (1.0 + 0.1*float64(rank))
	}
	r := rng.Float64() * total
	for rank := range pop {
		r -= 1.0 / (1.0 + 0.1*float64(rank))
		if r <= 0 {
			return rank
		}
	}
	return len(pop) - 1
}

// summarize computes the generation statistics and the effective mutation
// rate. pop must already be sorted rank descending.
func (e *Engine) summarize(pop Population) Summary {
	fit := make([]float64, len(pop))
	for i, ind := range pop {
		fit[i] = float64(ind.Fitness)
	}

	sum := Summary{
		Generation: e.generation + 1,
		Best:       fit[0],
		Worst:      fit[len(fit)-1],
		Mean:       stat.Mean(fit, nil),
		Std:        stat.StdDev(fit, nil),
		EliteCount: e.eliteCount,
	}

	// stat.Quantile wants ascending order.
	asc := make([]float64, len(fit))
	copy(asc, fit)
	sort.Float64s(asc)
	sum.Median = stat.Quantile(0.5, stat.Empirical, asc, nil)

	sum.Improvement = sum.Best - e.lastBest
	sum.MutationRate = e.effectiveRate(sum.Std, sum.Improvement)
	return sum
}

// effectiveRate scales the base mutation rate by population diversity and
// progress: widen the search when the population converges or stalls, narrow
// it when diversity is already high. Early generations stay hot.
func (e *Engine) effectiveRate(std, improvement float64) float64 {
	rate := e.mutationRate
	if !e.adaptive {
		return rate
	}

	if std < lowDiversity {
		rate *= 2.0
	} else if std > highDiversity {
		rate *= 0.5
	}
	if improvement <= 0 {
		rate *= 1.5
	}
	if e.generation < 10 {
		rate *= 1.5
	}
	if rate > maxMutation {
		rate = maxMutation
	}
	return rate
}
