// Package telemetry aggregates per-epoch statistics and writes experiment
// output to disk.
package telemetry

import (
	"log/slog"
	"sort"

	"gonum.org/v1/gonum/stat"

	"github.com/pthm-cable/broth/evolve"
)

// EpochStats holds one epoch's fitness distribution and genetic parameters.
type EpochStats struct {
	Epoch int `csv:"epoch"`

	Best   float64 `csv:"best"`
	Worst  float64 `csv:"worst"`
	Mean   float64 `csv:"mean"`
	Median float64 `csv:"median"`
	Std    float64 `csv:"std"`
	Q1     float64 `csv:"q1"`
	Q3     float64 `csv:"q3"`

	Improvement   float64 `csv:"improvement"`
	MutationRate  float64 `csv:"mutation_rate"`
	EliteCount    int     `csv:"elites"`
	FoodRemaining int     `csv:"food_remaining"`
}

// ComputeEpochStats combines a generation summary with the raw scores into a
// record ready for CSV output and logging.
func ComputeEpochStats(epoch int, sum evolve.Summary, scores []float32, foodRemaining int) EpochStats {
	s := EpochStats{
		Epoch:         epoch,
		Best:          sum.Best,
		Worst:         sum.Worst,
		Mean:          sum.Mean,
		Median:        sum.Median,
		Std:           sum.Std,
		Improvement:   sum.Improvement,
		MutationRate:  sum.MutationRate,
		EliteCount:    sum.EliteCount,
		FoodRemaining: foodRemaining,
	}

	if len(scores) > 0 {
		asc := make([]float64, len(scores))
		for i, v := range scores {
			asc[i] = float64(v)
		}
		sort.Float64s(asc)
		s.Q1 = stat.Quantile(0.25, stat.Empirical, asc, nil)
		s.Q3 = stat.Quantile(0.75, stat.Empirical, asc, nil)
	}

	return s
}

// LogValue implements slog.LogValuer for structured logging.
func (s EpochStats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("epoch", s.Epoch),
		slog.Float64("best", s.Best),
		slog.Float64("worst", s.Worst),
		slog.Float64("mean", s.Mean),
		slog.Float64("median", s.Median),
		slog.Float64("std", s.Std),
		slog.Float64("q1", s.Q1),
		slog.Float64("q3", s.Q3),
		slog.Float64("improvement", s.Improvement),
		slog.Float64("mutation_rate", s.MutationRate),
		slog.Int("elites", s.EliteCount),
		slog.Int("food_remaining", s.FoodRemaining),
	)
}

// LogStats logs the epoch stats using slog.
func (s EpochStats) LogStats() {
	slog.Info("epoch",
		"epoch", s.Epoch,
		"best", s.Best,
		"worst", s.Worst,
		"mean", s.Mean,
		"median", s.Median,
		"std", s.Std,
		"improvement", s.Improvement,
		"mutation_rate", s.MutationRate,
		"elites", s.EliteCount,
		"food_remaining", s.FoodRemaining,
	)
}
