// Package main runs headless particle evolution: N simulations per epoch, a
// shared spawn layout, genetic turnover between epochs, CSV telemetry.
package main

import (
	"context"
	"errors"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/pthm-cable/broth/config"
	"github.com/pthm-cable/broth/epoch"
	"github.com/pthm-cable/broth/evolve"
	"github.com/pthm-cable/broth/genome"
	"github.com/pthm-cable/broth/telemetry"
)

func main() {
	configPath := flag.String("config", "", "Config YAML file (empty = use defaults)")
	epochs := flag.Int("epochs", 0, "Number of epochs to run (0 = run until interrupted)")
	seed := flag.Int64("seed", 42, "Random seed")
	outputDir := flag.String("output", "", "Output directory for epochs.csv, config.yaml and best.json")
	name := flag.String("name", "run", "Run name used when saving the best population")
	preset := flag.Bool("preset", false, "Seed slot 0 with the hand-tuned preset genotype")
	loadPath := flag.String("load", "", "Saved population JSON to seed slot 0 with")
	flag.Parse()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	if err := config.Init(*configPath); err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	cfg := config.Cfg()

	om, err := telemetry.NewOutputManager(*outputDir)
	if err != nil {
		slog.Error("failed to create output directory", "error", err)
		os.Exit(1)
	}
	defer om.Close()

	if err := om.WriteConfig(cfg); err != nil {
		slog.Error("failed to write config", "error", err)
		os.Exit(1)
	}

	// The callback only fires while Run is in progress, after sched exists.
	var sched *epoch.Scheduler
	var bestScore float64
	opts := []epoch.Option{
		epoch.WithSummaryFunc(func(n int, sum evolve.Summary, scores []float32) {
			if sum.Best > bestScore {
				bestScore = sum.Best
			}
			if !cfg.Telemetry.LogEpochs {
				return
			}
			stats := telemetry.ComputeEpochStats(n, sum, scores, sched.Manager().FoodRemaining())
			stats.LogStats()
			if err := om.WriteEpoch(stats); err != nil {
				slog.Error("failed to write epoch stats", "error", err)
			}
		}),
	}

	if *loadPath != "" {
		sp, err := genome.LoadPopulation(*loadPath)
		if err != nil {
			slog.Error("failed to load population", "path", *loadPath, "error", err)
			os.Exit(1)
		}
		if err := sp.Genotype.Validate(cfg.Simulation.Types); err != nil {
			slog.Error("loaded population does not match configured types", "error", err)
			os.Exit(1)
		}
		slog.Info("seeding from saved population", "name", sp.Name, "score", sp.Score, "epoch", sp.Epoch)
		opts = append(opts, epoch.WithInitialGenotypes([]*genome.Genotype{sp.Genotype}))
	} else if *preset {
		opts = append(opts, epoch.WithInitialGenotypes([]*genome.Genotype{genome.Preset(cfg.Simulation.Types)}))
	}

	sched, err = epoch.NewScheduler(cfg, *seed, opts...)
	if err != nil {
		slog.Error("failed to create scheduler", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	slog.Info("starting evolution",
		"simulations", cfg.Simulation.Count,
		"particles", cfg.Derived.ActualParticles,
		"types", cfg.Simulation.Types,
		"epoch_duration", cfg.Simulation.EpochDuration,
		"ticks_per_epoch", cfg.Derived.TicksPerEpoch,
		"seed", *seed,
	)

	runErr := sched.Run(ctx, *epochs)
	if runErr != nil && !errors.Is(runErr, context.Canceled) {
		slog.Error("run failed", "error", runErr)
		os.Exit(1)
	}

	// Slot 0 holds the top elite of the last turnover.
	completed := sched.Epoch() - 1
	if completed > 0 && om != nil {
		best := genome.NewSavedPopulation(*name, sched.Best(), float32(bestScore), completed, cfg)
		if err := om.WriteBest(best); err != nil {
			slog.Error("failed to save best population", "error", err)
		}
	}

	slog.Info("done", "epochs_completed", completed, "interrupted", runErr != nil)
}
