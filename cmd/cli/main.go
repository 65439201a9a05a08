package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/samber/lo"
	"github.com/spf13/cobra"

	"github.com/limaJavier/fixture/pkg/config"
	"github.com/limaJavier/fixture/pkg/evo"
	"github.com/limaJavier/fixture/pkg/logger"
	"github.com/limaJavier/fixture/pkg/model"
	"github.com/limaJavier/fixture/pkg/report"
	"github.com/limaJavier/fixture/pkg/seed"
)

var (
	cfgPath   string
	overrides config.Config
)

var rootCmd = &cobra.Command{
	Use:   "fixture",
	Short: "Schedule matches on courts with NSGA-II",
	RunE:  run,
}

func init() {
	flags := rootCmd.Flags()
	flags.StringVarP(&cfgPath, "config", "c", "", "configuration file (YAML or JSON)")
	flags.StringVar(&overrides.Input, "input", "", "JSON model input")
	flags.StringVar(&overrides.Seed, "seed", "", "CSV or XLSX fixture injected as the first individual")
	flags.StringVar(&overrides.Output, "out", "", "CSV or XLSX file receiving the best fixture")
	flags.StringVar(&overrides.Front, "front", "", "CSV or XLSX file receiving the final front")
	flags.IntVar(&overrides.Algorithm.PopulationSize, "population", 0, "population size")
	flags.IntVar(&overrides.Algorithm.Generations, "generations", 0, "number of generations")
	flags.Float64Var(&overrides.Algorithm.CrossoverProbability, "crossover", 0, "crossover probability")
	flags.Float64Var(&overrides.Algorithm.MutationProbability, "mutation", 0, "per-gene mutation probability")
	flags.Int64Var(&overrides.Algorithm.RandomSeed, "random-seed", 0, "random source seed")
	flags.IntVar(&overrides.Algorithm.Workers, "workers", 0, "concurrent evaluations per generation")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	log := logger.New("cli")

	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	applyOverrides(cmd, cfg)
	if err := cfg.Validate(); err != nil {
		return err
	}

	//** Setup
	input, err := model.InputFromJson(cfg.Input)
	if err != nil {
		return fmt.Errorf("load input: %w", err)
	}
	bound, err := model.OverlapLowerBound(input)
	if err != nil {
		return fmt.Errorf("overlap bound: %w", err)
	}
	if bound > 0 {
		log.Warnf("At least %d matches cannot get a slot of their own; no feasible fixture exists", bound)
	} else {
		log.Infof("Every match can get a slot of its own")
	}

	seedGenome := loadSeed(cfg.Seed, input, log)

	//** Evolve
	result, instrumentation, err := evo.Solve(ctx, input, seedGenome, cfg.Algorithm.Settings(), log)
	if err != nil && !errors.Is(err, context.Canceled) {
		return err
	} else if err != nil {
		log.Warnf("Run interrupted after %d generations, writing the current front", result.Generations)
	}

	summary := evo.Summarize(result.Front)
	log.Infof("Front: %d solutions, %d feasible, best violation %v, minimum objectives %v", summary.Size, summary.Feasible, summary.BestViolation, summary.Minimum)
	if snapshot, err := instrumentation.Snapshot(); err == nil {
		log.Debugw("run counters", lo.MapValues(snapshot, func(value float64, _ string) any { return value }))
	}

	//** Report
	if err := report.WriteFront(cfg.Front, result.Front); err != nil {
		return fmt.Errorf("write front: %w", err)
	}
	best := evo.Best(result.Front)
	if best == nil {
		return errors.New("the run produced no solution")
	}
	if err := report.WriteFixture(cfg.Output, input, model.NewEvaluator(input), best); err != nil {
		return fmt.Errorf("write fixture: %w", err)
	}
	log.Infof("Fixture written to \"%v\" and front to \"%v\"", cfg.Output, cfg.Front)
	return nil
}

// Seed problems are never fatal: the run starts without a seed instead
func loadSeed(path string, input model.ModelInput, log logger.Logger) model.Genome {
	if path == "" {
		return nil
	}

	genome, diagnostics, err := seed.NewLoader(input, log).LoadFile(path)
	if err != nil {
		log.Warnf("Ignoring seed \"%v\": %v", path, err)
		return nil
	}
	for _, entry := range diagnostics.RejectedEntries {
		log.Infof("Seed slot not eligible for %v", entry)
	}
	return genome
}

func applyOverrides(cmd *cobra.Command, cfg *config.Config) {
	flags := cmd.Flags()
	if flags.Changed("input") {
		cfg.Input = overrides.Input
	}
	if flags.Changed("seed") {
		cfg.Seed = overrides.Seed
	}
	if flags.Changed("out") {
		cfg.Output = overrides.Output
	}
	if flags.Changed("front") {
		cfg.Front = overrides.Front
	}
	if flags.Changed("population") {
		cfg.Algorithm.PopulationSize = overrides.Algorithm.PopulationSize
	}
	if flags.Changed("generations") {
		cfg.Algorithm.Generations = overrides.Algorithm.Generations
	}
	if flags.Changed("crossover") {
		cfg.Algorithm.CrossoverProbability = overrides.Algorithm.CrossoverProbability
	}
	if flags.Changed("mutation") {
		cfg.Algorithm.MutationProbability = overrides.Algorithm.MutationProbability
	}
	if flags.Changed("random-seed") {
		cfg.Algorithm.RandomSeed = overrides.Algorithm.RandomSeed
	}
	if flags.Changed("workers") {
		cfg.Algorithm.Workers = overrides.Algorithm.Workers
	}
}

