package main

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/samber/lo"
	"github.com/spf13/cobra"

	"github.com/limaJavier/fixture/pkg/config"
	"github.com/limaJavier/fixture/pkg/evo"
	"github.com/limaJavier/fixture/pkg/logger"
	"github.com/limaJavier/fixture/pkg/model"
	"github.com/limaJavier/fixture/pkg/seed"
)

var objectiveNames = []string{"institutional_continuity", "category_continuity"}

type Grid struct {
	Populations []int
	Crossovers  []float64
	Mutations   []float64
	Generations []int
}

type Configuration struct {
	Id                   int
	PopulationSize       int
	Generations          int
	CrossoverProbability float64
	MutationProbability  float64
}

type BenchmarkResult struct {
	RunId         string
	Configuration Configuration
	Repetition    int
	RandomSeed    int64
	Duration      int64
	Front         []*evo.Solution
}

var (
	cfgPath     string
	outPath     string
	repetitions int
	baseSeed    int64
	workers     int
	grid        Grid
)

var rootCmd = &cobra.Command{
	Use:   "benchmark",
	Short: "Calibrate NSGA-II parameters over a grid",
	RunE:  run,
}

func init() {
	flags := rootCmd.Flags()
	flags.StringVarP(&cfgPath, "config", "c", "", "configuration file providing the input and seed paths")
	flags.StringVar(&outPath, "out", "benchmark_results.csv", "CSV file receiving one row per front solution and objective")
	flags.IntVar(&repetitions, "repetitions", 1, "runs per configuration")
	flags.Int64Var(&baseSeed, "base-seed", 1, "random seed of the first run")
	flags.IntVar(&workers, "workers", 1, "concurrent evaluations per generation")
	flags.IntSliceVar(&grid.Populations, "populations", []int{100, 150, 200}, "population sizes")
	flags.Float64SliceVar(&grid.Crossovers, "crossovers", []float64{1.0, 0.6, 0.9}, "crossover probabilities")
	flags.Float64SliceVar(&grid.Mutations, "mutations", []float64{0.01, 0.05, 0.001}, "mutation probabilities")
	flags.IntSliceVar(&grid.Generations, "generations", []int{1000, 1500}, "generation counts")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	log := logger.New("benchmark")

	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if cfg.Input == "" {
		return errors.New("an input file must be specified")
	}

	input, err := model.InputFromJson(cfg.Input)
	if err != nil {
		return fmt.Errorf("cannot parse input file: %w", err)
	}

	// Every run starts from the same seed fixture
	var seedGenome model.Genome
	if cfg.Seed != "" {
		seedGenome, _, err = seed.NewLoader(input, log).LoadFile(cfg.Seed)
		if err != nil {
			log.Warnf("Benchmarking without seed: %v", err)
			seedGenome = nil
		}
	}

	configurations := getConfigurations(grid)
	results := make([]BenchmarkResult, 0, len(configurations)*repetitions)
	for _, configuration := range configurations {
		for repetition := range repetitions {
			randomSeed := runSeed(baseSeed, configuration.Id, repetition)
			log.Infof("Benchmarking configuration %d (population %d, generations %d, crossover %v, mutation %v), repetition %d, seed %d",
				configuration.Id, configuration.PopulationSize, configuration.Generations,
				configuration.CrossoverProbability, configuration.MutationProbability, repetition, randomSeed)

			result, instrumentation, err := evo.Solve(ctx, input, seedGenome, evo.Settings{
				PopulationSize:       configuration.PopulationSize,
				Generations:          configuration.Generations,
				CrossoverProbability: configuration.CrossoverProbability,
				MutationProbability:  configuration.MutationProbability,
				RandomSeed:           randomSeed,
				Workers:              workers,
			}, log)
			if err != nil {
				return fmt.Errorf("configuration %d, repetition %d: %w", configuration.Id, repetition, err)
			}

			results = append(results, BenchmarkResult{
				RunId:         instrumentation.RunId,
				Configuration: configuration,
				Repetition:    repetition,
				RandomSeed:    randomSeed,
				Duration:      result.Duration.Milliseconds(),
				Front:         result.Front,
			})
		}
	}

	return toCsv(outPath, results)
}

// Cartesian product of the grid; ids follow the nesting order population, crossover, mutation, generations
func getConfigurations(grid Grid) []Configuration {
	configurations := make([]Configuration, 0, len(grid.Populations)*len(grid.Crossovers)*len(grid.Mutations)*len(grid.Generations))
	for _, population := range grid.Populations {
		for _, crossover := range grid.Crossovers {
			for _, mutation := range grid.Mutations {
				for _, generations := range grid.Generations {
					configurations = append(configurations, Configuration{
						Id:                   len(configurations),
						PopulationSize:       population,
						Generations:          generations,
						CrossoverProbability: crossover,
						MutationProbability:  mutation,
					})
				}
			}
		}
	}
	return configurations
}

func runSeed(base int64, configuration, repetition int) int64 {
	return base + int64(configuration)*1000 + int64(repetition)
}

func toCsv(path string, results []BenchmarkResult) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("cannot create CSV file: %w", err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)

	header := []string{"RunId", "Configuration", "Population", "Generations", "Crossover", "Mutation", "Repetition", "Duration(ms)", "RandomSeed", "Solution", "Feasible", "Objective", "Value"}
	if err := writer.Write(header); err != nil {
		return fmt.Errorf("cannot write CSV header: %w", err)
	}

	for _, result := range results {
		for solutionId, solution := range result.Front {
			for objective, value := range solution.Objectives {
				name, _ := lo.Nth(objectiveNames, objective)
				record := []string{
					result.RunId,
					fmt.Sprintf("%d", result.Configuration.Id),
					fmt.Sprintf("%d", result.Configuration.PopulationSize),
					fmt.Sprintf("%d", result.Configuration.Generations),
					strconv.FormatFloat(result.Configuration.CrossoverProbability, 'f', -1, 64),
					strconv.FormatFloat(result.Configuration.MutationProbability, 'f', -1, 64),
					fmt.Sprintf("%d", result.Repetition),
					fmt.Sprintf("%d", result.Duration),
					fmt.Sprintf("%d", result.RandomSeed),
					fmt.Sprintf("%d", solutionId),
					fmt.Sprintf("%v", solution.Feasible()),
					name,
					strconv.FormatFloat(value, 'f', -1, 64),
				}
				if err := writer.Write(record); err != nil {
					return fmt.Errorf("cannot write CSV record: %w", err)
				}
			}
		}
	}

	writer.Flush()
	return writer.Error()
}
