package evo

import (
	"context"
	"math/rand"

	"github.com/limaJavier/fixture/pkg/logger"
	"github.com/limaJavier/fixture/pkg/model"
)

type Settings struct {
	PopulationSize       int
	Generations          int
	CrossoverProbability float64
	MutationProbability  float64
	RandomSeed           int64
	Workers              int
}

// Solve wires the operators over a validated input and runs NSGA-II with a budget of PopulationSize × Generations evaluations.
// seed may be nil; otherwise it becomes the first individual of the initial population.
func Solve(ctx context.Context, input model.ModelInput, seed model.Genome, settings Settings, log logger.Logger) (Result, *Instrumentation, error) {
	log = logger.OrNop(log)
	if err := input.Validate(); err != nil {
		return Result{}, nil, err
	}

	rng := rand.New(rand.NewSource(settings.RandomSeed))
	instrumentation := NewInstrumentation()

	initializer, err := NewPopulationInitializer(input.SlotCatalog, rng, seed)
	if err != nil {
		return Result{}, nil, err
	}

	algorithm, err := NewNSGAII(
		model.NewEvaluator(input),
		Operators{
			Initializer: initializer,
			Crossover:   NewCourtPivotCrossover(settings.CrossoverProbability, input.SlotCatalog, rng, instrumentation),
			Mutation:    NewBoundedRandomMutation(settings.MutationProbability, input.SlotCatalog, rng, instrumentation),
			Comparator:  NewDominanceComparator(instrumentation),
		},
		Parameters{
			PopulationSize: settings.PopulationSize,
			MaxEvaluations: settings.PopulationSize * settings.Generations,
			Workers:        settings.Workers,
		},
		rng,
		log,
		instrumentation,
	)
	if err != nil {
		return Result{}, nil, err
	}

	log.Infof("Run %v started: %d matches, population %d, %d generations", instrumentation.RunId, len(input.Matches), settings.PopulationSize, settings.Generations)
	result, err := algorithm.Run(ctx)
	log.Infof("Run %v finished after %d evaluations in %v", instrumentation.RunId, result.Evaluations, result.Duration)
	return result, instrumentation, err
}
