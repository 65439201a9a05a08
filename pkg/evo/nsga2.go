package evo

import (
	"context"
	"errors"
	"fmt"
	"math"
	"math/rand"
	"slices"
	"time"

	"github.com/limaJavier/fixture/pkg/logger"
	"github.com/limaJavier/fixture/pkg/model"
	"github.com/sourcegraph/conc/pool"
)

type Parameters struct {
	PopulationSize int
	MaxEvaluations int
	Workers        int // Evaluations run concurrently when greater than one
}

// Operators are the capabilities composed by the driver
type Operators struct {
	Initializer Initializer
	Crossover   Crossover
	Mutation    Mutation
	Comparator  Comparator
}

type Result struct {
	Front       []*Solution // Rank 0 of the last population; it may hold infeasible solutions
	Evaluations int
	Generations int
	Duration    time.Duration
}

type Algorithm interface {
	// Evolves a population until the evaluation budget is exhausted.
	// On cancellation the current front is returned together with the context error.
	Run(ctx context.Context) (Result, error)
}

type nsgaII struct {
	evaluator       model.Evaluator
	operators       Operators
	parameters      Parameters
	rng             *rand.Rand
	logger          logger.Logger
	instrumentation *Instrumentation
}

func NewNSGAII(
	evaluator model.Evaluator,
	operators Operators,
	parameters Parameters,
	rng *rand.Rand,
	log logger.Logger,
	instrumentation *Instrumentation,
) (Algorithm, error) {
	if operators.Initializer == nil || operators.Crossover == nil || operators.Mutation == nil || operators.Comparator == nil {
		return nil, errors.New("every operator must be provided")
	}
	if parameters.PopulationSize < 2 {
		return nil, fmt.Errorf("population size must be at least 2, got %d", parameters.PopulationSize)
	}
	if parameters.MaxEvaluations < parameters.PopulationSize {
		return nil, fmt.Errorf("evaluation budget %d is smaller than the population size %d", parameters.MaxEvaluations, parameters.PopulationSize)
	}

	return &nsgaII{
		evaluator:       evaluator,
		operators:       operators,
		parameters:      parameters,
		rng:             rng,
		logger:          logger.OrNop(log),
		instrumentation: instrumentation,
	}, nil
}

func (algorithm *nsgaII) Run(ctx context.Context) (Result, error) {
	start := time.Now()
	size := algorithm.parameters.PopulationSize

	//** Initial population
	population := make([]*Solution, size)
	for i := range population {
		population[i] = NewSolution(algorithm.operators.Initializer.Create())
	}
	algorithm.evaluate(population)
	evaluations := size
	fronts := algorithm.sort(population)
	for _, front := range fronts {
		assignCrowdingDistance(front)
	}

	generations := 0
	for evaluations < algorithm.parameters.MaxEvaluations {
		if err := ctx.Err(); err != nil {
			return algorithm.result(population, evaluations, generations, start), err
		}

		offspring := algorithm.reproduce(population, min(size, algorithm.parameters.MaxEvaluations-evaluations))
		algorithm.evaluate(offspring)
		evaluations += len(offspring)

		population = algorithm.replace(append(population, offspring...), size)
		generations++

		front := firstFront(population)
		algorithm.instrumentation.observeGeneration(generations, front)
		algorithm.logger.Debugw("generation completed", map[string]any{
			"generation":  generations,
			"evaluations": evaluations,
			"front":       len(front),
			"feasible":    countFeasible(front),
		})
	}

	return algorithm.result(population, evaluations, generations, start), nil
}

func (algorithm *nsgaII) result(population []*Solution, evaluations, generations int, start time.Time) Result {
	return Result{
		Front:       firstFront(population),
		Evaluations: evaluations,
		Generations: generations,
		Duration:    time.Since(start),
	}
}

// Scores every solution; solutions are disjoint so they can be scored concurrently
func (algorithm *nsgaII) evaluate(solutions []*Solution) {
	evaluate := func(solution *Solution) {
		solution.Objectives, solution.Constraints = algorithm.evaluator.Evaluate(solution.Genome)
		algorithm.instrumentation.observeEvaluation()
	}

	if algorithm.parameters.Workers <= 1 {
		for _, solution := range solutions {
			evaluate(solution)
		}
		return
	}

	p := pool.New().WithMaxGoroutines(algorithm.parameters.Workers)
	for _, solution := range solutions {
		p.Go(func() { evaluate(solution) })
	}
	p.Wait()
}

func (algorithm *nsgaII) reproduce(population []*Solution, count int) []*Solution {
	offspring := make([]*Solution, 0, count+1)
	for len(offspring) < count {
		parentA := algorithm.tournament(population)
		parentB := algorithm.tournament(population)

		childA, childB := algorithm.operators.Crossover.Execute(parentA.Genome, parentB.Genome)
		offspring = append(offspring,
			NewSolution(algorithm.operators.Mutation.Execute(childA)),
			NewSolution(algorithm.operators.Mutation.Execute(childB)),
		)
	}
	return offspring[:count]
}

// Binary tournament: lower rank wins, then larger crowding distance, then a coin flip
func (algorithm *nsgaII) tournament(population []*Solution) *Solution {
	a := population[algorithm.rng.Intn(len(population))]
	b := population[algorithm.rng.Intn(len(population))]

	switch {
	case a.rank < b.rank:
		return a
	case b.rank < a.rank:
		return b
	case a.crowding > b.crowding:
		return a
	case b.crowding > a.crowding:
		return b
	case algorithm.rng.Intn(2) == 0:
		return a
	default:
		return b
	}
}

// Keeps the best size solutions of the merged population, filling by front and breaking the last front by crowding distance
func (algorithm *nsgaII) replace(merged []*Solution, size int) []*Solution {
	next := make([]*Solution, 0, size)
	for _, front := range algorithm.sort(merged) {
		assignCrowdingDistance(front)
		if len(next)+len(front) <= size {
			next = append(next, front...)
			continue
		}

		slices.SortStableFunc(front, func(a, b *Solution) int {
			return compareFloat(b.crowding, a.crowding)
		})
		next = append(next, front[:size-len(next)]...)
		break
	}
	return next
}

// Fast nondominated sort under the comparator; sets the rank of every solution
func (algorithm *nsgaII) sort(solutions []*Solution) [][]*Solution {
	dominated := make([][]int, len(solutions))
	dominationCount := make([]int, len(solutions))

	current := make([]int, 0)
	for i := range solutions {
		for j := i + 1; j < len(solutions); j++ {
			switch algorithm.operators.Comparator.Compare(solutions[i], solutions[j]) {
			case -1:
				dominated[i] = append(dominated[i], j)
				dominationCount[j]++
			case 1:
				dominated[j] = append(dominated[j], i)
				dominationCount[i]++
			}
		}
	}
	for i := range solutions {
		if dominationCount[i] == 0 {
			current = append(current, i)
		}
	}

	fronts := make([][]*Solution, 0)
	for rank := 0; len(current) > 0; rank++ {
		front := make([]*Solution, 0, len(current))
		next := make([]int, 0)
		for _, i := range current {
			solutions[i].rank = rank
			front = append(front, solutions[i])
			for _, j := range dominated[i] {
				dominationCount[j]--
				if dominationCount[j] == 0 {
					next = append(next, j)
				}
			}
		}
		fronts = append(fronts, front)
		current = next
	}
	return fronts
}

func assignCrowdingDistance(front []*Solution) {
	for _, solution := range front {
		solution.crowding = 0
	}
	if len(front) == 0 {
		return
	}

	sorted := slices.Clone(front)
	for objective := range front[0].Objectives {
		slices.SortStableFunc(sorted, func(a, b *Solution) int {
			return compareFloat(a.Objectives[objective], b.Objectives[objective])
		})

		first, last := sorted[0], sorted[len(sorted)-1]
		first.crowding = math.Inf(1)
		last.crowding = math.Inf(1)

		span := last.Objectives[objective] - first.Objectives[objective]
		if span == 0 {
			continue
		}
		for i := 1; i < len(sorted)-1; i++ {
			sorted[i].crowding += (sorted[i+1].Objectives[objective] - sorted[i-1].Objectives[objective]) / span
		}
	}
}

func firstFront(population []*Solution) []*Solution {
	front := make([]*Solution, 0)
	for _, solution := range population {
		if solution.rank == 0 {
			front = append(front, solution)
		}
	}
	return front
}

func countFeasible(solutions []*Solution) int {
	count := 0
	for _, solution := range solutions {
		if solution.Feasible() {
			count++
		}
	}
	return count
}

func compareFloat(a, b float64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}
