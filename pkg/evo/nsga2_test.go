package evo

import (
	"context"
	"math/rand"
	"testing"

	"github.com/limaJavier/fixture/pkg/model"
	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// C1 holds A's three matches without breaking the cap; no slot is shared
var feasibleSeed = model.Genome{0, 1, 4, 5, 3}

func newTestAlgorithm(t *testing.T, input model.ModelInput, seed model.Genome, randomSeed int64, parameters Parameters) Algorithm {
	rng := rand.New(rand.NewSource(randomSeed))
	initializer, err := NewPopulationInitializer(input.SlotCatalog, rng, seed)
	require.NoError(t, err)

	algorithm, err := NewNSGAII(
		model.NewEvaluator(input),
		Operators{
			Initializer: initializer,
			Crossover:   NewCourtPivotCrossover(0.9, input.SlotCatalog, rng, nil),
			Mutation:    NewBoundedRandomMutation(0.1, input.SlotCatalog, rng, nil),
			Comparator:  NewDominanceComparator(nil),
		},
		parameters,
		rng,
		nil,
		nil,
	)
	require.NoError(t, err)
	return algorithm
}

func TestNSGAII(t *testing.T) {
	input := testInput(t)
	evaluator := model.NewEvaluator(input)
	require.True(t, evaluator.Verify(feasibleSeed))

	t.Run("Budget is respected and the front is nondominated", func(t *testing.T) {
		//** Arrange
		algorithm := newTestAlgorithm(t, input, nil, 1, Parameters{PopulationSize: 10, MaxEvaluations: 50})

		//** Act
		result, err := algorithm.Run(context.Background())

		//** Assert
		require.NoError(t, err)
		assert.Equal(t, 50, result.Evaluations)
		assert.Equal(t, 4, result.Generations)
		assert.NotEmpty(t, result.Front)

		comparator := NewDominanceComparator(nil)
		for _, a := range result.Front {
			assert.Equal(t, 0, a.Rank())
			assert.True(t, inBounds(input.SlotCatalog, a.Genome))
			assert.Len(t, a.Objectives, evaluator.Objectives())
			assert.Len(t, a.Constraints, evaluator.Constraints())
			for _, b := range result.Front {
				assert.Equal(t, 0, comparator.Compare(a, b))
			}
		}
	})

	t.Run("Feasible seed keeps the front feasible", func(t *testing.T) {
		//** Arrange
		algorithm := newTestAlgorithm(t, input, feasibleSeed, 2, Parameters{PopulationSize: 8, MaxEvaluations: 80})

		//** Act
		result, err := algorithm.Run(context.Background())

		//** Assert
		require.NoError(t, err)
		for _, solution := range result.Front {
			assert.True(t, solution.Feasible())
			assert.True(t, evaluator.Verify(solution.Genome))
		}
	})

	t.Run("Parallel evaluation matches sequential evaluation", func(t *testing.T) {
		//** Arrange
		sequential := newTestAlgorithm(t, input, nil, 3, Parameters{PopulationSize: 12, MaxEvaluations: 120, Workers: 1})
		parallel := newTestAlgorithm(t, input, nil, 3, Parameters{PopulationSize: 12, MaxEvaluations: 120, Workers: 4})

		//** Act
		sequentialResult, err := sequential.Run(context.Background())
		require.NoError(t, err)
		parallelResult, err := parallel.Run(context.Background())
		require.NoError(t, err)

		//** Assert
		genomes := func(front []*Solution) []model.Genome {
			return lo.Map(front, func(solution *Solution, _ int) model.Genome { return solution.Genome })
		}
		assert.Equal(t, genomes(sequentialResult.Front), genomes(parallelResult.Front))
	})

	t.Run("Cancellation returns the current front", func(t *testing.T) {
		//** Arrange
		algorithm := newTestAlgorithm(t, input, nil, 4, Parameters{PopulationSize: 10, MaxEvaluations: 1000})
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		//** Act
		result, err := algorithm.Run(ctx)

		//** Assert
		assert.ErrorIs(t, err, context.Canceled)
		assert.Equal(t, 10, result.Evaluations)
		assert.Equal(t, 0, result.Generations)
		assert.NotEmpty(t, result.Front)
	})

	t.Run("Invalid parameters are rejected", func(t *testing.T) {
		rng := rand.New(rand.NewSource(5))
		initializer, err := NewPopulationInitializer(input.SlotCatalog, rng, nil)
		require.NoError(t, err)
		operators := Operators{
			Initializer: initializer,
			Crossover:   NewCourtPivotCrossover(0.9, input.SlotCatalog, rng, nil),
			Mutation:    NewBoundedRandomMutation(0.1, input.SlotCatalog, rng, nil),
			Comparator:  NewDominanceComparator(nil),
		}

		_, err = NewNSGAII(evaluator, operators, Parameters{PopulationSize: 1, MaxEvaluations: 10}, rng, nil, nil)
		assert.Error(t, err)

		_, err = NewNSGAII(evaluator, operators, Parameters{PopulationSize: 10, MaxEvaluations: 5}, rng, nil, nil)
		assert.Error(t, err)

		_, err = NewNSGAII(evaluator, Operators{}, Parameters{PopulationSize: 10, MaxEvaluations: 50}, rng, nil, nil)
		assert.Error(t, err)
	})
}

func TestCrowdingDistance(t *testing.T) {
	//** Arrange
	front := []*Solution{
		solutionWith([]float64{0, 4}, nil),
		solutionWith([]float64{1, 3}, nil),
		solutionWith([]float64{3, 1}, nil),
		solutionWith([]float64{4, 0}, nil),
	}

	//** Act
	assignCrowdingDistance(front)

	//** Assert
	assert.True(t, front[0].CrowdingDistance() > 1e300)
	assert.True(t, front[3].CrowdingDistance() > 1e300)
	assert.InDelta(t, 1.5, front[1].CrowdingDistance(), 1e-9)
	assert.InDelta(t, 1.5, front[2].CrowdingDistance(), 1e-9)
}
