package evo

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSolve(t *testing.T) {
	//** Arrange
	input := testInput(t)
	settings := Settings{
		PopulationSize:       10,
		Generations:          6,
		CrossoverProbability: 0.9,
		MutationProbability:  0.05,
		RandomSeed:           42,
		Workers:              2,
	}

	//** Act
	result, instrumentation, err := Solve(context.Background(), input, feasibleSeed, settings, nil)

	//** Assert
	require.NoError(t, err)
	assert.Equal(t, 60, result.Evaluations)
	assert.NotEmpty(t, result.Front)
	for _, solution := range result.Front {
		assert.True(t, solution.Feasible())
	}

	snapshot, err := instrumentation.Snapshot()
	require.NoError(t, err)
	assert.Equal(t, 60.0, snapshot["fixture_evaluations_total"])
	assert.Equal(t, 5.0, snapshot["fixture_generation"])
}

func TestSolveRejectsInvalidSeed(t *testing.T) {
	input := testInput(t)

	_, _, err := Solve(context.Background(), input, feasibleSeed[:2], Settings{PopulationSize: 10, Generations: 2}, nil)

	assert.Error(t, err)
}
