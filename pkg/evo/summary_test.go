package evo

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSummarize(t *testing.T) {
	//** Arrange
	front := []*Solution{
		solutionWith([]float64{2, 10}, []float64{0, 0}),
		solutionWith([]float64{4, 6}, []float64{0, 0}),
		solutionWith([]float64{6, 2}, []float64{-3, 0}),
	}

	//** Act
	summary := Summarize(front)

	//** Assert
	assert.Equal(t, 3, summary.Size)
	assert.Equal(t, 2, summary.Feasible)
	assert.Equal(t, []float64{2, 2}, summary.Minimum)
	assert.Equal(t, []float64{4, 6}, summary.Mean)
	assert.InDeltaSlice(t, []float64{2, 4}, summary.StdDev, 1e-9)
	assert.Equal(t, 0.0, summary.BestViolation)
}

func TestSummarizeEmptyFront(t *testing.T) {
	summary := Summarize(nil)

	assert.Equal(t, 0, summary.Size)
	assert.Nil(t, summary.Mean)
}

func TestBest(t *testing.T) {
	//** Arrange
	infeasible := solutionWith([]float64{0, 0}, []float64{-1})
	feasibleLow := solutionWith([]float64{1, 9}, []float64{0})
	feasibleHigh := solutionWith([]float64{3, 0}, []float64{0})

	//** Act
	best := Best([]*Solution{infeasible, feasibleHigh, feasibleLow})

	//** Assert
	assert.Same(t, feasibleLow, best)
	assert.Nil(t, Best(nil))
}
