package main

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"

	"github.com/limaJavier/fixture/pkg/evo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetConfigurations(t *testing.T) {
	//** Arrange
	grid := Grid{
		Populations: []int{100, 150, 200},
		Crossovers:  []float64{1.0, 0.6, 0.9},
		Mutations:   []float64{0.01, 0.05, 0.001},
		Generations: []int{1000, 1500},
	}

	//** Act
	configurations := getConfigurations(grid)

	//** Assert
	assert.Len(t, configurations, 54)
	assert.Equal(t, Configuration{Id: 0, PopulationSize: 100, Generations: 1000, CrossoverProbability: 1.0, MutationProbability: 0.01}, configurations[0])
	assert.Equal(t, Configuration{Id: 1, PopulationSize: 100, Generations: 1500, CrossoverProbability: 1.0, MutationProbability: 0.01}, configurations[1])
	assert.Equal(t, Configuration{Id: 53, PopulationSize: 200, Generations: 1500, CrossoverProbability: 0.9, MutationProbability: 0.001}, configurations[53])
	for i, configuration := range configurations {
		assert.Equal(t, i, configuration.Id)
	}
}

func TestRunSeed(t *testing.T) {
	assert.Equal(t, int64(1), runSeed(1, 0, 0))
	assert.Equal(t, int64(3002), runSeed(1, 3, 1))
	assert.Equal(t, int64(53009), runSeed(0, 53, 9))
}

func TestToCsv(t *testing.T) {
	//** Arrange
	path := filepath.Join(t.TempDir(), "benchmark.csv")
	results := []BenchmarkResult{{
		RunId:         "run",
		Configuration: Configuration{Id: 2, PopulationSize: 100, Generations: 1000, CrossoverProbability: 0.6, MutationProbability: 0.05},
		RandomSeed:    2001,
		Duration:      1234,
		Front: []*evo.Solution{
			{Objectives: []float64{3, 7}, Constraints: []float64{0}},
		},
	}}

	//** Act
	err := toCsv(path, results)

	//** Assert
	require.NoError(t, err)
	file, err := os.Open(path)
	require.NoError(t, err)
	defer file.Close()
	records, err := csv.NewReader(file).ReadAll()
	require.NoError(t, err)
	assert.Len(t, records, 3)
	assert.Equal(t, []string{"run", "2", "100", "1000", "0.6", "0.05", "0", "1234", "2001", "0", "true", "institutional_continuity", "3"}, records[1])
	assert.Equal(t, "category_continuity", records[2][11])
	assert.Equal(t, "7", records[2][12])
}
