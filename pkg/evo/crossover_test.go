package evo

import (
	"math/rand"
	"slices"
	"testing"

	"github.com/limaJavier/fixture/pkg/model"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestCourtPivotCrossover(t *testing.T) {
	catalog := testCatalog()

	t.Run("Zero probability returns the parents unchanged", func(t *testing.T) {
		//** Arrange
		instrumentation := NewInstrumentation()
		crossover := NewCourtPivotCrossover(0, catalog, rand.New(rand.NewSource(1)), instrumentation)
		parentA := model.Genome{0, 1, 2, 3}
		parentB := model.Genome{5, 4, 3, 2}

		//** Act
		childA, childB := crossover.Execute(parentA, parentB)

		//** Assert
		assert.Equal(t, parentA, childA)
		assert.Equal(t, parentB, childB)
		assert.Equal(t, model.Genome{0, 1, 2, 3}, parentA)
		assert.Equal(t, model.Genome{5, 4, 3, 2}, parentB)
		assert.Equal(t, 1.0, testutil.ToFloat64(instrumentation.crossovers.WithLabelValues("skipped")))
	})

	t.Run("Exchanges the pivot court cluster", func(t *testing.T) {
		//** Arrange
		crossover := NewCourtPivotCrossover(1, catalog, rand.New(rand.NewSource(2)), nil)
		parentA := model.Genome{0, 1, 2, 0}   // Every match on C1, hence C1 is the pivot
		parentB := model.Genome{3, 1, 4, 2}   // C2, C1, C2, C1
		expectedA := model.Genome{0, 1, 2, 2} // Parent B's C1 genes
		expectedB := slices.Clone(parentA)    // Parent A's C1 genes, i.e. all of them

		//** Act
		childA, childB := crossover.Execute(parentA, parentB)

		//** Assert
		assert.Equal(t, expectedA, childA)
		assert.Equal(t, expectedB, childB)
		assert.Equal(t, model.Genome{3, 1, 4, 2}, parentB)
	})

	t.Run("Children keep length and bounds", func(t *testing.T) {
		rng := rand.New(rand.NewSource(3))
		crossover := NewCourtPivotCrossover(1, catalog, rng, nil)

		for range 200 {
			//** Arrange
			parentA := model.Genome{rng.Intn(6), rng.Intn(6), rng.Intn(6), rng.Intn(6)}
			parentB := model.Genome{rng.Intn(6), rng.Intn(6), rng.Intn(6), rng.Intn(6)}

			//** Act
			childA, childB := crossover.Execute(parentA, parentB)

			//** Assert
			assert.True(t, inBounds(catalog, childA))
			assert.True(t, inBounds(catalog, childB))
			for i := range childA {
				assert.Contains(t, []int{parentA[i], parentB[i]}, childA[i])
				assert.Contains(t, []int{parentA[i], parentB[i]}, childB[i])
			}
		}
	})

	t.Run("Parents of different length panic", func(t *testing.T) {
		crossover := NewCourtPivotCrossover(1, catalog, rand.New(rand.NewSource(4)), nil)
		assert.Panics(t, func() {
			crossover.Execute(model.Genome{0, 1, 2, 3}, model.Genome{0, 1})
		})
	})
}
