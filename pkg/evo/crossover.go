package evo

import (
	"math/rand"
	"slices"

	"github.com/limaJavier/fixture/pkg/model"
	"github.com/samber/lo"
)

type Crossover interface {
	// Returns exactly two children with the parents' length; the parents are never modified
	Execute(parentA, parentB model.Genome) (childA, childB model.Genome)
}

type courtPivotCrossover struct {
	probability     float64
	catalog         [][]model.SlotOption
	rng             *rand.Rand
	instrumentation *Instrumentation
}

// NewCourtPivotCrossover exchanges whole court clusters of genes: a pivot court is drawn among the courts
// used by the first parent and every gene assigned to it in one parent is copied into the other parent's child
func NewCourtPivotCrossover(probability float64, catalog [][]model.SlotOption, rng *rand.Rand, instrumentation *Instrumentation) Crossover {
	return &courtPivotCrossover{
		probability:     probability,
		catalog:         catalog,
		rng:             rng,
		instrumentation: instrumentation,
	}
}

func (crossover *courtPivotCrossover) Execute(parentA, parentB model.Genome) (model.Genome, model.Genome) {
	if len(parentA) != len(parentB) {
		panic("crossover parents must have the same length")
	}

	childA, childB := slices.Clone(parentA), slices.Clone(parentB)
	if crossover.rng.Float64() >= crossover.probability {
		crossover.instrumentation.observeCrossover(false)
		return childA, childB
	}

	//** Collect the distinct courts used by parent A
	courtsA := lo.Map(parentA, func(gene int, match int) string {
		return crossover.catalog[match][gene].Court
	})
	courts := lo.Uniq(courtsA)
	if len(courts) == 0 {
		crossover.instrumentation.observeCrossover(false)
		return childA, childB
	}

	//** Choose the pivot court
	pivot := courts[crossover.rng.Intn(len(courts))]

	//** Exchange the pivot court clusters
	for match := range parentA {
		courtB := crossover.catalog[match][parentB[match]].Court

		// Child A inherits parent B's booking on the pivot court
		if courtB == pivot {
			childA[match] = parentB[match]
		}
		// Child B inherits parent A's booking on the pivot court
		if courtsA[match] == pivot {
			childB[match] = parentA[match]
		}
	}

	crossover.instrumentation.observeCrossover(true)
	return childA, childB
}
