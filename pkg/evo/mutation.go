package evo

import (
	"math/rand"

	"github.com/limaJavier/fixture/pkg/model"
)

type Mutation interface {
	// Mutates the genome in place and returns it
	Execute(genome model.Genome) model.Genome
}

type boundedRandomMutation struct {
	probability     float64
	catalog         [][]model.SlotOption
	rng             *rand.Rand
	instrumentation *Instrumentation
}

// NewBoundedRandomMutation redraws each gene, independently with the given probability,
// uniformly among the match's slot options. Every match must have at least one option.
func NewBoundedRandomMutation(probability float64, catalog [][]model.SlotOption, rng *rand.Rand, instrumentation *Instrumentation) Mutation {
	return &boundedRandomMutation{
		probability:     probability,
		catalog:         catalog,
		rng:             rng,
		instrumentation: instrumentation,
	}
}

func (mutation *boundedRandomMutation) Execute(genome model.Genome) model.Genome {
	mutated := 0
	for match := range genome {
		if mutation.rng.Float64() < mutation.probability {
			genome[match] = mutation.rng.Intn(len(mutation.catalog[match]))
			mutated++
		}
	}
	mutation.instrumentation.observeMutation(mutated)
	return genome
}
