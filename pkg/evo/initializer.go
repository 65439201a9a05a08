package evo

import (
	"fmt"
	"math/rand"
	"slices"

	"github.com/limaJavier/fixture/pkg/model"
	"github.com/samber/lo"
)

type Initializer interface {
	// Returns a new genome; the pending seed, if any, is returned by the first call only
	Create() model.Genome
}

// seedState is either pendingSeed or exhaustedSeed
type seedState interface {
	seedState()
}

type pendingSeed struct {
	genome model.Genome
}

type exhaustedSeed struct{}

func (pendingSeed) seedState()   {}
func (exhaustedSeed) seedState() {}

type populationInitializer struct {
	catalog [][]model.SlotOption
	rng     *rand.Rand
	state   seedState
}

// NewPopulationInitializer builds genomes greedily, avoiding slots already taken within the same genome.
// A non-nil seed is consumed by the first Create call; its model.Unset genes are completed greedily around the seeded ones.
func NewPopulationInitializer(catalog [][]model.SlotOption, rng *rand.Rand, seed model.Genome) (Initializer, error) {
	var state seedState = exhaustedSeed{}
	if seed != nil {
		if len(seed) != len(catalog) {
			return nil, fmt.Errorf("seed has %d genes for %d matches", len(seed), len(catalog))
		}
		for match, gene := range seed {
			if gene != model.Unset && (gene < 0 || gene >= len(catalog[match])) {
				return nil, fmt.Errorf("seed gene %d of match %d is out of bounds [0, %d)", gene, match, len(catalog[match]))
			}
		}
		state = pendingSeed{genome: slices.Clone(seed)}
	}

	return &populationInitializer{
		catalog: catalog,
		rng:     rng,
		state:   state,
	}, nil
}

func (initializer *populationInitializer) Create() model.Genome {
	switch state := initializer.state.(type) {
	case pendingSeed:
		initializer.state = exhaustedSeed{}
		return initializer.complete(slices.Clone(state.genome))
	default:
		return initializer.complete(lo.Times(len(initializer.catalog), func(_ int) int { return model.Unset }))
	}
}

// Assigns every unset gene, visiting matches in random order and trying their options in random order
func (initializer *populationInitializer) complete(genome model.Genome) model.Genome {
	occupied := make(map[model.SlotOption]bool)
	for match, gene := range genome {
		if gene != model.Unset {
			occupied[initializer.catalog[match][gene]] = true
		}
	}

	for _, match := range initializer.rng.Perm(len(genome)) {
		if genome[match] != model.Unset {
			continue
		}

		options := initializer.catalog[match]
		order := initializer.rng.Perm(len(options))
		index, found := lo.Find(order, func(index int) bool {
			return !occupied[options[index]]
		})
		if !found {
			index = order[0] // Every option is taken: accept the overlap
		}

		genome[match] = index
		occupied[options[index]] = true
	}
	return genome
}
