package model

import (
	"github.com/onsi/gomega/matchers/support/goraph/bipartitegraph"
	"github.com/samber/lo"
)

// OverlapLowerBound returns how many matches cannot get a slot of their own in any genome.
// It is the number of matches left out of a maximum matching between matches and their eligible slots,
// hence a lower bound on the overlap count of every assignment.
func OverlapLowerBound(input ModelInput) (int, error) {
	if len(input.SlotCatalog) == 0 {
		return 0, nil
	}

	// Eligibility sets per match
	eligible := lo.Map(input.SlotCatalog, func(options []SlotOption, _ int) map[SlotOption]bool {
		return lo.SliceToMap(options, func(option SlotOption) (SlotOption, bool) { return option, true })
	})

	// Build neighbors predicate based on eligibility
	neighbors := func(matchAny any, slotAny any) (bool, error) {
		match := matchAny.(int)
		slot := slotAny.(SlotOption)

		return eligible[match][slot], nil
	}

	// Transform matches and distinct slots to slices of any
	slots := lo.Uniq(lo.Flatten(input.SlotCatalog))
	matchesAny := lo.Times(len(input.SlotCatalog), func(match int) any { return match })
	slotsAny := lo.Map(slots, func(slot SlotOption, _ int) any { return slot })

	graph, err := bipartitegraph.NewBipartiteGraph(matchesAny, slotsAny, neighbors)
	if err != nil {
		return 0, err
	}

	matching := graph.LargestMatching()
	return len(input.SlotCatalog) - len(matching), nil
}
