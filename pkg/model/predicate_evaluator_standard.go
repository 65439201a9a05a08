package model

import (
	"github.com/samber/lo"
)

type predicateEvaluatorStandard struct {
	matches       []Match
	institutional [][]bool // institutional[i][j] = true if and only if match_i and match_j share an institution
	compatible    [][]bool // compatible[i][j] = true if and only if match_i and match_j have continuity-compatible categories
}

func NewPredicateEvaluator(input ModelInput) PredicateEvaluator {
	// Block membership is not transitive across blocks, so each block is kept as its own set
	blocks := lo.Map(input.CategoryBlocks, func(block CategoryBlock, _ int) map[string]bool {
		return lo.SliceToMap(block.Categories, func(category string) (string, bool) { return category, true })
	})

	matches := input.Matches
	institutional := make([][]bool, len(matches))
	compatible := make([][]bool, len(matches))
	for i := range matches {
		institutional[i] = make([]bool, len(matches))
		compatible[i] = make([]bool, len(matches))
	}

	for i := range matches {
		for j := i; j < len(matches); j++ {
			match1, match2 := matches[i], matches[j]

			shares := match1.Home == match2.Home ||
				match1.Home == match2.Away ||
				match1.Away == match2.Home ||
				match1.Away == match2.Away
			institutional[i][j], institutional[j][i] = shares, shares

			sameBlock := match1.Category == match2.Category || lo.SomeBy(blocks, func(block map[string]bool) bool {
				return block[match1.Category] && block[match2.Category]
			})
			compatible[i][j], compatible[j][i] = sameBlock, sameBlock
		}
	}

	return &predicateEvaluatorStandard{
		matches:       matches,
		institutional: institutional,
		compatible:    compatible,
	}
}

func (evaluator *predicateEvaluatorStandard) SharesInstitution(match1, match2 int) bool {
	return evaluator.institutional[match1][match2]
}

func (evaluator *predicateEvaluatorStandard) ContinuityCompatible(match1, match2 int) bool {
	return evaluator.compatible[match1][match2]
}

func (evaluator *predicateEvaluatorStandard) Involves(match int, institution string) bool {
	return evaluator.matches[match].Home == institution || evaluator.matches[match].Away == institution
}
