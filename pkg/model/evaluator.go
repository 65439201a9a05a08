package model

import (
	"github.com/samber/lo"
)

// Evaluator scores genomes against the shared, read-only model input.
// Implementations are pure: the same genome always yields the same assignment, objectives and constraints,
// so distinct genomes may be evaluated concurrently.
type Evaluator interface {
	// Returns the slot option selected by every gene
	Decode(genome Genome) []SlotOption

	// Returns the objective vector (minimized) and the constraint vector (0 when satisfied, negative otherwise)
	Evaluate(genome Genome) (objectives []float64, constraints []float64)

	// Checks whether every gene is within bounds and no constraint is violated
	Verify(genome Genome) bool

	Objectives() int
	Constraints() int
	Genes() int
	OptionCount(match int) int
}

type evaluatorStandard struct {
	input       ModelInput
	predicates  PredicateEvaluator
	constraints []constraint
	objectives  []objective
}

func NewEvaluator(input ModelInput) Evaluator {
	// Constraint vector layout: overlap, one per court (ascending id), one per priority rule
	constraints := []constraint{overlapConstraint}
	for _, courtId := range input.CourtIds() {
		constraints = append(constraints, continuousHoursConstraint(input.Courts[courtId]))
	}
	for _, rule := range input.Priorities {
		constraints = append(constraints, priorityConstraint(rule))
	}

	return &evaluatorStandard{
		input:       input,
		predicates:  NewPredicateEvaluator(input),
		constraints: constraints,
		objectives: []objective{
			institutionalContinuity,
			categoryContinuity,
		},
	}
}

func (evaluator *evaluatorStandard) Decode(genome Genome) []SlotOption {
	return lo.Map(genome, func(gene int, match int) SlotOption {
		return evaluator.input.SlotCatalog[match][gene]
	})
}

func (evaluator *evaluatorStandard) Evaluate(genome Genome) (objectives []float64, constraints []float64) {
	state := constraintState{
		assignment: evaluator.Decode(genome),
		evaluator:  evaluator.predicates,
	}

	objectives = lo.Map(evaluator.objectives, func(objective objective, _ int) float64 {
		return objective(state)
	})
	constraints = lo.Map(evaluator.constraints, func(constraint constraint, _ int) float64 {
		return constraint(state)
	})
	return objectives, constraints
}

func (evaluator *evaluatorStandard) Verify(genome Genome) bool {
	if len(genome) != evaluator.Genes() {
		return false
	}
	for match, gene := range genome {
		if gene < 0 || gene >= evaluator.OptionCount(match) {
			return false
		}
	}

	_, constraints := evaluator.Evaluate(genome)
	return TotalViolation(constraints) == 0
}

func (evaluator *evaluatorStandard) Objectives() int {
	return len(evaluator.objectives)
}

func (evaluator *evaluatorStandard) Constraints() int {
	return len(evaluator.constraints)
}

func (evaluator *evaluatorStandard) Genes() int {
	return len(evaluator.input.SlotCatalog)
}

func (evaluator *evaluatorStandard) OptionCount(match int) int {
	return len(evaluator.input.SlotCatalog[match])
}

// TotalViolation sums the negative entries of a constraint vector; 0 means fully feasible
func TotalViolation(constraints []float64) float64 {
	return lo.SumBy(constraints, func(value float64) float64 {
		return min(value, 0)
	})
}
