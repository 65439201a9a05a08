package evo

// Comparator orders two solutions: -1 when a dominates b, 1 when b dominates a, 0 when incomparable
type Comparator interface {
	Compare(a, b *Solution) int
}

type dominanceComparator struct {
	instrumentation *Instrumentation
}

// NewDominanceComparator ranks feasibility before objectives:
// a feasible solution beats an infeasible one, two infeasible solutions are ordered by total violation
// and two feasible ones by Pareto dominance over their objectives.
func NewDominanceComparator(instrumentation *Instrumentation) Comparator {
	return &dominanceComparator{instrumentation: instrumentation}
}

func (comparator *dominanceComparator) Compare(a, b *Solution) int {
	result := compareDominance(a, b)
	comparator.instrumentation.observeComparison(result)
	return result
}

func compareDominance(a, b *Solution) int {
	violationA, violationB := a.Violation(), b.Violation()

	switch {
	case violationA == 0 && violationB < 0:
		return -1
	case violationA < 0 && violationB == 0:
		return 1
	case violationA < 0 && violationB < 0:
		// The less negative violation wins
		if violationA > violationB {
			return -1
		} else if violationA < violationB {
			return 1
		}
		return 0
	default:
		return paretoDominance(a.Objectives, b.Objectives)
	}
}

func paretoDominance(objectivesA, objectivesB []float64) int {
	betterA, betterB := false, false
	for i := range objectivesA {
		if objectivesA[i] < objectivesB[i] {
			betterA = true
		} else if objectivesA[i] > objectivesB[i] {
			betterB = true
		}
	}

	switch {
	case betterA && !betterB:
		return -1
	case betterB && !betterA:
		return 1
	}
	return 0
}
