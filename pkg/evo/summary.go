package evo

import (
	"slices"

	"github.com/samber/lo"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

type FrontSummary struct {
	Size          int
	Feasible      int
	Minimum       []float64 // Per objective
	Mean          []float64
	StdDev        []float64
	BestViolation float64 // Closest to 0 among the front
}

func Summarize(front []*Solution) FrontSummary {
	summary := FrontSummary{
		Size:     len(front),
		Feasible: countFeasible(front),
	}
	if len(front) == 0 {
		return summary
	}

	objectives := len(front[0].Objectives)
	summary.Minimum = make([]float64, objectives)
	summary.Mean = make([]float64, objectives)
	summary.StdDev = make([]float64, objectives)
	for objective := range objectives {
		values := lo.Map(front, func(solution *Solution, _ int) float64 {
			return solution.Objectives[objective]
		})
		summary.Minimum[objective] = floats.Min(values)
		summary.Mean[objective] = stat.Mean(values, nil)
		if len(values) > 1 {
			summary.StdDev[objective] = stat.StdDev(values, nil)
		}
	}

	summary.BestViolation = floats.Max(lo.Map(front, func(solution *Solution, _ int) float64 {
		return solution.Violation()
	}))
	return summary
}

// Best picks the solution reported as the fixture: feasible first, then the smallest violation, then lexicographic objectives
func Best(front []*Solution) *Solution {
	if len(front) == 0 {
		return nil
	}

	return slices.MinFunc(front, func(a, b *Solution) int {
		if violation := compareFloat(b.Violation(), a.Violation()); violation != 0 {
			return violation
		}
		for i := range a.Objectives {
			if objective := compareFloat(a.Objectives[i], b.Objectives[i]); objective != 0 {
				return objective
			}
		}
		return 0
	})
}

