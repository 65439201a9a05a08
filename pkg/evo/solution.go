package evo

import (
	"slices"

	"github.com/limaJavier/fixture/pkg/model"
)

// Solution is a scored genome. A genome is exclusively owned by its solution while being scored.
type Solution struct {
	Genome      model.Genome
	Objectives  []float64
	Constraints []float64

	rank     int
	crowding float64
}

func NewSolution(genome model.Genome) *Solution {
	return &Solution{Genome: genome}
}

// Violation is the sum of the negative constraint entries; 0 means fully feasible
func (solution *Solution) Violation() float64 {
	return model.TotalViolation(solution.Constraints)
}

func (solution *Solution) Feasible() bool {
	return solution.Violation() == 0
}

// Rank is the index of the nondominated front the solution was sorted into
func (solution *Solution) Rank() int {
	return solution.rank
}

func (solution *Solution) CrowdingDistance() float64 {
	return solution.crowding
}

func (solution *Solution) Copy() *Solution {
	return &Solution{
		Genome:      slices.Clone(solution.Genome),
		Objectives:  slices.Clone(solution.Objectives),
		Constraints: slices.Clone(solution.Constraints),
		rank:        solution.rank,
		crowding:    solution.crowding,
	}
}
