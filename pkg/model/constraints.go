package model

import (
	"slices"

	"github.com/samber/lo"
)

type constraintState struct {
	assignment []SlotOption
	evaluator  PredicateEvaluator
}

// A constraint returns 0 when satisfied, else a negative violation magnitude
type constraint func(state constraintState) float64

// Counts every pair of matches booked on the same court and hour
func overlapConstraint(state constraintState) float64 {
	collisions := 0
	for _, count := range lo.CountValues(state.assignment) {
		collisions += count * (count - 1) / 2 // Pairs i < j sharing the slot
	}
	return violation(float64(collisions))
}

// Caps the longest run of consecutive hours booked on the court
func continuousHoursConstraint(court CourtConfig) constraint {
	return func(state constraintState) float64 {
		hours := make([]int, 0)
		for _, slot := range state.assignment {
			if slot.Court == court.Id {
				hours = append(hours, slot.Hour)
			}
		}

		excess := longestConsecutiveRun(hours) - court.MaxContinuousHours
		if excess <= 0 {
			return 0
		}
		return violation(float64(excess))
	}
}

// Requires a minimum fraction of the institution's matches on the target court
func priorityConstraint(rule InstitutionPriorityRule) constraint {
	return func(state constraintState) float64 {
		total, onTarget := 0, 0
		for match, slot := range state.assignment {
			if !state.evaluator.Involves(match, rule.Institution) {
				continue
			}
			total++
			if slot.Court == rule.TargetCourt {
				onTarget++
			}
		}

		if total == 0 {
			return 0
		}

		actual := float64(onTarget) / float64(total)
		if actual >= rule.MinFraction {
			return 0
		}
		return violation((rule.MinFraction - actual) * 100)
	}
}

// Returns the length of the longest run of consecutive integers in the sorted hours.
// A repeated hour breaks the run.
func longestConsecutiveRun(hours []int) int {
	if len(hours) == 0 {
		return 0
	}

	sorted := slices.Clone(hours)
	slices.Sort(sorted)

	longest, current := 1, 1
	for i := 1; i < len(sorted); i++ {
		if sorted[i] == sorted[i-1]+1 {
			current++
		} else {
			current = 1
		}
		longest = max(longest, current)
	}
	return longest
}

func violation(magnitude float64) float64 {
	if magnitude <= 0 {
		return 0
	}
	return -magnitude
}
