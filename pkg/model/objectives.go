package model

type objective func(state constraintState) float64

// O1: penalizes the gaps between same-court bookings of matches sharing an institution
func institutionalContinuity(state constraintState) float64 {
	return continuityPenalty(state, state.evaluator.SharesInstitution)
}

// O2: penalizes the gaps between same-court bookings of matches with compatible categories
func categoryContinuity(state constraintState) float64 {
	return continuityPenalty(state, state.evaluator.ContinuityCompatible)
}

func continuityPenalty(state constraintState, related func(match1, match2 int) bool) float64 {
	penalty := 0.0
	assignment := state.assignment
	for i := range len(assignment) - 1 {
		for j := i + 1; j < len(assignment); j++ {
			if assignment[i].Court != assignment[j].Court || !related(i, j) {
				continue
			}
			penalty += float64(gap(assignment[i].Hour, assignment[j].Hour))
		}
	}
	return penalty
}

// Returns the number of idle hours between two bookings
func gap(hour1, hour2 int) int {
	difference := hour1 - hour2
	if difference < 0 {
		difference = -difference
	}
	return max(0, difference-1)
}
