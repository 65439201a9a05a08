package model

type PredicateEvaluator interface {
	// Checks whether match1 and match2 share an institution, playing home or away on either side
	SharesInstitution(match1, match2 int) bool

	// Checks whether the categories of match1 and match2 are identical or both belong to a same category block
	ContinuityCompatible(match1, match2 int) bool

	// Checks whether the institution plays the match, either home or away
	Involves(match int, institution string) bool
}
