package evo

import (
	"testing"

	"github.com/limaJavier/fixture/pkg/model"
	"github.com/stretchr/testify/require"
)

func slots(court string, hours ...int) []model.SlotOption {
	options := make([]model.SlotOption, 0, len(hours))
	for _, hour := range hours {
		options = append(options, model.SlotOption{Court: court, Hour: hour})
	}
	return options
}

// Four matches sharing two courts; options are listed C1 first
func testCatalog() [][]model.SlotOption {
	options := append(slots("C1", 9, 10, 11), slots("C2", 9, 10, 11)...)
	return [][]model.SlotOption{options, options, options, options}
}

func testInput(t *testing.T) model.ModelInput {
	input, err := model.ProcessRawInput(model.RawModelInput{
		Courts: []model.CourtConfig{
			{Id: "C1", StartHour: 9, EndHour: 13, MaxContinuousHours: 3},
			{Id: "C2", StartHour: 9, EndHour: 13, MaxContinuousHours: 3},
		},
		Priorities: []model.InstitutionPriorityRule{
			{Institution: "A", TargetCourt: "C1", MinFraction: 0.5},
		},
		CategoryBlocks: []model.CategoryBlock{
			{Name: "Youth", Categories: []string{"U12", "U14"}},
		},
		Matches: []model.RawMatch{
			{Home: "A", Away: "B", Category: "U12"},
			{Home: "A", Away: "C", Category: "U14"},
			{Home: "B", Away: "C", Category: "U12"},
			{Home: "C", Away: "D", Category: "Senior"},
			{Home: "A", Away: "D", Category: "Senior"},
		},
	})
	require.NoError(t, err)
	return input
}

func inBounds(catalog [][]model.SlotOption, genome model.Genome) bool {
	if len(genome) != len(catalog) {
		return false
	}
	for match, gene := range genome {
		if gene < 0 || gene >= len(catalog[match]) {
			return false
		}
	}
	return true
}
