package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOverlapLowerBound(t *testing.T) {
	t.Run("Enough distinct slots", func(t *testing.T) {
		input := mustInput(t, RawModelInput{
			Courts: []CourtConfig{{Id: "C1", StartHour: 9, EndHour: 12, MaxContinuousHours: 3}},
			Matches: []RawMatch{
				{Home: "A", Away: "B"},
				{Home: "C", Away: "D"},
				{Home: "E", Away: "F"},
			},
		})

		bound, err := OverlapLowerBound(input)

		require.NoError(t, err)
		assert.Equal(t, 0, bound)
	})

	t.Run("Matches competing for a single slot", func(t *testing.T) {
		//** Arrange
		shared := SlotOption{"C1", 9}
		input := mustInput(t, RawModelInput{
			Courts: []CourtConfig{{Id: "C1", StartHour: 9, EndHour: 12, MaxContinuousHours: 3}},
			Matches: []RawMatch{
				explicitMatch("A", "B", "", shared),
				explicitMatch("C", "D", "", shared),
				explicitMatch("E", "F", "", shared, SlotOption{"C1", 10}),
			},
		})

		//** Act
		bound, err := OverlapLowerBound(input)

		//** Assert
		require.NoError(t, err)
		assert.Equal(t, 1, bound)
	})

	t.Run("Empty input", func(t *testing.T) {
		bound, err := OverlapLowerBound(ModelInput{})

		require.NoError(t, err)
		assert.Equal(t, 0, bound)
	})
}
