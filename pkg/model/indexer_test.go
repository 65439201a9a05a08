package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIndexer(t *testing.T) {
	//** Arrange
	catalog := [][]SlotOption{
		{{"C1", 9}, {"C1", 10}, {"C2", 9}},
		{{"C2", 9}, {"C2", 9}, {"C1", 11}},
	}

	//** Act
	indexer := NewIndexer(catalog)

	//** Assert
	for match, options := range catalog {
		for index, option := range options {
			first, ok := indexer.Index(match, option)
			assert.True(t, ok)
			assert.Equal(t, option, indexer.Attributes(match, first))
			assert.LessOrEqual(t, first, index)
		}
	}

	index, ok := indexer.Index(1, SlotOption{"C2", 9})
	assert.True(t, ok)
	assert.Equal(t, 0, index)

	_, ok = indexer.Index(0, SlotOption{"C1", 11})
	assert.False(t, ok)
}
