package model

// Indexer is designed to give the gene value selecting a slot option of a match and vice versa
type Indexer interface {
	// Returns the gene value selecting the slot option for the match, false if the option is not eligible
	Index(match int, slot SlotOption) (int, bool)
	// Returns the slot option selected by the gene value of the match
	Attributes(match, index int) SlotOption
}

func NewIndexer(catalog [][]SlotOption) Indexer {
	positions := make([]map[SlotOption]int, len(catalog))
	for match, options := range catalog {
		positions[match] = make(map[SlotOption]int, len(options))
		for index, option := range options {
			// Keep the first position when an option is listed twice
			if _, ok := positions[match][option]; !ok {
				positions[match][option] = index
			}
		}
	}

	return &indexerImplementation{
		catalog:   catalog,
		positions: positions,
	}
}
