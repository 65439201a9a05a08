package model

type indexerImplementation struct {
	catalog   [][]SlotOption
	positions []map[SlotOption]int
}

func (indexer *indexerImplementation) Index(match int, slot SlotOption) (int, bool) {
	index, ok := indexer.positions[match][slot]
	return index, ok
}

func (indexer *indexerImplementation) Attributes(match, index int) SlotOption {
	return indexer.catalog[match][index]
}
