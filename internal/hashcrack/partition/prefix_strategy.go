package partition

import "github.com/ykhdr/hash-bruteforce/internal/hashcrack/alphabet"

// prefixStrategy tiers the keyspace by leading symbols. Units differ in size,
// the split favors simplicity over balance.
type prefixStrategy struct{}

func newPrefixStrategy() *prefixStrategy {
	return &prefixStrategy{}
}

func (s *prefixStrategy) Name() string {
	return prefixStrategyName
}

func (s *prefixStrategy) Partition(a *alphabet.Alphabet, maxLen, workers int) ([]Unit, error) {
	if workers <= 1 {
		return []Unit{{ID: 0, MinLength: 1, MaxLength: maxLen}}, nil
	}
	size := a.Len()
	if size >= workers || maxLen == 1 {
		units := make([]Unit, 0, size)
		for i := 0; i < size; i++ {
			units = append(units, Unit{ID: i, Prefix: []int{i}, MinLength: 1, MaxLength: maxLen})
		}
		return units, nil
	}
	// Two-symbol prefixes start at length 2, so the one-symbol candidates get
	// a unit of their own.
	units := make([]Unit, 0, size*size+1)
	units = append(units, Unit{ID: 0, MinLength: 1, MaxLength: 1})
	for i := 0; i < size; i++ {
		for j := 0; j < size; j++ {
			units = append(units, Unit{ID: len(units), Prefix: []int{i, j}, MinLength: 2, MaxLength: maxLen})
		}
	}
	return units, nil
}
