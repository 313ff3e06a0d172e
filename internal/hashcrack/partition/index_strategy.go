package partition

import (
	"math/bits"

	"github.com/pkg/errors"
	"github.com/ykhdr/hash-bruteforce/internal/hashcrack/alphabet"
	"github.com/ykhdr/hash-bruteforce/internal/hashcrack/enumerate"
)

// indexStrategy divides the global candidate index range 0..Space evenly into
// one contiguous span per worker.
type indexStrategy struct{}

func newIndexStrategy() *indexStrategy {
	return &indexStrategy{}
}

func (s *indexStrategy) Name() string {
	return indexStrategyName
}

func (s *indexStrategy) Partition(a *alphabet.Alphabet, maxLen, workers int) ([]Unit, error) {
	total, err := enumerate.Space(a.Len(), maxLen)
	if err != nil {
		return nil, errors.Wrap(err, "index split needs a keyspace that fits uint64")
	}
	parts := uint64(max(workers, 1))
	if total < parts {
		parts = max(total, 1)
	}
	units := make([]Unit, 0, parts)
	for i := uint64(0); i < parts; i++ {
		units = append(units, Unit{
			ID:        int(i),
			MinLength: 1,
			MaxLength: maxLen,
			Span: &Span{
				Start: mulDiv(total, i, parts),
				End:   mulDiv(total, i+1, parts),
			},
		})
	}
	return units, nil
}

// mulDiv computes x*y/z without intermediate overflow. The result must fit
// in uint64, which holds here because y <= z.
func mulDiv(x, y, z uint64) uint64 {
	hi, lo := bits.Mul64(x, y)
	q, _ := bits.Div64(hi, lo, z)
	return q
}
