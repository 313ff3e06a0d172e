// Package partition splits the keyspace into disjoint work units.
package partition

import (
	"github.com/pkg/errors"
	"github.com/ykhdr/hash-bruteforce/internal/hashcrack/alphabet"
)

var ErrUnknownStrategy = errors.New("unknown partition strategy")

type Strategy interface {
	Name() string
	// Partition returns units whose candidate sets are pairwise disjoint and
	// together cover every candidate of length 1..maxLen.
	Partition(a *alphabet.Alphabet, maxLen, workers int) ([]Unit, error)
}
