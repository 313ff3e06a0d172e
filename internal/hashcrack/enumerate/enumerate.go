// Package enumerate generates candidate strings over an alphabet in
// deterministic order without materializing the keyspace.
//
// Candidates are produced shortest first and, within one length, in
// lexicographic order of the alphabet's symbol ordering. The same ordering
// defines a global index over lengths 1..maxLen which the index-based split
// seeks into.
package enumerate

import (
	"iter"
	"math/bits"

	"github.com/pkg/errors"
	"github.com/ykhdr/hash-bruteforce/internal/hashcrack/alphabet"
)

var ErrSpaceOverflow = errors.New("keyspace size overflows uint64")

// Enumerate yields prefix followed by every combination of remaining symbols.
// For remaining == 0 it yields prefix exactly once. The yielded slice is
// reused between iterations and is only valid until the next one.
func Enumerate(a *alphabet.Alphabet, prefix []byte, remaining int) iter.Seq[[]byte] {
	return func(yield func([]byte) bool) {
		if remaining < 0 {
			return
		}
		c := newCursor(a, prefix, make([]int, remaining))
		for {
			if !yield(c.buf) {
				return
			}
			if !c.next() {
				return
			}
		}
	}
}

// Range yields the candidates with global index in [start, end) over lengths
// 1..maxLen. end is clamped to the keyspace size.
//
// The keyspace must fit in uint64; callers check Space first. On overflow
// Range yields nothing, which is indistinguishable from an empty range.
func Range(a *alphabet.Alphabet, maxLen int, start, end uint64) iter.Seq[[]byte] {
	return func(yield func([]byte) bool) {
		total, err := Space(a.Len(), maxLen)
		if err != nil {
			// Unreachable through the index strategy, which rejects overflow.
			return
		}
		end = min(end, total)
		if start >= end {
			return
		}
		length, rank := locate(a.Len(), start)
		c := newCursor(a, nil, digitsOf(a.Len(), length, rank))
		for i := start; i < end; i++ {
			if !yield(c.buf) {
				return
			}
			if !c.next() {
				length++
				c = newCursor(a, nil, make([]int, length))
			}
		}
	}
}

// CandidateAt returns the candidate with the given global index.
func CandidateAt(a *alphabet.Alphabet, maxLen int, index uint64) (string, error) {
	total, err := Space(a.Len(), maxLen)
	if err != nil {
		return "", err
	}
	if index >= total {
		return "", errors.Errorf("index %d is beyond keyspace of size %d", index, total)
	}
	length, rank := locate(a.Len(), index)
	return string(newCursor(a, nil, digitsOf(a.Len(), length, rank)).buf), nil
}

// Power returns base^exp, failing on uint64 overflow.
func Power(base, exp int) (uint64, error) {
	result := uint64(1)
	for i := 0; i < exp; i++ {
		hi, lo := bits.Mul64(result, uint64(base))
		if hi != 0 {
			return 0, ErrSpaceOverflow
		}
		result = lo
	}
	return result, nil
}

// Space returns the number of candidates of lengths 1..maxLen.
func Space(alphabetSize, maxLen int) (uint64, error) {
	var total uint64
	for length := 1; length <= maxLen; length++ {
		c, err := Power(alphabetSize, length)
		if err != nil {
			return 0, err
		}
		var carry uint64
		total, carry = bits.Add64(total, c, 0)
		if carry != 0 {
			return 0, ErrSpaceOverflow
		}
	}
	return total, nil
}

// locate maps a global index to a candidate length and the rank within that
// length. The caller guarantees index is inside the keyspace.
func locate(alphabetSize int, index uint64) (int, uint64) {
	cur := index
	for length := 1; ; length++ {
		c, err := Power(alphabetSize, length)
		if err != nil || cur < c {
			return length, cur
		}
		cur -= c
	}
}

func digitsOf(alphabetSize, length int, rank uint64) []int {
	digits := make([]int, length)
	base := uint64(alphabetSize)
	for p := length - 1; p >= 0; p-- {
		digits[p] = int(rank % base)
		rank /= base
	}
	return digits
}

// cursor is an odometer over symbol indexes with the encoded candidate kept
// in buf. offsets[i] is the byte offset in buf where digit i starts, which
// lets multi-byte symbols be rewritten from the changed position only.
type cursor struct {
	a       *alphabet.Alphabet
	digits  []int
	offsets []int
	buf     []byte
}

func newCursor(a *alphabet.Alphabet, prefix []byte, digits []int) *cursor {
	c := &cursor{
		a:       a,
		digits:  digits,
		offsets: make([]int, len(digits)),
		buf:     make([]byte, 0, len(prefix)+4*len(digits)),
	}
	c.buf = append(c.buf, prefix...)
	c.rebuild(0, len(prefix))
	return c
}

func (c *cursor) rebuild(from, offset int) {
	c.buf = c.buf[:offset]
	for i := from; i < len(c.digits); i++ {
		c.offsets[i] = len(c.buf)
		c.buf = append(c.buf, c.a.Bytes(c.digits[i])...)
	}
}

// next advances to the following candidate and reports false once the
// odometer wraps around.
func (c *cursor) next() bool {
	for p := len(c.digits) - 1; p >= 0; p-- {
		if c.digits[p]+1 < c.a.Len() {
			c.digits[p]++
			c.rebuild(p, c.offsets[p])
			return true
		}
		c.digits[p] = 0
	}
	return false
}
