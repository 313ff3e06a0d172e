package partition

import (
	"fmt"
	"iter"
	"math/bits"
	"strings"

	"github.com/ykhdr/hash-bruteforce/internal/hashcrack/alphabet"
	"github.com/ykhdr/hash-bruteforce/internal/hashcrack/enumerate"
)

// Unit is a disjoint, finite slice of the keyspace owned by one worker.
//
// A prefix unit covers, for every length in [MinLength, MaxLength], all
// candidates of that length starting with Prefix. A span unit (Span != nil)
// covers the global candidate indexes [Span.Start, Span.End) instead and
// carries an empty prefix.
type Unit struct {
	ID        int
	Prefix    []int
	MinLength int
	MaxLength int
	Span      *Span
}

type Span struct {
	Start uint64
	End   uint64
}

// PrefixBytes returns the UTF-8 encoding of the unit prefix.
func (u *Unit) PrefixBytes(a *alphabet.Alphabet) []byte {
	var b []byte
	for _, i := range u.Prefix {
		b = append(b, a.Bytes(i)...)
	}
	return b
}

func (u *Unit) PrefixString(a *alphabet.Alphabet) string {
	var sb strings.Builder
	for _, i := range u.Prefix {
		sb.WriteString(a.Symbol(i))
	}
	return sb.String()
}

// Candidates yields every candidate of the unit: shorter lengths first, then
// lexicographic order. The yielded slice is reused between iterations.
func (u *Unit) Candidates(a *alphabet.Alphabet) iter.Seq[[]byte] {
	if u.Span != nil {
		return enumerate.Range(a, u.MaxLength, u.Span.Start, u.Span.End)
	}
	prefix := u.PrefixBytes(a)
	return func(yield func([]byte) bool) {
		for length := max(u.MinLength, len(u.Prefix)); length <= u.MaxLength; length++ {
			for c := range enumerate.Enumerate(a, prefix, length-len(u.Prefix)) {
				if !yield(c) {
					return
				}
			}
		}
	}
}

// Bounds returns the first and last candidate of the unit in enumeration
// order, or empty strings for an empty unit.
func (u *Unit) Bounds(a *alphabet.Alphabet) (first, last string) {
	if u.Span != nil {
		if u.Span.Start >= u.Span.End {
			return "", ""
		}
		var err error
		first, err = enumerate.CandidateAt(a, u.MaxLength, u.Span.Start)
		if err != nil {
			return "", ""
		}
		last, err = enumerate.CandidateAt(a, u.MaxLength, u.Span.End-1)
		if err != nil {
			return "", ""
		}
		return first, last
	}
	minLen := max(u.MinLength, len(u.Prefix))
	if minLen > u.MaxLength {
		return "", ""
	}
	prefix := u.PrefixString(a)
	first = prefix + strings.Repeat(a.Symbol(0), minLen-len(u.Prefix))
	last = prefix + strings.Repeat(a.Symbol(a.Len()-1), u.MaxLength-len(u.Prefix))
	return first, last
}

// Size returns the number of candidates the unit generates.
func (u *Unit) Size(alphabetSize int) (uint64, error) {
	if u.Span != nil {
		return u.Span.End - u.Span.Start, nil
	}
	var total uint64
	for length := max(u.MinLength, len(u.Prefix)); length <= u.MaxLength; length++ {
		c, err := enumerate.Power(alphabetSize, length-len(u.Prefix))
		if err != nil {
			return 0, err
		}
		var carry uint64
		total, carry = bits.Add64(total, c, 0)
		if carry != 0 {
			return 0, enumerate.ErrSpaceOverflow
		}
	}
	return total, nil
}

func (u *Unit) String() string {
	if u.Span != nil {
		return fmt.Sprintf("unit#%d[%d,%d)", u.ID, u.Span.Start, u.Span.End)
	}
	return fmt.Sprintf("unit#%d{prefix=%v len=%d..%d}", u.ID, u.Prefix, u.MinLength, u.MaxLength)
}
