package partition

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ykhdr/hash-bruteforce/internal/hashcrack/alphabet"
	"github.com/ykhdr/hash-bruteforce/internal/hashcrack/enumerate"
)

func keyspace(a *alphabet.Alphabet, maxLen int) []string {
	var out []string
	for length := 1; length <= maxLen; length++ {
		for c := range enumerate.Enumerate(a, nil, length) {
			out = append(out, string(c))
		}
	}
	return out
}

// TestPartitionDisjointAndExhaustive checks every strategy on small alphabets
// and lengths: each keyspace candidate is produced by exactly one unit.
func TestPartitionDisjointAndExhaustive(t *testing.T) {
	sets := []string{"a", "ab", "abc", "aé€z"}
	for _, typ := range []Type{PrefixStrategyType, IndexStrategyType} {
		strategy := NewStrategy(typ)
		for _, set := range sets {
			a, err := alphabet.New(set)
			require.NoError(t, err)
			for maxLen := 1; maxLen <= 4; maxLen++ {
				for workers := 0; workers <= 20; workers++ {
					name := fmt.Sprintf("%s/%s/len%d/w%d", strategy.Name(), set, maxLen, workers)
					t.Run(name, func(t *testing.T) {
						units, err := strategy.Partition(a, maxLen, workers)
						require.NoError(t, err)
						require.NotEmpty(t, units)

						seen := make(map[string]int)
						var sizes uint64
						for i := range units {
							u := &units[i]
							n := 0
							for c := range u.Candidates(a) {
								seen[string(c)]++
								n++
							}
							size, err := u.Size(a.Len())
							require.NoError(t, err)
							assert.Equal(t, uint64(n), size, "size of %s", u)
							sizes += size
						}

						all := keyspace(a, maxLen)
						assert.Len(t, seen, len(all))
						assert.Equal(t, uint64(len(all)), sizes)
						for _, c := range all {
							assert.Equal(t, 1, seen[c], "candidate %q", c)
						}
					})
				}
			}
		}
	}
}

func TestPrefixStrategyTiers(t *testing.T) {
	s := NewStrategy(PrefixStrategyType)
	abc, err := alphabet.New("abc")
	require.NoError(t, err)

	units, err := s.Partition(abc, 3, 1)
	require.NoError(t, err)
	require.Len(t, units, 1)
	assert.Empty(t, units[0].Prefix)
	assert.Equal(t, 1, units[0].MinLength)
	assert.Equal(t, 3, units[0].MaxLength)

	units, err = s.Partition(abc, 3, 2)
	require.NoError(t, err)
	require.Len(t, units, 3)
	for i, u := range units {
		assert.Equal(t, []int{i}, u.Prefix)
		assert.Equal(t, 1, u.MinLength)
	}

	units, err = s.Partition(abc, 3, 5)
	require.NoError(t, err)
	require.Len(t, units, 1+9)
	assert.Empty(t, units[0].Prefix)
	assert.Equal(t, 1, units[0].MaxLength)
	assert.Equal(t, "ab", units[2].PrefixString(abc))
	assert.Equal(t, "cc", units[9].PrefixString(abc))
	for _, u := range units[1:] {
		assert.Equal(t, 2, u.MinLength)
	}
}

func TestIndexStrategyBalanced(t *testing.T) {
	s := NewStrategy(IndexStrategyType)
	lower, err := alphabet.Preset(alphabet.Lower)
	require.NoError(t, err)

	units, err := s.Partition(lower, 4, 7)
	require.NoError(t, err)
	require.Len(t, units, 7)

	total, err := enumerate.Space(lower.Len(), 4)
	require.NoError(t, err)
	assert.Zero(t, units[0].Span.Start)
	assert.Equal(t, total, units[6].Span.End)
	for i := range units {
		size, err := units[i].Size(lower.Len())
		require.NoError(t, err)
		assert.InDelta(t, float64(total)/7, float64(size), 1)
		if i > 0 {
			assert.Equal(t, units[i-1].Span.End, units[i].Span.Start)
		}
	}
}

func TestUnitBoundsMatchCandidates(t *testing.T) {
	a, err := alphabet.New("abc")
	require.NoError(t, err)
	for _, typ := range []Type{PrefixStrategyType, IndexStrategyType} {
		units, err := NewStrategy(typ).Partition(a, 3, 5)
		require.NoError(t, err)
		for i := range units {
			u := &units[i]
			var got []string
			for c := range u.Candidates(a) {
				got = append(got, string(c))
			}
			require.NotEmpty(t, got, "unit %s", u)
			first, last := u.Bounds(a)
			assert.Equal(t, got[0], first, "unit %s", u)
			assert.Equal(t, got[len(got)-1], last, "unit %s", u)
		}
	}

	empty := Unit{Span: &Span{Start: 4, End: 4}, MaxLength: 3}
	first, last := empty.Bounds(a)
	assert.Empty(t, first)
	assert.Empty(t, last)
}

func TestIndexStrategyOverflow(t *testing.T) {
	special, err := alphabet.Preset(alphabet.Special)
	require.NoError(t, err)
	_, err = NewStrategy(IndexStrategyType).Partition(special, 12, 4)
	require.ErrorIs(t, err, enumerate.ErrSpaceOverflow)
}

func TestParseStrategyName(t *testing.T) {
	typ, err := ParseStrategyName("")
	require.NoError(t, err)
	assert.Equal(t, PrefixStrategyType, typ)

	typ, err = ParseStrategyName("index")
	require.NoError(t, err)
	assert.Equal(t, IndexStrategyType, typ)

	_, err = ParseStrategyName("random")
	require.ErrorIs(t, err, ErrUnknownStrategy)

	assert.Equal(t, "prefix", DefaultStrategyStr())
}
