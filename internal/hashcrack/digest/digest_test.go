package digest

import (
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLookup(t *testing.T) {
	tests := []struct {
		in   string
		want string
		size int
	}{
		{"md5", "md5", 16},
		{"MD5", "md5", 16},
		{"sha1", "sha1", 20},
		{"SHA-256", "sha256", 32},
		{"sha512/256", "sha512_256", 32},
		{"SHA3-512", "sha3_512", 64},
		{"blake2b-256", "blake2b_256", 32},
		{"md4", "md4", 16},
		{"ripemd160", "ripemd160", 20},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			alg, err := Lookup(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, alg.Name)
			assert.Equal(t, tt.size, alg.Size)
		})
	}

	_, err := Lookup("crc32")
	require.ErrorIs(t, err, ErrUnsupportedAlgorithm)
	assert.Contains(t, err.Error(), "md4, md5")
	assert.Contains(t, err.Error(), "sha3_256")
}

func TestListIsSortedAndComplete(t *testing.T) {
	names := List()
	assert.IsIncreasing(t, names)
	assert.Contains(t, names, "md5")
	assert.Contains(t, names, "sha3_256")
	assert.Len(t, names, len(registry))
}

func TestSumKnownVectors(t *testing.T) {
	md5, err := Lookup("md5")
	require.NoError(t, err)
	assert.Equal(t, "900150983cd24fb0d6963f7d28e17f72", hex.EncodeToString(Sum(md5, "abc")))

	sha256, err := Lookup("sha256")
	require.NoError(t, err)
	assert.Equal(t,
		"ba7816bf8f01cfea414140de5dae2223b00361a396177a9cb410ff61f20015ad",
		hex.EncodeToString(Sum(sha256, "abc")))
}

func TestMatcher(t *testing.T) {
	alg, err := Lookup("sha1")
	require.NoError(t, err)
	target := Sum(alg, "ab")

	m, err := NewMatcher(alg, target)
	require.NoError(t, err)

	assert.False(t, m.Matches([]byte("aa")))
	assert.True(t, m.Matches([]byte("ab")))
	// Reuse must not leak state from the previous candidate.
	assert.True(t, m.Matches([]byte("ab")))
	assert.False(t, m.Matches([]byte("ba")))

	assert.True(t, Matches([]byte("ab"), alg, target))
	assert.Equal(t, Matches([]byte("x"), alg, target), Matches([]byte("x"), alg, target))
}

func TestMatcherUTF8(t *testing.T) {
	alg, err := Lookup("md5")
	require.NoError(t, err)
	m, err := NewMatcher(alg, Sum(alg, "é€"))
	require.NoError(t, err)
	assert.True(t, m.Matches([]byte{0xc3, 0xa9, 0xe2, 0x82, 0xac}))
}

func TestNewMatcherRejectsBadTarget(t *testing.T) {
	alg, err := Lookup("md5")
	require.NoError(t, err)

	_, err = NewMatcher(alg, nil)
	require.ErrorIs(t, err, ErrEmptyDigest)

	_, err = NewMatcher(alg, make([]byte, 20))
	require.ErrorIs(t, err, ErrDigestSize)
}

func TestDecodeHex(t *testing.T) {
	alg, err := Lookup("md5")
	require.NoError(t, err)

	got, err := DecodeHex(alg, "  0x900150983CD24FB0D6963F7D28E17F72\n")
	require.NoError(t, err)
	assert.Equal(t, Sum(alg, "abc"), got)

	_, err = DecodeHex(alg, "zz")
	require.ErrorIs(t, err, ErrInvalidHex)

	_, err = DecodeHex(alg, "abcd")
	require.ErrorIs(t, err, ErrDigestSize)

	_, err = DecodeHex(alg, "")
	require.ErrorIs(t, err, ErrEmptyDigest)
}
