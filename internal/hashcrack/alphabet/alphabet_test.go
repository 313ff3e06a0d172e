package alphabet

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPresets(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{Lower, "abcdefghijklmnopqrstuvwxyz"},
		{LowerDigits, "abcdefghijklmnopqrstuvwxyz0123456789"},
		{All, "abcdefghijklmnopqrstuvwxyz0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"},
		{Special, "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789!\"#$%&'()*+,-./:;<=>?@[\\]^_`{|}~"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a, err := Preset(tt.name)
			require.NoError(t, err)
			assert.Equal(t, tt.want, a.String())
			assert.Equal(t, len(tt.want), a.Len())
		})
	}

	special, err := Preset(Special)
	require.NoError(t, err)
	assert.Equal(t, 94, special.Len())
}

func TestPresetUnknown(t *testing.T) {
	_, err := Preset("hex")
	require.ErrorIs(t, err, ErrUnknownPreset)
}

func TestNewDeduplicatesKeepingOrder(t *testing.T) {
	a, err := New("cabbac")
	require.NoError(t, err)
	assert.Equal(t, []string{"c", "a", "b"}, a.Symbols())
}

func TestNewMultiByteSymbols(t *testing.T) {
	a, err := New("aé€")
	require.NoError(t, err)
	require.Equal(t, 3, a.Len())
	assert.Equal(t, []byte("é"), a.Bytes(1))
	assert.Equal(t, []byte{0xe2, 0x82, 0xac}, a.Bytes(2))
}

func TestNewRejectsInvalidInput(t *testing.T) {
	_, err := New("")
	require.ErrorIs(t, err, ErrEmpty)

	_, err = New("ab\xff")
	require.ErrorIs(t, err, ErrInvalidSymbol)
}

func TestResolve(t *testing.T) {
	a, err := Resolve(Lower, "xyz")
	require.NoError(t, err)
	assert.Equal(t, "xyz", a.String())

	a, err = Resolve(Lower, "")
	require.NoError(t, err)
	assert.Equal(t, 26, a.Len())
}
