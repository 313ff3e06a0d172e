// Package alphabet holds the ordered symbol sets candidates are built from.
package alphabet

import (
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/pkg/errors"
)

const (
	lowercase   = "abcdefghijklmnopqrstuvwxyz"
	uppercase   = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	digits      = "0123456789"
	punctuation = "!\"#$%&'()*+,-./:;<=>?@[\\]^_`{|}~"
)

const (
	Lower       = "lower"
	LowerDigits = "lower_digits"
	All         = "all"
	Special     = "special"
)

var presets = map[string]string{
	Lower:       lowercase,
	LowerDigits: lowercase + digits,
	All:         lowercase + digits + uppercase,
	Special:     lowercase + uppercase + digits + punctuation,
}

var (
	ErrEmpty         = errors.New("alphabet is empty")
	ErrInvalidSymbol = errors.New("alphabet contains a symbol that is not valid UTF-8")
	ErrUnknownPreset = errors.New("unknown alphabet preset")
)

// Alphabet is an immutable, deduplicated, ordered set of symbols. Each symbol
// is a single Unicode scalar stored in its UTF-8 encoding.
type Alphabet struct {
	symbols []string
	encoded [][]byte
}

// Preset returns one of the named standard alphabets.
func Preset(name string) (*Alphabet, error) {
	set, ok := presets[name]
	if !ok {
		return nil, errors.Wrapf(ErrUnknownPreset, "%q (known: %s)", name, strings.Join(Presets(), ", "))
	}
	return New(set)
}

// Presets lists preset names in sorted order.
func Presets() []string {
	names := make([]string, 0, len(presets))
	for name := range presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// New builds an alphabet from an explicit symbol set. Symbol order is kept,
// later duplicates are dropped.
func New(set string) (*Alphabet, error) {
	if !utf8.ValidString(set) {
		return nil, ErrInvalidSymbol
	}
	seen := make(map[rune]struct{}, len(set))
	a := &Alphabet{}
	for _, r := range set {
		if _, dup := seen[r]; dup {
			continue
		}
		seen[r] = struct{}{}
		s := string(r)
		a.symbols = append(a.symbols, s)
		a.encoded = append(a.encoded, []byte(s))
	}
	if len(a.symbols) == 0 {
		return nil, ErrEmpty
	}
	return a, nil
}

// Resolve picks an explicit symbol set when one is given, otherwise the preset.
func Resolve(preset, symbols string) (*Alphabet, error) {
	if symbols != "" {
		return New(symbols)
	}
	return Preset(preset)
}

func (a *Alphabet) Len() int {
	return len(a.symbols)
}

func (a *Alphabet) Symbol(i int) string {
	return a.symbols[i]
}

// Bytes returns the UTF-8 encoding of symbol i. Callers must not modify it.
func (a *Alphabet) Bytes(i int) []byte {
	return a.encoded[i]
}

func (a *Alphabet) Symbols() []string {
	out := make([]string, len(a.symbols))
	copy(out, a.symbols)
	return out
}

func (a *Alphabet) String() string {
	return strings.Join(a.symbols, "")
}
