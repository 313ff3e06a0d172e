// Package digest tests candidates against a target digest.
//
// Candidates are hashed as raw UTF-8 bytes and compared on raw digest bytes,
// never on hex strings.
package digest

import (
	"bytes"
	"encoding/hex"
	"hash"
	"strings"

	"github.com/pkg/errors"
)

// Matcher reports whether a candidate hashes to a fixed target. A Matcher
// keeps hashing state and is not safe for concurrent use; each worker owns one.
type Matcher interface {
	Matches(candidate []byte) bool
}

type matcher struct {
	h      hash.Hash
	target []byte
	sum    []byte
}

// NewMatcher validates target against alg and returns a reusable matcher.
func NewMatcher(alg *Algorithm, target []byte) (Matcher, error) {
	if err := validateTarget(alg, target); err != nil {
		return nil, err
	}
	return &matcher{
		h:      alg.New(),
		target: bytes.Clone(target),
		sum:    make([]byte, 0, alg.Size),
	}, nil
}

func (m *matcher) Matches(candidate []byte) bool {
	m.h.Reset()
	m.h.Write(candidate)
	m.sum = m.h.Sum(m.sum[:0])
	return bytes.Equal(m.sum, m.target)
}

// Matches is the stateless form of Matcher.Matches.
func Matches(candidate []byte, alg *Algorithm, target []byte) bool {
	h := alg.New()
	h.Write(candidate)
	return bytes.Equal(h.Sum(nil), target)
}

// Sum hashes plaintext, encoded as UTF-8, under alg.
func Sum(alg *Algorithm, plaintext string) []byte {
	h := alg.New()
	h.Write([]byte(plaintext))
	return h.Sum(nil)
}

// DecodeHex decodes a hex digest for alg. Surrounding whitespace and an
// optional 0x prefix are ignored.
func DecodeHex(alg *Algorithm, s string) ([]byte, error) {
	s = strings.TrimPrefix(strings.ToLower(strings.TrimSpace(s)), "0x")
	target, err := hex.DecodeString(s)
	if err != nil {
		return nil, errors.Wrap(ErrInvalidHex, err.Error())
	}
	if err := validateTarget(alg, target); err != nil {
		return nil, err
	}
	return target, nil
}

func validateTarget(alg *Algorithm, target []byte) error {
	if len(target) == 0 {
		return ErrEmptyDigest
	}
	if len(target) != alg.Size {
		return errors.Wrapf(ErrDigestSize, "%s wants %d bytes, got %d", alg.Name, alg.Size, len(target))
	}
	return nil
}
