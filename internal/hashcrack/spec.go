package hashcrack

import (
	"runtime"

	"github.com/ykhdr/hash-bruteforce/internal/hashcrack/alphabet"
	"github.com/ykhdr/hash-bruteforce/internal/hashcrack/digest"
	"github.com/ykhdr/hash-bruteforce/internal/hashcrack/partition"
)

// SearchSpec is a fully resolved, immutable search description.
type SearchSpec struct {
	Target    []byte
	Algorithm string
	Alphabet  *alphabet.Alphabet
	MaxLength int
	Workers   int
	Strategy  partition.Type
}

func (s *SearchSpec) Validate() error {
	if s.Alphabet == nil || s.Alphabet.Len() == 0 {
		return configError(ErrEmptyAlphabet)
	}
	if s.MaxLength < 1 {
		return configError(ErrInvalidMaxLength)
	}
	if len(s.Target) == 0 {
		return configError(ErrEmptyTarget)
	}
	if s.Workers < 1 {
		return configError(ErrInvalidWorkers)
	}
	alg, err := digest.Lookup(s.Algorithm)
	if err != nil {
		return configError(err)
	}
	if _, err = digest.NewMatcher(alg, s.Target); err != nil {
		return configError(err)
	}
	return nil
}

// ResolveWorkers maps a requested worker count to a usable one: 0 or less
// means every available CPU.
func ResolveWorkers(n int) int {
	if n <= 0 {
		return runtime.NumCPU()
	}
	return n
}

// Request is the unresolved input supplied by an outer layer (CLI, HTTP).
// The target comes from Password when set, otherwise from the hex Hash.
type Request struct {
	Hash      string `json:"hash,omitempty"`
	Password  string `json:"password,omitempty"`
	Algorithm string `json:"algorithm"`
	MaxLength int    `json:"maxLength"`
	Charset   string `json:"charset,omitempty"`
	Symbols   string `json:"symbols,omitempty"`
	Workers   int    `json:"workers"`
	Strategy  string `json:"strategy,omitempty"`
}

// Resolve turns the request into a validated SearchSpec. Every error it
// returns is a ConfigError.
func (r *Request) Resolve() (*SearchSpec, error) {
	alg, err := digest.Lookup(r.Algorithm)
	if err != nil {
		return nil, configError(err)
	}
	var target []byte
	switch {
	case r.Password != "":
		target = digest.Sum(alg, r.Password)
	case r.Hash != "":
		if target, err = digest.DecodeHex(alg, r.Hash); err != nil {
			return nil, configError(err)
		}
	default:
		return nil, configError(ErrEmptyTarget)
	}
	a, err := alphabet.Resolve(r.Charset, r.Symbols)
	if err != nil {
		return nil, configError(err)
	}
	strategy, err := partition.ParseStrategyName(r.Strategy)
	if err != nil {
		return nil, configError(err)
	}
	spec := &SearchSpec{
		Target:    target,
		Algorithm: alg.Name,
		Alphabet:  a,
		MaxLength: r.MaxLength,
		Workers:   ResolveWorkers(r.Workers),
		Strategy:  strategy,
	}
	if err = spec.Validate(); err != nil {
		return nil, err
	}
	return spec, nil
}
