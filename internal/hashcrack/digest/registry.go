package digest

import (
	"crypto/md5"  //nolint:gosec // weak digests are search targets, not protection
	"crypto/sha1" //nolint:gosec
	"crypto/sha256"
	"crypto/sha512"
	"hash"
	"sort"
	"strings"

	"github.com/pkg/errors"
	"golang.org/x/crypto/blake2b"
	"golang.org/x/crypto/blake2s"
	"golang.org/x/crypto/md4"       //nolint:staticcheck
	"golang.org/x/crypto/ripemd160" //nolint:staticcheck
	"golang.org/x/crypto/sha3"
)

var (
	ErrUnsupportedAlgorithm = errors.New("unsupported hash algorithm")
	ErrDigestSize           = errors.New("target digest size does not match algorithm")
	ErrEmptyDigest          = errors.New("target digest is empty")
	ErrInvalidHex           = errors.New("target digest is not valid hex")
)

// Algorithm is a named digest constructor.
type Algorithm struct {
	Name string
	Size int
	New  func() hash.Hash
}

var (
	registry = map[string]*Algorithm{}
	// aliases maps separator-free names to registry keys.
	aliases = map[string]string{}
)

func register(name string, newFn func() hash.Hash) {
	registry[name] = &Algorithm{Name: name, Size: newFn().Size(), New: newFn}
	aliases[strip(name)] = name
}

func unkeyed(newFn func([]byte) (hash.Hash, error)) func() hash.Hash {
	return func() hash.Hash {
		h, err := newFn(nil)
		if err != nil {
			panic(err)
		}
		return h
	}
}

func init() {
	register("md4", md4.New)
	register("md5", md5.New)
	register("sha1", sha1.New)
	register("sha224", sha256.New224)
	register("sha256", sha256.New)
	register("sha384", sha512.New384)
	register("sha512", sha512.New)
	register("sha512_224", sha512.New512_224)
	register("sha512_256", sha512.New512_256)
	register("sha3_224", sha3.New224)
	register("sha3_256", sha3.New256)
	register("sha3_384", sha3.New384)
	register("sha3_512", sha3.New512)
	register("blake2b_256", unkeyed(blake2b.New256))
	register("blake2b_512", unkeyed(blake2b.New512))
	register("blake2s_256", unkeyed(blake2s.New256))
	register("ripemd160", ripemd160.New)
}

var separators = strings.NewReplacer("-", "", "_", "", "/", "", " ", "")

func strip(name string) string {
	return separators.Replace(strings.ToLower(name))
}

// Lookup resolves an algorithm identifier. Names are case-insensitive and
// separators are ignored, so "SHA-512/256" resolves to sha512_256.
func Lookup(name string) (*Algorithm, error) {
	if key, ok := aliases[strip(name)]; ok {
		return registry[key], nil
	}
	return nil, errors.Wrapf(ErrUnsupportedAlgorithm, "%q (known: %s)", name, strings.Join(List(), ", "))
}

// List returns the canonical algorithm names in sorted order.
func List() []string {
	out := make([]string, 0, len(registry))
	for k := range registry {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
