package fastxgz

import (
	"errors"
	"fmt"
	"iter"

	"github.com/cespare/xxhash/v2"
	"github.com/zeebo/xxh3"
)

// ErrUnknownHash is returned by ParseHashFunc for names it does not know.
var ErrUnknownHash = errors.New("unknown hash function")

// Hash is the 64-bit fingerprint of a k-mer.
type Hash uint64

// String renders the hash as 16 hex digits.
func (h Hash) String() string {
	return fmt.Sprintf("%016x", uint64(h))
}

// AppendHex appends the 16 hex digit form of h to b.
func (h Hash) AppendHex(b []byte) []byte {
	return fmt.Appendf(b, "%016x", uint64(h))
}

// HashFunc maps k-mer bytes to a 64-bit value.
type HashFunc func([]byte) uint64

var (
	// XXH3 is the seedless 64-bit XXH3 hash. Hashes uses it.
	XXH3 HashFunc = xxh3.Hash
	// XXH64 is the seedless XXH64 hash.
	XXH64 HashFunc = xxhash.Sum64
)

// ParseHashFunc returns the hash function called name ("xxh3" or "xxh64").
func ParseHashFunc(name string) (HashFunc, error) {
	switch name {
	case "xxh3", "":
		return XXH3, nil
	case "xxh64":
		return XXH64, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownHash, name)
}

// Sum returns the XXH3-64 hash of kmer.
func Sum(kmer []byte) Hash {
	return Hash(xxh3.Hash(kmer))
}

// Hashes maps every k-mer to its XXH3-64 hash.
func Hashes(kmers iter.Seq[[]byte]) iter.Seq[Hash] {
	return HashesWith(kmers, XXH3)
}

// MakeHashes is an alias of Hashes.
func MakeHashes(kmers iter.Seq[[]byte]) iter.Seq[Hash] {
	return Hashes(kmers)
}

// HashesWith maps every k-mer to fn of its bytes.
func HashesWith(kmers iter.Seq[[]byte], fn HashFunc) iter.Seq[Hash] {
	return func(yield func(Hash) bool) {
		for kmer := range kmers {
			if !yield(Hash(fn(kmer))) {
				return
			}
		}
	}
}
