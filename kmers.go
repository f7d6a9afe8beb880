package fastxgz

import (
	"iter"
	"unicode/utf8"
)

type kmerConfig struct {
	dropFinal bool
}

// KmerOption configures Kmers.
type KmerOption func(*kmerConfig)

// WithFinalWindowDropped skips the last window of every read, so a read of
// length L yields L-k k-mers and a read exactly k long yields none. This is
// the boundary used by earlier releases; keep it when output must match
// hashes computed with them.
func WithFinalWindowDropped() KmerOption {
	return func(c *kmerConfig) {
		c.dropFinal = true
	}
}

// Kmers slides a window of k characters over each read, one position at a
// time, and yields every window from left to right. A window never spans two
// reads; reads shorter than k yield nothing.
//
// The k-mers are sub-slices of the reads and share their memory. k must be at
// least 1: k == 0 yields an empty k-mer at every position, and a negative k
// yields nothing.
func Kmers(reads iter.Seq[[]byte], k int, opts ...KmerOption) iter.Seq[[]byte] {
	var cfg kmerConfig
	for _, opt := range opts {
		opt(&cfg)
	}
	return func(yield func([]byte) bool) {
		if k < 0 {
			return
		}
		var offs []int
		for read := range reads {
			n := len(read)
			ascii := isASCII(read)
			if !ascii {
				offs = runeOffsets(offs[:0], read)
				n = len(offs) - 1
			}
			last := n - k
			if cfg.dropFinal {
				last--
			}
			for i := 0; i <= last; i++ {
				var kmer []byte
				if ascii {
					kmer = read[i : i+k : i+k]
				} else {
					kmer = read[offs[i]:offs[i+k]:offs[i+k]]
				}
				if !yield(kmer) {
					return
				}
			}
		}
	}
}

// MakeKmers is Kmers with the default window boundary.
func MakeKmers(reads iter.Seq[[]byte], k int) iter.Seq[[]byte] {
	return Kmers(reads, k)
}

func isASCII(b []byte) bool {
	for _, c := range b {
		if c >= utf8.RuneSelf {
			return false
		}
	}
	return true
}

// runeOffsets appends the byte offset of every rune in b, then len(b).
func runeOffsets(dst []int, b []byte) []int {
	for i := 0; i < len(b); {
		dst = append(dst, i)
		_, size := utf8.DecodeRune(b[i:])
		i += size
	}
	return append(dst, len(b))
}
