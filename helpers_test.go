package fastxgz

import (
	"fmt"
	"iter"
	"math/rand/v2"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/klauspost/compress/gzip"
	"github.com/stretchr/testify/require"
)

// writeFile writes data under a temp dir, gzipping it when name ends in ".gz".
func writeFile(t *testing.T, name, data string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	fh, err := os.Create(path)
	require.NoError(t, err)
	if strings.HasSuffix(name, ".gz") {
		gw := gzip.NewWriter(fh)
		_, err = gw.Write([]byte(data))
		require.NoError(t, err)
		require.NoError(t, gw.Close())
	} else {
		_, err = fh.WriteString(data)
		require.NoError(t, err)
	}
	require.NoError(t, fh.Close())
	return path
}

func seqOf(reads ...string) iter.Seq[[]byte] {
	return func(yield func([]byte) bool) {
		for _, r := range reads {
			if !yield([]byte(r)) {
				return
			}
		}
	}
}

func linesOf(data string) iter.Seq[Line] {
	return Lines(NewLineSource(strings.NewReader(data)))
}

func collect(seq iter.Seq[[]byte]) []string {
	out := []string{}
	for b := range seq {
		out = append(out, string(b))
	}
	return out
}

// randomReads returns n reads of random length in [minLen, maxLen).
func randomReads(n, minLen, maxLen int) []string {
	rng := rand.New(rand.NewPCG(7, 11))
	reads := make([]string, n)
	for i := range reads {
		b := make([]byte, minLen+rng.IntN(maxLen-minLen))
		for j := range b {
			b[j] = "ACGT"[rng.IntN(4)]
		}
		reads[i] = string(b)
	}
	return reads
}

// fastaText lays reads out as FASTA, wrapping at width (0 = no wrap).
func fastaText(reads []string, width int) string {
	var sb strings.Builder
	for i, r := range reads {
		fmt.Fprintf(&sb, ">read%d some description\n", i)
		if width <= 0 {
			sb.WriteString(r)
			sb.WriteByte('\n')
			continue
		}
		for len(r) > width {
			sb.WriteString(r[:width])
			sb.WriteByte('\n')
			r = r[width:]
		}
		sb.WriteString(r)
		sb.WriteByte('\n')
	}
	return sb.String()
}

func fastqText(reads []string) string {
	var sb strings.Builder
	for i, r := range reads {
		fmt.Fprintf(&sb, "@read%d\n%s\n+\n%s\n", i, r, strings.Repeat("I", len(r)))
	}
	return sb.String()
}
