package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"testing"

	"github.com/Altius/fastxgz"
	"github.com/klauspost/compress/gzip"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const fastq = "@r1\nACGTACGTAC\n+\nIIIIIIIIII\n@r2\nGGCCA\n+\n#####\n@r3\nTT\n+\nII\n"

func writeInput(t *testing.T, dir, name, data string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	fh, err := os.Create(path)
	require.NoError(t, err)
	var w io.Writer = fh
	var gw *gzip.Writer
	if strings.HasSuffix(name, ".gz") {
		gw = gzip.NewWriter(fh)
		w = gw
	}
	_, err = io.WriteString(w, data)
	require.NoError(t, err)
	if gw != nil {
		require.NoError(t, gw.Close())
	}
	require.NoError(t, fh.Close())
	return path
}

func readOutput(t *testing.T, path string) []string {
	t.Helper()
	fh, err := os.Open(path)
	require.NoError(t, err)
	defer fh.Close()
	var r io.Reader = fh
	if strings.HasSuffix(path, ".gz") {
		gr, err := gzip.NewReader(fh)
		require.NoError(t, err)
		defer gr.Close()
		r = gr
	}
	var out []string
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		out = append(out, sc.Text())
	}
	require.NoError(t, sc.Err())
	return out
}

func TestRunPlainAndGzipOutputsAgree(t *testing.T) {
	dir := t.TempDir()
	plain := writeInput(t, dir, "reads.fq", fastq)
	gz := writeInput(t, dir, "reads.fq.gz", fastq)

	c := defaultConfig()
	c.Inputs = []string{plain, gz}
	c.Destinations = map[string]string{
		plain: filepath.Join(dir, "plain.txt"),
		gz:    filepath.Join(dir, "gz.txt.gz"),
	}
	c.Format = "fastq"
	c.K = 4
	c.Threads = 2
	require.NoError(t, c.validate())
	require.NoError(t, run(context.Background(), &c, zap.NewNop()))

	got := readOutput(t, c.Destinations[plain])
	assert.Equal(t, got, readOutput(t, c.Destinations[gz]))

	var want []string
	for h := range fastxgz.Hashes(fastxgz.Kmers(seqOf("ACGTACGTAC", "GGCCA"), 4)) {
		want = append(want, h.String())
	}
	assert.Equal(t, want, got)
	assert.Len(t, got, 7+2)
}

func TestRunEmitModes(t *testing.T) {
	dir := t.TempDir()
	input := writeInput(t, dir, "reads.fq", fastq)

	type test struct {
		emit      string
		dropFinal bool
		want      []string
	}
	tests := []test{
		{emitLines, false, strings.Split(strings.TrimSuffix(fastq, "\n"), "\n")},
		{emitReads, false, []string{"ACGTACGTAC", "GGCCA", "TT"}},
		{emitKmers, false, []string{"ACGTACGT", "CGTACGTA", "GTACGTAC"}},
		{emitKmers, true, []string{"ACGTACGT", "CGTACGTA"}},
		{emitCount, false, []string{fmt.Sprintf("%s\t3", input)}},
	}
	for _, test := range tests {
		t.Run(fmt.Sprintf("%s-%v", test.emit, test.dropFinal), func(t *testing.T) {
			c := defaultConfig()
			c.Inputs = []string{input}
			c.Output = filepath.Join(t.TempDir(), "out.txt")
			c.Format = "fastq"
			c.K = 8
			c.Emit = test.emit
			c.DropFinalWindow = test.dropFinal
			require.NoError(t, c.validate())
			require.NoError(t, run(context.Background(), &c, zap.NewNop()))
			assert.Equal(t, test.want, readOutput(t, c.Output))
		})
	}
}

func TestRunSharedDestination(t *testing.T) {
	dir := t.TempDir()
	a := writeInput(t, dir, "a.fa", ">a\nACGT\nACGT\n")
	b := writeInput(t, dir, "b.fa.gz", ">b\nAAAAA\n>c\nCC\n")

	c := defaultConfig()
	c.Inputs = []string{a, b}
	c.Output = filepath.Join(dir, "counts.tsv.gz")
	c.Emit = emitCount
	c.K = 3
	c.Threads = 2
	require.NoError(t, c.validate())
	require.NoError(t, run(context.Background(), &c, zap.NewNop()))

	got := readOutput(t, c.Output)
	sort.Strings(got)
	want := []string{a + "\t6", b + "\t3"}
	sort.Strings(want)
	assert.Equal(t, want, got)
}

func TestRunMissingInput(t *testing.T) {
	dir := t.TempDir()
	c := defaultConfig()
	c.Inputs = []string{filepath.Join(dir, "missing.fa")}
	c.Output = filepath.Join(dir, "out.txt")
	require.NoError(t, c.validate())
	err := run(context.Background(), &c, zap.NewNop())
	assert.ErrorIs(t, err, fs.ErrNotExist)
}

func TestRunCanceled(t *testing.T) {
	dir := t.TempDir()
	var sb strings.Builder
	for i := range 2000 {
		fmt.Fprintf(&sb, ">r%d\n%s\n", i, strings.Repeat("ACGT", 10))
	}
	input := writeInput(t, dir, "big.fa", sb.String())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	c := defaultConfig()
	c.Inputs = []string{input}
	c.Output = filepath.Join(dir, "out.txt")
	c.K = 4
	require.NoError(t, c.validate())
	err := run(ctx, &c, zap.NewNop())
	assert.ErrorIs(t, err, context.Canceled)
}

func seqOf(reads ...string) func(func([]byte) bool) {
	return func(yield func([]byte) bool) {
		for _, r := range reads {
			if !yield([]byte(r)) {
				return
			}
		}
	}
}
