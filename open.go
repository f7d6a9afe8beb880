package fastxgz

import (
	"errors"
	"fmt"
	"iter"
	"strings"
)

// ErrUnknownFormat is returned by ParseFormat for names it does not know.
var ErrUnknownFormat = errors.New("unknown sequence format")

// Format is the record layout of a sequence file. It is chosen by the caller;
// files are never sniffed for it.
type Format int

const (
	// FASTA records may wrap their sequence over several lines.
	FASTA Format = iota
	// SimpleFASTA records are exactly one header and one sequence line.
	SimpleFASTA
	// FASTQ records are header, sequence, separator and quality lines.
	FASTQ
)

func (f Format) String() string {
	switch f {
	case FASTA:
		return "fasta"
	case SimpleFASTA:
		return "fasta-simple"
	case FASTQ:
		return "fastq"
	}
	return fmt.Sprintf("Format(%d)", int(f))
}

// ParseFormat returns the Format called name.
func ParseFormat(name string) (Format, error) {
	switch strings.ToLower(name) {
	case "fasta", "fa":
		return FASTA, nil
	case "fasta-simple", "simple-fasta":
		return SimpleFASTA, nil
	case "fastq", "fq":
		return FASTQ, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownFormat, name)
}

// Reads returns the read extractor for f.
func (f Format) Reads(lines iter.Seq[Line]) iter.Seq[[]byte] {
	switch f {
	case SimpleFASTA:
		return SimpleFastaReads(lines)
	case FASTQ:
		return FastqReads(lines)
	}
	return FastaReads(lines)
}

// Stream is a sequence backed by an open file. It can be ranged over once
// and must be closed.
type Stream[T any] struct {
	seq iter.Seq[T]
	src *LineSource
}

// All returns the sequence.
func (s *Stream[T]) All() iter.Seq[T] {
	return s.seq
}

// Close closes the file behind the stream.
func (s *Stream[T]) Close() error {
	return s.src.Close()
}

// Codec reports how the file behind the stream is decoded.
func (s *Stream[T]) Codec() Codec {
	return s.src.Codec()
}

// OpenLines opens path as a stream of lines. Lines are only valid until the
// next one is pulled unless retained.
func OpenLines(path string) (*Stream[Line], error) {
	src, err := OpenLineSource(path)
	if err != nil {
		return nil, err
	}
	return &Stream[Line]{seq: Lines(src), src: src}, nil
}

// OpenReads opens path as a stream of reads laid out as f.
func OpenReads(path string, f Format) (*Stream[[]byte], error) {
	src, err := OpenLineSource(path)
	if err != nil {
		return nil, err
	}
	return &Stream[[]byte]{seq: f.Reads(Lines(src)), src: src}, nil
}

// OpenFastqReads opens a FASTQ file as a stream of reads.
func OpenFastqReads(path string) (*Stream[[]byte], error) {
	return OpenReads(path, FASTQ)
}

// OpenFastaReads opens a FASTA file, possibly wrapped, as a stream of reads.
func OpenFastaReads(path string) (*Stream[[]byte], error) {
	return OpenReads(path, FASTA)
}

// OpenSimpleFastaReads opens a FASTA file with unwrapped sequences as a stream
// of reads.
func OpenSimpleFastaReads(path string) (*Stream[[]byte], error) {
	return OpenReads(path, SimpleFASTA)
}
