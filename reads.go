package fastxgz

import "iter"

// Reads are byte slices that are never modified after being yielded; callers
// may keep them.

// SimpleFastaReads reads strict two-line FASTA records: a header line followed
// by exactly one sequence line. Wrapped sequences come out misaligned.
func SimpleFastaReads(lines iter.Seq[Line]) iter.Seq[[]byte] {
	return func(yield func([]byte) bool) {
		n := 0
		for line := range lines {
			n++
			if n%2 == 1 {
				continue
			}
			if !yield(line.Retain().Bytes()) {
				return
			}
		}
	}
}

// FastaReads reads FASTA records whose sequence may span several lines. A read
// is every line between one header and the next header or the end of input,
// joined together. The first line of the input is taken as a header whatever
// it holds; after that only a leading '>' ends a record.
func FastaReads(lines iter.Seq[Line]) iter.Seq[[]byte] {
	return func(yield func([]byte) bool) {
		var (
			started bool
			parts   []Line
			total   int
		)
		flush := func() bool {
			read := make([]byte, 0, total)
			for _, p := range parts {
				read = append(read, p.Bytes()...)
			}
			clear(parts)
			parts, total = parts[:0], 0
			return yield(read)
		}
		for line := range lines {
			if !started {
				started = true
				continue
			}
			if line.IsHeader() {
				if !flush() {
					return
				}
				continue
			}
			parts = append(parts, line.Retain())
			total += line.Len()
		}
		if started {
			flush()
		}
	}
}

// LegacyFastaReads drops every header line and yields every other line as a
// read. It agrees with FastaReads only when no sequence is wrapped.
func LegacyFastaReads(lines iter.Seq[Line]) iter.Seq[[]byte] {
	return func(yield func([]byte) bool) {
		for line := range lines {
			if line.IsHeader() {
				continue
			}
			if !yield(line.Retain().Bytes()) {
				return
			}
		}
	}
}

// FastqReads reads four-line FASTQ records and yields the sequence line of
// each. The separator and quality lines are not checked.
func FastqReads(lines iter.Seq[Line]) iter.Seq[[]byte] {
	return func(yield func([]byte) bool) {
		var (
			n   int
			seq Line
		)
		for line := range lines {
			switch n % 4 {
			case 1:
				seq = line.Retain()
			case 3:
				if !yield(seq.Bytes()) {
					return
				}
			}
			n++
		}
	}
}
