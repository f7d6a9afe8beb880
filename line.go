package fastxgz

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/klauspost/compress/gzip"
	"github.com/shenwei356/xopen"
)

const (
	lineBufSize = 1024
	readerSize  = 64 << 10
)

// Codec is the decoding path chosen once when a LineSource is opened.
type Codec int

const (
	// Plain reads the file bytes as they are.
	Plain Codec = iota
	// Gzip decompresses the file, selected by a ".gz" extension.
	Gzip
	// Detect is used for standard input, where there is no extension to
	// look at and the compression is sniffed from the stream.
	Detect
)

func (c Codec) String() string {
	switch c {
	case Plain:
		return "plain"
	case Gzip:
		return "gzip"
	case Detect:
		return "detect"
	}
	return fmt.Sprintf("Codec(%d)", int(c))
}

// CodecFor picks the decoding path for path from its extension alone.
func CodecFor(path string) Codec {
	if path == "-" {
		return Detect
	}
	if filepath.Ext(path) == ".gz" {
		return Gzip
	}
	return Plain
}

type lineBuffer struct {
	b      []byte
	shared bool
}

func newLineBuffer() *lineBuffer {
	return &lineBuffer{b: make([]byte, 0, lineBufSize)}
}

// Line is one line of input with its trailing '\n' removed.
//
// The bytes belong to the LineSource that produced the line and are
// overwritten by its next pull. Call Retain to keep them longer: the source
// then leaves the buffer alone and allocates a new one.
type Line struct {
	buf *lineBuffer
}

// Bytes returns the line content.
func (l Line) Bytes() []byte {
	if l.buf == nil {
		return nil
	}
	return l.buf.b
}

// String returns a copy of the line content.
func (l Line) String() string {
	return string(l.Bytes())
}

// Len returns the length of the line in bytes.
func (l Line) Len() int {
	return len(l.Bytes())
}

// IsHeader reports whether the line begins a FASTA record.
func (l Line) IsHeader() bool {
	b := l.Bytes()
	return len(b) > 0 && b[0] == '>'
}

// Retain marks the line as still referenced, so its bytes stay valid after
// later pulls on the source.
func (l Line) Retain() Line {
	if l.buf != nil {
		l.buf.shared = true
	}
	return l
}

// LineSource reads a byte stream one line at a time. It is not safe for
// concurrent use.
type LineSource struct {
	r       *bufio.Reader
	closers []io.Closer
	codec   Codec
	buf     *lineBuffer
	closed  bool
}

// NewLineSource returns a plain LineSource over r. Closing it does not close r.
func NewLineSource(r io.Reader) *LineSource {
	return &LineSource{
		r:     bufio.NewReaderSize(r, readerSize),
		codec: Plain,
		buf:   newLineBuffer(),
	}
}

// OpenLineSource opens path for reading lines, decompressing it when the
// extension is ".gz". The path "-" reads standard input.
func OpenLineSource(path string) (*LineSource, error) {
	codec := CodecFor(path)
	if codec == Detect {
		xr, err := xopen.Ropen(path)
		if err != nil {
			return nil, fmt.Errorf("open stdin: %w", err)
		}
		return &LineSource{
			r:       bufio.NewReaderSize(xr, readerSize),
			closers: []io.Closer{xr},
			codec:   codec,
			buf:     newLineBuffer(),
		}, nil
	}

	fh, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	var r io.Reader = fh
	closers := []io.Closer{fh}
	if codec == Gzip {
		gr, err := gzip.NewReader(fh)
		if err != nil {
			_ = fh.Close()
			return nil, fmt.Errorf("open %s: %w", path, err)
		}
		r = gr
		closers = []io.Closer{gr, fh}
	}
	return &LineSource{
		r:       bufio.NewReaderSize(r, readerSize),
		closers: closers,
		codec:   codec,
		buf:     newLineBuffer(),
	}, nil
}

// Codec reports how the source decodes its input.
func (s *LineSource) Codec() Codec {
	return s.codec
}

// Next returns the next line. It returns io.EOF when there are no more lines;
// any other error is a read failure for this call, and the source should not
// be used afterwards.
func (s *LineSource) Next() (Line, error) {
	if s.buf.shared {
		s.buf = newLineBuffer()
	} else {
		s.buf.b = s.buf.b[:0]
	}
	for {
		chunk, err := s.r.ReadSlice('\n')
		s.buf.b = append(s.buf.b, chunk...)
		switch {
		case err == nil:
			s.buf.b = s.buf.b[:len(s.buf.b)-1]
			return Line{buf: s.buf}, nil
		case errors.Is(err, bufio.ErrBufferFull):
			continue
		case errors.Is(err, io.EOF):
			if len(s.buf.b) == 0 {
				return Line{}, io.EOF
			}
			return Line{buf: s.buf}, nil
		default:
			return Line{}, err
		}
	}
}

// Close releases the decoder and the underlying file.
func (s *LineSource) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true
	var err error
	for _, c := range s.closers {
		if cerr := c.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}
	return err
}
