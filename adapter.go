package fastxgz

import (
	"errors"
	"fmt"
	"io"
	"iter"
)

// ErrLineIO is wrapped by the value Lines panics with when its source fails.
var ErrLineIO = errors.New("a line could not be read due to an IO error")

// LineReader is the pull side of a line source.
type LineReader interface {
	Next() (Line, error)
}

// Lines turns src into a sequence of lines that ends at io.EOF.
//
// A read error is not recoverable past this point: Lines panics with an error
// wrapping ErrLineIO and the cause. Callers at the program boundary can turn
// it back into an error with RecoverIO.
func Lines(src LineReader) iter.Seq[Line] {
	return func(yield func(Line) bool) {
		for {
			line, err := src.Next()
			if errors.Is(err, io.EOF) {
				return
			}
			if err != nil {
				panic(fmt.Errorf("%w: %w", ErrLineIO, err))
			}
			if !yield(line) {
				return
			}
		}
	}
}

// RecoverIO stores a panic raised by Lines into *errp. Use it deferred.
// Any other panic is raised again.
func RecoverIO(errp *error) {
	r := recover()
	if r == nil {
		return
	}
	if err, ok := r.(error); ok && errors.Is(err, ErrLineIO) {
		*errp = err
		return
	}
	panic(r)
}
