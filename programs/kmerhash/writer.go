package main

import (
	"sync"

	"github.com/shenwei356/xopen"
)

// RecordWriter writes newline-terminated records in an async fashion.
// It may be shared by several pipelines. Call Close() when you're done!
type RecordWriter struct {
	mu      sync.Mutex
	writer  *xopen.Writer
	cache   [][]byte
	records chan [][]byte
	done    chan error
}

// Write queues record. The bytes must not change afterwards.
func (w *RecordWriter) Write(record []byte) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.cache = append(w.cache, record)
	if cap(w.cache) == len(w.cache) {
		w.flush()
	}
}

// Close flushes what is left and returns the first write error.
func (w *RecordWriter) Close() error {
	w.mu.Lock()
	w.flush()
	close(w.records)
	w.mu.Unlock()
	return <-w.done
}

func (w *RecordWriter) flush() {
	if len(w.cache) == 0 {
		return
	}
	w.records <- w.cache
	// the writer goroutine still owns the batch just sent
	w.cache = make([][]byte, 0, cap(w.cache))
}

// NewRecordWriter creates a nice new writer, gzipped when filename ends
// in ".gz" and stdout for "-".
// cachesize: How many records to buffer at a time
func NewRecordWriter(filename string, cachesize int) (*RecordWriter, error) {

	writer, err := xopen.Wopen(filename)
	if err != nil {
		return nil, err
	}

	w := RecordWriter{
		cache:   make([][]byte, 0, cachesize),
		records: make(chan [][]byte), // unbuffered
		done:    make(chan error, 1),
		writer:  writer,
	}

	go func(w *RecordWriter) {
		writer := w.writer
		var err error
		for records := range w.records {
			if err != nil {
				continue
			}
			for _, record := range records {
				if _, err = writer.Write(record); err != nil {
					break
				}
				if err = writer.WriteByte('\n'); err != nil {
					break
				}
			}
		}
		if cerr := writer.Close(); err == nil {
			err = cerr
		}
		w.done <- err
	}(&w)
	return &w, nil
}
