package main

import (
	"context"
	"errors"
	"fmt"
	"iter"
	"strconv"

	"github.com/Altius/fastxgz"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const (
	cacheSize  = 1024
	checkEvery = 4096 // records between context checks
)

// pipeline is the parsed form of a Config, shared by every input.
type pipeline struct {
	format fastxgz.Format
	hash   fastxgz.HashFunc
	k      int
	emit   string
	opts   []fastxgz.KmerOption
}

func newPipeline(config *Config) (*pipeline, error) {
	format, err := fastxgz.ParseFormat(config.Format)
	if err != nil {
		return nil, err
	}
	hash, err := fastxgz.ParseHashFunc(config.Hash)
	if err != nil {
		return nil, err
	}
	p := &pipeline{format: format, hash: hash, k: config.K, emit: config.Emit}
	if config.DropFinalWindow {
		p.opts = append(p.opts, fastxgz.WithFinalWindowDropped())
	}
	return p, nil
}

func run(ctx context.Context, config *Config, logger *zap.Logger) (err error) {
	p, err := newPipeline(config)
	if err != nil {
		return err
	}

	// Open all outputs!
	destinations := make(map[string]*RecordWriter)
	fileLookup := make(map[string]*RecordWriter)
	defer func() {
		for filename, w := range fileLookup {
			if cerr := w.Close(); cerr != nil {
				err = errors.Join(err, fmt.Errorf("close %s: %w", filename, cerr))
			}
		}
	}()
	for _, input := range config.Inputs {
		filename := config.destination(input)

		// Check if it's already open!
		if w, opened := fileLookup[filename]; opened {
			destinations[input] = w
			continue
		}
		w, err := NewRecordWriter(filename, cacheSize)
		if err != nil {
			return fmt.Errorf("open output %s: %w", filename, err)
		}
		destinations[input] = w
		fileLookup[filename] = w
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(max(config.Threads, 1))
	for _, input := range config.Inputs {
		w := destinations[input]
		g.Go(func() error {
			n, err := p.process(ctx, input, w)
			if err != nil {
				logger.Error("input failed", zap.String("input", input), zap.Error(err))
				return fmt.Errorf("%s: %w", input, err)
			}
			logger.Info("input done",
				zap.String("input", input),
				zap.String("output", config.destination(input)),
				zap.String("emit", p.emit),
				zap.Int("records", n))
			return nil
		})
	}
	return g.Wait()
}

// process runs one input through the pipeline and returns how many records
// it produced. A read error in the middle of the file comes back as an error.
func (p *pipeline) process(ctx context.Context, input string, w *RecordWriter) (n int, err error) {
	defer fastxgz.RecoverIO(&err)

	if p.emit == emitLines {
		lines, err := fastxgz.OpenLines(input)
		if err != nil {
			return 0, err
		}
		defer lines.Close()
		return drain(ctx, lines.All(), func(l fastxgz.Line) {
			w.Write(l.Retain().Bytes())
		})
	}

	reads, err := fastxgz.OpenReads(input, p.format)
	if err != nil {
		return 0, err
	}
	defer reads.Close()

	switch p.emit {
	case emitReads:
		return drain(ctx, reads.All(), w.Write)
	case emitKmers:
		return drain(ctx, fastxgz.Kmers(reads.All(), p.k, p.opts...), w.Write)
	case emitHashes:
		hashes := fastxgz.HashesWith(fastxgz.Kmers(reads.All(), p.k, p.opts...), p.hash)
		return drain(ctx, hashes, func(h fastxgz.Hash) {
			w.Write(h.AppendHex(make([]byte, 0, 16)))
		})
	case emitCount:
		hashes := fastxgz.HashesWith(fastxgz.Kmers(reads.All(), p.k, p.opts...), p.hash)
		n, err := drain(ctx, hashes, func(fastxgz.Hash) {})
		if err != nil {
			return n, err
		}
		w.Write(strconv.AppendInt([]byte(input+"\t"), int64(n), 10))
		return n, nil
	}
	return 0, fmt.Errorf("unknown emit mode %q", p.emit)
}

func drain[T any](ctx context.Context, seq iter.Seq[T], emit func(T)) (int, error) {
	n := 0
	for v := range seq {
		emit(v)
		n++
		if n%checkEvery == 0 {
			if err := ctx.Err(); err != nil {
				return n, err
			}
		}
	}
	return n, nil
}
