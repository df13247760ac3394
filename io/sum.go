// Copyright © 2021 Optable Technologies Inc. All rights reserved.
// See LICENSE for details.
package io

import (
	"context"
	"io"
	"runtime"
	"sort"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/optable/bytesize/errors"
	"github.com/optable/bytesize/size"
)

// SumChunks parses and adds the sizes of a newline delimited stream using
// up to workers goroutines, one chunk at a time each. workers <= 0 means
// GOMAXPROCS. Exact addition is associative, so the result equals Sum over
// the same stream.
//
// Malformed lines do not stop the scan: their *errors.PositionalError, with
// 1-based line numbers, are returned sorted by line alongside the sum of the
// well formed lines. Stream and context errors abort and are returned alone.
func SumChunks(ctx context.Context, chunker ChunkReader, parser *size.Parser, workers int) (size.Size, error) {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	g, ctx := errgroup.WithContext(ctx)
	chunks := make(chan *Chunk, workers)

	g.Go(func() error {
		defer close(chunks)
		for {
			chunk, err := chunker.NextChunk()
			if errors.Is(err, io.EOF) {
				return nil
			}
			if err != nil {
				return err
			}

			select {
			case chunks <- chunk:
			case <-ctx.Done():
				return ctx.Err()
			}
		}
	})

	var (
		mu    sync.Mutex
		total size.Size
		errs  []error
	)
	for i := 0; i < workers; i++ {
		g.Go(func() error {
			for chunk := range chunks {
				r := NewSizeReader(chunk.Frames(), Text, parser)
				r.pos = chunk.Line

				var chunkErrs []error
				sum, err := Sum(r)
				if err != nil {
					var many *errors.Errors
					switch {
					case errors.As(err, &many):
						chunkErrs = many.Errors()
					case isPositional(err):
						chunkErrs = []error{err}
					default:
						return err
					}
				}

				mu.Lock()
				total = total.Add(sum)
				errs = append(errs, chunkErrs...)
				mu.Unlock()

				if err := ctx.Err(); err != nil {
					return err
				}
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return size.Size{}, err
	}

	sort.Slice(errs, func(i, j int) bool {
		return position(errs[i]) < position(errs[j])
	})
	return total, errors.NewErrors(errs...)
}

func isPositional(err error) bool {
	var posErr *errors.PositionalError
	return errors.As(err, &posErr)
}

func position(err error) int {
	var posErr *errors.PositionalError
	if errors.As(err, &posErr) {
		return posErr.Position()
	}
	return 0
}
