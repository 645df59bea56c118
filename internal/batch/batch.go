// Package batch runs document parses in fixed-size concurrent chunks.
package batch

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/Mazosolution/mazo-parser/internal/textract"
	"github.com/Mazosolution/mazo-parser/internal/utils"
)

const (
	// DefaultChunkSize caps how many files are parsed concurrently.
	DefaultChunkSize = 10
	defaultPause     = time.Second
)

// ParseFunc turns one file into a parsed value.
type ParseFunc[T any] func(ctx context.Context, file textract.File) (T, error)

// ProgressFunc receives a monotonic completion percentage, ending at 100.
type ProgressFunc func(percent int)

// Stats accounts for what happened to a batch.
type Stats struct {
	Initial int
	Failed  int
	Parsed  int
}

func (s Stats) Summary() string {
	return fmt.Sprintf("%d of %d parsed", s.Parsed, s.Initial)
}

// Orchestrator walks a file list chunk by chunk. Every file in a chunk is
// parsed concurrently and the chunk settles fully before the next one starts.
// A failed file is logged and dropped without touching its siblings.
type Orchestrator[T any] struct {
	logger    *zap.Logger
	chunkSize int
	pause     time.Duration
}

func New[T any](log *zap.Logger) *Orchestrator[T] {
	return &Orchestrator[T]{
		logger:    log,
		chunkSize: DefaultChunkSize,
		pause:     defaultPause,
	}
}

// Run parses files and returns the successful results. The only returned
// error is a cancelled context; per-file errors stay inside the stats.
func (o *Orchestrator[T]) Run(ctx context.Context, files []textract.File, parse ParseFunc[T], progress ProgressFunc) ([]T, Stats, error) {
	total := len(files)
	stats := Stats{Initial: total}
	if total == 0 {
		report(progress, 100)
		return nil, stats, nil
	}

	type outcome struct {
		value T
		name  string
		err   error
	}

	results := make([]T, 0, total)
	for start := 0; start < total; start += o.chunkSize {
		end := min(start+o.chunkSize, total)
		chunk := files[start:end]

		out := make(chan outcome, len(chunk))
		var wg sync.WaitGroup
		for _, file := range chunk {
			wg.Add(1)
			go func() {
				defer wg.Done()
				value, err := parse(ctx, file)
				out <- outcome{value: value, name: file.Name, err: err}
			}()
		}
		wg.Wait()
		close(out)

		for res := range out {
			if res.err != nil {
				stats.Failed++
				o.logger.Warn("file dropped from batch",
					zap.String("file", res.name),
					zap.Error(res.err),
				)
				continue
			}
			results = append(results, res.value)
		}

		report(progress, end*100/total)

		if end < total {
			if err := utils.WaitFor(ctx, o.pause); err != nil {
				stats.Parsed = len(results)
				return results, stats, err
			}
		}
	}

	stats.Parsed = len(results)
	return results, stats, nil
}

func report(progress ProgressFunc, percent int) {
	if progress != nil {
		progress(percent)
	}
}
