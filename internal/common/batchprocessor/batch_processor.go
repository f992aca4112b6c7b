// Package batchprocessor runs indexed work items on a bounded worker pool.
package batchprocessor

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// BatchProcessorConfig holds configuration for batch processing
type BatchProcessorConfig struct {
	MaxConcurrent int // Max items processed at once (default: 8)
}

// DefaultBatchProcessorConfig returns default configuration
func DefaultBatchProcessorConfig() BatchProcessorConfig {
	return BatchProcessorConfig{
		MaxConcurrent: 8,
	}
}

// ItemResult holds the outcome of one item
type ItemResult struct {
	Index    int
	Success  bool
	Error    error
	Duration time.Duration
}

// BatchProcessor processes indexed items with bounded concurrency
type BatchProcessor struct {
	config BatchProcessorConfig
	logger zerolog.Logger
}

// NewBatchProcessor creates a new batch processor
func NewBatchProcessor(config BatchProcessorConfig, logger zerolog.Logger) *BatchProcessor {
	if config.MaxConcurrent <= 0 {
		config.MaxConcurrent = DefaultBatchProcessorConfig().MaxConcurrent
	}
	return &BatchProcessor{
		config: config,
		logger: logger.With().Str("component", "BatchProcessor").Logger(),
	}
}

// ProcessFunc processes the item at index
type ProcessFunc func(ctx context.Context, index int) error

// Process runs processFunc for indexes 0..total-1. A failing item does not stop
// the others. When ctx is cancelled no further items are started; the results
// of started items are returned together with ctx.Err(). A panic inside
// processFunc is re-raised on the calling goroutine once all started items
// have finished.
func (bp *BatchProcessor) Process(ctx context.Context, total int, processFunc ProcessFunc) ([]ItemResult, error) {
	if total <= 0 {
		return nil, nil
	}

	bp.logger.Debug().
		Int("total_items", total).
		Int("max_concurrent", bp.config.MaxConcurrent).
		Msg("Starting batch processing")

	semaphore := make(chan struct{}, bp.config.MaxConcurrent)
	results := make([]ItemResult, total)
	var wg sync.WaitGroup
	var panicOnce sync.Once
	var panicValue any
	panicked := false

	started := 0
	var cancelErr error
schedule:
	for i := 0; i < total; i++ {
		select {
		case <-ctx.Done():
			cancelErr = ctx.Err()
			break schedule
		case semaphore <- struct{}{}:
		}
		if err := ctx.Err(); err != nil {
			<-semaphore
			cancelErr = err
			break
		}

		started++
		wg.Add(1)
		go func(index int) {
			defer wg.Done()
			defer func() { <-semaphore }()
			defer func() {
				if r := recover(); r != nil {
					panicOnce.Do(func() {
						panicValue = r
						panicked = true
					})
				}
			}()
			results[index] = bp.runItem(ctx, index, processFunc)
		}(i)
	}

	wg.Wait()

	if panicked {
		bp.logger.Error().
			Interface("panic", panicValue).
			Msg("Item processing panicked")
		panic(panicValue)
	}

	if cancelErr != nil {
		bp.logger.Info().
			Int("started_items", started).
			Int("total_items", total).
			Msg("Batch processing interrupted by context cancellation")
		return results[:started], cancelErr
	}

	return results, nil
}

// runItem runs one item and records its outcome
func (bp *BatchProcessor) runItem(ctx context.Context, index int, processFunc ProcessFunc) (result ItemResult) {
	start := time.Now()
	defer func() {
		result.Index = index
		result.Success = result.Error == nil
		result.Duration = time.Since(start)
		if result.Error != nil {
			bp.logger.Error().
				Err(result.Error).
				Int("item_index", index).
				Msg("Item processing failed")
		}
	}()

	result.Error = processFunc(ctx, index)
	return result
}
