package linkcheck

import (
	"cmp"
	"context"
	"log/slog"
	"slices"
	"sync"
)

type documentJob struct {
	index int
	path  string
}

func documentWorker(ctx context.Context, logger *slog.Logger, c *Checker, wg *sync.WaitGroup, jobs <-chan documentJob, results chan<- documentResult) {
	defer wg.Done()
	for job := range jobs {
		results <- c.checkDocument(ctx, logger, job)
	}
}

// processDocuments feeds every document from the walker to a pool of
// workers and returns their results in discovery order.
func (c *Checker) processDocuments(ctx context.Context, logger *slog.Logger) ([]documentResult, error) {
	logger.DebugContext(ctx, "Setting up document workers", slog.Int("workers", c.cfg.Workers))

	jobs := make(chan documentJob, c.cfg.Workers)
	results := make(chan documentResult, c.cfg.Workers)

	var wg sync.WaitGroup
	for w := 1; w <= c.cfg.Workers; w++ {
		wg.Add(1)
		go documentWorker(ctx, logger, c, &wg, jobs, results)
	}

	var walkErr error
	go func() {
		defer close(jobs)
		index := 0
		for path, err := range walkDocuments(ctx, logger, c.cfg) {
			if err != nil {
				if IsFatal(err) {
					walkErr = err
					return
				}
				logger.WarnContext(ctx, "Skipping unreadable directory", slog.Any("error", err))
				continue
			}

			select {
			case jobs <- documentJob{index: index, path: path}:
				index++
			case <-ctx.Done():
				return
			}
		}
	}()

	go func() {
		wg.Wait()
		close(results)
	}()

	var collected []documentResult
	for res := range results {
		collected = append(collected, res)
	}

	if walkErr != nil {
		return nil, walkErr
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	slices.SortFunc(collected, func(a, b documentResult) int {
		return cmp.Compare(a.index, b.index)
	})

	logger.DebugContext(ctx, "All document workers finished", slog.Int("documents", len(collected)))

	return collected, nil
}
