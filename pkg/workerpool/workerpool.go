// Package workerpool provides simple concurrent processing utilities.
package workerpool

import (
	"context"
	"sync"
	"time"
)

type indexed[T any] struct {
	index int
	item  T
}

// Process runs a worker pool over the provided work items, invoking process for each.
// If process returns an error, the pool cancels the context and stops further work.
func Process[T any](
	ctx context.Context,
	workerCount int,
	items []T,
	process func(context.Context, T) error,
	onCancel func(),
) error {
	return ProcessIndexed(ctx, workerCount, 0, items, func(ctx context.Context, _ int, item T) error {
		return process(ctx, item)
	}, onCancel)
}

// ProcessIndexed is Process with the item's position passed to the callback.
// A non-zero stagger delays item i by stagger × (i mod workerCount) before it
// is handed to a worker, smoothing bursts against rate-limited backends.
func ProcessIndexed[T any](
	ctx context.Context,
	workerCount int,
	stagger time.Duration,
	items []T,
	process func(context.Context, int, T) error,
	onCancel func(),
) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	tasks := make(chan indexed[T], workerCount)
	errs := make(chan error, workerCount)
	wg := sync.WaitGroup{}
	for i := 0; i < workerCount; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for {
				select {
				case <-ctx.Done():
					return
				case task, ok := <-tasks:
					if !ok {
						return
					}
					if stagger > 0 {
						if err := sleep(ctx, stagger*time.Duration(task.index%workerCount)); err != nil {
							return
						}
					}
					if err := process(ctx, task.index, task.item); err != nil {
						select {
						case errs <- err:
						default:
						}
						if onCancel != nil {
							onCancel()
						}
						cancel()
						return
					}
				}
			}
		}()
	}

	go func() {
		for i, item := range items {
			select {
			case <-ctx.Done():
				close(tasks)
				return
			case tasks <- indexed[T]{index: i, item: item}:
			}
		}
		close(tasks)
	}()

	wg.Wait()
	close(errs)

	for err := range errs {
		if err != nil {
			return err
		}
	}

	if err := ctx.Err(); err != nil {
		return err
	}

	return nil
}

func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
