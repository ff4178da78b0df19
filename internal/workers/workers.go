package workers

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/MKhiriev/go-dashboard/internal/logger"
)

// Workers is a set of workers started and stopped as one unit.
type Workers struct {
	workers []Worker
	logger  *logger.Logger
}

// NewWorkers groups ws. Nil workers are skipped so callers can pass
// optional ones unconditionally.
func NewWorkers(logger *logger.Logger, ws ...Worker) *Workers {
	w := &Workers{logger: logger}
	for _, worker := range ws {
		if worker != nil {
			w.workers = append(w.workers, worker)
		}
	}
	return w
}

// Run starts every worker and blocks until all of them return. The first
// failure cancels the others and is returned.
func (w *Workers) Run(ctx context.Context) error {
	g, ctx := errgroup.WithContext(ctx)
	for _, worker := range w.workers {
		g.Go(func() error {
			return worker.Run(ctx)
		})
	}

	if err := g.Wait(); err != nil {
		w.logger.Err(err).Msg("background worker stopped")
		return err
	}
	return nil
}

// Len reports the number of workers in the set.
func (w *Workers) Len() int {
	return len(w.workers)
}

// periodic runs fn immediately and then every interval.
type periodic struct {
	name     string
	interval time.Duration
	fn       func(ctx context.Context)
	logger   *logger.Logger
}

// Periodic returns a Worker calling fn right away and then on every tick
// until the context is cancelled.
func Periodic(name string, interval time.Duration, fn func(ctx context.Context), logger *logger.Logger) Worker {
	return &periodic{name: name, interval: interval, fn: fn, logger: logger}
}

func (p *periodic) Run(ctx context.Context) error {
	if p.interval <= 0 {
		return fmt.Errorf("worker %q: non-positive interval %s", p.name, p.interval)
	}

	p.logger.Debug().Str("worker", p.name).Dur("interval", p.interval).Msg("worker started")

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		p.fn(ctx)

		select {
		case <-ctx.Done():
			p.logger.Debug().Str("worker", p.name).Msg("worker stopped")
			return nil
		case <-ticker.C:
		}
	}
}
