package services

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// Dispatcher runs best-effort side effects off the request path. Failures
// and panics are logged and dropped; nothing is retried.
type Dispatcher struct {
	wg      sync.WaitGroup
	timeout time.Duration
	logger  zerolog.Logger
}

func NewDispatcher(timeout time.Duration, logger zerolog.Logger) *Dispatcher {
	return &Dispatcher{
		timeout: timeout,
		logger:  logger.With().Str("component", "dispatcher").Logger(),
	}
}

func (d *Dispatcher) Go(name string, fn func(ctx context.Context) error) {
	d.wg.Add(1)
	go func() {
		defer d.wg.Done()
		defer func() {
			if r := recover(); r != nil {
				d.logger.Error().Interface("panic", r).Str("task", name).Msg("notification panicked")
			}
		}()

		ctx, cancel := context.WithTimeout(context.Background(), d.timeout)
		defer cancel()

		if err := fn(ctx); err != nil {
			d.logger.Warn().Err(err).Str("task", name).Msg("notification failed")
			return
		}
		d.logger.Debug().Str("task", name).Msg("notification sent")
	}()
}

// Wait blocks until every dispatched task has finished.
func (d *Dispatcher) Wait() {
	d.wg.Wait()
}
