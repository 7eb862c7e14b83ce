package core

import (
	"context"
	"sync"

	"github.com/sirupsen/logrus"
)

// Effects runs best-effort side effects (speech playback) in the background.
// Tasks share one context so Close cancels anything still running.
type Effects struct {
	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
	mu     sync.Mutex
	closed bool
	log    logrus.FieldLogger
}

func NewEffects(log logrus.FieldLogger) *Effects {
	ctx, cancel := context.WithCancel(context.Background())
	return &Effects{
		ctx:    ctx,
		cancel: cancel,
		log:    log.WithField("component", "effects"),
	}
}

// Go starts fn in the background. Errors are logged and never reach the caller.
func (e *Effects) Go(name string, fn func(ctx context.Context) error) {
	e.mu.Lock()
	if e.closed {
		e.mu.Unlock()
		e.log.WithField("effect", name).Debug("effects closed, skipping")
		return
	}
	e.wg.Add(1)
	e.mu.Unlock()

	go func() {
		defer e.wg.Done()
		if err := fn(e.ctx); err != nil {
			e.log.WithError(err).WithField("effect", name).Warn("side effect failed")
		}
	}()
}

// Wait blocks until all started effects have finished.
func (e *Effects) Wait() {
	e.wg.Wait()
}

// Close cancels running effects and waits for them to return.
func (e *Effects) Close() {
	e.mu.Lock()
	e.closed = true
	e.mu.Unlock()
	e.cancel()
	e.wg.Wait()
}
