package seoengine

import (
	"context"
	"time"
)

// StartScheduler runs OnScheduleTick every interval until the returned stop
// function is called. Ticks never overlap: a sweep that outlasts the interval
// delays the next one.
func (e *Engine) StartScheduler(interval time.Duration) func() {
	ticker := time.NewTicker(interval)
	ctx, cancel := context.WithCancel(context.Background())

	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				if err := e.OnScheduleTick(ctx); err != nil && ctx.Err() == nil {
					e.logger.Errorf("sweep error: %v", err)
				}
			case <-ctx.Done():
				return
			}
		}
	}()

	return cancel
}
