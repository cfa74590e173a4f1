package services

import (
	"context"
	"time"

	"github.com/ameeralns/Spleeter/domain"
)

// ExtractionLimiter bounds how many extraction pipelines run at once. Each
// concurrent separation holds large audio buffers and model working state, so
// requests wait a bounded time for a slot and fail fast as overloaded instead
// of queuing indefinitely.
type ExtractionLimiter struct {
	slots   chan struct{}
	maxWait time.Duration
}

func NewExtractionLimiter(maxConcurrent int, maxWait time.Duration) *ExtractionLimiter {
	return &ExtractionLimiter{
		slots:   make(chan struct{}, maxConcurrent),
		maxWait: maxWait,
	}
}

// Acquire blocks until a slot is free, the wait budget runs out, or ctx is
// cancelled. Every successful Acquire must be paired with Release.
func (l *ExtractionLimiter) Acquire(ctx context.Context) error {
	timer := time.NewTimer(l.maxWait)
	defer timer.Stop()

	select {
	case l.slots <- struct{}{}:
		return nil
	case <-timer.C:
		return domain.NewPipelineError(domain.KindOverloaded, "service is at capacity, try again later", nil)
	case <-ctx.Done():
		// The caller gave up; that is not an overload signal.
		return domain.NewPipelineError(domain.KindInternal, "request cancelled", ctx.Err())
	}
}

func (l *ExtractionLimiter) Release() {
	<-l.slots
}
