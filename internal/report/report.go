package report

import (
	"context"

	"github.com/hamed0406/healthmon/internal/domain"
)

// Sink receives one complete CycleReport per finished cycle.
type Sink interface {
	Record(ctx context.Context, r *domain.CycleReport) error
}

// Multi fans a report out to several sinks, returning the first error.
type Multi []Sink

func (m Multi) Record(ctx context.Context, r *domain.CycleReport) error {
	var firstErr error
	for _, s := range m {
		if s == nil {
			continue
		}
		if err := s.Record(ctx, r); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
