package report

import (
	"context"

	"go.uber.org/zap"

	"github.com/hamed0406/healthmon/internal/domain"
)

// Logger emits a cycle report as structured log entries.
type Logger struct {
	Log *zap.Logger
}

func (l *Logger) Record(ctx context.Context, r *domain.CycleReport) error {
	for _, d := range r.Domains {
		l.Log.Info("domain_availability",
			zap.String("domain", d.Domain),
			zap.Float64("availability_pct", d.Availability),
			zap.Int("up", d.Up),
			zap.Int("total", d.Total),
		)
	}
	for _, res := range r.Results {
		l.Log.Debug("endpoint_checked",
			zap.String("name", res.Name),
			zap.String("domain", res.Domain),
			zap.String("status", string(res.Outcome.Status)),
			zap.Float64("latency_s", res.Outcome.Latency),
			zap.String("reason", res.Outcome.Reason),
		)
	}
	return nil
}
