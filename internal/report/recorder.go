package report

import (
	"context"

	"github.com/hamed0406/healthmon/internal/domain"
	"github.com/hamed0406/healthmon/internal/repo"
)

// Recorder adapts a ReportStore into a Sink so the HTTP API can serve
// the same reports the other sinks render.
type Recorder struct {
	Store repo.ReportStore
}

func (r Recorder) Record(ctx context.Context, rep *domain.CycleReport) error {
	return r.Store.Append(ctx, rep)
}
