package repo

import (
	"context"

	"github.com/hamed0406/healthmon/internal/domain"
)

// ReportStore is the port for retained cycle reports — swap in any
// adapter later. Latest returns (nil, nil) before the first cycle.
type ReportStore interface {
	Append(ctx context.Context, r *domain.CycleReport) error
	Latest(ctx context.Context) (*domain.CycleReport, error)
	History(ctx context.Context, limit int) ([]*domain.CycleReport, error)
}
