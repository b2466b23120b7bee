package memory

import (
	"context"
	"sync"

	"github.com/hamed0406/healthmon/internal/domain"
)

// Store keeps the most recent cycle reports in memory, bounded by a
// fixed capacity. Nothing survives a restart.
type Store struct {
	mu      sync.RWMutex
	cap     int
	reports []*domain.CycleReport
}

func New(capacity int) *Store {
	if capacity < 1 {
		capacity = 64
	}
	return &Store{
		cap:     capacity,
		reports: make([]*domain.CycleReport, 0, capacity),
	}
}

func (m *Store) Append(ctx context.Context, r *domain.CycleReport) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.reports = append(m.reports, r)
	if len(m.reports) > m.cap {
		m.reports = m.reports[len(m.reports)-m.cap:]
	}
	return nil
}

func (m *Store) Latest(ctx context.Context) (*domain.CycleReport, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if len(m.reports) == 0 {
		return nil, nil
	}
	return m.reports[len(m.reports)-1], nil
}

// History returns up to limit reports, newest first.
func (m *Store) History(ctx context.Context, limit int) ([]*domain.CycleReport, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if limit <= 0 || limit > len(m.reports) {
		limit = len(m.reports)
	}
	out := make([]*domain.CycleReport, 0, limit)
	for i := len(m.reports) - 1; i >= len(m.reports)-limit; i-- {
		out = append(out, m.reports[i])
	}
	return out, nil
}
