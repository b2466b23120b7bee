package stats

import (
	"math"
	"sync"

	"github.com/hamed0406/healthmon/internal/domain"
)

type counters struct {
	up    int
	total int
}

// Aggregator accumulates per-domain up/total counts for the lifetime of
// the process. Domains are tracked in first-seen order so snapshots are
// deterministic. Safe for concurrent use; the scheduler writes, the
// HTTP API reads.
type Aggregator struct {
	mu      sync.RWMutex
	order   []string
	domains map[string]*counters
}

func NewAggregator() *Aggregator {
	return &Aggregator{domains: make(map[string]*counters)}
}

// Record folds one probe outcome into the counters for its domain,
// creating the domain entry on first sighting.
func (a *Aggregator) Record(key string, up bool) {
	a.mu.Lock()
	defer a.mu.Unlock()

	c := a.domains[key]
	if c == nil {
		c = &counters{}
		a.domains[key] = c
		a.order = append(a.order, key)
	}
	c.total++
	if up {
		c.up++
	}
}

// RecordCycle folds a completed cycle's results, in order.
func (a *Aggregator) RecordCycle(results []domain.EndpointResult) {
	for _, r := range results {
		a.Record(r.Domain, r.Outcome.Status == domain.StatusUp)
	}
}

// Snapshot returns the cumulative availability per domain, first-seen
// order, percentages rounded to two decimals.
func (a *Aggregator) Snapshot() []domain.DomainAvailability {
	a.mu.RLock()
	defer a.mu.RUnlock()

	out := make([]domain.DomainAvailability, 0, len(a.order))
	for _, key := range a.order {
		c := a.domains[key]
		out = append(out, domain.DomainAvailability{
			Domain:       key,
			Availability: availability(c.up, c.total),
			Up:           c.up,
			Total:        c.total,
		})
	}
	return out
}

func availability(up, total int) float64 {
	return math.Round(100*float64(up)/float64(total)*100) / 100
}
