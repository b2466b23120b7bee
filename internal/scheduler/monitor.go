package scheduler

import (
	"context"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/hamed0406/healthmon/internal/domain"
	"github.com/hamed0406/healthmon/internal/probe"
	"github.com/hamed0406/healthmon/internal/report"
	"github.com/hamed0406/healthmon/internal/stats"
)

const DefaultInterval = 15 * time.Second

// Monitor sweeps every configured endpoint once per cycle, folds the
// outcomes into cumulative per-domain stats, hands one complete report
// to the sink, then waits out the remainder of the interval. Cycle
// starts are anchored to interval boundaries, not to cycle ends, so
// slow cycles do not drift the cadence; a cycle that overruns the
// interval is followed immediately by the next one, never by a burst.
type Monitor struct {
	Logger      *zap.Logger
	Endpoints   []domain.Endpoint
	Checker     probe.Checker
	Stats       *stats.Aggregator
	Sink        report.Sink
	Interval    time.Duration
	Concurrency int
}

func NewMonitor(
	logger *zap.Logger,
	endpoints []domain.Endpoint,
	checker probe.Checker,
	agg *stats.Aggregator,
	sink report.Sink,
	interval time.Duration,
	concurrency int,
) *Monitor {
	if interval <= 0 {
		interval = DefaultInterval
	}
	if concurrency < 1 {
		concurrency = len(endpoints)
	}
	if concurrency < 1 {
		concurrency = 1
	}
	return &Monitor{
		Logger:      logger,
		Endpoints:   endpoints,
		Checker:     checker,
		Stats:       agg,
		Sink:        sink,
		Interval:    interval,
		Concurrency: concurrency,
	}
}

// Run executes cycles until ctx is cancelled. The first cycle starts
// immediately. A cancellation during the wait stops the loop before the
// next cycle begins; a cancellation mid-cycle lets in-flight probes and
// the aggregation finish so no partial cycle is recorded.
func (m *Monitor) Run(ctx context.Context) {
	for {
		start := time.Now()
		m.runCycle(ctx)

		if ctx.Err() != nil {
			m.Logger.Info("monitor_stopped")
			return
		}

		wait := time.Until(start.Add(m.Interval))
		if wait <= 0 {
			m.Logger.Warn("cycle_overran_interval",
				zap.Duration("interval", m.Interval),
				zap.Duration("elapsed", time.Since(start)),
			)
			continue
		}

		t := time.NewTimer(wait)
		select {
		case <-ctx.Done():
			t.Stop()
			m.Logger.Info("monitor_stopped")
			return
		case <-t.C:
		}
	}
}

func (m *Monitor) runCycle(ctx context.Context) {
	results := make([]domain.EndpointResult, len(m.Endpoints))

	// Probes already carry their own hard deadline; detaching them from
	// the run context lets a shutdown mid-sweep finish the in-flight
	// attempts instead of recording cancellations into the lifetime
	// counters.
	probeCtx := context.WithoutCancel(ctx)

	sem := make(chan struct{}, m.Concurrency)
	var wg sync.WaitGroup
	for i, ep := range m.Endpoints {
		sem <- struct{}{}
		wg.Add(1)
		go func(i int, ep domain.Endpoint) {
			defer wg.Done()
			defer func() { <-sem }()
			results[i] = domain.EndpointResult{
				Name:    ep.DisplayName(),
				Domain:  domain.FromURL(ep.URL),
				Outcome: m.Checker.Check(probeCtx, ep),
			}
		}(i, ep)
	}
	wg.Wait()

	// Probes ran concurrently; counters are updated serially here.
	m.Stats.RecordCycle(results)
	m.diagnose(ctx, results)

	rep := &domain.CycleReport{
		Timestamp: time.Now().UTC(),
		Domains:   m.Stats.Snapshot(),
		Results:   results,
	}
	if err := m.Sink.Record(ctx, rep); err != nil {
		m.Logger.Warn("report_sink_error", zap.Error(err))
	}
}

// diagnose runs a DNS lookup for endpoints that failed at the transport
// level and logs the classification. Purely informational.
func (m *Monitor) diagnose(ctx context.Context, results []domain.EndpointResult) {
	if ctx.Err() != nil || !m.Logger.Core().Enabled(zap.DebugLevel) {
		return
	}
	for _, r := range results {
		if r.Outcome.Status == domain.StatusUp || r.Outcome.Latency != 0 {
			continue
		}
		if r.Outcome.Reason == "" || strings.HasPrefix(r.Outcome.Reason, "Invalid JSON body:") {
			continue
		}
		dns := probe.CheckDNS(ctx, r.Domain)
		m.Logger.Debug("dns_diagnosis",
			zap.String("domain", r.Domain),
			zap.String("class", dns.Class),
			zap.String("resolver_error", dns.ResolverError),
		)
	}
}
