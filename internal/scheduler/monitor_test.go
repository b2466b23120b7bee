package scheduler

import (
	"context"
	"sync"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/hamed0406/healthmon/internal/domain"
	"github.com/hamed0406/healthmon/internal/stats"
)

// --- fakes ---

type scriptedChecker struct {
	mu  sync.Mutex
	out map[string]domain.Outcome
	n   int
}

func (c *scriptedChecker) Check(ctx context.Context, ep domain.Endpoint) domain.Outcome {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.n++
	if o, ok := c.out[ep.URL]; ok {
		return o
	}
	return domain.Outcome{Status: domain.StatusUp, Latency: 0.01}
}

type captureSink struct {
	mu      sync.Mutex
	reports []*domain.CycleReport
}

func (s *captureSink) Record(ctx context.Context, r *domain.CycleReport) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.reports = append(s.reports, r)
	return nil
}

func (s *captureSink) snapshot() []*domain.CycleReport {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*domain.CycleReport, len(s.reports))
	copy(out, s.reports)
	return out
}

var testEndpoints = []domain.Endpoint{
	{Name: "a", URL: "http://svc.example.com:8080/a"},
	{URL: "https://svc.example.com/b"},
	{Name: "c", URL: "https://other.example.com/c"},
}

// --- tests ---

func TestMonitor_CycleReportIsCompleteAndOrdered(t *testing.T) {
	chk := &scriptedChecker{out: map[string]domain.Outcome{
		"https://other.example.com/c": {Status: domain.StatusDown, Latency: 0.5, Reason: "Timeout"},
	}}
	sink := &captureSink{}
	m := NewMonitor(zap.NewNop(), testEndpoints, chk, stats.NewAggregator(), sink, time.Hour, 0)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() { m.Run(ctx); close(done) }()

	waitFor(t, func() bool { return len(sink.snapshot()) >= 1 })
	cancel()
	<-done

	reports := sink.snapshot()
	if len(reports) != 1 {
		t.Fatalf("one cycle expected with an hour-long interval, got %d", len(reports))
	}
	r := reports[0]

	if len(r.Results) != len(testEndpoints) {
		t.Fatalf("report must cover every endpoint, got %d", len(r.Results))
	}
	wantNames := []string{"a", "https://svc.example.com/b", "c"}
	for i, res := range r.Results {
		if res.Name != wantNames[i] {
			t.Fatalf("results must be in configured order: want %q at %d, got %q", wantNames[i], i, res.Name)
		}
	}

	// both svc endpoints share one domain key, first-seen order
	if len(r.Domains) != 2 || r.Domains[0].Domain != "svc.example.com" || r.Domains[1].Domain != "other.example.com" {
		t.Fatalf("unexpected domains: %+v", r.Domains)
	}
	if d := r.Domains[0]; d.Up != 2 || d.Total != 2 || d.Availability != 100.0 {
		t.Fatalf("svc counters wrong: %+v", d)
	}
	if d := r.Domains[1]; d.Up != 0 || d.Total != 1 || d.Availability != 0.0 {
		t.Fatalf("other counters wrong: %+v", d)
	}
}

func TestMonitor_CountersAccumulateAcrossCycles(t *testing.T) {
	chk := &scriptedChecker{}
	sink := &captureSink{}
	m := NewMonitor(zap.NewNop(), testEndpoints, chk, stats.NewAggregator(), sink, 5*time.Millisecond, 1)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() { m.Run(ctx); close(done) }()

	waitFor(t, func() bool { return len(sink.snapshot()) >= 3 })
	cancel()
	<-done

	reports := sink.snapshot()
	prev := 0
	for n, r := range reports[:3] {
		got := r.Domains[0].Total
		if got != 2*(n+1) {
			t.Fatalf("cycle %d: svc total want %d got %d", n+1, 2*(n+1), got)
		}
		if got < prev {
			t.Fatalf("totals must be non-decreasing")
		}
		prev = got
	}
}

func TestMonitor_CancelDuringWaitStopsBeforeNextCycle(t *testing.T) {
	chk := &scriptedChecker{}
	sink := &captureSink{}
	m := NewMonitor(zap.NewNop(), testEndpoints, chk, stats.NewAggregator(), sink, time.Hour, 0)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() { m.Run(ctx); close(done) }()

	waitFor(t, func() bool { return len(sink.snapshot()) == 1 })
	cancel()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatalf("Run did not return after cancellation during wait")
	}
	if got := len(sink.snapshot()); got != 1 {
		t.Fatalf("no cycle may start after cancellation, got %d reports", got)
	}

	chk.mu.Lock()
	calls := chk.n
	chk.mu.Unlock()
	if calls != len(testEndpoints) {
		t.Fatalf("want exactly one probe per endpoint, got %d calls", calls)
	}
}

func TestMonitor_ProbeFailuresNeverStopTheLoop(t *testing.T) {
	chk := &scriptedChecker{out: map[string]domain.Outcome{
		"http://svc.example.com:8080/a": {Status: domain.StatusDown, Latency: 0.2, Reason: "Status code out of range"},
		"https://svc.example.com/b":     {Status: domain.StatusDown, Latency: 0.5, Reason: "Timeout"},
		"https://other.example.com/c":   {Status: domain.StatusDown, Reason: "Invalid JSON body: unexpected end of JSON input"},
	}}
	sink := &captureSink{}
	m := NewMonitor(zap.NewNop(), testEndpoints, chk, stats.NewAggregator(), sink, 5*time.Millisecond, 2)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() { m.Run(ctx); close(done) }()

	waitFor(t, func() bool { return len(sink.snapshot()) >= 2 })
	cancel()
	<-done

	for _, r := range sink.snapshot() {
		if len(r.Results) != len(testEndpoints) {
			t.Fatalf("failing endpoints must not be skipped: %+v", r.Results)
		}
	}
}

type slowChecker struct {
	started chan struct{}
}

func (c *slowChecker) Check(ctx context.Context, ep domain.Endpoint) domain.Outcome {
	c.started <- struct{}{}
	select {
	case <-ctx.Done():
		return domain.Outcome{Status: domain.StatusDown, Reason: ctx.Err().Error()}
	case <-time.After(50 * time.Millisecond):
		return domain.Outcome{Status: domain.StatusUp, Latency: 0.05}
	}
}

func TestMonitor_ShutdownMidCycleLetsProbesFinish(t *testing.T) {
	chk := &slowChecker{started: make(chan struct{})}
	sink := &captureSink{}
	agg := stats.NewAggregator()
	endpoints := []domain.Endpoint{{Name: "a", URL: "https://svc.example.com/a"}}
	m := NewMonitor(zap.NewNop(), endpoints, chk, agg, sink, time.Hour, 1)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() { m.Run(ctx); close(done) }()

	<-chk.started // probe in flight
	cancel()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatalf("Run did not return after mid-cycle cancellation")
	}

	reports := sink.snapshot()
	if len(reports) != 1 || len(reports[0].Results) != 1 {
		t.Fatalf("the interrupted cycle must still emit one complete report, got %+v", reports)
	}
	if out := reports[0].Results[0].Outcome; out.Status != domain.StatusUp {
		t.Fatalf("in-flight probe must finish instead of recording the cancellation, got %+v", out)
	}
	if d := agg.Snapshot()[0]; d.Up != 1 || d.Total != 1 {
		t.Fatalf("counters polluted by shutdown: %+v", d)
	}
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(time.Millisecond)
	}
	t.Fatalf("condition not reached within deadline")
}
