package domain

import "time"

// Status is the availability classification of a single probe.
type Status string

const (
	StatusUp   Status = "UP"
	StatusDown Status = "DOWN"
)

// Endpoint is one configured HTTP target. Loaded once at startup and
// never mutated afterwards.
type Endpoint struct {
	Name    string            `json:"name,omitempty" mapstructure:"name"`
	URL     string            `json:"url" mapstructure:"url"`
	Method  string            `json:"method,omitempty" mapstructure:"method"`
	Headers map[string]string `json:"headers,omitempty" mapstructure:"headers"`
	Body    string            `json:"body,omitempty" mapstructure:"body"`
}

// DisplayName is the label used in reports: the configured name, or the
// URL when no name was given.
func (e Endpoint) DisplayName() string {
	if e.Name != "" {
		return e.Name
	}
	return e.URL
}

// Outcome is the result of a single probe.
//
// Latency is wall-clock seconds. It is 0 when no exchange happened
// (body parse failure, transport error) and pinned to the deadline on
// timeouts. Reason is set only for DOWN outcomes.
type Outcome struct {
	Status  Status  `json:"status"`
	Latency float64 `json:"latency_s"`
	Reason  string  `json:"reason,omitempty"`
}

// EndpointResult pairs an endpoint with its outcome for one cycle.
type EndpointResult struct {
	Name    string  `json:"name"`
	Domain  string  `json:"domain"`
	Outcome Outcome `json:"outcome"`
}

// DomainAvailability is one row of the cumulative per-domain stats.
type DomainAvailability struct {
	Domain       string  `json:"domain"`
	Availability float64 `json:"availability"`
	Up           int     `json:"up"`
	Total        int     `json:"total"`
}

// CycleReport is the snapshot emitted once per completed cycle: the
// cumulative per-domain availability plus this cycle's per-endpoint
// results, both in deterministic order (first-seen for domains,
// configured order for endpoints).
type CycleReport struct {
	Timestamp time.Time            `json:"timestamp"`
	Domains   []DomainAvailability `json:"domains"`
	Results   []EndpointResult     `json:"results"`
}
