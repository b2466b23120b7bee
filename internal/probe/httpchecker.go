package probe

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/hamed0406/healthmon/internal/domain"
)

// DefaultDeadline bounds the entire request/response exchange of one probe.
const DefaultDeadline = 500 * time.Millisecond

// HTTPChecker probes an endpoint with a single HTTP request. It never
// retries; every failure mode is folded into the returned Outcome.
type HTTPChecker struct {
	Client   *http.Client
	Deadline time.Duration
}

func NewHTTPChecker(deadline time.Duration) *HTTPChecker {
	if deadline <= 0 {
		deadline = DefaultDeadline
	}
	return &HTTPChecker{
		Client:   &http.Client{},
		Deadline: deadline,
	}
}

// Check issues one request for the endpoint and classifies the result.
// A body that is not valid JSON fails the probe before any request is
// sent. UP requires both a 2xx status and an exchange that finished
// within the deadline; a bad status code wins over a slow response when
// both hold.
func (h *HTTPChecker) Check(ctx context.Context, ep domain.Endpoint) domain.Outcome {
	var payload io.Reader
	if ep.Body != "" {
		var parsed any
		if err := json.Unmarshal([]byte(ep.Body), &parsed); err != nil {
			return domain.Outcome{
				Status: domain.StatusDown,
				Reason: fmt.Sprintf("Invalid JSON body: %v", err),
			}
		}
		b, _ := json.Marshal(parsed)
		payload = bytes.NewReader(b)
	}

	method := ep.Method
	if method == "" {
		method = http.MethodGet
	}

	cctx, cancel := context.WithTimeout(ctx, h.Deadline)
	defer cancel()

	req, err := http.NewRequestWithContext(cctx, method, ep.URL, payload)
	if err != nil {
		return domain.Outcome{Status: domain.StatusDown, Reason: err.Error()}
	}
	for k, v := range ep.Headers {
		req.Header.Set(k, v)
	}
	if payload != nil && req.Header.Get("Content-Type") == "" {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := h.Client.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return domain.Outcome{
				Status:  domain.StatusDown,
				Latency: h.Deadline.Seconds(),
				Reason:  "Timeout",
			}
		}
		return domain.Outcome{Status: domain.StatusDown, Reason: err.Error()}
	}

	// The deadline covers the whole exchange: a fast 200 followed by a
	// stalled body is still a timeout, so latency is measured after the
	// body is drained.
	_, drainErr := io.Copy(io.Discard, resp.Body)
	resp.Body.Close()
	elapsed := time.Since(start)
	if drainErr != nil {
		if errors.Is(drainErr, context.DeadlineExceeded) {
			return domain.Outcome{
				Status:  domain.StatusDown,
				Latency: h.Deadline.Seconds(),
				Reason:  "Timeout",
			}
		}
		return domain.Outcome{Status: domain.StatusDown, Reason: drainErr.Error()}
	}

	return classify(resp.StatusCode, elapsed, h.Deadline)
}

func classify(statusCode int, elapsed, deadline time.Duration) domain.Outcome {
	latency := elapsed.Seconds()
	statusOK := statusCode >= 200 && statusCode < 300

	switch {
	case !statusOK:
		return domain.Outcome{
			Status:  domain.StatusDown,
			Latency: latency,
			Reason:  "Status code out of range",
		}
	case elapsed > deadline:
		return domain.Outcome{
			Status:  domain.StatusDown,
			Latency: latency,
			Reason:  "Response too slow",
		}
	default:
		return domain.Outcome{Status: domain.StatusUp, Latency: latency}
	}
}
