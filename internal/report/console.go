package report

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/hamed0406/healthmon/internal/domain"
)

// Console renders a cycle report as human-readable text: cumulative
// availability per domain, then this cycle's per-endpoint lines.
type Console struct {
	Out io.Writer
}

func (c *Console) Record(ctx context.Context, r *domain.CycleReport) error {
	w := c.Out
	if w == nil {
		w = os.Stdout
	}

	fmt.Fprintf(w, "\n--- %s ---\n", r.Timestamp.Format("2006-01-02 15:04:05"))
	for _, d := range r.Domains {
		fmt.Fprintf(w, "%s has %v%% availability (UP: %d, Total: %d)\n",
			d.Domain, d.Availability, d.Up, d.Total)
	}

	fmt.Fprintf(w, "\nCurrent check cycle results:\n")
	for _, res := range r.Results {
		sym := "✓"
		if res.Outcome.Status != domain.StatusUp {
			sym = "✗"
		}
		fmt.Fprintf(w, "%s %s - %.3fs", sym, res.Name, res.Outcome.Latency)
		if res.Outcome.Reason != "" {
			fmt.Fprintf(w, " - %s", res.Outcome.Reason)
		}
		fmt.Fprintln(w)
	}
	return nil
}
