// cmd/preflight/main.go
package main

import (
	"fmt"
	"os"

	"github.com/hamed0406/healthmon/internal/config"
	"github.com/hamed0406/healthmon/internal/domain"
)

// preflight validates a config file and prints the endpoint to domain
// mapping without probing anything. Exit code 1 means the monitor would
// refuse this config.
func main() {
	fail := func(msg string) {
		fmt.Fprintln(os.Stderr, "✖", msg)
		os.Exit(1)
	}
	warn := func(msg string) { fmt.Fprintln(os.Stderr, "⚠", msg) }
	ok := func(msg string) { fmt.Println("✔", msg) }

	if len(os.Args) != 2 {
		fail("usage: preflight <config.yaml>")
	}

	cfg, err := config.Load(os.Args[1])
	if err != nil {
		fail(err.Error())
	}

	perDomain := map[string]int{}
	for _, ep := range cfg.Endpoints {
		key := domain.FromURL(ep.URL)
		perDomain[key]++
		if key == "" {
			warn(fmt.Sprintf("%s: URL has no host; results will group under the empty domain", ep.DisplayName()))
			continue
		}
		method := ep.Method
		if method == "" {
			method = "GET"
		}
		ok(fmt.Sprintf("%s %s → %s", method, ep.DisplayName(), key))
	}

	fmt.Printf("\n%d endpoint(s) across %d domain(s), every %s, %s per probe\n",
		len(cfg.Endpoints), len(perDomain), cfg.Monitor.Interval, cfg.Monitor.Timeout)
	ok("preflight passed")
}
