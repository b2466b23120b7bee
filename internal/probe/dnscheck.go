package probe

import (
	"context"
	"errors"
	"net"
	"strings"
	"time"
)

// DNS classes attached to transport-level failures for debugging.
const (
	DNSResolves  = "RESOLVES"
	DNSNXDomain  = "NXDOMAIN"
	DNSNoARecord = "NO_A_RECORD"
	DNSServfail  = "SERVFAIL_or_TIMEOUT"
	DNSInvalid   = "INVALID_NAME"
)

var dnsTimeout = 3 * time.Second

// DNSStatus summarizes what the resolver knows about a host.
type DNSStatus struct {
	Host          string
	Class         string
	ResolverError string
}

// CheckDNS classifies why a host might not be reachable. It is purely
// diagnostic; it never feeds classification or counters.
func CheckDNS(ctx context.Context, host string) DNSStatus {
	s := DNSStatus{Host: strings.TrimSpace(host)}
	if s.Host == "" || strings.Contains(s.Host, "://") {
		s.Class = DNSInvalid
		return s
	}

	cctx, cancel := context.WithTimeout(ctx, dnsTimeout)
	defer cancel()
	r := &net.Resolver{} // OS resolver

	ips, err := r.LookupIP(cctx, "ip", s.Host)
	if err == nil && len(ips) > 0 {
		s.Class = DNSResolves
		return s
	}
	if err != nil {
		s.ResolverError = err.Error()
		var de *net.DNSError
		if errors.As(err, &de) {
			if de.IsNotFound {
				s.Class = DNSNXDomain
			} else if de.IsTemporary || de.Timeout() {
				s.Class = DNSServfail
			}
		}
	}

	// A delegated zone with no address records is a different failure
	// than a name that does not exist at all.
	if ns, err := r.LookupNS(cctx, s.Host); err == nil && len(ns) > 0 {
		s.Class = DNSNoARecord
		return s
	}

	if s.Class == "" {
		if s.ResolverError != "" {
			s.Class = DNSServfail
		} else {
			s.Class = DNSNXDomain
		}
	}
	return s
}
