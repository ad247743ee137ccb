// Package resolve maps hostnames to dialable addresses through an
// operator-chosen DNS server, so reachability can be diagnosed through a
// specific resolver instead of whatever the system is configured with.
package resolve

import (
	"context"
	"fmt"
	"net"
	"time"

	"github.com/miekg/dns"
)

// Resolver resolves hostnames against a fixed DNS server
type Resolver struct {
	server string
	client *dns.Client
}

// New creates a resolver that queries the given server. A server without
// a port gets the standard DNS port 53.
func New(server string, timeout time.Duration) *Resolver {
	if _, _, err := net.SplitHostPort(server); err != nil {
		server = net.JoinHostPort(server, "53")
	}

	return &Resolver{
		server: server,
		client: &dns.Client{
			Net:     "udp",
			Timeout: timeout,
		},
	}
}

// Resolve returns an address for host. IP literals pass through
// unchanged; hostnames are looked up as A, then AAAA.
func (r *Resolver) Resolve(ctx context.Context, host string) (string, error) {
	if ip := net.ParseIP(host); ip != nil {
		return host, nil
	}

	var lastErr error
	for _, qtype := range []uint16{dns.TypeA, dns.TypeAAAA} {
		msg := new(dns.Msg)
		msg.SetQuestion(dns.Fqdn(host), qtype)
		msg.RecursionDesired = true

		resp, _, err := r.client.ExchangeContext(ctx, msg, r.server)
		if err != nil {
			lastErr = err
			continue
		}
		if resp.Rcode != dns.RcodeSuccess {
			lastErr = fmt.Errorf("server returned %s", dns.RcodeToString[resp.Rcode])
			continue
		}

		for _, rr := range resp.Answer {
			switch a := rr.(type) {
			case *dns.A:
				return a.A.String(), nil
			case *dns.AAAA:
				return a.AAAA.String(), nil
			}
		}
	}

	if lastErr != nil {
		return "", fmt.Errorf("resolve %s: %w", host, lastErr)
	}
	return "", fmt.Errorf("resolve %s: no address records", host)
}
