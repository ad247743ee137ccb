package scanner

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/seaward/portpulse/pkg/config"
	"github.com/seaward/portpulse/pkg/probe"
)

// Validation errors. These are the only error class that aborts a scan;
// everything that happens after validation is encoded per result row.
var (
	ErrNoHosts         = errors.New("no hosts to scan")
	ErrEmptyHost       = errors.New("empty host")
	ErrPortOutOfRange  = errors.New("port out of range")
	ErrNegativeTimeout = errors.New("negative timeout")
)

// Request describes one scan invocation. It is consumed once and not
// retained by the scanner.
//
// Hosts and port lists are ordered; duplicates are allowed and each
// duplicate produces its own report rows. UDPPorts and UDPTimeout are
// accepted for interface compatibility but no UDP probe path exists:
// a request carrying only UDP ports yields an empty report.
type Request struct {
	Hosts      []string
	TCPPorts   []int
	UDPPorts   []int
	TCPTimeout time.Duration
	UDPTimeout time.Duration
}

// Validate checks the request shape before any probing begins
func (r Request) Validate() error {
	if len(r.Hosts) == 0 {
		return ErrNoHosts
	}
	for i, host := range r.Hosts {
		if strings.TrimSpace(host) == "" {
			return fmt.Errorf("%w at index %d", ErrEmptyHost, i)
		}
	}
	for _, port := range r.TCPPorts {
		if port < 1 || port > 65535 {
			return fmt.Errorf("%w: %d", ErrPortOutOfRange, port)
		}
	}
	for _, port := range r.UDPPorts {
		if port < 1 || port > 65535 {
			return fmt.Errorf("%w: %d", ErrPortOutOfRange, port)
		}
	}
	if r.TCPTimeout < 0 {
		return fmt.Errorf("%w: tcp %s", ErrNegativeTimeout, r.TCPTimeout)
	}
	if r.UDPTimeout < 0 {
		return fmt.Errorf("%w: udp %s", ErrNegativeTimeout, r.UDPTimeout)
	}
	return nil
}

// withDefaults fills zero timeouts with the configured default (1000ms)
func (r Request) withDefaults() Request {
	if r.TCPTimeout == 0 {
		r.TCPTimeout = config.Scanner.DefaultTimeout
	}
	if r.UDPTimeout == 0 {
		r.UDPTimeout = config.Scanner.DefaultTimeout
	}
	return r
}

// Resolver maps a hostname to a dialable address. Implementations must
// pass IP literals through unchanged.
type Resolver interface {
	Resolve(ctx context.Context, host string) (string, error)
}

// Config contains scanner configuration
type Config struct {
	// Workers bounds the per-host port fan-out. 1 or less means strictly
	// sequential probing, which is the default contract.
	Workers int

	// RateLimit caps probes per second. Zero or negative means no limit.
	RateLimit int

	// Resolver, when set, maps each host to an address before its ports
	// are probed. Resolution failure is encoded in that host's rows.
	Resolver Resolver

	// Probe carries banner and payload settings; the connect timeout is
	// taken from each request
	Probe probe.Options

	// Quiet suppresses per-row progress logging
	Quiet bool
}

// DefaultConfig returns scanner configuration from process defaults
func DefaultConfig() Config {
	return Config{
		Workers:   config.Scanner.DefaultWorkers,
		RateLimit: config.Scanner.DefaultRateLimit,
		Probe:     probe.DefaultOptions(),
	}
}
