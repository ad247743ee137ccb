package main

import (
	"time"

	"github.com/seaward/portpulse/pkg/input"
	"github.com/seaward/portpulse/pkg/resolve"
	"github.com/seaward/portpulse/pkg/scanner"
)

// scanFlags captures the CLI flags that shape a scan, decoupled from the
// cobra globals so request building stays testable
type scanFlags struct {
	TCPPortSpec  string
	UDPPortSpec  string
	TimeoutMs    int
	UDPTimeoutMs int
	BannerWaitMs int
	Payload      string
	ResolverAddr string
	Workers      int
	RateLimit    int
}

func currentFlags() scanFlags {
	return scanFlags{
		TCPPortSpec:  tcpPortSpec,
		UDPPortSpec:  udpPortSpec,
		TimeoutMs:    timeoutMs,
		UDPTimeoutMs: udpTimeoutMs,
		BannerWaitMs: bannerWaitMs,
		Payload:      payload,
		ResolverAddr: resolverAddr,
		Workers:      workers,
		RateLimit:    rateLimit,
	}
}

// buildRequest turns targets and flags into a scan request.
// Port parse errors surface here, before any probing.
func buildRequest(hosts []string, flags scanFlags) (scanner.Request, error) {
	tcpPorts, err := input.ParsePorts(flags.TCPPortSpec)
	if err != nil {
		return scanner.Request{}, err
	}

	udpPorts, err := input.ParsePorts(flags.UDPPortSpec)
	if err != nil {
		return scanner.Request{}, err
	}

	return scanner.Request{
		Hosts:      hosts,
		TCPPorts:   tcpPorts,
		UDPPorts:   udpPorts,
		TCPTimeout: time.Duration(flags.TimeoutMs) * time.Millisecond,
		UDPTimeout: time.Duration(flags.UDPTimeoutMs) * time.Millisecond,
	}, nil
}

// buildConfig resolves flags into scanner configuration
func buildConfig(flags scanFlags) scanner.Config {
	cfg := scanner.DefaultConfig()
	cfg.Workers = flags.Workers
	cfg.RateLimit = flags.RateLimit
	cfg.Probe.BannerWait = time.Duration(flags.BannerWaitMs) * time.Millisecond
	cfg.Probe.Payload = flags.Payload

	if flags.ResolverAddr != "" {
		resolverTimeout := time.Duration(flags.TimeoutMs) * time.Millisecond
		cfg.Resolver = resolve.New(flags.ResolverAddr, resolverTimeout)
	}

	return cfg
}
