package scanner

import (
	"context"
	"log/slog"

	"github.com/seaward/portpulse/pkg/probe"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"
)

// Scanner walks the host × port cross-product of a request and produces
// one probe result per pair, in request order: hosts outer, ports inner.
// All probe failures are absorbed into rows; after validation the scan
// itself cannot fail.
type Scanner struct {
	config  Config
	limiter *rate.Limiter
}

// New creates a scanner with the given configuration
func New(cfg Config) *Scanner {
	if cfg.Workers <= 0 {
		cfg.Workers = 1
	}

	var limiter *rate.Limiter
	if cfg.RateLimit > 0 {
		limiter = rate.NewLimiter(rate.Limit(cfg.RateLimit), cfg.RateLimit)
	} else {
		limiter = rate.NewLimiter(rate.Inf, 0)
	}

	return &Scanner{
		config:  cfg,
		limiter: limiter,
	}
}

// Scan probes every (host, tcp port) pair of the request and returns the
// complete report. The report always holds exactly
// len(Hosts) × len(TCPPorts) rows in request order: cancellation mid-scan
// makes the remaining probes fail fast into error rows rather than
// truncating the report.
func (s *Scanner) Scan(ctx context.Context, req Request) ([]probe.Result, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	req = req.withDefaults()

	results := make([]probe.Result, 0, len(req.Hosts)*len(req.TCPPorts))
	for _, host := range req.Hosts {
		results = append(results, s.scanHost(ctx, host, req)...)
	}
	return results, nil
}

// ScanStream probes the request and hands each result row to handler in
// report order, host by host. It returns the number of rows delivered.
// A handler error stops delivery; probe outcomes never do.
func (s *Scanner) ScanStream(ctx context.Context, req Request, handler func(*probe.Result) error) (int, error) {
	if err := req.Validate(); err != nil {
		return 0, err
	}
	req = req.withDefaults()

	count := 0
	for _, host := range req.Hosts {
		for _, res := range s.scanHost(ctx, host, req) {
			if err := handler(&res); err != nil {
				return count, err
			}
			count++
		}
	}
	return count, nil
}

// scanHost probes every TCP port of one host, in port order
func (s *Scanner) scanHost(ctx context.Context, host string, req Request) []probe.Result {
	opts := s.config.Probe
	opts.Timeout = req.TCPTimeout

	if s.config.Resolver != nil {
		addr, err := s.config.Resolver.Resolve(ctx, host)
		if err != nil {
			rows := make([]probe.Result, len(req.TCPPorts))
			for i, port := range req.TCPPorts {
				rows[i] = probe.Result{
					Host:     host,
					Port:     port,
					Protocol: probe.ProtocolTCP,
					Status:   probe.StatusError,
					Note:     err.Error(),
				}
			}
			return rows
		}
		opts.Addr = addr
	}

	rows := make([]probe.Result, len(req.TCPPorts))

	if s.config.Workers <= 1 {
		for i, port := range req.TCPPorts {
			s.wait(ctx)
			rows[i] = probe.Probe(ctx, host, port, opts)
			s.logProgress(&rows[i])
		}
		return rows
	}

	// Fan out over ports with bounded concurrency. Each goroutine writes
	// its own request-index slot, so report order stays request order no
	// matter the completion order.
	g := new(errgroup.Group)
	g.SetLimit(s.config.Workers)
	for i, port := range req.TCPPorts {
		i, port := i, port
		g.Go(func() error {
			s.wait(ctx)
			rows[i] = probe.Probe(ctx, host, port, opts)
			s.logProgress(&rows[i])
			return nil
		})
	}
	g.Wait()

	return rows
}

// wait applies rate limiting. A limiter error only means the context was
// cancelled; the probe then fails fast on that same context and still
// yields its row.
func (s *Scanner) wait(ctx context.Context) {
	_ = s.limiter.Wait(ctx)
}

func (s *Scanner) logProgress(res *probe.Result) {
	if s.config.Quiet {
		return
	}
	if res.Open {
		attrs := []any{
			slog.String("host", res.Host),
			slog.Int("port", res.Port),
			slog.Int64("elapsed_ms", res.ElapsedMs),
		}
		if res.Note != "" {
			attrs = append(attrs, slog.String("banner", res.Note))
		}
		slog.Info("port open", attrs...)
		return
	}
	slog.Debug("port not reachable",
		"host", res.Host,
		"port", res.Port,
		"status", res.Status.String(),
		"note", res.Note,
	)
}
