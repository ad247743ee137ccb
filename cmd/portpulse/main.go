package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/seaward/portpulse/pkg/config"
	"github.com/seaward/portpulse/pkg/input"
	"github.com/seaward/portpulse/pkg/output"
	"github.com/seaward/portpulse/pkg/probe"
	"github.com/seaward/portpulse/pkg/scanner"
	"github.com/spf13/cobra"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// CLI flags
var (
	// Input
	inputFile string

	// Ports
	tcpPortSpec string
	udpPortSpec string

	// Probe
	timeoutMs    int
	udpTimeoutMs int
	bannerWaitMs int
	payload      string

	// Resolution
	resolverAddr string

	// Output
	outputFile   string
	outputFormat string

	// Performance
	workers   int
	rateLimit int

	// Logging
	quiet   bool
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "portpulse [flags] <host>...",
	Short: "TCP port reachability checker",
	Long: `Portpulse - Probe TCP port reachability across hosts

Attempts one bounded connection per host/port pair and reports whether
the port accepted the connection, with any banner the remote sent back.
Probing is sequential by default; report rows always follow the input
order (hosts outer, ports inner).

Output formats:
  • table (default) - columns Server, Port, TypePort, Open, Notes
  • jsonl - streaming, pipe to jq
  • parquet - columnar, query with DuckDB`,

	Example: `  # Check SSH and HTTPS on one host
  portpulse -p 22,443 example.com

  # Several hosts, port range, 200ms timeout
  portpulse -p 8080-8090 -t 200 app1.internal app2.internal

  # Read targets from a file, save JSONL
  portpulse -f targets.txt -p 443 --format jsonl -o results.jsonl

  # Pipe targets in
  cat targets.txt | portpulse -p 22

  # Resolve hosts through a specific DNS server
  portpulse -p 443 --resolver 10.0.0.53 web.corp.example

  # Parallel probing, order of the report is unchanged
  portpulse -p 1-1024 -w 50 example.com`,

	Args:          cobra.ArbitraryArgs,
	RunE:          runScan,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.Version = version
	rootCmd.SetVersionTemplate(fmt.Sprintf("portpulse %s (commit: %s, built: %s)\n", version, commit, date))

	f := rootCmd.Flags()

	// Input
	f.StringVarP(&inputFile, "file", "f", "", "Read targets from file (one per line)")

	// Ports
	f.StringVarP(&tcpPortSpec, "tcp-ports", "p", "", "TCP ports, comma separated with ranges e.g. 22,80,8080-8090")
	f.StringVar(&udpPortSpec, "udp-ports", "", "UDP ports (accepted but not probed)")

	// Probe
	f.IntVarP(&timeoutMs, "timeout-ms", "t", 1000, "Connect timeout per probe in ms")
	f.IntVar(&udpTimeoutMs, "udp-timeout-ms", 1000, "UDP timeout in ms (accepted but not probed)")
	f.IntVar(&bannerWaitMs, "banner-wait-ms", int(config.Probe.BannerWait.Milliseconds()), "Fixed wait after connect before reading the banner, in ms")
	f.StringVar(&payload, "payload", config.Probe.Payload, "Payload written after connect (empty disables)")

	// Resolution
	f.StringVar(&resolverAddr, "resolver", "", "DNS server to resolve targets through (host or host:port)")

	// Output
	f.StringVarP(&outputFile, "output", "o", "-", "Output file (- for stdout)")
	f.StringVar(&outputFormat, "format", "table", "Output format: table, jsonl, parquet")

	// Performance
	f.IntVarP(&workers, "workers", "w", 1, "Concurrent probes per host (1 = sequential)")
	f.IntVarP(&rateLimit, "rate", "r", 0, "Max probes/second (0 = unlimited)")

	// Logging
	f.BoolVarP(&quiet, "quiet", "q", false, "Suppress progress output")
	f.BoolVarP(&verbose, "verbose", "v", false, "Verbose logging")

	rootCmd.SetUsageTemplate(usageTemplate)
}

func runScan(cmd *cobra.Command, args []string) error {
	initLogger()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle interrupt
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigChan
		slog.Info("stopping scan...")
		cancel()
	}()

	hosts, err := parseTargets(args)
	if err != nil {
		return err
	}

	req, err := buildRequest(hosts, currentFlags())
	if err != nil {
		return err
	}

	cfg := buildConfig(currentFlags())
	cfg.Quiet = quiet

	s := scanner.New(cfg)

	resultHandler, closeWriter, err := createOutputWriter()
	if err != nil {
		return err
	}

	slog.Info("starting scan", "hosts", len(req.Hosts), "ports", len(req.TCPPorts))
	startTime := time.Now()

	rows, scanErr := s.ScanStream(ctx, req, resultHandler)

	if closeErr := closeWriter(); closeErr != nil && scanErr == nil {
		scanErr = closeErr
	}

	if scanErr != nil {
		return fmt.Errorf("scan failed: %w", scanErr)
	}

	slog.Info("scan completed", "rows", rows, "duration", time.Since(startTime).Round(time.Millisecond))

	return nil
}

// parseTargets collects hosts from a file, positional args, or piped
// stdin, in that order of preference
func parseTargets(args []string) ([]string, error) {
	if inputFile != "" {
		slog.Debug("reading targets", "file", inputFile)
		return input.ParseHostsFile(inputFile)
	}
	if len(args) > 0 {
		return input.ParseHosts(args)
	}

	stat, err := os.Stdin.Stat()
	if err == nil && (stat.Mode()&os.ModeCharDevice) == 0 {
		return input.ReadHosts(os.Stdin)
	}

	return nil, fmt.Errorf("requires target(s), -f/--file, or piped stdin")
}

func createOutputWriter() (func(*probe.Result) error, func() error, error) {
	format := strings.ToLower(outputFormat)

	switch format {
	case "parquet":
		if outputFile == "-" {
			return nil, nil, fmt.Errorf("parquet cannot write to stdout, use -o file.parquet")
		}
		pw, err := output.NewParquetWriter(outputFile)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to create parquet writer: %w", err)
		}
		return pw.Write, pw.Close, nil

	case "jsonl":
		jw, err := output.NewWriter(outputFile)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to create writer: %w", err)
		}
		return jw.Write, jw.Close, nil

	case "table", "":
		tw, err := output.NewTableWriter(outputFile)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to create table writer: %w", err)
		}
		return tw.Write, tw.Close, nil

	default:
		return nil, nil, fmt.Errorf("unknown output format %q", outputFormat)
	}
}

func initLogger() {
	var level slog.Level
	switch {
	case verbose:
		level = slog.LevelDebug
	case quiet:
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})
	slog.SetDefault(slog.New(handler))
}

func main() {
	config.Init()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

const usageTemplate = `Usage:
  {{.UseLine}}

Examples:
{{.Example}}

Input:
  -f, --file string        Read targets from file; piped stdin also works

Ports:
  -p, --tcp-ports string   TCP ports, e.g. 22,80,443,8080-8090
      --udp-ports string   UDP ports (accepted but not probed)

Probe:
  -t, --timeout-ms int       Connect timeout per probe in ms (default 1000)
      --udp-timeout-ms int   UDP timeout in ms, currently inert (default 1000)
      --banner-wait-ms int   Wait after connect before reading banner (default 2500)
      --payload string       Payload written after connect

Resolution:
      --resolver string    DNS server to resolve targets through

Output:
  -o, --output string      Output file, - for stdout (default "-")
      --format string      Format: table, jsonl, parquet (default "table")

Performance:
  -w, --workers int        Concurrent probes per host, 1=sequential (default 1)
  -r, --rate int           Max probes/second, 0=unlimited

Logging:
  -q, --quiet              Suppress progress output
  -v, --verbose            Verbose logging

Other:
  -h, --help               Show help
      --version            Show version
`
