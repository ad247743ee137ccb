package probe

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/seaward/portpulse/pkg/config"
)

// ProtocolTCP is the only transport with an implemented probe path.
// UDP is reserved in the request surface but never probed.
const ProtocolTCP = "tcp"

// TimeoutNote is the note attached to probes abandoned at the deadline
const TimeoutNote = "Connection to Port Timed Out"

// Status classifies the outcome of a single probe so callers can tell
// failure kinds apart instead of inspecting partial result state
type Status uint8

const (
	StatusUnknown Status = iota
	StatusOpen
	StatusTimeout
	StatusError
)

func (s Status) String() string {
	switch s {
	case StatusOpen:
		return "open"
	case StatusTimeout:
		return "timeout"
	case StatusError:
		return "error"
	case StatusUnknown:
		return "unknown"
	}
	return fmt.Sprintf("status(%d)", uint8(s))
}

// MarshalJSON encodes the status as its string form
func (s Status) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

// UnmarshalJSON decodes the string form produced by MarshalJSON
func (s *Status) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return err
	}
	switch str {
	case "open":
		*s = StatusOpen
	case "timeout":
		*s = StatusTimeout
	case "error":
		*s = StatusError
	case "unknown":
		*s = StatusUnknown
	default:
		return fmt.Errorf("unknown probe status %q", str)
	}
	return nil
}

// Result is the outcome of one connection attempt against a host:port pair.
// Host carries the target exactly as the caller supplied it, even when the
// dial went to a resolved address instead.
type Result struct {
	Host      string `json:"host"`
	Port      int    `json:"port"`
	Protocol  string `json:"protocol"`
	Open      bool   `json:"open"`
	Note      string `json:"note,omitempty"`
	Status    Status `json:"status"`
	ElapsedMs int64  `json:"elapsed_ms"`
}

// Options control a single probe attempt
type Options struct {
	// Connect timeout. Zero or negative means the attempt is abandoned
	// immediately as a timeout; callers wanting the default should set it
	// explicitly (the scanner does).
	Timeout time.Duration

	// Addr, when non-empty, is dialed instead of the result's Host.
	// Used when a resolver has already mapped the hostname to an address.
	Addr string

	// Payload written after connect. Empty disables the write.
	Payload string

	// Fixed wait after connect before draining whatever the remote sent
	BannerWait time.Duration

	// Per-read deadline while draining. A read that times out means no
	// more data is available, not a probe failure.
	BannerPoll time.Duration

	// Bytes per drain read
	BannerReadSize int

	// Total banner cap
	BannerMaxSize int

	// Deadline for the payload write
	WriteTimeout time.Duration
}

// DefaultOptions returns probe options from the process configuration,
// with the connect timeout left for the caller to fill in
func DefaultOptions() Options {
	return Options{
		Payload:        config.Probe.Payload,
		BannerWait:     config.Probe.BannerWait,
		BannerPoll:     config.Probe.BannerPoll,
		BannerReadSize: config.Probe.BannerReadSize,
		BannerMaxSize:  config.Probe.BannerMaxSize,
		WriteTimeout:   config.Probe.WriteTimeout,
	}
}
