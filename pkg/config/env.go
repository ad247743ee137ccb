package config

import (
	"os"
	"strconv"
	"time"
)

// Environment variable prefix for all portpulse settings
const envPrefix = "PORTPULSE_"

// ProbeConfig contains configurable probe settings
type ProbeConfig struct {
	// Payload written to the remote after a successful connect
	Payload string

	// Fixed wait after connect before draining the remote's response
	BannerWait time.Duration

	// Per-read deadline while draining the response
	BannerPoll time.Duration

	// Bytes read per drain iteration
	BannerReadSize int

	// Total banner size cap
	BannerMaxSize int

	// Deadline for writing the probe payload
	WriteTimeout time.Duration
}

// ScannerConfig contains configurable scanner settings
type ScannerConfig struct {
	// Default per-probe connect timeout when the request leaves it zero
	DefaultTimeout time.Duration

	// Advanced CLI defaults (overridable via CLI)
	DefaultRateLimit int
	DefaultWorkers   int
}

// DefaultProbeConfig returns default probe configuration
func DefaultProbeConfig() ProbeConfig {
	return ProbeConfig{
		Payload:        getEnvString("PROBE_PAYLOAD", "hello\r\n"),           // short ASCII probe
		BannerWait:     getEnvDuration("BANNER_WAIT", 2500*time.Millisecond), // fixed post-connect wait
		BannerPoll:     getEnvDuration("BANNER_POLL", 250*time.Millisecond),  // per-read deadline
		BannerReadSize: getEnvInt("BANNER_READ_SIZE", 1024),                  // 1KB per read
		BannerMaxSize:  getEnvInt("BANNER_MAX_SIZE", 4*1024),                 // 4KB cap
		WriteTimeout:   getEnvDuration("PROBE_WRITE_TIMEOUT", 2*time.Second), // payload write deadline
	}
}

// DefaultScannerConfig returns default scanner configuration
func DefaultScannerConfig() ScannerConfig {
	return ScannerConfig{
		DefaultTimeout:   getEnvDuration("DEFAULT_TIMEOUT", time.Second), // 1000ms
		DefaultRateLimit: getEnvInt("DEFAULT_RATE_LIMIT", 0),             // unlimited
		DefaultWorkers:   getEnvInt("DEFAULT_WORKERS", 1),                // sequential
	}
}

// getEnvInt retrieves an integer environment variable with a default value
func getEnvInt(key string, defaultValue int) int {
	if val := os.Getenv(envPrefix + key); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			return i
		}
	}
	return defaultValue
}

// getEnvDuration retrieves a duration environment variable with a default value
// Accepts values like "500ms", "5s", "10m"
func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if val := os.Getenv(envPrefix + key); val != "" {
		if d, err := time.ParseDuration(val); err == nil {
			return d
		}
	}
	return defaultValue
}

// getEnvString retrieves a string environment variable with a default value
func getEnvString(key string, defaultValue string) string {
	if val := os.Getenv(envPrefix + key); val != "" {
		return val
	}
	return defaultValue
}

// Global configuration instances (initialized once at startup)
var (
	Probe   = DefaultProbeConfig()
	Scanner = DefaultScannerConfig()
)

// Init initializes all configuration from environment variables
// Call this at application startup
func Init() {
	Probe = DefaultProbeConfig()
	Scanner = DefaultScannerConfig()
}
