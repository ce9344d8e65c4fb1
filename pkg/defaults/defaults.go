// Package defaults provides canonical default values for the scanner.
// This is the single source of truth for runtime configuration defaults.
//
// Usage:
//
//	cfg.Concurrency = defaults.Concurrency
//	cfg.Timeout = defaults.ProbeTimeout
//
// Do not hardcode values like `Concurrency: 400` elsewhere; reference the
// appropriate constant from this package instead.
package defaults

import "time"

// Version is the current webfigscan version.
const Version = "1.2.0"

// ============================================================================
// SCAN SETTINGS
// ============================================================================

const (
	// Concurrency is the default number of in-flight probe units (400).
	Concurrency = 400

	// ProbeTimeout is the default per-attempt timeout (800ms).
	ProbeTimeout = 800 * time.Millisecond

	// SignalGracePeriod is how long a scan may drain after SIGINT before
	// a second signal forces exit.
	SignalGracePeriod = 10 * time.Second
)

// ============================================================================
// HTTP SETTINGS
// ============================================================================

const (
	// MaxRedirects caps redirect following per probe attempt.
	// Bounded to avoid redirect loops on misbehaving devices.
	MaxRedirects = 5

	// MaxBodySize caps how much of a response body is read for
	// signature matching (100KB). WebFig login pages are a few KB;
	// anything larger than this cannot change the classification.
	MaxBodySize int64 = 100 * 1024
)

// DefaultPorts is the port set used when no port spec is given.
// 80/443 are the WebFig defaults on RouterOS; 8080 is the most common
// relocation for the unencrypted listener.
var DefaultPorts = []uint16{80, 443, 8080}

// EncryptedPorts lists ports conventionally carrying TLS; the prober
// tries https first on these and http first everywhere else.
var EncryptedPorts = map[uint16]bool{
	443:  true,
	8443: true,
}

// SampleDisabled means prefix expansion is not sampled: every host
// address of every prefix is produced.
const SampleDisabled = 0
