// Package httpclient provides the HTTP client factory for probe attempts.
//
// Clients are built per scan run and shared by every probe unit:
// connection pooling matters little against thousands of distinct hosts,
// but the TLS and redirect policy must be uniform. Certificate
// verification is disabled — the goal is detection, not trust
// establishment — and redirects are followed up to a small bounded count
// so login pages behind a scheme or path redirect still classify.
package httpclient

import (
	"crypto/tls"
	"net"
	"net/http"
	"time"

	"github.com/webfigscan/webfigscan/pkg/defaults"
)

// Config holds HTTP client configuration options.
type Config struct {
	// Timeout is the total per-attempt timeout, connect included.
	Timeout time.Duration

	// InsecureSkipVerify skips TLS certificate verification.
	// Always true for detection scans.
	InsecureSkipVerify bool

	// Proxy is an optional HTTP/SOCKS proxy URL.
	Proxy string

	// MaxRedirects caps redirect following per request.
	MaxRedirects int

	// DisableKeepAlives turns off connection reuse. Probe units each
	// talk to a different host at most twice, so keep-alives are off
	// by default to release sockets promptly.
	DisableKeepAlives bool
}

// DefaultConfig returns the scan-tuned defaults.
func DefaultConfig() Config {
	return Config{
		Timeout:            defaults.ProbeTimeout,
		InsecureSkipVerify: true,
		MaxRedirects:       defaults.MaxRedirects,
		DisableKeepAlives:  true,
	}
}

// New creates an HTTP client with the given configuration. The returned
// client is safe for concurrent use by all probe units.
func New(cfg Config) (*http.Client, error) {
	if cfg.Timeout == 0 {
		cfg.Timeout = defaults.ProbeTimeout
	}
	if cfg.MaxRedirects == 0 {
		cfg.MaxRedirects = defaults.MaxRedirects
	}

	dialer := &net.Dialer{
		Timeout: cfg.Timeout,
	}

	transport := &http.Transport{
		DialContext:       dialer.DialContext,
		DisableKeepAlives: cfg.DisableKeepAlives,

		TLSHandshakeTimeout: cfg.Timeout,
		TLSClientConfig: &tls.Config{
			InsecureSkipVerify: cfg.InsecureSkipVerify,
		},

		// One connection per unit; no pooling across the scan.
		MaxIdleConnsPerHost: 1,
	}

	if cfg.Proxy != "" {
		if err := applyProxy(transport, cfg.Proxy, cfg.Timeout); err != nil {
			return nil, err
		}
	}

	maxRedirects := cfg.MaxRedirects
	return &http.Client{
		Transport: transport,
		Timeout:   cfg.Timeout,
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			if len(via) >= maxRedirects {
				return http.ErrUseLastResponse
			}
			return nil
		},
	}, nil
}
