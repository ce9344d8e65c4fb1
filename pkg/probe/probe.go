// Package probe performs the network interaction for one (address, port)
// pair: an HTTP request with scheme fallback, then a raw TCP connect
// fallback, classifying whatever bytes come back.
package probe

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"net/netip"
	"strconv"
	"time"

	"github.com/webfigscan/webfigscan/pkg/defaults"
	"github.com/webfigscan/webfigscan/pkg/iohelper"
	"github.com/webfigscan/webfigscan/pkg/mikrotik"
)

// Kind classifies a probe outcome.
type Kind int

const (
	// KindSilent is no response, no match: timeouts, refusals, and
	// responses the detector does not classify.
	KindSilent Kind = iota

	// KindMatch is a confirmed application-level detection.
	KindMatch

	// KindOpen is the weaker signal: the HTTP layers yielded nothing
	// but a raw TCP connect succeeded.
	KindOpen
)

// String returns the wire name of the kind, used in structured output.
func (k Kind) String() string {
	switch k {
	case KindMatch:
		return "match"
	case KindOpen:
		return "open"
	default:
		return "silent"
	}
}

// Result is the outcome of probing one (address, port) pair.
type Result struct {
	Addr   netip.Addr
	Port   uint16
	Kind   Kind
	Scheme string // "http", "https", or "tcp"
	Status int    // HTTP status code; 0 for KindOpen
	Label  string // product label for KindMatch
}

// Endpoint renders the address:port pair.
func (r Result) Endpoint() string {
	return net.JoinHostPort(r.Addr.String(), strconv.Itoa(int(r.Port)))
}

// URL renders the probed URL for the scheme that produced the result.
func (r Result) URL() string {
	return fmt.Sprintf("%s://%s/", r.Scheme, r.Endpoint())
}

// Prober probes endpoints. One Prober is shared by all probe units of a
// run; it owns no per-unit state.
type Prober struct {
	client    *http.Client
	dialer    *net.Dialer
	timeout   time.Duration
	userAgent string
	log       *slog.Logger

	// TCPFallback controls whether a raw connect is attempted after
	// both HTTP schemes fail.
	TCPFallback bool
}

// New creates a Prober. client carries the per-attempt timeout and
// redirect policy (see pkg/httpclient); the same timeout bounds the raw
// TCP fallback.
func New(client *http.Client, timeout time.Duration, logger *slog.Logger) *Prober {
	if timeout <= 0 {
		timeout = defaults.ProbeTimeout
	}
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Prober{
		client:      client,
		dialer:      &net.Dialer{Timeout: timeout},
		timeout:     timeout,
		userAgent:   "webfigscan/" + defaults.Version,
		log:         logger,
		TCPFallback: true,
	}
}

// Attempts reports the maximum number of timeout-bounded network
// attempts one unit can make (two schemes plus the TCP fallback).
// The scheduler sizes the per-unit deadline from this.
func (p *Prober) Attempts() int {
	if p.TCPFallback {
		return 3
	}
	return 2
}

// Timeout is the per-attempt timeout.
func (p *Prober) Timeout() time.Duration { return p.timeout }

// Probe drives one (address, port) unit to a terminal Result. Errors at
// any stage degrade to KindSilent; nothing propagates. Every connection
// opened is closed before return.
func (p *Prober) Probe(ctx context.Context, addr netip.Addr, port uint16) Result {
	result := Result{Addr: addr, Port: port, Kind: KindSilent}

	for _, scheme := range schemeOrder(port) {
		det, status, err := p.attemptHTTP(ctx, scheme, addr, port)
		if err != nil {
			p.log.Debug("probe attempt failed",
				slog.String("endpoint", result.Endpoint()),
				slog.String("scheme", scheme),
				slog.String("error", err.Error()))
			continue
		}
		if det != nil {
			result.Kind = KindMatch
			result.Scheme = scheme
			result.Status = status
			result.Label = det.Label
			return result
		}
		// A response arrived but did not classify; still try the
		// other scheme — the device may only expose WebFig on one.
	}

	if p.TCPFallback && p.connects(ctx, addr, port) {
		result.Kind = KindOpen
		result.Scheme = "tcp"
	}
	return result
}

// schemeOrder returns the attempt order for a port. Conventionally
// encrypted ports go https-first; everything else http-first. A
// heuristic only — both schemes are always attempted.
func schemeOrder(port uint16) [2]string {
	if defaults.EncryptedPorts[port] {
		return [2]string{"https", "http"}
	}
	return [2]string{"http", "https"}
}

// attemptHTTP issues one GET for the root resource. A non-nil Detection
// means a confirmed match; (nil, status, nil) means a response arrived
// but did not classify.
func (p *Prober) attemptHTTP(ctx context.Context, scheme string, addr netip.Addr, port uint16) (*mikrotik.Detection, int, error) {
	url := fmt.Sprintf("%s://%s/", scheme, net.JoinHostPort(addr.String(), strconv.Itoa(int(port))))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, 0, err
	}
	req.Header.Set("User-Agent", p.userAgent)

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, 0, err
	}
	defer iohelper.DrainAndClose(resp.Body)

	// A read error mid-body is fine: partial bodies still classify.
	body, _ := iohelper.ReadBody(resp.Body, defaults.MaxBodySize)

	det, ok := mikrotik.Detect(resp.StatusCode, resp.Header.Get("Server"), string(body))
	if !ok {
		return nil, resp.StatusCode, nil
	}
	return &det, resp.StatusCode, nil
}

// connects reports whether a raw TCP connect to the endpoint succeeds
// within the per-attempt timeout.
func (p *Prober) connects(ctx context.Context, addr netip.Addr, port uint16) bool {
	target := net.JoinHostPort(addr.String(), strconv.Itoa(int(port)))
	conn, err := p.dialer.DialContext(ctx, "tcp", target)
	if err != nil {
		return false
	}
	conn.Close()
	return true
}
