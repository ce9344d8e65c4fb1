// Proxy support for scanning from a different vantage point.
//
// Supported schemes:
//   - http://, https:// - CONNECT proxies
//   - socks5://         - SOCKS5, local DNS resolution
//   - socks5h://        - SOCKS5, DNS resolved on the proxy side
package httpclient

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/net/proxy"
)

var supportedProxySchemes = map[string]bool{
	"http":    true,
	"https":   true,
	"socks5":  true,
	"socks5h": true,
}

// ParseProxyURL validates a proxy URL string. A bare host:port defaults
// to http://. Returns nil, nil for the empty string (no proxy).
func ParseProxyURL(raw string) (*url.URL, error) {
	if raw == "" {
		return nil, nil
	}
	if !strings.Contains(raw, "://") {
		raw = "http://" + raw
	}
	u, err := url.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("invalid proxy URL: %w", err)
	}
	scheme := strings.ToLower(u.Scheme)
	if !supportedProxySchemes[scheme] {
		return nil, fmt.Errorf("unsupported proxy scheme %q (supported: http, https, socks5, socks5h)", scheme)
	}
	if u.Hostname() == "" {
		return nil, fmt.Errorf("proxy URL missing host")
	}
	return u, nil
}

// applyProxy wires the proxy into the transport. HTTP proxies use the
// transport's own CONNECT support; SOCKS5 replaces the dialer.
func applyProxy(transport *http.Transport, raw string, timeout time.Duration) error {
	u, err := ParseProxyURL(raw)
	if err != nil {
		return err
	}
	if u == nil {
		return nil
	}

	scheme := strings.ToLower(u.Scheme)
	if scheme == "http" || scheme == "https" {
		transport.Proxy = http.ProxyURL(u)
		return nil
	}

	dialer, err := socksDialer(u, timeout)
	if err != nil {
		return err
	}
	transport.Proxy = nil
	transport.DialContext = dialer.DialContext
	return nil
}

type contextDialer interface {
	DialContext(ctx context.Context, network, address string) (net.Conn, error)
}

// socksDialer builds a SOCKS5 dialer with timeout support. socks5h is
// the same wire protocol; passing hostnames through makes the proxy
// resolve them, which never applies here since probe targets are
// literal IPs.
func socksDialer(u *url.URL, timeout time.Duration) (contextDialer, error) {
	var auth *proxy.Auth
	if u.User != nil {
		pass, _ := u.User.Password()
		auth = &proxy.Auth{User: u.User.Username(), Password: pass}
	}

	host := u.Hostname()
	port := u.Port()
	if port == "" {
		port = "1080"
	}

	forward := &net.Dialer{Timeout: timeout}
	d, err := proxy.SOCKS5("tcp", net.JoinHostPort(host, port), auth, forward)
	if err != nil {
		return nil, fmt.Errorf("socks5 dialer: %w", err)
	}
	if cd, ok := d.(proxy.ContextDialer); ok {
		return cd, nil
	}
	return plainDialer{d}, nil
}

// plainDialer adapts a context-less proxy.Dialer.
type plainDialer struct {
	d proxy.Dialer
}

func (p plainDialer) DialContext(ctx context.Context, network, address string) (net.Conn, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return p.d.Dial(network, address)
}
