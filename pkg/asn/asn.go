// Package asn resolves an Autonomous System number to its announced
// IPv4 prefixes via the RIPEstat Data API.
package asn

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/webfigscan/webfigscan/pkg/iohelper"
)

// ErrBadASN indicates an ASN identifier that could not be parsed.
var ErrBadASN = errors.New("asn: invalid ASN identifier")

// LookupError wraps failures talking to the prefix data source. It is
// distinct from the legitimate "ASN announces zero prefixes" answer,
// which is an empty slice and a nil error.
type LookupError struct {
	ASN uint32
	Err error
}

func (e *LookupError) Error() string {
	return fmt.Sprintf("asn: lookup AS%d: %v", e.ASN, e.Err)
}

func (e *LookupError) Unwrap() error { return e.Err }

// Client queries announced prefixes for an ASN.
type Client struct {
	httpClient *http.Client
	baseURL    string
}

// NewClient creates a RIPEstat client. httpClient should carry a
// generous API timeout, not the probe timeout.
func NewClient(httpClient *http.Client) *Client {
	return &Client{
		httpClient: httpClient,
		baseURL:    "https://stat.ripe.net",
	}
}

// ParseASN normalizes an ASN identifier. Accepted forms: "64496",
// "AS64496", "as64496".
func ParseASN(s string) (uint32, error) {
	t := strings.TrimSpace(s)
	if len(t) >= 2 && strings.EqualFold(t[:2], "as") {
		t = t[2:]
	}
	n, err := strconv.ParseUint(t, 10, 32)
	if err != nil || t == "" {
		return 0, fmt.Errorf("%w: %q", ErrBadASN, s)
	}
	return uint32(n), nil
}

// AnnouncedPrefixes returns the IPv4 CIDR prefixes announced by the
// ASN, in the order the data source reports them. IPv6 announcements
// are filtered out. An ASN with no IPv4 announcements yields an empty
// slice and nil error; transport and decode failures yield a
// *LookupError.
func (c *Client) AnnouncedPrefixes(ctx context.Context, asn uint32) ([]string, error) {
	url := fmt.Sprintf("%s/data/announced-prefixes/data.json?resource=AS%d", c.baseURL, asn)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, &LookupError{ASN: asn, Err: err}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &LookupError{ASN: asn, Err: err}
	}
	defer iohelper.DrainAndClose(resp.Body)

	if resp.StatusCode != http.StatusOK {
		return nil, &LookupError{ASN: asn, Err: fmt.Errorf("unexpected status %d", resp.StatusCode)}
	}

	body, err := iohelper.ReadBodyDefault(resp.Body)
	if err != nil {
		return nil, &LookupError{ASN: asn, Err: err}
	}

	var payload struct {
		Data struct {
			Prefixes []struct {
				Prefix string `json:"prefix"`
			} `json:"prefixes"`
		} `json:"data"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, &LookupError{ASN: asn, Err: fmt.Errorf("malformed response: %w", err)}
	}

	prefixes := make([]string, 0, len(payload.Data.Prefixes))
	for _, p := range payload.Data.Prefixes {
		// v6 announcements are out of scope for an IPv4 scanner.
		if strings.Contains(p.Prefix, ":") {
			continue
		}
		prefixes = append(prefixes, p.Prefix)
	}
	return prefixes, nil
}
