// Package ports parses port specifications into deduplicated, ascending
// port lists.
//
// A spec is a comma-separated mix of single ports and inclusive lo-hi
// ranges: "80,443,8080-8090". Every port must be in [1,65535]; port 0 is
// rejected at parse time. Output is sorted and deduplicated so that
// per-address iteration order is deterministic.
package ports

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/webfigscan/webfigscan/pkg/defaults"
)

// ErrInvalidPortSpec indicates a port spec that could not be parsed.
// The wrapped message names the offending token.
var ErrInvalidPortSpec = errors.New("ports: invalid port spec")

// Parse parses a comma-separated port spec into a sorted, deduplicated
// list. An empty spec is an error; callers wanting the default set use
// Default().
func Parse(spec string) ([]uint16, error) {
	seen := make(map[uint16]bool)
	var out []uint16

	for _, tok := range strings.Split(spec, ",") {
		tok = strings.TrimSpace(tok)
		if tok == "" {
			continue
		}
		lo, hi, err := parseToken(tok)
		if err != nil {
			return nil, err
		}
		for p := int(lo); p <= int(hi); p++ {
			if !seen[uint16(p)] {
				seen[uint16(p)] = true
				out = append(out, uint16(p))
			}
		}
	}

	if len(out) == 0 {
		return nil, fmt.Errorf("%w: empty port list", ErrInvalidPortSpec)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out, nil
}

func parseToken(tok string) (lo, hi uint16, err error) {
	if a, b, found := strings.Cut(tok, "-"); found {
		lo, err = parsePort(a)
		if err != nil {
			return 0, 0, err
		}
		hi, err = parsePort(b)
		if err != nil {
			return 0, 0, err
		}
		if lo > hi {
			return 0, 0, fmt.Errorf("%w: reversed range %q", ErrInvalidPortSpec, tok)
		}
		return lo, hi, nil
	}
	p, err := parsePort(tok)
	if err != nil {
		return 0, 0, err
	}
	return p, p, nil
}

func parsePort(s string) (uint16, error) {
	s = strings.TrimSpace(s)
	n, err := strconv.Atoi(s)
	if err != nil || n < 1 || n > 65535 {
		return 0, fmt.Errorf("%w: bad port %q", ErrInvalidPortSpec, s)
	}
	return uint16(n), nil
}

// All returns every port 1..65535 in ascending order.
func All() []uint16 {
	out := make([]uint16, 65535)
	for i := range out {
		out[i] = uint16(i + 1)
	}
	return out
}

// Default returns the WebFig well-known port set, sorted ascending.
func Default() []uint16 {
	out := make([]uint16, len(defaults.DefaultPorts))
	copy(out, defaults.DefaultPorts)
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
