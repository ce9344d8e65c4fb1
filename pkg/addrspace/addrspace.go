// Package addrspace expands target specifications into deduplicated sets
// of IPv4 addresses.
//
// A target spec is one of:
//   - a single address: "203.0.113.7"
//   - a CIDR block:     "203.0.113.0/24"
//   - an A-B range:     "203.0.113.10-203.0.113.40"
//
// Prefix lists (from an ASN lookup or a file) expand as a union of CIDR
// blocks, tolerating malformed entries.
//
// CIDR policy: expansion yields every address of the block, network and
// broadcast included — a /24 produces 256 addresses, a /31 two, a /32 one.
// Devices answer on .0 and .255 often enough on classless networks that
// skipping them loses real results.
package addrspace

import (
	"encoding/binary"
	"errors"
	"fmt"
	"net/netip"
	"sort"
	"strings"
)

// ErrInvalidSpec indicates a target spec that could not be parsed.
// Callers should use errors.Is() to check for it.
var ErrInvalidSpec = errors.New("addrspace: invalid target spec")

// Spec is one parsed target specification. Specs are immutable once
// parsed; Expand adds the addresses the spec denotes to a Set.
type Spec interface {
	// Expand adds every address denoted by the spec to set.
	// A sample limit > 0 caps the number of addresses taken from the
	// spec (first-N in ascending order); 0 means full expansion.
	Expand(set *Set, sample int)

	// Count reports how many addresses a full expansion would produce.
	Count() uint64
}

// Single is a one-address spec.
type Single struct {
	Addr netip.Addr
}

// Block is a CIDR spec. Expansion covers the whole block, network and
// broadcast addresses included (see package comment).
type Block struct {
	Prefix netip.Prefix
}

// Range is an inclusive A-B spec with Start <= End.
type Range struct {
	Start netip.Addr
	End   netip.Addr
}

// Parse parses one target spec string. The syntax is disambiguated by
// shape: "/" means CIDR, "-" means range, otherwise a single address.
func Parse(s string) (Spec, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, fmt.Errorf("%w: empty spec", ErrInvalidSpec)
	}

	if strings.Contains(s, "/") {
		p, err := parsePrefix(s)
		if err != nil {
			return nil, err
		}
		return Block{Prefix: p}, nil
	}

	if i := strings.Index(s, "-"); i >= 0 {
		start, err := parseIPv4(s[:i])
		if err != nil {
			return nil, err
		}
		end, err := parseIPv4(s[i+1:])
		if err != nil {
			return nil, err
		}
		if addrValue(start) > addrValue(end) {
			return nil, fmt.Errorf("%w: reversed range %q", ErrInvalidSpec, s)
		}
		return Range{Start: start, End: end}, nil
	}

	a, err := parseIPv4(s)
	if err != nil {
		return nil, err
	}
	return Single{Addr: a}, nil
}

func (sp Single) Expand(set *Set, sample int) {
	if sample < 0 {
		return
	}
	set.Add(sp.Addr)
}

func (sp Single) Count() uint64 { return 1 }

func (sp Block) Expand(set *Set, sample int) {
	base := addrValue(sp.Prefix.Masked().Addr())
	n := sp.Count()
	if sample > 0 && uint64(sample) < n {
		n = uint64(sample)
	}
	for i := uint64(0); i < n; i++ {
		set.Add(valueAddr(base + uint32(i)))
	}
}

func (sp Block) Count() uint64 {
	return uint64(1) << (32 - sp.Prefix.Bits())
}

func (sp Range) Expand(set *Set, sample int) {
	n := sp.Count()
	if sample > 0 && uint64(sample) < n {
		n = uint64(sample)
	}
	cur := addrValue(sp.Start)
	for i := uint64(0); i < n; i++ {
		set.Add(valueAddr(cur))
		if cur == ^uint32(0) {
			// Saturate at 255.255.255.255 rather than wrapping.
			break
		}
		cur++
	}
}

func (sp Range) Count() uint64 {
	return uint64(addrValue(sp.End)-addrValue(sp.Start)) + 1
}

// ExpandPrefixes expands a list of CIDR strings into set, applying the
// per-prefix sample limit. Malformed entries are skipped, not fatal:
// prefix lists come from external sources and partial data is expected.
// The number of skipped entries is returned.
func ExpandPrefixes(prefixes []string, set *Set, sample int) (skipped int) {
	for _, line := range prefixes {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		p, err := parsePrefix(line)
		if err != nil {
			skipped++
			continue
		}
		Block{Prefix: p}.Expand(set, sample)
	}
	return skipped
}

// Set is a deduplicated collection of IPv4 addresses. The zero value is
// not usable; construct with NewSet. A Set is not safe for concurrent
// mutation; once built it is read-only and safely shared across
// goroutines.
type Set struct {
	m map[netip.Addr]struct{}
}

// NewSet returns an empty address set.
func NewSet() *Set {
	return &Set{m: make(map[netip.Addr]struct{})}
}

// Add inserts a into the set. Duplicate inserts are no-ops.
func (s *Set) Add(a netip.Addr) {
	s.m[a] = struct{}{}
}

// Len reports the number of distinct addresses.
func (s *Set) Len() int { return len(s.m) }

// Contains reports whether a is in the set.
func (s *Set) Contains(a netip.Addr) bool {
	_, ok := s.m[a]
	return ok
}

// Sorted returns the addresses in ascending 32-bit integer order.
// Sorting makes scan launch order, and therefore test expectations,
// deterministic.
func (s *Set) Sorted() []netip.Addr {
	out := make([]netip.Addr, 0, len(s.m))
	for a := range s.m {
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool {
		return addrValue(out[i]) < addrValue(out[j])
	})
	return out
}

func parseIPv4(s string) (netip.Addr, error) {
	a, err := netip.ParseAddr(strings.TrimSpace(s))
	if err != nil {
		return netip.Addr{}, fmt.Errorf("%w: %q is not an IPv4 address", ErrInvalidSpec, s)
	}
	a = a.Unmap()
	if !a.Is4() {
		return netip.Addr{}, fmt.Errorf("%w: %q is not an IPv4 address", ErrInvalidSpec, s)
	}
	return a, nil
}

func parsePrefix(s string) (netip.Prefix, error) {
	p, err := netip.ParsePrefix(strings.TrimSpace(s))
	if err != nil {
		return netip.Prefix{}, fmt.Errorf("%w: %q is not an IPv4 CIDR", ErrInvalidSpec, s)
	}
	if !p.Addr().Unmap().Is4() {
		return netip.Prefix{}, fmt.Errorf("%w: %q is not an IPv4 CIDR", ErrInvalidSpec, s)
	}
	return netip.PrefixFrom(p.Addr().Unmap(), p.Bits()), nil
}

func addrValue(a netip.Addr) uint32 {
	b := a.As4()
	return binary.BigEndian.Uint32(b[:])
}

func valueAddr(v uint32) netip.Addr {
	var b [4]byte
	binary.BigEndian.PutUint32(b[:], v)
	return netip.AddrFrom4(b)
}
