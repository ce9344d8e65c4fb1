package addrspace

import (
	"errors"
	"net/netip"
	"testing"
)

func mustParse(t *testing.T, s string) Spec {
	t.Helper()
	sp, err := Parse(s)
	if err != nil {
		t.Fatalf("Parse(%q): %v", s, err)
	}
	return sp
}

func expand(t *testing.T, s string) *Set {
	t.Helper()
	set := NewSet()
	mustParse(t, s).Expand(set, 0)
	return set
}

func TestParseSingle(t *testing.T) {
	sp := mustParse(t, "10.0.0.1")
	single, ok := sp.(Single)
	if !ok {
		t.Fatalf("expected Single, got %T", sp)
	}
	if single.Addr != netip.MustParseAddr("10.0.0.1") {
		t.Errorf("wrong address: %v", single.Addr)
	}
	if single.Count() != 1 {
		t.Errorf("Count = %d, want 1", single.Count())
	}
}

func TestParseRejectsGarbage(t *testing.T) {
	for _, s := range []string{
		"",
		"not-an-ip",
		"10.0.0",
		"10.0.0.256",
		"2001:db8::1",
		"2001:db8::/64",
		"10.0.0.0/33",
		"10.0.0.9-10.0.0.1", // reversed
		"10.0.0.1-banana",
	} {
		if _, err := Parse(s); !errors.Is(err, ErrInvalidSpec) {
			t.Errorf("Parse(%q): expected ErrInvalidSpec, got %v", s, err)
		}
	}
}

// The documented CIDR policy: every address of the block, network and
// broadcast included.
func TestBlockExpansionCounts(t *testing.T) {
	tests := []struct {
		cidr string
		want int
	}{
		{"192.168.1.0/24", 256},
		{"10.0.0.0/30", 4},
		{"10.0.0.0/31", 2},
		{"10.0.0.5/32", 1},
		{"172.16.0.0/16", 65536},
	}
	for _, tt := range tests {
		set := expand(t, tt.cidr)
		if set.Len() != tt.want {
			t.Errorf("%s: expanded to %d addresses, want %d", tt.cidr, set.Len(), tt.want)
		}
	}
}

func TestBlockIncludesNetworkAndBroadcast(t *testing.T) {
	set := expand(t, "192.168.1.0/24")
	for _, s := range []string{"192.168.1.0", "192.168.1.1", "192.168.1.255"} {
		if !set.Contains(netip.MustParseAddr(s)) {
			t.Errorf("expected %s in /24 expansion", s)
		}
	}
}

func TestBlockMasksHostBits(t *testing.T) {
	// 10.0.0.77/24 denotes the same block as 10.0.0.0/24.
	set := expand(t, "10.0.0.77/24")
	if set.Len() != 256 {
		t.Fatalf("expanded to %d addresses, want 256", set.Len())
	}
	if !set.Contains(netip.MustParseAddr("10.0.0.0")) {
		t.Error("expected block base 10.0.0.0 present")
	}
}

func TestRangeExpansionInclusive(t *testing.T) {
	set := expand(t, "10.0.0.1-10.0.0.3")
	if set.Len() != 3 {
		t.Fatalf("expanded to %d addresses, want 3", set.Len())
	}
	sorted := set.Sorted()
	want := []string{"10.0.0.1", "10.0.0.2", "10.0.0.3"}
	for i, s := range want {
		if sorted[i] != netip.MustParseAddr(s) {
			t.Errorf("sorted[%d] = %v, want %s", i, sorted[i], s)
		}
	}
}

func TestRangeCount(t *testing.T) {
	sp := mustParse(t, "10.0.0.0-10.0.1.255")
	if got := sp.Count(); got != 512 {
		t.Errorf("Count = %d, want 512", got)
	}
	// Single-address range.
	sp = mustParse(t, "10.0.0.1-10.0.0.1")
	if got := sp.Count(); got != 1 {
		t.Errorf("Count = %d, want 1", got)
	}
}

func TestRangeSaturatesAtTop(t *testing.T) {
	set := expand(t, "255.255.255.250-255.255.255.255")
	if set.Len() != 6 {
		t.Fatalf("expanded to %d addresses, want 6", set.Len())
	}
	if !set.Contains(netip.MustParseAddr("255.255.255.255")) {
		t.Error("expected 255.255.255.255 in expansion")
	}
	if set.Contains(netip.MustParseAddr("0.0.0.0")) {
		t.Error("expansion wrapped past 255.255.255.255")
	}
}

func TestOverlappingSpecsDeduplicate(t *testing.T) {
	set := NewSet()
	mustParse(t, "10.0.0.0/30").Expand(set, 0)
	mustParse(t, "10.0.0.2-10.0.0.5").Expand(set, 0)
	mustParse(t, "10.0.0.1").Expand(set, 0)
	// Union: 10.0.0.0 .. 10.0.0.5
	if set.Len() != 6 {
		t.Errorf("union has %d addresses, want 6", set.Len())
	}
}

func TestExpandPrefixesSkipsMalformed(t *testing.T) {
	set := NewSet()
	skipped := ExpandPrefixes([]string{
		"10.0.0.0/30",
		"",
		"garbage",
		"2001:db8::/64",
		"10.0.0.0/30", // duplicate block
		"10.0.1.0/31",
	}, set, 0)
	if skipped != 2 {
		t.Errorf("skipped = %d, want 2", skipped)
	}
	if set.Len() != 6 {
		t.Errorf("set has %d addresses, want 6", set.Len())
	}
}

func TestSamplingCapsPerPrefix(t *testing.T) {
	set := NewSet()
	skipped := ExpandPrefixes([]string{"10.0.0.0/24", "10.1.0.0/24"}, set, 10)
	if skipped != 0 {
		t.Fatalf("skipped = %d, want 0", skipped)
	}
	// 10 sampled addresses per prefix, disjoint prefixes.
	if set.Len() != 20 {
		t.Errorf("set has %d addresses, want 20", set.Len())
	}
	if !set.Contains(netip.MustParseAddr("10.0.0.9")) {
		t.Error("expected first-N sampling to include 10.0.0.9")
	}
	if set.Contains(netip.MustParseAddr("10.0.0.10")) {
		t.Error("sampling leaked past the limit")
	}
}

func TestSortedIsAscending(t *testing.T) {
	set := NewSet()
	mustParse(t, "10.0.1.0/31").Expand(set, 0)
	mustParse(t, "9.255.255.255").Expand(set, 0)
	sorted := set.Sorted()
	for i := 1; i < len(sorted); i++ {
		if addrValue(sorted[i-1]) >= addrValue(sorted[i]) {
			t.Fatalf("Sorted not strictly ascending at %d: %v >= %v", i, sorted[i-1], sorted[i])
		}
	}
	if sorted[0] != netip.MustParseAddr("9.255.255.255") {
		t.Errorf("sorted[0] = %v, want 9.255.255.255", sorted[0])
	}
}
