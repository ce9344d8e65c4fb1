package ui

import (
	"bytes"
	"net/netip"
	"strings"
	"testing"

	"github.com/webfigscan/webfigscan/pkg/probe"
)

// Tests run with stdout piped, so ColorEnabled() is false and output
// is the plain machine-readable shape.

func TestFormatResultMatch(t *testing.T) {
	r := probe.Result{
		Addr:   netip.MustParseAddr("10.0.0.2"),
		Port:   80,
		Kind:   probe.KindMatch,
		Scheme: "http",
		Status: 200,
		Label:  "RouterOS v7.12",
	}
	got := FormatResult(r)
	want := "10.0.0.2:80 -> RouterOS v7.12 [200] http://10.0.0.2:80/"
	if got != want {
		t.Errorf("FormatResult = %q, want %q", got, want)
	}
}

func TestFormatResultOpen(t *testing.T) {
	r := probe.Result{
		Addr:   netip.MustParseAddr("10.0.0.9"),
		Port:   8291,
		Kind:   probe.KindOpen,
		Scheme: "tcp",
	}
	got := FormatResult(r)
	want := "10.0.0.9:8291 -> open port [tcp] tcp://10.0.0.9:8291/"
	if got != want {
		t.Errorf("FormatResult = %q, want %q", got, want)
	}
}

func TestBannerSuppressedInSilentMode(t *testing.T) {
	SetSilent(true)
	defer SetSilent(false)

	var buf bytes.Buffer
	FprintBanner(&buf)
	if buf.Len() != 0 {
		t.Errorf("banner printed in silent mode: %q", buf.String())
	}
}

func TestBannerNamesProduct(t *testing.T) {
	SetSilent(false)
	var buf bytes.Buffer
	FprintBanner(&buf)
	if !strings.Contains(buf.String(), "WebFig") {
		t.Errorf("banner missing product name: %q", buf.String())
	}
	if !strings.Contains(buf.String(), Version) {
		t.Errorf("banner missing version: %q", buf.String())
	}
}
