package config

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func parse(t *testing.T, args ...string) (*Config, error) {
	t.Helper()
	return ParseFlags(args, io.Discard)
}

func TestParseFlagsDefaults(t *testing.T) {
	cfg, err := parse(t, "192.168.88.1")
	if err != nil {
		t.Fatalf("ParseFlags: %v", err)
	}
	if cfg.Target != "192.168.88.1" {
		t.Errorf("Target = %q", cfg.Target)
	}
	if cfg.Concurrency != 400 {
		t.Errorf("Concurrency = %d, want 400", cfg.Concurrency)
	}
	if cfg.Timeout() != 800*time.Millisecond {
		t.Errorf("Timeout = %v, want 800ms", cfg.Timeout())
	}
	if cfg.OutputFormat != "console" {
		t.Errorf("OutputFormat = %q", cfg.OutputFormat)
	}
}

func TestParseFlagsRequiresTarget(t *testing.T) {
	_, err := parse(t)
	if !errors.Is(err, ErrUsage) {
		t.Fatalf("err = %v, want ErrUsage", err)
	}
}

func TestParseFlagsRejectsMultipleSources(t *testing.T) {
	_, err := parse(t, "-asn", "AS12345", "10.0.0.0/24")
	if !errors.Is(err, ErrUsage) {
		t.Fatalf("err = %v, want ErrUsage", err)
	}
}

func TestParseFlagsRejectsPortsAliasConflict(t *testing.T) {
	_, err := parse(t, "-ports", "80", "-p", "443", "10.0.0.1")
	if !errors.Is(err, ErrUsage) {
		t.Fatalf("err = %v, want ErrUsage", err)
	}
}

func TestParseFlagsRejectsPortsWithAllPorts(t *testing.T) {
	_, err := parse(t, "-ports", "80", "-all-ports", "10.0.0.1")
	if !errors.Is(err, ErrUsage) {
		t.Fatalf("err = %v, want ErrUsage", err)
	}
}

func TestParseFlagsRejectsBadValues(t *testing.T) {
	cases := [][]string{
		{"-c", "0", "10.0.0.1"},
		{"-timeout-ms", "0", "10.0.0.1"},
		{"-sample", "-1", "10.0.0.1"},
		{"-format", "xml", "10.0.0.1"},
	}
	for _, args := range cases {
		if _, err := parse(t, args...); !errors.Is(err, ErrUsage) {
			t.Errorf("args %v: err = %v, want ErrUsage", args, err)
		}
	}
}

func TestProfileAppliesUnsetFlags(t *testing.T) {
	path := filepath.Join(t.TempDir(), "profile.yaml")
	data := "ports: \"80,8291\"\nconcurrency: 50\ntimeout_ms: 1500\nshow_open: true\n"
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := parse(t, "-profile", path, "10.0.0.1")
	if err != nil {
		t.Fatalf("ParseFlags: %v", err)
	}
	if cfg.Ports != "80,8291" {
		t.Errorf("Ports = %q", cfg.Ports)
	}
	if cfg.Concurrency != 50 {
		t.Errorf("Concurrency = %d", cfg.Concurrency)
	}
	if cfg.TimeoutMS != 1500 {
		t.Errorf("TimeoutMS = %d", cfg.TimeoutMS)
	}
	if !cfg.ShowOpen {
		t.Error("ShowOpen not applied from profile")
	}
}

func TestExplicitFlagsBeatProfile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "profile.yaml")
	data := "concurrency: 50\nports: \"8291\"\n"
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := parse(t, "-profile", path, "-c", "10", "10.0.0.1")
	if err != nil {
		t.Fatalf("ParseFlags: %v", err)
	}
	if cfg.Concurrency != 10 {
		t.Errorf("Concurrency = %d, want explicit 10", cfg.Concurrency)
	}
	if cfg.Ports != "8291" {
		t.Errorf("Ports = %q, want profile value", cfg.Ports)
	}
}

func TestProfileMissingFile(t *testing.T) {
	_, err := parse(t, "-profile", "/nonexistent/profile.yaml", "10.0.0.1")
	if err == nil {
		t.Fatal("expected error for missing profile")
	}
}
