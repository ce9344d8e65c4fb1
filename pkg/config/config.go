// Package config holds CLI configuration: flag parsing, scan profiles,
// and validation.
package config

import (
	"flag"
	"fmt"
	"io"
	"time"

	"github.com/webfigscan/webfigscan/pkg/defaults"
)

// Config holds all CLI configuration options
type Config struct {
	// Target settings - exactly one of Target, ASN, ASNFile
	Target  string // IPv4 address, CIDR block, or start-end range
	ASN     string // Autonomous system number, e.g. "AS12345" or "12345"
	ASNFile string // File of announced prefixes, one per line

	// Port settings
	Ports    string // Port spec: "80,443,8000-8100" (empty = defaults)
	AllPorts bool   // Scan every port 1-65535

	// Execution settings
	Concurrency int // Parallel probe units (default: 400)
	TimeoutMS   int // Per-probe timeout in milliseconds (default: 800)
	Sample      int // Cap expanded addresses at N (0 = no cap)

	// Network settings
	Proxy string // Proxy URL: http://, https://, socks5://, socks5h://

	// Output settings
	ShowOpen     bool   // Report open ports that carry no management interface
	Silent       bool   // Suppress banner, manifest, and stats
	NoColor      bool   // Disable colored output
	Verbose      bool   // Debug logging to stderr
	OutputFile   string // Result file path (empty = console only)
	OutputFormat string // console, jsonl

	// Profile settings
	ProfileFile string // YAML scan profile; explicit flags win
}

// Timeout returns the per-probe timeout as a duration.
func (c *Config) Timeout() time.Duration {
	return time.Duration(c.TimeoutMS) * time.Millisecond
}

// ParseFlags parses args (not including the program name) into a Config.
// Usage and errors go to errOut.
func ParseFlags(args []string, errOut io.Writer) (*Config, error) {
	cfg := &Config{}

	fs := flag.NewFlagSet("webfigscan", flag.ContinueOnError)
	fs.SetOutput(errOut)
	fs.Usage = func() {
		fmt.Fprintln(errOut, "Usage: webfigscan [flags] <target>")
		fmt.Fprintln(errOut, "  <target>  IPv4 address, CIDR block, or start-end range")
		fmt.Fprintln(errOut)
		fs.PrintDefaults()
	}

	// === TARGETS ===
	fs.StringVar(&cfg.ASN, "asn", "", "Scan announced prefixes of an AS (e.g. AS12345)")
	fs.StringVar(&cfg.ASNFile, "asn-file", "", "File of prefixes to scan, one per line")

	// === PORTS ===
	fs.StringVar(&cfg.Ports, "ports", "", "Ports to scan: \"80,443,8000-8100\" (default 80,443,8080)")
	fs.StringVar(&cfg.Ports, "p", "", "Ports to scan (alias)")
	fs.BoolVar(&cfg.AllPorts, "all-ports", false, "Scan every port 1-65535")

	// === EXECUTION ===
	fs.IntVar(&cfg.Concurrency, "c", defaults.Concurrency, "Concurrent probe units")
	fs.IntVar(&cfg.TimeoutMS, "timeout-ms", int(defaults.ProbeTimeout/time.Millisecond), "Per-probe timeout in milliseconds")
	fs.IntVar(&cfg.Sample, "sample", defaults.SampleDisabled, "Cap expanded addresses at N (0 = no cap)")
	fs.StringVar(&cfg.Proxy, "proxy", "", "Proxy URL (http, https, socks5, socks5h)")

	// === OUTPUT ===
	fs.BoolVar(&cfg.ShowOpen, "show-open", false, "Also report open ports without a management interface")
	fs.BoolVar(&cfg.Silent, "silent", false, "Suppress banner and stats; print match lines only")
	fs.BoolVar(&cfg.NoColor, "no-color", false, "Disable colored output")
	fs.BoolVar(&cfg.Verbose, "verbose", false, "Debug logging to stderr")
	fs.StringVar(&cfg.OutputFile, "o", "", "Write JSONL results to file")
	fs.StringVar(&cfg.OutputFormat, "format", "console", "Stdout format: console, jsonl")
	fs.StringVar(&cfg.ProfileFile, "profile", "", "YAML scan profile (explicit flags win)")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	switch fs.NArg() {
	case 0:
	case 1:
		cfg.Target = fs.Arg(0)
	default:
		return nil, fmt.Errorf("%w: expected at most one target, got %d", ErrUsage, fs.NArg())
	}

	setFlags := make(map[string]bool)
	fs.Visit(func(f *flag.Flag) { setFlags[f.Name] = true })

	// Both flags bind the same field; taking both would silently keep
	// whichever came later.
	if setFlags["ports"] && setFlags["p"] {
		return nil, fmt.Errorf("%w: -ports and -p are aliases; give only one", ErrUsage)
	}

	if cfg.ProfileFile != "" {
		if err := applyProfile(cfg, cfg.ProfileFile, setFlags); err != nil {
			return nil, err
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the configuration for consistency.
func (c *Config) Validate() error {
	sources := 0
	if c.Target != "" {
		sources++
	}
	if c.ASN != "" {
		sources++
	}
	if c.ASNFile != "" {
		sources++
	}
	switch {
	case sources == 0:
		return fmt.Errorf("%w: no target given (positional target, -asn, or -asn-file)", ErrUsage)
	case sources > 1:
		return fmt.Errorf("%w: target, -asn, and -asn-file are mutually exclusive", ErrUsage)
	}

	if c.AllPorts && c.Ports != "" {
		return fmt.Errorf("%w: -ports and -all-ports are mutually exclusive", ErrUsage)
	}
	if c.Concurrency < 1 {
		return fmt.Errorf("%w: concurrency must be at least 1", ErrUsage)
	}
	if c.TimeoutMS < 1 {
		return fmt.Errorf("%w: timeout must be at least 1ms", ErrUsage)
	}
	if c.Sample < 0 {
		return fmt.Errorf("%w: sample must not be negative", ErrUsage)
	}
	switch c.OutputFormat {
	case "console", "jsonl":
	default:
		return fmt.Errorf("%w: unknown output format %q (console, jsonl)", ErrUsage, c.OutputFormat)
	}
	return nil
}
