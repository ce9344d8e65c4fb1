// Command cli is the webfigscan command-line interface: it expands a
// target specification into IPv4 addresses, probes the address × port
// cross product under bounded concurrency, and reports MikroTik
// WebFig/RouterOS management interfaces as they are found.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/webfigscan/webfigscan/pkg/addrspace"
	"github.com/webfigscan/webfigscan/pkg/asn"
	"github.com/webfigscan/webfigscan/pkg/cli"
	"github.com/webfigscan/webfigscan/pkg/config"
	"github.com/webfigscan/webfigscan/pkg/defaults"
	"github.com/webfigscan/webfigscan/pkg/httpclient"
	"github.com/webfigscan/webfigscan/pkg/input"
	"github.com/webfigscan/webfigscan/pkg/output"
	"github.com/webfigscan/webfigscan/pkg/ports"
	"github.com/webfigscan/webfigscan/pkg/probe"
	"github.com/webfigscan/webfigscan/pkg/runner"
	"github.com/webfigscan/webfigscan/pkg/ui"
)

// lookupTimeout bounds the ASN prefix lookup, which talks to a public
// API and deserves far more patience than a probe.
const lookupTimeout = 30 * time.Second

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	cfg, err := config.ParseFlags(args, os.Stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return defaults.ExitSuccess
		}
		fmt.Fprintln(os.Stderr, "Error:", err)
		return defaults.ExitUserError
	}

	ui.SetSilent(cfg.Silent)
	ui.SetNoColor(cfg.NoColor)
	ui.AutoConfigureColor()
	ui.PrintBanner()

	logger := newLogger(cfg.Verbose)

	ctx, cancel := cli.SignalContext(defaults.SignalGracePeriod)
	defer cancel()

	portList, err := resolvePorts(cfg)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return defaults.ExitUserError
	}

	set, code := resolveAddrs(ctx, cfg, logger)
	if code != defaults.ExitSuccess {
		return code
	}
	if set.Len() == 0 {
		// An ASN with no IPv4 announcements or a prefix file of only
		// malformed lines leaves nothing to scan; treat it like any
		// other bad target specification.
		fmt.Fprintln(os.Stderr, "Error: target specification produced no addresses")
		return defaults.ExitUserError
	}

	client, err := httpclient.New(httpclient.Config{
		Timeout:            cfg.Timeout(),
		InsecureSkipVerify: true,
		Proxy:              cfg.Proxy,
		MaxRedirects:       defaults.MaxRedirects,
		DisableKeepAlives:  true,
	})
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return defaults.ExitUserError
	}

	prober := probe.New(client, cfg.Timeout(), logger)
	prober.TCPFallback = cfg.ShowOpen

	writer, scanID, err := buildWriter(cfg)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return defaults.ExitUserError
	}

	sched := runner.New(cfg.Concurrency)
	// One unit may spend a full timeout per attempt; anything beyond
	// that is a stuck unit and gets cut off.
	sched.UnitTimeout = cfg.Timeout()*time.Duration(prober.Attempts()) + time.Second

	var writeFailed atomic.Bool
	sched.OnResult = resultHandler(writer, cfg.ShowOpen, func(err error) {
		writeFailed.Store(true)
		fmt.Fprintln(os.Stderr, "Error: write result:", err)
	})

	ui.PrintManifest(set.Len(), len(portList), cfg.Concurrency, cfg.Timeout().String(), scanID)

	start := time.Now()
	sched.Run(ctx, set.Sorted(), portList, prober.Probe)

	if !cfg.Silent {
		fmt.Fprintln(os.Stderr, ui.FormatStats(
			sched.Stats.Completed, sched.Stats.Matched, sched.Stats.Open,
			time.Since(start).Round(time.Millisecond).String()))
	}

	if err := writer.Close(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return defaults.ExitInternalErr
	}
	if writeFailed.Load() {
		return defaults.ExitInternalErr
	}
	return defaults.ExitSuccess
}

// resultHandler builds the scheduler callback: matches always go to the
// writer, open-port signals only when requested, silent results never.
// Write failures reach onErr; they do not stop the scan.
func resultHandler(w output.Writer, showOpen bool, onErr func(error)) func(probe.Result) {
	return func(r probe.Result) {
		if r.Kind == probe.KindSilent {
			return
		}
		if r.Kind == probe.KindOpen && !showOpen {
			return
		}
		if err := w.Write(r); err != nil {
			onErr(err)
		}
	}
}

// newLogger builds the run logger: debug text on stderr when verbose,
// discarded otherwise.
func newLogger(verbose bool) *slog.Logger {
	if !verbose {
		return slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}))
}

// resolvePorts turns the port flags into the scan's port list.
func resolvePorts(cfg *config.Config) ([]uint16, error) {
	switch {
	case cfg.AllPorts:
		return ports.All(), nil
	case cfg.Ports != "":
		return ports.Parse(cfg.Ports)
	default:
		return ports.Default(), nil
	}
}

// resolveAddrs expands the configured target source into an address
// set. On failure it prints the error and returns the exit code.
func resolveAddrs(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*addrspace.Set, int) {
	set := addrspace.NewSet()

	switch {
	case cfg.Target != "":
		spec, err := addrspace.Parse(cfg.Target)
		if err != nil {
			fmt.Fprintln(os.Stderr, "Error:", err)
			return nil, defaults.ExitUserError
		}
		spec.Expand(set, cfg.Sample)

	case cfg.ASN != "":
		number, err := asn.ParseASN(cfg.ASN)
		if err != nil {
			fmt.Fprintln(os.Stderr, "Error:", err)
			return nil, defaults.ExitUserError
		}
		lookupCtx, cancel := context.WithTimeout(ctx, lookupTimeout)
		defer cancel()
		client := asn.NewClient(&http.Client{Timeout: lookupTimeout})
		prefixes, err := client.AnnouncedPrefixes(lookupCtx, number)
		if err != nil {
			fmt.Fprintln(os.Stderr, "Error:", err)
			return nil, defaults.ExitLookupError
		}
		skipped := addrspace.ExpandPrefixes(prefixes, set, cfg.Sample)
		if skipped > 0 {
			logger.Debug("skipped malformed prefixes", slog.Int("count", skipped))
		}

	case cfg.ASNFile != "":
		prefixes, err := input.ReadPrefixFile(cfg.ASNFile)
		if err != nil {
			fmt.Fprintln(os.Stderr, "Error:", err)
			return nil, defaults.ExitUserError
		}
		skipped := addrspace.ExpandPrefixes(prefixes, set, cfg.Sample)
		if skipped > 0 {
			logger.Debug("skipped malformed prefixes", slog.Int("count", skipped))
		}
	}

	return set, defaults.ExitSuccess
}

// buildWriter assembles the result sink: stdout in the configured
// format, plus a JSONL file when -o is given. The returned scan ID
// labels the run in the manifest and every JSONL record.
func buildWriter(cfg *config.Config) (output.Writer, string, error) {
	var stdout output.Writer
	scanID := ""

	if cfg.OutputFormat == "jsonl" {
		jw := output.NewJSONLStream(os.Stdout)
		scanID = jw.ScanID()
		stdout = jw
	} else {
		stdout = output.NewConsoleWriter(os.Stdout)
	}

	if cfg.OutputFile == "" {
		if scanID == "" {
			scanID = uuid.New().String()
		}
		return stdout, scanID, nil
	}

	fw, err := output.NewJSONLWriter(cfg.OutputFile)
	if err != nil {
		return nil, "", err
	}
	if scanID == "" {
		scanID = fw.ScanID()
	}
	return output.NewMultiWriter(stdout, fw), scanID, nil
}
