package ui

import (
	"fmt"
	"io"
	"os"

	"github.com/webfigscan/webfigscan/pkg/defaults"
)

// Version information - overridable at build time via ldflags:
//
//	go build -ldflags "-X github.com/webfigscan/webfigscan/pkg/ui.Version=1.0.0"
var (
	Version   = defaults.Version
	BuildDate = "dev"
	Commit    = "dev"
)

const banner = `
 _      __    __   ____ _       ____
| | /| / /__ / /  / __/(_)___ _/ __/______ ____
| |/ |/ / -_) _ \/ _/ / / _ ` + "`" + `/\ \/ __/ _ ` + "`" + `/ _ \
|__/|__/\__/_.__/_/  /_/\_, /___/\__/\_,_/_//_/
                       /___/
`

// PrintBanner writes the startup banner to stderr unless silent mode
// is on. Stderr keeps the banner out of piped match output.
func PrintBanner() {
	FprintBanner(os.Stderr)
}

// FprintBanner writes the banner to w.
func FprintBanner(w io.Writer) {
	if IsSilent() {
		return
	}
	fmt.Fprint(w, BannerStyle.Render(banner))
	fmt.Fprintf(w, "\n  %s  MikroTik WebFig detection scanner\n\n",
		VersionStyle.Render("v"+Version))
}

// PrintManifest writes the pre-run summary to stderr.
func PrintManifest(targets, ports int, concurrency int, timeout string, scanID string) {
	if IsSilent() {
		return
	}
	fmt.Fprintf(os.Stderr, "  targets: %d  ports: %d  units: %d\n",
		targets, ports, targets*ports)
	fmt.Fprintf(os.Stderr, "  concurrency: %d  timeout: %s  scan: %s\n\n",
		concurrency, timeout, scanID)
}
