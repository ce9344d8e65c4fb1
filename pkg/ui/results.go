package ui

import (
	"fmt"

	"github.com/webfigscan/webfigscan/pkg/probe"
)

// FormatResult renders one positive result as a match line:
//
//	<address>:<port> -> <label> [<status-or-"tcp">] <scheme>://<address>:<port>/
//
// The shape is stable; scripts parse it.
func FormatResult(r probe.Result) string {
	status := "tcp"
	if r.Kind == probe.KindMatch {
		status = fmt.Sprintf("%d", r.Status)
	}
	label := r.Label
	if label == "" {
		label = "open port"
	}

	if !ColorEnabled() {
		return fmt.Sprintf("%s -> %s [%s] %s", r.Endpoint(), label, status, r.URL())
	}

	statusStyled := OpenStyle.Render(status)
	if r.Kind == probe.KindMatch {
		statusStyled = StatusCodeStyle(r.Status).Render(status)
	}
	return fmt.Sprintf("%s %s %s %s%s%s %s",
		EndpointStyle.Render(r.Endpoint()),
		BracketStyle.Render("->"),
		LabelStyle.Render(label),
		BracketStyle.Render("["),
		statusStyled,
		BracketStyle.Render("]"),
		URLStyle.Render(r.URL()))
}

// FormatStats renders the end-of-run summary line.
func FormatStats(completed, matched, open int64, elapsed string) string {
	return StatStyle.Render(fmt.Sprintf(
		"scanned %d units in %s: %d matched, %d open", completed, elapsed, matched, open))
}
