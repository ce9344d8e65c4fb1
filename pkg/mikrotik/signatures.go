// Package mikrotik classifies HTTP responses as MikroTik WebFig/RouterOS
// management interfaces.
//
// Detection methodology:
//  1. Server header — a value containing "mikrotik" is conclusive.
//  2. Body signatures — ordered vendor patterns matched against the
//     response body text.
//  3. Label extraction — ordered capture patterns, most specific first,
//     produce a product/version label; the first match wins.
//
// The precedence (header over body, specific label over generic) is part
// of the output contract and covered by tests.
package mikrotik

import "regexp"

// Signature is one vendor detection pattern. Patterns are
// case-insensitive; Label is used when the signature itself names the
// matched product family.
type Signature struct {
	Name    string
	Pattern *regexp.Regexp
}

// serverHeaderPattern matches the Server header of RouterOS's built-in
// www service ("mikrotik httpproxy", "MikroTik RouterOS ...").
var serverHeaderPattern = regexp.MustCompile(`(?i)mikrotik`)

// bodySignatures are checked in order against the response body.
var bodySignatures = []Signature{
	{Name: "mikrotik", Pattern: regexp.MustCompile(`(?i)mikrotik`)},
	{Name: "webfig", Pattern: regexp.MustCompile(`(?i)webfig`)},
	{Name: "routeros", Pattern: regexp.MustCompile(`(?i)routeros`)},
}

// labelPatterns extract a product label from the body, most specific
// first. The first pattern with a match wins; a capture group, when
// present, carries the version.
var labelPatterns = []struct {
	pattern *regexp.Regexp
	render  func(groups []string) string
}{
	{
		// "RouterOS v7.15.3" and similar product+version strings.
		pattern: regexp.MustCompile(`(?i)routeros\s+v?(\d+(?:\.\d+)*)`),
		render:  func(g []string) string { return "RouterOS v" + g[1] },
	},
	{
		pattern: regexp.MustCompile(`(?i)routeros`),
		render:  func(g []string) string { return "RouterOS" },
	},
	{
		pattern: regexp.MustCompile(`(?i)webfig`),
		render:  func(g []string) string { return "WebFig" },
	},
}

// GenericLabel is the fallback label when no capture pattern matches a
// positively classified response.
const GenericLabel = "MikroTik"
