package mikrotik

// Detection is a positive classification with its extracted label and
// the evidence that produced it.
type Detection struct {
	Label    string
	Evidence string // "server-header" or the name of the body signature
}

// Detect classifies a response. server is the Server header value (may
// be empty), body the response text. A generic successful response with
// none of the vendor markers is NoMatch regardless of status code.
func Detect(statusCode int, server, body string) (Detection, bool) {
	// Header check takes precedence over body signatures.
	if server != "" && serverHeaderPattern.MatchString(server) {
		return Detection{Label: extractLabel(body), Evidence: "server-header"}, true
	}

	for _, sig := range bodySignatures {
		if sig.Pattern.MatchString(body) {
			return Detection{Label: extractLabel(body), Evidence: sig.Name}, true
		}
	}

	return Detection{}, false
}

// extractLabel runs the ordered capture patterns against body and
// returns the first rendered label, or GenericLabel when nothing
// captures.
func extractLabel(body string) string {
	for _, lp := range labelPatterns {
		if g := lp.pattern.FindStringSubmatch(body); g != nil {
			return lp.render(g)
		}
	}
	return GenericLabel
}
