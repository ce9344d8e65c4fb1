package mikrotik

import "testing"

func TestDetectServerHeader(t *testing.T) {
	// Vendor header classifies even with an empty body.
	det, ok := Detect(200, "MikroTik HttpProxy", "")
	if !ok {
		t.Fatal("expected match on Server header")
	}
	if det.Evidence != "server-header" {
		t.Errorf("evidence = %q, want server-header", det.Evidence)
	}
	if det.Label != GenericLabel {
		t.Errorf("label = %q, want %q", det.Label, GenericLabel)
	}
}

func TestDetectBodyWithGenericServerHeader(t *testing.T) {
	det, ok := Detect(200, "nginx/1.18.0", "<title>RouterOS router configuration page</title>")
	if !ok {
		t.Fatal("expected match on body signature")
	}
	if det.Label != "RouterOS" {
		t.Errorf("label = %q, want RouterOS", det.Label)
	}
}

func TestDetectNoMatchOn200(t *testing.T) {
	// A clean 200 with no vendor markers is not evidence.
	if _, ok := Detect(200, "Apache/2.4.41", "<html><body>It works!</body></html>"); ok {
		t.Error("generic 200 classified as match")
	}
}

func TestDetectCaseInsensitive(t *testing.T) {
	if _, ok := Detect(401, "MIKROTIK", ""); !ok {
		t.Error("uppercase Server header not matched")
	}
	if _, ok := Detect(200, "", "welcome to WEBFIG"); !ok {
		t.Error("uppercase body marker not matched")
	}
}

func TestHeaderPrecedesBody(t *testing.T) {
	det, ok := Detect(200, "mikrotik", "no vendor markers in body")
	if !ok {
		t.Fatal("expected match")
	}
	if det.Evidence != "server-header" {
		t.Errorf("evidence = %q, want server-header when header and body both checked", det.Evidence)
	}
}

func TestLabelPrefersVersionedPattern(t *testing.T) {
	body := "<title>WebFig</title> RouterOS v7.15.3 (c) MikroTik"
	det, ok := Detect(200, "", body)
	if !ok {
		t.Fatal("expected match")
	}
	// Both "RouterOS v7.15.3" and bare "RouterOS"/"WebFig" are present;
	// the versioned pattern wins.
	if det.Label != "RouterOS v7.15.3" {
		t.Errorf("label = %q, want RouterOS v7.15.3", det.Label)
	}
}

func TestLabelVersionWithoutV(t *testing.T) {
	det, ok := Detect(200, "", "RouterOS 6.49 login")
	if !ok {
		t.Fatal("expected match")
	}
	if det.Label != "RouterOS v6.49" {
		t.Errorf("label = %q, want RouterOS v6.49", det.Label)
	}
}

func TestLabelFallsBackToWebFig(t *testing.T) {
	det, ok := Detect(200, "", "<title>webfig login</title>")
	if !ok {
		t.Fatal("expected match")
	}
	if det.Label != "WebFig" {
		t.Errorf("label = %q, want WebFig", det.Label)
	}
}

func TestLabelGenericFallback(t *testing.T) {
	// Header match with a body that has no capture-pattern text.
	det, ok := Detect(403, "mikrotik httpproxy", "access denied")
	if !ok {
		t.Fatal("expected match")
	}
	if det.Label != GenericLabel {
		t.Errorf("label = %q, want %q", det.Label, GenericLabel)
	}
}
