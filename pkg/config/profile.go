package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Profile is a reusable scan profile loaded from YAML. Every field is
// optional; explicitly set flags take precedence over profile values.
//
//	ports: "80,443,8291"
//	concurrency: 200
//	timeout_ms: 1500
//	proxy: socks5://127.0.0.1:9050
//	show_open: true
type Profile struct {
	Ports       string `yaml:"ports"`
	AllPorts    *bool  `yaml:"all_ports"`
	Concurrency *int   `yaml:"concurrency"`
	TimeoutMS   *int   `yaml:"timeout_ms"`
	Sample      *int   `yaml:"sample"`
	Proxy       string `yaml:"proxy"`
	ShowOpen    *bool  `yaml:"show_open"`
	Format      string `yaml:"format"`
	Output      string `yaml:"output"`
}

// LoadProfile reads and parses a YAML scan profile.
func LoadProfile(path string) (*Profile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read profile: %w", err)
	}
	var p Profile
	if err := yaml.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("parse profile %s: %w", path, err)
	}
	return &p, nil
}

// applyProfile merges profile values into cfg for every flag the user
// did not set explicitly. setFlags holds the names of flags present on
// the command line.
func applyProfile(cfg *Config, path string, setFlags map[string]bool) error {
	p, err := LoadProfile(path)
	if err != nil {
		return err
	}

	if p.Ports != "" && !setFlags["ports"] && !setFlags["p"] {
		cfg.Ports = p.Ports
	}
	if p.AllPorts != nil && !setFlags["all-ports"] {
		cfg.AllPorts = *p.AllPorts
	}
	if p.Concurrency != nil && !setFlags["c"] {
		cfg.Concurrency = *p.Concurrency
	}
	if p.TimeoutMS != nil && !setFlags["timeout-ms"] {
		cfg.TimeoutMS = *p.TimeoutMS
	}
	if p.Sample != nil && !setFlags["sample"] {
		cfg.Sample = *p.Sample
	}
	if p.Proxy != "" && !setFlags["proxy"] {
		cfg.Proxy = p.Proxy
	}
	if p.ShowOpen != nil && !setFlags["show-open"] {
		cfg.ShowOpen = *p.ShowOpen
	}
	if p.Format != "" && !setFlags["format"] {
		cfg.OutputFormat = p.Format
	}
	if p.Output != "" && !setFlags["o"] {
		cfg.OutputFile = p.Output
	}
	return nil
}
