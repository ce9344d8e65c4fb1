// Package input loads target prefixes from external sources.
package input

import (
	"bufio"
	"fmt"
	"os"
	"strings"
)

// ReadPrefixFile reads a line-oriented list of CIDR strings. Blank
// lines and #-comments are skipped here; syntactically malformed CIDR
// entries are left in and skipped during expansion, where the skip is
// counted. A read error is fatal — a missing file is an operator
// mistake, unlike a bad line in otherwise good data.
func ReadPrefixFile(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("input: read prefix file: %w", err)
	}
	defer f.Close()

	var lines []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		lines = append(lines, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("input: read prefix file: %w", err)
	}
	return lines, nil
}
