// Package output streams scan results to their destinations: the
// console as they arrive, and optionally a JSONL file.
package output

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/webfigscan/webfigscan/pkg/probe"
	"github.com/webfigscan/webfigscan/pkg/ui"
)

// Writer receives results as the scan produces them. Implementations
// must be safe for concurrent use; the scheduler's result callback runs
// from worker goroutines.
type Writer interface {
	Write(r probe.Result) error
	Close() error
}

// ConsoleWriter prints one formatted line per result to w.
type ConsoleWriter struct {
	w  io.Writer
	mu sync.Mutex
}

// NewConsoleWriter creates a console writer targeting w (normally
// os.Stdout).
func NewConsoleWriter(w io.Writer) *ConsoleWriter {
	return &ConsoleWriter{w: w}
}

// Write prints the result line.
func (c *ConsoleWriter) Write(r probe.Result) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, err := fmt.Fprintln(c.w, ui.FormatResult(r))
	return err
}

// Close is a no-op; the console writer does not own its stream.
func (c *ConsoleWriter) Close() error { return nil }

// Record is one JSONL result line.
type Record struct {
	ScanID    string `json:"scan_id"`
	Timestamp string `json:"timestamp"`
	Address   string `json:"address"`
	Port      uint16 `json:"port"`
	Kind      string `json:"kind"`
	Scheme    string `json:"scheme"`
	Status    int    `json:"status,omitempty"`
	Label     string `json:"label,omitempty"`
	URL       string `json:"url"`
}

// JSONLWriter writes results as newline-delimited JSON. All records of
// one run share a scan ID.
type JSONLWriter struct {
	file    *os.File
	encoder *json.Encoder
	scanID  string
	now     func() time.Time
	mu      sync.Mutex
}

// NewJSONLWriter creates a JSONL writer appending to path.
func NewJSONLWriter(path string) (*JSONLWriter, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open output file: %w", err)
	}
	w := NewJSONLStream(f)
	w.file = f
	return w, nil
}

// NewJSONLStream creates a JSONL writer targeting an arbitrary stream,
// such as os.Stdout. Close does not close the stream.
func NewJSONLStream(w io.Writer) *JSONLWriter {
	return &JSONLWriter{
		encoder: json.NewEncoder(w),
		scanID:  uuid.New().String(),
		now:     time.Now,
	}
}

// ScanID returns the run identifier shared by all records.
func (j *JSONLWriter) ScanID() string { return j.scanID }

// Write appends one record.
func (j *JSONLWriter) Write(r probe.Result) error {
	rec := Record{
		ScanID:    j.scanID,
		Timestamp: j.now().UTC().Format(time.RFC3339),
		Address:   r.Addr.String(),
		Port:      r.Port,
		Kind:      r.Kind.String(),
		Scheme:    r.Scheme,
		Status:    r.Status,
		Label:     r.Label,
		URL:       r.URL(),
	}
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.encoder.Encode(rec)
}

// Close flushes and closes the underlying file.
func (j *JSONLWriter) Close() error {
	if j.file == nil {
		return nil
	}
	return j.file.Close()
}

// MultiWriter fans one result out to several writers.
type MultiWriter struct {
	writers []Writer
}

// NewMultiWriter combines writers; Write stops at the first error.
func NewMultiWriter(writers ...Writer) *MultiWriter {
	return &MultiWriter{writers: writers}
}

// Write sends the result to every writer.
func (m *MultiWriter) Write(r probe.Result) error {
	for _, w := range m.writers {
		if err := w.Write(r); err != nil {
			return err
		}
	}
	return nil
}

// Close closes every writer, returning the first error.
func (m *MultiWriter) Close() error {
	var first error
	for _, w := range m.writers {
		if err := w.Close(); err != nil && first == nil {
			first = err
		}
	}
	return first
}
