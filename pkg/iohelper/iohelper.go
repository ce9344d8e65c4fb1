// Package iohelper provides helpers for safely reading HTTP response
// bodies with size limits.
package iohelper

import (
	"io"
)

// Body size limits for different use cases.
const (
	// SmallMaxBodySize is for headers, status pages, etc. (8KB)
	SmallMaxBodySize int64 = 8 * 1024

	// MediumMaxBodySize is for typical HTML responses (100KB)
	MediumMaxBodySize int64 = 100 * 1024

	// DefaultMaxBodySize is for general responses (1MB)
	DefaultMaxBodySize int64 = 1024 * 1024
)

// ReadBody reads from r with a size limit. A nil reader yields an empty
// slice. The limit prevents memory exhaustion from maliciously large
// responses.
func ReadBody(r io.Reader, maxSize int64) ([]byte, error) {
	if r == nil {
		return []byte{}, nil
	}
	return io.ReadAll(io.LimitReader(r, maxSize))
}

// ReadBodyDefault reads from r with the default 1MB limit.
func ReadBodyDefault(r io.Reader) ([]byte, error) {
	return ReadBody(r, DefaultMaxBodySize)
}

// ReadBodyMedium reads from r with a 100KB limit. Suitable for login
// pages and device status pages where only the leading bytes matter.
func ReadBodyMedium(r io.Reader) ([]byte, error) {
	return ReadBody(r, MediumMaxBodySize)
}

// DrainAndClose discards any unread body bytes (up to the small limit)
// and closes rc. Draining lets the HTTP transport reuse the connection.
func DrainAndClose(rc io.ReadCloser) {
	if rc == nil {
		return
	}
	_, _ = io.Copy(io.Discard, io.LimitReader(rc, SmallMaxBodySize))
	_ = rc.Close()
}
