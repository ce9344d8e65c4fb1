package ports

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseMixedSpec(t *testing.T) {
	got, err := Parse("80,443,8080-8082")
	require.NoError(t, err)
	assert.Equal(t, []uint16{80, 443, 8080, 8081, 8082}, got)
}

func TestParseSortsAndDeduplicates(t *testing.T) {
	got, err := Parse("8080,80,443,80,8078-8081")
	require.NoError(t, err)
	assert.Equal(t, []uint16{80, 443, 8078, 8079, 8080, 8081}, got)
}

func TestParseToleratesWhitespaceAndEmptyTokens(t *testing.T) {
	got, err := Parse(" 80 , ,443 ")
	require.NoError(t, err)
	assert.Equal(t, []uint16{80, 443}, got)
}

func TestParseRejectsBadSpecs(t *testing.T) {
	for _, spec := range []string{
		"0",
		"70000",
		"-1",
		"80-70",
		"80-0",
		"abc",
		"80,def",
		"",
		",",
	} {
		_, err := Parse(spec)
		if !errors.Is(err, ErrInvalidPortSpec) {
			t.Errorf("Parse(%q): expected ErrInvalidPortSpec, got %v", spec, err)
		}
	}
}

func TestParseNamesOffendingToken(t *testing.T) {
	_, err := Parse("80,70000,443")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "70000")
}

func TestAll(t *testing.T) {
	got := All()
	require.Len(t, got, 65535)
	assert.Equal(t, uint16(1), got[0])
	assert.Equal(t, uint16(65535), got[len(got)-1])
}

func TestDefaultSorted(t *testing.T) {
	got := Default()
	require.NotEmpty(t, got)
	for i := 1; i < len(got); i++ {
		if got[i-1] >= got[i] {
			t.Fatalf("Default() not strictly ascending: %v", got)
		}
	}
	assert.Contains(t, got, uint16(80))
	assert.Contains(t, got, uint16(443))
	assert.Contains(t, got, uint16(8080))
}
