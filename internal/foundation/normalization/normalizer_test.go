package normalization

import (
	"testing"

	"github.com/stretchr/testify/require"
)

type testFormat string

const (
	formatText testFormat = "text"
	formatJSON testFormat = "json"
)

func newFormatNormalizer() *Normalizer[testFormat] {
	return NewNormalizer(map[string]testFormat{
		"text":   formatText,
		"plain":  formatText,
		"json":   formatJSON,
		"ndjson": formatJSON,
	}, formatText)
}

func TestNormalizer_Normalize(t *testing.T) {
	n := newFormatNormalizer()

	tests := []struct {
		name     string
		input    string
		expected testFormat
	}{
		{"exact match", "json", formatJSON},
		{"case insensitive", "JSON", formatJSON},
		{"with spaces", "  ndjson ", formatJSON},
		{"alias", "Plain", formatText},
		{"invalid input", "xml", formatText},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.expected, n.Normalize(tt.input))
		})
	}
}

func TestNormalizer_NormalizeWithError(t *testing.T) {
	n := newFormatNormalizer()

	v, err := n.NormalizeWithError("")
	require.NoError(t, err)
	require.Equal(t, formatText, v)

	_, err = n.NormalizeWithError("xml")
	require.Error(t, err)
	require.Contains(t, err.Error(), "json, ndjson, plain, text")
}

func TestNormalizer_ValidKeysIsACopy(t *testing.T) {
	n := newFormatNormalizer()
	keys := n.ValidKeys()
	keys[0] = "mutated"
	require.NotEqual(t, "mutated", n.ValidKeys()[0])
}
