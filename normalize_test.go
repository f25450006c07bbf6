package wikidex

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSanitizeFieldStripsEndDelim(t *testing.T) {
	raw := append([]byte("April"), endDelim)
	require.Equal(t, "April", SanitizeField(raw))
}

func TestSanitizeFieldNormalizesToNFC(t *testing.T) {
	// "e" + combining acute accent (U+0065 U+0301) should normalize to the
	// single precomposed "é" (U+00E9) codepoint.
	decomposed := []byte{'e', 0xCC, 0x81}
	require.Equal(t, "é", SanitizeField(decomposed))
}

func TestSanitizeFieldEmptyInput(t *testing.T) {
	require.Equal(t, "", SanitizeField(nil))
}
