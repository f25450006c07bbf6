package wikidex

import "golang.org/x/text/unicode/norm"

// SanitizeField strips END_DELIM from captured title/contributor bytes and
// applies Unicode NFC normalization (SPEC_FULL.md §4.11), so that visually
// identical names captured with different combining-character sequences
// collapse to the same on-disk bytes. This runs once per captured field,
// never inside the tokenizer's hot loop, and never changes the ASCII-only
// byte classification Tokenize performs on body text.
func SanitizeField(b []byte) string {
	cleaned := make([]byte, 0, len(b))
	for _, c := range b {
		if c != endDelim {
			cleaned = append(cleaned, c)
		}
	}
	return norm.NFC.String(string(cleaned))
}
