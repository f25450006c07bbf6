package wikidex

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func tokenizeAll(t *testing.T, body string) []string {
	t.Helper()
	var got []string
	err := Tokenize([]byte(body), func(term []byte) {
		got = append(got, string(term))
	})
	require.NoError(t, err)
	return got
}

func TestTokenizeLowercasesAndFiltersStopWords(t *testing.T) {
	got := tokenizeAll(t, "The Quick Fox and the Dog.")
	require.Equal(t, []string{"quick", "fox", "dog"}, got)
}

func TestTokenizeFiltersShortTerms(t *testing.T) {
	got := tokenizeAll(t, "a an ok fine")
	require.Equal(t, []string{"fine"}, got)
}

func TestTokenizeSkipsBalancedBraces(t *testing.T) {
	got := tokenizeAll(t, "before {{cite web|url=x}} after")
	require.Equal(t, []string{"before", "after"}, got)
}

// An HTML tag skip also bumps squareStack (the preserved quirk of
// spec.md §9), and nothing but a literal ']' ever brings it back down. A
// single stray tag therefore silently drops every term for the rest of
// the body unless enough ']' characters follow it.
func TestTokenizeHTMLTagPermanentlySuppressesFollowingTerms(t *testing.T) {
	got := tokenizeAll(t, "hello <br> world")
	require.Equal(t, []string{"hello"}, got)
}

func TestTokenizeSkipsRefMarkers(t *testing.T) {
	got := tokenizeAll(t, "claim &lt;ref&gt;citation here&lt;/ref&gt; done")
	require.Equal(t, []string{"claim", "citation", "here", "done"}, got)
}

// Inside a [[...]] link, a term is only kept if it is still pending when
// the brackets close — everything flushed by whitespace or '|' while
// still inside the brackets is discarded (spec.md §4.3).
func TestTokenizeWikiLinkKeepsOnlyTermPendingAtClose(t *testing.T) {
	got := tokenizeAll(t, "see [[Target page|display text]] here")
	require.Equal(t, []string{"text", "here"}, got)
}

func TestTokenizeNamespacedLinkDropsPrefixBeforeColon(t *testing.T) {
	got := tokenizeAll(t, "[[Category:history]]")
	require.Equal(t, []string{"history"}, got)
}
