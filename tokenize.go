package wikidex

import "bytes"

// stopWords is the fixed 3-letter stop-word list of spec.md §4.3a. (The
// spec's prose calls this a "48-entry" list; the literal enumeration it
// gives has 39 entries. This implementation indexes exactly the words
// enumerated, since that is the only unambiguous artifact — see
// DESIGN.md's Open Question log.)
var stopWords = map[string]bool{
	"the": true, "and": true, "for": true, "are": true, "but": true,
	"not": true, "you": true, "all": true, "any": true, "can": true,
	"had": true, "her": true, "was": true, "one": true, "our": true,
	"out": true, "day": true, "get": true, "has": true, "him": true,
	"his": true, "how": true, "man": true, "new": true, "now": true,
	"old": true, "see": true, "two": true, "way": true, "who": true,
	"boy": true, "did": true, "its": true, "let": true, "put": true,
	"say": true, "she": true, "too": true, "use": true,
}

func termPasses(term []byte) bool {
	if len(term) <= 2 {
		return false
	}
	return !stopWords[string(term)]
}

// Tokenize runs the wiki-text state machine over body and invokes emit
// with each normalized term in order (spec.md §4.3). Buffers larger than
// maxBodyBytes are rejected as fatal, matching the article parser's body
// bound (spec.md §4.3 "Bounds").
func Tokenize(body []byte, emit func(term []byte)) error {
	if len(body) > maxBodyBytes {
		return fatalf("Tokenize", "body buffer %d exceeds %d byte limit", len(body), maxBodyBytes)
	}

	var term []byte
	squareStack := 0

	flush := func() {
		if squareStack <= 0 && termPasses(term) {
			emit(term)
		}
		term = term[:0]
	}

	i := 0
	n := len(body)

	for i < n {
		b := body[i]

		switch b {
		case '{':
			i = skipBalanced(body, i, '{', '}')
			continue

		case '<':
			// Historical quirk preserved deliberately (spec.md §9): the
			// angle-bracket skip also bumps squareStack, mirroring the
			// original tokenizer's fallthrough from '<' into the '['
			// case.
			i = skipBalanced(body, i, '<', '>')
			squareStack++
			continue

		case '&':
			i = skipEntity(body, i)
			continue

		case '[':
			squareStack++
			i++
			continue

		case ']':
			if squareStack > 0 {
				squareStack--
			}
			i++
			continue

		case '|':
			if squareStack > 0 {
				term = term[:0]
			}
			i++
			continue

		case ':':
			switch {
			case squareStack > 1:
				term = term[:0]
			case squareStack == 1:
				// no effect: keeps the namespace prefix pending, per
				// spec.md §4.3's [[ns:page]] example.
			default:
				flush()
			}
			i++
			continue

		case '.':
			flush()
			i++
			continue

		case ' ', '\t', '\r', '\n':
			flush()
			i++
			continue

		case ',', ';', '"', '=', '\'', '%', '!', '(', ')', '*', '^', '$', '~', '`', '#', endDelim:
			i++
			continue

		default:
			if b >= 'A' && b <= 'Z' {
				b += 'a' - 'A'
			}
			term = append(term, b)
			i++
		}
	}

	flush()
	return nil
}

// skipBalanced consumes a nested open/close construct starting at i
// (body[i] == open) and returns the index just past the matching close,
// or len(body) if unbalanced.
func skipBalanced(body []byte, i int, open, close byte) int {
	depth := 0
	n := len(body)
	for i < n {
		switch body[i] {
		case open:
			depth++
		case close:
			depth--
			if depth == 0 {
				return i + 1
			}
		}
		i++
	}
	return n
}

// skipEntity consumes an HTML entity (or the &lt;ref...&gt; / &lt;/...&gt;
// lookahead literals) starting at i (body[i] == '&').
func skipEntity(body []byte, i int) int {
	rest := body[i:]
	if bytes.HasPrefix(rest, []byte("&lt;ref")) || bytes.HasPrefix(rest, []byte("&lt;/")) {
		if idx := bytes.Index(rest, []byte("&gt;")); idx >= 0 {
			return i + idx + len("&gt;")
		}
		return len(body)
	}
	if idx := bytes.IndexByte(rest, ';'); idx >= 0 {
		return i + idx + 1
	}
	return len(body)
}
