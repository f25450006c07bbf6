package wikidex

import (
	"bytes"
	"strings"
)

// ParseOutcome reports the result of driving one article through the
// stream (spec.md §4.4).
type ParseOutcome int

const (
	// IndexGood means title, contributor, and body were all captured and
	// indexed.
	IndexGood ParseOutcome = iota
	// NoIndexButContinue means the article was structurally malformed or
	// benignly excluded (empty/special-namespace title); the worker
	// should move on to the next article.
	NoIndexButContinue
	// EndOfRegion means no further <title> occurs before the region end.
	EndOfRegion
)

var excludedTitlePrefixes = []string{"Category:", "Wikipedia:", "Special:"}

// Indexer is the subset of Writer the article parser drives: interning a
// term against an article (spec.md §4.5).
type Indexer interface {
	Index(term, article string) error
}

// ParseArticle drives s through one <title>…<contributor>…<text>…</text>
// article and feeds captured, normalized fields to idx (spec.md §4.4).
func ParseArticle(s *RegionStream, idx Indexer) (ParseOutcome, error) {
	if ok, err := s.ReadUntil([]byte("<title>"), true, nil); err != nil {
		return NoIndexButContinue, err
	} else if !ok {
		return EndOfRegion, nil
	}

	var titleRaw []byte
	ok, err := s.ReadUntil([]byte("<"), false, func(b []byte) {
		titleRaw = append([]byte(nil), b...)
	})
	if err != nil {
		return NoIndexButContinue, err
	}
	if !ok {
		return NoIndexButContinue, nil
	}
	if len(titleRaw) > maxTitleBytes {
		return NoIndexButContinue, fatalf("ParseArticle", "title buffer %d exceeds limit", len(titleRaw))
	}
	title := SanitizeField(titleRaw)
	if title == "" || hasExcludedPrefix(title) {
		return NoIndexButContinue, nil
	}

	if ok, err := s.ReadUntil([]byte("<contributor>"), true, nil); err != nil {
		return NoIndexButContinue, err
	} else if !ok {
		return NoIndexButContinue, nil
	}

	var contribRaw []byte
	ok, err = s.ReadUntil([]byte("</contributor>"), false, func(b []byte) {
		contribRaw = append([]byte(nil), b...)
	})
	if err != nil {
		return NoIndexButContinue, err
	}
	if !ok {
		return NoIndexButContinue, nil
	}
	if len(contribRaw) > maxContributorBytes {
		return NoIndexButContinue, fatalf("ParseArticle", "contributor buffer %d exceeds limit", len(contribRaw))
	}
	contributor := SanitizeField(extractUsername(contribRaw))

	if ok, err := s.ReadUntil([]byte("<text"), true, nil); err != nil {
		return NoIndexButContinue, err
	} else if !ok {
		return NoIndexButContinue, nil
	}
	if ok, err := s.ReadUntil([]byte(">"), true, nil); err != nil {
		return NoIndexButContinue, err
	} else if !ok {
		return NoIndexButContinue, nil
	}

	var body []byte
	ok, err = s.ReadUntil([]byte("</text"), false, func(b []byte) {
		body = append([]byte(nil), b...)
	})
	if err != nil {
		return NoIndexButContinue, err
	}
	if !ok {
		return NoIndexButContinue, nil
	}
	if len(body) > maxBodyBytes {
		return NoIndexButContinue, fatalf("ParseArticle", "text buffer %d exceeds limit", len(body))
	}

	if contributor != "" {
		lowered := strings.ToLower(contributor)
		if termPasses([]byte(lowered)) {
			if err := idx.Index(lowered, title); err != nil {
				return NoIndexButContinue, err
			}
		}
	}

	var tokErr error
	err = Tokenize(body, func(term []byte) {
		if tokErr != nil {
			return
		}
		tokErr = idx.Index(string(term), title)
	})
	if err != nil {
		return NoIndexButContinue, err
	}
	if tokErr != nil {
		return NoIndexButContinue, tokErr
	}

	return IndexGood, nil
}

func hasExcludedPrefix(title string) bool {
	for _, p := range excludedTitlePrefixes {
		if strings.HasPrefix(title, p) {
			return true
		}
	}
	return false
}

// extractUsername returns the substring between <username> and
// </username> in contributor, or empty bytes if absent (spec.md §4.4
// step 4).
func extractUsername(contributor []byte) []byte {
	const open = "<username>"
	const close = "</username>"
	start := bytes.Index(contributor, []byte(open))
	if start < 0 {
		return nil
	}
	start += len(open)
	end := bytes.Index(contributor[start:], []byte(close))
	if end < 0 {
		return nil
	}
	return contributor[start : start+end]
}
