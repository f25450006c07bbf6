package wikidex

import "sort"

// Aggregator fans a query across every loaded index file and merges the
// results (spec.md §4.9). Replaces the teacher's process-global reader
// list (spec.md §9) with an explicit handle the caller owns.
type Aggregator struct {
	readers []*Reader
}

// NewAggregator returns an empty Aggregator; call Init to load files.
func NewAggregator() *Aggregator {
	return &Aggregator{}
}

// Init parses each file into a Reader, silently skipping any that fail to
// open or parse (spec.md §4.9, §7 "reader-init warnings"), and replaces
// the aggregator's reader set atomically. It returns the number loaded.
func (a *Aggregator) Init(files []string) int {
	loaded := make([]*Reader, 0, len(files))
	for _, f := range files {
		r, err := Open(f)
		if err != nil {
			continue
		}
		loaded = append(loaded, r)
	}
	a.readers = loaded
	return len(loaded)
}

// Close releases every loaded reader's file handle.
func (a *Aggregator) Close() error {
	var first error
	for _, r := range a.readers {
		if err := r.Close(); err != nil && first == nil {
			first = err
		}
	}
	return first
}

// Search queries every loaded reader and merges their results: totals
// sum, top lists merge by summing weight for an article seen in more
// than one file, then sort weight-descending with an ascending-title
// tie-break, truncated to maxSearchResults (spec.md §4.9).
func (a *Aggregator) Search(term string) (SearchResult, error) {
	total := 0
	weight := make(map[string]int)
	var order []string

	for _, r := range a.readers {
		res, err := r.Search(term)
		if err != nil {
			return SearchResult{}, err
		}
		total += res.Total
		for _, hit := range res.Top {
			if _, seen := weight[hit.Article]; !seen {
				order = append(order, hit.Article)
			}
			weight[hit.Article] += hit.Weight
		}
	}

	hits := make([]SearchHit, 0, len(order))
	for _, article := range order {
		hits = append(hits, SearchHit{Article: article, Weight: weight[article]})
	}
	sort.Slice(hits, func(i, j int) bool {
		if hits[i].Weight != hits[j].Weight {
			return hits[i].Weight > hits[j].Weight
		}
		return hits[i].Article < hits[j].Article
	})
	if len(hits) > maxSearchResults {
		hits = hits[:maxSearchResults]
	}

	return SearchResult{Total: total, Top: hits}, nil
}
