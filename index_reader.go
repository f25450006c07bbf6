package wikidex

import (
	"bytes"
	"io"
	"os"
	"sort"
)

// Reader loads one completed index file's header into memory; the body
// stays on disk and is seeked into on demand (spec.md §4.8). A Reader is
// immutable after construction; Search has no mutable per-instance state
// beyond the open file handle.
type Reader struct {
	file       *os.File
	bodyOffset int64
	titles     map[uint32]string
	offsets    map[string][]int64
}

// Open parses path's header into memory (spec.md §4.8).
func Open(path string) (*Reader, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fatalf("Open", "open %s: %w", path, err)
	}

	r, err := parseHeader(f)
	if err != nil {
		f.Close()
		return nil, err
	}
	r.file = f
	return r, nil
}

// Close releases the reader's file handle.
func (r *Reader) Close() error {
	if r.file != nil {
		return r.file.Close()
	}
	return nil
}

func parseHeader(f *os.File) (*Reader, error) {
	var head [4]byte
	if _, err := io.ReadFull(f, head[:]); err != nil {
		return nil, fatalf("parseHeader", "read body_offset: %w", err)
	}
	bodyOffset := getU32(head[:])
	if bodyOffset < 5 {
		return nil, fatalf("parseHeader", "implausible body_offset %d", bodyOffset)
	}

	rest := make([]byte, bodyOffset-4)
	if _, err := io.ReadFull(f, rest); err != nil {
		return nil, fatalf("parseHeader", "read header body: %w", err)
	}

	cur := 0
	expect := func(b byte) error {
		if cur >= len(rest) || rest[cur] != b {
			return fatalf("parseHeader", "expected delimiter %q at offset %d", b, cur)
		}
		cur++
		return nil
	}
	readU32 := func() (uint32, error) {
		if cur+4 > len(rest) {
			return 0, fatalf("parseHeader", "truncated u32 at offset %d", cur)
		}
		v := getU32(rest[cur : cur+4])
		cur += 4
		return v, nil
	}

	if err := expect('\n'); err != nil {
		return nil, err
	}

	articleCount, err := readU32()
	if err != nil {
		return nil, err
	}
	if err := expect('\n'); err != nil {
		return nil, err
	}

	titles := make(map[uint32]string, articleCount)
	for i := uint32(0); i < articleCount; i++ {
		id, err := readU32()
		if err != nil {
			return nil, err
		}
		nl := bytes.IndexByte(rest[cur:], '\n')
		if nl < 0 {
			return nil, fatalf("parseHeader", "unterminated title for article %d", id)
		}
		titles[id] = string(rest[cur : cur+nl])
		cur += nl + 1
	}

	termCount, err := readU32()
	if err != nil {
		return nil, err
	}
	if err := expect('\n'); err != nil {
		return nil, err
	}

	offsets := make(map[string][]int64)
	for i := uint32(0); i < termCount; i++ {
		if _, err := readU32(); err != nil { // term id: not needed beyond grouping by term text
			return nil, err
		}
		ed := bytes.IndexByte(rest[cur:], endDelim)
		if ed < 0 {
			return nil, fatalf("parseHeader", "unterminated term at offset %d", cur)
		}
		term := string(rest[cur : cur+ed])
		cur += ed + 1

		var termOffsets []int64
		for {
			v, err := readU32()
			if err != nil {
				return nil, err
			}
			if v == sentinel {
				break
			}
			termOffsets = append(termOffsets, int64(bodyOffset)+int64(v))
		}
		if err := expect('\n'); err != nil {
			return nil, err
		}

		// A file may list the same term twice across independent flush
		// cycles (spec.md §9): concatenate rather than overwrite.
		offsets[term] = append(offsets[term], termOffsets...)
	}

	return &Reader{bodyOffset: int64(bodyOffset), titles: titles, offsets: offsets}, nil
}

// SearchHit is one (article, weight) pair in a result's top list.
type SearchHit struct {
	Article string
	Weight  int
}

// SearchResult is the result of querying one term (spec.md §4.8, §4.9).
type SearchResult struct {
	Total int
	Top   []SearchHit
}

// Search looks up term, accumulates per-article occurrence counts from
// every body record at the term's recorded offsets, and returns the
// total distinct-article count plus the first maxSearchResults articles
// in ascending-article-ID order (spec.md §9's deterministic tie-break
// for the per-file map-iteration-order choice).
func (r *Reader) Search(term string) (SearchResult, error) {
	offsets, ok := r.offsets[term]
	if !ok {
		return SearchResult{}, nil
	}

	counts := make(map[uint32]int)
	var order []uint32
	for _, off := range offsets {
		aids, err := r.readPosting(off)
		if err != nil {
			return SearchResult{}, err
		}
		for _, aid := range aids {
			if _, seen := counts[aid]; !seen {
				order = append(order, aid)
			}
			counts[aid]++
		}
	}

	sort.Slice(order, func(i, j int) bool { return order[i] < order[j] })

	top := make([]SearchHit, 0, maxSearchResults)
	for _, aid := range order {
		if len(top) >= maxSearchResults {
			break
		}
		title, ok := r.titles[aid]
		if !ok {
			continue
		}
		top = append(top, SearchHit{Article: title, Weight: counts[aid]})
	}

	return SearchResult{Total: len(counts), Top: top}, nil
}

func (r *Reader) readPosting(offset int64) ([]uint32, error) {
	var tidBuf [4]byte
	if _, err := r.file.ReadAt(tidBuf[:], offset); err != nil {
		return nil, fatalf("Reader.readPosting", "read term id at %d: %w", offset, err)
	}
	pos := offset + 4

	var aids []uint32
	for {
		var buf [4]byte
		if _, err := r.file.ReadAt(buf[:], pos); err != nil {
			return nil, fatalf("Reader.readPosting", "read posting at %d: %w", pos, err)
		}
		pos += 4
		v := getU32(buf[:])
		if v == sentinel {
			break
		}
		aids = append(aids, v)
	}
	return aids, nil
}
