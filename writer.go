package wikidex

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"sort"
	"sync"
)

// Writer is one thread's in-memory inverted index plus the two files
// (body, header) it is currently flushing to (spec.md §3 "Lifecycle").
// Index, ArticleCount and Flush take an internal monitor mutex so the
// owning worker can call Index while the orchestrator concurrently calls
// ArticleCount (spec.md §5).
type Writer struct {
	mu sync.Mutex

	basePath string
	seq      int

	terms     map[string]uint32
	articles  map[string]uint32
	titles    map[uint32]string
	aidsBuf   map[uint32][]uint32
	offsets   map[uint32][]uint32
	termNext  uint32
	articleID uint32

	bodyPath string
	headerPath string
	body     *os.File
	bodyW    *bufio.Writer
	bodyPos  int64
}

// NewWriter creates a Writer rooted at basePath, opening the first
// (seq=1) body temp file; the header temp file is created by Flush.
func NewWriter(basePath string) (*Writer, error) {
	w := &Writer{basePath: basePath}
	w.resetState()
	if err := w.openFiles(); err != nil {
		return nil, err
	}
	return w, nil
}

func (w *Writer) resetState() {
	w.terms = make(map[string]uint32)
	w.articles = make(map[string]uint32)
	w.titles = make(map[uint32]string)
	w.aidsBuf = make(map[uint32][]uint32)
	w.offsets = make(map[uint32][]uint32)
	w.termNext = 0
	w.articleID = 0
	w.bodyPos = 0
}

func (w *Writer) openFiles() error {
	w.seq++
	w.bodyPath = fmt.Sprintf("%s.%d.body.tmp", w.basePath, w.seq)
	w.headerPath = fmt.Sprintf("%s.%d.header.tmp", w.basePath, w.seq)

	body, err := os.Create(w.bodyPath)
	if err != nil {
		return fatalf("Writer.openFiles", "create body file: %w", err)
	}
	w.body = body
	w.bodyW = bufio.NewWriter(body)
	return nil
}

// FinalPath returns the path the current flush cycle will produce once
// Flush(false) or Flush(true) completes.
func (w *Writer) FinalPath() string {
	return fmt.Sprintf("%s.%d", w.basePath, w.seq)
}

// Index interns term and article, appends article's ID to term's pending
// aids buffer, and partial-flushes the buffer if it has reached
// partialFlushLimit (spec.md §4.5).
func (w *Writer) Index(term, article string) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	tid, err := w.internTerm(term)
	if err != nil {
		return err
	}
	aid, err := w.internArticle(article)
	if err != nil {
		return err
	}

	w.aidsBuf[tid] = append(w.aidsBuf[tid], aid)
	if len(w.aidsBuf[tid]) >= partialFlushLimit {
		if err := w.partialFlush(tid); err != nil {
			return err
		}
	}
	return nil
}

func (w *Writer) internTerm(term string) (uint32, error) {
	if id, ok := w.terms[term]; ok {
		return id, nil
	}
	if w.termNext == sentinel-1 {
		return 0, fatalf("Writer.internTerm", "term ID counter would wrap around")
	}
	w.termNext++
	w.terms[term] = w.termNext
	return w.termNext, nil
}

func (w *Writer) internArticle(article string) (uint32, error) {
	if id, ok := w.articles[article]; ok {
		return id, nil
	}
	if w.articleID == sentinel-1 {
		return 0, fatalf("Writer.internArticle", "article ID counter would wrap around")
	}
	w.articleID++
	w.articles[article] = w.articleID
	w.titles[w.articleID] = article
	return w.articleID, nil
}

// partialFlush writes tid's pending aids buffer as one body record and
// records the record's start offset (spec.md §4.5). Caller must hold mu.
func (w *Writer) partialFlush(tid uint32) error {
	aids := w.aidsBuf[tid]

	offset := w.bodyPos
	buf := make([]byte, 4, 4+4*len(aids)+4+1)
	putU32(buf, tid)
	for _, aid := range aids {
		var tmp [4]byte
		putU32(tmp[:], aid)
		buf = append(buf, tmp[:]...)
	}
	var tail [4]byte
	putU32(tail[:], sentinel)
	buf = append(buf, tail[:]...)
	buf = append(buf, '\n')

	n, err := w.bodyW.Write(buf)
	if err != nil {
		return fatalf("Writer.partialFlush", "write body record: %w", err)
	}
	w.bodyPos += int64(n)

	w.offsets[tid] = append(w.offsets[tid], uint32(offset))
	w.aidsBuf[tid] = aids[:0]
	return nil
}

// ArticleCount returns the number of distinct articles interned since the
// last flush (spec.md §4.5, §4.6: this is the counter the worker compares
// against articleFlushLimit).
func (w *Writer) ArticleCount() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return len(w.articles)
}

// Flush writes the header, concatenates body onto it, and renames the
// result to FinalPath(). Unless last is true, it then opens a fresh body
// file for the next flush cycle (spec.md §4.5).
func (w *Writer) Flush(last bool) (string, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	var pendingTerms []uint32
	for tid, buf := range w.aidsBuf {
		if len(buf) > 0 {
			pendingTerms = append(pendingTerms, tid)
		}
	}
	sort.Slice(pendingTerms, func(i, j int) bool { return pendingTerms[i] < pendingTerms[j] })
	for _, tid := range pendingTerms {
		if err := w.partialFlush(tid); err != nil {
			return "", err
		}
	}

	if err := w.bodyW.Flush(); err != nil {
		return "", fatalf("Writer.Flush", "flush body writer: %w", err)
	}

	header := w.buildHeader()

	headerFile, err := os.Create(w.headerPath)
	if err != nil {
		return "", fatalf("Writer.Flush", "create header file: %w", err)
	}
	if _, err := headerFile.Write(header); err != nil {
		headerFile.Close()
		return "", fatalf("Writer.Flush", "write header: %w", err)
	}

	if _, err := w.body.Seek(0, io.SeekStart); err != nil {
		headerFile.Close()
		return "", fatalf("Writer.Flush", "rewind body: %w", err)
	}
	if _, err := io.Copy(headerFile, w.body); err != nil {
		headerFile.Close()
		return "", fatalf("Writer.Flush", "append body onto header: %w", err)
	}

	if err := headerFile.Close(); err != nil {
		return "", fatalf("Writer.Flush", "close merged file: %w", err)
	}
	if err := w.body.Close(); err != nil {
		return "", fatalf("Writer.Flush", "close body file: %w", err)
	}

	finalPath := w.FinalPath()
	if err := os.Rename(w.headerPath, finalPath); err != nil {
		return "", fatalf("Writer.Flush", "rename %s to %s: %w", w.headerPath, finalPath, err)
	}
	if err := os.Remove(w.bodyPath); err != nil && !os.IsNotExist(err) {
		return "", fatalf("Writer.Flush", "remove temp body file: %w", err)
	}

	w.resetState()
	if !last {
		if err := w.openFiles(); err != nil {
			return "", err
		}
	}

	return finalPath, nil
}

// buildHeader serializes the header section (spec.md §6). The
// body-offset field is computed by building the section in memory first
// rather than seeking back to patch a placeholder — both produce an
// identical on-disk result, but this avoids a second file-system write.
func (w *Writer) buildHeader() []byte {
	var articleIDs []uint32
	for id := range w.titles {
		articleIDs = append(articleIDs, id)
	}
	sort.Slice(articleIDs, func(i, j int) bool { return articleIDs[i] < articleIDs[j] })

	var termIDs []uint32
	for id := range w.offsets {
		termIDs = append(termIDs, id)
	}
	sort.Slice(termIDs, func(i, j int) bool { return termIDs[i] < termIDs[j] })

	termByID := make(map[uint32]string, len(w.terms))
	for term, id := range w.terms {
		termByID[id] = term
	}

	var rest []byte
	rest = appendU32(rest, uint32(len(articleIDs)))
	rest = append(rest, '\n')
	for _, id := range articleIDs {
		rest = appendU32(rest, id)
		rest = append(rest, w.titles[id]...)
		rest = append(rest, '\n')
	}

	rest = appendU32(rest, uint32(len(termIDs)))
	rest = append(rest, '\n')
	for _, id := range termIDs {
		rest = appendU32(rest, id)
		rest = append(rest, termByID[id]...)
		rest = append(rest, endDelim)
		for _, off := range w.offsets[id] {
			rest = appendU32(rest, off)
		}
		rest = appendU32(rest, sentinel)
		rest = append(rest, '\n')
	}

	// body_offset counts the bytes of this field and its own newline too
	// — it is the byte length of the entire header section that precedes
	// the concatenated index body (spec.md §4.5's invariant).
	headerLen := 4 + 1 + len(rest)

	header := make([]byte, 0, headerLen)
	header = appendU32(header, uint32(headerLen))
	header = append(header, '\n')
	header = append(header, rest...)
	return header
}

func appendU32(dst []byte, v uint32) []byte {
	var tmp [4]byte
	putU32(tmp[:], v)
	return append(dst, tmp[:]...)
}
