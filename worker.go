package wikidex

import "sync/atomic"

// Worker owns one region's stream and one writer, driving the article
// parser until the region is exhausted (spec.md §4.6). A Worker is run on
// its own goroutine by the Orchestrator; nothing else touches its stream
// or writer.
type Worker struct {
	ID     int
	stream *RegionStream
	writer *Writer

	stop     atomic.Bool
	finished atomic.Bool
}

// NewWorker opens a RegionStream over region in path and a Writer rooted
// at basePath (conventionally "<out>.<id+1>", spec.md §4.7 step 2).
func NewWorker(id int, path string, region Region, basePath string) (*Worker, error) {
	stream, err := OpenRegionStream(path, region.Begin, region.End)
	if err != nil {
		return nil, err
	}
	writer, err := NewWriter(basePath)
	if err != nil {
		stream.Close()
		return nil, err
	}
	return &Worker{ID: id, stream: stream, writer: writer}, nil
}

// Stop requests cooperative shutdown. The worker checks this once per
// article, never mid-I/O (spec.md §5).
func (w *Worker) Stop() { w.stop.Store(true) }

// Finished reports whether Run has returned.
func (w *Worker) Finished() bool { return w.finished.Load() }

// ArticleCount returns the writer's since-last-flush article count, the
// same counter that drives the ARTICLE_FLUSH_LIMIT check (spec.md §4.6).
func (w *Worker) ArticleCount() int { return w.writer.ArticleCount() }

// Run indexes articles until the region is exhausted or Stop is called,
// whole-flushing on ARTICLE_FLUSH_LIMIT crossings and once more with
// last=true at exit. It returns the paths of every index file produced.
func (w *Worker) Run() ([]string, error) {
	defer w.finished.Store(true)
	defer w.stream.Close()

	var produced []string

	for {
		if w.stop.Load() {
			path, err := w.writer.Flush(true)
			if err != nil {
				return produced, err
			}
			return append(produced, path), nil
		}

		outcome, err := ParseArticle(w.stream, w.writer)
		if err != nil {
			return produced, err
		}

		switch outcome {
		case IndexGood:
			if w.writer.ArticleCount() >= articleFlushLimit {
				path, err := w.writer.Flush(false)
				if err != nil {
					return produced, err
				}
				produced = append(produced, path)
			}
		case NoIndexButContinue:
			// recoverable per-article failure (spec.md §7): keep going.
		case EndOfRegion:
			path, err := w.writer.Flush(true)
			if err != nil {
				return produced, err
			}
			return append(produced, path), nil
		}
	}
}
