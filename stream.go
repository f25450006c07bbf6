package wikidex

import (
	"bytes"
	"io"
	"os"
)

// scanChunk is the chunk size RegionStream reads while hunting for a token.
// Kept modest: region files can be gigabytes, and read_until is called once
// per delimiter inside one article, never once per byte.
const scanChunk = 64 * 1024

// RegionStream is a bounded, substring-seeking reader over one [begin,end)
// byte range of a file (spec.md §4.1). Not safe for concurrent use — each
// indexer worker owns exactly one RegionStream over its own region.
type RegionStream struct {
	file     *os.File
	owns     bool
	begin    int64
	end      int64
	cur      int64
	finished bool
}

// OpenRegionStream opens path and returns a stream bounded to [begin,end).
// end == 0 means end-of-file.
func OpenRegionStream(path string, begin, end int64) (*RegionStream, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fatalf("OpenRegionStream", "open %s: %w", path, err)
	}
	s, err := newRegionStream(f, true, begin, end)
	if err != nil {
		f.Close()
		return nil, err
	}
	return s, nil
}

func newRegionStream(f *os.File, owns bool, begin, end int64) (*RegionStream, error) {
	if end == 0 {
		fi, err := f.Stat()
		if err != nil {
			return nil, fatalf("newRegionStream", "stat: %w", err)
		}
		end = fi.Size()
	}
	if end < begin {
		return nil, fatalf("newRegionStream", "end %d before begin %d", end, begin)
	}
	return &RegionStream{file: f, owns: owns, begin: begin, end: end, cur: begin}, nil
}

// Close releases the underlying file handle if this stream opened it.
func (s *RegionStream) Close() error {
	if s.owns && s.file != nil {
		return s.file.Close()
	}
	return nil
}

// Tell returns the current cursor position, absolute within the file.
func (s *RegionStream) Tell() int64 { return s.cur }

// Size returns the length of the region.
func (s *RegionStream) Size() int64 { return s.end - s.begin }

// Seek moves the cursor to pos, clamped within [begin,end].
func (s *RegionStream) Seek(pos int64) int64 {
	if pos < s.begin {
		pos = s.begin
	}
	if pos > s.end {
		pos = s.end
	}
	s.cur = pos
	s.finished = s.cur >= s.end
	return s.cur
}

// Read returns n bytes starting at the cursor without moving it. Returns
// fewer than n bytes if the region ends first, and io.EOF with no bytes
// when the cursor is already at the region end.
func (s *RegionStream) Read(n int) ([]byte, error) {
	if n <= 0 {
		return nil, nil
	}
	avail := s.end - s.cur
	if int64(n) > avail {
		n = int(avail)
	}
	if n <= 0 {
		return nil, io.EOF
	}
	buf := make([]byte, n)
	_, err := s.file.ReadAt(buf, s.cur)
	if err != nil && err != io.EOF {
		return nil, fatalf("RegionStream.Read", "readat: %w", err)
	}
	return buf, nil
}

// ReadUntil advances the cursor to the next occurrence of tok within the
// region. On a match, capture (if non-nil) receives the bytes strictly
// between the original cursor and the match start; the cursor is left at
// the match start, or just past tok if consume is true. If tok never
// occurs before end, the cursor is left at end and ReadUntil returns
// false. Once end is reached, further calls return false without I/O
// (spec.md §4.1).
func (s *RegionStream) ReadUntil(tok []byte, consume bool, capture func([]byte)) (bool, error) {
	if s.finished || s.cur >= s.end {
		s.finished = true
		return false, nil
	}

	start := s.cur
	matchAt, err := s.scanForToken(tok)
	if err != nil {
		return false, err
	}

	if matchAt < 0 {
		if capture != nil {
			seg, err := s.readAbsolute(start, s.end)
			if err != nil {
				return false, err
			}
			capture(seg)
		}
		s.cur = s.end
		s.finished = true
		return false, nil
	}

	if capture != nil {
		seg, err := s.readAbsolute(start, matchAt)
		if err != nil {
			return false, err
		}
		capture(seg)
	}

	if consume {
		s.cur = matchAt + int64(len(tok))
	} else {
		s.cur = matchAt
	}
	if s.cur >= s.end {
		s.finished = true
	}
	return true, nil
}

// scanForToken returns the absolute offset of the first occurrence of tok
// at or after s.cur and before s.end, or -1 if none exists. Search is a
// forward byte-substring scan; overlapping matches that straddle chunk
// boundaries are handled by retaining a len(tok)-1 byte tail between
// reads.
func (s *RegionStream) scanForToken(tok []byte) (int64, error) {
	if len(tok) == 0 {
		return s.cur, nil
	}

	pos := s.cur
	var carry []byte

	for pos < s.end {
		readLen := scanChunk
		if int64(readLen) > s.end-pos {
			readLen = int(s.end - pos)
		}
		chunk, err := s.readAbsolute(pos, pos+int64(readLen))
		if err != nil {
			return -1, err
		}

		window := append(carry, chunk...)
		windowStart := pos - int64(len(carry))

		if idx := bytes.Index(window, tok); idx >= 0 {
			return windowStart + int64(idx), nil
		}

		tail := len(tok) - 1
		if tail > len(window) {
			tail = len(window)
		}
		carry = append([]byte(nil), window[len(window)-tail:]...)

		pos += int64(readLen)
	}

	return -1, nil
}

func (s *RegionStream) readAbsolute(from, to int64) ([]byte, error) {
	n := to - from
	if n <= 0 {
		return nil, nil
	}
	buf := make([]byte, n)
	_, err := s.file.ReadAt(buf, from)
	if err != nil && err != io.EOF {
		return nil, fatalf("RegionStream.readAbsolute", "readat: %w", err)
	}
	return buf, nil
}
