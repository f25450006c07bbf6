package wikidex

import "encoding/binary"

// On-disk index file format (spec.md §6). One file is header||body,
// produced by a single Writer flush. All u32 fields are little-endian,
// matching the teacher's posting-file convention (poster.go readers use
// binary.LittleEndian uniformly) — this implementation fixes the same
// order symmetrically in Writer and Reader.
var byteOrder = binary.LittleEndian

const (
	// endDelim separates a term from its offset list in the header term
	// table. Reserved so it can never appear inside a term or title.
	endDelim byte = 0x07

	// sentinel terminates an article-ID run in both the body record and
	// the header offset list.
	sentinel uint32 = 0xFFFFFFFF

	// partialFlushLimit is the aids-buffer length that triggers a
	// per-term partial flush (spec.md §4.5).
	partialFlushLimit = 256

	// articleFlushLimit is the unflushed-article count that triggers a
	// whole-index flush (spec.md §4.5, §4.6).
	articleFlushLimit = 100000

	// maxSearchResults bounds the reader/aggregator top-K list.
	maxSearchResults = 10

	// maxRegions is the upper bound on worker/region count (spec.md §4.2).
	maxRegions = 64

	// Oversize guards for article parser buffers (spec.md §4.3).
	maxBodyBytes        = 100 << 20
	maxContributorBytes = 1 << 20
	maxTitleBytes       = 1 << 10
)

func putU32(dst []byte, v uint32) { byteOrder.PutUint32(dst, v) }
func getU32(src []byte) uint32    { return byteOrder.Uint32(src) }
