package wikidex

import (
	"os"
	"strconv"
)

// ThreadsFromEnv reads THREADS (spec.md §6): a positive integer overrides
// the detected worker count. Zero means "let the orchestrator decide"
// (DefaultWorkerCount).
func ThreadsFromEnv() int {
	raw := os.Getenv("THREADS")
	if raw == "" {
		return 0
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n <= 0 {
		return 0
	}
	return n
}

// IndexerConfig is cmd/indexer's parsed argument set (spec.md §6,
// SPEC_FULL.md §4.14). Workers is 0 when THREADS is unset, meaning "let
// the orchestrator call DefaultWorkerCount".
type IndexerConfig struct {
	XMLPath string
	OutBase string
	Workers int
}

// ParseIndexerArgs hand-parses os.Args[1:] the way the teacher's
// cmd/rchive.go main() does, rather than pulling in a flag-parsing
// framework (spec.md §6: "indexer <xml-path> <index-basename>").
func ParseIndexerArgs(args []string) (IndexerConfig, error) {
	if len(args) != 2 {
		return IndexerConfig{}, fatalf("ParseIndexerArgs", "usage: indexer <xml-path> <index-basename>")
	}
	return IndexerConfig{
		XMLPath: args[0],
		OutBase: args[1],
		Workers: ThreadsFromEnv(),
	}, nil
}

// ReaderConfig is cmd/reader's parsed argument set (spec.md §6,
// SPEC_FULL.md §4.14).
type ReaderConfig struct {
	IndexPaths []string
}

// ParseReaderArgs hand-parses os.Args[1:] (spec.md §6: "reader <idx>
// [<idx> ...]").
func ParseReaderArgs(args []string) (ReaderConfig, error) {
	if len(args) < 1 {
		return ReaderConfig{}, fatalf("ParseReaderArgs", "usage: reader <index-file> [<index-file> ...]")
	}
	return ReaderConfig{IndexPaths: args}, nil
}
