// Command indexer builds a term→article inverted index from a
// MediaWiki-style XML dump (spec.md §6).
//
// usage: indexer <xml-path> <index-basename>
package main

import (
	"fmt"
	"os"

	"wikidex"
	"wikidex/cmd/internal/clilog"
)

func main() {
	cfg, err := wikidex.ParseIndexerArgs(os.Args[1:])
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	n := cfg.Workers
	if n == 0 {
		n = wikidex.DefaultWorkerCount()
	}

	orch := &wikidex.Orchestrator{
		Path:    cfg.XMLPath,
		OutBase: cfg.OutBase,
		Workers: n,
		OnProgress: func(p wikidex.Progress) {
			clilog.Progress(p.WorkersFinished, p.WorkersTotal, p.ArticlesIndexed)
		},
	}

	files, err := orch.Run()
	if err != nil {
		clilog.Fatal(err)
		os.Exit(-1)
	}

	clilog.Info(fmt.Sprintf("wrote %d index file(s)", len(files)))
	for _, f := range files {
		fmt.Println(f)
	}
	os.Exit(0)
}
