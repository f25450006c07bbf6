// Command reader answers interactive term queries against one or more
// completed index files (spec.md §6).
//
// usage: reader <index-file> [<index-file> ...]
package main

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"

	"wikidex"
	"wikidex/cmd/internal/clilog"
)

func main() {
	cfg, err := wikidex.ParseReaderArgs(os.Args[1:])
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	agg := wikidex.NewAggregator()
	loaded := agg.Init(cfg.IndexPaths)
	if loaded == 0 {
		clilog.Fatal(errors.New("no index file could be loaded"))
		os.Exit(-1)
	}
	defer agg.Close()

	clilog.Info(fmt.Sprintf("loaded %d of %d index file(s)", loaded, len(cfg.IndexPaths)))

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			break
		}
		term := strings.ToLower(strings.TrimSpace(scanner.Text()))
		if term == "" {
			continue
		}
		if term == "quit" {
			break
		}

		res, err := agg.Search(term)
		if err != nil {
			clilog.Fatal(err)
			continue
		}
		if len(res.Top) == 0 {
			fmt.Println("no results")
			continue
		}
		for _, hit := range res.Top {
			fmt.Printf("%s (%d)\n", hit.Article, hit.Weight)
		}
	}
}
