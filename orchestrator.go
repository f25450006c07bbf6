package wikidex

import (
	"fmt"
	"sync"
	"time"
)

// Progress is reported to an optional Orchestrator hook roughly once a
// second while workers run (spec.md §4.7 step 3). Progress reporting
// itself is excluded from the core engine per spec.md §1 ("progress
// logging" is an external collaborator) — Orchestrator only produces
// this value; cmd/indexer decides how to print it.
type Progress struct {
	WorkersTotal    int
	WorkersFinished int
	ArticlesIndexed int
}

// Orchestrator partitions one XML dump into N regions, runs one Worker
// per region to completion, and reports progress (spec.md §4.7).
type Orchestrator struct {
	Path       string
	OutBase    string
	Workers    int
	OnProgress func(Progress)

	pollInterval time.Duration
}

type workerResult struct {
	files []string
	err   error
}

// Run stages the input (decompressing a .gz dump if needed), partitions
// it, spawns one worker per region, polls and reports progress every
// second, and joins all workers before returning every index file path
// produced.
func (o *Orchestrator) Run() ([]string, error) {
	n := o.Workers
	if n < 1 {
		n = DefaultWorkerCount()
	}
	if n > maxRegions {
		n = maxRegions
	}

	stagedPath, cleanup, err := StageInput(o.Path)
	if err != nil {
		return nil, err
	}
	defer cleanup()

	regions, err := Partition(stagedPath, n)
	if err != nil {
		return nil, err
	}

	workers := make([]*Worker, len(regions))
	for i, r := range regions {
		basePath := fmt.Sprintf("%s.%d", o.OutBase, i+1)
		w, err := NewWorker(i, stagedPath, r, basePath)
		if err != nil {
			return nil, err
		}
		workers[i] = w
	}

	results := make([]workerResult, len(workers))
	var wg sync.WaitGroup
	for i, w := range workers {
		wg.Add(1)
		go func(i int, w *Worker) {
			defer wg.Done()
			files, err := w.Run()
			results[i] = workerResult{files: files, err: err}
		}(i, w)
	}

	interval := o.pollInterval
	if interval <= 0 {
		interval = time.Second
	}

	for {
		finished := 0
		total := 0
		for _, w := range workers {
			if w.Finished() {
				finished++
			}
			total += w.ArticleCount()
		}
		if o.OnProgress != nil {
			o.OnProgress(Progress{WorkersTotal: len(workers), WorkersFinished: finished, ArticlesIndexed: total})
		}
		if finished == len(workers) {
			break
		}
		time.Sleep(interval)
	}

	wg.Wait()

	var produced []string
	for _, r := range results {
		if r.err != nil {
			return nil, r.err
		}
		produced = append(produced, r.files...)
	}
	return produced, nil
}
