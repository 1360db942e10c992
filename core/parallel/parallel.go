package parallel

import (
	"runtime"
	"sync"
)

// Parallelize splits the given number of items across the available CPU cores
// and executes fn concurrently, once per half-open range [start, end).
// The ranges are disjoint and together cover [0, items).
func Parallelize(items int, fn func(start, end int)) {
	if items <= 0 {
		return
	}

	workers := runtime.NumCPU()
	if workers > items {
		workers = items // No need for more workers than items
	}

	// Ceiling division so the chunks cover every item
	chunk := (items + workers - 1) / workers

	var wg sync.WaitGroup
	for start := 0; start < items; start += chunk {
		end := start + chunk
		if end > items {
			end = items
		}

		wg.Add(1)
		go func(s, e int) {
			defer wg.Done()
			fn(s, e)
		}(start, end)
	}

	// Wait for all workers to finish processing
	wg.Wait()
}

// ParallelizeWithThreshold parallelizes only when items exceeds the threshold.
// Below the threshold fn is invoked once, sequentially, over the whole range.
func ParallelizeWithThreshold(items int, threshold int, fn func(start, end int)) {
	if items <= threshold {
		fn(0, items)
		return
	}

	Parallelize(items, fn)
}
