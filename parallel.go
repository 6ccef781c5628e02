package phylonj

import (
	"runtime"
	"sync"
)

// parallelRows splits [0,n) into contiguous, non-overlapping row ranges
// and runs fn(lo, hi) for each range in its own goroutine, then waits
// for all of them to finish. Since row ranges never overlap, no
// synchronization is needed on the write side within fn.
//
// Every engine's embarrassingly-parallel passes (initial row totals,
// row-minimum scans, initial S/I sort, periodic purge) go through this
// one helper instead of a copy of the range-splitting loop per pass.
//
// workers <= 1, or n <= 1, runs fn(0, n) inline with no goroutines.
func parallelRows(n, workers int, fn func(lo, hi int)) {
	if workers <= 1 || n <= 1 {
		fn(0, n)
		return
	}

	rowsPerWorker := (n + workers - 1) / workers

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		lo := w * rowsPerWorker
		hi := lo + rowsPerWorker
		if hi > n {
			hi = n
		}
		if lo >= n {
			break
		}
		wg.Add(1)
		go func(lo, hi int) {
			defer wg.Done()
			fn(lo, hi)
		}(lo, hi)
	}
	wg.Wait()
}

// resolveWorkers applies the "0 means runtime.NumCPU()" convention used
// throughout Config.
func resolveWorkers(workers int) int {
	if workers <= 0 {
		return runtime.NumCPU()
	}
	return workers
}
