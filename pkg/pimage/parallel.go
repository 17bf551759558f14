package pimage

import(
	"runtime"
	"sync"
)

// ParallelRows splits the rows [0,height) into contiguous bands, one
// per worker, and blocks until every band's fn has returned. Callers
// get determinism for free as long as bands only write their own rows.
func ParallelRows(height int, fn func(partStart, partEnd int)) {
	nWorkers := runtime.NumCPU()
	if nWorkers > height { nWorkers = height }
	if nWorkers < 1 { nWorkers = 1 }

	var wg sync.WaitGroup
	for i := 0; i < nWorkers; i++ {
		partStart := i * height / nWorkers
		partEnd := (i + 1) * height / nWorkers
		if partStart == partEnd { continue }
		wg.Add(1)

		go func(partStart, partEnd int) {
			fn(partStart, partEnd)
			wg.Done()
		}(partStart, partEnd)
	}
	wg.Wait()
}
