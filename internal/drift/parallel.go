package drift

import (
	"runtime"
	"sync"
)

// Below this many particles the fan-out overhead outweighs the work.
const parallelThreshold = 4096

// ParallelFor splits [0, n) into contiguous chunks and runs fn on each,
// fanning out across CPUs for large ensembles. fn must only touch indices
// in its own range; chunks never overlap, so per-particle attribute
// writes need no locking.
func ParallelFor(n int, fn func(lo, hi int)) {
	if n <= 0 {
		return
	}
	workers := runtime.NumCPU()
	if n < parallelThreshold || workers < 2 {
		fn(0, n)
		return
	}

	chunk := (n + workers - 1) / workers
	var wg sync.WaitGroup
	for lo := 0; lo < n; lo += chunk {
		hi := lo + chunk
		if hi > n {
			hi = n
		}
		wg.Add(1)
		go func(lo, hi int) {
			defer wg.Done()
			fn(lo, hi)
		}(lo, hi)
	}
	wg.Wait()
}
