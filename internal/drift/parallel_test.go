package drift

import (
	"sync/atomic"
	"testing"
)

func TestParallelForCoversEveryIndex(t *testing.T) {
	for _, n := range []int{0, 1, 100, parallelThreshold, parallelThreshold * 3} {
		hits := make([]int32, n)
		ParallelFor(n, func(lo, hi int) {
			for i := lo; i < hi; i++ {
				atomic.AddInt32(&hits[i], 1)
			}
		})
		for i, h := range hits {
			if h != 1 {
				t.Fatalf("n=%d: index %d visited %d times", n, i, h)
			}
		}
	}
}

func TestParallelForChunksAreDisjoint(t *testing.T) {
	n := parallelThreshold * 2
	var total int64
	ParallelFor(n, func(lo, hi int) {
		atomic.AddInt64(&total, int64(hi-lo))
	})
	if total != int64(n) {
		t.Errorf("chunks cover %d indices, want %d", total, n)
	}
}
