// Package par provides a bounded worker-pool map over slices.
package par

import "runtime"

var defaultWorkers = runtime.NumCPU()

type MapFunc[T, R any] func(x T, emit func(r R))

// Map is MapN with a worker per CPU.
func Map[T, R any](xs []T, mapper MapFunc[T, R]) <-chan R {
	return MapN(xs, defaultWorkers, mapper)
}

// MapN applies mapper to every element of xs using n workers, streaming
// whatever the mappers emit on the returned channel. A mapper may emit zero
// or multiple results per element. The channel is closed once all workers
// have finished; emission order is unspecified.
func MapN[T, R any](xs []T, n int, mapper MapFunc[T, R]) <-chan R {
	if n < 1 {
		n = defaultWorkers
	}
	tasks := make(chan T)
	results := make(chan R)
	emit := func(r R) {
		results <- r
	}
	done := make(chan struct{})
	// spawn workers
	for i := 0; i < n; i++ {
		go func() {
			defer func() { done <- struct{}{} }()
			for x := range tasks {
				mapper(x, emit)
			}
		}()
	}
	// feed workers
	go func() {
		for _, x := range xs {
			tasks <- x
		}
		close(tasks)
	}()
	// close results when all workers are done
	go func() {
		ndone := 0
		for range done {
			ndone++
			if ndone >= n {
				close(results)
				return
			}
		}
	}()
	return results
}
