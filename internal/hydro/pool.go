package hydro

import (
	"runtime"
	"sync"

	"github.com/talgya/hydronet/internal/network"
)

// RecalculateAll recomputes every pipe against its current upstream node
// across a worker pool. Per-segment recomputation only reads the rest of
// the network and writes its own pipe, so independent pipes are safe to
// evaluate in parallel. Returns per-pipe errors for segments that could
// not be computed; those keep their previous results.
func (e *Engine) RecalculateAll(net *network.Network, workers int) map[network.PipeID]error {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	ids := net.PipeIDs()
	jobs := make(chan network.PipeID)

	var mu sync.Mutex
	failed := make(map[network.PipeID]error)

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for id := range jobs {
				pipe, _ := net.Pipe(id)
				boundary, _ := net.Node(pipe.Upstream())
				if _, _, err := e.RecalculateSegment(pipe, boundary); err != nil {
					mu.Lock()
					failed[id] = err
					mu.Unlock()
				}
			}
		}()
	}

	for _, id := range ids {
		jobs <- id
	}
	close(jobs)
	wg.Wait()

	return failed
}
