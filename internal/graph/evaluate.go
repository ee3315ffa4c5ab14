package graph

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/vk/colorgrid/internal/ctxlog"
	"github.com/vk/colorgrid/internal/datablock"
	"github.com/vk/colorgrid/internal/plugaddr"
)

// Result is the value read from one plug.
type Result struct {
	Addr     plugaddr.Address
	Elements []datablock.Element
}

type job struct {
	pos  int
	addr plugaddr.Address
}

// EvaluateAll reads every address with a pool of workers and returns the
// results in the order the addresses were given. An empty address list
// means every readable output of every node. All failures are joined into
// the returned error; successful reads are still returned.
func (g *Graph) EvaluateAll(ctx context.Context, addrs []plugaddr.Address, workers int) ([]Result, error) {
	logger := ctxlog.FromContext(ctx)

	if len(addrs) == 0 {
		for _, name := range g.Nodes() {
			outs, err := g.Outputs(name)
			if err != nil {
				return nil, err
			}
			addrs = append(addrs, outs...)
		}
	}
	if workers < 1 {
		workers = 1
	}

	results := make([]Result, len(addrs))
	errs := make([]error, len(addrs))
	jobs := make(chan job, len(addrs))
	for i, a := range addrs {
		jobs <- job{pos: i, addr: a}
	}
	close(jobs)

	logger.Debug("Starting evaluation worker pool.", "workers", workers, "plugs", len(addrs))
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func(workerID int) {
			defer wg.Done()
			workerLogger := logger.With("workerID", workerID)
			for j := range jobs {
				if err := ctx.Err(); err != nil {
					errs[j.pos] = fmt.Errorf("%s: %w", j.addr, err)
					continue
				}
				elems, err := g.Value(ctxlog.WithLogger(ctx, workerLogger), j.addr)
				if err != nil {
					workerLogger.Debug("Plug evaluation failed.", "plug", j.addr.String(), "error", err)
					errs[j.pos] = err
					continue
				}
				results[j.pos] = Result{Addr: j.addr, Elements: elems}
			}
		}(w)
	}
	wg.Wait()

	var ok []Result
	for i, r := range results {
		if errs[i] == nil {
			ok = append(ok, r)
		}
	}
	logger.Debug("Evaluation finished.", "succeeded", len(ok), "failed", len(addrs)-len(ok))
	return ok, errors.Join(errs...)
}
