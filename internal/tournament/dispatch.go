package tournament

import (
	"context"
	"math/rand"
	"runtime"

	"agon/internal/strategy"
)

// workItem is one entry on the work queue: either a repetition to run or an
// explicit stop sentinel. Each worker consumes exactly one sentinel before
// exiting.
type workItem struct {
	repetition int
	stop       bool
}

type workResult struct {
	outcome RepetitionOutcome
	err     error
	stop    bool
}

// workerCount applies the validated-range-with-fallback rule: a requested
// count inside [2, available] is honored, anything else falls back to the
// full available parallelism. The fallback is intentional, not an error.
func workerCount(requested, available int) int {
	if requested >= 2 && requested <= available {
		return requested
	}
	return available
}

func (t *Tournament) runParallel(ctx context.Context, remaining int, agg *aggregator) error {
	workers := workerCount(t.cfg.Workers, runtime.NumCPU())

	// Both queues are buffered to full capacity so that enqueueing work and
	// sentinels never blocks, even when workers outnumber work items.
	work := make(chan workItem, remaining+workers)
	results := make(chan workResult, remaining+workers)

	for rep := 0; rep < remaining; rep++ {
		work <- workItem{repetition: rep}
	}
	for w := 0; w < workers; w++ {
		work <- workItem{stop: true}
	}

	for w := 0; w < workers; w++ {
		go t.worker(ctx, work, results, t.cfg.Seed+int64(w)+1)
	}

	return t.drainResults(results, workers, agg)
}

// worker runs full round-robin repetitions with its own snapshot of the
// cache and its own clones of every player, so no mutable state is shared
// across workers. Local cache misses recompute and never feed back.
func (t *Tournament) worker(ctx context.Context, work <-chan workItem, results chan<- workResult, seed int64) {
	snapshot := t.cache.Snapshot()
	players := clonePlayers(t.cfg.Players)
	rng := rand.New(rand.NewSource(seed))

	for item := range work {
		if item.stop {
			results <- workResult{stop: true}
			return
		}
		if err := ctx.Err(); err != nil {
			results <- workResult{err: err}
			continue
		}
		outcome, err := t.playRoundRobin(players, snapshot, false, rng)
		if err != nil {
			results <- workResult{err: err}
			continue
		}
		results <- workResult{outcome: outcome}
	}
}

// drainResults appends outcomes in arrival order until every worker has
// delivered its stop sentinel. Arrival order is nondeterministic and must
// not affect the aggregate.
func (t *Tournament) drainResults(results <-chan workResult, workers int, agg *aggregator) error {
	stops := 0
	var firstErr error
	for stops < workers {
		res := <-results
		switch {
		case res.stop:
			stops++
		case res.err != nil:
			if firstErr == nil {
				firstErr = res.err
			}
		default:
			agg.add(res.outcome)
		}
	}
	return firstErr
}

func clonePlayers(players []strategy.Player) []strategy.Player {
	cloned := make([]strategy.Player, len(players))
	for i, player := range players {
		cloned[i] = player.Clone()
	}
	return cloned
}
