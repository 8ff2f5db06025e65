package eval

import (
	"runtime"
	"sync/atomic"

	"github.com/sourcegraph/conc/pool"

	"linepaint/internal/ga"
	"linepaint/internal/metric"
	"linepaint/internal/raster"
)

// Evaluator scores line populations in fixed shards on a bounded number of
// goroutines.
type Evaluator struct {
	workers   int
	shardSize int
	evaluated atomic.Int64
}

// NewEvaluator creates a new evaluator. Non-positive workers fall back to
// the CPU count; non-positive shard sizes fall back to 100.
func NewEvaluator(workers, shardSize int) *Evaluator {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	if shardSize <= 0 {
		shardSize = 100
	}
	return &Evaluator{workers: workers, shardSize: shardSize}
}

// Workers returns the goroutine bound.
func (e *Evaluator) Workers() int { return e.workers }

// Evaluated returns how many lines have been scored so far.
func (e *Evaluator) Evaluated() int64 { return e.evaluated.Load() }

// Score walks the line across its x range and sums, for every in-bounds
// pixel, how much closer to target the line's colour is than the canvas.
// Pixels the line would make worse contribute nothing.
func Score(l *ga.Line, target, canvas *raster.Raster) ga.Score {
	s := ga.Score{State: ga.Scored, Samples: 1}
	h := target.Height()

	for x := l.XMin; x < l.XMax; x++ {
		y := l.Y(x)
		if y < 0 || y >= h {
			continue
		}
		s.Fitness += metric.Gain(target.At(x, y), canvas.At(x, y), l.Color)
		s.Samples++
	}
	return s
}

// Evaluate scores every unscored line of pop. Shard k always covers indices
// [k*shardSize, (k+1)*shardSize) and writes only to its own lines, so no
// lock is needed. target and canvas must not change until Evaluate returns.
// A panic in any shard is re-raised here.
func (e *Evaluator) Evaluate(pop ga.Population, target, canvas *raster.Raster) {
	p := pool.New().WithMaxGoroutines(e.workers)

	for start := 0; start < len(pop); start += e.shardSize {
		shard := pop[start:min(start+e.shardSize, len(pop))]
		p.Go(func() {
			var n int64
			for _, l := range shard {
				if l.Score.State == ga.Scored {
					continue
				}
				l.Score = Score(l, target, canvas)
				n++
			}
			e.evaluated.Add(n)
		})
	}

	p.Wait()
}
