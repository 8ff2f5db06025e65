// Package engine alternates the evolutionary search and the canvas commit
// until the approximation stops improving.
package engine

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"time"

	"linepaint/internal/canvas"
	"linepaint/internal/config"
	"linepaint/internal/eval"
	"linepaint/internal/ga"
	"linepaint/internal/logging"
	"linepaint/internal/raster"
)

// ErrSizeMismatch is returned when the starting canvas and target differ in size.
var ErrSizeMismatch = errors.New("engine: canvas and target sizes differ")

// StopReason tells why a run ended.
type StopReason int

const (
	StopConverged StopReason = iota // an epoch improved nothing
	StopThreshold                   // similarity check passed the threshold
	StopMaxEpochs
	StopCancelled
)

func (r StopReason) String() string {
	switch r {
	case StopConverged:
		return "converged"
	case StopThreshold:
		return "threshold"
	case StopMaxEpochs:
		return "max_epochs"
	case StopCancelled:
		return "cancelled"
	default:
		return "unknown"
	}
}

// Options configures an Engine.
type Options struct {
	Seed       int64
	Search     ga.Params
	Workers    int
	ShardSize  int
	MaxEpochs  int     // 0 means unbounded
	CheckEvery int     // 0 disables the similarity check
	Threshold  float64 // fraction of the maximum aggregate similarity
	EveryRound bool    // log survivor stats after every round
}

// OptionsFromConfig maps a loaded configuration onto engine options.
func OptionsFromConfig(cfg *config.Config) Options {
	return Options{
		Seed: cfg.Seed,
		Search: ga.Params{
			Population: cfg.Evolution.Population,
			Survivors:  cfg.Evolution.Survivors,
			Offspring:  cfg.Evolution.Offspring,
			Rounds:     cfg.Evolution.Rounds,
			Mutation: ga.Mutation{
				SlopeRange:     cfg.Mutation.SlopeRange,
				SlopeDelta:     cfg.Mutation.SlopeDelta,
				InterceptDelta: cfg.Mutation.InterceptDelta,
				ColorDelta:     cfg.Mutation.ColorDelta,
			},
			Schedule: ga.Schedule{
				Growth:  cfg.Schedule.Growth,
				Divisor: cfg.Schedule.Divisor,
				Min:     cfg.Schedule.Min,
				Cap:     cfg.Schedule.Cap,
			},
		},
		Workers:    cfg.Eval.Workers,
		ShardSize:  cfg.Eval.ShardSize,
		MaxEpochs:  cfg.Stop.MaxEpochs,
		CheckEvery: cfg.Stop.CheckEvery,
		Threshold:  cfg.Stop.Threshold,
		EveryRound: cfg.Logging.EveryRound,
	}
}

// Report is handed to the driver after every committed epoch. Canvas is
// never modified after the report is made.
type Report struct {
	Epoch       int // 1-based
	Elite       ga.Population
	Improvement float64
	Canvas      *raster.Raster
	Stats       canvas.EpochStats
}

// Result summarises a finished run.
type Result struct {
	Epochs  int
	Reason  StopReason
	Canvas  *raster.Raster
	History []canvas.EpochStats
}

// Engine runs epochs of search and commit.
type Engine struct {
	opts      Options
	evaluator *eval.Evaluator
	searcher  *ga.Searcher
}

// New creates an engine whose randomness is fully determined by opts.Seed.
func New(opts Options) *Engine {
	ev := eval.NewEvaluator(opts.Workers, opts.ShardSize)
	e := &Engine{
		opts:      opts,
		evaluator: ev,
		searcher:  ga.NewSearcher(opts.Search, ev, rand.New(rand.NewSource(opts.Seed))),
	}
	if opts.EveryRound {
		e.searcher.OnRound = logRound
	}
	return e
}

// Evaluated returns the number of line evaluations performed so far.
func (e *Engine) Evaluated() int64 {
	return e.evaluator.Evaluated()
}

// Run improves start towards target epoch by epoch. start is not modified;
// each epoch's canvas is a fresh raster. onEpoch may be nil; an error from
// it aborts the run. The context is checked between epochs only.
func (e *Engine) Run(ctx context.Context, target, start *raster.Raster, onEpoch func(Report) error) (Result, error) {
	if target == nil || start == nil {
		return Result{}, raster.ErrEmptyImage
	}
	if target.Width() != start.Width() || target.Height() != start.Height() {
		return Result{}, fmt.Errorf("%w: target %dx%d, canvas %dx%d", ErrSizeMismatch,
			target.Width(), target.Height(), start.Width(), start.Height())
	}

	log := logging.Logger()
	res := Result{Canvas: start}

	for i := 0; ; i++ {
		if err := ctx.Err(); err != nil {
			res.Reason = StopCancelled
			return res, err
		}

		began := time.Now()
		elite := e.searcher.Run(target, res.Canvas, i)
		next, improvement := canvas.Commit(target, res.Canvas, elite)

		stats := canvas.EpochStats{
			Epoch:       i + 1,
			Elites:      len(elite),
			Improvement: improvement,
			Duration:    time.Since(began),
		}
		stats.Measure(target, next)

		res.Canvas = next
		res.Epochs = i + 1
		res.History = append(res.History, stats)

		log.Info("epoch committed",
			"epoch", stats.Epoch,
			"lines", stats.Elites,
			"improvement", stats.Improvement,
			"ratio", stats.Ratio,
			"elapsed", stats.Duration)

		if onEpoch != nil {
			err := onEpoch(Report{
				Epoch:       stats.Epoch,
				Elite:       elite,
				Improvement: improvement,
				Canvas:      next,
				Stats:       stats,
			})
			if err != nil {
				return res, fmt.Errorf("engine: epoch %d: %w", stats.Epoch, err)
			}
		}

		switch {
		case improvement == 0:
			res.Reason = StopConverged
			return res, nil
		case e.opts.CheckEvery > 0 && res.Epochs%e.opts.CheckEvery == 0 && stats.Ratio >= e.opts.Threshold:
			res.Reason = StopThreshold
			return res, nil
		case e.opts.MaxEpochs > 0 && res.Epochs >= e.opts.MaxEpochs:
			res.Reason = StopMaxEpochs
			return res, nil
		}
	}
}

func logRound(s ga.RoundStats) {
	logging.Logger().Debug("round",
		"epoch", s.Epoch+1,
		"round", s.Round,
		"positive", s.Positive,
		"demoted", s.Demoted,
		"best_rate", s.BestRate,
		"mean_fitness", s.MeanFitness)
}
