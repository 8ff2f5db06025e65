package ga

import (
	"math/rand"

	"linepaint/internal/raster"
)

// Evaluator scores every unscored line of a population against a frozen
// target/canvas pair. Lines already scored must be left as they are.
type Evaluator interface {
	Evaluate(pop Population, target, canvas *raster.Raster)
}

// Params sizes one epoch's search.
type Params struct {
	Population int
	Survivors  int
	Offspring  int
	Rounds     int
	Mutation   Mutation
	Schedule   Schedule
}

// DefaultParams matches the default configuration.
var DefaultParams = Params{
	Population: 500,
	Survivors:  100,
	Offspring:  4,
	Rounds:     100,
	Mutation:   DefaultMutation,
	Schedule:   DefaultSchedule,
}

// RoundStats is reported after every round of a search.
type RoundStats struct {
	Epoch   int
	Round   int
	Demoted int // duplicates whose fitness was zeroed
	Stats
}

// Searcher runs the evolutionary rounds of one epoch.
type Searcher struct {
	params Params
	eval   Evaluator
	rng    *rand.Rand

	// OnRound, when set, receives the survivor stats of every round.
	OnRound func(RoundStats)
}

// NewSearcher creates a searcher. rng is used only from the calling
// goroutine.
func NewSearcher(p Params, e Evaluator, rng *rand.Rand) *Searcher {
	return &Searcher{params: p, eval: e, rng: rng}
}

// Params returns the searcher's sizing.
func (s *Searcher) Params() Params {
	return s.params
}

// Run searches for lines that improve canvas towards target and returns the
// epoch's elite in rank order, strongest first. canvas is only read.
func (s *Searcher) Run(target, canvas *raster.Raster, epoch int) Population {
	w, h := target.Width(), target.Height()
	p := s.params

	pop := NewPopulation(p.Population, w, h, p.Mutation, s.rng)
	for round := 0; ; round++ {
		s.eval.Evaluate(pop, target, canvas)

		ranked, demoted := Survivors(pop, p.Survivors)
		if s.OnRound != nil {
			s.OnRound(RoundStats{
				Epoch:   epoch,
				Round:   round,
				Demoted: demoted,
				Stats:   ranked.Summarize(),
			})
		}

		if round >= p.Rounds-1 {
			return Elite(ranked, AcceptCount(epoch, w, p.Schedule))
		}
		pop = Breed(ranked, p.Population, p.Offspring, w, h, p.Mutation, s.rng)
	}
}
