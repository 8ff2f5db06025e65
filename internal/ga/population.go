package ga

import (
	"math/rand"
)

// Population is one round's candidate lines.
type Population []*Line

// NewPopulation creates size random lines for a width × height canvas.
func NewPopulation(size, width, height int, m Mutation, rng *rand.Rand) Population {
	pop := make(Population, size)
	for i := range pop {
		pop[i] = Random(width, height, m, rng)
	}
	return pop
}

// Breed builds the next round from ranked survivors. Every survivor is
// carried over with its score and followed by offspring children; the walk
// stops at the first survivor without positive fitness. The rest is padded
// with random lines up to size.
func Breed(ranked Population, size, offspring, width, height int, m Mutation, rng *rand.Rand) Population {
	next := make(Population, 0, size)

	for _, l := range ranked {
		if l.Score.Fitness <= 0 {
			break
		}
		if len(next)+1+offspring > size {
			break
		}
		next = append(next, l.Clone())
		for k := 0; k < offspring; k++ {
			next = append(next, l.Reproduce(width, height, m, rng))
		}
	}

	for len(next) < size {
		next = append(next, Random(width, height, m, rng))
	}
	return next
}

// Best returns the line with the highest rate
func (p Population) Best() *Line {
	if len(p) == 0 {
		return nil
	}
	best := p[0]
	for _, l := range p[1:] {
		if l.Rate() > best.Rate() {
			best = l
		}
	}
	return best
}

// Stats summarises a population after a round
type Stats struct {
	Size        int
	Scored      int
	Positive    int
	BestRate    float64
	BestFitness float64
	MeanFitness float64
}

// Summarize computes Stats over p.
func (p Population) Summarize() Stats {
	s := Stats{Size: len(p)}
	if len(p) == 0 {
		return s
	}
	var sum float64
	for _, l := range p {
		if l.Score.State == Scored {
			s.Scored++
		}
		if l.Score.Fitness > 0 {
			s.Positive++
		}
		if l.Score.Fitness > s.BestFitness {
			s.BestFitness = l.Score.Fitness
		}
		sum += l.Score.Fitness
	}
	s.BestRate = p.Best().Rate()
	s.MeanFitness = sum / float64(len(p))
	return s
}
