package ga

import (
	"sort"
)

// Schedule controls how many lines an epoch may accept.
type Schedule struct {
	Growth  int
	Divisor int
	Min     int
	Cap     int
}

// DefaultSchedule matches the default configuration.
var DefaultSchedule = Schedule{Growth: 1, Divisor: 100, Min: 1, Cap: 100}

// AcceptCount returns how many top lines the final round of an epoch may
// hand to the committer. It never decreases as epoch or width grow.
func AcceptCount(epoch, width int, s Schedule) int {
	n := (width + epoch*s.Growth) / s.Divisor
	if n < s.Min {
		n = s.Min
	}
	if n > s.Cap {
		n = s.Cap
	}
	return n
}

// Rank sorts lines by descending fitness rate. Equal rates keep their
// current relative order.
func Rank(pop Population) {
	sort.SliceStable(pop, func(i, j int) bool {
		return pop[i].Rate() > pop[j].Rate()
	})
}

// Dedupe walks a ranked population and zeroes the fitness of every line
// whose genotype already appeared earlier. No line is removed. It returns
// the number of lines demoted.
func Dedupe(pop Population) int {
	seen := make(map[Genotype]struct{}, len(pop))
	demoted := 0
	for _, l := range pop {
		g := l.Genotype()
		if _, ok := seen[g]; ok {
			l.Score.Fitness = 0
			demoted++
			continue
		}
		seen[g] = struct{}{}
	}
	return demoted
}

// Truncate keeps the first n lines.
func Truncate(pop Population, n int) Population {
	if n > len(pop) {
		n = len(pop)
	}
	return pop[:n]
}

// Survivors ranks, dedupes, re-ranks and truncates an evaluated population.
func Survivors(pop Population, n int) (Population, int) {
	Rank(pop)
	demoted := Dedupe(pop)
	Rank(pop)
	return Truncate(pop, n), demoted
}

// Elite returns the lines among the first n survivors that have positive
// fitness, in rank order.
func Elite(ranked Population, n int) Population {
	if n > len(ranked) {
		n = len(ranked)
	}
	elite := make(Population, 0, n)
	for _, l := range ranked[:n] {
		if l.Score.Fitness > 0 {
			elite = append(elite, l)
		}
	}
	return elite
}
