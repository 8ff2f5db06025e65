package ga

import (
	"math/rand"
	"testing"
)

func TestNewPopulation(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	pop := NewPopulation(500, 64, 48, DefaultMutation, rng)
	if len(pop) != 500 {
		t.Fatalf("NewPopulation() size = %d, want 500", len(pop))
	}
	seen := make(map[*Line]bool)
	for _, l := range pop {
		if seen[l] {
			t.Fatal("population contains the same line twice")
		}
		seen[l] = true
		if l.Score.State != Unscored {
			t.Fatal("fresh line is scored")
		}
	}
}

func TestBreedEarlyBreak(t *testing.T) {
	rng := rand.New(rand.NewSource(2))
	first := scored(t, 0.5, 10, 8, 2)
	second := scored(t, -0.5, 40, 6, 2)
	zero := scored(t, 1.0, 5, 0, 1)
	// Out of order on purpose: the walk must stop at zero and never reach it.
	late := scored(t, 2.0, 3, 4, 2)

	next := Breed(Population{first, second, zero, late}, 50, 4, 100, 100, DefaultMutation, rng)

	if len(next) != 50 {
		t.Fatalf("Breed() size = %d, want 50", len(next))
	}
	if next[0].Genotype() != first.Genotype() || next[0].Score != first.Score {
		t.Errorf("next[0] = %+v, want carried copy of first survivor", next[0])
	}
	if next[0] == first {
		t.Error("survivor carried by reference")
	}
	if next[5].Genotype() != second.Genotype() || next[5].Score != second.Score {
		t.Errorf("next[5] = %+v, want carried copy of second survivor", next[5])
	}

	for i, l := range next {
		switch {
		case i == 0 || i == 5:
			if l.Score.State != Scored {
				t.Errorf("carried survivor %d lost its score", i)
			}
		default:
			if l.Score.State != Unscored {
				t.Errorf("line %d is scored, want offspring or random", i)
			}
		}
		if l.Score.State == Scored && l.Genotype() == late.Genotype() {
			t.Error("survivor after a zero-fitness line was carried")
		}
	}
}

func TestBreedAllZeroPadsWithRandom(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	ranked := Population{scored(t, 0.1, 1, 0, 1), scored(t, 0.2, 2, 0, 1)}
	next := Breed(ranked, 30, 4, 20, 20, DefaultMutation, rng)
	if len(next) != 30 {
		t.Fatalf("Breed() size = %d, want 30", len(next))
	}
	for _, l := range next {
		if l.Score.State != Unscored {
			t.Fatal("zero-fitness survivor was carried")
		}
	}
}

func TestBreedNeverExceedsSize(t *testing.T) {
	rng := rand.New(rand.NewSource(4))
	var ranked Population
	for i := 0; i < 10; i++ {
		ranked = append(ranked, scored(t, float64(i)/10, i, 10-float64(i), 1))
	}
	next := Breed(ranked, 12, 4, 50, 50, DefaultMutation, rng)
	if len(next) != 12 {
		t.Fatalf("Breed() size = %d, want 12", len(next))
	}
}

func TestSummarize(t *testing.T) {
	pop := Population{
		scored(t, 0.1, 1, 10, 5),
		scored(t, 0.2, 2, 0, 1),
		scored(t, 0.3, 3, 6, 1),
	}
	pop[1].Score.State = Unscored

	s := pop.Summarize()
	if s.Size != 3 || s.Scored != 2 || s.Positive != 2 {
		t.Errorf("Summarize() = %+v", s)
	}
	if s.BestRate != 6 || s.BestFitness != 10 {
		t.Errorf("best = %v / %v, want rate 6 fitness 10", s.BestRate, s.BestFitness)
	}
	if s.MeanFitness != 16.0/3 {
		t.Errorf("mean = %v", s.MeanFitness)
	}
	if (Population{}).Best() != nil {
		t.Error("Best() of empty population is not nil")
	}
}
