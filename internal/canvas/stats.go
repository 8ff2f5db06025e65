package canvas

import (
	"time"

	"linepaint/internal/metric"
	"linepaint/internal/raster"
)

// Similarity sums the per-pixel similarity between target and canvas.
func Similarity(target, canvas *raster.Raster) float64 {
	var sum float64
	for y := 0; y < target.Height(); y++ {
		for x := 0; x < target.Width(); x++ {
			sum += metric.Similarity(target.At(x, y), canvas.At(x, y))
		}
	}
	return sum
}

// MaxSimilarity is the aggregate similarity of a perfect copy.
func MaxSimilarity(r *raster.Raster) float64 {
	return float64(r.Width()*r.Height()) * metric.MaxSimilarity
}

// EpochStats captures the outcome of one committed epoch
type EpochStats struct {
	Epoch       int           `json:"epoch"`
	Elites      int           `json:"elites"`
	Improvement float64       `json:"improvement"`
	Similarity  float64       `json:"similarity"`
	Ratio       float64       `json:"ratio"` // Similarity / MaxSimilarity
	Duration    time.Duration `json:"duration_ns"`
}

// Measure fills the similarity fields of s for the given canvas.
func (s *EpochStats) Measure(target, canvas *raster.Raster) {
	s.Similarity = Similarity(target, canvas)
	s.Ratio = s.Similarity / MaxSimilarity(target)
}

// Totals aggregates a run's epochs
type Totals struct {
	Epochs      int
	Lines       int
	Improvement float64
	Duration    time.Duration
}

// Aggregate computes totals from per-epoch stats
func Aggregate(epochs []EpochStats) Totals {
	t := Totals{Epochs: len(epochs)}
	for _, e := range epochs {
		t.Lines += e.Elites
		t.Improvement += e.Improvement
		t.Duration += e.Duration
	}
	return t
}
