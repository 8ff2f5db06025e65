package canvas

import (
	"errors"
	"math"
	"math/rand"
	"path/filepath"
	"testing"

	"linepaint/internal/eval"
	"linepaint/internal/ga"
	"linepaint/internal/metric"
	"linepaint/internal/raster"
)

var red = raster.RGB{R: 255}

func solid(t *testing.T, w, h int, c raster.RGB) *raster.Raster {
	t.Helper()
	r, err := raster.New(w, h)
	if err != nil {
		t.Fatal(err)
	}
	r.Fill(c)
	return r
}

func line(t *testing.T, slope float64, intercept int, c raster.RGB, w, h int, fitness float64) *ga.Line {
	t.Helper()
	l, err := ga.NewLine(slope, intercept, c, w, h)
	if err != nil {
		t.Fatal(err)
	}
	l.Score = ga.Score{State: ga.Scored, Fitness: fitness, Samples: 1}
	return l
}

func TestCommitZeroFitnessIsNoop(t *testing.T) {
	target := solid(t, 6, 6, red)
	canvas := solid(t, 6, 6, raster.Black)
	elite := ga.Population{
		line(t, 0, 1, red, 6, 6, 0),
		line(t, 1, 0, red, 6, 6, 0),
	}

	next, improvement := Commit(target, canvas, elite)
	if improvement != 0 {
		t.Errorf("improvement = %v, want 0", improvement)
	}
	if !next.Equal(canvas) {
		t.Error("canvas changed")
	}
}

func TestCommitDoesNotTouchInput(t *testing.T) {
	target := solid(t, 6, 6, red)
	canvas := solid(t, 6, 6, raster.Black)
	before := canvas.Clone()

	next, improvement := Commit(target, canvas, ga.Population{line(t, 0, 2, red, 6, 6, 1)})
	if !canvas.Equal(before) {
		t.Error("Commit modified its input canvas")
	}
	if improvement <= 0 {
		t.Errorf("improvement = %v, want > 0", improvement)
	}
	for x := 0; x < 6; x++ {
		if next.At(x, 2) != red {
			t.Errorf("pixel (%d,2) = %v, want red", x, next.At(x, 2))
		}
		if next.At(x, 3) != raster.Black {
			t.Errorf("pixel (%d,3) painted", x)
		}
	}
	want := 6 * (metric.MaxSimilarity - metric.Similarity(red, raster.Black))
	if math.Abs(improvement-want) > 1e-9 {
		t.Errorf("improvement = %v, want %v", improvement, want)
	}
}

func TestCommitStrongestPaintedLast(t *testing.T) {
	target := solid(t, 5, 5, red)
	canvas := solid(t, 5, 5, raster.Black)

	dark := raster.RGB{R: 140}
	// row 2 and the diagonal cross at (2,2)
	strong := line(t, 0, 2, red, 5, 5, 50)
	weak := line(t, 1, 0, dark, 5, 5, 10)
	elite := ga.Population{strong, weak}

	next, _ := Commit(target, canvas, elite)
	if got := next.At(2, 2); got != red {
		t.Errorf("contested pixel = %v, want the strongest line's colour %v", got, red)
	}
	if got := next.At(0, 0); got != dark {
		t.Errorf("uncontested weak pixel = %v, want %v", got, dark)
	}
}

func TestCommitKeepsBetterPixel(t *testing.T) {
	target := solid(t, 3, 3, raster.RGB{R: 200, G: 200})
	canvas := solid(t, 3, 3, raster.Black)
	// the weaker line is an exact match, so the stronger one painted after
	// it cannot improve the shared row
	strong := line(t, 0, 1, raster.RGB{R: 190, G: 200}, 3, 3, 5)
	weak := line(t, 0, 1, raster.RGB{R: 200, G: 200}, 3, 3, 1)

	next, _ := Commit(target, canvas, ga.Population{strong, weak})
	for x := 0; x < 3; x++ {
		if got := next.At(x, 1); got != weak.Color {
			t.Errorf("pixel (%d,1) = %v, want %v", x, got, weak.Color)
		}
	}
}

func TestSimilarity(t *testing.T) {
	target := solid(t, 4, 3, red)
	if got, want := Similarity(target, target), MaxSimilarity(target); got != want {
		t.Errorf("Similarity(target, target) = %v, want %v", got, want)
	}
	if MaxSimilarity(target) != 1200 {
		t.Errorf("MaxSimilarity = %v, want 1200", MaxSimilarity(target))
	}
	black := solid(t, 4, 3, raster.Black)
	if Similarity(target, black) >= MaxSimilarity(target) {
		t.Error("black canvas scores as a perfect match")
	}
}

func TestAggregate(t *testing.T) {
	got := Aggregate([]EpochStats{
		{Epoch: 1, Elites: 2, Improvement: 10, Duration: 3},
		{Epoch: 2, Elites: 5, Improvement: 0.5, Duration: 4},
	})
	if got.Epochs != 2 || got.Lines != 7 || got.Improvement != 10.5 || got.Duration != 7 {
		t.Errorf("Aggregate() = %+v", got)
	}
}

func TestReplayRoundTrip(t *testing.T) {
	rng := rand.New(rand.NewSource(8))
	target, _ := raster.New(30, 20)
	for y := 0; y < 20; y++ {
		for x := 0; x < 30; x++ {
			target.Set(x, y, raster.RGB{R: uint8(x * 8), G: uint8(y * 12), B: 90})
		}
	}

	replay := NewReplay("target.png", 30, 20, 8)
	canvas := solid(t, 30, 20, raster.Black)
	ev := eval.NewEvaluator(2, 16)
	for epoch := 0; epoch < 4; epoch++ {
		pop := ga.NewPopulation(60, 30, 20, ga.DefaultMutation, rng)
		ev.Evaluate(pop, target, canvas)
		ranked, _ := ga.Survivors(pop, 10)
		elite := ga.Elite(ranked, 5)
		replay.Record(elite)
		canvas, _ = Commit(target, canvas, elite)
	}

	path := filepath.Join(t.TempDir(), "strokes.json")
	if err := replay.Save(path); err != nil {
		t.Fatalf("Save() = %v", err)
	}
	loaded, err := LoadReplay(path)
	if err != nil {
		t.Fatalf("LoadReplay() = %v", err)
	}
	if len(loaded.Epochs) != 4 || loaded.Seed != 8 || loaded.Target != "target.png" {
		t.Fatalf("loaded replay header = %+v", loaded)
	}

	got, err := loaded.Playback(target, 100)
	if err != nil {
		t.Fatalf("Playback() = %v", err)
	}
	if !got.Equal(canvas) {
		t.Error("replayed canvas differs from committed canvas")
	}

	blank, err := loaded.Playback(target, 0)
	if err != nil || !blank.Equal(solid(t, 30, 20, raster.Black)) {
		t.Errorf("Playback(0) should be the black canvas, err = %v", err)
	}
}

func TestReplayErrors(t *testing.T) {
	replay := NewReplay("x.png", 4, 4, 1)
	if _, err := replay.Playback(solid(t, 5, 4, red), 1); !errors.Is(err, ErrSizeMismatch) {
		t.Errorf("Playback(wrong size) = %v, want ErrSizeMismatch", err)
	}
	if _, err := replay.Lines(0); err == nil {
		t.Error("Lines(0) on empty replay returned nil error")
	}
	if _, err := LoadReplay(filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Error("LoadReplay(missing) returned nil error")
	}
}
