package canvas

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"linepaint/internal/ga"
	"linepaint/internal/raster"
)

// ErrSizeMismatch is returned when a target does not match a stroke log.
var ErrSizeMismatch = errors.New("canvas: size mismatch")

// Stroke is one committed line
type Stroke struct {
	Slope     float64  `json:"slope"`
	Intercept int      `json:"intercept"`
	Color     [3]uint8 `json:"color"`
	Fitness   float64  `json:"fitness"`
}

// Replay stores the elite of every epoch so a canvas can be rebuilt
// without rerunning the search.
type Replay struct {
	Target string     `json:"target"`
	Width  int        `json:"width"`
	Height int        `json:"height"`
	Seed   int64      `json:"seed"`
	Epochs [][]Stroke `json:"epochs"`
}

// NewReplay creates an empty stroke log
func NewReplay(target string, width, height int, seed int64) *Replay {
	return &Replay{
		Target: target,
		Width:  width,
		Height: height,
		Seed:   seed,
		Epochs: make([][]Stroke, 0, 64),
	}
}

// Record appends one epoch's elite, strongest first.
func (r *Replay) Record(elite ga.Population) {
	strokes := make([]Stroke, len(elite))
	for i, l := range elite {
		strokes[i] = Stroke{
			Slope:     l.Slope,
			Intercept: l.Intercept,
			Color:     [3]uint8{l.Color.R, l.Color.G, l.Color.B},
			Fitness:   l.Score.Fitness,
		}
	}
	r.Epochs = append(r.Epochs, strokes)
}

// Lines rebuilds the elite recorded for epoch i (0-based).
func (r *Replay) Lines(i int) (ga.Population, error) {
	if i < 0 || i >= len(r.Epochs) {
		return nil, fmt.Errorf("canvas: epoch %d not in replay of %d epochs", i, len(r.Epochs))
	}
	pop := make(ga.Population, 0, len(r.Epochs[i]))
	for _, s := range r.Epochs[i] {
		c := raster.RGB{R: s.Color[0], G: s.Color[1], B: s.Color[2]}
		l, err := ga.NewLine(s.Slope, s.Intercept, c, r.Width, r.Height)
		if err != nil {
			return nil, fmt.Errorf("canvas: epoch %d: %w", i, err)
		}
		l.Score = ga.Score{State: ga.Scored, Fitness: s.Fitness, Samples: 1}
		pop = append(pop, l)
	}
	return pop, nil
}

// Save writes the replay to a file
func (r *Replay) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// LoadReplay loads a replay from a file
func LoadReplay(path string) (*Replay, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var r Replay
	if err := json.Unmarshal(data, &r); err != nil {
		return nil, err
	}
	return &r, nil
}

// Playback repaints the first n epochs onto a black canvas. n larger than
// the number of recorded epochs replays all of them.
func (r *Replay) Playback(target *raster.Raster, n int) (*raster.Raster, error) {
	if target.Width() != r.Width || target.Height() != r.Height {
		return nil, fmt.Errorf("%w: target %dx%d, replay %dx%d",
			ErrSizeMismatch, target.Width(), target.Height(), r.Width, r.Height)
	}
	canvas, err := raster.New(r.Width, r.Height)
	if err != nil {
		return nil, err
	}
	if n > len(r.Epochs) {
		n = len(r.Epochs)
	}
	for i := 0; i < n; i++ {
		elite, err := r.Lines(i)
		if err != nil {
			return nil, err
		}
		canvas, _ = Commit(target, canvas, elite)
	}
	return canvas, nil
}
