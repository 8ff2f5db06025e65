package ga

import (
	"errors"
	"math"
	"math/rand"

	"linepaint/internal/raster"
)

// ErrDegenerateLine is returned for geometry that cannot be walked, such as
// a NaN or infinite slope.
var ErrDegenerateLine = errors.New("ga: degenerate line")

// Status tells whether a line has been scored against the current canvas.
type Status uint8

const (
	Unscored Status = iota
	Scored
)

func (s Status) String() string {
	switch s {
	case Unscored:
		return "unscored"
	case Scored:
		return "scored"
	default:
		return "unknown"
	}
}

// Score is the result of one evaluation pass. Samples starts at 1 so the
// rate is always defined.
type Score struct {
	State   Status
	Fitness float64 // summed similarity gain over improvable pixels
	Samples int     // 1 + in-bounds pixels visited
}

// Unscore returns the zero score every fresh line starts from.
func Unscore() Score {
	return Score{State: Unscored, Samples: 1}
}

// Rate is fitness normalised by line length.
func (s Score) Rate() float64 {
	return s.Fitness / float64(s.Samples)
}

// Genotype identifies a line's geometry. Colour is not part of it.
type Genotype struct {
	Intercept int
	Slope     float64
}

// Line is one candidate stroke: y = int(Slope*x) + Intercept in Color,
// visited for x in [XMin, XMax).
type Line struct {
	Slope     float64
	Intercept int
	Color     raster.RGB
	XMin      int
	XMax      int
	Score     Score
}

// NewLine builds an unscored line and derives its x range.
func NewLine(slope float64, intercept int, c raster.RGB, width, height int) (*Line, error) {
	xmin, xmax, err := SpanX(slope, intercept, width, height)
	if err != nil {
		return nil, err
	}
	return &Line{
		Slope:     slope,
		Intercept: intercept,
		Color:     c,
		XMin:      xmin,
		XMax:      xmax,
		Score:     Unscore(),
	}, nil
}

// Random draws a line that is visible somewhere on a width × height canvas.
func Random(width, height int, m Mutation, rng *rand.Rand) *Line {
	slope := quantize(uniform(rng, -m.SlopeRange, m.SlopeRange))
	lo, hi := interceptRange(slope, width, height)

	l := &Line{
		Slope:     slope,
		Intercept: lo + rng.Intn(hi-lo),
		Color: raster.RGB{
			R: uint8(rng.Intn(256)),
			G: uint8(rng.Intn(256)),
			B: uint8(rng.Intn(256)),
		},
		Score: Unscore(),
	}
	l.XMin, l.XMax = span(l.Slope, l.Intercept, width, height)
	return l
}

// Y returns the row the line occupies at column x. The product is truncated
// toward zero before the intercept is added.
func (l *Line) Y(x int) int {
	return int(l.Slope*float64(x)) + l.Intercept
}

// Genotype returns the line's geometric identity.
func (l *Line) Genotype() Genotype {
	return Genotype{Intercept: l.Intercept, Slope: l.Slope}
}

// Rate is shorthand for l.Score.Rate().
func (l *Line) Rate() float64 {
	return l.Score.Rate()
}

// Clone creates a copy that shares no mutable state with l
func (l *Line) Clone() *Line {
	c := *l
	return &c
}

// SpanX returns the columns [xmin, xmax) where the line can land inside a
// width × height canvas. Both bounds are clamped to [0, width].
func SpanX(slope float64, intercept, width, height int) (xmin, xmax int, err error) {
	if width <= 0 || height <= 0 {
		return 0, 0, raster.ErrEmptyImage
	}
	if math.IsNaN(slope) || math.IsInf(slope, 0) {
		return 0, 0, ErrDegenerateLine
	}
	xmin, xmax = span(slope, intercept, width, height)
	return xmin, xmax, nil
}

func span(slope float64, intercept, width, height int) (int, int) {
	if slope == 0 {
		if intercept >= 0 && intercept < height {
			return 0, width
		}
		return 0, 0
	}

	// Truncation moves y by less than one row, so any visible column has
	// its exact y inside (-1, height).
	b := float64(intercept)
	x0 := (-1 - b) / slope
	x1 := (float64(height) - b) / slope
	if x0 > x1 {
		x0, x1 = x1, x0
	}
	return clampX(math.Floor(x0), width), clampX(math.Ceil(x1)+1, width)
}

func clampX(x float64, width int) int {
	if x <= 0 {
		return 0
	}
	if x >= float64(width) {
		return width
	}
	return int(x)
}

// interceptRange returns [lo, hi) of intercepts that keep a line with this
// slope visible somewhere across the width.
func interceptRange(slope float64, width, height int) (lo, hi int) {
	reach := int(math.Floor(math.Abs(slope) * float64(width-1)))
	if slope > 0 {
		lo, hi = -reach, height
	} else {
		lo, hi = 0, height+reach
	}
	// near-zero slopes can leave an empty range on tiny canvases
	if hi-lo < 1 {
		hi = lo + 1
	}
	return lo, hi
}

func quantize(v float64) float64 {
	return math.Floor(v*1000) / 1000
}

func uniform(rng *rand.Rand, lo, hi float64) float64 {
	return lo + rng.Float64()*(hi-lo)
}
