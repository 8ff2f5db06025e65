package ga

import (
	"math/rand"

	"linepaint/internal/raster"
)

// Mutation bounds random construction and reproduction
type Mutation struct {
	SlopeRange     float64 // slopes of fresh lines are drawn from [-SlopeRange, SlopeRange]
	SlopeDelta     float64
	InterceptDelta int
	ColorDelta     int
}

// DefaultMutation matches the default configuration.
var DefaultMutation = Mutation{
	SlopeRange:     5,
	SlopeDelta:     3,
	InterceptDelta: 10,
	ColorDelta:     20,
}

// Reproduce returns a perturbed child of l on a width × height canvas.
// The parent is left untouched and the child starts unscored.
func (l *Line) Reproduce(width, height int, m Mutation, rng *rand.Rand) *Line {
	child := &Line{
		Slope:     quantize(uniform(rng, l.Slope-m.SlopeDelta, l.Slope+m.SlopeDelta)),
		Intercept: l.Intercept + rng.Intn(2*m.InterceptDelta+1) - m.InterceptDelta,
		Color: raster.RGB{
			R: mutateChannel(l.Color.R, m.ColorDelta, rng),
			G: mutateChannel(l.Color.G, m.ColorDelta, rng),
			B: mutateChannel(l.Color.B, m.ColorDelta, rng),
		},
		Score: Unscore(),
	}
	child.XMin, child.XMax = span(child.Slope, child.Intercept, width, height)
	return child
}

// mutateChannel draws uniformly from [c-delta, c+delta] clipped to a byte.
func mutateChannel(c uint8, delta int, rng *rand.Rand) uint8 {
	lo := int(c) - delta
	if lo < 0 {
		lo = 0
	}
	hi := int(c) + delta
	if hi > 255 {
		hi = 255
	}
	return uint8(lo + rng.Intn(hi-lo+1))
}
