// Package canvas paints an epoch's elite lines onto the accumulating
// approximation and measures how close it is to the target.
package canvas

import (
	"linepaint/internal/ga"
	"linepaint/internal/metric"
	"linepaint/internal/raster"
)

// Commit paints elite onto a copy of canvas and returns the copy with the
// total similarity gained. Lines are painted weakest first so the strongest
// line, painted last, wins contested pixels. A pixel changes only when the
// line's colour is closer to target than what is already there. Lines
// without positive fitness are skipped. canvas itself is not modified.
func Commit(target, canvas *raster.Raster, elite ga.Population) (*raster.Raster, float64) {
	next := canvas.Clone()
	improvement := 0.0
	h := target.Height()

	for i := len(elite) - 1; i >= 0; i-- {
		l := elite[i]
		if l.Score.Fitness <= 0 {
			continue
		}
		for x := l.XMin; x < l.XMax; x++ {
			y := l.Y(x)
			if y < 0 || y >= h {
				continue
			}
			gain := metric.Gain(target.At(x, y), next.At(x, y), l.Color)
			if gain > 0 {
				next.Set(x, y, l.Color)
				improvement += gain
			}
		}
	}
	return next, improvement
}
