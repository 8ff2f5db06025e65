// Package metric scores how alike two colours look.
//
// Colours are converted from 8-bit gamma-encoded sRGB to linear light and
// then to CIE Lab (D65). The difference between two Lab points is the
// CIEDE2000 colour difference, reported on its usual 0..100 scale.
package metric

import (
	colorful "github.com/lucasb-eyer/go-colorful"

	"linepaint/internal/raster"
)

// MaxSimilarity is the score of two identical colours.
const MaxSimilarity = 100.0

// Lab returns the CIE Lab coordinates of c with L in [0, 100].
func Lab(c raster.RGB) (l, a, b float64) {
	l, a, b = toColorful(c).Lab()
	return l * 100, a * 100, b * 100
}

// DeltaE returns the CIEDE2000 difference between a and b.
func DeltaE(a, b raster.RGB) float64 {
	// go-colorful reports CIEDE2000 on a 0..1 scale.
	return toColorful(a).DistanceCIEDE2000(toColorful(b)) * 100
}

// Similarity returns 100 minus the CIEDE2000 difference. Identical colours
// score exactly 100; very distant colours may score below zero.
func Similarity(a, b raster.RGB) float64 {
	return MaxSimilarity - DeltaE(a, b)
}

// Gain is the similarity a pixel would win against target by changing from
// current to next. It is zero when next is no better.
func Gain(target, current, next raster.RGB) float64 {
	d := Similarity(target, next) - Similarity(target, current)
	if d > 0 {
		return d
	}
	return 0
}

func toColorful(c raster.RGB) colorful.Color {
	return colorful.Color{
		R: float64(c.R) / 255.0,
		G: float64(c.G) / 255.0,
		B: float64(c.B) / 255.0,
	}
}
