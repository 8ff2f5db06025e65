package logging

import (
	"os"
	"path/filepath"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"linepaint/internal/canvas"
)

// PlotProgress draws per-epoch improvement and similarity ratio (in
// percent) against epoch and saves the chart to path. The format follows
// the extension. Nothing is written for an empty run.
func PlotProgress(path, title string, epochs []canvas.EpochStats) error {
	if len(epochs) == 0 {
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "Epoch"
	p.Y.Label.Text = "Score"

	improvement := make(plotter.XYs, len(epochs))
	similarity := make(plotter.XYs, len(epochs))
	for i, e := range epochs {
		improvement[i].X = float64(e.Epoch)
		improvement[i].Y = e.Improvement
		similarity[i].X = float64(e.Epoch)
		similarity[i].Y = e.Ratio * 100
	}

	impLine, err := plotter.NewLine(improvement)
	if err != nil {
		return err
	}
	simLine, err := plotter.NewLine(similarity)
	if err != nil {
		return err
	}
	simLine.Dashes = []vg.Length{vg.Points(4), vg.Points(2)}

	p.Add(impLine, simLine)
	p.Legend.Add("improvement", impLine)
	p.Legend.Add("similarity %", simLine)
	p.Legend.Top = true

	return p.Save(6*vg.Inch, 4*vg.Inch, path)
}
