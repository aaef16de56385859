package benchmark

import (
	"time"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/pkg/errors"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
)

// SaveEfficiencyPlot draws the mean time of every path against the number of vectors and saves
// it to path. The image format follows the file extension.
func SaveEfficiencyPlot(summaries []PathSummary, path string) error {
	if len(summaries) == 0 {
		return errors.New("nothing to plot")
	}
	byPath := map[string]plotter.XYs{}
	for _, s := range summaries {
		byPath[s.Path] = append(byPath[s.Path], plotter.XY{
			X: float64(s.Size),
			Y: float64(s.Mean) / float64(time.Millisecond),
		})
	}

	p := plot.New()
	p.Title.Text = "Orientation delta efficiency"
	p.X.Label.Text = "vectors"
	p.Y.Label.Text = "mean time (ms)"
	p.Legend.Top = true
	p.Legend.Left = true

	for i, name := range Paths {
		pts, ok := byPath[name]
		if !ok {
			continue
		}
		line, points, err := plotter.NewLinePoints(pts)
		if err != nil {
			return errors.Wrapf(err, "failed to draw %s", name)
		}
		c := pathColor(i)
		line.Color = c
		points.Color = c
		points.Shape = plotutil.Shape(i)
		p.Add(line, points)
		p.Legend.Add(name, line, points)
	}
	if err := p.Save(8*vg.Inch, 5*vg.Inch, path); err != nil {
		return errors.Wrapf(err, "failed to save plot to %q", path)
	}
	return nil
}

// pathColor spreads the paths evenly around the hue circle at one chroma and lightness, so no
// path stands out.
func pathColor(i int) colorful.Color {
	return colorful.Hcl(360*float64(i)/float64(len(Paths)), 0.6, 0.55).Clamped()
}
