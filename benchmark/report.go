package benchmark

import (
	"fmt"
	"strings"

	"github.com/aybabtme/uniplot/histogram"
	"github.com/golang/geo/r3"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/floats"

	"go.viam.com/rotation/spatialmath"
)

// WalkTable prints one row per step and strategy, with angles in degrees and the angular rate in
// radians per second.
func WalkTable(steps []WalkStep) string {
	t := table.NewWriter()
	t.AppendHeader(table.Row{"Pair", "Strategy", "Roll", "Pitch", "Yaw", "Distance", "Magnitude", "Rate"})
	for _, step := range steps {
		for _, r := range step.Results {
			t.AppendRow(table.Row{
				step.Index,
				r.Strategy,
				fmt.Sprintf("%.4f", r.Angles.Degrees().Phi),
				fmt.Sprintf("%.4f", r.Angles.Degrees().Theta),
				fmt.Sprintf("%.4f", r.Angles.Degrees().Psi),
				fmt.Sprintf("%.6f", r.Distance),
				fmt.Sprintf("%.6f", step.DifferenceMagnitude),
				fmt.Sprintf("%.6f", r3.Vector(step.Rate).Norm()),
			})
		}
	}
	return t.Render()
}

// RawTable prints the matrix path output of every step before conversion, in radians.
func RawTable(steps []WalkStep) string {
	t := table.NewWriter()
	t.AppendHeader(table.Row{"Pair", "Z", "X", "Y"})
	for _, step := range steps {
		t.AppendRow(table.Row{
			step.Index,
			fmt.Sprintf("%.6f", step.Raw.Z),
			fmt.Sprintf("%.6f", step.Raw.X),
			fmt.Sprintf("%.6f", step.Raw.Y),
		})
	}
	return t.Render()
}

// EfficiencyTable prints the timing summary, one row per size and path.
func EfficiencyTable(summaries []PathSummary) string {
	t := table.NewWriter()
	t.AppendHeader(table.Row{"Size", "Path", "Mean", "Median", "StdDev"})
	for _, s := range summaries {
		t.AppendRow(table.Row{s.Size, s.Path, s.Mean, s.Median, s.StdDev})
	}
	return t.Render()
}

// AccuracyTable prints every accuracy result with its errors in radians.
func AccuracyTable(results []AccuracyResult) string {
	t := table.NewWriter()
	t.AppendHeader(table.Row{"Case", "Strategy", "Angles (deg)", "Error", "Distance error"})
	for _, r := range results {
		t.AppendRow(table.Row{
			r.Case,
			r.Strategy,
			anglesString(r.Angles),
			fmt.Sprintf("%.3g", r.Error),
			fmt.Sprintf("%.3g", r.DistanceError),
		})
	}
	return t.Render()
}

// ConsistencyTable prints how far each strategy strays from the reference.
func ConsistencyTable(report ConsistencyReport) string {
	t := table.NewWriter()
	t.SetTitle(fmt.Sprintf("%d pairs against %s, tolerance %g", report.Pairs, report.Reference, report.Tolerance))
	t.AppendHeader(table.Row{"Strategy", "Max angle", "Max distance", "Worst pair", "Failures"})
	for _, d := range report.Strategies {
		t.AppendRow(table.Row{
			d.Strategy,
			fmt.Sprintf("%.3g", d.MaxAngle),
			fmt.Sprintf("%.3g", d.MaxDistance),
			d.WorstPair,
			d.Failures,
		})
	}
	return t.Render()
}

// DisagreementHistogram draws the distribution of a strategy's per pair angle differences as text
// bars at most width characters long.
func DisagreementHistogram(d Disagreement, bins, width int) (string, error) {
	if len(d.AngleDiffs) == 0 {
		return "", errors.Errorf("no angle differences recorded for %s", d.Strategy)
	}
	var sb strings.Builder
	if low, high := floats.Min(d.AngleDiffs), floats.Max(d.AngleDiffs); low == high {
		fmt.Fprintf(&sb, "%s: all %d differences are %g\n", d.Strategy, len(d.AngleDiffs), low)
		return sb.String(), nil
	}
	fmt.Fprintf(&sb, "%s:\n", d.Strategy)
	if err := histogram.Fprint(&sb, histogram.Hist(bins, d.AngleDiffs), histogram.Linear(width)); err != nil {
		return "", err
	}
	return sb.String(), nil
}

func anglesString(tb spatialmath.TaitBryanAngles) string {
	deg := tb.Degrees()
	return fmt.Sprintf("Roll:%.2f, Pitch:%.2f, Yaw:%.2f", deg.Phi, deg.Theta, deg.Psi)
}
