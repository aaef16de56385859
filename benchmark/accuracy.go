package benchmark

import (
	"math"

	"github.com/golang/geo/r3"
	"github.com/pkg/errors"

	"go.viam.com/rotation/spatialmath"
)

// AccuracyCase is a pair of orientations whose relative rotation is known.
type AccuracyCase struct {
	Name     string
	From     spatialmath.RotationVector
	To       spatialmath.RotationVector
	Expected spatialmath.Quaternion
}

// AccuracyResult is how far one strategy lands from the expected rotation of one case.
type AccuracyResult struct {
	Case     string                      `json:"case"`
	Strategy string                      `json:"strategy"`
	Angles   spatialmath.TaitBryanAngles `json:"angles"`
	// Error is the angle between the expected rotation and the one described by Angles.
	Error float64 `json:"error"`
	// DistanceError compares Distance, folded onto [0, π], with the expected rotation angle.
	DistanceError float64 `json:"distance_error"`
}

// AccuracyCases returns the fixed cases: half turns about each axis from the identity, a turn
// about the diagonal, and a yaw starting from a tilted orientation.
func AccuracyCases() []AccuracyCase {
	identity := spatialmath.RotationVector{0, 0, 0}
	diagonal := 2 * math.Acos(math.Sqrt(1-3*0.33*0.33))
	tilt := spatialmath.NewQuaternionFromAxisAngle(r3.Vector{X: 1}, math.Pi/6)
	yaw := spatialmath.NewQuaternionFromAxisAngle(r3.Vector{Z: 1}, math.Pi/9)

	return []AccuracyCase{
		{
			Name:     "half turn about x",
			From:     identity,
			To:       spatialmath.RotationVector{1, 0, 0},
			Expected: spatialmath.NewQuaternionFromAxisAngle(r3.Vector{X: 1}, math.Pi),
		},
		{
			Name:     "half turn about y",
			From:     identity,
			To:       spatialmath.RotationVector{0, 1, 0},
			Expected: spatialmath.NewQuaternionFromAxisAngle(r3.Vector{Y: 1}, math.Pi),
		},
		{
			Name:     "half turn about z",
			From:     identity,
			To:       spatialmath.RotationVector{0, 0, 1},
			Expected: spatialmath.NewQuaternionFromAxisAngle(r3.Vector{Z: 1}, math.Pi),
		},
		{
			Name:     "turn about diagonal",
			From:     identity,
			To:       spatialmath.RotationVector{0.33, 0.33, 0.33},
			Expected: spatialmath.NewQuaternionFromAxisAngle(r3.Vector{X: 1, Y: 1, Z: 1}, diagonal),
		},
		{
			Name:     "yaw from tilt",
			From:     tilt.RotationVector(),
			To:       tilt.HamiltonProduct(yaw).RotationVector(),
			Expected: yaw,
		},
	}
}

// Accuracy runs every case through every strategy, with the matrix strategy using layout.
func Accuracy(layout int) ([]AccuracyResult, error) {
	strategies := spatialmath.Strategies(layout)
	cases := AccuracyCases()
	results := make([]AccuracyResult, 0, len(cases)*len(strategies))
	for _, c := range cases {
		expectedAngle := foldAngle(c.Expected.Magnitude())
		for _, s := range strategies {
			angles, err := s.TaitBryanChange(c.From, c.To)
			if err != nil {
				return nil, errors.Wrapf(err, "%s on %q", s.Name(), c.Name)
			}
			distance, err := s.Distance(c.From, c.To)
			if err != nil {
				return nil, errors.Wrapf(err, "%s on %q", s.Name(), c.Name)
			}
			results = append(results, AccuracyResult{
				Case:          c.Name,
				Strategy:      s.Name(),
				Angles:        angles,
				Error:         angles.Quaternion().AngleTo(c.Expected),
				DistanceError: math.Abs(foldAngle(distance) - expectedAngle),
			})
		}
	}
	return results, nil
}

// foldAngle maps a rotation angle in [0, 2π] onto the equivalent one in [0, π].
func foldAngle(angle float64) float64 {
	return math.Min(angle, 2*math.Pi-angle)
}
