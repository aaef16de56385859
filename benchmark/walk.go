package benchmark

import (
	"github.com/pkg/errors"

	"go.viam.com/rotation/logging"
	"go.viam.com/rotation/spatialmath"
)

// StrategyResult is what one OrientationDelta reports for a pair of orientations.
type StrategyResult struct {
	Strategy string                      `json:"strategy"`
	Angles   spatialmath.TaitBryanAngles `json:"angles"`
	Distance float64                     `json:"distance"`
}

// WalkStep describes the change between two consecutive vectors of a sequence.
type WalkStep struct {
	Index int                        `json:"index"`
	From  spatialmath.RotationVector `json:"from"`
	To    spatialmath.RotationVector `json:"to"`
	// DifferenceMagnitude is the rotation angle of q1.Difference(q2).
	DifferenceMagnitude float64 `json:"difference_magnitude"`
	// Rate is the constant angular velocity, in radians per second of the sample interval, that
	// turns From into To the shorter way around.
	Rate spatialmath.AngularVelocity `json:"rate"`
	// Raw is the matrix path output before conversion to Tait-Bryan angles.
	Raw     spatialmath.MatrixAngles `json:"raw"`
	Results []StrategyResult         `json:"results"`
}

// Walk computes the change between every pair of consecutive vectors with every strategy. The
// vectors are taken to be interval seconds apart.
func Walk(
	vectors []spatialmath.RotationVector,
	strategies []spatialmath.OrientationDelta,
	interval float64,
	logger logging.Logger,
) ([]WalkStep, error) {
	if len(vectors) < 2 {
		return nil, errors.Errorf("need at least 2 vectors to walk, got %d", len(vectors))
	}

	steps := make([]WalkStep, 0, len(vectors)-1)
	var previous, current [spatialmath.Matrix4Len]float64
	for i := 1; i < len(vectors); i++ {
		v1, v2 := vectors[i-1], vectors[i]
		q1, err := spatialmath.NewQuaternionFromRotationVector(v1)
		if err != nil {
			return nil, errors.Wrapf(err, "vector %d", i-1)
		}
		q2, err := spatialmath.NewQuaternionFromRotationVector(v2)
		if err != nil {
			return nil, errors.Wrapf(err, "vector %d", i)
		}
		if !q1.IsUnit() || !q2.IsUnit() {
			logger.Warnw("non-unit orientation in walk", "pair", i, "norm_from", q1.Norm(), "norm_to", q2.Norm())
		}

		if err := spatialmath.RotationMatrixFromVector(previous[:], v1); err != nil {
			return nil, err
		}
		if err := spatialmath.RotationMatrixFromVector(current[:], v2); err != nil {
			return nil, err
		}
		raw, err := spatialmath.AngleChange(current[:], previous[:])
		if err != nil {
			return nil, err
		}
		rate, err := spatialmath.QuatToAngVel(q1.Difference(q2), interval)
		if err != nil {
			return nil, errors.Wrapf(err, "pair %d", i)
		}

		step := WalkStep{
			Index:               i,
			From:                v1,
			To:                  v2,
			DifferenceMagnitude: q1.Difference(q2).Magnitude(),
			Rate:                rate,
			Raw:                 raw,
			Results:             make([]StrategyResult, 0, len(strategies)),
		}
		for _, s := range strategies {
			angles, err := s.TaitBryanChange(v1, v2)
			if err != nil {
				return nil, errors.Wrapf(err, "%s on pair %d", s.Name(), i)
			}
			distance, err := s.Distance(v1, v2)
			if err != nil {
				return nil, errors.Wrapf(err, "%s on pair %d", s.Name(), i)
			}
			step.Results = append(step.Results, StrategyResult{Strategy: s.Name(), Angles: angles, Distance: distance})
		}
		logger.Debugw("walked pair", "pair", i, "difference_magnitude", step.DifferenceMagnitude)
		steps = append(steps, step)
	}
	return steps, nil
}
