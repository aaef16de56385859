package benchmark

import (
	"context"
	"math"

	"github.com/pkg/errors"

	"go.viam.com/rotation/spatialmath"
	"go.viam.com/rotation/utils"
)

// Disagreement is how far one strategy strays from the reference strategy over a sweep.
type Disagreement struct {
	Strategy string `json:"strategy"`
	// MaxAngle is the largest angle between the rotations described by the two strategies' angles.
	MaxAngle float64 `json:"max_angle"`
	// MaxDistance is the largest difference between the two distances, folded onto [0, π].
	MaxDistance float64 `json:"max_distance"`
	// WorstPair is the index of the second vector of the pair where MaxAngle occurred.
	WorstPair int `json:"worst_pair"`
	// Failures counts the pairs where either difference exceeded the tolerance.
	Failures int `json:"failures"`
	// AngleDiffs holds the angle difference of every pair, in pair order.
	AngleDiffs []float64 `json:"-"`
}

// ConsistencyReport is the outcome of a consistency sweep.
type ConsistencyReport struct {
	Reference  string         `json:"reference"`
	Pairs      int            `json:"pairs"`
	Tolerance  float64        `json:"tolerance"`
	Strategies []Disagreement `json:"strategies"`
}

// OK reports whether no strategy exceeded the tolerance.
func (r ConsistencyReport) OK() bool {
	for _, d := range r.Strategies {
		if d.Failures > 0 {
			return false
		}
	}
	return true
}

// Consistency compares every strategy against strategies[0] on each pair of consecutive vectors.
// Pairs are split into contiguous groups that run in parallel.
func Consistency(
	ctx context.Context,
	vectors []spatialmath.RotationVector,
	strategies []spatialmath.OrientationDelta,
	tolerance float64,
) (ConsistencyReport, error) {
	if len(strategies) == 0 {
		return ConsistencyReport{}, errors.New("no strategies to compare")
	}
	if len(vectors) < 2 {
		return ConsistencyReport{}, errors.Errorf("need at least 2 vectors, got %d", len(vectors))
	}

	numPairs := len(vectors) - 1
	partial := make([][]Disagreement, utils.ParallelFactor)
	err := utils.GroupWorkParallel(ctx, numPairs, func(ctx context.Context, groupNum, from, to int) error {
		found := newDisagreements(strategies)
		for pair := from; pair < to; pair++ {
			if err := ctx.Err(); err != nil {
				return err
			}
			v1, v2 := vectors[pair], vectors[pair+1]
			if err := comparePair(found, strategies, v1, v2, pair+1, tolerance); err != nil {
				return err
			}
		}
		partial[groupNum] = found
		return nil
	})
	if err != nil {
		return ConsistencyReport{}, err
	}

	merged := newDisagreements(strategies)
	for i := range merged {
		merged[i].AngleDiffs = make([]float64, 0, numPairs)
	}
	// groups cover contiguous ranges in order, so appending keeps pair order
	for _, found := range partial {
		for i, d := range found {
			merged[i].AngleDiffs = append(merged[i].AngleDiffs, d.AngleDiffs...)
			if d.MaxAngle > merged[i].MaxAngle || merged[i].WorstPair == 0 {
				merged[i].MaxAngle = d.MaxAngle
				merged[i].WorstPair = d.WorstPair
			}
			merged[i].MaxDistance = math.Max(merged[i].MaxDistance, d.MaxDistance)
			merged[i].Failures += d.Failures
		}
	}
	return ConsistencyReport{
		Reference:  strategies[0].Name(),
		Pairs:      numPairs,
		Tolerance:  tolerance,
		Strategies: merged,
	}, nil
}

func newDisagreements(strategies []spatialmath.OrientationDelta) []Disagreement {
	out := make([]Disagreement, len(strategies))
	for i, s := range strategies {
		out[i].Strategy = s.Name()
	}
	return out
}

func comparePair(
	found []Disagreement,
	strategies []spatialmath.OrientationDelta,
	v1, v2 spatialmath.RotationVector,
	pair int,
	tolerance float64,
) error {
	reference := strategies[0]
	wantAngles, err := reference.TaitBryanChange(v1, v2)
	if err != nil {
		return errors.Wrapf(err, "%s on pair %d", reference.Name(), pair)
	}
	wantDistance, err := reference.Distance(v1, v2)
	if err != nil {
		return errors.Wrapf(err, "%s on pair %d", reference.Name(), pair)
	}
	want := wantAngles.Quaternion()

	for i, s := range strategies {
		angles, err := s.TaitBryanChange(v1, v2)
		if err != nil {
			return errors.Wrapf(err, "%s on pair %d", s.Name(), pair)
		}
		distance, err := s.Distance(v1, v2)
		if err != nil {
			return errors.Wrapf(err, "%s on pair %d", s.Name(), pair)
		}

		angleDiff := angles.Quaternion().AngleTo(want)
		distanceDiff := math.Abs(foldAngle(distance) - foldAngle(wantDistance))
		if angleDiff > found[i].MaxAngle || found[i].WorstPair == 0 {
			found[i].MaxAngle = angleDiff
			found[i].WorstPair = pair
		}
		found[i].MaxDistance = math.Max(found[i].MaxDistance, distanceDiff)
		found[i].AngleDiffs = append(found[i].AngleDiffs, angleDiff)
		if angleDiff > tolerance || distanceDiff > tolerance {
			found[i].Failures++
		}
	}
	return nil
}
