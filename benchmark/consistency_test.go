package benchmark

import (
	"context"
	"testing"

	"github.com/google/go-cmp/cmp"
	"go.viam.com/test"

	"go.viam.com/rotation/spatialmath"
	"go.viam.com/rotation/utils"
)

func TestConsistency(t *testing.T) {
	vectors := GenerateOrientations(2000, NewSource(5))
	strategies := spatialmath.Strategies(spatialmath.Matrix4Len)

	report, err := Consistency(context.Background(), vectors, strategies, 1e-6)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, report.OK(), test.ShouldBeTrue)
	test.That(t, report.Reference, test.ShouldEqual, "quaternion")
	test.That(t, report.Pairs, test.ShouldEqual, 1999)
	test.That(t, len(report.Strategies), test.ShouldEqual, 3)

	// the reference always agrees with itself
	test.That(t, report.Strategies[0].MaxAngle, test.ShouldBeLessThan, 1e-12)
	test.That(t, report.Strategies[0].MaxDistance, test.ShouldEqual, 0)
	for _, d := range report.Strategies {
		test.That(t, d.Failures, test.ShouldEqual, 0)
		test.That(t, d.WorstPair, test.ShouldBeGreaterThan, 0)
		test.That(t, d.WorstPair, test.ShouldBeLessThan, 2000)
	}
}

func TestConsistencySerialMatchesParallel(t *testing.T) {
	vectors := GenerateOrientations(300, NewSource(9))
	strategies := spatialmath.Strategies(spatialmath.Matrix3Len)

	parallel, err := Consistency(context.Background(), vectors, strategies, 1e-6)
	test.That(t, err, test.ShouldBeNil)

	saved := utils.ParallelFactor
	utils.ParallelFactor = 1
	defer func() { utils.ParallelFactor = saved }()
	serial, err := Consistency(context.Background(), vectors, strategies, 1e-6)
	test.That(t, err, test.ShouldBeNil)

	test.That(t, cmp.Diff(serial, parallel), test.ShouldBeEmpty)
	for _, d := range serial.Strategies {
		test.That(t, len(d.AngleDiffs), test.ShouldEqual, 299)
	}
}

func TestConsistencyCountsFailures(t *testing.T) {
	vectors := GenerateOrientations(50, NewSource(2))
	strategies := []spatialmath.OrientationDelta{spatialmath.QuaternionObjectDelta{}, offsetDelta{}}

	report, err := Consistency(context.Background(), vectors, strategies, 1e-6)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, report.OK(), test.ShouldBeFalse)
	test.That(t, report.Strategies[1].Failures, test.ShouldEqual, 49)
	test.That(t, report.Strategies[1].MaxAngle, test.ShouldAlmostEqual, 0.1, 1e-9)
}

func TestConsistencyErrors(t *testing.T) {
	strategies := spatialmath.Strategies(spatialmath.Matrix4Len)

	_, err := Consistency(context.Background(), []spatialmath.RotationVector{{0, 0, 0}}, strategies, 1e-6)
	test.That(t, err, test.ShouldNotBeNil)

	_, err = Consistency(context.Background(), GenerateOrientations(3, NewSource(1)), nil, 1e-6)
	test.That(t, err, test.ShouldNotBeNil)

	_, err = Consistency(context.Background(), []spatialmath.RotationVector{{0, 0, 0}, {0, 0}}, strategies, 1e-6)
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, err.Error(), test.ShouldContainSubstring, "pair 1")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = Consistency(ctx, GenerateOrientations(10, NewSource(1)), strategies, 1e-6)
	test.That(t, err, test.ShouldNotBeNil)
}

// offsetDelta adds a fixed roll to the reference strategy's answer.
type offsetDelta struct {
	spatialmath.QuaternionObjectDelta
}

func (offsetDelta) Name() string {
	return "offset"
}

func (d offsetDelta) TaitBryanChange(v1, v2 spatialmath.RotationVector) (spatialmath.TaitBryanAngles, error) {
	angles, err := d.QuaternionObjectDelta.TaitBryanChange(v1, v2)
	if err != nil {
		return spatialmath.TaitBryanAngles{}, err
	}
	angles.Phi += 0.1
	return angles, nil
}
