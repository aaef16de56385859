package spatialmath

import (
	"math"
	"testing"

	"go.viam.com/test"
)

func TestTaitBryanRoundTrip(t *testing.T) {
	for _, phi := range []float64{-3, -1.2, 0, 0.4, 2.9} {
		for _, theta := range []float64{-1.5, -0.3, 0, 0.8, 1.5} {
			for _, psi := range []float64{-2.5, 0, 0.1, 3.1} {
				tb := TaitBryanAngles{Phi: phi, Theta: theta, Psi: psi}
				q := tb.Quaternion()
				test.That(t, q.IsUnit(), test.ShouldBeTrue)
				got := q.TaitBryan()
				test.That(t, got.Phi, test.ShouldAlmostEqual, phi, 1e-6)
				test.That(t, got.Theta, test.ShouldAlmostEqual, theta, 1e-6)
				test.That(t, got.Psi, test.ShouldAlmostEqual, psi, 1e-6)
			}
		}
	}
}

func TestTaitBryanSingleAxis(t *testing.T) {
	quaternionsAlmostEqual(t, TaitBryanAngles{Phi: 0.5}.Quaternion(), axisQuaternion(xAxis, 0.5), 1e-12)
	quaternionsAlmostEqual(t, TaitBryanAngles{Theta: 0.5}.Quaternion(), axisQuaternion(yAxis, -0.5), 1e-12)
	quaternionsAlmostEqual(t, TaitBryanAngles{Psi: 0.5}.Quaternion(), axisQuaternion(zAxis, 0.5), 1e-12)
}

func TestTaitBryanDegrees(t *testing.T) {
	deg := TaitBryanAngles{Phi: math.Pi, Theta: math.Pi / 2, Psi: -math.Pi / 4}.Degrees()
	test.That(t, deg.Phi, test.ShouldAlmostEqual, 180)
	test.That(t, deg.Theta, test.ShouldAlmostEqual, 90)
	test.That(t, deg.Psi, test.ShouldAlmostEqual, -45)
}

func TestTaitBryanAlmostEqual(t *testing.T) {
	a := TaitBryanAngles{Phi: math.Pi, Theta: 0.2, Psi: -0.1}
	test.That(t, a.AlmostEqual(TaitBryanAngles{Phi: -math.Pi, Theta: 0.2, Psi: -0.1}, 1e-9), test.ShouldBeTrue)
	test.That(t, a.AlmostEqual(TaitBryanAngles{Phi: math.Pi, Theta: 0.2, Psi: 2*math.Pi - 0.1}, 1e-9), test.ShouldBeTrue)
	test.That(t, a.AlmostEqual(TaitBryanAngles{Phi: math.Pi, Theta: 0.21, Psi: -0.1}, 1e-3), test.ShouldBeFalse)

	test.That(t, a.MaxAbsDiff(a), test.ShouldEqual, 0.)
	test.That(t, a.MaxAbsDiff(TaitBryanAngles{Phi: math.Pi - 0.05, Theta: 0.3, Psi: -0.1}), test.ShouldAlmostEqual, 0.1)
}

func TestMatrixAngles(t *testing.T) {
	cases := []struct {
		name string
		raw  MatrixAngles
		want TaitBryanAngles
	}{
		{"x", MatrixAngles{X: -0.4}, TaitBryanAngles{Phi: 0.4}},
		{"y", MatrixAngles{Y: 0.3}, TaitBryanAngles{Theta: -0.3}},
		{"z", MatrixAngles{Z: -0.5}, TaitBryanAngles{Psi: 0.5}},
		{"zero", MatrixAngles{}, TaitBryanAngles{}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			test.That(t, tc.raw.TaitBryan().MaxAbsDiff(tc.want), test.ShouldBeLessThan, 1e-12)
			test.That(t, tc.raw.SmallAngleTaitBryan().MaxAbsDiff(tc.want), test.ShouldBeLessThan, 1e-12)
		})
	}

	t.Run("combined rotation", func(t *testing.T) {
		raw := MatrixAngles{Z: 0.6, X: -0.7, Y: 0.2}
		exact := raw.TaitBryan()
		test.That(t, exact.Quaternion().AngleTo(raw.Quaternion()), test.ShouldBeLessThan, 1e-6)
		// the slot mapping is only first order once more than one axis turns
		test.That(t, raw.SmallAngleTaitBryan().MaxAbsDiff(exact), test.ShouldBeGreaterThan, 1e-3)
	})
}
