package spatialmath

import (
	"math"

	"go.uber.org/multierr"

	"go.viam.com/rotation/utils"
)

// The functions in this file repeat the quaternion algebra on plain [w, x, y, z] arrays so that
// the delta between two rotation vectors can be had without building Quaternion values or
// touching the heap. None of them modify their inputs.

// QuaternionArray decodes rv into [w, x, y, z].
func QuaternionArray(rv RotationVector) ([4]float64, error) {
	if err := rv.Validate(); err != nil {
		return [4]float64{}, err
	}
	return [4]float64{rv.W(), rv[0], rv[1], rv[2]}, nil
}

// ToQuaternionArray decodes rv into dst[0:4] as [w, x, y, z]. dst is owned by the caller and
// must not be written concurrently from other goroutines.
func ToQuaternionArray(dst []float64, rv RotationVector) error {
	if len(dst) < 4 {
		return utils.NewMinLengthError("quaternion buffer", len(dst), 4)
	}
	q, err := QuaternionArray(rv)
	if err != nil {
		return err
	}
	copy(dst, q[:])
	return nil
}

// TaitBryanAngleChange returns the Tait-Bryan angles of the rotation carrying v1 onto v2. It
// produces the same result as decoding both vectors to Quaternions and calling
// q1.Difference(q2).TaitBryan().
func TaitBryanAngleChange(v1, v2 RotationVector) (TaitBryanAngles, error) {
	q1, q2, err := quaternionArrayPair(v1, v2)
	if err != nil {
		return TaitBryanAngles{}, err
	}
	q1 = versorArray(q1)
	q2 = versorArray(q2)

	// conj(q1)·q2
	w1, x1, y1, z1 := q1[0], -q1[1], -q1[2], -q1[3]
	w2, x2, y2, z2 := q2[0], q2[1], q2[2], q2[3]
	w := w1*w2 - x1*x2 - y1*y2 - z1*z2
	x := w1*x2 + x1*w2 + y1*z2 - z1*y2
	y := w1*y2 - x1*z2 + y1*w2 + z1*x2
	z := w1*z2 + x1*y2 - y1*x2 + z1*w2

	return taitBryan(w, x, y, z), nil
}

// DistanceChange returns 2·acos(q1·q2) for the quaternions encoded by v1 and v2, with the dot
// product clamped to [-1, 1]. It matches Quaternion.Distance.
func DistanceChange(v1, v2 RotationVector) (float64, error) {
	q1, q2, err := quaternionArrayPair(v1, v2)
	if err != nil {
		return 0, err
	}
	dot := q1[0]*q2[0] + q1[1]*q2[1] + q1[2]*q2[2] + q1[3]*q2[3]
	return 2 * utils.SafeAcos(dot), nil
}

// MagnitudeOf returns the total rotation angle encoded by rv. It matches Quaternion.Magnitude.
func MagnitudeOf(rv RotationVector) (float64, error) {
	q, err := QuaternionArray(rv)
	if err != nil {
		return 0, err
	}
	return 2 * math.Atan2(math.Sqrt(q[1]*q[1]+q[2]*q[2]+q[3]*q[3]), q[0]), nil
}

func quaternionArrayPair(v1, v2 RotationVector) ([4]float64, [4]float64, error) {
	if err := multierr.Combine(v1.Validate(), v2.Validate()); err != nil {
		return [4]float64{}, [4]float64{}, err
	}
	return [4]float64{v1.W(), v1[0], v1[1], v1[2]}, [4]float64{v2.W(), v2[0], v2[1], v2[2]}, nil
}

// versorArray mirrors Quaternion.Versor.
func versorArray(q [4]float64) [4]float64 {
	if q == ([4]float64{}) {
		return q
	}
	n := utils.SqrtNonNeg(q[0]*q[0] + q[1]*q[1] + q[2]*q[2] + q[3]*q[3])
	if math.Abs(1-n) <= Epsilon {
		return q
	}
	return [4]float64{q[0] / n, q[1] / n, q[2] / n, q[3] / n}
}
