// Package spatialmath computes the angular difference between two orientations given as rotation
// vectors, quaternions or rotation matrices, and reduces it to Tait-Bryan angles or a single angle.
package spatialmath

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/golang/geo/r3"
	"gonum.org/v1/gonum/num/quat"

	"go.viam.com/rotation/utils"
)

// Epsilon is how far the norm of a quaternion may be from 1 for it to still count as a unit quaternion.
const Epsilon = 1e-4

// Quaternion is a quaternion w + xi + yj + zk. Real holds w and Imag, Jmag and Kmag hold x, y and z.
// It is not normalized on construction. Only the Set* methods modify a Quaternion in place; every
// other operation returns a new value.
type Quaternion quat.Number

// NewQuaternion returns the quaternion w + xi + yj + zk.
func NewQuaternion(w, x, y, z float64) Quaternion {
	return Quaternion{Real: w, Imag: x, Jmag: y, Kmag: z}
}

// NewQuaternionFromRotationVector decodes a 3 or 4 component rotation vector.
func NewQuaternionFromRotationVector(rv RotationVector) (Quaternion, error) {
	var q Quaternion
	if err := q.SetValues(rv); err != nil {
		return Quaternion{}, err
	}
	return q, nil
}

// NewQuaternionFromAxisAngle returns the unit quaternion rotating by angle radians about axis.
// The axis does not need to be normalized; a zero axis yields the identity.
func NewQuaternionFromAxisAngle(axis r3.Vector, angle float64) Quaternion {
	if axis.Norm2() == 0 {
		return NewQuaternion(1, 0, 0, 0)
	}
	return axisQuaternion(axis.Normalize(), angle)
}

// W returns the scalar part.
func (q Quaternion) W() float64 {
	return q.Real
}

// X returns the i component.
func (q Quaternion) X() float64 {
	return q.Imag
}

// Y returns the j component.
func (q Quaternion) Y() float64 {
	return q.Jmag
}

// Z returns the k component.
func (q Quaternion) Z() float64 {
	return q.Kmag
}

// Scalar returns the scalar part, same as W.
func (q Quaternion) Scalar() float64 {
	return q.Real
}

// Vector returns the vector part.
func (q Quaternion) Vector() r3.Vector {
	return r3.Vector{X: q.Imag, Y: q.Jmag, Z: q.Kmag}
}

// Number returns q as a gonum quaternion.
func (q Quaternion) Number() quat.Number {
	return quat.Number(q)
}

// RotationVector encodes q as a four component rotation vector (x, y, z, w).
func (q Quaternion) RotationVector() RotationVector {
	return RotationVector{q.Imag, q.Jmag, q.Kmag, q.Real}
}

// SetValues replaces all four components with those decoded from rv. q is left untouched on error.
func (q *Quaternion) SetValues(rv RotationVector) error {
	if err := rv.Validate(); err != nil {
		return err
	}
	q.Real = rv.W()
	q.Imag = rv[0]
	q.Jmag = rv[1]
	q.Kmag = rv[2]
	return nil
}

// SetVector replaces the vector part.
func (q *Quaternion) SetVector(v r3.Vector) {
	q.Imag = v.X
	q.Jmag = v.Y
	q.Kmag = v.Z
}

// SetScalar replaces the scalar part.
func (q *Quaternion) SetScalar(w float64) {
	q.Real = w
}

// Multiply scales every component by c.
func (q Quaternion) Multiply(c float64) Quaternion {
	return Quaternion(quat.Scale(c, quat.Number(q)))
}

// Divide divides every component by c. Dividing by zero follows IEEE 754 and yields Inf or NaN components.
func (q Quaternion) Divide(c float64) Quaternion {
	return Quaternion{Real: q.Real / c, Imag: q.Imag / c, Jmag: q.Jmag / c, Kmag: q.Kmag / c}
}

// HamiltonProduct returns q*other. The product is not commutative.
func (q Quaternion) HamiltonProduct(other Quaternion) Quaternion {
	return Quaternion(quat.Mul(quat.Number(q), quat.Number(other)))
}

// Add returns the componentwise sum.
func (q Quaternion) Add(other Quaternion) Quaternion {
	return Quaternion(quat.Add(quat.Number(q), quat.Number(other)))
}

// Subtract returns the componentwise difference q-other.
func (q Quaternion) Subtract(other Quaternion) Quaternion {
	return Quaternion(quat.Sub(quat.Number(q), quat.Number(other)))
}

// LengthSquared returns w² + x² + y² + z².
func (q Quaternion) LengthSquared() float64 {
	return q.Real*q.Real + q.Imag*q.Imag + q.Jmag*q.Jmag + q.Kmag*q.Kmag
}

// Norm returns the length of q.
func (q Quaternion) Norm() float64 {
	return utils.SqrtNonNeg(q.LengthSquared())
}

// IsUnit reports whether the norm of q is within Epsilon of 1.
func (q Quaternion) IsUnit() bool {
	return q.IsUnitWithin(Epsilon)
}

// IsUnitWithin reports whether the norm of q is within epsilon of 1.
func (q Quaternion) IsUnitWithin(epsilon float64) bool {
	return math.Abs(1-q.Norm()) <= epsilon
}

// IsZero reports whether all four components are exactly zero.
func (q Quaternion) IsZero() bool {
	return q.Real == 0 && q.Imag == 0 && q.Jmag == 0 && q.Kmag == 0
}

// Conjugate negates the vector part.
func (q Quaternion) Conjugate() Quaternion {
	return Quaternion(quat.Conj(quat.Number(q)))
}

// Inverse returns the multiplicative inverse of q, which is its conjugate when q is a unit quaternion.
// The zero quaternion has no inverse; it is returned unchanged and callers must treat it as degenerate.
func (q Quaternion) Inverse() Quaternion {
	if q.IsZero() {
		return q
	}
	if q.IsUnit() {
		return q.Conjugate()
	}
	return q.Conjugate().Divide(q.LengthSquared())
}

// Versor returns the unit quaternion pointing the same way as q. Unit quaternions and the zero
// quaternion are returned unchanged, so a zero result means the input was degenerate.
func (q Quaternion) Versor() Quaternion {
	if q.IsUnit() || q.IsZero() {
		return q
	}
	return q.Divide(q.Norm())
}

// Difference returns the rotation that carries orientation q onto orientation other. Both are
// normalized first so that their scale does not leak into the result.
func (q Quaternion) Difference(other Quaternion) Quaternion {
	return q.Versor().Conjugate().HamiltonProduct(other.Versor())
}

// Magnitude returns the total rotation angle in radians encoded by q, in [0, 2π].
// It equals 2·acos(w) for a unit quaternion but stays accurate when w is close to ±1.
func (q Quaternion) Magnitude() float64 {
	return 2 * math.Atan2(q.Vector().Norm(), q.Real)
}

// DotProduct returns the four dimensional dot product of q and other.
func (q Quaternion) DotProduct(other Quaternion) float64 {
	return q.Real*other.Real + q.Imag*other.Imag + q.Jmag*other.Jmag + q.Kmag*other.Kmag
}

// Distance returns the angular separation 2·acos(q·other) of two unit quaternions in radians.
// The dot product is clamped to [-1, 1] first.
func (q Quaternion) Distance(other Quaternion) float64 {
	return 2 * utils.SafeAcos(q.DotProduct(other))
}

// AngleTo returns the smallest rotation angle, in [0, π], between the orientations q and other.
// Unlike Distance it treats q and -q as the same orientation, and it stays precise for
// nearly equal orientations where acos does not.
func (q Quaternion) AngleTo(other Quaternion) float64 {
	d := q.Difference(other)
	return 2 * math.Atan2(d.Vector().Norm(), math.Abs(d.Real))
}

// TaitBryan extracts the Tait-Bryan angles of a unit quaternion.
func (q Quaternion) TaitBryan() TaitBryanAngles {
	return taitBryan(q.Real, q.Imag, q.Jmag, q.Kmag)
}

// RotationMatrix returns the rotation matrix of a unit quaternion.
func (q Quaternion) RotationMatrix() mgl64.Mat3 {
	return mgl64.Quat{W: q.Real, V: mgl64.Vec3{q.Imag, q.Jmag, q.Kmag}}.Mat4().Mat3()
}

// AlmostEqual reports whether every component of q is within tol of the one in other.
func (q Quaternion) AlmostEqual(other Quaternion, tol float64) bool {
	return math.Abs(q.Real-other.Real) <= tol &&
		math.Abs(q.Imag-other.Imag) <= tol &&
		math.Abs(q.Jmag-other.Jmag) <= tol &&
		math.Abs(q.Kmag-other.Kmag) <= tol
}

func (q Quaternion) String() string {
	return fmt.Sprintf("w: %v, x: %v, y: %v, z: %v", q.Real, q.Imag, q.Jmag, q.Kmag)
}

// taitBryan is shared by the quaternion object and quaternion array paths so both extract
// angles with the very same arithmetic. The 1 - 2(...) denominators are written as
// 0.5 - (...) with undoubled numerators, which leaves atan2 unchanged.
func taitBryan(w, x, y, z float64) TaitBryanAngles {
	return TaitBryanAngles{
		Phi:   math.Atan2(w*x+y*z, 0.5-(x*x+y*y)),
		Theta: utils.SafeAsin(2 * (x*z - w*y)),
		Psi:   math.Atan2(w*z+x*y, 0.5-(y*y+z*z)),
	}
}

// axisQuaternion returns the unit quaternion rotating by angle about the given unit axis.
func axisQuaternion(axis r3.Vector, angle float64) Quaternion {
	s := math.Sin(angle / 2)
	return Quaternion{Real: math.Cos(angle / 2), Imag: axis.X * s, Jmag: axis.Y * s, Kmag: axis.Z * s}
}
