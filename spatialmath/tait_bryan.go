package spatialmath

import (
	"math"

	"github.com/golang/geo/r3"

	"go.viam.com/rotation/utils"
)

var (
	xAxis = r3.Vector{X: 1}
	yAxis = r3.Vector{Y: 1}
	zAxis = r3.Vector{Z: 1}
)

// TaitBryanAngles is the canonical angle triple, in radians, produced by Quaternion.TaitBryan and
// by every OrientationDelta. Phi is the rotation about x, Psi the rotation about z, and Theta the
// rotation about y with its sign flipped: the triple describes qz(Psi)·qy(-Theta)·qx(Phi).
type TaitBryanAngles struct {
	Phi   float64 `json:"phi"`
	Theta float64 `json:"theta"`
	Psi   float64 `json:"psi"`
}

// Quaternion returns the unit quaternion whose TaitBryan angles are tb.
func (tb TaitBryanAngles) Quaternion() Quaternion {
	qx := axisQuaternion(xAxis, tb.Phi)
	qy := axisQuaternion(yAxis, -tb.Theta)
	qz := axisQuaternion(zAxis, tb.Psi)
	return qz.HamiltonProduct(qy).HamiltonProduct(qx)
}

// Degrees returns tb with every angle converted to degrees.
func (tb TaitBryanAngles) Degrees() TaitBryanAngles {
	return TaitBryanAngles{
		Phi:   utils.RadToDeg(tb.Phi),
		Theta: utils.RadToDeg(tb.Theta),
		Psi:   utils.RadToDeg(tb.Psi),
	}
}

// AlmostEqual compares each angle modulo 2π.
func (tb TaitBryanAngles) AlmostEqual(other TaitBryanAngles, tol float64) bool {
	return math.Abs(utils.AngleDiff(tb.Phi, other.Phi)) <= tol &&
		math.Abs(utils.AngleDiff(tb.Theta, other.Theta)) <= tol &&
		math.Abs(utils.AngleDiff(tb.Psi, other.Psi)) <= tol
}

// MaxAbsDiff returns the largest per-angle difference between tb and other, modulo 2π.
func (tb TaitBryanAngles) MaxAbsDiff(other TaitBryanAngles) float64 {
	return math.Max(
		math.Abs(utils.AngleDiff(tb.Phi, other.Phi)),
		math.Max(
			math.Abs(utils.AngleDiff(tb.Theta, other.Theta)),
			math.Abs(utils.AngleDiff(tb.Psi, other.Psi)),
		),
	)
}

// MatrixAngles is the raw angle triple from AngleChange, kept in the slot order (z, x, y) that
// the rotation matrix path produces. It describes the relative rotation Rz(-Z)·Rx(-X)·Ry(Y),
// which decomposes in a different axis order than TaitBryanAngles. For rotations about a single
// axis, and to first order for small ones, the two relate by Phi = -X, Theta = -Y, Psi = -Z;
// TaitBryan converts exactly.
type MatrixAngles struct {
	Z float64 `json:"z"`
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Quaternion returns the unit quaternion of the rotation described by m.
func (m MatrixAngles) Quaternion() Quaternion {
	qz := axisQuaternion(zAxis, -m.Z)
	qx := axisQuaternion(xAxis, -m.X)
	qy := axisQuaternion(yAxis, m.Y)
	return qz.HamiltonProduct(qx).HamiltonProduct(qy)
}

// TaitBryan converts m to the canonical triple of the same rotation.
func (m MatrixAngles) TaitBryan() TaitBryanAngles {
	return m.Quaternion().TaitBryan()
}

// SmallAngleTaitBryan maps m onto the canonical slots by the single-axis correspondence
// Phi = -X, Theta = -Y, Psi = -Z. It is exact for single-axis rotations only.
func (m MatrixAngles) SmallAngleTaitBryan() TaitBryanAngles {
	return TaitBryanAngles{Phi: -m.X, Theta: -m.Y, Psi: -m.Z}
}
