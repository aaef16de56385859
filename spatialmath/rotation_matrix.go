package spatialmath

import (
	"math"

	"go.uber.org/multierr"
	"gonum.org/v1/gonum/mat"

	"go.viam.com/rotation/utils"
)

// Accepted rotation matrix buffer lengths.
const (
	// Matrix3Len is a row-major 3x3 rotation matrix.
	Matrix3Len = 9
	// Matrix4Len is a row-major 4x4 homogeneous matrix with no translation.
	Matrix4Len = 16
)

// RotationMatrixFromVector writes the rotation matrix of the quaternion encoded by rv into dst.
// The length of dst selects the layout:
//
//	len 9:                    len 16:
//	/ R[0] R[1] R[2] \        / R[0]  R[1]  R[2]  0 \
//	| R[3] R[4] R[5] |        | R[4]  R[5]  R[6]  0 |
//	\ R[6] R[7] R[8] /        | R[8]  R[9]  R[10] 0 |
//	                          \ 0     0     0     1 /
//
// A four component rv should be a unit quaternion; it is used as is. dst is owned by the caller.
func RotationMatrixFromVector(dst []float64, rv RotationVector) error {
	if err := multierr.Combine(validateMatrix("rotation matrix", dst), rv.Validate()); err != nil {
		return err
	}

	q0 := rv.W()
	q1, q2, q3 := rv[0], rv[1], rv[2]

	sqQ1 := 2 * q1 * q1
	sqQ2 := 2 * q2 * q2
	sqQ3 := 2 * q3 * q3
	q1q2 := 2 * q1 * q2
	q3q0 := 2 * q3 * q0
	q1q3 := 2 * q1 * q3
	q2q0 := 2 * q2 * q0
	q2q3 := 2 * q2 * q3
	q1q0 := 2 * q1 * q0

	block := [9]float64{
		1 - sqQ2 - sqQ3, q1q2 - q3q0, q1q3 + q2q0,
		q1q2 + q3q0, 1 - sqQ1 - sqQ3, q2q3 - q1q0,
		q1q3 - q2q0, q2q3 + q1q0, 1 - sqQ1 - sqQ2,
	}

	if len(dst) == Matrix3Len {
		copy(dst, block[:])
		return nil
	}
	for i := range dst {
		dst[i] = 0
	}
	for row := 0; row < 3; row++ {
		copy(dst[row*4:row*4+3], block[row*3:row*3+3])
	}
	dst[15] = 1
	return nil
}

// AngleChange returns the angles of the rotation that carries previous onto current, taken from
// Rd = previousᵀ·current. Only the five entries of Rd that the angles need are computed. Each
// input may be 9 or 16 long independently of the other.
func AngleChange(current, previous []float64) (MatrixAngles, error) {
	r, p, err := rotationBlocks(current, previous)
	if err != nil {
		return MatrixAngles{}, err
	}

	rd1 := p[0]*r[1] + p[3]*r[4] + p[6]*r[7] // Rd[0][1]
	rd4 := p[1]*r[1] + p[4]*r[4] + p[7]*r[7] // Rd[1][1]
	rd6 := p[2]*r[0] + p[5]*r[3] + p[8]*r[6] // Rd[2][0]
	rd7 := p[2]*r[1] + p[5]*r[4] + p[8]*r[7] // Rd[2][1]
	rd8 := p[2]*r[2] + p[5]*r[5] + p[8]*r[8] // Rd[2][2]

	return MatrixAngles{
		Z: math.Atan2(rd1, rd4),
		X: utils.SafeAsin(-rd7),
		Y: math.Atan2(-rd6, rd8),
	}, nil
}

// MatrixDistance returns the rotation angle, in [0, π], of Rd = previousᵀ·current, read off its
// trace as acos((tr - 1) / 2).
func MatrixDistance(current, previous []float64) (float64, error) {
	r, p, err := rotationBlocks(current, previous)
	if err != nil {
		return 0, err
	}
	rd0 := p[0]*r[0] + p[3]*r[3] + p[6]*r[6]
	rd4 := p[1]*r[1] + p[4]*r[4] + p[7]*r[7]
	rd8 := p[2]*r[2] + p[5]*r[5] + p[8]*r[8]
	return utils.SafeAcos((rd0 + rd4 + rd8 - 1) / 2), nil
}

// RelativeRotation returns the full 3x3 matrix previousᵀ·current.
func RelativeRotation(current, previous []float64) (*mat.Dense, error) {
	r, p, err := rotationBlocks(current, previous)
	if err != nil {
		return nil, err
	}
	var rd mat.Dense
	rd.Mul(mat.NewDense(3, 3, p[:]).T(), mat.NewDense(3, 3, r[:]))
	return &rd, nil
}

func rotationBlocks(current, previous []float64) ([9]float64, [9]float64, error) {
	err := multierr.Combine(
		validateMatrix("current rotation matrix", current),
		validateMatrix("previous rotation matrix", previous),
	)
	if err != nil {
		return [9]float64{}, [9]float64{}, err
	}
	return rotationBlock(current), rotationBlock(previous), nil
}

func validateMatrix(what string, m []float64) error {
	if len(m) != Matrix3Len && len(m) != Matrix4Len {
		return utils.NewInvalidLengthError(what, len(m), Matrix3Len, Matrix4Len)
	}
	return nil
}

// rotationBlock extracts the row-major 3x3 rotation block of a validated matrix buffer.
func rotationBlock(m []float64) [9]float64 {
	if len(m) == Matrix3Len {
		return [9]float64(m)
	}
	return [9]float64{
		m[0], m[1], m[2],
		m[4], m[5], m[6],
		m[8], m[9], m[10],
	}
}
