package spatialmath

import (
	"math"

	"github.com/golang/geo/r3"
	"github.com/pkg/errors"
)

// AngularVelocity contains angular velocity in rad/s across x/y/z axes.
type AngularVelocity r3.Vector

// QuatToAngVel returns the constant angular velocity that turns an orientation through diff in
// dt seconds, taking the shorter way around.
func QuatToAngVel(diff Quaternion, dt float64) (AngularVelocity, error) {
	if dt <= 0 {
		return AngularVelocity{}, errors.Errorf("time difference must be positive, got %v", dt)
	}
	v := diff.Versor()
	axis := v.Vector()
	norm := axis.Norm()
	if norm < 1e-12 {
		return AngularVelocity{}, nil
	}
	angle := v.Magnitude()
	if angle > math.Pi {
		angle -= 2 * math.Pi
	}
	return AngularVelocity(axis.Mul(angle / (norm * dt))), nil
}

// RotationVectorsToAngVel returns the angular velocity that carries v1 onto v2 in dt seconds.
func RotationVectorsToAngVel(v1, v2 RotationVector, dt float64) (AngularVelocity, error) {
	q1, q2, err := quaternionPair(v1, v2)
	if err != nil {
		return AngularVelocity{}, err
	}
	return QuatToAngVel(q1.Difference(q2), dt)
}
