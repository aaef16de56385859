package spatialmath

import (
	"fmt"

	"go.viam.com/rotation/utils"
)

// RotationVector is the compact encoding of an orientation reported by rotation vector sensors.
// With three components it holds (x, y, z), the vector part of a unit quaternion, and the scalar
// part is implied. With four components it holds (x, y, z, w) with w given explicitly.
type RotationVector []float64

// Validate returns an error if rv is not 3 or 4 components long.
func (rv RotationVector) Validate() error {
	if len(rv) != 3 && len(rv) != 4 {
		return utils.NewInvalidLengthError("rotation vector", len(rv), 3, 4)
	}
	return nil
}

// HasExplicitW reports whether rv carries its own scalar component.
func (rv RotationVector) HasExplicitW() bool {
	return len(rv) == 4
}

// W returns the scalar part of the quaternion encoded by rv. For three components it is
// sqrt(1 - x² - y² - z²), clamped to 0 when the vector part is longer than 1, so such inputs
// silently decode to a non-unit quaternion. rv must be valid.
func (rv RotationVector) W() float64 {
	if rv.HasExplicitW() {
		return rv[3]
	}
	return utils.SqrtNonNeg(1 - rv[0]*rv[0] - rv[1]*rv[1] - rv[2]*rv[2])
}

// Clone returns a copy of rv that shares no memory with it.
func (rv RotationVector) Clone() RotationVector {
	if rv == nil {
		return nil
	}
	out := make(RotationVector, len(rv))
	copy(out, rv)
	return out
}

func (rv RotationVector) String() string {
	if rv.HasExplicitW() {
		return fmt.Sprintf("x: %v, y: %v, z: %v, w: %v", rv[0], rv[1], rv[2], rv[3])
	}
	if len(rv) == 3 {
		return fmt.Sprintf("x: %v, y: %v, z: %v", rv[0], rv[1], rv[2])
	}
	return fmt.Sprintf("%v", []float64(rv))
}
