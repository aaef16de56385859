package spatialmath

// OrientationDelta is one strategy for differencing two orientations given as rotation vectors.
// Every implementation must produce the same angles for the same inputs; they differ in the
// intermediate representation they go through and therefore in cost.
type OrientationDelta interface {
	// Name identifies the strategy in reports.
	Name() string
	// TaitBryanChange returns the angles of the rotation carrying v1 onto v2.
	TaitBryanChange(v1, v2 RotationVector) (TaitBryanAngles, error)
	// Distance returns the angle between v1 and v2. Quaternion based strategies return
	// 2·acos(q1·q2) in [0, 2π]; the matrix strategy cannot tell q from -q and returns the
	// shortest arc in [0, π]. Inputs are not normalized first, so for vectors that are not unit
	// quaternions the strategies disagree and overstate the rotation.
	Distance(v1, v2 RotationVector) (float64, error)
}

// Strategies returns every OrientationDelta, with the matrix strategy using the given buffer layout.
func Strategies(layout int) []OrientationDelta {
	return []OrientationDelta{
		QuaternionObjectDelta{},
		QuaternionArrayDelta{},
		RotationMatrixDelta{Layout: layout},
	}
}

// QuaternionObjectDelta differences orientations through Quaternion values.
type QuaternionObjectDelta struct{}

// Name returns "quaternion".
func (QuaternionObjectDelta) Name() string {
	return "quaternion"
}

// TaitBryanChange returns q1.Difference(q2).TaitBryan().
func (QuaternionObjectDelta) TaitBryanChange(v1, v2 RotationVector) (TaitBryanAngles, error) {
	q1, q2, err := quaternionPair(v1, v2)
	if err != nil {
		return TaitBryanAngles{}, err
	}
	return q1.Difference(q2).TaitBryan(), nil
}

// Distance returns q1.Distance(q2).
func (QuaternionObjectDelta) Distance(v1, v2 RotationVector) (float64, error) {
	q1, q2, err := quaternionPair(v1, v2)
	if err != nil {
		return 0, err
	}
	return q1.Distance(q2), nil
}

// QuaternionArrayDelta differences orientations on flat [w, x, y, z] arrays.
type QuaternionArrayDelta struct{}

// Name returns "quaternion-array".
func (QuaternionArrayDelta) Name() string {
	return "quaternion-array"
}

// TaitBryanChange calls TaitBryanAngleChange.
func (QuaternionArrayDelta) TaitBryanChange(v1, v2 RotationVector) (TaitBryanAngles, error) {
	return TaitBryanAngleChange(v1, v2)
}

// Distance calls DistanceChange.
func (QuaternionArrayDelta) Distance(v1, v2 RotationVector) (float64, error) {
	return DistanceChange(v1, v2)
}

// RotationMatrixDelta differences orientations through rotation matrices of the given Layout,
// Matrix3Len or Matrix4Len. The zero value uses Matrix3Len.
type RotationMatrixDelta struct {
	Layout int
}

// Name returns "matrix-3x3" or "matrix-4x4".
func (d RotationMatrixDelta) Name() string {
	if d.layout() == Matrix4Len {
		return "matrix-4x4"
	}
	return "matrix-3x3"
}

// TaitBryanChange runs AngleChange and converts its raw triple with MatrixAngles.TaitBryan.
func (d RotationMatrixDelta) TaitBryanChange(v1, v2 RotationVector) (TaitBryanAngles, error) {
	var r1, r2 [Matrix4Len]float64
	previous, current := r1[:d.layout()], r2[:d.layout()]
	if err := matrixPair(previous, current, v1, v2); err != nil {
		return TaitBryanAngles{}, err
	}
	angles, err := AngleChange(current, previous)
	if err != nil {
		return TaitBryanAngles{}, err
	}
	return angles.TaitBryan(), nil
}

// Distance calls MatrixDistance.
func (d RotationMatrixDelta) Distance(v1, v2 RotationVector) (float64, error) {
	var r1, r2 [Matrix4Len]float64
	previous, current := r1[:d.layout()], r2[:d.layout()]
	if err := matrixPair(previous, current, v1, v2); err != nil {
		return 0, err
	}
	return MatrixDistance(current, previous)
}

func (d RotationMatrixDelta) layout() int {
	if d.Layout == Matrix4Len {
		return Matrix4Len
	}
	return Matrix3Len
}

func quaternionPair(v1, v2 RotationVector) (Quaternion, Quaternion, error) {
	q1, err := NewQuaternionFromRotationVector(v1)
	if err != nil {
		return Quaternion{}, Quaternion{}, err
	}
	q2, err := NewQuaternionFromRotationVector(v2)
	if err != nil {
		return Quaternion{}, Quaternion{}, err
	}
	return q1, q2, nil
}

func matrixPair(previous, current []float64, v1, v2 RotationVector) error {
	if err := RotationMatrixFromVector(previous, v1); err != nil {
		return err
	}
	return RotationMatrixFromVector(current, v2)
}
