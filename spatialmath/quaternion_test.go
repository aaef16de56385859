package spatialmath

import (
	"math"
	"testing"

	"github.com/golang/geo/r3"
	"github.com/pkg/errors"
	"go.viam.com/test"
	"gonum.org/v1/gonum/num/quat"

	"go.viam.com/rotation/utils"
)

// represent a 45 degree rotation around the x axis
var (
	th   = math.Pi / 4.
	q45x = NewQuaternion(math.Cos(th/2.), math.Sin(th/2.), 0, 0)
)

// consecutive readings of a phone's rotation vector sensor
var sampleVectors = []RotationVector{
	{0.002387335989624262, -0.01195748895406723, -0.974600076675415},
	{0.004492554347962141, -0.0069081345573067665, -0.96992027759552},
	{0.005202930420637131, -0.007559414487332106, -0.971769392490387},
	{0.0035515432246029377, -0.009004449471831322, -0.9675705432891846},
	{0.006685215979814529, -0.00516918022185564, -0.7083200216293335},
	{0.009026379324495792, -0.003503114450722933, -0.9652470946311951},
	{-0.7575846314430237, -0.08783897012472153, -0.6413691639900208},
	{-0.7126379609107971, -0.043455325067043304, -0.6987627744674683},
	{-0.0011933929054066539, -0.006216671317815781, -0.9827842712402344},
	{-0.22100062668323517, 0.6778379678726196, -0.6694568991661072},
	{-0.24234327673912048, 0.6782501935958862, -0.6641238331794739},
	{0.008405731059610844, -0.006305025424808264, -0.9569173455238342},
	{0.013783924281597137, -0.01334476750344038, -0.0108346464112401},
	{0.01209157146513462, -0.0072930967435240746, -0.0016706701135262847},
}

func quaternionsAlmostEqual(t *testing.T, got, want Quaternion, tol float64) {
	t.Helper()
	test.That(t, got.Real, test.ShouldAlmostEqual, want.Real, tol)
	test.That(t, got.Imag, test.ShouldAlmostEqual, want.Imag, tol)
	test.That(t, got.Jmag, test.ShouldAlmostEqual, want.Jmag, tol)
	test.That(t, got.Kmag, test.ShouldAlmostEqual, want.Kmag, tol)
}

func TestNewQuaternionFromRotationVector(t *testing.T) {
	t.Run("implicit w", func(t *testing.T) {
		q, err := NewQuaternionFromRotationVector(RotationVector{0.5, 0.5, 0.5})
		test.That(t, err, test.ShouldBeNil)
		quaternionsAlmostEqual(t, q, NewQuaternion(0.5, 0.5, 0.5, 0.5), 1e-12)
		test.That(t, q.IsUnit(), test.ShouldBeTrue)
	})
	t.Run("explicit w", func(t *testing.T) {
		q, err := NewQuaternionFromRotationVector(RotationVector{0.1, 0.2, 0.3, 0.9})
		test.That(t, err, test.ShouldBeNil)
		test.That(t, q, test.ShouldResemble, NewQuaternion(0.9, 0.1, 0.2, 0.3))
	})
	t.Run("vector part too long", func(t *testing.T) {
		q, err := NewQuaternionFromRotationVector(RotationVector{1, 1, 0})
		test.That(t, err, test.ShouldBeNil)
		test.That(t, q.W(), test.ShouldEqual, 0.)
		test.That(t, q.IsUnit(), test.ShouldBeFalse)
	})
	t.Run("sample reading", func(t *testing.T) {
		q, err := NewQuaternionFromRotationVector(sampleVectors[0])
		test.That(t, err, test.ShouldBeNil)
		test.That(t, q.W(), test.ShouldAlmostEqual, 0.22362, 1e-4)
		test.That(t, q.IsUnit(), test.ShouldBeTrue)
	})
	for _, rv := range []RotationVector{nil, {}, {1, 2}, {1, 2, 3, 4, 5}} {
		_, err := NewQuaternionFromRotationVector(rv)
		test.That(t, err, test.ShouldNotBeNil)
		test.That(t, errors.Is(err, utils.ErrInvalidLength), test.ShouldBeTrue)
	}
}

func TestQuaternionSetters(t *testing.T) {
	q := NewQuaternion(1, 2, 3, 4)
	test.That(t, q.Scalar(), test.ShouldEqual, 1.)
	test.That(t, q.Vector(), test.ShouldResemble, r3.Vector{X: 2, Y: 3, Z: 4})
	test.That(t, q.Number(), test.ShouldResemble, quat.Number{Real: 1, Imag: 2, Jmag: 3, Kmag: 4})

	q.SetScalar(9)
	test.That(t, q, test.ShouldResemble, NewQuaternion(9, 2, 3, 4))
	q.SetVector(r3.Vector{X: -1, Y: -2, Z: -3})
	test.That(t, q, test.ShouldResemble, NewQuaternion(9, -1, -2, -3))

	test.That(t, q.SetValues(RotationVector{0, 0, 0, 1}), test.ShouldBeNil)
	test.That(t, q, test.ShouldResemble, NewQuaternion(1, 0, 0, 0))

	// a failed set leaves q alone
	test.That(t, q.SetValues(RotationVector{1}), test.ShouldNotBeNil)
	test.That(t, q, test.ShouldResemble, NewQuaternion(1, 0, 0, 0))

	test.That(t, NewQuaternion(1, 2, 3, 4).String(), test.ShouldEqual, "w: 1, x: 2, y: 3, z: 4")
}

func TestQuaternionNorm(t *testing.T) {
	test.That(t, NewQuaternion(1, 2, 2, 4).Norm(), test.ShouldEqual, 5.)
	test.That(t, NewQuaternion(1, 2, 2, 4).LengthSquared(), test.ShouldEqual, 25.)
	test.That(t, Quaternion{}.Norm(), test.ShouldEqual, 0.)
	test.That(t, Quaternion{}.IsZero(), test.ShouldBeTrue)
	test.That(t, NewQuaternion(0, 0, 0, 1e-300).IsZero(), test.ShouldBeFalse)

	test.That(t, q45x.IsUnit(), test.ShouldBeTrue)
	test.That(t, NewQuaternion(1.00005, 0, 0, 0).IsUnit(), test.ShouldBeTrue)
	test.That(t, NewQuaternion(1.0002, 0, 0, 0).IsUnit(), test.ShouldBeFalse)
	test.That(t, NewQuaternion(1.0002, 0, 0, 0).IsUnitWithin(1e-3), test.ShouldBeTrue)

	for _, q := range []Quaternion{q45x, NewQuaternion(1, 2, 3, 4), NewQuaternion(-0.3, 0, 7, -2), {}} {
		test.That(t, q.Conjugate().Norm(), test.ShouldEqual, q.Norm())
	}
}

func TestQuaternionArithmetic(t *testing.T) {
	a := NewQuaternion(1, 2, 3, 4)
	b := NewQuaternion(5, 6, 7, 8)

	test.That(t, a.Add(b), test.ShouldResemble, NewQuaternion(6, 8, 10, 12))
	test.That(t, a.Subtract(b), test.ShouldResemble, NewQuaternion(-4, -4, -4, -4))
	test.That(t, b.Subtract(a), test.ShouldResemble, NewQuaternion(4, 4, 4, 4))
	test.That(t, a.Multiply(2), test.ShouldResemble, NewQuaternion(2, 4, 6, 8))
	test.That(t, a.Divide(2), test.ShouldResemble, NewQuaternion(0.5, 1, 1.5, 2))
	test.That(t, a.Conjugate(), test.ShouldResemble, NewQuaternion(1, -2, -3, -4))

	divided := a.Divide(0)
	test.That(t, math.IsInf(divided.Real, 1), test.ShouldBeTrue)
}

func TestHamiltonProduct(t *testing.T) {
	i := NewQuaternion(0, 1, 0, 0)
	j := NewQuaternion(0, 0, 1, 0)
	k := NewQuaternion(0, 0, 0, 1)

	test.That(t, i.HamiltonProduct(j), test.ShouldResemble, k)
	test.That(t, j.HamiltonProduct(i), test.ShouldResemble, k.Multiply(-1))
	test.That(t, j.HamiltonProduct(k), test.ShouldResemble, i)
	test.That(t, k.HamiltonProduct(i), test.ShouldResemble, j)
	test.That(t, i.HamiltonProduct(i), test.ShouldResemble, NewQuaternion(-1, 0, 0, 0))

	a := NewQuaternion(1, 2, 3, 4)
	b := NewQuaternion(5, 6, 7, 8)
	test.That(t, a.HamiltonProduct(b), test.ShouldResemble, NewQuaternion(-60, 12, 30, 24))
	test.That(t, b.HamiltonProduct(a), test.ShouldResemble, NewQuaternion(-60, 20, 14, 32))
}

func TestQuaternionInverse(t *testing.T) {
	test.That(t, q45x.Inverse(), test.ShouldResemble, q45x.Conjugate())
	test.That(t, NewQuaternion(2, 0, 0, 0).Inverse(), test.ShouldResemble, NewQuaternion(0.5, 0, 0, 0))

	a := NewQuaternion(1, 2, 3, 4)
	quaternionsAlmostEqual(t, a.HamiltonProduct(a.Inverse()), NewQuaternion(1, 0, 0, 0), 1e-12)
	quaternionsAlmostEqual(t, a.Inverse().HamiltonProduct(a), NewQuaternion(1, 0, 0, 0), 1e-12)

	test.That(t, Quaternion{}.Inverse(), test.ShouldResemble, Quaternion{})
}

func TestVersor(t *testing.T) {
	test.That(t, q45x.Versor(), test.ShouldResemble, q45x)
	for _, rv := range sampleVectors {
		q, err := NewQuaternionFromRotationVector(rv)
		test.That(t, err, test.ShouldBeNil)
		test.That(t, q.IsUnit(), test.ShouldBeTrue)
		test.That(t, q.Versor(), test.ShouldResemble, q)
	}

	v := NewQuaternion(0, 3, 0, 4).Versor()
	quaternionsAlmostEqual(t, v, NewQuaternion(0, 0.6, 0, 0.8), 1e-12)
	test.That(t, v.IsUnit(), test.ShouldBeTrue)

	test.That(t, Quaternion{}.Versor(), test.ShouldResemble, Quaternion{})
}

func TestDifference(t *testing.T) {
	qz := axisQuaternion(zAxis, math.Pi/3)

	quaternionsAlmostEqual(t, q45x.Difference(q45x), NewQuaternion(1, 0, 0, 0), 1e-12)
	// q1·(q1 → q2) = q2
	quaternionsAlmostEqual(t, q45x.HamiltonProduct(q45x.Difference(qz)), qz, 1e-12)
	// scale does not leak into the difference
	quaternionsAlmostEqual(t, q45x.Multiply(3).Difference(qz.Multiply(0.25)), q45x.Difference(qz), 1e-12)
}

func TestMagnitudeAndDistance(t *testing.T) {
	test.That(t, q45x.Magnitude(), test.ShouldAlmostEqual, math.Pi/4)
	test.That(t, NewQuaternion(1, 0, 0, 0).Magnitude(), test.ShouldEqual, 0.)
	test.That(t, NewQuaternion(0, 1, 0, 0).Magnitude(), test.ShouldAlmostEqual, math.Pi)

	pairs := [][2]Quaternion{
		{q45x, axisQuaternion(zAxis, math.Pi/3)},
		{axisQuaternion(yAxis, 0.1), axisQuaternion(r3.Vector{X: 1, Y: 1, Z: 1}.Normalize(), 2.5)},
		{NewQuaternion(1, 0, 0, 0), NewQuaternion(-1, 0, 0, 0)},
	}
	for i := 1; i < len(sampleVectors); i++ {
		q1, err := NewQuaternionFromRotationVector(sampleVectors[i-1])
		test.That(t, err, test.ShouldBeNil)
		q2, err := NewQuaternionFromRotationVector(sampleVectors[i])
		test.That(t, err, test.ShouldBeNil)
		pairs = append(pairs, [2]Quaternion{q1, q2})
	}
	for _, p := range pairs {
		test.That(t, p[0].Distance(p[1]), test.ShouldAlmostEqual, p[0].Difference(p[1]).Magnitude(), 1e-6)
	}

	test.That(t, q45x.Distance(q45x), test.ShouldEqual, 0.)
	test.That(t, q45x.DotProduct(q45x.Multiply(-1)), test.ShouldAlmostEqual, -1)
	test.That(t, q45x.AngleTo(q45x.Multiply(-1)), test.ShouldAlmostEqual, 0, 1e-6)
	test.That(t, q45x.AngleTo(NewQuaternion(1, 0, 0, 0)), test.ShouldAlmostEqual, math.Pi/4)
}

func TestDistanceClampsDrift(t *testing.T) {
	q := NewQuaternion(1.00000005, 0, 0, 0)
	dot := q.DotProduct(q)
	test.That(t, dot, test.ShouldBeGreaterThan, 1.)
	test.That(t, math.IsNaN(2*math.Acos(dot)), test.ShouldBeTrue)
	test.That(t, q.Distance(q), test.ShouldEqual, 0.)

	q = NewQuaternion(-1.00000005, 0, 0, 0)
	test.That(t, q.Distance(NewQuaternion(1.00000005, 0, 0, 0)), test.ShouldAlmostEqual, 2*math.Pi)
}

func TestHalfTurnDifference(t *testing.T) {
	q1, err := NewQuaternionFromRotationVector(RotationVector{1, 0, 0, 0})
	test.That(t, err, test.ShouldBeNil)
	q2, err := NewQuaternionFromRotationVector(RotationVector{0, 0, 0, -1})
	test.That(t, err, test.ShouldBeNil)

	test.That(t, q1.Difference(q2).Magnitude(), test.ShouldAlmostEqual, math.Pi)
	test.That(t, q2.Difference(q1).Magnitude(), test.ShouldAlmostEqual, math.Pi)
	test.That(t, q1.Distance(q2), test.ShouldAlmostEqual, math.Pi)
}

func TestTaitBryan(t *testing.T) {
	tb := q45x.TaitBryan()
	test.That(t, tb.Phi, test.ShouldAlmostEqual, math.Pi/4)
	test.That(t, tb.Theta, test.ShouldAlmostEqual, 0)
	test.That(t, tb.Psi, test.ShouldAlmostEqual, 0)

	tb = axisQuaternion(yAxis, 0.3).TaitBryan()
	test.That(t, tb.Phi, test.ShouldAlmostEqual, 0)
	test.That(t, tb.Theta, test.ShouldAlmostEqual, -0.3)
	test.That(t, tb.Psi, test.ShouldAlmostEqual, 0)

	tb = axisQuaternion(zAxis, 0.7).TaitBryan()
	test.That(t, tb.Phi, test.ShouldAlmostEqual, 0)
	test.That(t, tb.Theta, test.ShouldAlmostEqual, 0)
	test.That(t, tb.Psi, test.ShouldAlmostEqual, 0.7)

	t.Run("gimbal lock stays finite", func(t *testing.T) {
		for _, angle := range []float64{math.Pi / 2, -math.Pi / 2} {
			tb := axisQuaternion(yAxis, angle).TaitBryan()
			test.That(t, math.IsNaN(tb.Theta), test.ShouldBeFalse)
			test.That(t, tb.Theta, test.ShouldAlmostEqual, -angle, 1e-6)
		}
	})
}

func TestQuaternionRotationMatrix(t *testing.T) {
	m := q45x.RotationMatrix()
	c, s := math.Cos(th), math.Sin(th)
	want := [3][3]float64{
		{1, 0, 0},
		{0, c, -s},
		{0, s, c},
	}
	for row := 0; row < 3; row++ {
		for col := 0; col < 3; col++ {
			test.That(t, m.At(row, col), test.ShouldAlmostEqual, want[row][col])
		}
	}
}

func TestQuaternionAlmostEqual(t *testing.T) {
	test.That(t, q45x.AlmostEqual(q45x.Add(NewQuaternion(1e-7, 0, 0, 0)), 1e-6), test.ShouldBeTrue)
	test.That(t, q45x.AlmostEqual(q45x.Add(NewQuaternion(0, 0, 1e-5, 0)), 1e-6), test.ShouldBeFalse)
}

func TestNewQuaternionFromAxisAngle(t *testing.T) {
	quaternionsAlmostEqual(t, NewQuaternionFromAxisAngle(r3.Vector{X: 2}, th), q45x, 1e-12)
	q := NewQuaternionFromAxisAngle(r3.Vector{X: 1, Y: 1, Z: 1}, 1.2)
	test.That(t, q.IsUnit(), test.ShouldBeTrue)
	test.That(t, q.Magnitude(), test.ShouldAlmostEqual, 1.2)
	test.That(t, NewQuaternionFromAxisAngle(r3.Vector{}, 1), test.ShouldResemble, NewQuaternion(1, 0, 0, 0))

	rv := q.RotationVector()
	test.That(t, rv.HasExplicitW(), test.ShouldBeTrue)
	back, err := NewQuaternionFromRotationVector(rv)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, back, test.ShouldResemble, q)
}
