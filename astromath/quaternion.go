package astromath

import (
	"math"

	"github.com/astrokit/anise/anierr"
)

// Quaternion is a unit quaternion rotating vectors from frame FromID to
// frame ToID. Composition is only legal when the inner frame ids line up.
type Quaternion struct {
	W, X, Y, Z float64
	FromID, ToID int32
}

// NewQuaternion constructs a Quaternion from raw components, normalizing
// immediately (enforce normalize() on construction).
func NewQuaternion(w, x, y, z float64, fromID, toID int32) Quaternion {
	q := Quaternion{W: w, X: x, Y: y, Z: z, FromID: fromID, ToID: toID}
	return q.normalized()
}

func (q Quaternion) normSquared() float64 {
	return q.W*q.W + q.X*q.X + q.Y*q.Y + q.Z*q.Z
}

func (q Quaternion) normalized() Quaternion {
	n := math.Sqrt(q.normSquared())
	if n == 0 {
		return Quaternion{W: 1, FromID: q.FromID, ToID: q.ToID}
	}
	return Quaternion{W: q.W / n, X: q.X / n, Y: q.Y / n, Z: q.Z / n, FromID: q.FromID, ToID: q.ToID}
}

// IsUnit reports whether |q|^2 - 1 is within 1e-12 of zero.
func (q Quaternion) IsUnit() bool {
	return math.Abs(q.normSquared()-1) < 1e-12
}

// Mul composes lhs then rhs (applies lhs first): the result rotates from
// lhs.FromID to rhs.ToID. Requires lhs.ToID == rhs.FromID — lhs's output
// frame must be rhs's input frame, the same chaining rule path resolution
// uses to walk frame graphs outward from a leaf; returns FrameMismatchError
// otherwise.
func (lhs Quaternion) Mul(rhs Quaternion) (Quaternion, error) {
	if lhs.ToID != rhs.FromID {
		return Quaternion{}, &anierr.FrameMismatchError{LhsToID: lhs.ToID, RhsFromID: rhs.FromID}
	}
	// Hamilton product with rhs as the outer term, since lhs's rotation is
	// applied first: rotate(v) = rhs.Rotate(lhs.Rotate(v)).
	w := rhs.W*lhs.W - rhs.X*lhs.X - rhs.Y*lhs.Y - rhs.Z*lhs.Z
	x := rhs.W*lhs.X + rhs.X*lhs.W + rhs.Y*lhs.Z - rhs.Z*lhs.Y
	y := rhs.W*lhs.Y - rhs.X*lhs.Z + rhs.Y*lhs.W + rhs.Z*lhs.X
	z := rhs.W*lhs.Z + rhs.X*lhs.Y - rhs.Y*lhs.X + rhs.Z*lhs.W
	return NewQuaternion(w, x, y, z, lhs.FromID, rhs.ToID), nil
}

// Conjugate returns the inverse rotation, with FromID/ToID swapped.
func (q Quaternion) Conjugate() Quaternion {
	return Quaternion{W: q.W, X: -q.X, Y: -q.Y, Z: -q.Z, FromID: q.ToID, ToID: q.FromID}
}

// Rotate applies q to vector v (assumed expressed in frame FromID),
// returning the vector expressed in frame ToID.
func (q Quaternion) Rotate(v Vector3) Vector3 {
	// v' = q * (0,v) * q_conjugate, expanded without allocating a second
	// quaternion multiply.
	uv := Vector3{q.X, q.Y, q.Z}.Cross(v)
	uuv := Vector3{q.X, q.Y, q.Z}.Cross(uv)
	uv = uv.Scale(2 * q.W)
	uuv = uuv.Scale(2)
	return v.Add(uv).Add(uuv)
}

// DCM converts q to a direction cosine matrix.
func (q Quaternion) DCM() DCM {
	w, x, y, z := q.W, q.X, q.Y, q.Z
	return DCM{
		RotMat: Matrix3{
			{1 - 2*(y*y+z*z), 2 * (x*y - w*z), 2 * (x*z + w*y)},
			{2 * (x*y + w*z), 1 - 2*(x*x+z*z), 2 * (y*z - w*x)},
			{2 * (x*z - w*y), 2 * (y*z + w*x), 1 - 2*(x*x+y*y)},
		},
		FromID: q.FromID,
		ToID: q.ToID,
	}
}
