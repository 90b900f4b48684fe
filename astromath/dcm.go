package astromath

import (
	"math"

	"github.com/astrokit/anise/anierr"
)

// DCM is a direction cosine matrix rotating vectors from frame FromID to
// frame ToID, with an optional time derivative.
// HasRate reports whether RotMatDt is meaningful; BPC segments that don't
// carry velocity-equivalent derivatives leave it false.
type DCM struct {
	RotMat Matrix3
	RotMatDt Matrix3
	HasRate bool
	FromID int32
	ToID int32
}

// IdentityDCM is the identity rotation from id to id with a zero
// derivative: rotate(F, F, t) is the identity DCM with zero derivative.
func IdentityDCM(id int32) DCM {
	return DCM{RotMat: Identity3, RotMatDt: Matrix3{}, HasRate: true, FromID: id, ToID: id}
}

// IsOrthonormal reports whether ||R^T R - I||_F and |det R - 1| are within
// a 1e-12 tolerance.
func (d DCM) IsOrthonormal() bool {
	rtR := d.RotMat.Transpose().Mul(d.RotMat)
	diff := rtR.Add(Matrix3{{-1, 0, 0}, {0, -1, 0}, {0, 0, -1}})
	return diff.FrobeniusNorm() < 1e-12 && math.Abs(d.RotMat.Det()-1) < 1e-12
}

// Transpose returns the inverse rotation (ToID -> FromID), transposing both
// the rotation and, if present, its derivative.
func (d DCM) Transpose() DCM {
	return DCM{
		RotMat: d.RotMat.Transpose(),
		RotMatDt: d.RotMatDt.Transpose(),
		HasRate: d.HasRate,
		FromID: d.ToID,
		ToID: d.FromID,
	}
}

// Mul composes lhs then rhs (applies lhs first): requires lhs.ToID ==
// rhs.FromID — lhs's output frame must feed rhs's input frame, else
// returns FrameMismatchError.
func (lhs DCM) Mul(rhs DCM) (DCM, error) {
	if lhs.ToID != rhs.FromID {
		return DCM{}, &anierr.FrameMismatchError{LhsToID: lhs.ToID, RhsFromID: rhs.FromID}
	}
	out := DCM{
		RotMat: rhs.RotMat.Mul(lhs.RotMat),
		FromID: lhs.FromID,
		ToID: rhs.ToID,
	}
	if lhs.HasRate && rhs.HasRate {
		// Product rule: d/dt(rhs*lhs) = d(rhs)*lhs + rhs*d(lhs).
		out.RotMatDt = rhs.RotMatDt.Mul(lhs.RotMat).Add(rhs.RotMat.Mul(lhs.RotMatDt))
		out.HasRate = true
	}
	return out, nil
}

// RotateState applies the DCM to a position+velocity state: the position is
// rotated by RotMat; the velocity is rotated by RotMat and picks up the
// frame's own rotation rate via RotMatDt (applies the DCM
// to position and (DCM·v + Ṙ·r) to velocity").
func (d DCM) RotateState(s Vector6) Vector6 {
	pos := d.RotMat.MulVec(s.Pos)
	vel := d.RotMat.MulVec(s.Vel)
	if d.HasRate {
		vel = vel.Add(d.RotMatDt.MulVec(s.Pos))
	}
	return Vector6{Pos: pos, Vel: vel}
}

// ToQuaternion converts the rotation matrix to a unit quaternion using
// Shepperd's method (numerically stable branch selection by the largest
// diagonal term).
func (d DCM) ToQuaternion() Quaternion {
	m := d.RotMat
	tr := m[0][0] + m[1][1] + m[2][2]
	var w, x, y, z float64
	switch {
	case tr > 0:
		s := math.Sqrt(tr+1) * 2
		w = 0.25 * s
		x = (m[2][1] - m[1][2]) / s
		y = (m[0][2] - m[2][0]) / s
		z = (m[1][0] - m[0][1]) / s
	case m[0][0] > m[1][1] && m[0][0] > m[2][2]:
		s := math.Sqrt(1+m[0][0]-m[1][1]-m[2][2]) * 2
		w = (m[2][1] - m[1][2]) / s
		x = 0.25 * s
		y = (m[0][1] + m[1][0]) / s
		z = (m[0][2] + m[2][0]) / s
	case m[1][1] > m[2][2]:
		s := math.Sqrt(1+m[1][1]-m[0][0]-m[2][2]) * 2
		w = (m[0][2] - m[2][0]) / s
		x = (m[0][1] + m[1][0]) / s
		y = 0.25 * s
		z = (m[1][2] + m[2][1]) / s
	default:
		s := math.Sqrt(1+m[2][2]-m[0][0]-m[1][1]) * 2
		w = (m[1][0] - m[0][1]) / s
		x = (m[0][2] + m[2][0]) / s
		y = (m[1][2] + m[2][1]) / s
		z = 0.25 * s
	}
	return NewQuaternion(w, x, y, z, d.FromID, d.ToID)
}
