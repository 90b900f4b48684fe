package astromath

import "math"

// MRP is a modified Rodrigues parameter set, a minimal (3-parameter,
// singular at 360°) attitude representation sometimes used for compact
// constant-dataset encodings of small-angle offsets.
type MRP struct {
	X, Y, Z float64
	FromID, ToID int32
}

// MRPFromQuaternion converts a unit quaternion to its MRP representation.
// Uses the shadow set (negating the quaternion) when w < 0 to keep the MRP
// magnitude small, matching the standard convention.
func MRPFromQuaternion(q Quaternion) MRP {
	w := q.W
	x, y, z := q.X, q.Y, q.Z
	if w < 0 {
		w, x, y, z = -w, -x, -y, -z
	}
	d := 1 + w
	return MRP{X: x / d, Y: y / d, Z: z / d, FromID: q.FromID, ToID: q.ToID}
}

// Quaternion converts the MRP back to a unit quaternion.
func (m MRP) Quaternion() Quaternion {
	n2 := m.X*m.X + m.Y*m.Y + m.Z*m.Z
	d := 1 + n2
	w := (1 - n2) / d
	x := 2 * m.X / d
	y := 2 * m.Y / d
	z := 2 * m.Z / d
	return NewQuaternion(w, x, y, z, m.FromID, m.ToID)
}

// Normalize maps an MRP outside the unit ball to its shadow set
// equivalent, keeping the representation in its well-conditioned region.
func (m MRP) Normalize() MRP {
	n2 := m.X*m.X + m.Y*m.Y + m.Z*m.Z
	if n2 <= 1 {
		return m
	}
	scale := -1 / n2
	return MRP{X: m.X * scale, Y: m.Y * scale, Z: m.Z * scale, FromID: m.FromID, ToID: m.ToID}
}

func (m MRP) Norm() float64 { return math.Sqrt(m.X*m.X + m.Y*m.Y + m.Z*m.Z) }
