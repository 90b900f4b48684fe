package astromath

import "math"

// Matrix3 is a 3x3 matrix stored row-major.
type Matrix3 [3][3]float64

// Identity3 is the 3x3 identity matrix.
var Identity3 = Matrix3{{1, 0, 0}, {0, 1, 0}, {0, 0, 1}}

// MulVec applies m to v: result = m * v.
func (m Matrix3) MulVec(v Vector3) Vector3 {
	return Vector3{
		X: m[0][0]*v.X + m[0][1]*v.Y + m[0][2]*v.Z,
		Y: m[1][0]*v.X + m[1][1]*v.Y + m[1][2]*v.Z,
		Z: m[2][0]*v.X + m[2][1]*v.Y + m[2][2]*v.Z,
	}
}

// Mul computes the matrix product m * o.
func (m Matrix3) Mul(o Matrix3) Matrix3 {
	var r Matrix3
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			var sum float64
			for k := 0; k < 3; k++ {
				sum += m[i][k] * o[k][j]
			}
			r[i][j] = sum
		}
	}
	return r
}

// Add computes m + o element-wise.
func (m Matrix3) Add(o Matrix3) Matrix3 {
	var r Matrix3
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			r[i][j] = m[i][j] + o[i][j]
		}
	}
	return r
}

// Transpose returns m^T.
func (m Matrix3) Transpose() Matrix3 {
	var r Matrix3
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			r[j][i] = m[i][j]
		}
	}
	return r
}

// Det returns the determinant of m.
func (m Matrix3) Det() float64 {
	return m[0][0]*(m[1][1]*m[2][2]-m[1][2]*m[2][1]) -
		m[0][1]*(m[1][0]*m[2][2]-m[1][2]*m[2][0]) +
		m[0][2]*(m[1][0]*m[2][1]-m[1][1]*m[2][0])
}

// FrobeniusNorm returns sqrt(sum of squares of all elements).
func (m Matrix3) FrobeniusNorm() float64 {
	var sum float64
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			sum += m[i][j] * m[i][j]
		}
	}
	return math.Sqrt(sum)
}

// R1 returns the elementary rotation matrix about the X axis by angle
// (radians).
func R1(angle float64) Matrix3 {
	s, c := math.Sincos(angle)
	return Matrix3{
		{1, 0, 0},
		{0, c, s},
		{0, -s, c},
	}
}

// R2 returns the elementary rotation matrix about the Y axis by angle
// (radians).
func R2(angle float64) Matrix3 {
	s, c := math.Sincos(angle)
	return Matrix3{
		{c, 0, -s},
		{0, 1, 0},
		{s, 0, c},
	}
}

// R3 returns the elementary rotation matrix about the Z axis by angle
// (radians).
func R3(angle float64) Matrix3 {
	s, c := math.Sincos(angle)
	return Matrix3{
		{c, s, 0},
		{-s, c, 0},
		{0, 0, 1},
	}
}

// R1Dot returns d/d(angle) of R1(angle), scaled by angleRate (rad/s), i.e.
// the time derivative of the elementary rotation.
func R1Dot(angle, angleRate float64) Matrix3 {
	s, c := math.Sincos(angle)
	return Matrix3{
		{0, 0, 0},
		{0, -s * angleRate, c * angleRate},
		{0, -c * angleRate, -s * angleRate},
	}
}

// R2Dot is the time derivative of R2.
func R2Dot(angle, angleRate float64) Matrix3 {
	s, c := math.Sincos(angle)
	return Matrix3{
		{-s * angleRate, 0, -c * angleRate},
		{0, 0, 0},
		{c * angleRate, 0, -s * angleRate},
	}
}

// R3Dot is the time derivative of R3.
func R3Dot(angle, angleRate float64) Matrix3 {
	s, c := math.Sincos(angle)
	return Matrix3{
		{-s * angleRate, c * angleRate, 0},
		{-c * angleRate, -s * angleRate, 0},
		{0, 0, 0},
	}
}
