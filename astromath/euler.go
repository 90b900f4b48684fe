package astromath

import "math"

// EulerAnglesToDCM converts a body-orientation triple (right ascension,
// declination, prime-meridian/twist angle, all radians) and their rates
// into the inertial-to-body DCM, following the standard IAU pole
// convention: R = R3(w) * R1(pi/2 - dec) * R3(pi/2 + ra). This is the same
// three-rotation composition BPC Type 2/3 segments and the analytic
// planetary-constant path both resolve to; it is also how
// high-precision orientation segments (e.g. ITRF93) are interpolated as
// three Chebyshev/Lagrange/Hermite components rather than as a raw matrix.
func EulerAnglesToDCM(ra, dec, w, raDot, decDot, wDot float64, fromID, toID int32) DCM {
	const halfPi = math.Pi / 2

	r3w := R3(w)
	r1d := R1(halfPi - dec)
	r3a := R3(halfPi + ra)

	rot := r3w.Mul(r1d).Mul(r3a)

	r3wDot := R3Dot(w, wDot)
	r1dDot := R1Dot(halfPi-dec, -decDot)
	r3aDot := R3Dot(halfPi+ra, raDot)

	// Product rule across the three-matrix chain.
	dRot := r3wDot.Mul(r1d).Mul(r3a).
		Add(r3w.Mul(r1dDot).Mul(r3a)).
		Add(r3w.Mul(r1d).Mul(r3aDot))

	return DCM{
		RotMat: rot,
		RotMatDt: dRot,
		HasRate: true,
		FromID: fromID,
		ToID: toID,
	}
}
