package interp

import (
	"math"

	"github.com/astrokit/anise/astromath"
)

// evalChebyshev2 evaluates a Type 2 (Chebyshev position-only) segment
// payload at t. Record layout: rsize = 2 + 3N doubles
// [midpoint, radius, x-coeffs(N), y-coeffs(N), z-coeffs(N)], repeated
// num_records times; trailer (last 4 doubles): init_epoch_et_s,
// interval_length_s, rsize, num_records.
func evalChebyshev2(data []float64, t float64) (Result, error) {
	n := len(data)
	if n < 4 {
		return Result{}, shortPayload(n, 4)
	}
	initET := data[n-4]
	intervalLen := data[n-3]
	rsize := int(data[n-2])
	numRecords := int(data[n-1])
	if numRecords <= 0 || rsize < 2 {
		return Result{}, shortPayload(n, rsize)
	}
	if err := boundsCheck(t, initET, initET+float64(numRecords)*intervalLen); err != nil {
		return Result{}, err
	}

	r := clampIndex(int(math.Floor((t-initET)/intervalLen)), numRecords-1)
	recOff := r * rsize
	if recOff+rsize > n-4 {
		return Result{}, shortPayload(n, recOff+rsize)
	}

	mid, radius := data[recOff], data[recOff+1]
	tau := (t - mid) / radius

	degN := (rsize - 2) / 3
	xCoeffs := data[recOff+2:recOff+2+degN]
	yCoeffs := data[recOff+2+degN:recOff+2+2*degN]
	zCoeffs := data[recOff+2+2*degN:recOff+2+3*degN]

	pos := astromath.Vector3{
		X: astromath.ChebyshevEval(xCoeffs, tau),
		Y: astromath.ChebyshevEval(yCoeffs, tau),
		Z: astromath.ChebyshevEval(zCoeffs, tau),
	}
	vel := astromath.Vector3{
		X: astromath.ChebyshevEvalDeriv(xCoeffs, tau) / radius,
		Y: astromath.ChebyshevEvalDeriv(yCoeffs, tau) / radius,
		Z: astromath.ChebyshevEvalDeriv(zCoeffs, tau) / radius,
	}
	return Result{Pos: pos, Vel: vel}, nil
}

// evalChebyshev3 evaluates a Type 3 (Chebyshev position+velocity) segment.
// Identical structure to Type 2 but coefficients come in six blocks
// (x,y,z,vx,vy,vz); velocity is read directly, not differentiated.
func evalChebyshev3(data []float64, t float64) (Result, error) {
	n := len(data)
	if n < 4 {
		return Result{}, shortPayload(n, 4)
	}
	initET := data[n-4]
	intervalLen := data[n-3]
	rsize := int(data[n-2])
	numRecords := int(data[n-1])
	if numRecords <= 0 || rsize < 2 {
		return Result{}, shortPayload(n, rsize)
	}
	if err := boundsCheck(t, initET, initET+float64(numRecords)*intervalLen); err != nil {
		return Result{}, err
	}

	r := clampIndex(int(math.Floor((t-initET)/intervalLen)), numRecords-1)
	recOff := r * rsize
	if recOff+rsize > n-4 {
		return Result{}, shortPayload(n, recOff+rsize)
	}

	mid, radius := data[recOff], data[recOff+1]
	tau := (t - mid) / radius

	degN := (rsize - 2) / 6
	base := recOff + 2
	xCoeffs := data[base:base+degN]
	yCoeffs := data[base+degN:base+2*degN]
	zCoeffs := data[base+2*degN:base+3*degN]
	vxCoeffs := data[base+3*degN:base+4*degN]
	vyCoeffs := data[base+4*degN:base+5*degN]
	vzCoeffs := data[base+5*degN:base+6*degN]

	pos := astromath.Vector3{
		X: astromath.ChebyshevEval(xCoeffs, tau),
		Y: astromath.ChebyshevEval(yCoeffs, tau),
		Z: astromath.ChebyshevEval(zCoeffs, tau),
	}
	vel := astromath.Vector3{
		X: astromath.ChebyshevEval(vxCoeffs, tau),
		Y: astromath.ChebyshevEval(vyCoeffs, tau),
		Z: astromath.ChebyshevEval(vzCoeffs, tau),
	}
	return Result{Pos: pos, Vel: vel}, nil
}
