// Package interp implements the per-segment interpolation evaluators for
// every SPK/BPC data type this module supports: Chebyshev position-only
// (2), Chebyshev position+velocity (3), Lagrange unequal/equal step (9/8),
// and Hermite unequal/equal step (13/12).
//
// Every evaluator takes a segment's raw payload (the flat []float64 slice
// DAF.NthData/SegmentFor hands back) plus the query epoch, and returns a
// Vector6 in (position, velocity) or, for BPC orientation segments, in
// (Euler angles, Euler angle rates) — see astromath.EulerAnglesToDCM for
// the latter's conversion into a DCM.
//
// The record-index and normalized-time math for Chebyshev generalizes to
// all six data types; Lagrange/Hermite and the equal-step variants have
// no precedent to generalize from and are implemented from their NAIF
// definitions directly.
package interp

import (
	"github.com/astrokit/anise/anierr"
	"github.com/astrokit/anise/astromath"
)

// Result is the interpolated position/velocity (or orientation-angle
// equivalent) at a requested epoch.
type Result = astromath.Vector6

// Evaluate dispatches to the evaluator for dataType and returns the
// interpolated state at epoch t (seconds past J2000 TDB). data is the raw
// segment payload; startET/endET are the summary's declared coverage and are
// not read: every evaluator checks bounds against the epochs and record
// layout stored in the payload itself.
func Evaluate(dataType int32, data []float64, startET, endET, t float64) (Result, error) {
	switch dataType {
	case 2:
		return evalChebyshev2(data, t)
	case 3:
		return evalChebyshev3(data, t)
	case 9:
		return evalLagrangeUnequal(data, t, 6)
	case 8:
		return evalLagrangeEqual(data, t, 6)
	case 13:
		return evalHermiteUnequal(data, t, 6)
	case 12:
		return evalHermiteEqual(data, t, 6)
	default:
		return Result{}, &anierr.UnsupportedDataTypeError{DataType: int(dataType)}
	}
}

// boundsCheck enforces a 1ns tolerance (OutOfBounds if t
// is outside [first, last] epoch by more than 1 ns").
func boundsCheck(t, first, last float64) error {
	const nsTol = 1e-9
	if t < first-nsTol || t > last+nsTol {
		return &anierr.OutOfBoundsError{EpochET: t, SpanStart: first, SpanEnd: last}
	}
	return nil
}

func clampIndex(idx, maxIdx int) int {
	if idx < 0 {
		return 0
	}
	if idx > maxIdx {
		return maxIdx
	}
	return idx
}

// windowBounds computes the [lo, hi] inclusive sample index window of
// width d+1 centered on c, clamped into [0, n-1] ("clamp
// window against [0, N-1]" — "mirrored inside the data (clamped), never
// extrapolated outside").
func windowBounds(c, degree, n int) (lo, hi int) {
	half := degree / 2
	lo = c - half
	hi = c + (degree - half)
	if lo < 0 {
		hi -= lo
		lo = 0
	}
	if hi > n-1 {
		lo -= hi - (n - 1)
		hi = n - 1
	}
	if lo < 0 {
		lo = 0
	}
	return lo, hi
}

// findCenterUnequal binary-searches epochs for the first sample whose epoch
// is >= t (the last index when t is past every epoch; not necessarily the
// sample closest to t),
// using the every-100th-epoch directory for O(log(N/100)) coarse
// narrowing, then a final binary search over the narrowed range.
func findCenterUnequal(epochs []float64, directory []float64, t float64) int {
	n := len(epochs)
	lo, hi := 0, n-1

	if len(directory) > 0 {
		// Each directory[i] is epochs[(i+1)*100 - 1] in the classic NAIF
		// layout; narrow to the containing 100-wide bracket first.
		dlo, dhi := 0, len(directory)-1
		for dlo < dhi {
			mid := (dlo + dhi) / 2
			if directory[mid] < t {
				dlo = mid + 1
			} else {
				dhi = mid
			}
		}
		blockStart := dlo * 100
		blockEnd := blockStart + 199
		if blockEnd > n-1 {
			blockEnd = n - 1
		}
		lo, hi = blockStart, blockEnd
	}

	for lo < hi {
		mid := (lo + hi) / 2
		if epochs[mid] < t {
			lo = mid + 1
		} else {
			hi = mid
		}
	}
	return lo
}
