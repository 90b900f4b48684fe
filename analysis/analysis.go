// Package analysis implements read-only geometric queries layered on top
// of an Almanac: generic threshold-crossing window/extrema search,
// occultation detection, and angular separation (SPEC_FULL.md §4.7,
// supplemented from the original Rust implementation's dropped `analysis`
// and `astro/occultation` modules). The Almanac itself has no dependency
// on this package.
package analysis

import (
	"math"

	"github.com/astrokit/anise/aberration"
	"github.com/astrokit/anise/almanac"
	"github.com/astrokit/anise/anierr"
)

// Window is a closed epoch interval, in seconds past J2000 TDB.
type Window struct {
	StartET, EndET float64
}

// FindWindows scans [start, end] at the given step, grouping consecutive
// epochs where f returns true into Windows.
func FindWindows(start, end, step float64, f func(et float64) bool) ([]Window, error) {
	if step <= 0 {
		return nil, &anierr.GenericError{Msg: "analysis.FindWindows: step must be positive"}
	}
	var windows []Window
	var openStart float64
	open := false

	for t := start; t <= end; t += step {
		state := f(t)
		switch {
		case state && !open:
			openStart = t
			open = true
		case !state && open:
			windows = append(windows, refineWindow(openStart, t, step, f))
			open = false
		}
	}
	if open {
		windows = append(windows, refineWindow(openStart, end, step, f))
	}
	return windows, nil
}

// refineWindow bisects the boundary step to the requested resolution (1/64
// of step, floored at 1ms), tightening the [start,end) edges found by the
// coarse scan in FindWindows. start is the first sample where f was found
// true (so the true/false edge lies in [start-step, start]); end is the
// first sample after start where f was found false (so that edge lies in
// [end-step, end]).
func refineWindow(start, end, step float64, f func(et float64) bool) Window {
	const minRes = 1e-3
	res := step / 64
	if res < minRes {
		res = minRes
	}

	lo, hi := start-step, start
	for hi-lo > res {
		mid := (lo + hi) / 2
		if f(mid) {
			hi = mid
		} else {
			lo = mid
		}
	}
	startRefined := hi

	lo, hi = end-step, end
	for hi-lo > res {
		mid := (lo + hi) / 2
		if f(mid) {
			lo = mid
		} else {
			hi = mid
		}
	}
	return Window{StartET: startRefined, EndET: hi}
}

// FindExtrema golden-section searches [start, end] for a local extremum of
// f, coarse-sampling at step to bracket the extremum first.
func FindExtrema(start, end, step float64, f func(et float64) float64, findMax bool) (et, value float64, err error) {
	if step <= 0 {
		return 0, 0, &anierr.GenericError{Msg: "analysis.FindExtrema: step must be positive"}
	}

	better := func(a, b float64) bool {
		if findMax {
			return a > b
		}
		return a < b
	}

	bestT, bestV := start, f(start)
	for t := start + step; t <= end; t += step {
		v := f(t)
		if better(v, bestV) {
			bestT, bestV = t, v
		}
	}

	lo, hi := bestT-step, bestT+step
	if lo < start {
		lo = start
	}
	if hi > end {
		hi = end
	}

	const gr = 0.6180339887498949
	x1 := hi - gr*(hi-lo)
	x2 := lo + gr*(hi-lo)
	f1, f2 := f(x1), f(x2)
	for i := 0; i < 64 && hi-lo > 1e-6; i++ {
		if better(f1, f2) {
			hi = x2
			x2, f2 = x1, f1
			x1 = hi - gr*(hi-lo)
			f1 = f(x1)
		} else {
			lo = x1
			x1, f1 = x2, f2
			x2 = lo + gr*(hi-lo)
			f2 = f(x2)
		}
	}
	mid := (lo + hi) / 2
	return mid, f(mid), nil
}

// SeparationAngle returns the angular separation, in radians, between
// frames a and b as seen from observer at epoch t.
func SeparationAngle(alm *almanac.Almanac, aID, bID, observerID int32, t float64, corr aberration.Correction) (float64, error) {
	sa, err := alm.Translate(aID, observerID, t, corr)
	if err != nil {
		return 0, anierr.Wrap(err, "analysis.SeparationAngle: translating a")
	}
	sb, err := alm.Translate(bID, observerID, t, corr)
	if err != nil {
		return 0, anierr.Wrap(err, "analysis.SeparationAngle: translating b")
	}

	dotOverNorms := sa.Pos.Dot(sb.Pos) / (sa.Pos.Norm() * sb.Pos.Norm())
	if dotOverNorms > 1 {
		dotOverNorms = 1
	}
	if dotOverNorms < -1 {
		dotOverNorms = -1
	}
	return math.Acos(dotOverNorms), nil
}

// Occultation finds epoch windows in [start, end] where frontID occults
// backID as seen from observerID: the angular separation between front and
// back is smaller than front's angular radius at that epoch.
func Occultation(alm *almanac.Almanac, backID, frontID, observerID int32, start, end, step float64, corr aberration.Correction) ([]Window, error) {
	planetary, ok := alm.Planetary()
	if !ok {
		return nil, &anierr.NoDataLoadedError{Action: "analysis.Occultation: no planetary constants loaded"}
	}
	frontShape, err := planetary.GetByID(frontID)
	if err != nil {
		return nil, anierr.Wrap(err, "analysis.Occultation: looking up front body shape")
	}
	meanRadiusKm := frontShape.Shape.MeanRadiusKm()

	isOccluded := func(t float64) bool {
		sepRad, sepErr := SeparationAngle(alm, backID, frontID, observerID, t, corr)
		if sepErr != nil {
			return false
		}
		frontState, stateErr := alm.Translate(frontID, observerID, t, corr)
		if stateErr != nil {
			return false
		}
		distKm := frontState.Pos.Norm()
		if distKm == 0 {
			return false
		}
		angularRadiusRad := math.Asin(math.Min(1, meanRadiusKm/distKm))
		return sepRad < angularRadiusRad
	}

	return FindWindows(start, end, step, isOccluded)
}
