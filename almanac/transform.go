package almanac

import (
	"github.com/astrokit/anise/aberration"
	"github.com/astrokit/anise/anierr"
	"github.com/astrokit/anise/astromath"
)

// Transform composes Translate with Rotate: it translates source's state
// relative to targetEphem (expressed in the SPK segments' frame, J2000 in
// practice), then rotates it with the DCM from sourceOrient to targetOrient
// via RotateState, which applies the DCM to position and (DCM·v + Ṙ·r) to
// velocity. The translated state is not rotated out of the segments' frame
// first, so the result is in targetOrient's frame only when sourceOrient
// names that frame.
func (a *Almanac) Transform(sourceEphem, targetEphem, sourceOrient, targetOrient int32, t float64, corr aberration.Correction) (astromath.Vector6, error) {
	state, err := a.Translate(sourceEphem, targetEphem, t, corr)
	if err != nil {
		return astromath.Vector6{}, anierr.Wrap(err, "almanac.Transform: translate")
	}

	dcm, err := a.Rotate(sourceOrient, targetOrient, t)
	if err != nil {
		return astromath.Vector6{}, anierr.Wrap(err, "almanac.Transform: rotate")
	}

	return dcm.RotateState(state), nil
}
