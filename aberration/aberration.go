// Package aberration implements light-time and stellar aberration
// correction, independent of the Almanac: callers supply
// a state-at-epoch evaluator closure so this package never needs to know
// about SPK/BPC segments or frame graphs, avoiding a dependency cycle with
// package almanac.
package aberration

import (
	"math"

	"github.com/astrokit/anise/anierr"
	"github.com/astrokit/anise/astromath"
)

// SpeedOfLightKmS is the defined speed of light in km/s (IAU/CODATA exact
// value), the denominator of every light-time/stellar-aberration
// correction below.
const SpeedOfLightKmS = 299792.458

const (
	lightTimeConvergenceS = 1e-12
	lightTimeMaxIters = 5
)

// Kind selects whether, and how, aberration is corrected.
type Kind int

const (
	None Kind = iota
	LightTime
	StellarPlusLightTime
)

// LightTimeMode distinguishes the converged (relativistic stellar term)
// variant from the single-pass instantaneous one.
type LightTimeMode int

const (
	Instantaneous LightTimeMode = iota
	Converged
)

// Direction selects reception (correct for where the target WAS) vs.
// transmission (correct for where the target WILL BE) geometry.
type Direction int

const (
	Reception Direction = iota
	Transmission
)

// Correction bundles the three independent aberration choices
// §4.5.4 describes as a product type.
type Correction struct {
	Kind Kind
	Mode LightTimeMode
	Direction Direction
}

// StateAt evaluates a target's (position, velocity) at a given epoch; the
// Almanac supplies this as a closure over its own translate/rotate logic.
type StateAt func(et float64) (astromath.Vector3, astromath.Vector3, error)

// Correct applies corr to the geometric line-of-sight from a stationary
// observer (at obsPos, obsVel, epoch t) to a target whose state is given by
// targetAt, returning the corrected target position/velocity and the
// light time used (0 if Kind == None).
func Correct(obsPos, obsVel astromath.Vector3, t float64, targetAt StateAt, corr Correction) (pos, vel astromath.Vector3, lightTimeS float64, err error) {
	if corr.Kind == None {
		pos, vel, err = targetAt(t)
		return pos, vel, 0, err
	}

	evalT := t
	sign := 1.0
	if corr.Direction == Transmission {
		sign = -1.0
	}

	tau := 0.0
	for i := 0; i < lightTimeMaxIters; i++ {
		candidateT := t - sign*tau
		p, _, evalErr := targetAt(candidateT)
		if evalErr != nil {
			return astromath.Vector3{}, astromath.Vector3{}, 0, anierr.Wrap(evalErr, "aberration.Correct: evaluating target state")
		}
		rng := p.Sub(obsPos).Norm()
		newTau := rng / SpeedOfLightKmS
		if math.Abs(newTau-tau) < lightTimeConvergenceS {
			tau = newTau
			break
		}
		tau = newTau
	}
	evalT = t - sign*tau

	pos, vel, err = targetAt(evalT)
	if err != nil {
		return astromath.Vector3{}, astromath.Vector3{}, 0, anierr.Wrap(err, "aberration.Correct: evaluating corrected target state")
	}

	if corr.Kind == StellarPlusLightTime {
		pos = stellarAberrate(pos, obsPos, obsVel, corr.Mode)
	}

	return pos, vel, tau, nil
}

// stellarAberrate rotates the line-of-sight from obsPos to targetPos by the
// small angle induced by the observer's own velocity, v_obs × r̂ / c
//. The converged variant uses the relativistic velocity
// addition formula instead of the small-angle approximation.
func stellarAberrate(targetPos, obsPos, obsVel astromath.Vector3, mode LightTimeMode) astromath.Vector3 {
	los := targetPos.Sub(obsPos)
	rng := los.Norm()
	if rng == 0 {
		return targetPos
	}
	rHat := los.Unit()

	if mode == Instantaneous {
		correction := obsVel.Scale(1.0 / SpeedOfLightKmS)
		rHatCorrected := rHat.Add(correction).Sub(rHat.Scale(rHat.Dot(correction)))
		return obsPos.Add(rHatCorrected.Unit().Scale(rng))
	}

	// Converged (relativistic) variant: compose velocities via the
	// relativistic addition formula along the line-of-sight before
	// re-deriving the apparent direction.
	vPar := rHat.Scale(rHat.Dot(obsVel))
	vPerp := obsVel.Sub(vPar)
	beta := obsVel.Norm() / SpeedOfLightKmS
	gamma := 1.0 / math.Sqrt(1-beta*beta)

	numerator := rHat.Scale(1.0).Add(vPar.Scale(1.0 / SpeedOfLightKmS)).Add(vPerp.Scale(1.0 / (gamma * SpeedOfLightKmS)))
	denominator := 1.0 + rHat.Dot(obsVel)/SpeedOfLightKmS
	apparent := numerator.Scale(1.0 / denominator).Unit()

	return obsPos.Add(apparent.Scale(rng))
}
