package almanac

import (
	"github.com/astrokit/anise/anierr"
	"github.com/astrokit/anise/astromath"
	"github.com/astrokit/anise/daf"
	"github.com/astrokit/anise/frames"
	"github.com/astrokit/anise/interp"
)

// orientationStep is one edge walked while resolving a common-root
// orientation path: either a BPC segment giving the DCM from parentID (the
// segment's inertial_frame_id) to childID (its frame_id), or, when no BPC
// covers childID, childID's Planetary constant record evaluated
// analytically against J2000.
type orientationStep struct {
	childID, parentID int32
	analytic bool

	// BPC fields, valid when !analytic.
	summary daf.BpcSummary
	data []float64

	// Analytic fields, valid when analytic.
	ra, dec, pm, raDot, decDot, pmDot float64
}

// findBpcStep finds the last-loaded (reverse load order) BPC whose last
// matching, epoch-covering summary has Frame == childID, carrying the
// segment payload along with the step so stepDCM doesn't need to re-slice
// it later.
func (a *Almanac) findBpcStep(childID int32, t float64) (orientationStep, bool) {
	for i := len(a.bpcs) - 1; i >= 0; i-- {
		d := a.bpcs[i].d
		var best *daf.BpcSummary
		for _, e := range d.Summaries() {
			s := e.Summary
			if s.Frame != childID {
				continue
			}
			if t < s.StartET || t > s.EndET {
				continue
			}
			sCopy := s
			best = &sCopy
		}
		if best == nil {
			continue
		}
		seg, err := d.SegmentFor(*best)
		if err != nil {
			continue
		}
		return orientationStep{childID: childID, parentID: best.InertialFrame, summary: *best, data: seg.Data}, true
	}
	return orientationStep{}, false
}

// findAnalyticStep evaluates childID's Planetary constant record (RA/Dec/PM
// polynomials plus any nutation/precession terms), when one is loaded, as
// the orientation source for a body-fixed frame no BPC segment covers. The
// IAU pole model is defined directly against J2000, so the analytic step's
// parent is always J2000.
func (a *Almanac) findAnalyticStep(childID int32, t float64) (orientationStep, bool) {
	if a.planetary == nil {
		return orientationStep{}, false
	}
	p, err := a.planetary.GetByID(childID)
	if err != nil {
		return orientationStep{}, false
	}
	ra, dec, pm, raDot, decDot, pmDot := p.OrientationAt(t)
	return orientationStep{
		childID: childID, parentID: frames.J2000, analytic: true,
		ra: ra, dec: dec, pm: pm, raDot: raDot, decDot: decDot, pmDot: pmDot,
	}, true
}

// findOrientationStep resolves the edge from childID toward its parent,
// preferring a covering BPC segment and falling back to the analytic
// planetary pole model for bodies no BPC covers.
func (a *Almanac) findOrientationStep(childID int32, t float64) (orientationStep, bool) {
	if step, ok := a.findBpcStep(childID, t); ok {
		return step, true
	}
	return a.findAnalyticStep(childID, t)
}

// walkOrientationPath mirrors walkEphemerisPath for the orientation tree,
// rooted at J2000.
func (a *Almanac) walkOrientationPath(startID int32, t float64) ([]int32, []orientationStep) {
	ids := []int32{startID}
	var steps []orientationStep

	current := startID
	for depth := 0; depth < maxWalkDepth; depth++ {
		if current == frames.J2000 {
			break
		}
		step, ok := a.findOrientationStep(current, t)
		if !ok {
			break
		}
		steps = append(steps, step)
		ids = append(ids, step.parentID)
		current = step.parentID
	}
	return ids, steps
}

// stepDCM evaluates one orientation step and returns the child->parent DCM.
// A BPC step's segment natively stores the parent->child rotation (the BPC
// convention expresses "rotation from the inertial frame to the body-fixed
// frame"), so walking the tree upward needs its transpose; an analytic step
// applies the same Euler-angle convention directly to the pole/PM
// polynomial's instantaneous value.
func stepDCM(step orientationStep, t float64) (astromath.DCM, error) {
	if step.analytic {
		parentToChild := astromath.EulerAnglesToDCM(
			step.ra, step.dec, step.pm, step.raDot, step.decDot, step.pmDot,
			step.parentID, step.childID,
		)
		return parentToChild.Transpose(), nil
	}

	result, err := interp.Evaluate(step.summary.DataType, step.data, step.summary.StartET, step.summary.EndET, t)
	if err != nil {
		return astromath.DCM{}, err
	}
	parentToChild := astromath.EulerAnglesToDCM(
		result.Pos.X, result.Pos.Y, result.Pos.Z,
		result.Vel.X, result.Vel.Y, result.Vel.Z,
		step.parentID, step.childID,
	)
	return parentToChild.Transpose(), nil
}

// composePathDCM composes the DCM taking startID up to the node at
// steps[:stopIdx], applying each edge in turn (earliest edge applied
// first, per astromath.DCM.Mul's "lhs applied first" convention).
func (a *Almanac) composePathDCM(startID int32, steps []orientationStep, stopIdx int, t float64) (astromath.DCM, error) {
	acc := astromath.IdentityDCM(startID)
	for i := 0; i < stopIdx && i < len(steps); i++ {
		edge, err := stepDCM(steps[i], t)
		if err != nil {
			return astromath.DCM{}, anierr.Wrap(err, "almanac.composePathDCM: evaluating segment")
		}
		acc, err = acc.Mul(edge)
		if err != nil {
			return astromath.DCM{}, anierr.Wrap(err, "almanac.composePathDCM: composing")
		}
	}
	return acc, nil
}

// Rotate returns the DCM rotating from source's orientation id to
// target's, at epoch t. Identity when source == target.
func (a *Almanac) Rotate(source, target int32, t float64) (astromath.DCM, error) {
	if source == target {
		return astromath.IdentityDCM(source), nil
	}

	pathA, stepsA := a.walkOrientationPath(source, t)
	pathB, stepsB := a.walkOrientationPath(target, t)
	_, idxA, idxB, ok := commonEphemerisNode(pathA, pathB)
	if !ok {
		return astromath.DCM{}, anierr.Wrap(&anierr.TranslationOriginError{From: source, To: target, EpochET: t}, "almanac.Rotate")
	}

	sourceToRoot, err := a.composePathDCM(source, stepsA, idxA, t)
	if err != nil {
		return astromath.DCM{}, err
	}
	targetToRoot, err := a.composePathDCM(target, stepsB, idxB, t)
	if err != nil {
		return astromath.DCM{}, err
	}

	return sourceToRoot.Mul(targetToRoot.Transpose())
}
