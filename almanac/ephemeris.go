package almanac

import (
	"github.com/astrokit/anise/aberration"
	"github.com/astrokit/anise/anierr"
	"github.com/astrokit/anise/astromath"
	"github.com/astrokit/anise/daf"
	"github.com/astrokit/anise/frames"
	"github.com/astrokit/anise/interp"
)

const maxWalkDepth = 64

// ephemerisStep is one edge walked while resolving a common-root path: the
// segment (and its owning DAF) that produced centerID from targetID.
type ephemerisStep struct {
	targetID, centerID int32
	summary daf.SpkSummary
}

// findSpkSegment returns the segment used to express targetID relative to
// its center at epoch t: the last-loaded SPK (reverse load order) whose
// last matching, epoch-covering summary has Target == targetID.
func (a *Almanac) findSpkSegment(targetID int32, t float64) (ephemerisStep, daf.Segment[daf.SpkSummary], *daf.DAF[daf.SpkSummary], bool) {
	for i := len(a.spks) - 1; i >= 0; i-- {
		d := a.spks[i].d
		var best *daf.SpkSummary
		for _, e := range d.Summaries() {
			s := e.Summary
			if s.Target != targetID {
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
		return ephemerisStep{targetID: targetID, centerID: best.Center, summary: *best}, seg, d, true
	}
	return ephemerisStep{}, daf.Segment[daf.SpkSummary]{}, nil, false
}

// walkEphemerisPath walks upward from startID via findSpkSegment, recording
// each step, until reaching the SSB, hitting a node with no coverage (the
// walk then terminates there, "falling back to the SSB via the current
// center" conceptually — the caller treats the terminal node as the end of
// available data), or maxWalkDepth is exceeded.
func (a *Almanac) walkEphemerisPath(startID int32, t float64) ([]int32, []ephemerisStep) {
	ids := []int32{startID}
	var steps []ephemerisStep

	current := startID
	for depth := 0; depth < maxWalkDepth; depth++ {
		if current == frames.SSB {
			break
		}
		step, _, _, ok := a.findSpkSegment(current, t)
		if !ok {
			break
		}
		steps = append(steps, step)
		ids = append(ids, step.centerID)
		current = step.centerID
	}
	return ids, steps
}

// commonEphemerisNode returns the shallowest id present in both walked
// paths — the one minimizing the combined traversed depth.
func commonEphemerisNode(pathA, pathB []int32) (int32, int, int, bool) {
	indexB := make(map[int32]int, len(pathB))
	for j, id := range pathB {
		if _, exists := indexB[id]; !exists {
			indexB[id] = j
		}
	}
	bestI, bestJ, bestSum := -1, -1, -1
	for i, id := range pathA {
		if j, ok := indexB[id]; ok {
			sum := i + j
			if bestSum == -1 || sum < bestSum {
				bestI, bestJ, bestSum = i, j, sum
			}
		}
	}
	if bestI == -1 {
		return 0, 0, 0, false
	}
	return pathA[bestI], bestI, bestJ, true
}

// CommonEphemerisPath returns the common ancestor ephemeris id for source
// and target at epoch t.
func (a *Almanac) CommonEphemerisPath(source, target int32, t float64) (int32, error) {
	pathA, _ := a.walkEphemerisPath(source, t)
	pathB, _ := a.walkEphemerisPath(target, t)
	node, _, _, ok := commonEphemerisNode(pathA, pathB)
	if !ok {
		return 0, &anierr.TranslationOriginError{From: source, To: target, EpochET: t}
	}
	return node, nil
}

// evalStep evaluates one ephemeris step's segment at t, returning the
// state of step.targetID relative to step.centerID.
func evalStep(step ephemerisStep, seg daf.Segment[daf.SpkSummary], t float64) (astromath.Vector6, error) {
	return interp.Evaluate(step.summary.DataType, seg.Data, step.summary.StartET, step.summary.EndET, t)
}

// sumPath evaluates and sums every step's state up to (but not including)
// the common node at index stopIdx, with the given sign.
func (a *Almanac) sumPath(steps []ephemerisStep, stopIdx int, sign float64, t float64) (astromath.Vector6, error) {
	var total astromath.Vector6
	for i := 0; i < stopIdx && i < len(steps); i++ {
		step := steps[i]
		_, seg, _, ok := a.findSpkSegment(step.targetID, t)
		if !ok {
			return astromath.Vector6{}, anierr.Wrap(&anierr.NoDataLoadedError{Action: "re-evaluating ephemeris step"}, "almanac.sumPath")
		}
		state, err := evalStep(step, seg, t)
		if err != nil {
			return astromath.Vector6{}, anierr.Wrap(err, "almanac.sumPath: evaluating segment")
		}
		total.Pos = total.Pos.Add(state.Pos.Scale(sign))
		total.Vel = total.Vel.Add(state.Vel.Scale(sign))
	}
	return total, nil
}

// Translate computes the state of source relative to target at epoch t,
// in the common frame's orientation (J2000 in practice), applying corr.
func (a *Almanac) Translate(source, target int32, t float64, corr aberration.Correction) (astromath.Vector6, error) {
	if len(a.spks) == 0 {
		return astromath.Vector6{}, &anierr.NoDataLoadedError{Action: "translate"}
	}

	stateAt := func(evalT float64) (astromath.Vector3, astromath.Vector3, error) {
		s, err := a.translateGeometric(source, frames.SSB, evalT)
		if err != nil {
			return astromath.Vector3{}, astromath.Vector3{}, err
		}
		return s.Pos, s.Vel, nil
	}

	if corr.Kind == aberration.None {
		s, err := a.translateGeometric(source, target, t)
		return s, anierr.Wrap(err, "almanac.Translate")
	}

	observerState, err := a.translateGeometric(target, frames.SSB, t)
	if err != nil {
		return astromath.Vector6{}, anierr.Wrap(err, "almanac.Translate: observer state")
	}
	pos, vel, _, err := aberration.Correct(observerState.Pos, observerState.Vel, t, stateAt, corr)
	if err != nil {
		return astromath.Vector6{}, anierr.Wrap(err, "almanac.Translate: aberration correction")
	}
	return astromath.Vector6{Pos: pos.Sub(observerState.Pos), Vel: vel.Sub(observerState.Vel)}, nil
}

// translateGeometric is the uncorrected (no aberration) translate used as
// both the public zero-correction path and the aberration evaluator
// closure.
func (a *Almanac) translateGeometric(source, target int32, t float64) (astromath.Vector6, error) {
	pathA, stepsA := a.walkEphemerisPath(source, t)
	pathB, stepsB := a.walkEphemerisPath(target, t)
	_, idxA, idxB, ok := commonEphemerisNode(pathA, pathB)
	if !ok {
		return astromath.Vector6{}, &anierr.TranslationOriginError{From: source, To: target, EpochET: t}
	}

	sumA, err := a.sumPath(stepsA, idxA, 1.0, t)
	if err != nil {
		return astromath.Vector6{}, err
	}
	sumB, err := a.sumPath(stepsB, idxB, 1.0, t)
	if err != nil {
		return astromath.Vector6{}, err
	}

	return astromath.Vector6{
		Pos: sumA.Pos.Sub(sumB.Pos),
		Vel: sumA.Vel.Sub(sumB.Vel),
	}, nil
}
