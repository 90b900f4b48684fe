package aberration

import (
	"math"
	"testing"

	"github.com/astrokit/anise/astromath"
)

func TestCorrectNoneReturnsGeometricState(t *testing.T) {
	wantPos := astromath.Vector3{X: 1, Y: 2, Z: 3}
	wantVel := astromath.Vector3{X: 0.1, Y: 0.2, Z: 0.3}
	targetAt := func(et float64) (astromath.Vector3, astromath.Vector3, error) {
		return wantPos, wantVel, nil
	}

	pos, vel, lt, err := Correct(astromath.Vector3{}, astromath.Vector3{}, 0, targetAt, Correction{Kind: None})
	if err != nil {
		t.Fatalf("Correct: %v", err)
	}
	if pos != wantPos || vel != wantVel {
		t.Errorf("got (%+v,%+v), want (%+v,%+v)", pos, vel, wantPos, wantVel)
	}
	if lt != 0 {
		t.Errorf("lightTimeS = %v, want 0", lt)
	}
}

func TestCorrectLightTimeStationaryTarget(t *testing.T) {
	// A target sitting still at a fixed range R has a constant, exactly
	// known light time R/c regardless of iteration.
	targetPos := astromath.Vector3{X: SpeedOfLightKmS * 10, Y: 0, Z: 0}
	targetAt := func(et float64) (astromath.Vector3, astromath.Vector3, error) {
		return targetPos, astromath.Vector3{}, nil
	}

	_, _, lt, err := Correct(astromath.Vector3{}, astromath.Vector3{}, 100, targetAt, Correction{Kind: LightTime, Direction: Reception})
	if err != nil {
		t.Fatalf("Correct: %v", err)
	}
	if math.Abs(lt-10) > 1e-9 {
		t.Errorf("lightTimeS = %v, want 10", lt)
	}
}

func TestCorrectLightTimeMovingTargetConverges(t *testing.T) {
	// Target moving away from the observer at constant velocity along X;
	// reception-direction light time must satisfy range(t-tau) = c*tau.
	const vx = 5.0
	pos0 := astromath.Vector3{X: 1e6, Y: 0, Z: 0}
	targetAt := func(et float64) (astromath.Vector3, astromath.Vector3, error) {
		return astromath.Vector3{X: pos0.X + vx*et, Y: 0, Z: 0}, astromath.Vector3{X: vx}, nil
	}

	obs := astromath.Vector3{}
	_, _, lt, err := Correct(obs, astromath.Vector3{}, 0, targetAt, Correction{Kind: LightTime, Direction: Reception})
	if err != nil {
		t.Fatalf("Correct: %v", err)
	}
	rangeAtEvalT := pos0.X + vx*(0-lt)
	wantTau := rangeAtEvalT / SpeedOfLightKmS
	if math.Abs(lt-wantTau) > 1e-9 {
		t.Errorf("lightTimeS = %v, want self-consistent %v", lt, wantTau)
	}
}

func TestStellarAberrationPreservesRange(t *testing.T) {
	targetPos := astromath.Vector3{X: 1e6, Y: 0, Z: 0}
	obsPos := astromath.Vector3{}
	obsVel := astromath.Vector3{X: 0, Y: 10, Z: 0}

	corrected := stellarAberrate(targetPos, obsPos, obsVel, Instantaneous)
	gotRange := corrected.Sub(obsPos).Norm()
	wantRange := targetPos.Sub(obsPos).Norm()
	if math.Abs(gotRange-wantRange) > 1e-6 {
		t.Errorf("range changed under stellar aberration: got %v, want %v", gotRange, wantRange)
	}
	if corrected == targetPos {
		t.Error("expected stellar aberration to shift apparent direction for nonzero observer velocity")
	}
}
