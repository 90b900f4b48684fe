package interp

import (
	"math"

	"github.com/astrokit/anise/astromath"
)

// stateLayout describes where the packed N×components state block, the
// epoch array (if any), and the directory (if any) live within a Type
// 8/9/12/13 payload, after trailer fields have been parsed out.
type stateLayout struct {
	states []float64 // N*components, packed per-sample
	epochs []float64 // len N; empty for equal-step variants (derived from init+k*step)
	directory []float64 // every-100th epoch; empty for equal-step variants
	degree int
	n int
}

const stateComponents = 6 // x,y,z,vx,vy,vz per sample

// parseUnequalLayout splits a Type 9/13 payload: N packed 6-double states,
// then N epochs, then an every-100th-epoch directory of len(N/100),
// then a 2-double trailer {degree, N-1}.
func parseUnequalLayout(data []float64) (stateLayout, error) {
	n := len(data)
	if n < 2 {
		return stateLayout{}, shortPayload(n, 2)
	}
	degree := int(data[n-2])
	numSamples := int(data[n-1]) + 1
	if numSamples <= 0 {
		return stateLayout{}, shortPayload(n, 2)
	}

	dirLen := numSamples / 100
	statesLen := numSamples * stateComponents
	need := statesLen + numSamples + dirLen + 2
	if need > n {
		return stateLayout{}, shortPayload(n, need)
	}

	states := data[0:statesLen]
	epochs := data[statesLen:statesLen+numSamples]
	directory := data[statesLen+numSamples:statesLen+numSamples+dirLen]

	return stateLayout{states: states, epochs: epochs, directory: directory, degree: degree, n: numSamples}, nil
}

// parseEqualLayout splits a Type 8/12 payload: N packed 6-double states,
// then a 4-double trailer {init_et_s, step_s, degree, N} — no directory,
// no stored epochs.
func parseEqualLayout(data []float64) (layout stateLayout, initET, step float64, err error) {
	n := len(data)
	if n < 4 {
		return stateLayout{}, 0, 0, shortPayload(n, 4)
	}
	initET = data[n-4]
	step = data[n-3]
	degree := int(data[n-2])
	numSamples := int(data[n-1])
	if numSamples <= 0 {
		return stateLayout{}, 0, 0, shortPayload(n, 4)
	}

	statesLen := numSamples * stateComponents
	need := statesLen + 4
	if need > n {
		return stateLayout{}, 0, 0, shortPayload(n, need)
	}

	epochs := make([]float64, numSamples)
	for i := 0; i < numSamples; i++ {
		epochs[i] = initET + float64(i)*step
	}

	return stateLayout{states: data[0:statesLen], epochs: epochs, degree: degree, n: numSamples}, initET, step, nil
}

// component extracts the i-th of the six packed components (0=x... 5=vz)
// as a contiguous slice over all N samples.
func (l stateLayout) component(i int) []float64 {
	out := make([]float64, l.n)
	for k := 0; k < l.n; k++ {
		out[k] = l.states[k*stateComponents+i]
	}
	return out
}

// evalLagrangeUnequal evaluates a Type 9 segment.
func evalLagrangeUnequal(data []float64, t float64, _ int) (Result, error) {
	layout, err := parseUnequalLayout(data)
	if err != nil {
		return Result{}, err
	}
	if err := boundsCheck(t, layout.epochs[0], layout.epochs[layout.n-1]); err != nil {
		return Result{}, err
	}
	center := findCenterUnequal(layout.epochs, layout.directory, t)
	return evalLagrangeWindow(layout, center, t)
}

// evalLagrangeEqual evaluates a Type 8 segment.
func evalLagrangeEqual(data []float64, t float64, _ int) (Result, error) {
	layout, initET, step, err := parseEqualLayout(data)
	if err != nil {
		return Result{}, err
	}
	if err := boundsCheck(t, layout.epochs[0], layout.epochs[layout.n-1]); err != nil {
		return Result{}, err
	}
	center := clampIndex(int(math.Round((t-initET)/step)), layout.n-1)
	return evalLagrangeWindow(layout, center, t)
}

func evalLagrangeWindow(layout stateLayout, center int, t float64) (Result, error) {
	lo, hi := windowBounds(center, layout.degree, layout.n)
	if hi-lo+1 < 2 {
		// A degenerate one-sample window has no interpolant to speak of;
		// surface it rather than silently returning the lone sample
		// unchanged.
		return Result{}, shortPayload(hi-lo+1, 2)
	}
	xs := layout.epochs[lo:hi+1]

	var out [stateComponents]float64
	for c := 0; c < stateComponents; c++ {
		ys := layout.component(c)[lo:hi+1]
		out[c] = astromath.LagrangeInterp(xs, ys, t)
	}
	return Result{
		Pos: astromath.Vector3{X: out[0], Y: out[1], Z: out[2]},
		Vel: astromath.Vector3{X: out[3], Y: out[4], Z: out[5]},
	}, nil
}
