package interp

import (
	"math"

	"github.com/astrokit/anise/astromath"
)

// evalHermiteUnequal evaluates a Type 13 segment: same payload shape and
// windowing as Type 9, but position components are interpolated with
// Hermite using their packed velocity as the known derivative, and the
// Hermite derivative output becomes the interpolated velocity directly —
// the velocity components are never independently interpolated.
func evalHermiteUnequal(data []float64, t float64, _ int) (Result, error) {
	layout, err := parseUnequalLayout(data)
	if err != nil {
		return Result{}, err
	}
	if err := boundsCheck(t, layout.epochs[0], layout.epochs[layout.n-1]); err != nil {
		return Result{}, err
	}
	center := findCenterUnequal(layout.epochs, layout.directory, t)
	return evalHermiteWindow(layout, center, t)
}

// evalHermiteEqual evaluates a Type 12 segment.
func evalHermiteEqual(data []float64, t float64, _ int) (Result, error) {
	layout, initET, step, err := parseEqualLayout(data)
	if err != nil {
		return Result{}, err
	}
	if err := boundsCheck(t, layout.epochs[0], layout.epochs[layout.n-1]); err != nil {
		return Result{}, err
	}
	center := clampIndex(int(math.Round((t-initET)/step)), layout.n-1)
	return evalHermiteWindow(layout, center, t)
}

func evalHermiteWindow(layout stateLayout, center int, t float64) (Result, error) {
	lo, hi := windowBounds(center, layout.degree, layout.n)
	if hi-lo+1 < 2 {
		// Same degenerate-window rejection as evalLagrangeWindow.
		return Result{}, shortPayload(hi-lo+1, 2)
	}
	xs := layout.epochs[lo:hi+1]

	// Components 0,1,2 are x,y,z position; 3,4,5 are their velocities,
	// fed in as the known derivative at each node.
	var pos, vel [3]float64
	for c := 0; c < 3; c++ {
		ys := layout.component(c)[lo:hi+1]
		dys := layout.component(c + 3)[lo:hi+1]
		pos[c], vel[c] = astromath.HermiteInterp(xs, ys, dys, t)
	}

	return Result{
		Pos: astromath.Vector3{X: pos[0], Y: pos[1], Z: pos[2]},
		Vel: astromath.Vector3{X: vel[0], Y: vel[1], Z: vel[2]},
	}, nil
}
