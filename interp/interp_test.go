package interp

import "testing"

const tol = 1e-9

func near(a, b, eps float64) bool {
	d := a - b
	if d < 0 {
		d = -d
	}
	return d < eps
}

func TestEvaluateChebyshev2ConstantRecord(t *testing.T) {
	// Constant (degree-0) coefficients: position is flat, velocity is zero,
	// regardless of where t falls in the record.
	rsize := 2 + 3*1 // mid, radius, 1 coeff each for x,y,z
	payload := []float64{
		0, 86400, 7, -3, 11, // mid, radius, x, y, z
		0, 2 * 86400, float64(rsize), 1,
	}
	res, err := Evaluate(2, payload, 0, 2*86400, 86400)
	if err != nil {
		t.Fatalf("Evaluate: %v", err)
	}
	if !near(res.Pos.X, 7, tol) || !near(res.Pos.Y, -3, tol) || !near(res.Pos.Z, 11, tol) {
		t.Errorf("Pos = %+v, want (7,-3,11)", res.Pos)
	}
	if !near(res.Vel.X, 0, tol) || !near(res.Vel.Y, 0, tol) || !near(res.Vel.Z, 0, tol) {
		t.Errorf("Vel = %+v, want zero", res.Vel)
	}
}

func TestEvaluateChebyshev2AtMidpointMatchesConstantTerm(t *testing.T) {
	// At tau=0 (t == record midpoint), T_1(0) = 0, so with two coefficients
	// per component Clenshaw collapses to the constant term.
	rsize := 2 + 3*2 // mid, radius, 2 coeffs each for x,y,z
	payload := []float64{
		43200, 43200, 1, 10, 4, 40, 7, 70, // mid, radius, (x0,x1),(y0,y1),(z0,z1)
		0, 86400, float64(rsize), 1,
	}
	res, err := Evaluate(2, payload, 0, 86400, 43200)
	if err != nil {
		t.Fatalf("Evaluate: %v", err)
	}
	if !near(res.Pos.X, 1, tol) || !near(res.Pos.Y, 4, tol) || !near(res.Pos.Z, 7, tol) {
		t.Errorf("Pos = %+v, want (1,4,7)", res.Pos)
	}
}

func TestEvaluateOutOfBounds(t *testing.T) {
	rsize := 2 + 3*1
	payload := []float64{
		0, 86400, 1, 2, 3,
		0, 86400, float64(rsize), 1,
	}
	_, err := Evaluate(2, payload, 0, 86400, 1e6)
	if err == nil {
		t.Fatal("expected out-of-bounds error")
	}
}

func TestEvaluateUnsupportedDataType(t *testing.T) {
	_, err := Evaluate(99, nil, 0, 1, 0)
	if err == nil {
		t.Fatal("expected UnsupportedDataTypeError")
	}
}

// buildEqualStatePayload packs n equally-spaced 6-component states into a
// Type 8/12 payload with the trailer {initET, step, degree, n}.
func buildEqualStatePayload(states [][6]float64, initET, step float64, degree int) []float64 {
	var out []float64
	for _, s := range states {
		out = append(out, s[:]...)
	}
	out = append(out, initET, step, float64(degree), float64(len(states)))
	return out
}

func TestEvaluateLagrangeEqualStepLinear(t *testing.T) {
	// Linear motion: x(t) = t, constant velocity 1; Lagrange through any
	// window should reproduce it exactly.
	var states [][6]float64
	for i := 0; i < 5; i++ {
		tt := float64(i) * 10
		states = append(states, [6]float64{tt, 0, 0, 1, 0, 0})
	}
	payload := buildEqualStatePayload(states, 0, 10, 3)
	res, err := Evaluate(8, payload, 0, 40, 25)
	if err != nil {
		t.Fatalf("Evaluate: %v", err)
	}
	if !near(res.Pos.X, 25, 1e-6) {
		t.Errorf("Pos.X = %v, want 25", res.Pos.X)
	}
}

func TestEvaluateHermiteEqualStepLinear(t *testing.T) {
	var states [][6]float64
	for i := 0; i < 5; i++ {
		tt := float64(i) * 10
		states = append(states, [6]float64{tt, 2 * tt, 0, 1, 2, 0})
	}
	payload := buildEqualStatePayload(states, 0, 10, 3)
	res, err := Evaluate(12, payload, 0, 40, 15)
	if err != nil {
		t.Fatalf("Evaluate: %v", err)
	}
	if !near(res.Pos.X, 15, 1e-6) || !near(res.Pos.Y, 30, 1e-6) {
		t.Errorf("Pos = %+v, want (15,30,*)", res.Pos)
	}
	if !near(res.Vel.X, 1, 1e-6) || !near(res.Vel.Y, 2, 1e-6) {
		t.Errorf("Vel = %+v, want (1,2,*)", res.Vel)
	}
}

func TestEvaluateLagrangeDegenerateWindowErrors(t *testing.T) {
	// A single-sample "window" (degree 0, n=1) has nothing to interpolate;
	// it must be reported rather than silently returning the lone sample.
	states := [][6]float64{{1, 2, 3, 0, 0, 0}}
	payload := buildEqualStatePayload(states, 0, 10, 0)
	_, err := Evaluate(8, payload, 0, 0, 0)
	if err == nil {
		t.Fatal("expected NotEnoughSamples-style error for a degenerate window")
	}
}
