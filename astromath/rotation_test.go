package astromath

import (
	"math"
	"testing"
)

func approxEq(a, b, eps float64) bool {
	d := a - b
	if d < 0 {
		d = -d
	}
	return d < eps
}

func TestDCMMulFrameChaining(t *testing.T) {
	// frame 1 -> 2 is a 90deg rotation about Z; frame 2 -> 3 is a 90deg
	// rotation about X. lhs.Mul(rhs) should rotate 1 -> 3, applying lhs
	// first.
	a := DCM{RotMat: R3(math.Pi / 2), FromID: 1, ToID: 2, HasRate: true}
	b := DCM{RotMat: R1(math.Pi / 2), FromID: 2, ToID: 3, HasRate: true}

	composed, err := a.Mul(b)
	if err != nil {
		t.Fatalf("Mul: %v", err)
	}
	if composed.FromID != 1 || composed.ToID != 3 {
		t.Fatalf("composed frame ids = (%d,%d), want (1,3)", composed.FromID, composed.ToID)
	}

	v := Vector3{X: 1, Y: 0, Z: 0}
	direct := composed.RotMat.MulVec(v)
	viaSteps := b.RotMat.MulVec(a.RotMat.MulVec(v))
	if !approxEq(direct.X, viaSteps.X, 1e-12) || !approxEq(direct.Y, viaSteps.Y, 1e-12) || !approxEq(direct.Z, viaSteps.Z, 1e-12) {
		t.Errorf("composed rotation disagrees with applying a then b: %+v vs %+v", direct, viaSteps)
	}
}

func TestDCMMulFrameMismatch(t *testing.T) {
	a := DCM{RotMat: Identity3, FromID: 1, ToID: 2}
	b := DCM{RotMat: Identity3, FromID: 99, ToID: 3}
	if _, err := a.Mul(b); err == nil {
		t.Fatal("expected FrameMismatchError")
	}
}

func TestDCMIdentityIsOrthonormal(t *testing.T) {
	id := IdentityDCM(1)
	if !id.IsOrthonormal() {
		t.Fatal("identity DCM must be orthonormal")
	}
}

func TestDCMTransposeRoundTrip(t *testing.T) {
	d := DCM{RotMat: R2(0.37), FromID: 5, ToID: 6, HasRate: true, RotMatDt: R2Dot(0.37, 0.1)}
	back := d.Transpose().Transpose()
	if back.FromID != d.FromID || back.ToID != d.ToID {
		t.Fatalf("double transpose changed frame ids: %+v", back)
	}
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			if !approxEq(back.RotMat[i][j], d.RotMat[i][j], 1e-12) {
				t.Fatalf("double transpose changed RotMat[%d][%d]", i, j)
			}
		}
	}
}

func TestQuaternionMulFrameChaining(t *testing.T) {
	a := DCM{RotMat: R3(math.Pi / 3), FromID: 1, ToID: 2}.ToQuaternion()
	b := DCM{RotMat: R1(math.Pi / 5), FromID: 2, ToID: 3}.ToQuaternion()

	composed, err := a.Mul(b)
	if err != nil {
		t.Fatalf("Mul: %v", err)
	}
	if composed.FromID != 1 || composed.ToID != 3 {
		t.Fatalf("frame ids = (%d,%d), want (1,3)", composed.FromID, composed.ToID)
	}

	v := Vector3{X: 0.3, Y: -0.4, Z: 0.8}
	direct := composed.Rotate(v)
	viaSteps := b.Rotate(a.Rotate(v))
	if !approxEq(direct.X, viaSteps.X, 1e-9) || !approxEq(direct.Y, viaSteps.Y, 1e-9) || !approxEq(direct.Z, viaSteps.Z, 1e-9) {
		t.Errorf("quaternion composition disagrees with sequential rotation: %+v vs %+v", direct, viaSteps)
	}
}

func TestQuaternionIsUnit(t *testing.T) {
	q := NewQuaternion(3, 4, 0, 0, 1, 2)
	if !q.IsUnit() {
		t.Fatal("NewQuaternion must normalize")
	}
}

func TestMRPQuaternionRoundTrip(t *testing.T) {
	q := NewQuaternion(0.8, 0.1, 0.2, 0.3, 1, 2)
	mrp := MRPFromQuaternion(q)
	back := mrp.Quaternion()
	// w may flip sign (shadow set); compare the rotation, not raw components.
	if !approxEq(math.Abs(back.W), math.Abs(q.W), 1e-9) {
		t.Errorf("round-tripped |w| = %v, want %v", math.Abs(back.W), math.Abs(q.W))
	}
}

func TestEulerAnglesToDCMOrthonormal(t *testing.T) {
	d := EulerAnglesToDCM(0.2, 0.5, 1.1, 0.001, 0.0005, 7.29e-5, 10, 20)
	if !d.IsOrthonormal() {
		t.Fatal("EulerAnglesToDCM result must be orthonormal")
	}
	if d.FromID != 10 || d.ToID != 20 {
		t.Fatalf("frame ids = (%d,%d), want (10,20)", d.FromID, d.ToID)
	}
}
