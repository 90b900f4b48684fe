package constants

import (
	"math"
	"testing"

	"github.com/astrokit/anise/frames"
)

func TestPlanetaryEncodeDecodeRoundTrip(t *testing.T) {
	p := Planetary{
		ID:               399,
		Name:             "EARTH",
		GMKm3S2:          398600.4418,
		Shape:            frames.Ellipsoid{RadiusAKm: 6378.137, RadiusBKm: 6378.137, RadiusCKm: 6356.752},
		PoleRADeg:        []float64{0, -0.641},
		PoleDecDeg:       []float64{90, -0.557},
		PrimeMeridianDeg: []float64{190.147, 360.9856235},
	}

	buf := EncodePlanetary(p)
	decoded, err := PlanetaryDecoder.Decode(buf)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}

	if decoded.ID != p.ID || decoded.Name != p.Name || decoded.GMKm3S2 != p.GMKm3S2 {
		t.Fatalf("decoded = %+v, want %+v", decoded, p)
	}
	if decoded.Shape != p.Shape {
		t.Errorf("Shape = %+v, want %+v", decoded.Shape, p.Shape)
	}
	for i := range p.PoleRADeg {
		if decoded.PoleRADeg[i] != p.PoleRADeg[i] {
			t.Errorf("PoleRADeg[%d] = %v, want %v", i, decoded.PoleRADeg[i], p.PoleRADeg[i])
		}
	}
}

func TestPlanetaryOrientationAtZeroEpoch(t *testing.T) {
	p := Planetary{
		PoleRADeg:        []float64{10},
		PoleDecDeg:       []float64{80},
		PrimeMeridianDeg: []float64{190, 360.9856235},
	}
	ra, dec, pm, _, _, pmDot := p.OrientationAt(0)
	if math.Abs(ra-10*math.Pi/180) > 1e-12 {
		t.Errorf("ra = %v, want %v", ra, 10*math.Pi/180)
	}
	if math.Abs(dec-80*math.Pi/180) > 1e-12 {
		t.Errorf("dec = %v, want %v", dec, 80*math.Pi/180)
	}
	if math.Abs(pm-190*math.Pi/180) > 1e-12 {
		t.Errorf("pm = %v, want %v", pm, 190*math.Pi/180)
	}
	wantPMDot := 360.9856235 * math.Pi / 180 / 86400
	if math.Abs(pmDot-wantPMDot) > 1e-15 {
		t.Errorf("pmDot = %v, want %v", pmDot, wantPMDot)
	}
}

func TestEllipsoidMeanRadius(t *testing.T) {
	e := frames.Ellipsoid{RadiusAKm: 6, RadiusBKm: 6, RadiusCKm: 3}
	want := (6.0 + 6.0 + 3.0) / 3.0
	if got := e.MeanRadiusKm(); math.Abs(got-want) > 1e-12 {
		t.Errorf("MeanRadiusKm = %v, want %v", got, want)
	}
}
