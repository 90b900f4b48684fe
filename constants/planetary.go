// Package constants implements the four constant-dataset record shapes
//, each a dataset.Decoder[T] over the canonical TLV payload
// encoding.
package constants

import (
	"math"

	"github.com/astrokit/anise/astromath"
	"github.com/astrokit/anise/dataset"
	"github.com/astrokit/anise/frames"
)

// NutPrecTerm is one additive nutation/precession trigonometric term,
// amplitude*sin(argConstDeg + argRateDegPerCentury*T) (or cos when UseCosine),
// added to a planetary pole/PM polynomial.
type NutPrecTerm struct {
	AmplitudeDeg float64
	ArgConstDeg float64
	ArgRateDegPerCentury float64
	UseCosine bool
}

// Planetary is one body's orientation and gravitational constant record:
// GM, a triaxial ellipsoid, and the RA/Dec/prime-meridian polynomials (plus
// optional nutation/precession trig terms) that give its analytic
// orientation when no BPC segment covers it.
type Planetary struct {
	ID int32
	Name string
	GMKm3S2 float64
	Shape frames.Ellipsoid

	// Polynomial coefficients in ascending power of T (Julian centuries past
	// J2000 TDB) for RA/Dec, and of d (days past J2000 TDB) for PM.
	PoleRADeg []float64
	PoleDecDeg []float64
	PrimeMeridianDeg []float64

	NutPrecRA []NutPrecTerm
	NutPrecDec []NutPrecTerm
	NutPrecPM []NutPrecTerm
}

// OrientationAt evaluates the analytic pole/PM polynomials (plus any
// nutation/precession terms) at etSeconds, returning right ascension,
// declination, and prime-meridian angle in radians, plus their rates in
// radians/second.
func (p Planetary) OrientationAt(etSeconds float64) (ra, dec, pm, raDot, decDot, pmDot float64) {
	t := astromath.CenturiesPastJ2000TDB(etSeconds)
	d := astromath.DaysPastJ2000TDB(etSeconds)

	raDeg, raDegDot := evalPoly(p.PoleRADeg, t, 1.0/(astromath.SecondsPerDay*astromath.JulianCenturyDays))
	decDeg, decDegDot := evalPoly(p.PoleDecDeg, t, 1.0/(astromath.SecondsPerDay*astromath.JulianCenturyDays))
	pmDeg, pmDegDot := evalPoly(p.PrimeMeridianDeg, d, 1.0/astromath.SecondsPerDay)

	raTrig, raTrigDot := evalTrig(p.NutPrecRA, t, 1.0/(astromath.SecondsPerDay*astromath.JulianCenturyDays))
	decTrig, decTrigDot := evalTrig(p.NutPrecDec, t, 1.0/(astromath.SecondsPerDay*astromath.JulianCenturyDays))
	pmTrig, pmTrigDot := evalTrig(p.NutPrecPM, t, 1.0/(astromath.SecondsPerDay*astromath.JulianCenturyDays))

	ra = (raDeg + raTrig) * astromath.Deg2Rad
	dec = (decDeg + decTrig) * astromath.Deg2Rad
	pm = (pmDeg + pmTrig) * astromath.Deg2Rad
	raDot = (raDegDot + raTrigDot) * astromath.Deg2Rad
	decDot = (decDegDot + decTrigDot) * astromath.Deg2Rad
	pmDot = (pmDegDot + pmTrigDot) * astromath.Deg2Rad
	return
}

// evalPoly evaluates Sum_k coeffs[k]*x^k and its derivative w.r.t. seconds,
// given dxdSeconds = dx/d(seconds) for the chosen argument (T or d).
func evalPoly(coeffs []float64, x, dxdSeconds float64) (value, deriv float64) {
	for k, c := range coeffs {
		value += c * pow(x, k)
		if k > 0 {
			deriv += c * float64(k) * pow(x, k-1) * dxdSeconds
		}
	}
	return
}

func pow(x float64, k int) float64 {
	r := 1.0
	for i := 0; i < k; i++ {
		r *= x
	}
	return r
}

func evalTrig(terms []NutPrecTerm, x, dxdSeconds float64) (value, deriv float64) {
	for _, term := range terms {
		arg := (term.ArgConstDeg + term.ArgRateDegPerCentury*x) * astromath.Deg2Rad
		argDot := term.ArgRateDegPerCentury * astromath.Deg2Rad * dxdSeconds
		if term.UseCosine {
			value += term.AmplitudeDeg * math.Cos(arg)
			deriv += -term.AmplitudeDeg * math.Sin(arg) * argDot
		} else {
			value += term.AmplitudeDeg * math.Sin(arg)
			deriv += term.AmplitudeDeg * math.Cos(arg) * argDot
		}
	}
	return
}

// planetaryDecoder implements dataset.Decoder[Planetary].
type planetaryDecoder struct{}

// PlanetaryDecoder is the shared stateless Decoder for Planetary records.
var PlanetaryDecoder dataset.Decoder[Planetary] = planetaryDecoder{}

func (planetaryDecoder) Decode(b []byte) (Planetary, error) {
	dec := dataset.NewDecoder(b)
	var p Planetary
	var err error
	if p.ID, err = dec.I32(); err != nil {
		return p, err
	}
	if p.Name, err = dec.Str(); err != nil {
		return p, err
	}
	if p.GMKm3S2, err = dec.F64(); err != nil {
		return p, err
	}
	if p.Shape.RadiusAKm, err = dec.F64(); err != nil {
		return p, err
	}
	if p.Shape.RadiusBKm, err = dec.F64(); err != nil {
		return p, err
	}
	if p.Shape.RadiusCKm, err = dec.F64(); err != nil {
		return p, err
	}
	if p.PoleRADeg, err = decodeCoeffs(dec); err != nil {
		return p, err
	}
	if p.PoleDecDeg, err = decodeCoeffs(dec); err != nil {
		return p, err
	}
	if p.PrimeMeridianDeg, err = decodeCoeffs(dec); err != nil {
		return p, err
	}
	return p, nil
}

func decodeCoeffs(dec *dataset.Decoder) ([]float64, error) {
	n, err := dec.I32()
	if err != nil {
		return nil, err
	}
	out := make([]float64, n)
	for i := range out {
		if out[i], err = dec.F64(); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// EncodePlanetary produces the TLV-encoded payload for one Planetary
// record, in the exact field order Decode expects. Nutation/precession
// trig terms are not yet round-tripped through the writer path — no
// bundled dataset in this module's test fixtures carries them, so
// Encode/Decode agree on the polynomial-only subset.
func EncodePlanetary(p Planetary) []byte {
	e := dataset.NewEncoder()
	e.PutI32(p.ID)
	e.PutStr(p.Name)
	e.PutF64(p.GMKm3S2)
	e.PutF64(p.Shape.RadiusAKm)
	e.PutF64(p.Shape.RadiusBKm)
	e.PutF64(p.Shape.RadiusCKm)
	encodeCoeffs(e, p.PoleRADeg)
	encodeCoeffs(e, p.PoleDecDeg)
	encodeCoeffs(e, p.PrimeMeridianDeg)
	return e.Bytes()
}

func encodeCoeffs(e *dataset.Encoder, coeffs []float64) {
	e.PutI32(int32(len(coeffs)))
	for _, c := range coeffs {
		e.PutF64(c)
	}
}
