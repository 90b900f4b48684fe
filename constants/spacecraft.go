package constants

import "github.com/astrokit/anise/dataset"

// Spacecraft is a static spacecraft physical-properties record: mass
// split (dry/fuel), solar radiation pressure area/coefficient, drag
// area/coefficient, and principal-axis inertia — the read-only physical
// constants an Almanac client needs to parameterize non-gravitational
// accelerations elsewhere, without this module itself integrating any
// dynamics.
type Spacecraft struct {
	ID int32
	Name string
	DryMassKg float64
	FuelMassKg float64
	SRPAreaM2 float64
	SRPCoeffCr float64
	DragAreaM2 float64
	DragCoeffCd float64
	InertiaKgM2 [3]float64 // principal-axis moments Ixx, Iyy, Izz
}

type spacecraftDecoder struct{}

// SpacecraftDecoder is the shared stateless Decoder for Spacecraft records.
var SpacecraftDecoder dataset.Decoder[Spacecraft] = spacecraftDecoder{}

func (spacecraftDecoder) Decode(b []byte) (Spacecraft, error) {
	dec := dataset.NewDecoder(b)
	var sc Spacecraft
	var err error
	if sc.ID, err = dec.I32(); err != nil {
		return sc, err
	}
	if sc.Name, err = dec.Str(); err != nil {
		return sc, err
	}
	if sc.DryMassKg, err = dec.F64(); err != nil {
		return sc, err
	}
	if sc.FuelMassKg, err = dec.F64(); err != nil {
		return sc, err
	}
	if sc.SRPAreaM2, err = dec.F64(); err != nil {
		return sc, err
	}
	if sc.SRPCoeffCr, err = dec.F64(); err != nil {
		return sc, err
	}
	if sc.DragAreaM2, err = dec.F64(); err != nil {
		return sc, err
	}
	if sc.DragCoeffCd, err = dec.F64(); err != nil {
		return sc, err
	}
	for i := range sc.InertiaKgM2 {
		if sc.InertiaKgM2[i], err = dec.F64(); err != nil {
			return sc, err
		}
	}
	return sc, nil
}

// EncodeSpacecraft produces the TLV-encoded payload for one Spacecraft
// record, in the field order Decode expects.
func EncodeSpacecraft(sc Spacecraft) []byte {
	e := dataset.NewEncoder()
	e.PutI32(sc.ID)
	e.PutStr(sc.Name)
	e.PutF64(sc.DryMassKg)
	e.PutF64(sc.FuelMassKg)
	e.PutF64(sc.SRPAreaM2)
	e.PutF64(sc.SRPCoeffCr)
	e.PutF64(sc.DragAreaM2)
	e.PutF64(sc.DragCoeffCd)
	for _, v := range sc.InertiaKgM2 {
		e.PutF64(v)
	}
	return e.Bytes()
}
