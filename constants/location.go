package constants

import "github.com/astrokit/anise/dataset"

// Location is a fixed ground/surface point, expressed as a body-fixed
// Cartesian offset from its parent frame's origin — e.g. a ground station
// or landing site.
type Location struct {
	ID int32
	Name string
	ParentFrameID int32
	XKm, YKm, ZKm float64
}

type locationDecoder struct{}

// LocationDecoder is the shared stateless Decoder for Location records.
var LocationDecoder dataset.Decoder[Location] = locationDecoder{}

func (locationDecoder) Decode(b []byte) (Location, error) {
	dec := dataset.NewDecoder(b)
	var loc Location
	var err error
	if loc.ID, err = dec.I32(); err != nil {
		return loc, err
	}
	if loc.Name, err = dec.Str(); err != nil {
		return loc, err
	}
	if loc.ParentFrameID, err = dec.I32(); err != nil {
		return loc, err
	}
	if loc.XKm, err = dec.F64(); err != nil {
		return loc, err
	}
	if loc.YKm, err = dec.F64(); err != nil {
		return loc, err
	}
	if loc.ZKm, err = dec.F64(); err != nil {
		return loc, err
	}
	return loc, nil
}

// EncodeLocation produces the TLV-encoded payload for one Location record,
// in the field order Decode expects.
func EncodeLocation(loc Location) []byte {
	e := dataset.NewEncoder()
	e.PutI32(loc.ID)
	e.PutStr(loc.Name)
	e.PutI32(loc.ParentFrameID)
	e.PutF64(loc.XKm)
	e.PutF64(loc.YKm)
	e.PutF64(loc.ZKm)
	return e.Bytes()
}
