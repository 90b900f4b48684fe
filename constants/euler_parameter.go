package constants

import (
	"github.com/astrokit/anise/astromath"
	"github.com/astrokit/anise/dataset"
)

// EulerParameter is a static (time-invariant) orientation definition
// between two frames, stored as a unit quaternion — used for fixed-offset
// frames (e.g. instrument mounting frames, body-fixed-to-principal-axis
// offsets) that don't need a full BPC interpolation segment.
type EulerParameter struct {
	FromID, ToID int32
	Quaternion astromath.Quaternion
}

type eulerParameterDecoder struct{}

// EulerParameterDecoder is the shared stateless Decoder for EulerParameter
// records.
var EulerParameterDecoder dataset.Decoder[EulerParameter] = eulerParameterDecoder{}

func (eulerParameterDecoder) Decode(b []byte) (EulerParameter, error) {
	dec := dataset.NewDecoder(b)
	var ep EulerParameter
	var err error
	if ep.FromID, err = dec.I32(); err != nil {
		return ep, err
	}
	if ep.ToID, err = dec.I32(); err != nil {
		return ep, err
	}
	var w, x, y, z float64
	if w, err = dec.F64(); err != nil {
		return ep, err
	}
	if x, err = dec.F64(); err != nil {
		return ep, err
	}
	if y, err = dec.F64(); err != nil {
		return ep, err
	}
	if z, err = dec.F64(); err != nil {
		return ep, err
	}
	ep.Quaternion = astromath.NewQuaternion(w, x, y, z, ep.FromID, ep.ToID)
	return ep, nil
}

// EncodeEulerParameter produces the TLV-encoded payload for one
// EulerParameter record, in the field order Decode expects.
func EncodeEulerParameter(ep EulerParameter) []byte {
	e := dataset.NewEncoder()
	e.PutI32(ep.FromID)
	e.PutI32(ep.ToID)
	e.PutF64(ep.Quaternion.W)
	e.PutF64(ep.Quaternion.X)
	e.PutF64(ep.Quaternion.Y)
	e.PutF64(ep.Quaternion.Z)
	return e.Bytes()
}
