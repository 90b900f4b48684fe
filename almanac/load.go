// Package almanac composes loaded SPK ephemerides, BPC orientation
// kernels, and constant datasets into translate/rotate/transform queries
// over pairs of frames. The Almanac never mutates in
// place: every load returns a new Almanac sharing the prior byte views.
package almanac

import (
	"github.com/astrokit/anise/anierr"
	"github.com/astrokit/anise/bytesview"
	"github.com/astrokit/anise/constants"
	"github.com/astrokit/anise/daf"
	"github.com/astrokit/anise/dataset"
)

// MaxSlots bounds the number of SPK or BPC files a single Almanac may hold.
const MaxSlots = 32

type spkEntry struct {
	loadIndex int
	d *daf.DAF[daf.SpkSummary]
}

type bpcEntry struct {
	loadIndex int
	d *daf.DAF[daf.BpcSummary]
}

// Almanac holds every loaded SPK/BPC and the four constant datasets.
type Almanac struct {
	spks []spkEntry
	bpcs []bpcEntry

	planetary *dataset.DataSet[constants.Planetary]
	eulerParameter *dataset.DataSet[constants.EulerParameter]
	spacecraft *dataset.DataSet[constants.Spacecraft]
	location *dataset.DataSet[constants.Location]

	nextLoadIndex int
}

// New returns an empty Almanac.
func New() *Almanac { return &Almanac{} }

func (a *Almanac) clone() *Almanac {
	na := *a
	return &na
}

// Load detects the kind of kernel/dataset in buf by its magic bytes and
// dispatches to the matching typed load method.
func (a *Almanac) Load(buf []byte) (*Almanac, error) {
	if len(buf) < 18 {
		return nil, anierr.Wrap(&anierr.GenericError{Msg: "buffer too short to contain a recognizable header"}, "almanac.Load")
	}
	magic8 := string(buf[0:8])
	switch magic8 {
	case daf.IdentSPK:
		return a.LoadSPK(bytesview.New(buf))
	case daf.IdentPCK:
		return a.LoadBPC(bytesview.New(buf))
	}
	if magic8 == dataset.Magic {
		switch dataset.Kind(buf[13]) {
		case dataset.KindPlanetary:
			return a.LoadPlanetary(buf)
		case dataset.KindEulerParameter:
			return a.LoadEulerParameter(buf)
		case dataset.KindSpacecraft:
			return a.LoadSpacecraft(buf)
		case dataset.KindLocation:
			return a.LoadLocation(buf)
		}
	}
	return nil, anierr.Wrap(&anierr.GenericError{Msg: "unrecognized file magic"}, "almanac.Load")
}

// LoadSPK parses buf as an SPK (ephemeris) DAF and returns a new Almanac
// with it appended.
func (a *Almanac) LoadSPK(bytes bytesview.ByteView) (*Almanac, error) {
	if len(a.spks) >= MaxSlots {
		return nil, &anierr.StructureIsFullError{MaxSlots: MaxSlots}
	}
	d, err := daf.Parse[daf.SpkSummary](bytes)
	if err != nil {
		return nil, anierr.Wrap(err, "almanac.LoadSPK")
	}
	na := a.clone()
	na.spks = append(append([]spkEntry{}, a.spks...), spkEntry{loadIndex: a.nextLoadIndex, d: d})
	na.nextLoadIndex = a.nextLoadIndex + 1
	return na, nil
}

// LoadBPC parses buf as a BPC (orientation) DAF and returns a new Almanac
// with it appended.
func (a *Almanac) LoadBPC(bytes bytesview.ByteView) (*Almanac, error) {
	if len(a.bpcs) >= MaxSlots {
		return nil, &anierr.StructureIsFullError{MaxSlots: MaxSlots}
	}
	d, err := daf.Parse[daf.BpcSummary](bytes)
	if err != nil {
		return nil, anierr.Wrap(err, "almanac.LoadBPC")
	}
	na := a.clone()
	na.bpcs = append(append([]bpcEntry{}, a.bpcs...), bpcEntry{loadIndex: a.nextLoadIndex, d: d})
	na.nextLoadIndex = a.nextLoadIndex + 1
	return na, nil
}

// LoadPlanetary parses buf as a Planetary constant dataset.
func (a *Almanac) LoadPlanetary(buf []byte) (*Almanac, error) {
	ds, err := dataset.TryFromBytes[constants.Planetary](buf, constants.PlanetaryDecoder)
	if err != nil {
		return nil, anierr.Wrap(err, "almanac.LoadPlanetary")
	}
	na := a.clone()
	na.planetary = ds
	return na, nil
}

// LoadEulerParameter parses buf as an EulerParameter constant dataset.
func (a *Almanac) LoadEulerParameter(buf []byte) (*Almanac, error) {
	ds, err := dataset.TryFromBytes[constants.EulerParameter](buf, constants.EulerParameterDecoder)
	if err != nil {
		return nil, anierr.Wrap(err, "almanac.LoadEulerParameter")
	}
	na := a.clone()
	na.eulerParameter = ds
	return na, nil
}

// LoadSpacecraft parses buf as a Spacecraft constant dataset.
func (a *Almanac) LoadSpacecraft(buf []byte) (*Almanac, error) {
	ds, err := dataset.TryFromBytes[constants.Spacecraft](buf, constants.SpacecraftDecoder)
	if err != nil {
		return nil, anierr.Wrap(err, "almanac.LoadSpacecraft")
	}
	na := a.clone()
	na.spacecraft = ds
	return na, nil
}

// LoadLocation parses buf as a Location constant dataset.
func (a *Almanac) LoadLocation(buf []byte) (*Almanac, error) {
	ds, err := dataset.TryFromBytes[constants.Location](buf, constants.LocationDecoder)
	if err != nil {
		return nil, anierr.Wrap(err, "almanac.LoadLocation")
	}
	na := a.clone()
	na.location = ds
	return na, nil
}

// Planetary returns the loaded Planetary dataset, if any.
func (a *Almanac) Planetary() (*dataset.DataSet[constants.Planetary], bool) {
	return a.planetary, a.planetary != nil
}
