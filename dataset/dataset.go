package dataset

import (
	"encoding/binary"
	"hash/crc32"
	"strings"

	"github.com/astrokit/anise/anierr"
)

// Magic is the 8-octet identification string at the start of every
// constant-dataset file.
const Magic = "ANISE_K "

// SupportedMajor is the semver major version this reader accepts; a file
// with a different major is rejected outright.
const SupportedMajor = 1

// Kind enumerates the four record shapes a dataset payload can hold.
type Kind byte

const (
	KindSpacecraft Kind = iota
	KindPlanetary
	KindEulerParameter
	KindLocation
)

func (k Kind) String() string {
	switch k {
	case KindSpacecraft:
		return "Spacecraft"
	case KindPlanetary:
		return "Planetary"
	case KindEulerParameter:
		return "EulerParameter"
	case KindLocation:
		return "Location"
	default:
		return "Unknown"
	}
}

// Metadata is the fixed 18-octet dataset header.
type Metadata struct {
	Major, Minor, Patch uint8
	Kind Kind
	CRC32 uint32
}

// Entry is a byte span (0-based, end-exclusive) into a dataset's payload.
type Entry struct {
	Start, End int
}

// LookUpTable is the two-way id/name index into a dataset payload
//. Either map may be empty. Builder.Append gives the id and name entries
// of one record the same span; nothing checks span agreement on decode, and
// no code path returns LutConflictError.
type LookUpTable struct {
	ByID map[int32]Entry
	ByName map[string]Entry
}

func newLUT() LookUpTable {
	return LookUpTable{ByID: map[int32]Entry{}, ByName: map[string]Entry{}}
}

// Decoder decodes one dataset record of type T from its raw payload bytes.
type Decoder[T any] interface {
	Decode(b []byte) (T, error)
}

// DataSet holds a parsed constant dataset: header, lookup table, and the
// opaque payload bytes, decoded lazily per entry on lookup.
type DataSet[T any] struct {
	Header Metadata
	Lut LookUpTable
	payload []byte
	decoder Decoder[T]

	// insertOrder preserves the order entries were appended, for
	// reproducible iteration.
	insertOrder []int32
	nameOrder []string
}

// TryFromBytes parses a dataset file: header, magic, semver major check,
// LUT, payload CRC verification.
func TryFromBytes[T any](buf []byte, decoder Decoder[T]) (*DataSet[T], error) {
	if len(buf) < 18 {
		return nil, anierr.Wrap(&anierr.MalformedNameError{Reason: "dataset buffer shorter than header"}, "dataset.TryFromBytes")
	}
	magic := string(buf[0:8])
	if magic != Magic {
		return nil, &anierr.InvalidMagicError{Want: Magic, Got: magic}
	}
	major, minor, patch := buf[8], buf[9], buf[10]
	if major != SupportedMajor {
		return nil, anierr.Wrapf(&anierr.GenericError{Msg: "unsupported dataset semver major"}, "dataset.TryFromBytes: have major=%d, want major=%d", major, SupportedMajor)
	}
	kind := Kind(buf[13])
	expectedCRC := binary.BigEndian.Uint32(buf[14:18])

	rest := buf[18:]
	dec := NewDecoder(rest)
	lut, idOrder, nameOrder, n, err := decodeLUT(dec)
	if err != nil {
		return nil, anierr.Wrap(err, "dataset.TryFromBytes: decoding LUT")
	}
	payload := rest[n:]

	computed := crc32.ChecksumIEEE(payload)
	if computed != expectedCRC {
		return nil, &anierr.ChecksumInvalidError{Expected: expectedCRC, Computed: computed}
	}

	ds := &DataSet[T]{
		Header: Metadata{Major: major, Minor: minor, Patch: patch, Kind: kind, CRC32: expectedCRC},
		Lut: lut,
		payload: payload,
		decoder: decoder,
		insertOrder: idOrder,
		nameOrder: nameOrder,
	}
	return ds, nil
}

// decodeLUT reads two TLV-encoded runs of (key, entry) pairs: the id map
// then the name map, each prefixed by its count ("the LUT is
// itself TLV-encoded: two runs of (key, entry) pairs"). The on-disk
// sequence is also the iteration order IDs()/Names() must preserve, so the
// key order is returned alongside the maps rather than reconstructed later
// by ranging over them.
func decodeLUT(dec *Decoder) (LookUpTable, []int32, []string, int, error) {
	lut := newLUT()
	var idOrder []int32
	var nameOrder []string

	idCount, err := dec.I32()
	if err != nil {
		return lut, nil, nil, 0, err
	}
	for i := int32(0); i < idCount; i++ {
		id, err := dec.I32()
		if err != nil {
			return lut, nil, nil, 0, err
		}
		start, err := dec.I32()
		if err != nil {
			return lut, nil, nil, 0, err
		}
		end, err := dec.I32()
		if err != nil {
			return lut, nil, nil, 0, err
		}
		lut.ByID[id] = Entry{Start: int(start), End: int(end)}
		idOrder = append(idOrder, id)
	}

	nameCount, err := dec.I32()
	if err != nil {
		return lut, nil, nil, 0, err
	}
	for i := int32(0); i < nameCount; i++ {
		name, err := dec.Str()
		if err != nil {
			return lut, nil, nil, 0, err
		}
		start, err := dec.I32()
		if err != nil {
			return lut, nil, nil, 0, err
		}
		end, err := dec.I32()
		if err != nil {
			return lut, nil, nil, 0, err
		}
		trimmed := strings.TrimRight(name, " ")
		lut.ByName[trimmed] = Entry{Start: int(start), End: int(end)}
		nameOrder = append(nameOrder, trimmed)
	}

	return lut, idOrder, nameOrder, len(dec.buf) - dec.Remaining(), nil
}

// GetByID decodes and returns the record stored under id.
func (ds *DataSet[T]) GetByID(id int32) (T, error) {
	var zero T
	e, ok := ds.Lut.ByID[id]
	if !ok {
		return zero, &anierr.InvalidIndexError{Idx: int(id), Kind: "dataset: no such id"}
	}
	return ds.decodeSpan(e)
}

// GetByName decodes and returns the record stored under name, trimming
// trailing spaces before comparing.
func (ds *DataSet[T]) GetByName(name string) (T, error) {
	var zero T
	e, ok := ds.Lut.ByName[strings.TrimRight(name, " ")]
	if !ok {
		return zero, &anierr.NameError{Kind: "dataset", Name: name}
	}
	return ds.decodeSpan(e)
}

func (ds *DataSet[T]) decodeSpan(e Entry) (T, error) {
	var zero T
	if e.Start < 0 || e.End > len(ds.payload) || e.Start > e.End {
		return zero, &anierr.InvalidIndexError{Idx: e.Start, Kind: "dataset: entry span out of range"}
	}
	return ds.decoder.Decode(ds.payload[e.Start:e.End])
}

// IDs returns the ids present in the dataset, in insertion order.
func (ds *DataSet[T]) IDs() []int32 { return ds.insertOrder }

// Names returns the names present in the dataset, in insertion order.
func (ds *DataSet[T]) Names() []string { return ds.nameOrder }
