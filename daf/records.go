package daf

import (
	"encoding/binary"
	"math"
	"strings"

	"github.com/astrokit/anise/anierr"
	"github.com/astrokit/anise/bytesview"
)

// RecordLen is the fixed size, in octets, of every DAF record (file record,
// summary block, name record).
const RecordLen = 1024

// Identification strings recognized in a DAF file record's first 8 octets.
const (
	IdentSPK = "DAF/SPK "
	IdentPCK = "DAF/PCK "
)

const (
	endianLittle = "LTL-IEEE"
	endianBig = "BIG-IEEE"
)

// byteOrder abstracts the two endiannesses a DAF file can declare.
type byteOrder = binary.ByteOrder

// hostOrder is the byte order assumed for this process. Nothing in the
// package reads it: every decode goes field by field through the file's
// declared byte order, with no in-place reinterpretation path.
var hostOrder byteOrder = binary.LittleEndian

// FileRecord is the first 1024-octet record of a DAF file. All offsets below are 0-based; the file's own 1-based conventions
// are converted internally.
type FileRecord struct {
	IDWord string // 8 octets, e.g. "DAF/SPK "
	ND int // doubles per summary
	NI int // integers per summary
	InternalFilename string // 60 octets, trimmed
	Forward int // 1-based record index of first summary block
	Backward int // 1-based record index of last summary block
	FreeAddr int // next free octet offset (1-based word index)
	EndianStr string // "LTL-IEEE" or "BIG-IEEE"
	FTPStr string // FTP validation string, trimmed

	// order is the byte order this file's multi-byte fields are encoded in,
	// resolved from EndianStr; used by every subsequent record decode.
	order byteOrder
}

// SummaryDoubles is the number of 8-byte doubles one summary occupies:
// ND doubles plus ceil(NI/2) doubles of packed 4-byte integers.
func (fr *FileRecord) SummaryDoubles() int { return fr.ND + (fr.NI+1)/2 }

// decodeFileRecord parses the file record at the start of buf, validating
// identification and endianness.
func decodeFileRecord(buf bytesview.ByteView) (*FileRecord, error) {
	if buf.Len() < RecordLen {
		return nil, &anierr.InvalidIndexError{Idx: 0, Kind: "file record truncated"}
	}
	b := buf.Bytes()

	idWord := string(b[0:8])
	switch idWord {
	case IdentSPK, IdentPCK:
	default:
		return nil, &anierr.FileRecordError{Kind: anierr.BadIdent, Detail: idWord}
	}

	allZero := true
	for _, c := range b[0:RecordLen] {
		if c != 0 {
			allZero = false
			break
		}
	}
	if allZero {
		return nil, &anierr.FileRecordError{Kind: anierr.EmptyRecord, Detail: "file record is all zeros"}
	}

	endianStr := string(b[88:96])
	var order byteOrder
	switch strings.TrimRight(endianStr, " \x00") {
	case endianLittle:
		order = binary.LittleEndian
	case endianBig:
		order = binary.BigEndian
	default:
		return nil, &anierr.FileRecordError{Kind: anierr.BadEndian, Detail: endianStr}
	}

	fr := &FileRecord{
		IDWord: idWord,
		ND: int(order.Uint32(b[8:12])),
		NI: int(order.Uint32(b[12:16])),
		InternalFilename: trimPadded(b[16:76]),
		Forward: int(order.Uint32(b[76:80])),
		Backward: int(order.Uint32(b[80:84])),
		FreeAddr: int(order.Uint32(b[84:88])),
		EndianStr: strings.TrimRight(endianStr, " \x00"),
		FTPStr: trimPadded(b[699:727]),
		order: order,
	}
	if fr.Forward < 1 {
		return nil, &anierr.FileRecordError{Kind: anierr.BadIdent, Detail: "forward pointer < 1"}
	}
	if !isPrintable(fr.InternalFilename) {
		return nil, &anierr.MalformedNameError{Reason: "internal filename contains non-printable bytes"}
	}
	return fr, nil
}

func trimPadded(b []byte) string {
	return strings.TrimRight(string(b), " \x00")
}

func isPrintable(s string) bool {
	for _, r := range s {
		if r < 0x20 || r > 0x7e {
			return false
		}
	}
	return true
}

// summaryBlockHeader is the three-double header of a summary block: the
// next/previous block record numbers (stored as doubles, truncated to int)
// and the count of summaries packed into this block.
type summaryBlockHeader struct {
	NextRecord int
	PrevRecord int
	NumSummaries int
}

func decodeSummaryBlockHeader(buf bytesview.ByteView, order byteOrder) summaryBlockHeader {
	b := buf.Bytes()
	return summaryBlockHeader{
		NextRecord: int(decodeFloat(b[0:8], order)),
		PrevRecord: int(decodeFloat(b[8:16], order)),
		NumSummaries: int(decodeFloat(b[16:24], order)),
	}
}

// decodeFloat decodes one IEEE-754 binary64 in the given byte order. On the
// (only) order this module ever sees at runtime that also matches the host,
// this reduces to a single native load; the explicit order parameter is
// what lets the same call serve the cross-endian fallback path.
func decodeFloat(b []byte, order byteOrder) float64 {
	return math.Float64frombits(order.Uint64(b))
}

func decodeInt32(b []byte, order byteOrder) int32 {
	return int32(order.Uint32(b))
}

// SpkSummary is one SPK segment descriptor.
type SpkSummary struct {
	StartET float64 // seconds past J2000 TDB
	EndET float64
	Target int32
	Center int32
	Frame int32
	DataType int32
	StartIdx int32 // 1-based index into the file's flat double array
	EndIdx int32
}

// Empty reports whether every field of the summary is its zero value,
// meaning this slot is an unused hole in the summary block.
func (s SpkSummary) Empty() bool {
	return s == SpkSummary{}
}

// SupportedSpkTypes lists the SPK data types this module can evaluate:
// {2,3,8,9,12,13}. NAIF defines data_type ∈ {1,2,3,5,8,9,12,13,14,15,17,
// 18,19,20,21}; the rest are rejected as unsupported.
var SupportedSpkTypes = map[int32]bool{2: true, 3: true, 8: true, 9: true, 12: true, 13: true}

func decodeSpkSummary(b []byte, nd, ni int, order byteOrder) SpkSummary {
	intOff := nd * 8
	return SpkSummary{
		StartET: decodeFloat(b[0:8], order),
		EndET: decodeFloat(b[8:16], order),
		Target: decodeInt32(b[intOff:intOff+4], order),
		Center: decodeInt32(b[intOff+4:intOff+8], order),
		Frame: decodeInt32(b[intOff+8:intOff+12], order),
		DataType: decodeInt32(b[intOff+12:intOff+16], order),
		StartIdx: decodeInt32(b[intOff+16:intOff+20], order),
		EndIdx: decodeInt32(b[intOff+20:intOff+24], order),
	}
}

// encodeSpkSummaryInto writes s's fields into sb (a summaryBytes-wide slice
// of the summary block), mirroring decodeSpkSummary's layout exactly.
func encodeSpkSummaryInto(sb []byte, s SpkSummary, nd int, order byteOrder) {
	order.PutUint64(sb[0:8], math.Float64bits(s.StartET))
	order.PutUint64(sb[8:16], math.Float64bits(s.EndET))
	intOff := nd * 8
	order.PutUint32(sb[intOff:intOff+4], uint32(s.Target))
	order.PutUint32(sb[intOff+4:intOff+8], uint32(s.Center))
	order.PutUint32(sb[intOff+8:intOff+12], uint32(s.Frame))
	order.PutUint32(sb[intOff+12:intOff+16], uint32(s.DataType))
	order.PutUint32(sb[intOff+16:intOff+20], uint32(s.StartIdx))
	order.PutUint32(sb[intOff+20:intOff+24], uint32(s.EndIdx))
}

// BpcSummary is one binary-PCK (orientation) segment descriptor.
type BpcSummary struct {
	StartET float64
	EndET float64
	Frame int32
	InertialFrame int32
	DataType int32
	StartIdx int32
	EndIdx int32
	Unused int32
}

func (s BpcSummary) Empty() bool { return s == BpcSummary{} }

func decodeBpcSummary(b []byte, nd, ni int, order byteOrder) BpcSummary {
	intOff := nd * 8
	return BpcSummary{
		StartET: decodeFloat(b[0:8], order),
		EndET: decodeFloat(b[8:16], order),
		Frame: decodeInt32(b[intOff:intOff+4], order),
		InertialFrame: decodeInt32(b[intOff+4:intOff+8], order),
		DataType: decodeInt32(b[intOff+8:intOff+12], order),
		StartIdx: decodeInt32(b[intOff+12:intOff+16], order),
		EndIdx: decodeInt32(b[intOff+16:intOff+20], order),
		Unused: decodeInt32(b[intOff+20:intOff+24], order),
	}
}

// encodeBpcSummaryInto writes s's fields into sb, mirroring
// decodeBpcSummary's layout exactly.
func encodeBpcSummaryInto(sb []byte, s BpcSummary, nd int, order byteOrder) {
	order.PutUint64(sb[0:8], math.Float64bits(s.StartET))
	order.PutUint64(sb[8:16], math.Float64bits(s.EndET))
	intOff := nd * 8
	order.PutUint32(sb[intOff:intOff+4], uint32(s.Frame))
	order.PutUint32(sb[intOff+4:intOff+8], uint32(s.InertialFrame))
	order.PutUint32(sb[intOff+8:intOff+12], uint32(s.DataType))
	order.PutUint32(sb[intOff+12:intOff+16], uint32(s.StartIdx))
	order.PutUint32(sb[intOff+16:intOff+20], uint32(s.EndIdx))
	order.PutUint32(sb[intOff+20:intOff+24], uint32(s.Unused))
}

// decodeName reads one fixed-width, space-padded name from a name record.
func decodeName(b []byte) string {
	return strings.TrimRight(string(b), " \x00")
}
