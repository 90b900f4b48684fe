// Package anierr holds the structured error kinds shared across the DAF,
// interpolation, dataset, and almanac layers. Each kind is a
// concrete exported type so callers can type-switch after unwrapping with
// errors.Cause (github.com/pkg/errors); nothing is a bare sentinel string.
//
// Every layer wraps the narrow error it returns with an action-context
// string as it propagates upward; Wrap
// and Wrapf are thin aliases over pkg/errors so call sites read the same
// way across every package in this module.
package anierr

import "github.com/pkg/errors"

// Wrap attaches an action-context message to err, or returns nil if err is
// nil. The original error remains recoverable via errors.Cause.
func Wrap(err error, action string) error {
	if err == nil {
		return nil
	}
	return errors.Wrap(err, action)
}

// Wrapf is Wrap with a formatted action-context message.
func Wrapf(err error, format string, args ...any) error {
	if err == nil {
		return nil
	}
	return errors.Wrapf(err, format, args...)
}

// --- Decoding ---

// UnexpectedTagError is returned when a TLV field's tag byte does not match
// the decoder's expectation.
type UnexpectedTagError struct {
	Want, Got byte
}

func (e *UnexpectedTagError) Error() string {
	return errors.Errorf("unexpected tag: want %#x, got %#x", e.Want, e.Got).Error()
}

// InvalidMagicError is returned when a file's magic bytes don't match the
// expected constant (DAF identification, dataset magic).
type InvalidMagicError struct {
	Want, Got string
}

func (e *InvalidMagicError) Error() string {
	return errors.Errorf("invalid magic: want %q, got %q", e.Want, e.Got).Error()
}

// MalformedNameError is returned when a fixed-width name field fails to
// decode (non-printable bytes, or exceeds its bound).
type MalformedNameError struct {
	Reason string
}

func (e *MalformedNameError) Error() string {
	return errors.Errorf("malformed name: %s", e.Reason).Error()
}

// --- DAF ---

// FileRecordKind enumerates the ways a DAF file record can fail validation.
type FileRecordKind int

const (
	EmptyRecord FileRecordKind = iota
	BadIdent
	BadEndian
)

func (k FileRecordKind) String() string {
	switch k {
	case EmptyRecord:
		return "EmptyRecord"
	case BadIdent:
		return "BadIdent"
	case BadEndian:
		return "BadEndian"
	default:
		return "Unknown"
	}
}

// FileRecordError reports a problem in the 1024-octet DAF file record.
type FileRecordError struct {
	Kind FileRecordKind
	Detail string
}

func (e *FileRecordError) Error() string {
	return errors.Errorf("file record: %s: %s", e.Kind, e.Detail).Error()
}

// InvalidIndexError is returned for out-of-range summary/name/record
// indices.
type InvalidIndexError struct {
	Idx int
	Kind string
}

func (e *InvalidIndexError) Error() string {
	return errors.Errorf("invalid index %d (%s)", e.Idx, e.Kind).Error()
}

// NameError is returned when a name lookup in a DAF name record fails.
type NameError struct {
	Kind string
	Name string
}

func (e *NameError) Error() string {
	return errors.Errorf("name error (%s): %q", e.Kind, e.Name).Error()
}

// DataBuildErrorKind enumerates why constructing a segment from raw doubles
// failed.
type DataBuildErrorKind int

const (
	UnsupportedType DataBuildErrorKind = iota
	TruncatedPayload
)

// DataBuildError is returned when a segment's payload cannot be interpreted
// as the data type its summary declares.
type DataBuildError struct {
	Kind DataBuildErrorKind
	Type int
}

func (e *DataBuildError) Error() string {
	return errors.Errorf("data build error: kind=%d type=%d", e.Kind, e.Type).Error()
}

// --- Interpolation ---

// OutOfBoundsError is returned when a query epoch falls outside a segment's
// (or window's) covered span by more than 1 ns.
type OutOfBoundsError struct {
	EpochET float64
	SpanStart float64
	SpanEnd float64
}

func (e *OutOfBoundsError) Error() string {
	return errors.Errorf("epoch %.9f ET out of bounds [%.9f, %.9f]", e.EpochET, e.SpanStart, e.SpanEnd).Error()
}

// NotEnoughSamplesError is returned when an interpolation window cannot be
// formed (e.g. fewer samples than the requested degree + 1).
type NotEnoughSamplesError struct {
	Have, Want int
}

func (e *NotEnoughSamplesError) Error() string {
	return errors.Errorf("not enough samples: have %d, want %d", e.Have, e.Want).Error()
}

// SubnormalError is returned when an evaluator would divide by (near) zero,
// e.g. a zero Chebyshev radius or a zero Hermite time delta.
type SubnormalError struct {
	Reason string
}

func (e *SubnormalError) Error() string {
	return errors.Errorf("subnormal: %s", e.Reason).Error()
}

// UnsupportedDataTypeError is returned when a segment's SPK/BPC data type is
// not one of the types this evaluator set implements.
type UnsupportedDataTypeError struct {
	DataType int
}

func (e *UnsupportedDataTypeError) Error() string {
	return errors.Errorf("unsupported data type %d", e.DataType).Error()
}

// --- DataSet ---

// ChecksumInvalidError is returned when a constant dataset's payload CRC-32
// does not match the header's recorded value.
type ChecksumInvalidError struct {
	Expected, Computed uint32
}

func (e *ChecksumInvalidError) Error() string {
	return errors.Errorf("checksum invalid: expected %#08x, computed %#08x", e.Expected, e.Computed).Error()
}

// LutConflictError is returned when the id-map and name-map entries for the
// same logical record disagree on their byte span.
type LutConflictError struct {
	ID int32
	Name string
}

func (e *LutConflictError) Error() string {
	return errors.Errorf("lookup table conflict for id=%d name=%q", e.ID, e.Name).Error()
}

// NoKeyProvidedError is returned when a dataset builder entry has neither an
// id nor a name to index it by.
type NoKeyProvidedError struct{}

func (e *NoKeyProvidedError) Error() string { return "no id or name provided for dataset entry" }

// --- Ephemeris / Orientation ---

// TranslationOriginError is returned when no common root can be found
// between two frames at a given epoch.
type TranslationOriginError struct {
	From, To int32
	EpochET float64
}

func (e *TranslationOriginError) Error() string {
	return errors.Errorf("no translation path from %d to %d at epoch %.6f ET", e.From, e.To, e.EpochET).Error()
}

// NoDataLoadedError is returned when an Almanac has no SPK/BPC/dataset
// loaded that could possibly answer a query.
type NoDataLoadedError struct {
	Action string
}

func (e *NoDataLoadedError) Error() string {
	return errors.Errorf("no data loaded for: %s", e.Action).Error()
}

// PhysicsError wraps a lower-level math-kernel error (e.g. a FrameMismatch
// from an illegal quaternion/DCM composition) with ephemeris/orientation
// context.
type PhysicsError struct {
	Inner error
}

func (e *PhysicsError) Error() string { return errors.Errorf("physics error: %v", e.Inner).Error() }
func (e *PhysicsError) Unwrap() error { return e.Inner }

// FrameMismatchError is returned when composing two rotations whose
// from/to frame ids don't line up.
type FrameMismatchError struct {
	LhsToID, RhsFromID int32
}

func (e *FrameMismatchError) Error() string {
	return errors.Errorf("frame mismatch: lhs.to_id=%d != rhs.from_id=%d", e.LhsToID, e.RhsFromID).Error()
}

// --- Almanac ---

// StructureIsFullError is returned when a bounded ordered map (e.g. loaded
// SPKs) is already at its compile-time maximum.
type StructureIsFullError struct {
	MaxSlots int
}

func (e *StructureIsFullError) Error() string {
	return errors.Errorf("structure is full: max %d slots", e.MaxSlots).Error()
}

// GenericError is an escape hatch for conditions not otherwise modeled.
type GenericError struct {
	Msg string
}

func (e *GenericError) Error() string { return e.Msg }
