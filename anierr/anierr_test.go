package anierr

import (
	"errors"
	"testing"

	pkgerrors "github.com/pkg/errors"
)

func TestWrapNilIsNil(t *testing.T) {
	if Wrap(nil, "doing something") != nil {
		t.Error("Wrap(nil, ...) must return nil")
	}
	if Wrapf(nil, "doing %s", "something") != nil {
		t.Error("Wrapf(nil, ...) must return nil")
	}
}

func TestWrapPreservesCause(t *testing.T) {
	inner := &NotEnoughSamplesError{Have: 1, Want: 2}
	wrapped := Wrap(inner, "interp.evalLagrangeWindow")
	if wrapped == nil {
		t.Fatal("Wrap(non-nil, ...) must not return nil")
	}

	var target *NotEnoughSamplesError
	if !errors.As(pkgerrors.Cause(wrapped), &target) {
		t.Fatalf("expected errors.As to recover *NotEnoughSamplesError from the wrapped chain, got %v", wrapped)
	}
	if target.Have != 1 || target.Want != 2 {
		t.Errorf("recovered error = %+v, want Have=1 Want=2", target)
	}
}

func TestWrapfFormatsMessage(t *testing.T) {
	wrapped := Wrapf(&GenericError{Msg: "boom"}, "loading %s", "kernel.bsp")
	if wrapped.Error() == "" {
		t.Fatal("expected a non-empty error message")
	}
}

// errorTyper pairs an error instance with a label, so a single table can
// exercise every kind's Error() string without one hand-written case per
// type.
type errorTyper struct {
	name string
	err  error
}

func TestErrorKindsProduceNonEmptyMessages(t *testing.T) {
	cases := []errorTyper{
		{"UnexpectedTagError", &UnexpectedTagError{Want: 0x01, Got: 0x02}},
		{"InvalidMagicError", &InvalidMagicError{Want: "ANISE_K ", Got: "GARBAGE!"}},
		{"MalformedNameError", &MalformedNameError{Reason: "non-printable byte"}},
		{"FileRecordError", &FileRecordError{Kind: BadIdent, Detail: "NOT/A___"}},
		{"InvalidIndexError", &InvalidIndexError{Idx: 7, Kind: "summary"}},
		{"NameError", &NameError{Kind: "lookup", Name: "EARTH"}},
		{"DataBuildError", &DataBuildError{Kind: UnsupportedType, Type: 99}},
		{"OutOfBoundsError", &OutOfBoundsError{EpochET: 10, SpanStart: 0, SpanEnd: 5}},
		{"NotEnoughSamplesError", &NotEnoughSamplesError{Have: 1, Want: 4}},
		{"SubnormalError", &SubnormalError{Reason: "zero Chebyshev radius"}},
		{"UnsupportedDataTypeError", &UnsupportedDataTypeError{DataType: 42}},
		{"ChecksumInvalidError", &ChecksumInvalidError{Expected: 0xdeadbeef, Computed: 0xcafef00d}},
		{"LutConflictError", &LutConflictError{ID: 399, Name: "EARTH"}},
		{"NoKeyProvidedError", &NoKeyProvidedError{}},
		{"TranslationOriginError", &TranslationOriginError{From: 1, To: 2, EpochET: 0}},
		{"NoDataLoadedError", &NoDataLoadedError{Action: "translate"}},
		{"PhysicsError", &PhysicsError{Inner: &FrameMismatchError{LhsToID: 1, RhsFromID: 2}}},
		{"FrameMismatchError", &FrameMismatchError{LhsToID: 1, RhsFromID: 2}},
		{"StructureIsFullError", &StructureIsFullError{MaxSlots: 32}},
		{"GenericError", &GenericError{Msg: "escape hatch"}},
	}
	for _, c := range cases {
		if c.err.Error() == "" {
			t.Errorf("%s.Error() returned an empty string", c.name)
		}
	}
}

func TestPhysicsErrorUnwrapsToInner(t *testing.T) {
	inner := &FrameMismatchError{LhsToID: 1, RhsFromID: 2}
	pe := &PhysicsError{Inner: inner}
	if errors.Unwrap(pe) != inner {
		t.Error("PhysicsError.Unwrap must return the wrapped inner error")
	}
}

func TestFileRecordKindStringer(t *testing.T) {
	cases := map[FileRecordKind]string{
		EmptyRecord:             "EmptyRecord",
		BadIdent:                "BadIdent",
		BadEndian:               "BadEndian",
		FileRecordKind(99):      "Unknown",
	}
	for kind, want := range cases {
		if got := kind.String(); got != want {
			t.Errorf("FileRecordKind(%d).String() = %q, want %q", kind, got, want)
		}
	}
}
