package dataset

import (
	"encoding/binary"
	"hash/crc32"

	"github.com/astrokit/anise/anierr"
)

// Builder accumulates encoded dataset entries and produces a finished
// dataset file on Finalize ("callers append encoded entries
// one at a time to a growing payload, recording (id?, name?, span) in the
// LUT, and the builder computes the CRC on finalize()").
type Builder struct {
	kind Kind
	minor uint8
	patch uint8
	payload []byte
	ids []idEntry
	names []nameEntry
}

type idEntry struct {
	id int32
	start, end int
}

type nameEntry struct {
	name string
	start, end int
}

// NewBuilder starts a builder for a dataset of the given kind.
func NewBuilder(kind Kind, minor, patch uint8) *Builder {
	return &Builder{kind: kind, minor: minor, patch: patch}
}

// Append adds one already-TLV-encoded record to the growing payload,
// indexed by id and/or name. At least one must be non-nil; Append returns
// NoKeyProvidedError when both are nil.
func (b *Builder) Append(id *int32, name *string, encoded []byte) error {
	if id == nil && name == nil {
		return &anierr.NoKeyProvidedError{}
	}
	start := len(b.payload)
	b.payload = append(b.payload, encoded...)
	end := len(b.payload)

	if id != nil {
		b.ids = append(b.ids, idEntry{id: *id, start: start, end: end})
	}
	if name != nil {
		b.names = append(b.names, nameEntry{name: padName(*name), start: start, end: end})
	}
	return nil
}

// padName right-pads a name to the 32-octet bound with spaces, matching
// the on-disk LookUpTable convention.
func padName(name string) string {
	const maxLen = 32
	if len(name) >= maxLen {
		return name[:maxLen]
	}
	for len(name) < maxLen {
		name += " "
	}
	return name
}

// Finalize emits the complete dataset file: header, TLV-encoded LUT, then
// the payload, with the payload CRC-32 written into the header.
func (b *Builder) Finalize() []byte {
	lutBuf := encodeLUT(b.ids, b.names)

	out := make([]byte, 0, 18+len(lutBuf)+len(b.payload))
	out = append(out, []byte(Magic)...)
	out = append(out, SupportedMajor, b.minor, b.patch)
	out = append(out, 0, 0) // reserved, per the header's 5-octet semver span
	out = append(out, byte(b.kind))

	crc := crc32.ChecksumIEEE(b.payload)
	var crcBuf [4]byte
	binary.BigEndian.PutUint32(crcBuf[:], crc)
	out = append(out, crcBuf[:]...)

	out = append(out, lutBuf...)
	out = append(out, b.payload...)
	return out
}

func encodeLUT(ids []idEntry, names []nameEntry) []byte {
	e := NewEncoder()
	e.PutI32(int32(len(ids)))
	for _, ie := range ids {
		e.PutI32(ie.id)
		e.PutI32(int32(ie.start))
		e.PutI32(int32(ie.end))
	}
	e.PutI32(int32(len(names)))
	for _, ne := range names {
		e.PutStr(ne.name)
		e.PutI32(int32(ne.start))
		e.PutI32(int32(ne.end))
	}
	return e.Bytes()
}
