// Package dataset implements the constant-dataset binary format: a fixed
// header, a two-way lookup table, and a canonically-ordered TLV
// (tag-length-value) payload encoding, with CRC-32 integrity checking.
// Fields are still read at fixed offsets via encoding/binary, extended
// here with explicit tags since the dataset format, unlike DAF, commits
// to a self-describing wire encoding.
package dataset

import (
	"encoding/binary"
	"math"

	"github.com/astrokit/anise/anierr"
)

// Tag identifies the primitive type of one TLV field.
type Tag byte

const (
	TagI32 Tag = 0x01
	TagF64 Tag = 0x02
	TagStr Tag = 0x03
	TagBool Tag = 0x04
	TagBytes Tag = 0x05
)

// Encoder accumulates a canonical TLV byte sequence. Fields must be
// appended in the declared order of the record being encoded — the order
// is part of the wire contract since it feeds the payload CRC.
type Encoder struct {
	buf []byte
}

func NewEncoder() *Encoder { return &Encoder{} }

func (e *Encoder) Bytes() []byte { return e.buf }

func (e *Encoder) putTagLen(tag Tag, length int) {
	e.buf = append(e.buf, byte(tag))
	var lenBuf [4]byte
	binary.BigEndian.PutUint32(lenBuf[:], uint32(length))
	e.buf = append(e.buf, lenBuf[:]...)
}

func (e *Encoder) PutI32(v int32) {
	e.putTagLen(TagI32, 4)
	var b [4]byte
	binary.BigEndian.PutUint32(b[:], uint32(v))
	e.buf = append(e.buf, b[:]...)
}

func (e *Encoder) PutF64(v float64) {
	e.putTagLen(TagF64, 8)
	var b [8]byte
	binary.BigEndian.PutUint64(b[:], math.Float64bits(v))
	e.buf = append(e.buf, b[:]...)
}

func (e *Encoder) PutStr(v string) {
	e.putTagLen(TagStr, len(v))
	e.buf = append(e.buf, []byte(v)...)
}

func (e *Encoder) PutBool(v bool) {
	e.putTagLen(TagBool, 1)
	if v {
		e.buf = append(e.buf, 1)
	} else {
		e.buf = append(e.buf, 0)
	}
}

func (e *Encoder) PutBytes(v []byte) {
	e.putTagLen(TagBytes, len(v))
	e.buf = append(e.buf, v...)
}

// Decoder reads a canonical TLV byte sequence field by field, in the same
// declared order it was written.
type Decoder struct {
	buf []byte
	pos int
}

func NewDecoder(buf []byte) *Decoder { return &Decoder{buf: buf} }

func (d *Decoder) readHeader(want Tag) (length int, err error) {
	if d.pos+5 > len(d.buf) {
		return 0, &anierr.MalformedNameError{Reason: "TLV header truncated"}
	}
	got := Tag(d.buf[d.pos])
	if got != want {
		return 0, &anierr.UnexpectedTagError{Want: byte(want), Got: byte(got)}
	}
	length = int(binary.BigEndian.Uint32(d.buf[d.pos+1:d.pos+5]))
	d.pos += 5
	return length, nil
}

func (d *Decoder) I32() (int32, error) {
	n, err := d.readHeader(TagI32)
	if err != nil {
		return 0, err
	}
	if d.pos+n > len(d.buf) {
		return 0, &anierr.MalformedNameError{Reason: "TLV i32 value truncated"}
	}
	v := int32(binary.BigEndian.Uint32(d.buf[d.pos:d.pos+n]))
	d.pos += n
	return v, nil
}

func (d *Decoder) F64() (float64, error) {
	n, err := d.readHeader(TagF64)
	if err != nil {
		return 0, err
	}
	if d.pos+n > len(d.buf) {
		return 0, &anierr.MalformedNameError{Reason: "TLV f64 value truncated"}
	}
	v := math.Float64frombits(binary.BigEndian.Uint64(d.buf[d.pos:d.pos+n]))
	d.pos += n
	return v, nil
}

func (d *Decoder) Str() (string, error) {
	n, err := d.readHeader(TagStr)
	if err != nil {
		return "", err
	}
	if d.pos+n > len(d.buf) {
		return "", &anierr.MalformedNameError{Reason: "TLV string value truncated"}
	}
	v := string(d.buf[d.pos:d.pos+n])
	d.pos += n
	return v, nil
}

func (d *Decoder) Bool() (bool, error) {
	n, err := d.readHeader(TagBool)
	if err != nil {
		return false, err
	}
	if d.pos+n > len(d.buf) || n != 1 {
		return false, &anierr.MalformedNameError{Reason: "TLV bool value truncated"}
	}
	v := d.buf[d.pos] != 0
	d.pos += n
	return v, nil
}

func (d *Decoder) Bytes() ([]byte, error) {
	n, err := d.readHeader(TagBytes)
	if err != nil {
		return nil, err
	}
	if d.pos+n > len(d.buf) {
		return nil, &anierr.MalformedNameError{Reason: "TLV bytes value truncated"}
	}
	v := d.buf[d.pos:d.pos+n]
	d.pos += n
	return v, nil
}

// Remaining reports how many bytes are left unconsumed.
func (d *Decoder) Remaining() int { return len(d.buf) - d.pos }
