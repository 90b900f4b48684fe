// Package bytesview provides an immutable, cheaply sub-sliceable byte buffer
// used everywhere kernel bytes flow: the DAF container, the interpolation
// evaluators, and the constant-dataset loader all borrow from one buffer
// instead of copying the file.
package bytesview

import (
	"hash/crc32"
	"sync"

	"github.com/pkg/errors"
)

// ByteView is an immutable view over a byte sequence. Multiple views can
// share the same backing array; slicing never copies. The zero value is not
// valid — use New or a View's Slice method.
type ByteView struct {
	buf []byte // shared backing array; never mutated after New/Owned
	start int
	end int

	// crc lazily caches the CRC-32 of the *entire* backing buffer (not just
	// this view's range), computed once and shared across all views derived
	// from the same buffer.
	crc *crcCache
}

type crcCache struct {
	once sync.Once
	sum uint32
}

// New wraps buf as a ByteView covering its full range. buf is taken by
// reference: the caller must not mutate it afterward.
func New(buf []byte) ByteView {
	return ByteView{buf: buf, start: 0, end: len(buf), crc: &crcCache{}}
}

// Len reports the number of octets in this view.
func (v ByteView) Len() int { return v.end - v.start }

// Bytes returns the view's octets. The returned slice aliases the shared
// backing array and must not be mutated.
func (v ByteView) Bytes() []byte { return v.buf[v.start:v.end] }

// InaccessibleBytesError is returned by Slice/At when the requested range is
// out of bounds.
type InaccessibleBytesError struct {
	Start, End, Size int
}

func (e *InaccessibleBytesError) Error() string {
	return errors.Errorf("inaccessible bytes: requested [%d:%d), view size %d", e.Start, e.End, e.Size).Error()
}

// Slice returns a sub-view covering [start, end) relative to this view.
// Bounds-checked: returns InaccessibleBytesError on overrun.
func (v ByteView) Slice(start, end int) (ByteView, error) {
	if start < 0 || end < start || end > v.Len() {
		return ByteView{}, &InaccessibleBytesError{Start: start, End: end, Size: v.Len()}
	}
	return ByteView{buf: v.buf, start: v.start + start, end: v.start + end, crc: v.crc}, nil
}

// MustSlice is like Slice but panics on error; reserved for call sites that
// have already validated the range (e.g. against a summary computed from
// the same file's own length).
func (v ByteView) MustSlice(start, end int) ByteView {
	sv, err := v.Slice(start, end)
	if err != nil {
		panic(err)
	}
	return sv
}

// At returns the single octet at index i relative to this view.
func (v ByteView) At(i int) (byte, error) {
	if i < 0 || i >= v.Len() {
		return 0, &InaccessibleBytesError{Start: i, End: i + 1, Size: v.Len()}
	}
	return v.buf[v.start+i], nil
}

// CRC32 returns the CRC-32 (IEEE polynomial) of the view's full backing
// buffer, computed once and cached; every view sliced from the same New()
// call shares the result, matching DAF's "one CRC per file" semantics.
func (v ByteView) CRC32() uint32 {
	v.crc.once.Do(func() {
		v.crc.sum = crc32.ChecksumIEEE(v.buf)
	})
	return v.crc.sum
}

// CRC32Range computes the CRC-32 of just this view's range, uncached. Used
// by the constant-dataset loader, which checksums only the payload region
// rather than the whole file.
func (v ByteView) CRC32Range() uint32 {
	return crc32.ChecksumIEEE(v.Bytes())
}

// Owned returns a new ByteView backed by a freshly allocated copy of b. Edit paths (MutDAF, dataset builders) use this to produce a
// new buffer rather than mutating a shared one in place.
func Owned(b []byte) ByteView {
	cp := make([]byte, len(b))
	copy(cp, b)
	return New(cp)
}
