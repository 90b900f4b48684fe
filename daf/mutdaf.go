package daf

import (
	"math"

	"github.com/astrokit/anise/anierr"
	"github.com/astrokit/anise/bytesview"
)

func floatBits(v float64) uint64 { return math.Float64bits(v) }

// MutDAF is the edit-path counterpart to DAF: it takes ownership of a
// decoded entry list and the original bytes, and every mutation returns a
// new owned byte buffer rather than editing in place. It is used by the text-PCK→binary
// converter and by maintenance tools; it is never called concurrently with
// queries against the same DAF handle.
type MutDAF[S Summary] struct {
	daf *DAF[S]
}

// NewMutDAF wraps an already-parsed DAF for editing.
func NewMutDAF[S Summary](d *DAF[S]) *MutDAF[S] { return &MutDAF[S]{daf: d} }

// SetNthData splices newPayload into the n-th non-empty summary's slot,
// updates that summary's start/end epoch and index span, and shifts every
// later summary's StartIdx/EndIdx by the signed word-count delta. The
// updated summaries are re-encoded back into the returned buffer's summary
// block bytes, not just the decoded entry list, so re-parsing the result
// sees the edit. Returns a new DAF over a freshly allocated buffer; the
// receiver is left untouched.
func (m *MutDAF[S]) SetNthData(n int, newPayload []float64, newStartET, newEndET float64) (*DAF[S], error) {
	d := m.daf
	idx := -1
	count := -1
	for i, e := range d.entries {
		if isEmptySummary(e.summary) {
			continue
		}
		count++
		if count == n {
			idx = i
			break
		}
	}
	if idx == -1 {
		return nil, &anierr.InvalidIndexError{Idx: n, Kind: "set_nth_data: no such non-empty summary"}
	}

	oldStart, oldEnd := idxOf(d.entries[idx].summary)
	oldWords := int(oldEnd-oldStart) + 1
	newWords := len(newPayload)
	delta := newWords - oldWords

	buf := append([]byte(nil), d.bytes.Bytes()...)

	byteStart := int(oldStart-1) * 8
	byteOldEnd := int(oldEnd) * 8
	newBytes := encodeDoubles(newPayload, d.file.order)

	spliced := make([]byte, 0, len(buf)+delta*8)
	spliced = append(spliced, buf[:byteStart]...)
	spliced = append(spliced, newBytes...)
	spliced = append(spliced, buf[byteOldEnd:]...)

	newEntries := make([]entry[S], len(d.entries))
	copy(newEntries, d.entries)

	newEntries[idx].summary = withSpan(d.entries[idx].summary, newStartET, newEndET, oldStart, oldStart+int32(newWords)-1)

	for i := range newEntries {
		if i == idx || isEmptySummary(newEntries[i].summary) {
			continue
		}
		s, _ := idxOf(newEntries[i].summary)
		if s > oldStart {
			newEntries[i].summary = shiftSpan(newEntries[i].summary, int32(delta))
		}
	}

	summaryBytes := d.file.SummaryDoubles() * 8
	for i := range newEntries {
		if isEmptySummary(newEntries[i].summary) {
			continue
		}
		if i != idx {
			s, _ := idxOf(d.entries[i].summary)
			if s <= oldStart {
				continue // untouched by the shift, bytes already correct
			}
		}
		sumOff := (newEntries[i].blockRecord-1)*RecordLen + 24 + newEntries[i].indexInBlock*summaryBytes
		encodeSummaryInto(spliced[sumOff:sumOff+summaryBytes], newEntries[i].summary, d.file.ND, d.file.order)
	}

	newView := bytesview.New(spliced)
	out := &DAF[S]{bytes: newView, file: d.file, entries: newEntries}
	return out, nil
}

// DeleteNthData clears the n-th non-empty summary's payload bytes, shifts
// later summaries' indices, and rewrites that summary's block so the
// deleted slot is compacted out: every later slot in the same block slides
// down by one, and the vacated trailing slot (in both the summary and name
// records) is zero-padded so the block stays 1024 octets, with the block's
// summary count decremented to match.
func (m *MutDAF[S]) DeleteNthData(n int) (*DAF[S], error) {
	d := m.daf
	idx := -1
	count := -1
	for i, e := range d.entries {
		if isEmptySummary(e.summary) {
			continue
		}
		count++
		if count == n {
			idx = i
			break
		}
	}
	if idx == -1 {
		return nil, &anierr.InvalidIndexError{Idx: n, Kind: "delete_nth_data: no such non-empty summary"}
	}

	deleted := d.entries[idx]
	start, end := idxOf(deleted.summary)
	words := int(end-start) + 1
	byteStart := int(start-1) * 8
	byteEnd := int(end) * 8

	buf := append([]byte(nil), d.bytes.Bytes()...)
	compacted := make([]byte, len(buf)-words*8)
	copy(compacted[:byteStart], buf[:byteStart])
	copy(compacted[byteStart:], buf[byteEnd:])

	summaryBytes := d.file.SummaryDoubles() * 8

	// Surviving entries, with payload-shifted summaries, grouped by the
	// block they live in, in original (pre-delete) slot order.
	type survivor struct {
		origIdx int
		e entry[S]
	}
	byBlock := map[int][]survivor{}
	var blockOrder []int
	for i, e := range d.entries {
		if i == idx {
			continue
		}
		if !isEmptySummary(e.summary) {
			if s, _ := idxOf(e.summary); s > start {
				e.summary = shiftSpan(e.summary, int32(-words))
			}
		}
		if _, ok := byBlock[e.blockRecord]; !ok {
			blockOrder = append(blockOrder, e.blockRecord)
		}
		byBlock[e.blockRecord] = append(byBlock[e.blockRecord], survivor{origIdx: i, e: e})
	}

	finalByOrigIdx := make(map[int]entry[S], len(d.entries)-1)
	for _, blockRec := range blockOrder {
		group := byBlock[blockRec]
		blockOff := (blockRec - 1) * RecordLen
		nameOff := blockOff + RecordLen
		numOff := blockOff + 16
		oldCount := int(decodeFloat(compacted[numOff:numOff+8], d.file.order))

		for slot, sv := range group {
			sv.e.indexInBlock = slot
			sumSlot := compacted[blockOff+24+slot*summaryBytes : blockOff+24+(slot+1)*summaryBytes]
			encodeSummaryInto(sumSlot, sv.e.summary, d.file.ND, d.file.order)
			copy(compacted[nameOff+slot*summaryBytes:nameOff+(slot+1)*summaryBytes], padName(sv.e.name, summaryBytes))
			finalByOrigIdx[sv.origIdx] = sv.e
		}
		for slot := len(group); slot < oldCount; slot++ {
			clearRange(compacted, blockOff+24+slot*summaryBytes, summaryBytes)
			clearRange(compacted, nameOff+slot*summaryBytes, summaryBytes)
		}
		d.file.order.PutUint64(compacted[numOff:numOff+8], floatBits(float64(len(group))))
	}

	newEntries := make([]entry[S], 0, len(d.entries)-1)
	for i := range d.entries {
		if i == idx {
			continue // compacted out
		}
		newEntries = append(newEntries, finalByOrigIdx[i])
	}

	newView := bytesview.New(compacted)
	out := &DAF[S]{bytes: newView, file: d.file, entries: newEntries}
	return out, nil
}

// padName space-pads s to exactly n octets, matching the name record
// encoding decodeName trims back off.
func padName(s string, n int) []byte {
	b := make([]byte, n)
	copy(b, s)
	for i := len(s); i < n; i++ {
		b[i] = ' '
	}
	return b
}

// clearRange zeros n octets of buf starting at off.
func clearRange(buf []byte, off, n int) {
	for i := off; i < off+n; i++ {
		buf[i] = 0
	}
}

func encodeDoubles(vals []float64, order byteOrder) []byte {
	out := make([]byte, len(vals)*8)
	for i, v := range vals {
		order.PutUint64(out[i*8:i*8+8], floatBits(v))
	}
	return out
}

func withSpan[S Summary](s S, startET, endET float64, newStart, newEnd int32) S {
	switch v := any(s).(type) {
	case SpkSummary:
		v.StartET, v.EndET, v.StartIdx, v.EndIdx = startET, endET, newStart, newEnd
		return any(v).(S)
	case BpcSummary:
		v.StartET, v.EndET, v.StartIdx, v.EndIdx = startET, endET, newStart, newEnd
		return any(v).(S)
	default:
		return s
	}
}

func shiftSpan[S Summary](s S, delta int32) S {
	switch v := any(s).(type) {
	case SpkSummary:
		v.StartIdx += delta
		v.EndIdx += delta
		return any(v).(S)
	case BpcSummary:
		v.StartIdx += delta
		v.EndIdx += delta
		return any(v).(S)
	default:
		return s
	}
}
