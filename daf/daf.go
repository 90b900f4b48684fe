// Package daf implements the NAIF Double-Precision Array File container:
// the file record, the summary-block linked list, name records, and segment
// payload extraction, for both SPK (ephemeris) and BPC (orientation)
// variants.
package daf

import (
	"strings"

	"github.com/astrokit/anise/anierr"
	"github.com/astrokit/anise/bytesview"
)

// Summary is the set of summary record shapes a DAF container can hold.
type Summary interface {
	SpkSummary | BpcSummary
}

func decodeSummary[S Summary](b []byte, nd, ni int, order byteOrder) S {
	var zero S
	switch any(zero).(type) {
	case SpkSummary:
		return any(decodeSpkSummary(b, nd, ni, order)).(S)
	case BpcSummary:
		return any(decodeBpcSummary(b, nd, ni, order)).(S)
	default:
		panic("daf: unknown summary type")
	}
}

// encodeSummaryInto writes s's fields into sb (summaryBytes wide, the same
// slice shape decodeSummary reads from), for splicing an edited summary back
// into a block's bytes.
func encodeSummaryInto[S Summary](sb []byte, s S, nd int, order byteOrder) {
	switch v := any(s).(type) {
	case SpkSummary:
		encodeSpkSummaryInto(sb, v, nd, order)
	case BpcSummary:
		encodeBpcSummaryInto(sb, v, nd, order)
	default:
		panic("daf: unknown summary type")
	}
}

func isEmptySummary[S Summary](s S) bool {
	switch v := any(s).(type) {
	case SpkSummary:
		return v.Empty()
	case BpcSummary:
		return v.Empty()
	default:
		return false
	}
}

func idxOf[S Summary](s S) (start, end int32) {
	switch v := any(s).(type) {
	case SpkSummary:
		return v.StartIdx, v.EndIdx
	case BpcSummary:
		return v.StartIdx, v.EndIdx
	default:
		return 0, 0
	}
}

// entry pairs one decoded summary with its name from the same block's name
// record, plus the physical location (1-based block record number, 0-based
// slot within that block) it was read from, so an edit can be spliced back
// into the exact bytes it came from.
type entry[S Summary] struct {
	name string
	summary S
	blockRecord int
	indexInBlock int
}

// DAF holds a parsed DAF container over a fixed summary shape S (SpkSummary
// or BpcSummary). It never mutates bytes; edits go through MutDAF.
type DAF[S Summary] struct {
	bytes bytesview.ByteView
	file *FileRecord
	entries []entry[S] // all summaries, including empty ones, in file order
}

// Segment is one summary's interpolation payload: the summary itself and
// the slice of the file's flat double array it covers.
type Segment[S Summary] struct {
	Summary S
	Data []float64
}

// Parse validates the file record, walks the summary-block linked list, and
// returns a DAF ready for querying.
func Parse[S Summary](bytes bytesview.ByteView) (*DAF[S], error) {
	frView, err := bytes.Slice(0, RecordLen)
	if err != nil {
		return nil, anierr.Wrap(err, "daf.Parse: slicing file record")
	}
	fr, err := decodeFileRecord(frView)
	if err != nil {
		return nil, anierr.Wrap(err, "daf.Parse: decoding file record")
	}

	d := &DAF[S]{bytes: bytes, file: fr}

	summaryDoubles := fr.SummaryDoubles()
	summaryBytes := summaryDoubles * 8

	recNum := fr.Forward
	for recNum != 0 {
		blockOff := (recNum - 1) * RecordLen
		blockView, err := bytes.Slice(blockOff, blockOff+RecordLen)
		if err != nil {
			return nil, anierr.Wrapf(err, "daf.Parse: slicing summary block at record %d", recNum)
		}
		header := decodeSummaryBlockHeader(blockView, fr.order)

		nameOff := blockOff + RecordLen
		nameView, err := bytes.Slice(nameOff, nameOff+RecordLen)
		if err != nil {
			return nil, anierr.Wrapf(err, "daf.Parse: slicing name record at record %d", recNum+1)
		}
		nb := nameView.Bytes()

		pos := 24 // header occupies the first 3 doubles (24 octets)
		for i := 0; i < header.NumSummaries; i++ {
			sb := blockView.Bytes()[pos:pos+summaryBytes]
			summary := decodeSummary[S](sb, fr.ND, fr.NI, fr.order)

			nameStart := i * summaryBytes
			name := decodeName(nb[nameStart:nameStart+summaryBytes])

			d.entries = append(d.entries, entry[S]{name: name, summary: summary, blockRecord: recNum, indexInBlock: i})
			pos += summaryBytes
		}

		if header.NextRecord == 0 {
			break
		}
		recNum = header.NextRecord
	}

	return d, nil
}

// FileRecord returns the parsed file record.
func (d *DAF[S]) FileRecord() *FileRecord { return d.file }

// CRC32 returns the CRC-32 of the entire underlying byte view.
func (d *DAF[S]) CRC32() uint32 { return d.bytes.CRC32() }

// Bytes returns the byte view the DAF was parsed from.
func (d *DAF[S]) Bytes() bytesview.ByteView { return d.bytes }

// Summaries iterates over all non-empty (summary, name) pairs in file
// order.
func (d *DAF[S]) Summaries() []struct {
	Name string
	Summary S
} {
	out := make([]struct {
		Name string
		Summary S
	}, 0, len(d.entries))
	for _, e := range d.entries {
		if isEmptySummary(e.summary) {
			continue
		}
		out = append(out, struct {
			Name string
			Summary S
		}{Name: e.name, Summary: e.summary})
	}
	return out
}

// NthData locates the n-th non-empty summary (0-based, in file order) and
// returns its payload as a Segment.
func (d *DAF[S]) NthData(n int) (Segment[S], error) {
	count := -1
	for _, e := range d.entries {
		if isEmptySummary(e.summary) {
			continue
		}
		count++
		if count != n {
			continue
		}
		return d.segmentFor(e.summary)
	}
	return Segment[S]{}, &anierr.InvalidIndexError{Idx: n, Kind: "nth_data: no such non-empty summary"}
}

func (d *DAF[S]) segmentFor(s S) (Segment[S], error) {
	start, end := idxOf(s)
	byteStart := int(start-1) * 8
	byteEnd := int(end) * 8
	view, err := d.bytes.Slice(byteStart, byteEnd)
	if err != nil {
		return Segment[S]{}, anierr.Wrap(err, "daf.segmentFor: slicing payload")
	}
	data := decodeDoubles(view.Bytes(), d.file.order)
	return Segment[S]{Summary: s, Data: data}, nil
}

// SegmentFor slices the payload for an already-obtained summary without
// re-scanning the block list; used by callers (e.g. almanac) that hold a
// summary from a previous Summaries() call.
func (d *DAF[S]) SegmentFor(s S) (Segment[S], error) { return d.segmentFor(s) }

func decodeDoubles(b []byte, order byteOrder) []float64 {
	n := len(b) / 8
	out := make([]float64, n)
	for i := 0; i < n; i++ {
		out[i] = decodeFloat(b[i*8:i*8+8], order)
	}
	return out
}

// Comments returns the octets between the file record and the first
// summary block, joined and stripped of the NAIF in-band line terminator
// (\x04), or ("", false) if the region is empty.
func (d *DAF[S]) Comments() (string, bool) {
	start := RecordLen
	end := (d.file.Forward - 1) * RecordLen
	if end <= start {
		return "", false
	}
	view, err := d.bytes.Slice(start, end)
	if err != nil {
		return "", false
	}
	raw := strings.ReplaceAll(string(view.Bytes()), "\x04", "\n")
	raw = strings.Trim(raw, "\x00\n ")
	if raw == "" {
		return "", false
	}
	return raw, true
}

// Len reports the total number of summary slots (including empty ones).
func (d *DAF[S]) Len() int { return len(d.entries) }
