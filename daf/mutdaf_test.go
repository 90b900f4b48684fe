package daf

import (
	"encoding/binary"
	"math"
	"testing"

	"github.com/astrokit/anise/bytesview"
)

// buildTwoSegmentSpkFile assembles a one-block DAF/SPK file holding two
// contiguous, non-overlapping Type 2 segments, so edits to the first
// segment can be checked for correctly shifting the second one's indices.
func buildTwoSegmentSpkFile(t *testing.T) []byte {
	t.Helper()
	const nd, ni = 2, 6
	summaryDoubles := nd + (ni+1)/2
	summaryBytes := summaryDoubles * 8

	// StartIdx/EndIdx are 1-based word offsets into the whole file: with a
	// one-block layout (file record + summary block + name record, 3072
	// octets = word 384), the payload can't start before word 385.
	seg0 := SpkSummary{StartET: 0, EndET: 100, Target: 299, Center: 10, Frame: 1, DataType: 2, StartIdx: 400, EndIdx: 402}
	seg1 := SpkSummary{StartET: 0, EndET: 100, Target: 399, Center: 10, Frame: 1, DataType: 2, StartIdx: 403, EndIdx: 406}
	payload0 := []float64{1, 2, 3}
	payload1 := []float64{4, 5, 6, 7}

	fr := make([]byte, RecordLen)
	copy(fr[0:8], IdentSPK)
	binary.LittleEndian.PutUint32(fr[8:12], uint32(nd))
	binary.LittleEndian.PutUint32(fr[12:16], uint32(ni))
	copy(fr[16:76], padRight("TEST", 60))
	binary.LittleEndian.PutUint32(fr[76:80], 2)
	binary.LittleEndian.PutUint32(fr[80:84], 2)
	copy(fr[88:96], padRight(endianLittle, 8))
	copy(fr[699:727], padRight("FTPSTR", 28))

	block := make([]byte, RecordLen)
	binary.LittleEndian.PutUint64(block[16:24], math.Float64bits(2)) // count

	writeSummary := func(s SpkSummary, slot int) {
		sb := block[24+slot*summaryBytes : 24+(slot+1)*summaryBytes]
		binary.LittleEndian.PutUint64(sb[0:8], math.Float64bits(s.StartET))
		binary.LittleEndian.PutUint64(sb[8:16], math.Float64bits(s.EndET))
		intOff := nd * 8
		binary.LittleEndian.PutUint32(sb[intOff:intOff+4], uint32(s.Target))
		binary.LittleEndian.PutUint32(sb[intOff+4:intOff+8], uint32(s.Center))
		binary.LittleEndian.PutUint32(sb[intOff+8:intOff+12], uint32(s.Frame))
		binary.LittleEndian.PutUint32(sb[intOff+12:intOff+16], uint32(s.DataType))
		binary.LittleEndian.PutUint32(sb[intOff+16:intOff+20], uint32(s.StartIdx))
		binary.LittleEndian.PutUint32(sb[intOff+20:intOff+24], uint32(s.EndIdx))
	}
	writeSummary(seg0, 0)
	writeSummary(seg1, 1)

	nameRec := make([]byte, RecordLen)
	copy(nameRec[0:summaryBytes], padRight("VENUS BARYCENTER", summaryBytes))
	copy(nameRec[summaryBytes:2*summaryBytes], padRight("EARTH", summaryBytes))

	out := append([]byte{}, fr...)
	out = append(out, block...)
	out = append(out, nameRec...)

	wantStart := (int(seg0.StartIdx) - 1) * 8
	for len(out) < wantStart {
		out = append(out, 0)
	}
	for _, d := range append(append([]float64{}, payload0...), payload1...) {
		b := make([]byte, 8)
		binary.LittleEndian.PutUint64(b, math.Float64bits(d))
		out = append(out, b...)
	}
	return out
}

func TestSetNthDataSplicesBytesAndShiftsFollowingSummary(t *testing.T) {
	raw := buildTwoSegmentSpkFile(t)
	d, err := Parse[SpkSummary](bytesview.New(raw))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	edited, err := NewMutDAF(d).SetNthData(0, []float64{10, 20}, 5, 50)
	if err != nil {
		t.Fatalf("SetNthData: %v", err)
	}

	// Re-parse the returned bytes from scratch: this is the whole point of
	// the edit path, so reads must see it without any help from the old
	// decoded entries.
	reparsed, err := Parse[SpkSummary](edited.Bytes())
	if err != nil {
		t.Fatalf("re-Parse edited bytes: %v", err)
	}

	summaries := reparsed.Summaries()
	if len(summaries) != 2 {
		t.Fatalf("want 2 summaries after edit, got %d", len(summaries))
	}
	if summaries[0].Summary.StartET != 5 || summaries[0].Summary.EndET != 50 {
		t.Errorf("edited summary epochs = (%v,%v), want (5,50)", summaries[0].Summary.StartET, summaries[0].Summary.EndET)
	}

	seg0, err := reparsed.NthData(0)
	if err != nil {
		t.Fatalf("NthData(0): %v", err)
	}
	if len(seg0.Data) != 2 || seg0.Data[0] != 10 || seg0.Data[1] != 20 {
		t.Errorf("NthData(0) = %v, want [10 20]", seg0.Data)
	}

	// seg1's StartIdx/EndIdx must have shifted by the word-count delta
	// (-1), both in the decoded summary and in the re-parsed bytes, so its
	// payload is still readable at its new location.
	if summaries[1].Name != "EARTH" {
		t.Errorf("second summary name = %q, want EARTH", summaries[1].Name)
	}
	seg1, err := reparsed.NthData(1)
	if err != nil {
		t.Fatalf("NthData(1): %v", err)
	}
	want := []float64{4, 5, 6, 7}
	if len(seg1.Data) != len(want) {
		t.Fatalf("NthData(1) len = %d, want %d", len(seg1.Data), len(want))
	}
	for i := range want {
		if seg1.Data[i] != want[i] {
			t.Errorf("NthData(1)[%d] = %v, want %v", i, seg1.Data[i], want[i])
		}
	}
}

func TestDeleteNthDataCompactsSummaryBlock(t *testing.T) {
	raw := buildTwoSegmentSpkFile(t)
	d, err := Parse[SpkSummary](bytesview.New(raw))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	edited, err := NewMutDAF(d).DeleteNthData(0)
	if err != nil {
		t.Fatalf("DeleteNthData: %v", err)
	}

	reparsed, err := Parse[SpkSummary](edited.Bytes())
	if err != nil {
		t.Fatalf("re-Parse edited bytes: %v", err)
	}

	summaries := reparsed.Summaries()
	if len(summaries) != 1 {
		t.Fatalf("want 1 summary after delete, got %d", len(summaries))
	}
	if summaries[0].Name != "EARTH" {
		t.Errorf("surviving summary name = %q, want EARTH", summaries[0].Name)
	}

	seg, err := reparsed.NthData(0)
	if err != nil {
		t.Fatalf("NthData(0): %v", err)
	}
	want := []float64{4, 5, 6, 7}
	if len(seg.Data) != len(want) {
		t.Fatalf("NthData(0) len = %d, want %d", len(seg.Data), len(want))
	}
	for i := range want {
		if seg.Data[i] != want[i] {
			t.Errorf("NthData(0)[%d] = %v, want %v", i, seg.Data[i], want[i])
		}
	}
}
