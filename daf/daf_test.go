package daf

import (
	"encoding/binary"
	"math"
	"testing"

	"github.com/astrokit/anise/bytesview"
)

// buildSpkFile assembles a minimal one-record, one-summary DAF/SPK file
// with a single Type 2 segment whose payload is the given doubles, wired
// up the way a real NAIF file would be (file record -> one summary block
// -> one name record -> payload words appended after the name record).
func buildSpkFile(t *testing.T, summary SpkSummary, name string, payload []float64) []byte {
	t.Helper()
	const nd, ni = 2, 6

	fr := make([]byte, RecordLen)
	copy(fr[0:8], IdentSPK)
	binary.LittleEndian.PutUint32(fr[8:12], uint32(nd))
	binary.LittleEndian.PutUint32(fr[12:16], uint32(ni))
	copy(fr[16:76], padRight("TEST", 60))
	binary.LittleEndian.PutUint32(fr[76:80], 2) // forward: summary block is record 2
	binary.LittleEndian.PutUint32(fr[80:84], 2) // backward
	binary.LittleEndian.PutUint32(fr[84:88], 0) // free addr, unused by the reader
	copy(fr[88:96], padRight(endianLittle, 8))
	copy(fr[699:727], padRight("FTPSTR", 28))

	summaryDoubles := nd + (ni+1)/2
	summaryBytes := summaryDoubles * 8

	block := make([]byte, RecordLen)
	binary.LittleEndian.PutUint64(block[0:8], math.Float64bits(0)) // next
	binary.LittleEndian.PutUint64(block[8:16], math.Float64bits(0)) // prev
	binary.LittleEndian.PutUint64(block[16:24], math.Float64bits(1)) // count

	sb := block[24:24+summaryBytes]
	binary.LittleEndian.PutUint64(sb[0:8], math.Float64bits(summary.StartET))
	binary.LittleEndian.PutUint64(sb[8:16], math.Float64bits(summary.EndET))
	intOff := nd * 8
	binary.LittleEndian.PutUint32(sb[intOff:intOff+4], uint32(summary.Target))
	binary.LittleEndian.PutUint32(sb[intOff+4:intOff+8], uint32(summary.Center))
	binary.LittleEndian.PutUint32(sb[intOff+8:intOff+12], uint32(summary.Frame))
	binary.LittleEndian.PutUint32(sb[intOff+12:intOff+16], uint32(summary.DataType))
	binary.LittleEndian.PutUint32(sb[intOff+16:intOff+20], uint32(summary.StartIdx))
	binary.LittleEndian.PutUint32(sb[intOff+20:intOff+24], uint32(summary.EndIdx))

	nameRec := make([]byte, RecordLen)
	copy(nameRec[0:summaryBytes], padRight(name, summaryBytes))

	out := append([]byte{}, fr...)
	out = append(out, block...)
	out = append(out, nameRec...)

	// StartIdx/EndIdx are 1-based word offsets into the whole file; the
	// payload must begin exactly there.
	wantStart := (int(summary.StartIdx) - 1) * 8
	for len(out) < wantStart {
		out = append(out, 0)
	}
	for _, d := range payload {
		b := make([]byte, 8)
		binary.LittleEndian.PutUint64(b, math.Float64bits(d))
		out = append(out, b...)
	}
	return out
}

func padRight(s string, n int) string {
	b := make([]byte, n)
	copy(b, s)
	for i := len(s); i < n; i++ {
		b[i] = ' '
	}
	return string(b)
}

func TestParseAndNthData(t *testing.T) {
	// Two-record Chebyshev Type 2 payload: each record is midpoint, radius and
	// 2 coefficients per component (x,y,z), followed by the 4-double trailer
	// {init_et, interval, rsize, n_records}.
	rsize := 2*3 + 2
	payload := []float64{
		86400, 86400, 1, 0, 2, 0, 3, 0, // record 0: mid, radius, const coeffs (x=1,y=2,z=3)
		3 * 86400, 86400, 1, 0, 2, 0, 3, 0, // record 1
		0, 2 * 86400, float64(rsize), 2,
	}
	startIdx := int32(1000)
	endIdx := startIdx + int32(len(payload)) - 1
	summary := SpkSummary{StartET: 0, EndET: 4 * 86400, Target: 299, Center: 0, Frame: 1, DataType: 2, StartIdx: startIdx, EndIdx: endIdx}

	raw := buildSpkFile(t, summary, "VENUS BARYCENTER", payload)
	d, err := Parse[SpkSummary](bytesview.New(raw))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	summaries := d.Summaries()
	if len(summaries) != 1 {
		t.Fatalf("want 1 summary, got %d", len(summaries))
	}
	if summaries[0].Name != "VENUS BARYCENTER" {
		t.Errorf("name = %q", summaries[0].Name)
	}

	seg, err := d.NthData(0)
	if err != nil {
		t.Fatalf("NthData: %v", err)
	}
	if len(seg.Data) != len(payload) {
		t.Fatalf("segment data len = %d, want %d", len(seg.Data), len(payload))
	}
	for i := range payload {
		if seg.Data[i] != payload[i] {
			t.Errorf("seg.Data[%d] = %v, want %v", i, seg.Data[i], payload[i])
		}
	}
}

func TestParseRejectsBadIdent(t *testing.T) {
	raw := make([]byte, RecordLen)
	copy(raw[0:8], "NOT/A___")
	_, err := Parse[SpkSummary](bytesview.New(raw))
	if err == nil {
		t.Fatal("expected error for bad ident")
	}
}

func TestSegmentForStaysInBounds(t *testing.T) {
	// StartIdx/EndIdx pointing past the end of the file must error, never
	// panic or silently read garbage.
	summary := SpkSummary{StartET: 0, EndET: 1, Target: 1, Center: 0, Frame: 1, DataType: 2, StartIdx: 1, EndIdx: 1 << 20}
	raw := buildSpkFile(t, summary, "BOGUS", []float64{1, 2, 3, 4})
	d, err := Parse[SpkSummary](bytesview.New(raw))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	_, err = d.NthData(0)
	if err == nil {
		t.Fatal("expected out-of-bounds error from NthData")
	}
}
