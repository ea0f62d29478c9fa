package sysline

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/tberlioz/logseek/internal/block"
	"github.com/tberlioz/logseek/internal/xline"
)

func writeTestLog(t *testing.T, content string) *block.Reader {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.log")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	// a small block size forces syslines to span multiple blocks, exercising
	// the same assembly path a large real file would.
	br, err := block.Open(path, block.MinBlockSz)
	if err != nil {
		t.Fatalf("block.Open: %v", err)
	}
	t.Cleanup(func() { br.Close() })
	return br
}

const sampleLog = "2023-01-01 00:00:01 first message\n" +
	"2023-01-01 00:00:02 second message\n" +
	"  continuation detail\n" +
	"2023-01-01 00:00:05 third message\n"

func TestFindSyslineSequential(t *testing.T) {
	br := writeTestLog(t, sampleLog)
	r := NewReader(br, time.UTC)

	res := r.FindSysline(0)
	if res.Status != xline.StatusFound {
		t.Fatalf("status = %v, want Found", res.Status)
	}
	if res.Sysline.NumLines() != 1 {
		t.Fatalf("NumLines = %d, want 1", res.Sysline.NumLines())
	}
	want := time.Date(2023, 1, 1, 0, 0, 1, 0, time.UTC)
	if !res.Sysline.DT.Equal(want) {
		t.Fatalf("DT = %v, want %v", res.Sysline.DT, want)
	}

	res2 := r.FindSysline(res.Next)
	if res2.Status != xline.StatusFound {
		t.Fatalf("status = %v, want Found", res2.Status)
	}
	if res2.Sysline.NumLines() != 2 {
		t.Fatalf("NumLines = %d, want 2 (second message + continuation)", res2.Sysline.NumLines())
	}

	res3 := r.FindSysline(res2.Next)
	if res3.Status != xline.StatusFoundAtEOF {
		t.Fatalf("status = %v, want FoundAtEOF", res3.Status)
	}
	want3 := time.Date(2023, 1, 1, 0, 0, 5, 0, time.UTC)
	if !res3.Sysline.DT.Equal(want3) {
		t.Fatalf("DT = %v, want %v", res3.Sysline.DT, want3)
	}
}

func TestFindSyslineCacheHit(t *testing.T) {
	br := writeTestLog(t, sampleLog)
	r := NewReader(br, time.UTC)

	first := r.FindSysline(5) // offset inside the first sysline's text
	second := r.FindSysline(5)
	if first.Sysline != second.Sysline {
		t.Fatalf("expected the same *Sysline pointer on a repeated lookup")
	}
}

func TestFindSyslineAtDatetime(t *testing.T) {
	br := writeTestLog(t, sampleLog)
	r := NewReader(br, time.UTC)

	target := time.Date(2023, 1, 1, 0, 0, 3, 0, time.UTC)
	res := r.FindSyslineAtDatetime(target)
	if res.Status == xline.StatusErr {
		t.Fatalf("FindSyslineAtDatetime: %v", res.Err)
	}
	if res.Status == xline.StatusDone {
		t.Fatalf("expected a result for target %v", target)
	}
	want := time.Date(2023, 1, 1, 0, 0, 5, 0, time.UTC)
	if !res.Sysline.DT.Equal(want) {
		t.Fatalf("DT = %v, want %v (earliest sysline at-or-after target)", res.Sysline.DT, want)
	}
}

func TestFindSyslineAtDatetimeBeforeFileStart(t *testing.T) {
	br := writeTestLog(t, sampleLog)
	r := NewReader(br, time.UTC)

	target := time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC)
	res := r.FindSyslineAtDatetime(target)
	want := time.Date(2023, 1, 1, 0, 0, 1, 0, time.UTC)
	if res.Status == xline.StatusErr || res.Status == xline.StatusDone {
		t.Fatalf("expected the first sysline, got status %v err %v", res.Status, res.Err)
	}
	if !res.Sysline.DT.Equal(want) {
		t.Fatalf("DT = %v, want %v", res.Sysline.DT, want)
	}
}

func TestFindSyslineAtDatetimeAfterFileEnd(t *testing.T) {
	br := writeTestLog(t, sampleLog)
	r := NewReader(br, time.UTC)

	target := time.Date(2099, 1, 1, 0, 0, 0, 0, time.UTC)
	res := r.FindSyslineAtDatetime(target)
	if res.Status != xline.StatusDone {
		t.Fatalf("status = %v, want Done", res.Status)
	}
}

func TestFindSyslineBetween(t *testing.T) {
	br := writeTestLog(t, sampleLog)
	r := NewReader(br, time.UTC)

	after := time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC)
	before := time.Date(2023, 1, 1, 0, 0, 3, 0, time.UTC)
	syslines, err := r.FindSyslineBetween(after, before)
	if err != nil {
		t.Fatalf("FindSyslineBetween: %v", err)
	}
	if len(syslines) != 2 {
		t.Fatalf("got %d syslines, want 2", len(syslines))
	}
	want0 := time.Date(2023, 1, 1, 0, 0, 1, 0, time.UTC)
	want1 := time.Date(2023, 1, 1, 0, 0, 2, 0, time.UTC)
	if !syslines[0].DT.Equal(want0) || !syslines[1].DT.Equal(want1) {
		t.Fatalf("got DTs %v, %v; want %v, %v", syslines[0].DT, syslines[1].DT, want0, want1)
	}
}

func TestPatternLearningNarrowsAfterThreshold(t *testing.T) {
	var content string
	for i := 1; i <= int(analysisThreshold)+2; i++ {
		content += "2023-01-01 00:00:0" + string(rune('0'+i%10)) + " message number\n"
	}
	br := writeTestLog(t, content)
	r := NewReader(br, time.UTC)

	fo := block.FileOffset(0)
	for {
		res := r.FindSysline(fo)
		if res.Status == xline.StatusErr {
			t.Fatalf("FindSysline: %v", res.Err)
		}
		if res.Status == xline.StatusFoundAtEOF || res.Status == xline.StatusDone {
			break
		}
		fo = res.Next
	}

	if !r.analyzed {
		t.Fatalf("expected pattern learning to have narrowed after %d syslines", analysisThreshold)
	}
	if len(r.activeIndices) == 0 || len(r.activeIndices) > activeWidth {
		t.Fatalf("activeIndices = %v, want 1..%d entries", r.activeIndices, activeWidth)
	}
}
