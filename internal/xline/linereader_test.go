package xline

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/tberlioz/logseek/internal/block"
)

func openTestFile(t *testing.T, content string, bsz block.BlockSz) *block.Reader {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.log")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	r, err := block.Open(path, bsz)
	if err != nil {
		t.Fatalf("block.Open: %v", err)
	}
	t.Cleanup(func() { r.Close() })
	return r
}

const threeLines = "first line\nsecond line\nthird line\n"

func TestFindLineFromStart(t *testing.T) {
	br := openTestFile(t, threeLines, block.MinBlockSz)
	lr := NewLineReader(br)

	res := lr.FindLine(0)
	if res.Status != StatusFound {
		t.Fatalf("status = %v, want Found", res.Status)
	}
	if got := string(res.Line.AsContiguousBytes()); got != "first line\n" {
		t.Fatalf("line = %q, want %q", got, "first line\n")
	}
	if res.Next != uint64(len("first line\n")) {
		t.Fatalf("next = %d, want %d", res.Next, len("first line\n"))
	}
}

func TestFindLineMidLineReturnsWholeLine(t *testing.T) {
	br := openTestFile(t, threeLines, block.MinBlockSz)
	lr := NewLineReader(br)

	// offset 14 lands inside "second line\n" (which starts at offset 11)
	res := lr.FindLine(14)
	if res.Status != StatusFound {
		t.Fatalf("status = %v, want Found", res.Status)
	}
	if got := string(res.Line.AsContiguousBytes()); got != "second line\n" {
		t.Fatalf("line = %q, want %q", got, "second line\n")
	}
	if res.Line.FileOffsetBegin() != 11 {
		t.Fatalf("FileOffsetBegin = %d, want 11", res.Line.FileOffsetBegin())
	}
}

func TestFindLineLastLineNoTrailingNewline(t *testing.T) {
	content := strings.Repeat("only line, no trailing newline; ", 3)
	br := openTestFile(t, content, block.MinBlockSz)
	lr := NewLineReader(br)

	res := lr.FindLine(0)
	if res.Status != StatusFoundAtEOF {
		t.Fatalf("status = %v, want FoundAtEOF", res.Status)
	}
	if got := string(res.Line.AsContiguousBytes()); got != content {
		t.Fatalf("line = %q, want %q", got, content)
	}
	if res.Line.NumParts() < 2 {
		t.Fatalf("expected the line to span multiple blocks with block size %d, got %d parts", block.MinBlockSz, res.Line.NumParts())
	}
}

func TestFindLinePastEOF(t *testing.T) {
	br := openTestFile(t, threeLines, block.MinBlockSz)
	lr := NewLineReader(br)

	res := lr.FindLine(uint64(len(threeLines)))
	if res.Status != StatusDone {
		t.Fatalf("status = %v, want Done", res.Status)
	}
}

func TestFindLineThirdLineAtEOF(t *testing.T) {
	br := openTestFile(t, threeLines, block.MinBlockSz)
	lr := NewLineReader(br)

	offset := uint64(len("first line\nsecond line\n"))
	res := lr.FindLine(offset)
	if res.Status != StatusFoundAtEOF {
		t.Fatalf("status = %v, want FoundAtEOF", res.Status)
	}
	if got := string(res.Line.AsContiguousBytes()); got != "third line\n" {
		t.Fatalf("line = %q, want %q", got, "third line\n")
	}
}
