package xline

import (
	"testing"

	"github.com/tberlioz/logseek/internal/block"
)

func newTestBlock(data string) *block.Block {
	return block.NewBlockForTest([]byte(data))
}

func TestLineSinglePart(t *testing.T) {
	blk := newTestBlock("hello world\n")
	lp, err := NewLinePart(0, 12, blk, 0, 0, 64)
	if err != nil {
		t.Fatalf("NewLinePart: %v", err)
	}
	line := NewLine()
	if err := line.Append(lp); err != nil {
		t.Fatalf("Append: %v", err)
	}

	if line.Len() != 12 {
		t.Errorf("Len() = %d, want 12", line.Len())
	}
	if line.NumParts() != 1 {
		t.Errorf("NumParts() = %d, want 1", line.NumParts())
	}
	if !line.Contains('w') {
		t.Errorf("Contains('w') = false, want true")
	}
	if line.Contains('z') {
		t.Errorf("Contains('z') = true, want false")
	}
	if string(line.AsContiguousBytes()) != "hello world\n" {
		t.Errorf("AsContiguousBytes = %q", line.AsContiguousBytes())
	}
}

func TestLineMultiPartBoxedSlices(t *testing.T) {
	blkA := newTestBlock("0123456789abcdef")
	blkB := newTestBlock("ghijklmnopqrstuv")

	lpA, err := NewLinePart(4, 16, blkA, 4, 0, 16)
	if err != nil {
		t.Fatalf("NewLinePart A: %v", err)
	}
	lpB, err := NewLinePart(0, 8, blkB, 16, 1, 16)
	if err != nil {
		t.Fatalf("NewLinePart B: %v", err)
	}

	line := NewLine()
	if err := line.Append(lpA); err != nil {
		t.Fatalf("Append A: %v", err)
	}
	if err := line.Append(lpB); err != nil {
		t.Fatalf("Append B: %v", err)
	}

	if line.Len() != 20 {
		t.Fatalf("Len() = %d, want 20", line.Len())
	}
	if line.NumParts() != 2 {
		t.Fatalf("NumParts() = %d, want 2", line.NumParts())
	}
	if string(line.AsContiguousBytes()) != "456789abcdefghijklmn" {
		t.Fatalf("AsContiguousBytes = %q", line.AsContiguousBytes())
	}

	// a boxed-slice range that straddles both parts
	slices, err := line.GetBoxedSlices(2, 14)
	if err != nil {
		t.Fatalf("GetBoxedSlices: %v", err)
	}
	if len(slices) != 2 {
		t.Fatalf("got %d slices, want 2", len(slices))
	}
	var joined []byte
	for _, s := range slices {
		joined = append(joined, s...)
	}
	if string(joined) != "6789abcdefgh" {
		t.Fatalf("joined = %q, want %q", joined, "6789abcdefgh")
	}

	// a range entirely within the first part
	single, err := line.GetBoxedSlices(0, 3)
	if err != nil {
		t.Fatalf("GetBoxedSlices: %v", err)
	}
	if len(single) != 1 || string(single[0]) != "456" {
		t.Fatalf("got %v, want single slice %q", single, "456")
	}
}

func TestLineAppendRejectsOutOfOrder(t *testing.T) {
	blk := newTestBlock("0123456789abcdef")
	lpA, _ := NewLinePart(4, 8, blk, 4, 0, 16)
	lpB, _ := NewLinePart(0, 4, blk, 0, 0, 16)

	line := NewLine()
	if err := line.Append(lpA); err != nil {
		t.Fatalf("Append A: %v", err)
	}
	if err := line.Append(lpB); err == nil {
		t.Fatalf("expected an error appending a part that precedes the line's current tail")
	}
}

func TestGetBoxedSlicesRejectsBadRange(t *testing.T) {
	blk := newTestBlock("hello\n")
	lp, _ := NewLinePart(0, 6, blk, 0, 0, 64)
	line := NewLine()
	_ = line.Append(lp)

	if _, err := line.GetBoxedSlices(3, 3); err == nil {
		t.Errorf("expected an error for a == b")
	}
	if _, err := line.GetBoxedSlices(0, 100); err == nil {
		t.Errorf("expected an error for b exceeding line length")
	}
}
