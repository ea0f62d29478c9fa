package xline

import "testing"

func TestNewLinePartValidation(t *testing.T) {
	blk := newTestBlock("0123456789abcdef")

	if _, err := NewLinePart(4, 4, blk, 4, 0, 16); err == nil {
		t.Errorf("expected an error when blockBegin == blockEnd")
	}
	if _, err := NewLinePart(0, 20, blk, 0, 0, 16); err == nil {
		t.Errorf("expected an error when blockEnd exceeds blockSize")
	}
	if _, err := NewLinePart(0, 4, blk, 99, 0, 16); err == nil {
		t.Errorf("expected an error when fileOffset disagrees with blockOffset*blockSize+blockBegin")
	}
}

func TestLinePartAccessors(t *testing.T) {
	blk := newTestBlock("0123456789abcdef")
	lp, err := NewLinePart(2, 10, blk, 2, 0, 16)
	if err != nil {
		t.Fatalf("NewLinePart: %v", err)
	}

	if lp.Len() != 8 {
		t.Errorf("Len() = %d, want 8", lp.Len())
	}
	if lp.FileOffset() != 2 {
		t.Errorf("FileOffset() = %d, want 2", lp.FileOffset())
	}
	if string(lp.Bytes()) != "23456789" {
		t.Errorf("Bytes() = %q, want %q", lp.Bytes(), "23456789")
	}
	if string(lp.From(2)) != "456789" {
		t.Errorf("From(2) = %q, want %q", lp.From(2), "456789")
	}
	if string(lp.To(3)) != "234" {
		t.Errorf("To(3) = %q, want %q", lp.To(3), "234")
	}
	if string(lp.Range(1, 4)) != "345" {
		t.Errorf("Range(1,4) = %q, want %q", lp.Range(1, 4), "345")
	}
	if !lp.Contains('7') {
		t.Errorf("Contains('7') = false, want true")
	}
	if lp.Contains('z') {
		t.Errorf("Contains('z') = true, want false")
	}
}
