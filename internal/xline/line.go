package xline

import (
	"fmt"

	"github.com/tberlioz/logseek/internal/block"
)

// Line is an ordered, non-empty, immutable-once-built sequence of LineParts
// representing one logical line of the file — possibly spanning several
// Blocks without ever copying their bytes (spec.md §3, §4.1; grounded on
// original_source/src/Data/line.rs's Line/LineParts).
type Line struct {
	parts []LinePart
}

// NewLine returns an empty Line ready for Append calls.
func NewLine() *Line { return &Line{parts: make([]LinePart, 0, 1)} }

// Append adds linepart at the tail of the Line. Preconditions mirror
// original_source/src/Data/line.rs's Line::append: each appended LinePart
// must start at a strictly greater file offset and a non-decreasing block
// offset than the line's current last part.
func (l *Line) Append(lp LinePart) error {
	if n := len(l.parts); n > 0 {
		last := l.parts[n-1]
		if lp.blockOffset < last.blockOffset {
			return fmt.Errorf("xline: Append: blockOffset %d precedes last %d", lp.blockOffset, last.blockOffset)
		}
		if lp.fileOffset <= last.fileOffset {
			return fmt.Errorf("xline: Append: fileOffset %d does not exceed last %d", lp.fileOffset, last.fileOffset)
		}
	}
	l.parts = append(l.parts, lp)
	return nil
}

// Prepend adds linepart at the head of the Line.
func (l *Line) Prepend(lp LinePart) error {
	if n := len(l.parts); n > 0 {
		first := l.parts[0]
		if lp.blockOffset > first.blockOffset {
			return fmt.Errorf("xline: Prepend: blockOffset %d follows first %d", lp.blockOffset, first.blockOffset)
		}
		if lp.fileOffset >= first.fileOffset {
			return fmt.Errorf("xline: Prepend: fileOffset %d does not precede first %d", lp.fileOffset, first.fileOffset)
		}
	}
	l.parts = append([]LinePart{lp}, l.parts...)
	return nil
}

// FileOffsetBegin is the file offset of the Line's first byte.
func (l *Line) FileOffsetBegin() block.FileOffset {
	return l.parts[0].fileOffset
}

// FileOffsetEndInclusive is the file offset of the Line's last byte
// (inclusive of the trailing newline, except possibly at EOF).
func (l *Line) FileOffsetEndInclusive() block.FileOffset {
	last := l.parts[len(l.parts)-1]
	return last.fileOffset + block.FileOffset(last.Len()) - 1
}

// Len is the Line's total byte length.
func (l *Line) Len() LineIndex {
	return l.FileOffsetEndInclusive() - l.FileOffsetBegin() + 1
}

// NumParts returns the number of LineParts making up this Line.
func (l *Line) NumParts() int { return len(l.parts) }

// BlockOffsetFirst returns the block offset of the Line's first part.
func (l *Line) BlockOffsetFirst() block.BlockOffset { return l.parts[0].blockOffset }

// BlockOffsetLast returns the block offset of the Line's last part.
func (l *Line) BlockOffsetLast() block.BlockOffset { return l.parts[len(l.parts)-1].blockOffset }

// ContainsBlockOffset reports whether any LinePart of this Line references
// block bo.
func (l *Line) ContainsBlockOffset(bo block.BlockOffset) bool {
	for _, p := range l.parts {
		if p.blockOffset == bo {
			return true
		}
	}
	return false
}

// Contains reports whether byte c appears anywhere in the Line.
func (l *Line) Contains(c byte) bool {
	for _, p := range l.parts {
		if p.Contains(c) {
			return true
		}
	}
	return false
}

// GetSlices returns the ordered, zero-copy byte views making up this Line.
func (l *Line) GetSlices() [][]byte {
	out := make([][]byte, len(l.parts))
	for i, p := range l.parts {
		out[i] = p.Bytes()
	}
	return out
}

// GetBoxedSlices returns the zero-copy byte view(s) covering Line-relative
// range [a, b). When the range lies within a single LinePart this is one
// slice; otherwise it is the tail of the first covering part, full views of
// any parts strictly between, and the head of the last covering part. This
// is the primitive the datetime matcher scans against (spec.md §4.1).
func (l *Line) GetBoxedSlices(a, b LineIndex) ([][]byte, error) {
	if a >= b {
		return nil, fmt.Errorf("xline: GetBoxedSlices: a %d >= b %d", a, b)
	}
	if b > l.Len() {
		return nil, fmt.Errorf("xline: GetBoxedSlices: b %d exceeds line length %d", b, l.Len())
	}

	var out [][]byte
	var consumed LineIndex
	for _, p := range l.parts {
		plen := LineIndex(p.Len())
		partStart, partEnd := consumed, consumed+plen

		if b <= partStart || a >= partEnd {
			consumed = partEnd
			continue
		}

		lo := LineIndex(0)
		if a > partStart {
			lo = a - partStart
		}
		hi := plen
		if b < partEnd {
			hi = b - partStart
		}
		out = append(out, p.Range(lo, hi))
		consumed = partEnd
		if b <= partEnd {
			break
		}
	}
	return out, nil
}

// AsContiguousBytes returns a freshly allocated, contiguous copy of the
// entire Line. Callers pay for this copy explicitly; the matcher's scan
// path (GetBoxedSlices) never does.
func (l *Line) AsContiguousBytes() []byte {
	out := make([]byte, 0, l.Len())
	for _, p := range l.parts {
		out = append(out, p.Bytes()...)
	}
	return out
}
