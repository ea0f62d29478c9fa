// Package xline implements the zero-copy Line/LinePart data model (spec.md
// §3, §4.1) and a concrete LineReader (spec.md §6) on top of internal/block.
// Named xline rather than line to avoid colliding with any future use of the
// common identifier "line" at the module root.
package xline

import (
	"bytes"
	"fmt"

	"github.com/tberlioz/logseek/internal/block"
)

// LineIndex is an offset within a Line (as opposed to block.FileOffset,
// which is an offset within the whole file).
type LineIndex = uint64

// LinePart is a view into one Block: the part (or all) of a Line that
// happens to live in that block. Construction validates the invariants of
// spec.md §3; everything downstream only ever reads through these bounds,
// never copies the underlying bytes.
type LinePart struct {
	blockBegin block.BlockIndex
	blockEnd   block.BlockIndex // exclusive
	blockRef   *block.Block
	fileOffset block.FileOffset
	blockOffset block.BlockOffset
	blockSize  block.BlockSz
}

// NewLinePart validates and constructs a LinePart. It mirrors the
// assertions in original_source/src/Data/line.rs's LinePart::new: the
// fileOffset must agree with the block/offset math, and blockBegin <
// blockEnd <= blockSize.
func NewLinePart(blockBegin, blockEnd block.BlockIndex, blockRef *block.Block, fileOffset block.FileOffset, blockOffset block.BlockOffset, blockSize block.BlockSz) (LinePart, error) {
	if blockBegin >= blockEnd {
		return LinePart{}, fmt.Errorf("xline: bad LinePart: blockBegin %d >= blockEnd %d", blockBegin, blockEnd)
	}
	if blockEnd > blockSize {
		return LinePart{}, fmt.Errorf("xline: bad LinePart: blockEnd %d > blockSize %d", blockEnd, blockSize)
	}
	wantFO := blockOffset*blockSize + blockBegin
	if fileOffset != wantFO {
		return LinePart{}, fmt.Errorf("xline: bad LinePart: fileOffset %d != blockOffset*blockSize+blockBegin (%d)", fileOffset, wantFO)
	}
	if uint64(blockEnd-blockBegin) > uint64(blockRef.Len()) {
		return LinePart{}, fmt.Errorf("xline: bad LinePart: span %d exceeds block data len %d", blockEnd-blockBegin, blockRef.Len())
	}
	return LinePart{
		blockBegin:  blockBegin,
		blockEnd:    blockEnd,
		blockRef:    blockRef,
		fileOffset:  fileOffset,
		blockOffset: blockOffset,
		blockSize:   blockSize,
	}, nil
}

// Len returns the number of bytes this LinePart covers.
func (lp LinePart) Len() int { return int(lp.blockEnd - lp.blockBegin) }

// FileOffset returns the file offset of this LinePart's first byte.
func (lp LinePart) FileOffset() block.FileOffset { return lp.fileOffset }

// BlockOffset returns the block this LinePart's data lives in.
func (lp LinePart) BlockOffset() block.BlockOffset { return lp.blockOffset }

// Bytes returns the borrowed byte view for this LinePart: blockRef[begin:end].
func (lp LinePart) Bytes() []byte {
	return lp.blockRef.Bytes()[lp.blockBegin:lp.blockEnd]
}

// From returns the borrowed view [a:] relative to this LinePart's start.
func (lp LinePart) From(a LineIndex) []byte {
	return lp.blockRef.Bytes()[lp.blockBegin+block.BlockIndex(a) : lp.blockEnd]
}

// To returns the borrowed view [:b] relative to this LinePart's start.
func (lp LinePart) To(b LineIndex) []byte {
	return lp.blockRef.Bytes()[lp.blockBegin : lp.blockBegin+block.BlockIndex(b)]
}

// Range returns the borrowed view [a:b] relative to this LinePart's start.
func (lp LinePart) Range(a, b LineIndex) []byte {
	return lp.blockRef.Bytes()[lp.blockBegin+block.BlockIndex(a) : lp.blockBegin+block.BlockIndex(b)]
}

// Contains reports whether byte c appears anywhere in this LinePart's view.
func (lp LinePart) Contains(c byte) bool {
	return bytes.IndexByte(lp.Bytes(), c) != -1
}
