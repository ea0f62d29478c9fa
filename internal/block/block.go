// Package block provides paged, cached, reference-counted access to a file's
// bytes. It is the concrete implementation of the "BlockReader" contract that
// the rest of logseek treats as an external collaborator (see SPEC_FULL.md
// §1 and §12.1): everything upstream only ever calls through Reader's
// exported methods, never touches the file directly.
package block

import (
	"errors"
	"fmt"
)

// BlockSz is the configured page size of a Reader. All blocks are this size
// except possibly the last block of the file.
type BlockSz = uint64

// BlockOffset is the zero-based page index of a block within a file.
type BlockOffset = uint64

// BlockIndex is a byte offset within a single block (0 <= i < BlockSz).
type BlockIndex = uint64

// FileOffset is a byte offset within the file: FileOffset = BlockOffset*BlockSz + BlockIndex.
type FileOffset = uint64

// DefaultBlockSz is used when a caller does not specify one explicitly.
const DefaultBlockSz BlockSz = 65536

// MinBlockSz is the smallest block size logseek will accept; it must be able
// to hold the longest datetime window plus a couple of delimiter bytes (see
// SPEC_FULL §6 "block_size >= longest pattern window + 2").
const MinBlockSz BlockSz = 64

var (
	// ErrBadBlockSz is returned when a requested block size is too small to
	// hold even one datetime window.
	ErrBadBlockSz = errors.New("block: block size too small")
	// ErrOutOfRange is returned when a file offset or block offset falls
	// outside the file.
	ErrOutOfRange = errors.New("block: offset out of range")
)

// Block is an owned, immutable byte buffer for one page of the file. Blocks
// are shared by reference: once returned from Reader.Block, a Block's bytes
// are never mutated, and any number of LineParts across any number of Lines
// may point at it concurrently.
type Block struct {
	bytes []byte
}

// Bytes returns the block's full byte slice. Callers must not mutate it.
func (b *Block) Bytes() []byte { return b.bytes }

// NewBlockForTest constructs a Block directly from data, bypassing Reader.
// Exported for use by other packages' tests (internal/xline's LinePart
// tests in particular), which need a Block to point LineParts at without
// standing up a whole Reader.
func NewBlockForTest(data []byte) *Block { return &Block{bytes: data} }

// Len returns the number of bytes actually stored in this block (equal to
// BlockSz except possibly for the file's last block).
func (b *Block) Len() int { return len(b.bytes) }

// BlockOffsetAtFileOffset returns the page index containing fo.
func BlockOffsetAtFileOffset(fo FileOffset, bsz BlockSz) BlockOffset {
	return fo / bsz
}

// BlockIndexAtFileOffset returns the index within its page that fo falls on.
func BlockIndexAtFileOffset(fo FileOffset, bsz BlockSz) BlockIndex {
	return fo % bsz
}

// FileOffsetAtBlockOffset returns the file offset of the first byte of block bo.
// Grounded on the same offset-arithmetic shape used to decode a sorted,
// position-addressed table in jasonk000-go-perf/dwarfx/line.go (stride *
// index arithmetic for random access into a paged structure).
func FileOffsetAtBlockOffset(bo BlockOffset, bsz BlockSz) FileOffset {
	return bo * bsz
}

// FileOffsetAtBlockOffsetIndex returns the file offset of byte index bi within block bo.
func FileOffsetAtBlockOffsetIndex(bo BlockOffset, bi BlockIndex, bsz BlockSz) FileOffset {
	return bo*bsz + bi
}

func validateBlockSz(bsz BlockSz) error {
	if bsz < MinBlockSz {
		return fmt.Errorf("%w: %d < minimum %d", ErrBadBlockSz, bsz, MinBlockSz)
	}
	return nil
}
