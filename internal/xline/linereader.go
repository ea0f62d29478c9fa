package xline

import (
	"bytes"
	"fmt"

	"github.com/tberlioz/logseek/internal/block"
)

// FindStatus classifies the outcome of a LineReader/SyslineReader lookup,
// mirroring spec.md §3's four-way result: Found / FoundAtEOF / Done / Err.
type FindStatus int

const (
	// StatusFound means a result was located and the file continues past it.
	StatusFound FindStatus = iota
	// StatusFoundAtEOF means a result was located and it is the last one in the file.
	StatusFoundAtEOF
	// StatusDone means no result exists at or after the requested offset.
	StatusDone
	// StatusErr means the underlying I/O failed; see the Err field for detail.
	StatusErr
)

// FindLineResult is LineReader.FindLine's return value (spec.md §6's
// LineReader contract: find_line(F) -> Found(next_offset, Line) |
// FoundAtEOF(next_offset, Line) | Done | Err(io-kind)).
type FindLineResult struct {
	Status FindStatus
	Next   block.FileOffset
	Line   *Line
	Err    error
}

// LineReader turns a block.Reader's paged bytes into Lines. It is the
// concrete implementation of the "external, interface-only" LineReader
// collaborator spec.md §6 describes; SyslineReader is its only consumer.
type LineReader struct {
	br *block.Reader
}

// NewLineReader wraps br.
func NewLineReader(br *block.Reader) *LineReader {
	return &LineReader{br: br}
}

const newline = '\n'

// FindLine returns the Line covering file offset fo: fileoffset_begin <= fo
// <= fileoffset_end_inclusive, per spec.md §6. Lines before fo in the same
// block are never returned; LineReader instead walks backward to find this
// line's true beginning, and forward to find its end.
func (lr *LineReader) FindLine(fo block.FileOffset) FindLineResult {
	filesz := lr.br.Filesz()
	if fo >= filesz {
		return FindLineResult{Status: StatusDone}
	}

	begin, err := lr.findLineBegin(fo)
	if err != nil {
		return FindLineResult{Status: StatusErr, Err: err}
	}

	line, endExclusive, err := lr.scanForward(begin)
	if err != nil {
		return FindLineResult{Status: StatusErr, Err: err}
	}

	status := StatusFound
	if endExclusive == filesz {
		status = StatusFoundAtEOF
	}
	return FindLineResult{Status: status, Next: endExclusive, Line: line}
}

// findLineBegin walks backward from fo to the offset just past the previous
// newline (or 0, if fo is within the file's first line).
func (lr *LineReader) findLineBegin(fo block.FileOffset) (block.FileOffset, error) {
	if fo == 0 {
		return 0, nil
	}
	cur := fo
	for cur > 0 {
		bo := lr.br.BlockOffsetAtFileOffset(cur - 1)
		blk, err := lr.br.Block(bo)
		if err != nil {
			return 0, err
		}
		blockStart := lr.br.FileOffsetAtBlockOffset(bo)
		// search bytes [blockStart, cur) within this block for the last '\n'
		hi := int(cur - blockStart)
		if hi > blk.Len() {
			hi = blk.Len()
		}
		if idx := bytes.LastIndexByte(blk.Bytes()[:hi], newline); idx != -1 {
			return blockStart + block.FileOffset(idx) + 1, nil
		}
		cur = blockStart
	}
	return 0, nil
}

// scanForward reads Blocks starting at begin, assembling LineParts until a
// newline (inclusive) is found or EOF is reached, and returns the next
// line's starting offset (== filesz at EOF without a trailing newline).
func (lr *LineReader) scanForward(begin block.FileOffset) (*Line, block.FileOffset, error) {
	filesz := lr.br.Filesz()
	line := NewLine()
	fo := begin

	for {
		if fo >= filesz {
			if line.NumParts() == 0 {
				return nil, 0, fmt.Errorf("xline: scanForward: no data at EOF offset %d", fo)
			}
			return line, filesz, nil
		}

		bo := lr.br.BlockOffsetAtFileOffset(fo)
		blk, err := lr.br.Block(bo)
		if err != nil {
			return nil, 0, err
		}
		blockStart := lr.br.FileOffsetAtBlockOffset(bo)
		bi := lr.br.BlockIndexAtFileOffset(fo)

		if int(bi) >= blk.Len() {
			// ran off the end of a short (final) block with no newline
			if line.NumParts() == 0 {
				return nil, 0, fmt.Errorf("xline: scanForward: empty block at offset %d", fo)
			}
			return line, filesz, nil
		}

		rel := blk.Bytes()[bi:]
		nlIdx := bytes.IndexByte(rel, newline)

		var blockEnd block.BlockIndex
		var done bool
		if nlIdx == -1 {
			blockEnd = block.BlockIndex(blk.Len())
		} else {
			blockEnd = bi + block.BlockIndex(nlIdx) + 1
			done = true
		}

		lp, err := NewLinePart(bi, blockEnd, blk, blockStart+block.FileOffset(bi), bo, lr.br.BlockSize())
		if err != nil {
			return nil, 0, err
		}
		if err := line.Append(lp); err != nil {
			return nil, 0, err
		}

		fo = blockStart + block.FileOffset(blockEnd)
		if done {
			return line, fo, nil
		}
		// otherwise the block ended exactly at its boundary without a
		// newline; continue scanning into the next block
	}
}
