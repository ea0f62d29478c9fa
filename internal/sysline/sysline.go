// Package sysline assembles Lines into Syslines — one or more consecutive
// Lines that together carry a single leading datetime (spec.md §5) — and
// implements positioned, datetime-filtered lookup over them via binary
// search on byte offsets (spec.md §7). Grounded on
// original_source/src/Readers/syslinereader.rs.
package sysline

import (
	"fmt"
	"time"

	"github.com/tberlioz/logseek/internal/block"
	"github.com/tberlioz/logseek/internal/xdatetime"
	"github.com/tberlioz/logseek/internal/xline"
)

// Sysline is a run of xline.Lines whose first line carries a matched
// datetime and whose remaining lines (if any) are continuation lines with
// no datetime of their own — e.g. a Postgres DETAIL/HINT/STATEMENT
// continuation, or a Java stack trace frame (spec.md §5.1).
type Sysline struct {
	Lines   []*xline.Line
	Pattern *xdatetime.ParseData
	DT      time.Time
	// DTCaptureBegin/End are offsets, relative to the first Line, of the
	// bytes the datetime was parsed from — kept for display/highlighting.
	DTCaptureBegin, DTCaptureEnd xline.LineIndex
}

// FileOffsetBegin is the file offset of the Sysline's first byte.
func (s *Sysline) FileOffsetBegin() block.FileOffset {
	return s.Lines[0].FileOffsetBegin()
}

// FileOffsetEndInclusive is the file offset of the Sysline's last byte.
func (s *Sysline) FileOffsetEndInclusive() block.FileOffset {
	return s.Lines[len(s.Lines)-1].FileOffsetEndInclusive()
}

// FileOffsetNext is the file offset one past this Sysline's last byte —
// where the next Sysline, if any, begins.
func (s *Sysline) FileOffsetNext() block.FileOffset {
	return s.FileOffsetEndInclusive() + 1
}

// Len is the Sysline's total byte length across all of its Lines.
func (s *Sysline) Len() uint64 {
	return uint64(s.FileOffsetEndInclusive() - s.FileOffsetBegin() + 1)
}

// NumLines returns how many Lines make up this Sysline.
func (s *Sysline) NumLines() int { return len(s.Lines) }

// AsContiguousBytes materializes the whole Sysline (all Lines concatenated)
// as one fresh allocation. Used only by output formatting, never by the
// search path.
func (s *Sysline) AsContiguousBytes() []byte {
	var out []byte
	for _, l := range s.Lines {
		out = append(out, l.AsContiguousBytes()...)
	}
	return out
}

func (s *Sysline) String() string {
	return fmt.Sprintf("Sysline{fo=[%d,%d] dt=%s lines=%d}",
		s.FileOffsetBegin(), s.FileOffsetEndInclusive(), s.DT.Format(time.RFC3339Nano), len(s.Lines))
}
