package sysline

import (
	"errors"

	"github.com/tberlioz/logseek/internal/xdatetime"
	"github.com/tberlioz/logseek/internal/xline"
)

var maxCatalogueWindow = computeMaxWindow(xdatetime.Catalogue)

func computeMaxWindow(cat []xdatetime.ParseData) xline.LineIndex {
	var m xline.LineIndex
	for _, p := range cat {
		if p.WindowEnd > m {
			m = p.WindowEnd
		}
	}
	return m
}

// leadingWindow returns up to maxLen contiguous bytes from the start of
// line, copying across LineParts only when the window actually straddles a
// Block boundary — the common case is a single zero-copy slice.
func leadingWindow(line *xline.Line, maxLen xline.LineIndex) []byte {
	n := line.Len()
	if n > maxLen {
		n = maxLen
	}
	if n == 0 {
		return nil
	}
	slices, err := line.GetBoxedSlices(0, n)
	if err != nil {
		return nil
	}
	if len(slices) == 1 {
		return slices[0]
	}
	out := make([]byte, 0, n)
	for _, s := range slices {
		out = append(out, s...)
	}
	return out
}

// findDatetimeInLine scans line's leading bytes against the Reader's
// currently active pattern set, memoizing the result by the line's
// starting offset. If narrowing has already happened and the active set
// finds nothing, it retries once against the full catalogue — the
// fallback spec.md §5.2 requires for the rare sysline that doesn't use the
// file's dominant format (e.g. a one-off banner line).
func (r *Reader) findDatetimeInLine(line *xline.Line) (int, xdatetime.Match, bool) {
	key := line.FileOffsetBegin()
	if a, ok := r.dtCache.Get(key); ok {
		return a.PatternIdx, a.Match, a.Matched
	}
	idx, m, ok := r.computeDatetimeInLine(line)
	r.dtCache.Add(key, datetimeAttempt{PatternIdx: idx, Match: m, Matched: ok})
	return idx, m, ok
}

func (r *Reader) computeDatetimeInLine(line *xline.Line) (int, xdatetime.Match, bool) {
	window := leadingWindow(line, maxCatalogueWindow)
	if window == nil {
		return -1, xdatetime.Match{}, false
	}

	cat := r.activeCatalogue()
	m, err := xdatetime.Parse(window, cat, r.defaultLoc)
	if err == nil {
		assert(m.CaptureBegin < m.CaptureEnd, "match capture range [%d,%d) is empty or inverted", m.CaptureBegin, m.CaptureEnd)
		return catalogueIndexOf(m.Pattern), m, true
	}
	if !errors.Is(err, xdatetime.ErrNoMatch) || len(r.activeIndices) == 0 {
		return -1, xdatetime.Match{}, false
	}

	m, err = xdatetime.Parse(window, xdatetime.Catalogue, r.defaultLoc)
	if err != nil {
		return -1, xdatetime.Match{}, false
	}
	assert(m.CaptureBegin < m.CaptureEnd, "match capture range [%d,%d) is empty or inverted", m.CaptureBegin, m.CaptureEnd)
	return catalogueIndexOf(m.Pattern), m, true
}

func catalogueIndexOf(p *xdatetime.ParseData) int {
	for i := range xdatetime.Catalogue {
		if xdatetime.Catalogue[i].Pattern == p.Pattern {
			return i
		}
	}
	return -1
}

func (r *Reader) activeCatalogue() []xdatetime.ParseData {
	if len(r.activeIndices) == 0 {
		return xdatetime.Catalogue
	}
	out := make([]xdatetime.ParseData, len(r.activeIndices))
	for i, idx := range r.activeIndices {
		out[i] = xdatetime.Catalogue[idx]
	}
	return out
}
