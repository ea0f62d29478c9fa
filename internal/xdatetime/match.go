package xdatetime

import (
	"errors"
	"fmt"
	"time"
	"unicode/utf8"
)

// ErrNoYear is returned by Parse when the only catalogue entries that
// matched are year-less (spec.md §9 Non-goals: this package never
// fabricates a year by assuming "current year", unlike some syslog
// tooling — see SPEC_FULL.md §12.3). Callers that want year inference
// anyway must do it themselves, explicitly, above this package.
var ErrNoYear = errors.New("xdatetime: pattern has no year and none was supplied")

// ErrNoMatch means no catalogue entry matched the window at all.
var ErrNoMatch = errors.New("xdatetime: no datetime pattern matched")

// Match is the result of a successful catalogue lookup: which pattern fired,
// the parsed instant, and the capture bounds within the window that was
// searched (LineIndex offsets, relative to the start of the window passed
// to Parse).
type Match struct {
	Pattern      *ParseData
	Time         time.Time
	CaptureBegin LineIndex
	CaptureEnd   LineIndex
}

// Parse scans window (typically a sysline's leading bytes, materialized
// contiguously by the caller via xline.Line.GetBoxedSlices) against cat in
// order, and returns the first match. defaultLoc supplies the timezone for
// patterns whose HasTZ is false; it is ignored for HasTZ patterns, whose
// offset comes from the text itself.
//
// Grounded on parser/stderr_parser.go's parseStderrLine/parseStderrFormat/
// parseSyslogFormat: a positional pre-check before ever calling time.Parse,
// the same two-attempt "try format A, then format B" shape generalized to
// an arbitrary catalogue.
func Parse(window []byte, cat []ParseData, defaultLoc *time.Location) (Match, error) {
	if !asciiOrValidUTF8(window) {
		return Match{}, fmt.Errorf("xdatetime: window is not valid UTF-8")
	}

	sawYearless := false
	for i := range cat {
		p := &cat[i]
		if uint64(len(window)) < p.WindowEnd {
			continue
		}
		if !yearDigitPrefilter(window, p) {
			continue
		}

		candidate := window[p.CaptureBegin:p.CaptureEnd]
		t, ok := parseOne(p, candidate, defaultLoc)
		if !ok {
			continue
		}
		if !p.HasYear {
			sawYearless = true
			continue
		}
		return Match{Pattern: p, Time: t, CaptureBegin: p.CaptureBegin, CaptureEnd: p.CaptureEnd}, nil
	}

	if sawYearless {
		return Match{}, ErrNoYear
	}
	return Match{}, ErrNoMatch
}

// parseOne attempts pattern p against candidate with a single time.Parse
// call using p.Layout. There is no retry with other candidate lengths and
// no separate whitespace-count check: a space in the layout matches a run
// of zero or more spaces in the candidate, as time.Parse defines, and the
// "_2" day layout accepts a one- or two-digit day.
func parseOne(p *ParseData, candidate []byte, defaultLoc *time.Location) (time.Time, bool) {
	s := string(candidate)
	t, err := time.Parse(p.Layout, s)
	if err == nil {
		return applyDefaultLoc(p, t, defaultLoc), true
	}
	return time.Time{}, false
}

func applyDefaultLoc(p *ParseData, t time.Time, defaultLoc *time.Location) time.Time {
	if p.HasTZ || defaultLoc == nil {
		return t
	}
	return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), defaultLoc)
}

// yearDigitPrefilter is the cheap rejection test spec.md §4.2 requires
// before ever invoking the real parser: for a year-bearing pattern, the
// window must contain at least one ASCII digit '1' or '2' somewhere in its
// matched span (any log timestamp we expect to search spans 1000-2999).
// This turns the common case — a window that obviously isn't this pattern —
// into a byte scan instead of a full time.Parse call and its error
// allocation.
//
// The year field is not always the first thing captured: "%a %b %d
// %H:%M:%S %Y " (ctime/proftpd xferlog form) leads with a weekday name, so
// checking only window[p.CaptureBegin] would reject every candidate for
// that pattern outright (a false negative, violating §8's pre-filter
// correctness property). Scan the whole window instead of assuming the
// year is the leading byte.
func yearDigitPrefilter(window []byte, p *ParseData) bool {
	if !p.HasYear {
		return true
	}
	end := p.WindowEnd
	if uint64(len(window)) < end {
		end = uint64(len(window))
	}
	for _, c := range window[:end] {
		if c == '1' || c == '2' {
			return true
		}
	}
	return false
}

func asciiOrValidUTF8(b []byte) bool {
	for _, c := range b {
		if c >= 0x80 {
			return utf8.Valid(b)
		}
	}
	return true
}
