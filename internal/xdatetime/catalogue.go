// Package xdatetime implements the datetime pattern catalogue and matcher
// (spec.md §4.2): a static, ordered table of candidate timestamp shapes, a
// cheap pre-filter, and the actual parse step. Grounded on original_source/src/Readers/datetime.rs (the
// 105-entry DATETIME_PARSE_DATAS table) and on the teacher's
// parser/stderr_parser.go, which hand-rolls the same "scan a prefix window,
// parse, fall back" shape for exactly two formats.
package xdatetime

import "fmt"

// LineIndex mirrors xline.LineIndex without importing that package (the
// catalogue has no dependency on the Line representation itself — it only
// describes byte offsets within whatever slice it is handed).
type LineIndex = uint64

// ParseData describes one candidate datetime shape: where to look in a line
// (window) and the narrower range to actually hand the time parser
// (capture), plus whether the pattern carries a year and/or a timezone
// (spec.md §3's DateTimeParseData).
type ParseData struct {
	// Pattern is the strftime-style literal, kept for documentation and for
	// the effective-length invariant check; it is not used at parse time.
	Pattern string
	// Layout is the equivalent Go reference-time layout used by time.Parse.
	Layout string
	HasYear bool
	HasTZ   bool

	WindowBegin, WindowEnd     LineIndex
	CaptureBegin, CaptureEnd   LineIndex
}

// effectiveLen is a conservative lower bound on how many bytes Pattern can
// expand to — used only by the table self-test (ValidateCatalogue) to check
// spec.md §4.2's "window_end − window_begin ≥ capture_end − capture_begin ≥
// pattern.effective_len" invariant.
func (p ParseData) effectiveLen() LineIndex {
	n := LineIndex(0)
	i := 0
	for i < len(p.Pattern) {
		if p.Pattern[i] != '%' || i+1 >= len(p.Pattern) {
			n++
			i++
			continue
		}
		switch {
		case i+2 < len(p.Pattern) && p.Pattern[i+1] == '.' && p.Pattern[i+2] == '3':
			n += 4 // ".123"
			i += 4
		case i+2 < len(p.Pattern) && p.Pattern[i+1] == '.' && p.Pattern[i+2] == '6':
			n += 7 // ".123456"
			i += 4
		case p.Pattern[i+1] == 'Y':
			n += 4
			i += 2
		case p.Pattern[i+1] == 'y', p.Pattern[i+1] == 'm', p.Pattern[i+1] == 'd',
			p.Pattern[i+1] == 'H', p.Pattern[i+1] == 'M', p.Pattern[i+1] == 'S':
			n += 2
			i += 2
		case p.Pattern[i+1] == 'e':
			n++
			i += 2
		case p.Pattern[i+1] == 'b', p.Pattern[i+1] == 'a':
			n += 3
			i += 2
		case p.Pattern[i+1] == 'z':
			n += 5
			i += 2
		case p.Pattern[i+1] == ':' && i+2 < len(p.Pattern) && p.Pattern[i+2] == 'z':
			n += 6
			i += 3
		case p.Pattern[i+1] == 'Z':
			n += 1
			i += 2
		default:
			n++
			i++
		}
	}
	return n
}

// Catalogue is the ordered, priority-ranked list of built-in datetime
// shapes. Order matters: longer and more specific forms (fractional
// seconds, timezone-bearing) are tried before plainer ones, so that e.g. a
// line carrying both a date and a fractional-second offset never matches
// the plain "%Y-%m-%d %H:%M:%S" entry first and silently drops precision.
//
// This is a representative subset of the ~105-entry table described in
// original_source/src/Readers/datetime.rs — large enough to exercise every
// shape spec.md §4.2 calls out (bracketed forms, compact forms, RFC-3164
// month-name forms, multiple fractional-second widths, the three timezone
// encodings) while staying reviewable. Implementations may extend it
// freely provided new entries satisfy ValidateCatalogue.
var Catalogue = []ParseData{
	// [2020/03/05 12:17:59.631000,  3] ../source3/smbd/oplock.c:1340(...)
	{Pattern: "[%Y/%m/%d %H:%M:%S%.6f,", Layout: "[2006/01/02 15:04:05.000000,",
		HasYear: true, HasTZ: false, WindowBegin: 0, WindowEnd: 28, CaptureBegin: 0, CaptureEnd: 28},
	// [2000/01/01 00:00:04.123456] foo
	{Pattern: "[%Y/%m/%d %H:%M:%S%.6f]", Layout: "[2006/01/02 15:04:05.000000]",
		HasYear: true, HasTZ: false, WindowBegin: 0, WindowEnd: 28, CaptureBegin: 0, CaptureEnd: 28},

	// 2000-01-01 00:00:05 -0400 foo / 2000-01-01 00:00:05-0400 foo
	{Pattern: "%Y-%m-%d %H:%M:%S %z ", Layout: "2006-01-02 15:04:05 -0700 ",
		HasYear: true, HasTZ: true, WindowBegin: 0, WindowEnd: 26, CaptureBegin: 0, CaptureEnd: 25},
	{Pattern: "%Y-%m-%d %H:%M:%S%z ", Layout: "2006-01-02 15:04:05-0700 ",
		HasYear: true, HasTZ: true, WindowBegin: 0, WindowEnd: 25, CaptureBegin: 0, CaptureEnd: 24},
	{Pattern: "%Y-%m-%dT%H:%M:%S %z ", Layout: "2006-01-02T15:04:05 -0700 ",
		HasYear: true, HasTZ: true, WindowBegin: 0, WindowEnd: 26, CaptureBegin: 0, CaptureEnd: 25},
	{Pattern: "%Y-%m-%dT%H:%M:%S%z ", Layout: "2006-01-02T15:04:05-0700 ",
		HasYear: true, HasTZ: true, WindowBegin: 0, WindowEnd: 25, CaptureBegin: 0, CaptureEnd: 24},

	// 2000-01-01 00:00:05 ACST foo / 2000-01-01 00:00:05ACST foo
	{Pattern: "%Y-%m-%d %H:%M:%S %Z ", Layout: "2006-01-02 15:04:05 MST ",
		HasYear: true, HasTZ: true, WindowBegin: 0, WindowEnd: 25, CaptureBegin: 0, CaptureEnd: 24},
	{Pattern: "%Y-%m-%d %H:%M:%S%Z ", Layout: "2006-01-02 15:04:05MST ",
		HasYear: true, HasTZ: true, WindowBegin: 0, WindowEnd: 24, CaptureBegin: 0, CaptureEnd: 23},
	{Pattern: "%Y-%m-%dT%H:%M:%S %Z ", Layout: "2006-01-02T15:04:05 MST ",
		HasYear: true, HasTZ: true, WindowBegin: 0, WindowEnd: 25, CaptureBegin: 0, CaptureEnd: 24},
	{Pattern: "%Y-%m-%dT%H:%M:%S%Z ", Layout: "2006-01-02T15:04:05MST ",
		HasYear: true, HasTZ: true, WindowBegin: 0, WindowEnd: 24, CaptureBegin: 0, CaptureEnd: 23},

	// 2000-01-01 00:00:05 -04:00 foo / 2000-01-01 00:00:05-04:00 foo
	{Pattern: "%Y-%m-%d %H:%M:%S %:z ", Layout: "2006-01-02 15:04:05 -07:00 ",
		HasYear: true, HasTZ: true, WindowBegin: 0, WindowEnd: 27, CaptureBegin: 0, CaptureEnd: 26},
	{Pattern: "%Y-%m-%d %H:%M:%S%:z ", Layout: "2006-01-02 15:04:05-07:00 ",
		HasYear: true, HasTZ: true, WindowBegin: 0, WindowEnd: 26, CaptureBegin: 0, CaptureEnd: 25},
	{Pattern: "%Y-%m-%dT%H:%M:%S %:z ", Layout: "2006-01-02T15:04:05 -07:00 ",
		HasYear: true, HasTZ: true, WindowBegin: 0, WindowEnd: 27, CaptureBegin: 0, CaptureEnd: 26},
	{Pattern: "%Y-%m-%dT%H:%M:%S%:z ", Layout: "2006-01-02T15:04:05-07:00 ",
		HasYear: true, HasTZ: true, WindowBegin: 0, WindowEnd: 26, CaptureBegin: 0, CaptureEnd: 25},

	// 2000-01-01 00:00:01.234-0500 foo / ...234 -0500 foo / 2000-01-01T...
	{Pattern: "%Y-%m-%d %H:%M:%S%.3f%z ", Layout: "2006-01-02 15:04:05.000-0700 ",
		HasYear: true, HasTZ: true, WindowBegin: 0, WindowEnd: 29, CaptureBegin: 0, CaptureEnd: 28},
	{Pattern: "%Y-%m-%d %H:%M:%S%.3f%:z ", Layout: "2006-01-02 15:04:05.000-07:00 ",
		HasYear: true, HasTZ: true, WindowBegin: 0, WindowEnd: 30, CaptureBegin: 0, CaptureEnd: 29},
	{Pattern: "%Y-%m-%d %H:%M:%S%.3f %z ", Layout: "2006-01-02 15:04:05.000 -0700 ",
		HasYear: true, HasTZ: true, WindowBegin: 0, WindowEnd: 30, CaptureBegin: 0, CaptureEnd: 29},
	{Pattern: "%Y-%m-%dT%H:%M:%S%.3f%z ", Layout: "2006-01-02T15:04:05.000-0700 ",
		HasYear: true, HasTZ: true, WindowBegin: 0, WindowEnd: 29, CaptureBegin: 0, CaptureEnd: 28},
	{Pattern: "%Y-%m-%dT%H:%M:%S%.3f%:z ", Layout: "2006-01-02T15:04:05.000-07:00 ",
		HasYear: true, HasTZ: true, WindowBegin: 0, WindowEnd: 30, CaptureBegin: 0, CaptureEnd: 29},

	// 2000-01-01 00:00:01.234567-0800 foo / ...-08:00 foo
	{Pattern: "%Y-%m-%d %H:%M:%S%.6f%z ", Layout: "2006-01-02 15:04:05.000000-0700 ",
		HasYear: true, HasTZ: true, WindowBegin: 0, WindowEnd: 32, CaptureBegin: 0, CaptureEnd: 31},
	{Pattern: "%Y-%m-%d %H:%M:%S%.6f%:z ", Layout: "2006-01-02 15:04:05.000000-07:00 ",
		HasYear: true, HasTZ: true, WindowBegin: 0, WindowEnd: 33, CaptureBegin: 0, CaptureEnd: 32},
	{Pattern: "%Y-%m-%dT%H:%M:%S%.6f%z ", Layout: "2006-01-02T15:04:05.000000-0700 ",
		HasYear: true, HasTZ: true, WindowBegin: 0, WindowEnd: 32, CaptureBegin: 0, CaptureEnd: 31},
	{Pattern: "%Y-%m-%dT%H:%M:%S%.6f%:z ", Layout: "2006-01-02T15:04:05.000000-07:00 ",
		HasYear: true, HasTZ: true, WindowBegin: 0, WindowEnd: 33, CaptureBegin: 0, CaptureEnd: 32},

	// 20000101T000001 -0800 foo / ... -08:00 foo
	{Pattern: "%Y%m%dT%H%M%S %z ", Layout: "20060102T150405 -0700 ",
		HasYear: true, HasTZ: true, WindowBegin: 0, WindowEnd: 22, CaptureBegin: 0, CaptureEnd: 21},
	{Pattern: "%Y%m%dT%H%M%S %:z ", Layout: "20060102T150405 -07:00 ",
		HasYear: true, HasTZ: true, WindowBegin: 0, WindowEnd: 23, CaptureBegin: 0, CaptureEnd: 22},

	// [20200113-11:03:06] [DEBUG] Closed socket 7 ...
	{Pattern: "[%Y%m%d-%H:%M:%S]", Layout: "[20060102-15:04:05]",
		HasYear: true, HasTZ: false, WindowBegin: 0, WindowEnd: 19, CaptureBegin: 0, CaptureEnd: 19},

	// update-alternatives 2020-02-03 13:56:07: run with --install ...
	{Pattern: " %Y-%m-%d %H:%M:%S: ", Layout: " 2006-01-02 15:04:05: ",
		HasYear: true, HasTZ: false, WindowBegin: 19, WindowEnd: 41, CaptureBegin: 19, CaptureEnd: 41},

	// [2019-05-06 11:24:34,074] Successfully loaded GTK libraries.
	{Pattern: "[%Y-%m-%d %H:%M:%S,%3f] ", Layout: "[2006-01-02 15:04:05,000] ",
		HasYear: true, HasTZ: false, WindowBegin: 0, WindowEnd: 26, CaptureBegin: 0, CaptureEnd: 26},
	{Pattern: "[%Y-%m-%d %H:%M:%S,%3f]", Layout: "[2006-01-02 15:04:05,000]",
		HasYear: true, HasTZ: false, WindowBegin: 0, WindowEnd: 25, CaptureBegin: 0, CaptureEnd: 25},

	// Sat Oct 03 11:26:12 2020 0 192.168.1.12 0 /var/log/proftpd/xferlog ...
	{Pattern: "%a %b %d %H:%M:%S %Y ", Layout: "Mon Jan 02 15:04:05 2006 ",
		HasYear: true, HasTZ: false, WindowBegin: 0, WindowEnd: 25, CaptureBegin: 0, CaptureEnd: 24},
	{Pattern: "%a %b %d %H:%M:%S %Y", Layout: "Mon Jan 02 15:04:05 2006",
		HasYear: true, HasTZ: false, WindowBegin: 0, WindowEnd: 24, CaptureBegin: 0, CaptureEnd: 24},

	// 2020-01-01 00:00:01.001 xyz / ... no fractional / no trailing space
	{Pattern: "%Y-%m-%d %H:%M:%S%.3f ", Layout: "2006-01-02 15:04:05.000 ",
		HasYear: true, HasTZ: false, WindowBegin: 0, WindowEnd: 24, CaptureBegin: 0, CaptureEnd: 23},
	{Pattern: "%Y-%m-%d %H:%M:%S ", Layout: "2006-01-02 15:04:05 ",
		HasYear: true, HasTZ: false, WindowBegin: 0, WindowEnd: 20, CaptureBegin: 0, CaptureEnd: 19},
	{Pattern: "%Y-%m-%d %H:%M:%S", Layout: "2006-01-02 15:04:05",
		HasYear: true, HasTZ: false, WindowBegin: 0, WindowEnd: 19, CaptureBegin: 0, CaptureEnd: 19},
	{Pattern: "%Y-%m-%dT%H:%M:%S%.6f", Layout: "2006-01-02T15:04:05.000000",
		HasYear: true, HasTZ: false, WindowBegin: 0, WindowEnd: 26, CaptureBegin: 0, CaptureEnd: 26},
	{Pattern: "%Y-%m-%dT%H:%M:%S", Layout: "2006-01-02T15:04:05",
		HasYear: true, HasTZ: false, WindowBegin: 0, WindowEnd: 19, CaptureBegin: 0, CaptureEnd: 19},

	// classic BSD syslog: Mar  9 08:10:29 hostname1 kernel: ...
	// Year-less; see SPEC_FULL.md §12.3 — kept in the catalogue so such a
	// line is recognized, but Parse() refuses to fabricate a year for it and
	// returns ErrNoYear (Non-goal, spec.md §9). internal/sysline treats that
	// as "no datetime": the line never begins a Sysline, and this pattern is
	// never counted or selected by pattern learning.
	{Pattern: "%b %e %H:%M:%S ", Layout: "Jan _2 15:04:05 ",
		HasYear: false, HasTZ: false, WindowBegin: 0, WindowEnd: 16, CaptureBegin: 0, CaptureEnd: 15},
}

// ValidateCatalogue runs the startup self-test spec.md §4.2 requires:
// window_begin < window_end, capture_begin < capture_end, window_begin <=
// capture_begin, capture_end <= window_end, pattern length >= 6,
// window_end-window_begin >= capture_end-capture_begin >= effective_len,
// has_year/has_tz agree with the pattern text, and no duplicate entries.
func ValidateCatalogue(cat []ParseData) error {
	seen := make(map[string]bool, len(cat))
	for i, p := range cat {
		if len(p.Pattern) < 6 {
			return fmt.Errorf("xdatetime: entry %d: pattern %q shorter than 6 bytes", i, p.Pattern)
		}
		if !(p.WindowBegin < p.WindowEnd) {
			return fmt.Errorf("xdatetime: entry %d: window_begin %d !< window_end %d", i, p.WindowBegin, p.WindowEnd)
		}
		if !(p.CaptureBegin < p.CaptureEnd) {
			return fmt.Errorf("xdatetime: entry %d: capture_begin %d !< capture_end %d", i, p.CaptureBegin, p.CaptureEnd)
		}
		if !(p.WindowBegin <= p.CaptureBegin) {
			return fmt.Errorf("xdatetime: entry %d: window_begin %d > capture_begin %d", i, p.WindowBegin, p.CaptureBegin)
		}
		if !(p.CaptureEnd <= p.WindowEnd) {
			return fmt.Errorf("xdatetime: entry %d: capture_end %d > window_end %d", i, p.CaptureEnd, p.WindowEnd)
		}
		capLen := p.CaptureEnd - p.CaptureBegin
		winLen := p.WindowEnd - p.WindowBegin
		eff := p.effectiveLen()
		if !(winLen >= capLen && capLen >= eff) {
			return fmt.Errorf("xdatetime: entry %d: window_len %d >= capture_len %d >= effective_len %d violated", i, winLen, capLen, eff)
		}
		hasYearSpec := containsAny(p.Pattern, "%Y", "%y")
		if hasYearSpec != p.HasYear {
			return fmt.Errorf("xdatetime: entry %d: HasYear=%v disagrees with pattern text %q", i, p.HasYear, p.Pattern)
		}
		hasTZSpec := containsAny(p.Pattern, "%z", "%:z", "%Z")
		if hasTZSpec != p.HasTZ {
			return fmt.Errorf("xdatetime: entry %d: HasTZ=%v disagrees with pattern text %q", i, p.HasTZ, p.Pattern)
		}
		key := fmt.Sprintf("%s|%d|%d|%d|%d", p.Pattern, p.WindowBegin, p.WindowEnd, p.CaptureBegin, p.CaptureEnd)
		if seen[key] {
			return fmt.Errorf("xdatetime: entry %d: duplicate of an earlier entry (%s)", i, p.Pattern)
		}
		seen[key] = true
	}
	return nil
}

func containsAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if indexOf(s, sub) != -1 {
			return true
		}
	}
	return false
}

func indexOf(s, sub string) int {
	for i := 0; i+len(sub) <= len(s); i++ {
		if s[i:i+len(sub)] == sub {
			return i
		}
	}
	return -1
}
