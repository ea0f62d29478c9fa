package sysline

import (
	"sort"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/tberlioz/logseek/internal/block"
	"github.com/tberlioz/logseek/internal/xdatetime"
	"github.com/tberlioz/logseek/internal/xline"
)

// FindResult is SyslineReader.FindSysline/FindSyslineAtDatetime's return
// value, reusing xline's four-way Found/FoundAtEOF/Done/Err status
// (spec.md §5, §7).
type FindResult struct {
	Status  xline.FindStatus
	Next    block.FileOffset
	Sysline *Sysline
	Err     error
}

// Reader turns a LineReader's Lines into Syslines and provides both
// sequential (FindSysline) and datetime-positioned (FindSyslineAtDatetime)
// lookup. Grounded on original_source/src/Readers/syslinereader.rs's
// SyslineReader.
type Reader struct {
	lr         *xline.LineReader
	br         *block.Reader
	defaultLoc *time.Location

	// two-index scheme (spec.md §5): syslinesByBegin is authoritative,
	// sortedBegins lets lookupByRange binary-search for "the Sysline
	// covering offset fo" without scanning every Sysline ever assembled.
	syslinesByBegin map[block.FileOffset]*Sysline
	sortedBegins    []block.FileOffset

	findCache *lru.Cache[block.FileOffset, *Sysline]
	dtCache   *lru.Cache[block.FileOffset, datetimeAttempt]

	dtPatternsCounts map[int]uint64
	dtPatterns       []int
	activeIndices    []int
	analyzed         bool
	syslineCount     uint64
}

// NewReader constructs a Reader over br. defaultLoc supplies the timezone
// used for timestamps whose pattern carries no timezone of its own; pass
// time.UTC if the file's timezone is unknown.
func NewReader(br *block.Reader, defaultLoc *time.Location) *Reader {
	if defaultLoc == nil {
		defaultLoc = time.UTC
	}
	return &Reader{
		lr:               xline.NewLineReader(br),
		br:               br,
		defaultLoc:       defaultLoc,
		syslinesByBegin:  make(map[block.FileOffset]*Sysline),
		findCache:        newFindSyslineCache(),
		dtCache:          newParseDatetimeCache(),
		dtPatternsCounts: make(map[int]uint64),
	}
}

// FindSysline returns the Sysline covering file offset fo, assembling it on
// a cache miss. When fo falls in a line without a datetime whose Sysline
// has not been assembled yet, that line is skipped and the next Sysline
// after it is returned. Only the returned Sysline is assembled.
func (r *Reader) FindSysline(fo block.FileOffset) FindResult {
	if sl, ok := r.findCache.Get(fo); ok {
		return r.resultFor(sl)
	}
	if sl, ok := r.lookupByRange(fo); ok {
		r.findCache.Add(fo, sl)
		return r.resultFor(sl)
	}

	sl, err := r.assembleSysline(fo)
	if err != nil {
		return FindResult{Status: xline.StatusErr, Err: err}
	}
	if sl == nil {
		return FindResult{Status: xline.StatusDone}
	}

	r.insertSysline(sl)
	r.findCache.Add(fo, sl)
	return r.resultFor(sl)
}

func (r *Reader) resultFor(sl *Sysline) FindResult {
	next := sl.FileOffsetNext()
	status := xline.StatusFound
	if next >= r.br.Filesz() {
		status = xline.StatusFoundAtEOF
	}
	return FindResult{Status: status, Next: next, Sysline: sl}
}

func (r *Reader) lookupByRange(fo block.FileOffset) (*Sysline, bool) {
	i := sort.Search(len(r.sortedBegins), func(i int) bool { return r.sortedBegins[i] > fo })
	if i == 0 {
		return nil, false
	}
	begin := r.sortedBegins[i-1]
	sl, ok := r.syslinesByBegin[begin]
	assert(ok, "sortedBegins[%d]=%d has no entry in syslinesByBegin (two-index scheme out of sync)", i-1, begin)
	if !ok {
		return nil, false
	}
	if fo <= sl.FileOffsetEndInclusive() {
		return sl, true
	}
	return nil, false
}

func (r *Reader) insertSysline(sl *Sysline) {
	begin := sl.FileOffsetBegin()
	if _, exists := r.syslinesByBegin[begin]; exists {
		return
	}
	r.syslinesByBegin[begin] = sl

	i := sort.Search(len(r.sortedBegins), func(i int) bool { return r.sortedBegins[i] >= begin })
	r.sortedBegins = append(r.sortedBegins, 0)
	copy(r.sortedBegins[i+1:], r.sortedBegins[i:])
	r.sortedBegins[i] = begin

	assert(len(r.sortedBegins) == len(r.syslinesByBegin),
		"sortedBegins has %d entries but syslinesByBegin has %d (two-index scheme out of sync)",
		len(r.sortedBegins), len(r.syslinesByBegin))
	assert(sl.FileOffsetBegin() < sl.FileOffsetNext(),
		"sysline at %d has FileOffsetNext %d <= FileOffsetBegin", sl.FileOffsetBegin(), sl.FileOffsetNext())

	r.syslineCount++
	r.maybeAnalyze()
}

// assembleSysline implements the two-phase algorithm of spec.md §5.1:
// Phase A walks forward from fo, discarding any line fragment that has no
// datetime of its own, until it finds the first datetime-bearing line at
// or after fo. Phase B then extends the Sysline with whatever
// continuation lines follow, stopping at the next datetime-bearing line
// (which is left unconsumed — it begins the next Sysline) or at EOF.
func (r *Reader) assembleSysline(fo block.FileOffset) (*Sysline, error) {
	findRes := r.lr.FindLine(fo)
	if findRes.Status == xline.StatusErr {
		return nil, findRes.Err
	}
	if findRes.Status == xline.StatusDone {
		return nil, nil
	}

	line := findRes.Line
	next := findRes.Next
	eof := findRes.Status == xline.StatusFoundAtEOF

	var firstLine *xline.Line
	var pattern *xdatetime.ParseData
	var match xdatetime.Match

	for {
		if idx, m, ok := r.findDatetimeInLine(line); ok {
			r.recordPatternUse(idx)
			firstLine = line
			pattern = &xdatetime.Catalogue[idx]
			match = m
			break
		}
		if eof {
			return nil, nil
		}
		findRes = r.lr.FindLine(next)
		if findRes.Status == xline.StatusErr {
			return nil, findRes.Err
		}
		if findRes.Status == xline.StatusDone {
			return nil, nil
		}
		line = findRes.Line
		next = findRes.Next
		eof = findRes.Status == xline.StatusFoundAtEOF
	}

	sl := &Sysline{
		Lines:          []*xline.Line{firstLine},
		Pattern:        pattern,
		DT:             match.Time,
		DTCaptureBegin: match.CaptureBegin,
		DTCaptureEnd:   match.CaptureEnd,
	}

	if eof {
		return sl, nil
	}

	for {
		findRes = r.lr.FindLine(next)
		if findRes.Status == xline.StatusErr {
			return nil, findRes.Err
		}
		if findRes.Status == xline.StatusDone {
			return sl, nil
		}

		cand := findRes.Line
		if _, _, ok := r.findDatetimeInLine(cand); ok {
			return sl, nil
		}

		sl.Lines = append(sl.Lines, cand)
		if findRes.Status == xline.StatusFoundAtEOF {
			return sl, nil
		}
		next = findRes.Next
	}
}
