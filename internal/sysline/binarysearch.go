package sysline

import (
	"time"

	"github.com/tberlioz/logseek/internal/block"
	"github.com/tberlioz/logseek/internal/xline"
)

// FindSyslineAtDatetime performs the positioned binary search of spec.md
// §7: locate the earliest Sysline whose datetime is at or after target,
// searching over byte offsets (not sysline index, which does not exist
// until assembled) via repeated FindSysline probes. Grounded on
// syslinereader.rs's find_sysline_at_datetime_filter1: a [fo_a, fo_b)
// range narrows on each probe, keeping the best (leftmost qualifying)
// Sysline seen, until the probe offset stops changing.
func (r *Reader) FindSyslineAtDatetime(target time.Time) FindResult {
	filesz := r.br.Filesz()
	if filesz == 0 {
		return FindResult{Status: xline.StatusDone}
	}

	var best *Sysline
	foA, foB := block.FileOffset(0), filesz
	tryFo := foA
	var lastTryFo block.FileOffset
	first := true

	for {
		if !first && tryFo == lastTryFo {
			break
		}
		if foA >= foB && !first {
			break
		}
		first = false
		lastTryFo = tryFo

		res := r.FindSysline(tryFo)
		switch res.Status {
		case xline.StatusErr:
			return res
		case xline.StatusDone:
			// nothing at or after tryFo; narrow the upper bound down and
			// keep looking to the left of it
			foB = tryFo
		default: // StatusFound, StatusFoundAtEOF
			sl := res.Sysline
			switch classify(sl, target) {
			case verdictBefore:
				// this sysline occurs strictly before target: the answer,
				// if any, lies after it
				slNext := sl.FileOffsetNext()
				if slNext > foB {
					slNext = foB
				}
				foA = slNext
			case verdictAtOrAfter:
				// this sysline qualifies; it may be the earliest one that
				// does, so remember it and keep searching to its left
				best = sl
				slBegin := sl.FileOffsetBegin()
				if slBegin == 0 {
					// nothing can precede offset 0; this is the answer
					return r.resultFor(best)
				}
				if slBegin < foB {
					foB = slBegin
				}
			}
		}

		if foA >= foB {
			break
		}
		tryFo = foA + (foB-foA)/2
	}

	if best == nil {
		return FindResult{Status: xline.StatusDone}
	}
	return r.resultFor(best)
}

type filterVerdict int

const (
	verdictBefore filterVerdict = iota
	verdictAtOrAfter
)

// classify is the disambiguation step: does sl's datetime occur before
// target, or at-or-after it. A single comparison suffices because Sysline
// carries one resolved time.Time; the "Pass" outcome of the original's
// three-way Result_Filter_DateTime1 only arises with a closed [after,
// before) interval, which FindSyslineBetween builds from two single-bound
// searches rather than a three-way classification.
func classify(sl *Sysline, target time.Time) filterVerdict {
	if sl.DT.Before(target) {
		return verdictBefore
	}
	return verdictAtOrAfter
}

// FindSyslineBetween returns every Sysline whose datetime falls in
// [after, before), starting the walk from the binary-search result of
// FindSyslineAtDatetime(after) and then reading forward sequentially —
// the positioned search only needs to happen once per query.
func (r *Reader) FindSyslineBetween(after, before time.Time) ([]*Sysline, error) {
	start := r.FindSyslineAtDatetime(after)
	if start.Status == xline.StatusErr {
		return nil, start.Err
	}
	if start.Status == xline.StatusDone {
		return nil, nil
	}

	var out []*Sysline
	sl := start.Sysline
	next := start.Next
	for {
		if !sl.DT.Before(before) {
			break
		}
		out = append(out, sl)
		if start.Status == xline.StatusFoundAtEOF {
			break
		}
		res := r.FindSysline(next)
		if res.Status == xline.StatusErr {
			return out, res.Err
		}
		if res.Status == xline.StatusDone {
			break
		}
		sl = res.Sysline
		next = res.Next
		start.Status = res.Status
	}
	return out, nil
}
