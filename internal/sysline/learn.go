package sysline

import "sort"

// Pattern-set learning/narrowing (spec.md §5.2), grounded on
// syslinereader.rs's dt_patterns_update/dt_patterns_analysis: while the
// first few syslines are assembled, every pattern that successfully
// matched is tallied. Once enough syslines have been seen, the reader
// narrows itself down to the most frequently matching pattern(s), so the
// rest of the file is scanned against an activeWidth-entry (one-entry)
// slice of the catalogue instead of the whole ~40-entry table.
const (
	// learnWidth bounds how many distinct patterns are tracked during the
	// learning phase (syslinereader.rs's DT_PATTERN_MAX_PRE_ANALYSIS).
	learnWidth = 4
	// analysisThreshold is how many syslines must be assembled before
	// narrowing kicks in (syslinereader.rs's ANALYSIS_THRESHOLD).
	analysisThreshold = 5
	// activeWidth bounds how many patterns survive narrowing
	// (syslinereader.rs's DT_PATTERN_MAX).
	activeWidth = 1
)

// recordPatternUse tallies a successful match against catalogue index idx.
// A no-op once narrowing has already happened.
func (r *Reader) recordPatternUse(idx int) {
	if r.analyzed || idx < 0 {
		return
	}
	r.dtPatternsCounts[idx]++
	if len(r.dtPatterns) < learnWidth {
		seen := false
		for _, e := range r.dtPatterns {
			if e == idx {
				seen = true
				break
			}
		}
		if !seen {
			r.dtPatterns = append(r.dtPatterns, idx)
		}
	}
}

// maybeAnalyze narrows the active pattern set once analysisThreshold
// syslines have been seen. Ties are broken by catalogue index so the
// choice is deterministic.
func (r *Reader) maybeAnalyze() {
	if r.analyzed || r.syslineCount < analysisThreshold {
		return
	}
	var max uint64
	for _, c := range r.dtPatternsCounts {
		if c > max {
			max = c
		}
	}
	winners := make([]int, 0, len(r.dtPatternsCounts))
	for idx, c := range r.dtPatternsCounts {
		if c >= max {
			winners = append(winners, idx)
		}
	}
	sort.Ints(winners)
	if len(winners) > activeWidth {
		winners = winners[:activeWidth]
	}
	r.activeIndices = winners
	r.analyzed = true
}
