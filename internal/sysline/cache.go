package sysline

import (
	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/tberlioz/logseek/internal/block"
	"github.com/tberlioz/logseek/internal/xdatetime"
)

// findSyslineCacheSize bounds how many FindSysline results a Reader keeps,
// keyed by the offset each lookup was made with, for O(1) re-lookup
// (spec.md §5's find_sysline_cache).
// Deliberately small relative to block.DefaultBlockCacheSize: the binary
// search in FindSyslineAtDatetime revisits a handful of candidate offsets
// repeatedly, not the whole file.
const findSyslineCacheSize = 64

// parseDatetimeCacheSize bounds the memo of "datetime parse attempted at
// this Line's starting offset, here is what happened" — avoids re-running
// the full catalogue scan every time the same Line is visited again by a
// later binary-search probe.
const parseDatetimeCacheSize = 128

type datetimeAttempt struct {
	PatternIdx int
	Match      xdatetime.Match
	Matched    bool
}

func newFindSyslineCache() *lru.Cache[block.FileOffset, *Sysline] {
	c, err := lru.New[block.FileOffset, *Sysline](findSyslineCacheSize)
	if err != nil {
		panic(err) // findSyslineCacheSize is a positive constant; New only errors on size<=0
	}
	return c
}

func newParseDatetimeCache() *lru.Cache[block.FileOffset, datetimeAttempt] {
	c, err := lru.New[block.FileOffset, datetimeAttempt](parseDatetimeCacheSize)
	if err != nil {
		panic(err)
	}
	return c
}
