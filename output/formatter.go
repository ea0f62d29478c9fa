// Package output formats logseek search results for display: as plain
// text tables, JSON, or Markdown (SPEC_FULL.md §14). Grounded on the
// teacher's output/formatter.go Formatter interface and its three
// implementations (text/json/markdown), generalized from a PostgreSQL log
// analysis report to a sysline lookup result.
package output

import (
	"fmt"
	"time"
)

// SyslineView is the display-ready projection of a sysline.Sysline: the
// output package never imports internal/sysline directly so it stays
// decoupled from the search engine's cache/index internals.
type SyslineView struct {
	Offset     uint64
	NextOffset uint64
	DateTime   time.Time
	Pattern    string
	NumLines   int
	Preview    string
}

// SeekResult is what a `logseek seek` invocation hands to a Formatter.
type SeekResult struct {
	File      string
	Query     string
	Syslines  []SyslineView
	ElapsedMs int64
}

// ScanResult is what a `logseek scan` invocation hands to a Formatter
// (SPEC_FULL.md §12.4): file-level summary statistics rather than a
// specific lookup's matches.
type ScanResult struct {
	File           string
	FileSize       int64
	SyslineCount   int
	FirstDateTime  time.Time
	LastDateTime   time.Time
	DominantFormat string
	ElapsedMs      int64
}

// Formatter renders a SeekResult or ScanResult for display.
type Formatter interface {
	FormatSeek(r SeekResult) string
	FormatScan(r ScanResult) string
}

// formatBytes converts a byte count into a human-readable size.
func formatBytes(bytes int64) string {
	const (
		KB = 1024
		MB = 1024 * KB
		GB = 1024 * MB
		TB = 1024 * GB
	)
	switch {
	case bytes >= TB:
		return fmt.Sprintf("%.2f TB", float64(bytes)/float64(TB))
	case bytes >= GB:
		return fmt.Sprintf("%.2f GB", float64(bytes)/float64(GB))
	case bytes >= MB:
		return fmt.Sprintf("%.2f MB", float64(bytes)/float64(MB))
	case bytes >= KB:
		return fmt.Sprintf("%.2f KB", float64(bytes)/float64(KB))
	default:
		return fmt.Sprintf("%d B", bytes)
	}
}
