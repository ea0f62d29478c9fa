package output

import (
	"fmt"
	"strings"
)

// MarkdownFormatter renders results as a Markdown table, grounded on the
// teacher's output/markdown.go table-building helpers (pipe-delimited rows
// with a header separator), scaled down to this report's single section.
type MarkdownFormatter struct{}

// NewMarkdownFormatter returns a MarkdownFormatter.
func NewMarkdownFormatter() *MarkdownFormatter { return &MarkdownFormatter{} }

func (mf *MarkdownFormatter) FormatSeek(r SeekResult) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "## logseek seek %s\n\n", r.Query)
	fmt.Fprintf(&sb, "- **file**: `%s`\n- **matches**: %d\n- **elapsed**: %dms\n\n", r.File, len(r.Syslines), r.ElapsedMs)

	if len(r.Syslines) == 0 {
		sb.WriteString("_no matches_\n")
		return sb.String()
	}

	sb.WriteString("| Offset | DateTime | Pattern | Lines | Preview |\n")
	sb.WriteString("|---|---|---|---|---|\n")
	for _, sl := range r.Syslines {
		fmt.Fprintf(&sb, "| %d | %s | `%s` | %d | %s |\n",
			sl.Offset,
			sl.DateTime.Format("2006-01-02 15:04:05.000 -0700"),
			sl.Pattern,
			sl.NumLines,
			mdEscape(truncate(sl.Preview, 80)),
		)
	}
	return sb.String()
}

func (mf *MarkdownFormatter) FormatScan(r ScanResult) string {
	var sb strings.Builder
	sb.WriteString("## logseek scan\n\n")
	fmt.Fprintf(&sb, "| field | value |\n|---|---|\n")
	fmt.Fprintf(&sb, "| file | `%s` |\n", r.File)
	fmt.Fprintf(&sb, "| size | %s |\n", formatBytes(r.FileSize))
	fmt.Fprintf(&sb, "| syslines | %d |\n", r.SyslineCount)
	fmt.Fprintf(&sb, "| first datetime | %s |\n", r.FirstDateTime.Format("2006-01-02 15:04:05.000 -0700"))
	fmt.Fprintf(&sb, "| last datetime | %s |\n", r.LastDateTime.Format("2006-01-02 15:04:05.000 -0700"))
	fmt.Fprintf(&sb, "| dominant format | `%s` |\n", r.DominantFormat)
	fmt.Fprintf(&sb, "| elapsed | %dms |\n", r.ElapsedMs)
	return sb.String()
}

func mdEscape(s string) string {
	return strings.ReplaceAll(s, "|", "\\|")
}
