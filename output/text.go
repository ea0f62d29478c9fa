package output

import (
	"fmt"
	"os"
	"strings"

	"golang.org/x/term"
)

// TextFormatter renders results as a bordered text table when stdout is an
// interactive terminal, in the same box-drawing style as the teacher's
// FormatEventSummary. When stdout is piped or redirected, it drops the
// box-drawing and prints one tab-separated record per sysline instead,
// whose last field is the sysline's full text with its own line breaks, so
// downstream tools (grep, cut, NDJSON-style pipelines) don't have to fight
// box-drawing characters and padding — the same terminal-vs-pipe switch the
// teacher's output/query_table.go makes with term.GetSize.
type TextFormatter struct{}

// NewTextFormatter returns a TextFormatter.
func NewTextFormatter() *TextFormatter { return &TextFormatter{} }

func isOutputTerminal() bool {
	return term.IsTerminal(int(os.Stdout.Fd()))
}

func (tf *TextFormatter) FormatSeek(r SeekResult) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "logseek seek %s\nfile: %s\nmatched %d sysline(s) in %dms\n\n",
		r.Query, r.File, len(r.Syslines), r.ElapsedMs)

	if len(r.Syslines) == 0 {
		sb.WriteString("(no matches)\n")
		return sb.String()
	}

	if !isOutputTerminal() {
		for _, sl := range r.Syslines {
			fmt.Fprintf(&sb, "%d\t%s\t%s\t%d\t%s\n",
				sl.Offset,
				sl.DateTime.Format(timeDisplayLayout),
				sl.Pattern,
				sl.NumLines,
				sl.Preview,
			)
		}
		return sb.String()
	}

	headers := []string{"Offset", "DateTime", "Pattern", "Lines", "Preview"}
	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = len(h)
	}
	rows := make([][5]string, len(r.Syslines))
	for i, sl := range r.Syslines {
		rows[i] = [5]string{
			fmt.Sprintf("%d", sl.Offset),
			sl.DateTime.Format(timeDisplayLayout),
			sl.Pattern,
			fmt.Sprintf("%d", sl.NumLines),
			truncate(sl.Preview, 60),
		}
		for j, cell := range rows[i] {
			if len(cell) > widths[j] {
				widths[j] = len(cell)
			}
		}
	}

	writeSep := func() {
		sb.WriteByte('+')
		for _, w := range widths {
			sb.WriteString(strings.Repeat("-", w+2))
			sb.WriteByte('+')
		}
		sb.WriteByte('\n')
	}
	writeRow := func(cells []string) {
		sb.WriteByte('|')
		for j, c := range cells {
			fmt.Fprintf(&sb, " %-*s |", widths[j], c)
		}
		sb.WriteByte('\n')
	}

	writeSep()
	writeRow(headers)
	writeSep()
	for _, row := range rows {
		writeRow(row[:])
	}
	writeSep()
	return sb.String()
}

func (tf *TextFormatter) FormatScan(r ScanResult) string {
	return fmt.Sprintf(`logseek scan
file:            %s
size:            %s
syslines:        %d
first datetime:  %s
last datetime:   %s
dominant format: %s
elapsed:         %dms
`,
		r.File,
		formatBytes(r.FileSize),
		r.SyslineCount,
		r.FirstDateTime.Format(timeDisplayLayout),
		r.LastDateTime.Format(timeDisplayLayout),
		r.DominantFormat,
		r.ElapsedMs,
	)
}

const timeDisplayLayout = "2006-01-02 15:04:05.000 -0700"

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n-1] + "…"
}
