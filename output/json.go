package output

import (
	"encoding/json"
	"fmt"
)

// SeekResultJSON and ScanResultJSON mirror the teacher's output/json.go
// pattern: hand-written structs with explicit json tags, one per report
// shape, formatted as RFC 3339 strings with a fixed nine-digit fraction
// ("2006-01-02T15:04:05.000000000Z07:00") rather than re-exposing
// time.Time's default marshaling.
type SyslineViewJSON struct {
	Offset     uint64 `json:"offset"`
	NextOffset uint64 `json:"next_offset"`
	DateTime   string `json:"datetime"`
	Pattern    string `json:"pattern"`
	NumLines   int    `json:"num_lines"`
	Preview    string `json:"preview"`
}

type SeekResultJSON struct {
	File      string            `json:"file"`
	Query     string            `json:"query"`
	Syslines  []SyslineViewJSON `json:"syslines"`
	ElapsedMs int64             `json:"elapsed_ms"`
}

type ScanResultJSON struct {
	File           string `json:"file"`
	FileSize       int64  `json:"file_size"`
	SyslineCount   int    `json:"sysline_count"`
	FirstDateTime  string `json:"first_datetime"`
	LastDateTime   string `json:"last_datetime"`
	DominantFormat string `json:"dominant_format"`
	ElapsedMs      int64  `json:"elapsed_ms"`
}

// JSONFormatter renders results as indented JSON.
type JSONFormatter struct{}

// NewJSONFormatter returns a JSONFormatter.
func NewJSONFormatter() *JSONFormatter { return &JSONFormatter{} }

func (jf *JSONFormatter) FormatSeek(r SeekResult) string {
	out := SeekResultJSON{
		File:      r.File,
		Query:     r.Query,
		ElapsedMs: r.ElapsedMs,
		Syslines:  make([]SyslineViewJSON, len(r.Syslines)),
	}
	for i, sl := range r.Syslines {
		out.Syslines[i] = SyslineViewJSON{
			Offset:     sl.Offset,
			NextOffset: sl.NextOffset,
			DateTime:   sl.DateTime.Format("2006-01-02T15:04:05.000000000Z07:00"),
			Pattern:    sl.Pattern,
			NumLines:   sl.NumLines,
			Preview:    sl.Preview,
		}
	}
	b, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return fmt.Sprintf(`{"error": %q}`, err.Error())
	}
	return string(b)
}

func (jf *JSONFormatter) FormatScan(r ScanResult) string {
	out := ScanResultJSON{
		File:           r.File,
		FileSize:       r.FileSize,
		SyslineCount:   r.SyslineCount,
		FirstDateTime:  r.FirstDateTime.Format("2006-01-02T15:04:05.000000000Z07:00"),
		LastDateTime:   r.LastDateTime.Format("2006-01-02T15:04:05.000000000Z07:00"),
		DominantFormat: r.DominantFormat,
		ElapsedMs:      r.ElapsedMs,
	}
	b, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return fmt.Sprintf(`{"error": %q}`, err.Error())
	}
	return string(b)
}
