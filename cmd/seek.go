package cmd

import (
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/tberlioz/logseek/internal/block"
	"github.com/tberlioz/logseek/internal/sysline"
	"github.com/tberlioz/logseek/output"
)

var (
	seekFile    string
	seekAt      string
	seekBetween []string
)

// timeLayouts is the small set of formats logseek itself accepts on the
// command line for --at/--between; unrelated to the much larger
// xdatetime.Catalogue used to parse timestamps embedded in log lines.
var timeLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02 15:04:05.000",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"2006-01-02",
}

var seekCmd = &cobra.Command{
	Use:   "seek",
	Short: "Find the first sysline at or after a given datetime, without scanning the whole file",
	RunE:  runSeek,
}

func init() {
	seekCmd.Flags().StringVar(&seekFile, "file", "", "Log file to search (required)")
	seekCmd.Flags().StringVar(&seekAt, "at", "", "Find the first sysline at or after this datetime")
	seekCmd.Flags().StringSliceVar(&seekBetween, "between", nil, "Find all syslines in [start, end): --between <start>,<end>")
	seekCmd.MarkFlagRequired("file")
}

func parseQueryTime(s string) (time.Time, error) {
	loc, err := cfg.Location()
	if err != nil {
		return time.Time{}, err
	}
	for _, layout := range timeLayouts {
		if t, err := time.ParseInLocation(layout, s, loc); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("could not parse %q as a datetime (tried %d layouts)", s, len(timeLayouts))
}

func runSeek(cmd *cobra.Command, args []string) error {
	if seekAt == "" && len(seekBetween) == 0 {
		return fmt.Errorf("one of --at or --between is required")
	}
	if seekAt != "" && len(seekBetween) != 0 {
		return fmt.Errorf("--at and --between are mutually exclusive")
	}
	if len(seekBetween) != 0 && len(seekBetween) != 2 {
		return fmt.Errorf("--between takes exactly two values: start,end")
	}

	start := time.Now()

	br, err := block.Open(seekFile, effectiveBlockSize())
	if err != nil {
		return fmt.Errorf("opening %s: %w", seekFile, err)
	}
	defer br.Close()

	loc, err := cfg.Location()
	if err != nil {
		return err
	}
	sr := sysline.NewReader(br, loc)

	var matches []*sysline.Sysline
	var query string

	if seekAt != "" {
		query = fmt.Sprintf("--at %s", seekAt)
		target, err := parseQueryTime(seekAt)
		if err != nil {
			return err
		}
		log.Debug().Time("target", target).Msg("binary-searching for datetime")
		res := sr.FindSyslineAtDatetime(target)
		if res.Err != nil {
			return res.Err
		}
		if res.Sysline != nil {
			matches = []*sysline.Sysline{res.Sysline}
		}
	} else {
		query = fmt.Sprintf("--between %s,%s", seekBetween[0], seekBetween[1])
		after, err := parseQueryTime(seekBetween[0])
		if err != nil {
			return err
		}
		before, err := parseQueryTime(seekBetween[1])
		if err != nil {
			return err
		}
		matches, err = sr.FindSyslineBetween(after, before)
		if err != nil {
			return err
		}
	}

	views := make([]output.SyslineView, len(matches))
	for i, sl := range matches {
		views[i] = syslineToView(sl)
	}

	result := output.SeekResult{
		File:      seekFile,
		Query:     query,
		Syslines:  views,
		ElapsedMs: time.Since(start).Milliseconds(),
	}

	fmt.Print(formatterFor().FormatSeek(result))
	return nil
}

func syslineToView(sl *sysline.Sysline) output.SyslineView {
	preview := string(sl.AsContiguousBytes())
	pattern := ""
	if sl.Pattern != nil {
		pattern = sl.Pattern.Pattern
	}
	return output.SyslineView{
		Offset:     uint64(sl.FileOffsetBegin()),
		NextOffset: uint64(sl.FileOffsetNext()),
		DateTime:   sl.DT,
		Pattern:    pattern,
		NumLines:   sl.NumLines(),
		Preview:    preview,
	}
}

func formatterFor() output.Formatter {
	switch {
	case jsonFlag:
		return output.NewJSONFormatter()
	case mdFlag:
		return output.NewMarkdownFormatter()
	default:
		return output.NewTextFormatter()
	}
}
