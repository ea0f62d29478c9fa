package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/tberlioz/logseek/internal/block"
	"github.com/tberlioz/logseek/internal/sysline"
	"github.com/tberlioz/logseek/internal/xline"
	"github.com/tberlioz/logseek/output"
)

var scanFile string

var scanCmd = &cobra.Command{
	Use:   "scan",
	Short: "Summarize a file's datetime range, sysline count, and dominant timestamp format",
	RunE:  runScan,
}

func init() {
	scanCmd.Flags().StringVar(&scanFile, "file", "", "Log file to scan (required)")
	scanCmd.MarkFlagRequired("file")
}

func runScan(cmd *cobra.Command, args []string) error {
	start := time.Now()

	br, err := block.Open(scanFile, effectiveBlockSize())
	if err != nil {
		return fmt.Errorf("opening %s: %w", scanFile, err)
	}
	defer br.Close()

	loc, err := cfg.Location()
	if err != nil {
		return err
	}
	sr := sysline.NewReader(br, loc)

	var (
		count         int
		first, last   time.Time
		patternCounts = make(map[string]int)
		dominant      string
		dominantCount int
	)

	var fo block.FileOffset
	for {
		res := sr.FindSysline(fo)
		if res.Status == xline.StatusErr {
			return res.Err
		}
		if res.Status == xline.StatusDone {
			break
		}

		sl := res.Sysline
		if count == 0 {
			first = sl.DT
		}
		last = sl.DT
		count++

		if sl.Pattern != nil {
			patternCounts[sl.Pattern.Pattern]++
			if patternCounts[sl.Pattern.Pattern] > dominantCount {
				dominant = sl.Pattern.Pattern
				dominantCount = patternCounts[sl.Pattern.Pattern]
			}
		}

		if res.Status == xline.StatusFoundAtEOF {
			break
		}
		fo = res.Next
	}

	result := output.ScanResult{
		File:           scanFile,
		FileSize:       int64(br.Filesz()),
		SyslineCount:   count,
		FirstDateTime:  first,
		LastDateTime:   last,
		DominantFormat: dominant,
		ElapsedMs:      time.Since(start).Milliseconds(),
	}

	fmt.Print(formatterFor().FormatScan(result))
	return nil
}
