package block

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/bodgit/sevenzip"
)

// openSevenZipMember opens filename as a .7z archive and returns the
// decompressed bytes of the log file inside it: the named member if
// memberHint is non-empty, otherwise the largest regular file in the
// archive (syslog archives are typically one log file plus small
// incidental entries). Grounded on the shape of the teacher's
// parser/tar_parser.go, which also picks a member out of a multi-entry
// archive and re-runs format detection on its contents; sevenzip plays
// the role tar does there, for the .7z container.
func openSevenZipMember(filename, memberHint string) ([]byte, error) {
	r, err := sevenzip.OpenReader(filename)
	if err != nil {
		return nil, fmt.Errorf("block: open 7z archive %s: %w", filename, err)
	}
	defer r.Close()

	var chosen *sevenzip.File
	if memberHint != "" {
		for _, f := range r.File {
			if f.Name == memberHint {
				chosen = f
				break
			}
		}
		if chosen == nil {
			return nil, fmt.Errorf("block: member %q not found in %s", memberHint, filename)
		}
	} else {
		candidates := make([]*sevenzip.File, 0, len(r.File))
		for _, f := range r.File {
			if !f.FileInfo().IsDir() {
				candidates = append(candidates, f)
			}
		}
		if len(candidates) == 0 {
			return nil, fmt.Errorf("block: no regular files in archive %s", filename)
		}
		sort.Slice(candidates, func(i, j int) bool {
			return candidates[i].FileInfo().Size() > candidates[j].FileInfo().Size()
		})
		chosen = candidates[0]
	}

	rc, err := chosen.Open()
	if err != nil {
		return nil, fmt.Errorf("block: open archive member %s: %w", chosen.Name, err)
	}
	defer rc.Close()

	var buf strings.Builder
	if _, err := io.Copy(&buf, rc); err != nil {
		return nil, fmt.Errorf("block: read archive member %s: %w", chosen.Name, err)
	}
	return []byte(buf.String()), nil
}

func isSevenZip(filename string) bool {
	return strings.HasSuffix(strings.ToLower(filename), ".7z")
}
