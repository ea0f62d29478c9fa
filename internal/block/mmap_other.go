//go:build !(linux || darwin)

package block

import "os"

// mmapFile is unavailable on this platform; callers fall back to buffered
// ReadAt, mirroring the teacher's parser/mmap_parser_unsupported.go.
func mmapFile(f *os.File, size int64) ([]byte, func() error, error) {
	return nil, nil, errMmapUnsupported
}
