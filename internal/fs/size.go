package fs

import (
	iofs "io/fs"
	"os"
	"sync/atomic"

	"github.com/charlievieth/fastwalk"
)

// Usage is the result of measuring a file tree.
type Usage struct {
	Bytes   int64
	Files   int64
	Skipped int64 // entries that could not be read
}

// DiskUsage sums the apparent sizes of path and everything below it. Symlinks
// are counted as links and never followed.
func DiskUsage(path string) (Usage, error) {
	info, err := os.Lstat(path)
	if err != nil {
		return Usage{}, err
	}
	if !info.IsDir() {
		return Usage{Bytes: info.Size(), Files: 1}, nil
	}

	var total, files, skipped atomic.Int64
	conf := fastwalk.Config{Follow: false}
	err = fastwalk.Walk(&conf, path, func(p string, d iofs.DirEntry, err error) error {
		if err != nil {
			skipped.Add(1)
			return nil
		}
		info, err := d.Info()
		if err != nil {
			skipped.Add(1)
			return nil
		}
		total.Add(info.Size())
		if !d.IsDir() {
			files.Add(1)
		}
		return nil
	})
	if err != nil {
		return Usage{}, err
	}

	return Usage{Bytes: total.Load(), Files: files.Load(), Skipped: skipped.Load()}, nil
}
