package fs

import (
	"fmt"
	"os"
	"strings"
	"time"
)

// Entry represents a single file or directory on disk.
//
// Size, Modified and Mode describe the entry itself (a symlink is measured as
// the link). IsDir follows symlinks so linked directories can be entered.
type Entry struct {
	Name      string
	FullPath  string
	IsDir     bool
	IsSymlink bool
	Size      int64
	Modified  time.Time
	Mode      os.FileMode
}

// Kind returns a short label for the entry type.
func (e Entry) Kind() string {
	switch {
	case e.IsSymlink && e.IsDir:
		return "link to directory"
	case e.IsSymlink:
		return "link"
	case e.IsDir:
		return "directory"
	default:
		return "file"
	}
}

// Hidden reports whether the entry is a dotfile.
func (e Entry) Hidden() bool {
	return strings.HasPrefix(e.Name, ".")
}

// FormatSize renders a byte count in binary units.
func FormatSize(size int64) string {
	const unit = 1024
	if size < unit {
		return fmt.Sprintf("%d B", size)
	}
	div, exp := int64(unit), 0
	for n := size / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(size)/float64(div), "KMGTPE"[exp])
}
