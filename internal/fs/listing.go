package fs

import (
	"os"
	"path/filepath"

	"golang.org/x/text/unicode/norm"
)

// ReadEntries lists the immediate children of dir, hidden entries included.
// The result has no particular order.
func ReadEntries(dir string) ([]Entry, error) {
	dirEntries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	entries := make([]Entry, 0, len(dirEntries))
	for _, e := range dirEntries {
		info, err := e.Info()
		if err != nil {
			// Removed between ReadDir and Lstat.
			continue
		}
		entries = append(entries, entryFromInfo(filepath.Join(dir, e.Name()), info))
	}
	return entries, nil
}

// Stat builds an Entry for a single path without following a final symlink.
func Stat(path string) (Entry, error) {
	info, err := os.Lstat(path)
	if err != nil {
		return Entry{}, err
	}
	return entryFromInfo(path, info), nil
}

func entryFromInfo(fullPath string, info os.FileInfo) Entry {
	isDir := info.IsDir()
	isSymlink := info.Mode()&os.ModeSymlink != 0
	if isSymlink {
		if target, err := os.Stat(fullPath); err == nil {
			isDir = target.IsDir()
		}
	}

	return Entry{
		Name:      norm.NFC.String(filepath.Base(fullPath)),
		FullPath:  fullPath,
		IsDir:     isDir,
		IsSymlink: isSymlink,
		Size:      info.Size(),
		Modified:  info.ModTime(),
		Mode:      info.Mode(),
	}
}
