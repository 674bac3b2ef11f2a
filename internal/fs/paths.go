package fs

import (
	"os"
	"path/filepath"
)

// ExpandUserPath replaces a leading "~" or "~/" with the home directory.
// Other forms, such as "~user", are returned unchanged.
func ExpandUserPath(path string) string {
	if path == "" || path[0] != '~' {
		return path
	}

	if len(path) == 1 {
		if home, err := os.UserHomeDir(); err == nil {
			return home
		}
		return path
	}

	if path[1] != '/' {
		return path
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}

	return filepath.Join(home, path[2:])
}

// ResolvePath interprets input relative to base after expanding "~".
func ResolvePath(base, input string) string {
	path := ExpandUserPath(input)
	if !filepath.IsAbs(path) {
		path = filepath.Join(base, path)
	}
	return filepath.Clean(path)
}
