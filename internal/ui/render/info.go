package render

import (
	"fmt"
	"strings"
	"time"

	fsutil "github.com/tspivey/fm/internal/fs"
	statepkg "github.com/tspivey/fm/internal/state"
)

const infoTimeLayout = "2006-01-02 15:04"

// EntryInfo summarizes an entry for the info command.
func EntryInfo(entry *statepkg.FileEntry) string {
	parts := []string{entry.Name, entry.Kind()}
	if entry.Hidden() {
		parts = append(parts, "hidden")
	}
	if !entry.IsDir || entry.IsSymlink {
		parts = append(parts, fsutil.FormatSize(entry.Size))
	}
	parts = append(parts,
		"modified "+formatModified(entry.Modified),
		entry.Mode.Perm().String(),
	)
	return strings.Join(parts, ", ")
}

// UsageLine describes the result of measuring an entry.
func UsageLine(name string, usage fsutil.Usage) string {
	text := fmt.Sprintf("%s: %s", name, fsutil.FormatSize(usage.Bytes))
	if usage.Files > 1 {
		text += fmt.Sprintf(" in %d files", usage.Files)
	}
	if usage.Skipped > 0 {
		text += fmt.Sprintf(", %d unreadable", usage.Skipped)
	}
	return text
}

func formatModified(t time.Time) string {
	if t.IsZero() {
		return "unknown"
	}
	return t.Local().Format(infoTimeLayout)
}
