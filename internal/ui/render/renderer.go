package render

import (
	"io"

	statepkg "github.com/tspivey/fm/internal/state"
	textutil "github.com/tspivey/fm/internal/textutil"
)

const (
	defaultWidth = 80

	clearToEOL = "\x1b[K"
)

// EmptyDirectoryText is spoken when the active directory has no entries.
const EmptyDirectoryText = "No entries"

// Renderer writes the single line of output that follows every action. Each
// line overwrites the previous one so a screen reader only ever has one row
// to read.
type Renderer struct {
	out       io.Writer
	freshLine bool
}

// NewRenderer creates a renderer writing to out
func NewRenderer(out io.Writer) *Renderer {
	return &Renderer{out: out}
}

// AfterPrompt records that a prompt left text on the current row; the next
// line is written below it instead of over it.
func (r *Renderer) AfterPrompt() {
	r.freshLine = true
}

// Render writes the line for the session's current state. With expand set the
// line is not truncated to the terminal width.
func (r *Renderer) Render(s *statepkg.Session, expand bool) error {
	text := Line(s)
	if !expand {
		text = textutil.TruncateToWidth(text, lineWidth(s))
	}

	prefix := "\r"
	if r.freshLine {
		prefix = "\r\n"
		r.freshLine = false
	}
	_, err := io.WriteString(r.out, prefix+text+clearToEOL)
	return err
}

// Line composes the text describing the outcome of the last action: the
// error, the notice, or the selected entry, sanitized for the terminal.
func Line(s *statepkg.Session) string {
	if s == nil {
		return ""
	}
	if s.LastError != nil {
		return textutil.SanitizeTerminalText(s.LastError.Error())
	}

	notice := textutil.SanitizeTerminalText(s.Notice)
	if notice != "" && !s.NoticeWithEntry {
		return notice
	}

	entry := EntryLine(s.Active())
	if notice != "" {
		return notice + ", " + entry
	}
	return entry
}

// EntryLine names the selected entry, marking directories with a trailing
// slash and symlinks with an at sign.
func EntryLine(view *statepkg.DirectoryView) string {
	if view == nil {
		return EmptyDirectoryText
	}
	entry := view.Current()
	if entry == nil {
		return EmptyDirectoryText
	}

	name := textutil.SanitizeTerminalText(entry.Name)
	if entry.IsDir {
		name += "/"
	}
	if entry.IsSymlink {
		name += "@"
	}
	return name
}

func lineWidth(s *statepkg.Session) int {
	width := defaultWidth
	if s != nil && s.ScreenWidth > 0 {
		width = s.ScreenWidth
	}
	// The last column is left free so the terminal never wraps.
	return max(width-1, 1)
}
