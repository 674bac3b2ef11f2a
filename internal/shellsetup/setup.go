package shellsetup

import (
	"fmt"
	"os"
	"path"
	"strconv"
	"strings"
)

const posixFunction = `fm() {
    fm_last_dir=$(mktemp "${TMPDIR:-/tmp}/fm.XXXXXX") || return
    command %[1]s --last-dir-file "$fm_last_dir" "$@"
    fm_status=$?
    if [ -s "$fm_last_dir" ] && [ ! -L "$fm_last_dir" ]; then
        fm_dest=$(cat "$fm_last_dir" 2>/dev/null)
        if [ -d "$fm_dest" ]; then
            cd "$fm_dest"
        fi
    fi
    rm -f "$fm_last_dir"
    return $fm_status
}
`

const fishFunction = `function fm
    set -l fm_last_dir (mktemp)
    or return
    command %[1]s --last-dir-file $fm_last_dir $argv
    set -l fm_status $status
    if test -s "$fm_last_dir" -a ! -L "$fm_last_dir"
        set -l fm_dest (cat "$fm_last_dir" 2>/dev/null)
        if test -d "$fm_dest"
            builtin cd "$fm_dest"
        end
    end
    rm -f "$fm_last_dir"
    return $fm_status
end
`

// Script returns a shell function that runs fm and then changes to the
// directory it was showing on quit. shell overrides detection from SHELL.
func Script(shell, executable string, getenv func(string) string) (string, error) {
	name := normalizeShellName(shell)
	if name == "" && getenv != nil {
		name = normalizeShellName(getenv("SHELL"))
	}
	if name == "" {
		name = "sh"
	}

	quoted := strconv.Quote(executable)
	switch name {
	case "bash", "zsh", "sh", "ksh", "dash", "mksh":
		return fmt.Sprintf(posixFunction, quoted), nil
	case "fish":
		return fmt.Sprintf(fishFunction, quoted), nil
	default:
		return "", fmt.Errorf("unsupported shell %q", name)
	}
}

// WriteLastDir records dir for the shell function. An empty path does nothing.
func WriteLastDir(path, dir string) error {
	if path == "" || dir == "" {
		return nil
	}
	return os.WriteFile(path, []byte(dir), 0o600)
}

func normalizeShellName(value string) string {
	value = extractExecutable(value)
	if value == "" {
		return ""
	}
	return strings.ToLower(path.Base(value))
}

func extractExecutable(value string) string {
	value = strings.TrimSpace(value)
	if value == "" {
		return ""
	}

	for _, quote := range []string{`"`, "'"} {
		if strings.HasPrefix(value, quote) {
			value = value[1:]
			if idx := strings.Index(value, quote); idx >= 0 {
				return value[:idx]
			}
			return value
		}
	}

	if idx := strings.IndexAny(value, " \t"); idx >= 0 {
		return value[:idx]
	}
	return value
}
