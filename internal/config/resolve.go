package config

import (
	"fmt"
	"os/exec"
	"strings"

	"github.com/kelseyhightower/envconfig"
	fsutil "github.com/tspivey/fm/internal/fs"
	statepkg "github.com/tspivey/fm/internal/state"
)

const defaultShell = "/bin/sh"

// Editors tried, in order, when nothing is configured.
var defaultEditors = []string{"vim", "nano", "vi"}

// fmEnvironment holds the FM_* overrides.
type fmEnvironment struct {
	Sort         string
	Opener       string
	Editor       string
	Shell        string
	TrashCommand string `envconfig:"TRASH_COMMAND"`
	LogFile      string `envconfig:"LOG_FILE"`
	LogLevel     string `envconfig:"LOG_LEVEL"`
}

// systemEnvironment holds the conventional variables shared with other tools.
type systemEnvironment struct {
	Visual string `envconfig:"VISUAL"`
	Editor string `envconfig:"EDITOR"`
	Shell  string `envconfig:"SHELL"`
}

// Settings is the effective configuration after applying fallbacks. Command
// fields are argument vectors; a nil vector means the feature is unavailable.
type Settings struct {
	SortOrder    statepkg.SortOrder
	Opener       []string
	Editor       []string
	Shell        []string
	TrashCommand []string // nil selects the built-in home trash
	LogFile      string
	LogLevel     string

	// Warnings describes settings that were accepted but will not work as
	// written, such as an editor missing from PATH.
	Warnings []string
}

// Resolve applies the environment and built-in defaults to c. lookPath
// locates editor executables; nil means exec.LookPath.
func (c *Config) Resolve(lookPath func(string) (string, error)) (*Settings, error) {
	if lookPath == nil {
		lookPath = exec.LookPath
	}

	var fmEnv fmEnvironment
	if err := envconfig.Process("fm", &fmEnv); err != nil {
		return nil, fmt.Errorf("failed to load environment: %w", err)
	}
	var sysEnv systemEnvironment
	if err := envconfig.Process("", &sysEnv); err != nil {
		return nil, fmt.Errorf("failed to load environment: %w", err)
	}

	settings := &Settings{
		Opener:       ParseCommand(firstNonEmpty(c.Opener, fmEnv.Opener)),
		Shell:        ParseCommand(firstNonEmpty(c.Shell, fmEnv.Shell, sysEnv.Shell, defaultShell)),
		TrashCommand: ParseCommand(firstNonEmpty(c.TrashCommand, fmEnv.TrashCommand)),
		LogFile:      fsutil.ExpandUserPath(firstNonEmpty(c.LogFile, fmEnv.LogFile)),
		LogLevel:     firstNonEmpty(c.LogLevel, fmEnv.LogLevel, "info"),
	}

	editor, warning := resolveEditor(lookPath, firstNonEmpty(c.Editor, fmEnv.Editor), sysEnv.Visual, sysEnv.Editor)
	settings.Editor = editor
	if warning != "" {
		settings.Warnings = append(settings.Warnings, warning)
	}

	order, err := statepkg.ParseSortOrder(firstNonEmpty(c.Sort, fmEnv.Sort, statepkg.SortNameAsc.String()))
	if err != nil {
		return nil, err
	}
	settings.SortOrder = order
	return settings, nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}

// resolveEditor keeps an explicitly configured editor even when it cannot be
// found, so editing reports the failure instead of silently using another
// program. Only the conventional VISUAL and EDITOR variables fall through.
func resolveEditor(lookPath func(string) (string, error), configured string, fallbacks ...string) ([]string, string) {
	args := ParseCommand(configured)
	if len(args) == 0 {
		return detectEditor(lookPath, fallbacks...), ""
	}
	if resolved, ok := resolveExecutable(args[0], lookPath); ok {
		args[0] = resolved
		return args, ""
	}
	return args, fmt.Sprintf("editor %q not found in PATH", args[0])
}

func detectEditor(lookPath func(string) (string, error), candidates ...string) []string {
	for _, candidate := range candidates {
		args := ParseCommand(candidate)
		if len(args) == 0 {
			continue
		}
		if resolved, ok := resolveExecutable(args[0], lookPath); ok {
			args[0] = resolved
			return args
		}
	}

	for _, name := range defaultEditors {
		if resolved, ok := resolveExecutable(name, lookPath); ok {
			return []string{resolved}
		}
	}
	return nil
}

func resolveExecutable(cmd string, lookPath func(string) (string, error)) (string, bool) {
	if cmd == "" {
		return "", false
	}
	path, err := lookPath(cmd)
	if err != nil || path == "" {
		return "", false
	}
	return path, true
}

// ParseCommand splits a command line into arguments, honouring single and
// double quotes. A leading "~" in the program name is expanded.
func ParseCommand(cmd string) []string {
	cmd = strings.TrimSpace(cmd)
	if cmd == "" {
		return nil
	}

	var args []string
	var current strings.Builder
	inSingle := false
	inDouble := false
	pending := false

	for _, r := range cmd {
		switch {
		case r == '\'' && !inDouble:
			inSingle = !inSingle
			pending = true
		case r == '"' && !inSingle:
			inDouble = !inDouble
			pending = true
		case !inSingle && !inDouble && (r == ' ' || r == '\t'):
			if pending {
				args = append(args, current.String())
				current.Reset()
				pending = false
			}
		default:
			current.WriteRune(r)
			pending = true
		}
	}

	if pending {
		args = append(args, current.String())
	}

	if len(args) > 0 {
		args[0] = fsutil.ExpandUserPath(args[0])
	}
	return args
}
