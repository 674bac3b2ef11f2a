package fs

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"time"
)

const trashInfoTimeLayout = "2006-01-02T15:04:05"

// HomeTrash moves files into a FreeDesktop.org trash so they can be restored
// by any compliant file manager. Files on the same device as Root go to the
// home trash; files on other mounts go to that mount's $topdir/.Trash/$uid or
// $topdir/.Trash-$uid.
type HomeTrash struct {
	Root string // usually $XDG_DATA_HOME/Trash
	now  func() time.Time

	deviceOf func(path string) (uint64, error)
}

// NewHomeTrash locates the home trash directory for the current user.
func NewHomeTrash() (*HomeTrash, error) {
	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("cannot locate trash: %w", err)
		}
		dataHome = filepath.Join(home, ".local", "share")
	}
	return &HomeTrash{Root: filepath.Join(dataHome, "Trash"), now: time.Now, deviceOf: deviceID}, nil
}

// Trash moves path into the trash. The trashinfo record is written first so a
// failed move never leaves an orphaned file without its original location.
func (t *HomeTrash) Trash(path string) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return err
	}
	if _, err := os.Lstat(abs); err != nil {
		return err
	}

	root, recorded, err := t.locate(abs)
	if err != nil {
		return err
	}

	filesDir := filepath.Join(root, "files")
	infoDir := filepath.Join(root, "info")
	for _, dir := range []string{filesDir, infoDir} {
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return fmt.Errorf("cannot create trash: %w", err)
		}
	}

	name, infoFile, err := t.reserveName(infoDir, filepath.Base(abs))
	if err != nil {
		return err
	}

	now := time.Now
	if t.now != nil {
		now = t.now
	}
	record := fmt.Sprintf("[Trash Info]\nPath=%s\nDeletionDate=%s\n",
		(&url.URL{Path: recorded}).EscapedPath(), now().Format(trashInfoTimeLayout))
	_, writeErr := infoFile.WriteString(record)
	closeErr := infoFile.Close()
	infoPath := filepath.Join(infoDir, name+".trashinfo")
	if err := errors.Join(writeErr, closeErr); err != nil {
		_ = os.Remove(infoPath)
		return fmt.Errorf("cannot write trash info: %w", err)
	}

	if err := os.Rename(abs, filepath.Join(filesDir, name)); err != nil {
		_ = os.Remove(infoPath)
		return err
	}
	return nil
}

// locate picks the trash directory for abs and the path its trashinfo record
// stores: absolute for the home trash, relative to the mount for a topdir trash.
func (t *HomeTrash) locate(abs string) (string, string, error) {
	deviceOf := t.deviceOf
	if deviceOf == nil {
		deviceOf = deviceID
	}

	fileDev, err := deviceOf(abs)
	if err != nil {
		return "", "", err
	}
	homeDev, err := deviceOf(existingAncestor(t.Root))
	if err != nil {
		return "", "", fmt.Errorf("cannot locate trash: %w", err)
	}
	if fileDev == homeDev {
		return t.Root, abs, nil
	}

	top := mountTop(abs, fileDev, deviceOf)
	root, err := topdirTrash(top)
	if err != nil {
		return "", "", err
	}
	rel, err := filepath.Rel(top, abs)
	if err != nil {
		return "", "", err
	}
	return root, filepath.ToSlash(rel), nil
}

// mountTop walks up from abs to the highest directory still on dev.
func mountTop(abs string, dev uint64, deviceOf func(string) (uint64, error)) string {
	cur := filepath.Dir(abs)
	for {
		parent := filepath.Dir(cur)
		if parent == cur {
			return cur
		}
		if d, err := deviceOf(parent); err != nil || d != dev {
			return cur
		}
		cur = parent
	}
}

// topdirTrash prefers an administrator-provided $top/.Trash (a real directory
// with the sticky bit) and otherwise uses $top/.Trash-$uid.
func topdirTrash(top string) (string, error) {
	uid := strconv.Itoa(os.Getuid())

	shared := filepath.Join(top, ".Trash")
	if info, err := os.Lstat(shared); err == nil && info.IsDir() && info.Mode()&os.ModeSticky != 0 {
		dir := filepath.Join(shared, uid)
		if err := os.MkdirAll(dir, 0o700); err == nil {
			return dir, nil
		}
	}

	dir := filepath.Join(top, ".Trash-"+uid)
	if err := os.Mkdir(dir, 0o700); err != nil && !errors.Is(err, os.ErrExist) {
		return "", fmt.Errorf("cannot create trash on %s: %w", top, err)
	}
	info, err := os.Lstat(dir)
	if err != nil {
		return "", fmt.Errorf("cannot create trash on %s: %w", top, err)
	}
	if !info.IsDir() {
		return "", fmt.Errorf("cannot use trash %s: not a directory", dir)
	}
	return dir, nil
}

func existingAncestor(path string) string {
	for {
		if _, err := os.Lstat(path); err == nil {
			return path
		}
		parent := filepath.Dir(path)
		if parent == path {
			return path
		}
		path = parent
	}
}

// reserveName creates the .trashinfo file exclusively, adding a numeric suffix
// until an unused name is found.
func (t *HomeTrash) reserveName(infoDir, base string) (string, *os.File, error) {
	for i := 1; ; i++ {
		name := base
		if i > 1 {
			name = base + "." + strconv.Itoa(i)
		}
		f, err := os.OpenFile(filepath.Join(infoDir, name+".trashinfo"), os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o600)
		if err == nil {
			return name, f, nil
		}
		if !errors.Is(err, os.ErrExist) {
			return "", nil, fmt.Errorf("cannot write trash info: %w", err)
		}
	}
}
