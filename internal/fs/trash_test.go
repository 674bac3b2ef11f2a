package fs

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"
	"time"
)

func newTestTrash(t *testing.T) *HomeTrash {
	t.Helper()
	return &HomeTrash{
		Root: filepath.Join(t.TempDir(), "Trash"),
		now:  func() time.Time { return time.Date(2024, 3, 1, 12, 30, 0, 0, time.Local) },
	}
}

func TestHomeTrashMovesFileAndWritesInfo(t *testing.T) {
	t.Parallel()

	trash := newTestTrash(t)
	dir := t.TempDir()
	target := filepath.Join(dir, "notes file.txt")
	if err := os.WriteFile(target, []byte("data"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	if err := trash.Trash(target); err != nil {
		t.Fatalf("Trash: %v", err)
	}

	if _, err := os.Lstat(target); !os.IsNotExist(err) {
		t.Fatalf("expected original to be gone, got %v", err)
	}
	if data, err := os.ReadFile(filepath.Join(trash.Root, "files", "notes file.txt")); err != nil || string(data) != "data" {
		t.Fatalf("trashed file missing or wrong: %q %v", data, err)
	}

	info, err := os.ReadFile(filepath.Join(trash.Root, "info", "notes file.txt.trashinfo"))
	if err != nil {
		t.Fatalf("read info: %v", err)
	}
	text := string(info)
	if !strings.HasPrefix(text, "[Trash Info]\n") {
		t.Fatalf("missing header: %q", text)
	}
	if !strings.Contains(text, "Path="+strings.ReplaceAll(target, " ", "%20")+"\n") {
		t.Fatalf("missing escaped path: %q", text)
	}
	if !strings.Contains(text, "DeletionDate=2024-03-01T12:30:00\n") {
		t.Fatalf("missing deletion date: %q", text)
	}
}

func TestHomeTrashAvoidsNameCollisions(t *testing.T) {
	t.Parallel()

	trash := newTestTrash(t)
	for i := 0; i < 2; i++ {
		dir := t.TempDir()
		target := filepath.Join(dir, "same.txt")
		if err := os.WriteFile(target, []byte{byte('a' + i)}, 0o644); err != nil {
			t.Fatalf("write: %v", err)
		}
		if err := trash.Trash(target); err != nil {
			t.Fatalf("Trash #%d: %v", i, err)
		}
	}

	for _, name := range []string{"same.txt", "same.txt.2"} {
		if _, err := os.Stat(filepath.Join(trash.Root, "files", name)); err != nil {
			t.Fatalf("expected %s in trash: %v", name, err)
		}
		if _, err := os.Stat(filepath.Join(trash.Root, "info", name+".trashinfo")); err != nil {
			t.Fatalf("expected %s.trashinfo: %v", name, err)
		}
	}
}

func TestHomeTrashMissingSourceLeavesNoInfo(t *testing.T) {
	t.Parallel()

	trash := newTestTrash(t)
	if err := trash.Trash(filepath.Join(t.TempDir(), "ghost")); !os.IsNotExist(err) {
		t.Fatalf("expected not-exist error, got %v", err)
	}
	if entries, _ := os.ReadDir(filepath.Join(trash.Root, "info")); len(entries) != 0 {
		t.Fatalf("expected no info records, got %d", len(entries))
	}
}

// onMount makes every path under mount report a device other than the rest
// of the filesystem.
func onMount(mount string) func(string) (uint64, error) {
	return func(path string) (uint64, error) {
		if path == mount || strings.HasPrefix(path, mount+string(filepath.Separator)) {
			return 2, nil
		}
		return 1, nil
	}
}

func writeUnder(t *testing.T, dir, rel string) string {
	t.Helper()
	path := filepath.Join(dir, rel)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte("data"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	return path
}

func TestHomeTrashUsesTopdirTrashOnOtherDevice(t *testing.T) {
	t.Parallel()

	trash := newTestTrash(t)
	mount := filepath.Join(t.TempDir(), "media")
	trash.deviceOf = onMount(mount)
	target := writeUnder(t, mount, "photos/a b.jpg")

	if err := trash.Trash(target); err != nil {
		t.Fatalf("Trash: %v", err)
	}

	root := filepath.Join(mount, ".Trash-"+strconv.Itoa(os.Getuid()))
	if _, err := os.Stat(filepath.Join(root, "files", "a b.jpg")); err != nil {
		t.Fatalf("expected file in topdir trash: %v", err)
	}
	info, err := os.ReadFile(filepath.Join(root, "info", "a b.jpg.trashinfo"))
	if err != nil {
		t.Fatalf("read info: %v", err)
	}
	if !strings.Contains(string(info), "Path=photos/a%20b.jpg\n") {
		t.Fatalf("expected path relative to the mount: %q", info)
	}
	if _, err := os.Stat(filepath.Join(trash.Root, "files")); !os.IsNotExist(err) {
		t.Fatalf("home trash should be untouched, got %v", err)
	}
	if st, err := os.Stat(root); err != nil || st.Mode().Perm() != 0o700 {
		t.Fatalf("topdir trash should be private: %v %v", st, err)
	}
}

func TestHomeTrashPrefersSharedStickyTrash(t *testing.T) {
	t.Parallel()

	trash := newTestTrash(t)
	mount := filepath.Join(t.TempDir(), "media")
	trash.deviceOf = onMount(mount)
	target := writeUnder(t, mount, "a.txt")
	shared := filepath.Join(mount, ".Trash")
	if err := os.Mkdir(shared, 0o777); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.Chmod(shared, 0o777|os.ModeSticky); err != nil {
		t.Fatalf("chmod: %v", err)
	}

	if err := trash.Trash(target); err != nil {
		t.Fatalf("Trash: %v", err)
	}

	uid := strconv.Itoa(os.Getuid())
	if _, err := os.Stat(filepath.Join(shared, uid, "files", "a.txt")); err != nil {
		t.Fatalf("expected file in shared trash: %v", err)
	}
	if _, err := os.Stat(filepath.Join(mount, ".Trash-"+uid)); !os.IsNotExist(err) {
		t.Fatalf("per-user topdir trash should not be created, got %v", err)
	}
}

func TestHomeTrashIgnoresSharedTrashWithoutStickyBit(t *testing.T) {
	t.Parallel()

	trash := newTestTrash(t)
	mount := filepath.Join(t.TempDir(), "media")
	trash.deviceOf = onMount(mount)
	target := writeUnder(t, mount, "a.txt")
	if err := os.Mkdir(filepath.Join(mount, ".Trash"), 0o777); err != nil {
		t.Fatalf("mkdir: %v", err)
	}

	if err := trash.Trash(target); err != nil {
		t.Fatalf("Trash: %v", err)
	}

	root := filepath.Join(mount, ".Trash-"+strconv.Itoa(os.Getuid()))
	if _, err := os.Stat(filepath.Join(root, "files", "a.txt")); err != nil {
		t.Fatalf("expected file in per-user topdir trash: %v", err)
	}
}

func TestMountTopStopsAtDeviceBoundary(t *testing.T) {
	t.Parallel()

	mount := filepath.Join(t.TempDir(), "media")
	got := mountTop(filepath.Join(mount, "a", "b", "c.txt"), 2, onMount(mount))
	if got != mount {
		t.Fatalf("mountTop() = %q, want %q", got, mount)
	}
}
