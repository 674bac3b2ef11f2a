//go:build unix

package fs

import "golang.org/x/sys/unix"

// deviceID reports the device holding path, without following a final symlink.
func deviceID(path string) (uint64, error) {
	var st unix.Stat_t
	if err := unix.Lstat(path, &st); err != nil {
		return 0, err
	}
	return uint64(st.Dev), nil
}
