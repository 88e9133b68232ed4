//go:build !windows

package archive

import (
	"archive/tar"
	"os"

	"golang.org/x/sys/unix"

	"github.com/PratikSonavane14/SFrame/internal/ui"
)

// restoreOwner restores file ownership when running as root. Best effort.
func restoreOwner(path string, uid, gid int) {
	if os.Geteuid() == 0 {
		_ = os.Chown(path, uid, gid)
	}
}

// restoreSymlinkMeta restores ownership and timestamps on a symlink
// without following it. Best effort.
func restoreSymlinkMeta(path string, hdr *tar.Header) {
	if os.Geteuid() == 0 {
		_ = unix.Lchown(path, hdr.Uid, hdr.Gid)
	}
	atime := unix.Timeval{Sec: hdr.AccessTime.Unix(), Usec: int64(hdr.AccessTime.Nanosecond() / 1000)}
	mtime := unix.Timeval{Sec: hdr.ModTime.Unix(), Usec: int64(hdr.ModTime.Nanosecond() / 1000)}
	if err := unix.Lutimes(path, []unix.Timeval{atime, mtime}); err != nil {
		ui.Debugf("failed to set times for symlink %s: %v\n", path, err)
	}
}
