package frontend

import (
	"fmt"
	"time"

	"github.com/sixthedition/v6fs/codec"
)

func formatTime(unixSeconds uint32) string {
	return time.Unix(int64(unixSeconds), 0).Local().Format("2006-01-02 15:04:05")
}

// formatInodeLine renders the "NNNNN MODESTR LL UU GG SSSSSSSS MTIME ATIME
// NAME" line used by the inodes and itree front-ends.
func formatInodeLine(inode codec.Inode, name string) string {
	return fmt.Sprintf(
		"%05d %s %2d %3d %3d %8d %s %s %s",
		inode.Number,
		codec.FileModeString(inode.Mode),
		inode.Nlink,
		inode.Uid,
		inode.Gid,
		inode.Size,
		formatTime(inode.Mtime),
		formatTime(inode.Atime),
		name,
	)
}
