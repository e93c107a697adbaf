// Package v6fs is a read-only decoder and traversal engine for the Unix
// Sixth Edition (v6) file-system image format used on PDP-11 block devices.
//
// The package walks the inode table, resolves a file's logical offsets into
// physical block numbers through the v6 direct/indirect/double-indirect
// addressing scheme, reads file bytes on demand, and iterates directory
// entries. It does not write, mount, or repair a v6 volume.
package v6fs

// BlockNumber is a 0-based physical block index on the volume. Block 0 is
// the boot block, block 1 the superblock, and blocks
// [FirstInodeBlock, FirstInodeBlock+isize) hold the inode list.
type BlockNumber uint32

// InodeNumber is a 1-based index into the inode list. 0 is never a valid
// inode number; a directory entry with d_ino == 0 denotes an empty slot.
type InodeNumber uint16

const (
	// BlockSize is the fixed size, in bytes, of every block on a v6 volume.
	BlockSize = 512

	// InodeRecordSize is the size, in bytes, of one on-disk inode record.
	InodeRecordSize = 32

	// DirentRecordSize is the size, in bytes, of one on-disk directory entry.
	DirentRecordSize = 16

	// DirentNameSize is the number of bytes reserved for a directory entry's
	// name, NUL-padded and not necessarily NUL-terminated.
	DirentNameSize = 14

	// SuperblockBlock is the block number holding the superblock.
	SuperblockBlock BlockNumber = 1

	// FirstInodeBlock is the block number of the first block of the inode
	// list.
	FirstInodeBlock BlockNumber = 2

	// InodesPerBlock is the number of 32-byte inode records that fit in one
	// 512-byte block.
	InodesPerBlock = BlockSize / InodeRecordSize

	// RootInodeNumber is the inode number of a v6 volume's root directory.
	RootInodeNumber InodeNumber = 1
)

// FileType is the tagged variant a decoded inode's mode resolves to, so
// callers switch on it rather than on raw IFMT bits. codec.FileTypeOf
// derives it from the mode on each call; codec.Inode does not store it.
type FileType int

const (
	Regular FileType = iota
	Directory
	CharDevice
	BlockDeviceFile
)

func (t FileType) String() string {
	switch t {
	case Regular:
		return "regular"
	case Directory:
		return "directory"
	case CharDevice:
		return "char-device"
	case BlockDeviceFile:
		return "block-device"
	default:
		return "unknown"
	}
}

// DeviceNumber is the (major, minor) pair packed into a device inode's first
// address word.
type DeviceNumber struct {
	Major byte
	Minor byte
}
