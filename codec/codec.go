// Package codec implements the pure, side-effect-free decoders for the v6
// on-disk structures: the superblock, an inode record, and a directory
// entry. Every function here takes raw bytes (or an already-parsed raw
// struct) and returns a decoded Go value; none of them touch a
// blockdev.BlockDevice.
//
// Three conversions in this package are easy to get wrong and are called out
// specifically because of it: the PDP-11 "middle-endian" 32-bit timestamp
// layout, the split 24-bit file size field, and permission-string decoding.
package codec

import (
	"bytes"
	"encoding/binary"
	"fmt"

	"github.com/sixthedition/v6fs"
	"github.com/sixthedition/v6fs/errors"
)

// Mode bit layout for a v6 inode.
const (
	IALLOC = 0x8000
	IFMT   = 0x6000
	IFBLK  = 0x6000
	IFDIR  = 0x4000
	IFCHR  = 0x2000
	IFREG  = 0x0000
	ILARG  = 0x1000
	ISUID  = 0x0800
	ISGID  = 0x0400
	ISVTX  = 0x0200
	IREAD  = 0x0100
	IWRITE = 0x0080
	IEXEC  = 0x0040
)

// RawSuperblock is the on-disk layout of block 1, byte for byte.
type RawSuperblock struct {
	Isize  uint16
	Fsize  uint16
	Nfree  uint16
	Free   [100]uint16
	Ninode uint16
	Inode  [100]uint16
	Flock  uint8
	Ilock  uint8
	Fmod   uint8
	Ronly  uint8
	Time   [2]uint16 // PDP middle-endian 32-bit, see DecodePDPTime
}

// SuperBlock is the decoded form of RawSuperblock: the split time field is
// folded into a plain uint32.
type SuperBlock struct {
	Isize  uint16
	Fsize  uint16
	Nfree  uint16
	Free   [100]uint16
	Ninode uint16
	Inode  [100]uint16
	Flock  uint8
	Ilock  uint8
	Fmod   uint8
	Ronly  uint8
	Time   uint32
}

// RawInode is the on-disk layout of one 32-byte inode record, byte for byte.
type RawInode struct {
	Mode  uint16
	Nlink uint8
	Uid   uint8
	Gid   uint8
	Size0 uint8
	Size1 uint16
	Addr  [8]uint16
	Atime [2]uint16 // PDP middle-endian 32-bit
	Mtime [2]uint16 // PDP middle-endian 32-bit
}

// Inode is the decoded form of RawInode.
type Inode struct {
	Number v6fs.InodeNumber
	Mode   uint16
	Nlink  uint8
	Uid    uint8
	Gid    uint8
	Size   uint32
	Addr   [8]v6fs.BlockNumber
	Atime  uint32
	Mtime  uint32
}

// RawDirent is the on-disk layout of one 16-byte directory entry.
type RawDirent struct {
	Ino  uint16
	Name [v6fs.DirentNameSize]byte
}

// Dirent is the decoded form of RawDirent: Name has trailing NULs stripped.
type Dirent struct {
	Ino  v6fs.InodeNumber
	Name string
}

// DecodePDPTime corrects the PDP-11 "middle-endian" 32-bit encoding used for
// atime, mtime, and the superblock's update time: the on-disk value is two
// little-endian 16-bit words stored in the order (high, low). A raw
// little-endian 32-bit load therefore yields the two halves swapped; this
// function swaps them back.
//
// decode(encode(v)) == v for all v, since swapping the halves twice is the
// identity.
func DecodePDPTime(words [2]uint16) uint32 {
	return (uint32(words[0]) << 16) | uint32(words[1])
}

// EncodePDPTime is the inverse of DecodePDPTime, used by test fixtures that
// need to lay out a value the way the on-disk format expects.
func EncodePDPTime(v uint32) [2]uint16 {
	return [2]uint16{uint16(v >> 16), uint16(v)}
}

// DecodeSize assembles the split 24-bit file size field: size0 is the high
// byte, size1 the low 16 bits.
func DecodeSize(size0 uint8, size1 uint16) uint32 {
	return (uint32(size0) << 16) | uint32(size1)
}

// EncodeSize is the inverse of DecodeSize, for test fixtures.
func EncodeSize(size uint32) (size0 uint8, size1 uint16) {
	return uint8(size >> 16), uint16(size)
}

// DecodeSuperBlock parses a 512-byte block into a SuperBlock.
func DecodeSuperBlock(block []byte) (SuperBlock, error) {
	if len(block) < v6fs.BlockSize {
		return SuperBlock{}, errors.NewWithMessage(
			errors.ETruncatedRecord,
			fmt.Sprintf("superblock needs %d bytes, got %d", v6fs.BlockSize, len(block)),
		)
	}

	var raw RawSuperblock
	reader := bytes.NewReader(block)
	if err := binary.Read(reader, binary.LittleEndian, &raw); err != nil {
		return SuperBlock{}, errors.NewFromError(errors.EBadSuperblock, err)
	}

	return SuperBlock{
		Isize:  raw.Isize,
		Fsize:  raw.Fsize,
		Nfree:  raw.Nfree,
		Free:   raw.Free,
		Ninode: raw.Ninode,
		Inode:  raw.Inode,
		Flock:  raw.Flock,
		Ilock:  raw.Ilock,
		Fmod:   raw.Fmod,
		Ronly:  raw.Ronly,
		Time:   DecodePDPTime(raw.Time),
	}, nil
}

// DecodeInode parses one 32-byte on-disk record, tagging it with its 1-based
// inode number.
func DecodeInode(number v6fs.InodeNumber, record []byte) (Inode, error) {
	if len(record) < v6fs.InodeRecordSize {
		return Inode{}, errors.NewWithMessage(
			errors.ETruncatedRecord,
			fmt.Sprintf(
				"inode %d needs %d bytes, got %d",
				number, v6fs.InodeRecordSize, len(record),
			),
		)
	}

	var raw RawInode
	reader := bytes.NewReader(record)
	if err := binary.Read(reader, binary.LittleEndian, &raw); err != nil {
		return Inode{}, errors.NewFromError(errors.ETruncatedRecord, err)
	}

	addr := [8]v6fs.BlockNumber{}
	for i, a := range raw.Addr {
		addr[i] = v6fs.BlockNumber(a)
	}

	return Inode{
		Number: number,
		Mode:   raw.Mode,
		Nlink:  raw.Nlink,
		Uid:    raw.Uid,
		Gid:    raw.Gid,
		Size:   DecodeSize(raw.Size0, raw.Size1),
		Addr:   addr,
		Atime:  DecodePDPTime(raw.Atime),
		Mtime:  DecodePDPTime(raw.Mtime),
	}, nil
}

// DecodeDirent parses one 16-byte directory entry. The name may occupy all
// 14 bytes without a trailing NUL.
func DecodeDirent(record []byte) (Dirent, error) {
	if len(record) < v6fs.DirentRecordSize {
		return Dirent{}, errors.NewWithMessage(
			errors.ETruncatedRecord,
			fmt.Sprintf(
				"dirent needs %d bytes, got %d",
				v6fs.DirentRecordSize, len(record),
			),
		)
	}

	ino := binary.LittleEndian.Uint16(record[0:2])
	nameBytes := record[2:v6fs.DirentRecordSize]

	nul := bytes.IndexByte(nameBytes, 0)
	var name string
	if nul == -1 {
		name = string(nameBytes)
	} else {
		name = string(nameBytes[:nul])
	}

	return Dirent{Ino: v6fs.InodeNumber(ino), Name: name}, nil
}

// IsAllocated reports whether the IALLOC bit is set in an inode's mode.
func IsAllocated(mode uint16) bool {
	return mode&IALLOC != 0
}

// IsLarge reports whether ILARG is set, selecting the
// indirect/double-indirect addressing scheme over small/direct addressing.
func IsLarge(mode uint16) bool {
	return mode&ILARG != 0
}

// FileTypeOf dispatches an inode's mode to a tagged v6fs.FileType. Any IFMT
// combination other than regular, directory, or char-device is reported as
// block-device, matching the reference decoder rather than adding stricter
// validation.
func FileTypeOf(mode uint16) v6fs.FileType {
	switch mode & IFMT {
	case IFREG:
		return v6fs.Regular
	case IFDIR:
		return v6fs.Directory
	case IFCHR:
		return v6fs.CharDevice
	default:
		return v6fs.BlockDeviceFile
	}
}

// FileModeString renders a 12-character permission string: a type
// character, three rwx triplets, and two trailing large-file/allocation
// flags.
func FileModeString(mode uint16) string {
	buf := make([]byte, 0, 11)

	switch FileTypeOf(mode) {
	case v6fs.Directory:
		buf = append(buf, 'd')
	case v6fs.CharDevice:
		buf = append(buf, 'c')
	case v6fs.BlockDeviceFile:
		buf = append(buf, 'b')
	default:
		buf = append(buf, '-')
	}

	buf = append(buf, triplet(mode, 0, ISUID)...)
	buf = append(buf, triplet(mode<<3, 3, ISGID)...)
	buf = append(buf, triplet(mode<<6, 6, 0)...)

	if mode&ILARG != 0 {
		buf = append(buf, 'L')
	} else {
		buf = append(buf, '.')
	}
	if mode&IALLOC != 0 {
		buf = append(buf, '*')
	} else {
		buf = append(buf, '.')
	}

	return string(buf)
}

// triplet renders one rwx triplet from a (possibly pre-shifted) mode value.
// shiftApplied is how far the caller already shifted mode (0, 3, or 6); it's
// used only to decide whether setuid/setgid/sticky substitution applies,
// since those bits are read from the *unshifted* mode.
func triplet(shiftedMode uint16, shiftApplied int, specialBit uint16) []byte {
	out := make([]byte, 3)

	if shiftedMode&IREAD != 0 {
		out[0] = 'r'
	} else {
		out[0] = '-'
	}
	if shiftedMode&IWRITE != 0 {
		out[1] = 'w'
	} else {
		out[1] = '-'
	}

	exec := shiftedMode&IEXEC != 0

	switch {
	case shiftApplied == 0 && specialBit == ISUID:
		out[2] = specialChar(shiftedMode&ISUID != 0, exec)
	case shiftApplied == 3 && specialBit == ISGID:
		// ISGID isn't affected by the <<3 shift; read it from the original
		// unshifted mode, which is shiftedMode>>3.
		out[2] = specialChar((shiftedMode>>3)&ISGID != 0, exec)
	case shiftApplied == 6:
		out[2] = stickyChar((shiftedMode>>6)&ISVTX != 0, exec)
	default:
		if exec {
			out[2] = 'x'
		} else {
			out[2] = '-'
		}
	}

	return out
}

func specialChar(special, exec bool) byte {
	switch {
	case special && exec:
		return 's'
	case special:
		return 'S'
	case exec:
		return 'x'
	default:
		return '-'
	}
}

func stickyChar(sticky, exec bool) byte {
	switch {
	case sticky && exec:
		return 't'
	case sticky:
		return 'T'
	case exec:
		return 'x'
	default:
		return '-'
	}
}
