// Package fixtures assembles complete, byte-exact synthetic v6 volume
// images in memory for use by the test suite. Nothing here is part of the
// decoder's public surface.
package fixtures

import (
	"encoding/binary"
	"io"

	"github.com/noxer/bytewriter"
	"github.com/xaionaro-go/bytesextra"

	"github.com/sixthedition/v6fs"
	"github.com/sixthedition/v6fs/codec"
)

// Builder accumulates the contents of a v6 volume block by block and
// renders it to a flat byte slice (or a seekable stream) on demand.
type Builder struct {
	isize       uint16
	totalBlocks uint16
	superblock  codec.RawSuperblock
	inodes      map[v6fs.InodeNumber]codec.RawInode
	blocks      map[v6fs.BlockNumber][]byte
}

// New starts a builder for a volume with the given inode-list size (in
// blocks) and total block count.
func New(isize, totalBlocks uint16) *Builder {
	return &Builder{
		isize:       isize,
		totalBlocks: totalBlocks,
		inodes:      make(map[v6fs.InodeNumber]codec.RawInode),
		blocks:      make(map[v6fs.BlockNumber][]byte),
	}
}

// SuperBlock sets the raw fields of block 1. Isize/Fsize are overridden by
// the values passed to New.
func (b *Builder) SuperBlock(raw codec.RawSuperblock) *Builder {
	raw.Isize = b.isize
	raw.Fsize = b.totalBlocks
	b.superblock = raw
	return b
}

// Inode stamps an inode record, 1-based, into the inode list.
func (b *Builder) Inode(number v6fs.InodeNumber, mode uint16, nlink, uid, gid uint8, size uint32, addr [8]v6fs.BlockNumber, atime, mtime uint32) *Builder {
	size0, size1 := codec.EncodeSize(size)

	var rawAddr [8]uint16
	for i, a := range addr {
		rawAddr[i] = uint16(a)
	}

	b.inodes[number] = codec.RawInode{
		Mode:  mode,
		Nlink: nlink,
		Uid:   uid,
		Gid:   gid,
		Size0: size0,
		Size1: size1,
		Addr:  rawAddr,
		Atime: codec.EncodePDPTime(atime),
		Mtime: codec.EncodePDPTime(mtime),
	}
	return b
}

// Block stamps raw content (padded with zeros to 512 bytes) at block n.
func (b *Builder) Block(n v6fs.BlockNumber, data []byte) *Builder {
	padded := make([]byte, v6fs.BlockSize)
	copy(padded, data)
	b.blocks[n] = padded
	return b
}

// IndirectBlock stamps block n as an indirect block: 256 little-endian
// 16-bit block numbers, the rest zero-filled.
func (b *Builder) IndirectBlock(n v6fs.BlockNumber, entries []v6fs.BlockNumber) *Builder {
	buf := make([]byte, v6fs.BlockSize)
	for i, e := range entries {
		binary.LittleEndian.PutUint16(buf[i*2:i*2+2], uint16(e))
	}
	b.blocks[n] = buf
	return b
}

// DirectoryBlock stamps block n as a sequence of 16-byte dirents.
func (b *Builder) DirectoryBlock(n v6fs.BlockNumber, entries []codec.Dirent) *Builder {
	buf := make([]byte, v6fs.BlockSize)
	offset := 0
	for _, e := range entries {
		binary.LittleEndian.PutUint16(buf[offset:offset+2], uint16(e.Ino))
		copy(buf[offset+2:offset+v6fs.DirentRecordSize], []byte(e.Name))
		offset += v6fs.DirentRecordSize
	}
	b.blocks[n] = buf
	return b
}

// Bytes renders the accumulated state into a flat image, one entry of
// totalBlocks*BlockSize bytes in length.
func (b *Builder) Bytes() []byte {
	image := make([]byte, int(b.totalBlocks)*v6fs.BlockSize)

	sbWindow := image[int(v6fs.SuperblockBlock)*v6fs.BlockSize : int(v6fs.SuperblockBlock+1)*v6fs.BlockSize]
	writeStruct(sbWindow, b.superblock)

	for number, raw := range b.inodes {
		blockIndex := int(v6fs.FirstInodeBlock) + (int(number)-1)/v6fs.InodesPerBlock
		recordOffset := ((int(number) - 1) % v6fs.InodesPerBlock) * v6fs.InodeRecordSize
		blockStart := blockIndex * v6fs.BlockSize
		window := image[blockStart+recordOffset : blockStart+recordOffset+v6fs.InodeRecordSize]
		writeStruct(window, raw)
	}

	for n, data := range b.blocks {
		start := int(n) * v6fs.BlockSize
		copy(image[start:start+v6fs.BlockSize], data)
	}

	return image
}

// Seekable renders the image and wraps it as a seekable in-memory stream,
// for tests that construct a blockdev.BlockDevice directly over it.
func (b *Builder) Seekable() io.ReadWriteSeeker {
	return bytesextra.NewReadWriteSeeker(b.Bytes())
}

func writeStruct(window []byte, value any) {
	writer := bytewriter.New(window)
	// Errors from an in-memory, correctly-sized writer are unreachable.
	_ = binary.Write(writer, binary.LittleEndian, value)
}
