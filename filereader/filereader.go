// Package filereader resolves an inode's logical content into the ordered
// sequence of physical data blocks that make it up, and streams the bytes
// of those blocks linearly.
package filereader

import (
	"encoding/binary"
	"fmt"
	"io"

	"github.com/sixthedition/v6fs"
	"github.com/sixthedition/v6fs/blockdev"
	"github.com/sixthedition/v6fs/codec"
	"github.com/sixthedition/v6fs/errors"
)

// FileReader yields a file's data a block at a time, then as an arbitrary
// byte stream built on top of that. It is not seekable: once a block has
// been consumed it cannot be revisited.
type FileReader struct {
	device     *blockdev.BlockDevice
	size       uint32
	dataBlocks []v6fs.BlockNumber

	nextBlockIndex int
	remaining      uint32 // bytes of file content not yet returned by NextBlock

	pending []byte // bytes read from blocks but not yet consumed by Read
}

// New resolves inode's addressing scheme into its ordered block-number list
// and returns a reader over it. The returned block count is checked against
// ceil(size/512); a mismatch fails with a FormatError.
func New(device *blockdev.BlockDevice, inode codec.Inode) (*FileReader, error) {
	blocks, err := resolveBlocks(device, inode)
	if err != nil {
		return nil, err
	}

	expected := blockCount(inode.Size)
	if len(blocks) != expected {
		return nil, errors.NewWithMessage(
			errors.EBlockCountMismatch,
			fmt.Sprintf(
				"inode %d: size %d needs %d blocks, addressing yielded %d",
				inode.Number, inode.Size, expected, len(blocks),
			),
		)
	}

	return &FileReader{
		device:     device,
		size:       inode.Size,
		dataBlocks: blocks,
		remaining:  inode.Size,
	}, nil
}

func blockCount(size uint32) int {
	return int((size + v6fs.BlockSize - 1) / v6fs.BlockSize)
}

// resolveBlocks walks the small or large addressing scheme of inode.Addr and
// returns the ordered, non-zero data block numbers it names.
func resolveBlocks(device *blockdev.BlockDevice, inode codec.Inode) ([]v6fs.BlockNumber, error) {
	if !codec.IsLarge(inode.Mode) {
		var blocks []v6fs.BlockNumber
		for _, a := range inode.Addr {
			if a != 0 {
				blocks = append(blocks, a)
			}
		}
		return blocks, nil
	}

	var blocks []v6fs.BlockNumber
	for i := 0; i < 7; i++ {
		if inode.Addr[i] == 0 {
			continue
		}
		indirect, err := readIndirectBlock(device, inode.Addr[i])
		if err != nil {
			return nil, err
		}
		for _, entry := range indirect {
			if entry != 0 {
				blocks = append(blocks, entry)
			}
		}
	}

	if inode.Addr[7] != 0 {
		doubleIndirect, err := readIndirectBlock(device, inode.Addr[7])
		if err != nil {
			return nil, err
		}
		for _, indirectBlockNum := range doubleIndirect {
			if indirectBlockNum == 0 {
				continue
			}
			indirect, err := readIndirectBlock(device, indirectBlockNum)
			if err != nil {
				return nil, err
			}
			for _, entry := range indirect {
				if entry != 0 {
					blocks = append(blocks, entry)
				}
			}
		}
	}

	return blocks, nil
}

// readIndirectBlock reads a block and interprets it as 256 little-endian
// 16-bit block numbers.
func readIndirectBlock(device *blockdev.BlockDevice, n v6fs.BlockNumber) ([]v6fs.BlockNumber, error) {
	raw, err := device.ReadBlock(n)
	if err != nil {
		return nil, errors.NewFromError(errors.EIndirectOutOfRange, err)
	}

	entries := make([]v6fs.BlockNumber, v6fs.BlockSize/2)
	for i := range entries {
		entries[i] = v6fs.BlockNumber(binary.LittleEndian.Uint16(raw[i*2 : i*2+2]))
	}
	return entries, nil
}

// NextBlock returns the next data block's content. The final block is
// truncated to size mod 512 when that remainder is non-zero. Returns
// io.EOF once exhausted.
func (r *FileReader) NextBlock() ([]byte, error) {
	if r.nextBlockIndex >= len(r.dataBlocks) {
		return nil, io.EOF
	}

	block, err := r.device.ReadBlock(r.dataBlocks[r.nextBlockIndex])
	if err != nil {
		return nil, err
	}
	r.nextBlockIndex++

	n := v6fs.BlockSize
	if uint32(n) > r.remaining {
		n = int(r.remaining)
	}
	r.remaining -= uint32(n)

	return block[:n], nil
}

// Read returns up to n bytes from the concatenation of NextBlock's outputs.
// n < 0 drains to end-of-file. After end-of-file, returns an empty slice
// and no error.
func (r *FileReader) Read(n int) ([]byte, error) {
	for n < 0 || len(r.pending) < n {
		block, err := r.NextBlock()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		r.pending = append(r.pending, block...)
	}

	if n < 0 || n > len(r.pending) {
		n = len(r.pending)
	}

	out := r.pending[:n]
	r.pending = r.pending[n:]
	return out, nil
}

// Size is the file's decoded byte length.
func (r *FileReader) Size() uint32 {
	return r.size
}

// BlockSequence returns the ordered data block numbers resolved for this
// file. The slice is owned by the reader and must not be modified.
func (r *FileReader) BlockSequence() []v6fs.BlockNumber {
	return r.dataBlocks
}
