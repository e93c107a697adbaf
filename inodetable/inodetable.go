// Package inodetable loads the full inode list of a v6 volume once and owns
// it for the lifetime of a session.
package inodetable

import (
	"fmt"

	"github.com/boljen/go-bitmap"

	"github.com/sixthedition/v6fs"
	"github.com/sixthedition/v6fs/blockdev"
	"github.com/sixthedition/v6fs/codec"
	"github.com/sixthedition/v6fs/errors"
)

// InodeTable is a per-session, immutable array of decoded inodes, 1-indexed
// by inode number.
type InodeTable struct {
	SuperBlock codec.SuperBlock
	inodes     []codec.Inode
	allocated  bitmap.Bitmap
}

// Load reads block 1 as the superblock, then isize blocks starting at block
// 2 as the inode list, decoding every 32-byte record.
func Load(device *blockdev.BlockDevice) (*InodeTable, error) {
	sbBlock, err := device.ReadBlock(v6fs.SuperblockBlock)
	if err != nil {
		return nil, err
	}

	sb, err := codec.DecodeSuperBlock(sbBlock)
	if err != nil {
		return nil, err
	}

	count := int(sb.Isize) * v6fs.InodesPerBlock
	inodes := make([]codec.Inode, count)
	allocated := bitmap.New(count)

	number := 1
	for blockOffset := 0; blockOffset < int(sb.Isize); blockOffset++ {
		block, err := device.ReadBlock(v6fs.FirstInodeBlock + v6fs.BlockNumber(blockOffset))
		if err != nil {
			return nil, err
		}

		for recordOffset := 0; recordOffset < v6fs.InodesPerBlock; recordOffset++ {
			start := recordOffset * v6fs.InodeRecordSize
			record := block[start : start+v6fs.InodeRecordSize]

			inode, err := codec.DecodeInode(v6fs.InodeNumber(number), record)
			if err != nil {
				return nil, err
			}

			index := number - 1
			inodes[index] = inode
			allocated.Set(index, inode.Nlink > 0)
			number++
		}
	}

	return &InodeTable{SuperBlock: sb, inodes: inodes, allocated: allocated}, nil
}

// Len is the number of inode slots in the table.
func (t *InodeTable) Len() int {
	return len(t.inodes)
}

// Get returns the decoded record for a 1-based inode number, regardless of
// whether its nlink is 0. Callers that care about allocation status should
// check IsAllocated or Inode.Nlink themselves; this mirrors the behavior
// that an unallocated slot is diagnostic, not an error.
func (t *InodeTable) Get(number v6fs.InodeNumber) (codec.Inode, error) {
	if number < 1 || int(number) > len(t.inodes) {
		return codec.Inode{}, errors.NewWithMessage(
			errors.EBoundsInode,
			fmt.Sprintf("inode %d not in [1, %d]", number, len(t.inodes)),
		)
	}
	return t.inodes[number-1], nil
}

// IsAllocated reports whether a 1-based inode number's slot has nlink > 0.
func (t *InodeTable) IsAllocated(number v6fs.InodeNumber) bool {
	if number < 1 || int(number) > len(t.inodes) {
		return false
	}
	return t.allocated.Get(int(number) - 1)
}

// AllInUse returns every inode number with nlink > 0, in ascending order.
func (t *InodeTable) AllInUse() []v6fs.InodeNumber {
	var result []v6fs.InodeNumber
	for i := 0; i < len(t.inodes); i++ {
		if t.allocated.Get(i) {
			result = append(result, v6fs.InodeNumber(i+1))
		}
	}
	return result
}
