package inodetable_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sixthedition/v6fs"
	"github.com/sixthedition/v6fs/blockdev"
	"github.com/sixthedition/v6fs/codec"
	"github.com/sixthedition/v6fs/inodetable"
	"github.com/sixthedition/v6fs/internal/fixtures"
)

func buildOneInodeImage() []byte {
	b := fixtures.New(2, 20)
	b.SuperBlock(codec.RawSuperblock{})
	b.Inode(1, codec.IFDIR|codec.IALLOC, 2, 0, 0, 32, [8]v6fs.BlockNumber{10}, 0, 0)
	return b.Bytes()
}

func TestLoadAndGet(t *testing.T) {
	image := buildOneInodeImage()
	dev := blockdev.New(bytes.NewReader(image), uint64(len(image)/v6fs.BlockSize))

	table, err := inodetable.Load(dev)
	require.NoError(t, err)

	assert.Equal(t, 2*v6fs.InodesPerBlock, table.Len())

	inode, err := table.Get(1)
	require.NoError(t, err)
	assert.Equal(t, uint8(2), inode.Nlink)
	assert.True(t, table.IsAllocated(1))
}

func TestGetOutOfBounds(t *testing.T) {
	image := buildOneInodeImage()
	dev := blockdev.New(bytes.NewReader(image), uint64(len(image)/v6fs.BlockSize))

	table, err := inodetable.Load(dev)
	require.NoError(t, err)

	_, err = table.Get(0)
	assert.Error(t, err)

	_, err = table.Get(v6fs.InodeNumber(table.Len() + 1))
	assert.Error(t, err)
}

func TestAllInUseSkipsUnallocated(t *testing.T) {
	image := buildOneInodeImage()
	dev := blockdev.New(bytes.NewReader(image), uint64(len(image)/v6fs.BlockSize))

	table, err := inodetable.Load(dev)
	require.NoError(t, err)

	inUse := table.AllInUse()
	require.Len(t, inUse, 1)
	assert.Equal(t, v6fs.InodeNumber(1), inUse[0])
}
