package directory_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sixthedition/v6fs"
	"github.com/sixthedition/v6fs/blockdev"
	"github.com/sixthedition/v6fs/codec"
	"github.com/sixthedition/v6fs/directory"
	"github.com/sixthedition/v6fs/filereader"
	"github.com/sixthedition/v6fs/internal/fixtures"
)

func TestSkipsEmptySlotInTheMiddle(t *testing.T) {
	b := fixtures.New(1, 20)
	b.SuperBlock(codec.RawSuperblock{})
	b.DirectoryBlock(5, []codec.Dirent{
		{Ino: 1, Name: "."},
		{Ino: 1, Name: ".."},
		{Ino: 0, Name: ""},
		{Ino: 3, Name: "child"},
	})

	image := b.Bytes()
	dev := blockdev.New(bytes.NewReader(image), uint64(len(image)/v6fs.BlockSize))

	inode := codec.Inode{
		Number: 1,
		Mode:   codec.IFDIR,
		Size:   uint32(4 * v6fs.DirentRecordSize),
		Addr:   [8]v6fs.BlockNumber{5},
	}

	reader, err := filereader.New(dev, inode)
	require.NoError(t, err)

	entries, err := directory.New(reader).All()
	require.NoError(t, err)

	require.Len(t, entries, 3)
	assert.Equal(t, ".", entries[0].Name)
	assert.Equal(t, "..", entries[1].Name)
	assert.Equal(t, "child", entries[2].Name)
	assert.Equal(t, v6fs.InodeNumber(3), entries[2].Ino)
}
