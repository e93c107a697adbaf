package filereader_test

import (
	"bytes"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sixthedition/v6fs"
	"github.com/sixthedition/v6fs/blockdev"
	"github.com/sixthedition/v6fs/codec"
	"github.com/sixthedition/v6fs/filereader"
	"github.com/sixthedition/v6fs/internal/fixtures"
)

func TestSmallModeTruncatedFinalBlock(t *testing.T) {
	b := fixtures.New(1, 20)
	b.SuperBlock(codec.RawSuperblock{})
	b.Block(5, bytes.Repeat([]byte{0xAA}, v6fs.BlockSize))
	b.Block(6, bytes.Repeat([]byte{0xBB}, v6fs.BlockSize))

	image := b.Bytes()
	dev := blockdev.New(bytes.NewReader(image), uint64(len(image)/v6fs.BlockSize))

	inode := codec.Inode{
		Number: 2,
		Mode:   0,
		Size:   1000,
		Addr:   [8]v6fs.BlockNumber{5, 6},
	}

	reader, err := filereader.New(dev, inode)
	require.NoError(t, err)

	first, err := reader.NextBlock()
	require.NoError(t, err)
	assert.Len(t, first, v6fs.BlockSize)

	second, err := reader.NextBlock()
	require.NoError(t, err)
	assert.Len(t, second, 488)

	_, err = reader.NextBlock()
	assert.Equal(t, io.EOF, err)
}

func TestSmallModeFullFinalBlock(t *testing.T) {
	b := fixtures.New(1, 20)
	b.SuperBlock(codec.RawSuperblock{})
	b.Block(5, bytes.Repeat([]byte{0xAA}, v6fs.BlockSize))

	image := b.Bytes()
	dev := blockdev.New(bytes.NewReader(image), uint64(len(image)/v6fs.BlockSize))

	inode := codec.Inode{Number: 2, Size: v6fs.BlockSize, Addr: [8]v6fs.BlockNumber{5}}

	reader, err := filereader.New(dev, inode)
	require.NoError(t, err)

	block, err := reader.NextBlock()
	require.NoError(t, err)
	assert.Len(t, block, v6fs.BlockSize)
}

func TestZeroSizeFileYieldsNoBlocks(t *testing.T) {
	b := fixtures.New(1, 20)
	b.SuperBlock(codec.RawSuperblock{})

	image := b.Bytes()
	dev := blockdev.New(bytes.NewReader(image), uint64(len(image)/v6fs.BlockSize))

	inode := codec.Inode{Number: 2, Size: 0}

	reader, err := filereader.New(dev, inode)
	require.NoError(t, err)

	out, err := reader.Read(-1)
	require.NoError(t, err)
	assert.Empty(t, out)
}

func TestLargeModeIndirectBlock(t *testing.T) {
	b := fixtures.New(1, 250)
	b.SuperBlock(codec.RawSuperblock{})
	b.IndirectBlock(100, []v6fs.BlockNumber{200, 201})
	b.Block(200, bytes.Repeat([]byte{0x01}, v6fs.BlockSize))
	b.Block(201, bytes.Repeat([]byte{0x02}, v6fs.BlockSize))

	image := b.Bytes()
	dev := blockdev.New(bytes.NewReader(image), uint64(len(image)/v6fs.BlockSize))

	inode := codec.Inode{
		Number: 2,
		Mode:   codec.ILARG,
		Size:   2 * v6fs.BlockSize,
		Addr:   [8]v6fs.BlockNumber{100},
	}

	reader, err := filereader.New(dev, inode)
	require.NoError(t, err)
	assert.Equal(t, []v6fs.BlockNumber{200, 201}, reader.BlockSequence())
}

func TestBlockCountMismatchIsFormatError(t *testing.T) {
	b := fixtures.New(1, 20)
	b.SuperBlock(codec.RawSuperblock{})
	b.Block(5, make([]byte, v6fs.BlockSize))

	image := b.Bytes()
	dev := blockdev.New(bytes.NewReader(image), uint64(len(image)/v6fs.BlockSize))

	inode := codec.Inode{Number: 2, Size: v6fs.BlockSize * 2, Addr: [8]v6fs.BlockNumber{5}}

	_, err := filereader.New(dev, inode)
	assert.Error(t, err)
}
