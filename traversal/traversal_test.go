package traversal_test

import (
	"bytes"
	"io"
	"log"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sixthedition/v6fs"
	"github.com/sixthedition/v6fs/blockdev"
	"github.com/sixthedition/v6fs/codec"
	"github.com/sixthedition/v6fs/filereader"
	"github.com/sixthedition/v6fs/inodetable"
	"github.com/sixthedition/v6fs/internal/fixtures"
	"github.com/sixthedition/v6fs/traversal"
)

type recordingVisitor struct {
	files []string
	dirs  []string
}

func (v *recordingVisitor) VisitFile(path string, inode codec.Inode, reader *filereader.FileReader) error {
	v.files = append(v.files, path)
	return nil
}

func (v *recordingVisitor) VisitDirectory(path string, inode codec.Inode) error {
	v.dirs = append(v.dirs, path)
	return nil
}

func (v *recordingVisitor) VisitDevice(path string, inode codec.Inode, dev v6fs.DeviceNumber) error {
	return nil
}

func buildTwoLevelImage() []byte {
	b := fixtures.New(1, 30)
	b.SuperBlock(codec.RawSuperblock{})

	// root directory: ".", "..", "child.txt"
	b.DirectoryBlock(10, []codec.Dirent{
		{Ino: 1, Name: "."},
		{Ino: 1, Name: ".."},
		{Ino: 2, Name: "child.txt"},
	})
	b.Inode(1, codec.IFDIR|codec.IALLOC, 2, 0, 0, uint32(3*v6fs.DirentRecordSize), [8]v6fs.BlockNumber{10}, 0, 0)

	b.Block(20, bytes.Repeat([]byte{'x'}, v6fs.BlockSize))
	b.Inode(2, codec.IALLOC, 1, 0, 0, v6fs.BlockSize, [8]v6fs.BlockNumber{20}, 0, 0)

	return b.Bytes()
}

func TestWalkVisitsFilesAndDirectoriesSkippingDots(t *testing.T) {
	image := buildTwoLevelImage()
	dev := blockdev.New(bytes.NewReader(image), uint64(len(image)/v6fs.BlockSize))

	table, err := inodetable.Load(dev)
	require.NoError(t, err)

	visitor := &recordingVisitor{}
	logger := log.New(io.Discard, "", 0)

	err = traversal.Walk(dev, table, 1, logger, visitor)
	require.NoError(t, err)

	assert.Equal(t, []string{""}, visitor.dirs)
	assert.Equal(t, []string{"child.txt"}, visitor.files)
}
