// Package frontend implements the five thin command-line front-ends that
// sit on top of the decoder: superblock, inodes, icat, itree, and
// v6fs2tar. None of the decoding logic lives here; this package only opens
// files, formats output, and reports errors with the right exit code.
package frontend

import (
	"os"

	"github.com/sixthedition/v6fs"
	"github.com/sixthedition/v6fs/blockdev"
	"github.com/sixthedition/v6fs/internal/compress"
)

// Config is the fully parsed configuration a front-end acts on, built by
// cmd/v6fs/main.go from command-line flags.
type Config struct {
	// OutputPath is the tar exporter's destination file, or "" for stdout.
	OutputPath string

	// Compression selects v6fs2tar's output codec.
	Compression compress.Codec

	// InodeNumbers are the starting points named on the command line. An
	// empty slice means "use the default", which is 1 for icat/itree/
	// v6fs2tar.
	InodeNumbers []v6fs.InodeNumber

	// Verbose sends v6fs2tar's traversal warnings to standard error; without
	// it they are discarded. No per-file trace output is produced.
	Verbose bool
}

// DefaultInodeNumbers is used when the command line names none.
var DefaultInodeNumbers = []v6fs.InodeNumber{v6fs.RootInodeNumber}

func (c Config) inodeNumbersOrDefault() []v6fs.InodeNumber {
	if len(c.InodeNumbers) == 0 {
		return DefaultInodeNumbers
	}
	return c.InodeNumbers
}

// openDevice opens path as a block device, sized from the underlying
// file's length.
func openDevice(path string) (*blockdev.BlockDevice, *os.File, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, nil, err
	}

	info, err := file.Stat()
	if err != nil {
		file.Close()
		return nil, nil, err
	}

	totalBlocks := uint64(info.Size()) / v6fs.BlockSize
	return blockdev.New(file, totalBlocks), file, nil
}
