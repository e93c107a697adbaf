package frontend

import (
	"fmt"
	"io"
	"os"

	"github.com/sixthedition/v6fs"
	"github.com/sixthedition/v6fs/blockdev"
	"github.com/sixthedition/v6fs/codec"
)

// Superblock reads block 1 of each named file (or standard input if files
// is empty) and prints its decoded fields.
func Superblock(w io.Writer, files []string) error {
	if len(files) == 0 {
		return printSuperblock(w, "-", os.Stdin, 0)
	}

	for _, path := range files {
		file, err := os.Open(path)
		if err != nil {
			return err
		}

		info, statErr := file.Stat()
		var totalBlocks uint64
		if statErr == nil {
			totalBlocks = uint64(info.Size()) / v6fs.BlockSize
		}

		err = printSuperblock(w, path, file, totalBlocks)
		file.Close()
		if err != nil {
			return err
		}
	}
	return nil
}

func printSuperblock(w io.Writer, label string, source io.Reader, totalBlocks uint64) error {
	device := blockdev.New(source, totalBlocks)

	block, err := device.ReadBlock(v6fs.SuperblockBlock)
	if err != nil {
		return err
	}

	sb, err := codec.DecodeSuperBlock(block)
	if err != nil {
		return err
	}

	fmt.Fprintf(w, "%s:\n", label)
	fmt.Fprintf(w, "  isize:  %d\n", sb.Isize)
	fmt.Fprintf(w, "  fsize:  %d\n", sb.Fsize)
	fmt.Fprintf(w, "  nfree:  %d\n", sb.Nfree)
	fmt.Fprintf(w, "  ninode: %d\n", sb.Ninode)
	fmt.Fprintf(w, "  flock:  %d\n", sb.Flock)
	fmt.Fprintf(w, "  ilock:  %d\n", sb.Ilock)
	fmt.Fprintf(w, "  fmod:   %d\n", sb.Fmod)
	fmt.Fprintf(w, "  ronly:  %d\n", sb.Ronly)
	fmt.Fprintf(w, "  time:   %s\n", formatTime(sb.Time))
	return nil
}
