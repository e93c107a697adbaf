package frontend

import (
	"fmt"
	"io"
	"os"

	"github.com/sixthedition/v6fs"
	"github.com/sixthedition/v6fs/blockdev"
	"github.com/sixthedition/v6fs/inodetable"
)

// Inodes reads each named file (or standard input) and reports each in-use
// inode (nlink > 0), one per line.
func Inodes(w io.Writer, files []string) error {
	if len(files) == 0 {
		return listInodes(w, "-", os.Stdin, 0)
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

		err = listInodes(w, path, file, totalBlocks)
		file.Close()
		if err != nil {
			return err
		}
	}
	return nil
}

func listInodes(w io.Writer, label string, source io.Reader, totalBlocks uint64) error {
	device := blockdev.New(source, totalBlocks)

	table, err := inodetable.Load(device)
	if err != nil {
		return err
	}

	fmt.Fprintf(w, "%s:\n", label)
	for _, number := range table.AllInUse() {
		inode, err := table.Get(number)
		if err != nil {
			return err
		}
		fmt.Fprintln(w, formatInodeLine(inode, ""))
	}
	return nil
}
