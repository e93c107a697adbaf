package frontend

import (
	"fmt"
	"io"

	"github.com/sixthedition/v6fs"
	"github.com/sixthedition/v6fs/blockdev"
	"github.com/sixthedition/v6fs/codec"
	"github.com/sixthedition/v6fs/directory"
	"github.com/sixthedition/v6fs/filereader"
	"github.com/sixthedition/v6fs/inodetable"
)

// Icat emits the raw contents of each listed inode of devfile to w.
// Directories emit a listing of (d_ino, name) pairs; devices emit a single
// descriptor line. With no inode numbers given, the default is inode 1.
func Icat(w io.Writer, devfile string, inodeNumbers []v6fs.InodeNumber) error {
	device, file, err := openDevice(devfile)
	if err != nil {
		return err
	}
	defer file.Close()

	table, err := inodetable.Load(device)
	if err != nil {
		return err
	}

	if len(inodeNumbers) == 0 {
		inodeNumbers = DefaultInodeNumbers
	}

	for _, number := range inodeNumbers {
		inode, err := table.Get(number)
		if err != nil {
			return err
		}
		if err := catOne(w, device, inode); err != nil {
			return err
		}
	}
	return nil
}

func catOne(w io.Writer, device *blockdev.BlockDevice, inode codec.Inode) error {
	switch codec.FileTypeOf(inode.Mode) {
	case v6fs.Directory:
		reader, err := filereader.New(device, inode)
		if err != nil {
			return err
		}
		entries, err := directory.New(reader).All()
		if err != nil {
			return err
		}
		for _, entry := range entries {
			fmt.Fprintf(w, "%d %s\n", entry.Ino, entry.Name)
		}
		return nil

	case v6fs.CharDevice, v6fs.BlockDeviceFile:
		major := byte((inode.Addr[0] >> 8) & 0xFF)
		minor := byte(inode.Addr[0] & 0xFF)
		fmt.Fprintf(w, "device %d,%d\n", major, minor)
		return nil

	default:
		reader, err := filereader.New(device, inode)
		if err != nil {
			return err
		}
		for {
			block, err := reader.NextBlock()
			if err == io.EOF {
				return nil
			}
			if err != nil {
				return err
			}
			if _, err := w.Write(block); err != nil {
				return err
			}
		}
	}
}
