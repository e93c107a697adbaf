// Package traversal performs a pre-order walk of a v6 volume starting from
// a root inode, dispatching to a caller-supplied Visitor per file type.
package traversal

import (
	"fmt"
	"log"

	"github.com/hashicorp/go-multierror"

	"github.com/sixthedition/v6fs"
	"github.com/sixthedition/v6fs/blockdev"
	"github.com/sixthedition/v6fs/codec"
	"github.com/sixthedition/v6fs/directory"
	"github.com/sixthedition/v6fs/errors"
	"github.com/sixthedition/v6fs/filereader"
	"github.com/sixthedition/v6fs/inodetable"
)

// Visitor receives one callback per inode reached during a walk. path is
// the entry's name joined with "/" from the walk's root; it does not
// include a leading slash.
type Visitor interface {
	VisitFile(path string, inode codec.Inode, reader *filereader.FileReader) error
	VisitDirectory(path string, inode codec.Inode) error
	VisitDevice(path string, inode codec.Inode, dev v6fs.DeviceNumber) error
}

// Walk descends pre-order from root, left-to-right in on-disk directory
// order, skipping "." and "..". Decoding errors on one sibling are
// reported to the supplied logger and do not abort the walk; they are
// folded into the returned error as a multierror.
func Walk(device *blockdev.BlockDevice, table *inodetable.InodeTable, root v6fs.InodeNumber, logger *log.Logger, visitor Visitor) error {
	var errs *multierror.Error
	walk(device, table, root, "", logger, visitor, &errs)
	return errs.ErrorOrNil()
}

func walk(device *blockdev.BlockDevice, table *inodetable.InodeTable, number v6fs.InodeNumber, path string, logger *log.Logger, visitor Visitor, errs **multierror.Error) {
	inode, err := table.Get(number)
	if err != nil {
		logger.Printf("skipping %q: %s", path, err)
		*errs = multierror.Append(*errs, err)
		return
	}

	if inode.Nlink == 0 {
		logger.Printf("%q (inode %d) is unallocated, skipping", path, number)
		return
	}

	switch codec.FileTypeOf(inode.Mode) {
	case v6fs.Directory:
		if err := visitor.VisitDirectory(path, inode); err != nil {
			*errs = multierror.Append(*errs, err)
			return
		}
		walkChildren(device, table, inode, path, logger, visitor, errs)

	case v6fs.CharDevice, v6fs.BlockDeviceFile:
		dev := v6fs.DeviceNumber{
			Major: byte((inode.Addr[0] >> 8) & 0xFF),
			Minor: byte(inode.Addr[0] & 0xFF),
		}
		if err := visitor.VisitDevice(path, inode, dev); err != nil {
			*errs = multierror.Append(*errs, err)
		}

	default:
		reader, err := filereader.New(device, inode)
		if err != nil {
			logger.Printf("skipping %q: %s", path, err)
			*errs = multierror.Append(*errs, err)
			return
		}
		if err := visitor.VisitFile(path, inode, reader); err != nil {
			*errs = multierror.Append(*errs, err)
		}
	}
}

func walkChildren(device *blockdev.BlockDevice, table *inodetable.InodeTable, dirInode codec.Inode, path string, logger *log.Logger, visitor Visitor, errs **multierror.Error) {
	reader, err := filereader.New(device, dirInode)
	if err != nil {
		logger.Printf("skipping children of %q: %s", path, err)
		*errs = multierror.Append(*errs, err)
		return
	}

	entries, err := directory.New(reader).All()
	if err != nil {
		logger.Printf("truncated directory %q: %s", path, err)
		*errs = multierror.Append(*errs, errors.NewFromError(errors.EFormatError, err))
		return
	}

	for _, entry := range entries {
		if entry.Name == "." || entry.Name == ".." {
			continue
		}

		childPath := entry.Name
		if path != "" {
			childPath = fmt.Sprintf("%s/%s", path, entry.Name)
		}
		walk(device, table, entry.Ino, childPath, logger, visitor, errs)
	}
}
