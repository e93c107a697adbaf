package frontend

import (
	"fmt"
	"io"
	"log"
	"strings"

	"github.com/hashicorp/go-multierror"

	"github.com/sixthedition/v6fs"
	"github.com/sixthedition/v6fs/codec"
	"github.com/sixthedition/v6fs/filereader"
	"github.com/sixthedition/v6fs/inodetable"
	"github.com/sixthedition/v6fs/traversal"
)

// Itree pre-order prints the tree rooted at each of inodeNumbers, indenting
// "->" once per depth level.
func Itree(w io.Writer, devfile string, inodeNumbers []v6fs.InodeNumber) error {
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

	logger := log.New(io.Discard, "", 0)

	var errs *multierror.Error
	for _, number := range inodeNumbers {
		visitor := &itreeVisitor{w: w}
		if err := traversal.Walk(device, table, number, logger, visitor); err != nil {
			fmt.Fprintf(w, "warning: %s\n", err)
			errs = multierror.Append(errs, err)
		}
	}
	return classifyTraversalError(errs.ErrorOrNil())
}

type itreeVisitor struct {
	w io.Writer
}

func (v *itreeVisitor) indent(path string) string {
	if path == "" {
		return ""
	}
	return strings.Repeat("->", strings.Count(path, "/")+1)
}

func (v *itreeVisitor) VisitFile(path string, inode codec.Inode, reader *filereader.FileReader) error {
	fmt.Fprintf(v.w, "%s%s\n", v.indent(path), formatInodeLine(inode, baseName(path)))
	return nil
}

func (v *itreeVisitor) VisitDirectory(path string, inode codec.Inode) error {
	fmt.Fprintf(v.w, "%s%s\n", v.indent(path), formatInodeLine(inode, baseName(path)))
	return nil
}

func (v *itreeVisitor) VisitDevice(path string, inode codec.Inode, dev v6fs.DeviceNumber) error {
	line := fmt.Sprintf(
		"%05d %s %2d %3d %3d %3d,%-3d %s %s %s",
		inode.Number,
		codec.FileModeString(inode.Mode),
		inode.Nlink,
		inode.Uid,
		inode.Gid,
		dev.Major,
		dev.Minor,
		formatTime(inode.Mtime),
		formatTime(inode.Atime),
		baseName(path),
	)
	fmt.Fprintf(v.w, "%s%s\n", v.indent(path), line)
	return nil
}

func baseName(path string) string {
	if path == "" {
		return "/"
	}
	idx := strings.LastIndex(path, "/")
	if idx == -1 {
		return path
	}
	return path[idx+1:]
}
