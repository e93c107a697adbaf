package frontend

import (
	"archive/tar"
	"io"
	"log"
	"os"
	"time"

	"github.com/hashicorp/go-multierror"

	"github.com/sixthedition/v6fs"
	"github.com/sixthedition/v6fs/codec"
	"github.com/sixthedition/v6fs/filereader"
	"github.com/sixthedition/v6fs/inodetable"
	"github.com/sixthedition/v6fs/internal/compress"
	"github.com/sixthedition/v6fs/traversal"
)

func unixTime(seconds uint32) time.Time {
	return time.Unix(int64(seconds), 0)
}

// modeMask names the bits with no meaning to a modern archive format:
// IALLOC, the IFMT type bits (tar encodes the type separately), and ILARG.
// It is cleared with &^, never matched with &, so what survives is the
// permission bits.
const modeMask = codec.IALLOC | codec.IFMT | codec.ILARG

// V6FsToTar writes a tar archive of the traversal rooted at each of
// inodeNumbers (default: inode 1) from devfile to cfg.OutputPath, or to
// standard output when cfg.OutputPath is empty. The archive is wrapped in
// cfg.Compression's codec.
func V6FsToTar(cfg Config, devfile string) error {
	device, file, err := openDevice(devfile)
	if err != nil {
		return err
	}
	defer file.Close()

	table, err := inodetable.Load(device)
	if err != nil {
		return err
	}

	out, closeOut, err := openOutput(cfg.OutputPath)
	if err != nil {
		return err
	}
	defer closeOut()

	compressed, err := compress.NewWriter(cfg.Compression, out)
	if err != nil {
		return err
	}
	defer compressed.Close()

	tarWriter := tar.NewWriter(compressed)
	defer tarWriter.Close()

	logLevel := io.Discard
	if cfg.Verbose {
		logLevel = os.Stderr
	}
	logger := log.New(logLevel, "v6fs: ", 0)

	visitor := &tarVisitor{w: tarWriter}

	var errs *multierror.Error
	for _, number := range cfg.inodeNumbersOrDefault() {
		if err := traversal.Walk(device, table, number, logger, visitor); err != nil {
			logger.Printf("traversal reported errors rooted at inode %d: %s", number, err)
			errs = multierror.Append(errs, err)
		}
	}

	return classifyTraversalError(errs.ErrorOrNil())
}

func openOutput(path string) (io.Writer, func() error, error) {
	if path == "" {
		return os.Stdout, func() error { return nil }, nil
	}

	file, err := os.Create(path)
	if err != nil {
		return nil, nil, err
	}
	return file, file.Close, nil
}

type tarVisitor struct {
	w *tar.Writer
}

func (v *tarVisitor) VisitFile(path string, inode codec.Inode, reader *filereader.FileReader) error {
	header := &tar.Header{
		Name:    path,
		Mode:    int64(inode.Mode &^ modeMask),
		Uid:     int(inode.Uid),
		Gid:     int(inode.Gid),
		Size:    int64(inode.Size),
		ModTime: unixTime(inode.Mtime),
		Typeflag: tar.TypeReg,
	}
	if err := v.w.WriteHeader(header); err != nil {
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
		if _, err := v.w.Write(block); err != nil {
			return err
		}
	}
}

func (v *tarVisitor) VisitDirectory(path string, inode codec.Inode) error {
	if path == "" {
		path = "."
	}
	header := &tar.Header{
		Name:     path + "/",
		Mode:     int64(inode.Mode &^ modeMask),
		Uid:      int(inode.Uid),
		Gid:      int(inode.Gid),
		ModTime:  unixTime(inode.Mtime),
		Typeflag: tar.TypeDir,
	}
	return v.w.WriteHeader(header)
}

func (v *tarVisitor) VisitDevice(path string, inode codec.Inode, dev v6fs.DeviceNumber) error {
	typeflag := byte(tar.TypeChar)
	if codec.FileTypeOf(inode.Mode) == v6fs.BlockDeviceFile {
		typeflag = tar.TypeBlock
	}

	header := &tar.Header{
		Name:     path,
		Mode:     int64(inode.Mode &^ modeMask),
		Uid:      int(inode.Uid),
		Gid:      int(inode.Gid),
		ModTime:  unixTime(inode.Mtime),
		Typeflag: typeflag,
		Devmajor: int64(dev.Major),
		Devminor: int64(dev.Minor),
	}
	return v.w.WriteHeader(header)
}
