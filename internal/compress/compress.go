// Package compress selects a compression codec for the tar exporter's
// -z/-j/-J/-t flags.
package compress

import (
	"compress/gzip"
	"fmt"
	"io"

	"github.com/dsnet/compress/bzip2"
	"github.com/ulikunitz/xz"
)

// Codec names a compression format the tar exporter can wrap its output
// stream in.
type Codec string

const (
	None  Codec = ""
	Gzip  Codec = "gz"
	Bzip2 Codec = "bz2"
	XZ    Codec = "xz"
)

// ParseCodec maps a -t flag argument (or the empty string for no
// compression) onto a Codec, failing with a plain error for anything else
// since this is purely a CLI-usage concern.
func ParseCodec(name string) (Codec, error) {
	switch Codec(name) {
	case None, Gzip, Bzip2, XZ:
		return Codec(name), nil
	default:
		return None, fmt.Errorf("unrecognized compression format %q", name)
	}
}

// NewWriter wraps output in the codec's compressor. Callers must Close the
// returned writer (which, for None, is a no-op closer around output) to
// flush any trailing codec data.
func NewWriter(codec Codec, output io.Writer) (io.WriteCloser, error) {
	switch codec {
	case None:
		return nopWriteCloser{output}, nil
	case Gzip:
		return gzip.NewWriterLevel(output, gzip.BestCompression)
	case Bzip2:
		return bzip2.NewWriter(output, &bzip2.WriterConfig{Level: 9})
	case XZ:
		return xz.NewWriter(output)
	default:
		return nil, fmt.Errorf("unrecognized compression format %q", codec)
	}
}

type nopWriteCloser struct {
	io.Writer
}

func (nopWriteCloser) Close() error {
	return nil
}
