// Package directory iterates the (inode-number, name) pairs stored in a
// directory file's content.
package directory

import (
	"io"

	"github.com/sixthedition/v6fs"
	"github.com/sixthedition/v6fs/codec"
	"github.com/sixthedition/v6fs/filereader"
)

// Iterator wraps a FileReader over a directory inode, parsing the stream in
// 16-byte dirent records. Entries with d_ino == 0 are empty slots and are
// skipped silently. A short tail (fewer than 16 bytes remaining) terminates
// iteration rather than erroring.
type Iterator struct {
	reader *filereader.FileReader
}

// New builds an Iterator over a directory's already-resolved FileReader.
func New(reader *filereader.FileReader) *Iterator {
	return &Iterator{reader: reader}
}

// Next returns the next non-empty dirent, or io.EOF once the directory's
// content is exhausted (including when only a short, unusable tail
// remains).
func (it *Iterator) Next() (codec.Dirent, error) {
	for {
		record, err := it.reader.Read(v6fs.DirentRecordSize)
		if err != nil {
			return codec.Dirent{}, err
		}
		if len(record) < v6fs.DirentRecordSize {
			return codec.Dirent{}, io.EOF
		}

		dirent, err := codec.DecodeDirent(record)
		if err != nil {
			return codec.Dirent{}, err
		}
		if dirent.Ino == 0 {
			continue
		}
		return dirent, nil
	}
}

// All drains the iterator into a slice, for callers that don't need to
// stream it.
func (it *Iterator) All() ([]codec.Dirent, error) {
	var out []codec.Dirent
	for {
		dirent, err := it.Next()
		if err == io.EOF {
			return out, nil
		}
		if err != nil {
			return out, err
		}
		out = append(out, dirent)
	}
}
