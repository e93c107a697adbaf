// Package blockdev provides random-access reading of fixed 512-byte blocks
// from an underlying byte source.
package blockdev

import (
	"fmt"
	"io"

	"github.com/sixthedition/v6fs"
	"github.com/sixthedition/v6fs/errors"
)

// BlockDevice reads fixed-size blocks from a seekable or streamed source. It
// never writes.
//
// The exposed fields are informational only and must not be mutated.
type BlockDevice struct {
	// TotalBlocks is the number of blocks available, or 0 if unknown because
	// the underlying source doesn't support seeking to determine its length.
	TotalBlocks uint64

	source io.Reader
	seeker io.Seeker // non-nil when source also implements io.Seeker
	next   v6fs.BlockNumber
}

// New wraps a byte source as a BlockDevice. When source implements
// io.Seeker and a probe seek succeeds, random reads seek directly;
// otherwise (for example an *os.File over a pipe) reads are satisfied by
// discarding bytes up to the requested block, which only supports reading
// forward.
func New(source io.Reader, totalBlocks uint64) *BlockDevice {
	dev := &BlockDevice{source: source, TotalBlocks: totalBlocks}
	if seeker, ok := source.(io.Seeker); ok {
		if _, err := seeker.Seek(0, io.SeekCurrent); err == nil {
			dev.seeker = seeker
		}
	}
	return dev
}

// ReadBlock returns the 512 bytes of block n. Reading past the device's
// known extent, or a short read from the source, fails with a RangeError or
// IOError respectively.
func (d *BlockDevice) ReadBlock(n v6fs.BlockNumber) ([]byte, error) {
	if d.TotalBlocks != 0 && uint64(n) >= d.TotalBlocks {
		return nil, errors.NewWithMessage(
			errors.EBoundsBlock,
			fmt.Sprintf("block %d not in [0, %d)", n, d.TotalBlocks),
		)
	}

	if d.seeker != nil {
		offset := int64(n) * v6fs.BlockSize
		if _, err := d.seeker.Seek(offset, io.SeekStart); err != nil {
			return nil, errors.NewFromError(errors.EIOError, err)
		}
	} else {
		if n < d.next {
			return nil, errors.NewWithMessage(
				errors.EIOError,
				fmt.Sprintf("cannot seek backward on a streamed source: at block %d, asked for %d", d.next, n),
			)
		}
		for d.next < n {
			if _, err := io.CopyN(io.Discard, d.source, v6fs.BlockSize); err != nil {
				return nil, errors.NewFromError(errors.EIOError, err)
			}
			d.next++
		}
	}

	buf := make([]byte, v6fs.BlockSize)
	if _, err := io.ReadFull(d.source, buf); err != nil {
		if err == io.EOF || err == io.ErrUnexpectedEOF {
			return nil, errors.NewFromError(errors.EShortRead, err)
		}
		return nil, errors.NewFromError(errors.EIOError, err)
	}

	if d.seeker == nil {
		d.next = n + 1
	}

	return buf, nil
}
