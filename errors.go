package v6fs

import "github.com/sixthedition/v6fs/errors"

// The four broad error kinds, re-exported at the package root so callers
// outside the engine don't need to import the errors subpackage directly to
// do an errors.Is check. The errors subpackage remains the canonical home
// for the finer-grained sub-codes (EBoundsInode, ETruncatedRecord, ...)
// returned by individual layers; these four are the ones front-ends branch
// on to pick an exit code.
var (
	// ErrRangeError: inode number out of bounds; block index beyond device.
	ErrRangeError = errors.ErrRangeError

	// ErrFormatError: decoded block-count mismatch; indirect block points
	// outside the volume; truncated inode record.
	ErrFormatError = errors.ErrFormatError

	// ErrIOError: underlying read failure. Fatal for the whole session.
	ErrIOError = errors.ErrIOError

	// ErrUsageError: CLI argument violation.
	ErrUsageError = errors.ErrUsageError
)
