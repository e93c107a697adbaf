package errors

import (
	stderrors "errors"
	"fmt"
)

// DriverError is returned by every layer of the decoder — blockdev, codec,
// inodetable, filereader, directory, traversal — so callers can branch on
// the broad error kind (Errno) instead of matching message strings.
type DriverError interface {
	error
	Errno() Errno
	Unwrap() error
}

type driverError struct {
	errno         Errno
	message       string
	originalError error
}

// Error implements the `error` interface.
func (e driverError) Error() string {
	if e.message != "" {
		return e.message
	}
	return StrError(e.errno)
}

func (e driverError) Errno() Errno {
	return e.errno
}

// Unwrap exposes the error that produced this one, if any — typically the
// *os.PathError a BlockDevice read failed with, or the binary.Read error a
// codec decoder hit against a truncated record. This lets errors.Is/As see
// past the DriverError to the cause.
func (e driverError) Unwrap() error {
	return e.originalError
}

// WrappedErrors reports the same thing as Unwrap, but as a slice: it
// satisfies the hashicorp/errwrap Wrapper interface that
// github.com/hashicorp/go-multierror (traversal's accumulator) understands
// when flattening nested causes, so a DriverError surfaced from deep in a
// Walk doesn't stop at its own one-line message.
func (e driverError) WrappedErrors() []error {
	if e.originalError == nil {
		return nil
	}
	return []error{e.originalError}
}

// Is reports whether target is a DriverError carrying the same Errno. Every
// call site constructs its own driverError value rather than comparing to a
// shared sentinel, so plain == comparison against ErrRangeError and its
// siblings would never match; this lets errors.Is(err, ErrRangeError) work
// the way callers expect regardless of which constructor produced err.
func (e driverError) Is(target error) bool {
	var other DriverError
	if !stderrors.As(target, &other) {
		return false
	}
	return other.Errno() == e.errno
}

// New creates a new [DriverError] with a default message derived from the
// sub-code.
func New(errnoCode Errno) DriverError {
	return driverError{
		errno:   errnoCode,
		message: StrError(errnoCode),
	}
}

// NewFromError wraps originalError with a sub-code, appending
// originalError's own message so the cause survives in the rendered
// string even for callers that only look at Error().
func NewFromError(errnoCode Errno, originalError error) DriverError {
	return driverError{
		errno:         errnoCode,
		message:       fmt.Sprintf("%s: %s", StrError(errnoCode), originalError.Error()),
		originalError: originalError,
	}
}

// NewWithMessage creates a new DriverError from a sub-code with a custom
// message.
func NewWithMessage(errnoCode Errno, message string) DriverError {
	return driverError{
		errno:   errnoCode,
		message: fmt.Sprintf("%s: %s", StrError(errnoCode), message),
	}
}
