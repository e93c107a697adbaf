package frontend

import (
	"github.com/hashicorp/go-multierror"

	"github.com/sixthedition/v6fs/errors"
)

// classifyTraversalError reduces a traversal's accumulated errors to one
// representative error cmd/v6fs's exitCodeOf can classify: the first
// DriverError found, so a FormatError or RangeError sibling still maps to
// the right exit code instead of being swallowed inside a *multierror.Error
// that exitCodeOf's type assertion doesn't see through. Plain errors and
// nil pass through unchanged.
func classifyTraversalError(err error) error {
	if err == nil {
		return nil
	}

	merr, ok := err.(*multierror.Error)
	if !ok {
		return err
	}
	if len(merr.Errors) == 0 {
		return nil
	}

	for _, e := range merr.Errors {
		if _, ok := e.(errors.DriverError); ok {
			return e
		}
	}
	return merr.Errors[0]
}
