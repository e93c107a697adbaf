package errors_test

import (
	"testing"

	"github.com/sixthedition/v6fs/errors"
	"github.com/stretchr/testify/assert"
)

func TestNewWithMessage(t *testing.T) {
	err := errors.NewWithMessage(errors.EBoundsInode, "inode 9999 not in [1, 200]")
	assert.Equal(t, "inode number out of bounds: inode 9999 not in [1, 200]", err.Error())
	assert.Equal(t, errors.EBoundsInode, err.Errno())
}

func TestNewFromError(t *testing.T) {
	cause := assert.AnError
	err := errors.NewFromError(errors.EIOError, cause)
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, errors.EIOError, err.Errno())
}

func TestStrErrorUnknownCode(t *testing.T) {
	assert.Equal(t, "error 9999 not recognized", errors.StrError(errors.Errno(9999)))
}
