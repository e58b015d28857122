// Package errdefer provides functions for running operations
// that must be deferred until the end of a function,
// but which may return errors that should be returned from the function.
//
// All functions here are meant to be used in defer statements
// with a named error return.
package errdefer

import (
	"errors"
	"io"
	"io/fs"
	"os"
)

// Close calls Close on the given Closer,
// and joins any error returned with the given error.
func Close(err *error, closer io.Closer) {
	*err = errors.Join(*err, closer.Close())
}

// RemoveOnError deletes the file at path if the function failed.
// A missing file is not an error.
func RemoveOnError(err *error, path string) {
	if *err == nil {
		return
	}
	if rmErr := os.Remove(path); rmErr != nil && !errors.Is(rmErr, fs.ErrNotExist) {
		*err = errors.Join(*err, rmErr)
	}
}
