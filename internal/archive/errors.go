package archive

import "errors"

var (
	// ErrMissingInput marks an input path that does not exist.
	ErrMissingInput = errors.New("missing input")
	// ErrMalformedRecord marks a day file or record that cannot be decoded.
	ErrMalformedRecord = errors.New("malformed record")
	// ErrWriteFailure marks an output artifact that could not be written.
	ErrWriteFailure = errors.New("write failure")
)
