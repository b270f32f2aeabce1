package suffix

import "github.com/cockroachdb/errors"

var (
	// ErrNoTerminator is returned for a text that does not end with a unique 0.
	ErrNoTerminator = errors.New("text is not terminated by a unique 0 byte")
	// ErrLength is returned when an array does not match the text length.
	ErrLength = errors.New("array length does not match text length")
	// ErrTooLong is returned when the text cannot be indexed by the element type.
	ErrTooLong = errors.New("text too long for index width")
	// ErrUnknownVariant is returned for an algorithm number other than 1, 2, 3.
	ErrUnknownVariant = errors.New("unknown LSUS algorithm")
)
