package arrayio

import "github.com/cockroachdb/errors"

var (
	// ErrSizeMismatch is returned when a file size is not a multiple of the
	// element width.
	ErrSizeMismatch = errors.New("file size is not a multiple of the element width")
	// ErrPermutationRange is returned when a permutation value points past the
	// end of the text.
	ErrPermutationRange = errors.New("permutation value out of range")
)
