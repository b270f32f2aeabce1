package suffix

import (
	"bytes"
	"slices"

	"github.com/cockroachdb/errors"
)

// Index is an unsigned position type wide enough for the text.
type Index interface {
	~uint32 | ~uint64
}

// MaxLen returns the longest text T can index.
func MaxLen[T Index]() uint64 {
	return uint64(^T(0))
}

func checkText[T Index](text []byte, arrays ...[]T) error {
	n := len(text)
	if n == 0 || text[n-1] != 0 || bytes.IndexByte(text, 0) != n-1 {
		return ErrNoTerminator
	}
	if uint64(n) > MaxLen[T]() {
		return errors.Wrapf(ErrTooLong, "%d bytes", n)
	}
	for _, a := range arrays {
		if len(a) != n {
			return errors.Wrapf(ErrLength, "got %d, want %d", len(a), n)
		}
	}
	return nil
}

// BuildSA fills sa with the suffix array of text: sa[r] is the start of the
// r-th smallest suffix. sa[0] is always the terminator position.
func BuildSA[T Index](text []byte, sa []T) error {
	if err := checkText(text, sa); err != nil {
		return err
	}
	for i := range sa {
		sa[i] = T(i)
	}
	slices.SortFunc(sa, func(a, b T) int {
		return bytes.Compare(text[a:], text[b:])
	})
	return nil
}
