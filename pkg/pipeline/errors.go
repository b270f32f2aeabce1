package pipeline

import (
	"fmt"

	"github.com/cockroachdb/errors"
)

var (
	// ErrCheckFailed is returned when --check recomputes a different LSUS array.
	ErrCheckFailed = errors.New("LSUS check failed")
	// ErrUnsupportedWidth is returned for index widths other than 32 and 64.
	ErrUnsupportedWidth = errors.New("unsupported index width")
)

// SizeLimitError reports an encoded text too long for the index width.
type SizeLimitError struct {
	Length uint64 // encoded length in bytes
	Max    uint64 // longest text the width can index
	Width  int    // index width in bytes
}

func (e *SizeLimitError) Error() string {
	const gb = 1 << 30
	return fmt.Sprintf("input larger than %.1f GB (%.1f GB) for %d-bit indexes, use --int-width=64",
		float64(e.Max)/gb, float64(e.Length)/gb, e.Width*8)
}
