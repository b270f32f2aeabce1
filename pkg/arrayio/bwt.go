package arrayio

import (
	"io"

	"github.com/cockroachdb/errors"
)

const (
	// NoPredecessor is emitted for the rank whose suffix starts the text.
	NoPredecessor byte = '#'
	// EndOfString is emitted in place of a terminator byte.
	EndOfString byte = '$'
)

// WriteCyclicPredecessor writes, for every rank i of sa, the text byte that
// precedes suffix sa[i] (the Burrows-Wheeler column). sa[i] == 0 yields
// NoPredecessor and a predecessor equal to the terminator 0 yields EndOfString.
func WriteCyclicPredecessor[T Element](text []byte, sa []T, path, ext string) error {
	return writeFile("write bwt", Path(path, ext), func(w io.Writer) error {
		buf := make([]byte, 0, bufferSize)
		for i, p := range sa {
			c, err := bwtByte(text, p)
			if err != nil {
				return errors.Wrapf(err, "rank %d", i)
			}
			if len(buf) == cap(buf) {
				if _, err := w.Write(buf); err != nil {
					return err
				}
				buf = buf[:0]
			}
			buf = append(buf, c)
		}
		_, err := w.Write(buf)
		return err
	})
}

// WriteCyclicPredecessorTyped is WriteCyclicPredecessor for integer texts.
// sa[i] == 0 yields 0 and no value is remapped.
func WriteCyclicPredecessorTyped[T Element](text []T, sa []T, path, ext string) error {
	return writeFile("write bwt", Path(path, ext), func(w io.Writer) error {
		out := make([]T, len(sa))
		for i, p := range sa {
			v, err := predecessor(text, p, 0)
			if err != nil {
				return errors.Wrapf(err, "rank %d", i)
			}
			out[i] = v
		}
		return encodeElements(w, out)
	})
}

// CyclicPredecessor returns the same column WriteCyclicPredecessor writes.
func CyclicPredecessor[T Element](text []byte, sa []T) ([]byte, error) {
	out := make([]byte, len(sa))
	for i, p := range sa {
		c, err := bwtByte(text, p)
		if err != nil {
			return nil, errors.Wrapf(err, "rank %d", i)
		}
		out[i] = c
	}
	return out, nil
}

func bwtByte[T Element](text []byte, p T) (byte, error) {
	c, err := predecessor(text, p, NoPredecessor)
	if c == 0 && err == nil {
		c = EndOfString
	}
	return c, err
}

func predecessor[E any, T Element](text []E, p T, boundary E) (E, error) {
	if p == 0 {
		return boundary, nil
	}
	if uint64(p) > uint64(len(text)) {
		var zero E
		return zero, errors.Wrapf(ErrPermutationRange, "value %d, text length %d", uint64(p), len(text))
	}
	return text[p-1], nil
}
