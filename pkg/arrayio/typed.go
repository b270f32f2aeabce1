package arrayio

import (
	"bufio"
	"io"
	"os"

	"github.com/cockroachdb/errors"
)

// WriteTyped writes elems to <path>.<ext>, replacing any existing file.
func WriteTyped[T Element](elems []T, path, ext string) error {
	return writeFile("write array", Path(path, ext), func(w io.Writer) error {
		return encodeElements(w, elems)
	})
}

// ReadTyped reads the array stored at <path>.<ext>. The element count is the
// file size divided by the width of T.
func ReadTyped[T Element](path, ext string) ([]T, error) {
	target := Path(path, ext)
	file, err := os.Open(target)
	if err != nil {
		return nil, errors.Wrapf(err, "read array %s", target)
	}
	defer file.Close()

	info, err := file.Stat()
	if err != nil {
		return nil, errors.Wrapf(err, "read array %s", target)
	}

	width := Width[T]()
	if info.Size()%int64(width) != 0 {
		return nil, errors.Wrapf(ErrSizeMismatch, "read array %s: %d bytes, width %d",
			target, info.Size(), width)
	}

	elems := make([]T, info.Size()/int64(width))
	if err := decodeElements(bufio.NewReaderSize(file, bufferSize), elems); err != nil {
		return nil, errors.Wrapf(err, "read array %s", target)
	}
	return elems, nil
}

func encodeElements[T Element](w io.Writer, elems []T) error {
	width := Width[T]()
	buf := make([]byte, 0, bufferSize)
	for _, v := range elems {
		if len(buf)+width > cap(buf) {
			if _, err := w.Write(buf); err != nil {
				return err
			}
			buf = buf[:0]
		}
		buf = buf[:len(buf)+width]
		putElement(buf[len(buf)-width:], v, width)
	}
	_, err := w.Write(buf)
	return err
}

func decodeElements[T Element](r io.Reader, elems []T) error {
	width := Width[T]()
	buf := make([]byte, bufferSize-bufferSize%width)
	for i := 0; i < len(elems); {
		chunk := (len(elems) - i) * width
		if chunk > len(buf) {
			chunk = len(buf)
		}
		if _, err := io.ReadFull(r, buf[:chunk]); err != nil {
			return err
		}
		for off := 0; off < chunk; off += width {
			elems[i] = getElement[T](buf[off:], width)
			i++
		}
	}
	return nil
}
