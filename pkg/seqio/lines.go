package seqio

import (
	"bufio"
	"io"
)

const readBufferSize = 1 << 20

// lineReader yields LF-delimited lines of any length.
type lineReader struct {
	r   *bufio.Reader
	buf []byte
}

func newLineReader(r io.Reader) *lineReader {
	return &lineReader{r: bufio.NewReaderSize(r, readBufferSize)}
}

// next returns the next line without its LF. The slice is only valid until the
// following call. ok is false once the input is exhausted.
func (lr *lineReader) next() (line []byte, ok bool, err error) {
	lr.buf = lr.buf[:0]
	for {
		chunk, err := lr.r.ReadSlice('\n')
		switch err {
		case nil:
			chunk = chunk[:len(chunk)-1]
			if len(lr.buf) == 0 {
				return chunk, true, nil
			}
			lr.buf = append(lr.buf, chunk...)
			return lr.buf, true, nil
		case bufio.ErrBufferFull:
			lr.buf = append(lr.buf, chunk...)
		case io.EOF:
			if len(lr.buf) == 0 {
				return chunk, len(chunk) > 0, nil
			}
			lr.buf = append(lr.buf, chunk...)
			return lr.buf, true, nil
		default:
			return nil, false, err
		}
	}
}
