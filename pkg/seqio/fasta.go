package seqio

import (
	"io"

	"github.com/cockroachdb/errors"
)

const headerMarker = '>'

// ParseFASTA reads '>'-delimited records. Header lines are discarded and the
// body lines of a record are concatenated without their LFs. The first line
// of the input is always taken as a header. A header followed directly by
// another header or by end of input yields an empty record.
func ParseFASTA(r io.Reader, limit Limit) (*RecordStore, error) {
	lines := newLineReader(r)
	store := NewRecordStore(ChunkSize)

	if _, ok, err := lines.next(); err != nil {
		return nil, errors.Wrap(err, "read first header")
	} else if !ok {
		return store, nil
	}

	for limit.allows(store.Len()) {
		body := newBodyBuffer()
		more := false
		for {
			line, ok, err := lines.next()
			if err != nil {
				return nil, errors.Wrapf(err, "read record %d", store.Len())
			}
			if !ok {
				break
			}
			if len(line) > 0 && line[0] == headerMarker {
				more = true
				break
			}
			body.append(line)
		}
		store.Push(body.bytes())
		if !more {
			break
		}
	}

	return store, nil
}

// bodyBuffer accumulates the lines of one sequence. It starts at ChunkSize
// bytes and grows by the overflowing line length plus ChunkSize, so very long
// sequences reallocate rarely.
type bodyBuffer struct {
	buf []byte
}

func newBodyBuffer() *bodyBuffer {
	return &bodyBuffer{buf: make([]byte, 0, ChunkSize)}
}

func (b *bodyBuffer) append(line []byte) {
	if len(b.buf)+len(line) > cap(b.buf) {
		grown := make([]byte, len(b.buf), cap(b.buf)+len(line)+ChunkSize)
		copy(grown, b.buf)
		b.buf = grown
	}
	b.buf = append(b.buf, line...)
}

// bytes hands the body over. Short bodies are copied out so a record never
// holds more than twice its length.
func (b *bodyBuffer) bytes() []byte {
	if cap(b.buf)-len(b.buf) >= len(b.buf) {
		fit := make([]byte, len(b.buf))
		copy(fit, b.buf)
		return fit
	}
	return b.buf
}
