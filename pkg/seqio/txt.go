package seqio

import (
	"bytes"
	"io"

	"github.com/cockroachdb/errors"
)

// ParseLines reads one record per line. The LF is not part of the record and
// a last line without LF is still a complete record. Parsing stops after limit
// records or at end of input, whichever comes first; the returned store holds
// the actual count.
func ParseLines(r io.Reader, limit Limit) (*RecordStore, error) {
	lines := newLineReader(r)
	store := NewRecordStore(ChunkSize)

	for limit.allows(store.Len()) {
		line, ok, err := lines.next()
		if err != nil {
			return nil, errors.Wrapf(err, "read line %d", store.Len())
		}
		if !ok {
			break
		}
		store.Push(bytes.Clone(line))
	}

	return store, nil
}
