package seqio

import (
	"io"

	"github.com/cockroachdb/errors"
)

// Parse reads records from r in the given format.
func Parse(r io.Reader, format Format, limit Limit) (*RecordStore, error) {
	switch format {
	case FormatText:
		return ParseLines(r, limit)
	case FormatFASTA:
		return ParseFASTA(r, limit)
	default:
		return nil, errors.Wrapf(ErrUnsupportedFormat, "format %s", format)
	}
}

// Load parses the file at path, choosing the parser from its extension. The
// extension is checked before the file is opened.
func Load(path string, limit Limit) (*RecordStore, error) {
	format, compression, err := FormatOf(path)
	if err != nil {
		return nil, err
	}

	src, err := openSource(path, compression)
	if err != nil {
		return nil, err
	}
	defer src.Close()

	store, err := Parse(src, format, limit)
	if err != nil {
		return nil, errors.Wrapf(err, "parse %s", path)
	}
	return store, nil
}
