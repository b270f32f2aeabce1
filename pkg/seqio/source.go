package seqio

import (
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
)

// Format identifies how records are delimited in an input file.
type Format int

const (
	FormatUnknown Format = iota
	FormatText
	FormatFASTA
)

func (f Format) String() string {
	switch f {
	case FormatText:
		return "txt"
	case FormatFASTA:
		return "fasta"
	default:
		return "unknown"
	}
}

// Compression identifies an optional compression wrapper around the input.
type Compression int

const (
	CompressionNone Compression = iota
	CompressionGzip
	CompressionZstd
)

func (c Compression) String() string {
	switch c {
	case CompressionGzip:
		return "gz"
	case CompressionZstd:
		return "zst"
	default:
		return "none"
	}
}

var compressionExts = map[string]Compression{
	"gz":  CompressionGzip,
	"zst": CompressionZstd,
}

var formatExts = map[string]Format{
	"txt":   FormatText,
	"fasta": FormatFASTA,
}

// FormatOf selects the format from the extension of path. A trailing gz or zst
// extension is peeled off first. Any other extension is ErrUnsupportedFormat.
func FormatOf(path string) (Format, Compression, error) {
	name := filepath.Base(path)
	compression := CompressionNone
	if c, ok := compressionExts[extension(name)]; ok {
		compression = c
		name = strings.TrimSuffix(name, "."+extension(name))
	}

	ext := extension(name)
	format, ok := formatExts[ext]
	if !ok {
		return FormatUnknown, compression, errors.Wrapf(ErrUnsupportedFormat,
			"%q: extension %q is not one of .txt, .fasta", path, ext)
	}
	return format, compression, nil
}

// extension returns the token after the last dot, or "" for names without one
// and for dotfiles such as ".txt".
func extension(name string) string {
	dot := strings.LastIndexByte(name, '.')
	if dot <= 0 {
		return ""
	}
	return name[dot+1:]
}

// openSource opens path and wraps it in the decompressor c names.
func openSource(path string, c Compression) (io.ReadCloser, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "open %s", path)
	}

	switch c {
	case CompressionGzip:
		gz, err := gzip.NewReader(file)
		if err != nil {
			file.Close()
			return nil, errors.Wrapf(err, "open gzip stream %s", path)
		}
		return &stackedCloser{Reader: gz, closers: []io.Closer{gz, file}}, nil
	case CompressionZstd:
		dec, err := zstd.NewReader(file)
		if err != nil {
			file.Close()
			return nil, errors.Wrapf(err, "open zstd stream %s", path)
		}
		return &stackedCloser{Reader: dec, closers: []io.Closer{dec.IOReadCloser(), file}}, nil
	default:
		return file, nil
	}
}

// stackedCloser closes a decompressor before the file underneath it.
type stackedCloser struct {
	io.Reader
	closers []io.Closer
}

func (s *stackedCloser) Close() error {
	var first error
	for _, c := range s.closers {
		if err := c.Close(); err != nil && first == nil {
			first = err
		}
	}
	return first
}
