package arrayio

import (
	"bufio"
	"io"
	"os"
	"path/filepath"

	"github.com/cockroachdb/errors"
)

const (
	bufferSize = 256 << 10
	filePerm   = 0644
	dirPerm    = 0750
)

// Path returns the name of the array file for path and ext.
func Path(path, ext string) string {
	if ext == "" {
		return path
	}
	return path + "." + ext
}

// fileWriter writes a file under a temporary name and renames it on Commit.
type fileWriter struct {
	target string
	file   *os.File
	writer *bufio.Writer
	size   int64
}

func createFile(target string) (*fileWriter, error) {
	dir := filepath.Dir(target)
	if err := os.MkdirAll(dir, dirPerm); err != nil {
		return nil, err
	}

	file, err := os.CreateTemp(dir, "."+filepath.Base(target)+".tmp*")
	if err != nil {
		return nil, err
	}

	return &fileWriter{
		target: target,
		file:   file,
		writer: bufio.NewWriterSize(file, bufferSize),
	}, nil
}

func (w *fileWriter) Write(p []byte) (int, error) {
	n, err := w.writer.Write(p)
	w.size += int64(n)
	return n, err
}

// Commit flushes, syncs and renames the file into place.
func (w *fileWriter) Commit() error {
	if err := w.writer.Flush(); err != nil {
		w.Abort()
		return err
	}
	if err := w.file.Sync(); err != nil {
		w.Abort()
		return err
	}
	if err := w.file.Chmod(filePerm); err != nil {
		w.Abort()
		return err
	}
	if err := w.file.Close(); err != nil {
		os.Remove(w.file.Name())
		return err
	}
	if err := os.Rename(w.file.Name(), w.target); err != nil {
		os.Remove(w.file.Name())
		return err
	}
	return nil
}

// Abort discards the temporary file.
func (w *fileWriter) Abort() {
	w.file.Close()
	os.Remove(w.file.Name())
}

// writeFile runs fill against a new file at target and commits it. Errors
// name the operation and the target.
func writeFile(op, target string, fill func(io.Writer) error) error {
	w, err := createFile(target)
	if err != nil {
		return errors.Wrapf(err, "%s %s", op, target)
	}
	if err := fill(w); err != nil {
		w.Abort()
		return errors.Wrapf(err, "%s %s", op, target)
	}
	if err := w.Commit(); err != nil {
		return errors.Wrapf(err, "%s %s", op, target)
	}
	return nil
}
