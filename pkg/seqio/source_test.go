package seqio

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatOf(t *testing.T) {
	tests := []struct {
		path        string
		format      Format
		compression Compression
		wantErr     bool
	}{
		{path: "reads.txt", format: FormatText},
		{path: "/data/genome.fasta", format: FormatFASTA},
		{path: "dir.v2/reads.fasta.gz", format: FormatFASTA, compression: CompressionGzip},
		{path: "reads.txt.zst", format: FormatText, compression: CompressionZstd},
		{path: "reads.fastq", wantErr: true},
		{path: "reads.fa", wantErr: true},
		{path: "reads", wantErr: true},
		{path: ".txt", wantErr: true},
		{path: "reads.gz", wantErr: true},
		{path: "reads.TXT", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			format, compression, err := FormatOf(tt.path)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrUnsupportedFormat)
				assert.Equal(t, FormatUnknown, format)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.format, format)
			assert.Equal(t, tt.compression, compression)
		})
	}
}

func TestLoad_RejectsBeforeOpening(t *testing.T) {
	// The file does not exist; the format error wins over the open error.
	_, err := Load(filepath.Join(t.TempDir(), "missing.csv"), Unbounded)
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}

func TestLoad_MissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing.txt")
	_, err := Load(path, Unbounded)
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
	assert.Contains(t, err.Error(), path)
}

func TestLoad_Formats(t *testing.T) {
	dir := t.TempDir()

	txt := filepath.Join(dir, "in.txt")
	require.NoError(t, os.WriteFile(txt, []byte("AC\nGT\n"), 0600))

	fasta := filepath.Join(dir, "in.fasta")
	require.NoError(t, os.WriteFile(fasta, []byte(">1\nAC\n>2\nGT\n"), 0600))

	for _, path := range []string{txt, fasta} {
		store, err := Load(path, Unbounded)
		require.NoError(t, err, path)
		assert.Equal(t, []string{"AC", "GT"}, records(store), path)
	}
}

func TestLoad_Compressed(t *testing.T) {
	dir := t.TempDir()
	content := []byte(">1\nACGT\nAC\n>2\nTT\n")

	gzPath := filepath.Join(dir, "in.fasta.gz")
	f, err := os.Create(gzPath)
	require.NoError(t, err)
	gz := gzip.NewWriter(f)
	_, err = gz.Write(content)
	require.NoError(t, err)
	require.NoError(t, gz.Close())
	require.NoError(t, f.Close())

	zstPath := filepath.Join(dir, "in.fasta.zst")
	f, err = os.Create(zstPath)
	require.NoError(t, err)
	enc, err := zstd.NewWriter(f)
	require.NoError(t, err)
	_, err = enc.Write(content)
	require.NoError(t, err)
	require.NoError(t, enc.Close())
	require.NoError(t, f.Close())

	for _, path := range []string{gzPath, zstPath} {
		store, err := Load(path, Unbounded)
		require.NoError(t, err, path)
		assert.Equal(t, []string{"ACGTAC", "TT"}, records(store), path)
	}
}

func TestLoad_CorruptGzip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "in.txt.gz")
	require.NoError(t, os.WriteFile(path, []byte("not gzip"), 0600))

	_, err := Load(path, Unbounded)
	assert.Error(t, err)
}
