package arrayio

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWidth(t *testing.T) {
	assert.Equal(t, 1, Width[uint8]())
	assert.Equal(t, 4, Width[uint32]())
	assert.Equal(t, 4, Width[int32]())
	assert.Equal(t, 8, Width[uint64]())
	assert.Equal(t, 8, Width[int64]())
}

func TestPath(t *testing.T) {
	assert.Equal(t, "reads.4.lsus", Path("reads.4", "lsus"))
	assert.Equal(t, "/a/b.sa", Path("/a/b", "sa"))
	assert.Equal(t, "plain", Path("plain", ""))
}

func roundTrip[T Element](t *testing.T, elems []T) {
	t.Helper()
	base := filepath.Join(t.TempDir(), "array")

	require.NoError(t, WriteTyped(elems, base, "bin"))

	info, err := os.Stat(base + ".bin")
	require.NoError(t, err)
	assert.Equal(t, int64(len(elems)*Width[T]()), info.Size())

	got, err := ReadTyped[T](base, "bin")
	require.NoError(t, err)
	assert.Len(t, got, len(elems))
	for i := range elems {
		if elems[i] != got[i] {
			t.Fatalf("element %d: got %v, want %v", i, got[i], elems[i])
		}
	}
}

func TestTypedRoundTrip(t *testing.T) {
	t.Run("uint32", func(t *testing.T) {
		roundTrip(t, []uint32{0, 1, 2, math.MaxUint32, 123456})
	})
	t.Run("uint64", func(t *testing.T) {
		roundTrip(t, []uint64{math.MaxUint64, 0, 1 << 40})
	})
	t.Run("int32 negative", func(t *testing.T) {
		roundTrip(t, []int32{-1, math.MinInt32, math.MaxInt32, 0})
	})
	t.Run("int64", func(t *testing.T) {
		roundTrip(t, []int64{-5, math.MaxInt64})
	})
	t.Run("bytes", func(t *testing.T) {
		roundTrip(t, []uint8{0, 255, 7})
	})
	t.Run("zero count", func(t *testing.T) {
		roundTrip(t, []uint32{})
	})
	t.Run("larger than one buffer", func(t *testing.T) {
		elems := make([]uint64, bufferSize/8*3+5)
		for i := range elems {
			elems[i] = uint64(i) * 2654435761
		}
		roundTrip(t, elems)
	})
}

func TestWriteTyped_LittleEndian(t *testing.T) {
	base := filepath.Join(t.TempDir(), "le")
	require.NoError(t, WriteTyped([]uint32{0x01020304}, base, "sa"))

	data, err := os.ReadFile(base + ".sa")
	require.NoError(t, err)
	assert.Equal(t, []byte{0x04, 0x03, 0x02, 0x01}, data)
}

func TestWriteTyped_Replaces(t *testing.T) {
	base := filepath.Join(t.TempDir(), "arr")
	require.NoError(t, WriteTyped([]uint32{1, 2, 3}, base, "sa"))
	require.NoError(t, WriteTyped([]uint32{9}, base, "sa"))

	got, err := ReadTyped[uint32](base, "sa")
	require.NoError(t, err)
	assert.Equal(t, []uint32{9}, got)

	entries, err := os.ReadDir(filepath.Dir(base))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "no temporary files left behind")
}

func TestWriteTyped_CreatesDirectory(t *testing.T) {
	base := filepath.Join(t.TempDir(), "nested", "deep", "arr")
	require.NoError(t, WriteTyped([]uint64{1}, base, "lsus"))
	assert.FileExists(t, base+".lsus")
}

func TestWriteTyped_InvalidPath(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "file")
	require.NoError(t, os.WriteFile(blocker, nil, 0600))

	err := WriteTyped([]uint32{1}, filepath.Join(blocker, "arr"), "sa")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "write array")
}

func TestReadTyped_SizeMismatch(t *testing.T) {
	base := filepath.Join(t.TempDir(), "odd")
	require.NoError(t, os.WriteFile(base+".sa", []byte{1, 2, 3, 4, 5, 6}, 0600))

	_, err := ReadTyped[uint32](base, "sa")
	assert.ErrorIs(t, err, ErrSizeMismatch)

	// The same bytes are a valid byte array.
	got, err := ReadTyped[uint8](base, "sa")
	require.NoError(t, err)
	assert.Len(t, got, 6)
}

func TestReadTyped_Missing(t *testing.T) {
	_, err := ReadTyped[uint32](filepath.Join(t.TempDir(), "none"), "sa")
	assert.ErrorIs(t, err, os.ErrNotExist)
}
