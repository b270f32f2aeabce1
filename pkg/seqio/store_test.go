package seqio

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordStore_PushGrowsByChunk(t *testing.T) {
	store := NewRecordStore(2)
	assert.Equal(t, 2, store.Cap())

	store.Push([]byte("a"))
	store.Push([]byte("bc"))
	assert.Equal(t, 2, store.Cap())

	store.Push([]byte("def"))
	assert.Equal(t, 2+ChunkSize, store.Cap(), "growth is linear, not doubling")
	assert.Equal(t, 3, store.Len())

	assert.Equal(t, []byte("a"), store.Record(0))
	assert.Equal(t, []byte("bc"), store.Record(1))
	assert.Equal(t, []byte("def"), store.Record(2))
	assert.Equal(t, 2+3+4, store.TotalBytes())
}

func TestRecordStore_PushManyKeepsOrder(t *testing.T) {
	store := NewRecordStore(0)
	n := 3*ChunkSize + 17
	for i := 0; i < n; i++ {
		store.Push([]byte{byte(i%250) + 1})
	}

	require.Equal(t, n, store.Len())
	assert.Equal(t, 4*ChunkSize, store.Cap())
	for i := 0; i < n; i++ {
		assert.Equal(t, byte(i%250)+1, store.Record(i)[0])
	}
}

func TestRecordStore_Reserve(t *testing.T) {
	store := NewRecordStore(1)
	store.Push([]byte("x"))
	store.Reserve(10)
	assert.Equal(t, 11, store.Cap())
	assert.Equal(t, []byte("x"), store.Record(0))

	// Enough room already.
	store.Reserve(5)
	assert.Equal(t, 11, store.Cap())
}

func TestRecordStore_FinalizeAndShrink(t *testing.T) {
	store := NewRecordStore(8)
	for _, rec := range []string{"aa", "b", "cccc", "dd"} {
		store.Push([]byte(rec))
	}

	store.Finalize(2)
	assert.Equal(t, 2, store.Len())
	assert.Equal(t, 8, store.Cap(), "finalize keeps spare capacity")
	assert.Equal(t, 3+2, store.TotalBytes())

	store.Finalize(10)
	assert.Equal(t, 2, store.Len(), "finalize never extends the view")

	store.ShrinkToFit()
	assert.Equal(t, 2, store.Cap())
	assert.Equal(t, [][]byte{[]byte("aa"), []byte("b")}, store.Records())
}
