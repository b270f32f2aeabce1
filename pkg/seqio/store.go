package seqio

// ChunkSize is the growth step of a RecordStore and the initial size of a
// FASTA body buffer.
const ChunkSize = 2048

// RecordStore holds parsed records in file order until Encode consumes them.
type RecordStore struct {
	records  [][]byte
	total    int
	consumed bool
}

// NewRecordStore creates an empty store with room for initialCapacity records.
func NewRecordStore(initialCapacity int) *RecordStore {
	if initialCapacity < 0 {
		initialCapacity = 0
	}
	return &RecordStore{records: make([][]byte, 0, initialCapacity)}
}

// Push appends rec. The store takes ownership of rec.
// A full store grows by ChunkSize slots.
func (s *RecordStore) Push(rec []byte) {
	if len(s.records) == cap(s.records) {
		s.Reserve(ChunkSize)
	}
	s.records = append(s.records, rec)
	s.total += len(rec) + 1
}

// Reserve makes room for n more records without further reallocation.
func (s *RecordStore) Reserve(n int) {
	if cap(s.records)-len(s.records) >= n {
		return
	}
	grown := make([][]byte, len(s.records), len(s.records)+n)
	copy(grown, s.records)
	s.records = grown
}

// Finalize truncates the store to its first actual records. Spare capacity is
// kept; call ShrinkToFit to release it.
func (s *RecordStore) Finalize(actual int) {
	if actual < 0 || actual >= len(s.records) {
		return
	}
	for i := actual; i < len(s.records); i++ {
		s.total -= len(s.records[i]) + 1
		s.records[i] = nil
	}
	s.records = s.records[:actual]
}

// ShrinkToFit reallocates the backing array to the logical length.
func (s *RecordStore) ShrinkToFit() {
	if len(s.records) == cap(s.records) {
		return
	}
	fit := make([][]byte, len(s.records))
	copy(fit, s.records)
	s.records = fit
}

// Len returns the number of records.
func (s *RecordStore) Len() int { return len(s.records) }

// Cap returns the number of record slots allocated.
func (s *RecordStore) Cap() int { return cap(s.records) }

// TotalBytes returns the sum of len(record)+1 over all records, i.e. the
// encoded length without the terminator.
func (s *RecordStore) TotalBytes() int { return s.total }

// Record returns the i-th record. The slice is still owned by the store.
func (s *RecordStore) Record(i int) []byte { return s.records[i] }

// Records returns the records in file order. The slices are still owned by
// the store.
func (s *RecordStore) Records() [][]byte { return s.records }

// Consumed reports whether Encode has released the records.
func (s *RecordStore) Consumed() bool { return s.consumed }

func (s *RecordStore) release() {
	s.records = nil
	s.total = 0
	s.consumed = true
}
