package seqio

import (
	"bytes"

	"github.com/cockroachdb/errors"
)

const (
	// Terminator closes the encoded buffer and appears exactly once.
	Terminator byte = 0
	// Separator follows every encoded record.
	Separator byte = 1

	// shift maps a record byte above both sentinels.
	shift = 1
)

// EncodedLen returns the length Encode will produce for s.
func EncodedLen(s *RecordStore) int {
	return s.TotalBytes() + 1
}

// Encode concatenates the records of s into a single buffer, shifting every
// byte by one and appending Separator after each record and Terminator at the
// end. The store is consumed: its records are released and any further Encode
// returns ErrStoreConsumed. A store holding a reserved byte is left untouched.
func Encode(s *RecordStore) ([]byte, error) {
	if s.consumed {
		return nil, ErrStoreConsumed
	}
	if err := checkRepresentable(s); err != nil {
		return nil, err
	}

	text := make([]byte, EncodedLen(s))
	pos := 0
	for i, rec := range s.records {
		for _, b := range rec {
			text[pos] = b + shift
			pos++
		}
		text[pos] = Separator
		pos++
		s.records[i] = nil
	}
	text[pos] = Terminator

	s.release()
	return text, nil
}

// checkRepresentable rejects bytes whose shifted value would be a sentinel.
func checkRepresentable(s *RecordStore) error {
	for i, rec := range s.records {
		if j := bytes.IndexByte(rec, 0x00); j >= 0 {
			return errors.Wrapf(ErrReservedByte, "record %d offset %d: byte 0x00", i, j)
		}
		if j := bytes.IndexByte(rec, 0xFF); j >= 0 {
			return errors.Wrapf(ErrReservedByte, "record %d offset %d: byte 0xff", i, j)
		}
	}
	return nil
}
