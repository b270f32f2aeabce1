package seqio

import "github.com/cockroachdb/errors"

var (
	// ErrUnsupportedFormat is returned for file extensions other than txt and fasta.
	ErrUnsupportedFormat = errors.New("unsupported input format")
	// ErrReservedByte is returned by Encode when a record holds 0x00 or 0xFF.
	ErrReservedByte = errors.New("record byte collides with a reserved sentinel")
	// ErrStoreConsumed is returned when a store is used after Encode released it.
	ErrStoreConsumed = errors.New("record store already consumed")
)
