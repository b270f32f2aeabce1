// Package seqio loads sequence collections from disk and encodes them into a
// single text buffer for suffix array construction.
//
// # Input formats
//
// The format is chosen from the file extension:
//
//	.txt    one record per LF-terminated line
//	.fasta  records introduced by a '>' header line, body lines concatenated
//
// Either may carry a trailing .gz or .zst suffix, in which case the input is
// decompressed while it is parsed.
//
// # Encoding
//
// Encode concatenates the records of a RecordStore into one buffer:
//
//	[r0+1 ...][1][r1+1 ...][1] ... [0]
//
// Every record byte b is stored as b+1, each record is followed by the
// separator 1 and the buffer ends with the single terminator 0. The terminator
// sorts before every other byte and the separator sorts before any record
// content, which is what suffix array builders rely on.
//
// Record bytes 0x00 and 0xFF have no encoding under this scheme and are
// rejected by Encode with ErrReservedByte.
package seqio
