// Package arrayio reads and writes flat arrays of fixed-width elements.
//
// An array file is named <path>.<ext> and holds nothing but its elements,
// little-endian, back to back. There is no header: the element count is the
// file size divided by the element width, so a reader must use the same
// element type the writer used.
//
// Writes go to a temporary file next to the target which is renamed into place
// once everything has been flushed and synced. A failed write never leaves a
// truncated array under the final name.
package arrayio
