// Package suffix holds the array builders that consume an encoded text: the
// suffix array, the PHI/PLCP/LCP arrays and the shortest-unique-substring
// (LSUS) array.
//
// The text must end with a single 0 terminator that appears nowhere else, as
// produced by seqio.Encode. All arrays have the length of the text and are
// indexed either by rank (SA, LCP) or by text position (PHI, PLCP, LSUS).
//
// These are straightforward reference builders: the suffix array is found by
// comparison sorting and is quadratic on repetitive input. They exist to run
// the pipeline end to end and to cross-check the LSUS variants against each
// other.
package suffix
