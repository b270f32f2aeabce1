package seqio

import "strconv"

// Limit bounds how many records a parser reads.
//
// The zero value is Unbounded. Exactly(0) asks for no records at all, which is
// distinct from leaving the bound unset.
type Limit struct {
	n       int
	bounded bool
}

// Unbounded reads until end of input.
var Unbounded = Limit{}

// Exactly reads at most n records. Negative values are treated as zero.
func Exactly(n int) Limit {
	if n < 0 {
		n = 0
	}
	return Limit{n: n, bounded: true}
}

// Bounded reports whether the limit caps the record count.
func (l Limit) Bounded() bool { return l.bounded }

// Count returns the cap. It is meaningless for Unbounded.
func (l Limit) Count() int { return l.n }

// allows reports whether a record with index i may still be read.
func (l Limit) allows(i int) bool {
	return !l.bounded || i < l.n
}

func (l Limit) String() string {
	if !l.bounded {
		return "unbounded"
	}
	return strconv.Itoa(l.n)
}
