package suffix

import (
	"fmt"

	"github.com/cockroachdb/errors"
)

// Variant selects an LSUS construction. The variants produce identical arrays
// and differ in the working arrays they keep alive.
type Variant int

const (
	// IKX works from SA and LCP: text + SA + LCP + LSUS.
	IKX Variant = 1
	// HTX works from SA alone: text + SA + LSUS.
	HTX Variant = 2
	// PLCP works from SA and PHI/PLCP: text + SA + PHI.
	PLCP Variant = 3
)

// ParseVariant maps an algorithm number to a Variant.
func ParseVariant(n int) (Variant, error) {
	switch v := Variant(n); v {
	case IKX, HTX, PLCP:
		return v, nil
	default:
		return 0, errors.Wrapf(ErrUnknownVariant, "%d", n)
	}
}

func (v Variant) String() string {
	switch v {
	case IKX:
		return "IKX_LSUS"
	case HTX:
		return "HTX_LSUS"
	case PLCP:
		return "PLCP_LSUS"
	default:
		return fmt.Sprintf("Variant(%d)", int(v))
	}
}

// BytesPerSymbol is the peak memory per text byte for an index of width bytes.
func (v Variant) BytesPerSymbol(width int) int {
	if v == IKX {
		return 1 + 3*width
	}
	return 1 + 2*width
}

func unique[T Index](a, b T) T {
	if a > b {
		return a + 1
	}
	return b + 1
}

// IKXLSUS derives lsus from the rank-ordered lcp array.
func IKXLSUS[T Index](lsus []T, text []byte, sa, lcp []T) error {
	if err := checkText(text, lsus, sa, lcp); err != nil {
		return err
	}
	n := len(sa)
	for r, p := range sa {
		var next T
		if r+1 < n {
			next = lcp[r+1]
		}
		lsus[p] = unique(lcp[r], next)
	}
	return nil
}

// HTXLSUS derives lsus from sa alone. lsus doubles as the rank array.
func HTXLSUS[T Index](lsus []T, text []byte, sa []T) error {
	if err := checkText(text, lsus, sa); err != nil {
		return err
	}
	plcp := make([]T, len(text))
	kasai(plcp, lsus, sa, text)
	fromPLCP(lsus, sa, plcp)
	return nil
}

// PLCPLSUS derives lsus from sa and phi. phi is overwritten with the PLCP
// array.
func PLCPLSUS[T Index](lsus []T, text []byte, sa, phi []T) error {
	if err := checkText(text, lsus, sa, phi); err != nil {
		return err
	}
	BuildPLCP(phi, phi, text)
	fromPLCP(lsus, sa, phi)
	return nil
}

// fromPLCP sets lsus[p] from the lcp with both SA neighbours of p, reading
// the one with the following suffix as plcp of that suffix.
func fromPLCP[T Index](lsus, sa, plcp []T) {
	n := len(sa)
	for r, p := range sa {
		var next T
		if r+1 < n {
			next = plcp[sa[r+1]]
		}
		lsus[p] = unique(plcp[p], next)
	}
}

// Compute builds the LSUS array of text with variant v, allocating the
// working arrays v needs. sa must already hold the suffix array.
func Compute[T Index](v Variant, text []byte, sa []T) ([]T, error) {
	n := len(text)
	lsus := make([]T, n)
	switch v {
	case IKX:
		phi := make([]T, n)
		BuildPHI(phi, sa)
		BuildPLCP(phi, phi, text)
		lcp := make([]T, n)
		BuildLCP(lcp, phi, sa)
		return lsus, IKXLSUS(lsus, text, sa, lcp)
	case HTX:
		return lsus, HTXLSUS(lsus, text, sa)
	case PLCP:
		phi := make([]T, n)
		BuildPHI(phi, sa)
		return lsus, PLCPLSUS(lsus, text, sa, phi)
	default:
		return nil, errors.Wrapf(ErrUnknownVariant, "%d", int(v))
	}
}
