//go:build fuzz
// +build fuzz

package suffix

import (
	"bytes"
	"testing"
)

// FuzzCompute checks every variant against the quadratic definition of LSUS.
func FuzzCompute(f *testing.F) {
	f.Add("banana", "anana")
	f.Add("", "")
	f.Add("aaaa", "aa")
	f.Add("ACGTACGT", "TTGCA")

	f.Fuzz(func(t *testing.T, a, b string) {
		if len(a)+len(b) > 200 {
			t.Skip("input too large for the quadratic reference")
		}
		if bytes.ContainsAny([]byte(a+b), "\x00\xff") {
			t.Skip("reserved bytes cannot be encoded")
		}

		text := encoded(a, b)
		want := bruteLSUS(text)

		sa := make([]uint32, len(text))
		if err := BuildSA(text, sa); err != nil {
			t.Fatalf("BuildSA: %v", err)
		}
		for _, v := range []Variant{IKX, HTX, PLCP} {
			got, err := Compute(v, text, sa)
			if err != nil {
				t.Fatalf("%s: %v", v, err)
			}
			for i := range want {
				if got[i] != want[i] {
					t.Fatalf("%s: LSUS[%d] = %d, want %d (text %v)", v, i, got[i], want[i], text)
				}
			}
		}
	})
}
