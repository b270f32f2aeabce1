package suffix

// BuildPHI sets phi[sa[r]] = sa[r-1], the suffix ranked just before each
// position. The smallest suffix has no predecessor and gets len(sa).
func BuildPHI[T Index](phi, sa []T) {
	n := len(sa)
	if n == 0 {
		return
	}
	phi[sa[0]] = T(n)
	for r := 1; r < n; r++ {
		phi[sa[r]] = sa[r-1]
	}
}

// BuildPLCP computes plcp[i], the longest common prefix of suffix i and the
// suffix ranked before it, from phi. plcp may alias phi.
func BuildPLCP[T Index](plcp, phi []T, text []byte) {
	n := len(text)
	l := 0
	for i := 0; i < n; i++ {
		j := int(phi[i])
		if j == n {
			plcp[i] = 0
			l = 0
			continue
		}
		for i+l < n && j+l < n && text[i+l] == text[j+l] {
			l++
		}
		plcp[i] = T(l)
		if l > 0 {
			l--
		}
	}
}

// BuildLCP permutes plcp into rank order: lcp[r] = plcp[sa[r]].
func BuildLCP[T Index](lcp, plcp, sa []T) {
	for r, p := range sa {
		lcp[r] = plcp[p]
	}
}

// kasai computes plcp from sa using the inverse suffix array rank.
func kasai[T Index](plcp, rank, sa []T, text []byte) {
	n := len(text)
	for r, p := range sa {
		rank[p] = T(r)
	}
	l := 0
	for i := 0; i < n; i++ {
		r := int(rank[i])
		if r == 0 {
			plcp[i] = 0
			l = 0
			continue
		}
		j := int(sa[r-1])
		for i+l < n && j+l < n && text[i+l] == text[j+l] {
			l++
		}
		plcp[i] = T(l)
		if l > 0 {
			l--
		}
	}
}
