// Package similarity scores idiom pairs and scans the catalog for likely
// variants of a newly entered idiom.
package similarity

import (
	"github.com/agnivade/levenshtein"
)

// Ratio returns a similarity score in [0,1] for two strings: twice the
// total length of matching blocks divided by the combined length
// (Ratcliff/Obershelp). Symmetric, and 1.0 for identical non-empty
// strings. Returns 0 if either string is empty.
func Ratio(a, b string) float64 {
	ar, br := []rune(a), []rune(b)
	if len(ar) == 0 || len(br) == 0 {
		return 0
	}
	m := matchTotal(ar, br)
	return 2 * float64(m) / float64(len(ar)+len(br))
}

// matchTotal sums the matching block lengths: find the longest common
// contiguous block, then recurse on the pieces to its left and right.
func matchTotal(a, b []rune) int {
	ai, bi, size := longestBlock(a, b)
	if size == 0 {
		return 0
	}
	return size + matchTotal(a[:ai], b[:bi]) + matchTotal(a[ai+size:], b[bi+size:])
}

// longestBlock locates the longest contiguous run of runes common to a
// and b. On equal lengths the earliest block in a (then in b) wins.
func longestBlock(a, b []rune) (ai, bi, size int) {
	runLen := make(map[int]int)
	for i := range a {
		next := make(map[int]int)
		for j := range b {
			if a[i] != b[j] {
				continue
			}
			k := runLen[j-1] + 1
			next[j] = k
			if k > size {
				ai, bi, size = i-k+1, j-k+1, k
			}
		}
		runLen = next
	}
	return ai, bi, size
}

// Percent returns a 0–100 fuzzy similarity based on edit distance over
// runes, for the list-producing match mode. Two empty strings score 100;
// one empty string scores 0 against anything else.
func Percent(a, b string) float64 {
	la, lb := len([]rune(a)), len([]rune(b))
	if la == 0 && lb == 0 {
		return 100
	}
	longer := la
	if lb > longer {
		longer = lb
	}
	dist := levenshtein.ComputeDistance(a, b)
	return 100 * (1 - float64(dist)/float64(longer))
}
