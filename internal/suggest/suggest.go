// Package suggest ranks schema names by edit distance to propose
// repairs for unresolved references.
package suggest

import (
	"sort"
	"strings"
)

// minPrefixLen keeps the truncation rule from matching one or two
// letter fragments against everything.
const minPrefixLen = 3

// Suggest returns the candidates close enough to name to be plausible
// misspellings, best match first. Ordering is by edit distance, then
// shorter candidate, then lexical. Matching is case-insensitive.
//
// A candidate qualifies when its distance is within Threshold(name),
// or when one name is a truncation of the other (crop for crop_name).
func Suggest(name string, candidates []string) []string {
	lower := strings.ToLower(name)
	max := Threshold(lower)

	type scored struct {
		name string
		dist int
	}
	var matches []scored
	for _, cand := range candidates {
		lc := strings.ToLower(cand)
		if lc == lower {
			continue
		}
		d := Levenshtein(lower, lc)
		if d <= max || isTruncation(lower, lc) {
			matches = append(matches, scored{name: cand, dist: d})
		}
	}

	sort.Slice(matches, func(i, j int) bool {
		if matches[i].dist != matches[j].dist {
			return matches[i].dist < matches[j].dist
		}
		if len(matches[i].name) != len(matches[j].name) {
			return len(matches[i].name) < len(matches[j].name)
		}
		return matches[i].name < matches[j].name
	})

	if len(matches) == 0 {
		return nil
	}
	out := make([]string, len(matches))
	for i, m := range matches {
		out[i] = m.name
	}
	return out
}

// Threshold is the maximum edit distance accepted for name: half its
// length rounded up, capped at 4.
func Threshold(name string) int {
	half := (len(name) + 1) / 2
	if half < 4 {
		return half
	}
	return 4
}

func isTruncation(a, b string) bool {
	shorter, longer := a, b
	if len(shorter) > len(longer) {
		shorter, longer = longer, shorter
	}
	return len(shorter) >= minPrefixLen && strings.HasPrefix(longer, shorter)
}

// Levenshtein computes the edit distance between two strings.
func Levenshtein(s1, s2 string) int {
	if s1 == s2 {
		return 0
	}
	if len(s1) == 0 {
		return len(s2)
	}
	if len(s2) == 0 {
		return len(s1)
	}

	matrix := make([][]int, len(s1)+1)
	for i := range matrix {
		matrix[i] = make([]int, len(s2)+1)
		matrix[i][0] = i
	}
	for j := 0; j <= len(s2); j++ {
		matrix[0][j] = j
	}

	for i := 1; i <= len(s1); i++ {
		for j := 1; j <= len(s2); j++ {
			cost := 1
			if s1[i-1] == s2[j-1] {
				cost = 0
			}
			matrix[i][j] = min(
				matrix[i-1][j]+1,      // deletion
				matrix[i][j-1]+1,      // insertion
				matrix[i-1][j-1]+cost, // substitution
			)
		}
	}
	return matrix[len(s1)][len(s2)]
}
