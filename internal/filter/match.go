// Package filter implements wildcard pattern matching and the
// include/exclude filter sets that decide which tests a run admits.
package filter

// Wildcard stands for zero or more arbitrary characters. It is the only
// special character in a pattern: no '?', no character classes, no escaping.
const Wildcard = '*'

// Match reports whether pattern matches id in full. Matching is anchored at
// both ends; a bare literal pattern only matches an identical identifier.
//
// The matcher backtracks iteratively rather than recursing: it remembers the
// most recent wildcard and, on a mismatch, re-expands it by one character.
// Worst case is O(len(pattern) * len(id)), which is fine for the short,
// operator-authored strings filters are made of.
func Match(pattern, id string) bool {
	p, i := 0, 0
	star, mark := -1, 0
	for i < len(id) {
		switch {
		case p < len(pattern) && pattern[p] == Wildcard:
			// Try the wildcard consuming nothing first; mark is where
			// we resume if the rest of the pattern doesn't pan out.
			star, mark = p, i
			p++
		case p < len(pattern) && pattern[p] == id[i]:
			p++
			i++
		case star >= 0:
			// Mismatch past a wildcard: let it swallow one more character.
			p = star + 1
			mark++
			i = mark
		default:
			return false
		}
	}
	// Identifier exhausted; only trailing wildcards may remain.
	for p < len(pattern) && pattern[p] == Wildcard {
		p++
	}
	return p == len(pattern)
}
