package filter

import "strings"

// listSeparator delimits patterns within the include or exclude list.
const listSeparator = ":"

// negator splits the include list from the exclude list; only the first
// occurrence is significant, later '-' characters are ordinary pattern text.
const negator = "-"

// Set is a parsed filter specification: an ordered include-pattern list and
// an ordered exclude-pattern list. The zero value is not useful; build one
// with Parse. A Set is immutable once built and safe to copy.
type Set struct {
	include []string
	exclude []string
}

// MatchAll is the default Set: every identifier is admitted.
func MatchAll() Set {
	return Parse("")
}

// Parse builds a Set from a specification of the form
//
//	include1:include2-exclude1:exclude2
//
// The substring before the first '-' is the include list, the substring
// after it the exclude list. An empty specification, or an empty include
// part (a leading '-'), seeds the include list with a single wildcard.
// Zero-length pattern segments are kept as-is; they never match anything.
// Any string parses successfully — there is no malformed-filter error.
func Parse(spec string) Set {
	s := Set{include: []string{string(Wildcard)}}
	if spec == "" {
		return s
	}
	inc, exc, negated := strings.Cut(spec, negator)
	if inc != "" {
		s.include = strings.Split(inc, listSeparator)
	}
	if negated {
		s.exclude = strings.Split(exc, listSeparator)
	}
	return s
}

// IsAllowed reports whether id passes the filter: at least one include
// pattern matches and no exclude pattern does. This sits on the hot path of
// every execution decision and performs no allocation.
func (s Set) IsAllowed(id string) bool {
	return matchAny(s.include, id) && !matchAny(s.exclude, id)
}

func matchAny(patterns []string, id string) bool {
	for _, p := range patterns {
		if Match(p, id) {
			return true
		}
	}
	return false
}
