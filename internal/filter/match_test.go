package filter

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func TestMatch_Table(t *testing.T) {
	tests := []struct {
		name    string
		pattern string
		id      string
		want    bool
	}{
		// Literals are anchored at both ends.
		{"exact literal", "Foo_Bar", "Foo_Bar", true},
		{"literal prefix only", "Foo", "Foo_Bar", false},
		{"literal suffix only", "B", "AB", false},
		{"literal mid-string", "o_B", "Foo_Bar", false},

		// Empty pattern matches only the empty identifier.
		{"empty pattern empty id", "", "", true},
		{"empty pattern nonempty id", "", "A", false},

		// Lone wildcard matches anything.
		{"star matches empty", "*", "", true},
		{"star matches anything", "*", "Suite_Name_k[0]", true},

		// Wildcard expansion.
		{"trailing star zero chars", "A*", "A", true},
		{"trailing star many chars", "A*", "ABC", true},
		{"leading star", "*C", "CABC", true},
		{"middle star no bridge", "A*C", "AB", false},
		{"multiple stars", "A*B*C", "AABBCC", true},
		{"star needs literal tail", "A*C", "ABCD", false},
		{"adjacent stars", "A**C", "AxyzC", true},
		{"star backtracking", "*aab", "aaab", true},

		// Identifier-shaped cases.
		{"suite glob", "Filter_*", "Filter_Wildcard", true},
		{"combinatorial suffix", "Cart_*[1]*", "Cart_Combo_names[1]_ages[0]", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, Match(tt.pattern, tt.id),
				"Match(%q, %q)", tt.pattern, tt.id)
		})
	}
}

// Match("*", id) holds for every identifier.
func TestMatch_StarMatchesEverything(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		id := rapid.String().Draw(t, "id")
		require.True(t, Match("*", id))
	})
}

// Every identifier matches itself, provided it contains no wildcard.
func TestMatch_LiteralIdentity(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		id := rapid.StringMatching(`[A-Za-z0-9_\[\]]*`).Draw(t, "id")
		require.True(t, Match(id, id))
	})
}

// Splicing a wildcard into an identifier always yields a matching pattern.
func TestMatch_StarSplice(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		id := rapid.StringMatching(`[A-Za-z0-9_]*`).Draw(t, "id")
		cut := rapid.IntRange(0, len(id)).Draw(t, "cut")
		pattern := id[:cut] + "*" + id[cut:]
		require.True(t, Match(pattern, id), "Match(%q, %q)", pattern, id)
	})
}

// A pattern with a literal character absent from the identifier never matches.
func TestMatch_MissingLiteral(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		id := rapid.StringMatching(`[a-z_]*`).Draw(t, "id")
		require.False(t, Match("*Q*", id))
		require.False(t, strings.Contains(id, "Q"))
	})
}
