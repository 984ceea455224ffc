// Package lookup loads the optional account lookup table and enriches parsed
// records with account numbers, joining on an abbreviated name key.
package lookup

import (
	"strings"
)

// AbbrevKey derives the join key for a donor name: the uppercase first
// character of the first whitespace-delimited token, a single space, and the
// uppercase last token. Names with fewer than two tokens are returned
// uppercase and trimmed, unchanged otherwise.
//
// The same derivation is applied to parsed donor names and to lookup table
// names; the join silently fails to match if the two ever diverge, so the
// function is the single source of truth for both sides.
func AbbrevKey(name string) string {
	tokens := strings.Fields(name)
	if len(tokens) < 2 {
		return strings.ToUpper(strings.TrimSpace(name))
	}

	first := []rune(tokens[0])
	return strings.ToUpper(string(first[0])) + " " + strings.ToUpper(tokens[len(tokens)-1])
}
