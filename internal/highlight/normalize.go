package highlight

import "strings"

// Analyzer output and source abstracts drift on punctuation: non-breaking
// spaces, curly quote variants, and an en-dash that arrives mis-decoded as
// the three-character sequence "â" (UTF-8 bytes read as Latin-1).
var normalizeReplacer = strings.NewReplacer(
	" ", " ",
	"â", "-",
	"‘", "'",
	"’", "'",
	"“", `"`,
	"”", `"`,
)

// Normalize canonicalizes s for phrase comparison only, never for display:
// lowercase, punctuation repairs above, whitespace runs collapsed to a single
// space, leading and trailing whitespace trimmed. Two strings are the same
// phrase occurrence iff their normalized forms are equal.
func Normalize(s string) string {
	s = strings.ToLower(s)
	s = normalizeReplacer.Replace(s)
	return strings.Join(strings.Fields(s), " ")
}
