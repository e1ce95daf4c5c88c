package highlight

import (
	"unicode"
	"unicode/utf8"
)

// locate finds the earliest occurrence of phrase in text. Normalization can
// change string length (whitespace collapsing), so matching runs on the
// original text: every position whose rune equals the phrase's first rune
// case-insensitively is a candidate, and the candidate window spanning the
// same number of runes as the phrase is compared by normalized form. This
// keeps the returned offsets valid for splicing the original text.
// Returns the byte offsets [start, end) of the match, or ok=false.
func locate(text, phrase string) (start, end int, ok bool) {
	normPhrase := Normalize(phrase)
	if normPhrase == "" {
		return 0, 0, false
	}
	first, _ := utf8.DecodeRuneInString(phrase)
	firstLower := unicode.ToLower(first)
	window := utf8.RuneCountInString(phrase)

	// Byte offset of each rune plus the end of text, so the window starting
	// at rune i spans offs[i] to offs[i+window].
	offs := make([]int, 0, len(text)+1)
	for i := range text {
		offs = append(offs, i)
	}
	offs = append(offs, len(text))

	for i := 0; i < len(offs)-1; i++ {
		r, _ := utf8.DecodeRuneInString(text[offs[i]:])
		if unicode.ToLower(r) != firstLower {
			continue
		}
		endIdx := i + window
		if endIdx > len(offs)-1 {
			endIdx = len(offs) - 1
		}
		if Normalize(text[offs[i]:offs[endIdx]]) == normPhrase {
			return offs[i], offs[endIdx], true
		}
	}
	return 0, 0, false
}
