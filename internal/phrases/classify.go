// Package phrases derives the highlight set for a document from its analyzer
// output and the two focus slider values.
package phrases

import "strings"

// Category keywords steering polarity classification. Positive keywords are
// checked after concern keywords and win, so "positive outlook" is never
// worried even with a negative score.
var concernKeywords = []string{"concern", "risk", "worried", "negative"}
var positiveKeywords = []string{"positive", "excited", "opportunity"}

// Worried classifies a sentiment-group phrase as worried or excited from its
// score sign and category keywords. Only meaningful for the sentiment group;
// factual phrases are never worried.
func Worried(categoryKey string, score float64) bool {
	lower := strings.ToLower(categoryKey)
	worried := score < 0
	for _, kw := range concernKeywords {
		if strings.Contains(lower, kw) {
			worried = true
			break
		}
	}
	for _, kw := range positiveKeywords {
		if strings.Contains(lower, kw) {
			return false
		}
	}
	return worried
}
