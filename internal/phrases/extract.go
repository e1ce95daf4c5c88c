package phrases

import (
	"sort"
	"strings"

	"github.com/hyperjump/shirushi/internal/models"
	"github.com/hyperjump/shirushi/pkg/utils"
)

// MinOpacity is the visibility threshold: phrases whose combined opacity
// falls below it are dropped before highlighting, not rendered faint.
const MinOpacity = 0.05

// StatementOpacity maps the sentiment/factual focus slider (0..100) to the
// statement-axis opacity for a phrase in the given group.
func StatementOpacity(sentimentGroup bool, sentimentFocus float64) float64 {
	if sentimentGroup {
		return sentimentFocus / 100
	}
	return (100 - sentimentFocus) / 100
}

// AspectOpacity maps the margin/growth focus slider (0..100) to the
// aspect-axis opacity for a category. Categories naming both growth and
// margin, or neither, get neutral weighting.
func AspectOpacity(categoryKey string, marginGrowthFocus float64) float64 {
	lower := strings.ToLower(categoryKey)
	growth := strings.Contains(lower, "growth")
	margin := strings.Contains(lower, "margin")
	switch {
	case growth && !margin:
		return marginGrowthFocus / 100
	case margin && !growth:
		return (100 - marginGrowthFocus) / 100
	default:
		return 1
	}
}

// Opacity combines the statement and aspect axes into the final per-phrase
// opacity in [0,1].
func Opacity(sentimentGroup bool, categoryKey string, sentimentFocus, marginGrowthFocus float64) float64 {
	return StatementOpacity(sentimentGroup, sentimentFocus) * AspectOpacity(categoryKey, marginGrowthFocus)
}

// Extract derives the filtered highlight set from a document and the two
// focus sliders. Slider values are clamped to [0,100]. Categories and
// phrases are walked in sorted key order so repeated calls yield the same
// slice, which fixes the engine's tie-break order.
func Extract(doc *models.Document, sentimentFocus, marginGrowthFocus float64) []models.ScoredPhrase {
	if doc == nil {
		return nil
	}
	sentimentFocus = utils.Clamp(sentimentFocus, 0, 100)
	marginGrowthFocus = utils.Clamp(marginGrowthFocus, 0, 100)

	var out []models.ScoredPhrase
	out = appendGroup(out, doc.Analysis.Sentiment, true, sentimentFocus, marginGrowthFocus)
	out = appendGroup(out, doc.Analysis.Factual, false, sentimentFocus, marginGrowthFocus)
	return out
}

func appendGroup(out []models.ScoredPhrase, group map[string]map[string]float64, sentimentGroup bool, sentimentFocus, marginGrowthFocus float64) []models.ScoredPhrase {
	for _, categoryKey := range sortedKeys(group) {
		opacity := Opacity(sentimentGroup, categoryKey, sentimentFocus, marginGrowthFocus)
		if opacity < MinOpacity {
			continue
		}
		categoryPhrases := group[categoryKey]
		for _, text := range sortedKeys(categoryPhrases) {
			score := categoryPhrases[text]
			worried := false
			if sentimentGroup {
				worried = Worried(categoryKey, score)
			}
			out = append(out, models.ScoredPhrase{
				Text:        text,
				Score:       score,
				CategoryKey: categoryKey,
				IsWorried:   worried,
				Opacity:     opacity,
			})
		}
	}
	return out
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
