package highlight

import (
	"github.com/hyperjump/shirushi/internal/models"
	"github.com/hyperjump/shirushi/pkg/utils"
)

// Span carries the visual annotation for a highlighted segment. CSS holds
// the ready-to-apply rgba() value combining Color and Opacity.
type Span struct {
	Color    string  `json:"color"`
	Opacity  float64 `json:"opacity"`
	CSS      string  `json:"css"`
	Category string  `json:"categoryKey"`
	Score    float64 `json:"score"`
}

// Segment is a run of the original text, either plain (Span nil) or
// annotated. Concatenating the Text of all segments reproduces the input
// text exactly.
type Segment struct {
	Text string `json:"text"`
	Span *Span  `json:"span,omitempty"`
}

// Highlight splits text into an ordered sequence of plain and annotated
// segments. On each pass every phrase is located in the unconsumed suffix;
// the match with the lowest start index wins, ties going to the phrase that
// appears first in the input slice. Phrases that never occur in the text are
// skipped. Non-empty input always yields at least one segment.
func Highlight(text string, phrases []models.ScoredPhrase) []Segment {
	if text == "" || len(phrases) == 0 {
		return []Segment{{Text: text}}
	}

	var segments []Segment
	remaining := text
	for len(remaining) > 0 {
		bestIdx := -1
		bestStart, bestEnd := 0, 0
		for i := range phrases {
			start, end, ok := locate(remaining, phrases[i].Text)
			if !ok {
				continue
			}
			if bestIdx == -1 || start < bestStart {
				bestIdx, bestStart, bestEnd = i, start, end
			}
		}
		if bestIdx == -1 {
			segments = append(segments, Segment{Text: remaining})
			break
		}
		if bestStart > 0 {
			segments = append(segments, Segment{Text: remaining[:bestStart]})
		}
		p := phrases[bestIdx]
		color := ColorFor(p.Score, p.IsWorried)
		opacity := utils.Clamp01(p.Opacity)
		segments = append(segments, Segment{
			Text: remaining[bestStart:bestEnd],
			Span: &Span{
				Color:    color,
				Opacity:  opacity,
				CSS:      CSSColor(color, opacity),
				Category: p.CategoryKey,
				Score:    p.Score,
			},
		})
		remaining = remaining[bestEnd:]
	}
	if len(segments) == 0 {
		return []Segment{{Text: text}}
	}
	return segments
}
