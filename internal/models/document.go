// Package models defines core data structures for documents, notes, and phrases.
package models

// Analysis holds the two statement groups produced by the upstream analyzer.
// Each group maps a category name (e.g. "Excited about growth") to a mapping
// from phrase text to score.
type Analysis struct {
	Sentiment map[string]map[string]float64 `json:"Sentiment Statements"`
	Factual   map[string]map[string]float64 `json:"Factual Statements"`
}

// Scores holds the two score pairs used by the vector plot.
type Scores struct {
	Sentiment [2]float64 `json:"Sentiment_Score"`
	Factual   [2]float64 `json:"Factual_Score"`
}

// Document is an analyzed document as served to the viewer. Field names match
// the analyzer output / wire format. Notes is never nil in responses.
type Document struct {
	ID       string   `json:"_id"`
	Title    string   `json:"original_title"`
	Abstract string   `json:"original_abstract"`
	Analysis Analysis `json:"openai_response"`
	Scores   Scores   `json:"scores"`
	Error    *string  `json:"error"`
	Notes    []Note   `json:"notes"`
}

// DocumentSummary is the list-view projection of a document.
type DocumentSummary struct {
	ID    string `json:"_id"`
	Title string `json:"original_title"`
}
