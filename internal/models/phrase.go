package models

// ScoredPhrase is a unit of analyzer evidence prepared for highlighting.
// It is derived per request from a document and the two focus slider values
// and is never persisted.
type ScoredPhrase struct {
	Text        string  `json:"text"`
	Score       float64 `json:"score"`
	CategoryKey string  `json:"categoryKey"`
	IsWorried   bool    `json:"isWorried"`
	Opacity     float64 `json:"opacity"`
}
