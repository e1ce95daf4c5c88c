// Package plot projects document score pairs onto the sidebar vector plot.
// It produces coordinates only; SVG rendering stays in the client.
package plot

import (
	"github.com/hyperjump/shirushi/internal/models"
	"github.com/hyperjump/shirushi/pkg/utils"
)

// DefaultAxisLimit is the plot's axis extent: vectors are clamped to ±5.
const DefaultAxisLimit = 5

// Vector is one plotted endpoint in SVG coordinate space (Y grows downward).
type Vector struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Projection holds the two plotted vectors for a document.
type Projection struct {
	Sentiment Vector  `json:"sentiment"`
	Factual   Vector  `json:"factual"`
	AxisLimit float64 `json:"axisLimit"`
}

// Project clamps both score pairs to the axis limit and flips Y for SVG
// space. A non-positive limit falls back to DefaultAxisLimit.
func Project(scores models.Scores, axisLimit float64) Projection {
	if axisLimit <= 0 {
		axisLimit = DefaultAxisLimit
	}
	return Projection{
		Sentiment: clampFlip(scores.Sentiment, axisLimit),
		Factual:   clampFlip(scores.Factual, axisLimit),
		AxisLimit: axisLimit,
	}
}

func clampFlip(coord [2]float64, limit float64) Vector {
	return Vector{
		X: utils.Clamp(coord[0], -limit, limit),
		Y: -utils.Clamp(coord[1], -limit, limit),
	}
}
