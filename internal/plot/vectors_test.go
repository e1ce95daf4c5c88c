package plot

import (
	"testing"

	"github.com/hyperjump/shirushi/internal/models"
)

func TestProject(t *testing.T) {
	scores := models.Scores{
		Sentiment: [2]float64{2.5, 3},
		Factual:   [2]float64{-8, 1},
	}
	p := Project(scores, 5)
	if p.Sentiment.X != 2.5 || p.Sentiment.Y != -3 {
		t.Errorf("sentiment: got %+v", p.Sentiment)
	}
	// X clamps to the axis limit, Y flips sign.
	if p.Factual.X != -5 || p.Factual.Y != -1 {
		t.Errorf("factual: got %+v", p.Factual)
	}
	if p.AxisLimit != 5 {
		t.Errorf("axis limit: got %v", p.AxisLimit)
	}
}

func TestProject_DefaultAxisLimit(t *testing.T) {
	p := Project(models.Scores{Sentiment: [2]float64{9, -9}}, 0)
	if p.AxisLimit != DefaultAxisLimit {
		t.Errorf("axis limit: got %v, want %v", p.AxisLimit, DefaultAxisLimit)
	}
	if p.Sentiment.X != 5 || p.Sentiment.Y != 5 {
		t.Errorf("sentiment: got %+v", p.Sentiment)
	}
}
