package utils

import "testing"

func TestTruncate(t *testing.T) {
	if got := Truncate("hello", 10); got != "hello" {
		t.Errorf("no truncation: got %q", got)
	}
	if got := Truncate("hello world", 5); got != "hello..." {
		t.Errorf("truncated: got %q", got)
	}
	if got := Truncate("hello", 0); got != "hello" {
		t.Errorf("maxLen 0: got %q", got)
	}
}

func TestClamp(t *testing.T) {
	tests := []struct {
		v, lo, hi, want float64
	}{
		{3, 1, 5, 3},
		{0, 1, 5, 1},
		{7, 1, 5, 5},
		{-2, 0, 1, 0},
		{0.5, 0, 1, 0.5},
	}
	for _, tt := range tests {
		if got := Clamp(tt.v, tt.lo, tt.hi); got != tt.want {
			t.Errorf("Clamp(%v, %v, %v) = %v, want %v", tt.v, tt.lo, tt.hi, got, tt.want)
		}
	}
	if got := Clamp01(1.2); got != 1 {
		t.Errorf("Clamp01(1.2) = %v, want 1", got)
	}
}
