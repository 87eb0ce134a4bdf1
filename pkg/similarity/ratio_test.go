package similarity

import (
	"math"
	"testing"
)

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestRatio(t *testing.T) {
	tests := []struct {
		a, b string
		want float64
	}{
		{"break the ice", "break the ice", 1.0},
		{"", "x", 0},
		{"x", "", 0},
		{"", "", 0},
		// "break " (6) + " ice" (4) match out of 13+12 runes.
		{"break the ice", "break an ice", 0.8},
		// "abc" matches out of 5+5.
		{"abcde", "abcxy", 0.6},
		{"קרח שבור", "קרח שבור", 1.0},
		// 3 matching runes out of 8+3.
		{"קרח שבור", "קרח", 6.0 / 11.0},
		{"night owl", "night bowl", 18.0 / 19.0},
		{"night owl", "light owl", 16.0 / 18.0},
	}
	for _, tt := range tests {
		got := Ratio(tt.a, tt.b)
		if !almostEqual(got, tt.want) {
			t.Errorf("Ratio(%q, %q) = %v, want %v", tt.a, tt.b, got, tt.want)
		}
	}
}

func TestRatioSymmetric(t *testing.T) {
	pairs := [][2]string{
		{"break the ice", "break an ice"},
		{"abcde", "abcxy"},
		{"קרח שבור", "קרח"},
		{"night owl", "night bowl"},
	}
	for _, p := range pairs {
		ab, ba := Ratio(p[0], p[1]), Ratio(p[1], p[0])
		if !almostEqual(ab, ba) {
			t.Errorf("Ratio(%q, %q) = %v but reversed = %v", p[0], p[1], ab, ba)
		}
	}
}

func TestPercent(t *testing.T) {
	tests := []struct {
		a, b string
		want float64
	}{
		{"kitten", "sitting", 100 * (1 - 3.0/7.0)},
		{"night owl", "night bowl", 90},
		{"abcde", "abcdx", 80},
		{"same", "same", 100},
		{"", "", 100},
		{"", "x", 0},
	}
	for _, tt := range tests {
		got := Percent(tt.a, tt.b)
		if !almostEqual(got, tt.want) {
			t.Errorf("Percent(%q, %q) = %v, want %v", tt.a, tt.b, got, tt.want)
		}
	}
}
