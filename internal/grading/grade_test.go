package grading

import (
	"testing"
)

// --- LetterFor ---

func TestLetterFor_Thresholds(t *testing.T) {
	tests := []struct {
		total int
		want  string
	}{
		{100, "A+"}, {97, "A+"},
		{96, "A"}, {93, "A"},
		{92, "A-"}, {90, "A-"},
		{89, "B+"}, {87, "B+"},
		{86, "B"}, {83, "B"},
		{82, "B-"}, {80, "B-"},
		{79, "C+"}, {77, "C+"},
		{76, "C"}, {73, "C"},
		{72, "C-"}, {70, "C-"},
		{69, "D+"}, {67, "D+"},
		{66, "D"}, {63, "D"},
		{62, "D-"}, {60, "D-"},
		{59, "F"}, {0, "F"},
	}

	for _, tt := range tests {
		if got := LetterFor(tt.total); got != tt.want {
			t.Errorf("LetterFor(%d) = %q, want %q", tt.total, got, tt.want)
		}
	}
}

func TestLetterFor_Monotonic(t *testing.T) {
	// A higher total must never map to a strictly worse letter. Rank the
	// letters and walk the whole range.
	rank := map[string]int{
		"F": 0, "D-": 1, "D": 2, "D+": 3,
		"C-": 4, "C": 5, "C+": 6,
		"B-": 7, "B": 8, "B+": 9,
		"A-": 10, "A": 11, "A+": 12,
	}

	prev := -1
	for total := 0; total <= 100; total++ {
		r, ok := rank[LetterFor(total)]
		if !ok {
			t.Fatalf("LetterFor(%d) = %q, not a known letter", total, LetterFor(total))
		}
		if r < prev {
			t.Fatalf("letter rank regressed at total %d", total)
		}
		prev = r
	}
}

// --- round2 ---

func TestRound2(t *testing.T) {
	tests := []struct {
		in, want float64
	}{
		{1.005, 1.0}, // float64 representation of 1.005 is just below
		{1.006, 1.01},
		{2.675, 2.67},
		{3.14159, 3.14},
		{10, 10},
	}

	for _, tt := range tests {
		if got := round2(tt.in); got != tt.want {
			t.Errorf("round2(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
