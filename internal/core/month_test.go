package core

import (
	"testing"
	"time"
)

func TestNormalizeMonth(t *testing.T) {
	fallback := time.Date(2025, time.July, 10, 0, 0, 0, 0, time.UTC)
	cases := []struct {
		in   string
		want int
	}{
		{"3", 3},
		{"03", 3},
		{"12", 12},
		{"March", 3},
		{"march", 3},
		{" DECEMBER ", 12},
		{"Mar", 7},
		{"13", 7},
		{"0", 7},
		{"", 7},
	}
	for _, tc := range cases {
		if got := NormalizeMonth(tc.in, fallback); got != tc.want {
			t.Fatalf("NormalizeMonth(%q) = %d, want %d", tc.in, got, tc.want)
		}
	}
}

func TestPreviousMonth(t *testing.T) {
	if y, m := PreviousMonth(2025, 1); y != 2024 || m != 12 {
		t.Fatalf("expected 2024-12, got %d-%d", y, m)
	}
	if y, m := PreviousMonth(2025, 6); y != 2025 || m != 5 {
		t.Fatalf("expected 2025-05, got %d-%d", y, m)
	}
}

func TestSameMonth(t *testing.T) {
	d := time.Date(2025, time.March, 31, 23, 0, 0, 0, time.UTC)
	if !SameMonth(d, 3, 2025) {
		t.Fatalf("expected March 2025")
	}
	if SameMonth(d, 3, 2024) || SameMonth(d, 4, 2025) {
		t.Fatalf("unexpected match")
	}
}
