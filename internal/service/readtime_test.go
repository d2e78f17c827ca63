package service

import (
	"strings"
	"testing"
)

func words(n int) string {
	return strings.TrimSpace(strings.Repeat("word ", n))
}

func TestEstimateReadTime(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    int
	}{
		{"empty", "", 0},
		{"whitespace only", "  \r\n \t ", 0},
		{"exactly two minutes", words(530), 2},
		{"one minute", words(265), 1},
		{"short rounds down", words(132), 0},           // 0.498
		{"half rounds away from zero", words(398), 2},  // 1.5019
		{"just under half rounds down", words(397), 1}, // 1.498
		{"mixed separators", "one two\r\nthree\tfour", 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := EstimateReadTime(tt.content); got != tt.want {
				t.Fatalf("EstimateReadTime = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestEstimateReadTime_MarkdownCountedAsWords(t *testing.T) {
	// Markdown is not stripped before counting; syntax tokens count.
	md := "# Title\n\n![alt](http://example.com/img.jpg)\n\n" + words(263)
	if got := EstimateReadTime(md); got != 1 {
		t.Fatalf("EstimateReadTime = %d, want 1", got)
	}
}
