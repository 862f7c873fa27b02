package textutil

import "testing"

func TestNormalize(t *testing.T) {
	cases := []struct {
		name  string
		input string
		want  string
	}{
		{"already clean", "hello world", "hello world"},
		{"collapses runs", "hello   world", "hello world"},
		{"mixed whitespace", "a\tb\nc\r\nd", "a b c d"},
		{"trims ends", "  padded text \n", "padded text"},
		{"empty", "", ""},
		{"only whitespace", " \t\n ", ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Normalize(tc.input); got != tc.want {
				t.Errorf("Normalize(%q) = %q, want %q", tc.input, got, tc.want)
			}
		})
	}
}

func TestWordCount(t *testing.T) {
	if got := WordCount("the quick brown fox"); got != 4 {
		t.Errorf("expected 4 words, got %d", got)
	}
	if got := WordCount(""); got != 0 {
		t.Errorf("expected 0 words for empty string, got %d", got)
	}
	if got := WordCount("  spaced   out  "); got != 2 {
		t.Errorf("expected 2 words, got %d", got)
	}
}
