package game

import "testing"

func TestMask(t *testing.T) {
	set := func(rs ...rune) map[rune]struct{} {
		m := map[rune]struct{}{}
		for _, r := range rs {
			m[r] = struct{}{}
		}
		return m
	}
	tests := []struct {
		name     string
		word     string
		revealed map[rune]struct{}
		want     string
	}{
		{"nothing revealed", "boat", nil, "____"},
		{"single letter", "boat", set('o'), "_o__"},
		{"every occurrence", "trouble", set('t', 'e'), "t_____e"},
		{"case-insensitive", "Udacity", set('u'), "U______"},
		{"all revealed", "cat", set('c', 'a', 't'), "cat"},
		{"unrelated letters", "cat", set('x', 'y'), "___"},
		{"multibyte", "café", set('é'), "___é"},
		{"final sigma folds to sigma", "ς", set('σ'), "ς"},
		{"capital sigma matches final sigma", "Σ", set('ς'), "Σ"},
		{"upper-case revealed set", "boat", set('B'), "b___"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Mask(tt.word, tt.revealed); got != tt.want {
				t.Errorf("Mask(%q) = %q, want %q", tt.word, got, tt.want)
			}
		})
	}
}
