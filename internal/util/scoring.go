package util

import (
	"strings"

	"github.com/sahilm/fuzzy"
)

// squashed presents candidates to fuzzy with separators removed.
type squashed []string

func (s squashed) String(i int) string { return squash(s[i]) }
func (s squashed) Len() int            { return len(s) }

func squash(s string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case '-', '_', ' ', '.':
			return -1
		}
		return r
	}, strings.ToLower(s))
}

// Suggest returns up to n candidates closest to input, best first.
// Matching first runs on the raw strings and, failing that, on the strings
// with separators removed so "langSelector" still finds "language-selector".
func Suggest(input string, candidates []string, n int) []string {
	if input == "" || len(candidates) == 0 {
		return nil
	}
	matches := fuzzy.Find(input, candidates)
	if len(matches) == 0 {
		matches = fuzzy.FindFrom(squash(input), squashed(candidates))
	}
	if len(matches) == 0 {
		return nil
	}

	limit := n
	if n <= 0 || len(matches) < limit {
		limit = len(matches)
	}

	out := make([]string, limit)
	for i := 0; i < limit; i++ {
		out[i] = candidates[matches[i].Index]
	}
	return out
}
