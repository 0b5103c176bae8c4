// Package suggest offers autocomplete candidates drawn from earlier task titles.
package suggest

import (
	"slices"
	"strings"
	"unicode/utf16"

	"github.com/sandeepkv93/tasklist/internal/model"
)

const DefaultMax = 5

// FindAutocompleteSuggestions returns up to max titles containing input,
// compared case-insensitively, in ascending UTF-16 code unit order. Titles are deduplicated by
// exact string and a title equal to the input (ignoring case) is skipped.
func FindAutocompleteSuggestions(input string, tasks []model.Task, max int) []string {
	normalized := strings.ToLower(strings.TrimSpace(input))
	if normalized == "" {
		return []string{}
	}
	if max <= 0 {
		max = DefaultMax
	}

	seen := make(map[string]struct{}, len(tasks))
	matches := make([]string, 0)
	for _, t := range tasks {
		if _, ok := seen[t.Title]; ok {
			continue
		}
		seen[t.Title] = struct{}{}
		lower := strings.ToLower(t.Title)
		if strings.Contains(lower, normalized) && lower != normalized {
			matches = append(matches, t.Title)
		}
	}
	slices.SortFunc(matches, compareUTF16)
	if len(matches) > max {
		matches = matches[:max]
	}
	return matches
}

// compareUTF16 orders strings by UTF-16 code units, which differs from byte
// order once astral characters meet characters at or above U+E000.
func compareUTF16(a, b string) int {
	return slices.Compare(utf16.Encode([]rune(a)), utf16.Encode([]rune(b)))
}
