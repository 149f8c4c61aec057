package evaluation

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// formulaMarkers signal that a text spells out a calculation.
var formulaMarkers = []string{"formula", "calculated", "divided by", "multiplied by", "=", "/"}

// wordSet lowercases s and returns its whitespace-separated tokens as a set.
func wordSet(s string) map[string]struct{} {
	fields := strings.Fields(strings.ToLower(s))
	set := make(map[string]struct{}, len(fields))
	for _, f := range fields {
		set[f] = struct{}{}
	}
	return set
}

func wordCount(s string) int {
	return len(strings.Fields(s))
}

// overlap counts the members of a that are also in b.
func overlap(a, b map[string]struct{}) int {
	n := 0
	for w := range a {
		if _, ok := b[w]; ok {
			n++
		}
	}
	return n
}

// containsAny reports whether any term is a substring of lowered.
func containsAny(lowered string, terms []string) bool {
	for _, t := range terms {
		if strings.Contains(lowered, t) {
			return true
		}
	}
	return false
}

func countContained(lowered string, terms []string) int {
	n := 0
	for _, t := range terms {
		if strings.Contains(lowered, t) {
			n++
		}
	}
	return n
}

func hasDigit(s string) bool {
	for _, r := range s {
		if unicode.IsDigit(r) {
			return true
		}
	}
	return false
}

// trimmedLen is the rune length of s without surrounding whitespace.
func trimmedLen(s string) int {
	return utf8.RuneCountInString(strings.TrimSpace(s))
}

func clamp01(v float64) float64 {
	if v != v || v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

func lower(s string) string {
	return strings.ToLower(s)
}
