// Package complexity scores password candidates and flags known-weak substrings.
package complexity

import (
	"strings"
	"unicode"
)

// DefaultPatterns are the weak substrings checked by a zero-config Scorer.
var DefaultPatterns = []string{
	"123", "qwerty", "password", "admin", "welcome", "111", "abc",
}

// Signal weights. Score is their plain sum, so the maximum is above 1.0.
const (
	LengthTarget = 15
	UpperBonus   = 0.2
	SpecialBonus = 0.2
	PatternBonus = 0.3
)

// Scorer rates password strength and flags weak substrings.
type Scorer struct {
	patterns []string
}

// New returns a Scorer matching the given patterns, or DefaultPatterns when none are given.
func New(patterns ...string) *Scorer {
	if len(patterns) == 0 {
		patterns = DefaultPatterns
	}
	lowered := make([]string, 0, len(patterns))
	for _, p := range patterns {
		if p = strings.ToLower(p); p != "" {
			lowered = append(lowered, p)
		}
	}
	return &Scorer{patterns: lowered}
}

// Patterns returns a copy of the configured weak substrings.
func (s *Scorer) Patterns() []string {
	return append([]string(nil), s.patterns...)
}

// IsCommonPattern reports whether the lowercase candidate contains any weak substring.
func (s *Scorer) IsCommonPattern(candidate string) bool {
	lower := strings.ToLower(candidate)
	for _, p := range s.patterns {
		if strings.Contains(lower, p) {
			return true
		}
	}
	return false
}

// Score returns length + diversity + upper + special + pattern components.
// Empty candidates score 0.
func (s *Scorer) Score(candidate string) float64 {
	runes := []rune(candidate)
	if len(runes) == 0 {
		return 0
	}

	length := float64(len(runes)) / LengthTarget
	if length > 1 {
		length = 1
	}

	distinct := make(map[rune]struct{}, len(runes))
	var hasUpper, hasSpecial bool
	for _, r := range runes {
		distinct[r] = struct{}{}
		if unicode.IsUpper(r) {
			hasUpper = true
		}
		if !unicode.IsLetter(r) && !unicode.IsNumber(r) {
			hasSpecial = true
		}
	}
	diversity := float64(len(distinct)) / float64(len(runes))

	score := length + diversity
	if hasUpper {
		score += UpperBonus
	}
	if hasSpecial {
		score += SpecialBonus
	}
	if !s.IsCommonPattern(candidate) {
		score += PatternBonus
	}
	return score
}
