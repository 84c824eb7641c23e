// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package predictor detects card combinations in channel messages and
// tracks predictions about upcoming games until they are verified.
//
// The extractor half is pure text analysis: game-number tags, progress
// indicator glyphs, and the suit symbols inside parenthesised groups. The
// engine half (engine.go) owns all mutable prediction state.
package predictor

import (
	"regexp"
	"sort"
	"strings"
)

// gameTagRe matches the game-number tag, e.g. "#n744" or "#N744".
var gameTagRe = regexp.MustCompile(`#[nN](\d+)`)

// sectionRe matches one non-nested parenthesised group.
var sectionRe = regexp.MustCompile(`\(([^)]+)\)`)

// suitSymbols are the four canonical suit glyphs. The red heart "❤️" is an
// alternate spelling of "♥️" and is normalised before any comparison.
var suitSymbols = []string{"♠️", "♥️", "♦️", "♣️"}

const (
	altHeart       = "❤️"
	canonicalHeart = "♥️"
)

// pendingIndicators mark a message that is still provisional and will be
// edited again before it is final.
var pendingIndicators = []string{"⏰", "▶", "🕐", "➡️"}

// completionIndicators mark a message that has reached its final edited form.
var completionIndicators = []string{"✅", "🔰"}

// ExtractGameNumber returns the number from the first "#n<digits>" tag in
// text. ok is false when no tag is present.
func ExtractGameNumber(text string) (n int, ok bool) {
	m := gameTagRe.FindStringSubmatch(text)
	if m == nil {
		return 0, false
	}
	for _, c := range m[1] {
		n = n*10 + int(c-'0')
	}
	return n, true
}

// HasPendingIndicators reports whether text contains any in-progress glyph.
func HasPendingIndicators(text string) bool {
	return containsAny(text, pendingIndicators)
}

// HasCompletionIndicators reports whether text contains any done glyph.
func HasCompletionIndicators(text string) bool {
	return containsAny(text, completionIndicators)
}

func containsAny(text string, glyphs []string) bool {
	for _, g := range glyphs {
		if strings.Contains(text, g) {
			return true
		}
	}
	return false
}

// CardSection is the set of distinct suit symbols found inside one
// parenthesised group.
type CardSection struct {
	symbols []string
}

// Count returns the number of distinct suit symbols in the section.
func (s CardSection) Count() int { return len(s.symbols) }

// Symbols returns the distinct suit symbols in canonical suit order.
func (s CardSection) Symbols() []string { return s.symbols }

// Combination returns the section's symbols joined in sorted order, the
// form predictions record. Sorting is lexicographic over the glyph strings
// so equal sets always produce the same string.
func (s CardSection) Combination() string {
	sorted := make([]string, len(s.symbols))
	copy(sorted, s.symbols)
	sort.Strings(sorted)
	return strings.Join(sorted, "")
}

// ExtractCardSections returns one CardSection per parenthesised group in
// text, in left-to-right order. Each section holds the distinct suit
// symbols present (presence only, not occurrence counts).
func ExtractCardSections(text string) []CardSection {
	matches := sectionRe.FindAllStringSubmatch(text, -1)
	if matches == nil {
		return nil
	}

	sections := make([]CardSection, 0, len(matches))
	for _, m := range matches {
		content := strings.ReplaceAll(m[1], altHeart, canonicalHeart)
		var symbols []string
		for _, sym := range suitSymbols {
			if strings.Contains(content, sym) {
				symbols = append(symbols, sym)
			}
		}
		sections = append(sections, CardSection{symbols: symbols})
	}
	return sections
}

// CountFirstSectionSuits returns the total number of suit symbol
// occurrences (repeats included) inside the first parenthesised group of
// text, or 0 when there is none. This is the verification-side count;
// prediction triggering uses the distinct view from ExtractCardSections.
func CountFirstSectionSuits(text string) int {
	m := sectionRe.FindStringSubmatch(text)
	if m == nil {
		return 0
	}
	return countSuits(m[1])
}

// CountSuitsAfterCompletion returns the total suit occurrences in the first
// parenthesised group following the first completion marker in text. It
// returns 0 when text has no completion marker or no group after it.
func CountSuitsAfterCompletion(text string) int {
	pos := -1
	for _, g := range completionIndicators {
		if i := strings.Index(text, g); i >= 0 && (pos < 0 || i < pos) {
			pos = i
		}
	}
	if pos < 0 {
		return 0
	}
	m := sectionRe.FindStringSubmatch(text[pos:])
	if m == nil {
		return 0
	}
	return countSuits(m[1])
}

func countSuits(content string) int {
	content = strings.ReplaceAll(content, altHeart, canonicalHeart)
	total := 0
	for _, sym := range suitSymbols {
		total += strings.Count(content, sym)
	}
	return total
}
