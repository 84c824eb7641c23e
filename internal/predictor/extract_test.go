// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package predictor

import (
	"testing"
)

func TestExtractGameNumber(t *testing.T) {
	tests := []struct {
		name   string
		text   string
		want   int
		wantOK bool
	}{
		{"lowercase tag", "#n744 ▶ (♠️♥️)", 744, true},
		{"uppercase tag", "résultats #N12", 12, true},
		{"tag mid-text", "jeu #n5 terminé (♦️)", 5, true},
		{"first of several tags", "#n100 puis #n101", 100, true},
		{"no tag", "aucun numéro ici (♠️♥️♦️)", 0, false},
		{"hash without letter", "#744", 0, false},
		{"letter without digits", "#n", 0, false},
		{"empty", "", 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ExtractGameNumber(tt.text)
			if got != tt.want || ok != tt.wantOK {
				t.Errorf("ExtractGameNumber(%q) = (%d, %v), want (%d, %v)", tt.text, got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestIndicatorDetection(t *testing.T) {
	tests := []struct {
		name           string
		text           string
		wantPending    bool
		wantCompletion bool
	}{
		{"alarm clock", "#n1 ⏰ en cours", true, false},
		{"play glyph", "#n1 ▶ suite", true, false},
		{"clock face", "#n1 🕐", true, false},
		{"arrow", "#n1 ➡️", true, false},
		{"checkmark", "#n1 ✅ (♠️♥️♦️)", false, true},
		{"shield", "#n1 🔰 fini", false, true},
		{"both kinds", "#n1 ⏰ ✅", true, true},
		{"neither", "#n1 (♠️♥️)", false, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := HasPendingIndicators(tt.text); got != tt.wantPending {
				t.Errorf("HasPendingIndicators(%q) = %v, want %v", tt.text, got, tt.wantPending)
			}
			if got := HasCompletionIndicators(tt.text); got != tt.wantCompletion {
				t.Errorf("HasCompletionIndicators(%q) = %v, want %v", tt.text, got, tt.wantCompletion)
			}
		})
	}
}

func TestExtractCardSections(t *testing.T) {
	tests := []struct {
		name string
		text string
		want [][]string
	}{
		{
			name: "two sections, distinct view",
			text: "#n1 (♠️♥️♦️) - (♠️♠️)",
			want: [][]string{{"♠️", "♥️", "♦️"}, {"♠️"}},
		},
		{
			name: "repeats collapse to one symbol",
			text: "(♣️♣️♣️)",
			want: [][]string{{"♣️"}},
		},
		{
			name: "alternate heart normalised",
			text: "(❤️)",
			want: [][]string{{"♥️"}},
		},
		{
			name: "section without suits is empty",
			text: "(10A K)",
			want: [][]string{{}},
		},
		{
			name: "four suits",
			text: "(♠️♥️♦️♣️)",
			want: [][]string{{"♠️", "♥️", "♦️", "♣️"}},
		},
		{
			name: "no parentheses",
			text: "#n1 rien",
			want: nil,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ExtractCardSections(tt.text)
			if len(got) != len(tt.want) {
				t.Fatalf("ExtractCardSections(%q) yielded %d sections, want %d", tt.text, len(got), len(tt.want))
			}
			for i, sec := range got {
				if sec.Count() != len(tt.want[i]) {
					t.Errorf("section %d count = %d, want %d", i, sec.Count(), len(tt.want[i]))
				}
				for j, sym := range sec.Symbols() {
					if sym != tt.want[i][j] {
						t.Errorf("section %d symbol %d = %q, want %q", i, j, sym, tt.want[i][j])
					}
				}
			}
		})
	}
}

func TestHeartNormalizationEquivalence(t *testing.T) {
	alt := ExtractCardSections("(❤️)")
	canonical := ExtractCardSections("(♥️)")
	if len(alt) != 1 || len(canonical) != 1 {
		t.Fatalf("expected one section from each text")
	}
	if alt[0].Combination() != canonical[0].Combination() {
		t.Errorf("❤️ section %q differs from ♥️ section %q", alt[0].Combination(), canonical[0].Combination())
	}
}

func TestCardSectionCombinationStable(t *testing.T) {
	a := ExtractCardSections("(♦️♥️♠️)")[0].Combination()
	b := ExtractCardSections("(♠️♦️♥️)")[0].Combination()
	if a != b {
		t.Errorf("combination not order independent: %q vs %q", a, b)
	}
}

func TestCountFirstSectionSuits(t *testing.T) {
	tests := []struct {
		name string
		text string
		want int
	}{
		{"three distinct", "#n1 ✅ (♠️♥️♦️)", 3},
		{"three with repeats", "(♠️♠️♥️) (♦️)", 3},
		{"two only", "(♠️♠️)", 2},
		{"alternate heart counted", "(❤️❤️❤️)", 3},
		{"first section only", "(♠️) (♥️♦️♣️)", 1},
		{"no suits in section", "(K 10 A)", 0},
		{"no parentheses", "#n1 rien", 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CountFirstSectionSuits(tt.text); got != tt.want {
				t.Errorf("CountFirstSectionSuits(%q) = %d, want %d", tt.text, got, tt.want)
			}
		})
	}
}

func TestCountSuitsAfterCompletion(t *testing.T) {
	tests := []struct {
		name string
		text string
		want int
	}{
		{"section after checkmark", "#n1 (♠️♠️) ✅ (♥️♦️♣️)", 3},
		{"section after shield", "🔰 (♠️♥️)", 2},
		{"earliest marker wins", "🔰 (♠️) ✅ (♥️♦️)", 1},
		{"no marker", "(♠️♥️♦️)", 0},
		{"marker without following group", "(♠️) ✅ fin", 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CountSuitsAfterCompletion(tt.text); got != tt.want {
				t.Errorf("CountSuitsAfterCompletion(%q) = %d, want %d", tt.text, got, tt.want)
			}
		})
	}
}
