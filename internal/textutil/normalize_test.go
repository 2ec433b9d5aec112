package textutil

import "testing"

func TestNormalize(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"empty", "", ""},
		{"whitespace only", "   ", ""},
		{"lowercases", "The Beatles", "the beatles"},
		{"collapses spaces", "  The   Beatles  ", "the beatles"},
		{"ampersand", "Sun Ra & His Arkestra", "sun ra and his arkestra"},
		{"parenthetical removed", "Daft Punk (Live)", "daft punk"},
		{"slash to space", "AC/DC", "ac dc"},
		{"punctuation stripped", "Sly & the Family Stone!", "sly and the family stone"},
		{"feat in parens", "Quasimoto (feat. MF DOOM)", "quasimoto"},
		{"unicode letters kept", "Björk", "björk"},
		{"underscore kept", "artist_name", "artist_name"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Normalize(tt.input); got != tt.want {
				t.Errorf("Normalize(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	inputs := []string{
		"Sun Ra & His Arkestra",
		"Daft Punk (Live)",
		"AC/DC",
		"  mixed   CASE (weird) & stuff / here  ",
		"",
	}
	for _, input := range inputs {
		once := Normalize(input)
		twice := Normalize(once)
		if once != twice {
			t.Errorf("Normalize not idempotent for %q: first %q, second %q", input, once, twice)
		}
	}
}

func TestNormalizeIdentityEquivalence(t *testing.T) {
	if Normalize("Sun Ra & His Arkestra") != Normalize("sun ra and his arkestra") {
		t.Error("expected ampersand and word forms to normalize identically")
	}
}

func TestSimilarityRatio(t *testing.T) {
	tests := []struct {
		name string
		a, b string
		want int
	}{
		{"identical", "Abba", "ABBA", 100},
		{"empty left", "", "Abba", 0},
		{"empty right", "Abba", "", 0},
		{"normalized equal", "Sun Ra & His Arkestra", "sun ra and his arkestra", 100},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SimilarityRatio(tt.a, tt.b); got != tt.want {
				t.Errorf("SimilarityRatio(%q, %q) = %d, want %d", tt.a, tt.b, got, tt.want)
			}
		})
	}
}

func TestSimilarityRatioAliasNoise(t *testing.T) {
	// A tribute act sharing a prefix must score well below any sensible
	// curation threshold.
	got := SimilarityRatio("Abba", "ABBA Tribute Band")
	if got >= 80 {
		t.Errorf("SimilarityRatio = %d, want < 80", got)
	}
	if got == 0 {
		t.Error("SimilarityRatio = 0, want partial credit for shared prefix")
	}
}

func TestSimilarityRatioBounds(t *testing.T) {
	pairs := [][2]string{
		{"x", "completely different words here"},
		{"one", "two"},
		{"The Upsetters", "Upsetters"},
	}
	for _, pair := range pairs {
		got := SimilarityRatio(pair[0], pair[1])
		if got < 0 || got > 100 {
			t.Errorf("SimilarityRatio(%q, %q) = %d, outside [0,100]", pair[0], pair[1], got)
		}
	}
}
