package similarity

import "testing"

func TestJaccard(t *testing.T) {
	tests := []struct {
		name string
		a, b string
		min  float64
		max  float64
	}{
		{"identical", "the mitochondria powers the cell", "the mitochondria powers the cell", 1.0, 1.0},
		{"disjoint", "photosynthesis converts sunlight", "volcanoes erupt molten rock", 0.0, 0.0},
		{"partial", "Paris is the capital of France", "Paris is the largest city of France", 0.2, 0.8},
		{"both empty", "", "", 0.0, 0.0},
		{"one empty", "mitochondria", "", 0.0, 0.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Jaccard(tt.a, tt.b)
			if got < tt.min || got > tt.max {
				t.Errorf("Jaccard(%q, %q) = %f, want in [%f, %f]", tt.a, tt.b, got, tt.min, tt.max)
			}
		})
	}
}

func TestJaccard_Symmetric(t *testing.T) {
	a := "The Eiffel Tower is 330 meters tall"
	b := "The Eiffel Tower stands in Paris"
	if Jaccard(a, b) != Jaccard(b, a) {
		t.Error("Jaccard is not symmetric")
	}
}

func TestContainment_AnswerInSource(t *testing.T) {
	source := "The Treaty of Versailles was signed in 1919 after the First World War."
	if got := Containment("Treaty of Versailles", source); got != 1.0 {
		t.Errorf("fully contained answer scored %f, want 1.0", got)
	}
	if got := Containment("Treaty of Westphalia", source); got >= 1.0 {
		t.Errorf("partially contained answer scored %f, want < 1.0", got)
	}
}

func TestTokenize_DropsShortWords(t *testing.T) {
	tokens := Tokenize("The cat sat on a mat near the windowsill.")
	if tokens["the"] || tokens["cat"] || tokens["on"] {
		t.Errorf("short words survived tokenization: %v", tokens)
	}
	if !tokens["windowsill"] {
		t.Errorf("expected windowsill in tokens: %v", tokens)
	}
}

func TestTokenize_StripsPunctuation(t *testing.T) {
	tokens := Tokenize(`"Gravity," she said, "holds planets!"`)
	if !tokens["gravity"] || !tokens["planets"] || !tokens["holds"] {
		t.Errorf("punctuation not stripped: %v", tokens)
	}
}
