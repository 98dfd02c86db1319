package generate

import (
	"reflect"
	"testing"
)

func TestKeyTerms(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{
			"proper nouns and numbers",
			"The Eiffel Tower is 330 meters tall.",
			[]string{"Eiffel Tower", "330 meters"},
		},
		{
			"sentence-initial name kept",
			"Paris is the capital of France.",
			[]string{"Paris", "France"},
		},
		{
			"sentence-initial determiner dropped",
			"The treaty ended the war in 1919.",
			[]string{"1919"},
		},
		{
			"multi-word run",
			"Marie Curie won the Nobel Prize in 1903.",
			[]string{"Marie Curie", "Nobel Prize", "1903"},
		},
		{
			"no signal",
			"it was generally quite nice there",
			nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := KeyTerms(tt.text)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("KeyTerms(%q) = %v, want %v", tt.text, got, tt.want)
			}
		})
	}
}

func TestKeyTerms_Dedup(t *testing.T) {
	got := KeyTerms("Newton studied gravity. Newton published Principia.")
	count := 0
	for _, term := range got {
		if term == "Newton" {
			count++
		}
	}
	if count != 1 {
		t.Errorf("Newton appears %d times, want 1: %v", count, got)
	}
}
