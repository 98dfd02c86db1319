package generate

import (
	"strings"
	"unicode"
)

// Determiners and pronouns that start sentences without naming
// anything; a capitalized run never begins with one of these.
var leadingStopwords = map[string]bool{
	"The": true, "A": true, "An": true, "This": true, "That": true,
	"These": true, "Those": true, "It": true, "He": true, "She": true,
	"They": true, "We": true, "In": true, "On": true, "At": true,
	"By": true, "For": true, "When": true, "While": true, "However": true,
}

// Measurement words that may follow a number and belong to the same
// term ("330 meters", "40 percent").
var unitWords = map[string]bool{
	"meters": true, "meter": true, "feet": true, "kilometers": true,
	"km": true, "miles": true, "percent": true, "degrees": true,
	"years": true, "kg": true, "tons": true, "pounds": true,
	"seconds": true, "minutes": true, "hours": true, "days": true,
	"people": true, "grams": true, "liters": true,
}

// KeyTerms extracts candidate answer terms from a unit of text:
// capitalized runs (proper nouns) and numeric facts, in document
// order, deduplicated case-insensitively.
func KeyTerms(text string) []string {
	tokens := strings.Fields(text)

	var terms []string
	seen := make(map[string]bool)
	add := func(term string) {
		key := strings.ToLower(term)
		if term == "" || seen[key] {
			return
		}
		seen[key] = true
		terms = append(terms, term)
	}

	var run []string
	flush := func() {
		if len(run) > 0 {
			add(strings.Join(run, " "))
			run = nil
		}
	}

	for i, tok := range tokens {
		clean := strings.Trim(tok, ".,;:!?()\"'")
		if clean == "" {
			flush()
			continue
		}

		if hasDigit(clean) {
			flush()
			term := clean
			if i+1 < len(tokens) {
				next := strings.Trim(tokens[i+1], ".,;:!?()\"'")
				if unitWords[strings.ToLower(next)] {
					term = clean + " " + next
				}
			}
			add(term)
			continue
		}

		if unicode.IsUpper([]rune(clean)[0]) {
			if len(run) == 0 && i == 0 && leadingStopwords[clean] {
				continue
			}
			run = append(run, clean)
			continue
		}
		flush()
	}
	flush()

	return terms
}

func hasDigit(s string) bool {
	return strings.IndexFunc(s, unicode.IsDigit) >= 0
}
