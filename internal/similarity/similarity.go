package similarity

import "strings"

// Func scores how alike two pieces of text are, in [0,1].
// Implementations must be pure functions over their inputs so runs
// stay reproducible.
type Func func(a, b string) float64

// Jaccard measures keyword-set overlap between two texts. It is the
// default similarity capability for both groundedness checking and
// near-duplicate clustering.
func Jaccard(a, b string) float64 {
	ta := Tokenize(a)
	tb := Tokenize(b)
	if len(ta) == 0 && len(tb) == 0 {
		return 0
	}

	intersection := 0
	for k := range ta {
		if tb[k] {
			intersection++
		}
	}

	union := len(ta) + len(tb) - intersection
	if union == 0 {
		return 0
	}
	return float64(intersection) / float64(union)
}

// Containment measures how much of a's keyword set appears in b.
// Unlike Jaccard it is asymmetric, which suits groundedness: a short
// answer fully contained in a long source unit scores 1.0.
func Containment(a, b string) float64 {
	ta := Tokenize(a)
	if len(ta) == 0 {
		return 0
	}
	tb := Tokenize(b)

	found := 0
	for k := range ta {
		if tb[k] {
			found++
		}
	}
	return float64(found) / float64(len(ta))
}

// Tokenize lowercases text and keeps words longer than 3 characters,
// dropping articles and prepositions by length alone.
func Tokenize(s string) map[string]bool {
	tokens := make(map[string]bool)
	for _, word := range strings.Fields(strings.ToLower(s)) {
		word = strings.Trim(word, ".,;:!?()\"'")
		if len(word) > 3 {
			tokens[word] = true
		}
	}
	return tokens
}
