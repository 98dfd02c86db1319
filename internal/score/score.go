package score

import (
	"sort"
	"strings"
	"unicode"

	"github.com/quizcraft/backend/internal/models"
)

// Scorer rates how assessment-worthy a content unit is, in [0,1].
// Implementations must be pure: same unit, same score.
type Scorer interface {
	Score(unit models.ContentUnit) float64
}

// Func adapts a plain function to the Scorer interface.
type Func func(unit models.ContentUnit) float64

func (f Func) Score(unit models.ContentUnit) float64 { return f(unit) }

// Weights of the lexical signals. Chosen so a unit carrying a named
// entity and a numeric fact lands comfortably above the default
// worthiness threshold.
const (
	entityWeight     = 0.45
	numericWeight    = 0.35
	complexityWeight = 0.20
)

// Lexical is the default deterministic scorer. It looks at
// named-entity density (capitalized tokens past the sentence start),
// numeric-fact presence, and sentence complexity. A unit with no
// signal scores 0; there is no failure mode.
type Lexical struct{}

func (Lexical) Score(unit models.ContentUnit) float64 {
	tokens := strings.Fields(unit.Text)
	if len(tokens) == 0 {
		return 0
	}

	entities := 0
	numerics := 0
	for i, tok := range tokens {
		trimmed := strings.TrimFunc(tok, func(r rune) bool {
			return !unicode.IsLetter(r) && !unicode.IsDigit(r)
		})
		if trimmed == "" {
			continue
		}
		if i > 0 && unicode.IsUpper([]rune(trimmed)[0]) {
			entities++
		}
		if strings.IndexFunc(trimmed, unicode.IsDigit) >= 0 {
			numerics++
		}
	}

	entityDensity := clamp(float64(entities) / 3.0)
	numericSignal := clamp(float64(numerics) / 2.0)
	complexity := clamp(float64(len(tokens)) / 25.0)

	return clamp(entityWeight*entityDensity + numericWeight*numericSignal + complexityWeight*complexity)
}

// SortDescending orders units by worthiness, highest first, using a
// stable sort so ties keep original document order.
func SortDescending(units []models.ContentUnit) {
	sort.SliceStable(units, func(i, j int) bool {
		return units[i].ScoreWorthiness > units[j].ScoreWorthiness
	})
}

func clamp(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
