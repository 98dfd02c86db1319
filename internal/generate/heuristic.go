package generate

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/quizcraft/backend/internal/models"
)

const clozeBlank = "_____"

// Filler options used to pad a multiple-choice distractor set when
// the source text is too small to mine three plausible wrong answers.
var fillerDistractors = []string{
	"None of the above",
	"All of the above",
	"Not stated in the text",
}

// Heuristic is the default generation capability: fully deterministic,
// no external calls. True/false items restate a unit verbatim;
// multiple-choice and short-answer items blank out a key term, with
// multiple-choice distractors mined from the other units' key terms.
type Heuristic struct {
	pool      []string       // key terms across all units, document order
	unitIndex map[string]int // unit ID → document position
}

// NewHeuristic builds a generator over the run's unit corpus. The
// corpus is only used as a distractor source; candidates are always
// grounded in the single requested unit.
func NewHeuristic(units []models.ContentUnit) *Heuristic {
	h := &Heuristic{unitIndex: make(map[string]int, len(units))}
	seen := make(map[string]bool)
	for i, u := range units {
		h.unitIndex[u.ID] = i
		for _, term := range KeyTerms(u.Text) {
			key := strings.ToLower(term)
			if !seen[key] {
				seen[key] = true
				h.pool = append(h.pool, term)
			}
		}
	}
	return h
}

func (h *Heuristic) Generate(ctx context.Context, req Request) (*models.QuestionCandidate, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var (
		question    string
		answer      string
		distractors []string
		err         error
	)

	switch req.TypeHint {
	case models.TypeTrueFalse:
		question = "True or false: " + req.Unit.Text
		answer = "true"
	case models.TypeShortAnswer:
		question, answer, err = h.cloze(req)
	case models.TypeMultipleChoice:
		question, answer, err = h.cloze(req)
		if err == nil {
			distractors = h.mineDistractors(req, answer, 3)
		}
	default:
		return nil, fmt.Errorf("unsupported question type %q", req.TypeHint)
	}
	if err != nil {
		return nil, err
	}

	return &models.QuestionCandidate{
		ID:          uuid.NewString(),
		UnitID:      req.Unit.ID,
		Question:    question,
		Answer:      answer,
		Distractors: distractors,
		Type:        req.TypeHint,
		Difficulty:  h.difficulty(req),
		Status:      models.StatusPending,
		Attempt:     req.Attempt,
		CreatedAt:   time.Now(),
	}, nil
}

// cloze blanks out one key term of the unit. The attempt counter
// rotates through the available terms so a regeneration round yields
// a different item than the one that failed validation.
func (h *Heuristic) cloze(req Request) (question, answer string, err error) {
	terms := KeyTerms(req.Unit.Text)
	if len(terms) == 0 {
		return "", "", fmt.Errorf("unit %s has no extractable key terms", req.Unit.ID)
	}

	answer = terms[req.Attempt%len(terms)]
	question = strings.Replace(req.Unit.Text, answer, clozeBlank, 1) + " (fill in the blank)"
	return question, answer, nil
}

// mineDistractors picks wrong answers from the corpus-wide term pool,
// starting at an offset derived from the unit's document position so
// neighboring units draw different distractors. Falls back to filler
// options when the pool runs dry.
func (h *Heuristic) mineDistractors(req Request, answer string, n int) []string {
	offset := h.unitIndex[req.Unit.ID] + req.Attempt
	lowerAnswer := strings.ToLower(answer)

	var picked []string
	for i := 0; i < len(h.pool) && len(picked) < n; i++ {
		term := h.pool[(offset+i)%len(h.pool)]
		if strings.ToLower(term) == lowerAnswer {
			continue
		}
		if strings.Contains(req.Unit.Text, term) {
			continue // Would be a second right answer for this unit.
		}
		picked = append(picked, term)
	}

	for i := 0; len(picked) < n && i < len(fillerDistractors); i++ {
		picked = append(picked, fillerDistractors[i])
	}
	return picked
}

func (h *Heuristic) difficulty(req Request) models.Difficulty {
	if req.Difficulty != "" {
		return req.Difficulty
	}
	switch {
	case req.TypeHint == models.TypeTrueFalse:
		return models.DifficultyEasy
	case len(req.Unit.Text) > 200:
		return models.DifficultyHard
	default:
		return models.DifficultyMedium
	}
}
