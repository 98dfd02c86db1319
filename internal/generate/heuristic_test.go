package generate

import (
	"context"
	"strings"
	"testing"

	"github.com/quizcraft/backend/internal/models"
)

func testUnits() []models.ContentUnit {
	return []models.ContentUnit{
		{ID: "u1", Text: "Paris is the capital of France.", SourceStart: 0, SourceEnd: 31},
		{ID: "u2", Text: "The Eiffel Tower is 330 meters tall.", SourceStart: 31, SourceEnd: 68},
		{ID: "u3", Text: "Marie Curie won the Nobel Prize in 1903.", SourceStart: 68, SourceEnd: 109},
	}
}

func TestHeuristic_TrueFalse(t *testing.T) {
	h := NewHeuristic(testUnits())
	c, err := h.Generate(context.Background(), Request{
		Unit:     testUnits()[0],
		TypeHint: models.TypeTrueFalse,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c.Status != models.StatusPending {
		t.Errorf("status = %q, want pending", c.Status)
	}
	if c.UnitID != "u1" {
		t.Errorf("unit ID = %q, want u1", c.UnitID)
	}
	if !strings.HasPrefix(c.Question, "True or false:") {
		t.Errorf("unexpected question: %q", c.Question)
	}
	if c.Answer != "true" {
		t.Errorf("answer = %q, want true", c.Answer)
	}
	if len(c.Distractors) != 0 {
		t.Errorf("true/false item should have no distractors, got %v", c.Distractors)
	}
}

func TestHeuristic_ShortAnswerClozeIsGrounded(t *testing.T) {
	units := testUnits()
	h := NewHeuristic(units)
	c, err := h.Generate(context.Background(), Request{
		Unit:     units[1],
		TypeHint: models.TypeShortAnswer,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(units[1].Text, c.Answer) {
		t.Errorf("answer %q not found in source unit %q", c.Answer, units[1].Text)
	}
	if !strings.Contains(c.Question, clozeBlank) {
		t.Errorf("cloze question missing blank: %q", c.Question)
	}
	if strings.Contains(c.Question, c.Answer) {
		t.Errorf("answer leaked into question: %q", c.Question)
	}
}

func TestHeuristic_MultipleChoiceDistractors(t *testing.T) {
	units := testUnits()
	h := NewHeuristic(units)
	c, err := h.Generate(context.Background(), Request{
		Unit:     units[0],
		TypeHint: models.TypeMultipleChoice,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(c.Distractors) != 3 {
		t.Fatalf("expected 3 distractors, got %d: %v", len(c.Distractors), c.Distractors)
	}

	seen := map[string]bool{strings.ToLower(c.Answer): true}
	for _, d := range c.Distractors {
		key := strings.ToLower(d)
		if seen[key] {
			t.Errorf("distractor %q duplicates the answer or another distractor", d)
		}
		seen[key] = true
	}
}

func TestHeuristic_AttemptRotatesTerm(t *testing.T) {
	units := testUnits()
	h := NewHeuristic(units)

	first, err := h.Generate(context.Background(), Request{Unit: units[2], TypeHint: models.TypeShortAnswer, Attempt: 0})
	if err != nil {
		t.Fatalf("attempt 0: %v", err)
	}
	second, err := h.Generate(context.Background(), Request{Unit: units[2], TypeHint: models.TypeShortAnswer, Attempt: 1})
	if err != nil {
		t.Fatalf("attempt 1: %v", err)
	}
	if first.Answer == second.Answer {
		t.Errorf("regeneration produced the same answer %q", first.Answer)
	}
}

func TestHeuristic_NoKeyTermsIsAGap(t *testing.T) {
	units := []models.ContentUnit{{ID: "u1", Text: "it was generally quite nice there"}}
	h := NewHeuristic(units)
	_, err := h.Generate(context.Background(), Request{Unit: units[0], TypeHint: models.TypeShortAnswer})
	if err == nil {
		t.Fatal("expected an error for a unit with no key terms")
	}
}

func TestHeuristic_Deterministic(t *testing.T) {
	units := testUnits()
	req := Request{Unit: units[1], TypeHint: models.TypeMultipleChoice}

	a, err := NewHeuristic(units).Generate(context.Background(), req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	b, err := NewHeuristic(units).Generate(context.Background(), req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if a.Question != b.Question || a.Answer != b.Answer {
		t.Errorf("generation is not deterministic: %q/%q vs %q/%q", a.Question, a.Answer, b.Question, b.Answer)
	}
	for i := range a.Distractors {
		if a.Distractors[i] != b.Distractors[i] {
			t.Errorf("distractor %d differs: %q vs %q", i, a.Distractors[i], b.Distractors[i])
		}
	}
}

func TestHeuristic_RespectsDifficultyHint(t *testing.T) {
	units := testUnits()
	h := NewHeuristic(units)
	c, err := h.Generate(context.Background(), Request{
		Unit:       units[0],
		TypeHint:   models.TypeShortAnswer,
		Difficulty: models.DifficultyHard,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c.Difficulty != models.DifficultyHard {
		t.Errorf("difficulty = %q, want hard", c.Difficulty)
	}
}
