package assemble

import (
	"errors"
	"testing"

	"github.com/quizcraft/backend/internal/models"
)

func scoredUnits() []models.ContentUnit {
	return []models.ContentUnit{
		{ID: "u1", ScoreWorthiness: 0.9},
		{ID: "u2", ScoreWorthiness: 0.7},
		{ID: "u3", ScoreWorthiness: 0.05},
	}
}

func accepted(unitIDs ...string) []*models.QuestionCandidate {
	var out []*models.QuestionCandidate
	for i, uid := range unitIDs {
		out = append(out, &models.QuestionCandidate{
			ID:         string(rune('a' + i)),
			UnitID:     uid,
			Question:   "Q?",
			Answer:     "A",
			Difficulty: models.DifficultyMedium,
			Status:     models.StatusAccepted,
		})
	}
	return out
}

func TestAssemble_DocumentOrder(t *testing.T) {
	cands := accepted("u2", "u1")
	quiz, err := Assemble(cands, scoredUnits(), 0, Config{MinItemCount: 1, WorthinessThreshold: 0.15})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if quiz.Items[0].UnitID != "u1" || quiz.Items[1].UnitID != "u2" {
		t.Errorf("items not in reading order: %s, %s", quiz.Items[0].UnitID, quiz.Items[1].UnitID)
	}
}

func TestAssemble_SeededShuffleReproducible(t *testing.T) {
	seed := int64(42)
	cfg := Config{MinItemCount: 1, WorthinessThreshold: 0.15, ShuffleSeed: &seed}

	first, err := Assemble(accepted("u1", "u2", "u3"), scoredUnits(), 0, cfg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := Assemble(accepted("u1", "u2", "u3"), scoredUnits(), 0, cfg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for i := range first.Items {
		if first.Items[i].UnitID != second.Items[i].UnitID {
			t.Fatalf("shuffle not reproducible at %d: %s vs %s",
				i, first.Items[i].UnitID, second.Items[i].UnitID)
		}
	}
}

func TestAssemble_CoverageRatio(t *testing.T) {
	// u1 and u2 are worthy (>= 0.15); u3 is not. One item on u1 →
	// coverage 1/2.
	quiz, err := Assemble(accepted("u1"), scoredUnits(), 0, Config{MinItemCount: 1, WorthinessThreshold: 0.15})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if quiz.CoverageRatio != 0.5 {
		t.Errorf("coverage = %f, want 0.5", quiz.CoverageRatio)
	}

	quiz, err = Assemble(accepted("u1", "u2"), scoredUnits(), 0, Config{MinItemCount: 1, WorthinessThreshold: 0.15})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if quiz.CoverageRatio != 1.0 {
		t.Errorf("coverage = %f, want 1.0", quiz.CoverageRatio)
	}
}

func TestAssemble_DifficultyHistogram(t *testing.T) {
	cands := accepted("u1", "u2")
	cands[0].Difficulty = models.DifficultyEasy
	cands[1].Difficulty = models.DifficultyHard

	quiz, err := Assemble(cands, scoredUnits(), 0, Config{MinItemCount: 1, WorthinessThreshold: 0.15})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if quiz.DifficultyHistogram[models.DifficultyEasy] != 1 ||
		quiz.DifficultyHistogram[models.DifficultyHard] != 1 {
		t.Errorf("histogram = %v", quiz.DifficultyHistogram)
	}
}

func TestAssemble_InsufficientItems(t *testing.T) {
	_, err := Assemble(accepted("u1"), scoredUnits(), 0, Config{MinItemCount: 3, WorthinessThreshold: 0.15})
	var insufficient *models.InsufficientItemsError
	if !errors.As(err, &insufficient) {
		t.Fatalf("expected InsufficientItemsError, got %v", err)
	}
	if insufficient.Accepted != 1 || insufficient.Minimum != 3 {
		t.Errorf("error carries %d/%d, want 1/3", insufficient.Accepted, insufficient.Minimum)
	}
}
