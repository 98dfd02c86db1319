package studysheet

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/quizcraft/backend/internal/models"
)

func scoredUnits() []models.ContentUnit {
	return []models.ContentUnit{
		{ID: "u1", Text: "Photosynthesis converts light energy into chemical energy.", ScoreWorthiness: 0.30},
		{ID: "u2", Text: "The process occurs in the chloroplasts of plant cells.", ScoreWorthiness: 0.10},
		{ID: "u3", Text: "Marie Curie won the Nobel Prize in 1903.", ScoreWorthiness: 0.80},
	}
}

func TestBuild_ExtractiveOverview(t *testing.T) {
	sheet, err := Build(context.Background(), scoredUnits(), Config{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !strings.HasPrefix(sheet.Overview, "Photosynthesis converts") {
		t.Errorf("overview should open with the first sentence, got %q", sheet.Overview)
	}
	if !strings.Contains(sheet.Overview, "Marie Curie") {
		t.Errorf("overview should include the top-worthiness sentence, got %q", sheet.Overview)
	}
}

func TestBuild_KeyPointsInDocumentOrder(t *testing.T) {
	sheet, err := Build(context.Background(), scoredUnits(), Config{
		MaxKeyPoints:        2,
		WorthinessThreshold: 0.15,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []string{
		"Photosynthesis converts light energy into chemical energy.",
		"Marie Curie won the Nobel Prize in 1903.",
	}
	if len(sheet.KeyPoints) != len(want) {
		t.Fatalf("got %d key points, want %d: %v", len(sheet.KeyPoints), len(want), sheet.KeyPoints)
	}
	for i := range want {
		if sheet.KeyPoints[i] != want[i] {
			t.Errorf("key point %d = %q, want %q", i, sheet.KeyPoints[i], want[i])
		}
	}
}

func TestBuild_LowSignalFallback(t *testing.T) {
	units := []models.ContentUnit{
		{ID: "u1", Text: "it was fine and nothing much happened there.", ScoreWorthiness: 0},
		{ID: "u2", Text: "then it was over and everyone went home.", ScoreWorthiness: 0},
	}
	sheet, err := Build(context.Background(), units, Config{WorthinessThreshold: 0.15})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(sheet.KeyPoints) == 0 {
		t.Error("expected fallback key points for low-signal text")
	}
}

func TestBuild_TermsDeduplicated(t *testing.T) {
	units := []models.ContentUnit{
		{ID: "u1", Text: "The Eiffel Tower stands in Paris.", ScoreWorthiness: 0.4},
		{ID: "u2", Text: "The Eiffel Tower was finished in 1889.", ScoreWorthiness: 0.4},
	}
	sheet, err := Build(context.Background(), units, Config{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	seen := map[string]int{}
	for _, term := range sheet.Terms {
		seen[strings.ToLower(term.Term)]++
	}
	if seen["eiffel tower"] != 1 {
		t.Errorf("Eiffel Tower should appear once, got %d", seen["eiffel tower"])
	}

	for _, term := range sheet.Terms {
		if term.Term == "Eiffel Tower" && !strings.Contains(term.Context, "stands in Paris") {
			t.Errorf("context should come from the first occurrence, got %q", term.Context)
		}
	}
}

func TestBuild_EmptyUnits(t *testing.T) {
	_, err := Build(context.Background(), nil, Config{})
	if !errors.Is(err, models.ErrEmptyInput) {
		t.Fatalf("expected ErrEmptyInput, got %v", err)
	}
}

type stubSummarizer struct {
	summary string
	err     error
}

func (s stubSummarizer) Summarize(context.Context, string) (string, error) {
	return s.summary, s.err
}

func TestBuild_SummarizerPreferred(t *testing.T) {
	sheet, err := Build(context.Background(), scoredUnits(), Config{
		Summarizer: stubSummarizer{summary: "A short abstract."},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sheet.Overview != "A short abstract." {
		t.Errorf("overview = %q, want summarizer output", sheet.Overview)
	}
}

func TestBuild_SummarizerError(t *testing.T) {
	_, err := Build(context.Background(), scoredUnits(), Config{
		Summarizer: stubSummarizer{err: errors.New("model unavailable")},
	})
	if err == nil {
		t.Fatal("expected summarizer error to propagate")
	}
}
