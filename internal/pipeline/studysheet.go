package pipeline

import (
	"context"
	"errors"

	"golang.org/x/sync/errgroup"

	"github.com/quizcraft/backend/internal/models"
	"github.com/quizcraft/backend/internal/normalize"
	"github.com/quizcraft/backend/internal/studysheet"
)

// GenerateStudySheet normalizes and scores the text, then builds the
// extractive revision sheet. It shares the scoring capability and the
// request deadline handling with quiz generation.
func (p *Pipeline) GenerateStudySheet(ctx context.Context, rawText string, cfg models.QuizConfig) (*models.StudySheet, error) {
	cfg = cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, cfg.PerRequestDeadline)
	defer cancel()

	units, _, err := normalize.Normalize(rawText, normalize.Config{
		MinUnitLength: cfg.MinUnitLength,
		MaxUnitLength: cfg.MaxUnitLength,
	})
	if err != nil {
		return nil, err
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(cfg.Concurrency)
	for i := range units {
		g.Go(func() error {
			if gctx.Err() != nil {
				return gctx.Err()
			}
			units[i].ScoreWorthiness = p.caps.Scorer.Score(units[i])
			return nil
		})
	}
	if err := g.Wait(); err != nil && !errors.Is(err, context.DeadlineExceeded) {
		return nil, err
	}

	return studysheet.Build(ctx, units, studysheet.Config{
		WorthinessThreshold: cfg.WorthinessThreshold,
	})
}
