// Package studysheet builds a revision summary from scored content
// units: an overview, the highest-signal key points, and a glossary of
// key terms with the sentence each appeared in.
package studysheet

import (
	"context"
	"strings"
	"time"

	"github.com/quizcraft/backend/internal/generate"
	"github.com/quizcraft/backend/internal/models"
	"github.com/quizcraft/backend/internal/score"
)

const (
	DefaultMaxKeyPoints = 8
	DefaultMaxTerms     = 12
)

// Summarizer produces the overview paragraph. When nil the builder
// falls back to an extractive overview, so a sheet never requires a
// model call.
type Summarizer interface {
	Summarize(ctx context.Context, text string) (string, error)
}

type Config struct {
	MaxKeyPoints int
	MaxTerms     int
	// WorthinessThreshold filters which units may contribute key
	// points. Zero keeps every unit eligible.
	WorthinessThreshold float64

	Summarizer Summarizer
}

func (c Config) applyDefaults() Config {
	if c.MaxKeyPoints <= 0 {
		c.MaxKeyPoints = DefaultMaxKeyPoints
	}
	if c.MaxTerms <= 0 {
		c.MaxTerms = DefaultMaxTerms
	}
	return c
}

// Build assembles a study sheet from units that have already been
// scored. Units must be in document order.
func Build(ctx context.Context, units []models.ContentUnit, cfg Config) (*models.StudySheet, error) {
	if len(units) == 0 {
		return nil, models.ErrEmptyInput
	}
	cfg = cfg.applyDefaults()

	sheet := &models.StudySheet{
		KeyPoints: keyPoints(units, cfg),
		Terms:     keyTerms(units, cfg.MaxTerms),
		CreatedAt: time.Now().UTC(),
	}

	overview, err := buildOverview(ctx, units, cfg)
	if err != nil {
		return nil, err
	}
	sheet.Overview = overview
	return sheet, nil
}

// buildOverview prefers the injected summarizer; without one it joins
// the opening sentence with the highest-worthiness sentence, which
// reads as a serviceable abstract for most expository text.
func buildOverview(ctx context.Context, units []models.ContentUnit, cfg Config) (string, error) {
	if cfg.Summarizer != nil {
		var b strings.Builder
		for _, u := range units {
			b.WriteString(u.Text)
			b.WriteByte(' ')
		}
		return cfg.Summarizer.Summarize(ctx, strings.TrimSpace(b.String()))
	}

	overview := units[0].Text
	best := units[0]
	for _, u := range units[1:] {
		if u.ScoreWorthiness > best.ScoreWorthiness {
			best = u
		}
	}
	if best.ID != units[0].ID {
		overview += " " + best.Text
	}
	return overview, nil
}

// keyPoints keeps the top-worthiness units and returns them in
// document order so the sheet reads like the source.
func keyPoints(units []models.ContentUnit, cfg Config) []string {
	ranked := make([]models.ContentUnit, len(units))
	copy(ranked, units)
	score.SortDescending(ranked)

	chosen := make(map[string]bool)
	for _, u := range ranked {
		if len(chosen) >= cfg.MaxKeyPoints {
			break
		}
		if u.ScoreWorthiness < cfg.WorthinessThreshold {
			continue
		}
		chosen[u.ID] = true
	}
	// Low-signal text still gets a sheet: fall back to leading units.
	if len(chosen) == 0 {
		for i, u := range units {
			if i >= cfg.MaxKeyPoints {
				break
			}
			chosen[u.ID] = true
		}
	}

	var points []string
	for _, u := range units {
		if chosen[u.ID] {
			points = append(points, u.Text)
		}
	}
	return points
}

// keyTerms collects terms across units in document order, keeping the
// first sentence each term appeared in as its context.
func keyTerms(units []models.ContentUnit, maxTerms int) []models.KeyTerm {
	seen := make(map[string]bool)
	var terms []models.KeyTerm
	for _, u := range units {
		for _, term := range generate.KeyTerms(u.Text) {
			key := strings.ToLower(term)
			if seen[key] {
				continue
			}
			seen[key] = true
			terms = append(terms, models.KeyTerm{Term: term, Context: u.Text})
			if len(terms) >= maxTerms {
				return terms
			}
		}
	}
	return terms
}
