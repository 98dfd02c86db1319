package assemble

import (
	"math/rand"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/quizcraft/backend/internal/models"
)

// Config controls final ordering and the minimum acceptable size.
type Config struct {
	MinItemCount int
	// WorthinessThreshold decides which units count toward the
	// coverage denominator.
	WorthinessThreshold float64
	// ShuffleSeed, when non-nil, replaces document order with a
	// reproducible seeded shuffle.
	ShuffleSeed *int64
}

// Assemble builds the immutable final quiz from the accepted
// candidate set. Items are ordered by source position (reading order)
// unless a shuffle seed is configured. Returns
// InsufficientItemsError when the accepted count is below the
// configured minimum; this is the pipeline's only externally visible
// failure once candidates exist.
func Assemble(accepted []*models.QuestionCandidate, units []models.ContentUnit, gaps int, cfg Config) (*models.Quiz, error) {
	if len(accepted) < cfg.MinItemCount {
		return nil, &models.InsufficientItemsError{Accepted: len(accepted), Minimum: cfg.MinItemCount}
	}

	position := make(map[string]int, len(units))
	for i, u := range units {
		position[u.ID] = i
	}

	items := make([]models.QuestionCandidate, len(accepted))
	for i, c := range accepted {
		items[i] = *c
	}
	sort.SliceStable(items, func(i, j int) bool {
		pi, pj := position[items[i].UnitID], position[items[j].UnitID]
		if pi != pj {
			return pi < pj
		}
		// Same unit: plan order, never worker completion order.
		return items[i].Sequence < items[j].Sequence
	})

	if cfg.ShuffleSeed != nil {
		rng := rand.New(rand.NewSource(*cfg.ShuffleSeed))
		rng.Shuffle(len(items), func(i, j int) {
			items[i], items[j] = items[j], items[i]
		})
	}

	histogram := make(map[models.Difficulty]int)
	for _, item := range items {
		histogram[item.Difficulty]++
	}

	return &models.Quiz{
		ID:                  uuid.NewString(),
		Items:               items,
		CoverageRatio:       coverageRatio(items, units, cfg.WorthinessThreshold),
		DifficultyHistogram: histogram,
		GenerationGaps:      gaps,
		CreatedAt:           time.Now(),
	}, nil
}

// coverageRatio is the fraction of worthy units represented by at
// least one final item, always in [0,1].
func coverageRatio(items []models.QuestionCandidate, units []models.ContentUnit, threshold float64) float64 {
	worthy := 0
	worthyIDs := make(map[string]bool)
	for _, u := range units {
		if u.ScoreWorthiness >= threshold {
			worthy++
			worthyIDs[u.ID] = true
		}
	}
	if worthy == 0 {
		return 0
	}

	represented := make(map[string]bool)
	for _, item := range items {
		if worthyIDs[item.UnitID] {
			represented[item.UnitID] = true
		}
	}
	return float64(len(represented)) / float64(worthy)
}
