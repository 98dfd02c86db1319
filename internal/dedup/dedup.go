package dedup

import (
	"sort"

	"github.com/quizcraft/backend/internal/models"
	"github.com/quizcraft/backend/internal/similarity"
)

// Config bounds the dedup clustering and the diversity constraints on
// the surviving set.
type Config struct {
	SimilarityThreshold float64
	// MaxTypeShare is the largest fraction of items a single question
	// type may hold before the balancer asks for more of the others.
	MaxTypeShare float64
	// MinDistinctUnits is the smallest number of distinct source
	// units the surviving set must represent. Zero disables it.
	MinDistinctUnits int
	// TypeTarget is the requested per-type item mix; a type below
	// its target is reported as under-represented.
	TypeTarget map[models.QuestionType]int
}

// Item pairs an accepted candidate with its document position, its
// generation-plan slot, and the validator's confidence so clustering
// can pick representatives deterministically. Seq breaks position
// ties when one unit yields several items.
type Item struct {
	Candidate  *models.QuestionCandidate
	Position   int
	Seq        int
	Confidence float64
}

// Result reports what survived and what the balancer still wants.
type Result struct {
	Kept     []Item
	Rejected []Item
	// UnderRepresentedUnits lists unit IDs the pipeline should
	// regenerate for, earliest document position first.
	UnderRepresentedUnits []string
	// UnderRepresentedTypes lists question types below their
	// per-type target, or below their fair share after another type
	// dominates past MaxTypeShare.
	UnderRepresentedTypes []models.QuestionType
}

// Dedup clusters near-duplicate items by pairwise similarity over
// question-plus-answer text and keeps one representative per cluster:
// highest confidence, earliest document position on ties. Everything
// else is marked rejected. Deterministic given identical similarity
// scores.
func Dedup(items []Item, sim similarity.Func, threshold float64) Result {
	ordered := make([]Item, len(items))
	copy(ordered, items)
	sort.SliceStable(ordered, func(i, j int) bool {
		if ordered[i].Position != ordered[j].Position {
			return ordered[i].Position < ordered[j].Position
		}
		return ordered[i].Seq < ordered[j].Seq
	})

	clusterOf := make([]int, len(ordered))
	for i := range clusterOf {
		clusterOf[i] = -1
	}

	var clusters [][]int
	for i := range ordered {
		if clusterOf[i] >= 0 {
			continue
		}
		cluster := []int{i}
		clusterOf[i] = len(clusters)
		for j := i + 1; j < len(ordered); j++ {
			if clusterOf[j] >= 0 {
				continue
			}
			if sim(itemText(ordered[i]), itemText(ordered[j])) >= threshold {
				clusterOf[j] = len(clusters)
				cluster = append(cluster, j)
			}
		}
		clusters = append(clusters, cluster)
	}

	var result Result
	for _, cluster := range clusters {
		rep := cluster[0]
		for _, idx := range cluster[1:] {
			if ordered[idx].Confidence > ordered[rep].Confidence {
				rep = idx
			}
		}
		for _, idx := range cluster {
			if idx == rep {
				result.Kept = append(result.Kept, ordered[idx])
				continue
			}
			ordered[idx].Candidate.Status = models.StatusRejected
			result.Rejected = append(result.Rejected, ordered[idx])
		}
	}
	return result
}

// Balance inspects the surviving set against the diversity
// constraints and fills in the regeneration requests. worthyUnits is
// the generation pool in ranked order; only its members are candidates
// for coverage requests.
func Balance(result Result, cfg Config, worthyUnits []models.ContentUnit, typesAllowed []models.QuestionType) Result {
	covered := make(map[string]bool)
	typeCounts := make(map[models.QuestionType]int)
	for _, it := range result.Kept {
		covered[it.Candidate.UnitID] = true
		typeCounts[it.Candidate.Type]++
	}

	if cfg.MinDistinctUnits > 0 && len(covered) < cfg.MinDistinctUnits {
		for _, u := range worthyUnits {
			if len(covered)+len(result.UnderRepresentedUnits) >= cfg.MinDistinctUnits {
				break
			}
			if !covered[u.ID] {
				result.UnderRepresentedUnits = append(result.UnderRepresentedUnits, u.ID)
			}
		}
	}

	if len(cfg.TypeTarget) > 0 {
		for _, qt := range typesAllowed {
			if typeCounts[qt] < cfg.TypeTarget[qt] {
				result.UnderRepresentedTypes = append(result.UnderRepresentedTypes, qt)
			}
		}
		return result
	}

	total := len(result.Kept)
	if total > 0 && len(typesAllowed) > 1 && cfg.MaxTypeShare > 0 {
		for _, qt := range typesAllowed {
			share := float64(typeCounts[qt]) / float64(total)
			if share > cfg.MaxTypeShare {
				for _, other := range typesAllowed {
					if other != qt {
						result.UnderRepresentedTypes = append(result.UnderRepresentedTypes, other)
					}
				}
				break
			}
		}
	}
	return result
}

// itemText is the comparison key for near-duplicate detection: two
// items asking about the same fact share question and answer wording
// even when their source units differ.
func itemText(it Item) string {
	return it.Candidate.Question + " " + it.Candidate.Answer
}
