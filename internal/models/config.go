package models

import (
	"fmt"
	"time"
)

// Default tuning values. All of these are caller-overridable through
// QuizConfig; none is a fixed contract.
const (
	DefaultTargetItemCount     = 10
	DefaultMinItemCount        = 1
	DefaultMinUnitLength       = 20
	DefaultMaxUnitLength       = 600
	DefaultMinQuestionLength   = 10
	DefaultMaxQuestionLength   = 800
	DefaultSimilarityThreshold = 0.85
	DefaultGroundedThreshold   = 0.60
	DefaultWorthinessThreshold = 0.15
	DefaultMaxRetriesPerUnit   = 2
	DefaultMaxTypeShare        = 0.70
	DefaultConcurrency         = 4
	DefaultPerRequestDeadline  = 2 * time.Minute
	DefaultCapabilityTimeout   = 30 * time.Second
)

// QuizConfig carries the per-request knobs for a single quiz
// generation run. The zero value is usable: ApplyDefaults fills in
// every unset field.
type QuizConfig struct {
	TargetItemCount int `json:"target_item_count"`
	MinItemCount    int `json:"min_item_count"`

	TypesAllowed []QuestionType `json:"types_allowed,omitempty"`
	// TypeTarget requests a per-type item mix, e.g. 3 multiple choice
	// and 2 true/false. Types not listed get no planned slots; the
	// balancer treats a type below its target as under-represented.
	TypeTarget       map[QuestionType]int `json:"type_target,omitempty"`
	DifficultyTarget map[Difficulty]int   `json:"difficulty_target,omitempty"`

	MinUnitLength     int `json:"min_unit_length"`
	MaxUnitLength     int `json:"max_unit_length"`
	MinQuestionLength int `json:"min_question_length"`
	MaxQuestionLength int `json:"max_question_length"`

	SimilarityThreshold float64 `json:"similarity_threshold"`
	GroundedThreshold   float64 `json:"grounded_threshold"`
	WorthinessThreshold float64 `json:"worthiness_threshold"`

	MaxTypeShare     float64 `json:"max_type_share"`
	MinDistinctUnits int     `json:"min_distinct_units"`

	MaxRetriesPerUnit int `json:"max_retries_per_unit"`
	Concurrency       int `json:"concurrency"`

	PerRequestDeadline time.Duration `json:"per_request_deadline"`
	CapabilityTimeout  time.Duration `json:"capability_timeout"`

	// ShuffleSeed, when non-nil, switches item ordering from document
	// order to a reproducible seeded shuffle.
	ShuffleSeed *int64 `json:"shuffle_seed,omitempty"`
}

// ApplyDefaults returns a copy with every unset field filled in.
func (c QuizConfig) ApplyDefaults() QuizConfig {
	if c.TargetItemCount <= 0 {
		c.TargetItemCount = DefaultTargetItemCount
	}
	if c.MinItemCount <= 0 {
		c.MinItemCount = DefaultMinItemCount
	}
	if len(c.TypesAllowed) == 0 {
		c.TypesAllowed = []QuestionType{TypeMultipleChoice, TypeTrueFalse, TypeShortAnswer}
	}
	if c.MinUnitLength <= 0 {
		c.MinUnitLength = DefaultMinUnitLength
	}
	if c.MaxUnitLength <= 0 {
		c.MaxUnitLength = DefaultMaxUnitLength
	}
	if c.MinQuestionLength <= 0 {
		c.MinQuestionLength = DefaultMinQuestionLength
	}
	if c.MaxQuestionLength <= 0 {
		c.MaxQuestionLength = DefaultMaxQuestionLength
	}
	if c.SimilarityThreshold <= 0 {
		c.SimilarityThreshold = DefaultSimilarityThreshold
	}
	if c.GroundedThreshold <= 0 {
		c.GroundedThreshold = DefaultGroundedThreshold
	}
	if c.WorthinessThreshold <= 0 {
		c.WorthinessThreshold = DefaultWorthinessThreshold
	}
	if c.MaxTypeShare <= 0 {
		c.MaxTypeShare = DefaultMaxTypeShare
	}
	if c.MaxRetriesPerUnit < 0 {
		c.MaxRetriesPerUnit = DefaultMaxRetriesPerUnit
	}
	if c.Concurrency <= 0 {
		c.Concurrency = DefaultConcurrency
	}
	if c.PerRequestDeadline <= 0 {
		c.PerRequestDeadline = DefaultPerRequestDeadline
	}
	if c.CapabilityTimeout <= 0 {
		c.CapabilityTimeout = DefaultCapabilityTimeout
	}
	return c
}

// Validate rejects configs that cannot produce a coherent run.
func (c QuizConfig) Validate() error {
	if c.TargetItemCount <= 0 {
		return fmt.Errorf("target_item_count must be positive, got %d", c.TargetItemCount)
	}
	if c.MinItemCount > c.TargetItemCount {
		return fmt.Errorf("min_item_count %d exceeds target_item_count %d", c.MinItemCount, c.TargetItemCount)
	}
	if c.MinUnitLength > c.MaxUnitLength {
		return fmt.Errorf("min_unit_length %d exceeds max_unit_length %d", c.MinUnitLength, c.MaxUnitLength)
	}
	for _, qt := range c.TypesAllowed {
		if !ValidQuestionTypes[qt] {
			return fmt.Errorf("unknown question type %q", qt)
		}
	}
	for d := range c.DifficultyTarget {
		if !ValidDifficulties[d] {
			return fmt.Errorf("unknown difficulty %q", d)
		}
	}
	allowed := make(map[QuestionType]bool, len(c.TypesAllowed))
	for _, qt := range c.TypesAllowed {
		allowed[qt] = true
	}
	for qt, n := range c.TypeTarget {
		if !ValidQuestionTypes[qt] {
			return fmt.Errorf("unknown question type %q in type_target", qt)
		}
		if n < 0 {
			return fmt.Errorf("type_target for %q must be non-negative, got %d", qt, n)
		}
		if len(c.TypesAllowed) > 0 && !allowed[qt] {
			return fmt.Errorf("type_target names %q, which types_allowed excludes", qt)
		}
	}
	if c.SimilarityThreshold > 1 || c.GroundedThreshold > 1 || c.WorthinessThreshold > 1 {
		return fmt.Errorf("similarity, grounded, and worthiness thresholds must be in (0,1]")
	}
	return nil
}
