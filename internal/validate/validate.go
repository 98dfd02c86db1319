package validate

import (
	"strings"

	"github.com/quizcraft/backend/internal/models"
	"github.com/quizcraft/backend/internal/similarity"
)

// Config carries the tunable bounds for the quality checks.
type Config struct {
	MinQuestionLength int
	MaxQuestionLength int
	// GroundedThreshold is the paraphrase-similarity floor applied
	// when the answer is not a literal substring of the source unit.
	GroundedThreshold float64
}

// MinDistractors returns the structural minimum per question type.
func MinDistractors(qt models.QuestionType) int {
	if qt == models.TypeMultipleChoice {
		return 3
	}
	return 0
}

// Checker runs the ordered quality checks against candidates. The
// similarity capability backs the paraphrase arm of the groundedness
// check.
type Checker struct {
	cfg Config
	sim similarity.Func
}

func NewChecker(cfg Config, sim similarity.Func) *Checker {
	if sim == nil {
		sim = similarity.Containment
	}
	return &Checker{cfg: cfg, sim: sim}
}

// Check evaluates one candidate against its source unit. All checks
// run and every triggered reason is recorded; the first failure alone
// decides the outcome. Check never mutates the candidate.
func (c *Checker) Check(cand *models.QuestionCandidate, unit models.ContentUnit) models.ValidationResult {
	var reasons []models.FailureReason

	// 1. Structural.
	if strings.TrimSpace(cand.Question) == "" {
		reasons = append(reasons, models.ReasonEmptyQuestion)
	}
	if strings.TrimSpace(cand.Answer) == "" {
		reasons = append(reasons, models.ReasonEmptyAnswer)
	}
	if len(cand.Distractors) < MinDistractors(cand.Type) {
		reasons = append(reasons, models.ReasonTooFewDistractors)
	}

	// 2. Groundedness.
	grounded, margin := c.groundedness(cand, unit)
	if !grounded {
		reasons = append(reasons, models.ReasonUngroundedAnswer)
	}

	// 3. Distractor distinctness, case-insensitive.
	seen := map[string]bool{strings.ToLower(strings.TrimSpace(cand.Answer)): true}
	for _, d := range cand.Distractors {
		key := strings.ToLower(strings.TrimSpace(d))
		if key == strings.ToLower(strings.TrimSpace(cand.Answer)) {
			reasons = append(reasons, models.ReasonAnswerAmongDistracts)
			continue
		}
		if seen[key] {
			reasons = append(reasons, models.ReasonDuplicateDistractor)
			continue
		}
		seen[key] = true
	}

	// 4. Length sanity.
	qLen := len(strings.TrimSpace(cand.Question))
	if qLen > 0 && qLen < c.cfg.MinQuestionLength {
		reasons = append(reasons, models.ReasonQuestionTooShort)
	}
	if c.cfg.MaxQuestionLength > 0 && qLen > c.cfg.MaxQuestionLength {
		reasons = append(reasons, models.ReasonQuestionTooLong)
	}

	return models.ValidationResult{
		CandidateID: cand.ID,
		Passed:      len(reasons) == 0,
		Reasons:     reasons,
		Confidence:  confidence(reasons, margin),
	}
}

// groundedness verifies the answer is derivable from the source unit:
// literal substring first, paraphrase similarity above the threshold
// otherwise. True/false items ground the stated proposition instead
// of the boolean answer.
func (c *Checker) groundedness(cand *models.QuestionCandidate, unit models.ContentUnit) (bool, float64) {
	claim := cand.Answer
	if cand.Type == models.TypeTrueFalse {
		claim = strings.TrimPrefix(cand.Question, "True or false:")
	}
	claim = strings.TrimSpace(claim)
	if claim == "" {
		return false, 0
	}

	if strings.Contains(strings.ToLower(unit.Text), strings.ToLower(claim)) {
		return true, 1.0
	}

	sim := c.sim(claim, unit.Text)
	return sim >= c.cfg.GroundedThreshold, sim
}

// confidence folds the check outcomes into a single score the
// balancer uses to pick cluster representatives. A clean pass with a
// literal-substring grounding scores 1.0.
func confidence(reasons []models.FailureReason, groundedMargin float64) float64 {
	if len(reasons) > 0 {
		return 0
	}
	return 0.5 + 0.5*groundedMargin
}

// Decide maps a validation result to the candidate's next status:
// accepted on a pass, needs_regeneration while the unit's retry
// budget lasts, rejected once it is spent.
func Decide(result models.ValidationResult, attempt, maxRetriesPerUnit int) models.CandidateStatus {
	if result.Passed {
		return models.StatusAccepted
	}
	if attempt < maxRetriesPerUnit {
		return models.StatusNeedsRegeneration
	}
	return models.StatusRejected
}
