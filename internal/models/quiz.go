package models

import "time"

type QuestionType string

const (
	TypeMultipleChoice QuestionType = "multiple_choice"
	TypeTrueFalse      QuestionType = "true_false"
	TypeShortAnswer    QuestionType = "short_answer"
)

var ValidQuestionTypes = map[QuestionType]bool{
	TypeMultipleChoice: true,
	TypeTrueFalse:      true,
	TypeShortAnswer:    true,
}

type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

var ValidDifficulties = map[Difficulty]bool{
	DifficultyEasy:   true,
	DifficultyMedium: true,
	DifficultyHard:   true,
}

type CandidateStatus string

const (
	StatusPending           CandidateStatus = "pending"
	StatusAccepted          CandidateStatus = "accepted"
	StatusRejected          CandidateStatus = "rejected"
	StatusNeedsRegeneration CandidateStatus = "needs_regeneration"
)

type FailureReason string

const (
	ReasonEmptyQuestion        FailureReason = "empty_question"
	ReasonEmptyAnswer          FailureReason = "empty_answer"
	ReasonTooFewDistractors    FailureReason = "too_few_distractors"
	ReasonUngroundedAnswer     FailureReason = "ungrounded_answer"
	ReasonDuplicateDistractor  FailureReason = "duplicate_distractor"
	ReasonAnswerAmongDistracts FailureReason = "answer_among_distractors"
	ReasonQuestionTooShort     FailureReason = "question_too_short"
	ReasonQuestionTooLong      FailureReason = "question_too_long"
	ReasonNearDuplicate        FailureReason = "near_duplicate"
)

// ── Core Structs ───────────────────────────────────────

// ContentUnit is an atomic, non-overlapping span of normalized source
// text eligible to become a quiz item. Units are immutable once the
// normalizer emits them; only ScoreWorthiness is filled in later by
// the scoring stage.
type ContentUnit struct {
	ID              string  `json:"id"`
	Text            string  `json:"text"`
	SourceStart     int     `json:"source_start"`
	SourceEnd       int     `json:"source_end"`
	ScoreWorthiness float64 `json:"score_worthiness"`
}

// QuestionCandidate is a generated, not-yet-final quiz item. Created
// by the generation stage with StatusPending; only the validator and
// the balancer move it through the status machine.
type QuestionCandidate struct {
	ID          string          `json:"id"`
	UnitID      string          `json:"unit_id"`
	Question    string          `json:"question"`
	Answer      string          `json:"answer"`
	Distractors []string        `json:"distractors,omitempty"`
	Type        QuestionType    `json:"type"`
	Difficulty  Difficulty      `json:"difficulty"`
	Status      CandidateStatus `json:"status"`
	Attempt     int             `json:"attempt"`
	CreatedAt   time.Time       `json:"created_at"`

	// Sequence is the candidate's generation-plan slot. Items from
	// the same unit sort on it so output order never depends on
	// worker completion order.
	Sequence int `json:"-"`
}

// ValidationResult records the outcome of the quality checks for one
// candidate. Transient: produced and consumed inside a single run.
type ValidationResult struct {
	CandidateID string          `json:"candidate_id"`
	Passed      bool            `json:"passed"`
	Reasons     []FailureReason `json:"reasons,omitempty"`
	Confidence  float64         `json:"confidence"`
}

// Quiz is the final assembled output. Immutable once returned.
type Quiz struct {
	ID                  string              `json:"id"`
	Items               []QuestionCandidate `json:"items"`
	CoverageRatio       float64             `json:"coverage_ratio"`
	DifficultyHistogram map[Difficulty]int  `json:"difficulty_histogram"`
	GenerationGaps      int                 `json:"generation_gaps"`
	CreatedAt           time.Time           `json:"created_at"`
}

// StudySheet is a condensed study aid built from the same source text:
// a short overview, the most important points, and key terms with the
// sentence that introduces them.
type StudySheet struct {
	Overview  string    `json:"overview"`
	KeyPoints []string  `json:"key_points"`
	Terms     []KeyTerm `json:"terms,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

type KeyTerm struct {
	Term    string `json:"term"`
	Context string `json:"context"`
}
