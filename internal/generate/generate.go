package generate

import (
	"context"
	"log"
	"os"

	"github.com/quizcraft/backend/internal/models"
)

// Request asks a generation capability for one candidate quiz item
// built from a single content unit. Attempt counts regeneration
// rounds for the same unit, starting at 0. Seq is the request's slot
// in the generation plan; a regeneration reuses its slot.
type Request struct {
	Unit       models.ContentUnit
	TypeHint   models.QuestionType
	Difficulty models.Difficulty
	Attempt    int
	Seq        int
}

// Generator is the candidate-generation capability. Implementations
// return a candidate with Status pending and UnitID set to the
// request's unit, or an error when the unit yields nothing usable.
// Errors are generation gaps, not run failures.
type Generator interface {
	Generate(ctx context.Context, req Request) (*models.QuestionCandidate, error)
}

// FromEnv picks the generation backend from GENERATOR_BACKEND:
// anthropic, openai, or heuristic, defaulting to the deterministic
// heuristic when unset.
func FromEnv(units []models.ContentUnit) Generator {
	return ForBackend(os.Getenv("GENERATOR_BACKEND"), units)
}

// ForBackend builds the named generation backend bound to a run's
// unit corpus. Unknown names fall back to the heuristic.
func ForBackend(backend string, units []models.ContentUnit) Generator {
	switch backend {
	case "anthropic":
		model := os.Getenv("ANTHROPIC_MODEL")
		if model == "" {
			model = defaultAnthropicModel
		}
		log.Println("Generator using Anthropic API:", model)
		return NewLLM(NewAnthropicClient(model))
	case "openai":
		model := os.Getenv("OPENAI_MODEL")
		if model == "" {
			model = defaultOpenAIModel
		}
		log.Println("Generator using OpenAI API:", model)
		return NewLLM(NewOpenAIClient(os.Getenv("OPENAI_API_KEY"), model))
	case "cli":
		log.Println("Generator using claude CLI")
		return NewLLM(NewCLIClient(os.Getenv("CLAUDE_CLI_PATH")))
	default:
		log.Println("Generator using deterministic heuristic")
		return NewHeuristic(units)
	}
}
