package generate

import (
	"fmt"
	"strings"

	"github.com/quizcraft/backend/internal/models"
)

const generationSystemPrompt = `You are an expert teacher who writes quiz questions from educational text. Every question must be answerable from the provided source text alone — never introduce outside facts. Respond with JSON only, no prose before or after.`

// SystemPrompt returns the system prompt shared by all LLM-backed
// generation calls.
func SystemPrompt() string {
	return generationSystemPrompt
}

var typeInstructions = map[models.QuestionType]string{
	models.TypeMultipleChoice: `Write one multiple-choice question.
- "answer" must be a short phrase that appears in, or is directly derivable from, the source text.
- "distractors" must contain exactly 3 plausible but wrong options, none equal to the answer or to each other.`,
	models.TypeTrueFalse: `Write one true/false question.
- "question" must state a proposition drawn from the source text, prefixed with "True or false:".
- "answer" must be exactly "true" or "false".
- "distractors" must be an empty array.`,
	models.TypeShortAnswer: `Write one short-answer question.
- "answer" must be a short phrase that appears in the source text.
- "distractors" must be an empty array.`,
}

// BuildUserPrompt renders the generation request for one unit. The
// attempt counter is surfaced so a regeneration round asks for a
// different question than the one that failed.
func BuildUserPrompt(req Request) string {
	var sb strings.Builder

	sb.WriteString("SOURCE TEXT:\n")
	sb.WriteString(req.Unit.Text)
	sb.WriteString("\n\n")

	sb.WriteString("TASK:\n")
	sb.WriteString(typeInstructions[req.TypeHint])
	sb.WriteString("\n\n")

	if req.Difficulty != "" {
		fmt.Fprintf(&sb, "DIFFICULTY: %s\n\n", req.Difficulty)
	}

	if req.Attempt > 0 {
		fmt.Fprintf(&sb, "This is regeneration attempt %d for this source text. Ask about a different fact than an earlier attempt would have.\n\n", req.Attempt)
	}

	sb.WriteString(`Respond with JSON only:
{
  "question": "...",
  "answer": "...",
  "distractors": ["...", "...", "..."],
  "type": "` + string(req.TypeHint) + `",
  "difficulty": "easy|medium|hard"
}`)

	return sb.String()
}
